package verification

import "strings"

// ReasonHeuristicFailed is the reason reported by HeuristicEngine for rejected documents.
const ReasonHeuristicFailed = "Failed heuristic verification"

// Decision is the raw outcome of a VerdictEngine. Reason is empty when Valid is true.
type Decision struct {
	Valid  bool
	Reason string
}

// VerdictEngine decides whether a validated document passes verification.
// A real provider integration plugs in here; intake and hashing stay untouched.
type VerdictEngine interface {
	Decide(contentType, fingerprint string) Decision
}

// HeuristicEngine is a placeholder rule, not a fraud or authenticity check:
// a PDF whose fingerprint ends in '0' is rejected, everything else passes.
type HeuristicEngine struct{}

// Decide implements VerdictEngine.
func (HeuristicEngine) Decide(contentType, fingerprint string) Decision {
	if contentType == ContentTypePDF && strings.HasSuffix(fingerprint, "0") {
		return Decision{Valid: false, Reason: ReasonHeuristicFailed}
	}
	return Decision{Valid: true}
}
