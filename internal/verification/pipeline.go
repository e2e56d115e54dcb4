package verification

import "docverify/internal/model"

const (
	// UnknownFilename is reported when the caller supplied no filename.
	UnknownFilename = "unknown"
	// DefaultContentType is reported when the caller supplied no content type.
	DefaultContentType = "application/octet-stream"

	reasonUnspecified = "Verification failed"
)

// Payload is one uploaded document, fully read into memory.
// Empty Filename or ContentType means the caller did not provide one.
type Payload struct {
	Content     []byte
	Filename    string
	ContentType string
}

// Pipeline validates a payload, fingerprints it and asks a VerdictEngine for a verdict.
// It holds no mutable state and is safe for concurrent use.
type Pipeline struct {
	fingerprinter Fingerprinter
	engine        VerdictEngine
}

// Option configures a Pipeline.
type Option func(*Pipeline)

// WithEngine replaces the default HeuristicEngine.
func WithEngine(e VerdictEngine) Option {
	return func(p *Pipeline) {
		if e != nil {
			p.engine = e
		}
	}
}

// WithFingerprinter replaces the default SHA256Fingerprinter.
func WithFingerprinter(f Fingerprinter) Option {
	return func(p *Pipeline) {
		if f != nil {
			p.fingerprinter = f
		}
	}
}

// New builds a Pipeline using SHA-256 fingerprints and the heuristic engine unless overridden.
func New(opts ...Option) *Pipeline {
	p := &Pipeline{
		fingerprinter: SHA256Fingerprinter{},
		engine:        HeuristicEngine{},
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Verify runs intake validation, fingerprinting and the verdict engine.
// Intake failures are returned immediately and nothing is hashed.
// A negative verdict is a successful result, not an error.
func (p *Pipeline) Verify(in Payload) (*model.VerificationVerdict, error) {
	if err := Validate(in.Content, in.ContentType); err != nil {
		return nil, err
	}

	fp := p.fingerprinter.Fingerprint(in.Content)
	d := p.engine.Decide(in.ContentType, fp)

	meta := model.DocumentMetadata{
		Filename:    valueOr(in.Filename, UnknownFilename),
		ContentType: valueOr(in.ContentType, DefaultContentType),
		SizeBytes:   int64(len(in.Content)),
		SHA256:      fp,
	}

	v := &model.VerificationVerdict{Valid: d.Valid, Metadata: meta}
	if !d.Valid {
		reason := d.Reason
		if reason == "" {
			reason = reasonUnspecified
		}
		v.Reason = &reason
	}
	return v, nil
}

func valueOr(v, def string) string {
	if v == "" {
		return def
	}
	return v
}
