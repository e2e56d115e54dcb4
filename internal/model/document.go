package model

// DocumentMetadata describes an uploaded document as seen by the verification pipeline.
// It is a value object: once built by the pipeline it is never mutated.
type DocumentMetadata struct {
	Filename    string `json:"filename"`
	ContentType string `json:"content_type"`
	SizeBytes   int64  `json:"size_bytes"`
	SHA256      string `json:"sha256"`
}

// VerificationVerdict is the outcome of verifying one document.
// Reason is set if and only if Valid is false.
type VerificationVerdict struct {
	Valid    bool             `json:"valid"`
	Reason   *string          `json:"reason"`
	Metadata DocumentMetadata `json:"metadata"`
}
