package verification

import "fmt"

const (
	ContentTypePDF  = "application/pdf"
	ContentTypeJPEG = "image/jpeg"
	ContentTypePNG  = "image/png"

	// MaxSizeBytes is the largest accepted payload (10 MiB).
	MaxSizeBytes = 10 * 1024 * 1024
)

var allowedTypes = map[string]struct{}{
	ContentTypePDF:  {},
	ContentTypeJPEG: {},
	ContentTypePNG:  {},
}

// AllowedContentTypes returns the accepted content types.
func AllowedContentTypes() []string {
	return []string{ContentTypePDF, ContentTypeJPEG, ContentTypePNG}
}

// Validate checks a payload before any hashing happens.
//
// Checks run in a fixed order: emptiness, then content type, then size.
// The declared content type is trusted as given; the bytes are not sniffed.
func Validate(content []byte, contentType string) error {
	if len(content) == 0 {
		return ErrEmptyPayload
	}
	if _, ok := allowedTypes[contentType]; !ok {
		return fmt.Errorf("%w: %q", ErrUnsupportedType, contentType)
	}
	if len(content) > MaxSizeBytes {
		return fmt.Errorf("%w: %d bytes exceeds %d", ErrPayloadTooLarge, len(content), MaxSizeBytes)
	}
	return nil
}
