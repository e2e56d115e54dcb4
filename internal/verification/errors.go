package verification

import "errors"

// Intake failures. Callers match them with errors.Is; the returned error may wrap
// one of these with extra detail (for example the rejected content type).
var (
	ErrEmptyPayload    = errors.New("empty payload")
	ErrUnsupportedType = errors.New("unsupported content type")
	ErrPayloadTooLarge = errors.New("payload too large")
)

// IsIntakeError reports whether err is one of the intake failures above.
func IsIntakeError(err error) bool {
	return errors.Is(err, ErrEmptyPayload) ||
		errors.Is(err, ErrUnsupportedType) ||
		errors.Is(err, ErrPayloadTooLarge)
}
