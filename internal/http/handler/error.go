package handler

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"

	"docverify/internal/http/middleware"
	"docverify/internal/verification"
)

// errorPayload defines the standardized error response body.
type errorPayload struct {
	RequestID string        `json:"request_id"`
	Error     errorEnvelope `json:"error"`
}

type errorEnvelope struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// requestIDFromCtx extracts request_id previously stored by middleware.RequestID.
func requestIDFromCtx(c *fiber.Ctx) string {
	if v := c.Locals(middleware.RequestIDLocalKey); v != nil {
		if s, ok := v.(string); ok {
			return s
		}
	}
	return ""
}

// writeError writes a standardized JSON error response without leaking internal errors.
//
// Parameters:
// - status: HTTP status code to return
// - code: machine-readable short error code (e.g., "EMPTY_PAYLOAD", "INVALID_API_KEY", "INTERNAL_ERROR")
// - message: human-readable safe message (no internal details)
func writeError(c *fiber.Ctx, status int, code, message string) error {
	res := errorPayload{
		RequestID: requestIDFromCtx(c),
		Error: errorEnvelope{
			Code:    code,
			Message: message,
		},
	}
	return c.Status(status).JSON(res)
}

var unsupportedTypeMessage = "unsupported content type; allowed: " +
	strings.Join(verification.AllowedContentTypes(), ", ")

// writeVerificationError maps pipeline failures to their HTTP status.
// Anything outside the intake taxonomy becomes a generic 500.
func writeVerificationError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, verification.ErrEmptyPayload):
		return writeError(c, fiber.StatusBadRequest, "EMPTY_PAYLOAD", "empty file")
	case errors.Is(err, verification.ErrUnsupportedType):
		return writeError(c, fiber.StatusUnsupportedMediaType, "UNSUPPORTED_MEDIA_TYPE", unsupportedTypeMessage)
	case errors.Is(err, verification.ErrPayloadTooLarge):
		return writeError(c, fiber.StatusRequestEntityTooLarge, "PAYLOAD_TOO_LARGE", "file too large")
	default:
		return writeError(c, fiber.StatusInternalServerError, "INTERNAL_ERROR", "internal server error")
	}
}

// denyAPIKey is the middleware.APIKeyDenied used for the verification route.
func denyAPIKey(c *fiber.Ctx, missing bool) error {
	if missing {
		return writeError(c, fiber.StatusInternalServerError, "MISSING_CREDENTIAL", "verification API key missing")
	}
	return writeError(c, fiber.StatusUnauthorized, "INVALID_API_KEY", "invalid API key")
}

// ErrorHandler returns a Fiber global error handler that standardizes error responses.
func ErrorHandler() fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		status := fiber.StatusInternalServerError
		var e *fiber.Error
		if errors.As(err, &e) {
			status = e.Code
		}

		switch status {
		case fiber.StatusBadRequest:
			return writeError(c, status, "BAD_REQUEST", "bad request")
		case fiber.StatusUnauthorized:
			return writeError(c, status, "UNAUTHORIZED", "unauthorized")
		case fiber.StatusNotFound:
			return writeError(c, status, "NOT_FOUND", "resource not found")
		case fiber.StatusMethodNotAllowed:
			return writeError(c, status, "METHOD_NOT_ALLOWED", "method not allowed")
		case fiber.StatusRequestEntityTooLarge:
			return writeError(c, status, "PAYLOAD_TOO_LARGE", "file too large")
		case fiber.StatusUnsupportedMediaType:
			return writeError(c, status, "UNSUPPORTED_MEDIA_TYPE", unsupportedTypeMessage)
		default:
			return writeError(c, fiber.StatusInternalServerError, "INTERNAL_ERROR", "internal server error")
		}
	}
}
