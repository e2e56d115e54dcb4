package middleware

import (
	"crypto/subtle"

	"github.com/gofiber/fiber/v2"
)

// APIKeyHeader carries the client's API key.
const APIKeyHeader = "X-API-Key"

// APIKeyDenied writes the response for a rejected request.
// missing is true when the server itself has no key configured.
type APIKeyDenied func(c *fiber.Ctx, missing bool) error

// APIKey rejects requests whose X-API-Key header does not match expected.
// The key is resolved once at startup and passed in; it is never read per request.
// An empty expected key means the server is misconfigured and every request is denied.
func APIKey(expected string, deny APIKeyDenied) fiber.Handler {
	want := []byte(expected)

	return func(c *fiber.Ctx) error {
		if len(want) == 0 {
			return deny(c, true)
		}
		got := []byte(c.Get(APIKeyHeader))
		if len(got) == 0 || subtle.ConstantTimeCompare(got, want) != 1 {
			return deny(c, false)
		}
		return c.Next()
	}
}
