package http

import (
	"github.com/gofiber/fiber/v2"
)

const userIDLocal = "user_id"

// RequireIdentity extracts the authenticated user from the X-User-ID
// header set by the auth gateway in front of this service. Credential
// issuance and session handling live there, not here; this middleware
// only refuses anonymous booking traffic.
func RequireIdentity() fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID := c.Get("X-User-ID")
		if userID == "" {
			return errUnauthorized(c, "missing user identity")
		}
		c.Locals(userIDLocal, userID)
		return c.Next()
	}
}

// userID returns the identity stored by RequireIdentity.
func userID(c *fiber.Ctx) string {
	id, _ := c.Locals(userIDLocal).(string)
	return id
}
