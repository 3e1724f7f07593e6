package middleware

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/savioruz/eupago/pkg/constant"
)

const RequestIDKey = "request_id"

// RequestID echoes X-Request-ID, generating one when the caller sent none.
func RequestID() fiber.Handler {
	return func(c *fiber.Ctx) error {
		requestID := c.Get(constant.HeaderRequestID)
		if requestID == "" {
			requestID = uuid.NewString()
		}

		c.Set(constant.HeaderRequestID, requestID)
		c.Locals(RequestIDKey, requestID)

		return c.Next()
	}
}
