package middleware

import (
	"github.com/gofiber/fiber/v2"
	"github.com/savioruz/eupago/internal/delivery/http/response"
	"github.com/savioruz/eupago/internal/domains/paybylink/service"
	"github.com/savioruz/eupago/pkg/constant"
	"github.com/savioruz/eupago/pkg/helper"
)

const CodeUnauthorized = "UNAUTHORIZED"

// APIKey accepts requests carrying "Authorization: ApiKey <key>" for one of keys.
func APIKey(keys []string) fiber.Handler {
	allowed := make(map[string]struct{}, len(keys))
	for _, k := range keys {
		if k != "" {
			allowed[k] = struct{}{}
		}
	}

	return func(c *fiber.Ctx) error {
		authHeader := c.Get(constant.HeaderAuthorization)
		if authHeader == "" {
			return response.WithError(c, unauthorized("missing authorization header"))
		}

		key, ok := helper.BearerValue(authHeader, constant.AuthorizationScheme)
		if !ok {
			return response.WithError(c, unauthorized("invalid authorization header format"))
		}

		if _, ok := allowed[key]; !ok {
			return response.WithError(c, unauthorized("invalid api key"))
		}

		c.Locals("api_key", key)

		return c.Next()
	}
}

func unauthorized(text string) error {
	return &service.Rejection{
		Status: fiber.StatusUnauthorized,
		Code:   CodeUnauthorized,
		Text:   text,
	}
}
