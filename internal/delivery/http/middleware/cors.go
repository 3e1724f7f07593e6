package middleware

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/savioruz/eupago/config"
	"github.com/savioruz/eupago/pkg/constant"
)

var defaultAllowedHeaders = []string{
	fiber.HeaderOrigin,
	constant.HeaderContentType,
	constant.HeaderAuthorization,
	constant.HeaderRequestID,
}

// CORS is a no-op unless enabled. Browser demos calling the sandbox need the
// Authorization and X-Request-ID headers allowed, so they are the default.
func CORS(cfg config.CORS) fiber.Handler {
	if !cfg.Enable {
		return func(c *fiber.Ctx) error {
			return c.Next()
		}
	}

	headers := cfg.AllowedHeaders
	if headers == "" {
		headers = strings.Join(defaultAllowedHeaders, ",")
	}

	return cors.New(cors.Config{
		AllowOrigins:     cfg.AllowedOrigins,
		AllowMethods:     cfg.AllowedMethods,
		AllowHeaders:     headers,
		AllowCredentials: cfg.AllowCredentials,
		ExposeHeaders:    constant.HeaderRequestID,
		MaxAge:           cfg.MaxAgeSeconds,
	})
}
