package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/savioruz/eupago/config"
	"github.com/savioruz/eupago/internal/delivery/http/middleware"
	"github.com/savioruz/eupago/internal/delivery/http/response"
	paybylinkHandler "github.com/savioruz/eupago/internal/domains/paybylink/handler"
	"github.com/savioruz/eupago/internal/domains/paybylink/service"
	"github.com/savioruz/eupago/pkg/logger"
)

const apiPrefix = "/api"

type Handlers struct {
	PayByLink *paybylinkHandler.Handler
}

// NewRouter registers the sandbox routes under /api, mirroring the EuPago API.
func NewRouter(
	app *fiber.App,
	cfg *config.Config,
	l logger.Interface,
	handlers Handlers,
) {
	// Options
	app.Use(middleware.Logger(l))
	app.Use(middleware.Recovery(l))
	app.Use(middleware.RequestID())
	app.Use(middleware.CORS(cfg.CORS))

	api := app.Group(apiPrefix, middleware.APIKey(cfg.Sandbox.APIKeys))
	{
		handlers.PayByLink.RegisterRoutes(api)
	}

	app.Use("*", func(c *fiber.Ctx) error {
		return response.WithError(c, &service.Rejection{
			Status: fiber.StatusNotFound,
			Code:   service.CodeNotFound,
			Text:   "route not found",
		})
	})
}
