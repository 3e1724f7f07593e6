package app

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/savioruz/eupago/config"
	"github.com/savioruz/eupago/internal/delivery/http"
	"github.com/savioruz/eupago/internal/domains/paybylink/service"
	"github.com/savioruz/eupago/pkg/eupago"
	"github.com/savioruz/eupago/pkg/eupago/eupagotest"
	"github.com/savioruz/eupago/pkg/helper"
	"github.com/savioruz/eupago/pkg/httpserver"
	"github.com/savioruz/eupago/pkg/logger"
)

const (
	_readTimeout  = 5 * time.Second
	_writeTimeout = 5 * time.Second
	_idleTimeout  = 30 * time.Second
)

// Sandbox is the dependency-injected sandbox gateway.
type Sandbox struct {
	HTTPServer *httpserver.Server
	Logger     logger.Interface
	PayByLink  service.PayByLinkService
}

// CLI is the dependency-injected pay by link command.
type CLI struct {
	Client *eupago.Client
	Logger logger.Interface
}

type clientOptions []eupago.Option

func provideLogger(cfg *config.Config) logger.Interface {
	return logger.New(cfg.Log.Level)
}

func providePayByLinkService(cfg *config.Config, l logger.Interface) service.PayByLinkService {
	return service.New(service.Config{
		RedirectBaseURL: cfg.Sandbox.RedirectBaseURL,
		Location:        helper.AppTimezone(),
	}, l)
}

func provideRouter(
	cfg *config.Config,
	l logger.Interface,
	h http.Handlers,
) *fiber.App {
	app := httpserver.NewApp(_readTimeout, _writeTimeout, _idleTimeout)

	http.NewRouter(
		app,
		cfg,
		l,
		h,
	)

	return app
}

func provideHTTPServer(cfg *config.Config, app *fiber.App) *httpserver.Server {
	return httpserver.New(
		httpserver.Port(cfg.HTTP.Port),
		httpserver.App(app),
	)
}

// provideClientOptions points the client at an in-process sandbox when mock
// mode is on. The cleanup stops that sandbox.
func provideClientOptions(cfg *config.Config, l logger.Interface) (clientOptions, func(), error) {
	opts := clientOptions{eupago.WithLogger(l)}

	if !cfg.EuPago.Mock {
		if cfg.EuPago.BaseURL != "" {
			opts = append(opts, eupago.WithBaseURL(cfg.EuPago.BaseURL))
		}

		return opts, func() {}, nil
	}

	srv := eupagotest.New(
		eupagotest.WithAPIKeys(apiKey(cfg)),
		eupagotest.WithLogger(l),
		eupagotest.WithLocation(helper.AppTimezone()),
	)

	l.Info("app - provideClientOptions - mock mode, using in-process sandbox")

	opts = append(opts, eupago.WithDoer(srv.Doer()), eupago.WithBaseURL(eupagotest.URL))

	return opts, func() {
		if err := srv.Close(); err != nil {
			l.Warn("app - provideClientOptions - sandbox close: %v", err)
		}
	}, nil
}

func provideEuPagoClient(cfg *config.Config, opts clientOptions) (*eupago.Client, error) {
	sandbox := cfg.EuPago.Sandbox

	return eupago.New(eupago.Options{
		APIKey:    apiKey(cfg),
		IsSandbox: &sandbox,
		Timeout:   cfg.EuPago.Timeout,
	}, opts...)
}

func apiKey(cfg *config.Config) string {
	if cfg.EuPago.APIKey == "" && cfg.EuPago.Mock {
		return eupagotest.DefaultAPIKey
	}

	return cfg.EuPago.APIKey
}
