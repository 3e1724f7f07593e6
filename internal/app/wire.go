//go:build wireinject
// +build wireinject

package app

import (
	"github.com/google/wire"
	"github.com/savioruz/eupago/config"
	"github.com/savioruz/eupago/internal/delivery/http"
	"github.com/savioruz/eupago/internal/domains/paybylink/handler"
)

var payByLinkDomain = wire.NewSet(
	providePayByLinkService,
	handler.New,
)

func InitializeSandbox(cfg *config.Config) (*Sandbox, error) {
	wire.Build(
		// Infrastructure providers
		provideLogger,

		payByLinkDomain,

		wire.Struct(new(http.Handlers), "*"),

		// HTTP server
		provideRouter,
		provideHTTPServer,

		// Application
		wire.Struct(new(Sandbox), "*"),
	)

	return &Sandbox{}, nil
}

func InitializeCLI(cfg *config.Config) (*CLI, func(), error) {
	wire.Build(
		provideLogger,
		provideClientOptions,
		provideEuPagoClient,

		wire.Struct(new(CLI), "*"),
	)

	return &CLI{}, nil, nil
}
