package app

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/savioruz/eupago/config"
	"github.com/savioruz/eupago/pkg/constant"
	"github.com/savioruz/eupago/pkg/eupago/dto"
	"github.com/savioruz/eupago/pkg/failure"
	"github.com/savioruz/eupago/pkg/helper"
)

//go:generate go run github.com/google/wire/cmd/wire

// RunSandbox serves the sandbox gateway until SIGINT or SIGTERM. The timezone
// is set before the gateway is built so nothing reads it while it changes.
func RunSandbox(cfg *config.Config) {
	tzErr := helper.InitTimezone(cfg.App.Timezone)

	app, err := InitializeSandbox(cfg)
	if err != nil {
		panic(fmt.Sprintf("failed to initialize sandbox: %v", err))
	}

	if tzErr != nil {
		app.Logger.Warn("app - RunSandbox - timezone %s unavailable, using UTC: %v", cfg.App.Timezone, tzErr)
	}

	scheduler, err := Cron(app.PayByLink, cfg, app.Logger)
	if err != nil {
		app.Logger.Fatal(err)
		os.Exit(1)
	}

	defer scheduler.Stop()

	app.HTTPServer.Start()
	app.Logger.Info("app - RunSandbox - listening on " + app.HTTPServer.Address())

	interrupt := make(chan os.Signal, 1)
	signal.Notify(interrupt, os.Interrupt, syscall.SIGTERM)

	select {
	case s := <-interrupt:
		app.Logger.Info("app - RunSandbox - signal: " + s.String())
	case err = <-app.HTTPServer.Notify():
		app.Logger.Error(fmt.Errorf("app - RunSandbox - httpServer.Notify: %w", err))
	}

	err = app.HTTPServer.Shutdown()
	if err != nil {
		app.Logger.Error(fmt.Errorf("app - RunSandbox - httpServer.Shutdown: %w", err))
	}
}

// RunPayByLink creates one payment link from cfg and writes the response to out.
func RunPayByLink(ctx context.Context, cfg *config.Config, out io.Writer) error {
	tzErr := helper.InitTimezone(cfg.App.Timezone)

	cli, cleanup, err := InitializeCLI(cfg)
	if err != nil {
		return err
	}

	defer cleanup()

	if tzErr != nil {
		cli.Logger.Warn("app - RunPayByLink - timezone %s unavailable, using UTC: %v", cfg.App.Timezone, tzErr)
	}

	res, err := cli.Client.PayByLink(ctx, BuildRequest(cfg.PayByLink, helper.NowInAppTimezone()))
	if err != nil {
		if f, ok := failure.As(err); ok {
			cli.Logger.Error("app - RunPayByLink - %s", f.String())
		}

		return err
	}

	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")

	return enc.Encode(res)
}

// BuildRequest turns the command configuration into a request expiring
// cfg.ExpiresIn after now.
func BuildRequest(cfg config.PayByLink, now time.Time) dto.PayByLinkRequest {
	req := dto.PayByLinkRequest{
		Payment: dto.Payment{
			SuccessURL: cfg.SuccessURL,
			FailURL:    cfg.FailURL,
			BackURL:    cfg.BackURL,
			Amount: dto.Amount{
				Currency: constant.Currency(cfg.Currency),
				Value:    cfg.Value,
			},
			Lang:           constant.Language(cfg.Lang),
			ExpirationDate: now.Add(cfg.ExpiresIn).Truncate(time.Second),
		},
	}

	if cfg.ProductName != "" {
		req.Products = []dto.Product{
			{Name: cfg.ProductName, Value: cfg.Value, Quantity: 1},
		}
	}

	if cfg.CustomerName != "" {
		notify := cfg.CustomerNotify
		req.Customer = &dto.Customer{
			Name:   cfg.CustomerName,
			Email:  cfg.CustomerEmail,
			Notify: &notify,
		}
	}

	return req
}
