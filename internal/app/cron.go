package app

import (
	"context"
	"fmt"

	"github.com/robfig/cron/v3"
	"github.com/savioruz/eupago/config"
	"github.com/savioruz/eupago/internal/domains/paybylink/service"
	"github.com/savioruz/eupago/pkg/logger"
)

// Cron schedules the expiry of pending sandbox links. The returned scheduler
// is already started.
func Cron(svc service.PayByLinkService, cfg *config.Config, l logger.Interface) (*cron.Cron, error) {
	c := cron.New(cron.WithSeconds())

	_, err := c.AddFunc(cfg.Sandbox.ExpirationSchedule, func() {
		ctx := context.WithoutCancel(context.Background())

		if _, err := svc.ExpireOldLinks(ctx); err != nil {
			l.Error("Cron job - ExpireOldLinks failed: %v", err)
		}
	})
	if err != nil {
		return nil, fmt.Errorf("app - Cron - AddFunc: %w", err)
	}

	c.Start()

	return c, nil
}
