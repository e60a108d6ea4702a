// Package jobs runs the scheduled background work: the cache occupancy
// report (entries are never evicted, so the numbers matter for capacity
// planning) and the daily verification-reminder sweep.
package jobs

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/shuvam021/fundoo-v3/internal/cache"
	"github.com/shuvam021/fundoo-v3/internal/config"
	"github.com/shuvam021/fundoo-v3/internal/service"
	"github.com/sirupsen/logrus"
)

// Jobs owns the cron scheduler.
type Jobs struct {
	cron *cron.Cron
	log  *logrus.Logger
}

// New registers the scheduled jobs without starting them.
func New(cfg *config.Config, c *cache.Cache, svc *service.Service, log *logrus.Logger) (*Jobs, error) {
	cr := cron.New()

	if _, err := cr.AddFunc(cfg.CacheReportCron, func() {
		st := c.Stats()
		log.WithFields(logrus.Fields{
			"cached_users": st.Users,
			"cached_notes": st.Notes,
		}).Info("Note cache occupancy")
	}); err != nil {
		return nil, fmt.Errorf("failed to schedule cache report: %w", err)
	}

	if _, err := cr.AddFunc(cfg.VerifyReminderCron, func() {
		ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
		defer cancel()
		count, err := svc.SendVerificationReminders(ctx)
		if err != nil {
			log.Errorf("Verification reminder sweep failed: %v", err)
			return
		}
		if count > 0 {
			log.Infof("Queued %d verification reminders", count)
		}
	}); err != nil {
		return nil, fmt.Errorf("failed to schedule verification reminders: %w", err)
	}

	return &Jobs{cron: cr, log: log}, nil
}

// Start launches the scheduler in its own goroutine.
func (j *Jobs) Start() {
	j.cron.Start()
	j.log.Info("Background jobs started")
}

// Stop stops the scheduler and waits for running jobs to finish.
func (j *Jobs) Stop() {
	ctx := j.cron.Stop()
	<-ctx.Done()
	j.log.Info("Background jobs stopped")
}
