package cron

import (
	"context"
	"errors"
	"fmt"
	"time"

	"storefront-be/internal/logger"

	"go.uber.org/zap"
)

const defaultNotificationRetention = 30 * 24 * time.Hour

type notificationCleaner interface {
	DeleteReadBefore(ctx context.Context, cutoff time.Time) (int64, error)
}

type NotificationCleanupJobParams struct {
	Repository notificationCleaner
	Retention  time.Duration
}

// NewNotificationCleanupJob builds the job that purges read notifications
// older than the retention window.
func NewNotificationCleanupJob(p NotificationCleanupJobParams) (Job, error) {
	if p.Repository == nil {
		return nil, errors.New("notifications repository required")
	}
	retention := p.Retention
	if retention <= 0 {
		retention = defaultNotificationRetention
	}
	return &notificationCleanupJob{repo: p.Repository, retention: retention, now: time.Now}, nil
}

type notificationCleanupJob struct {
	repo      notificationCleaner
	retention time.Duration
	now       func() time.Time
}

func (j *notificationCleanupJob) Name() string { return "notification-cleanup" }

func (j *notificationCleanupJob) Run(ctx context.Context) error {
	cutoff := j.now().UTC().Add(-j.retention)
	deleted, err := j.repo.DeleteReadBefore(ctx, cutoff)
	if err != nil {
		return fmt.Errorf("notification cleanup: %w", err)
	}
	logger.FromCtx(ctx).Info("notification cleanup complete",
		zap.Time("cutoff", cutoff),
		zap.Int64("rows_deleted", deleted),
	)
	return nil
}
