package cron

import (
	"context"
	"fmt"
	"time"

	"github.com/forkasbib/restopos-backend/pkg/logger"
)

const defaultAlertRetentionDays = 30

type alertRetentionStore interface {
	DeleteResolvedBefore(ctx context.Context, cutoff time.Time) (int64, error)
}

// AlertCleanupJobParams configure the resolved-alert retention sweep.
type AlertCleanupJobParams struct {
	Logger        *logger.Logger
	Alerts        alertRetentionStore
	RetentionDays int
	Now           func() time.Time
}

// AlertCleanupJob purges resolved limit alerts past the retention window.
type AlertCleanupJob struct {
	logg      *logger.Logger
	alerts    alertRetentionStore
	retention int
	now       func() time.Time
}

// NewAlertCleanupJob builds the retention sweep job.
func NewAlertCleanupJob(params AlertCleanupJobParams) (*AlertCleanupJob, error) {
	if params.Logger == nil {
		return nil, fmt.Errorf("logger required")
	}
	if params.Alerts == nil {
		return nil, fmt.Errorf("alert store required")
	}
	retention := params.RetentionDays
	if retention <= 0 {
		retention = defaultAlertRetentionDays
	}
	now := params.Now
	if now == nil {
		now = time.Now
	}
	return &AlertCleanupJob{
		logg:      params.Logger,
		alerts:    params.Alerts,
		retention: retention,
		now:       now,
	}, nil
}

// Name identifies the job in logs and metrics.
func (j *AlertCleanupJob) Name() string {
	return "alert-cleanup"
}

// Run deletes resolved alerts last touched before the retention cutoff.
func (j *AlertCleanupJob) Run(ctx context.Context) error {
	cutoff := j.now().UTC().AddDate(0, 0, -j.retention)

	deleted, err := j.alerts.DeleteResolvedBefore(ctx, cutoff)
	if err != nil {
		return fmt.Errorf("delete resolved alerts: %w", err)
	}

	ctx = j.logg.WithFields(ctx, map[string]any{
		"deleted": deleted,
		"cutoff":  cutoff.Format(time.RFC3339),
	})
	j.logg.Info(ctx, "resolved alerts purged")
	return nil
}
