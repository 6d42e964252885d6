package cron

import (
	"context"
	"fmt"

	"go.uber.org/multierr"

	"github.com/forkasbib/restopos-backend/pkg/enums"
	"github.com/forkasbib/restopos-backend/pkg/logger"
)

type subscriberLister interface {
	ActiveRestaurantIDs(ctx context.Context) ([]int64, error)
}

type usageRecounter interface {
	Recount(ctx context.Context, restaurantID int64, resource enums.ResourceType) (int64, error)
}

type alertEvaluator interface {
	EvaluateAndAlert(ctx context.Context, restaurantID int64) error
}

// UsageRecountJobParams configure the periodic counter reconciliation.
type UsageRecountJobParams struct {
	Logger *logger.Logger
	Plans  subscriberLister
	Usage  usageRecounter
	Alerts alertEvaluator
}

// UsageRecountJob reconciles the countable usage counters of every
// restaurant holding an active subscription against their source tables,
// then re-evaluates limit alerts on the healed numbers.
type UsageRecountJob struct {
	logg   *logger.Logger
	plans  subscriberLister
	usage  usageRecounter
	alerts alertEvaluator
}

// NewUsageRecountJob builds the reconciliation job. The alert evaluator
// is optional.
func NewUsageRecountJob(params UsageRecountJobParams) (*UsageRecountJob, error) {
	if params.Logger == nil {
		return nil, fmt.Errorf("logger required")
	}
	if params.Plans == nil {
		return nil, fmt.Errorf("plan repository required")
	}
	if params.Usage == nil {
		return nil, fmt.Errorf("usage service required")
	}
	return &UsageRecountJob{
		logg:   params.Logger,
		plans:  params.Plans,
		usage:  params.Usage,
		alerts: params.Alerts,
	}, nil
}

// Name identifies the job in logs and metrics.
func (j *UsageRecountJob) Name() string {
	return "usage-recount"
}

// Run sweeps every active tenant. A failure for one tenant or resource
// does not stop the sweep; all failures are reported together.
func (j *UsageRecountJob) Run(ctx context.Context) error {
	ids, err := j.plans.ActiveRestaurantIDs(ctx)
	if err != nil {
		return fmt.Errorf("list active restaurants: %w", err)
	}

	var errs error
	recounted := 0
	for _, restaurantID := range ids {
		for _, resource := range enums.ResourceTypes() {
			if !resource.Recountable() {
				continue
			}
			if _, err := j.usage.Recount(ctx, restaurantID, resource); err != nil {
				errs = multierr.Append(errs, fmt.Errorf("recount %s for restaurant %d: %w", resource, restaurantID, err))
				continue
			}
			recounted++
		}

		if j.alerts != nil {
			if err := j.alerts.EvaluateAndAlert(ctx, restaurantID); err != nil {
				errs = multierr.Append(errs, fmt.Errorf("evaluate alerts for restaurant %d: %w", restaurantID, err))
			}
		}
	}

	logCtx := j.logg.WithFields(ctx, map[string]any{
		"restaurants": len(ids),
		"recounted":   recounted,
	})
	j.logg.Info(logCtx, "usage counters reconciled")
	return errs
}
