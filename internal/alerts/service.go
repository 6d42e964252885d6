package alerts

import (
	"context"
	"fmt"

	"go.uber.org/multierr"

	"github.com/forkasbib/restopos-backend/internal/plans"
	"github.com/forkasbib/restopos-backend/internal/usage"
	"github.com/forkasbib/restopos-backend/pkg/db/models"
	"github.com/forkasbib/restopos-backend/pkg/enums"
	pkgerrors "github.com/forkasbib/restopos-backend/pkg/errors"
	"github.com/forkasbib/restopos-backend/pkg/logger"
	"github.com/forkasbib/restopos-backend/pkg/pagination"
)

type alertsRepository interface {
	Upsert(ctx context.Context, alert *models.LimitAlert) error
	ListPending(ctx context.Context, restaurantID int64, params pagination.Params) ([]models.LimitAlert, string, error)
	Resolve(ctx context.Context, alertID, restaurantID int64) (bool, error)
}

type planResolver interface {
	ActivePlan(ctx context.Context, restaurantID int64) (*plans.ActivePlan, error)
}

type usageReader interface {
	CurrentUsage(ctx context.Context, restaurantID int64) (usage.Snapshot, error)
}

// Service evaluates usage against plan ceilings and manages the
// resulting alert rows.
type Service interface {
	EvaluateAndAlert(ctx context.Context, restaurantID int64) error
	ActiveAlerts(ctx context.Context, restaurantID int64, params pagination.Params) ([]models.LimitAlert, string, error)
	ResolveAlert(ctx context.Context, restaurantID, alertID int64) error
}

type service struct {
	repo  alertsRepository
	plans planResolver
	usage usageReader
	logg  *logger.Logger
}

// NewService builds the limit alert service.
func NewService(repo alertsRepository, planRepo planResolver, usageSvc usageReader, logg *logger.Logger) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("alert repository required")
	}
	if planRepo == nil {
		return nil, fmt.Errorf("plan resolver required")
	}
	if usageSvc == nil {
		return nil, fmt.Errorf("usage reader required")
	}
	if logg == nil {
		return nil, fmt.Errorf("logger required")
	}
	return &service{repo: repo, plans: planRepo, usage: usageSvc, logg: logg}, nil
}

// EvaluateAndAlert sweeps every metered resource for the restaurant and
// upserts an alert row per tripped threshold. A restaurant without an
// active plan is skipped silently: there is no ceiling to alert on.
func (s *service) EvaluateAndAlert(ctx context.Context, restaurantID int64) error {
	if restaurantID <= 0 {
		return pkgerrors.New(pkgerrors.CodeValidation, "restaurant id is required")
	}

	active, err := s.plans.ActivePlan(ctx, restaurantID)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "resolve active plan")
	}
	if active == nil {
		return nil
	}

	snapshot, err := s.usage.CurrentUsage(ctx, restaurantID)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load usage snapshot")
	}

	var errs error
	for _, resource := range enums.ResourceTypes() {
		limit := active.Plan.LimitFor(resource)
		current := snapshot.For(resource)

		classification := Classify(current, limit)
		if classification == nil {
			continue
		}

		alert := &models.LimitAlert{
			RestaurantID: restaurantID,
			AlertType:    classification.Type,
			Resource:     resource,
			CurrentUsage: current,
			MaxLimit:     limit,
			Severity:     classification.Severity,
			Message:      classification.Message(resource, current, limit),
			Status:       enums.AlertStatusPending,
		}
		if err := s.repo.Upsert(ctx, alert); err != nil {
			errs = multierr.Append(errs, fmt.Errorf("upsert %s alert: %w", resource, err))
			continue
		}

		logCtx := s.logg.WithFields(ctx, map[string]any{
			"restaurant_id": restaurantID,
			"resource":      resource.String(),
			"alert_type":    classification.Type.String(),
			"usage_percent": classification.Percent,
		})
		s.logg.Info(logCtx, "plan limit alert raised")
	}

	if errs != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, errs, "evaluate limit alerts")
	}
	return nil
}

func (s *service) ActiveAlerts(ctx context.Context, restaurantID int64, params pagination.Params) ([]models.LimitAlert, string, error) {
	if restaurantID <= 0 {
		return nil, "", pkgerrors.New(pkgerrors.CodeValidation, "restaurant id is required")
	}

	rows, next, err := s.repo.ListPending(ctx, restaurantID, params)
	if err != nil {
		return nil, "", pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list pending alerts")
	}
	return rows, next, nil
}

func (s *service) ResolveAlert(ctx context.Context, restaurantID, alertID int64) error {
	if restaurantID <= 0 || alertID <= 0 {
		return pkgerrors.New(pkgerrors.CodeValidation, "restaurant id and alert id are required")
	}

	resolved, err := s.repo.Resolve(ctx, alertID, restaurantID)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "resolve alert")
	}
	if !resolved {
		return pkgerrors.New(pkgerrors.CodeNotFound, "pending alert not found")
	}
	return nil
}
