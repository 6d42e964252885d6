package usage

import (
	"context"
	"fmt"
	"time"

	"github.com/forkasbib/restopos-backend/pkg/enums"
	pkgerrors "github.com/forkasbib/restopos-backend/pkg/errors"
	"github.com/forkasbib/restopos-backend/pkg/logger"
)

type usageRepository interface {
	Increment(ctx context.Context, restaurantID int64, resource enums.ResourceType, amount int64, period Period) error
	Decrement(ctx context.Context, restaurantID int64, resource enums.ResourceType, amount int64, period Period) error
	Overwrite(ctx context.Context, restaurantID int64, resource enums.ResourceType, value int64, period Period) error
	Snapshot(ctx context.Context, restaurantID int64, period Period) (Snapshot, error)
	CountActive(ctx context.Context, restaurantID int64, resource enums.ResourceType) (int64, error)
}

// Service exposes the counter mutation and read semantics.
type Service interface {
	Increment(ctx context.Context, restaurantID int64, resource enums.ResourceType, amount int64) error
	Decrement(ctx context.Context, restaurantID int64, resource enums.ResourceType, amount int64) error
	Recount(ctx context.Context, restaurantID int64, resource enums.ResourceType) (int64, error)
	CurrentUsage(ctx context.Context, restaurantID int64) (Snapshot, error)
}

type service struct {
	repo usageRepository
	logg *logger.Logger
	now  func() time.Time
}

// NewService builds the usage counter service. The clock is injectable so
// period boundaries can be pinned in tests; nil defaults to time.Now.
func NewService(repo usageRepository, logg *logger.Logger, now func() time.Time) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("usage repository required")
	}
	if logg == nil {
		return nil, fmt.Errorf("logger required")
	}
	if now == nil {
		now = time.Now
	}
	return &service{repo: repo, logg: logg, now: now}, nil
}

func (s *service) Increment(ctx context.Context, restaurantID int64, resource enums.ResourceType, amount int64) error {
	if err := validateMutation(restaurantID, resource, amount); err != nil {
		return err
	}

	period := PeriodOf(s.now())
	if err := s.repo.Increment(ctx, restaurantID, resource, amount, period); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "increment usage counter")
	}
	return nil
}

func (s *service) Decrement(ctx context.Context, restaurantID int64, resource enums.ResourceType, amount int64) error {
	if err := validateMutation(restaurantID, resource, amount); err != nil {
		return err
	}

	period := PeriodOf(s.now())
	if err := s.repo.Decrement(ctx, restaurantID, resource, amount, period); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "decrement usage counter")
	}
	return nil
}

func (s *service) Recount(ctx context.Context, restaurantID int64, resource enums.ResourceType) (int64, error) {
	if restaurantID <= 0 {
		return 0, pkgerrors.New(pkgerrors.CodeValidation, "restaurant id is required")
	}
	if !resource.Recountable() {
		return 0, pkgerrors.New(pkgerrors.CodeValidation,
			fmt.Sprintf("resource %q cannot be recounted", resource))
	}

	count, err := s.repo.CountActive(ctx, restaurantID, resource)
	if err != nil {
		return 0, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "count active rows")
	}

	period := PeriodOf(s.now())
	if err := s.repo.Overwrite(ctx, restaurantID, resource, count, period); err != nil {
		return 0, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "overwrite usage counter")
	}

	ctx = s.logg.WithFields(ctx, map[string]any{
		"restaurant_id": restaurantID,
		"resource":      resource.String(),
		"count":         count,
		"period":        period.String(),
	})
	s.logg.Info(ctx, "usage counter recounted from source table")

	return count, nil
}

func (s *service) CurrentUsage(ctx context.Context, restaurantID int64) (Snapshot, error) {
	if restaurantID <= 0 {
		return Snapshot{}, pkgerrors.New(pkgerrors.CodeValidation, "restaurant id is required")
	}

	snapshot, err := s.repo.Snapshot(ctx, restaurantID, PeriodOf(s.now()))
	if err != nil {
		return Snapshot{}, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "read usage snapshot")
	}
	return snapshot, nil
}

func validateMutation(restaurantID int64, resource enums.ResourceType, amount int64) error {
	if restaurantID <= 0 {
		return pkgerrors.New(pkgerrors.CodeValidation, "restaurant id is required")
	}
	if !resource.IsValid() {
		return pkgerrors.New(pkgerrors.CodeValidation, fmt.Sprintf("invalid resource type %q", resource))
	}
	if amount <= 0 {
		return pkgerrors.New(pkgerrors.CodeValidation, "amount must be positive")
	}
	return nil
}
