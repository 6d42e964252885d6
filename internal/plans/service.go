package plans

import (
	"context"
	"fmt"

	"github.com/forkasbib/restopos-backend/internal/usage"
	"github.com/forkasbib/restopos-backend/pkg/db/models"
	"github.com/forkasbib/restopos-backend/pkg/enums"
	pkgerrors "github.com/forkasbib/restopos-backend/pkg/errors"
)

type plansRepository interface {
	ActivePlan(ctx context.Context, restaurantID int64) (*ActivePlan, error)
	ListPlans(ctx context.Context, onlyActive bool) ([]models.Plan, error)
}

type usageReader interface {
	CurrentUsage(ctx context.Context, restaurantID int64) (usage.Snapshot, error)
}

// ResourceStatus reports one metered resource against its ceiling.
type ResourceStatus struct {
	Resource  enums.ResourceType `json:"resource"`
	Current   int64              `json:"current"`
	Limit     int64              `json:"limit"`
	Unlimited bool               `json:"unlimited"`
}

// PlanInfo is the assembled view returned to tenants: the resolved plan,
// its subscription, and current usage against every ceiling.
type PlanInfo struct {
	Plan         models.Plan         `json:"plan"`
	Subscription models.Subscription `json:"subscription"`
	Usage        usage.Snapshot      `json:"usage"`
	Resources    []ResourceStatus    `json:"resources"`
}

// Service exposes plan resolution and catalog semantics.
type Service interface {
	GetPlanInfo(ctx context.Context, restaurantID int64) (*PlanInfo, error)
	ListPlans(ctx context.Context) ([]models.Plan, error)
}

type service struct {
	repo  plansRepository
	usage usageReader
}

// NewService builds a plan service backed by the provided repositories.
func NewService(repo plansRepository, usageSvc usageReader) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("plan repository required")
	}
	if usageSvc == nil {
		return nil, fmt.Errorf("usage reader required")
	}
	return &service{repo: repo, usage: usageSvc}, nil
}

func (s *service) GetPlanInfo(ctx context.Context, restaurantID int64) (*PlanInfo, error) {
	if restaurantID <= 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "restaurant id is required")
	}

	active, err := s.repo.ActivePlan(ctx, restaurantID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "resolve active plan")
	}
	if active == nil {
		return nil, pkgerrors.New(pkgerrors.CodeNoActivePlan, "restaurant has no active subscription").
			WithDetails(map[string]any{"restaurantId": restaurantID})
	}

	snapshot, err := s.usage.CurrentUsage(ctx, restaurantID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load usage snapshot")
	}

	resources := make([]ResourceStatus, 0, len(enums.ResourceTypes()))
	for _, resource := range enums.ResourceTypes() {
		limit := active.Plan.LimitFor(resource)
		resources = append(resources, ResourceStatus{
			Resource:  resource,
			Current:   snapshot.For(resource),
			Limit:     limit,
			Unlimited: limit <= 0,
		})
	}

	return &PlanInfo{
		Plan:         active.Plan,
		Subscription: active.Subscription,
		Usage:        snapshot,
		Resources:    resources,
	}, nil
}

func (s *service) ListPlans(ctx context.Context) ([]models.Plan, error) {
	rows, err := s.repo.ListPlans(ctx, true)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list plans")
	}
	return rows, nil
}
