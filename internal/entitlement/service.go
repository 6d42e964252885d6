package entitlement

import (
	"context"
	"fmt"

	"github.com/forkasbib/restopos-backend/internal/plans"
	"github.com/forkasbib/restopos-backend/internal/usage"
	"github.com/forkasbib/restopos-backend/pkg/enums"
	pkgerrors "github.com/forkasbib/restopos-backend/pkg/errors"
	"github.com/forkasbib/restopos-backend/pkg/logger"
	"github.com/forkasbib/restopos-backend/pkg/metrics"
)

type planResolver interface {
	ActivePlan(ctx context.Context, restaurantID int64) (*plans.ActivePlan, error)
}

type usageService interface {
	CurrentUsage(ctx context.Context, restaurantID int64) (usage.Snapshot, error)
	Recount(ctx context.Context, restaurantID int64, resource enums.ResourceType) (int64, error)
}

// Requirement states what a route demands before its handler may run.
// Zero values mean "not required": an empty requirement only verifies the
// subscription itself.
type Requirement struct {
	Feature string
	MinTier enums.PlanTier
}

// Grant is the successful admission outcome, handed to the request layer
// so downstream code can reuse the resolved plan without re-querying.
type Grant struct {
	Plan  plans.ActivePlan
	Usage usage.Snapshot
}

// Quota reports headroom for a single metered resource. Remaining is -1
// when the ceiling is unlimited.
type Quota struct {
	Resource  enums.ResourceType
	Current   int64
	Limit     int64
	Remaining int64
	Unlimited bool
}

// Service is the admission-control gate for plan entitlements.
type Service interface {
	CheckAccess(ctx context.Context, restaurantID int64, req Requirement) (*Grant, error)
	CheckResourceLimit(ctx context.Context, restaurantID int64, resource enums.ResourceType) (*Quota, error)
}

type service struct {
	plans   planResolver
	usage   usageService
	metrics *metrics.EntitlementMetrics
	logg    *logger.Logger
}

// NewService builds the entitlement checker. Metrics may be nil.
func NewService(planRepo planResolver, usageSvc usageService, m *metrics.EntitlementMetrics, logg *logger.Logger) (Service, error) {
	if planRepo == nil {
		return nil, fmt.Errorf("plan resolver required")
	}
	if usageSvc == nil {
		return nil, fmt.Errorf("usage service required")
	}
	if logg == nil {
		return nil, fmt.Errorf("logger required")
	}
	return &service{plans: planRepo, usage: usageSvc, metrics: m, logg: logg}, nil
}

// CheckAccess runs the full admission sequence: active plan, subscription
// state, tier rank, feature flag, then every finite ceiling in canonical
// resource order. The first failure short-circuits.
func (s *service) CheckAccess(ctx context.Context, restaurantID int64, req Requirement) (*Grant, error) {
	if restaurantID <= 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "restaurant id is required")
	}

	active, err := s.plans.ActivePlan(ctx, restaurantID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "resolve active plan")
	}
	if active == nil {
		return nil, s.deny(ctx, restaurantID, pkgerrors.CodeNoActivePlan, "restaurant has no active subscription",
			"", map[string]any{"restaurantId": restaurantID})
	}

	planName := active.Plan.Name
	if active.Subscription.Status != enums.SubscriptionStatusActive {
		return nil, s.deny(ctx, restaurantID, pkgerrors.CodeInactiveSubscription, "subscription is not active",
			"", map[string]any{
				"currentPlan": planName,
				"status":      active.Subscription.Status.String(),
			})
	}

	if req.MinTier != "" && !active.Plan.Tier().AtLeast(req.MinTier) {
		return nil, s.deny(ctx, restaurantID, pkgerrors.CodeInsufficientPlan, "plan tier too low for this operation",
			"", map[string]any{
				"currentPlan":  planName,
				"requiredPlan": req.MinTier.String(),
			})
	}

	if req.Feature != "" {
		key := PlanFeatureKey(req.Feature)
		if !active.Plan.Features.Resolve(key, req.Feature) {
			return nil, s.deny(ctx, restaurantID, pkgerrors.CodeFeatureNotAvailable, "feature not included in plan",
				"", map[string]any{
					"currentPlan":     planName,
					"requiredFeature": req.Feature,
				})
		}
	}

	snapshot, err := s.usage.CurrentUsage(ctx, restaurantID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load usage snapshot")
	}

	for _, resource := range enums.ResourceTypes() {
		limit := active.Plan.LimitFor(resource)
		if limit <= 0 {
			continue
		}
		current := snapshot.For(resource)
		if current < limit {
			continue
		}

		// counters for recountable resources are eventually consistent;
		// reconcile against the source table before a hard deny
		if resource.Recountable() {
			recounted, err := s.usage.Recount(ctx, restaurantID, resource)
			if err == nil && recounted < limit {
				snapshot = setSnapshot(snapshot, resource, recounted)
				continue
			}
			if err == nil {
				current = recounted
			}
		}

		return nil, s.deny(ctx, restaurantID, pkgerrors.CodeLimitExceeded, "plan limit reached",
			resource.String(), map[string]any{
				"currentPlan":      planName,
				"exceededResource": resource.String(),
				"currentUsage":     current,
				"limit":            limit,
			})
	}

	return &Grant{Plan: *active, Usage: snapshot}, nil
}

// CheckResourceLimit answers "may one more of this resource be created".
// Unlimited ceilings always allow; finite ones allow strictly below the
// limit, after a drift-correcting recount for countable resources.
func (s *service) CheckResourceLimit(ctx context.Context, restaurantID int64, resource enums.ResourceType) (*Quota, error) {
	if restaurantID <= 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "restaurant id is required")
	}
	if !resource.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, fmt.Sprintf("invalid resource type %q", resource))
	}

	active, err := s.plans.ActivePlan(ctx, restaurantID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "resolve active plan")
	}
	if active == nil {
		return nil, s.deny(ctx, restaurantID, pkgerrors.CodeNoActivePlan, "restaurant has no active subscription",
			resource.String(), map[string]any{"restaurantId": restaurantID})
	}
	if active.Subscription.Status != enums.SubscriptionStatusActive {
		return nil, s.deny(ctx, restaurantID, pkgerrors.CodeInactiveSubscription, "subscription is not active",
			resource.String(), map[string]any{
				"currentPlan": active.Plan.Name,
				"status":      active.Subscription.Status.String(),
			})
	}

	limit := active.Plan.LimitFor(resource)
	if limit <= 0 {
		return &Quota{Resource: resource, Current: 0, Limit: limit, Remaining: -1, Unlimited: true}, nil
	}

	snapshot, err := s.usage.CurrentUsage(ctx, restaurantID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load usage snapshot")
	}
	current := snapshot.For(resource)

	if current >= limit && resource.Recountable() {
		recounted, err := s.usage.Recount(ctx, restaurantID, resource)
		if err == nil {
			current = recounted
		}
	}

	if current >= limit {
		return nil, s.deny(ctx, restaurantID, pkgerrors.CodeResourceLimitExceeded, "resource limit reached",
			resource.String(), map[string]any{
				"currentPlan":      active.Plan.Name,
				"exceededResource": resource.String(),
				"currentUsage":     current,
				"limit":            limit,
			})
	}

	return &Quota{
		Resource:  resource,
		Current:   current,
		Limit:     limit,
		Remaining: limit - current,
	}, nil
}

func (s *service) deny(ctx context.Context, restaurantID int64, code pkgerrors.Code, message, resource string, details map[string]any) error {
	s.metrics.IncDenial(string(code), resource)

	logCtx := s.logg.WithFields(ctx, map[string]any{
		"restaurant_id": restaurantID,
		"denial_code":   string(code),
	})
	if resource != "" {
		logCtx = s.logg.WithField(logCtx, "resource", resource)
	}
	s.logg.Warn(logCtx, "entitlement denied")

	return pkgerrors.New(code, message).WithDetails(details)
}

// setSnapshot returns a copy with one counter replaced by its recounted
// value, so the Grant reflects what the deny decision saw.
func setSnapshot(s usage.Snapshot, resource enums.ResourceType, value int64) usage.Snapshot {
	switch resource {
	case enums.ResourceTypeProducts:
		s.Products = value
	case enums.ResourceTypeUsers:
		s.Users = value
	case enums.ResourceTypeBranches:
		s.Branches = value
	case enums.ResourceTypeTransactions:
		s.Transactions = value
	case enums.ResourceTypeStorage:
		s.StorageMB = value
	}
	return s
}
