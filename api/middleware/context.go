package middleware

import (
	"context"

	"github.com/forkasbib/restopos-backend/internal/entitlement"
	"github.com/forkasbib/restopos-backend/pkg/enums"
)

type contextKey string

const (
	ctxUserID       contextKey = "user_id"
	ctxRestaurantID contextKey = "restaurant_id"
	ctxBranchID     contextKey = "branch_id"
	ctxRole         contextKey = "actor_role"
	ctxGrant        contextKey = "plan_grant"
)

func UserIDFromContext(ctx context.Context) int64 {
	if ctx == nil {
		return 0
	}
	if v, ok := ctx.Value(ctxUserID).(int64); ok {
		return v
	}
	return 0
}

func RestaurantIDFromContext(ctx context.Context) int64 {
	if ctx == nil {
		return 0
	}
	if v, ok := ctx.Value(ctxRestaurantID).(int64); ok {
		return v
	}
	return 0
}

func BranchIDFromContext(ctx context.Context) *int64 {
	if ctx == nil {
		return nil
	}
	if v, ok := ctx.Value(ctxBranchID).(int64); ok {
		return &v
	}
	return nil
}

func RoleFromContext(ctx context.Context) enums.StaffRole {
	if ctx == nil {
		return ""
	}
	if v, ok := ctx.Value(ctxRole).(enums.StaffRole); ok {
		return v
	}
	return ""
}

// GrantFromContext returns the plan grant stashed by the entitlement
// middleware, or nil when no plan check ran on this route.
func GrantFromContext(ctx context.Context) *entitlement.Grant {
	if ctx == nil {
		return nil
	}
	if v, ok := ctx.Value(ctxGrant).(*entitlement.Grant); ok {
		return v
	}
	return nil
}

// WithUserID injects the staff identifier into the context.
func WithUserID(ctx context.Context, userID int64) context.Context {
	if ctx == nil {
		ctx = context.Background()
	}
	return context.WithValue(ctx, ctxUserID, userID)
}

// WithRestaurantID injects the tenant identifier into the context.
func WithRestaurantID(ctx context.Context, restaurantID int64) context.Context {
	if ctx == nil {
		ctx = context.Background()
	}
	return context.WithValue(ctx, ctxRestaurantID, restaurantID)
}

// WithRole injects the staff role into the context.
func WithRole(ctx context.Context, role enums.StaffRole) context.Context {
	if ctx == nil {
		ctx = context.Background()
	}
	return context.WithValue(ctx, ctxRole, role)
}

func withGrant(ctx context.Context, grant *entitlement.Grant) context.Context {
	return context.WithValue(ctx, ctxGrant, grant)
}
