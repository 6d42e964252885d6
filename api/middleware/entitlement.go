package middleware

import (
	"net/http"

	"github.com/forkasbib/restopos-backend/api/responses"
	"github.com/forkasbib/restopos-backend/internal/entitlement"
	"github.com/forkasbib/restopos-backend/pkg/enums"
	pkgerrors "github.com/forkasbib/restopos-backend/pkg/errors"
	"github.com/forkasbib/restopos-backend/pkg/logger"
)

// RequirePlan gates the route on the tenant's subscription: the plan must
// exist and be active, satisfy the tier and feature demands, and every
// finite ceiling must have headroom. The resolved grant is stashed in the
// context for the handler.
func RequirePlan(checker entitlement.Service, logg *logger.Logger, req entitlement.Requirement) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()
			restaurantID := RestaurantIDFromContext(ctx)
			if restaurantID <= 0 {
				responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeUnauthorized, "restaurant context missing"))
				return
			}

			grant, err := checker.CheckAccess(ctx, restaurantID, req)
			if err != nil {
				responses.WriteError(ctx, logg, w, err)
				return
			}

			next.ServeHTTP(w, r.WithContext(withGrant(ctx, grant)))
		})
	}
}

// RequireResourceCapacity blocks creation routes once the named resource is
// at its plan ceiling. Stale counters are recounted before a hard deny.
func RequireResourceCapacity(checker entitlement.Service, logg *logger.Logger, resource enums.ResourceType) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()
			restaurantID := RestaurantIDFromContext(ctx)
			if restaurantID <= 0 {
				responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeUnauthorized, "restaurant context missing"))
				return
			}

			if _, err := checker.CheckResourceLimit(ctx, restaurantID, resource); err != nil {
				responses.WriteError(ctx, logg, w, err)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
