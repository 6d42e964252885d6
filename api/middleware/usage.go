package middleware

import (
	"context"
	"net/http"

	"github.com/forkasbib/restopos-backend/internal/usage"
	"github.com/forkasbib/restopos-backend/pkg/enums"
	"github.com/forkasbib/restopos-backend/pkg/logger"
)

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}

func (r *statusRecorder) succeeded() bool {
	return r.status >= 200 && r.status < 300
}

type alertEvaluator interface {
	EvaluateAndAlert(ctx context.Context, restaurantID int64) error
}

// TrackUsage bumps the resource counter after the handler commits a
// creation. Counter failures are logged and swallowed: metering must not
// undo work the handler already persisted.
func TrackUsage(meter usage.Service, logg *logger.Logger, resource enums.ResourceType) func(http.Handler) http.Handler {
	return afterSuccess(logg, func(ctx context.Context, restaurantID int64) error {
		return meter.Increment(ctx, restaurantID, resource, 1)
	}, "usage.track_failed")
}

// RecountUsage reconciles the resource counter from its source table after
// a destructive handler succeeds.
func RecountUsage(meter usage.Service, logg *logger.Logger, resource enums.ResourceType) func(http.Handler) http.Handler {
	return afterSuccess(logg, func(ctx context.Context, restaurantID int64) error {
		_, err := meter.Recount(ctx, restaurantID, resource)
		return err
	}, "usage.recount_failed")
}

// EvaluateAlerts refreshes limit alerts for the tenant after a successful
// mutation, so threshold crossings surface without waiting for the sweep.
func EvaluateAlerts(evaluator alertEvaluator, logg *logger.Logger) func(http.Handler) http.Handler {
	return afterSuccess(logg, evaluator.EvaluateAndAlert, "alerts.evaluate_failed")
}

func afterSuccess(logg *logger.Logger, fn func(context.Context, int64) error, failureMsg string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			rec := &statusRecorder{ResponseWriter: w}
			next.ServeHTTP(rec, r)

			if rec.status == 0 {
				rec.status = http.StatusOK
			}
			if !rec.succeeded() {
				return
			}

			ctx := r.Context()
			restaurantID := RestaurantIDFromContext(ctx)
			if restaurantID <= 0 {
				return
			}
			if err := fn(ctx, restaurantID); err != nil && logg != nil {
				logg.Error(ctx, failureMsg, err)
			}
		})
	}
}
