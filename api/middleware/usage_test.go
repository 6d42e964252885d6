package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/forkasbib/restopos-backend/internal/usage"
	"github.com/forkasbib/restopos-backend/pkg/enums"
)

type stubMeter struct {
	increments []enums.ResourceType
	recounts   []enums.ResourceType
	tenant     int64
	err        error
}

func (s *stubMeter) Increment(_ context.Context, restaurantID int64, resource enums.ResourceType, amount int64) error {
	s.tenant = restaurantID
	s.increments = append(s.increments, resource)
	return s.err
}

func (s *stubMeter) Decrement(context.Context, int64, enums.ResourceType, int64) error { return nil }

func (s *stubMeter) Recount(_ context.Context, restaurantID int64, resource enums.ResourceType) (int64, error) {
	s.tenant = restaurantID
	s.recounts = append(s.recounts, resource)
	return 0, s.err
}

func (s *stubMeter) CurrentUsage(context.Context, int64) (usage.Snapshot, error) {
	return usage.Snapshot{}, nil
}

type stubEvaluator struct {
	evaluated []int64
	err       error
}

func (s *stubEvaluator) EvaluateAndAlert(_ context.Context, restaurantID int64) error {
	s.evaluated = append(s.evaluated, restaurantID)
	return s.err
}

func tenantRequest(method string) *http.Request {
	req := httptest.NewRequest(method, "/", nil)
	return req.WithContext(WithRestaurantID(req.Context(), 9))
}

func TestTrackUsageIncrementsAfterSuccess(t *testing.T) {
	meter := &stubMeter{}
	handler := TrackUsage(meter, nil, enums.ResourceTypeProducts)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusCreated)
	}))

	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, tenantRequest(http.MethodPost))

	if len(meter.increments) != 1 || meter.increments[0] != enums.ResourceTypeProducts {
		t.Fatalf("expected one product increment, got %+v", meter.increments)
	}
	if meter.tenant != 9 {
		t.Fatalf("expected tenant 9, got %d", meter.tenant)
	}
}

func TestTrackUsageSkipsFailedRequests(t *testing.T) {
	meter := &stubMeter{}
	handler := TrackUsage(meter, nil, enums.ResourceTypeProducts)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
	}))

	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, tenantRequest(http.MethodPost))

	if len(meter.increments) != 0 {
		t.Fatalf("expected no increment on 4xx, got %+v", meter.increments)
	}
}

func TestTrackUsageImplicitOKCountsAsSuccess(t *testing.T) {
	meter := &stubMeter{}
	handler := TrackUsage(meter, nil, enums.ResourceTypeUsers)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// handler writes body without an explicit WriteHeader
		_, _ = w.Write([]byte(`{}`))
	}))

	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, tenantRequest(http.MethodPost))

	if len(meter.increments) != 1 {
		t.Fatalf("expected increment on implicit 200, got %+v", meter.increments)
	}
}

func TestTrackUsageSwallowsMeterFailure(t *testing.T) {
	meter := &stubMeter{err: errors.New("counter down")}
	handler := TrackUsage(meter, nil, enums.ResourceTypeProducts)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusCreated)
	}))

	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, tenantRequest(http.MethodPost))

	if resp.Code != http.StatusCreated {
		t.Fatalf("metering failure must not change the response, got %d", resp.Code)
	}
}

func TestRecountUsageRunsAfterDelete(t *testing.T) {
	meter := &stubMeter{}
	handler := RecountUsage(meter, nil, enums.ResourceTypeUsers)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, tenantRequest(http.MethodDelete))

	if len(meter.recounts) != 1 || meter.recounts[0] != enums.ResourceTypeUsers {
		t.Fatalf("expected one user recount, got %+v", meter.recounts)
	}
}

func TestEvaluateAlertsRunsPerTenant(t *testing.T) {
	evaluator := &stubEvaluator{}
	handler := EvaluateAlerts(evaluator, nil)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusCreated)
	}))

	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, tenantRequest(http.MethodPost))

	if len(evaluator.evaluated) != 1 || evaluator.evaluated[0] != 9 {
		t.Fatalf("expected evaluation for tenant 9, got %+v", evaluator.evaluated)
	}
}

type journalMeter struct {
	calls *[]string
}

func (j *journalMeter) Increment(context.Context, int64, enums.ResourceType, int64) error {
	*j.calls = append(*j.calls, "increment")
	return nil
}

func (j *journalMeter) Decrement(context.Context, int64, enums.ResourceType, int64) error {
	*j.calls = append(*j.calls, "decrement")
	return nil
}

func (j *journalMeter) Recount(context.Context, int64, enums.ResourceType) (int64, error) {
	*j.calls = append(*j.calls, "recount")
	return 0, nil
}

func (j *journalMeter) CurrentUsage(context.Context, int64) (usage.Snapshot, error) {
	return usage.Snapshot{}, nil
}

type journalEvaluator struct {
	calls *[]string
}

func (j *journalEvaluator) EvaluateAndAlert(context.Context, int64) error {
	*j.calls = append(*j.calls, "evaluate")
	return nil
}

// The creation chains nest the counter hook inside the alert hook, so the
// evaluator must observe the freshly incremented counter.
func TestAlertEvaluationSeesIncrementedCounter(t *testing.T) {
	var calls []string
	meter := &journalMeter{calls: &calls}
	evaluator := &journalEvaluator{calls: &calls}

	handler := EvaluateAlerts(evaluator, nil)(
		TrackUsage(meter, nil, enums.ResourceTypeProducts)(
			http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusCreated)
			})))

	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, tenantRequest(http.MethodPost))

	if len(calls) != 2 || calls[0] != "increment" || calls[1] != "evaluate" {
		t.Fatalf("expected increment then evaluate, got %v", calls)
	}
}

func TestAlertEvaluationSeesRecountedCounter(t *testing.T) {
	var calls []string
	meter := &journalMeter{calls: &calls}
	evaluator := &journalEvaluator{calls: &calls}

	handler := EvaluateAlerts(evaluator, nil)(
		RecountUsage(meter, nil, enums.ResourceTypeUsers)(
			http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusOK)
			})))

	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, tenantRequest(http.MethodDelete))

	if len(calls) != 2 || calls[0] != "recount" || calls[1] != "evaluate" {
		t.Fatalf("expected recount then evaluate, got %v", calls)
	}
}

func TestEvaluateAlertsSkipsWithoutTenant(t *testing.T) {
	evaluator := &stubEvaluator{}
	handler := EvaluateAlerts(evaluator, nil)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, httptest.NewRequest(http.MethodPost, "/", nil))

	if len(evaluator.evaluated) != 0 {
		t.Fatalf("expected no evaluation without tenant, got %+v", evaluator.evaluated)
	}
}
