package middleware

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/forkasbib/restopos-backend/internal/entitlement"
	"github.com/forkasbib/restopos-backend/internal/plans"
	"github.com/forkasbib/restopos-backend/internal/usage"
	"github.com/forkasbib/restopos-backend/pkg/enums"
	pkgerrors "github.com/forkasbib/restopos-backend/pkg/errors"
)

type stubEntitlement struct {
	grant      *entitlement.Grant
	quota      *entitlement.Quota
	accessErr  error
	limitErr   error
	lastReq    entitlement.Requirement
	lastTenant int64
}

func (s *stubEntitlement) CheckAccess(_ context.Context, restaurantID int64, req entitlement.Requirement) (*entitlement.Grant, error) {
	s.lastTenant = restaurantID
	s.lastReq = req
	if s.accessErr != nil {
		return nil, s.accessErr
	}
	return s.grant, nil
}

func (s *stubEntitlement) CheckResourceLimit(_ context.Context, restaurantID int64, _ enums.ResourceType) (*entitlement.Quota, error) {
	s.lastTenant = restaurantID
	if s.limitErr != nil {
		return nil, s.limitErr
	}
	return s.quota, nil
}

func decodeErrorCode(t *testing.T, body []byte) string {
	t.Helper()
	var payload struct {
		Error struct {
			Code string `json:"code"`
		} `json:"error"`
	}
	if err := json.Unmarshal(body, &payload); err != nil {
		t.Fatalf("decode error envelope: %v", err)
	}
	return payload.Error.Code
}

func TestRequirePlanStashesGrant(t *testing.T) {
	checker := &stubEntitlement{grant: &entitlement.Grant{
		Plan:  plans.ActivePlan{},
		Usage: usage.Snapshot{Products: 3},
	}}

	var seen *entitlement.Grant
	handler := RequirePlan(checker, nil, entitlement.Requirement{Feature: "inventory.products"})(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = GrantFromContext(r.Context())
		w.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req = req.WithContext(WithRestaurantID(req.Context(), 7))
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.Code)
	}
	if checker.lastTenant != 7 {
		t.Fatalf("expected tenant 7, got %d", checker.lastTenant)
	}
	if checker.lastReq.Feature != "inventory.products" {
		t.Fatalf("unexpected requirement: %+v", checker.lastReq)
	}
	if seen == nil || seen.Usage.Products != 3 {
		t.Fatalf("expected grant in handler context, got %+v", seen)
	}
}

func TestRequirePlanWithoutTenantContext(t *testing.T) {
	checker := &stubEntitlement{grant: &entitlement.Grant{}}
	handler := RequirePlan(checker, nil, entitlement.Requirement{})(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("handler should not run")
	}))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)

	if resp.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", resp.Code)
	}
}

func TestRequirePlanPassesDenialThrough(t *testing.T) {
	denial := pkgerrors.New(pkgerrors.CodeFeatureNotAvailable, "analytics requires a higher plan").
		WithDetails(map[string]any{"currentPlan": "basico", "requiredFeature": "analytics"})
	checker := &stubEntitlement{accessErr: denial}

	handler := RequirePlan(checker, nil, entitlement.Requirement{Feature: "analytics"})(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("handler should not run")
	}))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req = req.WithContext(WithRestaurantID(req.Context(), 4))
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)

	if resp.Code != http.StatusForbidden {
		t.Fatalf("expected 403, got %d", resp.Code)
	}
	if code := decodeErrorCode(t, resp.Body.Bytes()); code != string(pkgerrors.CodeFeatureNotAvailable) {
		t.Fatalf("unexpected code %s", code)
	}
}

func TestRequireResourceCapacityDeniesAtCeiling(t *testing.T) {
	denial := pkgerrors.New(pkgerrors.CodeResourceLimitExceeded, "product limit reached").
		WithDetails(map[string]any{"exceededResource": "productos", "currentUsage": int64(100), "limit": int64(100)})
	checker := &stubEntitlement{limitErr: denial}

	handler := RequireResourceCapacity(checker, nil, enums.ResourceTypeProducts)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("handler should not run")
	}))

	req := httptest.NewRequest(http.MethodPost, "/", nil)
	req = req.WithContext(WithRestaurantID(req.Context(), 4))
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)

	if resp.Code != http.StatusForbidden {
		t.Fatalf("expected 403, got %d", resp.Code)
	}
	if code := decodeErrorCode(t, resp.Body.Bytes()); code != string(pkgerrors.CodeResourceLimitExceeded) {
		t.Fatalf("unexpected code %s", code)
	}
}

func TestRequireResourceCapacityAllowsHeadroom(t *testing.T) {
	checker := &stubEntitlement{quota: &entitlement.Quota{Resource: enums.ResourceTypeProducts, Current: 3, Limit: 100, Remaining: 97}}

	handler := RequireResourceCapacity(checker, nil, enums.ResourceTypeProducts)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusCreated)
	}))

	req := httptest.NewRequest(http.MethodPost, "/", nil)
	req = req.WithContext(WithRestaurantID(req.Context(), 4))
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)

	if resp.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", resp.Code)
	}
}
