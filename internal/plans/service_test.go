package plans

import (
	"context"
	"errors"
	"testing"

	"github.com/forkasbib/restopos-backend/internal/usage"
	"github.com/forkasbib/restopos-backend/pkg/db/models"
	"github.com/forkasbib/restopos-backend/pkg/enums"
	pkgerrors "github.com/forkasbib/restopos-backend/pkg/errors"
)

type stubPlansRepo struct {
	active    *ActivePlan
	activeErr error
	plans     []models.Plan
	listErr   error

	listedActiveOnly bool
}

func (s *stubPlansRepo) ActivePlan(context.Context, int64) (*ActivePlan, error) {
	return s.active, s.activeErr
}

func (s *stubPlansRepo) ListPlans(_ context.Context, onlyActive bool) ([]models.Plan, error) {
	s.listedActiveOnly = onlyActive
	return s.plans, s.listErr
}

type stubUsageReader struct {
	snapshot usage.Snapshot
	err      error
}

func (s *stubUsageReader) CurrentUsage(context.Context, int64) (usage.Snapshot, error) {
	return s.snapshot, s.err
}

func professionalPlan() models.Plan {
	return models.Plan{
		ID:                   2,
		Name:                 "profesional",
		MaxBranches:          3,
		MaxUsers:             5,
		MaxProducts:          500,
		MaxTransactionsMonth: 2000,
		StorageGB:            5,
	}
}

func TestGetPlanInfoAssemblesResources(t *testing.T) {
	repo := &stubPlansRepo{active: &ActivePlan{
		Plan:         professionalPlan(),
		Subscription: models.Subscription{ID: 11, RestaurantID: 7, Status: enums.SubscriptionStatusActive},
	}}
	usageSvc := &stubUsageReader{snapshot: usage.Snapshot{Products: 42, Users: 5, StorageMB: 100}}

	svc, err := NewService(repo, usageSvc)
	if err != nil {
		t.Fatalf("NewService: %v", err)
	}

	info, err := svc.GetPlanInfo(context.Background(), 7)
	if err != nil {
		t.Fatalf("GetPlanInfo: %v", err)
	}
	if info.Plan.Name != "profesional" {
		t.Fatalf("unexpected plan %q", info.Plan.Name)
	}
	if len(info.Resources) != len(enums.ResourceTypes()) {
		t.Fatalf("expected %d resource rows, got %d", len(enums.ResourceTypes()), len(info.Resources))
	}

	byResource := map[enums.ResourceType]ResourceStatus{}
	for _, row := range info.Resources {
		byResource[row.Resource] = row
	}

	products := byResource[enums.ResourceTypeProducts]
	if products.Current != 42 || products.Limit != 500 || products.Unlimited {
		t.Fatalf("unexpected products status %+v", products)
	}
	storage := byResource[enums.ResourceTypeStorage]
	if storage.Limit != 5*1024 || storage.Current != 100 {
		t.Fatalf("unexpected storage status %+v", storage)
	}
}

func TestGetPlanInfoMarksUnlimitedCeilings(t *testing.T) {
	plan := professionalPlan()
	plan.Name = "enterprise"
	plan.MaxBranches = 0
	plan.MaxUsers = 0
	plan.MaxProducts = 0
	plan.MaxTransactionsMonth = 0
	plan.StorageGB = 0

	repo := &stubPlansRepo{active: &ActivePlan{Plan: plan}}
	svc, err := NewService(repo, &stubUsageReader{})
	if err != nil {
		t.Fatalf("NewService: %v", err)
	}

	info, err := svc.GetPlanInfo(context.Background(), 1)
	if err != nil {
		t.Fatalf("GetPlanInfo: %v", err)
	}
	for _, row := range info.Resources {
		if !row.Unlimited {
			t.Fatalf("resource %s should be unlimited, got %+v", row.Resource, row)
		}
	}
}

func TestGetPlanInfoNoActiveSubscription(t *testing.T) {
	svc, err := NewService(&stubPlansRepo{}, &stubUsageReader{})
	if err != nil {
		t.Fatalf("NewService: %v", err)
	}

	_, err = svc.GetPlanInfo(context.Background(), 9)
	var appErr *pkgerrors.Error
	if !errors.As(err, &appErr) || appErr.Code() != pkgerrors.CodeNoActivePlan {
		t.Fatalf("expected NO_ACTIVE_PLAN, got %v", err)
	}
	details, ok := appErr.Details().(map[string]any)
	if !ok || details["restaurantId"] != int64(9) {
		t.Fatalf("expected restaurant id in details, got %+v", appErr.Details())
	}
}

func TestGetPlanInfoValidatesRestaurantID(t *testing.T) {
	svc, err := NewService(&stubPlansRepo{}, &stubUsageReader{})
	if err != nil {
		t.Fatalf("NewService: %v", err)
	}

	_, err = svc.GetPlanInfo(context.Background(), 0)
	var appErr *pkgerrors.Error
	if !errors.As(err, &appErr) || appErr.Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestGetPlanInfoWrapsRepoFailure(t *testing.T) {
	repo := &stubPlansRepo{activeErr: errors.New("timeout")}
	svc, err := NewService(repo, &stubUsageReader{})
	if err != nil {
		t.Fatalf("NewService: %v", err)
	}

	_, err = svc.GetPlanInfo(context.Background(), 1)
	var appErr *pkgerrors.Error
	if !errors.As(err, &appErr) || appErr.Code() != pkgerrors.CodeDependency {
		t.Fatalf("expected dependency error, got %v", err)
	}
}

func TestListPlansOnlyActive(t *testing.T) {
	repo := &stubPlansRepo{plans: []models.Plan{professionalPlan()}}
	svc, err := NewService(repo, &stubUsageReader{})
	if err != nil {
		t.Fatalf("NewService: %v", err)
	}

	rows, err := svc.ListPlans(context.Background())
	if err != nil {
		t.Fatalf("ListPlans: %v", err)
	}
	if len(rows) != 1 {
		t.Fatalf("expected 1 plan, got %d", len(rows))
	}
	if !repo.listedActiveOnly {
		t.Fatal("catalog listing should only include active plans")
	}
}
