package cron

import (
	"context"
	"errors"
	"testing"

	"github.com/forkasbib/restopos-backend/pkg/enums"
	"github.com/forkasbib/restopos-backend/pkg/logger"
)

type fakeSubscriberLister struct {
	ids []int64
	err error
}

func (f *fakeSubscriberLister) ActiveRestaurantIDs(context.Context) ([]int64, error) {
	return f.ids, f.err
}

type recountCall struct {
	restaurantID int64
	resource     enums.ResourceType
}

type fakeRecounter struct {
	calls   []recountCall
	failFor map[int64]error
}

func (f *fakeRecounter) Recount(_ context.Context, restaurantID int64, resource enums.ResourceType) (int64, error) {
	f.calls = append(f.calls, recountCall{restaurantID, resource})
	if err, ok := f.failFor[restaurantID]; ok {
		return 0, err
	}
	return 1, nil
}

type fakeEvaluator struct {
	evaluated []int64
}

func (f *fakeEvaluator) EvaluateAndAlert(_ context.Context, restaurantID int64) error {
	f.evaluated = append(f.evaluated, restaurantID)
	return nil
}

func newRecountJob(t *testing.T, lister *fakeSubscriberLister, recounter *fakeRecounter, evaluator alertEvaluator) *UsageRecountJob {
	t.Helper()
	job, err := NewUsageRecountJob(UsageRecountJobParams{
		Logger: logger.New(logger.Options{ServiceName: "test"}),
		Plans:  lister,
		Usage:  recounter,
		Alerts: evaluator,
	})
	if err != nil {
		t.Fatalf("construct job: %v", err)
	}
	return job
}

func TestUsageRecountJobSweepsCountableResources(t *testing.T) {
	recounter := &fakeRecounter{}
	evaluator := &fakeEvaluator{}
	job := newRecountJob(t, &fakeSubscriberLister{ids: []int64{1, 2}}, recounter, evaluator)

	if err := job.Run(context.Background()); err != nil {
		t.Fatalf("run: %v", err)
	}

	// three countable resources per restaurant, transactions and storage skipped
	if len(recounter.calls) != 6 {
		t.Fatalf("expected 6 recounts, got %d", len(recounter.calls))
	}
	for _, call := range recounter.calls {
		if !call.resource.Recountable() {
			t.Fatalf("resource %s should not be recounted", call.resource)
		}
	}
	if len(evaluator.evaluated) != 2 {
		t.Fatalf("expected alert evaluation per restaurant, got %+v", evaluator.evaluated)
	}
}

func TestUsageRecountJobContinuesPastFailures(t *testing.T) {
	recounter := &fakeRecounter{failFor: map[int64]error{1: errors.New("boom")}}
	job := newRecountJob(t, &fakeSubscriberLister{ids: []int64{1, 2}}, recounter, nil)

	err := job.Run(context.Background())
	if err == nil {
		t.Fatal("expected aggregated error")
	}

	// restaurant 2 still swept despite restaurant 1 failing
	var swept int
	for _, call := range recounter.calls {
		if call.restaurantID == 2 {
			swept++
		}
	}
	if swept != 3 {
		t.Fatalf("expected restaurant 2 fully swept, got %d recounts", swept)
	}
}

func TestUsageRecountJobWithoutEvaluator(t *testing.T) {
	job := newRecountJob(t, &fakeSubscriberLister{ids: []int64{5}}, &fakeRecounter{}, nil)
	if err := job.Run(context.Background()); err != nil {
		t.Fatalf("run: %v", err)
	}
}
