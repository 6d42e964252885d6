package cron

import (
	"context"
	"errors"
	"io"
	"testing"

	"github.com/forkasbib/restopos-backend/pkg/logger"
)

type fakeLock struct {
	held     bool
	acquires int
}

func (f *fakeLock) Acquire(context.Context) (bool, error) {
	f.acquires++
	if f.held {
		return false, nil
	}
	f.held = true
	return true, nil
}

func (f *fakeLock) Release(context.Context) error {
	f.held = false
	return nil
}

type testJob struct {
	name string
	err  error
	runs int
}

func (t *testJob) Name() string { return t.name }

func (t *testJob) Run(context.Context) error {
	t.runs++
	return t.err
}

func testCronLogger() *logger.Logger {
	return logger.New(logger.Options{ServiceName: "cron-test", Output: io.Discard})
}

func TestServiceCycleRunsAllJobsEvenOnFailure(t *testing.T) {
	okJob := &testJob{name: "recount"}
	badJob := &testJob{name: "cleanup", err: errors.New("boom")}

	service, err := NewService(ServiceParams{
		Logger:   testCronLogger(),
		Registry: NewRegistry(okJob, badJob),
		Lock:     &fakeLock{},
	})
	if err != nil {
		t.Fatalf("construct service: %v", err)
	}

	service.cycle(context.Background())

	if okJob.runs != 1 {
		t.Fatalf("expected recount job to run once, ran %d", okJob.runs)
	}
	if badJob.runs != 1 {
		t.Fatalf("a failing job must not stop the cycle; cleanup ran %d times", badJob.runs)
	}
}

func TestServiceCycleSkipsWhenLockHeldElsewhere(t *testing.T) {
	job := &testJob{name: "recount"}
	lock := &fakeLock{held: true}

	service, err := NewService(ServiceParams{
		Logger:   testCronLogger(),
		Registry: NewRegistry(job),
		Lock:     lock,
	})
	if err != nil {
		t.Fatalf("construct service: %v", err)
	}

	service.cycle(context.Background())

	if job.runs != 0 {
		t.Fatalf("jobs must not run without the lock, ran %d", job.runs)
	}
	if lock.acquires != 1 {
		t.Fatalf("expected a single acquire attempt, got %d", lock.acquires)
	}
}

func TestNewServiceRequiresLock(t *testing.T) {
	if _, err := NewService(ServiceParams{Logger: testCronLogger()}); err == nil {
		t.Fatal("expected error when lock is missing")
	}
}
