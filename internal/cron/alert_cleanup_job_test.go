package cron

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/forkasbib/restopos-backend/pkg/logger"
)

type fakeAlertStore struct {
	cutoff  time.Time
	deleted int64
	err     error
}

func (f *fakeAlertStore) DeleteResolvedBefore(_ context.Context, cutoff time.Time) (int64, error) {
	f.cutoff = cutoff
	return f.deleted, f.err
}

func TestAlertCleanupJobUsesRetentionCutoff(t *testing.T) {
	store := &fakeAlertStore{deleted: 4}
	now := time.Date(2025, 8, 31, 12, 0, 0, 0, time.UTC)
	job, err := NewAlertCleanupJob(AlertCleanupJobParams{
		Logger:        logger.New(logger.Options{ServiceName: "test"}),
		Alerts:        store,
		RetentionDays: 30,
		Now:           func() time.Time { return now },
	})
	if err != nil {
		t.Fatalf("construct job: %v", err)
	}

	if err := job.Run(context.Background()); err != nil {
		t.Fatalf("run: %v", err)
	}

	want := time.Date(2025, 8, 1, 12, 0, 0, 0, time.UTC)
	if !store.cutoff.Equal(want) {
		t.Fatalf("expected cutoff %s, got %s", want, store.cutoff)
	}
}

func TestAlertCleanupJobDefaultsRetention(t *testing.T) {
	job, err := NewAlertCleanupJob(AlertCleanupJobParams{
		Logger: logger.New(logger.Options{ServiceName: "test"}),
		Alerts: &fakeAlertStore{},
	})
	if err != nil {
		t.Fatalf("construct job: %v", err)
	}
	if job.retention != defaultAlertRetentionDays {
		t.Fatalf("expected default retention, got %d", job.retention)
	}
}

func TestAlertCleanupJobPropagatesStoreError(t *testing.T) {
	job, err := NewAlertCleanupJob(AlertCleanupJobParams{
		Logger: logger.New(logger.Options{ServiceName: "test"}),
		Alerts: &fakeAlertStore{err: errors.New("db down")},
	})
	if err != nil {
		t.Fatalf("construct job: %v", err)
	}
	if err := job.Run(context.Background()); err == nil {
		t.Fatal("expected error from store")
	}
}
