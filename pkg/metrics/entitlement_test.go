package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
)

func TestEntitlementMetricsCountsDenials(t *testing.T) {
	reg := prometheus.NewRegistry()
	metrics := NewEntitlementMetrics(reg)

	metrics.IncDenial("LIMIT_EXCEEDED", "productos")
	metrics.IncDenial("LIMIT_EXCEEDED", "productos")
	metrics.IncDenial("FEATURE_NOT_AVAILABLE", "")

	mfs, err := reg.Gather()
	if err != nil {
		t.Fatalf("gather metrics: %v", err)
	}

	if got, err := fetchCounterValue(mfs, "restopos_entitlement_denials_total", "resource", "productos"); err != nil {
		t.Fatalf("fetch limit denials: %v", err)
	} else if got != 2 {
		t.Fatalf("expected 2 limit denials, got %f", got)
	}

	if got, err := fetchCounterValue(mfs, "restopos_entitlement_denials_total", "resource", "none"); err != nil {
		t.Fatalf("fetch feature denials: %v", err)
	} else if got != 1 {
		t.Fatalf("expected 1 feature denial, got %f", got)
	}
}

func TestEntitlementMetricsNilSafe(t *testing.T) {
	var metrics *EntitlementMetrics
	metrics.IncDenial("NO_ACTIVE_PLAN", "")

	empty := NewEntitlementMetrics(nil)
	empty.IncDenial("NO_ACTIVE_PLAN", "")
}
