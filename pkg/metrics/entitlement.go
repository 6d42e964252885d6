package metrics

import "github.com/prometheus/client_golang/prometheus"

// EntitlementMetrics counts plan entitlement denials by code and resource.
type EntitlementMetrics struct {
	denials *prometheus.CounterVec
}

// NewEntitlementMetrics registers the denial counter on the provided registerer.
func NewEntitlementMetrics(reg prometheus.Registerer) *EntitlementMetrics {
	if reg == nil {
		return &EntitlementMetrics{}
	}
	denials := prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "restopos",
		Subsystem: "entitlement",
		Name:      "denials_total",
		Help:      "Entitlement checks denied, by denial code and resource.",
	}, []string{"code", "resource"})
	reg.MustRegister(denials)
	return &EntitlementMetrics{denials: denials}
}

// IncDenial increments the denial counter. Resource may be empty for
// feature or tier denials.
func (e *EntitlementMetrics) IncDenial(code, resource string) {
	if e == nil || e.denials == nil {
		return
	}
	if code == "" {
		code = "unknown"
	}
	if resource == "" {
		resource = "none"
	}
	e.denials.WithLabelValues(code, resource).Inc()
}
