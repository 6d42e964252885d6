package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// CronJobMetrics tracks maintenance job outcomes and latency. A nil
// registerer yields a no-op collector so tests and one-off tools can
// skip registration.
type CronJobMetrics struct {
	duration *prometheus.HistogramVec
	runs     *prometheus.CounterVec
}

func NewCronJobMetrics(reg prometheus.Registerer) *CronJobMetrics {
	if reg == nil {
		return &CronJobMetrics{}
	}

	duration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "restopos",
		Subsystem: "cron",
		Name:      "job_duration_seconds",
		Help:      "Wall-clock duration of maintenance jobs.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"job"})

	runs := prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "restopos",
		Subsystem: "cron",
		Name:      "job_runs_total",
		Help:      "Maintenance job executions by outcome.",
	}, []string{"job", "result"})

	reg.MustRegister(duration, runs)
	return &CronJobMetrics{duration: duration, runs: runs}
}

func (c *CronJobMetrics) ObserveDuration(job string, elapsed time.Duration) {
	if c == nil || c.duration == nil {
		return
	}
	c.duration.WithLabelValues(jobLabel(job)).Observe(elapsed.Seconds())
}

func (c *CronJobMetrics) IncSuccess(job string) {
	c.incRun(job, "success")
}

func (c *CronJobMetrics) IncFailure(job string) {
	c.incRun(job, "failure")
}

func (c *CronJobMetrics) incRun(job, result string) {
	if c == nil || c.runs == nil {
		return
	}
	c.runs.WithLabelValues(jobLabel(job), result).Inc()
}

func jobLabel(job string) string {
	if job == "" {
		return "unknown"
	}
	return job
}
