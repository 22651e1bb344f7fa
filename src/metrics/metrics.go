// Package metrics provides Prometheus metrics for the forms backend
package metrics

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds the collectors. A nil *Metrics is valid and records nothing.
type Metrics struct {
	SubmissionsCreatedTotal prometheus.Counter
	SubmissionsSweptTotal   prometheus.Counter
	SweepRunsTotal          prometheus.Counter
	SweepErrorsTotal        prometheus.Counter
	HTTPRequestsTotal       *prometheus.CounterVec

	gatherer prometheus.Gatherer
}

// New registers all collectors on reg. Passing nil uses the default registry.
func New(reg *prometheus.Registry) *Metrics {
	var registerer prometheus.Registerer = prometheus.DefaultRegisterer
	var gatherer prometheus.Gatherer = prometheus.DefaultGatherer
	if reg != nil {
		registerer = reg
		gatherer = reg
	}
	factory := promauto.With(registerer)

	return &Metrics{
		SubmissionsCreatedTotal: factory.NewCounter(prometheus.CounterOpts{
			Name: "bizonii_submissions_created_total",
			Help: "Total number of form submissions created",
		}),
		SubmissionsSweptTotal: factory.NewCounter(prometheus.CounterOpts{
			Name: "bizonii_submissions_swept_total",
			Help: "Total number of expired submissions deleted by the retention sweep",
		}),
		SweepRunsTotal: factory.NewCounter(prometheus.CounterOpts{
			Name: "bizonii_sweep_runs_total",
			Help: "Total number of retention sweeps executed",
		}),
		SweepErrorsTotal: factory.NewCounter(prometheus.CounterOpts{
			Name: "bizonii_sweep_errors_total",
			Help: "Total number of retention sweeps that finished with an error",
		}),
		HTTPRequestsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "bizonii_http_requests_total",
			Help: "Total number of HTTP requests",
		}, []string{"method", "status"}),
		gatherer: gatherer,
	}
}

// RecordSubmissionCreated counts one created submission.
func (m *Metrics) RecordSubmissionCreated() {
	if m == nil {
		return
	}
	m.SubmissionsCreatedTotal.Inc()
}

// RecordSweep counts one sweep run and the records it deleted.
func (m *Metrics) RecordSweep(deleted int, err error) {
	if m == nil {
		return
	}
	m.SweepRunsTotal.Inc()
	m.SubmissionsSweptTotal.Add(float64(deleted))
	if err != nil {
		m.SweepErrorsTotal.Inc()
	}
}

// RecordHTTPRequest counts one served request.
func (m *Metrics) RecordHTTPRequest(method, status string) {
	if m == nil {
		return
	}
	m.HTTPRequestsTotal.WithLabelValues(method, status).Inc()
}

// Handler exposes the registry for scraping.
func (m *Metrics) Handler() fiber.Handler {
	return adaptor.HTTPHandler(promhttp.HandlerFor(m.gatherer, promhttp.HandlerOpts{}))
}
