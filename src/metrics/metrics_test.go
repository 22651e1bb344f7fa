package metrics

import (
	"errors"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestRecordSweep(t *testing.T) {
	m := New(prometheus.NewRegistry())

	m.RecordSweep(3, nil)
	m.RecordSweep(2, errors.New("partial"))

	assert.Equal(t, 2.0, testutil.ToFloat64(m.SweepRunsTotal))
	assert.Equal(t, 5.0, testutil.ToFloat64(m.SubmissionsSweptTotal))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.SweepErrorsTotal))
}

func TestNilMetricsIsNoop(t *testing.T) {
	var m *Metrics
	assert.NotPanics(t, func() {
		m.RecordSubmissionCreated()
		m.RecordSweep(1, nil)
		m.RecordHTTPRequest("GET", "200")
	})
}
