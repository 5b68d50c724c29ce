package metrics

import (
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPipelineCounters(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewPipeline(reg)

	m.MessageReceived()
	m.MessageReceived()
	m.EmptyPoll()
	m.MessageSkipped()
	m.ResultSaved()
	m.Fail("detect")
	m.Fail("detect")
	m.Fail("save")
	m.Observe(time.Now())

	assert.Equal(t, 2.0, testutil.ToFloat64(m.Received))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.EmptyPolls))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.Skipped))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.Saved))
	assert.Equal(t, 2.0, testutil.ToFloat64(m.Failures.WithLabelValues("detect")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.Failures.WithLabelValues("save")))

	expected := `
# HELP visionpipe_results_saved_total Label results written to the result store.
# TYPE visionpipe_results_saved_total counter
visionpipe_results_saved_total 1
`
	require.NoError(t, testutil.GatherAndCompare(reg, strings.NewReader(expected), "visionpipe_results_saved_total"))
}

func TestNilPipelineIsNoop(t *testing.T) {
	var m *Pipeline
	assert.NotPanics(t, func() {
		m.MessageReceived()
		m.EmptyPoll()
		m.MessageSkipped()
		m.ResultSaved()
		m.Fail("receive")
		m.Observe(time.Now())
	})
}
