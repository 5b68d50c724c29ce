package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "visionpipe"

// Pipeline counts what happened to each polled message.
type Pipeline struct {
	Received   prometheus.Counter
	EmptyPolls prometheus.Counter
	Skipped    prometheus.Counter
	Saved      prometheus.Counter
	Failures   *prometheus.CounterVec
	Duration   prometheus.Histogram
}

func NewPipeline(reg prometheus.Registerer) *Pipeline {
	factory := promauto.With(reg)

	return &Pipeline{
		Received: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "messages_received_total",
			Help:      "Queue messages received.",
		}),
		EmptyPolls: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "empty_polls_total",
			Help:      "Receive calls that returned no message.",
		}),
		Skipped: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "messages_skipped_total",
			Help:      "Messages without a usable bucket or key.",
		}),
		Saved: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "results_saved_total",
			Help:      "Label results written to the result store.",
		}),
		Failures: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "failures_total",
			Help:      "Failures by pipeline stage.",
		}, []string{"stage"}),
		Duration: factory.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "processing_duration_seconds",
			Help:      "Time from receipt to saved result.",
			Buckets:   prometheus.DefBuckets,
		}),
	}
}

// Fail is nil-safe so collaborators can run without metrics.
func (p *Pipeline) Fail(stage string) {
	if p == nil {
		return
	}
	p.Failures.WithLabelValues(stage).Inc()
}

func (p *Pipeline) Observe(start time.Time) {
	if p == nil {
		return
	}
	p.Duration.Observe(time.Since(start).Seconds())
}

func (p *Pipeline) MessageReceived() {
	if p == nil {
		return
	}
	p.Received.Inc()
}

func (p *Pipeline) EmptyPoll() {
	if p == nil {
		return
	}
	p.EmptyPolls.Inc()
}

func (p *Pipeline) MessageSkipped() {
	if p == nil {
		return
	}
	p.Skipped.Inc()
}

func (p *Pipeline) ResultSaved() {
	if p == nil {
		return
	}
	p.Saved.Inc()
}
