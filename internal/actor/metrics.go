package actor

import (
	"go.opentelemetry.io/otel/attribute"

	"github.com/prometheus/client_golang/prometheus"
)

// metrics holds the actor's Prometheus instrumentation (SPEC_FULL §B):
// command-queue depth, per-command processing latency, and query
// timeout counts. There is no existing custom-metric pattern in the
// teacher to copy verbatim, since it only wires promhttp exposition, so
// these are defined directly against client_golang.
type metrics struct {
	commandLatency *prometheus.HistogramVec
	queueDepth     prometheus.Gauge
	queryTimeouts  prometheus.Counter
}

func newMetrics() *metrics {
	return &metrics{
		commandLatency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "tilecore",
			Subsystem: "actor",
			Name:      "command_duration_seconds",
			Help:      "Time spent handling a single actor command, by command name.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"command"}),
		queueDepth: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "tilecore",
			Subsystem: "actor",
			Name:      "command_queue_depth",
			Help:      "Current depth of the actor's command queue.",
		}),
		queryTimeouts: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "tilecore",
			Subsystem: "actor",
			Name:      "query_timeouts_total",
			Help:      "Number of queries that did not complete within their budget.",
		}),
	}
}

// Collectors returns the metric collectors for registration with a
// prometheus.Registry (internal/rpcapi wires this into its /metrics
// endpoint).
func (m *metrics) Collectors() []prometheus.Collector {
	return []prometheus.Collector{m.commandLatency, m.queueDepth, m.queryTimeouts}
}

type commandTimer struct {
	metrics *metrics
	command string
	timer   *prometheus.Timer
}

func (m *metrics) startCommand(command string) *commandTimer {
	return &commandTimer{
		metrics: m,
		command: command,
		timer:   prometheus.NewTimer(m.commandLatency.WithLabelValues(command)),
	}
}

func (t *commandTimer) observeDone() {
	t.timer.ObserveDuration()
}

func commandNameAttr(name string) attribute.KeyValue {
	return attribute.String("tilecore.command", name)
}

// MetricsCollectors exposes the actor's Prometheus collectors so
// internal/rpcapi can register them against its /metrics endpoint
// without this package depending on an HTTP transport.
func (h *Handle) MetricsCollectors() []prometheus.Collector {
	return h.actor.metrics.Collectors()
}
