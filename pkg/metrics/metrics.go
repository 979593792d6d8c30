// Package metrics exposes Prometheus metrics for the Loom kernel and
// session server.
//
// Metrics are registered lazily on first use against the default
// registerer, or explicitly with Init for a custom registry. All
// Record* helpers are safe to call before initialization; they become
// no-ops when metrics are disabled.
package metrics

import (
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Config configures metric registration.
type Config struct {
	// Namespace is the metrics namespace (default: "loom").
	Namespace string

	// ConstLabels are constant labels added to all metrics.
	ConstLabels prometheus.Labels

	// Buckets are the histogram buckets for durations.
	// Default: prometheus.DefBuckets
	Buckets []float64

	// Registry is the Prometheus registry to use.
	// Default: prometheus.DefaultRegisterer
	Registry prometheus.Registerer
}

// defaultConfig returns the default metrics configuration.
func defaultConfig() Config {
	return Config{
		Namespace: "loom",
		Buckets:   prometheus.DefBuckets,
		Registry:  prometheus.DefaultRegisterer,
	}
}

// collector holds the Prometheus metrics for Loom.
type collector struct {
	commandsTotal   *prometheus.CounterVec
	commandDuration *prometheus.HistogramVec
	missingHandlers *prometheus.CounterVec
	rendersTotal    prometheus.Counter
	renderDuration  prometheus.Histogram
	mountedNodes    prometheus.Gauge
	activeListeners prometheus.Gauge
	activeSessions  prometheus.Gauge
	opsSent         prometheus.Counter
}

var (
	global     *collector
	globalOnce sync.Once
	globalMu   sync.Mutex
)

// Init registers the metrics with the given configuration. Calling Init
// after metrics have already been registered has no effect.
func Init(config Config) {
	globalMu.Lock()
	defer globalMu.Unlock()
	if global == nil {
		if config.Namespace == "" {
			config.Namespace = "loom"
		}
		if config.Buckets == nil {
			config.Buckets = prometheus.DefBuckets
		}
		if config.Registry == nil {
			config.Registry = prometheus.DefaultRegisterer
		}
		global = newCollector(config)
	}
}

// get returns the global collector, registering defaults on first use.
func get() *collector {
	globalOnce.Do(func() {
		globalMu.Lock()
		defer globalMu.Unlock()
		if global == nil {
			global = newCollector(defaultConfig())
		}
	})
	return global
}

func newCollector(config Config) *collector {
	factory := promauto.With(config.Registry)

	return &collector{
		commandsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Name:        "commands_total",
			Help:        "Total number of dispatched commands",
			ConstLabels: config.ConstLabels,
		}, []string{"command", "status"}),

		commandDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace:   config.Namespace,
			Name:        "command_duration_seconds",
			Help:        "Command dispatch duration in seconds, including the render pass",
			ConstLabels: config.ConstLabels,
			Buckets:     config.Buckets,
		}, []string{"command"}),

		missingHandlers: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Name:        "missing_handlers_total",
			Help:        "Dispatches to commands with zero subscribers",
			ConstLabels: config.ConstLabels,
		}, []string{"command"}),

		rendersTotal: factory.NewCounter(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Name:        "renders_total",
			Help:        "Total number of full render passes",
			ConstLabels: config.ConstLabels,
		}),

		renderDuration: factory.NewHistogram(prometheus.HistogramOpts{
			Namespace:   config.Namespace,
			Name:        "render_duration_seconds",
			Help:        "Destroy-and-remount render pass duration in seconds",
			ConstLabels: config.ConstLabels,
			Buckets:     config.Buckets,
		}),

		mountedNodes: factory.NewGauge(prometheus.GaugeOpts{
			Namespace:   config.Namespace,
			Name:        "mounted_nodes",
			Help:        "Virtual nodes currently holding a live back-reference",
			ConstLabels: config.ConstLabels,
		}),

		activeListeners: factory.NewGauge(prometheus.GaugeOpts{
			Namespace:   config.Namespace,
			Name:        "active_listeners",
			Help:        "Event listener registrations currently held by mount engines",
			ConstLabels: config.ConstLabels,
		}),

		activeSessions: factory.NewGauge(prometheus.GaugeOpts{
			Namespace:   config.Namespace,
			Name:        "active_sessions",
			Help:        "Number of active WebSocket sessions",
			ConstLabels: config.ConstLabels,
		}),

		opsSent: factory.NewCounter(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Name:        "ops_sent_total",
			Help:        "Total number of tree operations streamed to clients",
			ConstLabels: config.ConstLabels,
		}),
	}
}

// RecordCommand records a completed dispatch.
func RecordCommand(command, status string, d time.Duration) {
	m := get()
	m.commandsTotal.WithLabelValues(command, status).Inc()
	m.commandDuration.WithLabelValues(command).Observe(d.Seconds())
}

// RecordMissingHandler records a dispatch to a command with zero
// subscribers.
func RecordMissingHandler(command string) {
	get().missingHandlers.WithLabelValues(command).Inc()
}

// RecordRender records a completed render pass and the engine's
// post-render footprint.
func RecordRender(d time.Duration, mountedNodes, listeners int) {
	m := get()
	m.rendersTotal.Inc()
	m.renderDuration.Observe(d.Seconds())
	m.mountedNodes.Set(float64(mountedNodes))
	m.activeListeners.Set(float64(listeners))
}

// RecordSessionStart records a new websocket session.
func RecordSessionStart() {
	get().activeSessions.Inc()
}

// RecordSessionEnd records a closed websocket session.
func RecordSessionEnd() {
	get().activeSessions.Dec()
}

// RecordOpsSent records tree operations streamed to a client.
func RecordOpsSent(count int) {
	get().opsSent.Add(float64(count))
}
