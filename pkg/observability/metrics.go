package observability

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Collector holds all Prometheus metrics for the application
type Collector struct {
	// Registry for this collector instance
	registry *prometheus.Registry

	// HTTP metrics
	HTTPRequests *prometheus.CounterVec
	HTTPDuration *prometheus.HistogramVec

	// Board metrics
	Operations      *prometheus.CounterVec
	NodesCreated    *prometheus.CounterVec
	NodesRemoved    prometheus.Counter
	LinkChanges     *prometheus.CounterVec
	Merges          *prometheus.CounterVec
	GridArranged    prometheus.Histogram
	EventsPublished *prometheus.CounterVec
	BoardNodes      prometheus.Gauge
}

// NewCollector creates a collector with its own registry, so tests can build
// as many as they like.
func NewCollector(namespace string) *Collector {
	c := &Collector{
		registry: prometheus.NewRegistry(),
		HTTPRequests: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "http_requests_total",
				Help:      "Total number of HTTP requests",
			},
			[]string{"method", "route", "status"},
		),
		HTTPDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "http_request_duration_seconds",
				Help:      "HTTP request duration in seconds",
				Buckets:   prometheus.DefBuckets,
			},
			[]string{"method", "route"},
		),
		Operations: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "board_operations_total",
				Help:      "Total number of board operations by outcome",
			},
			[]string{"operation", "status"},
		),
		NodesCreated: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "nodes_created_total",
				Help:      "Total number of nodes created",
			},
			[]string{"kind"},
		),
		NodesRemoved: prometheus.NewCounter(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "nodes_removed_total",
				Help:      "Total number of nodes removed",
			},
		),
		LinkChanges: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "link_changes_total",
				Help:      "Total number of links created or severed",
			},
			[]string{"change"},
		),
		Merges: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "merges_total",
				Help:      "Total number of merges by strategy",
			},
			[]string{"strategy"},
		),
		GridArranged: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "grid_arranged_nodes",
				Help:      "Number of nodes placed per grid arrangement",
				Buckets:   prometheus.ExponentialBuckets(1, 2, 8),
			},
		),
		EventsPublished: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "events_published_total",
				Help:      "Total number of domain events handed to the publisher",
			},
			[]string{"status"},
		),
		BoardNodes: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Name:      "board_nodes",
				Help:      "Number of nodes currently on the board",
			},
		),
	}

	c.registry.MustRegister(
		c.HTTPRequests,
		c.HTTPDuration,
		c.Operations,
		c.NodesCreated,
		c.NodesRemoved,
		c.LinkChanges,
		c.Merges,
		c.GridArranged,
		c.EventsPublished,
		c.BoardNodes,
	)
	return c
}

// RecordOperation counts a finished board operation
func (c *Collector) RecordOperation(operation string, err error) {
	c.Operations.WithLabelValues(operation, status(err)).Inc()
}

func (c *Collector) RecordNodeCreated(kind string) {
	c.NodesCreated.WithLabelValues(kind).Inc()
}

func (c *Collector) RecordNodesRemoved(count int) {
	c.NodesRemoved.Add(float64(count))
}

func (c *Collector) RecordLinkChange(linked bool) {
	change := "unlinked"
	if linked {
		change = "linked"
	}
	c.LinkChanges.WithLabelValues(change).Inc()
}

func (c *Collector) RecordMerge(strategy string) {
	c.Merges.WithLabelValues(strategy).Inc()
}

func (c *Collector) RecordGridArranged(nodes int) {
	c.GridArranged.Observe(float64(nodes))
}

func (c *Collector) RecordEventsPublished(count int, err error) {
	c.EventsPublished.WithLabelValues(status(err)).Add(float64(count))
}

func (c *Collector) SetBoardNodes(count int) {
	c.BoardNodes.Set(float64(count))
}

// RecordHTTPRequest records one served request against its route pattern
func (c *Collector) RecordHTTPRequest(method, route string, statusCode int, duration time.Duration) {
	c.HTTPRequests.WithLabelValues(method, route, strconv.Itoa(statusCode)).Inc()
	c.HTTPDuration.WithLabelValues(method, route).Observe(duration.Seconds())
}

// Handler serves the registry in the Prometheus exposition format
func (c *Collector) Handler() http.Handler {
	return promhttp.HandlerFor(c.registry, promhttp.HandlerOpts{})
}

// GetRegistry returns the Prometheus registry for this collector
func (c *Collector) GetRegistry() *prometheus.Registry {
	return c.registry
}

func status(err error) string {
	if err != nil {
		return "error"
	}
	return "ok"
}
