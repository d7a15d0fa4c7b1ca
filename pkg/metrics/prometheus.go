// Package metrics exposes Prometheus instrumentation for the Auction
// House and Settlement Claim, trimmed from metrics/prometheus.go's
// PerpDEX-wide collector down to the counters this core actually
// produces: orders, batches, cleared quantity, and claim latency. No
// liquidation/ADL/funding-rate/insurance-fund metrics (those subsystems
// are out of scope per spec §1 Non-goals).
package metrics

import (
	"net/http"
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	collector     *Collector
	collectorOnce sync.Once
)

// Collector holds DFBA Core's metrics.
type Collector struct {
	OrdersTotal      *prometheus.CounterVec
	OrdersActive     *prometheus.GaugeVec
	OrderLatency     *prometheus.HistogramVec

	BatchesFinalized *prometheus.CounterVec
	ClearingTick     *prometheus.GaugeVec
	ClearedQty       *prometheus.CounterVec

	ClaimsTotal   *prometheus.CounterVec
	ClaimLatency  *prometheus.HistogramVec

	WSConnectionsActive prometheus.Gauge
}

// GetCollector returns the process-wide singleton collector, registered
// with the default Prometheus registry on first use.
func GetCollector() *Collector {
	collectorOnce.Do(func() {
		collector = newCollector()
	})
	return collector
}

func newCollector() *Collector {
	c := &Collector{
		OrdersTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "dfba",
				Subsystem: "orders",
				Name:      "total",
				Help:      "Total number of orders submitted",
			},
			[]string{"market_id", "side", "flow"},
		),
		OrdersActive: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Namespace: "dfba",
				Subsystem: "orders",
				Name:      "active",
				Help:      "Number of unclaimed, uncancelled orders in the current batch",
			},
			[]string{"market_id", "side"},
		),
		OrderLatency: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: "dfba",
				Subsystem: "orders",
				Name:      "latency_ms",
				Help:      "submit_order processing latency in milliseconds",
				Buckets:   []float64{0.5, 1, 2, 5, 10, 25, 50, 100},
			},
			[]string{"market_id"},
		),
		BatchesFinalized: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "dfba",
				Subsystem: "batches",
				Name:      "finalized_total",
				Help:      "Total number of (market, batch, side) clearings finalized",
			},
			[]string{"market_id", "side"},
		),
		ClearingTick: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Namespace: "dfba",
				Subsystem: "batches",
				Name:      "clearing_tick",
				Help:      "Clearing tick of the most recently finalized batch side",
			},
			[]string{"market_id", "side"},
		),
		ClearedQty: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "dfba",
				Subsystem: "batches",
				Name:      "cleared_qty_total",
				Help:      "Cumulative cleared quantity across finalized batch sides",
			},
			[]string{"market_id", "side"},
		),
		ClaimsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "dfba",
				Subsystem: "claims",
				Name:      "total",
				Help:      "Total number of claim attempts, by outcome",
			},
			[]string{"market_id", "outcome"},
		),
		ClaimLatency: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: "dfba",
				Subsystem: "claims",
				Name:      "latency_ms",
				Help:      "claim processing latency in milliseconds",
				Buckets:   []float64{0.5, 1, 2, 5, 10, 25, 50, 100},
			},
			[]string{"market_id"},
		),
		WSConnectionsActive: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Namespace: "dfba",
				Subsystem: "ws",
				Name:      "connections_active",
				Help:      "Active indexer websocket connections",
			},
		),
	}

	prometheus.MustRegister(
		c.OrdersTotal, c.OrdersActive, c.OrderLatency,
		c.BatchesFinalized, c.ClearingTick, c.ClearedQty,
		c.ClaimsTotal, c.ClaimLatency, c.WSConnectionsActive,
	)
	return c
}

// RecordOrder increments the submitted-orders counter.
func (c *Collector) RecordOrder(marketID, side, flow string) {
	c.OrdersTotal.WithLabelValues(marketID, side, flow).Inc()
}

// RecordOrderLatency observes a submit_order call's processing time.
func (c *Collector) RecordOrderLatency(marketID string, latencyMs float64) {
	c.OrderLatency.WithLabelValues(marketID).Observe(latencyMs)
}

// RecordBatchFinalized records a finalized (market, batch, side) clearing.
func (c *Collector) RecordBatchFinalized(marketID, side string, clearingTick int32, clearedQty float64) {
	c.BatchesFinalized.WithLabelValues(marketID, side).Inc()
	c.ClearingTick.WithLabelValues(marketID, side).Set(float64(clearingTick))
	c.ClearedQty.WithLabelValues(marketID, side).Add(clearedQty)
}

// RecordClaim records one claim attempt's outcome and latency.
func (c *Collector) RecordClaim(marketID, outcome string, latencyMs float64) {
	c.ClaimsTotal.WithLabelValues(marketID, outcome).Inc()
	c.ClaimLatency.WithLabelValues(marketID).Observe(latencyMs)
}

// RecordWSConnection adjusts the active websocket connection gauge.
func (c *Collector) RecordWSConnection(delta int) {
	c.WSConnectionsActive.Add(float64(delta))
}

// Handler serves the Prometheus scrape endpoint.
func Handler() http.Handler {
	return promhttp.Handler()
}
