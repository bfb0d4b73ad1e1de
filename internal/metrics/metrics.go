// Package metrics exposes the bot's Prometheus collectors:
//
//	spotbot_orders_total{type,side,result}  order submissions, result ok|error
//	spotbot_price_adjustments_total{side}   limit prices moved back into the band
//	spotbot_api_errors_total{op,kind}       adapter failures by error kind
//	spotbot_symbol_cache_size               cached tradable symbols
//	spotbot_time_offset_ms                  server time minus local time
//
// Collectors live on their own registry; the web front end serves it at /metrics.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type Metrics struct {
	registry *prometheus.Registry

	orders           *prometheus.CounterVec
	priceAdjustments *prometheus.CounterVec
	apiErrors        *prometheus.CounterVec
	symbolCacheSize  prometheus.Gauge
	timeOffset       prometheus.Gauge
}

func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		orders: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "spotbot_orders_total",
				Help: "Orders submitted to the exchange",
			},
			[]string{"type", "side", "result"},
		),
		priceAdjustments: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "spotbot_price_adjustments_total",
				Help: "Limit prices replaced because they left the accepted band",
			},
			[]string{"side"},
		),
		apiErrors: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "spotbot_api_errors_total",
				Help: "Adapter failures split by operation and kind",
			},
			[]string{"op", "kind"},
		),
		symbolCacheSize: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Name: "spotbot_symbol_cache_size",
				Help: "Tradable symbols held in the symbol cache",
			},
		),
		timeOffset: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Name: "spotbot_time_offset_ms",
				Help: "Exchange server time minus local time at startup",
			},
		),
	}
	m.registry.MustRegister(m.orders, m.priceAdjustments, m.apiErrors, m.symbolCacheSize, m.timeOffset)
	return m
}

func (m *Metrics) OrderPlaced(typ, side string, err error) {
	if m == nil {
		return
	}
	result := "ok"
	if err != nil {
		result = "error"
	}
	m.orders.WithLabelValues(typ, side, result).Inc()
}

func (m *Metrics) PriceAdjusted(side string) {
	if m == nil {
		return
	}
	m.priceAdjustments.WithLabelValues(side).Inc()
}

func (m *Metrics) APIError(op, kind string) {
	if m == nil {
		return
	}
	m.apiErrors.WithLabelValues(op, kind).Inc()
}

func (m *Metrics) SetSymbolCacheSize(n int) {
	if m == nil {
		return
	}
	m.symbolCacheSize.Set(float64(n))
}

func (m *Metrics) SetTimeOffset(ms int64) {
	if m == nil {
		return
	}
	m.timeOffset.Set(float64(ms))
}

// Handler Prometheus text exposition of this registry
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}
