package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const (
	resultOK    = "ok"
	resultError = "error"
)

// BotMetrics holds counters for the chat pipeline, the refresh job and reply delivery.
type BotMetrics struct {
	registry *prometheus.Registry

	MessagesTotal      *prometheus.CounterVec
	RefreshTotal       *prometheus.CounterVec
	NotificationsTotal *prometheus.CounterVec
	LastRefreshSuccess prometheus.Gauge
}

func (m *BotMetrics) RecordMessage(outcome string) {
	m.MessagesTotal.WithLabelValues(outcome).Inc()
}

// RecordRefresh counts one refresh run. source is empty when every endpoint failed.
func (m *BotMetrics) RecordRefresh(source string, err error) {
	if err != nil {
		m.RefreshTotal.WithLabelValues(source, resultError).Inc()
		return
	}
	m.RefreshTotal.WithLabelValues(source, resultOK).Inc()
	m.LastRefreshSuccess.SetToCurrentTime()
}

func (m *BotMetrics) RecordNotification(err error) {
	if err != nil {
		m.NotificationsTotal.WithLabelValues(resultError).Inc()
		return
	}
	m.NotificationsTotal.WithLabelValues(resultOK).Inc()
}

// Handler exposes the registry in the Prometheus text format.
func (m *BotMetrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

// NewBotMetrics registers on a private registry so several instances can coexist in tests.
func NewBotMetrics() *BotMetrics {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	factory := promauto.With(reg)

	return &BotMetrics{
		registry: reg,
		MessagesTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "fxbot_messages_total",
				Help: "Chat messages answered, by outcome",
			},
			[]string{"outcome"},
		),
		RefreshTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "fxbot_refresh_total",
				Help: "Snapshot refresh runs, by source endpoint and result",
			},
			[]string{"source", "result"},
		),
		NotificationsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "fxbot_notifications_total",
				Help: "Outbound chat messages, by delivery result",
			},
			[]string{"result"},
		),
		LastRefreshSuccess: factory.NewGauge(
			prometheus.GaugeOpts{
				Name: "fxbot_last_refresh_success_timestamp_seconds",
				Help: "Unix time of the last successful snapshot refresh",
			},
		),
	}
}
