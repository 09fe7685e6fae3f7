// Package metrics собирает счётчики Prometheus для прогонов симуляции
// и доставки сообщений.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	simulationRunsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "simulation_runs_total",
			Help: "Total number of simulate-day runs labeled by final status",
		},
		[]string{"status"},
	)
	slotMessagesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "slot_messages_total",
			Help: "Total number of composed slot messages labeled by slot kind",
		},
		[]string{"slot_kind"},
	)
	deliveriesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "deliveries_total",
			Help: "Total number of delivery attempts labeled by channel and outcome",
		},
		[]string{"channel", "outcome"},
	)
	generationFallbacksTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "generation_fallbacks_total",
			Help: "Total number of slots that fell back to the fixed text after a generation failure",
		},
	)
)

// Статусы прогона и исходы доставки.
const (
	StatusOK     = "ok"
	StatusFailed = "failed"

	OutcomeSent    = "sent"
	OutcomeNotSent = "not_sent"
)

// ObserveSimulationRun учитывает завершённый прогон симуляции.
func ObserveSimulationRun(status string) {
	simulationRunsTotal.WithLabelValues(status).Inc()
}

// IncSlotMessage учитывает собранное сообщение слота.
func IncSlotMessage(slotKind string) {
	slotMessagesTotal.WithLabelValues(slotKind).Inc()
}

// IncDelivery учитывает попытку доставки по каналу.
func IncDelivery(channel, outcome string) {
	deliveriesTotal.WithLabelValues(channel, outcome).Inc()
}

// IncGenerationFallback учитывает подмену текста слота на запасной.
func IncGenerationFallback() {
	generationFallbacksTotal.Inc()
}
