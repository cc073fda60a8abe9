// Package telemetry provides Prometheus metrics and OpenTelemetry tracing setup.
package telemetry

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	once sync.Once

	// Counters
	SessionsStarted      prometheus.Counter
	SessionsStopped      prometheus.Counter
	ReportCycles         prometheus.Counter
	ChatMessagesObserved prometheus.Counter
	RaidsDetected        prometheus.Counter
	SendFailures         prometheus.Counter
	BotlistReloads       prometheus.Counter

	// Gauges
	ActiveSessionsGauge prometheus.Gauge
	BotlistSizeGauge    prometheus.Gauge
)

// Init registers metrics (idempotent).
func Init() {
	once.Do(func() {
		SessionsStarted = promauto.NewCounter(prometheus.CounterOpts{Name: "tracker_sessions_started_total", Help: "Number of tracking sessions started"})
		SessionsStopped = promauto.NewCounter(prometheus.CounterOpts{Name: "tracker_sessions_stopped_total", Help: "Number of tracking sessions stopped"})
		ReportCycles = promauto.NewCounter(prometheus.CounterOpts{Name: "tracker_report_cycles_total", Help: "Number of completed reporting cycles"})
		ChatMessagesObserved = promauto.NewCounter(prometheus.CounterOpts{Name: "tracker_chat_messages_observed_total", Help: "Number of chat messages recorded by the observer"})
		RaidsDetected = promauto.NewCounter(prometheus.CounterOpts{Name: "tracker_raids_detected_total", Help: "Number of distinct raids detected"})
		SendFailures = promauto.NewCounter(prometheus.CounterOpts{Name: "tracker_discord_send_failures_total", Help: "Number of failed output channel sends"})
		BotlistReloads = promauto.NewCounter(prometheus.CounterOpts{Name: "tracker_botlist_reloads_total", Help: "Number of exclusion list reloads"})
		ActiveSessionsGauge = promauto.NewGauge(prometheus.GaugeOpts{Name: "tracker_active_sessions", Help: "Currently running tracking sessions"})
		BotlistSizeGauge = promauto.NewGauge(prometheus.GaugeOpts{Name: "tracker_botlist_size", Help: "Number of excluded identities currently loaded"})
	})
}

// Nil-guarded helpers so library code can count without caring whether Init ran (tests skip it).

func CountSessionStart() {
	if SessionsStarted != nil {
		SessionsStarted.Inc()
	}
}

func CountSessionStop() {
	if SessionsStopped != nil {
		SessionsStopped.Inc()
	}
}

func CountReportCycle() {
	if ReportCycles != nil {
		ReportCycles.Inc()
	}
}

func CountChatMessage() {
	if ChatMessagesObserved != nil {
		ChatMessagesObserved.Inc()
	}
}

func CountRaid() {
	if RaidsDetected != nil {
		RaidsDetected.Inc()
	}
}

func CountSendFailure() {
	if SendFailures != nil {
		SendFailures.Inc()
	}
}

// CountBotlistReload records a reload and the resulting set size.
func CountBotlistReload(size int) {
	if BotlistReloads != nil {
		BotlistReloads.Inc()
	}
	if BotlistSizeGauge != nil {
		BotlistSizeGauge.Set(float64(size))
	}
}

// SetActiveSessions records the current number of running sessions.
func SetActiveSessions(n int) {
	if ActiveSessionsGauge != nil {
		ActiveSessionsGauge.Set(float64(n))
	}
}
