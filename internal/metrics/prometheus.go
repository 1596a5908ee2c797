// Package metrics exposes Prometheus instrumentation for the voice bridge.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics contains all Prometheus metrics for the voice bridge.
type Metrics struct {
	// Session metrics
	ActiveSessions  prometheus.Gauge
	SessionsStarted prometheus.Counter
	SessionDuration prometheus.Histogram

	// Frame metrics
	FramesReceived prometheus.Counter
	FramesDropped  prometheus.Counter
	FramesSent     prometheus.Counter

	// Turn metrics
	TurnsCompleted   prometheus.Counter
	TurnsDiscarded   *prometheus.CounterVec // reason: too_short, junk_text
	OverflowTriggers prometheus.Counter

	// Pipeline metrics
	StageFailures *prometheus.CounterVec
	StageDuration *prometheus.HistogramVec
}

// New creates all voice bridge metrics and registers them with reg.
func New(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)

	return &Metrics{
		ActiveSessions: factory.NewGauge(prometheus.GaugeOpts{
			Name: "voicebridge_active_sessions",
			Help: "Current number of active call sessions",
		}),
		SessionsStarted: factory.NewCounter(prometheus.CounterOpts{
			Name: "voicebridge_sessions_started_total",
			Help: "Total number of call sessions started",
		}),
		SessionDuration: factory.NewHistogram(prometheus.HistogramOpts{
			Name:    "voicebridge_session_duration_seconds",
			Help:    "Duration of call sessions in seconds",
			Buckets: prometheus.ExponentialBuckets(1, 2, 12),
		}),

		FramesReceived: factory.NewCounter(prometheus.CounterOpts{
			Name: "voicebridge_frames_received_total",
			Help: "Total number of inbound media frames received",
		}),
		FramesDropped: factory.NewCounter(prometheus.CounterOpts{
			Name: "voicebridge_frames_dropped_total",
			Help: "Total number of inbound frames dropped by the barge-in policy",
		}),
		FramesSent: factory.NewCounter(prometheus.CounterOpts{
			Name: "voicebridge_frames_sent_total",
			Help: "Total number of outbound media frames sent",
		}),

		TurnsCompleted: factory.NewCounter(prometheus.CounterOpts{
			Name: "voicebridge_turns_completed_total",
			Help: "Total number of fully completed conversation turns",
		}),
		TurnsDiscarded: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "voicebridge_turns_discarded_total",
			Help: "Total number of turns discarded before responding",
		}, []string{"reason"}),
		OverflowTriggers: factory.NewCounter(prometheus.CounterOpts{
			Name: "voicebridge_buffer_overflow_total",
			Help: "Total number of eager transcriptions forced by buffer overflow",
		}),

		StageFailures: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "voicebridge_stage_failures_total",
			Help: "Total number of pipeline stage failures",
		}, []string{"stage"}),
		StageDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "voicebridge_stage_duration_seconds",
			Help:    "Duration of pipeline stages in seconds",
			Buckets: prometheus.ExponentialBuckets(0.05, 2, 10),
		}, []string{"stage"}),
	}
}
