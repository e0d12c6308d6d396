package relay

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	metricSessions = promauto.NewGauge(prometheus.GaugeOpts{
		Namespace: "jamroom",
		Subsystem: "relay",
		Name:      "sessions",
		Help:      "Number of live sessions.",
	})
	metricParticipants = promauto.NewGauge(prometheus.GaugeOpts{
		Namespace: "jamroom",
		Subsystem: "relay",
		Name:      "participants",
		Help:      "Number of connected participants across all sessions.",
	})
	metricEnvelopes = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "jamroom",
		Subsystem: "relay",
		Name:      "envelopes_total",
		Help:      "Relayed envelopes by type.",
	}, []string{"type"})
	metricDroppedSends = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "jamroom",
		Subsystem: "relay",
		Name:      "dropped_sends_total",
		Help:      "Fan-out sends dropped on slow or dead peers.",
	})
	metricMalformed = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "jamroom",
		Subsystem: "relay",
		Name:      "malformed_total",
		Help:      "Envelopes dropped as unparseable or schema-violating.",
	})
)
