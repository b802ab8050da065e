package telemetry

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// Business metrics
	CommandsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "sahayata_commands_total",
		Help: "Total utterances processed, by dialogue stage and outcome",
	}, []string{"stage", "outcome"})

	OTPVerificationsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "sahayata_otp_verifications_total",
		Help: "OTP verification attempts, by result",
	}, []string{"result"})

	ActiveDialogues = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "sahayata_active_dialogues",
		Help: "Sessions currently inside a transfer dialogue",
	})

	TransfersCompletedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "sahayata_transfers_completed_total",
		Help: "Transfer dialogues that passed OTP verification",
	})

	// Infrastructure metrics
	CommandLatency = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "sahayata_command_latency_seconds",
		Help:    "Dialogue engine processing latency",
		Buckets: prometheus.DefBuckets,
	})
)
