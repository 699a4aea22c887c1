package observability

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	registerOnce sync.Once

	stepsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "linksim",
			Subsystem: "session",
			Name:      "steps_total",
			Help:      "Session steps by outcome.",
		},
		[]string{"outcome"},
	)
	channelFrames = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "linksim",
			Subsystem: "channel",
			Name:      "frames_total",
			Help:      "Frames entering the channel by verdict.",
		},
		[]string{"verdict"},
	)
	acksApplied = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "linksim",
			Subsystem: "sender",
			Name:      "acks_applied_total",
			Help:      "Cumulative acks that advanced the send window.",
		},
	)
	framesDelivered = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "linksim",
			Subsystem: "receiver",
			Name:      "frames_delivered_total",
			Help:      "Data units delivered upward in order.",
		},
	)
	stepsToFinish = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: "linksim",
			Subsystem: "session",
			Name:      "steps_to_finish",
			Help:      "Steps a session took to reach Finished.",
			Buckets:   prometheus.ExponentialBuckets(1, 2, 10),
		},
	)
)

func RegisterMetrics() {
	registerOnce.Do(func() {
		prometheus.MustRegister(stepsTotal, channelFrames, acksApplied, framesDelivered, stepsToFinish)
	})
}

func RecordStep(outcome string) {
	RegisterMetrics()
	stepsTotal.WithLabelValues(outcome).Inc()
}

func RecordChannelVerdict(verdict string) {
	RegisterMetrics()
	channelFrames.WithLabelValues(verdict).Inc()
}

func RecordAckApplied() {
	RegisterMetrics()
	acksApplied.Inc()
}

func RecordDeliveries(n int) {
	RegisterMetrics()
	framesDelivered.Add(float64(n))
}

func RecordSessionFinished(steps int) {
	RegisterMetrics()
	stepsToFinish.Observe(float64(steps))
}
