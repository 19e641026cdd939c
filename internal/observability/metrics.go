package observability

import (
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	registerOnce sync.Once

	messagesReceived = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "soilmoisture",
			Subsystem: "radio",
			Name:      "messages_received_total",
			Help:      "Messages received, labeled by decoded type.",
		},
		[]string{"node", "type"},
	)
	messagesDiscarded = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "soilmoisture",
			Subsystem: "radio",
			Name:      "messages_discarded_total",
			Help:      "Messages discarded without being handled.",
		},
		[]string{"node", "reason"},
	)
	joinsAssigned = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "soilmoisture",
			Subsystem: "registry",
			Name:      "joins_assigned_total",
			Help:      "Node numbers handed out to joining leaves.",
		},
		[]string{"node"},
	)
	txDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "soilmoisture",
			Subsystem: "radio",
			Name:      "leaf_tx_duration_seconds",
			Help:      "Last transmit duration reported by leaves.",
			Buckets:   []float64{0.01, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5},
		},
		[]string{"node", "leaf"},
	)
)

func RegisterMetrics() {
	registerOnce.Do(func() {
		prometheus.MustRegister(messagesReceived, messagesDiscarded, joinsAssigned, txDuration)
	})
}

func RecordMessage(node, msgType string) {
	RegisterMetrics()
	messagesReceived.WithLabelValues(node, msgType).Inc()
}

func RecordDiscard(node, reason string) {
	RegisterMetrics()
	messagesDiscarded.WithLabelValues(node, reason).Inc()
}

func RecordJoin(node string) {
	RegisterMetrics()
	joinsAssigned.WithLabelValues(node).Inc()
}

func RecordTxDuration(node, leaf string, d time.Duration) {
	RegisterMetrics()
	txDuration.WithLabelValues(node, leaf).Observe(d.Seconds())
}
