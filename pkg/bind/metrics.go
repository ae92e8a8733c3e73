package bind

import (
	"github.com/prometheus/client_golang/prometheus"
)

// bindMetrics holds the Prometheus collectors for seek bar bindings.
type bindMetrics struct {
	listeners   prometheus.Gauge
	subscribers prometheus.Gauge
	attaches    prometheus.Counter
	detaches    prometheus.Counter
	delivered   *prometheus.CounterVec
}

var metrics = newBindMetrics("bind")

func newBindMetrics(namespace string) *bindMetrics {
	return &bindMetrics{
		listeners: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "seekbar",
			Name:      "listeners",
			Help:      "Seek bars that currently have a shared listener",
		}),
		subscribers: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "seekbar",
			Name:      "subscribers",
			Help:      "Live seek bar subscriptions",
		}),
		attaches: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "seekbar",
			Name:      "listener_attaches_total",
			Help:      "Listeners installed as a seek bar client",
		}),
		detaches: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "seekbar",
			Name:      "listener_detaches_total",
			Help:      "Listeners removed after their last subscriber left",
		}),
		delivered: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "seekbar",
			Name:      "events_delivered_total",
			Help:      "Events delivered to subscribers by the shared listener",
		}, []string{"kind"}),
	}
}

func (m *bindMetrics) collectors() []prometheus.Collector {
	return []prometheus.Collector{m.listeners, m.subscribers, m.attaches, m.detaches, m.delivered}
}

// RegisterMetrics registers the binding collectors with reg.
// Pass nil to use prometheus.DefaultRegisterer.
func RegisterMetrics(reg prometheus.Registerer) error {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	for _, c := range metrics.collectors() {
		if err := reg.Register(c); err != nil {
			return err
		}
	}
	return nil
}
