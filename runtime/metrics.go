package runtime

import "github.com/prometheus/client_golang/prometheus"

// Metrics counts what the runtime processed.
type Metrics struct {
	messages *prometheus.CounterVec
	effects  *prometheus.CounterVec
	replies  prometheus.Counter
}

// NewMetrics creates the runtime collectors and registers them with given
// registerer. Nil registerer is allowed, in which case the collectors are
// only kept in memory.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		messages: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "suitdrop",
			Name:      "messages_total",
			Help:      "Top level messages processed by the runtime.",
		}, []string{"kind", "result"}),
		effects: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "suitdrop",
			Name:      "effects_total",
			Help:      "Effects executed on behalf of contracts.",
		}, []string{"kind"}),
		replies: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "suitdrop",
			Name:      "replies_total",
			Help:      "Replies delivered to contracts.",
		}),
	}
	if reg != nil {
		reg.MustRegister(m.messages, m.effects, m.replies)
	}
	return m
}

func (m *Metrics) message(kind string, err error) {
	if m == nil {
		return
	}
	result := "ok"
	if err != nil {
		result = "error"
	}
	m.messages.WithLabelValues(kind, result).Inc()
}

func (m *Metrics) effect(kind string) {
	if m == nil {
		return
	}
	m.effects.WithLabelValues(kind).Inc()
}

func (m *Metrics) reply() {
	if m == nil {
		return
	}
	m.replies.Inc()
}
