package vault

import "github.com/prometheus/client_golang/prometheus"

// Metrics counts vault operations by outcome. A nil *Metrics is valid and
// records nothing, so wiring metrics stays optional.
type Metrics struct {
	operations *prometheus.CounterVec
}

// NewMetrics builds the counters and registers them when reg is non-nil.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		operations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "vault",
			Name:      "operations_total",
			Help:      "Vault operations by name and outcome.",
		}, []string{"operation", "status"}),
	}
	if reg != nil {
		reg.MustRegister(m.operations)
	}
	return m
}

func (m *Metrics) observe(operation string, err error) {
	if m == nil {
		return
	}
	status := "ok"
	if err != nil {
		status = Code(err)
	}
	m.operations.WithLabelValues(operation, status).Inc()
}
