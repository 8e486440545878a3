package api

import "github.com/prometheus/client_golang/prometheus"

const outcomeOK = "ok"

// Metrics counts pipeline outcomes. A nil *Metrics records nothing.
type Metrics struct {
	requests  *prometheus.CounterVec
	refreshes *prometheus.CounterVec
}

func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "shopscript",
			Subsystem: "client",
			Name:      "requests_total",
			Help:      "Requests issued through the pipeline by method and outcome.",
		}, []string{"method", "outcome"}),
		refreshes: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "shopscript",
			Subsystem: "client",
			Name:      "token_refreshes_total",
			Help:      "Network token refresh attempts by result.",
		}, []string{"result"}),
	}

	if reg != nil {
		reg.MustRegister(m.requests, m.refreshes)
	}

	return m
}

func (m *Metrics) observeRequest(method string, outcome string) {
	if m == nil {
		return
	}
	m.requests.WithLabelValues(method, outcome).Inc()
}

func (m *Metrics) observeRefresh(result string) {
	if m == nil {
		return
	}
	m.refreshes.WithLabelValues(result).Inc()
}
