package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "session_security"

// Metrics : счётчики исходов аутентификации. Регистрируются в собственном registry
type Metrics struct {
	registry       *prometheus.Registry
	logins         *prometheus.CounterVec
	refreshes      *prometheus.CounterVec
	logouts        *prometheus.CounterVec
	csrfRejections *prometheus.CounterVec
}

func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		logins: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "logins_total",
			Help:      "Login attempts by outcome and client kind.",
		}, []string{"outcome", "client"}),
		refreshes: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "refreshes_total",
			Help:      "Access token refresh attempts by outcome and client kind.",
		}, []string{"outcome", "client"}),
		logouts: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "logouts_total",
			Help:      "Logouts by client kind.",
		}, []string{"client"}),
		csrfRejections: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "csrf_rejections_total",
			Help:      "Requests rejected by the CSRF guard by reason.",
		}, []string{"reason"}),
	}

	m.registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		m.logins,
		m.refreshes,
		m.logouts,
		m.csrfRejections,
	)

	return m
}

func (m *Metrics) LoginAttempt(outcome, client string) {
	m.logins.WithLabelValues(outcome, client).Inc()
}

func (m *Metrics) RefreshAttempt(outcome, client string) {
	m.refreshes.WithLabelValues(outcome, client).Inc()
}

func (m *Metrics) Logout(client string) {
	m.logouts.WithLabelValues(client).Inc()
}

func (m *Metrics) CSRFRejected(reason string) {
	m.csrfRejections.WithLabelValues(reason).Inc()
}

func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}
