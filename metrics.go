package wechatlogin

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics provides observability for the login flow. All methods are safe
// on a nil receiver, so an unconfigured plugin simply records nothing.
type Metrics struct {
	attempts         *prometheus.CounterVec
	provisioned      prometheus.Counter
	exchangeDuration prometheus.Histogram
}

// NewMetrics creates and registers the plugin's metrics.
//
// Pass prometheus.DefaultRegisterer in production; tests should pass a
// fresh prometheus.NewRegistry() to avoid duplicate registration.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		attempts: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "wechat_login_attempts_total",
			Help: "Login attempts by outcome (success or a failure kind)",
		}, []string{"outcome"}),
		provisioned: factory.NewCounter(prometheus.CounterOpts{
			Name: "wechat_login_users_provisioned_total",
			Help: "Local accounts created for first-time WeChat visitors",
		}),
		exchangeDuration: factory.NewHistogram(prometheus.HistogramOpts{
			Name:    "wechat_login_exchange_duration_seconds",
			Help:    "Duration of code-for-openid exchange calls",
			Buckets: []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 8},
		}),
	}
}

// attemptSucceeded records a completed login.
func (m *Metrics) attemptSucceeded() {
	if m == nil {
		return
	}
	m.attempts.WithLabelValues("success").Inc()
}

// attemptAborted records an aborted attempt by failure kind.
func (m *Metrics) attemptAborted(kind FailureKind) {
	if m == nil {
		return
	}
	m.attempts.WithLabelValues(string(kind)).Inc()
}

// userProvisioned records a freshly created account.
func (m *Metrics) userProvisioned() {
	if m == nil {
		return
	}
	m.provisioned.Inc()
}

// observeExchange records the duration of one provider exchange.
// Call with time.Now() from the start of the call.
func (m *Metrics) observeExchange(start time.Time) {
	if m == nil {
		return
	}
	m.exchangeDuration.Observe(time.Since(start).Seconds())
}
