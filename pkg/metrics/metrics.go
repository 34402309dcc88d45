package metrics

import (
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds the HTTP and domain metrics of the service.
type Metrics struct {
	RequestsTotal   *prometheus.CounterVec
	RequestDuration *prometheus.HistogramVec
	UsersCreated    prometheus.Counter
	SignInFailures  prometheus.Counter

	gatherer prometheus.Gatherer
}

// New creates the metrics and registers them on reg.
func New(reg *prometheus.Registry) *Metrics {
	f := promauto.With(reg)
	return &Metrics{
		RequestsTotal: f.NewCounterVec(prometheus.CounterOpts{
			Name: "resumes_http_requests_total",
			Help: "Total number of HTTP requests by route, method and status",
		}, []string{"route", "method", "status"}),
		RequestDuration: f.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "resumes_http_request_duration_seconds",
			Help:    "HTTP request latency by route and method",
			Buckets: prometheus.DefBuckets,
		}, []string{"route", "method"}),
		UsersCreated: f.NewCounter(prometheus.CounterOpts{
			Name: "resumes_users_created_total",
			Help: "Total number of users signed up",
		}),
		SignInFailures: f.NewCounter(prometheus.CounterOpts{
			Name: "resumes_sign_in_failures_total",
			Help: "Total number of rejected sign-in attempts",
		}),
		gatherer: reg,
	}
}

func (m *Metrics) IncrementUsersCreated() {
	m.UsersCreated.Inc()
}

func (m *Metrics) IncrementSignInFailures() {
	m.SignInFailures.Inc()
}

// Middleware records request count and latency. Register it outside the
// request logger so the status reflects the error handler's response.
func (m *Metrics) Middleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		err := c.Next()

		route := c.Route().Path
		method := c.Method()
		m.RequestsTotal.WithLabelValues(route, method, strconv.Itoa(c.Response().StatusCode())).Inc()
		m.RequestDuration.WithLabelValues(route, method).Observe(time.Since(start).Seconds())
		return err
	}
}

// Handler exposes the registry in the Prometheus text format.
func (m *Metrics) Handler() fiber.Handler {
	return adaptor.HTTPHandler(promhttp.HandlerFor(m.gatherer, promhttp.HandlerOpts{}))
}
