package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics набор prometheus-метрик сервиса
type Metrics struct {
	httpRequestsTotal   *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec
	reservationsCreated *prometheus.CounterVec
	slotsClaimed        prometheus.Counter
	sweepTransitions    prometheus.Counter
}

// New регистрирует и возвращает метрики сервиса
func New(serviceName string) *Metrics {
	constLabels := prometheus.Labels{"service": serviceName}

	return &Metrics{
		httpRequestsTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Name:        "http_requests_total",
			Help:        "Total number of HTTP requests",
			ConstLabels: constLabels,
		}, []string{"method", "path", "status"}),

		httpRequestDuration: promauto.NewHistogramVec(prometheus.HistogramOpts{
			Name:        "http_request_duration_seconds",
			Help:        "HTTP request duration in seconds",
			Buckets:     prometheus.DefBuckets,
			ConstLabels: constLabels,
		}, []string{"method", "path"}),

		reservationsCreated: promauto.NewCounterVec(prometheus.CounterOpts{
			Name:        "reservations_created_total",
			Help:        "Total number of reservations created, by initial status",
			ConstLabels: constLabels,
		}, []string{"status"}),

		slotsClaimed: promauto.NewCounter(prometheus.CounterOpts{
			Name:        "slots_claimed_total",
			Help:        "Total number of slots transitioned to unavailable",
			ConstLabels: constLabels,
		}),

		sweepTransitions: promauto.NewCounter(prometheus.CounterOpts{
			Name:        "expired_reservations_finalized_total",
			Help:        "Total number of reservations transitioned by the expiry sweep",
			ConstLabels: constLabels,
		}),
	}
}

// ObserveHTTPRequest записывает метрики одного HTTP запроса
func (m *Metrics) ObserveHTTPRequest(method, path, status string, duration time.Duration) {
	m.httpRequestsTotal.WithLabelValues(method, path, status).Inc()
	m.httpRequestDuration.WithLabelValues(method, path).Observe(duration.Seconds())
}

// IncReservationsCreated увеличивает счетчик созданных резерваций
func (m *Metrics) IncReservationsCreated(status string) {
	if m == nil {
		return
	}
	m.reservationsCreated.WithLabelValues(status).Inc()
}

// AddSlotsClaimed увеличивает счетчик занятых слотов
func (m *Metrics) AddSlotsClaimed(n int) {
	if m == nil {
		return
	}
	m.slotsClaimed.Add(float64(n))
}

// AddSweepTransitions увеличивает счетчик обработанных sweep-ом резерваций
func (m *Metrics) AddSweepTransitions(n int) {
	if m == nil {
		return
	}
	m.sweepTransitions.Add(float64(n))
}
