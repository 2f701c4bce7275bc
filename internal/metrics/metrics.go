package metrics

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

type Metrics struct {
	BookingRequests *prometheus.CounterVec
	Transitions     *prometheus.CounterVec
	WaitlistJoins   prometheus.Counter
	RequestDuration *prometheus.HistogramVec
	RealtimeEvents  *prometheus.CounterVec
}

// New registra as métricas em reg. Use prometheus.NewRegistry() em testes.
func New(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)

	return &Metrics{
		BookingRequests: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "salon_booking_requests_total",
			Help: "Customer booking requests by outcome",
		}, []string{"outcome"}),

		Transitions: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "salon_appointment_transitions_total",
			Help: "Appointment status transitions by target status",
		}, []string{"status"}),

		WaitlistJoins: factory.NewCounter(prometheus.CounterOpts{
			Name: "salon_waitlist_joins_total",
			Help: "Waitlist entries created",
		}),

		RequestDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "salon_http_request_duration_seconds",
			Help:    "HTTP request duration",
			Buckets: prometheus.DefBuckets,
		}, []string{"method", "route", "status"}),

		RealtimeEvents: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "salon_realtime_events_total",
			Help: "Events published to live subscribers",
		}, []string{"type"}),
	}
}

func (m *Metrics) Booking(outcome string) {
	if m == nil {
		return
	}
	m.BookingRequests.WithLabelValues(outcome).Inc()
}

func (m *Metrics) Transition(status string) {
	if m == nil {
		return
	}
	m.Transitions.WithLabelValues(status).Inc()
}

func (m *Metrics) WaitlistJoined() {
	if m == nil {
		return
	}
	m.WaitlistJoins.Inc()
}

func (m *Metrics) Published(eventType string) {
	if m == nil {
		return
	}
	m.RealtimeEvents.WithLabelValues(eventType).Inc()
}

// Middleware mede a duração por rota registrada no gin.
func (m *Metrics) Middleware() gin.HandlerFunc {
	if m == nil {
		return func(c *gin.Context) { c.Next() }
	}
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		m.RequestDuration.
			WithLabelValues(c.Request.Method, route, strconv.Itoa(c.Writer.Status())).
			Observe(time.Since(start).Seconds())
	}
}
