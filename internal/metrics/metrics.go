package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "pitchlink_http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "pitchlink_http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path"},
	)

	BookingsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "pitchlink_bookings_total",
			Help: "Total number of bookings created",
		},
		[]string{"source", "status"},
	)

	BookingStatusChangesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "pitchlink_booking_status_changes_total",
			Help: "Booking status transitions",
		},
		[]string{"from", "to"},
	)

	BookingRevenueTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "pitchlink_booking_amount_naira_total",
			Help: "Sum of total_amount over created bookings, in Naira",
		},
	)

	PaymentsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "pitchlink_payments_total",
			Help: "Recorded payments",
		},
		[]string{"method", "status"},
	)

	PitchesCreatedTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "pitchlink_pitches_created_total",
			Help: "Total number of pitches created",
		},
	)

	EmailsSentTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "pitchlink_emails_sent_total",
			Help: "Total number of emails sent",
		},
		[]string{"type", "status"},
	)

	EmailQueueLength = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "pitchlink_email_queue_length",
			Help: "Current length of email queue",
		},
	)

	EventsPublishedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "pitchlink_events_published_total",
			Help: "Booking events handed to the broker",
		},
		[]string{"type", "status"},
	)

	RollupsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "pitchlink_analytics_rollups_total",
			Help: "Analytics rollup recomputations",
		},
		[]string{"status"},
	)
)

func RecordHTTPRequest(method, path, status string, duration float64) {
	HTTPRequestsTotal.WithLabelValues(method, path, status).Inc()
	HTTPRequestDuration.WithLabelValues(method, path).Observe(duration)
}

// RecordBooking counts a new booking. source is "manual" or "request".
func RecordBooking(source, status string, amount float64) {
	BookingsTotal.WithLabelValues(source, status).Inc()
	BookingRevenueTotal.Add(amount)
}

func RecordStatusChange(from, to string) {
	BookingStatusChangesTotal.WithLabelValues(from, to).Inc()
}

func RecordPayment(method, status string) {
	PaymentsTotal.WithLabelValues(method, status).Inc()
}

func RecordEmail(emailType, status string) {
	EmailsSentTotal.WithLabelValues(emailType, status).Inc()
}

func RecordEvent(eventType, status string) {
	EventsPublishedTotal.WithLabelValues(eventType, status).Inc()
}

func RecordRollup(status string) {
	RollupsTotal.WithLabelValues(status).Inc()
}
