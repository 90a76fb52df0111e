package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "gympass_http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "gympass_http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path"},
	)

	CheckInsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "gympass_checkins_total",
			Help: "Total number of check-in requests",
		},
		[]string{"result", "entitlement_kind"},
	)

	CheckInDecisionsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "gympass_checkin_decisions_total",
			Help: "Total number of staff decisions on check-ins",
		},
		[]string{"status"},
	)

	CheckOutsTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "gympass_checkouts_total",
			Help: "Total number of check-outs",
		},
	)

	RealtimePublishesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "gympass_realtime_publishes_total",
			Help: "Total number of realtime events published",
		},
		[]string{"event", "status"},
	)

	EmailsQueuedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "gympass_emails_queued_total",
			Help: "Total number of emails queued",
		},
		[]string{"type", "status"},
	)

	EntitlementsGrantedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "gympass_entitlements_granted_total",
			Help: "Total number of entitlements granted",
		},
		[]string{"kind"},
	)
)

func RecordHTTPRequest(method, path, status string, duration float64) {
	HTTPRequestsTotal.WithLabelValues(method, path, status).Inc()
	HTTPRequestDuration.WithLabelValues(method, path).Observe(duration)
}

func RecordCheckIn(result, kind string) {
	CheckInsTotal.WithLabelValues(result, kind).Inc()
}

func RecordDecision(status string) {
	CheckInDecisionsTotal.WithLabelValues(status).Inc()
}

func RecordCheckOut() {
	CheckOutsTotal.Inc()
}

func RecordRealtimePublish(event, status string) {
	RealtimePublishesTotal.WithLabelValues(event, status).Inc()
}

func RecordEmail(emailType, status string) {
	EmailsQueuedTotal.WithLabelValues(emailType, status).Inc()
}

func RecordEntitlementGrant(kind string) {
	EntitlementsGrantedTotal.WithLabelValues(kind).Inc()
}
