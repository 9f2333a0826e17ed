// internal/metrics/metrics.go
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	OrdersCreatedTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "backoffice_orders_created_total",
		Help: "Orders created, labelled by store",
	}, []string{"store_id"})

	OrdersCreatedAmountTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "backoffice_orders_created_amount_total",
		Help: "Total amount of created orders, labelled by store",
	}, []string{"store_id"})

	OrderStatusTransitionsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "backoffice_order_status_transitions_total",
		Help: "Order status transitions, labelled by target status",
	}, []string{"status"})

	OtpIssuedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "backoffice_otp_issued_total",
		Help: "One-time codes issued",
	})

	OtpVerifiedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "backoffice_otp_verified_total",
		Help: "Successful OTP verifications",
	})

	OtpFailedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "backoffice_otp_failed_total",
		Help: "Failed OTP verifications",
	})

	NotificationsPublishedTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "backoffice_notifications_published_total",
		Help: "Notification events published to the fan-out channel",
	}, []string{"event"})

	NotificationPublishErrorsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "backoffice_notification_publish_errors_total",
		Help: "Notification fan-out publish failures",
	})

	HTTPRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "backoffice_http_request_duration_seconds",
		Help:    "HTTP request latency",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "path", "status"})
)
