package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// PaymentMetrics covers the money-relevant paths: creation, callback
// verification outcomes, signature failures and the expiry sweep.
type PaymentMetrics struct {
	PaymentsCreatedTotal      prometheus.CounterVec
	PaymentRetriesTotal       prometheus.CounterVec
	CallbacksTotal            prometheus.CounterVec
	SignatureFailuresTotal    prometheus.CounterVec
	ExpiredPaymentsTotal      prometheus.Counter
	RefundsTotal              prometheus.CounterVec
	CallbackDurationSeconds   prometheus.HistogramVec
	OrdersCancelledTotal      prometheus.CounterVec
	GatewayErrorsTotal        prometheus.CounterVec
}

func NewPaymentMetrics() *PaymentMetrics {
	return &PaymentMetrics{
		PaymentsCreatedTotal: *promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "payments_created_total",
				Help: "Payments created, by method",
			},
			[]string{"method"},
		),

		PaymentRetriesTotal: *promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "payment_retries_total",
				Help: "Create-payment calls that reused an existing pending payment",
			},
			[]string{"method"},
		),

		CallbacksTotal: *promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "payment_callbacks_total",
				Help: "Verified gateway callbacks, by provider and outcome",
			},
			[]string{"provider", "status"},
		),

		SignatureFailuresTotal: *promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "payment_signature_failures_total",
				Help: "Callback signature verification failures, by provider",
			},
			[]string{"provider"},
		),

		ExpiredPaymentsTotal: promauto.NewCounter(
			prometheus.CounterOpts{
				Name: "payments_expired_total",
				Help: "Pending payments cancelled by the expiry sweep",
			},
		),

		RefundsTotal: *promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "payment_refunds_total",
				Help: "Refund attempts, by provider and result",
			},
			[]string{"provider", "result"},
		),

		CallbackDurationSeconds: *promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "payment_callback_duration_seconds",
				Help:    "Callback processing time in seconds",
				Buckets: prometheus.ExponentialBuckets(0.01, 2, 10),
			},
			[]string{"provider"},
		),

		OrdersCancelledTotal: *promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "orders_cancelled_total",
				Help: "Orders cancelled, by trigger (user, expiry)",
			},
			[]string{"trigger"},
		),

		GatewayErrorsTotal: *promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "payment_gateway_errors_total",
				Help: "Outbound gateway call failures, by provider",
			},
			[]string{"provider"},
		),
	}
}

func (m *PaymentMetrics) RecordPaymentCreated(method string) {
	m.PaymentsCreatedTotal.WithLabelValues(method).Inc()
}

func (m *PaymentMetrics) RecordPaymentRetry(method string) {
	m.PaymentRetriesTotal.WithLabelValues(method).Inc()
}

func (m *PaymentMetrics) RecordCallback(provider, status string, durationSeconds float64) {
	m.CallbacksTotal.WithLabelValues(provider, status).Inc()
	m.CallbackDurationSeconds.WithLabelValues(provider).Observe(durationSeconds)
}

func (m *PaymentMetrics) RecordSignatureFailure(provider string) {
	m.SignatureFailuresTotal.WithLabelValues(provider).Inc()
}

func (m *PaymentMetrics) RecordExpiredPayment() {
	m.ExpiredPaymentsTotal.Inc()
}

func (m *PaymentMetrics) RecordRefund(provider string, ok bool) {
	result := "failed"
	if ok {
		result = "ok"
	}
	m.RefundsTotal.WithLabelValues(provider, result).Inc()
}

func (m *PaymentMetrics) RecordOrderCancelled(trigger string) {
	m.OrdersCancelledTotal.WithLabelValues(trigger).Inc()
}

func (m *PaymentMetrics) RecordGatewayError(provider string) {
	m.GatewayErrorsTotal.WithLabelValues(provider).Inc()
}
