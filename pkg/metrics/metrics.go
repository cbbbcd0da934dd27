package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics набор prometheus метрик сервиса
// Все методы безопасно вызывать на nil (метрики выключены)
type Metrics struct {
	HTTPRequestsTotal   *prometheus.CounterVec
	HTTPRequestDuration *prometheus.HistogramVec

	DBQueryDuration   *prometheus.HistogramVec
	DBQueryErrors     *prometheus.CounterVec
	DBOpenConnections *prometheus.GaugeVec
	DBInUse           *prometheus.GaugeVec
	DBIdle            *prometheus.GaugeVec

	BookingsCreated            *prometheus.CounterVec
	BookingStatusChanges       *prometheus.CounterVec
	CouponsRedeemed            *prometheus.CounterVec
	CouponRejections           *prometheus.CounterVec
	VendorApplicationsReviewed *prometheus.CounterVec
	CouponsExpired             prometheus.Counter
}

// New создает метрики и регистрирует их в prometheus.DefaultRegisterer
func New(serviceName string) *Metrics {
	return NewWithRegisterer(prometheus.DefaultRegisterer, serviceName)
}

// NewWithRegisterer создает метрики и регистрирует их в переданном registerer
func NewWithRegisterer(reg prometheus.Registerer, serviceName string) *Metrics {
	constLabels := prometheus.Labels{"service": serviceName}

	m := &Metrics{
		HTTPRequestsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name:        "http_requests_total",
			Help:        "Total number of HTTP requests",
			ConstLabels: constLabels,
		}, []string{"method", "path", "status"}),
		HTTPRequestDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:        "http_request_duration_seconds",
			Help:        "HTTP request latency",
			ConstLabels: constLabels,
			Buckets:     prometheus.DefBuckets,
		}, []string{"method", "path"}),
		DBQueryDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:        "db_query_duration_seconds",
			Help:        "Database query latency",
			ConstLabels: constLabels,
			Buckets:     []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1},
		}, []string{"operation"}),
		DBQueryErrors: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name:        "db_query_errors_total",
			Help:        "Total number of failed database queries",
			ConstLabels: constLabels,
		}, []string{"operation"}),
		DBOpenConnections: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name:        "db_open_connections",
			Help:        "Number of established connections",
			ConstLabels: constLabels,
		}, []string{"db"}),
		DBInUse: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name:        "db_in_use_connections",
			Help:        "Number of connections currently in use",
			ConstLabels: constLabels,
		}, []string{"db"}),
		DBIdle: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name:        "db_idle_connections",
			Help:        "Number of idle connections",
			ConstLabels: constLabels,
		}, []string{"db"}),
		BookingsCreated: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name:        "bookings_created_total",
			Help:        "Total number of created bookings",
			ConstLabels: constLabels,
		}, []string{"payment_method", "with_coupon"}),
		BookingStatusChanges: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name:        "booking_status_changes_total",
			Help:        "Total number of booking status transitions",
			ConstLabels: constLabels,
		}, []string{"status"}),
		CouponsRedeemed: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name:        "coupons_redeemed_total",
			Help:        "Total number of coupon redemptions",
			ConstLabels: constLabels,
		}, []string{"discount_type"}),
		CouponRejections: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name:        "coupon_rejections_total",
			Help:        "Total number of rejected coupon applications",
			ConstLabels: constLabels,
		}, []string{"reason"}),
		VendorApplicationsReviewed: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name:        "vendor_applications_reviewed_total",
			Help:        "Total number of reviewed vendor applications",
			ConstLabels: constLabels,
		}, []string{"decision"}),
		CouponsExpired: prometheus.NewCounter(prometheus.CounterOpts{
			Name:        "coupons_expired_total",
			Help:        "Total number of coupons deactivated by the expiry sweeper",
			ConstLabels: constLabels,
		}),
	}

	reg.MustRegister(
		m.HTTPRequestsTotal,
		m.HTTPRequestDuration,
		m.DBQueryDuration,
		m.DBQueryErrors,
		m.DBOpenConnections,
		m.DBInUse,
		m.DBIdle,
		m.BookingsCreated,
		m.BookingStatusChanges,
		m.CouponsRedeemed,
		m.CouponRejections,
		m.VendorApplicationsReviewed,
		m.CouponsExpired,
	)

	return m
}

// ObserveHTTPRequest записывает метрики HTTP запроса
func (m *Metrics) ObserveHTTPRequest(method, path, status string, seconds float64) {
	if m == nil {
		return
	}
	m.HTTPRequestsTotal.WithLabelValues(method, path, status).Inc()
	m.HTTPRequestDuration.WithLabelValues(method, path).Observe(seconds)
}

// ObserveDBQuery записывает длительность запроса к БД
func (m *Metrics) ObserveDBQuery(operation string, seconds float64, err error) {
	if m == nil {
		return
	}
	m.DBQueryDuration.WithLabelValues(operation).Observe(seconds)
	if err != nil {
		m.DBQueryErrors.WithLabelValues(operation).Inc()
	}
}

// SetDBPoolStats обновляет метрики пула соединений
func (m *Metrics) SetDBPoolStats(db string, open, inUse, idle int) {
	if m == nil {
		return
	}
	m.DBOpenConnections.WithLabelValues(db).Set(float64(open))
	m.DBInUse.WithLabelValues(db).Set(float64(inUse))
	m.DBIdle.WithLabelValues(db).Set(float64(idle))
}

// IncBookingCreated учитывает созданное бронирование
func (m *Metrics) IncBookingCreated(paymentMethod string, withCoupon bool) {
	if m == nil {
		return
	}
	coupon := "false"
	if withCoupon {
		coupon = "true"
	}
	m.BookingsCreated.WithLabelValues(paymentMethod, coupon).Inc()
}

// IncBookingStatusChanged учитывает переход бронирования в новый статус
func (m *Metrics) IncBookingStatusChanged(status string) {
	if m == nil {
		return
	}
	m.BookingStatusChanges.WithLabelValues(status).Inc()
}

// IncCouponRedeemed учитывает применение купона
func (m *Metrics) IncCouponRedeemed(discountType string) {
	if m == nil {
		return
	}
	m.CouponsRedeemed.WithLabelValues(discountType).Inc()
}

// IncCouponRejected учитывает отклонённый купон (reason: not_found, expired, usage_exceeded, below_minimum)
func (m *Metrics) IncCouponRejected(reason string) {
	if m == nil {
		return
	}
	m.CouponRejections.WithLabelValues(reason).Inc()
}

// IncVendorApplicationReviewed учитывает решение по заявке вендора
func (m *Metrics) IncVendorApplicationReviewed(decision string) {
	if m == nil {
		return
	}
	m.VendorApplicationsReviewed.WithLabelValues(decision).Inc()
}

// AddCouponsExpired учитывает купоны, деактивированные по истечении срока
func (m *Metrics) AddCouponsExpired(n int64) {
	if m == nil || n <= 0 {
		return
	}
	m.CouponsExpired.Add(float64(n))
}
