package metrics

import (
	"strings"

	"github.com/prometheus/client_golang/prometheus"
)

// Metrics набор Prometheus метрик сервиса
type Metrics struct {
	HTTPRequestsTotal   *prometheus.CounterVec
	HTTPRequestDuration *prometheus.HistogramVec

	DBQueryDuration    *prometheus.HistogramVec
	DBOpenConnections  prometheus.Gauge
	DBInUseConnections prometheus.Gauge
	DBIdleConnections  prometheus.Gauge
	DBWaitCount        prometheus.Gauge

	LinesCreatedTotal     *prometheus.CounterVec
	SlotConflictsTotal    *prometheus.CounterVec
	DiscountsAppliedTotal *prometheus.CounterVec
}

// New создает метрики и регистрирует их в глобальном реестре
func New(serviceName string) *Metrics {
	return NewWithRegistry(serviceName, prometheus.DefaultRegisterer)
}

// NewWithRegistry создает метрики в указанном реестре (в тестах используется отдельный реестр)
func NewWithRegistry(serviceName string, reg prometheus.Registerer) *Metrics {
	ns := namespace(serviceName)

	m := &Metrics{
		HTTPRequestsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: ns,
			Name:      "http_requests_total",
			Help:      "Total number of HTTP requests",
		}, []string{"method", "route", "status"}),
		HTTPRequestDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: ns,
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request latency",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method", "route"}),
		DBQueryDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: ns,
			Name:      "db_query_duration_seconds",
			Help:      "Database query latency",
			Buckets:   []float64{.001, .0025, .005, .01, .025, .05, .1, .25, .5, 1},
		}, []string{"operation", "status"}),
		DBOpenConnections: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: ns,
			Name:      "db_open_connections",
			Help:      "Number of established connections",
		}),
		DBInUseConnections: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: ns,
			Name:      "db_in_use_connections",
			Help:      "Number of connections currently in use",
		}),
		DBIdleConnections: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: ns,
			Name:      "db_idle_connections",
			Help:      "Number of idle connections",
		}),
		DBWaitCount: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: ns,
			Name:      "db_wait_count",
			Help:      "Total number of connections waited for",
		}),
		LinesCreatedTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: ns,
			Name:      "reservation_lines_created_total",
			Help:      "Reservation lines created by kind",
		}, []string{"kind"}),
		SlotConflictsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: ns,
			Name:      "slot_conflicts_total",
			Help:      "Rejected service lines by unavailability reason",
		}, []string{"reason"}),
		DiscountsAppliedTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: ns,
			Name:      "discount_packs_applied_total",
			Help:      "Discount packs applied during total recomputation",
		}, []string{"pack"}),
	}

	reg.MustRegister(
		m.HTTPRequestsTotal,
		m.HTTPRequestDuration,
		m.DBQueryDuration,
		m.DBOpenConnections,
		m.DBInUseConnections,
		m.DBIdleConnections,
		m.DBWaitCount,
		m.LinesCreatedTotal,
		m.SlotConflictsTotal,
		m.DiscountsAppliedTotal,
	)

	return m
}

// RecordLineCreated увеличивает счетчик созданных строк
func (m *Metrics) RecordLineCreated(kind string) {
	m.LinesCreatedTotal.WithLabelValues(kind).Inc()
}

// RecordSlotConflict увеличивает счетчик отказов по причине недоступности слота
func (m *Metrics) RecordSlotConflict(reason string) {
	m.SlotConflictsTotal.WithLabelValues(reason).Inc()
}

// RecordDiscountApplied увеличивает счетчик примененных пакетов
func (m *Metrics) RecordDiscountApplied(pack string) {
	m.DiscountsAppliedTotal.WithLabelValues(pack).Inc()
}

// Nop заглушка, когда метрики выключены
type Nop struct{}

func (Nop) RecordLineCreated(string)     {}
func (Nop) RecordSlotConflict(string)    {}
func (Nop) RecordDiscountApplied(string) {}

func namespace(serviceName string) string {
	ns := strings.ToLower(strings.TrimSpace(serviceName))
	ns = strings.NewReplacer("-", "_", " ", "_", ".", "_").Replace(ns)
	if ns == "" {
		return "spa_booking"
	}
	return ns
}
