package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const (
	ResultSettled = "settled"
	ResultFailed  = "failed"
)

// 结算金额按去向拆分的 label
const (
	ComponentFare        = "fare"
	ComponentPlatformFee = "platform_fee"
	ComponentInvestor    = "investor"
	ComponentResidual    = "platform_residual"
	ComponentCaptain     = "captain"
	ComponentOwner       = "owner"
)

// Metrics 结算相关的 Prometheus 指标，nil 接收者上的调用全部是 no-op
type Metrics struct {
	settlements    *prometheus.CounterVec
	settleDuration prometheus.Histogram
	settledAmount  *prometheus.CounterVec
	reconcileRuns  *prometheus.CounterVec
}

func New(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		settlements: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "watertaxi",
			Name:      "settlements_total",
			Help:      "Settlement attempts by result.",
		}, []string{"result"}),
		settleDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "watertaxi",
			Name:      "settlement_duration_seconds",
			Help:      "Time to compute and persist one settlement.",
			Buckets:   prometheus.DefBuckets,
		}),
		settledAmount: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "watertaxi",
			Name:      "settled_amount_total",
			Help:      "Money distributed by settlements, by component.",
		}, []string{"component"}),
		reconcileRuns: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "watertaxi",
			Name:      "reconcile_bookings_total",
			Help:      "Bookings handled by the reconcile job, by result.",
		}, []string{"result"}),
	}
	reg.MustRegister(m.settlements, m.settleDuration, m.settledAmount, m.reconcileRuns)
	return m
}

func (m *Metrics) ObserveSettlement(result string, elapsed time.Duration) {
	if m == nil {
		return
	}
	m.settlements.WithLabelValues(result).Inc()
	m.settleDuration.Observe(elapsed.Seconds())
}

func (m *Metrics) AddSettledAmount(component string, amount float64) {
	if m == nil || amount <= 0 {
		return
	}
	m.settledAmount.WithLabelValues(component).Add(amount)
}

func (m *Metrics) ObserveReconcile(settled, failed int) {
	if m == nil {
		return
	}
	m.reconcileRuns.WithLabelValues(ResultSettled).Add(float64(settled))
	m.reconcileRuns.WithLabelValues(ResultFailed).Add(float64(failed))
}
