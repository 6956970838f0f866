package service

import (
	"context"
	"sync"
	"time"

	"github.com/go-co-op/gocron/v2"
	"go.uber.org/zap"

	"github.com/xxz807/watertaxi/internal/platform/metrics"
	"github.com/xxz807/watertaxi/internal/platform/scheduler"
	"github.com/xxz807/watertaxi/internal/settlement/domain"
)

const ReconcileJobName = "settlement_reconcile"

// ReconcileJob 补结算：扫描已完成但没有结算记录的订单，逐个重新结算
// 每轮从上一轮的游标继续，扫到末尾再回到开头，持续失败的订单不会挡住后面的订单
type ReconcileJob struct {
	svc      *SettlementService
	repo     domain.SettlementRepository
	metrics  *metrics.Metrics
	logger   *zap.Logger
	interval time.Duration
	batch    int

	mu     sync.Mutex
	cursor string // 上一轮最后一个订单 id
}

var _ scheduler.Job = (*ReconcileJob)(nil)

func NewReconcileJob(
	svc *SettlementService,
	repo domain.SettlementRepository,
	m *metrics.Metrics,
	logger *zap.Logger,
	interval time.Duration,
	batch int,
) *ReconcileJob {
	if interval <= 0 {
		interval = time.Minute
	}
	return &ReconcileJob{
		svc:      svc,
		repo:     repo,
		metrics:  m,
		logger:   logger.Named("settlement.reconcile"),
		interval: interval,
		batch:    batch,
	}
}

func (j *ReconcileJob) Name() string {
	return ReconcileJobName
}

func (j *ReconcileJob) Schedule() gocron.JobDefinition {
	return gocron.DurationJob(j.interval)
}

func (j *ReconcileJob) Execute(ctx context.Context) {
	settled, failed := j.Run(ctx)
	if settled+failed > 0 {
		j.logger.Info("reconcile finished", zap.Int("settled", settled), zap.Int("failed", failed))
	}
}

// Run 执行一轮补结算，返回成功和失败的订单数
func (j *ReconcileJob) Run(ctx context.Context) (settled, failed int) {
	j.mu.Lock()
	defer j.mu.Unlock()

	ids, err := j.repo.FindUnsettledBookingIDs(ctx, j.cursor, j.batch)
	if err != nil {
		j.logger.Error("query unsettled bookings failed", zap.Error(err))
		return 0, 0
	}

	// 不满一页说明已到末尾，下一轮从头开始
	if j.batch <= 0 || len(ids) < j.batch {
		j.cursor = ""
	} else {
		j.cursor = ids[len(ids)-1]
	}
	if len(ids) == 0 {
		return 0, 0
	}

	for _, r := range j.svc.SettleJourney(ctx, ids) {
		if r.Err != nil {
			failed++
			j.logger.Warn("reconcile booking failed", zap.String("booking_id", r.BookingID), zap.Error(r.Err))
			continue
		}
		settled++
	}

	j.metrics.ObserveReconcile(settled, failed)
	return settled, failed
}
