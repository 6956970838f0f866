package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	bookingdomain "github.com/xxz807/watertaxi/internal/booking/domain"
	"github.com/xxz807/watertaxi/internal/settlement/adapter/repo"
	"github.com/xxz807/watertaxi/internal/settlement/domain"
)

func TestReconcileJob_SettlesMissingRecords(t *testing.T) {
	f := setupSettlementService(t)
	ctx := context.Background()
	f.addBooking(t, "already", bookingdomain.StatusCompleted, "1000")
	f.addBooking(t, "dropped", bookingdomain.StatusCompleted, "500")
	f.addBooking(t, "in-flight", bookingdomain.StatusConfirmed, "800")
	f.captains.On("CaptainFor", mock.Anything, "boat-1").Return(captain("captain-1"), nil)
	f.roster.On("List", mock.Anything).Return(investors("50"), nil)

	_, err := f.svc.SettleBooking(ctx, "already")
	require.NoError(t, err)

	job := NewReconcileJob(f.svc, f.repo, f.metrics, zap.NewNop(), time.Minute, 10)
	assert.Equal(t, ReconcileJobName, job.Name())
	assert.NotNil(t, job.Schedule())

	settled, failed := job.Run(ctx)
	assert.Equal(t, 1, settled)
	assert.Equal(t, 0, failed)

	s, err := f.svc.Get(ctx, "dropped")
	require.NoError(t, err)
	assertDecimal(t, "100", s.PlatformFee, "platform fee")

	_, err = f.svc.Get(ctx, "in-flight")
	assert.ErrorIs(t, err, domain.ErrSettlementNotFound)

	// 第二轮没有遗漏
	settled, failed = job.Run(ctx)
	assert.Zero(t, settled)
	assert.Zero(t, failed)
}

func TestReconcileJob_CountsFailures(t *testing.T) {
	f := setupSettlementService(t)
	ctx := context.Background()
	f.addBooking(t, "b1", bookingdomain.StatusCompleted, "1000")
	f.captains.On("CaptainFor", mock.Anything, "boat-1").Return(nil, nil)
	f.roster.On("List", mock.Anything).Return(investors("80", "30"), nil)

	job := NewReconcileJob(f.svc, f.repo, f.metrics, zap.NewNop(), 0, 0)
	settled, failed := job.Run(ctx)
	assert.Equal(t, 0, settled)
	assert.Equal(t, 1, failed)

	assert.NotPanics(t, func() { job.Execute(ctx) })
}

// brokenRowsRepo 对指定订单的写入始终失败
type brokenRowsRepo struct {
	*repo.GormSettlementRepo
	broken map[string]bool
}

func (r *brokenRowsRepo) Upsert(ctx context.Context, s *domain.Settlement) error {
	if r.broken[s.BookingID] {
		return errors.New("row rejected by storage")
	}
	return r.GormSettlementRepo.Upsert(ctx, s)
}

func TestReconcileJob_PermanentFailuresDoNotStarveNewerBookings(t *testing.T) {
	f := setupSettlementService(t)
	ctx := context.Background()
	for _, id := range []string{"a1", "a2", "b1"} {
		f.addBooking(t, id, bookingdomain.StatusCompleted, "1000")
	}
	f.captains.On("CaptainFor", mock.Anything, "boat-1").Return(nil, nil)
	f.roster.On("List", mock.Anything).Return(investors(), nil)

	broken := &brokenRowsRepo{GormSettlementRepo: f.repo, broken: map[string]bool{"a1": true, "a2": true}}
	svc := NewSettlementService(broken, f.bookings, f.captains, f.roster, f.clock, nil, zap.NewNop(), 2)
	job := NewReconcileJob(svc, broken, nil, zap.NewNop(), time.Minute, 2)

	// 第一页全是坏行
	settled, failed := job.Run(ctx)
	assert.Equal(t, 0, settled)
	assert.Equal(t, 2, failed)

	// 第二轮越过它们
	settled, failed = job.Run(ctx)
	assert.Equal(t, 1, settled)
	assert.Equal(t, 0, failed)
	_, err := f.svc.Get(ctx, "b1")
	require.NoError(t, err)

	// 扫到末尾后回到开头重试
	settled, failed = job.Run(ctx)
	assert.Equal(t, 0, settled)
	assert.Equal(t, 2, failed)
}
