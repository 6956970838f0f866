package service

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/panjf2000/ants/v2"
	"go.uber.org/zap"

	bookingdomain "github.com/xxz807/watertaxi/internal/booking/domain"
	investordomain "github.com/xxz807/watertaxi/internal/investor/domain"
	"github.com/xxz807/watertaxi/internal/platform/clock"
	"github.com/xxz807/watertaxi/internal/platform/metrics"
	"github.com/xxz807/watertaxi/internal/settlement/domain"
)

// DefaultJourneyWorkers 未配置时批量结算的并发数
const DefaultJourneyWorkers = 8

// SettlementService 结算编排：取订单、取船长、取名册快照、计算、落库
type SettlementService struct {
	repo     domain.SettlementRepository
	bookings BookingSource
	captains CaptainLookup
	roster   InvestorRoster
	clock    clock.Clock
	metrics  *metrics.Metrics
	logger   *zap.Logger

	journeyWorkers int
}

func NewSettlementService(
	repo domain.SettlementRepository,
	bookings BookingSource,
	captains CaptainLookup,
	roster InvestorRoster,
	clk clock.Clock,
	m *metrics.Metrics,
	logger *zap.Logger,
	journeyWorkers int,
) *SettlementService {
	if journeyWorkers <= 0 {
		journeyWorkers = DefaultJourneyWorkers
	}
	return &SettlementService{
		repo:           repo,
		bookings:       bookings,
		captains:       captains,
		roster:         roster,
		clock:          clk,
		metrics:        m,
		logger:         logger.Named("settlement.service"),
		journeyWorkers: journeyWorkers,
	}
}

// SettleBooking 结算单个订单，重复调用以最新结果覆盖同一条记录
func (s *SettlementService) SettleBooking(ctx context.Context, bookingID string) (*domain.Settlement, error) {
	start := time.Now()
	settlement, err := s.settle(ctx, bookingID)
	if err != nil {
		s.metrics.ObserveSettlement(metrics.ResultFailed, time.Since(start))
		s.logger.Warn("settlement failed", zap.String("booking_id", bookingID), zap.Error(err))
		return nil, err
	}

	s.metrics.ObserveSettlement(metrics.ResultSettled, time.Since(start))
	s.recordAmounts(settlement)
	s.logger.Info("booking settled",
		zap.String("booking_id", settlement.BookingID),
		zap.String("final_fare", settlement.FinalFare.String()),
		zap.String("platform_fee", settlement.PlatformFee.String()),
		zap.String("platform_residual", settlement.PlatformResidual.String()),
		zap.String("captain_commission", settlement.CaptainCommission.String()),
		zap.String("owner_share", settlement.OwnerShare.String()),
		zap.Int("investors", len(settlement.InvestorPayouts)),
	)
	return settlement, nil
}

func (s *SettlementService) settle(ctx context.Context, bookingID string) (*domain.Settlement, error) {
	// 1. 订单
	booking, err := s.bookings.FindByID(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	if booking.Status != bookingdomain.StatusCompleted {
		return nil, fmt.Errorf("%w: booking %s is %s", domain.ErrBookingNotCompleted, booking.ID, booking.Status)
	}

	// 2. 没有最终票价不结算
	if !booking.FinalFare.Valid {
		return nil, fmt.Errorf("%w: booking %s", domain.ErrFinalFareMissing, booking.ID)
	}

	// 3. 船长；查不到只记日志，按无船长结算
	captainID, err := s.captains.CaptainFor(ctx, booking.BoatID)
	if err != nil {
		s.logger.Warn("captain lookup failed, settling without captain",
			zap.String("booking_id", booking.ID),
			zap.String("boat_id", booking.BoatID),
			zap.Error(err),
		)
		captainID = nil
	}

	// 4. 名册快照
	roster, err := s.rosterSnapshot(ctx)
	if err != nil {
		return nil, err
	}

	// 5. 计算
	settlement := domain.Settle(domain.SettleInput{
		BookingID:         booking.ID,
		BoatID:            booking.BoatID,
		OwnerID:           booking.OwnerID,
		CaptainID:         captainID,
		BaseFare:          booking.BaseFare,
		AdjustmentPercent: booking.AdjustmentPercent,
		FinalFare:         booking.FinalFare.Decimal,
		CompletedAt:       s.clock.Now(),
	}, roster)

	// 6. 落库
	if err := s.repo.Upsert(ctx, settlement); err != nil {
		return nil, fmt.Errorf("persist settlement %s: %w", booking.ID, err)
	}
	return settlement, nil
}

func (s *SettlementService) rosterSnapshot(ctx context.Context) ([]domain.RosterEntry, error) {
	investors, err := s.roster.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("load investor roster: %w", err)
	}

	roster := make([]domain.RosterEntry, 0, len(investors))
	for _, inv := range investors {
		roster = append(roster, domain.RosterEntry{
			InvestorID:      inv.ID,
			Name:            inv.Name,
			SharePercentage: inv.SharePercentage,
		})
	}

	if total := domain.RosterShareTotal(roster); total.GreaterThan(investordomain.MaxTotalShare) {
		return nil, fmt.Errorf("%w: total=%s", domain.ErrInvestorSharesExceeded, total)
	}
	return roster, nil
}

// SettleJourney 批量结算，每个订单独立计算、独立落库
// 返回结果与入参一一对应；单个失败不影响其它订单
func (s *SettlementService) SettleJourney(ctx context.Context, bookingIDs []string) []domain.Result {
	results := make([]domain.Result, len(bookingIDs))
	if len(bookingIDs) == 0 {
		return results
	}

	size := s.journeyWorkers
	if len(bookingIDs) < size {
		size = len(bookingIDs)
	}
	pool, err := ants.NewPool(size)
	if err != nil {
		for i, id := range bookingIDs {
			results[i] = domain.Result{BookingID: id, Err: fmt.Errorf("create worker pool: %w", err)}
		}
		return results
	}
	defer pool.Release()

	var wg sync.WaitGroup
	for i, id := range bookingIDs {
		results[i].BookingID = id

		wg.Add(1)
		submitErr := pool.Submit(func() {
			defer wg.Done()
			results[i].Settlement, results[i].Err = s.SettleBooking(ctx, id)
		})
		if submitErr != nil {
			wg.Done()
			results[i].Err = fmt.Errorf("submit settlement task: %w", submitErr)
		}
	}
	wg.Wait()

	failed := 0
	for _, r := range results {
		if r.Err != nil {
			failed++
		}
	}
	s.logger.Info("journey settled",
		zap.Int("bookings", len(results)),
		zap.Int("failed", failed),
	)
	return results
}

func (s *SettlementService) Get(ctx context.Context, bookingID string) (*domain.Settlement, error) {
	return s.repo.FindByBookingID(ctx, bookingID)
}

func (s *SettlementService) List(ctx context.Context, filter domain.ListFilter) ([]domain.Settlement, error) {
	return s.repo.List(ctx, filter)
}

func (s *SettlementService) recordAmounts(st *domain.Settlement) {
	s.metrics.AddSettledAmount(metrics.ComponentFare, st.FinalFare.InexactFloat64())
	s.metrics.AddSettledAmount(metrics.ComponentPlatformFee, st.PlatformFee.InexactFloat64())
	s.metrics.AddSettledAmount(metrics.ComponentInvestor, st.TotalInvestorPayout().InexactFloat64())
	s.metrics.AddSettledAmount(metrics.ComponentResidual, st.PlatformResidual.InexactFloat64())
	s.metrics.AddSettledAmount(metrics.ComponentCaptain, st.CaptainCommission.InexactFloat64())
	s.metrics.AddSettledAmount(metrics.ComponentOwner, st.OwnerShare.InexactFloat64())
}
