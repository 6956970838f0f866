package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/xxz807/watertaxi/internal/booking/domain"
	fleetdomain "github.com/xxz807/watertaxi/internal/fleet/domain"
	"github.com/xxz807/watertaxi/internal/platform/clock"
	settlementdomain "github.com/xxz807/watertaxi/internal/settlement/domain"
)

// BoatDirectory 下单时查询船只归属
type BoatDirectory interface {
	GetBoat(ctx context.Context, id string) (*fleetdomain.Boat, error)
}

// Settler 订单完成时触发结算
type Settler interface {
	SettleBooking(ctx context.Context, bookingID string) (*settlementdomain.Settlement, error)
	SettleJourney(ctx context.Context, bookingIDs []string) []settlementdomain.Result
}

type CreateBookingRequest struct {
	BoatID      string
	RiderName   string
	Origin      string
	Destination string
	BaseFare    string // 传字符串防止精度丢失
}

// TransitionResult 状态流转结果；流转成功但结算失败时 SettlementErr 非空
type TransitionResult struct {
	Booking       *domain.Booking
	Settlement    *settlementdomain.Settlement
	SettlementErr error
}

// JourneyOutcome 一次航程中单个订单的结果
type JourneyOutcome struct {
	BookingID  string
	Booking    *domain.Booking
	Settlement *settlementdomain.Settlement
	Err        error
}

type BookingService struct {
	repo    domain.BookingRepository
	boats   BoatDirectory
	settler Settler
	clock   clock.Clock
	logger  *zap.Logger
}

func NewBookingService(
	repo domain.BookingRepository,
	boats BoatDirectory,
	settler Settler,
	clk clock.Clock,
	logger *zap.Logger,
) *BookingService {
	return &BookingService{
		repo:    repo,
		boats:   boats,
		settler: settler,
		clock:   clk,
		logger:  logger.Named("booking.service"),
	}
}

// Create 下单，订单归属船只当前的船东
func (s *BookingService) Create(ctx context.Context, req CreateBookingRequest) (*domain.Booking, error) {
	// 1. 基础校验
	rider := strings.TrimSpace(req.RiderName)
	if rider == "" {
		return nil, fmt.Errorf("%w: rider name is required", domain.ErrInvalidBooking)
	}
	baseFare, err := decimal.NewFromString(strings.TrimSpace(req.BaseFare))
	if err != nil {
		return nil, fmt.Errorf("%w: invalid amount format: %s", domain.ErrInvalidFare, req.BaseFare)
	}
	if baseFare.LessThanOrEqual(decimal.Zero) {
		return nil, fmt.Errorf("%w: base fare must be positive", domain.ErrInvalidFare)
	}

	// 2. 查船东
	boat, err := s.boats.GetBoat(ctx, req.BoatID)
	if err != nil {
		return nil, err
	}

	b := &domain.Booking{
		ID:                uuid.NewString(),
		BoatID:            boat.ID,
		OwnerID:           boat.OwnerID,
		RiderName:         rider,
		Origin:            strings.TrimSpace(req.Origin),
		Destination:       strings.TrimSpace(req.Destination),
		BaseFare:          baseFare,
		AdjustmentPercent: decimal.Zero,
		Status:            domain.StatusPending,
		Version:           1,
	}
	if err := s.repo.Create(ctx, b); err != nil {
		return nil, err
	}

	s.logger.Info("booking created",
		zap.String("booking_id", b.ID),
		zap.String("boat_id", b.BoatID),
		zap.String("base_fare", b.BaseFare.String()),
	)
	return b, nil
}

func (s *BookingService) Get(ctx context.Context, id string) (*domain.Booking, error) {
	return s.repo.FindByID(ctx, id)
}

// AdjustFare 调价并锁定最终票价
func (s *BookingService) AdjustFare(ctx context.Context, id string, percent string) (*domain.Booking, error) {
	pct, err := decimal.NewFromString(strings.TrimSpace(percent))
	if err != nil {
		return nil, fmt.Errorf("%w: invalid adjustment percent: %s", domain.ErrInvalidFare, percent)
	}

	b, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := b.AdjustFare(pct); err != nil {
		return nil, err
	}
	if err := s.repo.Update(ctx, b); err != nil {
		return nil, err
	}

	s.logger.Info("fare adjusted",
		zap.String("booking_id", b.ID),
		zap.String("adjustment_percent", pct.String()),
		zap.String("final_fare", b.FinalFare.Decimal.String()),
	)
	return b, nil
}

// Transition 单个订单状态流转；流转到 completed 时立即结算
// 结算失败不回滚状态，由对账任务补结算
func (s *BookingService) Transition(ctx context.Context, id string, next domain.Status) (*TransitionResult, error) {
	b, err := s.transition(ctx, id, next)
	if err != nil {
		return nil, err
	}

	result := &TransitionResult{Booking: b}
	if next != domain.StatusCompleted {
		return result, nil
	}

	result.Settlement, result.SettlementErr = s.settler.SettleBooking(ctx, b.ID)
	if result.SettlementErr != nil {
		s.logger.Error("settlement after completion failed",
			zap.String("booking_id", b.ID),
			zap.Error(result.SettlementErr),
		)
	}
	return result, nil
}

// CompleteJourney 一次航程内的订单一起完成
// 每个订单独立流转、独立结算，一个失败不影响其它订单；结果顺序与入参一致
func (s *BookingService) CompleteJourney(ctx context.Context, bookingIDs []string) []JourneyOutcome {
	outcomes := make([]JourneyOutcome, 0, len(bookingIDs))
	index := make(map[string]int, len(bookingIDs))
	var toSettle []string

	for _, id := range bookingIDs {
		if _, dup := index[id]; dup {
			continue
		}
		index[id] = len(outcomes)

		b, err := s.transition(ctx, id, domain.StatusCompleted)
		outcomes = append(outcomes, JourneyOutcome{BookingID: id, Booking: b, Err: err})
		if err != nil {
			s.logger.Warn("journey booking not completed", zap.String("booking_id", id), zap.Error(err))
			continue
		}
		toSettle = append(toSettle, id)
	}

	if len(toSettle) == 0 {
		return outcomes
	}

	for _, r := range s.settler.SettleJourney(ctx, toSettle) {
		i, ok := index[r.BookingID]
		if !ok {
			continue
		}
		outcomes[i].Settlement = r.Settlement
		outcomes[i].Err = r.Err
	}

	settled := 0
	for _, o := range outcomes {
		if o.Err == nil {
			settled++
		}
	}
	s.logger.Info("journey completed",
		zap.Int("bookings", len(outcomes)),
		zap.Int("settled", settled),
	)
	return outcomes
}

func (s *BookingService) transition(ctx context.Context, id string, next domain.Status) (*domain.Booking, error) {
	b, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	from := b.Status
	if err := b.TransitionTo(next, s.clock.Now()); err != nil {
		return nil, err
	}
	if err := s.repo.Update(ctx, b); err != nil {
		if errors.Is(err, domain.ErrConcurrentUpdate) {
			return nil, fmt.Errorf("booking %s: %w", id, err)
		}
		return nil, err
	}

	s.logger.Info("booking status changed",
		zap.String("booking_id", b.ID),
		zap.String("from", string(from)),
		zap.String("to", string(b.Status)),
	)
	return b, nil
}
