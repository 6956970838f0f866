package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/xxz807/watertaxi/internal/investor/domain"
	"github.com/xxz807/watertaxi/internal/platform/clock"
)

type CreateInvestorRequest struct {
	Name            string
	SharePercentage string // 传字符串防止精度丢失
}

// InvestorService 投资人名册
type InvestorService struct {
	db     *gorm.DB // 用于开启事务
	repo   domain.InvestorRepository
	clock  clock.Clock
	logger *zap.Logger
}

func NewInvestorService(db *gorm.DB, repo domain.InvestorRepository, clk clock.Clock, logger *zap.Logger) *InvestorService {
	return &InvestorService{
		db:     db,
		repo:   repo,
		clock:  clk,
		logger: logger.Named("investor.service"),
	}
}

// Create 新增投资人
// 份额合计 <= 100 只在这里校验；之后的手工改数不会再被拦截
func (s *InvestorService) Create(ctx context.Context, req CreateInvestorRequest) (*domain.Investor, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, domain.ErrInvalidName
	}

	share, err := decimal.NewFromString(strings.TrimSpace(req.SharePercentage))
	if err != nil {
		return nil, fmt.Errorf("%w: %q", domain.ErrInvalidShare, req.SharePercentage)
	}
	if share.LessThanOrEqual(decimal.Zero) || share.GreaterThan(domain.MaxTotalShare) {
		return nil, domain.ErrInvalidShare
	}
	// 不能超过列精度，否则落库舍入后合计可能超过 100
	if !share.Equal(share.Truncate(domain.ShareScale)) {
		return nil, fmt.Errorf("%w: at most %d decimal places: %s", domain.ErrInvalidShare, domain.ShareScale, share)
	}

	inv := &domain.Investor{
		ID:              uuid.NewString(),
		Name:            name,
		SharePercentage: share,
		CreatedAt:       s.clock.Now(),
	}

	// 锁名册 -> 读合计 -> 插入，并发登记在锁上排队
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := s.repo.LockRoster(ctx, tx); err != nil {
			return fmt.Errorf("lock investor roster: %w", err)
		}
		existing, err := s.repo.ListTx(ctx, tx)
		if err != nil {
			return err
		}
		total := domain.TotalShare(existing).Add(share)
		if total.GreaterThan(domain.MaxTotalShare) {
			return fmt.Errorf("%w: current=%s, requested=%s", domain.ErrShareLimitExceeded, domain.TotalShare(existing), share)
		}
		return s.repo.Create(ctx, tx, inv)
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("investor registered",
		zap.String("investor_id", inv.ID),
		zap.String("share_percentage", inv.SharePercentage.String()),
	)
	return inv, nil
}

// List 当前名册快照，按登记顺序
func (s *InvestorService) List(ctx context.Context) ([]domain.Investor, error) {
	return s.repo.List(ctx)
}

func (s *InvestorService) Delete(ctx context.Context, id string) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.logger.Info("investor removed", zap.String("investor_id", id))
	return nil
}
