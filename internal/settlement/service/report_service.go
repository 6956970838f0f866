package service

import (
	"context"
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/xxz807/watertaxi/internal/settlement/domain"
)

// Period 报表时间区间 [From, To)，零值表示不限
type Period struct {
	From time.Time
	To   time.Time
}

type OwnerSummary struct {
	OwnerID    string
	Trips      int
	GrossFare  decimal.Decimal
	OwnerShare decimal.Decimal
}

type CaptainPayout struct {
	CaptainID  string
	Trips      int
	Commission decimal.Decimal
}

type InvestorPayoutTotal struct {
	InvestorID string
	Name       string
	Trips      int
	Payout     decimal.Decimal
}

type PlatformDashboard struct {
	Trips             int
	GrossFare         decimal.Decimal
	PlatformFee       decimal.Decimal
	InvestorPayouts   decimal.Decimal
	PlatformResidual  decimal.Decimal
	CaptainCommission decimal.Decimal
	OwnerShare        decimal.Decimal
}

// ReportService 基于结算记录的只读报表，金额全部用 decimal 在内存汇总
type ReportService struct {
	repo domain.SettlementRepository
}

func NewReportService(repo domain.SettlementRepository) *ReportService {
	return &ReportService{repo: repo}
}

func (s *ReportService) OwnerSummary(ctx context.Context, ownerID string, p Period) (*OwnerSummary, error) {
	rows, err := s.repo.List(ctx, domain.ListFilter{OwnerID: ownerID, From: p.From, To: p.To})
	if err != nil {
		return nil, err
	}

	out := &OwnerSummary{OwnerID: ownerID, GrossFare: decimal.Zero, OwnerShare: decimal.Zero}
	for _, st := range rows {
		out.Trips++
		out.GrossFare = out.GrossFare.Add(st.FinalFare)
		out.OwnerShare = out.OwnerShare.Add(st.OwnerShare)
	}
	return out, nil
}

// CaptainPayouts 只统计结算时指派给该船长的订单
func (s *ReportService) CaptainPayouts(ctx context.Context, captainID string, p Period) (*CaptainPayout, error) {
	rows, err := s.repo.List(ctx, domain.ListFilter{CaptainID: captainID, From: p.From, To: p.To})
	if err != nil {
		return nil, err
	}

	out := &CaptainPayout{CaptainID: captainID, Commission: decimal.Zero}
	for _, st := range rows {
		out.Trips++
		out.Commission = out.Commission.Add(st.CaptainCommission)
	}
	return out, nil
}

// InvestorPayouts 按投资人汇总，金额从高到低
func (s *ReportService) InvestorPayouts(ctx context.Context, p Period) ([]InvestorPayoutTotal, error) {
	rows, err := s.repo.List(ctx, domain.ListFilter{From: p.From, To: p.To})
	if err != nil {
		return nil, err
	}

	byInvestor := make(map[string]*InvestorPayoutTotal)
	for _, st := range rows {
		for _, payout := range st.InvestorPayouts {
			total, ok := byInvestor[payout.InvestorID]
			if !ok {
				total = &InvestorPayoutTotal{InvestorID: payout.InvestorID, Name: payout.Name, Payout: decimal.Zero}
				byInvestor[payout.InvestorID] = total
			}
			total.Trips++
			total.Payout = total.Payout.Add(payout.Payout)
		}
	}

	out := make([]InvestorPayoutTotal, 0, len(byInvestor))
	for _, total := range byInvestor {
		out = append(out, *total)
	}
	sort.Slice(out, func(i, j int) bool {
		if c := out[i].Payout.Cmp(out[j].Payout); c != 0 {
			return c > 0
		}
		return out[i].InvestorID < out[j].InvestorID
	})
	return out, nil
}

func (s *ReportService) PlatformDashboard(ctx context.Context, p Period) (*PlatformDashboard, error) {
	rows, err := s.repo.List(ctx, domain.ListFilter{From: p.From, To: p.To})
	if err != nil {
		return nil, err
	}

	out := &PlatformDashboard{
		GrossFare:         decimal.Zero,
		PlatformFee:       decimal.Zero,
		InvestorPayouts:   decimal.Zero,
		PlatformResidual:  decimal.Zero,
		CaptainCommission: decimal.Zero,
		OwnerShare:        decimal.Zero,
	}
	for _, st := range rows {
		out.Trips++
		out.GrossFare = out.GrossFare.Add(st.FinalFare)
		out.PlatformFee = out.PlatformFee.Add(st.PlatformFee)
		out.InvestorPayouts = out.InvestorPayouts.Add(st.TotalInvestorPayout())
		out.PlatformResidual = out.PlatformResidual.Add(st.PlatformResidual)
		out.CaptainCommission = out.CaptainCommission.Add(st.CaptainCommission)
		out.OwnerShare = out.OwnerShare.Add(st.OwnerShare)
	}
	return out, nil
}
