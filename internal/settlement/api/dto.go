package api

import (
	"time"

	"github.com/xxz807/watertaxi/internal/settlement/domain"
	"github.com/xxz807/watertaxi/internal/settlement/service"
)

// ListSettlementsReq GET /settlements 查询参数，时间格式 RFC3339
type ListSettlementsReq struct {
	OwnerID   string    `form:"owner_id"`
	CaptainID string    `form:"captain_id"`
	BoatID    string    `form:"boat_id"`
	From      time.Time `form:"from" time_format:"2006-01-02T15:04:05Z07:00"`
	To        time.Time `form:"to" time_format:"2006-01-02T15:04:05Z07:00"`
	Limit     int       `form:"limit" binding:"omitempty,min=1,max=500"`
	Offset    int       `form:"offset" binding:"omitempty,min=0"`
}

type PeriodReq struct {
	From time.Time `form:"from" time_format:"2006-01-02T15:04:05Z07:00"`
	To   time.Time `form:"to" time_format:"2006-01-02T15:04:05Z07:00"`
}

// 金额一律以字符串返回

type InvestorPayoutResp struct {
	InvestorID      string `json:"investor_id"`
	Name            string `json:"name"`
	SharePercentage string `json:"share_percentage"`
	Payout          string `json:"payout"`
}

type SettlementResp struct {
	BookingID         string               `json:"booking_id"`
	BoatID            string               `json:"boat_id"`
	OwnerID           string               `json:"owner_id"`
	CaptainID         *string              `json:"captain_id"`
	BaseFare          string               `json:"base_fare"`
	AdjustmentPercent string               `json:"adjustment_percent"`
	FinalFare         string               `json:"final_fare"`
	PlatformFee       string               `json:"platform_fee"`
	InvestorPayouts   []InvestorPayoutResp `json:"investor_payouts"`
	PlatformResidual  string               `json:"platform_residual"`
	CaptainCommission string               `json:"captain_commission"`
	OwnerShare        string               `json:"owner_share"`
	CompletedAt       time.Time            `json:"completed_at"`
}

func ToSettlementResp(s *domain.Settlement) SettlementResp {
	payouts := make([]InvestorPayoutResp, 0, len(s.InvestorPayouts))
	for _, p := range s.InvestorPayouts {
		payouts = append(payouts, InvestorPayoutResp{
			InvestorID:      p.InvestorID,
			Name:            p.Name,
			SharePercentage: p.SharePercentage.String(),
			Payout:          p.Payout.String(),
		})
	}
	return SettlementResp{
		BookingID:         s.BookingID,
		BoatID:            s.BoatID,
		OwnerID:           s.OwnerID,
		CaptainID:         s.CaptainID,
		BaseFare:          s.BaseFare.String(),
		AdjustmentPercent: s.AdjustmentPercent.String(),
		FinalFare:         s.FinalFare.String(),
		PlatformFee:       s.PlatformFee.String(),
		InvestorPayouts:   payouts,
		PlatformResidual:  s.PlatformResidual.String(),
		CaptainCommission: s.CaptainCommission.String(),
		OwnerShare:        s.OwnerShare.String(),
		CompletedAt:       s.CompletedAt,
	}
}

type OwnerSummaryResp struct {
	OwnerID    string `json:"owner_id"`
	Trips      int    `json:"trips"`
	GrossFare  string `json:"gross_fare"`
	OwnerShare string `json:"owner_share"`
}

type CaptainPayoutResp struct {
	CaptainID  string `json:"captain_id"`
	Trips      int    `json:"trips"`
	Commission string `json:"commission"`
}

type InvestorPayoutTotalResp struct {
	InvestorID string `json:"investor_id"`
	Name       string `json:"name"`
	Trips      int    `json:"trips"`
	Payout     string `json:"payout"`
}

type PlatformDashboardResp struct {
	Trips             int    `json:"trips"`
	GrossFare         string `json:"gross_fare"`
	PlatformFee       string `json:"platform_fee"`
	InvestorPayouts   string `json:"investor_payouts"`
	PlatformResidual  string `json:"platform_residual"`
	CaptainCommission string `json:"captain_commission"`
	OwnerShare        string `json:"owner_share"`
}

func toInvestorTotals(rows []service.InvestorPayoutTotal) []InvestorPayoutTotalResp {
	out := make([]InvestorPayoutTotalResp, 0, len(rows))
	for _, r := range rows {
		out = append(out, InvestorPayoutTotalResp{
			InvestorID: r.InvestorID,
			Name:       r.Name,
			Trips:      r.Trips,
			Payout:     r.Payout.String(),
		})
	}
	return out
}
