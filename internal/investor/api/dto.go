package api

import (
	"time"

	"github.com/xxz807/watertaxi/internal/investor/domain"
)

type CreateInvestorReq struct {
	Name            string `json:"name" binding:"required"`
	SharePercentage string `json:"share_percentage" binding:"required"` // 必须传字符串
}

type InvestorResp struct {
	ID              string    `json:"id"`
	Name            string    `json:"name"`
	SharePercentage string    `json:"share_percentage"`
	CreatedAt       time.Time `json:"created_at"`
}

type RosterResp struct {
	Investors  []InvestorResp `json:"investors"`
	TotalShare string         `json:"total_share"`
}

func toInvestorResp(inv domain.Investor) InvestorResp {
	return InvestorResp{
		ID:              inv.ID,
		Name:            inv.Name,
		SharePercentage: inv.SharePercentage.String(),
		CreatedAt:       inv.CreatedAt,
	}
}
