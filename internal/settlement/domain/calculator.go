package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// 固定费率
var (
	PlatformFeeRate       = decimal.RequireFromString("0.20") // 平台服务费：最终票价的 20%
	CaptainCommissionRate = decimal.RequireFromString("0.10") // 船长佣金：扣除平台服务费后的 10%
)

// SettleInput 结算所需的订单字段
type SettleInput struct {
	BookingID         string
	BoatID            string
	OwnerID           string
	CaptainID         *string
	BaseFare          decimal.Decimal
	AdjustmentPercent decimal.Decimal
	FinalFare         decimal.Decimal
	CompletedAt       time.Time
}

// RosterEntry 结算时刻的投资人名册快照
type RosterEntry struct {
	InvestorID      string
	Name            string
	SharePercentage decimal.Decimal
}

// Settle 计算订单结算，纯函数
// 不对金额做任何分支：0 或负数票价按算术原样传递；名册份额合计也不在这里校验
func Settle(in SettleInput, roster []RosterEntry) *Settlement {
	// 1. 平台服务费
	platformFee := in.FinalFare.Mul(PlatformFeeRate)

	// 2. 投资人按份额瓜分平台服务费
	payouts := make([]InvestorPayout, 0, len(roster))
	totalInvestorShare := decimal.Zero
	for _, inv := range roster {
		payout := percentOf(platformFee, inv.SharePercentage)
		totalInvestorShare = totalInvestorShare.Add(payout)
		payouts = append(payouts, InvestorPayout{
			InvestorID:      inv.InvestorID,
			Name:            inv.Name,
			SharePercentage: inv.SharePercentage,
			Payout:          payout,
		})
	}

	// 3. 平台留存
	platformResidual := platformFee.Sub(totalInvestorShare)

	// 4. 船长佣金：无论是否指派船长都计算
	captainCommission := in.FinalFare.Sub(platformFee).Mul(CaptainCommissionRate)

	// 5. 船东所得
	ownerShare := in.FinalFare.Sub(platformFee).Sub(captainCommission)

	return &Settlement{
		BookingID:         in.BookingID,
		BoatID:            in.BoatID,
		OwnerID:           in.OwnerID,
		CaptainID:         copyID(in.CaptainID),
		BaseFare:          in.BaseFare,
		AdjustmentPercent: in.AdjustmentPercent,
		FinalFare:         in.FinalFare,
		PlatformFee:       platformFee,
		InvestorPayouts:   payouts,
		PlatformResidual:  platformResidual,
		CaptainCommission: captainCommission,
		OwnerShare:        ownerShare,
		CompletedAt:       in.CompletedAt,
	}
}

// RosterShareTotal 名册份额合计 (百分比)
func RosterShareTotal(roster []RosterEntry) decimal.Decimal {
	total := decimal.Zero
	for _, inv := range roster {
		total = total.Add(inv.SharePercentage)
	}
	return total
}

// percentOf amount * pct / 100，Shift 保证除以 100 无精度损失
func percentOf(amount, pct decimal.Decimal) decimal.Decimal {
	return amount.Mul(pct).Shift(-2)
}

func copyID(id *string) *string {
	if id == nil {
		return nil
	}
	v := *id
	return &v
}
