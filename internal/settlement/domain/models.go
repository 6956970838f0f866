package domain

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
)

// InvestorPayout 单个投资人从平台服务费中分得的金额
type InvestorPayout struct {
	InvestorID      string          `json:"investor_id"`
	Name            string          `json:"name"`
	SharePercentage decimal.Decimal `json:"share_percentage"`
	Payout          decimal.Decimal `json:"payout"`
}

// Settlement 订单结算记录，每个订单至多一条
// 对应数据库表: settlements
type Settlement struct {
	BookingID string  `gorm:"primaryKey;type:varchar(36)"`
	BoatID    string  `gorm:"type:varchar(36);not null;index"`
	OwnerID   string  `gorm:"type:varchar(36);not null;index"`
	CaptainID *string `gorm:"type:varchar(36);index"` // 结算时船只未指派船长则为 NULL

	// 从订单复制，结算后不再变化
	BaseFare          decimal.Decimal `gorm:"type:numeric;not null"`
	AdjustmentPercent decimal.Decimal `gorm:"type:numeric;not null"`
	FinalFare         decimal.Decimal `gorm:"type:numeric;not null"`

	PlatformFee       decimal.Decimal                     `gorm:"type:numeric;not null"`
	InvestorPayouts   datatypes.JSONSlice[InvestorPayout] `gorm:"not null"` // 保持名册顺序
	PlatformResidual  decimal.Decimal                     `gorm:"type:numeric;not null"`
	CaptainCommission decimal.Decimal                     `gorm:"type:numeric;not null"`
	OwnerShare        decimal.Decimal                     `gorm:"type:numeric;not null"`

	CompletedAt time.Time `gorm:"not null;index"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

func (Settlement) TableName() string {
	return "settlements"
}

// TotalInvestorPayout 投资人分成合计
func (s *Settlement) TotalInvestorPayout() decimal.Decimal {
	total := decimal.Zero
	for _, p := range s.InvestorPayouts {
		total = total.Add(p.Payout)
	}
	return total
}

// Distributed 四方分配合计：投资人 + 平台留存 + 船长 + 船东，恒等于 FinalFare
func (s *Settlement) Distributed() decimal.Decimal {
	return s.TotalInvestorPayout().
		Add(s.PlatformResidual).
		Add(s.CaptainCommission).
		Add(s.OwnerShare)
}

// Result 批量结算中单个订单的结果
type Result struct {
	BookingID  string
	Settlement *Settlement
	Err        error
}

// ListFilter 结算查询条件，零值字段不参与过滤
type ListFilter struct {
	OwnerID   string
	CaptainID string
	BoatID    string
	From      time.Time // CompletedAt >= From
	To        time.Time // CompletedAt < To
	Limit     int
	Offset    int
}
