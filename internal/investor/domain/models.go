package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// MaxTotalShare 所有投资人份额之和的上限 (百分比)
var MaxTotalShare = decimal.NewFromInt(100)

// ShareScale 份额最多保留的小数位，与 decimal(7,4) 列一致
const ShareScale = 4

// Investor 平台投资人，按份额分配平台服务费
// 对应数据库表: investors
type Investor struct {
	ID              string          `gorm:"primaryKey;type:varchar(36)"`
	Name            string          `gorm:"type:varchar(100);not null"`
	SharePercentage decimal.Decimal `gorm:"type:decimal(7,4);not null"` // 0 < share <= 100，最多 4 位小数
	CreatedAt       time.Time       `gorm:"index"`
}

func (Investor) TableName() string {
	return "investors"
}

// TotalShare 份额合计
func TotalShare(investors []Investor) decimal.Decimal {
	total := decimal.Zero
	for _, inv := range investors {
		total = total.Add(inv.SharePercentage)
	}
	return total
}
