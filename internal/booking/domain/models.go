package domain

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// Booking 乘客订单
// 对应数据库表: bookings
type Booking struct {
	ID          string `gorm:"primaryKey;type:varchar(36)"`
	BoatID      string `gorm:"type:varchar(36);not null;index"`
	OwnerID     string `gorm:"type:varchar(36);not null;index"`
	RiderName   string `gorm:"type:varchar(100);not null"`
	Origin      string `gorm:"type:varchar(200)"`
	Destination string `gorm:"type:varchar(200)"`

	BaseFare          decimal.Decimal     `gorm:"type:numeric;not null"`
	AdjustmentPercent decimal.Decimal     `gorm:"type:numeric;not null"`
	FinalFare         decimal.NullDecimal `gorm:"type:numeric"` // 只设置一次

	Status      Status     `gorm:"type:varchar(16);not null;index"`
	Version     int64      `gorm:"not null"` // 乐观锁
	CompletedAt *time.Time `gorm:"index"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

func (Booking) TableName() string {
	return "bookings"
}

// AdjustFare 船东/船长按百分比调价：final = base * (1 + percent/100)
func (b *Booking) AdjustFare(percent decimal.Decimal) error {
	if b.Status.IsTerminal() {
		return fmt.Errorf("%w: status=%s", ErrBookingTerminal, b.Status)
	}
	if b.FinalFare.Valid {
		return ErrFareAlreadyFinal
	}

	final := b.BaseFare.Add(b.BaseFare.Mul(percent).Shift(-2))
	if final.IsNegative() {
		return fmt.Errorf("%w: adjusted fare %s", ErrInvalidFare, final)
	}

	b.AdjustmentPercent = percent
	b.FinalFare = decimal.NewNullDecimal(final)
	return nil
}

// TransitionTo 状态流转
// confirmed 时如果还没调价，最终票价取基础票价；completed 时记录完成时间
func (b *Booking) TransitionTo(next Status, now time.Time) error {
	if !next.IsValid() {
		return fmt.Errorf("%w: %q", ErrInvalidStatus, next)
	}
	if !b.Status.CanTransitionTo(next) {
		return fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, b.Status, next)
	}

	switch next {
	case StatusConfirmed:
		if !b.FinalFare.Valid {
			b.FinalFare = decimal.NewNullDecimal(b.BaseFare)
		}
	case StatusCompleted:
		completedAt := now
		b.CompletedAt = &completedAt
	}

	b.Status = next
	return nil
}
