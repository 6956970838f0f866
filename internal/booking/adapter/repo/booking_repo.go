package repo

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/xxz807/watertaxi/internal/booking/domain"
)

type GormBookingRepo struct {
	db *gorm.DB
}

var _ domain.BookingRepository = (*GormBookingRepo)(nil)

func NewBookingRepo(db *gorm.DB) *GormBookingRepo {
	return &GormBookingRepo{db: db}
}

func (r *GormBookingRepo) Create(ctx context.Context, b *domain.Booking) error {
	return r.db.WithContext(ctx).Create(b).Error
}

func (r *GormBookingRepo) FindByID(ctx context.Context, id string) (*domain.Booking, error) {
	var b domain.Booking
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&b).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrBookingNotFound
		}
		return nil, err
	}
	return &b, nil
}

// Update 实现乐观锁更新
// SQL: UPDATE bookings SET ..., version = version + 1 WHERE id = ? AND version = ?
func (r *GormBookingRepo) Update(ctx context.Context, b *domain.Booking) error {
	result := r.db.WithContext(ctx).Model(&domain.Booking{}).
		Where("id = ? AND version = ?", b.ID, b.Version).
		Updates(map[string]interface{}{
			"status":             b.Status,
			"adjustment_percent": b.AdjustmentPercent,
			"final_fare":         b.FinalFare,
			"completed_at":       b.CompletedAt,
			"version":            gorm.Expr("version + 1"),
		})
	if result.Error != nil {
		return result.Error
	}

	// 没有行被更新：要么订单不存在，要么 version 被别人改过了
	if result.RowsAffected == 0 {
		return domain.ErrConcurrentUpdate
	}

	b.Version++
	return nil
}
