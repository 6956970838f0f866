package domain

import "context"

// BookingRepository 订单仓储接口
type BookingRepository interface {
	Create(ctx context.Context, b *Booking) error

	// FindByID 不存在时返回 ErrBookingNotFound
	FindByID(ctx context.Context, id string) (*Booking, error)

	// Update 带乐观锁版本号更新可变字段，成功后 b.Version 自增
	// 版本不匹配返回 ErrConcurrentUpdate
	Update(ctx context.Context, b *Booking) error
}
