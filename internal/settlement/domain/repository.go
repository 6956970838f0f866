package domain

import "context"

// SettlementRepository 结算仓储接口
type SettlementRepository interface {
	// Upsert 以 BookingID 为键：不存在则插入，存在则整体覆盖（保留 CreatedAt）
	Upsert(ctx context.Context, s *Settlement) error

	// FindByBookingID 不存在时返回 ErrSettlementNotFound
	FindByBookingID(ctx context.Context, bookingID string) (*Settlement, error)

	// List 按 CompletedAt 倒序
	List(ctx context.Context, filter ListFilter) ([]Settlement, error)

	// FindUnsettledBookingIDs 已完成、已定价但还没有结算记录的订单，按 id 升序返回 id > afterID 的一页
	FindUnsettledBookingIDs(ctx context.Context, afterID string, limit int) ([]string, error)
}
