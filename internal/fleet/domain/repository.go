package domain

import "context"

// BoatRepository 船只仓储接口
type BoatRepository interface {
	Create(ctx context.Context, boat *Boat) error

	// FindByID 不存在时返回 ErrBoatNotFound
	FindByID(ctx context.Context, id string) (*Boat, error)

	// UpdateCaptain captainID 为 nil 表示解除指派
	UpdateCaptain(ctx context.Context, id string, captainID *string) error
}
