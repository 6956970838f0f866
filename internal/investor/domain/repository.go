package domain

import (
	"context"

	"gorm.io/gorm"
)

// InvestorRepository 投资人仓储接口
// 带 tx 参数的方法必须在调用方开启的事务里执行
type InvestorRepository interface {
	Create(ctx context.Context, tx *gorm.DB, inv *Investor) error

	// LockRoster 在事务内锁住名册，直到事务结束，其它登记事务在此等待
	LockRoster(ctx context.Context, tx *gorm.DB) error

	// ListTx 在事务内读取全部投资人，用于份额校验
	ListTx(ctx context.Context, tx *gorm.DB) ([]Investor, error)

	// List 按创建顺序返回全部投资人
	List(ctx context.Context) ([]Investor, error)

	Delete(ctx context.Context, id string) error
}
