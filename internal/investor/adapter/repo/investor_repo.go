package repo

import (
	"context"

	"gorm.io/gorm"

	"github.com/xxz807/watertaxi/internal/investor/domain"
)

type GormInvestorRepo struct {
	db *gorm.DB
}

var _ domain.InvestorRepository = (*GormInvestorRepo)(nil)

func NewInvestorRepo(db *gorm.DB) *GormInvestorRepo {
	return &GormInvestorRepo{db: db}
}

func (r *GormInvestorRepo) Create(ctx context.Context, tx *gorm.DB, inv *domain.Investor) error {
	// 注意：必须使用传入的 tx (事务会话)，而不是 r.db
	return tx.WithContext(ctx).Create(inv).Error
}

// LockRoster 份额校验前锁表
// Postgres: SHARE ROW EXCLUSIVE 与自身互斥，不挡普通读；SQLite 同一时刻只有一个写事务，不需要显式锁
func (r *GormInvestorRepo) LockRoster(ctx context.Context, tx *gorm.DB) error {
	stmt := lockRosterSQL(tx.Dialector.Name())
	if stmt == "" {
		return nil
	}
	return tx.WithContext(ctx).Exec(stmt).Error
}

func lockRosterSQL(dialect string) string {
	if dialect == "postgres" {
		return "LOCK TABLE " + domain.Investor{}.TableName() + " IN SHARE ROW EXCLUSIVE MODE"
	}
	return ""
}

func (r *GormInvestorRepo) ListTx(ctx context.Context, tx *gorm.DB) ([]domain.Investor, error) {
	return list(ctx, tx)
}

func (r *GormInvestorRepo) List(ctx context.Context) ([]domain.Investor, error) {
	return list(ctx, r.db)
}

func (r *GormInvestorRepo) Delete(ctx context.Context, id string) error {
	result := r.db.WithContext(ctx).Where("id = ?", id).Delete(&domain.Investor{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domain.ErrInvestorNotFound
	}
	return nil
}

func list(ctx context.Context, db *gorm.DB) ([]domain.Investor, error) {
	var investors []domain.Investor
	if err := db.WithContext(ctx).Order("created_at ASC, id ASC").Find(&investors).Error; err != nil {
		return nil, err
	}
	return investors, nil
}
