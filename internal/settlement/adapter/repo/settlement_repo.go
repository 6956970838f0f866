package repo

import (
	"context"
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	bookingdomain "github.com/xxz807/watertaxi/internal/booking/domain"
	"github.com/xxz807/watertaxi/internal/settlement/domain"
)

type GormSettlementRepo struct {
	db *gorm.DB
}

var _ domain.SettlementRepository = (*GormSettlementRepo)(nil)

func NewSettlementRepo(db *gorm.DB) *GormSettlementRepo {
	return &GormSettlementRepo{db: db}
}

// Upsert 幂等写入
// SQL: INSERT ... ON CONFLICT (booking_id) DO UPDATE SET <除主键和 created_at 外的所有列>
func (r *GormSettlementRepo) Upsert(ctx context.Context, s *domain.Settlement) error {
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "booking_id"}},
			UpdateAll: true,
		}).
		Create(s).Error
}

func (r *GormSettlementRepo) FindByBookingID(ctx context.Context, bookingID string) (*domain.Settlement, error) {
	var s domain.Settlement
	if err := r.db.WithContext(ctx).Where("booking_id = ?", bookingID).First(&s).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrSettlementNotFound
		}
		return nil, err
	}
	return &s, nil
}

func (r *GormSettlementRepo) List(ctx context.Context, f domain.ListFilter) ([]domain.Settlement, error) {
	q := r.db.WithContext(ctx).Model(&domain.Settlement{})
	if f.OwnerID != "" {
		q = q.Where("owner_id = ?", f.OwnerID)
	}
	if f.CaptainID != "" {
		q = q.Where("captain_id = ?", f.CaptainID)
	}
	if f.BoatID != "" {
		q = q.Where("boat_id = ?", f.BoatID)
	}
	if !f.From.IsZero() {
		q = q.Where("completed_at >= ?", f.From)
	}
	if !f.To.IsZero() {
		q = q.Where("completed_at < ?", f.To)
	}
	if f.Limit > 0 {
		q = q.Limit(f.Limit)
	}
	if f.Offset > 0 {
		q = q.Offset(f.Offset)
	}

	var out []domain.Settlement
	if err := q.Order("completed_at DESC, booking_id ASC").Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

// FindUnsettledBookingIDs 按订单 id 做游标分页，afterID 为空时从头开始
func (r *GormSettlementRepo) FindUnsettledBookingIDs(ctx context.Context, afterID string, limit int) ([]string, error) {
	q := r.db.WithContext(ctx).
		Table(bookingdomain.Booking{}.TableName()+" AS b").
		Joins("LEFT JOIN "+domain.Settlement{}.TableName()+" AS s ON s.booking_id = b.id").
		Where("b.status = ? AND b.final_fare IS NOT NULL AND s.booking_id IS NULL", bookingdomain.StatusCompleted)
	if afterID != "" {
		q = q.Where("b.id > ?", afterID)
	}
	q = q.Order("b.id ASC")
	if limit > 0 {
		q = q.Limit(limit)
	}

	var ids []string
	if err := q.Pluck("b.id", &ids).Error; err != nil {
		return nil, err
	}
	return ids, nil
}
