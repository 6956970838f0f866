package repo

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/xxz807/watertaxi/internal/fleet/domain"
)

type GormBoatRepo struct {
	db *gorm.DB
}

var _ domain.BoatRepository = (*GormBoatRepo)(nil)

func NewBoatRepo(db *gorm.DB) *GormBoatRepo {
	return &GormBoatRepo{db: db}
}

func (r *GormBoatRepo) Create(ctx context.Context, boat *domain.Boat) error {
	return r.db.WithContext(ctx).Create(boat).Error
}

func (r *GormBoatRepo) FindByID(ctx context.Context, id string) (*domain.Boat, error) {
	var boat domain.Boat
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&boat).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrBoatNotFound
		}
		return nil, err
	}
	return &boat, nil
}

func (r *GormBoatRepo) UpdateCaptain(ctx context.Context, id string, captainID *string) error {
	// map 形式才能把 captain_id 写成 NULL
	result := r.db.WithContext(ctx).Model(&domain.Boat{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{"captain_id": captainID})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domain.ErrBoatNotFound
	}
	return nil
}
