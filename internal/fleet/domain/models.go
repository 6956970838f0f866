package domain

import "time"

// Boat 船只
// 对应数据库表: boats
type Boat struct {
	ID        string  `gorm:"primaryKey;type:varchar(36)"`
	Name      string  `gorm:"type:varchar(100);not null"`
	OwnerID   string  `gorm:"type:varchar(36);not null;index"`
	CaptainID *string `gorm:"type:varchar(36);index"` // 未指派船长时为 NULL
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (Boat) TableName() string {
	return "boats"
}

func (b *Boat) HasCaptain() bool {
	return b.CaptainID != nil && *b.CaptainID != ""
}
