package api

import (
	"time"

	"github.com/xxz807/watertaxi/internal/fleet/domain"
)

type CreateBoatReq struct {
	Name      string `json:"name" binding:"required"`
	OwnerID   string `json:"owner_id" binding:"required"`
	CaptainID string `json:"captain_id"`
}

type AssignCaptainReq struct {
	CaptainID string `json:"captain_id" binding:"required"`
}

type BoatResp struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	OwnerID   string    `json:"owner_id"`
	CaptainID *string   `json:"captain_id"`
	CreatedAt time.Time `json:"created_at"`
}

func toBoatResp(b *domain.Boat) BoatResp {
	return BoatResp{
		ID:        b.ID,
		Name:      b.Name,
		OwnerID:   b.OwnerID,
		CaptainID: b.CaptainID,
		CreatedAt: b.CreatedAt,
	}
}
