package api

import (
	"time"

	"github.com/xxz807/watertaxi/internal/booking/domain"
	"github.com/xxz807/watertaxi/internal/booking/service"
	settlementapi "github.com/xxz807/watertaxi/internal/settlement/api"
)

type CreateBookingReq struct {
	BoatID      string `json:"boat_id" binding:"required"`
	RiderName   string `json:"rider_name" binding:"required"`
	Origin      string `json:"origin"`
	Destination string `json:"destination"`
	BaseFare    string `json:"base_fare" binding:"required"` // 必须传字符串
}

type AdjustFareReq struct {
	AdjustmentPercent string `json:"adjustment_percent" binding:"required"`
}

type TransitionReq struct {
	Status string `json:"status" binding:"required,oneof=accepted rejected confirmed completed cancelled"`
}

type CompleteJourneyReq struct {
	BookingIDs []string `json:"booking_ids" binding:"required,min=1,dive,required"`
}

type BookingResp struct {
	ID                string     `json:"id"`
	BoatID            string     `json:"boat_id"`
	OwnerID           string     `json:"owner_id"`
	RiderName         string     `json:"rider_name"`
	Origin            string     `json:"origin"`
	Destination       string     `json:"destination"`
	BaseFare          string     `json:"base_fare"`
	AdjustmentPercent string     `json:"adjustment_percent"`
	FinalFare         *string    `json:"final_fare"`
	Status            string     `json:"status"`
	CompletedAt       *time.Time `json:"completed_at"`
	CreatedAt         time.Time  `json:"created_at"`
}

// TransitionResp 完成订单时附带结算结果；结算失败只返回错误信息，状态已生效
type TransitionResp struct {
	Booking         BookingResp                   `json:"booking"`
	Settlement      *settlementapi.SettlementResp `json:"settlement,omitempty"`
	SettlementError string                        `json:"settlement_error,omitempty"`
}

type JourneyOutcomeResp struct {
	BookingID  string                        `json:"booking_id"`
	Booking    *BookingResp                  `json:"booking,omitempty"`
	Settlement *settlementapi.SettlementResp `json:"settlement,omitempty"`
	Error      string                        `json:"error,omitempty"`
}

type CompleteJourneyResp struct {
	Settled  int                  `json:"settled"`
	Failed   int                  `json:"failed"`
	Outcomes []JourneyOutcomeResp `json:"outcomes"`
}

func toBookingResp(b *domain.Booking) BookingResp {
	resp := BookingResp{
		ID:                b.ID,
		BoatID:            b.BoatID,
		OwnerID:           b.OwnerID,
		RiderName:         b.RiderName,
		Origin:            b.Origin,
		Destination:       b.Destination,
		BaseFare:          b.BaseFare.String(),
		AdjustmentPercent: b.AdjustmentPercent.String(),
		Status:            string(b.Status),
		CompletedAt:       b.CompletedAt,
		CreatedAt:         b.CreatedAt,
	}
	if b.FinalFare.Valid {
		fare := b.FinalFare.Decimal.String()
		resp.FinalFare = &fare
	}
	return resp
}

func toTransitionResp(r *service.TransitionResult) TransitionResp {
	resp := TransitionResp{Booking: toBookingResp(r.Booking)}
	if r.Settlement != nil {
		st := settlementapi.ToSettlementResp(r.Settlement)
		resp.Settlement = &st
	}
	if r.SettlementErr != nil {
		resp.SettlementError = r.SettlementErr.Error()
	}
	return resp
}

func toCompleteJourneyResp(outcomes []service.JourneyOutcome) CompleteJourneyResp {
	resp := CompleteJourneyResp{Outcomes: make([]JourneyOutcomeResp, 0, len(outcomes))}
	for _, o := range outcomes {
		item := JourneyOutcomeResp{BookingID: o.BookingID}
		if o.Booking != nil {
			b := toBookingResp(o.Booking)
			item.Booking = &b
		}
		if o.Settlement != nil {
			st := settlementapi.ToSettlementResp(o.Settlement)
			item.Settlement = &st
		}
		if o.Err != nil {
			item.Error = o.Err.Error()
			resp.Failed++
		} else {
			resp.Settled++
		}
		resp.Outcomes = append(resp.Outcomes, item)
	}
	return resp
}
