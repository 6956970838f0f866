package service

import (
	"context"

	bookingdomain "github.com/xxz807/watertaxi/internal/booking/domain"
	investordomain "github.com/xxz807/watertaxi/internal/investor/domain"
)

// BookingSource 读取待结算订单
type BookingSource interface {
	FindByID(ctx context.Context, id string) (*bookingdomain.Booking, error)
}

// CaptainLookup 按船只查当前船长，未指派返回 nil
type CaptainLookup interface {
	CaptainFor(ctx context.Context, boatID string) (*string, error)
}

// InvestorRoster 投资人名册，按登记顺序
type InvestorRoster interface {
	List(ctx context.Context) ([]investordomain.Investor, error)
}
