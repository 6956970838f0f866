package domain

import "errors"

var (
	ErrSettlementNotFound     = errors.New("settlement not found")
	ErrFinalFareMissing       = errors.New("booking has no final fare")
	ErrBookingNotCompleted    = errors.New("booking is not completed")
	ErrInvestorSharesExceeded = errors.New("investor roster shares exceed 100 percent")
)
