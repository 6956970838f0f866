package domain

import "errors"

var (
	ErrBookingNotFound   = errors.New("booking not found")
	ErrInvalidTransition = errors.New("invalid booking status transition")
	ErrInvalidStatus     = errors.New("unknown booking status")
	ErrBookingTerminal   = errors.New("booking is already closed")
	ErrFareAlreadyFinal  = errors.New("final fare already set")
	ErrInvalidFare       = errors.New("invalid fare")
	ErrInvalidBooking    = errors.New("invalid booking")
	ErrConcurrentUpdate  = errors.New("optimistic lock conflict: booking modified by others")
)
