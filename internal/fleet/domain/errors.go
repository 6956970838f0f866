package domain

import "errors"

var (
	ErrBoatNotFound    = errors.New("boat not found")
	ErrInvalidBoatName = errors.New("boat name is required")
	ErrInvalidOwner    = errors.New("boat owner is required")
	ErrInvalidCaptain  = errors.New("captain id is required")
)
