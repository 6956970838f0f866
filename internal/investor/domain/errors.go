package domain

import "errors"

var (
	ErrInvestorNotFound   = errors.New("investor not found")
	ErrInvalidName        = errors.New("investor name is required")
	ErrInvalidShare       = errors.New("share percentage must be greater than 0 and at most 100")
	ErrShareLimitExceeded = errors.New("total investor share would exceed 100 percent")
)
