package referral

import "errors"

var (
	ErrNotFound         = errors.New("referral not found")
	ErrFullNameRequired = errors.New("full name is required")
	ErrNegativeFee      = errors.New("referral fee must not be negative")
)
