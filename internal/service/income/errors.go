package income

import "errors"

var (
	ErrProjectNotFound = errors.New("project not found")
	ErrTaxNotFound     = errors.New("tax record not found")
	ErrUnknownKey      = errors.New("income key does not name a known section")
	ErrNegativeValue   = errors.New("income must not be negative")
	ErrPercentageRange = errors.New("tax percentage must be between 0 and 100")
)
