package salary

import "errors"

var (
	ErrMemberNotFound = errors.New("team member not found")
	ErrSalaryNotFound = errors.New("salary record not found")
	ErrDateRequired   = errors.New("date is required")
	ErrNegativeAmount = errors.New("salary amounts must not be negative")
)
