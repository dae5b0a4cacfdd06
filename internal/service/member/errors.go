package member

import "errors"

var (
	ErrNotFound            = errors.New("team member not found")
	ErrDuplicateNationalID = errors.New("a member with this national code already exists")
	ErrInvalidPhone        = errors.New("invalid phone number")
	ErrInvalidNationalCode = errors.New("national code must be 10 digits")
	ErrInvalidEmail        = errors.New("invalid email address")
	ErrFullNameRequired    = errors.New("full name is required")
)
