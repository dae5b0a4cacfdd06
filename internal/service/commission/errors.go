package commission

import "errors"

var (
	ErrMemberNotFound  = errors.New("team member not found")
	ErrProjectNotFound = errors.New("project not found")
	ErrInvalidCursor   = errors.New("invalid cursor")
)
