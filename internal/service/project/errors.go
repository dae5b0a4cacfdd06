package project

import "errors"

var (
	ErrNotFound       = errors.New("project not found")
	ErrNameRequired   = errors.New("project name is required")
	ErrUnknownSection = errors.New("unknown section name")
)
