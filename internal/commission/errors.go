package commission

import "errors"

var (
	// ErrNotFound marks a referenced record that no longer exists. Aggregation
	// skips such records instead of failing.
	ErrNotFound = errors.New("record not found")

	ErrUnknownSection = errors.New("unknown section")
)
