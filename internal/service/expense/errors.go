package expense

import "errors"

var ErrNegativeAmount = errors.New("expense amounts must not be negative")
