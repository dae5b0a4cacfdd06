package balancing

import "errors"

var (
	ErrUnknownSection  = errors.New("unknown section name")
	ErrUnknownField    = errors.New("field does not belong to this section")
	ErrDuplicateField  = errors.New("field listed more than once")
	ErrWeightRange     = errors.New("weight must be between 0 and 100")
	ErrWeightSum       = errors.New("section weights add up to more than 100")
	ErrPercentageRange = errors.New("system percentage must be between 0 and 100")
)
