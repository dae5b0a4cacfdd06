package commission

import "github.com/shopspring/decimal"

var (
	hundred     = decimal.NewFromInt(100)
	tenThousand = decimal.NewFromInt(10000)
)

func clampPercent(p float64) float64 {
	switch {
	case p < 0:
		return 0
	case p > 100:
		return 100
	default:
		return p
	}
}

// FieldCommission returns the member's share of a field's income:
// round(income * weight * (100 - systemPercent) / 10000). Rounding happens
// once, half away from zero. Non-positive income or weight yields 0.
func FieldCommission(income, weight, systemPercent float64) int64 {
	if income <= 0 || weight <= 0 {
		return 0
	}
	keep := hundred.Sub(decimal.NewFromFloat(clampPercent(systemPercent)))
	v := decimal.NewFromFloat(income).
		Mul(decimal.NewFromFloat(weight)).
		Mul(keep).
		Div(tenThousand)
	return v.Round(0).IntPart()
}

// SystemShare is the part of a field's weighted income the house retains.
func SystemShare(income, weight, systemPercent float64) int64 {
	if income <= 0 || weight <= 0 {
		return 0
	}
	v := decimal.NewFromFloat(income).
		Mul(decimal.NewFromFloat(weight)).
		Mul(decimal.NewFromFloat(clampPercent(systemPercent))).
		Div(tenThousand)
	return v.Round(0).IntPart()
}

// NetOfSystem returns value minus the house percentage, rounded.
func NetOfSystem(value, systemPercent float64) int64 {
	keep := hundred.Sub(decimal.NewFromFloat(clampPercent(systemPercent)))
	return decimal.NewFromFloat(value).Mul(keep).Div(hundred).Round(0).IntPart()
}
