package commission

import "github.com/Alijeyrad/taadol_backend/internal/catalog"

// PreviewField is one field of a what-if calculation.
type PreviewField struct {
	Field    string  `json:"field"`
	IsActive bool    `json:"is_active"`
	Income   float64 `json:"income"`
}

// Preview runs redistribution and the calculator for a single unit without
// touching storage. Fields outside the section's catalog are ignored and
// catalog fields missing from fields count as active with no income.
func Preview(section string, fields []PreviewField, weights WeightTable, systemPercent float64) (UnitBreakdown, error) {
	if !catalog.Valid(section) {
		return UnitBreakdown{}, ErrUnknownSection
	}

	given := make(map[string]PreviewField, len(fields))
	for _, f := range fields {
		given[f.Field] = f
	}

	var assignments Fields
	incomes := make(map[string]float64)
	for _, name := range catalog.Fields(section) {
		f, ok := given[name]
		if !ok {
			f = PreviewField{Field: name, IsActive: true}
		}
		assignments = append(assignments, FieldAssignment{Field: name, IsActive: f.IsActive})
		incomes[name] = f.Income
	}

	pct := clampPercent(systemPercent)
	redistributed := weights.Redistribute(section, assignments.Names(), assignments.ActiveNames())

	ub := UnitBreakdown{
		SectionName:   section,
		SectionActive: true,
		SystemPercent: pct,
		Fields:        make([]FieldBreakdown, 0, len(assignments)),
	}
	for _, f := range assignments {
		orig, _ := weights.Weight(section, f.Field)
		fb := FieldBreakdown{
			FieldName:      f.Field,
			IsActive:       f.IsActive,
			Income:         incomes[f.Field],
			OriginalWeight: orig,
		}
		if f.IsActive {
			fb.Weight = redistributed[f.Field]
			fb.Commission = FieldCommission(fb.Income, fb.Weight, pct)
			fb.SystemShare = SystemShare(fb.Income, fb.Weight, pct)
		}
		ub.TotalCommission += fb.Commission
		ub.TotalSystemShare += fb.SystemShare
		ub.Fields = append(ub.Fields, fb)
	}
	return ub, nil
}
