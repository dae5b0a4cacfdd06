package commission

// WeightTable indexes section weights by section and field.
type WeightTable struct {
	bySection map[string]map[string]float64
}

// NewWeightTable builds a table from raw weight records. When the same
// (section, field) pair appears more than once the last record wins and the
// overridden records are returned as duplicates.
func NewWeightTable(ws []SectionWeight) (WeightTable, []SectionWeight) {
	t := WeightTable{bySection: make(map[string]map[string]float64)}
	var dups []SectionWeight
	for _, w := range ws {
		fields, ok := t.bySection[w.SectionName]
		if !ok {
			fields = make(map[string]float64)
			t.bySection[w.SectionName] = fields
		}
		if _, seen := fields[w.FieldName]; seen {
			dups = append(dups, w)
		}
		fields[w.FieldName] = w.Weight
	}
	return t, dups
}

// Weight returns the stored weight of a field.
func (t WeightTable) Weight(section, field string) (float64, bool) {
	w, ok := t.bySection[section][field]
	return w, ok
}

// Records returns the table contents in the order of fields given per section.
func (t WeightTable) Records(section string, fields []string) []SectionWeight {
	out := make([]SectionWeight, 0, len(fields))
	for _, f := range fields {
		if w, ok := t.Weight(section, f); ok {
			out = append(out, SectionWeight{SectionName: section, FieldName: f, Weight: w})
		}
	}
	return out
}

// Redistribute spreads the section's total weight over its active fields in
// proportion to their original weights. Only fields listed in all take part;
// a field without a weight record counts as 0 and receives 0. When every
// active field has weight 0 they all receive 0.
func (t WeightTable) Redistribute(section string, all, active []string) map[string]float64 {
	fields := t.bySection[section]

	known := make(map[string]struct{}, len(all))
	var total float64
	for _, f := range all {
		if _, dup := known[f]; dup {
			continue
		}
		known[f] = struct{}{}
		total += fields[f]
	}

	out := make(map[string]float64, len(active))
	var activeSum float64
	for _, f := range active {
		if _, ok := known[f]; !ok {
			continue
		}
		if _, dup := out[f]; dup {
			continue
		}
		out[f] = 0
		activeSum += fields[f]
	}

	if activeSum == 0 {
		return out
	}
	for f := range out {
		out[f] = fields[f] / activeSum * total
	}
	return out
}

// Redistribute is the stateless form of WeightTable.Redistribute.
func Redistribute(section string, all, active []string, weights []SectionWeight) map[string]float64 {
	t, _ := NewWeightTable(weights)
	return t.Redistribute(section, all, active)
}
