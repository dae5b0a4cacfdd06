package commission

import "github.com/Alijeyrad/taadol_backend/internal/catalog"

// ---------------------------------------------------------------------------
// Field assignments
// ---------------------------------------------------------------------------

// FieldAssignment is the state of one task field inside an item or a flat
// section: whether it counts toward the commission pool and who owns it.
type FieldAssignment struct {
	Field            string `json:"field"`
	IsActive         bool   `json:"is_active"`
	AssignedMemberID string `json:"assigned_member_id,omitempty"`
}

// Fields is an ordered list of assignments, normally in catalog order.
type Fields []FieldAssignment

func (fs Fields) Lookup(field string) (FieldAssignment, bool) {
	for _, f := range fs {
		if f.Field == field {
			return f, true
		}
	}
	return FieldAssignment{}, false
}

// Resolve returns one assignment per catalog field of section, in catalog
// order. Catalog fields missing from fs are active and unassigned; entries
// that are not part of the catalog are dropped.
func (fs Fields) Resolve(section string) Fields {
	names := catalog.Fields(section)
	out := make(Fields, 0, len(names))
	for _, name := range names {
		f, ok := fs.Lookup(name)
		if !ok {
			f = FieldAssignment{Field: name, IsActive: true}
		}
		out = append(out, f)
	}
	return out
}

func (fs Fields) Names() []string {
	out := make([]string, len(fs))
	for i, f := range fs {
		out[i] = f.Field
	}
	return out
}

func (fs Fields) ActiveNames() []string {
	out := make([]string, 0, len(fs))
	for _, f := range fs {
		if f.IsActive {
			out = append(out, f.Field)
		}
	}
	return out
}

// ---------------------------------------------------------------------------
// Records read from storage
// ---------------------------------------------------------------------------

type Project struct {
	ID   string
	Name string
}

type Section struct {
	ID        string
	ProjectID string
	Name      string
	IsActive  bool
}

type Item struct {
	ID        string
	SectionID string
	Name      string
	Fields    Fields
}

type Details struct {
	ID        string
	SectionID string
	Fields    Fields
}

// SectionWeight is a field's share of its section pool in percentage points.
type SectionWeight struct {
	SectionName string  `json:"section_name"`
	FieldName   string  `json:"field_name"`
	Weight      float64 `json:"weight"`
}

type IncomeEntry struct {
	Value    float64 `json:"value"`
	IsActive bool    `json:"is_active"`
}

// Income holds a project's per-field income keyed by catalog.IncomeKey.
type Income struct {
	ProjectID string
	Entries   map[string]IncomeEntry
}

// Value returns the recorded income under key, 0 when absent.
func (in *Income) Value(key string) float64 {
	if in == nil {
		return 0
	}
	return in.Entries[key].Value
}

// Percentages maps a section name to the share the house keeps, 0..100.
type Percentages map[string]float64

func (p Percentages) For(section string) float64 {
	return clampPercent(p[section])
}

// ---------------------------------------------------------------------------
// Results
// ---------------------------------------------------------------------------

// Line is one commission a member earns on one field.
type Line struct {
	ProjectID     string  `json:"project_id"`
	ProjectName   string  `json:"project_name"`
	SectionName   string  `json:"section_name"`
	ItemName      string  `json:"item_name,omitempty"`
	FieldName     string  `json:"field_name"`
	Income        float64 `json:"income"`
	Weight        float64 `json:"weight"`
	SystemPercent float64 `json:"system_percent"`
	Commission    int64   `json:"commission"`
}

// Total sums the commission of every line.
func Total(lines []Line) int64 {
	var sum int64
	for _, l := range lines {
		sum += l.Commission
	}
	return sum
}

type Page struct {
	Lines      []Line `json:"lines"`
	NextCursor string `json:"next_cursor,omitempty"`
	HasMore    bool   `json:"has_more"`
}

// Assignment is a field a member is responsible for, regardless of income.
type Assignment struct {
	ProjectID   string `json:"project_id"`
	ProjectName string `json:"project_name"`
	SectionName string `json:"section_name"`
	ItemName    string `json:"item_name,omitempty"`
	FieldName   string `json:"field_name"`
	IsActive    bool   `json:"is_active"`
}

type FieldBreakdown struct {
	FieldName        string  `json:"field_name"`
	IsActive         bool    `json:"is_active"`
	AssignedMemberID string  `json:"assigned_member_id,omitempty"`
	IncomeKey        string  `json:"income_key"`
	Income           float64 `json:"income"`
	OriginalWeight   float64 `json:"original_weight"`
	Weight           float64 `json:"weight"`
	Commission       int64   `json:"commission"`
	SystemShare      int64   `json:"system_share"`
}

type UnitBreakdown struct {
	SectionID        string           `json:"section_id"`
	SectionName      string           `json:"section_name"`
	SectionActive    bool             `json:"section_active"`
	ItemName         string           `json:"item_name,omitempty"`
	SystemPercent    float64          `json:"system_percent"`
	Fields           []FieldBreakdown `json:"fields"`
	TotalCommission  int64            `json:"total_commission"`
	TotalSystemShare int64            `json:"total_system_share"`
}

// ProjectBreakdown lists every field of every unit of a project with its
// redistributed weight and resulting commission.
type ProjectBreakdown struct {
	ProjectID        string           `json:"project_id"`
	ProjectName      string           `json:"project_name"`
	Units            []UnitBreakdown  `json:"units"`
	MemberTotals     map[string]int64 `json:"member_totals"`
	TotalCommission  int64            `json:"total_commission"`
	TotalSystemShare int64            `json:"total_system_share"`
}

type MemberTotal struct {
	MemberID   string `json:"member_id"`
	Commission int64  `json:"commission"`
	Lines      int    `json:"lines"`
}
