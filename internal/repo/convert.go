package repo

import (
	"sort"

	"go.mongodb.org/mongo-driver/v2/bson"

	"github.com/Alijeyrad/taadol_backend/internal/catalog"
	"github.com/Alijeyrad/taadol_backend/internal/commission"
	"github.com/Alijeyrad/taadol_backend/internal/schema"
)

// orderedKeys returns the section's catalog fields present in keys first,
// then any remaining keys sorted.
func orderedKeys(section string, keys map[string]struct{}) []string {
	out := make([]string, 0, len(keys))
	for _, f := range catalog.Fields(section) {
		if _, ok := keys[f]; ok {
			out = append(out, f)
			delete(keys, f)
		}
	}
	rest := make([]string, 0, len(keys))
	for k := range keys {
		rest = append(rest, k)
	}
	sort.Strings(rest)
	return append(out, rest...)
}

func hexOrEmpty(id *bson.ObjectID) string {
	if id == nil || id.IsZero() {
		return ""
	}
	return id.Hex()
}

// ItemFields flattens an item's details and assignee map. A field that only
// appears in the assignee map, or whose record has no isActive flag, counts as
// active.
func ItemFields(section string, it schema.ItemDetails) commission.Fields {
	keys := make(map[string]struct{}, len(it.Details)+len(it.AssignedMembers))
	for k := range it.Details {
		keys[k] = struct{}{}
	}
	for k := range it.AssignedMembers {
		keys[k] = struct{}{}
	}

	out := make(commission.Fields, 0, len(keys))
	for _, k := range orderedKeys(section, keys) {
		f := commission.FieldAssignment{Field: k, IsActive: true}
		if d, ok := it.Details[k]; ok {
			f.IsActive = d.Active()
		}
		if m, ok := it.AssignedMembers[k]; ok {
			f.AssignedMemberID = hexOrEmpty(&m)
		}
		out = append(out, f)
	}
	return out
}

func FlatFields(section string, d schema.FlatDetails) commission.Fields {
	keys := make(map[string]struct{}, len(d.Details))
	for k := range d.Details {
		keys[k] = struct{}{}
	}
	out := make(commission.Fields, 0, len(keys))
	for _, k := range orderedKeys(section, keys) {
		v := d.Details[k]
		out = append(out, commission.FieldAssignment{
			Field:            k,
			IsActive:         v.Active(),
			AssignedMemberID: hexOrEmpty(v.AssignedMemberID),
		})
	}
	return out
}

// FlatFieldFrom converts an assignment into its stored form.
func FlatFieldFrom(f commission.FieldAssignment) (schema.FlatField, error) {
	out := schema.FlatField{IsActive: schema.Flag(f.IsActive)}
	if f.AssignedMemberID != "" {
		id, err := ParseID(f.AssignedMemberID)
		if err != nil {
			return schema.FlatField{}, err
		}
		out.AssignedMemberID = &id
	}
	return out, nil
}

// ApplyItemField writes an assignment into an item, keeping the stored value.
func ApplyItemField(it *schema.ItemDetails, f commission.FieldAssignment) error {
	if it.Details == nil {
		it.Details = map[string]schema.ItemField{}
	}
	if it.AssignedMembers == nil {
		it.AssignedMembers = map[string]bson.ObjectID{}
	}
	cur := it.Details[f.Field]
	cur.IsActive = schema.Flag(f.IsActive)
	it.Details[f.Field] = cur

	if f.AssignedMemberID == "" {
		delete(it.AssignedMembers, f.Field)
		return nil
	}
	id, err := ParseID(f.AssignedMemberID)
	if err != nil {
		return err
	}
	it.AssignedMembers[f.Field] = id
	return nil
}

func ProjectOf(p schema.Project) commission.Project {
	return commission.Project{ID: p.ID.Hex(), Name: p.Name}
}

func SectionOf(s schema.ProjectSection) commission.Section {
	return commission.Section{
		ID:        s.ID.Hex(),
		ProjectID: s.ProjectID.Hex(),
		Name:      s.SectionName,
		IsActive:  s.IsActive,
	}
}

func IncomeOf(in schema.ProjectIncome) *commission.Income {
	out := &commission.Income{
		ProjectID: in.ProjectID.Hex(),
		Entries:   make(map[string]commission.IncomeEntry, len(in.Details)),
	}
	for k, d := range in.Details {
		out.Entries[k] = commission.IncomeEntry{Value: d.Amount(), IsActive: d.IsActive}
	}
	return out
}

func WeightsOf(ws []schema.SectionWeight) []commission.SectionWeight {
	out := make([]commission.SectionWeight, len(ws))
	for i, w := range ws {
		out[i] = commission.SectionWeight{SectionName: w.SectionName, FieldName: w.FieldName, Weight: w.Weight}
	}
	return out
}
