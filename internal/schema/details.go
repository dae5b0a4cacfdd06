package schema

import "go.mongodb.org/mongo-driver/v2/bson"

// ItemField is the per-field state stored on an item of a purchasing,
// collaboration or sales section. Value is whatever the operator typed.
type ItemField struct {
	Value    any   `bson:"value" json:"value"`
	IsActive *bool `bson:"isActive,omitempty" json:"is_active,omitempty"`
}

// Active treats a record written without the flag as active.
func (f ItemField) Active() bool { return f.IsActive == nil || *f.IsActive }

// ItemDetails is one named item of an item-bearing section. Assignees are
// kept in a separate map keyed by field name.
type ItemDetails struct {
	ID              bson.ObjectID            `bson:"_id,omitempty" json:"id"`
	SectionID       bson.ObjectID            `bson:"sectionId" json:"section_id"`
	ItemName        string                   `bson:"itemName" json:"item_name"`
	Details         map[string]ItemField     `bson:"details" json:"details"`
	AssignedMembers map[string]bson.ObjectID `bson:"assignedMembers" json:"assigned_members"`
	Timestamps      `bson:",inline"`
}

type FlatField struct {
	IsActive         *bool          `bson:"isActive,omitempty" json:"is_active,omitempty"`
	AssignedMemberID *bson.ObjectID `bson:"assignedMemberId" json:"assigned_member_id"`
}

func (f FlatField) Active() bool { return f.IsActive == nil || *f.IsActive }

// Flag returns a pointer to b for the optional isActive fields.
func Flag(b bool) *bool { return &b }

// FlatDetails is the single details record of a design, contracting or
// consultation section.
type FlatDetails struct {
	ID         bson.ObjectID        `bson:"_id,omitempty" json:"id"`
	SectionID  bson.ObjectID        `bson:"sectionId" json:"section_id"`
	Details    map[string]FlatField `bson:"details" json:"details"`
	Timestamps `bson:",inline"`
}
