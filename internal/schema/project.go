package schema

import "go.mongodb.org/mongo-driver/v2/bson"

type Project struct {
	ID         bson.ObjectID `bson:"_id,omitempty" json:"id"`
	Name       string        `bson:"name" json:"name"`
	Timestamps `bson:",inline"`
}

// ProjectSection is one of the catalog sections attached to a project.
type ProjectSection struct {
	ID          bson.ObjectID `bson:"_id,omitempty" json:"id"`
	ProjectID   bson.ObjectID `bson:"projectId" json:"project_id"`
	SectionName string        `bson:"sectionName" json:"section_name"`
	IsActive    bool          `bson:"isActive" json:"is_active"`
	// AssignedMemberID is a legacy section-wide owner kept for old records.
	AssignedMemberID *bson.ObjectID `bson:"assignedMemberId,omitempty" json:"assigned_member_id,omitempty"`
	Timestamps       `bson:",inline"`
}
