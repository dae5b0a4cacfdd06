package schema

import "go.mongodb.org/mongo-driver/v2/bson"

type TeamMember struct {
	ID           bson.ObjectID `bson:"_id,omitempty" json:"id"`
	FullName     string        `bson:"fullName" json:"full_name"`
	Position     string        `bson:"position" json:"position"`
	FatherName   string        `bson:"fatherName" json:"father_name"`
	NationalCode string        `bson:"nationalCode" json:"national_code"`
	PhoneNumber  string        `bson:"phoneNumber" json:"phone_number"`
	Email        string        `bson:"email,omitempty" json:"email,omitempty"`
	Education    string        `bson:"education,omitempty" json:"education,omitempty"`
	Address      string        `bson:"address,omitempty" json:"address,omitempty"`
	Timestamps   `bson:",inline"`
}
