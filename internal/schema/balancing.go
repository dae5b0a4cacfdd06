package schema

import (
	"go.mongodb.org/mongo-driver/v2/bson"

	"github.com/Alijeyrad/taadol_backend/internal/catalog"
)

// SectionWeight is unique per (sectionName, fieldName).
type SectionWeight struct {
	ID          bson.ObjectID `bson:"_id,omitempty" json:"id"`
	SectionName string        `bson:"sectionName" json:"section_name"`
	FieldName   string        `bson:"fieldName" json:"field_name"`
	Weight      float64       `bson:"weight" json:"weight"`
	Timestamps  `bson:",inline"`
}

// SystemPercentages is keyed by the literal section names. Only the latest
// record by createdAt is in effect.
type SystemPercentages struct {
	ID            bson.ObjectID `bson:"_id,omitempty" json:"id"`
	Purchasing    float64       `bson:"خرید" json:"purchasing"`
	Collaboration float64       `bson:"همکاری" json:"collaboration"`
	Sales         float64       `bson:"فروش" json:"sales"`
	Design        float64       `bson:"طراحی" json:"design"`
	Contracting   float64       `bson:"پیمانکاری" json:"contracting"`
	Consultation  float64       `bson:"مشاوره" json:"consultation"`
	Timestamps    `bson:",inline"`
}

// BySection returns the percentages keyed by section name.
func (p SystemPercentages) BySection() map[string]float64 {
	return map[string]float64{
		catalog.Purchasing:    p.Purchasing,
		catalog.Collaboration: p.Collaboration,
		catalog.Sales:         p.Sales,
		catalog.Design:        p.Design,
		catalog.Contracting:   p.Contracting,
		catalog.Consultation:  p.Consultation,
	}
}

// SystemPercentagesFrom builds a record from a section-name keyed map.
func SystemPercentagesFrom(m map[string]float64) SystemPercentages {
	return SystemPercentages{
		Purchasing:    m[catalog.Purchasing],
		Collaboration: m[catalog.Collaboration],
		Sales:         m[catalog.Sales],
		Design:        m[catalog.Design],
		Contracting:   m[catalog.Contracting],
		Consultation:  m[catalog.Consultation],
	}
}
