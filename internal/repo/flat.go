package repo

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"github.com/Alijeyrad/taadol_backend/internal/catalog"
	"github.com/Alijeyrad/taadol_backend/internal/schema"
)

// FlatStore holds the single details record of design, contracting and
// consultation sections.
type FlatStore struct {
	db *mongo.Database
}

func (s *FlatStore) coll(section string) (*mongo.Collection, error) {
	sec, ok := catalog.Lookup(section)
	if !ok || sec.Kind != catalog.KindFlat {
		return nil, fmt.Errorf("section %q has no flat details", section)
	}
	return s.db.Collection(sec.Collection), nil
}

func (s *FlatStore) Get(ctx context.Context, section string, sectionID bson.ObjectID) (*schema.FlatDetails, error) {
	c, err := s.coll(section)
	if err != nil {
		return nil, err
	}
	var d schema.FlatDetails
	if err := c.FindOne(ctx, bson.D{{Key: "sectionId", Value: sectionID}}).Decode(&d); err != nil {
		return nil, translate(err)
	}
	return &d, nil
}

// Upsert replaces the whole details map of a section.
func (s *FlatStore) Upsert(ctx context.Context, section string, sectionID bson.ObjectID, details map[string]schema.FlatField) (*schema.FlatDetails, error) {
	c, err := s.coll(section)
	if err != nil {
		return nil, err
	}
	t := now()
	update := bson.D{
		{Key: "$set", Value: bson.D{{Key: "details", Value: details}, {Key: "updatedAt", Value: t}}},
		{Key: "$setOnInsert", Value: bson.D{{Key: "createdAt", Value: t}}},
	}
	opts := options.FindOneAndUpdate().SetUpsert(true).SetReturnDocument(options.After)
	var d schema.FlatDetails
	if err := c.FindOneAndUpdate(ctx, bson.D{{Key: "sectionId", Value: sectionID}}, update, opts).Decode(&d); err != nil {
		return nil, translate(err)
	}
	return &d, nil
}

// SetField updates one field, creating the record when it does not exist.
func (s *FlatStore) SetField(ctx context.Context, section string, sectionID bson.ObjectID, field string, value schema.FlatField) (*schema.FlatDetails, error) {
	c, err := s.coll(section)
	if err != nil {
		return nil, err
	}
	t := now()
	update := bson.D{
		{Key: "$set", Value: bson.D{{Key: "details." + field, Value: value}, {Key: "updatedAt", Value: t}}},
		{Key: "$setOnInsert", Value: bson.D{{Key: "createdAt", Value: t}}},
	}
	opts := options.FindOneAndUpdate().SetUpsert(true).SetReturnDocument(options.After)
	var d schema.FlatDetails
	if err := c.FindOneAndUpdate(ctx, bson.D{{Key: "sectionId", Value: sectionID}}, update, opts).Decode(&d); err != nil {
		return nil, translate(err)
	}
	return &d, nil
}

func (s *FlatStore) DeleteBySections(ctx context.Context, sectionIDs []bson.ObjectID) (int64, error) {
	if len(sectionIDs) == 0 {
		return 0, nil
	}
	filter := bson.D{{Key: "sectionId", Value: bson.D{{Key: "$in", Value: sectionIDs}}}}
	var total int64
	for _, sec := range catalog.Sections() {
		if sec.Kind != catalog.KindFlat {
			continue
		}
		res, err := s.db.Collection(sec.Collection).DeleteMany(ctx, filter)
		if err != nil {
			return total, fmt.Errorf("delete %s details: %w", sec.Slug, err)
		}
		total += res.DeletedCount
	}
	return total, nil
}
