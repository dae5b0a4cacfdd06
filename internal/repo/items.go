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

// ItemStore reads and writes the per-section item collections of
// purchasing, collaboration and sales.
type ItemStore struct {
	db *mongo.Database
}

func (s *ItemStore) coll(section string) (*mongo.Collection, error) {
	sec, ok := catalog.Lookup(section)
	if !ok || sec.Kind != catalog.KindItems {
		return nil, fmt.Errorf("section %q has no items", section)
	}
	return s.db.Collection(sec.Collection), nil
}

func (s *ItemStore) List(ctx context.Context, section string, sectionID bson.ObjectID) ([]schema.ItemDetails, error) {
	c, err := s.coll(section)
	if err != nil {
		return nil, err
	}
	opts := options.Find().SetSort(bson.D{{Key: "_id", Value: 1}})
	cur, err := c.Find(ctx, bson.D{{Key: "sectionId", Value: sectionID}}, opts)
	if err != nil {
		return nil, fmt.Errorf("find items: %w", err)
	}
	out := []schema.ItemDetails{}
	if err := cur.All(ctx, &out); err != nil {
		return nil, fmt.Errorf("decode items: %w", err)
	}
	return out, nil
}

func (s *ItemStore) Get(ctx context.Context, section string, id bson.ObjectID) (*schema.ItemDetails, error) {
	c, err := s.coll(section)
	if err != nil {
		return nil, err
	}
	var it schema.ItemDetails
	if err := c.FindOne(ctx, bson.D{{Key: "_id", Value: id}}).Decode(&it); err != nil {
		return nil, translate(err)
	}
	return &it, nil
}

func (s *ItemStore) Create(ctx context.Context, section string, it schema.ItemDetails) (*schema.ItemDetails, error) {
	c, err := s.coll(section)
	if err != nil {
		return nil, err
	}
	it.ID = bson.NewObjectID()
	it.Touch(now())
	if _, err := c.InsertOne(ctx, it); err != nil {
		return nil, fmt.Errorf("insert item: %w", translate(err))
	}
	return &it, nil
}

// Update replaces the item's name, details and assignees.
func (s *ItemStore) Update(ctx context.Context, section string, it schema.ItemDetails) (*schema.ItemDetails, error) {
	c, err := s.coll(section)
	if err != nil {
		return nil, err
	}
	update := bson.D{{Key: "$set", Value: bson.D{
		{Key: "itemName", Value: it.ItemName},
		{Key: "details", Value: it.Details},
		{Key: "assignedMembers", Value: it.AssignedMembers},
		{Key: "updatedAt", Value: now()},
	}}}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var out schema.ItemDetails
	if err := c.FindOneAndUpdate(ctx, bson.D{{Key: "_id", Value: it.ID}}, update, opts).Decode(&out); err != nil {
		return nil, translate(err)
	}
	return &out, nil
}

// SetField updates one field's state and assignee. A nil member clears the
// assignment.
func (s *ItemStore) SetField(ctx context.Context, section string, id bson.ObjectID, field string, active bool, member *bson.ObjectID) (*schema.ItemDetails, error) {
	c, err := s.coll(section)
	if err != nil {
		return nil, err
	}
	set := bson.D{
		{Key: "details." + field + ".isActive", Value: active},
		{Key: "updatedAt", Value: now()},
	}
	update := bson.D{}
	if member != nil {
		set = append(set, bson.E{Key: "assignedMembers." + field, Value: *member})
	} else {
		update = append(update, bson.E{Key: "$unset", Value: bson.D{{Key: "assignedMembers." + field, Value: ""}}})
	}
	update = append(bson.D{{Key: "$set", Value: set}}, update...)

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var out schema.ItemDetails
	if err := c.FindOneAndUpdate(ctx, bson.D{{Key: "_id", Value: id}}, update, opts).Decode(&out); err != nil {
		return nil, translate(err)
	}
	return &out, nil
}

func (s *ItemStore) Delete(ctx context.Context, section string, id bson.ObjectID) error {
	c, err := s.coll(section)
	if err != nil {
		return err
	}
	res, err := c.DeleteOne(ctx, bson.D{{Key: "_id", Value: id}})
	if err != nil {
		return fmt.Errorf("delete item: %w", err)
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// DeleteBySections removes the items of the given sections from every item
// collection.
func (s *ItemStore) DeleteBySections(ctx context.Context, sectionIDs []bson.ObjectID) (int64, error) {
	if len(sectionIDs) == 0 {
		return 0, nil
	}
	filter := bson.D{{Key: "sectionId", Value: bson.D{{Key: "$in", Value: sectionIDs}}}}
	var total int64
	for _, sec := range catalog.Sections() {
		if sec.Kind != catalog.KindItems {
			continue
		}
		res, err := s.db.Collection(sec.Collection).DeleteMany(ctx, filter)
		if err != nil {
			return total, fmt.Errorf("delete %s items: %w", sec.Slug, err)
		}
		total += res.DeletedCount
	}
	return total, nil
}
