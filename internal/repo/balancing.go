package repo

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"github.com/Alijeyrad/taadol_backend/internal/schema"
)

type WeightStore struct {
	db *mongo.Database
}

func (s *WeightStore) coll() *mongo.Collection {
	return s.db.Collection(schema.CollectionSectionWeights)
}

// List returns all weights; sectionName filters when non-empty.
func (s *WeightStore) List(ctx context.Context, sectionName string) ([]schema.SectionWeight, error) {
	filter := bson.D{}
	if sectionName != "" {
		filter = bson.D{{Key: "sectionName", Value: sectionName}}
	}
	opts := options.Find().SetSort(bson.D{{Key: "sectionName", Value: 1}, {Key: "_id", Value: 1}})
	cur, err := s.coll().Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("find section weights: %w", err)
	}
	out := []schema.SectionWeight{}
	if err := cur.All(ctx, &out); err != nil {
		return nil, fmt.Errorf("decode section weights: %w", err)
	}
	return out, nil
}

// ReplaceSection swaps the weights of one section for ws.
func (s *WeightStore) ReplaceSection(ctx context.Context, sectionName string, ws []schema.SectionWeight) error {
	if _, err := s.coll().DeleteMany(ctx, bson.D{{Key: "sectionName", Value: sectionName}}); err != nil {
		return fmt.Errorf("clear section weights: %w", err)
	}
	if len(ws) == 0 {
		return nil
	}
	t := now()
	docs := make([]any, 0, len(ws))
	for _, w := range ws {
		w.ID = bson.NewObjectID()
		w.SectionName = sectionName
		w.CreatedAt, w.UpdatedAt = t, t
		docs = append(docs, w)
	}
	if _, err := s.coll().InsertMany(ctx, docs); err != nil {
		return fmt.Errorf("insert section weights: %w", translate(err))
	}
	return nil
}

// Upsert sets a single (section, field) weight.
func (s *WeightStore) Upsert(ctx context.Context, sectionName, fieldName string, weight float64) error {
	t := now()
	filter := bson.D{{Key: "sectionName", Value: sectionName}, {Key: "fieldName", Value: fieldName}}
	update := bson.D{
		{Key: "$set", Value: bson.D{{Key: "weight", Value: weight}, {Key: "updatedAt", Value: t}}},
		{Key: "$setOnInsert", Value: bson.D{{Key: "createdAt", Value: t}}},
	}
	if _, err := s.coll().UpdateOne(ctx, filter, update, options.UpdateOne().SetUpsert(true)); err != nil {
		return fmt.Errorf("upsert section weight: %w", err)
	}
	return nil
}

type PercentageStore struct {
	db *mongo.Database
}

func (s *PercentageStore) coll() *mongo.Collection {
	return s.db.Collection(schema.CollectionSystemPercentages)
}

// Latest returns the newest record, ErrNotFound when none was ever saved.
func (s *PercentageStore) Latest(ctx context.Context) (*schema.SystemPercentages, error) {
	opts := options.FindOne().SetSort(bson.D{{Key: "createdAt", Value: -1}, {Key: "_id", Value: -1}})
	var p schema.SystemPercentages
	if err := s.coll().FindOne(ctx, bson.D{}, opts).Decode(&p); err != nil {
		return nil, translate(err)
	}
	return &p, nil
}

// Save appends a new record; the history is kept and the newest wins.
func (s *PercentageStore) Save(ctx context.Context, p schema.SystemPercentages) (*schema.SystemPercentages, error) {
	p.ID = bson.NewObjectID()
	p.Timestamps = schema.Timestamps{}
	p.Touch(now())
	if _, err := s.coll().InsertOne(ctx, p); err != nil {
		return nil, fmt.Errorf("insert system percentages: %w", err)
	}
	return &p, nil
}
