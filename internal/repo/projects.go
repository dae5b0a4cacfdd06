package repo

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"github.com/Alijeyrad/taadol_backend/internal/schema"
)

type ProjectStore struct {
	db *mongo.Database
}

func (s *ProjectStore) coll() *mongo.Collection {
	return s.db.Collection(schema.CollectionProjects)
}

// List returns every project, newest first.
func (s *ProjectStore) List(ctx context.Context) ([]schema.Project, error) {
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	cur, err := s.coll().Find(ctx, bson.D{}, opts)
	if err != nil {
		return nil, fmt.Errorf("find projects: %w", err)
	}
	out := []schema.Project{}
	if err := cur.All(ctx, &out); err != nil {
		return nil, fmt.Errorf("decode projects: %w", err)
	}
	return out, nil
}

// ListAfter pages through projects by ascending id. A zero limit returns
// everything after the cursor.
func (s *ProjectStore) ListAfter(ctx context.Context, after bson.ObjectID, limit int) ([]schema.Project, error) {
	filter := bson.D{}
	if !after.IsZero() {
		filter = bson.D{{Key: "_id", Value: bson.D{{Key: "$gt", Value: after}}}}
	}
	opts := options.Find().SetSort(bson.D{{Key: "_id", Value: 1}})
	if limit > 0 {
		opts.SetLimit(int64(limit))
	}
	cur, err := s.coll().Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("find projects page: %w", err)
	}
	out := []schema.Project{}
	if err := cur.All(ctx, &out); err != nil {
		return nil, fmt.Errorf("decode projects page: %w", err)
	}
	return out, nil
}

func (s *ProjectStore) Get(ctx context.Context, id bson.ObjectID) (*schema.Project, error) {
	var p schema.Project
	if err := s.coll().FindOne(ctx, bson.D{{Key: "_id", Value: id}}).Decode(&p); err != nil {
		return nil, translate(err)
	}
	return &p, nil
}

func (s *ProjectStore) Create(ctx context.Context, name string) (*schema.Project, error) {
	p := schema.Project{ID: bson.NewObjectID(), Name: name}
	p.Touch(now())
	if _, err := s.coll().InsertOne(ctx, p); err != nil {
		return nil, fmt.Errorf("insert project: %w", translate(err))
	}
	return &p, nil
}

func (s *ProjectStore) Rename(ctx context.Context, id bson.ObjectID, name string) (*schema.Project, error) {
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	update := bson.D{{Key: "$set", Value: bson.D{
		{Key: "name", Value: name},
		{Key: "updatedAt", Value: now()},
	}}}
	var p schema.Project
	if err := s.coll().FindOneAndUpdate(ctx, bson.D{{Key: "_id", Value: id}}, update, opts).Decode(&p); err != nil {
		return nil, translate(err)
	}
	return &p, nil
}

func (s *ProjectStore) Delete(ctx context.Context, id bson.ObjectID) error {
	res, err := s.coll().DeleteOne(ctx, bson.D{{Key: "_id", Value: id}})
	if err != nil {
		return fmt.Errorf("delete project: %w", err)
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}
