package repo

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"github.com/Alijeyrad/taadol_backend/internal/schema"
)

type SectionStore struct {
	db *mongo.Database
}

func (s *SectionStore) coll() *mongo.Collection {
	return s.db.Collection(schema.CollectionProjectSections)
}

func (s *SectionStore) find(ctx context.Context, filter bson.D) ([]schema.ProjectSection, error) {
	opts := options.Find().SetSort(bson.D{{Key: "_id", Value: 1}})
	cur, err := s.coll().Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("find sections: %w", err)
	}
	out := []schema.ProjectSection{}
	if err := cur.All(ctx, &out); err != nil {
		return nil, fmt.Errorf("decode sections: %w", err)
	}
	return out, nil
}

func (s *SectionStore) ListByProject(ctx context.Context, projectID bson.ObjectID) ([]schema.ProjectSection, error) {
	return s.find(ctx, bson.D{{Key: "projectId", Value: projectID}})
}

func (s *SectionStore) ListAll(ctx context.Context) ([]schema.ProjectSection, error) {
	return s.find(ctx, bson.D{})
}

func (s *SectionStore) Get(ctx context.Context, id bson.ObjectID) (*schema.ProjectSection, error) {
	var sec schema.ProjectSection
	if err := s.coll().FindOne(ctx, bson.D{{Key: "_id", Value: id}}).Decode(&sec); err != nil {
		return nil, translate(err)
	}
	return &sec, nil
}

// FindByName returns the project's section with the given catalog name.
func (s *SectionStore) FindByName(ctx context.Context, projectID bson.ObjectID, name string) (*schema.ProjectSection, error) {
	var sec schema.ProjectSection
	filter := bson.D{{Key: "projectId", Value: projectID}, {Key: "sectionName", Value: name}}
	if err := s.coll().FindOne(ctx, filter).Decode(&sec); err != nil {
		return nil, translate(err)
	}
	return &sec, nil
}

func (s *SectionStore) Create(ctx context.Context, projectID bson.ObjectID, name string) (*schema.ProjectSection, error) {
	sec := schema.ProjectSection{
		ID:          bson.NewObjectID(),
		ProjectID:   projectID,
		SectionName: name,
		IsActive:    true,
	}
	sec.Touch(now())
	if _, err := s.coll().InsertOne(ctx, sec); err != nil {
		return nil, fmt.Errorf("insert section: %w", translate(err))
	}
	return &sec, nil
}

func (s *SectionStore) SetActive(ctx context.Context, id bson.ObjectID, active bool) (*schema.ProjectSection, error) {
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	update := bson.D{{Key: "$set", Value: bson.D{
		{Key: "isActive", Value: active},
		{Key: "updatedAt", Value: now()},
	}}}
	var sec schema.ProjectSection
	if err := s.coll().FindOneAndUpdate(ctx, bson.D{{Key: "_id", Value: id}}, update, opts).Decode(&sec); err != nil {
		return nil, translate(err)
	}
	return &sec, nil
}

func (s *SectionStore) Delete(ctx context.Context, id bson.ObjectID) error {
	res, err := s.coll().DeleteOne(ctx, bson.D{{Key: "_id", Value: id}})
	if err != nil {
		return fmt.Errorf("delete section: %w", err)
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *SectionStore) DeleteByProject(ctx context.Context, projectID bson.ObjectID) (int64, error) {
	res, err := s.coll().DeleteMany(ctx, bson.D{{Key: "projectId", Value: projectID}})
	if err != nil {
		return 0, fmt.Errorf("delete sections of project: %w", err)
	}
	return res.DeletedCount, nil
}
