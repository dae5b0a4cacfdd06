package repo

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"github.com/Alijeyrad/taadol_backend/internal/schema"
)

type MemberStore struct {
	db *mongo.Database
}

func (s *MemberStore) coll() *mongo.Collection {
	return s.db.Collection(schema.CollectionTeamMembers)
}

func (s *MemberStore) List(ctx context.Context) ([]schema.TeamMember, error) {
	opts := options.Find().SetSort(bson.D{{Key: "fullName", Value: 1}})
	cur, err := s.coll().Find(ctx, bson.D{}, opts)
	if err != nil {
		return nil, fmt.Errorf("find members: %w", err)
	}
	out := []schema.TeamMember{}
	if err := cur.All(ctx, &out); err != nil {
		return nil, fmt.Errorf("decode members: %w", err)
	}
	return out, nil
}

func (s *MemberStore) Get(ctx context.Context, id bson.ObjectID) (*schema.TeamMember, error) {
	var m schema.TeamMember
	if err := s.coll().FindOne(ctx, bson.D{{Key: "_id", Value: id}}).Decode(&m); err != nil {
		return nil, translate(err)
	}
	return &m, nil
}

// Create fails with ErrDuplicate when the national code is taken.
func (s *MemberStore) Create(ctx context.Context, m schema.TeamMember) (*schema.TeamMember, error) {
	m.ID = bson.NewObjectID()
	m.Touch(now())
	if _, err := s.coll().InsertOne(ctx, m); err != nil {
		return nil, translate(err)
	}
	return &m, nil
}

func (s *MemberStore) Update(ctx context.Context, m schema.TeamMember) (*schema.TeamMember, error) {
	update := bson.D{{Key: "$set", Value: bson.D{
		{Key: "fullName", Value: m.FullName},
		{Key: "position", Value: m.Position},
		{Key: "fatherName", Value: m.FatherName},
		{Key: "nationalCode", Value: m.NationalCode},
		{Key: "phoneNumber", Value: m.PhoneNumber},
		{Key: "email", Value: m.Email},
		{Key: "education", Value: m.Education},
		{Key: "address", Value: m.Address},
		{Key: "updatedAt", Value: now()},
	}}}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var out schema.TeamMember
	if err := s.coll().FindOneAndUpdate(ctx, bson.D{{Key: "_id", Value: m.ID}}, update, opts).Decode(&out); err != nil {
		return nil, translate(err)
	}
	return &out, nil
}

func (s *MemberStore) Delete(ctx context.Context, id bson.ObjectID) error {
	res, err := s.coll().DeleteOne(ctx, bson.D{{Key: "_id", Value: id}})
	if err != nil {
		return fmt.Errorf("delete member: %w", err)
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}
