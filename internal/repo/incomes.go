package repo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"github.com/Alijeyrad/taadol_backend/internal/schema"
)

type IncomeStore struct {
	db *mongo.Database
}

func (s *IncomeStore) coll() *mongo.Collection {
	return s.db.Collection(schema.CollectionProjectIncomes)
}

func (s *IncomeStore) Get(ctx context.Context, projectID bson.ObjectID) (*schema.ProjectIncome, error) {
	var in schema.ProjectIncome
	if err := s.coll().FindOne(ctx, bson.D{{Key: "projectId", Value: projectID}}).Decode(&in); err != nil {
		return nil, translate(err)
	}
	return &in, nil
}

func (s *IncomeStore) List(ctx context.Context) ([]schema.ProjectIncome, error) {
	cur, err := s.coll().Find(ctx, bson.D{}, options.Find().SetSort(bson.D{{Key: "_id", Value: 1}}))
	if err != nil {
		return nil, fmt.Errorf("find incomes: %w", err)
	}
	out := []schema.ProjectIncome{}
	if err := cur.All(ctx, &out); err != nil {
		return nil, fmt.Errorf("decode incomes: %w", err)
	}
	return out, nil
}

// Upsert stores the whole income document of a project.
func (s *IncomeStore) Upsert(ctx context.Context, in schema.ProjectIncome) (*schema.ProjectIncome, error) {
	t := now()
	update := bson.D{
		{Key: "$set", Value: bson.D{
			{Key: "details", Value: in.Details},
			{Key: "purchaseProfit", Value: in.PurchaseProfit},
			{Key: "designProfit", Value: in.DesignProfit},
			{Key: "collaborationProfit", Value: in.CollaborationProfit},
			{Key: "contractingProfit", Value: in.ContractingProfit},
			{Key: "salesProfit", Value: in.SalesProfit},
			{Key: "consultationProfit", Value: in.ConsultationProfit},
			{Key: "totalIncome", Value: in.TotalIncome},
			{Key: "taxShare", Value: in.TaxShare},
			{Key: "updatedAt", Value: t},
		}},
		{Key: "$setOnInsert", Value: bson.D{{Key: "createdAt", Value: t}}},
	}
	opts := options.FindOneAndUpdate().SetUpsert(true).SetReturnDocument(options.After)
	var out schema.ProjectIncome
	if err := s.coll().FindOneAndUpdate(ctx, bson.D{{Key: "projectId", Value: in.ProjectID}}, update, opts).Decode(&out); err != nil {
		return nil, translate(err)
	}
	return &out, nil
}

// SetTaxShare updates the cached tax share without touching the details.
func (s *IncomeStore) SetTaxShare(ctx context.Context, projectID bson.ObjectID, share float64) error {
	update := bson.D{{Key: "$set", Value: bson.D{{Key: "taxShare", Value: share}, {Key: "updatedAt", Value: now()}}}}
	if _, err := s.coll().UpdateOne(ctx, bson.D{{Key: "projectId", Value: projectID}}, update); err != nil {
		return fmt.Errorf("update tax share: %w", err)
	}
	return nil
}

func (s *IncomeStore) DeleteByProject(ctx context.Context, projectID bson.ObjectID) error {
	if _, err := s.coll().DeleteMany(ctx, bson.D{{Key: "projectId", Value: projectID}}); err != nil {
		return fmt.Errorf("delete incomes: %w", err)
	}
	return nil
}

type TaxStore struct {
	db *mongo.Database
}

func (s *TaxStore) coll() *mongo.Collection {
	return s.db.Collection(schema.CollectionProjectTaxes)
}

func (s *TaxStore) List(ctx context.Context) ([]schema.ProjectTax, error) {
	cur, err := s.coll().Find(ctx, bson.D{}, options.Find().SetSort(bson.D{{Key: "taxPercentage", Value: -1}}))
	if err != nil {
		return nil, fmt.Errorf("find taxes: %w", err)
	}
	out := []schema.ProjectTax{}
	if err := cur.All(ctx, &out); err != nil {
		return nil, fmt.Errorf("decode taxes: %w", err)
	}
	return out, nil
}

func (s *TaxStore) Get(ctx context.Context, projectID bson.ObjectID) (*schema.ProjectTax, error) {
	var t schema.ProjectTax
	if err := s.coll().FindOne(ctx, bson.D{{Key: "projectId", Value: projectID}}).Decode(&t); err != nil {
		return nil, translate(err)
	}
	return &t, nil
}

// Upsert records a project's income and its share of the total.
func (s *TaxStore) Upsert(ctx context.Context, projectID bson.ObjectID, totalIncome, percentage float64, at time.Time) error {
	update := bson.D{
		{Key: "$set", Value: bson.D{
			{Key: "totalIncome", Value: totalIncome},
			{Key: "taxPercentage", Value: percentage},
			{Key: "lastCalculatedAt", Value: at},
			{Key: "updatedAt", Value: at},
		}},
		{Key: "$setOnInsert", Value: bson.D{{Key: "createdAt", Value: at}}},
	}
	if _, err := s.coll().UpdateOne(ctx, bson.D{{Key: "projectId", Value: projectID}}, update, options.UpdateOne().SetUpsert(true)); err != nil {
		return fmt.Errorf("upsert tax: %w", err)
	}
	return nil
}

// SetPercentage overrides a tax record's share by the record id.
func (s *TaxStore) SetPercentage(ctx context.Context, id bson.ObjectID, percentage float64) (*schema.ProjectTax, error) {
	t := now()
	update := bson.D{{Key: "$set", Value: bson.D{
		{Key: "taxPercentage", Value: percentage},
		{Key: "lastCalculatedAt", Value: t},
		{Key: "updatedAt", Value: t},
	}}}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var out schema.ProjectTax
	if err := s.coll().FindOneAndUpdate(ctx, bson.D{{Key: "_id", Value: id}}, update, opts).Decode(&out); err != nil {
		return nil, translate(err)
	}
	return &out, nil
}

func (s *TaxStore) DeleteByProject(ctx context.Context, projectID bson.ObjectID) error {
	if _, err := s.coll().DeleteMany(ctx, bson.D{{Key: "projectId", Value: projectID}}); err != nil {
		return fmt.Errorf("delete taxes: %w", err)
	}
	return nil
}
