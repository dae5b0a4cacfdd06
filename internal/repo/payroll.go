package repo

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"github.com/Alijeyrad/taadol_backend/internal/schema"
)

type SalaryStore struct {
	db *mongo.Database
}

func (s *SalaryStore) coll() *mongo.Collection {
	return s.db.Collection(schema.CollectionEmployeeSalaries)
}

// ListByEmployee returns salary records, latest date first.
func (s *SalaryStore) ListByEmployee(ctx context.Context, employeeID bson.ObjectID) ([]schema.EmployeeSalary, error) {
	opts := options.Find().SetSort(bson.D{{Key: "date", Value: -1}})
	cur, err := s.coll().Find(ctx, bson.D{{Key: "employeeId", Value: employeeID}}, opts)
	if err != nil {
		return nil, fmt.Errorf("find salaries: %w", err)
	}
	out := []schema.EmployeeSalary{}
	if err := cur.All(ctx, &out); err != nil {
		return nil, fmt.Errorf("decode salaries: %w", err)
	}
	return out, nil
}

func (s *SalaryStore) Get(ctx context.Context, employeeID bson.ObjectID, date string) (*schema.EmployeeSalary, error) {
	var sal schema.EmployeeSalary
	filter := bson.D{{Key: "employeeId", Value: employeeID}, {Key: "date", Value: date}}
	if err := s.coll().FindOne(ctx, filter).Decode(&sal); err != nil {
		return nil, translate(err)
	}
	return &sal, nil
}

// Upsert keeps one record per (employeeId, date).
func (s *SalaryStore) Upsert(ctx context.Context, sal schema.EmployeeSalary) (*schema.EmployeeSalary, error) {
	t := now()
	filter := bson.D{{Key: "employeeId", Value: sal.EmployeeID}, {Key: "date", Value: sal.Date}}
	update := bson.D{
		{Key: "$set", Value: bson.D{
			{Key: "baseSalary", Value: sal.BaseSalary},
			{Key: "additions", Value: sal.Additions},
			{Key: "deductions", Value: sal.Deductions},
			{Key: "updatedAt", Value: t},
		}},
		{Key: "$setOnInsert", Value: bson.D{{Key: "createdAt", Value: t}}},
	}
	opts := options.FindOneAndUpdate().SetUpsert(true).SetReturnDocument(options.After)
	var out schema.EmployeeSalary
	if err := s.coll().FindOneAndUpdate(ctx, filter, update, opts).Decode(&out); err != nil {
		return nil, translate(err)
	}
	return &out, nil
}

type ExpenseStore struct {
	db *mongo.Database
}

func (s *ExpenseStore) coll() *mongo.Collection {
	return s.db.Collection(schema.CollectionSystemExpenses)
}

func (s *ExpenseStore) Latest(ctx context.Context) (*schema.SystemExpenses, error) {
	opts := options.FindOne().SetSort(bson.D{{Key: "date", Value: -1}, {Key: "_id", Value: -1}})
	var e schema.SystemExpenses
	if err := s.coll().FindOne(ctx, bson.D{}, opts).Decode(&e); err != nil {
		return nil, translate(err)
	}
	return &e, nil
}

func (s *ExpenseStore) List(ctx context.Context, limit int) ([]schema.SystemExpenses, error) {
	opts := options.Find().SetSort(bson.D{{Key: "date", Value: -1}})
	if limit > 0 {
		opts.SetLimit(int64(limit))
	}
	cur, err := s.coll().Find(ctx, bson.D{}, opts)
	if err != nil {
		return nil, fmt.Errorf("find expenses: %w", err)
	}
	out := []schema.SystemExpenses{}
	if err := cur.All(ctx, &out); err != nil {
		return nil, fmt.Errorf("decode expenses: %w", err)
	}
	return out, nil
}

// UpsertByDate keeps one record per date.
func (s *ExpenseStore) UpsertByDate(ctx context.Context, e schema.SystemExpenses) (*schema.SystemExpenses, error) {
	t := now()
	update := bson.D{
		{Key: "$set", Value: bson.D{
			{Key: "staffSalary", Value: e.StaffSalary},
			{Key: "officeCosts", Value: e.OfficeCosts},
			{Key: "maintenanceCosts", Value: e.MaintenanceCosts},
			{Key: "workspaceUpgrade", Value: e.WorkspaceUpgrade},
			{Key: "toolsUpgrade", Value: e.ToolsUpgrade},
			{Key: "advertisingCosts", Value: e.AdvertisingCosts},
			{Key: "digitalDevelopment", Value: e.DigitalDevelopment},
			{Key: "paperworkCosts", Value: e.PaperworkCosts},
			{Key: "eventCosts", Value: e.EventCosts},
			{Key: "updatedAt", Value: t},
		}},
		{Key: "$setOnInsert", Value: bson.D{{Key: "createdAt", Value: t}}},
	}
	opts := options.FindOneAndUpdate().SetUpsert(true).SetReturnDocument(options.After)
	var out schema.SystemExpenses
	if err := s.coll().FindOneAndUpdate(ctx, bson.D{{Key: "date", Value: e.Date}}, update, opts).Decode(&out); err != nil {
		return nil, translate(err)
	}
	return &out, nil
}

type ReferralStore struct {
	db *mongo.Database
}

func (s *ReferralStore) coll() *mongo.Collection {
	return s.db.Collection(schema.CollectionGuestReferrals)
}

func (s *ReferralStore) List(ctx context.Context) ([]schema.GuestReferral, error) {
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	cur, err := s.coll().Find(ctx, bson.D{}, opts)
	if err != nil {
		return nil, fmt.Errorf("find referrals: %w", err)
	}
	out := []schema.GuestReferral{}
	if err := cur.All(ctx, &out); err != nil {
		return nil, fmt.Errorf("decode referrals: %w", err)
	}
	return out, nil
}

func (s *ReferralStore) Get(ctx context.Context, id bson.ObjectID) (*schema.GuestReferral, error) {
	var r schema.GuestReferral
	if err := s.coll().FindOne(ctx, bson.D{{Key: "_id", Value: id}}).Decode(&r); err != nil {
		return nil, translate(err)
	}
	return &r, nil
}

func (s *ReferralStore) Create(ctx context.Context, r schema.GuestReferral) (*schema.GuestReferral, error) {
	r.ID = bson.NewObjectID()
	r.Touch(now())
	if _, err := s.coll().InsertOne(ctx, r); err != nil {
		return nil, fmt.Errorf("insert referral: %w", err)
	}
	return &r, nil
}

func (s *ReferralStore) Update(ctx context.Context, r schema.GuestReferral) (*schema.GuestReferral, error) {
	update := bson.D{{Key: "$set", Value: bson.D{
		{Key: "fullName", Value: r.FullName},
		{Key: "referralFee", Value: r.ReferralFee},
		{Key: "description", Value: r.Description},
		{Key: "dateAdded", Value: r.DateAdded},
		{Key: "updatedAt", Value: now()},
	}}}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var out schema.GuestReferral
	if err := s.coll().FindOneAndUpdate(ctx, bson.D{{Key: "_id", Value: r.ID}}, update, opts).Decode(&out); err != nil {
		return nil, translate(err)
	}
	return &out, nil
}

func (s *ReferralStore) Delete(ctx context.Context, id bson.ObjectID) error {
	res, err := s.coll().DeleteOne(ctx, bson.D{{Key: "_id", Value: id}})
	if err != nil {
		return fmt.Errorf("delete referral: %w", err)
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}
