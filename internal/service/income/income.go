package income

import (
	"context"
	"fmt"
	"math"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"

	"github.com/Alijeyrad/taadol_backend/internal/catalog"
	"github.com/Alijeyrad/taadol_backend/internal/commission"
	"github.com/Alijeyrad/taadol_backend/internal/repo"
	"github.com/Alijeyrad/taadol_backend/internal/schema"
)

// ---------------------------------------------------------------------------
// DTOs
// ---------------------------------------------------------------------------

type Entry struct {
	Value    float64
	IsActive bool
}

type SaveRequest struct {
	// Entries are merged into the stored details by income key.
	Entries map[string]Entry
	// Replace drops stored keys that are not in Entries.
	Replace bool
}

// TaxShare is one project's share of the combined income.
type TaxShare struct {
	ProjectID     bson.ObjectID `json:"project_id"`
	TotalIncome   float64       `json:"total_income"`
	TaxPercentage float64       `json:"tax_percentage"`
}

// ---------------------------------------------------------------------------
// Interface
// ---------------------------------------------------------------------------

type Service interface {
	Get(ctx context.Context, projectID string) (*schema.ProjectIncome, error)
	Save(ctx context.Context, projectID string, req SaveRequest) (*schema.ProjectIncome, error)
	// Taxes recomputes every project's share and returns the stored records.
	Taxes(ctx context.Context) ([]schema.ProjectTax, error)
	SetTaxPercentage(ctx context.Context, taxID string, percentage float64) (*schema.ProjectTax, error)
}

// ---------------------------------------------------------------------------
// Implementation
// ---------------------------------------------------------------------------

type incomeService struct {
	db *repo.Client
}

func New(db *repo.Client) Service {
	return &incomeService{db: db}
}

func (s *incomeService) project(ctx context.Context, id string) (bson.ObjectID, error) {
	oid, err := repo.ParseID(id)
	if err != nil {
		return oid, ErrProjectNotFound
	}
	if _, err := s.db.Projects.Get(ctx, oid); err != nil {
		if repo.IsNotFound(err) {
			return oid, ErrProjectNotFound
		}
		return oid, fmt.Errorf("get project: %w", err)
	}
	return oid, nil
}

// Get returns the stored income, or an empty one when nothing was saved.
func (s *incomeService) Get(ctx context.Context, projectID string) (*schema.ProjectIncome, error) {
	oid, err := s.project(ctx, projectID)
	if err != nil {
		return nil, err
	}
	in, err := s.db.Incomes.Get(ctx, oid)
	if err != nil {
		if repo.IsNotFound(err) {
			return &schema.ProjectIncome{ProjectID: oid, Details: map[string]schema.IncomeDetail{}}, nil
		}
		return nil, fmt.Errorf("get income: %w", err)
	}
	return in, nil
}

func (s *incomeService) Save(ctx context.Context, projectID string, req SaveRequest) (*schema.ProjectIncome, error) {
	if err := validateEntries(req.Entries); err != nil {
		return nil, err
	}
	cur, err := s.Get(ctx, projectID)
	if err != nil {
		return nil, err
	}

	pct, err := s.percentages(ctx)
	if err != nil {
		return nil, err
	}

	next := Merge(*cur, req)
	ComputeProfits(&next, pct)

	saved, err := s.db.Incomes.Upsert(ctx, next)
	if err != nil {
		return nil, fmt.Errorf("save income: %w", err)
	}
	return saved, nil
}

func (s *incomeService) percentages(ctx context.Context) (commission.Percentages, error) {
	p, err := s.db.Percentages.Latest(ctx)
	if err != nil {
		if repo.IsNotFound(err) {
			return commission.Percentages{}, nil
		}
		return nil, fmt.Errorf("get system percentages: %w", err)
	}
	return commission.Percentages(p.BySection()), nil
}

func validateEntries(entries map[string]Entry) error {
	for k, e := range entries {
		if _, ok := catalog.SectionOfKey(k); !ok {
			return fmt.Errorf("%w: %q", ErrUnknownKey, k)
		}
		if e.Value < 0 || math.IsNaN(e.Value) {
			return fmt.Errorf("%w: %q", ErrNegativeValue, k)
		}
	}
	return nil
}

// Merge applies a save request to the stored income.
func Merge(cur schema.ProjectIncome, req SaveRequest) schema.ProjectIncome {
	next := cur
	next.Details = make(map[string]schema.IncomeDetail, len(cur.Details)+len(req.Entries))
	if !req.Replace {
		for k, v := range cur.Details {
			next.Details[k] = v
		}
	}
	for k, e := range req.Entries {
		next.Details[k] = schema.IncomeDetail{Value: e.Value, IsActive: e.IsActive}
	}
	return next
}

// ComputeProfits fills the per-section subtotals from the active entries,
// net of each section's system percentage, and sums them into TotalIncome.
func ComputeProfits(in *schema.ProjectIncome, pct commission.Percentages) {
	sums := make(map[string]int64, len(catalog.Names()))
	for k, d := range in.Details {
		if !d.IsActive {
			continue
		}
		section, ok := catalog.SectionOfKey(k)
		if !ok {
			continue
		}
		sums[section] += commission.NetOfSystem(d.Amount(), pct.For(section))
	}
	for _, sec := range catalog.Sections() {
		in.SetProfit(sec.ProfitField, float64(sums[sec.Name]))
	}
	in.SumProfits()
}

// TaxShares returns each project's rounded share of the combined income.
// Projects without positive income are left out.
func TaxShares(totals map[bson.ObjectID]float64) []TaxShare {
	var grand float64
	for _, t := range totals {
		if t > 0 {
			grand += t
		}
	}
	if grand == 0 {
		return nil
	}
	out := make([]TaxShare, 0, len(totals))
	for id, t := range totals {
		if t <= 0 {
			continue
		}
		out = append(out, TaxShare{
			ProjectID:     id,
			TotalIncome:   t,
			TaxPercentage: math.Round(t / grand * 100),
		})
	}
	return out
}

func (s *incomeService) Taxes(ctx context.Context) ([]schema.ProjectTax, error) {
	projects, err := s.db.Projects.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list projects: %w", err)
	}
	incomes, err := s.db.Incomes.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list incomes: %w", err)
	}

	totals := make(map[bson.ObjectID]float64, len(projects))
	for _, p := range projects {
		totals[p.ID] = 0
	}
	for _, in := range incomes {
		if _, ok := totals[in.ProjectID]; !ok {
			continue
		}
		in.SumProfits()
		totals[in.ProjectID] += in.TotalIncome
	}

	at := time.Now().UTC()
	for _, share := range TaxShares(totals) {
		if err := s.db.Taxes.Upsert(ctx, share.ProjectID, share.TotalIncome, share.TaxPercentage, at); err != nil {
			return nil, err
		}
		if err := s.db.Incomes.SetTaxShare(ctx, share.ProjectID, share.TaxPercentage); err != nil {
			return nil, err
		}
	}

	taxes, err := s.db.Taxes.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list taxes: %w", err)
	}
	return taxes, nil
}

func (s *incomeService) SetTaxPercentage(ctx context.Context, taxID string, percentage float64) (*schema.ProjectTax, error) {
	if percentage < 0 || percentage > 100 || math.IsNaN(percentage) {
		return nil, ErrPercentageRange
	}
	oid, err := repo.ParseID(taxID)
	if err != nil {
		return nil, ErrTaxNotFound
	}
	t, err := s.db.Taxes.SetPercentage(ctx, oid, percentage)
	if err != nil {
		if repo.IsNotFound(err) {
			return nil, ErrTaxNotFound
		}
		return nil, fmt.Errorf("set tax percentage: %w", err)
	}
	return t, nil
}
