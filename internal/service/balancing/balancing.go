package balancing

import (
	"context"
	"fmt"
	"math"
	"strings"

	"github.com/Alijeyrad/taadol_backend/internal/catalog"
	"github.com/Alijeyrad/taadol_backend/internal/commission"
	"github.com/Alijeyrad/taadol_backend/internal/repo"
	"github.com/Alijeyrad/taadol_backend/internal/schema"
)

// weightEpsilon absorbs float noise when checking the per-section sum.
const weightEpsilon = 1e-6

// ---------------------------------------------------------------------------
// DTOs
// ---------------------------------------------------------------------------

type FieldWeight struct {
	FieldName string  `json:"field_name"`
	Weight    float64 `json:"weight"`
}

type SectionWeights struct {
	SectionName string        `json:"section_name"`
	Weights     []FieldWeight `json:"weights"`
	Total       float64       `json:"total"`
}

type PreviewRequest struct {
	SectionName string
	Fields      []commission.PreviewField
	// SystemPercent overrides the stored percentage when set.
	SystemPercent *float64
}

// ---------------------------------------------------------------------------
// Interface
// ---------------------------------------------------------------------------

type Service interface {
	Weights(ctx context.Context) ([]SectionWeights, error)
	ReplaceWeights(ctx context.Context, section string, ws []FieldWeight) (*SectionWeights, error)
	SetWeight(ctx context.Context, section string, w FieldWeight) (*SectionWeights, error)
	Percentages(ctx context.Context) (map[string]float64, error)
	ReplacePercentages(ctx context.Context, p map[string]float64) (map[string]float64, error)
	Preview(ctx context.Context, req PreviewRequest) (commission.UnitBreakdown, error)
}

// ---------------------------------------------------------------------------
// Implementation
// ---------------------------------------------------------------------------

type balancingService struct {
	db *repo.Client
}

func New(db *repo.Client) Service {
	return &balancingService{db: db}
}

// Weights returns every catalog section with its stored weights, in catalog
// order. Fields without a record are listed with weight 0.
func (s *balancingService) Weights(ctx context.Context) ([]SectionWeights, error) {
	stored, err := s.db.Weights.List(ctx, "")
	if err != nil {
		return nil, fmt.Errorf("list weights: %w", err)
	}
	table, _ := commission.NewWeightTable(repo.WeightsOf(stored))
	return groupWeights(table), nil
}

func groupWeights(table commission.WeightTable) []SectionWeights {
	out := make([]SectionWeights, 0, len(catalog.Names()))
	for _, sec := range catalog.Sections() {
		sw := SectionWeights{SectionName: sec.Name, Weights: make([]FieldWeight, 0, len(sec.Fields))}
		for _, f := range sec.Fields {
			w, _ := table.Weight(sec.Name, f)
			sw.Weights = append(sw.Weights, FieldWeight{FieldName: f, Weight: w})
			sw.Total += w
		}
		out = append(out, sw)
	}
	return out
}

func (s *balancingService) ReplaceWeights(ctx context.Context, section string, ws []FieldWeight) (*SectionWeights, error) {
	name, clean, err := ValidateWeights(section, ws)
	if err != nil {
		return nil, err
	}
	docs := make([]schema.SectionWeight, len(clean))
	for i, w := range clean {
		docs[i] = schema.SectionWeight{SectionName: name, FieldName: w.FieldName, Weight: w.Weight}
	}
	if err := s.db.Weights.ReplaceSection(ctx, name, docs); err != nil {
		return nil, fmt.Errorf("replace weights: %w", err)
	}
	return s.section(ctx, name)
}

// SetWeight changes one field's weight and leaves the rest of the section
// as stored. The section as a whole must still pass ValidateWeights.
func (s *balancingService) SetWeight(ctx context.Context, section string, w FieldWeight) (*SectionWeights, error) {
	name, ok := catalog.Canonical(section)
	if !ok {
		return nil, ErrUnknownSection
	}
	stored, err := s.db.Weights.List(ctx, name)
	if err != nil {
		return nil, fmt.Errorf("list weights: %w", err)
	}
	current := make([]FieldWeight, len(stored))
	for i, sw := range stored {
		current[i] = FieldWeight{FieldName: sw.FieldName, Weight: sw.Weight}
	}
	w.FieldName = strings.TrimSpace(w.FieldName)
	if _, _, err := ValidateWeights(name, MergeWeight(current, w)); err != nil {
		return nil, err
	}
	if err := s.db.Weights.Upsert(ctx, name, w.FieldName, w.Weight); err != nil {
		return nil, fmt.Errorf("set weight: %w", err)
	}
	return s.section(ctx, name)
}

func (s *balancingService) section(ctx context.Context, name string) (*SectionWeights, error) {
	all, err := s.Weights(ctx)
	if err != nil {
		return nil, err
	}
	for i := range all {
		if all[i].SectionName == name {
			return &all[i], nil
		}
	}
	return &SectionWeights{SectionName: name}, nil
}

// MergeWeight returns ws with w replacing the entry of the same field, or
// appended when the field has none. ws is not modified.
func MergeWeight(ws []FieldWeight, w FieldWeight) []FieldWeight {
	out := make([]FieldWeight, 0, len(ws)+1)
	replaced := false
	for _, cur := range ws {
		if cur.FieldName == w.FieldName {
			cur, replaced = w, true
		}
		out = append(out, cur)
	}
	if !replaced {
		out = append(out, w)
	}
	return out
}

// ValidateWeights checks a weight set for one section: known section and
// fields, no duplicates, each weight within 0..100 and a total of at most
// 100. It returns the canonical section name and the trimmed weights.
func ValidateWeights(section string, ws []FieldWeight) (string, []FieldWeight, error) {
	name, ok := catalog.Canonical(section)
	if !ok {
		return "", nil, ErrUnknownSection
	}
	seen := make(map[string]bool, len(ws))
	out := make([]FieldWeight, 0, len(ws))
	var sum float64
	for _, w := range ws {
		field := strings.TrimSpace(w.FieldName)
		if !catalog.HasField(name, field) {
			return "", nil, fmt.Errorf("%w: %q", ErrUnknownField, field)
		}
		if seen[field] {
			return "", nil, fmt.Errorf("%w: %q", ErrDuplicateField, field)
		}
		seen[field] = true
		if math.IsNaN(w.Weight) || w.Weight < 0 || w.Weight > 100 {
			return "", nil, fmt.Errorf("%w: %q", ErrWeightRange, field)
		}
		sum += w.Weight
		out = append(out, FieldWeight{FieldName: field, Weight: w.Weight})
	}
	if sum > 100+weightEpsilon {
		return "", nil, ErrWeightSum
	}
	return name, out, nil
}

func (s *balancingService) Percentages(ctx context.Context) (map[string]float64, error) {
	p, err := s.db.Percentages.Latest(ctx)
	if err != nil {
		if repo.IsNotFound(err) {
			return schema.SystemPercentages{}.BySection(), nil
		}
		return nil, fmt.Errorf("get system percentages: %w", err)
	}
	return p.BySection(), nil
}

func (s *balancingService) ReplacePercentages(ctx context.Context, in map[string]float64) (map[string]float64, error) {
	clean, err := ValidatePercentages(in)
	if err != nil {
		return nil, err
	}
	saved, err := s.db.Percentages.Save(ctx, schema.SystemPercentagesFrom(clean))
	if err != nil {
		return nil, fmt.Errorf("save system percentages: %w", err)
	}
	return saved.BySection(), nil
}

// ValidatePercentages accepts section names or slugs as keys. Sections that
// are left out get 0.
func ValidatePercentages(in map[string]float64) (map[string]float64, error) {
	out := make(map[string]float64, len(in))
	for k, v := range in {
		name, ok := catalog.Canonical(k)
		if !ok {
			return nil, fmt.Errorf("%w: %q", ErrUnknownSection, k)
		}
		if math.IsNaN(v) || v < 0 || v > 100 {
			return nil, fmt.Errorf("%w: %q", ErrPercentageRange, k)
		}
		out[name] = v
	}
	return out, nil
}

func (s *balancingService) Preview(ctx context.Context, req PreviewRequest) (commission.UnitBreakdown, error) {
	name, ok := catalog.Canonical(req.SectionName)
	if !ok {
		return commission.UnitBreakdown{}, ErrUnknownSection
	}
	stored, err := s.db.Weights.List(ctx, name)
	if err != nil {
		return commission.UnitBreakdown{}, fmt.Errorf("list weights: %w", err)
	}
	table, _ := commission.NewWeightTable(repo.WeightsOf(stored))

	var pct float64
	if req.SystemPercent != nil {
		pct = *req.SystemPercent
	} else {
		all, err := s.Percentages(ctx)
		if err != nil {
			return commission.UnitBreakdown{}, err
		}
		pct = all[name]
	}
	return commission.Preview(name, req.Fields, table, pct)
}
