package repo

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/v2/bson"

	"github.com/Alijeyrad/taadol_backend/internal/commission"
)

// CommissionSource exposes the stores as a commission.Source.
type CommissionSource struct {
	c *Client
}

var _ commission.Source = (*CommissionSource)(nil)

func NewCommissionSource(c *Client) *CommissionSource {
	return &CommissionSource{c: c}
}

// notFound rewraps ErrNotFound so the aggregator recognises it.
func notFound(err error) error {
	if IsNotFound(err) || errors.Is(err, ErrInvalidID) {
		return fmt.Errorf("%w: %v", commission.ErrNotFound, err)
	}
	return err
}

func (s *CommissionSource) ListProjects(ctx context.Context) ([]commission.Project, error) {
	ps, err := s.c.Projects.ListAfter(ctx, bson.ObjectID{}, 0)
	if err != nil {
		return nil, err
	}
	out := make([]commission.Project, len(ps))
	for i, p := range ps {
		out[i] = ProjectOf(p)
	}
	return out, nil
}

func (s *CommissionSource) ListProjectsAfter(ctx context.Context, after string, limit int) ([]commission.Project, error) {
	var cursor bson.ObjectID
	if after != "" {
		id, err := ParseID(after)
		if err != nil {
			return nil, err
		}
		cursor = id
	}
	ps, err := s.c.Projects.ListAfter(ctx, cursor, limit)
	if err != nil {
		return nil, err
	}
	out := make([]commission.Project, len(ps))
	for i, p := range ps {
		out[i] = ProjectOf(p)
	}
	return out, nil
}

func (s *CommissionSource) GetProject(ctx context.Context, id string) (commission.Project, error) {
	oid, err := ParseID(id)
	if err != nil {
		return commission.Project{}, notFound(err)
	}
	p, err := s.c.Projects.Get(ctx, oid)
	if err != nil {
		return commission.Project{}, notFound(err)
	}
	return ProjectOf(*p), nil
}

func (s *CommissionSource) ListSections(ctx context.Context, projectID string) ([]commission.Section, error) {
	oid, err := ParseID(projectID)
	if err != nil {
		return nil, notFound(err)
	}
	secs, err := s.c.Sections.ListByProject(ctx, oid)
	if err != nil {
		return nil, err
	}
	out := make([]commission.Section, len(secs))
	for i, sec := range secs {
		out[i] = SectionOf(sec)
	}
	return out, nil
}

func (s *CommissionSource) ListItems(ctx context.Context, section commission.Section) ([]commission.Item, error) {
	oid, err := ParseID(section.ID)
	if err != nil {
		return nil, notFound(err)
	}
	items, err := s.c.Items.List(ctx, section.Name, oid)
	if err != nil {
		return nil, err
	}
	out := make([]commission.Item, len(items))
	for i, it := range items {
		out[i] = commission.Item{
			ID:        it.ID.Hex(),
			SectionID: section.ID,
			Name:      it.ItemName,
			Fields:    ItemFields(section.Name, it),
		}
	}
	return out, nil
}

func (s *CommissionSource) GetDetails(ctx context.Context, section commission.Section) (*commission.Details, error) {
	oid, err := ParseID(section.ID)
	if err != nil {
		return nil, notFound(err)
	}
	d, err := s.c.Flat.Get(ctx, section.Name, oid)
	if IsNotFound(err) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &commission.Details{ID: d.ID.Hex(), SectionID: section.ID, Fields: FlatFields(section.Name, *d)}, nil
}

func (s *CommissionSource) ListSectionWeights(ctx context.Context) ([]commission.SectionWeight, error) {
	ws, err := s.c.Weights.List(ctx, "")
	if err != nil {
		return nil, err
	}
	return WeightsOf(ws), nil
}

func (s *CommissionSource) LatestSystemPercentages(ctx context.Context) (commission.Percentages, error) {
	p, err := s.c.Percentages.Latest(ctx)
	if IsNotFound(err) {
		return commission.Percentages{}, nil
	}
	if err != nil {
		return nil, err
	}
	return commission.Percentages(p.BySection()), nil
}

func (s *CommissionSource) GetProjectIncome(ctx context.Context, projectID string) (*commission.Income, error) {
	oid, err := ParseID(projectID)
	if err != nil {
		return nil, notFound(err)
	}
	in, err := s.c.Incomes.Get(ctx, oid)
	if IsNotFound(err) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return IncomeOf(*in), nil
}
