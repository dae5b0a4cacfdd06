package commission

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"golang.org/x/sync/errgroup"

	"github.com/Alijeyrad/taadol_backend/internal/catalog"
)

// Source is the read-only data access the aggregator needs. Implementations
// return ErrNotFound (possibly wrapped) for records that do not exist; any
// other error is treated as an upstream failure and aborts the call.
type Source interface {
	ListProjects(ctx context.Context) ([]Project, error)
	// ListProjectsAfter returns up to limit projects ordered by id, starting
	// after the given id ("" starts from the beginning).
	ListProjectsAfter(ctx context.Context, after string, limit int) ([]Project, error)
	GetProject(ctx context.Context, id string) (Project, error)
	ListSections(ctx context.Context, projectID string) ([]Section, error)
	ListItems(ctx context.Context, section Section) ([]Item, error)
	// GetDetails returns nil when the flat section has no details record.
	GetDetails(ctx context.Context, section Section) (*Details, error)
	ListSectionWeights(ctx context.Context) ([]SectionWeight, error)
	// LatestSystemPercentages returns an empty map when none are stored.
	LatestSystemPercentages(ctx context.Context) (Percentages, error)
	// GetProjectIncome returns nil when the project has no income record.
	GetProjectIncome(ctx context.Context, projectID string) (*Income, error)
}

const (
	DefaultPageSize    = 10
	DefaultConcurrency = 4
)

type Aggregator struct {
	src         Source
	log         *slog.Logger
	concurrency int
}

type Option func(*Aggregator)

func WithLogger(l *slog.Logger) Option {
	return func(a *Aggregator) {
		if l != nil {
			a.log = l
		}
	}
}

// WithConcurrency bounds how many members SummarizeMembers computes at once.
func WithConcurrency(n int) Option {
	return func(a *Aggregator) {
		if n > 0 {
			a.concurrency = n
		}
	}
}

func NewAggregator(src Source, opts ...Option) *Aggregator {
	a := &Aggregator{
		src:         src,
		log:         slog.Default(),
		concurrency: DefaultConcurrency,
	}
	for _, o := range opts {
		o(a)
	}
	return a
}

// ---------------------------------------------------------------------------
// Walk
// ---------------------------------------------------------------------------

type snapshot struct {
	weights WeightTable
	percent Percentages
}

// unit is one item of an item-bearing section or one flat section.
type unit struct {
	project Project
	section Section
	item    string
	fields  Fields
}

func (a *Aggregator) loadSnapshot(ctx context.Context) (snapshot, error) {
	ws, err := a.src.ListSectionWeights(ctx)
	if err != nil {
		return snapshot{}, fmt.Errorf("load section weights: %w", err)
	}
	table, dups := NewWeightTable(ws)
	for _, d := range dups {
		a.log.Warn("duplicate section weight, last record wins",
			"section", d.SectionName, "field", d.FieldName)
	}

	pct, err := a.src.LatestSystemPercentages(ctx)
	if err != nil {
		return snapshot{}, fmt.Errorf("load system percentages: %w", err)
	}
	if pct == nil {
		pct = Percentages{}
	}
	return snapshot{weights: table, percent: pct}, nil
}

// walkProject calls fn for every unit of the project. Missing sections,
// items and details are skipped; other errors abort the walk.
func (a *Aggregator) walkProject(ctx context.Context, p Project, fn func(unit)) error {
	sections, err := a.src.ListSections(ctx, p.ID)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			a.log.Debug("project vanished during aggregation", "project_id", p.ID)
			return nil
		}
		return fmt.Errorf("list sections of project %s: %w", p.ID, err)
	}

	for _, s := range sections {
		if err := ctx.Err(); err != nil {
			return err
		}
		if !catalog.Valid(s.Name) {
			a.log.Warn("section with unknown name skipped", "section_id", s.ID, "name", s.Name)
			continue
		}

		if catalog.IsItemBearing(s.Name) {
			items, err := a.src.ListItems(ctx, s)
			if err != nil {
				if errors.Is(err, ErrNotFound) {
					a.log.Debug("section vanished during aggregation", "section_id", s.ID)
					continue
				}
				return fmt.Errorf("list items of section %s: %w", s.ID, err)
			}
			for _, it := range items {
				fn(unit{project: p, section: s, item: it.Name, fields: it.Fields.Resolve(s.Name)})
			}
			continue
		}

		d, err := a.src.GetDetails(ctx, s)
		if err != nil {
			if errors.Is(err, ErrNotFound) {
				a.log.Debug("details vanished during aggregation", "section_id", s.ID)
				continue
			}
			return fmt.Errorf("get details of section %s: %w", s.ID, err)
		}
		if d == nil {
			continue
		}
		fn(unit{project: p, section: s, fields: d.Fields.Resolve(s.Name)})
	}
	return nil
}

func (a *Aggregator) projectIncome(ctx context.Context, projectID string) (*Income, error) {
	in, err := a.src.GetProjectIncome(ctx, projectID)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("get income of project %s: %w", projectID, err)
	}
	return in, nil
}

// ---------------------------------------------------------------------------
// Member commissions
// ---------------------------------------------------------------------------

func (a *Aggregator) memberLines(ctx context.Context, snap snapshot, p Project, memberID string) ([]Line, error) {
	income, err := a.projectIncome(ctx, p.ID)
	if err != nil {
		return nil, err
	}
	if income == nil {
		return nil, nil
	}

	var lines []Line
	err = a.walkProject(ctx, p, func(u unit) {
		weights := snap.weights.Redistribute(u.section.Name, u.fields.Names(), u.fields.ActiveNames())
		pct := snap.percent.For(u.section.Name)

		for _, f := range u.fields {
			if !f.IsActive || f.AssignedMemberID != memberID {
				continue
			}
			value := income.Value(catalog.IncomeKey(u.section.Name, u.item, f.Field))
			weight := weights[f.Field]
			if value <= 0 || weight <= 0 {
				continue
			}
			c := FieldCommission(value, weight, pct)
			lines = append(lines, Line{
				ProjectID:     p.ID,
				ProjectName:   p.Name,
				SectionName:   u.section.Name,
				ItemName:      u.item,
				FieldName:     f.Field,
				Income:        value,
				Weight:        weight,
				SystemPercent: pct,
				Commission:    c,
			})
		}
	})
	if err != nil {
		return nil, err
	}
	return lines, nil
}

// MemberCommissions returns every commission line the member earns across all
// projects. Lines are not sorted.
func (a *Aggregator) MemberCommissions(ctx context.Context, memberID string) ([]Line, error) {
	if memberID == "" {
		return nil, nil
	}
	snap, err := a.loadSnapshot(ctx)
	if err != nil {
		return nil, err
	}
	projects, err := a.src.ListProjects(ctx)
	if err != nil {
		return nil, fmt.Errorf("list projects: %w", err)
	}

	var lines []Line
	for _, p := range projects {
		pl, err := a.memberLines(ctx, snap, p, memberID)
		if err != nil {
			return nil, err
		}
		lines = append(lines, pl...)
	}
	return lines, nil
}

// MemberCommissionsPage computes the member's lines for one page of projects.
// The cursor is the id of the last project of the previous page.
func (a *Aggregator) MemberCommissionsPage(ctx context.Context, memberID, cursor string, limit int) (Page, error) {
	if limit <= 0 {
		limit = DefaultPageSize
	}
	page := Page{Lines: []Line{}}
	if memberID == "" {
		return page, nil
	}

	snap, err := a.loadSnapshot(ctx)
	if err != nil {
		return Page{}, err
	}
	projects, err := a.src.ListProjectsAfter(ctx, cursor, limit+1)
	if err != nil {
		return Page{}, fmt.Errorf("list projects: %w", err)
	}
	if len(projects) > limit {
		projects = projects[:limit]
		page.HasMore = true
		page.NextCursor = projects[len(projects)-1].ID
	}

	for _, p := range projects {
		pl, err := a.memberLines(ctx, snap, p, memberID)
		if err != nil {
			return Page{}, err
		}
		page.Lines = append(page.Lines, pl...)
	}
	return page, nil
}

// MemberAssignments lists every field assigned to the member.
func (a *Aggregator) MemberAssignments(ctx context.Context, memberID string) ([]Assignment, error) {
	out := []Assignment{}
	if memberID == "" {
		return out, nil
	}
	projects, err := a.src.ListProjects(ctx)
	if err != nil {
		return nil, fmt.Errorf("list projects: %w", err)
	}
	for _, p := range projects {
		err := a.walkProject(ctx, p, func(u unit) {
			for _, f := range u.fields {
				if f.AssignedMemberID != memberID {
					continue
				}
				out = append(out, Assignment{
					ProjectID:   p.ID,
					ProjectName: p.Name,
					SectionName: u.section.Name,
					ItemName:    u.item,
					FieldName:   f.Field,
					IsActive:    f.IsActive,
				})
			}
		})
		if err != nil {
			return nil, err
		}
	}
	return out, nil
}

// SummarizeMembers computes each member's total commission concurrently.
// The result keeps the order of memberIDs.
func (a *Aggregator) SummarizeMembers(ctx context.Context, memberIDs []string) ([]MemberTotal, error) {
	out := make([]MemberTotal, len(memberIDs))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(a.concurrency)
	for i, id := range memberIDs {
		g.Go(func() error {
			lines, err := a.MemberCommissions(gctx, id)
			if err != nil {
				return fmt.Errorf("member %s: %w", id, err)
			}
			out[i] = MemberTotal{MemberID: id, Commission: Total(lines), Lines: len(lines)}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}

// ---------------------------------------------------------------------------
// Project breakdown
// ---------------------------------------------------------------------------

// ProjectBreakdown returns every unit of the project with per-field weights
// and commissions. A project that does not exist yields an empty breakdown.
func (a *Aggregator) ProjectBreakdown(ctx context.Context, projectID string) (ProjectBreakdown, error) {
	out := ProjectBreakdown{ProjectID: projectID, Units: []UnitBreakdown{}, MemberTotals: map[string]int64{}}

	p, err := a.src.GetProject(ctx, projectID)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return out, nil
		}
		return ProjectBreakdown{}, fmt.Errorf("get project %s: %w", projectID, err)
	}
	out.ProjectName = p.Name

	snap, err := a.loadSnapshot(ctx)
	if err != nil {
		return ProjectBreakdown{}, err
	}
	income, err := a.projectIncome(ctx, p.ID)
	if err != nil {
		return ProjectBreakdown{}, err
	}

	err = a.walkProject(ctx, p, func(u unit) {
		ub := breakdownUnit(u, snap, income)
		for _, f := range ub.Fields {
			if f.AssignedMemberID != "" && f.Commission > 0 {
				out.MemberTotals[f.AssignedMemberID] += f.Commission
			}
		}
		out.TotalCommission += ub.TotalCommission
		out.TotalSystemShare += ub.TotalSystemShare
		out.Units = append(out.Units, ub)
	})
	if err != nil {
		return ProjectBreakdown{}, err
	}
	return out, nil
}

func breakdownUnit(u unit, snap snapshot, income *Income) UnitBreakdown {
	pct := snap.percent.For(u.section.Name)
	weights := snap.weights.Redistribute(u.section.Name, u.fields.Names(), u.fields.ActiveNames())

	ub := UnitBreakdown{
		SectionID:     u.section.ID,
		SectionName:   u.section.Name,
		SectionActive: u.section.IsActive,
		ItemName:      u.item,
		SystemPercent: pct,
		Fields:        make([]FieldBreakdown, 0, len(u.fields)),
	}
	for _, f := range u.fields {
		key := catalog.IncomeKey(u.section.Name, u.item, f.Field)
		orig, _ := snap.weights.Weight(u.section.Name, f.Field)
		fb := FieldBreakdown{
			FieldName:        f.Field,
			IsActive:         f.IsActive,
			AssignedMemberID: f.AssignedMemberID,
			IncomeKey:        key,
			Income:           income.Value(key),
			OriginalWeight:   orig,
		}
		if f.IsActive {
			fb.Weight = weights[f.Field]
			fb.Commission = FieldCommission(fb.Income, fb.Weight, pct)
			fb.SystemShare = SystemShare(fb.Income, fb.Weight, pct)
		}
		ub.TotalCommission += fb.Commission
		ub.TotalSystemShare += fb.SystemShare
		ub.Fields = append(ub.Fields, fb)
	}
	return ub
}
