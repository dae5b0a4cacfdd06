package commission

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"

	core "github.com/Alijeyrad/taadol_backend/internal/commission"
	"github.com/Alijeyrad/taadol_backend/internal/report"
	"github.com/Alijeyrad/taadol_backend/internal/repo"
	"github.com/Alijeyrad/taadol_backend/internal/schema"
)

const instrumentationName = "github.com/Alijeyrad/taadol_backend/internal/service/commission"

// ---------------------------------------------------------------------------
// DTOs
// ---------------------------------------------------------------------------

type MemberReport struct {
	Member *schema.TeamMember `json:"member"`
	Lines  []core.Line        `json:"lines"`
	Total  int64              `json:"total"`
}

type SummaryRow struct {
	MemberID   string `json:"member_id"`
	FullName   string `json:"full_name"`
	Position   string `json:"position,omitempty"`
	Commission int64  `json:"commission"`
	Lines      int    `json:"lines"`
}

// ---------------------------------------------------------------------------
// Interface
// ---------------------------------------------------------------------------

type Service interface {
	Member(ctx context.Context, memberID string) (*MemberReport, error)
	MemberPage(ctx context.Context, memberID, cursor string, limit int) (*core.Page, error)
	Assignments(ctx context.Context, memberID string) ([]core.Assignment, error)
	Summary(ctx context.Context) ([]SummaryRow, error)
	Project(ctx context.Context, projectID string) (*core.ProjectBreakdown, error)
	MemberXLSX(ctx context.Context, memberID string) ([]byte, error)
	ProjectXLSX(ctx context.Context, projectID string) ([]byte, error)
}

// ---------------------------------------------------------------------------
// Implementation
// ---------------------------------------------------------------------------

type Limits struct {
	DefaultPageSize int
	MaxPageSize     int
}

type commissionService struct {
	db     *repo.Client
	agg    *core.Aggregator
	limits Limits

	tracer trace.Tracer
	lines  metric.Int64Counter
	runs   metric.Int64Counter
}

func New(db *repo.Client, agg *core.Aggregator, limits Limits) Service {
	if limits.DefaultPageSize <= 0 {
		limits.DefaultPageSize = core.DefaultPageSize
	}
	if limits.MaxPageSize < limits.DefaultPageSize {
		limits.MaxPageSize = limits.DefaultPageSize
	}
	meter := otel.Meter(instrumentationName)
	lines, _ := meter.Int64Counter(
		"commission_lines_emitted",
		metric.WithDescription("Commission lines produced by member aggregations"),
		metric.WithUnit("{line}"),
	)
	runs, _ := meter.Int64Counter(
		"commission_aggregations",
		metric.WithDescription("Commission aggregations by kind and outcome"),
		metric.WithUnit("{run}"),
	)
	return &commissionService{
		db:     db,
		agg:    agg,
		limits: limits,
		tracer: otel.Tracer(instrumentationName),
		lines:  lines,
		runs:   runs,
	}
}

// span starts a span for one aggregation; the returned func ends it and
// records the outcome.
func (s *commissionService) span(ctx context.Context, kind string, attrs ...attribute.KeyValue) (context.Context, func(error)) {
	ctx, sp := s.tracer.Start(ctx, "commission."+kind, trace.WithAttributes(attrs...))
	return ctx, func(err error) {
		outcome := "ok"
		if err != nil {
			outcome = "error"
			sp.RecordError(err)
			sp.SetStatus(codes.Error, err.Error())
		}
		s.runs.Add(ctx, 1, metric.WithAttributes(
			attribute.String("kind", kind),
			attribute.String("outcome", outcome),
		))
		sp.End()
	}
}

func (s *commissionService) member(ctx context.Context, id string) (*schema.TeamMember, error) {
	oid, err := repo.ParseID(id)
	if err != nil {
		return nil, ErrMemberNotFound
	}
	m, err := s.db.Members.Get(ctx, oid)
	if err != nil {
		if repo.IsNotFound(err) {
			return nil, ErrMemberNotFound
		}
		return nil, fmt.Errorf("get member: %w", err)
	}
	return m, nil
}

func (s *commissionService) Member(ctx context.Context, memberID string) (rep *MemberReport, err error) {
	ctx, end := s.span(ctx, "member", attribute.String("member_id", memberID))
	defer func() { end(err) }()

	m, err := s.member(ctx, memberID)
	if err != nil {
		return nil, err
	}
	lines, err := s.agg.MemberCommissions(ctx, memberID)
	if err != nil {
		return nil, err
	}
	if lines == nil {
		lines = []core.Line{}
	}
	s.lines.Add(ctx, int64(len(lines)))
	return &MemberReport{Member: m, Lines: lines, Total: core.Total(lines)}, nil
}

func (s *commissionService) MemberPage(ctx context.Context, memberID, cursor string, limit int) (page *core.Page, err error) {
	ctx, end := s.span(ctx, "member_page", attribute.String("member_id", memberID))
	defer func() { end(err) }()

	if _, err := s.member(ctx, memberID); err != nil {
		return nil, err
	}
	if cursor != "" {
		if _, err := repo.ParseID(cursor); err != nil {
			return nil, ErrInvalidCursor
		}
	}
	switch {
	case limit <= 0:
		limit = s.limits.DefaultPageSize
	case limit > s.limits.MaxPageSize:
		limit = s.limits.MaxPageSize
	}

	p, err := s.agg.MemberCommissionsPage(ctx, memberID, cursor, limit)
	if err != nil {
		return nil, err
	}
	if p.Lines == nil {
		p.Lines = []core.Line{}
	}
	s.lines.Add(ctx, int64(len(p.Lines)))
	return &p, nil
}

func (s *commissionService) Assignments(ctx context.Context, memberID string) (out []core.Assignment, err error) {
	ctx, end := s.span(ctx, "assignments", attribute.String("member_id", memberID))
	defer func() { end(err) }()

	if _, err := s.member(ctx, memberID); err != nil {
		return nil, err
	}
	out, err = s.agg.MemberAssignments(ctx, memberID)
	if err != nil {
		return nil, err
	}
	if out == nil {
		out = []core.Assignment{}
	}
	return out, nil
}

func (s *commissionService) Summary(ctx context.Context) (rows []SummaryRow, err error) {
	ctx, end := s.span(ctx, "summary")
	defer func() { end(err) }()

	members, err := s.db.Members.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list members: %w", err)
	}
	ids := make([]string, len(members))
	for i, m := range members {
		ids[i] = m.ID.Hex()
	}
	totals, err := s.agg.SummarizeMembers(ctx, ids)
	if err != nil {
		return nil, err
	}

	rows = make([]SummaryRow, len(members))
	for i, m := range members {
		rows[i] = SummaryRow{
			MemberID:   totals[i].MemberID,
			FullName:   m.FullName,
			Position:   m.Position,
			Commission: totals[i].Commission,
			Lines:      totals[i].Lines,
		}
	}
	return rows, nil
}

func (s *commissionService) Project(ctx context.Context, projectID string) (b *core.ProjectBreakdown, err error) {
	ctx, end := s.span(ctx, "project", attribute.String("project_id", projectID))
	defer func() { end(err) }()

	oid, err := repo.ParseID(projectID)
	if err != nil {
		return nil, ErrProjectNotFound
	}
	if _, err := s.db.Projects.Get(ctx, oid); err != nil {
		if repo.IsNotFound(err) {
			return nil, ErrProjectNotFound
		}
		return nil, fmt.Errorf("get project: %w", err)
	}
	out, err := s.agg.ProjectBreakdown(ctx, projectID)
	if err != nil {
		return nil, err
	}
	return &out, nil
}

func (s *commissionService) MemberXLSX(ctx context.Context, memberID string) ([]byte, error) {
	rep, err := s.Member(ctx, memberID)
	if err != nil {
		return nil, err
	}
	return report.MemberLinesXLSX(rep.Member.FullName, rep.Lines)
}

func (s *commissionService) ProjectXLSX(ctx context.Context, projectID string) ([]byte, error) {
	b, err := s.Project(ctx, projectID)
	if err != nil {
		return nil, err
	}
	members, err := s.db.Members.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list members: %w", err)
	}
	names := make(map[string]string, len(members))
	for _, m := range members {
		names[m.ID.Hex()] = m.FullName
	}
	return report.ProjectBreakdownXLSX(*b, names)
}
