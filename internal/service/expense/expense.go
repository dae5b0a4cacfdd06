package expense

import (
	"context"
	"fmt"
	"time"

	"github.com/Alijeyrad/taadol_backend/internal/repo"
	"github.com/Alijeyrad/taadol_backend/internal/schema"
)

// DateLayout is the calendar day under which expenses are grouped.
const DateLayout = "2006-01-02"

// ---------------------------------------------------------------------------
// DTOs
// ---------------------------------------------------------------------------

type SaveRequest struct {
	StaffSalary        float64
	OfficeCosts        float64
	MaintenanceCosts   float64
	WorkspaceUpgrade   float64
	ToolsUpgrade       float64
	AdvertisingCosts   float64
	DigitalDevelopment float64
	PaperworkCosts     float64
	EventCosts         float64
}

type Summary struct {
	schema.SystemExpenses
	Total float64 `json:"total"`
}

// ---------------------------------------------------------------------------
// Interface
// ---------------------------------------------------------------------------

type Service interface {
	// Latest returns the most recent day, or an empty record.
	Latest(ctx context.Context) (*Summary, error)
	History(ctx context.Context, limit int) ([]Summary, error)
	// SaveToday creates or replaces today's record.
	SaveToday(ctx context.Context, req SaveRequest) (*Summary, error)
}

// ---------------------------------------------------------------------------
// Implementation
// ---------------------------------------------------------------------------

type expenseService struct {
	db  *repo.Client
	now func() time.Time
}

func New(db *repo.Client) Service {
	return &expenseService{db: db, now: time.Now}
}

func summarize(e schema.SystemExpenses) Summary {
	return Summary{SystemExpenses: e, Total: e.Total()}
}

func (s *expenseService) Latest(ctx context.Context) (*Summary, error) {
	e, err := s.db.Expenses.Latest(ctx)
	if err != nil {
		if repo.IsNotFound(err) {
			out := summarize(schema.SystemExpenses{})
			return &out, nil
		}
		return nil, fmt.Errorf("get expenses: %w", err)
	}
	out := summarize(*e)
	return &out, nil
}

func (s *expenseService) History(ctx context.Context, limit int) ([]Summary, error) {
	es, err := s.db.Expenses.List(ctx, limit)
	if err != nil {
		return nil, fmt.Errorf("list expenses: %w", err)
	}
	out := make([]Summary, len(es))
	for i, e := range es {
		out[i] = summarize(e)
	}
	return out, nil
}

func (s *expenseService) SaveToday(ctx context.Context, req SaveRequest) (*Summary, error) {
	e := recordFor(s.now(), req)
	if e.StaffSalary < 0 || e.OfficeCosts < 0 || e.MaintenanceCosts < 0 ||
		e.WorkspaceUpgrade < 0 || e.ToolsUpgrade < 0 || e.AdvertisingCosts < 0 ||
		e.DigitalDevelopment < 0 || e.PaperworkCosts < 0 || e.EventCosts < 0 {
		return nil, ErrNegativeAmount
	}
	saved, err := s.db.Expenses.UpsertByDate(ctx, e)
	if err != nil {
		return nil, fmt.Errorf("save expenses: %w", err)
	}
	out := summarize(*saved)
	return &out, nil
}

func recordFor(now time.Time, req SaveRequest) schema.SystemExpenses {
	return schema.SystemExpenses{
		Date:               now.UTC().Format(DateLayout),
		StaffSalary:        req.StaffSalary,
		OfficeCosts:        req.OfficeCosts,
		MaintenanceCosts:   req.MaintenanceCosts,
		WorkspaceUpgrade:   req.WorkspaceUpgrade,
		ToolsUpgrade:       req.ToolsUpgrade,
		AdvertisingCosts:   req.AdvertisingCosts,
		DigitalDevelopment: req.DigitalDevelopment,
		PaperworkCosts:     req.PaperworkCosts,
		EventCosts:         req.EventCosts,
	}
}
