package salary

import (
	"context"
	"fmt"
	"math"
	"strings"

	"github.com/Alijeyrad/taadol_backend/internal/commission"
	"github.com/Alijeyrad/taadol_backend/internal/report"
	"github.com/Alijeyrad/taadol_backend/internal/repo"
	"github.com/Alijeyrad/taadol_backend/internal/schema"
)

// ---------------------------------------------------------------------------
// DTOs
// ---------------------------------------------------------------------------

type UpsertRequest struct {
	EmployeeID string
	Date       string
	BaseSalary float64
	Additions  float64
	Deductions float64
}

// ---------------------------------------------------------------------------
// Interface
// ---------------------------------------------------------------------------

type Service interface {
	List(ctx context.Context, employeeID string) ([]schema.EmployeeSalary, error)
	Upsert(ctx context.Context, req UpsertRequest) (*schema.EmployeeSalary, error)
	Payslip(ctx context.Context, employeeID, date string) (*commission.Payslip, error)
	PayslipPDF(ctx context.Context, employeeID, date string) ([]byte, error)
}

// ---------------------------------------------------------------------------
// Implementation
// ---------------------------------------------------------------------------

type salaryService struct {
	db   *repo.Client
	agg  *commission.Aggregator
	opts report.PDFOptions
}

func New(db *repo.Client, agg *commission.Aggregator, opts report.PDFOptions) Service {
	return &salaryService{db: db, agg: agg, opts: opts}
}

func (s *salaryService) employee(ctx context.Context, id string) (*schema.TeamMember, error) {
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

func (s *salaryService) List(ctx context.Context, employeeID string) ([]schema.EmployeeSalary, error) {
	m, err := s.employee(ctx, employeeID)
	if err != nil {
		return nil, err
	}
	out, err := s.db.Salaries.ListByEmployee(ctx, m.ID)
	if err != nil {
		return nil, fmt.Errorf("list salaries: %w", err)
	}
	return out, nil
}

func validate(req UpsertRequest) error {
	if strings.TrimSpace(req.Date) == "" {
		return ErrDateRequired
	}
	for _, v := range []float64{req.BaseSalary, req.Additions, req.Deductions} {
		if v < 0 || math.IsNaN(v) {
			return ErrNegativeAmount
		}
	}
	return nil
}

func (s *salaryService) Upsert(ctx context.Context, req UpsertRequest) (*schema.EmployeeSalary, error) {
	if err := validate(req); err != nil {
		return nil, err
	}
	m, err := s.employee(ctx, req.EmployeeID)
	if err != nil {
		return nil, err
	}
	out, err := s.db.Salaries.Upsert(ctx, schema.EmployeeSalary{
		EmployeeID: m.ID,
		Date:       strings.TrimSpace(req.Date),
		BaseSalary: req.BaseSalary,
		Additions:  req.Additions,
		Deductions: req.Deductions,
	})
	if err != nil {
		return nil, fmt.Errorf("save salary: %w", err)
	}
	return out, nil
}

// Payslip combines the salary record for date with the member's current
// commission lines.
func (s *salaryService) Payslip(ctx context.Context, employeeID, date string) (*commission.Payslip, error) {
	m, err := s.employee(ctx, employeeID)
	if err != nil {
		return nil, err
	}
	sal, err := s.db.Salaries.Get(ctx, m.ID, strings.TrimSpace(date))
	if err != nil {
		if repo.IsNotFound(err) {
			return nil, ErrSalaryNotFound
		}
		return nil, fmt.Errorf("get salary: %w", err)
	}
	lines, err := s.agg.MemberCommissions(ctx, m.ID.Hex())
	if err != nil {
		return nil, err
	}
	p := commission.AssemblePayslip(payslipOf(*m, *sal, lines))
	return &p, nil
}

func payslipOf(m schema.TeamMember, sal schema.EmployeeSalary, lines []commission.Line) commission.Payslip {
	return commission.Payslip{
		MemberID:   m.ID.Hex(),
		MemberName: m.FullName,
		Position:   m.Position,
		Date:       sal.Date,
		BaseSalary: sal.BaseSalary,
		Additions:  sal.Additions,
		Deductions: sal.Deductions,
		Lines:      lines,
	}
}

func (s *salaryService) PayslipPDF(ctx context.Context, employeeID, date string) ([]byte, error) {
	p, err := s.Payslip(ctx, employeeID, date)
	if err != nil {
		return nil, err
	}
	return report.PayslipPDF(*p, s.opts)
}
