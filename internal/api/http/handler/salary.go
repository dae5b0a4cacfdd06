package handler

import (
	"errors"

	"github.com/gofiber/fiber/v3"

	"github.com/Alijeyrad/taadol_backend/internal/report"
	"github.com/Alijeyrad/taadol_backend/internal/service/salary"
)

type SalaryHandler struct {
	svc salary.Service
}

func NewSalaryHandler(svc salary.Service) *SalaryHandler {
	return &SalaryHandler{svc: svc}
}

func mapSalaryError(c fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, salary.ErrMemberNotFound),
		errors.Is(err, salary.ErrSalaryNotFound):
		return notFound(c, err.Error())
	case errors.Is(err, salary.ErrDateRequired),
		errors.Is(err, salary.ErrNegativeAmount):
		return badRequest(c, err.Error())
	default:
		return internalError(c, err)
	}
}

type upsertSalaryRequest struct {
	EmployeeID string  `json:"employee_id" validate:"required,mongodb"`
	Date       string  `json:"date" validate:"required"`
	BaseSalary float64 `json:"base_salary" validate:"gte=0"`
	Additions  float64 `json:"additions" validate:"gte=0"`
	Deductions float64 `json:"deductions" validate:"gte=0"`
}

// GET /salaries?employee_id=
func (h *SalaryHandler) List(c fiber.Ctx) error {
	var q struct {
		EmployeeID string `query:"employee_id" validate:"required"`
	}
	if err := c.Bind().Query(&q); err != nil {
		return badRequest(c, "employee_id is required")
	}

	list, err := h.svc.List(c.Context(), q.EmployeeID)
	if err != nil {
		return mapSalaryError(c, err)
	}
	return ok(c, list)
}

// PUT /salaries
func (h *SalaryHandler) Upsert(c fiber.Ctx) error {
	var body upsertSalaryRequest
	if err := c.Bind().JSON(&body); err != nil {
		return invalidBody(c, err)
	}

	s, err := h.svc.Upsert(c.Context(), salary.UpsertRequest{
		EmployeeID: body.EmployeeID,
		Date:       body.Date,
		BaseSalary: body.BaseSalary,
		Additions:  body.Additions,
		Deductions: body.Deductions,
	})
	if err != nil {
		return mapSalaryError(c, err)
	}
	return ok(c, s)
}

// GET /salaries/:employee_id/:date/payslip
func (h *SalaryHandler) Payslip(c fiber.Ctx) error {
	p, err := h.svc.Payslip(c.Context(), c.Params("employee_id"), c.Params("date"))
	if err != nil {
		return mapSalaryError(c, err)
	}
	return ok(c, p)
}

// GET /salaries/:employee_id/:date/payslip.pdf
func (h *SalaryHandler) PayslipPDF(c fiber.Ctx) error {
	id, date := c.Params("employee_id"), c.Params("date")
	body, err := h.svc.PayslipPDF(c.Context(), id, date)
	if err != nil {
		return mapSalaryError(c, err)
	}
	return attachment(c, "payslip-"+id+"-"+date+".pdf", report.PDFContentType, body)
}
