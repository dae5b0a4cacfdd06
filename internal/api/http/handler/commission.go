package handler

import (
	"errors"

	"github.com/gofiber/fiber/v3"

	"github.com/Alijeyrad/taadol_backend/internal/report"
	"github.com/Alijeyrad/taadol_backend/internal/service/commission"
)

type CommissionHandler struct {
	svc commission.Service
}

func NewCommissionHandler(svc commission.Service) *CommissionHandler {
	return &CommissionHandler{svc: svc}
}

func mapCommissionError(c fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, commission.ErrMemberNotFound),
		errors.Is(err, commission.ErrProjectNotFound):
		return notFound(c, err.Error())
	case errors.Is(err, commission.ErrInvalidCursor):
		return badRequest(c, err.Error())
	default:
		return internalError(c, err)
	}
}

// GET /members/:id/commissions
//
// Without cursor or limit the whole report with its total is returned;
// otherwise one page ordered by project.
func (h *CommissionHandler) Member(c fiber.Ctx) error {
	var q struct {
		Cursor string `query:"cursor"`
		Limit  int    `query:"limit" validate:"gte=0"`
	}
	if err := c.Bind().Query(&q); err != nil {
		return badRequest(c, "invalid query: "+err.Error())
	}

	if q.Cursor == "" && q.Limit == 0 {
		r, err := h.svc.Member(c.Context(), c.Params("id"))
		if err != nil {
			return mapCommissionError(c, err)
		}
		return ok(c, r)
	}

	page, err := h.svc.MemberPage(c.Context(), c.Params("id"), q.Cursor, q.Limit)
	if err != nil {
		return mapCommissionError(c, err)
	}
	return ok(c, page)
}

// GET /members/:id/commissions.xlsx
func (h *CommissionHandler) MemberXLSX(c fiber.Ctx) error {
	id := c.Params("id")
	body, err := h.svc.MemberXLSX(c.Context(), id)
	if err != nil {
		return mapCommissionError(c, err)
	}
	return attachment(c, "commissions-"+id+".xlsx", report.XLSXContentType, body)
}

// GET /members/:id/assignments
func (h *CommissionHandler) Assignments(c fiber.Ctx) error {
	list, err := h.svc.Assignments(c.Context(), c.Params("id"))
	if err != nil {
		return mapCommissionError(c, err)
	}
	return ok(c, list)
}

// GET /commissions/summary
func (h *CommissionHandler) Summary(c fiber.Ctx) error {
	rows, err := h.svc.Summary(c.Context())
	if err != nil {
		return mapCommissionError(c, err)
	}
	return ok(c, rows)
}

// GET /projects/:id/commissions
func (h *CommissionHandler) Project(c fiber.Ctx) error {
	b, err := h.svc.Project(c.Context(), c.Params("id"))
	if err != nil {
		return mapCommissionError(c, err)
	}
	return ok(c, b)
}

// GET /projects/:id/commissions.xlsx
func (h *CommissionHandler) ProjectXLSX(c fiber.Ctx) error {
	id := c.Params("id")
	body, err := h.svc.ProjectXLSX(c.Context(), id)
	if err != nil {
		return mapCommissionError(c, err)
	}
	return attachment(c, "project-"+id+".xlsx", report.XLSXContentType, body)
}
