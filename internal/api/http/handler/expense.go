package handler

import (
	"errors"

	"github.com/gofiber/fiber/v3"

	"github.com/Alijeyrad/taadol_backend/internal/service/expense"
)

type ExpenseHandler struct {
	svc expense.Service
}

func NewExpenseHandler(svc expense.Service) *ExpenseHandler {
	return &ExpenseHandler{svc: svc}
}

func mapExpenseError(c fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, expense.ErrNegativeAmount):
		return badRequest(c, err.Error())
	default:
		return internalError(c, err)
	}
}

type saveExpensesRequest struct {
	StaffSalary        float64 `json:"staff_salary" validate:"gte=0"`
	OfficeCosts        float64 `json:"office_costs" validate:"gte=0"`
	MaintenanceCosts   float64 `json:"maintenance_costs" validate:"gte=0"`
	WorkspaceUpgrade   float64 `json:"workspace_upgrade" validate:"gte=0"`
	ToolsUpgrade       float64 `json:"tools_upgrade" validate:"gte=0"`
	AdvertisingCosts   float64 `json:"advertising_costs" validate:"gte=0"`
	DigitalDevelopment float64 `json:"digital_development" validate:"gte=0"`
	PaperworkCosts     float64 `json:"paperwork_costs" validate:"gte=0"`
	EventCosts         float64 `json:"event_costs" validate:"gte=0"`
}

// GET /expenses
//
// Returns the latest day; ?history=N lists the last N days instead.
func (h *ExpenseHandler) Get(c fiber.Ctx) error {
	var q struct {
		History int `query:"history" validate:"gte=0,lte=366"`
	}
	if err := c.Bind().Query(&q); err != nil {
		return badRequest(c, "invalid query: "+err.Error())
	}

	if q.History > 0 {
		list, err := h.svc.History(c.Context(), q.History)
		if err != nil {
			return mapExpenseError(c, err)
		}
		return ok(c, list)
	}

	s, err := h.svc.Latest(c.Context())
	if err != nil {
		return mapExpenseError(c, err)
	}
	return ok(c, s)
}

// PUT /expenses
func (h *ExpenseHandler) Save(c fiber.Ctx) error {
	var body saveExpensesRequest
	if err := c.Bind().JSON(&body); err != nil {
		return invalidBody(c, err)
	}

	s, err := h.svc.SaveToday(c.Context(), expense.SaveRequest(body))
	if err != nil {
		return mapExpenseError(c, err)
	}
	return ok(c, s)
}
