package handler

import (
	"errors"

	"github.com/gofiber/fiber/v3"

	"github.com/Alijeyrad/taadol_backend/internal/service/income"
)

type IncomeHandler struct {
	svc income.Service
}

func NewIncomeHandler(svc income.Service) *IncomeHandler {
	return &IncomeHandler{svc: svc}
}

func mapIncomeError(c fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, income.ErrProjectNotFound),
		errors.Is(err, income.ErrTaxNotFound):
		return notFound(c, err.Error())
	case errors.Is(err, income.ErrUnknownKey),
		errors.Is(err, income.ErrNegativeValue),
		errors.Is(err, income.ErrPercentageRange):
		return badRequest(c, err.Error())
	default:
		return internalError(c, err)
	}
}

type incomeEntryRequest struct {
	Value    float64 `json:"value" validate:"gte=0"`
	IsActive bool    `json:"is_active"`
}

// saveIncomeRequest is keyed by income key (section, optional item, field).
type saveIncomeRequest struct {
	Entries map[string]incomeEntryRequest `json:"entries" validate:"required,dive"`
	Replace bool                          `json:"replace"`
}

type taxPercentageRequest struct {
	TaxPercentage float64 `json:"tax_percentage" validate:"gte=0,lte=100"`
}

// GET /projects/:id/income
func (h *IncomeHandler) Get(c fiber.Ctx) error {
	in, err := h.svc.Get(c.Context(), c.Params("id"))
	if err != nil {
		return mapIncomeError(c, err)
	}
	return ok(c, in)
}

// PUT /projects/:id/income
func (h *IncomeHandler) Save(c fiber.Ctx) error {
	var body saveIncomeRequest
	if err := c.Bind().JSON(&body); err != nil {
		return invalidBody(c, err)
	}

	entries := make(map[string]income.Entry, len(body.Entries))
	for key, e := range body.Entries {
		entries[key] = income.Entry{Value: e.Value, IsActive: e.IsActive}
	}

	in, err := h.svc.Save(c.Context(), c.Params("id"), income.SaveRequest{
		Entries: entries,
		Replace: body.Replace,
	})
	if err != nil {
		return mapIncomeError(c, err)
	}
	return ok(c, in)
}

// GET /taxes
func (h *IncomeHandler) Taxes(c fiber.Ctx) error {
	list, err := h.svc.Taxes(c.Context())
	if err != nil {
		return mapIncomeError(c, err)
	}
	return ok(c, list)
}

// PUT /taxes/:id
func (h *IncomeHandler) SetTaxPercentage(c fiber.Ctx) error {
	var body taxPercentageRequest
	if err := c.Bind().JSON(&body); err != nil {
		return invalidBody(c, err)
	}

	t, err := h.svc.SetTaxPercentage(c.Context(), c.Params("id"), body.TaxPercentage)
	if err != nil {
		return mapIncomeError(c, err)
	}
	return ok(c, t)
}
