package handler

import (
	"errors"

	"github.com/gofiber/fiber/v3"

	core "github.com/Alijeyrad/taadol_backend/internal/commission"
	"github.com/Alijeyrad/taadol_backend/internal/service/balancing"
)

type BalancingHandler struct {
	svc balancing.Service
}

func NewBalancingHandler(svc balancing.Service) *BalancingHandler {
	return &BalancingHandler{svc: svc}
}

func mapBalancingError(c fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, balancing.ErrUnknownSection),
		errors.Is(err, balancing.ErrUnknownField),
		errors.Is(err, balancing.ErrDuplicateField),
		errors.Is(err, balancing.ErrWeightRange),
		errors.Is(err, balancing.ErrWeightSum),
		errors.Is(err, balancing.ErrPercentageRange),
		errors.Is(err, core.ErrUnknownSection):
		return badRequest(c, err.Error())
	default:
		return internalError(c, err)
	}
}

type fieldWeightRequest struct {
	FieldName string  `json:"field_name" validate:"required"`
	Weight    float64 `json:"weight" validate:"gte=0,lte=100"`
}

type weightsRequest struct {
	SectionName string               `json:"section_name" validate:"required"`
	Weights     []fieldWeightRequest `json:"weights" validate:"dive"`
}

type setWeightRequest struct {
	SectionName string  `json:"section_name" validate:"required"`
	FieldName   string  `json:"field_name" validate:"required"`
	Weight      float64 `json:"weight" validate:"gte=0,lte=100"`
}

type percentagesRequest struct {
	Percentages map[string]float64 `json:"percentages" validate:"required,dive,gte=0,lte=100"`
}

type previewRequest struct {
	SectionName   string              `json:"section_name" validate:"required"`
	Fields        []core.PreviewField `json:"fields" validate:"required,min=1"`
	SystemPercent *float64            `json:"system_percent" validate:"omitnil,gte=0,lte=100"`
}

// GET /balancing/weights
func (h *BalancingHandler) Weights(c fiber.Ctx) error {
	ws, err := h.svc.Weights(c.Context())
	if err != nil {
		return mapBalancingError(c, err)
	}
	return ok(c, ws)
}

// PUT /balancing/weights
//
// Replaces every weight of one section.
func (h *BalancingHandler) ReplaceWeights(c fiber.Ctx) error {
	var body weightsRequest
	if err := c.Bind().JSON(&body); err != nil {
		return invalidBody(c, err)
	}

	ws := make([]balancing.FieldWeight, 0, len(body.Weights))
	for _, w := range body.Weights {
		ws = append(ws, balancing.FieldWeight{FieldName: w.FieldName, Weight: w.Weight})
	}

	out, err := h.svc.ReplaceWeights(c.Context(), body.SectionName, ws)
	if err != nil {
		return mapBalancingError(c, err)
	}
	return ok(c, out)
}

// PATCH /balancing/weights
//
// Sets the weight of a single field.
func (h *BalancingHandler) SetWeight(c fiber.Ctx) error {
	var body setWeightRequest
	if err := c.Bind().JSON(&body); err != nil {
		return invalidBody(c, err)
	}

	out, err := h.svc.SetWeight(c.Context(), body.SectionName, balancing.FieldWeight{
		FieldName: body.FieldName,
		Weight:    body.Weight,
	})
	if err != nil {
		return mapBalancingError(c, err)
	}
	return ok(c, out)
}

// GET /balancing/percentages
func (h *BalancingHandler) Percentages(c fiber.Ctx) error {
	p, err := h.svc.Percentages(c.Context())
	if err != nil {
		return mapBalancingError(c, err)
	}
	return ok(c, p)
}

// PUT /balancing/percentages
func (h *BalancingHandler) ReplacePercentages(c fiber.Ctx) error {
	var body percentagesRequest
	if err := c.Bind().JSON(&body); err != nil {
		return invalidBody(c, err)
	}

	p, err := h.svc.ReplacePercentages(c.Context(), body.Percentages)
	if err != nil {
		return mapBalancingError(c, err)
	}
	return ok(c, p)
}

// POST /balancing/preview
func (h *BalancingHandler) Preview(c fiber.Ctx) error {
	var body previewRequest
	if err := c.Bind().JSON(&body); err != nil {
		return invalidBody(c, err)
	}

	u, err := h.svc.Preview(c.Context(), balancing.PreviewRequest{
		SectionName:   body.SectionName,
		Fields:        body.Fields,
		SystemPercent: body.SystemPercent,
	})
	if err != nil {
		return mapBalancingError(c, err)
	}
	return ok(c, u)
}
