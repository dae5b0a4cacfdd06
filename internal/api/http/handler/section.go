package handler

import (
	"errors"

	"github.com/gofiber/fiber/v3"

	"github.com/Alijeyrad/taadol_backend/internal/service/section"
)

type SectionHandler struct {
	svc section.Service
}

func NewSectionHandler(svc section.Service) *SectionHandler {
	return &SectionHandler{svc: svc}
}

func mapSectionError(c fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, section.ErrNotFound),
		errors.Is(err, section.ErrProjectNotFound),
		errors.Is(err, section.ErrItemNotFound),
		errors.Is(err, section.ErrMemberNotFound):
		return notFound(c, err.Error())
	case errors.Is(err, section.ErrAlreadyExists):
		return conflict(c, err.Error())
	case errors.Is(err, section.ErrUnknownSection),
		errors.Is(err, section.ErrUnknownField),
		errors.Is(err, section.ErrNotItemSection),
		errors.Is(err, section.ErrNotFlatSection),
		errors.Is(err, section.ErrItemNameMissing),
		errors.Is(err, section.ErrNothingToUpdate):
		return badRequest(c, err.Error())
	default:
		return internalError(c, err)
	}
}

// ----------------------------------------------------------------------------
// Request bodies
// ----------------------------------------------------------------------------

type addSectionRequest struct {
	Name string `json:"name" validate:"required"`
}

type setActiveRequest struct {
	IsActive *bool `json:"is_active" validate:"required"`
}

type fieldInputRequest struct {
	Field            string `json:"field" validate:"required"`
	Value            any    `json:"value"`
	IsActive         bool   `json:"is_active"`
	AssignedMemberID string `json:"assigned_member_id" validate:"omitempty,mongodb"`
}

type itemRequest struct {
	Name   string              `json:"name" validate:"required"`
	Fields []fieldInputRequest `json:"fields" validate:"dive"`
}

type detailsRequest struct {
	Fields []fieldInputRequest `json:"fields" validate:"dive"`
}

// fieldUpdateRequest toggles a field or (re)assigns it. An empty
// assigned_member_id clears the assignment.
type fieldUpdateRequest struct {
	Field            string  `json:"field" validate:"required"`
	IsActive         *bool   `json:"is_active"`
	AssignedMemberID *string `json:"assigned_member_id"`
}

func (r fieldUpdateRequest) update() section.FieldUpdate {
	return section.FieldUpdate{
		Field:            r.Field,
		IsActive:         r.IsActive,
		AssignedMemberID: r.AssignedMemberID,
	}
}

func fieldInputs(in []fieldInputRequest) []section.FieldInput {
	out := make([]section.FieldInput, 0, len(in))
	for _, f := range in {
		out = append(out, section.FieldInput{
			Field:            f.Field,
			Value:            f.Value,
			IsActive:         f.IsActive,
			AssignedMemberID: f.AssignedMemberID,
		})
	}
	return out
}

// ----------------------------------------------------------------------------
// Sections
// ----------------------------------------------------------------------------

// GET /projects/:id/sections
func (h *SectionHandler) ListByProject(c fiber.Ctx) error {
	list, err := h.svc.ListByProject(c.Context(), c.Params("id"))
	if err != nil {
		return mapSectionError(c, err)
	}
	return ok(c, list)
}

// POST /projects/:id/sections
func (h *SectionHandler) Add(c fiber.Ctx) error {
	var body addSectionRequest
	if err := c.Bind().JSON(&body); err != nil {
		return invalidBody(c, err)
	}

	s, err := h.svc.Add(c.Context(), c.Params("id"), body.Name)
	if err != nil {
		return mapSectionError(c, err)
	}
	return created(c, s)
}

// PATCH /sections/:id
func (h *SectionHandler) SetActive(c fiber.Ctx) error {
	var body setActiveRequest
	if err := c.Bind().JSON(&body); err != nil {
		return invalidBody(c, err)
	}

	s, err := h.svc.SetActive(c.Context(), c.Params("id"), *body.IsActive)
	if err != nil {
		return mapSectionError(c, err)
	}
	return ok(c, s)
}

// DELETE /sections/:id
func (h *SectionHandler) Delete(c fiber.Ctx) error {
	if err := h.svc.Delete(c.Context(), c.Params("id")); err != nil {
		return mapSectionError(c, err)
	}
	return noContent(c)
}

// ----------------------------------------------------------------------------
// Items
// ----------------------------------------------------------------------------

// GET /sections/:id/items
func (h *SectionHandler) ListItems(c fiber.Ctx) error {
	list, err := h.svc.ListItems(c.Context(), c.Params("id"))
	if err != nil {
		return mapSectionError(c, err)
	}
	return ok(c, list)
}

// GET /sections/:id/items/:itemId
func (h *SectionHandler) GetItem(c fiber.Ctx) error {
	it, err := h.svc.GetItem(c.Context(), c.Params("id"), c.Params("itemId"))
	if err != nil {
		return mapSectionError(c, err)
	}
	return ok(c, it)
}

// POST /sections/:id/items
func (h *SectionHandler) CreateItem(c fiber.Ctx) error {
	var body itemRequest
	if err := c.Bind().JSON(&body); err != nil {
		return invalidBody(c, err)
	}

	it, err := h.svc.CreateItem(c.Context(), c.Params("id"), section.ItemRequest{
		Name:   body.Name,
		Fields: fieldInputs(body.Fields),
	})
	if err != nil {
		return mapSectionError(c, err)
	}
	return created(c, it)
}

// PUT /sections/:id/items/:itemId
func (h *SectionHandler) UpdateItem(c fiber.Ctx) error {
	var body itemRequest
	if err := c.Bind().JSON(&body); err != nil {
		return invalidBody(c, err)
	}

	it, err := h.svc.UpdateItem(c.Context(), c.Params("id"), c.Params("itemId"), section.ItemRequest{
		Name:   body.Name,
		Fields: fieldInputs(body.Fields),
	})
	if err != nil {
		return mapSectionError(c, err)
	}
	return ok(c, it)
}

// DELETE /sections/:id/items/:itemId
func (h *SectionHandler) DeleteItem(c fiber.Ctx) error {
	if err := h.svc.DeleteItem(c.Context(), c.Params("id"), c.Params("itemId")); err != nil {
		return mapSectionError(c, err)
	}
	return noContent(c)
}

// PATCH /sections/:id/items/:itemId/fields
func (h *SectionHandler) UpdateItemField(c fiber.Ctx) error {
	var body fieldUpdateRequest
	if err := c.Bind().JSON(&body); err != nil {
		return invalidBody(c, err)
	}

	it, err := h.svc.UpdateItemField(c.Context(), c.Params("id"), c.Params("itemId"), body.update())
	if err != nil {
		return mapSectionError(c, err)
	}
	return ok(c, it)
}

// ----------------------------------------------------------------------------
// Flat details
// ----------------------------------------------------------------------------

// GET /sections/:id/details
func (h *SectionHandler) GetDetails(c fiber.Ctx) error {
	d, err := h.svc.GetDetails(c.Context(), c.Params("id"))
	if err != nil {
		return mapSectionError(c, err)
	}
	return ok(c, d)
}

// PUT /sections/:id/details
func (h *SectionHandler) SaveDetails(c fiber.Ctx) error {
	var body detailsRequest
	if err := c.Bind().JSON(&body); err != nil {
		return invalidBody(c, err)
	}

	d, err := h.svc.SaveDetails(c.Context(), c.Params("id"), fieldInputs(body.Fields))
	if err != nil {
		return mapSectionError(c, err)
	}
	return ok(c, d)
}

// PATCH /sections/:id/fields
func (h *SectionHandler) UpdateDetailsField(c fiber.Ctx) error {
	var body fieldUpdateRequest
	if err := c.Bind().JSON(&body); err != nil {
		return invalidBody(c, err)
	}

	d, err := h.svc.UpdateDetailsField(c.Context(), c.Params("id"), body.update())
	if err != nil {
		return mapSectionError(c, err)
	}
	return ok(c, d)
}
