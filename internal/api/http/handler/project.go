package handler

import (
	"errors"

	"github.com/gofiber/fiber/v3"

	"github.com/Alijeyrad/taadol_backend/internal/service/project"
)

type ProjectHandler struct {
	svc project.Service
}

func NewProjectHandler(svc project.Service) *ProjectHandler {
	return &ProjectHandler{svc: svc}
}

func mapProjectError(c fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, project.ErrNotFound):
		return notFound(c, err.Error())
	case errors.Is(err, project.ErrNameRequired),
		errors.Is(err, project.ErrUnknownSection):
		return badRequest(c, err.Error())
	default:
		return internalError(c, err)
	}
}

type createProjectRequest struct {
	Name     string   `json:"name" validate:"required,max=200"`
	Sections []string `json:"sections" validate:"omitempty,dive,required"`
}

type renameProjectRequest struct {
	Name string `json:"name" validate:"required,max=200"`
}

// GET /projects
func (h *ProjectHandler) List(c fiber.Ctx) error {
	list, err := h.svc.List(c.Context())
	if err != nil {
		return mapProjectError(c, err)
	}
	return ok(c, list)
}

// GET /projects/:id
func (h *ProjectHandler) Get(c fiber.Ctx) error {
	p, err := h.svc.Get(c.Context(), c.Params("id"))
	if err != nil {
		return mapProjectError(c, err)
	}
	return ok(c, p)
}

// POST /projects
func (h *ProjectHandler) Create(c fiber.Ctx) error {
	var body createProjectRequest
	if err := c.Bind().JSON(&body); err != nil {
		return invalidBody(c, err)
	}

	p, err := h.svc.Create(c.Context(), project.CreateRequest{
		Name:     body.Name,
		Sections: body.Sections,
	})
	if err != nil {
		return mapProjectError(c, err)
	}
	return created(c, p)
}

// PUT /projects/:id
func (h *ProjectHandler) Rename(c fiber.Ctx) error {
	var body renameProjectRequest
	if err := c.Bind().JSON(&body); err != nil {
		return invalidBody(c, err)
	}

	p, err := h.svc.Rename(c.Context(), c.Params("id"), body.Name)
	if err != nil {
		return mapProjectError(c, err)
	}
	return ok(c, p)
}

// DELETE /projects/:id
func (h *ProjectHandler) Delete(c fiber.Ctx) error {
	if err := h.svc.Delete(c.Context(), c.Params("id")); err != nil {
		return mapProjectError(c, err)
	}
	return noContent(c)
}
