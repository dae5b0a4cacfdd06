package handler

import (
	"errors"

	"github.com/gofiber/fiber/v3"

	"github.com/Alijeyrad/taadol_backend/internal/service/member"
)

type MemberHandler struct {
	svc member.Service
}

func NewMemberHandler(svc member.Service) *MemberHandler {
	return &MemberHandler{svc: svc}
}

func mapMemberError(c fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, member.ErrNotFound):
		return notFound(c, err.Error())
	case errors.Is(err, member.ErrDuplicateNationalID):
		return conflict(c, err.Error())
	case errors.Is(err, member.ErrInvalidPhone),
		errors.Is(err, member.ErrInvalidNationalCode),
		errors.Is(err, member.ErrInvalidEmail),
		errors.Is(err, member.ErrFullNameRequired):
		return badRequest(c, err.Error())
	default:
		return internalError(c, err)
	}
}

// memberRequest mirrors member.Request; format checks on national code,
// phone and email happen in the service.
type memberRequest struct {
	FullName     string `json:"full_name" validate:"required,max=200"`
	Position     string `json:"position" validate:"max=100"`
	FatherName   string `json:"father_name" validate:"max=200"`
	NationalCode string `json:"national_code"`
	PhoneNumber  string `json:"phone_number"`
	Email        string `json:"email"`
	Education    string `json:"education" validate:"max=200"`
	Address      string `json:"address" validate:"max=500"`
}

func (r memberRequest) toService() member.Request {
	return member.Request{
		FullName:     r.FullName,
		Position:     r.Position,
		FatherName:   r.FatherName,
		NationalCode: r.NationalCode,
		PhoneNumber:  r.PhoneNumber,
		Email:        r.Email,
		Education:    r.Education,
		Address:      r.Address,
	}
}

// GET /members
func (h *MemberHandler) List(c fiber.Ctx) error {
	list, err := h.svc.List(c.Context())
	if err != nil {
		return mapMemberError(c, err)
	}
	return ok(c, list)
}

// GET /members/:id
func (h *MemberHandler) Get(c fiber.Ctx) error {
	m, err := h.svc.Get(c.Context(), c.Params("id"))
	if err != nil {
		return mapMemberError(c, err)
	}
	return ok(c, m)
}

// POST /members
func (h *MemberHandler) Create(c fiber.Ctx) error {
	var body memberRequest
	if err := c.Bind().JSON(&body); err != nil {
		return invalidBody(c, err)
	}

	m, err := h.svc.Create(c.Context(), body.toService())
	if err != nil {
		return mapMemberError(c, err)
	}
	return created(c, m)
}

// PUT /members/:id
func (h *MemberHandler) Update(c fiber.Ctx) error {
	var body memberRequest
	if err := c.Bind().JSON(&body); err != nil {
		return invalidBody(c, err)
	}

	m, err := h.svc.Update(c.Context(), c.Params("id"), body.toService())
	if err != nil {
		return mapMemberError(c, err)
	}
	return ok(c, m)
}

// DELETE /members/:id
func (h *MemberHandler) Delete(c fiber.Ctx) error {
	if err := h.svc.Delete(c.Context(), c.Params("id")); err != nil {
		return mapMemberError(c, err)
	}
	return noContent(c)
}
