package handler

import (
	"errors"

	"github.com/gofiber/fiber/v3"

	"github.com/Alijeyrad/taadol_backend/internal/service/referral"
)

type ReferralHandler struct {
	svc referral.Service
}

func NewReferralHandler(svc referral.Service) *ReferralHandler {
	return &ReferralHandler{svc: svc}
}

func mapReferralError(c fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, referral.ErrNotFound):
		return notFound(c, err.Error())
	case errors.Is(err, referral.ErrFullNameRequired),
		errors.Is(err, referral.ErrNegativeFee):
		return badRequest(c, err.Error())
	default:
		return internalError(c, err)
	}
}

type referralRequest struct {
	FullName    string  `json:"full_name" validate:"required,max=200"`
	ReferralFee float64 `json:"referral_fee" validate:"gte=0"`
	Description string  `json:"description" validate:"max=1000"`
	DateAdded   string  `json:"date_added" validate:"omitempty,datetime=2006-01-02"`
}

func (r referralRequest) toService() referral.Request {
	return referral.Request{
		FullName:    r.FullName,
		ReferralFee: r.ReferralFee,
		Description: r.Description,
		DateAdded:   r.DateAdded,
	}
}

// GET /referrals
func (h *ReferralHandler) List(c fiber.Ctx) error {
	list, err := h.svc.List(c.Context())
	if err != nil {
		return mapReferralError(c, err)
	}
	return ok(c, list)
}

// POST /referrals
func (h *ReferralHandler) Create(c fiber.Ctx) error {
	var body referralRequest
	if err := c.Bind().JSON(&body); err != nil {
		return invalidBody(c, err)
	}

	r, err := h.svc.Create(c.Context(), body.toService())
	if err != nil {
		return mapReferralError(c, err)
	}
	return created(c, r)
}

// PUT /referrals/:id
func (h *ReferralHandler) Update(c fiber.Ctx) error {
	var body referralRequest
	if err := c.Bind().JSON(&body); err != nil {
		return invalidBody(c, err)
	}

	r, err := h.svc.Update(c.Context(), c.Params("id"), body.toService())
	if err != nil {
		return mapReferralError(c, err)
	}
	return ok(c, r)
}

// DELETE /referrals/:id
func (h *ReferralHandler) Delete(c fiber.Ctx) error {
	if err := h.svc.Delete(c.Context(), c.Params("id")); err != nil {
		return mapReferralError(c, err)
	}
	return noContent(c)
}
