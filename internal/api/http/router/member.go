package router

import (
	"github.com/gofiber/fiber/v3"

	"github.com/Alijeyrad/taadol_backend/internal/api/http/handler"
)

func (r *Router) registerMemberRoutes(api fiber.Router, h *handler.MemberHandler, commissionH *handler.CommissionHandler) {
	members := api.Group("/members")

	members.Get("/", h.List)
	members.Post("/", h.Create)
	members.Get("/:id", h.Get)
	members.Put("/:id", h.Update)
	members.Delete("/:id", h.Delete)

	members.Get("/:id/commissions.xlsx", commissionH.MemberXLSX)
	members.Get("/:id/commissions", commissionH.Member)
	members.Get("/:id/assignments", commissionH.Assignments)

	api.Get("/commissions/summary", commissionH.Summary)
}
