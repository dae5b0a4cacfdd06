package router

import (
	"github.com/gofiber/fiber/v3"

	"github.com/Alijeyrad/taadol_backend/internal/api/http/handler"
)

func (r *Router) registerProjectRoutes(
	api fiber.Router,
	h *handler.ProjectHandler,
	sectionH *handler.SectionHandler,
	incomeH *handler.IncomeHandler,
	commissionH *handler.CommissionHandler,
) {
	projects := api.Group("/projects")

	projects.Get("/", h.List)
	projects.Post("/", h.Create)
	projects.Get("/:id", h.Get)
	projects.Put("/:id", h.Rename)
	projects.Delete("/:id", h.Delete)

	projects.Get("/:id/sections", sectionH.ListByProject)
	projects.Post("/:id/sections", sectionH.Add)

	projects.Get("/:id/income", incomeH.Get)
	projects.Put("/:id/income", incomeH.Save)

	projects.Get("/:id/commissions.xlsx", commissionH.ProjectXLSX)
	projects.Get("/:id/commissions", commissionH.Project)
}
