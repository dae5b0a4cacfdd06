package router

import (
	"github.com/gofiber/fiber/v3"

	"github.com/Alijeyrad/taadol_backend/internal/api/http/handler"
)

func (r *Router) registerSectionRoutes(api fiber.Router, h *handler.SectionHandler) {
	sections := api.Group("/sections")

	sections.Patch("/:id", h.SetActive)
	sections.Delete("/:id", h.Delete)

	// flat sections
	sections.Get("/:id/details", h.GetDetails)
	sections.Put("/:id/details", h.SaveDetails)
	sections.Patch("/:id/fields", h.UpdateDetailsField)

	// item sections
	sections.Get("/:id/items", h.ListItems)
	sections.Post("/:id/items", h.CreateItem)
	sections.Get("/:id/items/:itemId", h.GetItem)
	sections.Put("/:id/items/:itemId", h.UpdateItem)
	sections.Delete("/:id/items/:itemId", h.DeleteItem)
	sections.Patch("/:id/items/:itemId/fields", h.UpdateItemField)
}
