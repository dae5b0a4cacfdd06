package router

import (
	"github.com/gofiber/fiber/v3"

	"github.com/Alijeyrad/taadol_backend/internal/api/http/handler"
)

func (r *Router) registerBalancingRoutes(api fiber.Router, h *handler.BalancingHandler) {
	b := api.Group("/balancing")

	b.Get("/weights", h.Weights)
	b.Put("/weights", h.ReplaceWeights)
	b.Patch("/weights", h.SetWeight)
	b.Get("/percentages", h.Percentages)
	b.Put("/percentages", h.ReplacePercentages)
	b.Post("/preview", h.Preview)
}

func (r *Router) registerTaxRoutes(api fiber.Router, h *handler.IncomeHandler) {
	api.Get("/taxes", h.Taxes)
	api.Put("/taxes/:id", h.SetTaxPercentage)
}
