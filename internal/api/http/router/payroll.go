package router

import (
	"github.com/gofiber/fiber/v3"

	"github.com/Alijeyrad/taadol_backend/internal/api/http/handler"
)

func (r *Router) registerPayrollRoutes(
	api fiber.Router,
	salaryH *handler.SalaryHandler,
	expenseH *handler.ExpenseHandler,
	referralH *handler.ReferralHandler,
) {
	salaries := api.Group("/salaries")
	salaries.Get("/", salaryH.List)
	salaries.Put("/", salaryH.Upsert)
	salaries.Get("/:employee_id/:date/payslip.pdf", salaryH.PayslipPDF)
	salaries.Get("/:employee_id/:date/payslip", salaryH.Payslip)

	api.Get("/expenses", expenseH.Get)
	api.Put("/expenses", expenseH.Save)

	referrals := api.Group("/referrals")
	referrals.Get("/", referralH.List)
	referrals.Post("/", referralH.Create)
	referrals.Put("/:id", referralH.Update)
	referrals.Delete("/:id", referralH.Delete)
}
