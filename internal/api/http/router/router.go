package router

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v3"
	"github.com/gofiber/fiber/v3/middleware/adaptor"
	"github.com/gofiber/fiber/v3/middleware/healthcheck"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/fx"

	"github.com/Alijeyrad/taadol_backend/config"
	"github.com/Alijeyrad/taadol_backend/internal/api/http/handler"
	"github.com/Alijeyrad/taadol_backend/internal/service/balancing"
	"github.com/Alijeyrad/taadol_backend/internal/service/commission"
	"github.com/Alijeyrad/taadol_backend/internal/service/expense"
	"github.com/Alijeyrad/taadol_backend/internal/service/income"
	"github.com/Alijeyrad/taadol_backend/internal/service/member"
	"github.com/Alijeyrad/taadol_backend/internal/service/project"
	"github.com/Alijeyrad/taadol_backend/internal/service/referral"
	"github.com/Alijeyrad/taadol_backend/internal/service/salary"
	"github.com/Alijeyrad/taadol_backend/internal/service/section"
	"github.com/Alijeyrad/taadol_backend/pkg/database"
)

// Module provides the Router to the fx graph.
var Module = fx.Module("router", fx.Provide(NewRouter))

type Params struct {
	fx.In

	Cfg           *config.Config
	DB            *database.DB `optional:"true"`
	ProjectSvc    project.Service
	SectionSvc    section.Service
	MemberSvc     member.Service
	CommissionSvc commission.Service
	BalancingSvc  balancing.Service
	IncomeSvc     income.Service
	SalarySvc     salary.Service
	ExpenseSvc    expense.Service
	ReferralSvc   referral.Service
}

type Router struct {
	p Params
}

func NewRouter(p Params) *Router {
	return &Router{p: p}
}

func (r *Router) Register(app *fiber.App) {
	// 1. Health & Metrics
	r.registerSystemRoutes(app)

	// 2. Initialize Handlers
	projectH := handler.NewProjectHandler(r.p.ProjectSvc)
	sectionH := handler.NewSectionHandler(r.p.SectionSvc)
	memberH := handler.NewMemberHandler(r.p.MemberSvc)
	commissionH := handler.NewCommissionHandler(r.p.CommissionSvc)
	balancingH := handler.NewBalancingHandler(r.p.BalancingSvc)
	incomeH := handler.NewIncomeHandler(r.p.IncomeSvc)
	salaryH := handler.NewSalaryHandler(r.p.SalarySvc)
	expenseH := handler.NewExpenseHandler(r.p.ExpenseSvc)
	referralH := handler.NewReferralHandler(r.p.ReferralSvc)

	api := app.Group("/api/v1")

	// 3. Delegate to sub-files
	r.registerProjectRoutes(api, projectH, sectionH, incomeH, commissionH)
	r.registerSectionRoutes(api, sectionH)
	r.registerMemberRoutes(api, memberH, commissionH)
	r.registerBalancingRoutes(api, balancingH)
	r.registerTaxRoutes(api, incomeH)
	r.registerPayrollRoutes(api, salaryH, expenseH, referralH)
}

func (r *Router) registerSystemRoutes(app *fiber.App) {
	app.Get(healthcheck.LivenessEndpoint, healthcheck.New())
	app.Get(healthcheck.ReadinessEndpoint, healthcheck.New(healthcheck.Config{
		Probe: func(c fiber.Ctx) bool { return r.databaseReady(c.Context()) },
	}))
	app.Get(healthcheck.StartupEndpoint, healthcheck.New())

	if r.p.Cfg.Observability.Enabled && r.p.Cfg.Observability.Metrics.Enabled {
		path := r.p.Cfg.Observability.Metrics.Path
		if path == "" {
			path = "/metrics"
		}
		app.Get(path, adaptor.HTTPHandler(promhttp.Handler()))
	}
}

func (r *Router) databaseReady(ctx context.Context) bool {
	if r.p.DB == nil {
		return false
	}
	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	return r.p.DB.Ping(ctx) == nil
}
