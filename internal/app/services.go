package app

import (
	"log/slog"

	"go.uber.org/fx"

	"github.com/Alijeyrad/taadol_backend/config"
	core "github.com/Alijeyrad/taadol_backend/internal/commission"
	"github.com/Alijeyrad/taadol_backend/internal/report"
	"github.com/Alijeyrad/taadol_backend/internal/repo"
	"github.com/Alijeyrad/taadol_backend/internal/service/balancing"
	"github.com/Alijeyrad/taadol_backend/internal/service/commission"
	"github.com/Alijeyrad/taadol_backend/internal/service/expense"
	"github.com/Alijeyrad/taadol_backend/internal/service/income"
	"github.com/Alijeyrad/taadol_backend/internal/service/member"
	"github.com/Alijeyrad/taadol_backend/internal/service/project"
	"github.com/Alijeyrad/taadol_backend/internal/service/referral"
	"github.com/Alijeyrad/taadol_backend/internal/service/salary"
	"github.com/Alijeyrad/taadol_backend/internal/service/section"
)

// ServiceModule provides all application service dependencies.
var ServiceModule = fx.Module("services",
	fx.Provide(
		ProvideAggregator,
		ProvidePDFOptions,
		ProvideCommissionService,
		ProvideSalaryService,
		project.New,
		section.New,
		member.New,
		balancing.New,
		income.New,
		expense.New,
		referral.New,
	),
)

// ProvideAggregator builds the single commission engine every call site
// shares.
func ProvideAggregator(db *repo.Client, cfg *config.Config) *core.Aggregator {
	return core.NewAggregator(repo.NewCommissionSource(db),
		core.WithLogger(slog.Default()),
		core.WithConcurrency(cfg.Commission.SummaryConcurrency),
	)
}

func ProvidePDFOptions(cfg *config.Config) report.PDFOptions {
	return report.PDFOptionsFrom(cfg.Reports)
}

func ProvideCommissionService(db *repo.Client, agg *core.Aggregator, cfg *config.Config) commission.Service {
	return commission.New(db, agg, commission.Limits{
		DefaultPageSize: cfg.Commission.DefaultPageSize,
		MaxPageSize:     cfg.Commission.MaxPageSize,
	})
}

func ProvideSalaryService(db *repo.Client, agg *core.Aggregator, opts report.PDFOptions) salary.Service {
	return salary.New(db, agg, opts)
}
