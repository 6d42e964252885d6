package routes

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/forkasbib/restopos-backend/api/controllers"
	"github.com/forkasbib/restopos-backend/api/middleware"
	"github.com/forkasbib/restopos-backend/internal/alerts"
	"github.com/forkasbib/restopos-backend/internal/branches"
	"github.com/forkasbib/restopos-backend/internal/entitlement"
	"github.com/forkasbib/restopos-backend/internal/plans"
	"github.com/forkasbib/restopos-backend/internal/products"
	"github.com/forkasbib/restopos-backend/internal/sales"
	"github.com/forkasbib/restopos-backend/internal/staff"
	"github.com/forkasbib/restopos-backend/internal/usage"
	"github.com/forkasbib/restopos-backend/pkg/auth/session"
	"github.com/forkasbib/restopos-backend/pkg/config"
	"github.com/forkasbib/restopos-backend/pkg/db"
	"github.com/forkasbib/restopos-backend/pkg/enums"
	"github.com/forkasbib/restopos-backend/pkg/logger"
	"github.com/forkasbib/restopos-backend/pkg/redis"
)

type sessionManager interface {
	session.AccessSessionChecker
	Generate(ctx context.Context, accessID string) (string, error)
	Rotate(ctx context.Context, oldAccessID, provided string) (string, string, error)
	Revoke(ctx context.Context, accessID string) error
}

// Deps bundles everything the HTTP surface needs. Grouping them in a
// struct keeps the constructor signature stable as services are added.
type Deps struct {
	Config      *config.Config
	Logger      *logger.Logger
	DB          db.Pinger
	Redis       *redis.Client
	Sessions    sessionManager
	StaffRepo   *staff.Repository
	Entitlement entitlement.Service
	Plans       plans.Service
	Usage       usage.Service
	Alerts      alerts.Service
	Products    products.Service
	Staff       staff.Service
	Branches    branches.Service
	Sales       sales.Service
}

func NewRouter(deps Deps) http.Handler {
	cfg := deps.Config
	logg := deps.Logger

	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
		middleware.CORS(),
	)

	loginPolicy := middleware.NewAuthRateLimitPolicy(
		"login",
		cfg.AuthRate.LoginWindow,
		cfg.AuthRate.LoginIPLimit,
		cfg.AuthRate.LoginUsernameLimit,
	)

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", controllers.HealthReady(cfg, logg, deps.DB, deps.Redis))
	})

	r.Route("/api/public", func(r chi.Router) {
		r.Get("/ping", controllers.PublicPing())
		r.Get("/plans", controllers.PlanCatalog(deps.Plans, logg))
	})

	r.Route("/api/v1/auth", func(r chi.Router) {
		r.With(middleware.AuthRateLimit(loginPolicy, deps.Redis, logg)).
			Post("/login", controllers.AuthLogin(deps.StaffRepo, deps.Sessions, cfg.JWT, logg))
		r.Post("/refresh", controllers.AuthRefresh(deps.Sessions, cfg.JWT, logg))
		r.Post("/logout", controllers.AuthLogout(deps.Sessions, cfg.JWT, logg))
	})

	r.Route("/api", func(r chi.Router) {
		r.Use(middleware.Auth(cfg.JWT, deps.Sessions, logg))

		r.Get("/ping", controllers.PrivatePing())

		r.Route("/v1/plan", func(r chi.Router) {
			r.Get("/", controllers.CurrentPlan(deps.Plans, logg))
			r.Get("/usage", controllers.CurrentUsage(deps.Usage, logg))
		})

		r.Route("/v1/alerts", func(r chi.Router) {
			r.Get("/", controllers.ListAlerts(deps.Alerts, logg))
			r.Post("/{alertID}/resolve", controllers.ResolveAlert(deps.Alerts, logg))
		})

		r.Route("/v1/products", func(r chi.Router) {
			r.Use(middleware.RequirePlan(deps.Entitlement, logg, entitlement.Requirement{Feature: entitlement.FeatureProductCatalog}))

			r.Get("/", controllers.ListProducts(deps.Products, logg))
			r.Get("/{productID}", controllers.GetProduct(deps.Products, logg))

			// alert evaluation wraps the counter hook so it sees the
			// post-mutation value
			r.With(
				middleware.RequireResourceCapacity(deps.Entitlement, logg, enums.ResourceTypeProducts),
				middleware.EvaluateAlerts(deps.Alerts, logg),
				middleware.TrackUsage(deps.Usage, logg, enums.ResourceTypeProducts),
			).Post("/", controllers.CreateProduct(deps.Products, logg))

			r.With(
				middleware.EvaluateAlerts(deps.Alerts, logg),
				middleware.RecountUsage(deps.Usage, logg, enums.ResourceTypeProducts),
			).Delete("/{productID}", controllers.DeactivateProduct(deps.Products, logg))
		})

		r.Route("/v1/staff", func(r chi.Router) {
			r.Use(middleware.RequireRole(logg, enums.StaffRoleAdmin, enums.StaffRoleManager))
			r.Use(middleware.RequirePlan(deps.Entitlement, logg, entitlement.Requirement{}))

			r.Get("/", controllers.ListStaff(deps.Staff, logg))

			r.With(
				middleware.RequireResourceCapacity(deps.Entitlement, logg, enums.ResourceTypeUsers),
				middleware.EvaluateAlerts(deps.Alerts, logg),
				middleware.TrackUsage(deps.Usage, logg, enums.ResourceTypeUsers),
			).Post("/", controllers.CreateStaff(deps.Staff, logg))

			r.With(
				middleware.EvaluateAlerts(deps.Alerts, logg),
				middleware.RecountUsage(deps.Usage, logg, enums.ResourceTypeUsers),
			).Delete("/{userID}", controllers.DeactivateStaff(deps.Staff, logg))
		})

		r.Route("/v1/branches", func(r chi.Router) {
			r.Use(middleware.RequireRole(logg, enums.StaffRoleAdmin, enums.StaffRoleManager))
			r.Use(middleware.RequirePlan(deps.Entitlement, logg, entitlement.Requirement{}))

			r.Get("/", controllers.ListBranches(deps.Branches, logg))

			r.With(
				middleware.RequireResourceCapacity(deps.Entitlement, logg, enums.ResourceTypeBranches),
				middleware.EvaluateAlerts(deps.Alerts, logg),
				middleware.TrackUsage(deps.Usage, logg, enums.ResourceTypeBranches),
			).Post("/", controllers.CreateBranch(deps.Branches, logg))

			r.With(
				middleware.EvaluateAlerts(deps.Alerts, logg),
				middleware.RecountUsage(deps.Usage, logg, enums.ResourceTypeBranches),
			).Delete("/{branchID}", controllers.DeactivateBranch(deps.Branches, logg))
		})

		r.Route("/v1/sales", func(r chi.Router) {
			r.Use(middleware.RequirePlan(deps.Entitlement, logg, entitlement.Requirement{Feature: entitlement.FeatureSalesRegister}))

			r.Get("/", controllers.ListSales(deps.Sales, logg))

			// The transaction counter commits with the sale insert, so the
			// route only gates capacity and refreshes alerts.
			r.With(
				middleware.RequireResourceCapacity(deps.Entitlement, logg, enums.ResourceTypeTransactions),
				middleware.EvaluateAlerts(deps.Alerts, logg),
			).Post("/", controllers.CreateSale(deps.Sales, logg))
		})
	})

	return r
}
