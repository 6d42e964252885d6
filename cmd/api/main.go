package main

import (
	"context"
	"net/http"
	"os"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/forkasbib/restopos-backend/api/routes"
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
	"github.com/forkasbib/restopos-backend/pkg/logger"
	"github.com/forkasbib/restopos-backend/pkg/metrics"
	"github.com/forkasbib/restopos-backend/pkg/migrate"
	"github.com/forkasbib/restopos-backend/pkg/redis"
)

func main() {
	logg := logger.New(logger.Options{ServiceName: "api"})

	if err := godotenv.Load(); err != nil {
		logg.Warn(context.Background(), ".env file not found, relying on environment")
	}

	cfg, err := config.Load()
	if err != nil {
		logg.Error(context.Background(), "failed to load config", err)
		os.Exit(1)
	}

	logg = logger.New(logger.Options{
		ServiceName: "api",
		Level:       logger.ParseLevel(cfg.App.LogLevel),
		WarnStack:   cfg.App.LogWarnStack,
	})

	dbClient, err := db.New(context.Background(), cfg.DB, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to bootstrap database", err)
		os.Exit(1)
	}
	defer func() {
		if err := dbClient.Close(); err != nil {
			logg.Error(context.Background(), "error closing database", err)
		}
	}()

	if err := migrate.MaybeRunDev(context.Background(), cfg, logg, dbClient); err != nil {
		logg.Error(context.Background(), "failed to run dev migrations", err)
		os.Exit(1)
	}

	redisClient, err := redis.New(context.Background(), cfg.Redis, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to bootstrap redis", err)
		os.Exit(1)
	}
	defer func() {
		if err := redisClient.Close(); err != nil {
			logg.Error(context.Background(), "error closing redis", err)
		}
	}()

	sessionManager, err := session.NewManager(redisClient, cfg.JWT)
	if err != nil {
		logg.Error(context.Background(), "failed to create session manager", err)
		os.Exit(1)
	}

	gormDB := dbClient.DB()
	plansRepo := plans.NewRepository(gormDB)
	usageRepo := usage.NewRepository(gormDB)
	alertsRepo := alerts.NewRepository(gormDB)
	staffRepo := staff.NewRepository(gormDB)

	usageService, err := usage.NewService(usageRepo, logg, nil)
	if err != nil {
		logg.Error(context.Background(), "failed to create usage service", err)
		os.Exit(1)
	}

	plansService, err := plans.NewService(plansRepo, usageService)
	if err != nil {
		logg.Error(context.Background(), "failed to create plans service", err)
		os.Exit(1)
	}

	entitlementMetrics := metrics.NewEntitlementMetrics(prometheus.DefaultRegisterer)
	entitlementService, err := entitlement.NewService(plansRepo, usageService, entitlementMetrics, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to create entitlement service", err)
		os.Exit(1)
	}

	alertsService, err := alerts.NewService(alertsRepo, plansRepo, usageService, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to create alerts service", err)
		os.Exit(1)
	}

	productsService, err := products.NewService(products.NewRepository(gormDB))
	if err != nil {
		logg.Error(context.Background(), "failed to create products service", err)
		os.Exit(1)
	}

	staffService, err := staff.NewService(staffRepo, cfg.Password)
	if err != nil {
		logg.Error(context.Background(), "failed to create staff service", err)
		os.Exit(1)
	}

	branchesService, err := branches.NewService(branches.NewRepository(gormDB))
	if err != nil {
		logg.Error(context.Background(), "failed to create branches service", err)
		os.Exit(1)
	}

	salesService, err := sales.NewService(dbClient, sales.NewRepository(gormDB), usageRepo, nil)
	if err != nil {
		logg.Error(context.Background(), "failed to create sales service", err)
		os.Exit(1)
	}

	port := os.Getenv("PORT")
	if port == "" {
		port = cfg.App.Port
	}
	addr := ":" + port
	ctx := logg.WithFields(context.Background(), map[string]any{
		"env":  cfg.App.Env,
		"addr": addr,
	})
	logg.Info(ctx, "starting api server")

	server := &http.Server{
		Addr: addr,
		Handler: routes.NewRouter(routes.Deps{
			Config:      cfg,
			Logger:      logg,
			DB:          dbClient,
			Redis:       redisClient,
			Sessions:    sessionManager,
			StaffRepo:   staffRepo,
			Entitlement: entitlementService,
			Plans:       plansService,
			Usage:       usageService,
			Alerts:      alertsService,
			Products:    productsService,
			Staff:       staffService,
			Branches:    branchesService,
			Sales:       salesService,
		}),
	}

	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logg.Error(ctx, "api server stopped unexpectedly", err)
		os.Exit(1)
	}
}
