package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/hibiken/asynq"

	"github.com/meridian-hris/meridian/internal/app"
	"github.com/meridian-hris/meridian/internal/audit"
	audithttp "github.com/meridian-hris/meridian/internal/audit/http"
	"github.com/meridian-hris/meridian/internal/auth"
	"github.com/meridian-hris/meridian/internal/authz"
	"github.com/meridian-hris/meridian/internal/comms"
	"github.com/meridian-hris/meridian/internal/employees"
	"github.com/meridian-hris/meridian/internal/identity"
	"github.com/meridian-hris/meridian/internal/leave"
	"github.com/meridian-hris/meridian/internal/observability"
	"github.com/meridian-hris/meridian/internal/payroll"
	"github.com/meridian-hris/meridian/internal/platform/cache"
	"github.com/meridian-hris/meridian/internal/platform/db"
	"github.com/meridian-hris/meridian/internal/rosters"
	"github.com/meridian-hris/meridian/internal/travel"
	"github.com/meridian-hris/meridian/jobs"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := app.LoadConfig()
	if err != nil {
		slog.Default().Error("load config", slog.Any("error", err))
		os.Exit(1)
	}

	logger := app.NewLogger(cfg)

	if err := db.Migrate(cfg.MigrationsURL, cfg.PGDSN); err != nil {
		logger.Error("run migrations", slog.Any("error", err))
		os.Exit(1)
	}

	pool, err := db.New(ctx, cfg.PGDSN)
	if err != nil {
		logger.Error("connect postgres", slog.Any("error", err))
		os.Exit(1)
	}
	defer pool.Close()

	redisClient, err := cache.New(ctx, cfg.RedisAddr)
	if err != nil {
		logger.Warn("redis unavailable, tenant settings cache disabled", slog.Any("error", err))
		redisClient = nil
	}
	defer func() {
		if redisClient == nil {
			return
		}
		if err := redisClient.Close(); err != nil {
			logger.Warn("redis close", slog.Any("error", err))
		}
	}()

	metrics := observability.NewMetrics()
	tokens := auth.NewTokenService(cfg.JWTSecret, cfg.JWTIssuer, cfg.JWTTTL)
	guard := authz.Middleware{Logger: logger, Metrics: metrics}

	auditRepo := audit.NewPGRepository(pool)
	recorder := audit.NewRecorder(auditRepo, logger, metrics)
	auditService := audit.NewService(auditRepo, logger)
	auditHandler := audithttp.NewHandler(logger, auditService, recorder)

	jobsClient, err := jobs.NewClient(asynq.RedisClientOpt{Addr: cfg.RedisAddr})
	if err != nil {
		logger.Error("init jobs client", slog.Any("error", err))
		os.Exit(1)
	}
	defer func() {
		if err := jobsClient.Close(); err != nil {
			logger.Warn("jobs client close", slog.Any("error", err))
		}
	}()

	identityRepo := identity.NewRepository(pool)
	identityService := identity.NewService(identityRepo, tokens, recorder,
		redisClient, cfg.TenantSettingsTTL, cfg.JWTTTL, logger)
	identityHandler := identity.NewHandler(logger, identityService)

	employeesRepo := employees.NewRepository(pool)
	employeesService := employees.NewService(employeesRepo, recorder, logger)
	employeesHandler := employees.NewHandler(logger, employeesService)

	leaveRepo := leave.NewRepository(pool)
	leaveService := leave.NewService(leaveRepo, recorder, logger)
	leaveHandler := leave.NewHandler(logger, leaveService)

	payrollRepo := payroll.NewRepository(pool)
	payrollService := payroll.NewService(payrollRepo, recorder, logger)
	payrollHandler := payroll.NewHandler(logger, payrollService)

	rostersRepo := rosters.NewRepository(pool)
	rostersService := rosters.NewService(rostersRepo, recorder, logger)
	rostersHandler := rosters.NewHandler(logger, rostersService)

	travelRepo := travel.NewRepository(pool)
	travelService := travel.NewService(travelRepo, recorder, logger)
	travelHandler := travel.NewHandler(logger, travelService)

	commsRepo := comms.NewRepository(pool)
	commsService := comms.NewService(commsRepo, jobsClient, recorder, logger)
	commsGuards := comms.Guards{Logger: logger, Repo: commsRepo, Teams: commsRepo}
	commsHandler := comms.NewHandler(logger, commsService, commsGuards)

	inspector := asynq.NewInspector(asynq.RedisClientOpt{Addr: cfg.RedisAddr})
	defer func() {
		if err := inspector.Close(); err != nil {
			logger.Warn("inspector close", slog.Any("error", err))
		}
	}()
	jobsHandler := jobs.NewHandler(inspector, logger)

	router := app.NewRouter(app.RouterConfig{
		Middleware: app.MiddlewareConfig{
			Logger:  logger,
			Config:  cfg,
			Tokens:  tokens,
			Metrics: metrics,
		},
		Guard:     guard,
		Metrics:   metrics,
		Identity:  identityHandler,
		Employees: employeesHandler,
		Leave:     leaveHandler,
		Payroll:   payrollHandler,
		Rosters:   rostersHandler,
		Travel:    travelHandler,
		Comms:     commsHandler,
		Audit:     auditHandler,
		Jobs:      jobsHandler,
	})

	server := &http.Server{
		Addr:         cfg.AppAddr,
		Handler:      router,
		ReadTimeout:  cfg.AppReadTimeout,
		WriteTimeout: cfg.AppWriteTimeout,
	}

	go func() {
		logger.Info("starting http server", slog.String("addr", cfg.AppAddr))
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("http server", slog.Any("error", err))
			stop()
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("graceful shutdown", slog.Any("error", err))
	}
}
