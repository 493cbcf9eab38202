package main

import (
	"context"
	"database/sql"
	"log/slog"
	"os"

	"github.com/SscSPs/savings_loan_app/internal/core/domain"
	portsrepo "github.com/SscSPs/savings_loan_app/internal/core/ports/repositories"
	"github.com/SscSPs/savings_loan_app/internal/core/services"
	"github.com/SscSPs/savings_loan_app/internal/handlers"
	"github.com/SscSPs/savings_loan_app/internal/middleware"
	pgsqlrepo "github.com/SscSPs/savings_loan_app/internal/repositories/database/pgsql"
	sqliterepo "github.com/SscSPs/savings_loan_app/internal/repositories/database/sqlite"
	"github.com/SscSPs/savings_loan_app/internal/workers"
	"github.com/SscSPs/savings_loan_app/pkg/config"
	"github.com/SscSPs/savings_loan_app/pkg/database"
	"github.com/SscSPs/savings_loan_app/pkg/metrics"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	migrate "github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	_ "github.com/jackc/pgx/v5/stdlib"
)

// @title SLA Backend API
// @version 1.0
// @description This is a sample server for SLA backend.

// @host localhost:8080
// @BasePath /
func main() {
	// Initialize structured logger
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Error("Failed to load config", slog.String("error", err.Error()))
		os.Exit(1)
	}

	policy := domain.LoanPolicy{
		InterestRate:        cfg.LoanInterestRate,
		DueDay:              cfg.LoanDueDay,
		InitialDeposit:      cfg.InitialDepositAmount,
		MonthlySubscription: cfg.MonthlySubscriptionAmount,
		CurrencyCode:        cfg.CurrencyCode,
	}
	if err := policy.Validate(); err != nil {
		logger.Error("Invalid loan policy configuration", slog.String("error", err.Error()))
		os.Exit(1)
	}

	var repos portsrepo.RepositoryProvider
	switch cfg.DBDriver {
	case "sqlite":
		db, err := database.NewSQLiteDB(cfg.SQLitePath)
		if err != nil {
			logger.Error("Failed to open SQLite database", slog.String("error", err.Error()))
			os.Exit(1)
		}
		defer database.CloseSQLiteDB(db)

		repos, err = sqliterepo.NewRepositoryProvider(db)
		if err != nil {
			logger.Error("Failed to initialize SQLite schema", slog.String("error", err.Error()))
			os.Exit(1)
		}
		logger.Info("SQLite storage initialized.", slog.String("path", cfg.SQLitePath))

	default:
		dbPool, err := database.NewPgxPool(context.Background(), cfg.DatabaseURL, cfg.EnableDBCheck)
		if err != nil {
			logger.Error("Failed to initialize database pool", slog.String("error", err.Error()))
			os.Exit(1)
		}
		defer dbPool.Close()
		logger.Info("Database connection pool established.")

		if err := runMigrations(logger, cfg.DatabaseURL); err != nil {
			logger.Error("Failed to apply migrations", slog.String("error", err.Error()))
			os.Exit(1)
		}

		repos = pgsqlrepo.NewRepositoryProvider(dbPool)
	}

	serviceContainer := services.NewServiceContainer(policy, repos)

	var collector *metrics.MetricsCollector
	if cfg.EnableMetrics {
		collector = metrics.NewMetricsCollector(logger)
	}

	if cfg.IsProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()

	// Global middleware (logging, recovery)
	r.Use(middleware.StructuredLoggingMiddleware(logger), gin.Recovery())
	r.Use(cors.Default())
	if collector != nil {
		r.Use(middleware.Metrics(collector))
	}

	if err := r.SetTrustedProxies(nil); err != nil {
		logger.Error("Failed to set trusted proxies", slog.String("error", err.Error()))
		os.Exit(1)
	}

	handlers.RegisterRoutes(r, cfg, serviceContainer, collector)

	// Background overdue interest sweep
	sweeper := workers.NewOverdueSweeper(serviceContainer.Loan, logger, collector, cfg.OverdueSweepSchedule)
	if err := sweeper.Start(); err != nil {
		logger.Error("Failed to start overdue sweeper", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer sweeper.Stop()

	logger.Info("Server starting", slog.String("port", cfg.Port))
	if err := r.Run(":" + cfg.Port); err != nil {
		logger.Error("Server failed to run", slog.String("error", err.Error()))
		os.Exit(1)
	}
}

// runMigrations applies all pending "up" migrations against the PostgreSQL
// database using a temporary database/sql connection, compatible with the
// main pgx pool.
func runMigrations(logger *slog.Logger, databaseURL string) error {
	logger.Info("Running database migrations...")

	migrationDB, err := sql.Open("pgx", databaseURL)
	if err != nil {
		return err
	}
	if err := migrationDB.Ping(); err != nil {
		return err
	}
	defer func() {
		if cerr := migrationDB.Close(); cerr != nil {
			logger.Error("Error closing migration DB connection", slog.String("error", cerr.Error()))
		}
	}()

	driver, err := postgres.WithInstance(migrationDB, &postgres.Config{})
	if err != nil {
		return err
	}

	m, err := migrate.NewWithDatabaseInstance("file://migrations", "postgres", driver)
	if err != nil {
		return err
	}

	upErr := m.Up()
	if upErr != nil && upErr != migrate.ErrNoChange {
		return upErr
	}

	sourceErr, dbErr := m.Close()
	if sourceErr != nil {
		return sourceErr
	}
	if dbErr != nil {
		return dbErr
	}

	if upErr == migrate.ErrNoChange {
		logger.Info("No new migrations to apply.")
	} else {
		logger.Info("Database migrations applied successfully.")
	}
	return nil
}
