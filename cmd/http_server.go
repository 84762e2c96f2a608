package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/frahmantamala/jobcard-management/internal"
	"github.com/frahmantamala/jobcard-management/internal/audit"
	auditPostgres "github.com/frahmantamala/jobcard-management/internal/audit/postgres"
	"github.com/frahmantamala/jobcard-management/internal/auth"
	authPostgres "github.com/frahmantamala/jobcard-management/internal/auth/postgres"
	"github.com/frahmantamala/jobcard-management/internal/exporter"
	exporterPostgres "github.com/frahmantamala/jobcard-management/internal/exporter/postgres"
	"github.com/frahmantamala/jobcard-management/internal/jobcard"
	jobcardPostgres "github.com/frahmantamala/jobcard-management/internal/jobcard/postgres"
	"github.com/frahmantamala/jobcard-management/internal/pricing"
	pricingPostgres "github.com/frahmantamala/jobcard-management/internal/pricing/postgres"
	"github.com/frahmantamala/jobcard-management/internal/transport/middleware"
	"github.com/frahmantamala/jobcard-management/internal/transport/rest"
	"github.com/frahmantamala/jobcard-management/internal/transport/swagger"
	"github.com/frahmantamala/jobcard-management/internal/user"
	userPostgres "github.com/frahmantamala/jobcard-management/internal/user/postgres"
	"github.com/frahmantamala/jobcard-management/pkg/logger"

	"github.com/go-chi/chi"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/jmoiron/sqlx"
	"github.com/spf13/cobra"
	gormPostgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormLogger "gorm.io/gorm/logger"
)

var httpServerCmd = &cobra.Command{
	Use:   "server",
	Short: "Start HTTP server",
	Long:  `Start the HTTP server to handle API requests`,
	Run: func(cmd *cobra.Command, args []string) {
		startHTTPServer()
	},
}

type Dependencies struct {
	Config *internal.Config
	DB     *sqlx.DB
	Gorm   *gorm.DB
	Router *chi.Mux
	Logger *slog.Logger
}

func startHTTPServer() {
	deps, err := initializeDependencies()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize dependencies: %v\n", err)
		os.Exit(1)
	}

	if err := setupRoutes(deps); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to set up routes: %v\n", err)
		os.Exit(1)
	}

	addr := fmt.Sprintf(":%d", deps.Config.Server.Port)
	slog.Info("Starting HTTP server", "address", addr)

	server := &http.Server{
		Addr:         addr,
		Handler:      deps.Router,
		ReadTimeout:  deps.Config.Server.ReadTimeout,
		WriteTimeout: deps.Config.Server.WriteTimeout,
		IdleTimeout:  deps.Config.Server.IdleTimeout,
	}

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	serverErrChan := make(chan error, 1)
	go func() {
		serverErrChan <- server.ListenAndServe()
	}()

	select {
	case sig := <-sigChan:
		slog.Info("Received signal, shutting down...", "signal", sig)
		ctx, cancel := internal.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		if err := server.Shutdown(ctx); err != nil {
			slog.Error("Server shutdown error", "error", err)
		}
		if err := deps.DB.Close(); err != nil {
			slog.Error("Database close error", "error", err)
		}
	case err := <-serverErrChan:
		if err != nil && err != http.ErrServerClosed {
			slog.Error("Server failed to start", "error", err)
			os.Exit(1)
		}
	}

	slog.Info("Server stopped")
}

func setupRoutes(deps *Dependencies) error {
	cfg := deps.Config
	lg := deps.Logger

	// Permission map is checked before any route can reference a key.
	if err := auth.ValidatePermissionMap(
		auth.PermissionPendingApprovals,
		auth.PermissionJobCardApprove,
		auth.PermissionPriceUpload,
		auth.PermissionExporterManage,
	); err != nil {
		return fmt.Errorf("permission configuration: %w", err)
	}

	if err := swagger.ValidateSpec(context.Background(), "./api/openapi.yml"); err != nil {
		lg.Warn("OpenAPI spec validation failed, docs may be broken", "error", err)
	}

	tokenService := auth.NewJWTTokenService(cfg.Security.JWTSecret, cfg.Security.AccessTokenDuration)
	authRepo := authPostgres.NewRepository(deps.Gorm)
	authService := auth.NewService(authRepo, tokenService, cfg.Security.BCryptCost, lg)
	authHandler := auth.NewHandler(authService, cfg.Security.SecureCookies, cfg.Security.AccessTokenDuration)

	auditRepo := auditPostgres.NewAuditRepository(deps.Gorm)
	auditRecorder := audit.NewRecorder(auditRepo, lg)

	guard := middleware.NewGuard(authService, lg)
	trail := middleware.NewAuditTrail(auditRecorder, authService, lg)
	composer := middleware.NewComposer(guard, trail)
	permissions := auth.NewPermissionValidator(authService, lg)

	userRepo := userPostgres.NewRepository(deps.Gorm)
	userService := user.NewService(userRepo, lg)
	userHandler := user.NewHandler(userService)

	exporterRepo := exporterPostgres.NewExporterRepository(deps.Gorm)
	exporterService := exporter.NewService(exporterRepo, lg)
	exporterHandler := exporter.NewHandler(exporterService)

	jobcardRepo := jobcardPostgres.NewJobCardRepository(deps.Gorm)
	jobcardService := jobcard.NewService(jobcardRepo, exporterService, lg)
	jobcardHandler := jobcard.NewHandler(jobcardService)

	pricingRepo := pricingPostgres.NewPriceRepository(deps.Gorm)
	pricingService := pricing.NewService(pricingRepo, lg)
	pricingHandler := pricing.NewHandler(pricingService)

	rest.RegisterAllRoutes(
		deps.Router,
		deps.DB.DB,
		rest.Handlers{
			Auth:     authHandler,
			User:     userHandler,
			JobCard:  jobcardHandler,
			Pricing:  pricingHandler,
			Exporter: exporterHandler,
		},
		composer,
		permissions,
		cfg.Server.AllowedOrigins,
		lg,
	)

	return nil
}

func initializeDependencies() (*Dependencies, error) {
	config, err := loadConfig(".")
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	logger.Init(config.Observability.Logging.Level, config.Observability.Logging.Format)

	db, err := initDB(config.Database)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	gormDB, err := gorm.Open(gormPostgres.New(gormPostgres.Config{Conn: db.DB}), &gorm.Config{
		Logger: gormLogger.Default.LogMode(gormLogger.Warn),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open gorm connection: %w", err)
	}

	return &Dependencies{
		Config: config,
		Logger: logger.LoggerWrapper(),
		DB:     db,
		Gorm:   gormDB,
		Router: chi.NewRouter(),
	}, nil
}

// initDB initializes the database connection
func initDB(cfg internal.DatabaseConfig) (*sqlx.DB, error) {
	const driver = "pgx"

	dbConn, err := sqlx.Connect(driver, cfg.Source)
	if err != nil {
		return nil, fmt.Errorf("failed to open db connection: %w", err)
	}

	dbConn.SetMaxIdleConns(cfg.MaxIdleConns)
	dbConn.SetMaxOpenConns(cfg.MaxOpenConns)
	dbConn.SetConnMaxLifetime(cfg.ConnMaxLifetime)
	dbConn.SetConnMaxIdleTime(cfg.ConnMaxIdleTime)

	if err := dbConn.Ping(); err != nil {
		_ = dbConn.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return dbConn, nil
}
