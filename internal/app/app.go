package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/simp-lee/jwt"
	"github.com/simp-lee/logger"
	"gorm.io/gorm"

	"github.com/staffdesk/staffdesk/internal/config"
	"github.com/staffdesk/staffdesk/internal/domain"
	"github.com/staffdesk/staffdesk/internal/mailer"
	"github.com/staffdesk/staffdesk/internal/middleware"
	"github.com/staffdesk/staffdesk/internal/module/auth"
	"github.com/staffdesk/staffdesk/internal/module/bulktimesheet"
	"github.com/staffdesk/staffdesk/internal/module/client"
	"github.com/staffdesk/staffdesk/internal/module/invoice"
	"github.com/staffdesk/staffdesk/internal/module/jobseeker"
	"github.com/staffdesk/staffdesk/internal/module/position"
	"github.com/staffdesk/staffdesk/internal/module/timesheet"
	"github.com/staffdesk/staffdesk/internal/module/user"
	"github.com/staffdesk/staffdesk/internal/sequence"
)

// Record number prefixes, one per namespace. Invoice numbers are shared
// between invoices and bulk timesheets; the other namespaces are single-table.
const (
	invoiceNumberPrefix  = "INV-"
	positionNumberPrefix = "POS-"
	staffNumberPrefix    = "EMP-"
)

// App holds the core application dependencies and the HTTP server.
type App struct {
	engine     *gin.Engine
	db         *gorm.DB
	logger     *logger.Logger
	jwtService jwt.Service
	cfg        *config.Config
}

type httpServer interface {
	ListenAndServe() error
	Shutdown(ctx context.Context) error
}

var newHTTPServer = func(addr string, handler http.Handler) httpServer {
	return &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      60 * time.Second,
		IdleTimeout:       120 * time.Second,
	}
}

var notifyContext = func(parent context.Context, signals ...os.Signal) (context.Context, context.CancelFunc) {
	return signal.NotifyContext(parent, signals...)
}

// New creates and wires a fully configured App from the given Config.
//
// It sets up logging, the database, record number allocators, domain
// repositories, services, handlers, middleware, and routes.
func New(cfg *config.Config) (*App, error) {
	if cfg == nil {
		return nil, errors.New("config is nil")
	}

	success := false

	// 1. Setup logger.
	log, err := config.SetupLogger(&cfg.Log)
	if err != nil {
		return nil, fmt.Errorf("setup logger: %w", err)
	}

	if cfg.Server.Mode == gin.DebugMode && cfg.Server.Host == "0.0.0.0" {
		log.Warn("insecure server config: debug mode on 0.0.0.0 may expose debug behavior and permissive CORS")
	}
	defer func() {
		if success {
			return
		}
		if err := log.Close(); err != nil {
			slog.Error("logger close error", slog.Any("error", err))
		}
	}()

	// 2. Setup database.
	db, err := config.SetupDatabase(&cfg.Database, log.Logger)
	if err != nil {
		return nil, fmt.Errorf("setup database: %w", err)
	}
	defer func() {
		if success {
			return
		}
		sqlDB, err := db.DB()
		if err != nil {
			return
		}
		if err := sqlDB.Close(); err != nil {
			slog.Error("database close error", slog.Any("error", err))
		}
	}()

	// 3. AutoMigrate in debug mode only.
	if cfg.Server.Mode == gin.DebugMode {
		if err := db.AutoMigrate(
			&domain.User{},
			&domain.Client{},
			&domain.JobSeeker{},
			&domain.Position{},
			&domain.Timesheet{},
			&domain.BulkTimesheet{},
			&domain.Invoice{},
		); err != nil {
			return nil, fmt.Errorf("auto migrate: %w", err)
		}
		log.Info("auto migration completed")
	}

	// 4. Setup JWT service.
	jwtSvc, err := jwt.New(cfg.Auth.JWTSecret)
	if err != nil {
		return nil, fmt.Errorf("setup jwt service: %w", err)
	}
	defer func() {
		if !success {
			jwtSvc.Close()
		}
	}()

	tokenExpiry, err := time.ParseDuration(cfg.Auth.TokenExpiry)
	if err != nil {
		return nil, fmt.Errorf("parse auth.token_expiry: %w", err)
	}

	// 5. Record number allocators, one per namespace. The invoice
	// namespace spans invoices and bulk timesheets, so both services
	// share one source over the union of the two tables.
	invoiceAlloc := sequence.New(cfg.Sequence.Width, invoiceNumberPrefix)
	positionAlloc := sequence.New(cfg.Sequence.Width, positionNumberPrefix)
	staffAlloc := sequence.New(cfg.Sequence.Width, staffNumberPrefix)

	invoiceNumbers := sequence.NewGormSource(db,
		sequence.TableColumn{Table: "invoices", Column: "invoice_number"},
		sequence.TableColumn{Table: "bulk_timesheets", Column: "invoice_number"},
	)

	// 6. Manual dependency injection: repository → service → handler → module.
	userRepo := user.NewUserRepository(db)
	clientRepo := client.NewClientRepository(db)
	seekerRepo := jobseeker.NewJobSeekerRepository(db)
	positionRepo := position.NewPositionRepository(db)
	timesheetRepo := timesheet.NewTimesheetRepository(db)
	bulkRepo := bulktimesheet.NewBulkTimesheetRepository(db)
	invoiceRepo := invoice.NewInvoiceRepository(db)

	invoiceMailer := mailer.NewLogMailer(log.Logger)

	authSvc := auth.NewService(jwtSvc, userRepo, staffAlloc, tokenExpiry)
	userSvc := user.NewUserService(userRepo)
	clientSvc := client.NewClientService(clientRepo)
	seekerSvc := jobseeker.NewJobSeekerService(seekerRepo)
	positionSvc := position.NewPositionService(positionRepo, positionAlloc)
	timesheetSvc := timesheet.NewTimesheetService(timesheetRepo)
	bulkSvc := bulktimesheet.NewBulkTimesheetService(bulkRepo, invoiceAlloc, invoiceNumbers)
	invoiceSvc := invoice.NewInvoiceService(invoiceRepo, invoiceAlloc, invoiceMailer)

	modules := []Module{
		auth.NewModule(auth.NewAuthHandler(authSvc)),
		user.NewModule(user.NewUserHandler(userSvc)),
		client.NewModule(client.NewClientHandler(clientSvc)),
		jobseeker.NewModule(jobseeker.NewJobSeekerHandler(seekerSvc)),
		position.NewModule(position.NewPositionHandler(positionSvc)),
		timesheet.NewModule(timesheet.NewTimesheetHandler(timesheetSvc)),
		bulktimesheet.NewModule(bulktimesheet.NewBulkTimesheetHandler(bulkSvc)),
		invoice.NewModule(invoice.NewInvoiceHandler(invoiceSvc)),
	}

	// 7. Create Gin engine with custom middleware (not gin.Default()).
	gin.SetMode(cfg.Server.Mode)
	engine := gin.New()

	// In release mode, when no allowlist is configured, default to deny
	// cross-origin requests.
	corsConfig := resolveCORSConfig(cfg.Server.Mode, cfg.Server.CORS.AllowOrigins)

	engine.Use(
		middleware.Recovery(log.Logger),
		middleware.RequestIDWithConfig(middleware.RequestIDConfig{
			TrustUpstream: false,
		}),
		middleware.Logger(log.Logger),
		middleware.CORSWithConfig(corsConfig),
	)

	// 8. Register all routes.
	if err := RegisterRoutes(engine, &RouteDeps{
		Modules:     modules,
		DB:          db,
		JWTService:  jwtSvc,
		PublicPaths: cfg.Auth.PublicPaths,
	}); err != nil {
		return nil, fmt.Errorf("register routes: %w", err)
	}

	success = true
	return &App{
		engine:     engine,
		db:         db,
		logger:     log,
		jwtService: jwtSvc,
		cfg:        cfg,
	}, nil
}

func resolveCORSConfig(mode string, configuredAllowOrigins []string) middleware.CORSConfig {
	corsConfig := middleware.DefaultCORSConfig()

	if len(configuredAllowOrigins) > 0 {
		corsConfig.AllowOrigins = configuredAllowOrigins
		return corsConfig
	}

	if mode == gin.ReleaseMode {
		corsConfig.AllowOrigins = []string{}
	}

	return corsConfig
}

// Run starts the HTTP server and blocks until a shutdown signal is received.
// It performs graceful shutdown with a 5-second timeout, then closes the JWT
// service and the database connection.
func (a *App) Run() error {
	if a == nil {
		return errors.New("app is nil")
	}
	if a.cfg == nil {
		return errors.New("app config is nil")
	}
	if a.engine == nil {
		return errors.New("app engine is nil")
	}

	addr := fmt.Sprintf("%s:%d", a.cfg.Server.Host, a.cfg.Server.Port)
	srv := newHTTPServer(addr, a.engine)

	// Listen for SIGINT / SIGTERM.
	ctx, stop := notifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		a.logInfo("server started", slog.String("addr", addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	var runErr error

	select {
	case <-ctx.Done():
		a.logInfo("shutdown signal received")
	case err := <-errCh:
		runErr = fmt.Errorf("server error: %w", err)
	}

	if runErr == nil {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			a.logError("server shutdown error", slog.Any("error", err))
		}
	}

	if a.jwtService != nil {
		a.jwtService.Close()
	}

	if a.db != nil {
		if sqlDB, err := a.db.DB(); err == nil {
			if err := sqlDB.Close(); err != nil {
				a.logError("database close error", slog.Any("error", err))
			} else {
				a.logInfo("database connection closed")
			}
		}
	}

	if a.logger != nil {
		a.logger.Info("server stopped")
		if err := a.logger.Close(); err != nil {
			slog.Error("logger close error", slog.Any("error", err))
		}
	} else {
		slog.Info("server stopped")
	}

	return runErr
}

func (a *App) logInfo(msg string, args ...any) {
	if a.logger != nil {
		a.logger.Info(msg, args...)
		return
	}
	slog.Info(msg, args...)
}

func (a *App) logError(msg string, args ...any) {
	if a.logger != nil {
		a.logger.Error(msg, args...)
		return
	}
	slog.Error(msg, args...)
}
