package app

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/http"
	"sync"
	"sync/atomic"
	"time"

	"contrib.go.opencensus.io/integrations/ocsql"
	"golang.org/x/sync/errgroup"

	"github.com/Notifuse/canvas/config"
	"github.com/Notifuse/canvas/internal/database"
	"github.com/Notifuse/canvas/internal/domain"
	httpHandler "github.com/Notifuse/canvas/internal/http"
	"github.com/Notifuse/canvas/internal/http/middleware"
	"github.com/Notifuse/canvas/internal/repository"
	"github.com/Notifuse/canvas/internal/service"
	"github.com/Notifuse/canvas/pkg/blocks"
	"github.com/Notifuse/canvas/pkg/logger"
	"github.com/Notifuse/canvas/pkg/ratelimiter"
	"github.com/Notifuse/canvas/pkg/tracing"
)

// AppInterface defines the interface for the App
type AppInterface interface {
	Initialize() error
	Start() error
	Shutdown(ctx context.Context) error

	// Getters for app components accessed in tests
	GetConfig() *config.Config
	GetLogger() logger.Logger
	GetMux() *http.ServeMux
	GetDB() *sql.DB
	GetEditorService() domain.EditorService

	WaitForServerStart(ctx context.Context) bool
	SetShutdownTimeout(timeout time.Duration)
	GetActiveRequestCount() int64
}

type App struct {
	config *config.Config
	logger logger.Logger
	db     *sql.DB

	// Repositories
	authRepo  domain.AuthRepository
	draftRepo domain.DraftRepository

	// Services
	authService   *service.AuthService
	editorService domain.EditorService
	draftService  *service.DraftService

	// rateLimiter holds per-user budgets for opening sessions and rendering
	rateLimiter *ratelimiter.RateLimiter

	// metricsHandler serves /metrics when a Prometheus exporter is enabled
	metricsHandler http.Handler

	// HTTP handlers
	mux    *http.ServeMux
	server *http.Server

	// Server synchronization
	serverMu      sync.RWMutex
	serverStarted chan struct{}

	// Graceful shutdown management
	shutdownCtx     context.Context
	shutdownCancel  context.CancelFunc
	activeRequests  int64
	requestWg       sync.WaitGroup
	shutdownTimeout time.Duration
}

// AppOption defines a functional option for configuring the App
type AppOption func(*App)

// WithMockDB configures the app to use a mock database
func WithMockDB(db *sql.DB) AppOption {
	return func(a *App) {
		a.db = db
	}
}

// WithLogger sets a custom logger
func WithLogger(logger logger.Logger) AppOption {
	return func(a *App) {
		a.logger = logger
	}
}

// NewApp creates a new application instance
func NewApp(cfg *config.Config, opts ...AppOption) AppInterface {
	shutdownCtx, shutdownCancel := context.WithCancel(context.Background())

	timeout := cfg.Server.ShutdownTimeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}

	app := &App{
		config:          cfg,
		logger:          logger.NewLoggerWithLevel(cfg.LogLevel),
		mux:             http.NewServeMux(),
		serverStarted:   make(chan struct{}),
		shutdownCtx:     shutdownCtx,
		shutdownCancel:  shutdownCancel,
		shutdownTimeout: timeout,
	}

	for _, opt := range opts {
		opt(app)
	}

	return app
}

// InitTracing initializes OpenCensus tracing and metrics exporters
func (a *App) InitTracing() error {
	handler, err := tracing.Init(&a.config.Tracing, a.logger)
	if err != nil {
		return fmt.Errorf("failed to initialize tracing: %w", err)
	}
	a.metricsHandler = handler
	return nil
}

// InitDB connects to the database and creates the schema. A database set
// with WithMockDB is used as is.
func (a *App) InitDB() error {
	if a.db == nil {
		cfg := &a.config.Database
		a.logger.Info(fmt.Sprintf("Connecting to database %s:%d, user %s, sslmode %s, password: %s, dbname: %s",
			cfg.Host, cfg.Port, cfg.User, cfg.SSLMode, database.MaskedPassword(cfg.Password), cfg.DBName))

		if err := database.EnsureSystemDatabaseExists(database.GetPostgresDSN(cfg), cfg.DBName); err != nil {
			a.logger.Error(err.Error())
			return fmt.Errorf("failed to ensure system database exists: %w", err)
		}

		db, err := database.Connect(cfg, a.config.Tracing.Enabled)
		if err != nil {
			return err
		}
		if a.config.Tracing.Enabled {
			a.logger.Info("Database driver wrapped with OpenCensus tracing")
		}
		a.db = db
	}

	if err := database.InitializeDatabase(a.db, a.config.RootEmail); err != nil {
		a.db.Close()
		return fmt.Errorf("failed to initialize database schema: %w", err)
	}
	return nil
}

// InitRepositories initializes all repositories
func (a *App) InitRepositories() error {
	a.authRepo = repository.NewSQLAuthRepository(a.db, a.logger)
	a.draftRepo = repository.NewDraftRepository(a.db)
	return nil
}

// InitServices initializes all services
func (a *App) InitServices() error {
	var err error

	a.authService, err = service.NewAuthService(service.AuthServiceConfig{
		Repository: a.authRepo,
		JWTSecret:  a.config.Security.JWTSecret,
		Logger:     a.logger,
	})
	if err != nil {
		return fmt.Errorf("failed to create auth service: %w", err)
	}

	catalog, err := blocks.DefaultCatalog()
	if err != nil {
		return fmt.Errorf("failed to load template catalog: %w", err)
	}

	a.editorService, err = service.NewEditorService(service.EditorServiceConfig{
		Drafts:      a.draftRepo,
		Catalog:     catalog,
		Logger:      a.logger,
		SessionTTL:  a.config.Editor.SessionTTL,
		MaxBlocks:   a.config.Editor.MaxBlocks,
		MaxSessions: a.config.Editor.MaxSessions,
	})
	if err != nil {
		return fmt.Errorf("failed to create editor service: %w", err)
	}

	a.draftService = service.NewDraftService(service.DraftServiceConfig{
		Repository: a.draftRepo,
		Logger:     a.logger,
		FromName:   a.config.Mail.FromName,
		FromEmail:  a.config.Mail.FromEmail,
	})

	a.rateLimiter = ratelimiter.NewRateLimiter()
	if n := a.config.Editor.OpensPerMinute; n > 0 {
		a.rateLimiter.SetPolicy(httpHandler.RateLimitOpen, n, n)
	}
	if n := a.config.Editor.RendersPerMinute; n > 0 {
		a.rateLimiter.SetPolicy(httpHandler.RateLimitRender, n, n/4)
	}
	return nil
}

// InitHandlers registers every route on a fresh mux
func (a *App) InitHandlers() error {
	// Create a new ServeMux to avoid route conflicts on restart
	a.mux = http.NewServeMux()

	authConfig := middleware.NewAuthMiddleware(a.authService, a.config.Auth.CookieName, a.config.Auth.SignInURL)

	editorHandler := httpHandler.NewEditorHandler(a.editorService, authConfig, a.rateLimiter, a.logger)
	draftHandler := httpHandler.NewDraftHandler(a.draftService, authConfig, a.logger)
	rootHandler := httpHandler.NewRootHandler(a.editorService, authConfig, a.logger, a.config.Version)

	editorHandler.RegisterRoutes(a.mux)
	draftHandler.RegisterRoutes(a.mux)
	rootHandler.RegisterRoutes(a.mux)

	if a.metricsHandler != nil {
		a.mux.Handle("/metrics", a.metricsHandler)
	}

	return nil
}

// Initialize sets up all components of the application
func (a *App) Initialize() error {
	a.logger.WithField("version", a.config.Version).Info("Starting Canvas application")

	if err := a.InitTracing(); err != nil {
		return err
	}

	if err := a.InitDB(); err != nil {
		return err
	}

	if err := a.InitRepositories(); err != nil {
		return err
	}

	if err := a.InitServices(); err != nil {
		return err
	}

	if err := a.InitHandlers(); err != nil {
		return err
	}

	a.logger.Info("Application successfully initialized")
	return nil
}

// Start serves HTTP and runs the session janitor until Shutdown is called
// or one of them fails
func (a *App) Start() error {
	var handler http.Handler = a.mux

	handler = a.gracefulShutdownMiddleware(handler)

	if a.config.Tracing.Enabled {
		handler = middleware.TracingMiddleware(handler)
		a.logger.Info("OpenCensus tracing middleware enabled")
	}

	addr := a.config.Addr()
	a.logger.WithField("address", addr).Info(fmt.Sprintf("Server starting on %s", addr))

	a.serverMu.Lock()
	if a.serverStarted != nil {
		select {
		case <-a.serverStarted:
		default:
			close(a.serverStarted)
		}
	}
	a.serverStarted = make(chan struct{})
	a.server = &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}
	server := a.server
	serverStarted := a.serverStarted
	a.serverMu.Unlock()

	close(serverStarted)

	g, ctx := errgroup.WithContext(a.shutdownCtx)

	g.Go(func() error {
		var err error
		if a.config.Server.SSL.Enabled {
			a.logger.WithField("cert_file", a.config.Server.SSL.CertFile).Info("SSL enabled")
			err = server.ListenAndServeTLS(a.config.Server.SSL.CertFile, a.config.Server.SSL.KeyFile)
		} else {
			err = server.ListenAndServe()
		}
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	})

	g.Go(func() error {
		a.runSessionJanitor(ctx)
		return nil
	})

	return g.Wait()
}

// runSessionJanitor closes idle editor sessions on every tick and forgets
// rate limit buckets of users who went quiet
func (a *App) runSessionJanitor(ctx context.Context) {
	interval := a.config.Editor.SweepInterval
	if interval <= 0 {
		interval = time.Minute
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if n := a.editorService.SweepExpired(ctx); n > 0 {
				a.logger.WithField("sessions", n).Info("Closed idle editor sessions")
			}
			if a.rateLimiter != nil {
				a.rateLimiter.Sweep(10 * time.Minute)
			}
		}
	}
}

// Shutdown gracefully shuts down the server
func (a *App) Shutdown(ctx context.Context) error {
	a.logger.Info("Starting graceful shutdown...")

	// Stops the janitor and rejects new requests
	a.shutdownCancel()

	a.serverMu.RLock()
	server := a.server
	a.serverMu.RUnlock()

	if server == nil {
		a.logger.Info("No server to shutdown")
		return a.cleanupResources()
	}

	a.logger.WithField("active_requests", a.getActiveRequestCount()).Info("Active requests at shutdown start")

	shutdownTimeout := a.shutdownTimeout
	if deadline, ok := ctx.Deadline(); ok {
		if remaining := time.Until(deadline); remaining < shutdownTimeout {
			shutdownTimeout = remaining - time.Second
			if shutdownTimeout < 0 {
				shutdownTimeout = 0
			}
		}
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	var shutdownErr error
	if err := server.Shutdown(shutdownCtx); err != nil {
		a.logger.WithField("error", err.Error()).Warn("HTTP server shutdown did not complete")
		shutdownErr = err
	}

	requestsDone := make(chan struct{})
	go func() {
		a.requestWg.Wait()
		close(requestsDone)
	}()

	select {
	case <-requestsDone:
		a.logger.Info("All requests completed")
	case <-shutdownCtx.Done():
		a.logger.WithField("active_requests", a.getActiveRequestCount()).Warn("Shutdown timeout reached, forcing shutdown")
	}

	if err := a.cleanupResources(); err != nil {
		a.logger.WithField("error", err.Error()).Error("Error during resource cleanup")
		if shutdownErr == nil {
			shutdownErr = err
		}
	}

	if shutdownErr != nil {
		a.logger.WithField("error", shutdownErr.Error()).Error("Graceful shutdown completed with errors")
	} else {
		a.logger.Info("Graceful shutdown completed successfully")
	}
	return shutdownErr
}

// cleanupResources closes the database connection
func (a *App) cleanupResources() error {
	if a.db == nil {
		return nil
	}

	if a.config.Tracing.Enabled {
		if err := ocsql.RecordStats(a.db, 5*time.Second); err != nil {
			a.logger.WithField("error", err.Error()).Error("Failed to record final database stats for tracing")
		}
	}

	a.logger.Info("Closing database connection")
	if err := a.db.Close(); err != nil {
		a.logger.WithField("error", err.Error()).Error("Error closing database connection")
		return err
	}
	return nil
}

// IsServerCreated safely checks if the server has been created
func (a *App) IsServerCreated() bool {
	a.serverMu.RLock()
	defer a.serverMu.RUnlock()
	return a.server != nil
}

// WaitForServerStart waits for the server to be created. It returns false
// when ctx expires first.
func (a *App) WaitForServerStart(ctx context.Context) bool {
	a.serverMu.RLock()
	started := a.serverStarted
	a.serverMu.RUnlock()

	if started == nil {
		<-ctx.Done()
		return false
	}

	select {
	case <-started:
		return a.IsServerCreated()
	case <-ctx.Done():
		return false
	}
}

func (a *App) GetConfig() *config.Config {
	return a.config
}

func (a *App) GetLogger() logger.Logger {
	return a.logger
}

func (a *App) GetMux() *http.ServeMux {
	return a.mux
}

func (a *App) GetDB() *sql.DB {
	return a.db
}

func (a *App) GetEditorService() domain.EditorService {
	return a.editorService
}

func (a *App) incrementActiveRequests() {
	atomic.AddInt64(&a.activeRequests, 1)
	a.requestWg.Add(1)
}

func (a *App) decrementActiveRequests() {
	atomic.AddInt64(&a.activeRequests, -1)
	a.requestWg.Done()
}

func (a *App) getActiveRequestCount() int64 {
	return atomic.LoadInt64(&a.activeRequests)
}

// GetActiveRequestCount returns the current number of active requests
func (a *App) GetActiveRequestCount() int64 {
	return a.getActiveRequestCount()
}

// SetShutdownTimeout sets the timeout for graceful shutdown
func (a *App) SetShutdownTimeout(timeout time.Duration) {
	a.shutdownTimeout = timeout
	a.logger.WithField("shutdown_timeout", timeout.String()).Info("Shutdown timeout configured")
}

func (a *App) isShuttingDown() bool {
	select {
	case <-a.shutdownCtx.Done():
		return true
	default:
		return false
	}
}

// gracefulShutdownMiddleware tracks active requests and rejects new ones
// once shutdown has begun
func (a *App) gracefulShutdownMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if a.isShuttingDown() {
			http.Error(w, "Server is shutting down", http.StatusServiceUnavailable)
			return
		}

		a.incrementActiveRequests()
		defer a.decrementActiveRequests()

		next.ServeHTTP(w, r)
	})
}

// Ensure App implements AppInterface
var _ AppInterface = (*App)(nil)
