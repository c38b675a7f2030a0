// Package server provides the HTTP server of QRForge.
// It wires storage, services and handlers together, configures routing and
// middleware, and manages the server lifecycle.
//
// Initialization follows a fixed order: storage → repositories → services →
// handlers → routes. Shutdown persists the session before releasing storage.
package server

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"github.com/yasinhessnawi1/QRForge_Backend/internal/config"
	"github.com/yasinhessnawi1/QRForge_Backend/internal/constants"
	"github.com/yasinhessnawi1/QRForge_Backend/internal/database"
	"github.com/yasinhessnawi1/QRForge_Backend/internal/events"
	"github.com/yasinhessnawi1/QRForge_Backend/internal/handlers"
	"github.com/yasinhessnawi1/QRForge_Backend/internal/platform"
	"github.com/yasinhessnawi1/QRForge_Backend/internal/render"
	"github.com/yasinhessnawi1/QRForge_Backend/internal/repository"
	"github.com/yasinhessnawi1/QRForge_Backend/internal/service"
	"github.com/yasinhessnawi1/QRForge_Backend/internal/utils/ratelimit"
	"github.com/yasinhessnawi1/QRForge_Backend/migrations"
)

// Handlers contains all HTTP handlers for the application.
type Handlers struct {
	// SettingsHandler manages the generator settings endpoints
	SettingsHandler *handlers.SettingsHandler

	// GeneratorHandler manages preview and export endpoints
	GeneratorHandler *handlers.GeneratorHandler

	// HistoryHandler manages history, gallery and session endpoints
	HistoryHandler *handlers.HistoryHandler

	// AuthHandler manages the simulated account and contact endpoints
	AuthHandler *handlers.AuthHandler

	// EventsHandler serves the websocket event stream
	EventsHandler *handlers.EventsHandler
}

// repositories holds the typed repositories on top of the key-value store.
type repositories struct {
	settingsRepo repository.SettingsRepository
	historyRepo  repository.HistoryRepository
	userRepo     repository.UserRepository
}

// services holds the business services used by the handlers.
type services struct {
	generatorService *service.GeneratorService
	authService      *service.AuthService
	contactService   *service.ContactService
}

// Server represents the API server for QRForge.
type Server struct {
	// Config contains application configuration
	Config *config.AppConfig

	// Store persists settings, history and the current user
	Store repository.KeyValueStore

	// Pool is the SQL connection pool; nil for the file and memory drivers
	Pool *database.Pool

	// router handles HTTP routing
	router chi.Router

	// Handlers contains all HTTP request handlers
	Handlers *Handlers

	repos    repositories
	services services

	// hub fans state changes out to websocket clients
	hub *events.Hub

	// limiters holds the per-client rate limiters; nil when rate limiting is off
	limiters *ratelimit.Store

	// httpServer is the underlying HTTP server
	httpServer *http.Server

	// ctx lives as long as the server and stops the hub and maintenance loop
	ctx    context.Context
	cancel context.CancelFunc
}

// NewServer creates a new server instance with all required components.
//
// Parameters:
//   - cfg: Application configuration
//
// Returns:
//   - A fully initialized Server instance ready to start
//   - An error if initialization of any component fails
func NewServer(cfg *config.AppConfig) (*Server, error) {
	ctx, cancel := context.WithCancel(context.Background())
	s := &Server{
		Config: cfg,
		ctx:    ctx,
		cancel: cancel,
	}

	if err := s.setupStorage(); err != nil {
		cancel()
		return nil, fmt.Errorf("failed to set up storage: %w", err)
	}

	s.setupRepositories()
	s.setupServices()
	s.setupHandlers()

	if cfg.RateLimit.Enabled {
		s.setupRateLimiting()
	}

	s.SetupRoutes()
	if cfg.App.IsDevelopment() {
		s.logRoutes()
	}

	s.httpServer = &http.Server{
		Addr:         cfg.Server.ServerAddress(),
		Handler:      s.router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  constants.DefaultIdleTimeout,
	}

	return s, nil
}

// logRoutes lists every registered route at debug level.
func (s *Server) logRoutes() {
	err := chi.Walk(s.router, func(method, route string, _ http.Handler, _ ...func(http.Handler) http.Handler) error {
		log.Debug().Str("method", method).Str("route", route).Msg("Route registered")
		return nil
	})
	if err != nil {
		log.Warn().Err(err).Msg("Failed to list routes")
	}
}

// setupStorage connects to the configured backend. SQL drivers get their
// schema migrated before the key-value store is opened on top.
func (s *Server) setupStorage() error {
	if s.Config.Storage.IsSQL() {
		pool, err := database.Connect(s.Config)
		if err != nil {
			return err
		}
		s.Pool = pool

		ctx, cancel := context.WithTimeout(s.ctx, constants.DBConnectionTimeout)
		defer cancel()
		if err := migrations.NewMigrator(pool).RunMigrations(ctx); err != nil {
			pool.Close()
			return fmt.Errorf("failed to run database migrations: %w", err)
		}
	}

	store, err := repository.NewKeyValueStore(&s.Config.Storage, s.Pool)
	if err != nil {
		if s.Pool != nil {
			s.Pool.Close()
		}
		return err
	}
	s.Store = store

	log.Info().Str("driver", s.Config.Storage.Driver).Msg("Storage ready")
	return nil
}

func (s *Server) setupRepositories() {
	s.repos = repositories{
		settingsRepo: repository.NewSettingsRepository(s.Store),
		historyRepo:  repository.NewHistoryRepository(s.Store),
		userRepo:     repository.NewUserRepository(s.Store),
	}
}

// setupServices creates the services and restores the persisted generator
// state. The event hub starts here so restored state is published.
func (s *Server) setupServices() {
	s.hub = events.NewHub(s.Config.CORS.AllowedOrigins)
	go s.hub.Run(s.ctx)

	s.services.generatorService = service.NewGeneratorService(service.GeneratorDeps{
		SettingsRepo: s.repos.settingsRepo,
		HistoryRepo:  s.repos.historyRepo,
		Renderer:     render.NewQRRenderer(s.Config.Generator.MaxSize),
		Clipboard:    platform.NewCommandClipboard(s.Config.Platform.ClipboardCommand),
		Sharer:       platform.NewCommandSharer(s.Config.Platform.ShareCommand),
		Publisher:    s.hub,
		TaskTimeout:  s.Config.Platform.TaskTimeout,
	})

	ctx, cancel := context.WithTimeout(s.ctx, constants.DBQueryTimeout)
	defer cancel()
	s.services.generatorService.Start(ctx)

	s.services.authService = service.NewAuthService(s.repos.userRepo)
	s.services.contactService = service.NewContactService(s.newMailer())
}

// newMailer returns the contact form mailer, or nil when delivery is not
// configured.
func (s *Server) newMailer() service.Mailer {
	if !s.Config.Contact.DeliveryEnabled() {
		log.Info().Msg("Contact delivery not configured, messages are only logged")
		return nil
	}
	mailer, err := service.NewEmailService(&s.Config.Contact)
	if err != nil {
		log.Warn().Err(err).Msg("Contact delivery disabled")
		return nil
	}
	return mailer
}

func (s *Server) setupHandlers() {
	s.Handlers = &Handlers{
		SettingsHandler:  handlers.NewSettingsHandler(s.services.generatorService),
		GeneratorHandler: handlers.NewGeneratorHandler(s.services.generatorService),
		HistoryHandler:   handlers.NewHistoryHandler(s.services.generatorService),
		AuthHandler:      handlers.NewAuthHandler(s.services.authService, s.services.contactService),
		EventsHandler:    handlers.NewEventsHandler(s.hub),
	}
}

// setupRateLimiting creates the limiter store with the configured API rate
// and the tighter export rate.
func (s *Server) setupRateLimiting() {
	s.limiters = ratelimit.NewStore(
		ratelimit.Rate{
			RequestsPerSecond: s.Config.RateLimit.RequestsPerSecond,
			Burst:             s.Config.RateLimit.Burst,
		},
		constants.RateLimitCleanupInterval,
		constants.RateLimitIdleTTL,
	)
	s.limiters.SetRate(constants.RateLimitCategoryExport, ratelimit.Rate{
		RequestsPerSecond: constants.ExportRequestsPerSecond,
		Burst:             constants.ExportRateLimitBurst,
	})
}

// Start starts the HTTP server and blocks until it fails or a shutdown
// signal (SIGINT, SIGTERM) arrives, then shuts down gracefully.
func (s *Server) Start() error {
	serverErrors := make(chan error, 1)

	go func() {
		log.Info().
			Str("address", s.Config.Server.ServerAddress()).
			Msg("Starting server")

		serverErrors <- s.httpServer.ListenAndServe()
	}()

	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(shutdown)

	s.SetupMaintenanceTasks()

	select {
	case err := <-serverErrors:
		s.release(context.Background())
		return fmt.Errorf("server error: %w", err)
	case sig := <-shutdown:
		log.Info().
			Str("signal", sig.String()).
			Msg("Shutdown signal received")

		ctx, cancel := context.WithTimeout(context.Background(), s.Config.Server.ShutdownTimeout)
		defer cancel()

		if err := s.Shutdown(ctx); err != nil {
			if closeErr := s.httpServer.Close(); closeErr != nil {
				log.Error().Err(closeErr).Msg("failed to close server")
			}
			return fmt.Errorf("could not stop server gracefully: %w", err)
		}
	}

	return nil
}

// Shutdown stops accepting requests, waits for in-flight ones, persists the
// session and closes storage.
//
// Parameters:
//   - ctx: Context with timeout for the shutdown operation
//
// Returns:
//   - An error if the HTTP server does not stop within the context timeout
func (s *Server) Shutdown(ctx context.Context) error {
	if err := s.httpServer.Shutdown(ctx); err != nil {
		s.release(ctx)
		return fmt.Errorf("server shutdown error: %w", err)
	}

	log.Info().Msg("Server stopped gracefully")
	s.release(ctx)
	return nil
}

// release persists the session and frees every background resource.
func (s *Server) release(ctx context.Context) {
	s.services.generatorService.SaveSession(ctx)

	s.cancel()
	if s.limiters != nil {
		s.limiters.Close()
	}

	if err := s.Store.Close(); err != nil {
		log.Error().Err(err).Msg("Failed to close storage")
		return
	}
	log.Info().Msg("Storage closed")
}

// SetupMaintenanceTasks starts the periodic storage health check. It stops
// when the server shuts down.
func (s *Server) SetupMaintenanceTasks() {
	ticker := time.NewTicker(constants.DBMaintenanceInterval)
	go func() {
		defer ticker.Stop()
		for {
			select {
			case <-s.ctx.Done():
				return
			case <-ticker.C:
				s.runMaintenance()
			}
		}
	}()
}

func (s *Server) runMaintenance() {
	ctx, cancel := context.WithTimeout(s.ctx, constants.DBHealthCheckTimeout)
	defer cancel()

	if err := s.Store.HealthCheck(ctx); err != nil {
		log.Error().Err(err).Msg("Storage health check failed")
	}

	event := log.Debug().Int("event_clients", s.hub.ClientCount())
	if s.limiters != nil {
		event = event.Int("rate_limiters", s.limiters.Len())
	}
	event.Msg("Maintenance completed")
}
