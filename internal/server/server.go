// Package server contains the HTTP handlers and routing for the classifieds API.
package server

import (
	"context"
	"errors"
	"fmt"
	"net"
	"time"

	_ "classifieds/docs" // swagger docs
	"classifieds/internal/auth"
	"classifieds/internal/bootstrap"
	"classifieds/internal/config"
	"classifieds/internal/middleware"
	"classifieds/internal/models"
	"classifieds/internal/observability"
	"classifieds/internal/repository"
	"classifieds/internal/service"

	"github.com/ansrivas/fiberprometheus/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/helmet"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/gofiber/swagger"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// Server holds all dependencies and provides handlers
type Server struct {
	config         *config.Config
	db             *gorm.DB
	redis          *redis.Client
	app            *fiber.App
	promMiddleware *fiberprometheus.FiberPrometheus
	userRepo       repository.UserRepository
	adRepo         repository.AdvertisementRepository
	authenticator  *auth.Authenticator
	authService    *service.AuthService
	userService    *service.UserService
	adService      *service.AdvertisementService
}

// NewServer connects the runtime dependencies named by cfg and builds a Server.
func NewServer(cfg *config.Config) (*Server, error) {
	db, redisClient, err := bootstrap.InitRuntime(cfg)
	if err != nil {
		return nil, err
	}
	return NewServerWithDeps(cfg, db, redisClient)
}

// NewServerWithDeps creates a Server using already-initialized dependencies.
// redisClient may be nil.
func NewServerWithDeps(cfg *config.Config, db *gorm.DB, redisClient *redis.Client) (*Server, error) {
	hasher, err := auth.NewHasher(cfg.BcryptCost)
	if err != nil {
		return nil, fmt.Errorf("password hasher: %w", err)
	}
	tokens, err := auth.NewTokenService(auth.TokenConfig{
		Secret:    cfg.SecretKey,
		Algorithm: cfg.Algorithm,
		TTL:       cfg.AccessTokenTTL(),
		Issuer:    observability.ServiceName,
	})
	if err != nil {
		return nil, fmt.Errorf("token service: %w", err)
	}

	userRepo := repository.NewUserRepository(db)
	adRepo := repository.NewAdvertisementRepository(db)

	return &Server{
		config:         cfg,
		db:             db,
		redis:          redisClient,
		promMiddleware: observability.HTTPMetrics(),
		userRepo:       userRepo,
		adRepo:         adRepo,
		authenticator:  auth.NewAuthenticator(tokens, userRepo),
		authService:    service.NewAuthService(userRepo, hasher, tokens),
		userService:    service.NewUserService(userRepo),
		adService:      service.NewAdvertisementService(adRepo, userRepo),
	}, nil
}

// NewApp builds a Fiber app with middleware and routes installed.
func (s *Server) NewApp() *fiber.App {
	app := fiber.New(fiber.Config{
		AppName:      "Classifieds API",
		BodyLimit:    1 * 1024 * 1024,
		ErrorHandler: errorHandler,
	})
	s.SetupMiddleware(app)
	s.SetupRoutes(app)
	return app
}

// errorHandler reports Fiber routing errors with their own status and
// everything else as an opaque 500.
func errorHandler(c *fiber.Ctx, err error) error {
	var fe *fiber.Error
	if errors.As(err, &fe) {
		return c.Status(fe.Code).JSON(models.ErrorResponse{Error: fe.Message})
	}
	middleware.Logger.ErrorContext(c.UserContext(), "unhandled error", "error", err)
	return models.RespondWithError(c, fiber.StatusInternalServerError, models.NewInternalError(err))
}

// SetupMiddleware configures middleware for the Fiber app
func (s *Server) SetupMiddleware(app *fiber.App) {
	app.Use(recover.New())
	app.Use(requestid.New())

	if s.config.TracingEnabled {
		app.Use(middleware.TracingMiddleware())
	}

	// Propagates request and trace IDs into the user context for logging.
	app.Use(middleware.ContextMiddleware())

	if s.promMiddleware != nil {
		app.Use(s.promMiddleware.Middleware)
	}

	app.Use(helmet.New())
	app.Use(middleware.StructuredLogger())

	origins := s.config.AllowedOrigins
	if origins == "" {
		origins = "http://localhost:5173,http://localhost:3000"
	}
	app.Use(cors.New(cors.Config{
		AllowOrigins:  origins,
		AllowHeaders:  "Origin, Content-Type, Accept, Authorization",
		ExposeHeaders: "WWW-Authenticate, X-Trace-ID",
		MaxAge:        86400,
	}))
}

// SetupRoutes configures all routes for the application
func (s *Server) SetupRoutes(app *fiber.App) {
	app.Get("/health/live", s.LivenessCheck)
	app.Get("/health/ready", s.ReadinessCheck)

	if s.promMiddleware != nil {
		s.promMiddleware.RegisterAt(app, "/metrics")
	}
	app.Get("/swagger/*", swagger.HandlerDefault)

	app.Post("/sign-up", s.SignUp)
	app.Post("/sign-in", s.SignIn)

	ads := app.Group("/advertisements")
	ads.Get("/", s.ListAdvertisements)
	// Before /:id so "search" is not parsed as an id.
	ads.Get("/search", s.SearchAdvertisements)
	ads.Get("/:id", s.GetAdvertisement)
	ads.Post("/", s.AuthRequired(), s.CreateAdvertisement)
	ads.Put("/:id", s.AuthRequired(), s.UpdateAdvertisement)
	ads.Delete("/:id", s.AuthRequired(), s.DeleteAdvertisement)

	users := app.Group("/users")
	users.Get("/me", s.AuthRequired(), s.GetMyProfile)
	users.Delete("/me", s.AuthRequired(), s.DeleteMyAccount)
	users.Get("/:id/advertisements", s.GetUserAdvertisements)
	users.Get("/:id", s.GetUserProfile)
}

// Run listens on the configured port until ctx is cancelled, then shuts down
// within shutdownTimeout. It returns only once shutdown has finished.
func (s *Server) Run(ctx context.Context, shutdownTimeout time.Duration) error {
	ln, err := net.Listen("tcp", ":"+s.config.Port)
	if err != nil {
		return fmt.Errorf("listen on port %s: %w", s.config.Port, err)
	}
	return s.Serve(ctx, ln, shutdownTimeout)
}

// Serve handles requests on ln until ctx is cancelled or the listener fails.
// fasthttp returns from Serve as soon as shutdown begins, so the result is
// only reported after Shutdown has drained requests and closed resources.
func (s *Server) Serve(ctx context.Context, ln net.Listener, shutdownTimeout time.Duration) error {
	s.app = s.NewApp()

	serveErr := make(chan error, 1)
	go func() {
		middleware.Logger.Info("server starting", "addr", ln.Addr().String())
		serveErr <- s.app.Listener(ln)
	}()

	var (
		listenErr error
		served    bool
	)
	select {
	case <-ctx.Done():
		middleware.Logger.Info("shutting down server")
	case listenErr = <-serveErr:
		served = true
	}

	shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), shutdownTimeout)
	defer cancel()
	shutdownErr := s.Shutdown(shutdownCtx)
	// Unblocks Accept if shutdown raced ahead of the listener being registered.
	_ = ln.Close()

	if !served {
		listenErr = <-serveErr
	}
	if listenErr != nil {
		listenErr = fmt.Errorf("http server: %w", listenErr)
	}
	return errors.Join(listenErr, shutdownErr)
}

// Shutdown gracefully shuts down the server
func (s *Server) Shutdown(ctx context.Context) error {
	var errs []error

	if s.app != nil {
		if err := s.app.ShutdownWithContext(ctx); err != nil {
			errs = append(errs, fmt.Errorf("http server: %w", err))
		}
	}

	if sqlDB, err := s.db.DB(); err == nil {
		if cerr := sqlDB.Close(); cerr != nil {
			errs = append(errs, fmt.Errorf("sql db: %w", cerr))
		}
	}

	if s.redis != nil {
		if rerr := s.redis.Close(); rerr != nil {
			errs = append(errs, fmt.Errorf("redis: %w", rerr))
		}
	}

	middleware.Logger.Info("server shutdown complete")
	return errors.Join(errs...)
}
