package server

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/time/rate"

	httpHandlers "github.com/schoolday/core/internal/adapters/http"
	"github.com/schoolday/core/internal/adapters/repository"
	"github.com/schoolday/core/internal/application/services"
	"github.com/schoolday/core/internal/domain/entities"
	"github.com/schoolday/core/internal/infrastructure/clock"
	"github.com/schoolday/core/internal/infrastructure/config"
	"github.com/schoolday/core/internal/infrastructure/database"
	"github.com/schoolday/core/internal/infrastructure/logger"
	"github.com/schoolday/core/internal/infrastructure/notify"
)

// Server represents the HTTP server
type Server struct {
	echo          *echo.Echo
	config        *config.Config
	logger        *logger.Logger
	db            *database.DB
	threadService *services.ThreadService
	authService   *services.AuthService
	cleanupStop   chan struct{}
}

// CustomValidator wraps the validator
type CustomValidator struct {
	validator *validator.Validate
}

// Validate validates structs
func (cv *CustomValidator) Validate(i interface{}) error {
	return cv.validator.Struct(i)
}

// New creates a new server instance
func New(cfg *config.Config, db *database.DB, appLogger *logger.Logger) (*Server, error) {
	e := echo.New()

	e.Validator = &CustomValidator{validator: validator.New()}
	e.HideBanner = true
	e.HidePort = true
	e.HTTPErrorHandler = customErrorHandler(appLogger)

	sysClock := clock.NewSystemClock()
	scheduler := clock.NewTimerScheduler()
	notifier := notify.NewLogNotifier(appLogger)
	now := sysClock.Now()

	// Users and refresh tokens persist in Postgres; the dashboard data is
	// in-memory per process, seeded at startup.
	userRepo := repository.NewUserRepository(db.DB)
	authRepo := repository.NewAuthRepository(db.DB)
	scheduleSeed, err := repository.SeedSchedule()
	if err != nil {
		return nil, fmt.Errorf("failed to build schedule seed: %w", err)
	}
	scheduleRepo := repository.NewMemoryScheduleRepository(scheduleSeed)
	homeworkRepo := repository.NewMemoryHomeworkRepository(repository.SeedHomework(now))
	progressRepo := repository.NewMemoryProgressRepository(repository.SeedProgress())

	authService := services.NewAuthService(userRepo, authRepo, sysClock, cfg.JWT, appLogger)
	userService := services.NewUserService(userRepo, sysClock, appLogger)
	scheduleService := services.NewScheduleService(scheduleRepo, sysClock, appLogger)
	dashboardService := services.NewDashboardService(progressRepo, scheduleService, sysClock, appLogger)
	homeworkService := services.NewHomeworkService(homeworkRepo, sysClock, notifier, appLogger)
	threadService := services.NewThreadService(cfg.Thread, sysClock, scheduler, notifier, appLogger, repository.SeedMessages(now))

	authHandler := httpHandlers.NewAuthHandler(authService, appLogger)
	userHandler := httpHandlers.NewUserHandler(userService, appLogger)
	dashboardHandler := httpHandlers.NewDashboardHandler(dashboardService, scheduleService, appLogger)
	homeworkHandler := httpHandlers.NewHomeworkHandler(homeworkService, appLogger)
	threadHandler := httpHandlers.NewThreadHandler(threadService, appLogger)
	themeHandler := httpHandlers.NewThemeHandler(appLogger)

	server := &Server{
		echo:          e,
		config:        cfg,
		logger:        appLogger,
		db:            db,
		threadService: threadService,
		authService:   authService,
		cleanupStop:   make(chan struct{}),
	}

	server.setupMiddleware()
	server.setupRoutes(authHandler, userHandler, dashboardHandler, homeworkHandler, threadHandler, themeHandler, authService)

	if cfg.Metrics.Enabled {
		server.setupMetrics()
	}

	return server, nil
}

// setupMiddleware configures middleware
func (s *Server) setupMiddleware() {
	s.echo.Use(middleware.Recover())

	s.echo.Use(middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogURI:       true,
		LogStatus:    true,
		LogMethod:    true,
		LogLatency:   true,
		LogError:     true,
		LogRemoteIP:  true,
		LogUserAgent: true,
		LogValuesFunc: func(c echo.Context, values middleware.RequestLoggerValues) error {
			fields := []interface{}{
				"method", values.Method,
				"uri", values.URI,
				"status", values.Status,
				"latency_ms", float64(values.Latency.Nanoseconds()) / 1000000,
				"remote_ip", values.RemoteIP,
				"user_agent", values.UserAgent,
			}

			if values.Error != nil {
				fields = append(fields, "error", values.Error.Error())
				s.logger.Errorw("HTTP request failed", fields...)
			} else {
				s.logger.Infow("HTTP request", fields...)
			}

			return nil
		},
	}))

	s.echo.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins: strings.Split(s.config.Security.CORSAllowedOrigins, ","),
		AllowHeaders: []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept, echo.HeaderAuthorization},
		AllowMethods: []string{echo.GET, echo.HEAD, echo.PUT, echo.PATCH, echo.POST, echo.DELETE},
	}))

	s.echo.Use(middleware.RateLimiterWithConfig(middleware.RateLimiterConfig{
		Store: middleware.NewRateLimiterMemoryStoreWithConfig(
			middleware.RateLimiterMemoryStoreConfig{Rate: rate.Limit(s.config.Security.RateLimitRequests), Burst: s.config.Security.RateLimitRequests, ExpiresIn: s.config.Security.RateLimitWindow},
		),
		IdentifierExtractor: func(ctx echo.Context) (string, error) {
			return ctx.RealIP(), nil
		},
		ErrorHandler: func(c echo.Context, err error) error {
			return c.JSON(http.StatusForbidden, map[string]string{"message": "rate limit exceeded"})
		},
		DenyHandler: func(c echo.Context, identifier string, err error) error {
			return c.JSON(http.StatusTooManyRequests, map[string]string{"message": "rate limit exceeded"})
		},
	}))

	s.echo.Use(middleware.SecureWithConfig(middleware.SecureConfig{
		XSSProtection:         "1; mode=block",
		ContentTypeNosniff:    "nosniff",
		XFrameOptions:         "DENY",
		HSTSMaxAge:            31536000,
		ContentSecurityPolicy: "default-src 'self'",
	}))

	s.echo.Use(middleware.RequestID())

	s.echo.Use(middleware.TimeoutWithConfig(middleware.TimeoutConfig{
		Timeout: 30 * time.Second,
	}))
}

// setupRoutes configures all routes
func (s *Server) setupRoutes(authHandler *httpHandlers.AuthHandler, userHandler *httpHandlers.UserHandler, dashboardHandler *httpHandlers.DashboardHandler, homeworkHandler *httpHandlers.HomeworkHandler, threadHandler *httpHandlers.ThreadHandler, themeHandler *httpHandlers.ThemeHandler, authService *services.AuthService) {
	// Health check routes
	s.echo.GET("/health", s.healthCheck)
	s.echo.GET("/health/detailed", s.detailedHealthCheck)
	s.echo.GET("/ready", s.readinessCheck)

	// API v1 routes
	v1 := s.echo.Group("/api/v1")

	// Auth routes (public)
	authGroup := v1.Group("/auth")
	authGroup.POST("/register", authHandler.Register)
	authGroup.POST("/login", authHandler.Login)
	authGroup.POST("/refresh", authHandler.RefreshToken)
	authGroup.POST("/logout", authHandler.Logout, s.authMiddleware(authService))

	// Theme routes (public, presentation only)
	v1.GET("/theme/:mode", themeHandler.Palette)

	// User routes (authenticated)
	userGroup := v1.Group("/users", s.authMiddleware(authService))
	userGroup.GET("/me", userHandler.GetCurrentUser)
	userGroup.PUT("/me", userHandler.UpdateCurrentUser)
	userGroup.DELETE("/me", userHandler.DeleteCurrentUser)

	// Dashboard routes (authenticated)
	authed := v1.Group("", s.authMiddleware(authService))
	authed.GET("/dashboard", dashboardHandler.Overview)
	authed.GET("/schedule", dashboardHandler.Schedule)
	authed.GET("/homework", homeworkHandler.List)
	authed.GET("/homework/subjects", homeworkHandler.Subjects)
	authed.POST("/homework/:id/toggle", homeworkHandler.Toggle)
	authed.GET("/thread", threadHandler.GetThread)
	authed.POST("/thread/messages", threadHandler.SendMessage)
	authed.POST("/thread/replies", threadHandler.ReceiveMessage, s.requireRole(entities.UserRoleTeacher))
}

// setupMetrics configures Prometheus metrics
func (s *Server) setupMetrics() {
	registry := prometheus.NewRegistry()

	requestsTotal := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	requestDuration := prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path"},
	)

	registry.MustRegister(requestsTotal, requestDuration)

	s.echo.Use(func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()

			err := next(c)

			duration := time.Since(start)
			status := c.Response().Status

			requestsTotal.WithLabelValues(
				c.Request().Method,
				c.Path(),
				fmt.Sprintf("%d", status),
			).Inc()

			requestDuration.WithLabelValues(
				c.Request().Method,
				c.Path(),
			).Observe(duration.Seconds())

			return err
		}
	})

	metricsHandler := promhttp.HandlerFor(registry, promhttp.HandlerOpts{})
	s.echo.GET("/metrics", echo.WrapHandler(metricsHandler))
}

// Health check handlers
func (s *Server) healthCheck(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{
		"status": "ok",
		"time":   time.Now().UTC().Format(time.RFC3339),
	})
}

func (s *Server) detailedHealthCheck(c echo.Context) error {
	status := "ok"
	checks := make(map[string]interface{})

	if err := s.db.HealthCheck(); err != nil {
		status = "error"
		checks["database"] = map[string]interface{}{
			"status": "error",
			"error":  err.Error(),
		}
	} else {
		checks["database"] = map[string]interface{}{
			"status": "ok",
			"stats":  s.db.GetConnectionInfo(),
		}
	}

	response := map[string]interface{}{
		"status": status,
		"time":   time.Now().UTC().Format(time.RFC3339),
		"checks": checks,
		"version": map[string]string{
			"app": s.config.App.Version,
			"go":  "1.21",
		},
	}

	if status == "ok" {
		return c.JSON(http.StatusOK, response)
	}
	return c.JSON(http.StatusServiceUnavailable, response)
}

func (s *Server) readinessCheck(c echo.Context) error {
	if err := s.db.Ping(); err != nil {
		return c.JSON(http.StatusServiceUnavailable, map[string]string{
			"status": "not_ready",
			"reason": "database_not_ready",
		})
	}

	return c.JSON(http.StatusOK, map[string]string{
		"status": "ready",
		"time":   time.Now().UTC().Format(time.RFC3339),
	})
}

// Start starts the HTTP server
func (s *Server) Start(address string) error {
	go s.runTokenCleanup()
	s.logger.Info("Starting server", "address", address)
	return s.echo.Start(address)
}

// runTokenCleanup drops expired refresh tokens once at startup and then
// hourly until shutdown.
func (s *Server) runTokenCleanup() {
	if err := s.authService.CleanupExpiredTokens(context.Background()); err != nil {
		s.logger.Warn("Refresh token cleanup failed", "error", err)
	}

	ticker := time.NewTicker(time.Hour)
	defer ticker.Stop()

	for {
		select {
		case <-s.cleanupStop:
			return
		case <-ticker.C:
			if err := s.authService.CleanupExpiredTokens(context.Background()); err != nil {
				s.logger.Warn("Refresh token cleanup failed", "error", err)
			}
		}
	}
}

// Shutdown gracefully shuts down the server. Thread timers are cancelled
// before the listener closes so no escalation fires mid-teardown.
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("Shutting down server")
	if s.cleanupStop != nil {
		close(s.cleanupStop)
		s.cleanupStop = nil
	}
	if err := s.threadService.Close(); err != nil {
		s.logger.Warn("Failed to close thread", "error", err)
	}
	return s.echo.Shutdown(ctx)
}

// customErrorHandler handles HTTP errors
func customErrorHandler(logger *logger.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		var (
			code = http.StatusInternalServerError
			msg  interface{}
		)

		if he, ok := err.(*echo.HTTPError); ok {
			code = he.Code
			msg = he.Message
			if he.Internal != nil {
				err = fmt.Errorf("%v, %v", err, he.Internal)
			}
		} else if ve, ok := err.(validator.ValidationErrors); ok {
			code = http.StatusBadRequest
			msg = map[string]string{"message": "validation failed", "details": ve.Error()}
		} else {
			msg = mapDomainError(err, &code)
		}

		if code == http.StatusInternalServerError {
			logger.Error("Internal server error", "error", err, "path", c.Request().URL.Path)
		}

		if !c.Response().Committed {
			if c.Request().Method == echo.HEAD {
				err = c.NoContent(code)
			} else {
				err = c.JSON(code, msg)
			}
			if err != nil {
				logger.Error("Error sending response", "error", err)
			}
		}
	}
}
