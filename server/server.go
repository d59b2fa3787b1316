// Package server is an in-memory development backend that serves the same
// REST surface the client consumes.
package server

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/existflow/plotline/internal/logger"
	"github.com/existflow/plotline/internal/model"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/crypto/bcrypt"
)

// Server is the development backend
type Server struct {
	cfg     Config
	state   *store
	metrics *metrics
	echo    *echo.Echo
}

// New creates a server and seeds the admin account
func New(cfg Config) (*Server, error) {
	if cfg.JWTSecret == "" {
		return nil, fmt.Errorf("jwt secret is required")
	}
	if cfg.TokenTTL <= 0 {
		cfg.TokenTTL = 24 * time.Hour
	}
	if cfg.BodyLimit == "" {
		cfg.BodyLimit = "20M"
	}

	s := &Server{
		cfg:     cfg,
		state:   newStore(),
		metrics: newMetrics(),
	}

	if err := s.seedAdmin(); err != nil {
		return nil, err
	}

	s.setupEcho()
	return s, nil
}

func (s *Server) seedAdmin() error {
	if s.cfg.AdminEmail == "" || s.cfg.AdminPassword == "" {
		return nil
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(s.cfg.AdminPassword), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash admin password: %w", err)
	}
	if _, err := s.state.addAccount(s.cfg.AdminName, s.cfg.AdminEmail, model.RoleAdmin, hash); err != nil {
		return fmt.Errorf("failed to seed admin: %w", err)
	}
	logger.Info("Admin account seeded", logger.F("email", s.cfg.AdminEmail))
	return nil
}

func (s *Server) setupEcho() {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	e.Use(requestLogger)
	e.Use(middleware.Recover())
	e.Use(middleware.RequestID())
	e.Use(middleware.CORS())
	e.Use(middleware.BodyLimit(s.cfg.BodyLimit))
	e.Use(s.metrics.middleware)

	e.GET("/health", s.handleHealth)
	e.GET("/metrics", echo.WrapHandler(promhttp.HandlerFor(s.metrics.registry, promhttp.HandlerOpts{})))

	// Public
	e.POST("/auth/register", s.handleRegister)
	e.POST("/auth/login", s.handleLogin)
	e.POST("/admin/auth/login", s.handleAdminLogin)
	e.GET("/plots", s.handleListPlots)
	e.POST("/contact", s.handleContact)
	e.GET("/uploads/:name", s.handleUpload)

	// Any authenticated user
	e.GET("/plots/:id", s.handleGetPlot, s.authMiddleware)

	// Admin only
	admin := e.Group("/admin", s.authMiddleware, adminOnly)
	admin.POST("/plots", s.handleCreatePlot)
	admin.PUT("/plots/:id", s.handleUpdatePlot)
	admin.DELETE("/plots/:id", s.handleDeletePlot)
	admin.GET("/auth/users", s.handleListUsers)
	admin.GET("/inquiries", s.handleListInquiries)

	s.echo = e
}

// Router returns the HTTP handler
func (s *Server) Router() http.Handler {
	return s.echo
}

// Start starts the server
func (s *Server) Start(addr string) error {
	return s.echo.Start(addr)
}

// Shutdown stops accepting requests and waits for in-flight ones
func (s *Server) Shutdown(ctx context.Context) error {
	return s.echo.Shutdown(ctx)
}

func (s *Server) handleHealth(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
}

// fail writes the error body the client reads its message from
func fail(c echo.Context, status int, msg string) error {
	return c.JSON(status, map[string]string{"message": msg})
}
