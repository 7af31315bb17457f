// Package server implements the novaq HTTP API. Projects are stored one
// row per project with the calendar event array embedded as a JSON column;
// event writes replace the whole array, so concurrent writers are
// last-writer-wins.
package server

import (
	"database/sql"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	_ "github.com/lib/pq"
	_ "modernc.org/sqlite"

	"github.com/novaqhq/novaq/internal/logger"
)

// Server is the novaq API server
type Server struct {
	db     *sql.DB
	driver string
	echo   *echo.Echo
}

// New opens the database and prepares the router. A postgres:// (or
// postgresql://) URL selects the postgres driver; anything else is treated
// as a SQLite file path. Both backends share the same schema and queries:
// ids are generated client-side, timestamps are RFC3339 text, arrays are
// JSON text.
func New(dbURL string) (*Server, error) {
	driver := "sqlite"
	if strings.HasPrefix(dbURL, "postgres://") || strings.HasPrefix(dbURL, "postgresql://") {
		driver = "postgres"
	}

	db, err := sql.Open(driver, dbURL)
	if err != nil {
		return nil, err
	}

	if err := db.Ping(); err != nil {
		return nil, err
	}

	s := &Server{
		db:     db,
		driver: driver,
	}

	if err := s.migrate(); err != nil {
		return nil, err
	}

	s.setupEcho()

	return s, nil
}

func (s *Server) setupEcho() {
	e := echo.New()
	e.HideBanner = true

	// Custom logging middleware
	e.Use(func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()
			req := c.Request()

			err := next(c)

			res := c.Response()
			logger.Info("http request",
				logger.F("method", req.Method),
				logger.F("uri", req.RequestURI),
				logger.F("status", res.Status),
				logger.F("duration", time.Since(start).String()))

			return err
		}
	})

	e.Use(middleware.Recover())
	e.Use(middleware.RequestID())
	e.Use(middleware.CORS())

	// Health check
	e.GET("/health", s.handleHealth)

	// API v1
	api := e.Group("/api/v1")

	// Auth endpoints (public)
	api.POST("/register", s.handleRegister)
	api.POST("/login", s.handleLogin)
	api.POST("/magic-link", s.handleMagicLink)
	api.POST("/magic-link/redeem", s.handleMagicLinkRedeem)

	// Protected endpoints
	protected := api.Group("")
	protected.Use(s.authMiddleware)
	protected.GET("/me", s.handleMe)
	protected.POST("/logout", s.handleLogout)

	protected.GET("/projects", s.handleListProjects)
	protected.POST("/projects", s.handleCreateProject)
	protected.PUT("/projects/:id", s.handleUpdateProject)
	protected.DELETE("/projects/:id", s.handleDeleteProject)
	protected.PUT("/projects/:id/events", s.handleReplaceEvents)

	protected.GET("/notes", s.handleListNotes)
	protected.PUT("/notes/:id", s.handleSaveNote)
	protected.DELETE("/notes/:id", s.handleDeleteNote)

	protected.GET("/todos", s.handleListTodos)
	protected.PUT("/todos/:id", s.handleSaveTodo)
	protected.DELETE("/todos/:id", s.handleDeleteTodo)

	s.echo = e
}

// Close closes the database connection
func (s *Server) Close() error {
	return s.db.Close()
}

// Router returns the HTTP handler
func (s *Server) Router() http.Handler {
	return s.echo
}

// Start starts the server
func (s *Server) Start(addr string) error {
	return s.echo.Start(addr)
}

func (s *Server) handleHealth(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
}
