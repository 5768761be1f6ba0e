// Package http wires the Echo server, middleware chain and route table.
package http

import (
	"context"
	"fmt"
	nethttp "net/http"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"go.uber.org/zap"

	handlers "github.com/Sadisms/stack-radar/internal/adapter/handler/http"
	"github.com/Sadisms/stack-radar/internal/config"
	"github.com/Sadisms/stack-radar/internal/infrastructure/database"
	"github.com/Sadisms/stack-radar/internal/middleware/auth"
	"github.com/Sadisms/stack-radar/internal/security"
	apperrors "github.com/Sadisms/stack-radar/pkg/errors"
	"github.com/Sadisms/stack-radar/pkg/logger"
)

// Server is the HTTP front of the application.
type Server struct {
	settings *config.Settings
	logger   *zap.Logger
	echo     *echo.Echo
	repos    *database.Repositories
	tokens   *security.TokenManager
}

// NewServer builds the Echo instance with the shared middleware chain.
func NewServer(settings *config.Settings, log *zap.Logger, repos *database.Repositories, tokens *security.TokenManager) *Server {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Debug = settings.App.Debug

	e.Validator = NewRequestValidator()
	e.HTTPErrorHandler = apperrors.NewEchoErrorHandler(log)

	e.Use(middleware.Recover())
	e.Use(logger.NewEchoRequestLogger(log))
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins:     settings.App.AllowedOrigins,
		AllowMethods:     []string{echo.GET, echo.POST, echo.PUT, echo.DELETE, echo.OPTIONS},
		AllowHeaders:     []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAuthorization},
		AllowCredentials: true,
	}))

	return &Server{
		settings: settings,
		logger:   log,
		echo:     e,
		repos:    repos,
		tokens:   tokens,
	}
}

// Start registers the routes and begins serving on the address.
func (s *Server) Start(host string, port int) error {
	s.setupRoutes()

	addr := fmt.Sprintf("%s:%d", host, port)
	s.logger.Info("starting HTTP server", zap.String("address", addr))
	return s.echo.Start(addr)
}

// Shutdown stops the server gracefully.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.echo.Shutdown(ctx)
}

// Echo exposes the underlying instance for tests.
func (s *Server) Echo() *echo.Echo {
	return s.echo
}

func (s *Server) setupRoutes() {
	s.echo.GET("/", func(c echo.Context) error {
		return c.JSON(nethttp.StatusOK, echo.Map{
			"name":    "Stack Radar API",
			"version": "1.0.0",
		})
	})
	s.echo.GET("/health", func(c echo.Context) error {
		return c.JSON(nethttp.StatusOK, echo.Map{"status": "healthy"})
	})

	authMW := auth.NewMiddleware(s.tokens, s.repos.User, s.logger)

	authHandler := handlers.NewAuthHandler(s.logger, s.repos.User, s.tokens)
	teamHandler := handlers.NewTeamHandler(s.logger, s.repos.Team, s.repos.User)
	projectHandler := handlers.NewProjectHandler(s.logger, s.repos.Project, s.repos.Team, s.repos.Technology)
	technologyHandler := handlers.NewTechnologyHandler(s.logger, s.repos.Technology)
	dashboardHandler := handlers.NewDashboardHandler(s.logger, s.repos.Dashboard)
	adminHandler := handlers.NewAdminHandler(s.logger, s.repos.Archive)

	v1 := s.echo.Group(s.settings.App.APIPrefix)

	v1.POST("/login", authHandler.Login)

	// User administration; reading a single user is open.
	admin := v1.Group("/users", authMW.Authenticate(), authMW.RequireAdmin())
	admin.GET("", authHandler.ListUsers)
	admin.POST("", authHandler.CreateUser)
	admin.PUT("/:user_id", authHandler.UpdateUser)
	admin.DELETE("/:user_id", authHandler.DeleteUser)
	v1.GET("/users/:user_id", authHandler.GetUser)

	teams := v1.Group("/teams")
	teams.GET("", teamHandler.ListTeams)
	teams.POST("", teamHandler.CreateTeam)
	teams.GET("/:team_id", teamHandler.GetTeam)
	teams.PUT("/:team_id", teamHandler.UpdateTeam)
	teams.DELETE("/:team_id", teamHandler.DeleteTeam)

	projects := v1.Group("/projects")
	projects.GET("", projectHandler.ListProjects)
	projects.POST("", projectHandler.CreateProject)
	projects.GET("/:project_id", projectHandler.GetProject)
	projects.PUT("/:project_id", projectHandler.UpdateProject)
	projects.DELETE("/:project_id", projectHandler.DeleteProject)
	projects.GET("/:project_id/technologies", projectHandler.ListProjectTechnologies)
	projects.POST("/:project_id/technologies", projectHandler.AddProjectTechnology)
	projects.DELETE("/:project_id/technologies/:technology_id", projectHandler.RemoveProjectTechnology)

	technologies := v1.Group("/technologies")
	technologies.GET("/categories", technologyHandler.ListCategories)
	technologies.POST("/categories", technologyHandler.CreateCategory)
	technologies.GET("/statuses", technologyHandler.ListStatuses)
	technologies.POST("/statuses", technologyHandler.CreateStatus)
	technologies.GET("/stats", technologyHandler.GetStats)
	technologies.GET("", technologyHandler.ListTechnologies)
	technologies.POST("", technologyHandler.CreateTechnology)
	technologies.GET("/:tech_id", technologyHandler.GetTechnology)
	technologies.PUT("/:tech_id", technologyHandler.UpdateTechnology)
	technologies.DELETE("/:tech_id", technologyHandler.DeleteTechnology)

	dashboard := v1.Group("/dashboard", authMW.Authenticate(), authMW.RequireActive())
	dashboard.GET("/stats", dashboardHandler.GetStats)

	archive := v1.Group("/admin/archive", authMW.Authenticate(), authMW.RequireAdmin())
	archive.GET("/preview", adminHandler.PreviewArchive)
	archive.POST("/execute", adminHandler.ExecuteArchive)
	archive.GET("/history", adminHandler.ArchiveHistory)
}
