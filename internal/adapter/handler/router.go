package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	echoSwagger "github.com/swaggo/echo-swagger"

	"github.com/johnquangdev/meeting-minutes/internal/domain/entities"
	"github.com/johnquangdev/meeting-minutes/internal/infrastructure/http/middleware"
	"github.com/johnquangdev/meeting-minutes/internal/usecase/auth"
	"github.com/johnquangdev/meeting-minutes/pkg/config"
)

// HealthCheck is one dependency probed by GET /health
type HealthCheck struct {
	Name string
	Ping func(ctx context.Context) error
}

// Handlers groups the HTTP handlers mounted by the router
type Handlers struct {
	Auth         *Auth
	Organization *Organization
	Meeting      *Meeting
	Minutes      *Minutes
}

// Router holds all handlers
type Router struct {
	cfg      *config.Config
	handlers Handlers
	authMW   echo.MiddlewareFunc
	checks   []HealthCheck
}

// NewRouter creates a new router with all handlers
func NewRouter(cfg *config.Config, authService auth.Service, handlers Handlers, checks ...HealthCheck) *Router {
	return &Router{
		cfg:      cfg,
		handlers: handlers,
		authMW:   middleware.EchoAuth(authService),
		checks:   checks,
	}
}

// Setup configures all application routes
func (rt *Router) Setup(e *echo.Echo) {
	e.GET("/health", rt.healthCheck)
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	v1 := e.Group("/v1")

	rt.setupAuthRoutes(v1)
	rt.setupOrganizationRoutes(v1)
	rt.setupMeetingRoutes(v1)
	rt.setupMinutesRoutes(v1)
}

func (rt *Router) setupAuthRoutes(g *echo.Group) {
	h := rt.handlers.Auth
	if h == nil {
		return
	}
	authGroup := g.Group("/auth")
	authGroup.POST("/login", h.Login)
	authGroup.POST("/refresh", h.RefreshToken)
	authGroup.POST("/logout", h.Logout)
	authGroup.GET("/me", h.Me, rt.authMW)
}

func (rt *Router) setupOrganizationRoutes(g *echo.Group) {
	h := rt.handlers.Organization
	if h == nil {
		return
	}
	org := g.Group("/organization", rt.authMW)
	writers := middleware.RequireRole(entities.RoleAdmin, entities.RoleManager)

	org.GET("/board", h.Board)

	org.GET("/departments", h.ListDepartments)
	org.GET("/departments/:id", h.GetDepartment)
	org.POST("/departments", h.CreateDepartment, writers)
	org.PUT("/departments/:id", h.UpdateDepartment, writers)
	org.DELETE("/departments/:id", h.DeleteDepartment, writers)

	org.GET("/teams", h.ListTeams)
	org.GET("/teams/:id", h.GetTeam)
	org.POST("/teams", h.CreateTeam, writers)
	org.PUT("/teams/:id", h.UpdateTeam, writers)
	org.DELETE("/teams/:id", h.DeleteTeam, writers)
}

func (rt *Router) setupMeetingRoutes(g *echo.Group) {
	h := rt.handlers.Meeting
	if h == nil {
		return
	}
	meetings := g.Group("/meetings", rt.authMW)
	managers := middleware.RequireRole(entities.RoleAdmin, entities.RoleManager)

	meetings.GET("", h.List)
	meetings.POST("", h.Create)
	meetings.GET("/:id", h.Get)
	meetings.PUT("/:id", h.Update)
	meetings.DELETE("/:id", h.Delete, managers)
	meetings.POST("/:id/archive", h.Archive, managers)
	meetings.POST("/:id/restore", h.Restore, managers)
}

func (rt *Router) setupMinutesRoutes(g *echo.Group) {
	h := rt.handlers.Minutes
	if h == nil {
		return
	}
	m := g.Group("/minutes", rt.authMW)

	m.GET("", h.List)
	m.POST("", h.Create)
	m.POST("/ai", h.CreateFromText)
	m.POST("/format", h.Format)
	m.PATCH("/items/:itemId", h.PatchItem)
	m.GET("/:id", h.Get)
	m.PUT("/:id", h.Update)
	m.DELETE("/:id", h.Delete)
	m.GET("/:id/transcript", h.Transcript)
}

// healthCheck returns health status and the reachability of each dependency
func (rt *Router) healthCheck(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 3*time.Second)
	defer cancel()

	status := "ok"
	code := http.StatusOK
	deps := make(map[string]string, len(rt.checks))
	for _, check := range rt.checks {
		if err := check.Ping(ctx); err != nil {
			deps[check.Name] = "unreachable: " + err.Error()
			status = "degraded"
			code = http.StatusServiceUnavailable
			continue
		}
		deps[check.Name] = "ok"
	}

	environment := ""
	if rt.cfg != nil {
		environment = rt.cfg.Server.Environment
	}
	return c.JSON(code, map[string]interface{}{
		"status":       status,
		"environment":  environment,
		"dependencies": deps,
		"time":         time.Now().Format(time.RFC3339),
	})
}
