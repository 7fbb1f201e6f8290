// Package router registers the API routes.
package router

import (
	"quill/config"
	"quill/internal/delivery/api/middleware"
	"quill/internal/delivery/api/router/handler"
	"quill/internal/domain/entity"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/fx"
)

type RouterParams struct {
	fx.In

	AuthHandler    *handler.AuthHandler
	UserHandler    *handler.UserHandler
	BlogHandler    *handler.BlogHandler
	HealthHandler  *handler.HealthHandler
	AuthMiddleware *middleware.AuthMiddleware
	Config         *config.Config
}

// router holds all the handlers that need to be registered.
type router struct {
	authHandler    *handler.AuthHandler
	userHandler    *handler.UserHandler
	blogHandler    *handler.BlogHandler
	healthHandler  *handler.HealthHandler
	authMiddleware *middleware.AuthMiddleware
	config         *config.Config
}

// NewRouter is the constructor for the Router.
func NewRouter(params RouterParams) *router {
	return &router{
		authHandler:    params.AuthHandler,
		userHandler:    params.UserHandler,
		blogHandler:    params.BlogHandler,
		healthHandler:  params.HealthHandler,
		authMiddleware: params.AuthMiddleware,
		config:         params.Config,
	}
}

// RegisterRoutes sets up all the API routes for the application.
func (r *router) RegisterRoutes(e *echo.Echo) {
	e.GET("/health", r.healthHandler.Liveness)
	e.GET("/health/ready", r.healthHandler.Readiness)

	authenticated := r.authMiddleware.Authenticate

	usersGroup := e.Group("/users")
	{
		usersGroup.POST("/register", r.authHandler.Register)
		usersGroup.POST("/login", r.authHandler.Login)

		usersGroup.GET("", r.userHandler.ListAll, authenticated, r.authMiddleware.RequireRole(entity.RoleAdmin))
		usersGroup.GET("/:id", r.userHandler.Get, authenticated)
		usersGroup.PATCH("/:id", r.userHandler.Update, authenticated)
		usersGroup.DELETE("/:id", r.userHandler.Delete, authenticated)
	}

	blogsGroup := e.Group("/blogs")
	{
		blogsGroup.GET("", r.blogHandler.List)
		blogsGroup.POST("", r.blogHandler.Create, authenticated)
		blogsGroup.GET("/my-blogs", r.blogHandler.ListMine, authenticated)
		blogsGroup.GET("/:id", r.blogHandler.Get, authenticated)
		blogsGroup.PATCH("/:id", r.blogHandler.Update, authenticated)
		blogsGroup.DELETE("/:id", r.blogHandler.Remove, authenticated)
	}
}

// RegisterMetricsRoute exposes the Prometheus scrape endpoint when enabled.
func (r *router) RegisterMetricsRoute(e *echo.Echo) {
	if r.config.Metrics == nil || !r.config.Metrics.Enabled {
		return
	}

	e.GET(r.config.Metrics.Path, echo.WrapHandler(promhttp.Handler()))
}
