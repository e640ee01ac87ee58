// Package router contains routing and server setup for the HTTP delivery.
package router

import (
	"saferoute/internal/delivery/api/router/handler"
	"saferoute/internal/infra/metrics"

	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

type RouterParams struct {
	fx.In

	RouteHandler      *handler.RouteHandler
	NavigationHandler *handler.NavigationHandler
	Metrics           *metrics.Metrics `optional:"true"`
}

// router holds all the handlers that need to be registered.
type router struct {
	routeHandler      *handler.RouteHandler
	navigationHandler *handler.NavigationHandler
	metrics           *metrics.Metrics
}

// NewRouter is the constructor for the Router.
// Fx will inject the required handlers here.
func NewRouter(params RouterParams) *router {
	return &router{
		routeHandler:      params.RouteHandler,
		navigationHandler: params.NavigationHandler,
		metrics:           params.Metrics,
	}
}

// RegisterRoutes sets up all the API routes for the application.
func (r *router) RegisterRoutes(e *echo.Echo) {
	e.GET("/health", handler.HealthCheck)
	e.GET("/metrics", echo.WrapHandler(r.metrics.Handler()))

	routesGroup := e.Group("/routes")
	{
		routesGroup.POST("/score", r.routeHandler.ScoreRoutes)
		routesGroup.POST("/safe", r.routeHandler.PlanSafeRoutes)
	}

	sessionsGroup := e.Group("/navigation/sessions")
	{
		sessionsGroup.POST("", r.navigationHandler.StartSession)
		sessionsGroup.GET("/:id", r.navigationHandler.GetSession)
		sessionsGroup.DELETE("/:id", r.navigationHandler.StopSession)
		sessionsGroup.POST("/:id/position", r.navigationHandler.UpdatePosition)
		sessionsGroup.POST("/:id/error", r.navigationHandler.ReportGPSError)
		sessionsGroup.POST("/:id/reroute", r.navigationHandler.RetryReroute)
	}
}
