package handler

import (
	"log/slog"
	"net/http"

	"saferoute/internal/delivery/api/response"
	"saferoute/internal/delivery/api/validator"
	"saferoute/internal/domain/entity"
	domainerrors "saferoute/internal/domain/errors"
	"saferoute/internal/usecase"

	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

// RouteHandlerParams holds dependencies for RouteHandler, injected by Fx.
type RouteHandlerParams struct {
	fx.In

	SafeRouteUC usecase.SafeRouteUsecase
	Logger      *slog.Logger
}

// RouteHandler serves route scoring and planning
type RouteHandler struct {
	safeRouteUC usecase.SafeRouteUsecase
	logger      *slog.Logger
}

// NewRouteHandler is the constructor for RouteHandler
func NewRouteHandler(params RouteHandlerParams) *RouteHandler {
	return &RouteHandler{
		safeRouteUC: params.SafeRouteUC,
		logger:      params.Logger,
	}
}

// ScoreRoutes scores caller-supplied routes against caller-supplied
// incidents and POIs and returns them safest first
func (h *RouteHandler) ScoreRoutes(c echo.Context) error {
	var req ScoreRoutesRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid route scoring input")
	}
	if format := c.QueryParam("format"); format != "" {
		req.Format = format
	}

	if err := c.Validate(&req); err != nil {
		return validationError(c, err)
	}

	raws := make([]entity.RawRoute, 0, len(req.Routes))
	for i := range req.Routes {
		raws = append(raws, req.Routes[i].rawRoute())
	}

	routes, err := h.safeRouteUC.ScoreRoutes(c.Request().Context(), &usecase.ScoreRoutesInput{
		Routes:    raws,
		Incidents: incidents(req.Incidents),
		POIs:      pois(req.POIs),
	})
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return writeRoutes(c, req.Format, routes)
}

// PlanSafeRoutes routes from origin to destination and returns the
// alternatives safest first
func (h *RouteHandler) PlanSafeRoutes(c echo.Context) error {
	var req PlanSafeRoutesRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid route planning input")
	}
	if format := c.QueryParam("format"); format != "" {
		req.Format = format
	}

	if err := c.Validate(&req); err != nil {
		return validationError(c, err)
	}

	routes, err := h.safeRouteUC.PlanSafeRoutes(c.Request().Context(), &usecase.PlanSafeRoutesInput{
		Origin:      req.Origin.point(),
		Destination: req.Destination.point(),
	})
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return writeRoutes(c, req.Format, routes)
}

func writeRoutes(c echo.Context, format string, routes []entity.Route) error {
	if format == FormatGeoJSON {
		return response.GeoJSON(c, http.StatusOK, RoutesFeatureCollection(routes))
	}

	return response.Success(c, http.StatusOK, routes)
}

func validationError(c echo.Context, err error) error {
	return response.BadRequestWithDetails(c,
		domainerrors.ErrValidationFailed.ErrorCode(),
		domainerrors.ErrValidationFailed.Message(),
		validator.Details(err),
	)
}

// HealthCheck reports liveness
func HealthCheck(c echo.Context) error {
	return response.Success(c, http.StatusOK, map[string]string{"status": "ok"})
}
