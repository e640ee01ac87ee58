package handler

import (
	"log/slog"
	"net/http"

	"saferoute/internal/delivery/api/response"
	"saferoute/internal/usecase"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

// NavigationHandlerParams holds dependencies for NavigationHandler, injected by Fx.
type NavigationHandlerParams struct {
	fx.In

	NavigationUC usecase.NavigationUsecase
	Logger       *slog.Logger
}

// NavigationHandler serves live navigation sessions
type NavigationHandler struct {
	navigationUC usecase.NavigationUsecase
	logger       *slog.Logger
}

// NewNavigationHandler is the constructor for NavigationHandler
func NewNavigationHandler(params NavigationHandlerParams) *NavigationHandler {
	return &NavigationHandler{
		navigationUC: params.NavigationUC,
		logger:       params.Logger,
	}
}

// StartSession starts a navigation session
func (h *NavigationHandler) StartSession(c echo.Context) error {
	var req StartNavigationRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid navigation input")
	}

	if err := c.Validate(&req); err != nil {
		return validationError(c, err)
	}

	input := &usecase.StartNavigationInput{
		Origin:      req.Origin.pointPtr(),
		Destination: req.Destination.pointPtr(),
	}
	if req.Route != nil {
		raw := req.Route.rawRoute()
		input.Route = &raw
	}

	session, err := h.navigationUC.StartSession(c.Request().Context(), input)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusCreated, session)
}

// UpdatePosition feeds one GPS fix to a session
func (h *NavigationHandler) UpdatePosition(c echo.Context) error {
	sessionID, ok := sessionIDParam(c)
	if !ok {
		return response.BadRequest(c, "INVALID_ID", "Invalid session ID")
	}

	var req PointRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid position input")
	}

	if err := c.Validate(&req); err != nil {
		return validationError(c, err)
	}

	update, err := h.navigationUC.UpdatePosition(c.Request().Context(), &usecase.UpdatePositionInput{
		SessionID: sessionID,
		Position:  req.point(),
		Source:    usecase.PositionSourceHTTP,
	})
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, update)
}

// ReportGPSError moves a session to ERROR
func (h *NavigationHandler) ReportGPSError(c echo.Context) error {
	sessionID, ok := sessionIDParam(c)
	if !ok {
		return response.BadRequest(c, "INVALID_ID", "Invalid session ID")
	}

	var req GPSErrorRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid GPS error input")
	}

	if err := c.Validate(&req); err != nil {
		return validationError(c, err)
	}

	session, err := h.navigationUC.ReportGPSError(c.Request().Context(), sessionID, req.Reason)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, session)
}

// RetryReroute resets the reroute attempts of a session and reroutes now
func (h *NavigationHandler) RetryReroute(c echo.Context) error {
	sessionID, ok := sessionIDParam(c)
	if !ok {
		return response.BadRequest(c, "INVALID_ID", "Invalid session ID")
	}

	if err := h.navigationUC.RetryReroute(c.Request().Context(), sessionID); err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusAccepted, map[string]string{"message": "Reroute requested"})
}

// GetSession returns the current state of a session
func (h *NavigationHandler) GetSession(c echo.Context) error {
	sessionID, ok := sessionIDParam(c)
	if !ok {
		return response.BadRequest(c, "INVALID_ID", "Invalid session ID")
	}

	session, err := h.navigationUC.GetSession(c.Request().Context(), sessionID)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, session)
}

// StopSession ends a session
func (h *NavigationHandler) StopSession(c echo.Context) error {
	sessionID, ok := sessionIDParam(c)
	if !ok {
		return response.BadRequest(c, "INVALID_ID", "Invalid session ID")
	}

	if err := h.navigationUC.StopSession(c.Request().Context(), sessionID); err != nil {
		return response.HandleAppError(c, err)
	}

	return c.NoContent(http.StatusNoContent)
}

// sessionIDParam returns the :id path parameter in canonical UUID form
func sessionIDParam(c echo.Context) (string, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return "", false
	}

	return id.String(), true
}
