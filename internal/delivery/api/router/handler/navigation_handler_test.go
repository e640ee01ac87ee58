package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"testing"
	"time"

	"saferoute/internal/domain/entity"
	domainerrors "saferoute/internal/domain/errors"
	"saferoute/internal/errors"
	"saferoute/internal/geo"
	usecasemocks "saferoute/internal/mocks/usecase"
	"saferoute/internal/navigation"
	"saferoute/internal/usecase"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newNavigationTestEcho(t *testing.T) (*echo.Echo, *usecasemocks.MockNavigationUsecase) {
	uc := usecasemocks.NewMockNavigationUsecase(t)
	h := NewNavigationHandler(NavigationHandlerParams{NavigationUC: uc, Logger: slog.Default()})

	return newTestEcho(nil, h), uc
}

func testSession(state entity.NavigationState) *usecase.NavigationSession {
	return &usecase.NavigationSession{
		ID: testSessionID,
		Snapshot: navigation.Snapshot{
			Update:      navigation.Update{State: state},
			Destination: geo.Point{Lat: 0.001, Lon: 0},
		},
		StartedAt: time.Date(2026, 10, 19, 12, 0, 0, 0, time.UTC),
	}
}

func TestNavigationHandler_StartSession(t *testing.T) {
	tests := []struct {
		name    string
		body    string
		matcher func(in *usecase.StartNavigationInput) bool
	}{
		{
			name: "caller route",
			body: `{"route":{"distance":111,"geometry":[[0,0],[0.001,0]]}}`,
			matcher: func(in *usecase.StartNavigationInput) bool {
				return in.Route != nil && in.Origin == nil && in.Destination == nil &&
					string(in.Route.Geometry.(json.RawMessage)) == "[[0,0],[0.001,0]]"
			},
		},
		{
			name: "planned route",
			body: `{"origin":{"lat":0,"lon":0},"destination":{"lat":0.001,"lon":0}}`,
			matcher: func(in *usecase.StartNavigationInput) bool {
				return in.Route == nil &&
					in.Origin != nil && *in.Origin == geo.Point{} &&
					in.Destination != nil && *in.Destination == geo.Point{Lat: 0.001}
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e, uc := newNavigationTestEcho(t)
			uc.EXPECT().StartSession(mock.Anything, mock.MatchedBy(tt.matcher)).
				Return(testSession(entity.NavigationIdle), nil)

			rec := doRequest(e, http.MethodPost, "/navigation/sessions", tt.body)
			require.Equal(t, http.StatusCreated, rec.Code)

			var session struct {
				ID    string `json:"id"`
				State string `json:"state"`
			}
			require.NoError(t, json.Unmarshal(decodeEnvelope(t, rec).Data, &session))
			assert.Equal(t, testSessionID, session.ID)
			assert.Equal(t, "IDLE", session.State)
		})
	}
}

func TestNavigationHandler_StartSession_Errors(t *testing.T) {
	tests := []struct {
		name       string
		body       string
		setupMock  func(uc *usecasemocks.MockNavigationUsecase)
		wantStatus int
		wantCode   string
	}{
		{
			name:       "destination out of range",
			body:       `{"origin":{"lat":0,"lon":0},"destination":{"lat":100,"lon":0}}`,
			wantStatus: http.StatusBadRequest,
			wantCode:   "VALIDATION_FAILED",
		},
		{
			name:       "route without geometry",
			body:       `{"route":{"distance":5}}`,
			wantStatus: http.StatusBadRequest,
			wantCode:   "VALIDATION_FAILED",
		},
		{
			name: "nothing to navigate",
			body: `{}`,
			setupMock: func(uc *usecasemocks.MockNavigationUsecase) {
				uc.EXPECT().StartSession(mock.Anything, mock.Anything).
					Return(nil, errors.Wrap(domainerrors.ErrValidationFailed, "either route or origin and destination are required"))
			},
			wantStatus: http.StatusBadRequest,
			wantCode:   "VALIDATION_FAILED",
		},
		{
			name: "unusable route",
			body: `{"route":{"geometry":"garbage"}}`,
			setupMock: func(uc *usecasemocks.MockNavigationUsecase) {
				uc.EXPECT().StartSession(mock.Anything, mock.Anything).
					Return(nil, errors.Wrap(domainerrors.ErrInvalidGeometry, "route needs at least two valid points"))
			},
			wantStatus: http.StatusBadRequest,
			wantCode:   "INVALID_GEOMETRY",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e, uc := newNavigationTestEcho(t)
			if tt.setupMock != nil {
				tt.setupMock(uc)
			}

			rec := doRequest(e, http.MethodPost, "/navigation/sessions", tt.body)
			assert.Equal(t, tt.wantStatus, rec.Code)

			env := decodeEnvelope(t, rec)
			require.NotNil(t, env.Error)
			assert.Equal(t, tt.wantCode, env.Error.Code)
		})
	}
}

func TestNavigationHandler_UpdatePosition(t *testing.T) {
	e, uc := newNavigationTestEcho(t)

	uc.EXPECT().
		UpdatePosition(mock.Anything, &usecase.UpdatePositionInput{
			SessionID: testSessionID,
			Position:  geo.Point{Lat: 0.0005, Lon: 0.00001},
			Source:    usecase.PositionSourceHTTP,
		}).
		Return(&navigation.Update{
			State:             entity.NavigationNavigating,
			DistanceRemaining: 55.6,
			Progress:          0.5,
		}, nil)

	// Upper-case IDs are canonicalised before reaching the use case.
	path := "/navigation/sessions/7B0F9A56-3C1E-4D2A-9F0E-2A6C5D8E1B34/position"
	rec := doRequest(e, http.MethodPost, path, `{"lat":0.0005,"lon":0.00001}`)
	require.Equal(t, http.StatusOK, rec.Code)

	var update struct {
		State             string  `json:"state"`
		DistanceRemaining float64 `json:"distanceRemaining"`
		Progress          float64 `json:"progress"`
		Deviated          bool    `json:"deviated"`
	}
	require.NoError(t, json.Unmarshal(decodeEnvelope(t, rec).Data, &update))
	assert.Equal(t, "NAVIGATING", update.State)
	assert.Equal(t, 0.5, update.Progress)
	assert.Equal(t, 55.6, update.DistanceRemaining)
	assert.False(t, update.Deviated)
}

func TestNavigationHandler_UpdatePosition_Errors(t *testing.T) {
	tests := []struct {
		name       string
		id         string
		body       string
		setupMock  func(uc *usecasemocks.MockNavigationUsecase)
		wantStatus int
		wantCode   string
	}{
		{
			name:       "invalid session id",
			id:         "not-a-uuid",
			body:       `{"lat":0,"lon":0}`,
			wantStatus: http.StatusBadRequest,
			wantCode:   "INVALID_ID",
		},
		{
			name:       "missing longitude",
			id:         testSessionID,
			body:       `{"lat":0}`,
			wantStatus: http.StatusBadRequest,
			wantCode:   "VALIDATION_FAILED",
		},
		{
			name: "unknown session",
			id:   testSessionID,
			body: `{"lat":0,"lon":0}`,
			setupMock: func(uc *usecasemocks.MockNavigationUsecase) {
				uc.EXPECT().UpdatePosition(mock.Anything, mock.Anything).
					Return(nil, errors.Wrap(domainerrors.ErrSessionNotFound, testSessionID))
			},
			wantStatus: http.StatusNotFound,
			wantCode:   "SESSION_NOT_FOUND",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e, uc := newNavigationTestEcho(t)
			if tt.setupMock != nil {
				tt.setupMock(uc)
			}

			rec := doRequest(e, http.MethodPost, "/navigation/sessions/"+tt.id+"/position", tt.body)
			assert.Equal(t, tt.wantStatus, rec.Code)

			env := decodeEnvelope(t, rec)
			require.NotNil(t, env.Error)
			assert.Equal(t, tt.wantCode, env.Error.Code)
		})
	}
}

func TestNavigationHandler_ReportGPSError(t *testing.T) {
	tests := []struct {
		name       string
		body       string
		setupMock  func(uc *usecasemocks.MockNavigationUsecase)
		wantStatus int
		wantCode   string
	}{
		{
			name: "timeout",
			body: `{"reason":"timeout"}`,
			setupMock: func(uc *usecasemocks.MockNavigationUsecase) {
				session := testSession(entity.NavigationError)
				session.ErrorCode = domainerrors.ErrGPSTimeout.ErrorCode()
				uc.EXPECT().ReportGPSError(mock.Anything, testSessionID, "timeout").Return(session, nil)
			},
			wantStatus: http.StatusOK,
		},
		{
			name:       "missing reason",
			body:       `{}`,
			wantStatus: http.StatusBadRequest,
			wantCode:   "VALIDATION_FAILED",
		},
		{
			name: "unknown reason",
			body: `{"reason":"solar_flare"}`,
			setupMock: func(uc *usecasemocks.MockNavigationUsecase) {
				uc.EXPECT().ReportGPSError(mock.Anything, testSessionID, "solar_flare").
					Return(nil, errors.Wrap(domainerrors.ErrUnknownGPSReason, "solar_flare"))
			},
			wantStatus: domainerrors.ErrUnknownGPSReason.HTTPCode(),
			wantCode:   "UNKNOWN_GPS_REASON",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e, uc := newNavigationTestEcho(t)
			if tt.setupMock != nil {
				tt.setupMock(uc)
			}

			rec := doRequest(e, http.MethodPost, "/navigation/sessions/"+testSessionID+"/error", tt.body)
			assert.Equal(t, tt.wantStatus, rec.Code)

			env := decodeEnvelope(t, rec)
			if tt.wantCode == "" {
				var session struct {
					State     string `json:"state"`
					ErrorCode string `json:"errorCode"`
				}
				require.NoError(t, json.Unmarshal(env.Data, &session))
				assert.Equal(t, "ERROR", session.State)
				assert.Equal(t, "GPS_TIMEOUT", session.ErrorCode)

				return
			}

			require.NotNil(t, env.Error)
			assert.Equal(t, tt.wantCode, env.Error.Code)
		})
	}
}

func TestNavigationHandler_RetryReroute(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantCode   string
	}{
		{name: "accepted", wantStatus: http.StatusAccepted},
		{
			name:       "reroute already running",
			err:        errors.Wrap(domainerrors.ErrRerouteInProgress, "reroute in flight"),
			wantStatus: http.StatusConflict,
			wantCode:   "REROUTE_IN_PROGRESS",
		},
		{
			name:       "terminated",
			err:        errors.Wrap(domainerrors.ErrSessionTerminated, "ARRIVED"),
			wantStatus: http.StatusConflict,
			wantCode:   "SESSION_TERMINATED",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e, uc := newNavigationTestEcho(t)
			uc.EXPECT().RetryReroute(mock.Anything, testSessionID).Return(tt.err)

			rec := doRequest(e, http.MethodPost, "/navigation/sessions/"+testSessionID+"/reroute", "")
			assert.Equal(t, tt.wantStatus, rec.Code)

			env := decodeEnvelope(t, rec)
			if tt.wantCode == "" {
				assert.Nil(t, env.Error)

				return
			}
			require.NotNil(t, env.Error)
			assert.Equal(t, tt.wantCode, env.Error.Code)
		})
	}
}

func TestNavigationHandler_GetSession(t *testing.T) {
	e, uc := newNavigationTestEcho(t)
	uc.EXPECT().GetSession(mock.Anything, testSessionID).Return(testSession(entity.NavigationNavigating), nil)

	rec := doRequest(e, http.MethodGet, "/navigation/sessions/"+testSessionID, "")
	require.Equal(t, http.StatusOK, rec.Code)

	var session struct {
		ID          string    `json:"id"`
		State       string    `json:"state"`
		Destination geo.Point `json:"destination"`
	}
	require.NoError(t, json.Unmarshal(decodeEnvelope(t, rec).Data, &session))
	assert.Equal(t, testSessionID, session.ID)
	assert.Equal(t, "NAVIGATING", session.State)
	assert.Equal(t, geo.Point{Lat: 0.001}, session.Destination)
}

func TestNavigationHandler_StopSession(t *testing.T) {
	e, uc := newNavigationTestEcho(t)
	uc.EXPECT().StopSession(mock.Anything, testSessionID).Return(nil).Once()
	uc.EXPECT().StopSession(mock.Anything, testSessionID).
		Return(errors.Wrap(domainerrors.ErrSessionNotFound, testSessionID)).Once()

	rec := doRequest(e, http.MethodDelete, "/navigation/sessions/"+testSessionID, "")
	assert.Equal(t, http.StatusNoContent, rec.Code)

	rec = doRequest(e, http.MethodDelete, "/navigation/sessions/"+testSessionID, "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}
