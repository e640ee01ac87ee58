package errors

import (
	"net/http"

	"saferoute/internal/errors"
)

// AppError defines the interface for application-specific errors
type AppError interface {
	error
	HTTPCode() int     // HTTP status code
	ErrorCode() string // Business error code
	Message() string   // User-friendly error message
	Details() string   // Detailed error information (optional)
}

// BaseError is a basic error structure that implements the AppError interface
type BaseError struct {
	httpCode  int
	errorCode string
	message   string
	details   string
}

// NewBaseError creates a new base error
func NewBaseError(httpCode int, errorCode, message, details string) *BaseError {
	return &BaseError{
		httpCode:  httpCode,
		errorCode: errorCode,
		message:   message,
		details:   details,
	}
}

// Error implements the error interface
func (e *BaseError) Error() string {
	return e.message
}

// WrapMessage wraps the error with additional context message
func (e *BaseError) WrapMessage(message string) error {
	return errors.Wrap(e, message)
}

// HTTPCode returns the HTTP status code
func (e *BaseError) HTTPCode() int {
	return e.httpCode
}

// ErrorCode returns the business error code
func (e *BaseError) ErrorCode() string {
	return e.errorCode
}

// Message returns the user-friendly error message
func (e *BaseError) Message() string {
	return e.message
}

// Details returns detailed error information
func (e *BaseError) Details() string {
	return e.details
}

// WithDetails adds detailed error information
func (e *BaseError) WithDetails(details string) *BaseError {
	return &BaseError{
		httpCode:  e.httpCode,
		errorCode: e.errorCode,
		message:   e.message,
		details:   details,
	}
}

// Is matches any BaseError with the same business code, so a copy made by
// WithDetails still satisfies errors.Is against the predefined value.
func (e *BaseError) Is(target error) bool {
	t, ok := target.(*BaseError)
	if !ok {
		return false
	}

	return e.errorCode == t.errorCode
}

// Predefined error types
var (
	// Route-related errors
	ErrInvalidGeometry = NewBaseError(
		http.StatusBadRequest,
		"INVALID_GEOMETRY",
		"無法解析路線幾何資料",
		"",
	)

	ErrInvalidCoordinate = NewBaseError(
		http.StatusBadRequest,
		"INVALID_COORDINATE",
		"座標超出有效範圍",
		"",
	)

	ErrNoRoutes = NewBaseError(
		http.StatusNotFound,
		"NO_ROUTES",
		"找不到可用的路線",
		"",
	)

	// Navigation-related errors
	ErrSessionNotFound = NewBaseError(
		http.StatusNotFound,
		"SESSION_NOT_FOUND",
		"找不到該導航工作階段",
		"",
	)

	ErrSessionTerminated = NewBaseError(
		http.StatusConflict,
		"SESSION_TERMINATED",
		"導航已結束",
		"",
	)

	ErrRerouteInProgress = NewBaseError(
		http.StatusConflict,
		"REROUTE_IN_PROGRESS",
		"正在重新規劃路線",
		"",
	)

	ErrRerouteExhausted = NewBaseError(
		http.StatusServiceUnavailable,
		"REROUTE_EXHAUSTED",
		"重新規劃路線失敗次數已達上限，請稍後重試",
		"",
	)

	// GPS-related errors
	ErrGPSPermissionDenied = NewBaseError(
		http.StatusUnprocessableEntity,
		"GPS_PERMISSION_DENIED",
		"未授權取得定位",
		"",
	)

	ErrGPSPositionUnavailable = NewBaseError(
		http.StatusUnprocessableEntity,
		"GPS_POSITION_UNAVAILABLE",
		"無法取得目前位置",
		"",
	)

	ErrGPSTimeout = NewBaseError(
		http.StatusUnprocessableEntity,
		"GPS_TIMEOUT",
		"定位逾時",
		"",
	)

	ErrUnknownGPSReason = NewBaseError(
		http.StatusBadRequest,
		"UNKNOWN_GPS_REASON",
		"未知的定位錯誤原因",
		"",
	)

	// Validation-related errors
	ErrValidationFailed = NewBaseError(
		http.StatusBadRequest,
		"VALIDATION_FAILED",
		"輸入資料驗證失敗",
		"",
	)

	// General errors
	ErrInternalError = NewBaseError(
		http.StatusInternalServerError,
		"INTERNAL_ERROR",
		"系統內部錯誤",
		"",
	)

	ErrNotFound = NewBaseError(
		http.StatusNotFound,
		"NOT_FOUND",
		"找不到該資源",
		"",
	)
)

// ProviderError represents a failed external provider call, implementing the AppError interface
type ProviderError struct {
	provider string
	err      error
}

// NewProviderError creates a provider-related error
func NewProviderError(provider string, err error) AppError {
	return &ProviderError{
		provider: provider,
		err:      err,
	}
}

// Error implements the error interface
func (e *ProviderError) Error() string {
	return errors.Wrapf(e.err, "%s provider failed", e.provider).Error()
}

// Unwrap returns the underlying provider error
func (e *ProviderError) Unwrap() error {
	return e.err
}

// HTTPCode returns the HTTP status code
func (e *ProviderError) HTTPCode() int {
	return http.StatusBadGateway
}

// ErrorCode returns the business error code
func (e *ProviderError) ErrorCode() string {
	return "PROVIDER_FAILED"
}

// Message returns the user-friendly error message
func (e *ProviderError) Message() string {
	return "外部服務暫時無法使用"
}

// Details returns detailed error information
func (e *ProviderError) Details() string {
	return e.provider
}
