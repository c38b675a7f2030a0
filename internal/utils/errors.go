package utils

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/go-sql-driver/mysql"
	"github.com/lib/pq"

	"github.com/yasinhessnawi1/QRForge_Backend/internal/constants"
)

// Custom error types for the application
var (
	ErrNotFound            = errors.New(constants.ErrorNotFound)
	ErrBadRequest          = errors.New(constants.ErrorBadRequest)
	ErrInternalServer      = errors.New(constants.ErrorInternalServer)
	ErrValidation          = errors.New(constants.ErrorValidation)
	ErrDuplicate           = errors.New("duplicate resource")
	ErrRateLimited         = errors.New("rate limit exceeded")
	ErrRender              = errors.New(constants.ErrorRender)
	ErrPersistence         = errors.New(constants.ErrorPersistence)
	ErrPlatformUnsupported = errors.New(constants.ErrorPlatformUnsupported)
	ErrNotGenerated        = errors.New(constants.ErrorNotGenerated)
)

// AppError represents an application error with additional context
type AppError struct {
	Err        error  // The underlying error
	StatusCode int    // HTTP status code
	Message    string // User-friendly error message
	DevInfo    string // Additional information for developers
	Field      string // Field related to the error (for validation errors)
	Details    map[string]any
}

// Error implements the error interface
func (e *AppError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("%s: %s", e.Field, e.Message)
	}
	return e.Message
}

// Unwrap returns the underlying error
func (e *AppError) Unwrap() error {
	return e.Err
}

// New creates a new AppError with the given error and status code
func New(err error, statusCode int, message string) *AppError {
	return &AppError{
		Err:        err,
		StatusCode: statusCode,
		Message:    message,
	}
}

// NewWithDevInfo creates a new AppError with developer information
func NewWithDevInfo(err error, statusCode int, message, devInfo string) *AppError {
	return &AppError{
		Err:        err,
		StatusCode: statusCode,
		Message:    message,
		DevInfo:    devInfo,
	}
}

// NewValidationError creates a new validation error for a specific field
func NewValidationError(field, message string) *AppError {
	return &AppError{
		Err:        ErrValidation,
		StatusCode: http.StatusBadRequest,
		Message:    message,
		Field:      field,
	}
}

// NewBadRequestError creates a new bad request error
func NewBadRequestError(message string) *AppError {
	return &AppError{
		Err:        ErrBadRequest,
		StatusCode: http.StatusBadRequest,
		Message:    message,
	}
}

// NewNotFoundError creates a new not found error
func NewNotFoundError(resourceType string, identifier interface{}) *AppError {
	return &AppError{
		Err:        ErrNotFound,
		StatusCode: http.StatusNotFound,
		Message:    fmt.Sprintf("%s with identifier '%v' not found", resourceType, identifier),
	}
}

// NewInternalServerError creates a new internal server error
func NewInternalServerError(err error) *AppError {
	devInfo := ""
	if err != nil {
		devInfo = err.Error()
	}
	return &AppError{
		Err:        ErrInternalServer,
		StatusCode: http.StatusInternalServerError,
		Message:    constants.MsgInternalServerError,
		DevInfo:    devInfo,
	}
}

// NewDuplicateError creates a new duplicate resource error
func NewDuplicateError(resourceType, field string, value interface{}) *AppError {
	return &AppError{
		Err:        ErrDuplicate,
		StatusCode: http.StatusConflict,
		Message:    fmt.Sprintf("%s with %s '%v' already exists", resourceType, field, value),
		Field:      field,
	}
}

// NewRenderError reports that the encoder could not produce an image from the
// current settings. The preview shows the message inline; nothing is persisted.
func NewRenderError(cause error) *AppError {
	devInfo := ""
	if cause != nil {
		devInfo = cause.Error()
	}
	return &AppError{
		Err:        ErrRender,
		StatusCode: http.StatusUnprocessableEntity,
		Message:    constants.MsgRenderFailed,
		DevInfo:    devInfo,
	}
}

// NewPersistenceError wraps a storage read/write failure for the given key.
// These errors are logged and never surfaced to the user.
func NewPersistenceError(key string, cause error) *AppError {
	devInfo := ""
	if cause != nil {
		devInfo = cause.Error()
	}
	return &AppError{
		Err:        ErrPersistence,
		StatusCode: http.StatusInternalServerError,
		Message:    fmt.Sprintf("failed to persist or restore '%s'", key),
		DevInfo:    devInfo,
		Field:      key,
	}
}

// NewPlatformCapabilityError reports that the host cannot perform an action
// such as clipboard write or share.
func NewPlatformCapabilityError(message string, cause error) *AppError {
	devInfo := ""
	if cause != nil {
		devInfo = cause.Error()
	}
	return &AppError{
		Err:        ErrPlatformUnsupported,
		StatusCode: http.StatusNotImplemented,
		Message:    message,
		DevInfo:    devInfo,
	}
}

// NewNotGeneratedError reports an export attempted before any successful render.
func NewNotGeneratedError() *AppError {
	return &AppError{
		Err:        ErrNotGenerated,
		StatusCode: http.StatusConflict,
		Message:    constants.MsgGenerateFirst,
	}
}

// NewRateLimitError reports a client exceeding its request budget
func NewRateLimitError() *AppError {
	return &AppError{
		Err:        ErrRateLimited,
		StatusCode: http.StatusTooManyRequests,
		Message:    "Too many requests, slow down",
	}
}

// ParseError attempts to parse various types of errors into an AppError
func ParseError(err error) *AppError {
	// If it's already an AppError, return it
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr
	}

	switch {
	case errors.Is(err, ErrNotFound):
		return NewNotFoundError("Resource", "")
	case errors.Is(err, ErrBadRequest):
		return NewBadRequestError(err.Error())
	case errors.Is(err, ErrValidation):
		return NewValidationError("", err.Error())
	case errors.Is(err, ErrDuplicate):
		return NewDuplicateError("Resource", "", "")
	case errors.Is(err, ErrRender):
		return NewRenderError(err)
	case errors.Is(err, ErrPersistence):
		return NewPersistenceError("", err)
	case errors.Is(err, ErrPlatformUnsupported):
		return NewPlatformCapabilityError(err.Error(), err)
	case errors.Is(err, ErrNotGenerated):
		return NewNotGeneratedError()
	case errors.Is(err, ErrRateLimited):
		return NewRateLimitError()
	}

	// PostgreSQL driver errors
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		switch string(pqErr.Code) {
		case constants.PGErrorDuplicateConstraint:
			return &AppError{
				Err:        ErrDuplicate,
				StatusCode: http.StatusConflict,
				Message:    "A resource with the same unique identifier already exists",
				DevInfo:    pqErr.Error(),
				Field:      pqErr.Column,
			}
		case constants.PGErrorForeignKeyConstraint:
			return &AppError{
				Err:        ErrBadRequest,
				StatusCode: http.StatusBadRequest,
				Message:    "This operation violates a foreign key constraint",
				DevInfo:    pqErr.Error(),
			}
		case constants.PGErrorNotNullConstraint:
			field := pqErr.Column
			return &AppError{
				Err:        ErrValidation,
				StatusCode: http.StatusBadRequest,
				Message:    fmt.Sprintf("The %s field cannot be empty", field),
				DevInfo:    pqErr.Error(),
				Field:      field,
			}
		}
	}

	// MySQL driver errors
	var myErr *mysql.MySQLError
	if errors.As(err, &myErr) {
		switch myErr.Number {
		case constants.MySQLErrorDuplicateEntry:
			return &AppError{
				Err:        ErrDuplicate,
				StatusCode: http.StatusConflict,
				Message:    "A resource with the same unique identifier already exists",
				DevInfo:    myErr.Error(),
			}
		case constants.MySQLErrorNoSuchTable:
			return NewWithDevInfo(ErrPersistence, http.StatusInternalServerError,
				"Storage is not initialized", myErr.Error())
		}
	}

	// Check for general database-specific error patterns
	errMsg := strings.ToLower(err.Error())
	switch {
	case strings.Contains(errMsg, "duplicate key") || strings.Contains(errMsg, "unique constraint"):
		return &AppError{
			Err:        ErrDuplicate,
			StatusCode: http.StatusConflict,
			Message:    "A resource with the same unique identifier already exists",
			DevInfo:    err.Error(),
		}
	case strings.Contains(errMsg, "not found") || strings.Contains(errMsg, "no rows"):
		return &AppError{
			Err:        ErrNotFound,
			StatusCode: http.StatusNotFound,
			Message:    constants.MsgResourceNotFound,
			DevInfo:    err.Error(),
		}
	}

	// Default to internal server error
	return NewInternalServerError(err)
}

// IsNotFoundError checks if an error is a not found error
func IsNotFoundError(err error) bool {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.StatusCode == http.StatusNotFound
	}
	return errors.Is(err, ErrNotFound)
}

// IsValidationError checks if an error is a validation error
func IsValidationError(err error) bool {
	return errors.Is(err, ErrValidation)
}

// IsRenderError checks if an error came from the rendering bridge
func IsRenderError(err error) bool {
	return errors.Is(err, ErrRender)
}

// IsPersistenceError checks if an error is a storage failure
func IsPersistenceError(err error) bool {
	return errors.Is(err, ErrPersistence)
}

// IsPlatformCapabilityError checks if an error reports a missing host capability
func IsPlatformCapabilityError(err error) bool {
	return errors.Is(err, ErrPlatformUnsupported)
}

// StatusCode returns the HTTP status code for an error
func StatusCode(err error) int {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.StatusCode
	}
	return http.StatusInternalServerError
}
