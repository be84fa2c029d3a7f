package errors

import (
	stderrors "errors"
	"net/http"
	"reflect"
	"strings"
	"sync"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/yukikurage/shift-roster-api/internal/apperror"
	"github.com/yukikurage/shift-roster-api/internal/logging"
)

// Error codes
const (
	ErrCodeUnauthorized  = string(apperror.KindUnauthorized)
	ErrCodeForbidden     = string(apperror.KindForbidden)
	ErrCodeValidation    = string(apperror.KindValidation)
	ErrCodeNotFound      = string(apperror.KindNotFound)
	ErrCodeConflict      = string(apperror.KindConflict)
	ErrCodeTooMany       = string(apperror.KindTooManyRequests)
	ErrCodeInternalError = string(apperror.KindInternal)
)

// APIError represents a standardized API error response
type APIError struct {
	Code    string      `json:"code"`
	Message string      `json:"message"`
	Details interface{} `json:"details,omitempty"`
}

// Error implements the error interface
func (e *APIError) Error() string {
	return e.Message
}

// NewAPIError creates a new APIError
func NewAPIError(code, message string) *APIError {
	return &APIError{
		Code:    code,
		Message: message,
	}
}

// NewAPIErrorWithDetails creates a new APIError with details
func NewAPIErrorWithDetails(code, message string, details interface{}) *APIError {
	return &APIError{
		Code:    code,
		Message: message,
		Details: details,
	}
}

// RespondWithError sends an error response and stops the handler chain
func RespondWithError(c *gin.Context, statusCode int, err *APIError) {
	c.AbortWithStatusJSON(statusCode, err)
}

var statusByKind = map[apperror.Kind]int{
	apperror.KindUnauthorized:    http.StatusUnauthorized,
	apperror.KindForbidden:       http.StatusForbidden,
	apperror.KindValidation:      http.StatusBadRequest,
	apperror.KindConflict:        http.StatusConflict,
	apperror.KindNotFound:        http.StatusNotFound,
	apperror.KindTooManyRequests: http.StatusTooManyRequests,
}

// Respond renders err according to its kind. Errors outside the taxonomy are
// logged and reported as a generic internal error.
func Respond(c *gin.Context, err error) {
	var appErr *apperror.Error
	if !stderrors.As(err, &appErr) {
		logger := logging.FromContext(c)
		logger.Error().Err(err).
			Str("method", c.Request.Method).
			Str("path", c.Request.URL.Path).
			Msg("Unhandled error")
		InternalError(c, "")
		return
	}

	status, ok := statusByKind[appErr.Kind]
	if !ok {
		InternalError(c, "")
		return
	}

	if len(appErr.Fields) > 0 {
		RespondWithError(c, status, NewAPIErrorWithDetails(string(appErr.Kind), appErr.Message, gin.H{"fields": appErr.Fields}))
		return
	}
	RespondWithError(c, status, NewAPIError(string(appErr.Kind), appErr.Message))
}

var registerFieldNames sync.Once

// UseJSONFieldNames makes binding errors report json field names instead of
// Go struct field names.
func UseJSONFieldNames() {
	registerFieldNames.Do(func() {
		v, ok := binding.Validator.Engine().(*validator.Validate)
		if !ok {
			return
		}
		v.RegisterTagNameFunc(func(field reflect.StructField) string {
			name := strings.SplitN(field.Tag.Get("json"), ",", 2)[0]
			if name == "-" || name == "" {
				return field.Name
			}
			return name
		})
	})
}

// BindingError converts a request binding failure into a validation response,
// listing the fields whose "required" rule failed. Decoding errors that already
// carry a kind are rendered as is.
func BindingError(c *gin.Context, err error) {
	var appErr *apperror.Error
	if stderrors.As(err, &appErr) {
		Respond(c, appErr)
		return
	}

	var verrs validator.ValidationErrors
	if stderrors.As(err, &verrs) {
		var missing, invalid []string
		for _, fe := range verrs {
			if fe.Tag() == "required" {
				missing = append(missing, fe.Field())
			} else {
				invalid = append(invalid, fe.Field())
			}
		}
		if len(missing) > 0 {
			Respond(c, apperror.MissingFields(missing...))
			return
		}
		Respond(c, &apperror.Error{Kind: apperror.KindValidation, Message: "invalid fields", Fields: invalid})
		return
	}
	BadRequest(c, "Invalid request body")
}

// Helper functions for common error responses

// Unauthorized sends a 401 response
func Unauthorized(c *gin.Context, message string) {
	if message == "" {
		message = "Authentication required"
	}
	RespondWithError(c, http.StatusUnauthorized, NewAPIError(ErrCodeUnauthorized, message))
}

// BadRequest sends a 400 response
func BadRequest(c *gin.Context, message string) {
	if message == "" {
		message = "Invalid request"
	}
	RespondWithError(c, http.StatusBadRequest, NewAPIError(ErrCodeValidation, message))
}

// InternalError sends a 500 response
func InternalError(c *gin.Context, message string) {
	if message == "" {
		message = "Internal server error"
	}
	RespondWithError(c, http.StatusInternalServerError, NewAPIError(ErrCodeInternalError, message))
}
