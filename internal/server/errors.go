package server

import (
	"errors"
	"net/http"
	"strings"

	offerdomain "github.com/MarioWinter/coderr/internal/offer/domain"
	orderdomain "github.com/MarioWinter/coderr/internal/order/domain"
	"github.com/MarioWinter/coderr/internal/policy"
	profiledomain "github.com/MarioWinter/coderr/internal/profile/domain"
	reviewdomain "github.com/MarioWinter/coderr/internal/review/domain"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type ValidationError struct {
	Field   string `json:"field"`
	Code    string `json:"code"`
	Message string `json:"message"`
}

type ValidationErrors struct {
	Errors []ValidationError `json:"errors"`
}

func (v ValidationErrors) Error() string {
	return "validation error"
}

type errorPayload struct {
	Type    string            `json:"type"`
	Message string            `json:"message"`
	Errors  []ValidationError `json:"errors,omitempty"`
}

type errorResponse struct {
	Error errorPayload `json:"error"`
}

var (
	ErrUnauthorized   = errors.New("unauthorized")
	ErrForbidden      = errors.New("forbidden")
	ErrConflict       = errors.New("conflict")
	ErrInternal       = errors.New("internal_error")
	ErrNotFound       = errors.New("not_found")
	ErrInvalidRequest = errors.New("invalid_request")
)

func ErrorHandlingMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if c.Writer.Written() {
			return
		}

		lastErr := c.Errors.Last()
		if lastErr == nil {
			return
		}

		status, payload := mapError(lastErr.Err)
		c.Header("Content-Type", "application/json")
		c.AbortWithStatusJSON(status, errorResponse{Error: payload})
	}
}

func AbortWithError(c *gin.Context, err error) {
	if err == nil {
		return
	}
	_ = c.Error(err)
	c.Abort()
}

func invalidRequestError() error {
	return newValidationError("request", "invalid_request", "invalid request")
}

func newValidationError(field, code, message string) error {
	return &ValidationErrors{
		Errors: []ValidationError{
			{
				Field:   field,
				Code:    code,
				Message: message,
			},
		},
	}
}

func mapError(err error) (int, errorPayload) {
	if err == nil {
		return http.StatusInternalServerError, errorPayload{
			Type:    "internal_error",
			Message: "internal server error",
		}
	}

	if vErr := asValidationErrors(err); vErr != nil {
		return http.StatusBadRequest, errorPayload{
			Type:    "validation_error",
			Message: "validation error",
			Errors:  vErr.Errors,
		}
	}

	if isValidationError(err) {
		code := validationErrorCode(err)
		return http.StatusBadRequest, errorPayload{
			Type:    "validation_error",
			Message: "validation error",
			Errors: []ValidationError{
				{
					Field:   validationErrorField(code),
					Code:    code,
					Message: "invalid value",
				},
			},
		}
	}

	switch {
	case errors.Is(err, ErrUnauthorized),
		errors.Is(err, policy.ErrUnauthenticated),
		errors.Is(err, profiledomain.ErrInvalidToken),
		errors.Is(err, profiledomain.ErrInvalidCredentials):
		return http.StatusUnauthorized, errorPayload{
			Type:    "unauthorized",
			Message: "unauthorized",
		}
	case errors.Is(err, ErrForbidden),
		errors.Is(err, policy.ErrForbidden),
		errors.Is(err, profiledomain.ErrNotOwner):
		return http.StatusForbidden, errorPayload{
			Type:    "forbidden",
			Message: "forbidden",
		}
	case errors.Is(err, ErrConflict),
		errors.Is(err, profiledomain.ErrUserExists),
		errors.Is(err, offerdomain.ErrOfferInUse),
		errors.Is(err, orderdomain.ErrOrderClosed),
		errors.Is(err, reviewdomain.ErrDuplicateReview):
		return http.StatusConflict, errorPayload{
			Type:    "conflict",
			Message: "conflict",
		}
	case isNotFoundError(err):
		return http.StatusNotFound, errorPayload{
			Type:    "not_found",
			Message: "not found",
		}
	default:
		return http.StatusInternalServerError, errorPayload{
			Type:    "internal_error",
			Message: "internal server error",
		}
	}
}

func asValidationErrors(err error) *ValidationErrors {
	var vErr *ValidationErrors
	if errors.As(err, &vErr) && vErr != nil {
		return vErr
	}
	return nil
}

func isValidationError(err error) bool {
	switch {
	case errors.Is(err, ErrInvalidRequest),
		errors.Is(err, profiledomain.ErrInvalidUsername),
		errors.Is(err, profiledomain.ErrInvalidEmail),
		errors.Is(err, profiledomain.ErrInvalidPassword),
		errors.Is(err, profiledomain.ErrPasswordMismatch),
		errors.Is(err, profiledomain.ErrInvalidType),
		errors.Is(err, profiledomain.ErrInvalidID):
		return true
	case errors.Is(err, offerdomain.ErrInvalidID),
		errors.Is(err, offerdomain.ErrInvalidTitle),
		errors.Is(err, offerdomain.ErrTierCount),
		errors.Is(err, offerdomain.ErrTierSet),
		errors.Is(err, offerdomain.ErrInvalidTierType),
		errors.Is(err, offerdomain.ErrDuplicateTierType),
		errors.Is(err, offerdomain.ErrInvalidRevisions),
		errors.Is(err, offerdomain.ErrInvalidDelivery),
		errors.Is(err, offerdomain.ErrInvalidPrice),
		errors.Is(err, offerdomain.ErrInvalidOrdering):
		return true
	case errors.Is(err, orderdomain.ErrInvalidID),
		errors.Is(err, orderdomain.ErrInvalidStatus):
		return true
	case errors.Is(err, reviewdomain.ErrInvalidID),
		errors.Is(err, reviewdomain.ErrInvalidRating),
		errors.Is(err, reviewdomain.ErrInvalidOrdering),
		errors.Is(err, reviewdomain.ErrUnsupportedField):
		return true
	default:
		return false
	}
}

func isNotFoundError(err error) bool {
	switch {
	case errors.Is(err, ErrNotFound),
		errors.Is(err, profiledomain.ErrNotFound),
		errors.Is(err, offerdomain.ErrNotFound),
		errors.Is(err, offerdomain.ErrDetailNotFound),
		errors.Is(err, orderdomain.ErrNotFound),
		errors.Is(err, orderdomain.ErrDetailNotFound),
		errors.Is(err, orderdomain.ErrBusinessNotFound),
		errors.Is(err, reviewdomain.ErrNotFound),
		errors.Is(err, reviewdomain.ErrBusinessNotFound),
		errors.Is(err, gorm.ErrRecordNotFound):
		return true
	default:
		return false
	}
}

func validationErrorCode(err error) string {
	if errors.Is(err, ErrInvalidRequest) {
		return "invalid_request"
	}
	return err.Error()
}

func validationErrorField(code string) string {
	if code == "invalid_request" {
		return "request"
	}
	if strings.HasPrefix(code, "invalid_") {
		return strings.TrimPrefix(code, "invalid_")
	}
	return ""
}
