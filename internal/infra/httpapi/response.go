package httpapi

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/fardannozami/habit-streak/internal/domain"
	"github.com/fardannozami/habit-streak/internal/logger"
)

type APIError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

type APIResponse struct {
	Data  interface{} `json:"data,omitempty"`
	Error *APIError   `json:"error,omitempty"`
}

// errorStatus maps domain error kinds to HTTP status and a stable code.
func errorStatus(err error) (int, string) {
	switch {
	case errors.Is(err, domain.ErrInvalidHabit):
		return http.StatusBadRequest, "invalid_input"
	case errors.Is(err, domain.ErrNotFound):
		return http.StatusNotFound, "not_found"
	case errors.Is(err, domain.ErrUnauthorized):
		return http.StatusForbidden, "forbidden"
	case domain.IsRetryable(err):
		return http.StatusServiceUnavailable, "store_unavailable"
	case errors.Is(err, domain.ErrInvariantViolation):
		return http.StatusInternalServerError, "invariant_violation"
	default:
		return http.StatusInternalServerError, "internal"
	}
}

func HandleError(c *gin.Context, err error) {
	status, code := errorStatus(err)
	requestID := c.GetString("request_id")
	if status >= http.StatusInternalServerError {
		logger.Error("request failed", "request_id", requestID, "path", c.FullPath(), "error", err)
	} else {
		logger.Debug("request rejected", "request_id", requestID, "path", c.FullPath(), "error", err)
	}
	if status == http.StatusServiceUnavailable {
		c.Header("Retry-After", "1")
	}
	c.AbortWithStatusJSON(status, APIResponse{Error: &APIError{Code: code, Message: err.Error()}})
}

func BadRequest(c *gin.Context, msg string) {
	c.AbortWithStatusJSON(http.StatusBadRequest, APIResponse{Error: &APIError{Code: "invalid_input", Message: msg}})
}

func HandleSuccess(c *gin.Context, status int, data interface{}) {
	c.JSON(status, APIResponse{Data: data})
}
