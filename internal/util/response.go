package util

import (
	"bible_trivia_backend/pkg/logger"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Response is the envelope every JSON reply uses.
type Response struct {
	Code    int         `json:"code"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}

// PageResponse wraps one page of a listing.
type PageResponse struct {
	List  interface{} `json:"list"`
	Total int64       `json:"total"`
	Skip  int         `json:"skip"`
	Limit int         `json:"limit"`
}

func Success(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, Response{
		Code:    http.StatusOK,
		Message: "success",
		Data:    data,
	})
}

func Created(c *gin.Context, data interface{}) {
	c.JSON(http.StatusCreated, Response{
		Code:    http.StatusCreated,
		Message: "created",
		Data:    data,
	})
}

func NoContent(c *gin.Context) {
	c.Status(http.StatusNoContent)
}

func Error(c *gin.Context, code int, message string) {
	c.JSON(code, Response{
		Code:    code,
		Message: message,
	})
}

func BadRequest(c *gin.Context, message string) {
	Error(c, http.StatusBadRequest, message)
}

func InternalServerError(c *gin.Context) {
	Error(c, http.StatusInternalServerError, "Internal server error")
}

func LogInternalError(c *gin.Context, err error) {
	logger.Log.Error("Internal server error",
		zap.String("path", c.FullPath()),
		zap.String("request_id", c.GetString("request_id")),
		zap.Error(err),
	)
	InternalServerError(c)
}

// StatusFor maps a service error onto its HTTP status.
func StatusFor(err error) int {
	var verr *ValidationError
	switch {
	case errors.As(err, &verr):
		return http.StatusBadRequest
	case errors.Is(err, ErrUserNotFound),
		errors.Is(err, ErrSectionNotFound),
		errors.Is(err, ErrQuestionNotFound),
		errors.Is(err, ErrVerseNotFound):
		return http.StatusNotFound
	case errors.Is(err, ErrAttemptConflict):
		return http.StatusConflict
	case errors.Is(err, ErrUsernameTaken),
		errors.Is(err, ErrEmailRegistered),
		errors.Is(err, ErrSectionExists),
		errors.Is(err, ErrVerseExists):
		return http.StatusBadRequest
	case errors.Is(err, ErrInvalidCredentials), errors.Is(err, ErrInvalidToken):
		return http.StatusUnauthorized
	case errors.Is(err, ErrPermissionDenied):
		return http.StatusForbidden
	case IsTimeout(err):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

// RespondError writes err with its mapped status. Internal causes are logged, never returned.
func RespondError(c *gin.Context, err error) {
	status := StatusFor(err)
	switch status {
	case http.StatusInternalServerError:
		LogInternalError(c, err)
	case http.StatusServiceUnavailable:
		logger.Log.Warn("storage deadline exceeded", zap.String("path", c.FullPath()), zap.Error(err))
		Error(c, status, ErrStoreUnavailable.Error())
	case http.StatusUnauthorized:
		c.Header("WWW-Authenticate", "Bearer")
		Error(c, status, err.Error())
	default:
		Error(c, status, err.Error())
	}
}
