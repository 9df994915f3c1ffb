package response

import (
	"errors"
	"net/http"

	"taskboard/internal/util/errs"
	"taskboard/internal/util/logger"

	"github.com/gin-gonic/gin"
)

// Envelope is the body of every API response.
type Envelope struct {
	Success bool   `json:"success"`
	Data    any    `json:"data,omitempty"`
	Error   string `json:"error,omitempty"`
}

func OK(ctx *gin.Context, data any) {
	ctx.JSON(http.StatusOK, Envelope{Success: true, Data: data})
}

func Created(ctx *gin.Context, data any) {
	ctx.JSON(http.StatusCreated, Envelope{Success: true, Data: data})
}

func Fail(ctx *gin.Context, status int, message string) {
	ctx.JSON(status, Envelope{Success: false, Error: message})
}

// Error writes err with the status of its kind. Errors of no known kind
// are reported as a generic server failure and logged.
func Error(ctx *gin.Context, err error) {
	status := StatusOf(err)

	if status == http.StatusInternalServerError {
		logger.GetLogger().Error(
			"request failed",
			"method", ctx.Request.Method,
			"path", ctx.FullPath(),
			"error", err,
		)
		Fail(ctx, status, "Internal server error")
		return
	}

	Fail(ctx, status, err.Error())
}

// Abort is Error for middleware: it also stops the handler chain.
func Abort(ctx *gin.Context, err error) {
	Error(ctx, err)
	ctx.Abort()
}

func StatusOf(err error) int {
	switch {
	case errors.Is(err, errs.ErrAuthentication):
		return http.StatusUnauthorized
	case errors.Is(err, errs.ErrForbidden):
		return http.StatusForbidden
	case errors.Is(err, errs.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, errs.ErrValidation):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}
