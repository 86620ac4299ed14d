package handlers

import (
	"net/http"

	"gymflow/models"
	"gymflow/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// statusFor maps the domain error taxonomy onto HTTP status codes.
func statusFor(err error) int {
	switch {
	case err == nil:
		return http.StatusOK
	case models.IsValidation(err):
		return http.StatusBadRequest
	case models.IsNotFound(err):
		return http.StatusNotFound
	case models.IsConflict(err):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

func codeFor(status int) string {
	switch status {
	case http.StatusBadRequest:
		return "ValidationError"
	case http.StatusNotFound:
		return "NotFound"
	case http.StatusConflict:
		return "Conflict"
	default:
		return "SystemError"
	}
}

// respondError writes err using the taxonomy. System errors are logged and
// reported with a generic message.
func respondError(c *gin.Context, err error) {
	status := statusFor(err)
	if status == http.StatusInternalServerError {
		getLogger(c).Error("request failed", zap.String("path", c.FullPath()), zap.Error(err))
		c.JSON(status, utils.ErrorResponse{Message: utils.UnexpectedErrorMessage, Code: codeFor(status)})
		return
	}
	c.JSON(status, utils.ErrorResponse{Message: err.Error(), Code: codeFor(status)})
}

// bindError reports a malformed request body as a validation failure.
func bindError(c *gin.Context, err error) {
	getLogger(c).Debug("invalid request body", zap.String("path", c.FullPath()), zap.Error(err))
	c.JSON(http.StatusBadRequest, utils.ErrorResponse{
		Message: "Invalid request body.",
		Code:    codeFor(http.StatusBadRequest),
		Details: err.Error(),
	})
}
