package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/task-tracker/internal/application"
	"github.com/oksasatya/task-tracker/pkg/response"
	"github.com/oksasatya/task-tracker/pkg/validation"
)

// writeError maps an application error to its HTTP status and message.
// Unrecognised errors are logged and reported as a bare 500.
func writeError(c *gin.Context, logger *logrus.Logger, err error) {
	var (
		verr *application.ValidationError
		nerr *application.NotFoundError
	)
	switch {
	case errors.As(err, &verr):
		response.Error(c, http.StatusBadRequest, verr.Error(), map[string]string{verr.Field: verr.Message})
	case errors.As(err, &nerr):
		response.Error(c, http.StatusNotFound, nerr.Error(), nil)
	case errors.Is(err, application.ErrUnauthorized):
		response.Error(c, http.StatusUnauthorized, "invalid email or password", nil)
	case errors.Is(err, application.ErrInvalidToken):
		response.Error(c, http.StatusUnauthorized, "session invalid, please re-authenticate", nil)
	case errors.Is(err, application.ErrConflict):
		response.Error(c, http.StatusConflict, "email is already in use", nil)
	case errors.Is(err, application.ErrAccessDenied):
		response.Error(c, http.StatusForbidden, "you do not have permission to do that", nil)
	default:
		if logger != nil {
			logger.WithError(err).WithFields(logrus.Fields{
				"request_id": c.GetString("request_id"),
				"method":     c.Request.Method,
				"path":       c.FullPath(),
			}).Error("request failed")
		}
		response.Error(c, http.StatusInternalServerError, "an unexpected error occurred", nil)
	}
}

// bindError answers a request whose body or query could not be bound.
func bindError(c *gin.Context, err error) {
	details := validation.ToDetails(err)
	response.Error(c, http.StatusBadRequest, validation.FirstMessage(details), details)
}
