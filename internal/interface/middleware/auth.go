package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/task-tracker/internal/application"
	"github.com/oksasatya/task-tracker/pkg/helpers"
	"github.com/oksasatya/task-tracker/pkg/response"
)

// Gin context keys set by Auth.
const (
	CtxUserEmail = "userEmail"
	CtxSessionID = "sessionID"
)

// TokenVerifier resolves a bearer token into its claims.
type TokenVerifier interface {
	VerifyToken(ctx context.Context, token string) (*helpers.Claims, error)
}

// Auth requires an "Authorization: Bearer <jwt>" header and stores the
// token's email and session id in the Gin context on success.
func Auth(v TokenVerifier, logger *logrus.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, ok := bearerToken(c.GetHeader("Authorization"))
		if !ok {
			response.Error(c, http.StatusUnauthorized, "authentication required", nil)
			return
		}
		claims, err := v.VerifyToken(c.Request.Context(), token)
		if err != nil {
			if errors.Is(err, application.ErrInvalidToken) {
				response.Error(c, http.StatusUnauthorized, "session invalid, please re-authenticate", nil)
				return
			}
			if logger != nil {
				logger.WithError(err).WithField("request_id", c.GetString("request_id")).Error("verify token failed")
			}
			response.Error(c, http.StatusInternalServerError, "an unexpected error occurred", nil)
			return
		}
		c.Set(CtxUserEmail, claims.Email)
		c.Set(CtxSessionID, claims.SessionID)
		c.Next()
	}
}

func bearerToken(header string) (string, bool) {
	scheme, token, found := strings.Cut(strings.TrimSpace(header), " ")
	if !found || !strings.EqualFold(scheme, "Bearer") {
		return "", false
	}
	token = strings.TrimSpace(token)
	return token, token != ""
}
