package modules

import (
	"github.com/gin-gonic/gin"

	handlers "github.com/oksasatya/task-tracker/internal/interface/http"
)

// AuthModule exposes credential exchange.
// Public: POST /api/auth/register, POST /api/auth/login
// Protected: POST /api/auth/logout
type AuthModule struct {
	Handler *handlers.AuthHandler
	Auth    gin.HandlerFunc
}

func NewAuthModule(h *handlers.AuthHandler, auth gin.HandlerFunc) *AuthModule {
	return &AuthModule{Handler: h, Auth: auth}
}

func (m *AuthModule) Register(rg *gin.RouterGroup) {
	g := rg.Group("/auth")
	g.POST("/register", m.Handler.Register)
	g.POST("/login", m.Handler.Login)
	g.POST("/logout", m.Auth, m.Handler.Logout)
}
