package modules

import (
	"github.com/gin-gonic/gin"

	handlers "github.com/oksasatya/task-tracker/internal/interface/http"
)

// UserModule serves the caller's own profile under /api/users/me.
type UserModule struct {
	Handler *handlers.UserHandler
	Auth    gin.HandlerFunc
}

func NewUserModule(h *handlers.UserHandler, auth gin.HandlerFunc) *UserModule {
	return &UserModule{Handler: h, Auth: auth}
}

func (m *UserModule) Register(rg *gin.RouterGroup) {
	g := rg.Group("/users", m.Auth)
	{
		g.GET("/me", m.Handler.GetProfile)
		g.PATCH("/me", m.Handler.UpdateProfile)
	}
}
