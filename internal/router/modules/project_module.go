package modules

import (
	"github.com/gin-gonic/gin"

	handlers "github.com/oksasatya/task-tracker/internal/interface/http"
)

type ProjectModule struct {
	Handler *handlers.ProjectHandler
	Auth    gin.HandlerFunc
}

func NewProjectModule(h *handlers.ProjectHandler, auth gin.HandlerFunc) *ProjectModule {
	return &ProjectModule{Handler: h, Auth: auth}
}

func (m *ProjectModule) Register(rg *gin.RouterGroup) {
	g := rg.Group("/projects", m.Auth)
	{
		g.POST("", m.Handler.Create)
		g.GET("", m.Handler.List)
		g.GET("/:id", m.Handler.Get)
		g.PUT("/:id", m.Handler.Update)
		g.DELETE("/:id", m.Handler.Delete)
	}
}
