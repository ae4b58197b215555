package modules

import (
	"github.com/gin-gonic/gin"

	handlers "github.com/oksasatya/task-tracker/internal/interface/http"
)

// TaskModule routes tasks both through their project and by their own id.
type TaskModule struct {
	Handler *handlers.TaskHandler
	Auth    gin.HandlerFunc
}

func NewTaskModule(h *handlers.TaskHandler, auth gin.HandlerFunc) *TaskModule {
	return &TaskModule{Handler: h, Auth: auth}
}

func (m *TaskModule) Register(rg *gin.RouterGroup) {
	g := rg.Group("/tasks", m.Auth)
	{
		g.POST("/project/:projectId", m.Handler.Create)
		g.GET("/project/:projectId", m.Handler.List)
		g.GET("/:taskId", m.Handler.Get)
		g.PATCH("/:taskId", m.Handler.Update)
		g.DELETE("/:taskId", m.Handler.Delete)
	}
}
