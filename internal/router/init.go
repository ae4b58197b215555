package router

import (
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/task-tracker/internal/application"
	"github.com/oksasatya/task-tracker/internal/container"
	"github.com/oksasatya/task-tracker/internal/domain/repository"
	handlers "github.com/oksasatya/task-tracker/internal/interface/http"
	"github.com/oksasatya/task-tracker/internal/interface/middleware"
	"github.com/oksasatya/task-tracker/internal/router/modules"
	"github.com/oksasatya/task-tracker/pkg/helpers"
)

// Deps are the infrastructure components every module is built from.
type Deps struct {
	Store           repository.Store
	JWT             *helpers.JWTManager
	Sessions        application.SessionRegistry // nil disables revocation
	Logger          *logrus.Logger
	DefaultPageSize int
}

// NewModules builds services, handlers and modules from deps.
func NewModules(d Deps) []Module {
	if d.DefaultPageSize <= 0 {
		d.DefaultPageSize = 10
	}
	guard := application.NewGuard(d.Store.Projects, d.Store.Tasks)

	authSvc := application.NewAuthService(d.Store.Users, nil, d.JWT, d.Sessions, d.Logger)
	userSvc := application.NewUserService(d.Store.Users, d.Logger)
	projectSvc := application.NewProjectService(d.Store.Projects, d.Store.Users, guard, d.Logger)
	taskSvc := application.NewTaskService(d.Store.Tasks, guard, d.Logger)

	auth := middleware.Auth(authSvc, d.Logger)

	return []Module{
		modules.NewHealthModule(handlers.NewHealthHandler(d.Store.Ping, d.Logger)),
		modules.NewAuthModule(handlers.NewAuthHandler(authSvc, d.Logger), auth),
		modules.NewUserModule(handlers.NewUserHandler(userSvc, d.Logger), auth),
		modules.NewProjectModule(handlers.NewProjectHandler(projectSvc, d.Logger, d.DefaultPageSize), auth),
		modules.NewTaskModule(handlers.NewTaskHandler(taskSvc, d.Logger, d.DefaultPageSize), auth),
	}
}

// InitModules initializes all application modules and registers them with the router registry
// This function should be called once during application startup to wire up all modules
func InitModules(r *Registry) {
	deps := Deps{
		Store:  container.GetStore(),
		JWT:    container.GetJWT(),
		Logger: container.GetLogger(),
	}
	if s := container.GetSessions(); s != nil {
		deps.Sessions = s
	}
	if cfg := container.GetConfig(); cfg != nil {
		deps.DefaultPageSize = cfg.DefaultPageSize
	}
	for _, m := range NewModules(deps) {
		r.Add(m)
	}
}
