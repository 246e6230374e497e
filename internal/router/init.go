package router

import (
	"github.com/oksasatya/taskvault/internal/application"
	"github.com/oksasatya/taskvault/internal/container"
	pginfra "github.com/oksasatya/taskvault/internal/infrastructure/postgres"
	handlers "github.com/oksasatya/taskvault/internal/interface/http"
	"github.com/oksasatya/taskvault/internal/router/modules"
)

func buildUserService() *application.UserService {
	repo := pginfra.NewUserRepository(container.GetPGPool())
	return application.NewUserService(
		repo,
		container.GetJWT(),
		container.GetHasher(),
		container.GetLogger(),
	)
}

// InitModules initializes all application modules and registers them with the router registry
// This function should be called once during application startup to wire up all modules
func InitModules(r *Registry) {
	userSvc := buildUserService()
	userHandler := handlers.NewUserHandler(userSvc, container.GetLogger())

	todoRepo := pginfra.NewTodoRepository(container.GetPGPool())
	todoSvc := application.NewTodoService(todoRepo, container.GetLogger())
	todoHandler := handlers.NewTodoHandler(todoSvc, container.GetLogger())

	r.Add(modules.NewUserModule(userHandler, userSvc))
	r.Add(modules.NewTodoModule(todoHandler, userSvc))
	if container.GetConfig().DebugMetricsEnabled {
		r.Add(modules.NewDebugModule())
	}
}
