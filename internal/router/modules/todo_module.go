package modules

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/oksasatya/taskvault/internal/application"
	"github.com/oksasatya/taskvault/internal/container"
	handlers "github.com/oksasatya/taskvault/internal/interface/http"
	"github.com/oksasatya/taskvault/internal/interface/middleware"
)

// TodoModule wires the owned-resource routes. Every route, PATCH included,
// sits behind the auth gate.

type TodoModule struct {
	Handler *handlers.TodoHandler
	Users   *application.UserService
}

func NewTodoModule(h *handlers.TodoHandler, users *application.UserService) *TodoModule {
	return &TodoModule{Handler: h, Users: users}
}

func (m *TodoModule) Register(rg *gin.RouterGroup) {
	todos := rg.Group("/todos")
	todos.Use(middleware.Auth(m.Users))
	todos.Use(middleware.RateLimit(container.GetRedis(), 300, time.Minute, middleware.KeyByUserID(), nil))
	{
		todos.POST("", m.Handler.Create)
		todos.GET("", m.Handler.List)
		todos.GET("/:id", m.Handler.Get)
		todos.PATCH("/:id", m.Handler.Update)
		todos.DELETE("/:id", m.Handler.Delete)
	}
}
