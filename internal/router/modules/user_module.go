package modules

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/oksasatya/taskvault/internal/application"
	"github.com/oksasatya/taskvault/internal/container"
	handlers "github.com/oksasatya/taskvault/internal/interface/http"
	"github.com/oksasatya/taskvault/internal/interface/middleware"
)

// UserModule wires the account routes.
// Public: POST /users, POST /users/login
// Protected: GET /users/me, DELETE /users/me/token

type UserModule struct {
	Handler *handlers.UserHandler
	Users   *application.UserService
}

func NewUserModule(h *handlers.UserHandler, users *application.UserService) *UserModule {
	return &UserModule{Handler: h, Users: users}
}

func (m *UserModule) Register(rg *gin.RouterGroup) {
	// Public with rate limiting; registration and login are the two
	// credential-guessing surfaces.
	registerLimiter := middleware.RateLimit(container.GetRedis(), 10, time.Minute, middleware.KeyByIP(), nil)
	loginLimiter := middleware.RateLimit(container.GetRedis(), 10, time.Minute, middleware.KeyByIP(), nil)

	rg.POST("/users", registerLimiter, m.Handler.Register)
	rg.POST("/users/login", loginLimiter, m.Handler.Login)

	// Protected
	auth := rg.Group("/users/me")
	auth.Use(middleware.Auth(m.Users))
	auth.Use(middleware.RateLimit(container.GetRedis(), 120, time.Minute, middleware.KeyByUserID(), nil))
	{
		auth.GET("", m.Handler.Me)
		auth.DELETE("/token", m.Handler.Logout)
	}
}
