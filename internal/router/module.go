package router

import "github.com/gin-gonic/gin"

// Module is one routable feature area. A module attaches its routes and any
// per-group middleware (auth gate, rate limiter) to the shared root group.
type Module interface {
	Register(rg *gin.RouterGroup)
}
