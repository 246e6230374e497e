package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/oksasatya/taskvault/internal/application"
	"github.com/oksasatya/taskvault/pkg/response"
)

// HeaderAuthToken is the single request header carrying the session token.
const HeaderAuthToken = "x-auth"

// Context keys set by Auth on success.
const (
	CtxUserIDKey = "userID"
	CtxUserKey   = "user"
	CtxTokenKey  = "token"
)

// Auth is the trust boundary for every protected route. It resolves the
// x-auth header through the account store; a missing, malformed, expired, or
// revoked token and an unknown account all produce the same 401 so the
// caller learns nothing about why. On success the resolved user, user ID,
// and the raw token (logout revokes that specific token) are set in the Gin
// context and downstream handlers trust them unconditionally.
func Auth(users *application.UserService) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := c.GetHeader(HeaderAuthToken)
		if token == "" {
			reject(c)
			return
		}

		u, err := users.FindByToken(c.Request.Context(), token)
		if err != nil {
			reject(c)
			return
		}

		c.Set(CtxUserIDKey, u.ID)
		c.Set(CtxUserKey, u)
		c.Set(CtxTokenKey, token)
		c.Next()
	}
}

func reject(c *gin.Context) {
	resp := response.Error[any](c, http.StatusUnauthorized, "unauthorized", nil)
	c.AbortWithStatusJSON(resp.Status, resp)
}
