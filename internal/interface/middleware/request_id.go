package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// HeaderRequestID carries the request ID on both the request and the response.
const HeaderRequestID = "X-Request-ID"

// RequestIDMiddleware tags each request with an ID used in log lines and
// response envelopes. An inbound X-Request-ID is reused so the ID stays
// stable across proxies; otherwise a fresh UUID is minted. Either way the
// ID is echoed back in the response header.
func RequestIDMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(HeaderRequestID)
		if id == "" {
			id = uuid.NewString()
		}
		c.Set("request_id", id)
		c.Header(HeaderRequestID, id)
		c.Next()
	}
}
