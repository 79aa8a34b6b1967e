package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/saludplus/consultas-backend/internal/auth"
	"github.com/saludplus/consultas-backend/internal/common"
)

const (
	RequestIDKey    = "request_id"
	RequestIDHeader = "X-Request-ID"
	AgentIDKey      = "agent_id"
)

// RequestID tags each request with an id, honoring one supplied by the
// client or proxy.
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(RequestIDHeader)
		if id == "" {
			id = uuid.NewString()
		}
		c.Set(RequestIDKey, id)
		c.Header(RequestIDHeader, id)
		c.Next()
	}
}

// Recovery converts panics into the uniform 500 envelope without leaking
// internal detail.
func Recovery() gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if r := recover(); r != nil {
				log.Error().
					Interface("panic", r).
					Str("path", c.Request.URL.Path).
					Msg("handler panic")
				common.Fail(c, http.StatusInternalServerError, "Error interno del servidor")
				c.Abort()
			}
		}()
		c.Next()
	}
}

// AuthRequired validates the Bearer token and stores the agent id in the
// request context.
func AuthRequired(secret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if !strings.HasPrefix(header, "Bearer ") {
			common.Fail(c, http.StatusUnauthorized, "unauthorized")
			c.Abort()
			return
		}
		claims, err := auth.ParseJWT(strings.TrimPrefix(header, "Bearer "), secret)
		if err != nil {
			common.Fail(c, http.StatusUnauthorized, "unauthorized")
			c.Abort()
			return
		}
		c.Set(AgentIDKey, claims.AgentID)
		c.Next()
	}
}
