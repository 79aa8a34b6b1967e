package httpapi

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/saludplus/consultas-backend/internal/common"
	"github.com/saludplus/consultas-backend/internal/httpapi/handlers"
	"github.com/saludplus/consultas-backend/internal/httpapi/middleware"
)

func NewRouter(h *handlers.Handler, jwtSecret string) *gin.Engine {
	r := gin.New()
	r.HandleMethodNotAllowed = true
	r.Use(middleware.RequestID())
	r.Use(middleware.Recovery())

	r.NoRoute(func(c *gin.Context) {
		common.Fail(c, http.StatusNotFound, "route not found")
	})
	r.NoMethod(func(c *gin.Context) {
		common.Fail(c, http.StatusMethodNotAllowed, "method not allowed")
	})

	r.GET("/ping", h.Ping)

	// customer intake + dashboard data
	r.POST("/consultations", h.CreateConsultation)
	r.GET("/consultations", h.ListConsultations)
	r.GET("/consultations/:id/interactions", h.ListInteractions)
	r.GET("/analytics", h.GetAnalytics)

	// staff workflow (JWT required)
	r.POST("/agents/login", h.AgentLogin)
	agentGroup := r.Group("/")
	agentGroup.Use(middleware.AuthRequired(jwtSecret))
	agentGroup.PATCH("/consultations/:id", h.UpdateConsultation)

	return r
}
