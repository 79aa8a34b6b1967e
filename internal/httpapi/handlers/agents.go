package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"github.com/saludplus/consultas-backend/internal/auth"
	"github.com/saludplus/consultas-backend/internal/common"
)

type agentLoginReq struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

func (h *Handler) AgentLogin(c *gin.Context) {
	var req agentLoginReq
	if err := c.ShouldBindJSON(&req); err != nil {
		common.Fail(c, http.StatusBadRequest, "email y password son requeridos")
		return
	}

	agent, err := h.Repo.GetAgentByEmail(c.Request.Context(), req.Email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			common.Fail(c, http.StatusUnauthorized, "credenciales inválidas")
			return
		}
		log.Error().Err(err).Msg("agent lookup failed")
		common.Fail(c, http.StatusInternalServerError, "Error interno del servidor")
		return
	}

	if !auth.CheckPassword(agent.PasswordHash, req.Password) {
		common.Fail(c, http.StatusUnauthorized, "credenciales inválidas")
		return
	}

	token, err := auth.SignJWT(agent.ID, h.Cfg.JWTSecret, 24*time.Hour)
	if err != nil {
		log.Error().Err(err).Msg("token signing failed")
		common.Fail(c, http.StatusInternalServerError, "Error interno del servidor")
		return
	}

	common.OK(c, gin.H{
		"token": token,
		"agent": gin.H{
			"id":    agent.ID,
			"name":  agent.Name,
			"email": agent.Email,
		},
	})
}
