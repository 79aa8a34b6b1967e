package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/saludplus/consultas-backend/internal/analytics"
	"github.com/saludplus/consultas-backend/internal/common"
	"github.com/saludplus/consultas-backend/internal/config"
	"github.com/saludplus/consultas-backend/internal/consultation"
)

type Handler struct {
	Cfg       config.Config
	Intake    *consultation.Service
	Analytics *analytics.Service
	Repo      *consultation.Repo
}

func NewHandler(cfg config.Config, intake *consultation.Service, an *analytics.Service, repo *consultation.Repo) *Handler {
	return &Handler{
		Cfg:       cfg,
		Intake:    intake,
		Analytics: an,
		Repo:      repo,
	}
}

func (h *Handler) Ping(c *gin.Context) {
	common.OK(c, gin.H{"message": "pong"})
}
