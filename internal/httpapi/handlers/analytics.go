package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/saludplus/consultas-backend/internal/common"
)

func (h *Handler) GetAnalytics(c *gin.Context) {
	days := 30
	if v := c.Query("days"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			days = n
		}
	}

	ov, err := h.Analytics.Overview(c.Request.Context(), days)
	if err != nil {
		log.Error().Err(err).Msg("analytics overview failed")
		common.Fail(c, http.StatusInternalServerError, "Error interno del servidor")
		return
	}

	common.OK(c, gin.H{
		"stats":          ov.Stats,
		"categoryStats":  ov.CategoryStats,
		"dailyTrends":    ov.DailyTrends,
		"trendsAnalysis": ov.TrendsAnalysis,
	})
}
