package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"github.com/saludplus/consultas-backend/internal/common"
	"github.com/saludplus/consultas-backend/internal/consultation"
	"github.com/saludplus/consultas-backend/internal/httpapi/middleware"
)

type createConsultationReq struct {
	CustomerName  string  `json:"customerName" binding:"required"`
	CustomerEmail string  `json:"customerEmail" binding:"required,email"`
	CustomerPhone *string `json:"customerPhone"`
	Subject       string  `json:"subject" binding:"required"`
	Message       string  `json:"message" binding:"required"`
}

func (h *Handler) CreateConsultation(c *gin.Context) {
	var req createConsultationReq
	if err := c.ShouldBindJSON(&req); err != nil {
		common.Fail(c, http.StatusBadRequest, "customerName, customerEmail, subject y message son requeridos")
		return
	}

	result, err := h.Intake.Submit(c.Request.Context(), consultation.SubmitRequest{
		CustomerName:  req.CustomerName,
		CustomerEmail: req.CustomerEmail,
		CustomerPhone: req.CustomerPhone,
		Subject:       req.Subject,
		Message:       req.Message,
	})
	if err != nil {
		if errors.Is(err, consultation.ErrInvalidSubmission) {
			common.Fail(c, http.StatusBadRequest, err.Error())
			return
		}
		log.Error().Err(err).Msg("consultation intake failed")
		common.Fail(c, http.StatusInternalServerError, "Error interno del servidor")
		return
	}

	common.OK(c, gin.H{
		"consultation":   result.Consultation,
		"classification": result.Classification,
		"aiResponse":     result.Response,
	})
}

func (h *Handler) ListConsultations(c *gin.Context) {
	limit := 10
	if v := c.Query("limit"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			limit = n
		}
	}
	offset := 0
	if v := c.Query("offset"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			offset = n
		}
	}
	status := c.Query("status")

	rows, err := h.Intake.List(c.Request.Context(), limit, offset, status)
	if err != nil {
		log.Error().Err(err).Msg("list consultations failed")
		common.Fail(c, http.StatusInternalServerError, "Error interno del servidor")
		return
	}

	common.OK(c, gin.H{"consultations": rows})
}

func (h *Handler) ListInteractions(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		common.Fail(c, http.StatusBadRequest, "id de consulta inválido")
		return
	}

	rows, err := h.Intake.Interactions(c.Request.Context(), id)
	if err != nil {
		log.Error().Err(err).Msg("list interactions failed")
		common.Fail(c, http.StatusInternalServerError, "Error interno del servidor")
		return
	}

	common.OK(c, gin.H{"interactions": rows})
}

type updateConsultationReq struct {
	Status string `json:"status" binding:"required"`
	Reply  string `json:"reply"`
}

// UpdateConsultation is the staff workflow: change status and optionally
// append an agent reply. JWT protected.
func (h *Handler) UpdateConsultation(c *gin.Context) {
	agentID, ok := agentIDFromContext(c)
	if !ok {
		common.Fail(c, http.StatusUnauthorized, "unauthorized")
		return
	}

	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		common.Fail(c, http.StatusBadRequest, "id de consulta inválido")
		return
	}

	var req updateConsultationReq
	if err := c.ShouldBindJSON(&req); err != nil {
		common.Fail(c, http.StatusBadRequest, "status es requerido")
		return
	}

	cons, err := h.Intake.AgentUpdate(c.Request.Context(), id, agentID, consultation.Status(req.Status), req.Reply)
	if err != nil {
		switch {
		case errors.Is(err, consultation.ErrInvalidSubmission):
			common.Fail(c, http.StatusBadRequest, err.Error())
		case errors.Is(err, gorm.ErrRecordNotFound):
			common.Fail(c, http.StatusNotFound, "consulta no encontrada")
		default:
			log.Error().Err(err).Msg("consultation update failed")
			common.Fail(c, http.StatusInternalServerError, "Error interno del servidor")
		}
		return
	}

	common.OK(c, gin.H{"consultation": cons})
}

func agentIDFromContext(c *gin.Context) (uint64, bool) {
	v, ok := c.Get(middleware.AgentIDKey)
	if !ok {
		return 0, false
	}
	id, ok := v.(uint64)
	return id, ok
}
