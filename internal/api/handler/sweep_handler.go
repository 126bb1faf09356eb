package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/007-sistemas/Sistema-Web-sub000/internal/service"
	"github.com/007-sistemas/Sistema-Web-sub000/pkg/response"
)

// SweepHandler handler HTTP da varredura de consistência
type SweepHandler struct {
	sweepSvc service.SweepService
}

// NewSweepHandler cria SweepHandler
func NewSweepHandler(sweepSvc service.SweepService) *SweepHandler {
	return &SweepHandler{sweepSvc: sweepSvc}
}

// Run dispara a varredura e devolve o relatório por categoria
// POST /api/v1/admin/sweep
func (h *SweepHandler) Run(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	report, err := h.sweepSvc.Run(c.Request.Context(), userID)
	if err != nil {
		response.InternalError(c)
		return
	}
	response.OK(c, report)
}
