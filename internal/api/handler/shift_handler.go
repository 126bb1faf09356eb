package handler

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/007-sistemas/Sistema-Web-sub000/internal/service"
	"github.com/007-sistemas/Sistema-Web-sub000/pkg/response"
)

// ShiftHandler handlers HTTP dos turnos derivados
type ShiftHandler struct {
	shiftSvc service.ShiftService
}

// NewShiftHandler cria ShiftHandler
func NewShiftHandler(shiftSvc service.ShiftService) *ShiftHandler {
	return &ShiftHandler{shiftSvc: shiftSvc}
}

// ListMine turnos do cooperado autenticado
// GET /api/v1/shifts/me
func (h *ShiftHandler) ListMine(c *gin.Context) {
	workerID := GetWorkerID(c)
	if workerID == "" {
		response.Forbidden(c, 10003, "conta sem vínculo com cooperado")
		return
	}
	h.list(c, workerID)
}

// ListByWorker turnos de um cooperado (gestor/admin)
// GET /api/v1/workers/:id/shifts
func (h *ShiftHandler) ListByWorker(c *gin.Context) {
	h.list(c, c.Param("id"))
}

func (h *ShiftHandler) list(c *gin.Context, workerID string) {
	var from, to *time.Time
	if raw := c.Query("from"); raw != "" {
		t, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			response.BadRequest(c, 30003, "horário em formato inválido, use RFC 3339")
			return
		}
		from = &t
	}
	if raw := c.Query("to"); raw != "" {
		t, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			response.BadRequest(c, 30003, "horário em formato inválido, use RFC 3339")
			return
		}
		to = &t
	}

	order := service.OrderDesc
	if c.Query("order") == string(service.OrderAsc) {
		order = service.OrderAsc
	}

	result, err := h.shiftSvc.ListByWorker(c.Request.Context(), workerID, from, to, order)
	if err != nil {
		response.InternalError(c)
		return
	}
	response.OK(c, result)
}
