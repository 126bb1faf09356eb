package handler

import (
	"errors"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/007-sistemas/Sistema-Web-sub000/internal/dto"
	"github.com/007-sistemas/Sistema-Web-sub000/internal/model"
	"github.com/007-sistemas/Sistema-Web-sub000/internal/repository"
	"github.com/007-sistemas/Sistema-Web-sub000/internal/service"
	pkgerrors "github.com/007-sistemas/Sistema-Web-sub000/pkg/errors"
	"github.com/007-sistemas/Sistema-Web-sub000/pkg/response"
)

// PunchHandler handlers HTTP do módulo de ponto
type PunchHandler struct {
	punchSvc service.PunchService
}

// NewPunchHandler cria PunchHandler
func NewPunchHandler(punchSvc service.PunchService) *PunchHandler {
	return &PunchHandler{punchSvc: punchSvc}
}

// CreateKiosk registro de batida vindo do totem biométrico
// POST /api/v1/kiosk/punches
func (h *PunchHandler) CreateKiosk(c *gin.Context) {
	var req dto.CreatePunchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "falha na validação dos parâmetros")
		return
	}
	// o totem só registra batidas biométricas e não tem conta de usuário
	req.Origin = string(model.OriginBiometric)

	result, err := h.punchSvc.Create(c.Request.Context(), &req, "")
	if err != nil {
		h.handleCreateError(c, err)
		return
	}
	response.Created(c, result)
}

// Create registro manual de batida (gestor/admin)
// POST /api/v1/punches
func (h *PunchHandler) Create(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	var req dto.CreatePunchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "falha na validação dos parâmetros")
		return
	}

	result, err := h.punchSvc.Create(c.Request.Context(), &req, userID)
	if err != nil {
		h.handleCreateError(c, err)
		return
	}
	response.Created(c, result)
}

func (h *PunchHandler) handleCreateError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrInvalidKind):
		response.BadRequest(c, 30001, "tipo de batida inválido")
	case errors.Is(err, service.ErrInvalidOrigin):
		response.BadRequest(c, 30002, "origem de batida inválida")
	case errors.Is(err, service.ErrInvalidTimeFormat):
		response.BadRequest(c, 30003, "horário em formato inválido, use RFC 3339")
	case errors.Is(err, service.ErrWorkerNotFound):
		response.NotFound(c, 20001, "cooperado não encontrado")
	case errors.Is(err, service.ErrManualPunchDisabled):
		response.Forbidden(c, 30004, "batida manual desabilitada")
	case errors.Is(err, pkgerrors.ErrInvalidPairRef):
		response.BadRequest(c, 30005, "pair_ref inválido: somente saída pode referenciar uma entrada")
	case errors.Is(err, service.ErrEntryPunchNotFound):
		response.NotFound(c, 30006, "entrada referenciada não encontrada")
	case errors.Is(err, pkgerrors.ErrConflict):
		response.Conflict(c, 30007, "registro conflita com o estado atual")
	default:
		response.InternalError(c)
	}
}

// Get consulta de um registro
// GET /api/v1/punches/:id
func (h *PunchHandler) Get(c *gin.Context) {
	result, err := h.punchSvc.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, service.ErrPunchNotFound) {
			response.NotFound(c, 30008, "registro de ponto não encontrado")
			return
		}
		response.InternalError(c)
		return
	}
	response.OK(c, result)
}

// List listagem administrativa com filtros
// GET /api/v1/punches
func (h *PunchHandler) List(c *gin.Context) {
	filter := repository.PunchFilter{
		WorkerID:   c.Query("worker_id"),
		HospitalID: c.Query("hospital_id"),
		Status:     model.PunchStatus(c.Query("status")),
	}
	if raw := c.Query("from"); raw != "" {
		t, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			response.BadRequest(c, 30003, "horário em formato inválido, use RFC 3339")
			return
		}
		filter.From = &t
	}
	if raw := c.Query("to"); raw != "" {
		t, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			response.BadRequest(c, 30003, "horário em formato inválido, use RFC 3339")
			return
		}
		filter.To = &t
	}

	result, err := h.punchSvc.List(c.Request.Context(), filter)
	if err != nil {
		response.InternalError(c)
		return
	}
	response.OK(c, result)
}

// Delete remoção administrativa com reparo do par
// DELETE /api/v1/punches/:id
func (h *PunchHandler) Delete(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	if err := h.punchSvc.Delete(c.Request.Context(), c.Param("id"), userID); err != nil {
		if errors.Is(err, service.ErrPunchNotFound) {
			response.NotFound(c, 30008, "registro de ponto não encontrado")
			return
		}
		response.InternalError(c)
		return
	}
	response.OK(c, nil)
}
