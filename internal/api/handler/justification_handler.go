package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/007-sistemas/Sistema-Web-sub000/internal/dto"
	"github.com/007-sistemas/Sistema-Web-sub000/internal/model"
	"github.com/007-sistemas/Sistema-Web-sub000/internal/service"
	pkgerrors "github.com/007-sistemas/Sistema-Web-sub000/pkg/errors"
	"github.com/007-sistemas/Sistema-Web-sub000/pkg/response"
)

// JustificationHandler handlers HTTP do módulo de justificativas
type JustificationHandler struct {
	justSvc service.JustificationService
}

// NewJustificationHandler cria JustificationHandler
func NewJustificationHandler(justSvc service.JustificationService) *JustificationHandler {
	return &JustificationHandler{justSvc: justSvc}
}

// Create abertura de justificativa pelo cooperado
// POST /api/v1/justifications
func (h *JustificationHandler) Create(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	var req dto.CreateJustificationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "falha na validação dos parâmetros")
		return
	}

	// cooperado só abre justificativa para si; gestor e admin podem abrir
	// em nome de qualquer um
	role, ok := MustGetRole(c)
	if !ok {
		return
	}
	if role == model.RoleWorker && req.WorkerID != GetWorkerID(c) {
		response.Forbidden(c, 10003, "cooperado só pode justificar os próprios plantões")
		return
	}

	result, err := h.justSvc.Create(c.Request.Context(), &req, userID)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidReason):
			response.BadRequest(c, 40001, "motivo de justificativa inválido")
		case errors.Is(err, service.ErrDescriptionRequired):
			response.BadRequest(c, 40002, "descrição é obrigatória quando o motivo é 'other'")
		case errors.Is(err, service.ErrMissingTimes):
			response.BadRequest(c, 40003, "informe ao menos um horário (entrada ou saída)")
		case errors.Is(err, service.ErrInvalidTimeRange):
			response.BadRequest(c, 40004, "horário de saída deve ser posterior ao de entrada")
		case errors.Is(err, service.ErrInvalidTimeFormat):
			response.BadRequest(c, 30003, "horário em formato inválido, use RFC 3339")
		case errors.Is(err, service.ErrWorkerNotFound):
			response.NotFound(c, 20001, "cooperado não encontrado")
		case errors.Is(err, service.ErrEntryPunchNotFound):
			response.NotFound(c, 30006, "entrada referenciada não encontrada")
		case errors.Is(err, pkgerrors.ErrInvalidPairRef):
			response.BadRequest(c, 30005, "pair_ref inválido: somente saída pode referenciar uma entrada")
		default:
			response.InternalError(c)
		}
		return
	}
	response.Created(c, result)
}

// Get consulta de uma justificativa
// GET /api/v1/justifications/:id
func (h *JustificationHandler) Get(c *gin.Context) {
	result, err := h.justSvc.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, service.ErrJustificationNotFound) {
			response.NotFound(c, 40005, "justificativa não encontrada")
			return
		}
		response.InternalError(c)
		return
	}
	response.OK(c, result)
}

// List listagem administrativa, com filtro opcional por status
// GET /api/v1/justifications?status=
func (h *JustificationHandler) List(c *gin.Context) {
	status := model.JustificationStatus(c.Query("status"))
	switch status {
	case "", model.JustificationPending, model.JustificationApproved, model.JustificationRejected:
	default:
		response.BadRequest(c, 10001, "status de filtro inválido")
		return
	}

	result, err := h.justSvc.List(c.Request.Context(), status)
	if err != nil {
		response.InternalError(c)
		return
	}
	response.OK(c, result)
}

// ListPending fila de pendências do gestor
// GET /api/v1/justifications/pending
func (h *JustificationHandler) ListPending(c *gin.Context) {
	result, err := h.justSvc.ListByStatus(c.Request.Context(), model.JustificationPending)
	if err != nil {
		response.InternalError(c)
		return
	}
	response.OK(c, result)
}

// ListMine justificativas do cooperado autenticado
// GET /api/v1/justifications/me
func (h *JustificationHandler) ListMine(c *gin.Context) {
	workerID := GetWorkerID(c)
	if workerID == "" {
		response.Forbidden(c, 10003, "conta sem vínculo com cooperado")
		return
	}

	result, err := h.justSvc.ListByWorker(c.Request.Context(), workerID)
	if err != nil {
		response.InternalError(c)
		return
	}
	response.OK(c, result)
}

// Approve aprovação pelo gestor, com propagação aos pontos vinculados
// POST /api/v1/justifications/:id/approve
func (h *JustificationHandler) Approve(c *gin.Context) {
	actorName, ok := MustGetUserName(c)
	if !ok {
		return
	}

	result, err := h.justSvc.Decide(c.Request.Context(), c.Param("id"), service.DecisionApprove, actorName, "")
	if err != nil {
		h.handleDecideError(c, err)
		return
	}
	response.OK(c, result)
}

// Reject rejeição pelo gestor; motivo obrigatório
// POST /api/v1/justifications/:id/reject
func (h *JustificationHandler) Reject(c *gin.Context) {
	actorName, ok := MustGetUserName(c)
	if !ok {
		return
	}

	var req dto.RejectJustificationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 40006, "rejeição exige motivo")
		return
	}

	result, err := h.justSvc.Decide(c.Request.Context(), c.Param("id"), service.DecisionReject, actorName, req.Reason)
	if err != nil {
		h.handleDecideError(c, err)
		return
	}
	response.OK(c, result)
}

func (h *JustificationHandler) handleDecideError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrJustificationNotFound):
		response.NotFound(c, 40005, "justificativa não encontrada")
	case errors.Is(err, service.ErrRejectReasonRequired):
		response.BadRequest(c, 40006, "rejeição exige motivo")
	case errors.Is(err, pkgerrors.ErrOptimisticLock):
		response.Conflict(c, 40007, "registro alterado por outra operação, tente novamente")
	default:
		response.InternalError(c)
	}
}
