package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/007-sistemas/Sistema-Web-sub000/internal/dto"
	"github.com/007-sistemas/Sistema-Web-sub000/internal/service"
	"github.com/007-sistemas/Sistema-Web-sub000/pkg/response"
)

// WorkerHandler handlers HTTP do diretório de cooperados
type WorkerHandler struct {
	workerSvc service.WorkerService
}

// NewWorkerHandler cria WorkerHandler
func NewWorkerHandler(workerSvc service.WorkerService) *WorkerHandler {
	return &WorkerHandler{workerSvc: workerSvc}
}

// Create cadastro de cooperado
// POST /api/v1/workers
func (h *WorkerHandler) Create(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	var req dto.CreateWorkerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "falha na validação dos parâmetros")
		return
	}

	result, err := h.workerSvc.Create(c.Request.Context(), &req, userID)
	if err != nil {
		if errors.Is(err, service.ErrSectorNotFound) {
			response.NotFound(c, 21002, "setor não encontrado")
			return
		}
		response.InternalError(c)
		return
	}
	response.Created(c, result)
}

// Get consulta de cooperado
// GET /api/v1/workers/:id
func (h *WorkerHandler) Get(c *gin.Context) {
	result, err := h.workerSvc.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, service.ErrWorkerNotFound) {
			response.NotFound(c, 20001, "cooperado não encontrado")
			return
		}
		response.InternalError(c)
		return
	}
	response.OK(c, result)
}

// List listagem de cooperados
// GET /api/v1/workers
func (h *WorkerHandler) List(c *gin.Context) {
	result, err := h.workerSvc.List(c.Request.Context())
	if err != nil {
		response.InternalError(c)
		return
	}
	response.OK(c, result)
}

// Update atualização parcial de cooperado
// PUT /api/v1/workers/:id
func (h *WorkerHandler) Update(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	var req dto.UpdateWorkerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "falha na validação dos parâmetros")
		return
	}

	result, err := h.workerSvc.Update(c.Request.Context(), c.Param("id"), &req, userID)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrWorkerNotFound):
			response.NotFound(c, 20001, "cooperado não encontrado")
		case errors.Is(err, service.ErrSectorNotFound):
			response.NotFound(c, 21002, "setor não encontrado")
		default:
			response.InternalError(c)
		}
		return
	}
	response.OK(c, result)
}

// Delete exclusão lógica de cooperado
// DELETE /api/v1/workers/:id
func (h *WorkerHandler) Delete(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	if err := h.workerSvc.Delete(c.Request.Context(), c.Param("id"), userID); err != nil {
		if errors.Is(err, service.ErrWorkerNotFound) {
			response.NotFound(c, 20001, "cooperado não encontrado")
			return
		}
		response.InternalError(c)
		return
	}
	response.OK(c, nil)
}
