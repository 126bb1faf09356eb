package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/007-sistemas/Sistema-Web-sub000/internal/dto"
	"github.com/007-sistemas/Sistema-Web-sub000/internal/service"
	"github.com/007-sistemas/Sistema-Web-sub000/pkg/response"
)

// HospitalHandler handlers HTTP do diretório de hospitais e setores
type HospitalHandler struct {
	hospitalSvc service.HospitalService
}

// NewHospitalHandler cria HospitalHandler
func NewHospitalHandler(hospitalSvc service.HospitalService) *HospitalHandler {
	return &HospitalHandler{hospitalSvc: hospitalSvc}
}

// Create cadastro de hospital
// POST /api/v1/hospitals
func (h *HospitalHandler) Create(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	var req dto.CreateHospitalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "falha na validação dos parâmetros")
		return
	}

	result, err := h.hospitalSvc.Create(c.Request.Context(), &req, userID)
	if err != nil {
		if errors.Is(err, service.ErrSlugTaken) {
			response.Conflict(c, 21003, "slug já cadastrado")
			return
		}
		response.InternalError(c)
		return
	}
	response.Created(c, result)
}

// Get consulta de hospital
// GET /api/v1/hospitals/:id
func (h *HospitalHandler) Get(c *gin.Context) {
	result, err := h.hospitalSvc.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, service.ErrHospitalNotFound) {
			response.NotFound(c, 21001, "hospital não encontrado")
			return
		}
		response.InternalError(c)
		return
	}
	response.OK(c, result)
}

// List listagem de hospitais
// GET /api/v1/hospitals
func (h *HospitalHandler) List(c *gin.Context) {
	result, err := h.hospitalSvc.List(c.Request.Context())
	if err != nil {
		response.InternalError(c)
		return
	}
	response.OK(c, result)
}

// Update atualização parcial de hospital
// PUT /api/v1/hospitals/:id
func (h *HospitalHandler) Update(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	var req dto.UpdateHospitalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "falha na validação dos parâmetros")
		return
	}

	result, err := h.hospitalSvc.Update(c.Request.Context(), c.Param("id"), &req, userID)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrHospitalNotFound):
			response.NotFound(c, 21001, "hospital não encontrado")
		case errors.Is(err, service.ErrSlugTaken):
			response.Conflict(c, 21003, "slug já cadastrado")
		default:
			response.InternalError(c)
		}
		return
	}
	response.OK(c, result)
}

// Delete exclusão lógica de hospital
// DELETE /api/v1/hospitals/:id
func (h *HospitalHandler) Delete(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	if err := h.hospitalSvc.Delete(c.Request.Context(), c.Param("id"), userID); err != nil {
		if errors.Is(err, service.ErrHospitalNotFound) {
			response.NotFound(c, 21001, "hospital não encontrado")
			return
		}
		response.InternalError(c)
		return
	}
	response.OK(c, nil)
}

// CreateSector cadastro de setor em um hospital
// POST /api/v1/hospitals/:id/sectors
func (h *HospitalHandler) CreateSector(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	var req dto.CreateSectorRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "falha na validação dos parâmetros")
		return
	}

	result, err := h.hospitalSvc.CreateSector(c.Request.Context(), c.Param("id"), &req, userID)
	if err != nil {
		if errors.Is(err, service.ErrHospitalNotFound) {
			response.NotFound(c, 21001, "hospital não encontrado")
			return
		}
		response.InternalError(c)
		return
	}
	response.Created(c, result)
}

// ListSectors setores de um hospital
// GET /api/v1/hospitals/:id/sectors
func (h *HospitalHandler) ListSectors(c *gin.Context) {
	result, err := h.hospitalSvc.ListSectors(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.InternalError(c)
		return
	}
	response.OK(c, result)
}

// DeleteSector exclusão lógica de setor
// DELETE /api/v1/sectors/:id
func (h *HospitalHandler) DeleteSector(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	if err := h.hospitalSvc.DeleteSector(c.Request.Context(), c.Param("id"), userID); err != nil {
		if errors.Is(err, service.ErrSectorNotFound) {
			response.NotFound(c, 21002, "setor não encontrado")
			return
		}
		response.InternalError(c)
		return
	}
	response.OK(c, nil)
}
