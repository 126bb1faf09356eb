package dto

import "github.com/007-sistemas/Sistema-Web-sub000/internal/model"

// ── Diretório de hospitais e setores ──

// CreateHospitalRequest cadastro de hospital
type CreateHospitalRequest struct {
	Name string `json:"name" binding:"required"`
	Slug string `json:"slug" binding:"required"`
	City string `json:"city"`
}

// UpdateHospitalRequest atualização parcial de hospital
type UpdateHospitalRequest struct {
	Name *string `json:"name"`
	Slug *string `json:"slug"`
	City *string `json:"city"`
}

// HospitalResponse hospital na resposta
type HospitalResponse struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Slug string `json:"slug"`
	City string `json:"city,omitempty"`
}

// NewHospitalResponse converte o modelo para resposta
func NewHospitalResponse(h *model.Hospital) *HospitalResponse {
	return &HospitalResponse{
		ID:   h.HospitalID,
		Name: h.Name,
		Slug: h.Slug,
		City: h.City,
	}
}

// CreateSectorRequest cadastro de setor
type CreateSectorRequest struct {
	Name string `json:"name" binding:"required"`
}

// SectorResponse setor na resposta
type SectorResponse struct {
	ID         string `json:"id"`
	HospitalID string `json:"hospital_id"`
	Name       string `json:"name"`
}

// NewSectorResponse converte o modelo para resposta
func NewSectorResponse(s *model.Sector) *SectorResponse {
	return &SectorResponse{
		ID:         s.SectorID,
		HospitalID: s.HospitalID,
		Name:       s.Name,
	}
}
