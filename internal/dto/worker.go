package dto

import "github.com/007-sistemas/Sistema-Web-sub000/internal/model"

// ── Diretório de cooperados ──

// CreateWorkerRequest cadastro de cooperado
type CreateWorkerRequest struct {
	Name         string  `json:"name" binding:"required"`
	Registration string  `json:"registration"`
	SectorID     *string `json:"sector_id"`
}

// UpdateWorkerRequest atualização parcial de cooperado
type UpdateWorkerRequest struct {
	Name         *string `json:"name"`
	Registration *string `json:"registration"`
	SectorID     *string `json:"sector_id"`
}

// WorkerResponse cooperado na resposta
type WorkerResponse struct {
	ID            string `json:"id"`
	Name          string `json:"name"`
	Registration  string `json:"registration,omitempty"`
	SectorID      string `json:"sector_id,omitempty"`
	IsPlaceholder bool   `json:"is_placeholder,omitempty"`
}

// NewWorkerResponse converte o modelo para resposta
func NewWorkerResponse(w *model.Worker) *WorkerResponse {
	resp := &WorkerResponse{
		ID:            w.WorkerID,
		Name:          w.Name,
		Registration:  w.Registration,
		IsPlaceholder: w.IsPlaceholder,
	}
	if w.SectorID != nil {
		resp.SectorID = *w.SectorID
	}
	return resp
}
