package dto

import (
	"time"

	"github.com/007-sistemas/Sistema-Web-sub000/internal/model"
)

// ── Módulo de justificativas ──

// CreateJustificationRequest solicitação de validação de plantão
// irregular ou ausente. Ao menos um dos horários deve ser informado:
//   - entry_time e exit_time: plantão inteiro sem registro (cria entrada
//     e saída pendentes, pareadas)
//   - somente exit_time: saída esquecida (cria a saída pendente; se
//     entry_punch_id vier preenchido, a saída é pareada à entrada aberta
//     existente)
//   - somente entry_time: entrada esquecida (cria a entrada pendente)
type CreateJustificationRequest struct {
	WorkerID     string  `json:"worker_id" binding:"required"`
	SectorID     *string `json:"sector_id"`
	HospitalID   *string `json:"hospital_id"`
	Reason       string  `json:"reason" binding:"required"`
	Description  string  `json:"description"` // obrigatória quando reason = "other"
	EntryTime    *string `json:"entry_time"`  // RFC 3339
	ExitTime     *string `json:"exit_time"`   // RFC 3339
	EntryPunchID *string `json:"entry_punch_id"`
}

// RejectJustificationRequest rejeição exige motivo legível
type RejectJustificationRequest struct {
	Reason string `json:"reason" binding:"required"`
}

// JustificationResponse justificativa na resposta
type JustificationResponse struct {
	ID              string `json:"id"`
	WorkerID        string `json:"worker_id"`
	WorkerName      string `json:"worker_name"`
	SectorID        string `json:"sector_id,omitempty"`
	LinkedPunchID   string `json:"linked_punch_id,omitempty"`
	Reason          string `json:"reason"`
	Description     string `json:"description,omitempty"`
	Status          string `json:"status"`
	RequestedAt     string `json:"requested_at"`
	DecidedAt       string `json:"decided_at,omitempty"`
	DecidedBy       string `json:"decided_by,omitempty"`
	RejectionReason string `json:"rejection_reason,omitempty"`
}

// NewJustificationResponse converte o modelo para resposta
func NewJustificationResponse(j *model.Justification) *JustificationResponse {
	resp := &JustificationResponse{
		ID:          j.JustificationID,
		WorkerID:    j.WorkerID,
		WorkerName:  j.WorkerName,
		Reason:      string(j.Reason),
		Description: j.Description,
		Status:      string(j.Status),
		RequestedAt: j.RequestedAt.Format(time.RFC3339),
	}
	if j.SectorID != nil {
		resp.SectorID = *j.SectorID
	}
	if j.LinkedPunchID != nil {
		resp.LinkedPunchID = *j.LinkedPunchID
	}
	if j.DecidedAt != nil {
		resp.DecidedAt = j.DecidedAt.Format(time.RFC3339)
	}
	if j.DecidedBy != nil {
		resp.DecidedBy = *j.DecidedBy
	}
	if j.RejectionReason != nil {
		resp.RejectionReason = *j.RejectionReason
	}
	return resp
}
