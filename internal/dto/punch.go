package dto

import (
	"time"

	"github.com/007-sistemas/Sistema-Web-sub000/internal/model"
)

// ── Módulo de ponto ──

// CreatePunchRequest registro de uma batida (totem ou manual)
type CreatePunchRequest struct {
	WorkerID   string  `json:"worker_id" binding:"required"`
	PunchTime  string  `json:"punch_time" binding:"required"` // RFC 3339
	Kind       string  `json:"kind" binding:"required"`       // entry | break_out | break_in | exit
	Origin     string  `json:"origin"`                        // biometric (default) | manual
	HospitalID *string `json:"hospital_id"`
	SectorID   *string `json:"sector_id"`
	PairRef    *string `json:"pair_ref"` // somente saída → entrada
}

// PunchResponse registro de ponto na resposta
type PunchResponse struct {
	ID              string `json:"id"`
	WorkerID        string `json:"worker_id"`
	WorkerName      string `json:"worker_name"`
	PunchTime       string `json:"punch_time"`
	Kind            string `json:"kind"`
	Origin          string `json:"origin"`
	Status          string `json:"status"`
	HospitalID      string `json:"hospital_id,omitempty"`
	SectorID        string `json:"sector_id,omitempty"`
	PairRef         string `json:"pair_ref,omitempty"`
	ApprovedBy      string `json:"approved_by,omitempty"`
	RejectedBy      string `json:"rejected_by,omitempty"`
	RejectionReason string `json:"rejection_reason,omitempty"`
}

// NewPunchResponse converte o modelo para resposta
func NewPunchResponse(p *model.Punch) *PunchResponse {
	resp := &PunchResponse{
		ID:         p.PunchID,
		WorkerID:   p.WorkerID,
		WorkerName: p.WorkerName,
		PunchTime:  p.PunchTime.Format(time.RFC3339),
		Kind:       string(p.Kind),
		Origin:     string(p.Origin),
		Status:     string(p.Status),
	}
	if p.HospitalID != nil {
		resp.HospitalID = *p.HospitalID
	}
	if p.SectorID != nil {
		resp.SectorID = *p.SectorID
	}
	if p.PairRef != nil {
		resp.PairRef = *p.PairRef
	}
	if p.ApprovedBy != nil {
		resp.ApprovedBy = *p.ApprovedBy
	}
	if p.RejectedBy != nil {
		resp.RejectedBy = *p.RejectedBy
	}
	if p.RejectionReason != nil {
		resp.RejectionReason = *p.RejectionReason
	}
	return resp
}
