package handler

import "github.com/007-sistemas/Sistema-Web-sub000/internal/service"

// Handler agregador de todos os handlers HTTP
type Handler struct {
	Auth          *AuthHandler
	Worker        *WorkerHandler
	Hospital      *HospitalHandler
	Punch         *PunchHandler
	Shift         *ShiftHandler
	Justification *JustificationHandler
	Sweep         *SweepHandler
}

// NewHandler cria o agregador de handlers
func NewHandler(svc *service.Service) *Handler {
	return &Handler{
		Auth:          NewAuthHandler(svc.Auth),
		Worker:        NewWorkerHandler(svc.Worker),
		Hospital:      NewHospitalHandler(svc.Hospital),
		Punch:         NewPunchHandler(svc.Punch),
		Shift:         NewShiftHandler(svc.Shift),
		Justification: NewJustificationHandler(svc.Justification),
		Sweep:         NewSweepHandler(svc.Sweep),
	}
}
