package service

import (
	"go.uber.org/zap"

	"github.com/007-sistemas/Sistema-Web-sub000/config"
	"github.com/007-sistemas/Sistema-Web-sub000/internal/repository"
	"github.com/007-sistemas/Sistema-Web-sub000/pkg/jwt"
	"github.com/007-sistemas/Sistema-Web-sub000/pkg/redis"
)

// Service agregador dos serviços de negócio
type Service struct {
	Auth          AuthService
	Worker        WorkerService
	Hospital      HospitalService
	Punch         PunchService
	Shift         ShiftService
	Justification JustificationService
	Sweep         SweepService
}

// NewService cria o agregador com todos os serviços
func NewService(cfg *config.Config, repo *repository.Repository, jwtMgr *jwt.Manager, rdb *redis.Client, logger *zap.Logger) *Service {
	return &Service{
		Auth:          NewAuthService(cfg, repo, jwtMgr, rdb, logger),
		Worker:        NewWorkerService(repo, logger),
		Hospital:      NewHospitalService(repo, logger),
		Punch:         NewPunchService(cfg, repo, logger),
		Shift:         NewShiftService(repo, logger),
		Justification: NewJustificationService(repo, logger),
		Sweep:         NewSweepService(repo, logger),
	}
}
