package service

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/007-sistemas/Sistema-Web-sub000/internal/dto"
	"github.com/007-sistemas/Sistema-Web-sub000/internal/model"
	"github.com/007-sistemas/Sistema-Web-sub000/internal/repository"
)

// WorkerService diretório de cooperados
type WorkerService interface {
	Create(ctx context.Context, req *dto.CreateWorkerRequest, actorID string) (*dto.WorkerResponse, error)
	GetByID(ctx context.Context, id string) (*dto.WorkerResponse, error)
	List(ctx context.Context) ([]dto.WorkerResponse, error)
	Update(ctx context.Context, id string, req *dto.UpdateWorkerRequest, actorID string) (*dto.WorkerResponse, error)
	Delete(ctx context.Context, id string, actorID string) error
}

type workerService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewWorkerService cria WorkerService
func NewWorkerService(repo *repository.Repository, logger *zap.Logger) WorkerService {
	return &workerService{repo: repo, logger: logger}
}

func (s *workerService) Create(ctx context.Context, req *dto.CreateWorkerRequest, actorID string) (*dto.WorkerResponse, error) {
	if req.SectorID != nil {
		if _, err := s.repo.Sector.GetByID(ctx, *req.SectorID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, ErrSectorNotFound
			}
			return nil, err
		}
	}

	worker := &model.Worker{
		WorkerID:     uuid.New().String(),
		Name:         req.Name,
		Registration: req.Registration,
		SectorID:     req.SectorID,
	}
	worker.CreatedBy = &actorID

	if err := s.repo.Worker.Create(ctx, worker); err != nil {
		s.logger.Error("falha ao cadastrar cooperado", zap.String("name", req.Name), zap.Error(err))
		return nil, err
	}
	return dto.NewWorkerResponse(worker), nil
}

func (s *workerService) GetByID(ctx context.Context, id string) (*dto.WorkerResponse, error) {
	worker, err := s.repo.Worker.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrWorkerNotFound
		}
		return nil, err
	}
	return dto.NewWorkerResponse(worker), nil
}

func (s *workerService) List(ctx context.Context) ([]dto.WorkerResponse, error) {
	workers, err := s.repo.Worker.List(ctx)
	if err != nil {
		s.logger.Error("falha ao listar cooperados", zap.Error(err))
		return nil, err
	}
	result := make([]dto.WorkerResponse, 0, len(workers))
	for i := range workers {
		result = append(result, *dto.NewWorkerResponse(&workers[i]))
	}
	return result, nil
}

func (s *workerService) Update(ctx context.Context, id string, req *dto.UpdateWorkerRequest, actorID string) (*dto.WorkerResponse, error) {
	worker, err := s.repo.Worker.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrWorkerNotFound
		}
		return nil, err
	}

	if req.Name != nil {
		worker.Name = *req.Name
	}
	if req.Registration != nil {
		worker.Registration = *req.Registration
	}
	if req.SectorID != nil {
		if _, err := s.repo.Sector.GetByID(ctx, *req.SectorID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, ErrSectorNotFound
			}
			return nil, err
		}
		worker.SectorID = req.SectorID
	}
	// completar o cadastro de um registro sintetizado o torna definitivo
	if worker.IsPlaceholder && req.Name != nil {
		worker.IsPlaceholder = false
	}
	worker.UpdatedBy = &actorID

	if err := s.repo.Worker.Update(ctx, worker); err != nil {
		s.logger.Error("falha ao atualizar cooperado", zap.String("id", id), zap.Error(err))
		return nil, err
	}
	return dto.NewWorkerResponse(worker), nil
}

func (s *workerService) Delete(ctx context.Context, id string, actorID string) error {
	if _, err := s.repo.Worker.GetByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrWorkerNotFound
		}
		return err
	}
	if err := s.repo.Worker.Delete(ctx, id, actorID); err != nil {
		s.logger.Error("falha ao excluir cooperado", zap.String("id", id), zap.Error(err))
		return err
	}
	return nil
}
