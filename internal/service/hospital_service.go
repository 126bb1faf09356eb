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

// ── Erros de negócio do diretório ──

var (
	ErrHospitalNotFound = errors.New("hospital não encontrado")
	ErrSectorNotFound   = errors.New("setor não encontrado")
	ErrSlugTaken        = errors.New("slug já cadastrado")
)

// HospitalService diretório de hospitais e setores
type HospitalService interface {
	Create(ctx context.Context, req *dto.CreateHospitalRequest, actorID string) (*dto.HospitalResponse, error)
	GetByID(ctx context.Context, id string) (*dto.HospitalResponse, error)
	List(ctx context.Context) ([]dto.HospitalResponse, error)
	Update(ctx context.Context, id string, req *dto.UpdateHospitalRequest, actorID string) (*dto.HospitalResponse, error)
	Delete(ctx context.Context, id string, actorID string) error

	CreateSector(ctx context.Context, hospitalID string, req *dto.CreateSectorRequest, actorID string) (*dto.SectorResponse, error)
	ListSectors(ctx context.Context, hospitalID string) ([]dto.SectorResponse, error)
	DeleteSector(ctx context.Context, id string, actorID string) error
}

type hospitalService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewHospitalService cria HospitalService
func NewHospitalService(repo *repository.Repository, logger *zap.Logger) HospitalService {
	return &hospitalService{repo: repo, logger: logger}
}

// ────────────────────── Hospitais ──────────────────────

func (s *hospitalService) Create(ctx context.Context, req *dto.CreateHospitalRequest, actorID string) (*dto.HospitalResponse, error) {
	// o esquema legado não impõe unicidade de slug; o cadastro novo impede
	// a duplicata na entrada e a varredura saneia o estoque antigo
	if taken, err := s.slugTaken(ctx, req.Slug, ""); err != nil {
		return nil, err
	} else if taken {
		return nil, ErrSlugTaken
	}

	hospital := &model.Hospital{
		HospitalID: uuid.New().String(),
		Name:       req.Name,
		Slug:       req.Slug,
		City:       req.City,
	}
	hospital.CreatedBy = &actorID

	if err := s.repo.Hospital.Create(ctx, hospital); err != nil {
		s.logger.Error("falha ao cadastrar hospital", zap.String("slug", req.Slug), zap.Error(err))
		return nil, err
	}
	return dto.NewHospitalResponse(hospital), nil
}

func (s *hospitalService) GetByID(ctx context.Context, id string) (*dto.HospitalResponse, error) {
	hospital, err := s.repo.Hospital.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrHospitalNotFound
		}
		return nil, err
	}
	return dto.NewHospitalResponse(hospital), nil
}

func (s *hospitalService) List(ctx context.Context) ([]dto.HospitalResponse, error) {
	hospitals, err := s.repo.Hospital.List(ctx)
	if err != nil {
		s.logger.Error("falha ao listar hospitais", zap.Error(err))
		return nil, err
	}
	result := make([]dto.HospitalResponse, 0, len(hospitals))
	for i := range hospitals {
		result = append(result, *dto.NewHospitalResponse(&hospitals[i]))
	}
	return result, nil
}

func (s *hospitalService) Update(ctx context.Context, id string, req *dto.UpdateHospitalRequest, actorID string) (*dto.HospitalResponse, error) {
	hospital, err := s.repo.Hospital.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrHospitalNotFound
		}
		return nil, err
	}

	if req.Name != nil {
		hospital.Name = *req.Name
	}
	if req.Slug != nil && *req.Slug != hospital.Slug {
		if taken, err := s.slugTaken(ctx, *req.Slug, hospital.HospitalID); err != nil {
			return nil, err
		} else if taken {
			return nil, ErrSlugTaken
		}
		hospital.Slug = *req.Slug
	}
	if req.City != nil {
		hospital.City = *req.City
	}
	hospital.UpdatedBy = &actorID

	if err := s.repo.Hospital.Update(ctx, hospital); err != nil {
		s.logger.Error("falha ao atualizar hospital", zap.String("id", id), zap.Error(err))
		return nil, err
	}
	return dto.NewHospitalResponse(hospital), nil
}

func (s *hospitalService) Delete(ctx context.Context, id string, actorID string) error {
	if _, err := s.repo.Hospital.GetByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrHospitalNotFound
		}
		return err
	}
	if err := s.repo.Hospital.Delete(ctx, id, actorID); err != nil {
		s.logger.Error("falha ao excluir hospital", zap.String("id", id), zap.Error(err))
		return err
	}
	return nil
}

func (s *hospitalService) slugTaken(ctx context.Context, slug, exceptID string) (bool, error) {
	hospitals, err := s.repo.Hospital.List(ctx)
	if err != nil {
		return false, err
	}
	for _, h := range hospitals {
		if h.Slug == slug && h.HospitalID != exceptID {
			return true, nil
		}
	}
	return false, nil
}

// ────────────────────── Setores ──────────────────────

func (s *hospitalService) CreateSector(ctx context.Context, hospitalID string, req *dto.CreateSectorRequest, actorID string) (*dto.SectorResponse, error) {
	if _, err := s.repo.Hospital.GetByID(ctx, hospitalID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrHospitalNotFound
		}
		return nil, err
	}

	sector := &model.Sector{
		SectorID:   uuid.New().String(),
		HospitalID: hospitalID,
		Name:       req.Name,
	}
	sector.CreatedBy = &actorID

	if err := s.repo.Sector.Create(ctx, sector); err != nil {
		s.logger.Error("falha ao cadastrar setor", zap.String("hospital_id", hospitalID), zap.Error(err))
		return nil, err
	}
	return dto.NewSectorResponse(sector), nil
}

func (s *hospitalService) ListSectors(ctx context.Context, hospitalID string) ([]dto.SectorResponse, error) {
	sectors, err := s.repo.Sector.ListByHospital(ctx, hospitalID)
	if err != nil {
		s.logger.Error("falha ao listar setores", zap.String("hospital_id", hospitalID), zap.Error(err))
		return nil, err
	}
	result := make([]dto.SectorResponse, 0, len(sectors))
	for i := range sectors {
		result = append(result, *dto.NewSectorResponse(&sectors[i]))
	}
	return result, nil
}

func (s *hospitalService) DeleteSector(ctx context.Context, id string, actorID string) error {
	if _, err := s.repo.Sector.GetByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrSectorNotFound
		}
		return err
	}
	if err := s.repo.Sector.Delete(ctx, id, actorID); err != nil {
		s.logger.Error("falha ao excluir setor", zap.String("id", id), zap.Error(err))
		return err
	}
	return nil
}
