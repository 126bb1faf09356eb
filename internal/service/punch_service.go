package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/007-sistemas/Sistema-Web-sub000/config"
	"github.com/007-sistemas/Sistema-Web-sub000/internal/dto"
	"github.com/007-sistemas/Sistema-Web-sub000/internal/model"
	"github.com/007-sistemas/Sistema-Web-sub000/internal/repository"
	pkgerrors "github.com/007-sistemas/Sistema-Web-sub000/pkg/errors"
)

// ── Erros de negócio do módulo de ponto ──

var (
	ErrPunchNotFound       = errors.New("registro de ponto não encontrado")
	ErrInvalidKind         = errors.New("tipo de batida inválido")
	ErrInvalidOrigin       = errors.New("origem de batida inválida")
	ErrManualPunchDisabled = errors.New("batida manual desabilitada; use o fluxo de justificativa")
)

// PunchService registro e administração de batidas de ponto
type PunchService interface {
	Create(ctx context.Context, req *dto.CreatePunchRequest, actorID string) (*dto.PunchResponse, error)
	GetByID(ctx context.Context, id string) (*dto.PunchResponse, error)
	List(ctx context.Context, filter repository.PunchFilter) ([]dto.PunchResponse, error)
	// Delete remoção administrativa: além de excluir o registro, repara o
	// par para que o pareamento volte a um estado coerente
	Delete(ctx context.Context, id string, actorID string) error
}

type punchService struct {
	cfg    *config.Config
	repo   *repository.Repository
	logger *zap.Logger
}

// NewPunchService cria PunchService
func NewPunchService(cfg *config.Config, repo *repository.Repository, logger *zap.Logger) PunchService {
	return &punchService{cfg: cfg, repo: repo, logger: logger}
}

// ────────────────────── Create ──────────────────────

// Create registra uma batida. Toda validação acontece antes de qualquer
// escrita; nada é aplicado parcialmente.
//
// Saída biométrica procura a entrada aberta mais recente do cooperado e
// a fecha, gravando pair_ref na saída (nunca o inverso). Batida manual
// nasce pendente e aguarda decisão do gestor.
func (s *punchService) Create(ctx context.Context, req *dto.CreatePunchRequest, actorID string) (*dto.PunchResponse, error) {
	kind := model.PunchKind(req.Kind)
	switch kind {
	case model.KindEntry, model.KindBreakOut, model.KindBreakIn, model.KindExit:
	default:
		return nil, ErrInvalidKind
	}

	origin := model.PunchOrigin(req.Origin)
	if origin == "" {
		origin = model.OriginBiometric
	}
	switch origin {
	case model.OriginBiometric, model.OriginManual:
	default:
		return nil, ErrInvalidOrigin
	}
	if origin == model.OriginManual && !s.cfg.Feature.ManualPunchEnabled {
		return nil, ErrManualPunchDisabled
	}

	punchTime, err := time.Parse(time.RFC3339, req.PunchTime)
	if err != nil {
		return nil, ErrInvalidTimeFormat
	}

	worker, err := s.repo.Worker.GetByID(ctx, req.WorkerID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrWorkerNotFound
		}
		s.logger.Error("falha ao buscar cooperado", zap.String("worker_id", req.WorkerID), zap.Error(err))
		return nil, err
	}

	// pair_ref explícito: só saída pode referenciar, e o alvo precisa
	// ser uma entrada existente; a invariante vale para toda escrita
	if req.PairRef != nil {
		if kind != model.KindExit {
			return nil, pkgerrors.ErrInvalidPairRef
		}
		target, err := s.repo.Punch.GetByID(ctx, *req.PairRef)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, ErrEntryPunchNotFound
			}
			return nil, err
		}
		if target.Kind != model.KindEntry {
			return nil, pkgerrors.ErrInvalidPairRef
		}
	}

	// submissão duplicada (mesmo cooperado, tipo e horário): estado final
	// idêntico devolve o registro existente como sucesso; estado pretendido
	// divergente é conflito, nunca sobrescrita silenciosa
	existing, err := s.findDuplicate(ctx, req.WorkerID, kind, punchTime)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		if !sameIntendedState(existing, origin, req) {
			return nil, pkgerrors.ErrConflict
		}
		return dto.NewPunchResponse(existing), nil
	}

	status := model.PunchOpen
	if origin == model.OriginManual {
		status = model.PunchPending
	}

	punch := &model.Punch{
		PunchID:    uuid.New().String(),
		WorkerID:   worker.WorkerID,
		WorkerName: worker.Name,
		PunchTime:  punchTime,
		Kind:       kind,
		Origin:     origin,
		Status:     status,
		HospitalID: req.HospitalID,
		SectorID:   req.SectorID,
		PairRef:    req.PairRef,
	}
	// totem não tem conta de usuário; nesse caso created_by fica nulo e a
	// origem biométrica identifica a fonte
	if actorID != "" {
		punch.CreatedBy = &actorID
	}

	err = s.repo.Transaction(ctx, func(txRepo *repository.Repository) error {
		if kind == model.KindExit && origin == model.OriginBiometric && punch.PairRef == nil {
			entry, err := s.findOpenEntry(ctx, txRepo, worker.WorkerID, punchTime)
			if err != nil {
				return err
			}
			if entry != nil {
				punch.PairRef = &entry.PunchID
				punch.Status = model.PunchClosed
				entry.Status = model.PunchClosed
				if err := txRepo.Punch.Update(ctx, entry); err != nil {
					return err
				}
			}
			// sem entrada aberta: a saída fica órfã (status open) e o
			// pareamento a exibe como turno sem entrada
		}
		return txRepo.Punch.Create(ctx, punch)
	})
	if err != nil {
		s.logger.Error("falha ao registrar batida",
			zap.String("worker_id", req.WorkerID),
			zap.String("kind", string(kind)),
			zap.Error(err))
		return nil, err
	}

	return dto.NewPunchResponse(punch), nil
}

// findOpenEntry entrada aberta mais recente anterior ao horário da saída
func (s *punchService) findOpenEntry(ctx context.Context, txRepo *repository.Repository, workerID string, before time.Time) (*model.Punch, error) {
	punches, err := txRepo.Punch.ListByWorker(ctx, workerID, nil, &before)
	if err != nil {
		return nil, err
	}
	var latest *model.Punch
	for i := range punches {
		p := &punches[i]
		if p.Kind != model.KindEntry || p.Status != model.PunchOpen {
			continue
		}
		if latest == nil || p.PunchTime.After(latest.PunchTime) {
			latest = p
		}
	}
	return latest, nil
}

// sameIntendedState compara o registro existente com o estado que a
// requisição pretende gravar. Campo omitido na requisição não diverge:
// uma saída reenviada sem pair_ref continua compatível com o par que o
// sistema já atribuiu na primeira gravação.
func sameIntendedState(existing *model.Punch, origin model.PunchOrigin, req *dto.CreatePunchRequest) bool {
	if existing.Origin != origin {
		return false
	}
	if req.HospitalID != nil && !strPtrEqual(existing.HospitalID, req.HospitalID) {
		return false
	}
	if req.SectorID != nil && !strPtrEqual(existing.SectorID, req.SectorID) {
		return false
	}
	if req.PairRef != nil && !strPtrEqual(existing.PairRef, req.PairRef) {
		return false
	}
	return true
}

func strPtrEqual(a, b *string) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}

func (s *punchService) findDuplicate(ctx context.Context, workerID string, kind model.PunchKind, at time.Time) (*model.Punch, error) {
	punches, err := s.repo.Punch.ListByWorker(ctx, workerID, &at, nil)
	if err != nil {
		return nil, err
	}
	for i := range punches {
		p := &punches[i]
		if p.Kind == kind && p.PunchTime.Equal(at) {
			return p, nil
		}
	}
	return nil, nil
}

// ────────────────────── Consultas ──────────────────────

func (s *punchService) GetByID(ctx context.Context, id string) (*dto.PunchResponse, error) {
	punch, err := s.repo.Punch.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPunchNotFound
		}
		s.logger.Error("falha ao buscar registro de ponto", zap.String("id", id), zap.Error(err))
		return nil, err
	}
	return dto.NewPunchResponse(punch), nil
}

func (s *punchService) List(ctx context.Context, filter repository.PunchFilter) ([]dto.PunchResponse, error) {
	punches, err := s.repo.Punch.List(ctx, filter)
	if err != nil {
		s.logger.Error("falha ao listar registros de ponto", zap.Error(err))
		return nil, err
	}
	result := make([]dto.PunchResponse, 0, len(punches))
	for i := range punches {
		result = append(result, *dto.NewPunchResponse(&punches[i]))
	}
	return result, nil
}

// ────────────────────── Delete ──────────────────────

// Delete remoção administrativa com reparo do par:
//   - excluir uma saída reabre a entrada que ela fechava
//   - excluir uma entrada desfaz o pair_ref das saídas que a referenciam,
//     que voltam a aparecer como órfãs
func (s *punchService) Delete(ctx context.Context, id string, actorID string) error {
	punch, err := s.repo.Punch.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrPunchNotFound
		}
		s.logger.Error("falha ao buscar registro de ponto", zap.String("id", id), zap.Error(err))
		return err
	}

	err = s.repo.Transaction(ctx, func(txRepo *repository.Repository) error {
		if punch.Kind == model.KindExit && punch.PairRef != nil {
			entry, err := txRepo.Punch.GetByID(ctx, *punch.PairRef)
			if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
				return err
			}
			if entry != nil && entry.Status == model.PunchClosed {
				entry.Status = model.PunchOpen
				entry.ApprovedBy = nil
				if err := txRepo.Punch.Update(ctx, entry); err != nil {
					return err
				}
			}
		}

		if punch.Kind == model.KindEntry {
			exits, err := txRepo.Punch.ListByPairRef(ctx, punch.PunchID)
			if err != nil {
				return err
			}
			for i := range exits {
				exits[i].PairRef = nil
				if err := txRepo.Punch.Update(ctx, &exits[i]); err != nil {
					return err
				}
			}
		}

		return txRepo.Punch.Delete(ctx, id, actorID)
	})
	if err != nil {
		s.logger.Error("falha ao excluir registro de ponto", zap.String("id", id), zap.Error(err))
		return err
	}

	s.logger.Info("registro de ponto excluído",
		zap.String("id", id),
		zap.String("deleted_by", actorID))
	return nil
}
