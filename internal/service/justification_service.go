package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/007-sistemas/Sistema-Web-sub000/internal/dto"
	"github.com/007-sistemas/Sistema-Web-sub000/internal/model"
	"github.com/007-sistemas/Sistema-Web-sub000/internal/repository"
	pkgerrors "github.com/007-sistemas/Sistema-Web-sub000/pkg/errors"
)

// ── Erros de negócio do módulo de justificativas ──

var (
	ErrJustificationNotFound = errors.New("justificativa não encontrada")
	ErrWorkerNotFound        = errors.New("cooperado não encontrado")
	ErrInvalidReason         = errors.New("motivo de justificativa inválido")
	ErrDescriptionRequired   = errors.New("descrição é obrigatória quando o motivo é 'other'")
	ErrMissingTimes          = errors.New("informe ao menos um horário (entrada ou saída)")
	ErrInvalidTimeRange      = errors.New("horário de saída deve ser posterior ao de entrada")
	ErrInvalidTimeFormat     = errors.New("horário em formato inválido, use RFC 3339")
	ErrRejectReasonRequired  = errors.New("rejeição exige motivo")
	ErrEntryPunchNotFound    = errors.New("entrada informada para pareamento não encontrada")
)

// Decision decisão do gestor
type Decision string

const (
	DecisionApprove Decision = "approve"
	DecisionReject  Decision = "reject"
)

// JustificationService fluxo de justificativas e reconciliação de decisões
type JustificationService interface {
	Create(ctx context.Context, req *dto.CreateJustificationRequest, actorID string) (*dto.JustificationResponse, error)
	GetByID(ctx context.Context, id string) (*dto.JustificationResponse, error)
	// List devolve todas as justificativas; status vazio não filtra
	List(ctx context.Context, status model.JustificationStatus) ([]dto.JustificationResponse, error)
	ListByStatus(ctx context.Context, status model.JustificationStatus) ([]dto.JustificationResponse, error)
	ListByWorker(ctx context.Context, workerID string) ([]dto.JustificationResponse, error)
	// Decide aplica a decisão do gestor à justificativa e a propaga para
	// todos os pontos vinculados. Idempotente: repetir a mesma decisão
	// não altera o estado; a decisão oposta sobrescreve a anterior.
	Decide(ctx context.Context, id string, decision Decision, actorName, reason string) (*dto.JustificationResponse, error)
}

type justificationService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewJustificationService cria JustificationService
func NewJustificationService(repo *repository.Repository, logger *zap.Logger) JustificationService {
	return &justificationService{repo: repo, logger: logger}
}

// ────────────────────── Create ──────────────────────

// Create registra a justificativa junto com um ou dois pontos pendentes
// (origem manual) que cobrem o plantão reportado, tudo em uma transação.
func (s *justificationService) Create(ctx context.Context, req *dto.CreateJustificationRequest, actorID string) (*dto.JustificationResponse, error) {
	reason := model.JustificationReason(req.Reason)
	switch reason {
	case model.ReasonForgotPunch, model.ReasonDeviceFailure, model.ReasonExternalDuty,
		model.ReasonShiftExtension, model.ReasonOther:
	default:
		return nil, ErrInvalidReason
	}
	if reason == model.ReasonOther && req.Description == "" {
		return nil, ErrDescriptionRequired
	}
	if req.EntryTime == nil && req.ExitTime == nil {
		return nil, ErrMissingTimes
	}

	entryTime, err := parseOptionalTime(req.EntryTime)
	if err != nil {
		return nil, ErrInvalidTimeFormat
	}
	exitTime, err := parseOptionalTime(req.ExitTime)
	if err != nil {
		return nil, ErrInvalidTimeFormat
	}
	if entryTime != nil && exitTime != nil && !exitTime.After(*entryTime) {
		return nil, ErrInvalidTimeRange
	}

	worker, err := s.repo.Worker.GetByID(ctx, req.WorkerID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrWorkerNotFound
		}
		s.logger.Error("falha ao buscar cooperado", zap.String("worker_id", req.WorkerID), zap.Error(err))
		return nil, err
	}

	// pareamento com entrada aberta já existente: precisa ser uma entrada
	pairEntryID := req.EntryPunchID
	if pairEntryID != nil {
		existing, err := s.repo.Punch.GetByID(ctx, *pairEntryID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, ErrEntryPunchNotFound
			}
			return nil, err
		}
		if existing.Kind != model.KindEntry {
			return nil, pkgerrors.ErrInvalidPairRef
		}
	}

	var justification *model.Justification

	err = s.repo.Transaction(ctx, func(txRepo *repository.Repository) error {
		var linkedPunchID string

		var entryID *string
		if entryTime != nil {
			entry := s.newPendingPunch(worker, req, model.KindEntry, *entryTime, actorID)
			if err := txRepo.Punch.Create(ctx, entry); err != nil {
				return err
			}
			entryID = &entry.PunchID
			linkedPunchID = entry.PunchID
		} else {
			entryID = pairEntryID
		}

		if exitTime != nil {
			exit := s.newPendingPunch(worker, req, model.KindExit, *exitTime, actorID)
			exit.PairRef = entryID // sempre saída → entrada
			if err := txRepo.Punch.Create(ctx, exit); err != nil {
				return err
			}
			linkedPunchID = exit.PunchID
		}

		justification = &model.Justification{
			JustificationID: uuid.New().String(),
			WorkerID:        worker.WorkerID,
			WorkerName:      worker.Name,
			SectorID:        req.SectorID,
			LinkedPunchID:   &linkedPunchID,
			Reason:          reason,
			Description:     req.Description,
			Status:          model.JustificationPending,
			RequestedAt:     time.Now(),
		}
		justification.CreatedBy = &actorID
		return txRepo.Justification.Create(ctx, justification)
	})
	if err != nil {
		s.logger.Error("falha ao criar justificativa", zap.String("worker_id", req.WorkerID), zap.Error(err))
		return nil, err
	}

	return dto.NewJustificationResponse(justification), nil
}

func (s *justificationService) newPendingPunch(worker *model.Worker, req *dto.CreateJustificationRequest, kind model.PunchKind, at time.Time, actorID string) *model.Punch {
	p := &model.Punch{
		PunchID:    uuid.New().String(),
		WorkerID:   worker.WorkerID,
		WorkerName: worker.Name,
		PunchTime:  at,
		Kind:       kind,
		Origin:     model.OriginManual,
		Status:     model.PunchPending,
		HospitalID: req.HospitalID,
		SectorID:   req.SectorID,
	}
	p.CreatedBy = &actorID
	return p
}

func parseOptionalTime(raw *string) (*time.Time, error) {
	if raw == nil || *raw == "" {
		return nil, nil
	}
	t, err := time.Parse(time.RFC3339, *raw)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

// ────────────────────── Consultas ──────────────────────

func (s *justificationService) GetByID(ctx context.Context, id string) (*dto.JustificationResponse, error) {
	j, err := s.repo.Justification.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrJustificationNotFound
		}
		s.logger.Error("falha ao buscar justificativa", zap.String("id", id), zap.Error(err))
		return nil, err
	}
	return dto.NewJustificationResponse(j), nil
}

func (s *justificationService) List(ctx context.Context, status model.JustificationStatus) ([]dto.JustificationResponse, error) {
	if status != "" {
		return s.ListByStatus(ctx, status)
	}
	list, err := s.repo.Justification.List(ctx)
	if err != nil {
		s.logger.Error("falha ao listar justificativas", zap.Error(err))
		return nil, err
	}
	return toJustificationResponses(list), nil
}

func (s *justificationService) ListByStatus(ctx context.Context, status model.JustificationStatus) ([]dto.JustificationResponse, error) {
	list, err := s.repo.Justification.ListByStatus(ctx, status)
	if err != nil {
		s.logger.Error("falha ao listar justificativas", zap.Error(err))
		return nil, err
	}
	return toJustificationResponses(list), nil
}

func (s *justificationService) ListByWorker(ctx context.Context, workerID string) ([]dto.JustificationResponse, error) {
	list, err := s.repo.Justification.ListByWorker(ctx, workerID)
	if err != nil {
		s.logger.Error("falha ao listar justificativas do cooperado", zap.Error(err))
		return nil, err
	}
	return toJustificationResponses(list), nil
}

func toJustificationResponses(list []model.Justification) []dto.JustificationResponse {
	result := make([]dto.JustificationResponse, 0, len(list))
	for i := range list {
		result = append(result, *dto.NewJustificationResponse(&list[i]))
	}
	return result
}

// ────────────────────── Decide ──────────────────────

// Decide fecha o ciclo da justificativa. A propagação alcança, nesta
// ordem fixa: a própria justificativa, o ponto vinculado, o par desse
// ponto (pair_ref) e qualquer ponto que referencie o vinculado na
// direção reversa. A sequência roda em transação única; escritas que já
// refletem o estado final são puladas, então reexecutar a mesma decisão
// apenas completa o que faltar.
//
// Ponto vinculado ou par ausentes não abortam a decisão: justificativas
// podem referenciar pontos criados por outro fluxo. Fica registrado em
// log como condição de alerta.
func (s *justificationService) Decide(ctx context.Context, id string, decision Decision, actorName, reason string) (*dto.JustificationResponse, error) {
	if decision == DecisionReject && reason == "" {
		return nil, ErrRejectReasonRequired
	}

	justification, err := s.repo.Justification.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrJustificationNotFound
		}
		s.logger.Error("falha ao buscar justificativa", zap.String("id", id), zap.Error(err))
		return nil, err
	}

	targetStatus := model.JustificationApproved
	punchStatus := model.PunchClosed
	if decision == DecisionReject {
		targetStatus = model.JustificationRejected
		punchStatus = model.PunchRejected
	}

	err = s.repo.Transaction(ctx, func(txRepo *repository.Repository) error {
		// 1. justificativa
		if justificationNeedsUpdate(justification, targetStatus, actorName, reason) {
			now := time.Now()
			justification.Status = targetStatus
			justification.DecidedBy = &actorName
			justification.DecidedAt = &now
			if decision == DecisionReject {
				justification.RejectionReason = &reason
			} else {
				justification.RejectionReason = nil
			}
			if err := txRepo.Justification.Update(ctx, justification); err != nil {
				return err
			}
		}

		// 2. ponto vinculado
		if justification.LinkedPunchID == nil {
			return nil
		}
		linked, err := txRepo.Punch.GetByID(ctx, *justification.LinkedPunchID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				// não fatal: a justificativa permanece decidida
				s.logger.Warn("ponto vinculado à justificativa não existe",
					zap.String("justification_id", id),
					zap.String("punch_id", *justification.LinkedPunchID))
				return nil
			}
			return err
		}
		if err := s.applyDecision(ctx, txRepo, linked, punchStatus, actorName, reason); err != nil {
			return err
		}

		// 3. par do ponto vinculado
		if linked.PairRef != nil {
			pair, err := txRepo.Punch.GetByID(ctx, *linked.PairRef)
			if err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					s.logger.Warn("par do ponto vinculado não existe",
						zap.String("punch_id", linked.PunchID),
						zap.String("pair_ref", *linked.PairRef))
				} else {
					return err
				}
			} else if err := s.applyDecision(ctx, txRepo, pair, punchStatus, actorName, reason); err != nil {
				return err
			}
		}

		// 4. pontos que apontam para o vinculado na direção reversa:
		// um ponto pode ser referenciado por outro criado depois dele
		reverse, err := txRepo.Punch.ListByPairRef(ctx, linked.PunchID)
		if err != nil {
			return err
		}
		for i := range reverse {
			if err := s.applyDecision(ctx, txRepo, &reverse[i], punchStatus, actorName, reason); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		s.logger.Error("falha ao reconciliar decisão",
			zap.String("justification_id", id),
			zap.String("decision", string(decision)),
			zap.Error(err))
		return nil, err
	}

	s.logger.Info("decisão reconciliada",
		zap.String("justification_id", id),
		zap.String("decision", string(decision)),
		zap.String("decided_by", actorName))

	return dto.NewJustificationResponse(justification), nil
}

// applyDecision grava a decisão em um ponto, zerando os campos do
// desfecho oposto (aprovador e rejeitador são mutuamente exclusivos)
func (s *justificationService) applyDecision(ctx context.Context, txRepo *repository.Repository, punch *model.Punch, status model.PunchStatus, actorName, reason string) error {
	if !punchNeedsUpdate(punch, status, actorName, reason) {
		return nil
	}
	punch.Status = status
	if status == model.PunchClosed {
		punch.ApprovedBy = &actorName
		punch.RejectedBy = nil
		punch.RejectionReason = nil
	} else {
		punch.RejectedBy = &actorName
		punch.RejectionReason = &reason
		punch.ApprovedBy = nil
	}
	return txRepo.Punch.Update(ctx, punch)
}

func justificationNeedsUpdate(j *model.Justification, status model.JustificationStatus, actorName, reason string) bool {
	if j.Status != status {
		return true
	}
	if j.DecidedBy == nil || *j.DecidedBy != actorName {
		return true
	}
	if status == model.JustificationRejected {
		return j.RejectionReason == nil || *j.RejectionReason != reason
	}
	return false
}

func punchNeedsUpdate(p *model.Punch, status model.PunchStatus, actorName, reason string) bool {
	if p.Status != status {
		return true
	}
	if status == model.PunchClosed {
		return p.ApprovedBy == nil || *p.ApprovedBy != actorName
	}
	if p.RejectedBy == nil || *p.RejectedBy != actorName {
		return true
	}
	return p.RejectionReason == nil || *p.RejectionReason != reason
}
