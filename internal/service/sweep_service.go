package service

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"gorm.io/gorm"

	"go.uber.org/zap"

	"github.com/007-sistemas/Sistema-Web-sub000/internal/dto"
	"github.com/007-sistemas/Sistema-Web-sub000/internal/model"
	"github.com/007-sistemas/Sistema-Web-sub000/internal/repository"
)

// SweepService varredura de consistência da base legada
type SweepService interface {
	// Run executa todas as categorias de reparo e devolve o relatório.
	// Falha em uma categoria não interrompe as demais; os erros são
	// acumulados no relatório. Rodar duas vezes seguidas devolve a
	// segunda execução com todas as contagens zeradas.
	Run(ctx context.Context, actorID string) (*dto.SweepReport, error)
}

type sweepService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewSweepService cria SweepService
func NewSweepService(repo *repository.Repository, logger *zap.Logger) SweepService {
	return &sweepService{repo: repo, logger: logger}
}

// ────────────────────── Run ──────────────────────

func (s *sweepService) Run(ctx context.Context, actorID string) (*dto.SweepReport, error) {
	report := &dto.SweepReport{}

	s.dedupHospitals(ctx, actorID, report)
	s.dedupUsers(ctx, actorID, report)
	s.synthesizeWorkers(ctx, actorID, report)
	s.clearDanglingLinks(ctx, report)
	s.normalizeLegacyStatuses(ctx, report)

	s.logger.Info("varredura de consistência concluída",
		zap.Int("duplicate_hospital_slugs", report.DuplicateHospitalSlugs),
		zap.Int("duplicate_usernames", report.DuplicateUsernames),
		zap.Int("placeholder_workers", report.PlaceholderWorkers),
		zap.Int("dangling_justifications", report.DanglingJustifications),
		zap.Int("legacy_punch_statuses", report.LegacyPunchStatuses),
		zap.Int("legacy_justification_statuses", report.LegacyJustificationStats),
		zap.Int("errors", len(report.Errors)))

	return report, nil
}

// ────────────────────── Chaves naturais duplicadas ──────────────────────

// dedupHospitals para cada slug repetido mantém o hospital criado mais
// recentemente e remove os demais. Mesma regra de desempate usada na
// leitura por slug, então nenhuma referência visível muda de alvo.
func (s *sweepService) dedupHospitals(ctx context.Context, actorID string, report *dto.SweepReport) {
	hospitals, err := s.repo.Hospital.List(ctx)
	if err != nil {
		s.fail(report, "hospitais duplicados", err)
		return
	}

	bySlug := make(map[string][]model.Hospital)
	for _, h := range hospitals {
		bySlug[h.Slug] = append(bySlug[h.Slug], h)
	}

	for slug, group := range bySlug {
		if len(group) < 2 {
			continue
		}
		sort.Slice(group, func(i, j int) bool {
			return group[i].CreatedAt.After(group[j].CreatedAt)
		})
		for _, old := range group[1:] {
			if err := s.repo.Hospital.Delete(ctx, old.HospitalID, actorID); err != nil {
				s.fail(report, "hospitais duplicados", err)
				continue
			}
			report.DuplicateHospitalSlugs++
			s.logger.Info("hospital duplicado removido",
				zap.String("slug", slug),
				zap.String("hospital_id", old.HospitalID))
		}
	}
}

// dedupUsers mesma regra para username: vence o mais recente
func (s *sweepService) dedupUsers(ctx context.Context, actorID string, report *dto.SweepReport) {
	users, err := s.repo.User.List(ctx)
	if err != nil {
		s.fail(report, "usuários duplicados", err)
		return
	}

	byUsername := make(map[string][]model.User)
	for _, u := range users {
		byUsername[u.Username] = append(byUsername[u.Username], u)
	}

	for username, group := range byUsername {
		if len(group) < 2 {
			continue
		}
		sort.Slice(group, func(i, j int) bool {
			return group[i].CreatedAt.After(group[j].CreatedAt)
		})
		for _, old := range group[1:] {
			if err := s.repo.User.Delete(ctx, old.UserID, actorID); err != nil {
				s.fail(report, "usuários duplicados", err)
				continue
			}
			report.DuplicateUsernames++
			s.logger.Info("usuário duplicado removido",
				zap.String("username", username),
				zap.String("user_id", old.UserID))
		}
	}
}

// ────────────────────── Cooperados órfãos ──────────────────────

// synthesizeWorkers cria um cooperado de preenchimento para cada
// worker_id referenciado por ponto ou justificativa mas ausente do
// diretório, preservando o nome denormalizado que veio no registro.
// O dado irregular fica visível em vez de quebrar as listagens.
func (s *sweepService) synthesizeWorkers(ctx context.Context, actorID string, report *dto.SweepReport) {
	known := make(map[string]bool)
	workers, err := s.repo.Worker.List(ctx)
	if err != nil {
		s.fail(report, "cooperados órfãos", err)
		return
	}
	for _, w := range workers {
		known[w.WorkerID] = true
	}

	// worker_id → nome denormalizado observado
	missing := make(map[string]string)

	punches, err := s.repo.Punch.List(ctx, repository.PunchFilter{})
	if err != nil {
		s.fail(report, "cooperados órfãos", err)
	} else {
		for _, p := range punches {
			if !known[p.WorkerID] {
				missing[p.WorkerID] = p.WorkerName
			}
		}
	}

	justifications, err := s.repo.Justification.List(ctx)
	if err != nil {
		s.fail(report, "cooperados órfãos", err)
	} else {
		for _, j := range justifications {
			if !known[j.WorkerID] {
				missing[j.WorkerID] = j.WorkerName
			}
		}
	}

	ids := make([]string, 0, len(missing))
	for id := range missing {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	for _, id := range ids {
		name := missing[id]
		if name == "" {
			name = "cooperado não identificado"
		}
		worker := &model.Worker{
			WorkerID:      id,
			Name:          name,
			IsPlaceholder: true,
		}
		worker.CreatedBy = &actorID
		if err := s.repo.Worker.Create(ctx, worker); err != nil {
			s.fail(report, "cooperados órfãos", err)
			continue
		}
		report.PlaceholderWorkers++
		s.logger.Info("cooperado de preenchimento criado",
			zap.String("worker_id", id),
			zap.String("name", name))
	}
}

// ────────────────────── Vínculos pendurados ──────────────────────

// clearDanglingLinks anula linked_punch_id quando o ponto referenciado
// não existe mais. A justificativa sobrevive sem vínculo e continua
// decidível pelo gestor.
func (s *sweepService) clearDanglingLinks(ctx context.Context, report *dto.SweepReport) {
	justifications, err := s.repo.Justification.List(ctx)
	if err != nil {
		s.fail(report, "vínculos pendurados", err)
		return
	}

	for i := range justifications {
		j := &justifications[i]
		if j.LinkedPunchID == nil {
			continue
		}
		_, err := s.repo.Punch.GetByID(ctx, *j.LinkedPunchID)
		if err == nil {
			continue
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			s.fail(report, "vínculos pendurados", err)
			continue
		}

		punchID := *j.LinkedPunchID
		j.LinkedPunchID = nil
		if err := s.repo.Justification.Update(ctx, j); err != nil {
			s.fail(report, "vínculos pendurados", err)
			continue
		}
		report.DanglingJustifications++
		s.logger.Info("vínculo pendurado anulado",
			zap.String("justification_id", j.JustificationID),
			zap.String("punch_id", punchID))
	}
}

// ────────────────────── Status legado ──────────────────────

// normalizeLegacyStatuses reescreve em lote os status gravados pelo
// sistema anterior. Os reparos pontuais de leitura deixam de ser
// necessários depois de uma varredura completa.
func (s *sweepService) normalizeLegacyStatuses(ctx context.Context, report *dto.SweepReport) {
	punches, err := s.repo.Punch.ListLegacyStatus(ctx)
	if err != nil {
		s.fail(report, "status legado de ponto", err)
	} else {
		for i := range punches {
			p := &punches[i]
			status, changed := model.NormalizePunchStatus(string(p.Status))
			if !changed {
				// valor fora da tabela de legados: drift desconhecido,
				// reportado sem reescrita
				s.fail(report, "status legado de ponto",
					fmt.Errorf("status desconhecido %q no registro %s", p.Status, p.PunchID))
				continue
			}
			if err := s.repo.Punch.SetStatus(ctx, p.PunchID, status); err != nil {
				s.fail(report, "status legado de ponto", err)
				continue
			}
			report.LegacyPunchStatuses++
		}
	}

	justifications, err := s.repo.Justification.ListLegacyStatus(ctx)
	if err != nil {
		s.fail(report, "status legado de justificativa", err)
		return
	}
	for i := range justifications {
		j := &justifications[i]
		status, _ := model.NormalizeJustificationStatus(string(j.Status))
		if err := s.repo.Justification.SetStatus(ctx, j.JustificationID, status); err != nil {
			s.fail(report, "status legado de justificativa", err)
			continue
		}
		report.LegacyJustificationStats++
	}
}

// fail registra a falha no relatório e no log sem abortar a varredura
func (s *sweepService) fail(report *dto.SweepReport, category string, err error) {
	report.Errors = append(report.Errors, fmt.Sprintf("%s: %v", category, err))
	s.logger.Warn("falha em categoria da varredura",
		zap.String("category", category),
		zap.Error(err))
}
