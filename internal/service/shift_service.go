package service

import (
	"context"
	"sort"
	"time"

	"go.uber.org/zap"

	"github.com/007-sistemas/Sistema-Web-sub000/internal/dto"
	"github.com/007-sistemas/Sistema-Web-sub000/internal/model"
	"github.com/007-sistemas/Sistema-Web-sub000/internal/repository"
)

// ── Motor de pareamento e resolução de status ──
//
// Turnos nunca são persistidos: cada consulta recalcula o pareamento a
// partir do estado atual do banco. Assim nenhuma escrita concorrente
// (totem registrando ponto enquanto o gestor aprova outro) deixa uma
// visão derivada desatualizada para trás.

// Shift visão derivada de um turno: uma entrada e (opcionalmente) uma
// saída do mesmo cooperado, mais a justificativa vinculada quando houver
type Shift struct {
	Entry         *model.Punch
	Exit          *model.Punch
	Justification *model.Justification
}

// EffectiveTime timestamp efetivo do turno: o da entrada quando
// presente, senão o da saída
func (s Shift) EffectiveTime() time.Time {
	if s.Entry != nil {
		return s.Entry.PunchTime
	}
	return s.Exit.PunchTime
}

func (s Shift) effectiveID() string {
	if s.Entry != nil {
		return s.Entry.PunchID
	}
	return s.Exit.PunchID
}

// SortOrder ordenação da lista de turnos
type SortOrder string

const (
	OrderDesc SortOrder = "desc" // padrão: mais recente primeiro
	OrderAsc  SortOrder = "asc"  // visões tabulares de auditoria
)

// PairPunches pareia entradas e saídas em turnos. Função pura e
// determinística: o mesmo conjunto de pontos sempre produz a mesma
// sequência (empates desfeitos pelo id do ponto).
//
// Política de casamento, por cooperado: cada entrada, em ordem
// cronológica, reivindica a saída mais cedo ainda livre com timestamp
// estritamente posterior. É um casamento guloso da esquerda para a
// direita, não um casamento ótimo por intervalos: uma entrada tardia
// pode consumir a saída que um casamento estrito atribuiria a outra.
// Essa política é preservada exatamente por compatibilidade com os
// relatórios históricos.
//
// Saídas sem entrada correspondente viram turnos órfãos (Entry == nil) e
// nunca são descartadas em silêncio. Batidas de intervalo (break_in/
// break_out) não participam do pareamento.
func PairPunches(punches []model.Punch, justifications []model.Justification, order SortOrder) []Shift {
	byWorker := make(map[string][]model.Punch)
	workerIDs := make([]string, 0)
	for _, p := range punches {
		if p.Kind != model.KindEntry && p.Kind != model.KindExit {
			continue
		}
		if _, ok := byWorker[p.WorkerID]; !ok {
			workerIDs = append(workerIDs, p.WorkerID)
		}
		byWorker[p.WorkerID] = append(byWorker[p.WorkerID], p)
	}
	sort.Strings(workerIDs)

	justByPunch := make(map[string]*model.Justification, len(justifications))
	for i := range justifications {
		j := &justifications[i]
		if j.LinkedPunchID != nil {
			justByPunch[*j.LinkedPunchID] = j
		}
	}

	var shifts []Shift
	for _, workerID := range workerIDs {
		shifts = append(shifts, pairWorker(byWorker[workerID])...)
	}

	for i := range shifts {
		shifts[i].Justification = lookupJustification(justByPunch, shifts[i])
	}

	sort.SliceStable(shifts, func(a, b int) bool {
		ta, tb := shifts[a].EffectiveTime(), shifts[b].EffectiveTime()
		if ta.Equal(tb) {
			if order == OrderAsc {
				return shifts[a].effectiveID() < shifts[b].effectiveID()
			}
			return shifts[a].effectiveID() > shifts[b].effectiveID()
		}
		if order == OrderAsc {
			return ta.Before(tb)
		}
		return ta.After(tb)
	})

	return shifts
}

// pairWorker executa o casamento guloso para os pontos de um único
// cooperado. O(n·m) no pior caso; o volume de batidas por cooperado na
// janela de consulta é pequeno.
func pairWorker(punches []model.Punch) []Shift {
	var entries, exits []model.Punch
	for _, p := range punches {
		switch p.Kind {
		case model.KindEntry:
			entries = append(entries, p)
		case model.KindExit:
			exits = append(exits, p)
		}
	}
	sortChrono(entries)
	sortChrono(exits)

	claimed := make([]bool, len(exits))
	shifts := make([]Shift, 0, len(entries)+len(exits))

	for i := range entries {
		entry := entries[i]
		matched := false
		for j := range exits {
			if claimed[j] {
				continue
			}
			if exits[j].PunchTime.After(entry.PunchTime) {
				claimed[j] = true
				exit := exits[j]
				shifts = append(shifts, Shift{Entry: &entry, Exit: &exit})
				matched = true
				break
			}
		}
		if !matched {
			// duas entradas seguidas sem saída viram dois turnos
			// abertos, nunca um turno mesclado
			shifts = append(shifts, Shift{Entry: &entry})
		}
	}

	for j := range exits {
		if !claimed[j] {
			// saída órfã: sinaliza entrada ausente, sempre visível ao
			// operador
			exit := exits[j]
			shifts = append(shifts, Shift{Exit: &exit})
		}
	}

	return shifts
}

func sortChrono(punches []model.Punch) {
	sort.SliceStable(punches, func(a, b int) bool {
		if punches[a].PunchTime.Equal(punches[b].PunchTime) {
			return punches[a].PunchID < punches[b].PunchID
		}
		return punches[a].PunchTime.Before(punches[b].PunchTime)
	})
}

func lookupJustification(justByPunch map[string]*model.Justification, s Shift) *model.Justification {
	if s.Exit != nil {
		if j, ok := justByPunch[s.Exit.PunchID]; ok {
			return j
		}
	}
	if s.Entry != nil {
		if j, ok := justByPunch[s.Entry.PunchID]; ok {
			return j
		}
	}
	return nil
}

// ── Resolução de status ──

// Rótulos exibidos ao usuário
const (
	LabelRejected = "Rejeitado"
	LabelPending  = "Pendente"
	LabelClosed   = "Fechado"
	LabelOpen     = "Aberto"
)

// ShiftStatus status resolvido de um turno
type ShiftStatus struct {
	Label  string
	Detail string
}

// ResolveShiftStatus deriva o status único de exibição a partir dos dois
// pontos do turno e da justificativa vinculada. Função pura.
//
// Os dois lados de um turno evoluem de forma independente (a entrada
// pode ter sido fechada pela biometria enquanto a saída foi justificada
// manualmente), então rejeição e pendência sempre têm precedência sobre
// um "fechado" defasado do outro lado.
func ResolveShiftStatus(s Shift) ShiftStatus {
	// 1. rejeição em qualquer dos lados vence tudo
	if isStatus(s.Entry, model.PunchRejected) || isStatus(s.Exit, model.PunchRejected) {
		return ShiftStatus{Label: LabelRejected, Detail: rejectionDetail(s)}
	}

	// 2. registro manual ainda sem aprovação explícita
	if (isManual(s.Entry) || isManual(s.Exit)) && !hasExplicitApproval(s.Entry) && !hasExplicitApproval(s.Exit) {
		return ShiftStatus{Label: LabelPending}
	}

	// 3. qualquer lado aguardando decisão
	if isStatus(s.Entry, model.PunchPending) || isStatus(s.Exit, model.PunchPending) {
		return ShiftStatus{Label: LabelPending}
	}

	// 4. turno completo com os dois lados efetivamente fechados
	if s.Exit != nil && effectivelyClosed(s.Entry) && effectivelyClosed(s.Exit) {
		return ShiftStatus{Label: LabelClosed, Detail: approvalDetail(s)}
	}

	// 5. só a entrada, sem marcações pendentes ou rejeitadas
	return ShiftStatus{Label: LabelOpen}
}

func isStatus(p *model.Punch, status model.PunchStatus) bool {
	return p != nil && p.Status == status
}

func isManual(p *model.Punch) bool {
	return p != nil && p.Origin == model.OriginManual
}

// hasExplicitApproval aprovação explícita: approved_by preenchido com
// status fechado. Nunca inferida de flags soltas.
func hasExplicitApproval(p *model.Punch) bool {
	return p != nil && p.Status == model.PunchClosed && p.ApprovedBy != nil && *p.ApprovedBy != ""
}

func effectivelyClosed(p *model.Punch) bool {
	return p == nil || p.Status == model.PunchClosed
}

// rejectionDetail prefere os campos de rejeição da saída; cai para a
// entrada e por fim para a justificativa vinculada
func rejectionDetail(s Shift) string {
	for _, p := range []*model.Punch{s.Exit, s.Entry} {
		if p == nil || p.RejectedBy == nil || *p.RejectedBy == "" {
			continue
		}
		detail := *p.RejectedBy
		if p.RejectionReason != nil && *p.RejectionReason != "" {
			detail += ": " + *p.RejectionReason
		}
		return detail
	}
	if j := s.Justification; j != nil && j.DecidedBy != nil {
		detail := *j.DecidedBy
		if j.RejectionReason != nil && *j.RejectionReason != "" {
			detail += ": " + *j.RejectionReason
		}
		return detail
	}
	return ""
}

// approvalDetail prefere o aprovador da saída; cai para a entrada
func approvalDetail(s Shift) string {
	for _, p := range []*model.Punch{s.Exit, s.Entry} {
		if p != nil && p.ApprovedBy != nil && *p.ApprovedBy != "" {
			return *p.ApprovedBy
		}
	}
	return ""
}

// ── Orquestração de consulta ──

// ShiftService consulta de turnos derivados
type ShiftService interface {
	ListByWorker(ctx context.Context, workerID string, from, to *time.Time, order SortOrder) ([]dto.ShiftResponse, error)
}

type shiftService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewShiftService cria ShiftService
func NewShiftService(repo *repository.Repository, logger *zap.Logger) ShiftService {
	return &shiftService{repo: repo, logger: logger}
}

func (s *shiftService) ListByWorker(ctx context.Context, workerID string, from, to *time.Time, order SortOrder) ([]dto.ShiftResponse, error) {
	punches, err := s.repo.Punch.ListByWorker(ctx, workerID, from, to)
	if err != nil {
		s.logger.Error("falha ao listar pontos do cooperado", zap.String("worker_id", workerID), zap.Error(err))
		return nil, err
	}

	justifications, err := s.repo.Justification.ListByWorker(ctx, workerID)
	if err != nil {
		s.logger.Error("falha ao listar justificativas do cooperado", zap.String("worker_id", workerID), zap.Error(err))
		return nil, err
	}

	if order != OrderAsc {
		order = OrderDesc
	}
	shifts := PairPunches(punches, justifications, order)

	result := make([]dto.ShiftResponse, 0, len(shifts))
	for _, shift := range shifts {
		result = append(result, s.toShiftResponse(ctx, shift))
	}
	return result, nil
}

func (s *shiftService) toShiftResponse(ctx context.Context, shift Shift) dto.ShiftResponse {
	status := ResolveShiftStatus(shift)

	resp := dto.ShiftResponse{
		Date:         shift.EffectiveTime().Format("2006-01-02"),
		Status:       status.Label,
		StatusDetail: status.Detail,
	}
	if shift.Entry != nil {
		resp.Entry = dto.NewPunchResponse(shift.Entry)
	}
	if shift.Exit != nil {
		resp.Exit = dto.NewPunchResponse(shift.Exit)
	}
	if shift.Justification != nil {
		resp.JustificationID = shift.Justification.JustificationID
	}

	// referências ausentes degradam para rótulo desconhecido, nunca erro
	resp.Hospital = s.resolveHospitalName(ctx, shift)
	resp.Sector = s.resolveSectorName(ctx, shift)

	return resp
}

const unknownRef = "desconhecido"

func (s *shiftService) resolveHospitalName(ctx context.Context, shift Shift) string {
	var id *string
	for _, p := range []*model.Punch{shift.Entry, shift.Exit} {
		if p != nil && p.HospitalID != nil {
			id = p.HospitalID
			break
		}
	}
	if id == nil {
		return ""
	}
	hospital, err := s.repo.Hospital.GetByID(ctx, *id)
	if err != nil {
		return unknownRef
	}
	return hospital.Name
}

func (s *shiftService) resolveSectorName(ctx context.Context, shift Shift) string {
	var id *string
	for _, p := range []*model.Punch{shift.Entry, shift.Exit} {
		if p != nil && p.SectorID != nil {
			id = p.SectorID
			break
		}
	}
	if id == nil {
		return ""
	}
	sector, err := s.repo.Sector.GetByID(ctx, *id)
	if err != nil {
		return unknownRef
	}
	return sector.Name
}
