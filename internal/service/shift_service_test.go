package service

import (
	"context"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/007-sistemas/Sistema-Web-sub000/internal/model"
)

func mkPunch(id, workerID string, kind model.PunchKind, at time.Time, status model.PunchStatus, origin model.PunchOrigin) model.Punch {
	return model.Punch{
		PunchID:    id,
		WorkerID:   workerID,
		WorkerName: "Maria Souza",
		PunchTime:  at,
		Kind:       kind,
		Origin:     origin,
		Status:     status,
	}
}

func at(hour, minute int) time.Time {
	return time.Date(2026, 3, 10, hour, minute, 0, 0, time.UTC)
}

// ── PairPunches ──

func TestPairPunchesBasicPair(t *testing.T) {
	punches := []model.Punch{
		mkPunch("p1", "w1", model.KindEntry, at(7, 0), model.PunchClosed, model.OriginBiometric),
		mkPunch("p2", "w1", model.KindExit, at(19, 0), model.PunchClosed, model.OriginBiometric),
	}

	shifts := PairPunches(punches, nil, OrderAsc)
	if len(shifts) != 1 {
		t.Fatalf("esperava 1 turno, obteve %d", len(shifts))
	}
	if shifts[0].Entry == nil || shifts[0].Entry.PunchID != "p1" {
		t.Errorf("entrada errada no turno: %+v", shifts[0].Entry)
	}
	if shifts[0].Exit == nil || shifts[0].Exit.PunchID != "p2" {
		t.Errorf("saída errada no turno: %+v", shifts[0].Exit)
	}
}

// Duas entradas antes de qualquer saída: a política gulosa faz a
// primeira entrada reivindicar a primeira saída livre, mesmo que um
// casamento por intervalos a atribuísse à segunda entrada.
func TestPairPunchesGreedyPolicy(t *testing.T) {
	punches := []model.Punch{
		mkPunch("e1", "w1", model.KindEntry, at(9, 0), model.PunchOpen, model.OriginBiometric),
		mkPunch("e2", "w1", model.KindEntry, at(9, 30), model.PunchOpen, model.OriginBiometric),
		mkPunch("x1", "w1", model.KindExit, at(10, 0), model.PunchOpen, model.OriginBiometric),
		mkPunch("x2", "w1", model.KindExit, at(18, 0), model.PunchOpen, model.OriginBiometric),
	}

	shifts := PairPunches(punches, nil, OrderAsc)
	if len(shifts) != 2 {
		t.Fatalf("esperava 2 turnos, obteve %d", len(shifts))
	}
	if shifts[0].Entry.PunchID != "e1" || shifts[0].Exit.PunchID != "x1" {
		t.Errorf("primeiro turno: esperava e1/x1, obteve %s/%s", shifts[0].Entry.PunchID, shifts[0].Exit.PunchID)
	}
	if shifts[1].Entry.PunchID != "e2" || shifts[1].Exit.PunchID != "x2" {
		t.Errorf("segundo turno: esperava e2/x2, obteve %s/%s", shifts[1].Entry.PunchID, shifts[1].Exit.PunchID)
	}
}

func TestPairPunchesOrphanExit(t *testing.T) {
	punches := []model.Punch{
		mkPunch("x1", "w1", model.KindExit, at(19, 0), model.PunchOpen, model.OriginBiometric),
	}

	shifts := PairPunches(punches, nil, OrderAsc)
	if len(shifts) != 1 {
		t.Fatalf("esperava 1 turno órfão, obteve %d", len(shifts))
	}
	if shifts[0].Entry != nil {
		t.Errorf("turno órfão não deveria ter entrada")
	}
	if shifts[0].Exit == nil || shifts[0].Exit.PunchID != "x1" {
		t.Errorf("saída órfã perdida")
	}
}

// Saída no mesmo instante da entrada não é posterior estrita, não pareia
func TestPairPunchesExitMustBeStrictlyAfter(t *testing.T) {
	punches := []model.Punch{
		mkPunch("e1", "w1", model.KindEntry, at(8, 0), model.PunchOpen, model.OriginBiometric),
		mkPunch("x1", "w1", model.KindExit, at(8, 0), model.PunchOpen, model.OriginBiometric),
	}

	shifts := PairPunches(punches, nil, OrderAsc)
	if len(shifts) != 2 {
		t.Fatalf("esperava 2 turnos (aberto + órfão), obteve %d", len(shifts))
	}
	for _, s := range shifts {
		if s.Entry != nil && s.Exit != nil {
			t.Errorf("entrada e saída no mesmo instante não deveriam parear")
		}
	}
}

// Nenhuma batida de entrada/saída pode sumir do resultado
func TestPairPunchesNoLoss(t *testing.T) {
	punches := []model.Punch{
		mkPunch("e1", "w1", model.KindEntry, at(7, 0), model.PunchOpen, model.OriginBiometric),
		mkPunch("e2", "w1", model.KindEntry, at(8, 0), model.PunchOpen, model.OriginBiometric),
		mkPunch("e3", "w1", model.KindEntry, at(9, 0), model.PunchOpen, model.OriginBiometric),
		mkPunch("x1", "w1", model.KindExit, at(12, 0), model.PunchOpen, model.OriginBiometric),
		mkPunch("x2", "w2", model.KindExit, at(13, 0), model.PunchOpen, model.OriginBiometric),
		mkPunch("b1", "w1", model.KindBreakOut, at(10, 0), model.PunchOpen, model.OriginBiometric),
	}

	shifts := PairPunches(punches, nil, OrderDesc)

	seen := make(map[string]bool)
	for _, s := range shifts {
		if s.Entry != nil {
			seen[s.Entry.PunchID] = true
		}
		if s.Exit != nil {
			seen[s.Exit.PunchID] = true
		}
	}
	for _, id := range []string{"e1", "e2", "e3", "x1", "x2"} {
		if !seen[id] {
			t.Errorf("batida %s sumiu do pareamento", id)
		}
	}
	if seen["b1"] {
		t.Errorf("batida de intervalo não deveria participar do pareamento")
	}
}

func TestPairPunchesDeterministic(t *testing.T) {
	punches := []model.Punch{
		mkPunch("e2", "w2", model.KindEntry, at(7, 0), model.PunchOpen, model.OriginBiometric),
		mkPunch("e1", "w1", model.KindEntry, at(7, 0), model.PunchOpen, model.OriginBiometric),
		mkPunch("x1", "w1", model.KindExit, at(19, 0), model.PunchOpen, model.OriginBiometric),
		mkPunch("x2", "w2", model.KindExit, at(19, 30), model.PunchOpen, model.OriginBiometric),
	}

	first := PairPunches(punches, nil, OrderDesc)
	for i := 0; i < 10; i++ {
		// embaralha a ordem de entrada invertendo o slice
		reversed := make([]model.Punch, 0, len(punches))
		for j := len(punches) - 1; j >= 0; j-- {
			reversed = append(reversed, punches[j])
		}
		again := PairPunches(reversed, nil, OrderDesc)
		if len(again) != len(first) {
			t.Fatalf("tamanho variou entre execuções: %d vs %d", len(again), len(first))
		}
		for k := range again {
			if again[k].effectiveID() != first[k].effectiveID() {
				t.Fatalf("ordem variou na posição %d: %s vs %s", k, again[k].effectiveID(), first[k].effectiveID())
			}
		}
	}
}

func TestPairPunchesJustificationPrefersExit(t *testing.T) {
	linkedExit := "x1"
	punches := []model.Punch{
		mkPunch("e1", "w1", model.KindEntry, at(7, 0), model.PunchPending, model.OriginManual),
		mkPunch("x1", "w1", model.KindExit, at(19, 0), model.PunchPending, model.OriginManual),
	}
	justifications := []model.Justification{
		{JustificationID: "j1", WorkerID: "w1", LinkedPunchID: &linkedExit, Status: model.JustificationPending},
	}

	shifts := PairPunches(punches, justifications, OrderAsc)
	if len(shifts) != 1 {
		t.Fatalf("esperava 1 turno, obteve %d", len(shifts))
	}
	if shifts[0].Justification == nil || shifts[0].Justification.JustificationID != "j1" {
		t.Errorf("justificativa vinculada à saída não apareceu no turno")
	}
}

// ── ResolveShiftStatus ──

func strPtr(s string) *string { return &s }

func TestResolveShiftStatusRejectedWinsOverClosed(t *testing.T) {
	entry := mkPunch("e1", "w1", model.KindEntry, at(7, 0), model.PunchClosed, model.OriginBiometric)
	exit := mkPunch("x1", "w1", model.KindExit, at(19, 0), model.PunchRejected, model.OriginManual)
	exit.RejectedBy = strPtr("Carla Gestora")
	exit.RejectionReason = strPtr("horário incompatível com a escala")

	status := ResolveShiftStatus(Shift{Entry: &entry, Exit: &exit})
	if status.Label != LabelRejected {
		t.Fatalf("esperava %q, obteve %q", LabelRejected, status.Label)
	}
	want := "Carla Gestora: horário incompatível com a escala"
	if status.Detail != want {
		t.Errorf("detalhe errado: %q", status.Detail)
	}
}

func TestResolveShiftStatusManualWithoutApprovalIsPending(t *testing.T) {
	// lado manual marcado como fechado mas sem approved_by: a aprovação
	// nunca é inferida, o turno continua pendente
	entry := mkPunch("e1", "w1", model.KindEntry, at(7, 0), model.PunchClosed, model.OriginManual)
	exit := mkPunch("x1", "w1", model.KindExit, at(19, 0), model.PunchClosed, model.OriginBiometric)

	status := ResolveShiftStatus(Shift{Entry: &entry, Exit: &exit})
	if status.Label != LabelPending {
		t.Errorf("esperava %q, obteve %q", LabelPending, status.Label)
	}
}

func TestResolveShiftStatusManualApprovedIsClosed(t *testing.T) {
	entry := mkPunch("e1", "w1", model.KindEntry, at(7, 0), model.PunchClosed, model.OriginManual)
	entry.ApprovedBy = strPtr("Carla Gestora")
	exit := mkPunch("x1", "w1", model.KindExit, at(19, 0), model.PunchClosed, model.OriginManual)
	exit.ApprovedBy = strPtr("Carla Gestora")

	status := ResolveShiftStatus(Shift{Entry: &entry, Exit: &exit})
	if status.Label != LabelClosed {
		t.Fatalf("esperava %q, obteve %q", LabelClosed, status.Label)
	}
	if status.Detail != "Carla Gestora" {
		t.Errorf("detalhe deveria trazer o aprovador, obteve %q", status.Detail)
	}
}

func TestResolveShiftStatusPendingSide(t *testing.T) {
	entry := mkPunch("e1", "w1", model.KindEntry, at(7, 0), model.PunchClosed, model.OriginBiometric)
	exit := mkPunch("x1", "w1", model.KindExit, at(19, 0), model.PunchPending, model.OriginBiometric)

	status := ResolveShiftStatus(Shift{Entry: &entry, Exit: &exit})
	if status.Label != LabelPending {
		t.Errorf("esperava %q, obteve %q", LabelPending, status.Label)
	}
}

func TestResolveShiftStatusOpenEntryOnly(t *testing.T) {
	entry := mkPunch("e1", "w1", model.KindEntry, at(7, 0), model.PunchOpen, model.OriginBiometric)

	status := ResolveShiftStatus(Shift{Entry: &entry})
	if status.Label != LabelOpen {
		t.Errorf("esperava %q, obteve %q", LabelOpen, status.Label)
	}
}

func TestResolveShiftStatusOrphanExitClosed(t *testing.T) {
	// turno só com saída fechada: entrada ausente conta como fechada
	exit := mkPunch("x1", "w1", model.KindExit, at(19, 0), model.PunchClosed, model.OriginBiometric)

	status := ResolveShiftStatus(Shift{Exit: &exit})
	if status.Label != LabelClosed {
		t.Errorf("esperava %q, obteve %q", LabelClosed, status.Label)
	}
}

// ── ShiftService.ListByWorker ──

func TestShiftServiceListByWorker(t *testing.T) {
	repo, m := newMockRepos()
	m.hospitals.items["h1"] = model.Hospital{HospitalID: "h1", Name: "Hospital Santa Clara", Slug: "santa-clara"}

	h1 := "h1"
	entry := mkPunch("e1", "w1", model.KindEntry, at(7, 0), model.PunchClosed, model.OriginBiometric)
	entry.HospitalID = &h1
	exit := mkPunch("x1", "w1", model.KindExit, at(19, 0), model.PunchClosed, model.OriginBiometric)
	m.punches.items["e1"] = entry
	m.punches.items["x1"] = exit

	svc := NewShiftService(repo, zap.NewNop())
	shifts, err := svc.ListByWorker(context.Background(), "w1", nil, nil, OrderDesc)
	if err != nil {
		t.Fatalf("erro inesperado: %v", err)
	}
	if len(shifts) != 1 {
		t.Fatalf("esperava 1 turno, obteve %d", len(shifts))
	}
	if shifts[0].Hospital != "Hospital Santa Clara" {
		t.Errorf("nome do hospital errado: %q", shifts[0].Hospital)
	}
	if shifts[0].Date != "2026-03-10" {
		t.Errorf("data do turno errada: %q", shifts[0].Date)
	}
}

func TestShiftServiceMissingHospitalDegrades(t *testing.T) {
	repo, m := newMockRepos()

	ghost := "h-fantasma"
	entry := mkPunch("e1", "w1", model.KindEntry, at(7, 0), model.PunchOpen, model.OriginBiometric)
	entry.HospitalID = &ghost
	m.punches.items["e1"] = entry

	svc := NewShiftService(repo, zap.NewNop())
	shifts, err := svc.ListByWorker(context.Background(), "w1", nil, nil, OrderDesc)
	if err != nil {
		t.Fatalf("referência ausente não deveria virar erro: %v", err)
	}
	if len(shifts) != 1 {
		t.Fatalf("esperava 1 turno, obteve %d", len(shifts))
	}
	if shifts[0].Hospital != "desconhecido" {
		t.Errorf("esperava rótulo desconhecido, obteve %q", shifts[0].Hospital)
	}
}
