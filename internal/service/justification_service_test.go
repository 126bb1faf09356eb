package service

import (
	"context"
	"errors"
	"testing"

	"go.uber.org/zap"

	"github.com/007-sistemas/Sistema-Web-sub000/internal/dto"
	"github.com/007-sistemas/Sistema-Web-sub000/internal/model"
)

func seedWorker(m *mockRepos) {
	m.workers.items["w1"] = model.Worker{WorkerID: "w1", Name: "Maria Souza"}
}

// ── Create ──

func TestJustificationCreateFullShift(t *testing.T) {
	repo, m := newMockRepos()
	seedWorker(m)
	svc := NewJustificationService(repo, zap.NewNop())

	entryTime := "2026-03-10T07:00:00Z"
	exitTime := "2026-03-10T19:00:00Z"
	resp, err := svc.Create(context.Background(), &dto.CreateJustificationRequest{
		WorkerID:  "w1",
		Reason:    string(model.ReasonForgotPunch),
		EntryTime: &entryTime,
		ExitTime:  &exitTime,
	}, "u1")
	if err != nil {
		t.Fatalf("erro inesperado: %v", err)
	}

	if len(m.punches.items) != 2 {
		t.Fatalf("esperava 2 pontos pendentes, obteve %d", len(m.punches.items))
	}
	var entry, exit *model.Punch
	for id := range m.punches.items {
		p := m.punches.items[id]
		switch p.Kind {
		case model.KindEntry:
			entry = &p
		case model.KindExit:
			exit = &p
		}
	}
	if entry == nil || exit == nil {
		t.Fatalf("entrada ou saída pendente ausente")
	}
	if entry.Status != model.PunchPending || exit.Status != model.PunchPending {
		t.Errorf("pontos manuais deveriam nascer pendentes")
	}
	if entry.Origin != model.OriginManual || exit.Origin != model.OriginManual {
		t.Errorf("pontos de justificativa deveriam ter origem manual")
	}
	if exit.PairRef == nil || *exit.PairRef != entry.PunchID {
		t.Errorf("pair_ref deveria apontar da saída para a entrada")
	}
	if entry.PairRef != nil {
		t.Errorf("entrada nunca carrega pair_ref")
	}
	// vínculo da justificativa prefere a saída
	if resp.LinkedPunchID != exit.PunchID {
		t.Errorf("justificativa deveria vincular a saída, vinculou %s", resp.LinkedPunchID)
	}
}

func TestJustificationCreateExitOnlyPairsExistingEntry(t *testing.T) {
	repo, m := newMockRepos()
	seedWorker(m)
	m.punches.items["e1"] = mkPunch("e1", "w1", model.KindEntry, at(7, 0), model.PunchOpen, model.OriginBiometric)
	svc := NewJustificationService(repo, zap.NewNop())

	exitTime := "2026-03-10T19:00:00Z"
	entryID := "e1"
	_, err := svc.Create(context.Background(), &dto.CreateJustificationRequest{
		WorkerID:     "w1",
		Reason:       string(model.ReasonDeviceFailure),
		ExitTime:     &exitTime,
		EntryPunchID: &entryID,
	}, "u1")
	if err != nil {
		t.Fatalf("erro inesperado: %v", err)
	}

	var exit *model.Punch
	for id := range m.punches.items {
		p := m.punches.items[id]
		if p.Kind == model.KindExit {
			exit = &p
		}
	}
	if exit == nil {
		t.Fatalf("saída pendente não foi criada")
	}
	if exit.PairRef == nil || *exit.PairRef != "e1" {
		t.Errorf("saída deveria parear com a entrada existente e1")
	}
}

func TestJustificationCreateRejectsPairRefToExit(t *testing.T) {
	repo, m := newMockRepos()
	seedWorker(m)
	m.punches.items["x9"] = mkPunch("x9", "w1", model.KindExit, at(19, 0), model.PunchOpen, model.OriginBiometric)
	svc := NewJustificationService(repo, zap.NewNop())

	exitTime := "2026-03-10T19:00:00Z"
	wrongID := "x9"
	_, err := svc.Create(context.Background(), &dto.CreateJustificationRequest{
		WorkerID:     "w1",
		Reason:       string(model.ReasonDeviceFailure),
		ExitTime:     &exitTime,
		EntryPunchID: &wrongID,
	}, "u1")
	if err == nil {
		t.Fatalf("pair_ref para uma saída deveria ser rejeitado")
	}
}

func TestJustificationCreateValidation(t *testing.T) {
	repo, m := newMockRepos()
	seedWorker(m)
	svc := NewJustificationService(repo, zap.NewNop())
	ctx := context.Background()

	entryTime := "2026-03-10T07:00:00Z"
	exitBefore := "2026-03-10T06:00:00Z"

	cases := []struct {
		name string
		req  dto.CreateJustificationRequest
		want error
	}{
		{"motivo inválido", dto.CreateJustificationRequest{WorkerID: "w1", Reason: "ferias", EntryTime: &entryTime}, ErrInvalidReason},
		{"other sem descrição", dto.CreateJustificationRequest{WorkerID: "w1", Reason: string(model.ReasonOther), EntryTime: &entryTime}, ErrDescriptionRequired},
		{"sem horários", dto.CreateJustificationRequest{WorkerID: "w1", Reason: string(model.ReasonForgotPunch)}, ErrMissingTimes},
		{"saída antes da entrada", dto.CreateJustificationRequest{WorkerID: "w1", Reason: string(model.ReasonForgotPunch), EntryTime: &entryTime, ExitTime: &exitBefore}, ErrInvalidTimeRange},
		{"cooperado inexistente", dto.CreateJustificationRequest{WorkerID: "w-nope", Reason: string(model.ReasonForgotPunch), EntryTime: &entryTime}, ErrWorkerNotFound},
	}

	for _, tc := range cases {
		_, err := svc.Create(ctx, &tc.req, "u1")
		if !errors.Is(err, tc.want) {
			t.Errorf("%s: esperava %v, obteve %v", tc.name, tc.want, err)
		}
	}
}

// ── Decide ──

func seedLinkedShift(m *mockRepos) {
	// entrada e saída pendentes pareadas, justificativa vinculada à saída
	entryID := "e1"
	exitID := "x1"
	m.punches.items[entryID] = mkPunch(entryID, "w1", model.KindEntry, at(7, 0), model.PunchPending, model.OriginManual)
	exit := mkPunch(exitID, "w1", model.KindExit, at(19, 0), model.PunchPending, model.OriginManual)
	exit.PairRef = &entryID
	m.punches.items[exitID] = exit

	m.justifications.items["j1"] = model.Justification{
		JustificationID: "j1",
		WorkerID:        "w1",
		WorkerName:      "Maria Souza",
		LinkedPunchID:   &exitID,
		Reason:          model.ReasonForgotPunch,
		Status:          model.JustificationPending,
		RequestedAt:     at(20, 0),
	}
}

func TestDecideApprovePropagatesToPair(t *testing.T) {
	repo, m := newMockRepos()
	seedLinkedShift(m)
	svc := NewJustificationService(repo, zap.NewNop())

	resp, err := svc.Decide(context.Background(), "j1", DecisionApprove, "Carla Gestora", "")
	if err != nil {
		t.Fatalf("erro inesperado: %v", err)
	}
	if resp.Status != string(model.JustificationApproved) {
		t.Errorf("justificativa deveria estar aprovada, está %s", resp.Status)
	}

	for _, id := range []string{"e1", "x1"} {
		p := m.punches.items[id]
		if p.Status != model.PunchClosed {
			t.Errorf("ponto %s deveria estar fechado, está %s", id, p.Status)
		}
		if p.ApprovedBy == nil || *p.ApprovedBy != "Carla Gestora" {
			t.Errorf("ponto %s sem aprovador explícito", id)
		}
		if p.RejectedBy != nil {
			t.Errorf("ponto %s não deveria reter rejeitador", id)
		}
	}
}

func TestDecideRejectPropagatesReverseReferences(t *testing.T) {
	repo, m := newMockRepos()
	// justificativa vinculada à ENTRADA; a saída aponta para ela via
	// pair_ref e deve ser alcançada na direção reversa
	entryID := "e1"
	m.punches.items[entryID] = mkPunch(entryID, "w1", model.KindEntry, at(7, 0), model.PunchPending, model.OriginManual)
	exit := mkPunch("x1", "w1", model.KindExit, at(19, 0), model.PunchPending, model.OriginManual)
	exit.PairRef = &entryID
	m.punches.items["x1"] = exit
	m.justifications.items["j1"] = model.Justification{
		JustificationID: "j1",
		WorkerID:        "w1",
		LinkedPunchID:   &entryID,
		Reason:          model.ReasonForgotPunch,
		Status:          model.JustificationPending,
	}
	svc := NewJustificationService(repo, zap.NewNop())

	_, err := svc.Decide(context.Background(), "j1", DecisionReject, "Carla Gestora", "plantão não confirmado pela escala")
	if err != nil {
		t.Fatalf("erro inesperado: %v", err)
	}

	for _, id := range []string{"e1", "x1"} {
		p := m.punches.items[id]
		if p.Status != model.PunchRejected {
			t.Errorf("ponto %s deveria estar rejeitado, está %s", id, p.Status)
		}
		if p.RejectedBy == nil || *p.RejectedBy != "Carla Gestora" {
			t.Errorf("ponto %s sem rejeitador", id)
		}
		if p.RejectionReason == nil || *p.RejectionReason != "plantão não confirmado pela escala" {
			t.Errorf("ponto %s sem motivo de rejeição", id)
		}
	}

	j := m.justifications.items["j1"]
	if j.Status != model.JustificationRejected {
		t.Errorf("justificativa deveria estar rejeitada")
	}
	if j.RejectionReason == nil || *j.RejectionReason != "plantão não confirmado pela escala" {
		t.Errorf("motivo da rejeição não gravado na justificativa")
	}
}

func TestDecideIdempotent(t *testing.T) {
	repo, m := newMockRepos()
	seedLinkedShift(m)
	svc := NewJustificationService(repo, zap.NewNop())
	ctx := context.Background()

	if _, err := svc.Decide(ctx, "j1", DecisionApprove, "Carla Gestora", ""); err != nil {
		t.Fatalf("primeira decisão falhou: %v", err)
	}
	punchUpdates := m.punches.updateCalls
	justUpdates := m.justifications.updateCalls

	// repetir a mesma decisão não gera nenhuma escrita
	if _, err := svc.Decide(ctx, "j1", DecisionApprove, "Carla Gestora", ""); err != nil {
		t.Fatalf("segunda decisão falhou: %v", err)
	}
	if m.punches.updateCalls != punchUpdates {
		t.Errorf("decisão repetida reescreveu pontos: %d vs %d", m.punches.updateCalls, punchUpdates)
	}
	if m.justifications.updateCalls != justUpdates {
		t.Errorf("decisão repetida reescreveu a justificativa")
	}
}

func TestDecideOppositeOverwrites(t *testing.T) {
	repo, m := newMockRepos()
	seedLinkedShift(m)
	svc := NewJustificationService(repo, zap.NewNop())
	ctx := context.Background()

	if _, err := svc.Decide(ctx, "j1", DecisionApprove, "Carla Gestora", ""); err != nil {
		t.Fatalf("aprovação falhou: %v", err)
	}
	if _, err := svc.Decide(ctx, "j1", DecisionReject, "Paulo Auditor", "registro duplicado"); err != nil {
		t.Fatalf("rejeição posterior falhou: %v", err)
	}

	exit := m.punches.items["x1"]
	if exit.Status != model.PunchRejected {
		t.Errorf("última decisão deveria prevalecer, status %s", exit.Status)
	}
	if exit.ApprovedBy != nil {
		t.Errorf("aprovador anterior deveria ter sido zerado")
	}
	if exit.RejectedBy == nil || *exit.RejectedBy != "Paulo Auditor" {
		t.Errorf("rejeitador não gravado")
	}
}

func TestDecideRejectRequiresReason(t *testing.T) {
	repo, m := newMockRepos()
	seedLinkedShift(m)
	svc := NewJustificationService(repo, zap.NewNop())

	_, err := svc.Decide(context.Background(), "j1", DecisionReject, "Carla Gestora", "")
	if !errors.Is(err, ErrRejectReasonRequired) {
		t.Fatalf("esperava ErrRejectReasonRequired, obteve %v", err)
	}
	if m.justifications.items["j1"].Status != model.JustificationPending {
		t.Errorf("rejeição sem motivo não deveria alterar estado")
	}
}

func TestDecideMissingLinkedPunchNotFatal(t *testing.T) {
	repo, m := newMockRepos()
	ghost := "p-fantasma"
	m.justifications.items["j1"] = model.Justification{
		JustificationID: "j1",
		WorkerID:        "w1",
		LinkedPunchID:   &ghost,
		Reason:          model.ReasonForgotPunch,
		Status:          model.JustificationPending,
	}
	svc := NewJustificationService(repo, zap.NewNop())

	resp, err := svc.Decide(context.Background(), "j1", DecisionApprove, "Carla Gestora", "")
	if err != nil {
		t.Fatalf("ponto vinculado ausente não deveria abortar a decisão: %v", err)
	}
	if resp.Status != string(model.JustificationApproved) {
		t.Errorf("justificativa deveria estar aprovada mesmo sem o ponto")
	}
}

func TestDecideNotFound(t *testing.T) {
	repo, _ := newMockRepos()
	svc := NewJustificationService(repo, zap.NewNop())

	_, err := svc.Decide(context.Background(), "j-nope", DecisionApprove, "Carla Gestora", "")
	if !errors.Is(err, ErrJustificationNotFound) {
		t.Fatalf("esperava ErrJustificationNotFound, obteve %v", err)
	}
}

func TestDecideCrashRecoveryCompletion(t *testing.T) {
	// simula queda após a justificativa ter sido gravada mas antes da
	// propagação: reexecutar a decisão completa os pontos que faltaram
	repo, m := newMockRepos()
	seedLinkedShift(m)

	now := at(21, 0)
	actor := "Carla Gestora"
	j := m.justifications.items["j1"]
	j.Status = model.JustificationApproved
	j.DecidedBy = &actor
	j.DecidedAt = &now
	m.justifications.items["j1"] = j

	svc := NewJustificationService(repo, zap.NewNop())
	if _, err := svc.Decide(context.Background(), "j1", DecisionApprove, actor, ""); err != nil {
		t.Fatalf("reexecução falhou: %v", err)
	}

	if m.justifications.updateCalls != 0 {
		t.Errorf("justificativa já decidida não deveria ser reescrita")
	}
	for _, id := range []string{"e1", "x1"} {
		if m.punches.items[id].Status != model.PunchClosed {
			t.Errorf("ponto %s deveria ter sido completado para fechado", id)
		}
	}
}
