package service

import (
	"context"
	"testing"

	"go.uber.org/zap"

	"github.com/007-sistemas/Sistema-Web-sub000/internal/model"
)

func TestSweepDedupHospitalsKeepsNewest(t *testing.T) {
	repo, m := newMockRepos()

	older := model.Hospital{HospitalID: "h-old", Name: "Santa Clara", Slug: "santa-clara"}
	older.CreatedAt = at(8, 0)
	newer := model.Hospital{HospitalID: "h-new", Name: "Santa Clara", Slug: "santa-clara"}
	newer.CreatedAt = at(9, 0)
	m.hospitals.items["h-old"] = older
	m.hospitals.items["h-new"] = newer

	svc := NewSweepService(repo, zap.NewNop())
	report, err := svc.Run(context.Background(), "admin-1")
	if err != nil {
		t.Fatalf("erro inesperado: %v", err)
	}

	if report.DuplicateHospitalSlugs != 1 {
		t.Errorf("esperava 1 duplicata removida, obteve %d", report.DuplicateHospitalSlugs)
	}
	if _, ok := m.hospitals.items["h-new"]; !ok {
		t.Errorf("o hospital mais recente deveria sobreviver")
	}
	if _, ok := m.hospitals.items["h-old"]; ok {
		t.Errorf("o hospital antigo deveria ter sido removido")
	}
}

func TestSweepDedupUsernames(t *testing.T) {
	repo, m := newMockRepos()

	older := model.User{UserID: "u-old", Name: "Maria", Username: "maria"}
	older.CreatedAt = at(8, 0)
	newer := model.User{UserID: "u-new", Name: "Maria", Username: "maria"}
	newer.CreatedAt = at(9, 0)
	m.users.items["u-old"] = older
	m.users.items["u-new"] = newer

	svc := NewSweepService(repo, zap.NewNop())
	report, err := svc.Run(context.Background(), "admin-1")
	if err != nil {
		t.Fatalf("erro inesperado: %v", err)
	}
	if report.DuplicateUsernames != 1 {
		t.Errorf("esperava 1 duplicata removida, obteve %d", report.DuplicateUsernames)
	}
	if _, ok := m.users.items["u-new"]; !ok {
		t.Errorf("a conta mais recente deveria sobreviver")
	}
}

func TestSweepSynthesizesPlaceholderWorker(t *testing.T) {
	repo, m := newMockRepos()

	p := mkPunch("p1", "w-orfao", model.KindEntry, at(7, 0), model.PunchOpen, model.OriginBiometric)
	p.WorkerName = "João Pereira"
	m.punches.items["p1"] = p

	svc := NewSweepService(repo, zap.NewNop())
	report, err := svc.Run(context.Background(), "admin-1")
	if err != nil {
		t.Fatalf("erro inesperado: %v", err)
	}

	if report.PlaceholderWorkers != 1 {
		t.Fatalf("esperava 1 cooperado sintetizado, obteve %d", report.PlaceholderWorkers)
	}
	w, ok := m.workers.items["w-orfao"]
	if !ok {
		t.Fatalf("cooperado de preenchimento não foi criado")
	}
	if !w.IsPlaceholder {
		t.Errorf("registro sintetizado deveria estar marcado como placeholder")
	}
	if w.Name != "João Pereira" {
		t.Errorf("nome denormalizado deveria ser preservado, obteve %q", w.Name)
	}
}

func TestSweepClearsDanglingJustificationLink(t *testing.T) {
	repo, m := newMockRepos()
	m.workers.items["w1"] = model.Worker{WorkerID: "w1", Name: "Maria Souza"}

	ghost := "p-fantasma"
	m.justifications.items["j1"] = model.Justification{
		JustificationID: "j1",
		WorkerID:        "w1",
		LinkedPunchID:   &ghost,
		Reason:          model.ReasonForgotPunch,
		Status:          model.JustificationPending,
	}

	svc := NewSweepService(repo, zap.NewNop())
	report, err := svc.Run(context.Background(), "admin-1")
	if err != nil {
		t.Fatalf("erro inesperado: %v", err)
	}

	if report.DanglingJustifications != 1 {
		t.Errorf("esperava 1 vínculo anulado, obteve %d", report.DanglingJustifications)
	}
	j := m.justifications.items["j1"]
	if j.LinkedPunchID != nil {
		t.Errorf("vínculo pendurado deveria ter sido anulado")
	}
	if j.Status != model.JustificationPending {
		t.Errorf("justificativa deveria continuar decidível, status %s", j.Status)
	}
}

func TestSweepNormalizesLegacyStatuses(t *testing.T) {
	repo, m := newMockRepos()
	m.workers.items["w1"] = model.Worker{WorkerID: "w1", Name: "Maria Souza"}

	legacyPunch := mkPunch("p1", "w1", model.KindEntry, at(7, 0), model.PunchStatus("Aberto"), model.OriginBiometric)
	m.punches.items["p1"] = legacyPunch
	m.justifications.items["j1"] = model.Justification{
		JustificationID: "j1",
		WorkerID:        "w1",
		Reason:          model.ReasonForgotPunch,
		Status:          model.JustificationStatus("Aguardando autorização"),
	}

	svc := NewSweepService(repo, zap.NewNop())
	report, err := svc.Run(context.Background(), "admin-1")
	if err != nil {
		t.Fatalf("erro inesperado: %v", err)
	}

	if report.LegacyPunchStatuses != 1 {
		t.Errorf("esperava 1 status de ponto normalizado, obteve %d", report.LegacyPunchStatuses)
	}
	if report.LegacyJustificationStats != 1 {
		t.Errorf("esperava 1 status de justificativa normalizado, obteve %d", report.LegacyJustificationStats)
	}
	if got := m.punches.items["p1"].Status; got != model.PunchOpen {
		t.Errorf("status legado deveria virar open, virou %s", got)
	}
	if got := m.justifications.items["j1"].Status; got != model.JustificationPending {
		t.Errorf("status legado deveria virar pending, virou %s", got)
	}
}

func TestSweepIdempotent(t *testing.T) {
	repo, m := newMockRepos()

	older := model.Hospital{HospitalID: "h-old", Name: "Santa Clara", Slug: "santa-clara"}
	older.CreatedAt = at(8, 0)
	newer := model.Hospital{HospitalID: "h-new", Name: "Santa Clara", Slug: "santa-clara"}
	newer.CreatedAt = at(9, 0)
	m.hospitals.items["h-old"] = older
	m.hospitals.items["h-new"] = newer

	p := mkPunch("p1", "w-orfao", model.KindEntry, at(7, 0), model.PunchStatus("Em análise"), model.OriginBiometric)
	m.punches.items["p1"] = p

	svc := NewSweepService(repo, zap.NewNop())
	ctx := context.Background()

	first, err := svc.Run(ctx, "admin-1")
	if err != nil {
		t.Fatalf("primeira varredura falhou: %v", err)
	}
	if first.DuplicateHospitalSlugs == 0 || first.PlaceholderWorkers == 0 || first.LegacyPunchStatuses == 0 {
		t.Fatalf("primeira varredura deveria ter reparado algo: %+v", first)
	}

	second, err := svc.Run(ctx, "admin-1")
	if err != nil {
		t.Fatalf("segunda varredura falhou: %v", err)
	}
	if second.DuplicateHospitalSlugs != 0 || second.DuplicateUsernames != 0 ||
		second.PlaceholderWorkers != 0 || second.DanglingJustifications != 0 ||
		second.LegacyPunchStatuses != 0 || second.LegacyJustificationStats != 0 {
		t.Errorf("segunda varredura deveria zerar todas as contagens: %+v", second)
	}
}

func TestSweepCleanBaseReportsZero(t *testing.T) {
	repo, m := newMockRepos()
	m.workers.items["w1"] = model.Worker{WorkerID: "w1", Name: "Maria Souza"}
	m.punches.items["p1"] = mkPunch("p1", "w1", model.KindEntry, at(7, 0), model.PunchOpen, model.OriginBiometric)

	svc := NewSweepService(repo, zap.NewNop())
	report, err := svc.Run(context.Background(), "admin-1")
	if err != nil {
		t.Fatalf("erro inesperado: %v", err)
	}
	if report.PlaceholderWorkers != 0 || report.LegacyPunchStatuses != 0 || len(report.Errors) != 0 {
		t.Errorf("base íntegra deveria produzir relatório zerado: %+v", report)
	}
}
