package service

import (
	"context"
	"sort"
	"time"

	"gorm.io/gorm"

	"github.com/007-sistemas/Sistema-Web-sub000/internal/model"
	"github.com/007-sistemas/Sistema-Web-sub000/internal/repository"
)

// ── Repositórios em memória para os testes de serviço ──
//
// Os mocks devolvem cópias dos registros: mutações só persistem via
// Update, como no banco real. O agregador montado sem *gorm.DB executa
// Transaction diretamente sobre os próprios mocks.

type mockRepos struct {
	users          *mockUserRepo
	workers        *mockWorkerRepo
	hospitals      *mockHospitalRepo
	sectors        *mockSectorRepo
	punches        *mockPunchRepo
	justifications *mockJustificationRepo
}

func newMockRepos() (*repository.Repository, *mockRepos) {
	m := &mockRepos{
		users:          &mockUserRepo{items: map[string]model.User{}},
		workers:        &mockWorkerRepo{items: map[string]model.Worker{}},
		hospitals:      &mockHospitalRepo{items: map[string]model.Hospital{}},
		sectors:        &mockSectorRepo{items: map[string]model.Sector{}},
		punches:        &mockPunchRepo{items: map[string]model.Punch{}},
		justifications: &mockJustificationRepo{items: map[string]model.Justification{}},
	}
	repo := &repository.Repository{
		User:          m.users,
		Worker:        m.workers,
		Hospital:      m.hospitals,
		Sector:        m.sectors,
		Punch:         m.punches,
		Justification: m.justifications,
	}
	return repo, m
}

// ── Punch ──

type mockPunchRepo struct {
	items       map[string]model.Punch
	updateCalls int
}

func (m *mockPunchRepo) Create(_ context.Context, p *model.Punch) error {
	m.items[p.PunchID] = *p
	return nil
}

func (m *mockPunchRepo) GetByID(_ context.Context, id string) (*model.Punch, error) {
	p, ok := m.items[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	copied := p
	return &copied, nil
}

func (m *mockPunchRepo) ListByWorker(_ context.Context, workerID string, from, to *time.Time) ([]model.Punch, error) {
	var result []model.Punch
	for _, p := range m.items {
		if p.WorkerID != workerID {
			continue
		}
		if from != nil && p.PunchTime.Before(*from) {
			continue
		}
		if to != nil && !p.PunchTime.Before(*to) {
			continue
		}
		result = append(result, p)
	}
	sortPunchesChrono(result)
	return result, nil
}

func (m *mockPunchRepo) List(_ context.Context, filter repository.PunchFilter) ([]model.Punch, error) {
	var result []model.Punch
	for _, p := range m.items {
		if filter.WorkerID != "" && p.WorkerID != filter.WorkerID {
			continue
		}
		if filter.HospitalID != "" && (p.HospitalID == nil || *p.HospitalID != filter.HospitalID) {
			continue
		}
		if filter.Status != "" && p.Status != filter.Status {
			continue
		}
		result = append(result, p)
	}
	sortPunchesChrono(result)
	return result, nil
}

func (m *mockPunchRepo) ListByPairRef(_ context.Context, entryID string) ([]model.Punch, error) {
	var result []model.Punch
	for _, p := range m.items {
		if p.PairRef != nil && *p.PairRef == entryID {
			result = append(result, p)
		}
	}
	sortPunchesChrono(result)
	return result, nil
}

func (m *mockPunchRepo) ListLegacyStatus(_ context.Context) ([]model.Punch, error) {
	var result []model.Punch
	for _, p := range m.items {
		switch p.Status {
		case model.PunchOpen, model.PunchPending, model.PunchClosed, model.PunchRejected:
		default:
			result = append(result, p)
		}
	}
	sortPunchesChrono(result)
	return result, nil
}

func (m *mockPunchRepo) SetStatus(_ context.Context, id string, status model.PunchStatus) error {
	p, ok := m.items[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	p.Status = status
	m.items[id] = p
	return nil
}

func (m *mockPunchRepo) Update(_ context.Context, p *model.Punch) error {
	m.updateCalls++
	p.Version++
	m.items[p.PunchID] = *p
	return nil
}

func (m *mockPunchRepo) Delete(_ context.Context, id string, _ string) error {
	delete(m.items, id)
	return nil
}

func sortPunchesChrono(punches []model.Punch) {
	sort.SliceStable(punches, func(a, b int) bool {
		if punches[a].PunchTime.Equal(punches[b].PunchTime) {
			return punches[a].PunchID < punches[b].PunchID
		}
		return punches[a].PunchTime.Before(punches[b].PunchTime)
	})
}

// ── Justification ──

type mockJustificationRepo struct {
	items       map[string]model.Justification
	updateCalls int
}

func (m *mockJustificationRepo) Create(_ context.Context, j *model.Justification) error {
	m.items[j.JustificationID] = *j
	return nil
}

func (m *mockJustificationRepo) GetByID(_ context.Context, id string) (*model.Justification, error) {
	j, ok := m.items[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	copied := j
	return &copied, nil
}

func (m *mockJustificationRepo) ListByStatus(_ context.Context, status model.JustificationStatus) ([]model.Justification, error) {
	var result []model.Justification
	for _, j := range m.items {
		if j.Status == status {
			result = append(result, j)
		}
	}
	sortJustifications(result)
	return result, nil
}

func (m *mockJustificationRepo) ListByWorker(_ context.Context, workerID string) ([]model.Justification, error) {
	var result []model.Justification
	for _, j := range m.items {
		if j.WorkerID == workerID {
			result = append(result, j)
		}
	}
	sortJustifications(result)
	return result, nil
}

func (m *mockJustificationRepo) List(_ context.Context) ([]model.Justification, error) {
	var result []model.Justification
	for _, j := range m.items {
		result = append(result, j)
	}
	sortJustifications(result)
	return result, nil
}

func (m *mockJustificationRepo) ListLegacyStatus(_ context.Context) ([]model.Justification, error) {
	var result []model.Justification
	for _, j := range m.items {
		switch j.Status {
		case model.JustificationPending, model.JustificationApproved, model.JustificationRejected:
		default:
			result = append(result, j)
		}
	}
	sortJustifications(result)
	return result, nil
}

func (m *mockJustificationRepo) SetStatus(_ context.Context, id string, status model.JustificationStatus) error {
	j, ok := m.items[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	j.Status = status
	m.items[id] = j
	return nil
}

func (m *mockJustificationRepo) Update(_ context.Context, j *model.Justification) error {
	m.updateCalls++
	j.Version++
	m.items[j.JustificationID] = *j
	return nil
}

func sortJustifications(list []model.Justification) {
	sort.SliceStable(list, func(a, b int) bool {
		return list[a].JustificationID < list[b].JustificationID
	})
}

// ── Worker ──

type mockWorkerRepo struct {
	items map[string]model.Worker
}

func (m *mockWorkerRepo) Create(_ context.Context, w *model.Worker) error {
	m.items[w.WorkerID] = *w
	return nil
}

func (m *mockWorkerRepo) GetByID(_ context.Context, id string) (*model.Worker, error) {
	w, ok := m.items[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	copied := w
	return &copied, nil
}

func (m *mockWorkerRepo) List(_ context.Context) ([]model.Worker, error) {
	var result []model.Worker
	for _, w := range m.items {
		result = append(result, w)
	}
	sort.SliceStable(result, func(a, b int) bool {
		return result[a].WorkerID < result[b].WorkerID
	})
	return result, nil
}

func (m *mockWorkerRepo) Update(_ context.Context, w *model.Worker) error {
	m.items[w.WorkerID] = *w
	return nil
}

func (m *mockWorkerRepo) Delete(_ context.Context, id string, _ string) error {
	delete(m.items, id)
	return nil
}

// ── Hospital e Sector ──

type mockHospitalRepo struct {
	items map[string]model.Hospital
}

func (m *mockHospitalRepo) Create(_ context.Context, h *model.Hospital) error {
	m.items[h.HospitalID] = *h
	return nil
}

func (m *mockHospitalRepo) GetByID(_ context.Context, id string) (*model.Hospital, error) {
	h, ok := m.items[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	copied := h
	return &copied, nil
}

func (m *mockHospitalRepo) List(_ context.Context) ([]model.Hospital, error) {
	var result []model.Hospital
	for _, h := range m.items {
		result = append(result, h)
	}
	sort.SliceStable(result, func(a, b int) bool {
		return result[a].CreatedAt.Before(result[b].CreatedAt)
	})
	return result, nil
}

func (m *mockHospitalRepo) Update(_ context.Context, h *model.Hospital) error {
	m.items[h.HospitalID] = *h
	return nil
}

func (m *mockHospitalRepo) Delete(_ context.Context, id string, _ string) error {
	delete(m.items, id)
	return nil
}

type mockSectorRepo struct {
	items map[string]model.Sector
}

func (m *mockSectorRepo) Create(_ context.Context, s *model.Sector) error {
	m.items[s.SectorID] = *s
	return nil
}

func (m *mockSectorRepo) GetByID(_ context.Context, id string) (*model.Sector, error) {
	s, ok := m.items[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	copied := s
	return &copied, nil
}

func (m *mockSectorRepo) ListByHospital(_ context.Context, hospitalID string) ([]model.Sector, error) {
	var result []model.Sector
	for _, s := range m.items {
		if s.HospitalID == hospitalID {
			result = append(result, s)
		}
	}
	sort.SliceStable(result, func(a, b int) bool {
		return result[a].SectorID < result[b].SectorID
	})
	return result, nil
}

func (m *mockSectorRepo) Update(_ context.Context, s *model.Sector) error {
	m.items[s.SectorID] = *s
	return nil
}

func (m *mockSectorRepo) Delete(_ context.Context, id string, _ string) error {
	delete(m.items, id)
	return nil
}

// ── User ──

type mockUserRepo struct {
	items map[string]model.User
}

func (m *mockUserRepo) Create(_ context.Context, u *model.User) error {
	m.items[u.UserID] = *u
	return nil
}

func (m *mockUserRepo) GetByID(_ context.Context, id string) (*model.User, error) {
	u, ok := m.items[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	copied := u
	return &copied, nil
}

func (m *mockUserRepo) GetByUsername(_ context.Context, username string) (*model.User, error) {
	var newest *model.User
	for id := range m.items {
		u := m.items[id]
		if u.Username != username {
			continue
		}
		if newest == nil || u.CreatedAt.After(newest.CreatedAt) {
			copied := u
			newest = &copied
		}
	}
	if newest == nil {
		return nil, gorm.ErrRecordNotFound
	}
	return newest, nil
}

func (m *mockUserRepo) List(_ context.Context) ([]model.User, error) {
	var result []model.User
	for _, u := range m.items {
		result = append(result, u)
	}
	sort.SliceStable(result, func(a, b int) bool {
		return result[a].CreatedAt.Before(result[b].CreatedAt)
	})
	return result, nil
}

func (m *mockUserRepo) Update(_ context.Context, u *model.User) error {
	m.items[u.UserID] = *u
	return nil
}

func (m *mockUserRepo) Delete(_ context.Context, id string, _ string) error {
	delete(m.items, id)
	return nil
}
