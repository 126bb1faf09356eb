package repository

import (
	"context"

	"gorm.io/gorm"
)

// Repository agregador de todos os repositórios
type Repository struct {
	User          UserRepository
	Worker        WorkerRepository
	Hospital      HospitalRepository
	Sector        SectorRepository
	Punch         PunchRepository
	Justification JustificationRepository

	db *gorm.DB
}

// NewRepository cria o agregador de repositórios
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{
		User:          NewUserRepo(db),
		Worker:        NewWorkerRepo(db),
		Hospital:      NewHospitalRepo(db),
		Sector:        NewSectorRepo(db),
		Punch:         NewPunchRepo(db),
		Justification: NewJustificationRepo(db),
		db:            db,
	}
}

// Transaction executa fn dentro de uma transação do banco.
// O agregador recebido por fn opera sobre a transação; erro de fn causa
// rollback. Usado pela reconciliação de decisões, que precisa atualizar
// justificativa, ponto vinculado, par e referências reversas como uma
// unidade.
func (r *Repository) Transaction(ctx context.Context, fn func(txRepo *Repository) error) error {
	if r.db == nil {
		// repositórios de teste (mocks) não têm banco; executa direto,
		// a ordem fixa de escrita garante estado re-decidível
		return fn(r)
	}
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(NewRepository(tx))
	})
}
