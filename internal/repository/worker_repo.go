package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/007-sistemas/Sistema-Web-sub000/internal/model"
)

// WorkerRepository acesso a dados de cooperados
type WorkerRepository interface {
	Create(ctx context.Context, worker *model.Worker) error
	GetByID(ctx context.Context, id string) (*model.Worker, error)
	List(ctx context.Context) ([]model.Worker, error)
	Update(ctx context.Context, worker *model.Worker) error
	Delete(ctx context.Context, id string, deletedBy string) error
}

type workerRepo struct {
	db *gorm.DB
}

// NewWorkerRepo cria a implementação GORM de WorkerRepository
func NewWorkerRepo(db *gorm.DB) WorkerRepository {
	return &workerRepo{db: db}
}

func (r *workerRepo) Create(ctx context.Context, worker *model.Worker) error {
	return r.db.WithContext(ctx).Create(worker).Error
}

func (r *workerRepo) GetByID(ctx context.Context, id string) (*model.Worker, error) {
	var worker model.Worker
	err := r.db.WithContext(ctx).
		Preload("Sector").
		Where("worker_id = ?", id).
		First(&worker).Error
	if err != nil {
		return nil, err
	}
	return &worker, nil
}

func (r *workerRepo) List(ctx context.Context) ([]model.Worker, error) {
	var workers []model.Worker
	err := r.db.WithContext(ctx).
		Order("name ASC").
		Find(&workers).Error
	return workers, err
}

func (r *workerRepo) Update(ctx context.Context, worker *model.Worker) error {
	return r.db.WithContext(ctx).Save(worker).Error
}

func (r *workerRepo) Delete(ctx context.Context, id string, deletedBy string) error {
	return r.db.WithContext(ctx).
		Model(&model.Worker{}).
		Where("worker_id = ?", id).
		Updates(map[string]interface{}{
			"deleted_at": gorm.Expr("CURRENT_TIMESTAMP"),
			"deleted_by": deletedBy,
		}).Error
}
