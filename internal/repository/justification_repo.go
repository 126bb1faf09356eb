package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/007-sistemas/Sistema-Web-sub000/internal/model"
	pkgerrors "github.com/007-sistemas/Sistema-Web-sub000/pkg/errors"
)

// JustificationRepository acesso a dados de justificativas
type JustificationRepository interface {
	Create(ctx context.Context, j *model.Justification) error
	GetByID(ctx context.Context, id string) (*model.Justification, error)
	ListByStatus(ctx context.Context, status model.JustificationStatus) ([]model.Justification, error)
	ListByWorker(ctx context.Context, workerID string) ([]model.Justification, error)
	List(ctx context.Context) ([]model.Justification, error)
	// ListLegacyStatus retorna justificativas com status não canônico, sem
	// normalização na leitura (a varredura precisa contá-las)
	ListLegacyStatus(ctx context.Context) ([]model.Justification, error)
	// SetStatus grava o status diretamente, sem passar pelo lock otimista
	SetStatus(ctx context.Context, id string, status model.JustificationStatus) error
	Update(ctx context.Context, j *model.Justification) error
}

type justificationRepo struct {
	db *gorm.DB
}

// NewJustificationRepo cria a implementação GORM de JustificationRepository
func NewJustificationRepo(db *gorm.DB) JustificationRepository {
	return &justificationRepo{db: db}
}

func (r *justificationRepo) Create(ctx context.Context, j *model.Justification) error {
	return r.db.WithContext(ctx).Create(j).Error
}

func (r *justificationRepo) GetByID(ctx context.Context, id string) (*model.Justification, error) {
	var j model.Justification
	err := r.db.WithContext(ctx).
		Where("justification_id = ?", id).
		First(&j).Error
	if err != nil {
		return nil, err
	}
	r.normalize(ctx, &j)
	return &j, nil
}

func (r *justificationRepo) ListByStatus(ctx context.Context, status model.JustificationStatus) ([]model.Justification, error) {
	// o filtro compara o valor canônico; registros legados equivalentes
	// só entram na fila depois de normalizados (leitura direta ou varredura)
	var list []model.Justification
	err := r.db.WithContext(ctx).
		Where("status = ?", status).
		Order("requested_at ASC").
		Find(&list).Error
	if err != nil {
		return nil, err
	}
	for i := range list {
		r.normalize(ctx, &list[i])
	}
	return list, nil
}

func (r *justificationRepo) ListByWorker(ctx context.Context, workerID string) ([]model.Justification, error) {
	var list []model.Justification
	err := r.db.WithContext(ctx).
		Where("worker_id = ?", workerID).
		Order("requested_at DESC").
		Find(&list).Error
	if err != nil {
		return nil, err
	}
	for i := range list {
		r.normalize(ctx, &list[i])
	}
	return list, nil
}

func (r *justificationRepo) List(ctx context.Context) ([]model.Justification, error) {
	var list []model.Justification
	if err := r.db.WithContext(ctx).Order("requested_at ASC").Find(&list).Error; err != nil {
		return nil, err
	}
	for i := range list {
		r.normalize(ctx, &list[i])
	}
	return list, nil
}

func (r *justificationRepo) ListLegacyStatus(ctx context.Context) ([]model.Justification, error) {
	var list []model.Justification
	err := r.db.WithContext(ctx).
		Where("status NOT IN ?", []model.JustificationStatus{
			model.JustificationPending, model.JustificationApproved, model.JustificationRejected,
		}).
		Find(&list).Error
	return list, err
}

func (r *justificationRepo) SetStatus(ctx context.Context, id string, status model.JustificationStatus) error {
	return r.db.WithContext(ctx).
		Model(&model.Justification{}).
		Where("justification_id = ?", id).
		UpdateColumn("status", status).Error
}

func (r *justificationRepo) Update(ctx context.Context, j *model.Justification) error {
	oldVersion := j.Version
	result := r.db.WithContext(ctx).
		Model(j).
		Where("justification_id = ? AND version = ?", j.JustificationID, oldVersion).
		Updates(map[string]interface{}{
			"status":           j.Status,
			"linked_punch_id":  j.LinkedPunchID,
			"decided_at":       j.DecidedAt,
			"decided_by":       j.DecidedBy,
			"rejection_reason": j.RejectionReason,
			"updated_by":       j.UpdatedBy,
			"version":          oldVersion + 1,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return pkgerrors.ErrOptimisticLock
	}
	j.Version = oldVersion + 1
	return nil
}

// normalize reescreve status legado para o valor canônico e persiste a
// conversão, para que leituras subsequentes não a reapliquem
func (r *justificationRepo) normalize(ctx context.Context, j *model.Justification) {
	status, changed := model.NormalizeJustificationStatus(string(j.Status))
	if !changed {
		return
	}
	j.Status = status
	r.db.WithContext(ctx).
		Model(&model.Justification{}).
		Where("justification_id = ?", j.JustificationID).
		UpdateColumn("status", status)
}
