package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/007-sistemas/Sistema-Web-sub000/internal/model"
	pkgerrors "github.com/007-sistemas/Sistema-Web-sub000/pkg/errors"
)

// PunchFilter filtro das consultas de ponto
type PunchFilter struct {
	WorkerID   string
	HospitalID string
	Status     model.PunchStatus
	From       *time.Time
	To         *time.Time
}

// PunchRepository acesso a dados de registros de ponto
type PunchRepository interface {
	Create(ctx context.Context, punch *model.Punch) error
	GetByID(ctx context.Context, id string) (*model.Punch, error)
	ListByWorker(ctx context.Context, workerID string, from, to *time.Time) ([]model.Punch, error)
	List(ctx context.Context, filter PunchFilter) ([]model.Punch, error)
	ListByPairRef(ctx context.Context, entryID string) ([]model.Punch, error)
	// ListLegacyStatus retorna registros cujo status não é canônico, sem
	// aplicar normalização na leitura (a varredura precisa contá-los)
	ListLegacyStatus(ctx context.Context) ([]model.Punch, error)
	// SetStatus grava o status diretamente, sem passar pelo lock otimista
	SetStatus(ctx context.Context, id string, status model.PunchStatus) error
	Update(ctx context.Context, punch *model.Punch) error
	Delete(ctx context.Context, id string, deletedBy string) error
}

type punchRepo struct {
	db *gorm.DB
}

// NewPunchRepo cria a implementação GORM de PunchRepository
func NewPunchRepo(db *gorm.DB) PunchRepository {
	return &punchRepo{db: db}
}

func (r *punchRepo) Create(ctx context.Context, punch *model.Punch) error {
	return r.db.WithContext(ctx).Create(punch).Error
}

func (r *punchRepo) GetByID(ctx context.Context, id string) (*model.Punch, error) {
	var punch model.Punch
	err := r.db.WithContext(ctx).
		Where("punch_id = ?", id).
		First(&punch).Error
	if err != nil {
		return nil, err
	}
	r.normalize(ctx, &punch)
	return &punch, nil
}

func (r *punchRepo) ListByWorker(ctx context.Context, workerID string, from, to *time.Time) ([]model.Punch, error) {
	q := r.db.WithContext(ctx).Where("worker_id = ?", workerID)
	if from != nil {
		q = q.Where("punch_time >= ?", *from)
	}
	if to != nil {
		q = q.Where("punch_time < ?", *to)
	}

	var punches []model.Punch
	if err := q.Order("punch_time ASC").Find(&punches).Error; err != nil {
		return nil, err
	}
	for i := range punches {
		r.normalize(ctx, &punches[i])
	}
	return punches, nil
}

func (r *punchRepo) List(ctx context.Context, filter PunchFilter) ([]model.Punch, error) {
	q := r.db.WithContext(ctx)
	if filter.WorkerID != "" {
		q = q.Where("worker_id = ?", filter.WorkerID)
	}
	if filter.HospitalID != "" {
		q = q.Where("hospital_id = ?", filter.HospitalID)
	}
	if filter.Status != "" {
		q = q.Where("status = ?", filter.Status)
	}
	if filter.From != nil {
		q = q.Where("punch_time >= ?", *filter.From)
	}
	if filter.To != nil {
		q = q.Where("punch_time < ?", *filter.To)
	}

	var punches []model.Punch
	if err := q.Order("punch_time ASC").Find(&punches).Error; err != nil {
		return nil, err
	}
	for i := range punches {
		r.normalize(ctx, &punches[i])
	}
	return punches, nil
}

func (r *punchRepo) ListByPairRef(ctx context.Context, entryID string) ([]model.Punch, error) {
	var punches []model.Punch
	err := r.db.WithContext(ctx).
		Where("pair_ref = ?", entryID).
		Order("punch_time ASC").
		Find(&punches).Error
	if err != nil {
		return nil, err
	}
	for i := range punches {
		r.normalize(ctx, &punches[i])
	}
	return punches, nil
}

func (r *punchRepo) ListLegacyStatus(ctx context.Context) ([]model.Punch, error) {
	var punches []model.Punch
	err := r.db.WithContext(ctx).
		Where("status NOT IN ?", []model.PunchStatus{
			model.PunchOpen, model.PunchPending, model.PunchClosed, model.PunchRejected,
		}).
		Find(&punches).Error
	return punches, err
}

func (r *punchRepo) SetStatus(ctx context.Context, id string, status model.PunchStatus) error {
	return r.db.WithContext(ctx).
		Model(&model.Punch{}).
		Where("punch_id = ?", id).
		UpdateColumn("status", status).Error
}

func (r *punchRepo) Update(ctx context.Context, punch *model.Punch) error {
	oldVersion := punch.Version
	result := r.db.WithContext(ctx).
		Model(punch).
		Where("punch_id = ? AND version = ?", punch.PunchID, oldVersion).
		Updates(map[string]interface{}{
			"status":           punch.Status,
			"pair_ref":         punch.PairRef,
			"approved_by":      punch.ApprovedBy,
			"rejected_by":      punch.RejectedBy,
			"rejection_reason": punch.RejectionReason,
			"hospital_id":      punch.HospitalID,
			"sector_id":        punch.SectorID,
			"worker_id":        punch.WorkerID,
			"worker_name":      punch.WorkerName,
			"updated_by":       punch.UpdatedBy,
			"version":          oldVersion + 1,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return pkgerrors.ErrOptimisticLock
	}
	punch.Version = oldVersion + 1
	return nil
}

func (r *punchRepo) Delete(ctx context.Context, id string, deletedBy string) error {
	return r.db.WithContext(ctx).
		Model(&model.Punch{}).
		Where("punch_id = ?", id).
		Updates(map[string]interface{}{
			"deleted_at": gorm.Expr("CURRENT_TIMESTAMP"),
			"deleted_by": deletedBy,
		}).Error
}

// normalize reescreve status legado para o valor canônico e persiste a
// conversão, para que leituras subsequentes não a reapliquem
func (r *punchRepo) normalize(ctx context.Context, punch *model.Punch) {
	status, changed := model.NormalizePunchStatus(string(punch.Status))
	if !changed {
		return
	}
	punch.Status = status
	// falha aqui não impede a leitura; a varredura de consistência cobre
	r.db.WithContext(ctx).
		Model(&model.Punch{}).
		Where("punch_id = ?", punch.PunchID).
		UpdateColumn("status", status)
}
