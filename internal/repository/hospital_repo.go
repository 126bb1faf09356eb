package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/007-sistemas/Sistema-Web-sub000/internal/model"
)

// HospitalRepository acesso a dados de hospitais
type HospitalRepository interface {
	Create(ctx context.Context, hospital *model.Hospital) error
	GetByID(ctx context.Context, id string) (*model.Hospital, error)
	List(ctx context.Context) ([]model.Hospital, error)
	Update(ctx context.Context, hospital *model.Hospital) error
	Delete(ctx context.Context, id string, deletedBy string) error
}

// SectorRepository acesso a dados de setores
type SectorRepository interface {
	Create(ctx context.Context, sector *model.Sector) error
	GetByID(ctx context.Context, id string) (*model.Sector, error)
	ListByHospital(ctx context.Context, hospitalID string) ([]model.Sector, error)
	Update(ctx context.Context, sector *model.Sector) error
	Delete(ctx context.Context, id string, deletedBy string) error
}

// ── Hospital ──

type hospitalRepo struct {
	db *gorm.DB
}

// NewHospitalRepo cria a implementação GORM de HospitalRepository
func NewHospitalRepo(db *gorm.DB) HospitalRepository {
	return &hospitalRepo{db: db}
}

func (r *hospitalRepo) Create(ctx context.Context, hospital *model.Hospital) error {
	return r.db.WithContext(ctx).Create(hospital).Error
}

func (r *hospitalRepo) GetByID(ctx context.Context, id string) (*model.Hospital, error) {
	var hospital model.Hospital
	err := r.db.WithContext(ctx).
		Where("hospital_id = ?", id).
		First(&hospital).Error
	if err != nil {
		return nil, err
	}
	return &hospital, nil
}

func (r *hospitalRepo) List(ctx context.Context) ([]model.Hospital, error) {
	var hospitals []model.Hospital
	err := r.db.WithContext(ctx).
		Order("created_at ASC").
		Find(&hospitals).Error
	return hospitals, err
}

func (r *hospitalRepo) Update(ctx context.Context, hospital *model.Hospital) error {
	return r.db.WithContext(ctx).Save(hospital).Error
}

func (r *hospitalRepo) Delete(ctx context.Context, id string, deletedBy string) error {
	return r.db.WithContext(ctx).
		Model(&model.Hospital{}).
		Where("hospital_id = ?", id).
		Updates(map[string]interface{}{
			"deleted_at": gorm.Expr("CURRENT_TIMESTAMP"),
			"deleted_by": deletedBy,
		}).Error
}

// ── Sector ──

type sectorRepo struct {
	db *gorm.DB
}

// NewSectorRepo cria a implementação GORM de SectorRepository
func NewSectorRepo(db *gorm.DB) SectorRepository {
	return &sectorRepo{db: db}
}

func (r *sectorRepo) Create(ctx context.Context, sector *model.Sector) error {
	return r.db.WithContext(ctx).Create(sector).Error
}

func (r *sectorRepo) GetByID(ctx context.Context, id string) (*model.Sector, error) {
	var sector model.Sector
	err := r.db.WithContext(ctx).
		Preload("Hospital").
		Where("sector_id = ?", id).
		First(&sector).Error
	if err != nil {
		return nil, err
	}
	return &sector, nil
}

func (r *sectorRepo) ListByHospital(ctx context.Context, hospitalID string) ([]model.Sector, error) {
	var sectors []model.Sector
	err := r.db.WithContext(ctx).
		Where("hospital_id = ?", hospitalID).
		Order("name ASC").
		Find(&sectors).Error
	return sectors, err
}

func (r *sectorRepo) Update(ctx context.Context, sector *model.Sector) error {
	return r.db.WithContext(ctx).Save(sector).Error
}

func (r *sectorRepo) Delete(ctx context.Context, id string, deletedBy string) error {
	return r.db.WithContext(ctx).
		Model(&model.Sector{}).
		Where("sector_id = ?", id).
		Updates(map[string]interface{}{
			"deleted_at": gorm.Expr("CURRENT_TIMESTAMP"),
			"deleted_by": deletedBy,
		}).Error
}
