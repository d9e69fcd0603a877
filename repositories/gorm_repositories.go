package repositories

import (
	"context"
	"errors"

	"mediabox/models"

	"gorm.io/gorm"
)

type GormFileRecordRepository struct {
	db *gorm.DB
}

func NewGormFileRecordRepository(db *gorm.DB) *GormFileRecordRepository {
	return &GormFileRecordRepository{db: db}
}

func (r *GormFileRecordRepository) Create(ctx context.Context, rec *models.FileRecord) error {
	return r.db.WithContext(ctx).Create(rec).Error
}

func (r *GormFileRecordRepository) GetByID(ctx context.Context, id string) (models.FileRecord, error) {
	var rec models.FileRecord
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&rec).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return models.FileRecord{}, ErrNotFound
	}
	return rec, err
}

func (r *GormFileRecordRepository) DeleteByID(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Where("id = ?", id).Delete(&models.FileRecord{}).Error
}

func (r *GormFileRecordRepository) ListByUploadedAtDesc(ctx context.Context) ([]models.FileRecord, error) {
	var list []models.FileRecord
	err := r.db.WithContext(ctx).Order("uploaded_at DESC").Find(&list).Error
	return list, err
}
