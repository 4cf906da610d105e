package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"cavreg/internal/models"
)

type FormRepo struct {
	db *gorm.DB
}

func NewFormRepo(db *gorm.DB) *FormRepo {
	return &FormRepo{db: db}
}

func (r *FormRepo) Create(ctx context.Context, form *models.CAVForm) error {
	return r.db.WithContext(ctx).Create(form).Error
}

// FindByID returns nil, nil when no record exists.
func (r *FormRepo) FindByID(ctx context.Context, id string) (*models.CAVForm, error) {
	var form models.CAVForm
	err := r.db.WithContext(ctx).First(&form, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &form, nil
}

func (r *FormRepo) List(ctx context.Context, archived bool) ([]models.CAVForm, error) {
	var forms []models.CAVForm
	err := r.db.WithContext(ctx).
		Where("is_archived = ?", archived).
		Order("created_at DESC").
		Find(&forms).Error
	return forms, err
}

func (r *FormRepo) Update(ctx context.Context, form *models.CAVForm) error {
	return r.db.WithContext(ctx).Save(form).Error
}

func (r *FormRepo) SetArchived(ctx context.Context, id string, archived bool) error {
	return r.db.WithContext(ctx).
		Model(&models.CAVForm{}).
		Where("id = ?", id).
		Update("is_archived", archived).Error
}

func (r *FormRepo) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Delete(&models.CAVForm{}, "id = ?", id).Error
}

func (r *FormRepo) Count(ctx context.Context, archived bool) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).
		Model(&models.CAVForm{}).
		Where("is_archived = ?", archived).
		Count(&n).Error
	return n, err
}
