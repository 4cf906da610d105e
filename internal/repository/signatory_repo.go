package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"cavreg/internal/models"
)

type SignatoryRepo struct {
	db *gorm.DB
}

func NewSignatoryRepo(db *gorm.DB) *SignatoryRepo {
	return &SignatoryRepo{db: db}
}

func (r *SignatoryRepo) Create(ctx context.Context, sig *models.Signatory) error {
	return r.db.WithContext(ctx).Create(sig).Error
}

// FindByID returns nil, nil when no signatory exists.
func (r *SignatoryRepo) FindByID(ctx context.Context, id string) (*models.Signatory, error) {
	var sig models.Signatory
	err := r.db.WithContext(ctx).First(&sig, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &sig, nil
}

func (r *SignatoryRepo) List(ctx context.Context, activeOnly bool) ([]models.Signatory, error) {
	q := r.db.WithContext(ctx).Order("full_name ASC")
	if activeOnly {
		q = q.Where("active = ?", true)
	}
	var sigs []models.Signatory
	err := q.Find(&sigs).Error
	return sigs, err
}

func (r *SignatoryRepo) Update(ctx context.Context, sig *models.Signatory) error {
	return r.db.WithContext(ctx).Save(sig).Error
}

func (r *SignatoryRepo) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Delete(&models.Signatory{}, "id = ?", id).Error
}

func (r *SignatoryRepo) Count(ctx context.Context) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&models.Signatory{}).Count(&n).Error
	return n, err
}
