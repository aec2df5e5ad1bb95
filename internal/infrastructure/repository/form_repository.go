package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/leadhive/leadhive-api/internal/domain/entity"
	domainRepo "github.com/leadhive/leadhive-api/internal/domain/repository"
	"gorm.io/gorm"
)

type formRepository struct {
	db *gorm.DB
}

// NewFormRepository creates a new form repository
func NewFormRepository(db *gorm.DB) domainRepo.FormRepository {
	return &formRepository{db: db}
}

func (r *formRepository) Create(ctx context.Context, form *entity.Form) error {
	return r.db.WithContext(ctx).Create(form).Error
}

func (r *formRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.Form, error) {
	var form entity.Form
	err := r.db.WithContext(ctx).
		Scopes(TenantScope(ctx)).
		First(&form, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &form, err
}

func (r *formRepository) GetByIDAny(ctx context.Context, id uuid.UUID) (*entity.Form, error) {
	var form entity.Form
	err := r.db.WithContext(ctx).First(&form, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &form, err
}

func (r *formRepository) Update(ctx context.Context, form *entity.Form) error {
	return r.db.WithContext(ctx).Save(form).Error
}

func (r *formRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&entity.Form{}, "id = ?", id).Error
}

func (r *formRepository) List(ctx context.Context) ([]entity.Form, error) {
	var forms []entity.Form
	err := r.db.WithContext(ctx).
		Scopes(TenantScope(ctx)).
		Order("created_at DESC").
		Find(&forms).Error
	return forms, err
}

func (r *formRepository) ListJotform(ctx context.Context) ([]entity.Form, error) {
	var forms []entity.Form
	err := r.db.WithContext(ctx).
		Scopes(TenantScope(ctx)).
		Where("jotform_id IS NOT NULL").
		Order("created_at DESC").
		Find(&forms).Error
	return forms, err
}
