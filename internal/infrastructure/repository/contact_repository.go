package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/leadhive/leadhive-api/internal/domain/entity"
	domainRepo "github.com/leadhive/leadhive-api/internal/domain/repository"
	"github.com/leadhive/leadhive-api/pkg/pagination"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type contactRepository struct {
	db *gorm.DB
}

// NewContactRepository creates a new contact repository
func NewContactRepository(db *gorm.DB) domainRepo.ContactRepository {
	return &contactRepository{db: db}
}

func (r *contactRepository) Create(ctx context.Context, contact *entity.Contact) error {
	return r.db.WithContext(ctx).Create(contact).Error
}

func (r *contactRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.Contact, error) {
	var contact entity.Contact
	err := r.db.WithContext(ctx).
		Scopes(TenantScope(ctx)).
		First(&contact, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &contact, err
}

func (r *contactRepository) Update(ctx context.Context, contact *entity.Contact) error {
	return r.db.WithContext(ctx).Save(contact).Error
}

func (r *contactRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&entity.Contact{}, "id = ?", id).Error
}

func (r *contactRepository) List(ctx context.Context, params *pagination.PaginationParams, search string) ([]entity.Contact, int64, error) {
	var contacts []entity.Contact
	var total int64

	query := r.db.WithContext(ctx).Model(&entity.Contact{}).Scopes(TenantScope(ctx))

	if search != "" {
		query = query.Where("name ILIKE ? OR email ILIKE ? OR company ILIKE ?",
			"%"+search+"%", "%"+search+"%", "%"+search+"%")
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	params.Validate()
	err := query.Offset(params.Offset()).Limit(params.PerPage).
		Order("created_at DESC").
		Find(&contacts).Error

	return contacts, total, err
}

func (r *contactRepository) ExistsBySubmissionID(ctx context.Context, submissionID string) (bool, error) {
	var count int64
	// The remote submission id lives inside the form_data JSON document.
	err := r.db.WithContext(ctx).Model(&entity.Contact{}).
		Scopes(TenantScope(ctx)).
		Where(datatypes.JSONQuery("form_data").Equals(submissionID, "_submission_id")).
		Count(&count).Error
	return count > 0, err
}
