package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/leadhive/leadhive-api/internal/domain/entity"
)

// FormRepository defines the interface for form data operations
type FormRepository interface {
	Create(ctx context.Context, form *entity.Form) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Form, error)
	// GetByIDAny looks a form up without the tenant scope. Public form
	// endpoints resolve the owning tenant from the form row itself.
	GetByIDAny(ctx context.Context, id uuid.UUID) (*entity.Form, error)
	Update(ctx context.Context, form *entity.Form) error
	Delete(ctx context.Context, id uuid.UUID) error
	// List returns the tenant's forms newest first.
	List(ctx context.Context) ([]entity.Form, error)
	// ListJotform returns the tenant's forms that are linked to Jotform.
	ListJotform(ctx context.Context) ([]entity.Form, error)
}
