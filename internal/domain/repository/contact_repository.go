package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/leadhive/leadhive-api/internal/domain/entity"
	"github.com/leadhive/leadhive-api/pkg/pagination"
)

// ContactRepository defines the interface for contact data operations
type ContactRepository interface {
	Create(ctx context.Context, contact *entity.Contact) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Contact, error)
	Update(ctx context.Context, contact *entity.Contact) error
	Delete(ctx context.Context, id uuid.UUID) error
	// List returns contacts newest first with page-based pagination.
	List(ctx context.Context, params *pagination.PaginationParams, search string) ([]entity.Contact, int64, error)
	// ExistsBySubmissionID reports whether a contact carrying the given remote
	// submission id in its form data already exists.
	ExistsBySubmissionID(ctx context.Context, submissionID string) (bool, error)
}
