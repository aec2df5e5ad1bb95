package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/leadhive/leadhive-api/internal/domain/entity"
	"github.com/leadhive/leadhive-api/pkg/pagination"
)

// LeadRepository defines the interface for lead data operations
type LeadRepository interface {
	Create(ctx context.Context, lead *entity.Lead) error
	// CreateBatch inserts many leads in one statement.
	CreateBatch(ctx context.Context, leads []entity.Lead) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Lead, error)
	Update(ctx context.Context, lead *entity.Lead) error
	Delete(ctx context.Context, id uuid.UUID) error
	// DeleteBatch removes the tenant's leads with the given ids and
	// reports how many rows were affected.
	DeleteBatch(ctx context.Context, ids []uuid.UUID) (int64, error)
	// UpdateBatch applies the same partial update to the tenant's leads
	// with the given ids and reports how many rows were affected.
	UpdateBatch(ctx context.Context, ids []uuid.UUID, fields map[string]interface{}) (int64, error)
	// List returns leads newest first with page-based pagination, optionally
	// narrowed by a text search and a pipeline.
	List(ctx context.Context, params *pagination.PaginationParams, search string, pipelineID *uuid.UUID) ([]entity.Lead, int64, error)
	// ListAll returns every lead of the tenant newest first.
	ListAll(ctx context.Context) ([]entity.Lead, error)
	// ExistingIDs filters the given ids down to those already present for the tenant.
	ExistingIDs(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]bool, error)
}
