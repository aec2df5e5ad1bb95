package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/leadhive/leadhive-api/internal/domain/entity"
)

// PipelineRepository defines the interface for pipeline data operations
type PipelineRepository interface {
	Create(ctx context.Context, pipeline *entity.Pipeline) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Pipeline, error)
	Update(ctx context.Context, pipeline *entity.Pipeline) error
	Delete(ctx context.Context, id uuid.UUID) error
	// List returns the tenant's pipelines with their stages preloaded in board order.
	List(ctx context.Context) ([]entity.Pipeline, error)
	Count(ctx context.Context) (int64, error)
}

// StageRepository defines the interface for stage data operations
type StageRepository interface {
	Create(ctx context.Context, stage *entity.Stage) error
	CreateBatch(ctx context.Context, stages []entity.Stage) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Stage, error)
	Update(ctx context.Context, stage *entity.Stage) error
	Delete(ctx context.Context, id uuid.UUID) error
	// ListByPipeline returns a pipeline's stages ordered by their board position.
	ListByPipeline(ctx context.Context, pipelineID uuid.UUID) ([]entity.Stage, error)
	// MaxOrder returns the highest board position in a pipeline, 0 when empty.
	MaxOrder(ctx context.Context, pipelineID uuid.UUID) (int, error)
}
