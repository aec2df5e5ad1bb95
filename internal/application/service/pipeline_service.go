package service

import (
	"context"

	"github.com/google/uuid"
	"github.com/leadhive/leadhive-api/internal/domain/entity"
	"github.com/leadhive/leadhive-api/internal/domain/repository"
	infraRepo "github.com/leadhive/leadhive-api/internal/infrastructure/repository"
	"github.com/leadhive/leadhive-api/internal/realtime"
	"github.com/leadhive/leadhive-api/pkg/apperror"
)

// Notifier broadcasts tenant-scoped change events to connected clients
type Notifier interface {
	Broadcast(tenantID uuid.UUID, event string)
}

// NopNotifier discards all events
type NopNotifier struct{}

// Broadcast implements Notifier
func (NopNotifier) Broadcast(uuid.UUID, string) {}

// PipelineService handles pipeline and stage operations
type PipelineService struct {
	pipelineRepo repository.PipelineRepository
	stageRepo    repository.StageRepository
	notifier     Notifier
}

// NewPipelineService creates a new pipeline service
func NewPipelineService(pipelineRepo repository.PipelineRepository, stageRepo repository.StageRepository, notifier Notifier) *PipelineService {
	if notifier == nil {
		notifier = NopNotifier{}
	}
	return &PipelineService{
		pipelineRepo: pipelineRepo,
		stageRepo:    stageRepo,
		notifier:     notifier,
	}
}

// CreatePipeline creates an empty pipeline
func (s *PipelineService) CreatePipeline(ctx context.Context, name string) (*entity.Pipeline, error) {
	tenantID, ok := infraRepo.GetTenantID(ctx)
	if !ok {
		return nil, apperror.NewBadRequestError("Tenant context required")
	}

	pipeline := &entity.Pipeline{
		TenantID: tenantID,
		Name:     name,
	}

	if err := s.pipelineRepo.Create(ctx, pipeline); err != nil {
		return nil, err
	}

	s.notifier.Broadcast(tenantID, realtime.EventPipelinesUpdated)
	return pipeline, nil
}

// GetPipeline retrieves a pipeline with its stages
func (s *PipelineService) GetPipeline(ctx context.Context, id uuid.UUID) (*entity.Pipeline, error) {
	pipeline, err := s.pipelineRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if pipeline == nil {
		return nil, apperror.NewNotFoundError("Pipeline")
	}
	return pipeline, nil
}

// ListPipelines lists the tenant's pipelines with stages preloaded
func (s *PipelineService) ListPipelines(ctx context.Context) ([]entity.Pipeline, error) {
	return s.pipelineRepo.List(ctx)
}

// UpdatePipeline renames a pipeline
func (s *PipelineService) UpdatePipeline(ctx context.Context, id uuid.UUID, name string) (*entity.Pipeline, error) {
	pipeline, err := s.pipelineRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if pipeline == nil {
		return nil, apperror.NewNotFoundError("Pipeline")
	}

	pipeline.Name = name
	if err := s.pipelineRepo.Update(ctx, pipeline); err != nil {
		return nil, err
	}

	s.notifier.Broadcast(pipeline.TenantID, realtime.EventPipelinesUpdated)
	return pipeline, nil
}

// DeletePipeline removes a pipeline together with its stages. Leads that
// referenced the deleted pipeline keep their now dangling references and
// are re-homed lazily by callers.
func (s *PipelineService) DeletePipeline(ctx context.Context, id uuid.UUID) error {
	pipeline, err := s.pipelineRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if pipeline == nil {
		return apperror.NewNotFoundError("Pipeline")
	}

	if err := s.pipelineRepo.Delete(ctx, id); err != nil {
		return err
	}

	s.notifier.Broadcast(pipeline.TenantID, realtime.EventPipelinesUpdated)
	return nil
}

// ListStages returns a pipeline's stages in board order
func (s *PipelineService) ListStages(ctx context.Context, pipelineID uuid.UUID) ([]entity.Stage, error) {
	return s.stageRepo.ListByPipeline(ctx, pipelineID)
}

// CreateStage appends a stage to the end of a pipeline's board
func (s *PipelineService) CreateStage(ctx context.Context, pipelineID uuid.UUID, name, color string) (*entity.Stage, error) {
	tenantID, ok := infraRepo.GetTenantID(ctx)
	if !ok {
		return nil, apperror.NewBadRequestError("Tenant context required")
	}

	pipeline, err := s.pipelineRepo.GetByID(ctx, pipelineID)
	if err != nil {
		return nil, err
	}
	if pipeline == nil {
		return nil, apperror.NewNotFoundError("Pipeline")
	}

	maxOrder, err := s.stageRepo.MaxOrder(ctx, pipelineID)
	if err != nil {
		return nil, err
	}

	stage := &entity.Stage{
		TenantID:   tenantID,
		PipelineID: pipelineID,
		Name:       name,
		Color:      color,
		Order:      maxOrder + 1,
	}

	if err := s.stageRepo.Create(ctx, stage); err != nil {
		return nil, err
	}

	s.notifier.Broadcast(tenantID, realtime.EventPipelinesUpdated)
	return stage, nil
}

// UpdateStageInput represents the update stage input
type UpdateStageInput struct {
	ID    uuid.UUID
	Name  *string
	Color *string
	Order *int
}

// UpdateStage applies a partial update to a stage
func (s *PipelineService) UpdateStage(ctx context.Context, input *UpdateStageInput) (*entity.Stage, error) {
	stage, err := s.stageRepo.GetByID(ctx, input.ID)
	if err != nil {
		return nil, err
	}
	if stage == nil {
		return nil, apperror.NewNotFoundError("Stage")
	}

	if input.Name != nil {
		stage.Name = *input.Name
	}
	if input.Color != nil {
		stage.Color = *input.Color
	}
	if input.Order != nil {
		stage.Order = *input.Order
	}

	if err := s.stageRepo.Update(ctx, stage); err != nil {
		return nil, err
	}

	s.notifier.Broadcast(stage.TenantID, realtime.EventPipelinesUpdated)
	return stage, nil
}

// DeleteStage removes a stage
func (s *PipelineService) DeleteStage(ctx context.Context, id uuid.UUID) error {
	stage, err := s.stageRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if stage == nil {
		return apperror.NewNotFoundError("Stage")
	}

	if err := s.stageRepo.Delete(ctx, id); err != nil {
		return err
	}

	s.notifier.Broadcast(stage.TenantID, realtime.EventPipelinesUpdated)
	return nil
}

// EnsureDefaultPipeline bootstraps the tenant's first pipeline. When the
// tenant has no pipelines it creates one with the canonical stage layout,
// otherwise it returns the existing first pipeline. Safe to call any
// number of times.
func (s *PipelineService) EnsureDefaultPipeline(ctx context.Context) (*entity.Pipeline, error) {
	tenantID, ok := infraRepo.GetTenantID(ctx)
	if !ok {
		return nil, apperror.NewBadRequestError("Tenant context required")
	}

	count, err := s.pipelineRepo.Count(ctx)
	if err != nil {
		return nil, err
	}
	if count > 0 {
		pipelines, err := s.pipelineRepo.List(ctx)
		if err != nil {
			return nil, err
		}
		if len(pipelines) == 0 {
			return nil, apperror.ErrInternalServer
		}
		return &pipelines[0], nil
	}

	pipeline := &entity.Pipeline{
		TenantID: tenantID,
		Name:     entity.DefaultPipelineName,
	}
	if err := s.pipelineRepo.Create(ctx, pipeline); err != nil {
		return nil, err
	}

	defaults := entity.DefaultStages()
	stages := make([]entity.Stage, 0, len(defaults))
	for i, def := range defaults {
		stages = append(stages, entity.Stage{
			TenantID:   tenantID,
			PipelineID: pipeline.ID,
			Name:       def.Name,
			Color:      def.Color,
			Order:      i + 1,
		})
	}
	if err := s.stageRepo.CreateBatch(ctx, stages); err != nil {
		return nil, err
	}

	pipeline.Stages = stages
	s.notifier.Broadcast(tenantID, realtime.EventPipelinesUpdated)
	return pipeline, nil
}
