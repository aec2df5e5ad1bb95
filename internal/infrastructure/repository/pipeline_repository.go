package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/leadhive/leadhive-api/internal/domain/entity"
	domainRepo "github.com/leadhive/leadhive-api/internal/domain/repository"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type pipelineRepository struct {
	db *gorm.DB
}

// NewPipelineRepository creates a new pipeline repository
func NewPipelineRepository(db *gorm.DB) domainRepo.PipelineRepository {
	return &pipelineRepository{db: db}
}

func (r *pipelineRepository) Create(ctx context.Context, pipeline *entity.Pipeline) error {
	return r.db.WithContext(ctx).Create(pipeline).Error
}

func (r *pipelineRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.Pipeline, error) {
	var pipeline entity.Pipeline
	err := r.db.WithContext(ctx).
		Scopes(TenantScope(ctx)).
		Preload("Stages", func(db *gorm.DB) *gorm.DB {
			return db.Order(orderedStages())
		}).
		First(&pipeline, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &pipeline, err
}

func (r *pipelineRepository) Update(ctx context.Context, pipeline *entity.Pipeline) error {
	return r.db.WithContext(ctx).Save(pipeline).Error
}

func (r *pipelineRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Delete(&entity.Stage{}, "pipeline_id = ?", id).Error; err != nil {
			return err
		}
		return tx.Delete(&entity.Pipeline{}, "id = ?", id).Error
	})
}

func (r *pipelineRepository) List(ctx context.Context) ([]entity.Pipeline, error) {
	var pipelines []entity.Pipeline
	err := r.db.WithContext(ctx).
		Scopes(TenantScope(ctx)).
		Preload("Stages", func(db *gorm.DB) *gorm.DB {
			return db.Order(orderedStages())
		}).
		Order("created_at ASC").
		Find(&pipelines).Error
	return pipelines, err
}

func (r *pipelineRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&entity.Pipeline{}).
		Scopes(TenantScope(ctx)).
		Count(&count).Error
	return count, err
}

// orderedStages sorts stages by board position. "order" is quoted because
// it is a reserved word in both postgres and sqlite.
func orderedStages() clause.OrderByColumn {
	return clause.OrderByColumn{Column: clause.Column{Name: "order"}}
}

type stageRepository struct {
	db *gorm.DB
}

// NewStageRepository creates a new stage repository
func NewStageRepository(db *gorm.DB) domainRepo.StageRepository {
	return &stageRepository{db: db}
}

func (r *stageRepository) Create(ctx context.Context, stage *entity.Stage) error {
	return r.db.WithContext(ctx).Create(stage).Error
}

func (r *stageRepository) CreateBatch(ctx context.Context, stages []entity.Stage) error {
	if len(stages) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Create(&stages).Error
}

func (r *stageRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.Stage, error) {
	var stage entity.Stage
	err := r.db.WithContext(ctx).
		Scopes(TenantScope(ctx)).
		First(&stage, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &stage, err
}

func (r *stageRepository) Update(ctx context.Context, stage *entity.Stage) error {
	return r.db.WithContext(ctx).Save(stage).Error
}

func (r *stageRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&entity.Stage{}, "id = ?", id).Error
}

func (r *stageRepository) ListByPipeline(ctx context.Context, pipelineID uuid.UUID) ([]entity.Stage, error) {
	var stages []entity.Stage
	err := r.db.WithContext(ctx).
		Scopes(TenantScope(ctx)).
		Where("pipeline_id = ?", pipelineID).
		Order(orderedStages()).
		Find(&stages).Error
	return stages, err
}

func (r *stageRepository) MaxOrder(ctx context.Context, pipelineID uuid.UUID) (int, error) {
	var max int
	err := r.db.WithContext(ctx).Model(&entity.Stage{}).
		Scopes(TenantScope(ctx)).
		Where("pipeline_id = ?", pipelineID).
		Select(`COALESCE(MAX("order"), 0)`).
		Scan(&max).Error
	return max, err
}
