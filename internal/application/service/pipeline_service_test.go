package service_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leadhive/leadhive-api/internal/application/service"
	"github.com/leadhive/leadhive-api/internal/domain/entity"
	"github.com/leadhive/leadhive-api/internal/realtime"
)

func TestEnsureDefaultPipelineBootstrapsOnce(t *testing.T) {
	env := newTestEnv(t)

	first, err := env.pipelines.EnsureDefaultPipeline(env.ctx)
	require.NoError(t, err)
	assert.Equal(t, entity.DefaultPipelineName, first.Name)
	require.Len(t, first.Stages, 5)

	wanted := entity.DefaultStages()
	for i, stage := range first.Stages {
		assert.Equal(t, wanted[i].Name, stage.Name)
		assert.Equal(t, wanted[i].Color, stage.Color)
		assert.Equal(t, i+1, stage.Order)
	}

	// Calling again must not create a second pipeline
	second, err := env.pipelines.EnsureDefaultPipeline(env.ctx)
	require.NoError(t, err)
	assert.Equal(t, first.ID, second.ID)

	pipelines, err := env.pipelines.ListPipelines(env.ctx)
	require.NoError(t, err)
	assert.Len(t, pipelines, 1)
}

func TestEnsureDefaultPipelineKeepsExisting(t *testing.T) {
	env := newTestEnv(t)

	custom, err := env.pipelines.CreatePipeline(env.ctx, "Enterprise Deals")
	require.NoError(t, err)

	got, err := env.pipelines.EnsureDefaultPipeline(env.ctx)
	require.NoError(t, err)
	assert.Equal(t, custom.ID, got.ID)
	assert.Equal(t, "Enterprise Deals", got.Name)
}

func TestCreateStageAppendsToBoard(t *testing.T) {
	env := newTestEnv(t)

	pipeline, err := env.pipelines.EnsureDefaultPipeline(env.ctx)
	require.NoError(t, err)

	stage, err := env.pipelines.CreateStage(env.ctx, pipeline.ID, "Negotiation", "#f87171")
	require.NoError(t, err)
	assert.Equal(t, 6, stage.Order)

	stages, err := env.pipelines.ListStages(env.ctx, pipeline.ID)
	require.NoError(t, err)
	require.Len(t, stages, 6)
	for i, s := range stages {
		assert.Equal(t, i+1, s.Order, "stages must come back in board order")
	}
	assert.Equal(t, "Negotiation", stages[5].Name)
}

func TestCreateStageOnEmptyPipelineStartsAtOne(t *testing.T) {
	env := newTestEnv(t)

	pipeline, err := env.pipelines.CreatePipeline(env.ctx, "Side Channel")
	require.NoError(t, err)

	stage, err := env.pipelines.CreateStage(env.ctx, pipeline.ID, "Inbox", "#818cf8")
	require.NoError(t, err)
	assert.Equal(t, 1, stage.Order)
}

func TestDeletePipelineRemovesItsStages(t *testing.T) {
	env := newTestEnv(t)

	pipeline, err := env.pipelines.EnsureDefaultPipeline(env.ctx)
	require.NoError(t, err)

	require.NoError(t, env.pipelines.DeletePipeline(env.ctx, pipeline.ID))

	pipelines, err := env.pipelines.ListPipelines(env.ctx)
	require.NoError(t, err)
	assert.Empty(t, pipelines)

	stages, err := env.pipelines.ListStages(env.ctx, pipeline.ID)
	require.NoError(t, err)
	assert.Empty(t, stages)
}

func TestPipelineMutationsBroadcast(t *testing.T) {
	env := newTestEnv(t)

	pipeline, err := env.pipelines.CreatePipeline(env.ctx, "Outbound")
	require.NoError(t, err)
	assert.True(t, containsEvent(env.notifier.Events(), realtime.EventPipelinesUpdated))

	env.notifier.Reset()
	_, err = env.pipelines.UpdatePipeline(env.ctx, pipeline.ID, "Outbound Q3")
	require.NoError(t, err)
	assert.True(t, containsEvent(env.notifier.Events(), realtime.EventPipelinesUpdated))
}

func TestUpdateStageRenamesAndRecolors(t *testing.T) {
	env := newTestEnv(t)

	pipeline, err := env.pipelines.EnsureDefaultPipeline(env.ctx)
	require.NoError(t, err)
	target := pipeline.Stages[1]

	updated, err := env.pipelines.UpdateStage(env.ctx, &service.UpdateStageInput{
		ID:    target.ID,
		Name:  strPtr("Reached Out"),
		Color: strPtr("#ffffff"),
	})
	require.NoError(t, err)
	assert.Equal(t, "Reached Out", updated.Name)
	assert.Equal(t, "#ffffff", updated.Color)
	assert.Equal(t, target.Order, updated.Order)
}
