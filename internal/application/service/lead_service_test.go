package service_test

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leadhive/leadhive-api/internal/application/service"
	"github.com/leadhive/leadhive-api/internal/domain/entity"
	"github.com/leadhive/leadhive-api/internal/realtime"
	"github.com/leadhive/leadhive-api/pkg/pagination"
)

func TestCreateLeadDefaultsStatusToNew(t *testing.T) {
	env := newTestEnv(t)

	lead, err := env.leads.CreateLead(env.ctx, &service.CreateLeadInput{
		Name:   "Jane Doe",
		Source: "Website",
	})
	require.NoError(t, err)
	assert.Equal(t, entity.LeadStatusNew, lead.Status)
	assert.True(t, containsEvent(env.notifier.Events(), realtime.EventLeadsUpdated))
}

func TestMoveLeadToStageAlignsStatus(t *testing.T) {
	env := newTestEnv(t)

	pipeline, err := env.pipelines.EnsureDefaultPipeline(env.ctx)
	require.NoError(t, err)
	contacted := pipeline.Stages[1]

	lead, err := env.leads.CreateLead(env.ctx, &service.CreateLeadInput{
		Name:       "Jane Doe",
		PipelineID: &pipeline.ID,
		StageID:    &pipeline.Stages[0].ID,
	})
	require.NoError(t, err)

	moved, err := env.leads.UpdateLead(env.ctx, &service.UpdateLeadInput{
		ID:      lead.ID,
		StageID: &contacted.ID,
	})
	require.NoError(t, err)
	assert.Equal(t, contacted.ID, *moved.StageID)
	assert.Equal(t, pipeline.ID, *moved.PipelineID)
	assert.Equal(t, "Contacted", moved.Status)
}

func TestUpdateLeadRejectsUnknownStage(t *testing.T) {
	env := newTestEnv(t)

	lead, err := env.leads.CreateLead(env.ctx, &service.CreateLeadInput{Name: "Jane Doe"})
	require.NoError(t, err)

	bogus := uuid.New()
	_, err = env.leads.UpdateLead(env.ctx, &service.UpdateLeadInput{
		ID:      lead.ID,
		StageID: &bogus,
	})
	assert.Error(t, err)
}

func TestListLeadsNewestFirst(t *testing.T) {
	env := newTestEnv(t)

	for _, name := range []string{"First", "Second", "Third"} {
		_, err := env.leads.CreateLead(env.ctx, &service.CreateLeadInput{Name: name})
		require.NoError(t, err)
	}

	params := pagination.DefaultPagination()
	result, err := env.leads.ListLeads(env.ctx, params, "", nil)
	require.NoError(t, err)
	require.Len(t, result.Items, 3)
	assert.Equal(t, "Third", result.Items[0].Name)
	assert.Equal(t, "First", result.Items[2].Name)
	assert.Equal(t, int64(3), result.Pagination.Total)
}

func TestLeadsAreTenantIsolated(t *testing.T) {
	env := newTestEnv(t)

	_, err := env.leads.CreateLead(env.ctx, &service.CreateLeadInput{Name: "Mine"})
	require.NoError(t, err)

	otherCtx := tenantContext(t, uuid.New())
	result, err := env.leads.ListLeads(otherCtx, pagination.DefaultPagination(), "", nil)
	require.NoError(t, err)
	assert.Empty(t, result.Items)
}

func TestListLeadsFiltersByPipeline(t *testing.T) {
	env := newTestEnv(t)

	pipeline, err := env.pipelines.EnsureDefaultPipeline(env.ctx)
	require.NoError(t, err)
	other, err := env.pipelines.CreatePipeline(env.ctx, "Renewals")
	require.NoError(t, err)

	_, err = env.leads.CreateLead(env.ctx, &service.CreateLeadInput{
		Name:       "In Main",
		PipelineID: &pipeline.ID,
		StageID:    &pipeline.Stages[0].ID,
	})
	require.NoError(t, err)
	_, err = env.leads.CreateLead(env.ctx, &service.CreateLeadInput{
		Name:       "In Renewals",
		PipelineID: &other.ID,
	})
	require.NoError(t, err)

	result, err := env.leads.ListLeads(env.ctx, pagination.DefaultPagination(), "", &other.ID)
	require.NoError(t, err)
	require.Len(t, result.Items, 1)
	assert.Equal(t, "In Renewals", result.Items[0].Name)
}

func TestBulkDeleteLeadsRemovesOnlyListed(t *testing.T) {
	env := newTestEnv(t)

	doomed := make([]uuid.UUID, 0, 2)
	for _, name := range []string{"Gone", "Also Gone"} {
		lead, err := env.leads.CreateLead(env.ctx, &service.CreateLeadInput{Name: name})
		require.NoError(t, err)
		doomed = append(doomed, lead.ID)
	}
	survivor, err := env.leads.CreateLead(env.ctx, &service.CreateLeadInput{Name: "Survivor"})
	require.NoError(t, err)

	env.notifier.Reset()
	deleted, err := env.leads.BulkDeleteLeads(env.ctx, doomed)
	require.NoError(t, err)
	assert.Equal(t, int64(2), deleted)
	assert.True(t, containsEvent(env.notifier.Events(), realtime.EventLeadsUpdated))

	remaining, err := env.leads.ExportLeads(env.ctx)
	require.NoError(t, err)
	require.Len(t, remaining, 1)
	assert.Equal(t, survivor.ID, remaining[0].ID)
}

func TestBulkDeleteLeadsSkipsOtherTenants(t *testing.T) {
	env := newTestEnv(t)

	mine, err := env.leads.CreateLead(env.ctx, &service.CreateLeadInput{Name: "Mine"})
	require.NoError(t, err)

	otherCtx := tenantContext(t, uuid.New())
	deleted, err := env.leads.BulkDeleteLeads(otherCtx, []uuid.UUID{mine.ID})
	require.NoError(t, err)
	assert.Equal(t, int64(0), deleted)

	kept, err := env.leads.GetLead(env.ctx, mine.ID)
	require.NoError(t, err)
	assert.Equal(t, "Mine", kept.Name)
}

func TestBulkUpdateLeadsSetsStatusAndAssignee(t *testing.T) {
	env := newTestEnv(t)

	ids := make([]uuid.UUID, 0, 2)
	for _, name := range []string{"One", "Two"} {
		lead, err := env.leads.CreateLead(env.ctx, &service.CreateLeadInput{Name: name})
		require.NoError(t, err)
		ids = append(ids, lead.ID)
	}

	owner := uuid.New()
	status := "Contacted"
	env.notifier.Reset()
	updated, err := env.leads.BulkUpdateLeads(env.ctx, &service.BulkUpdateLeadsInput{
		IDs:        ids,
		Status:     &status,
		AssignedTo: &owner,
	})
	require.NoError(t, err)
	assert.Equal(t, int64(2), updated)
	assert.True(t, containsEvent(env.notifier.Events(), realtime.EventLeadsUpdated))

	for _, id := range ids {
		lead, err := env.leads.GetLead(env.ctx, id)
		require.NoError(t, err)
		assert.Equal(t, "Contacted", lead.Status)
		require.NotNil(t, lead.AssignedTo)
		assert.Equal(t, owner, *lead.AssignedTo)
	}
}

func TestBulkUpdateLeadsRejectsEmptyChange(t *testing.T) {
	env := newTestEnv(t)

	lead, err := env.leads.CreateLead(env.ctx, &service.CreateLeadInput{Name: "Untouched"})
	require.NoError(t, err)

	_, err = env.leads.BulkUpdateLeads(env.ctx, &service.BulkUpdateLeadsInput{
		IDs: []uuid.UUID{lead.ID},
	})
	assert.Error(t, err)
}

func TestImportLeadsRehomesUnknownPipeline(t *testing.T) {
	env := newTestEnv(t)

	unknown := uuid.New()
	result, err := env.leads.ImportLeads(env.ctx, []service.ImportLeadRecord{
		{CreateLeadInput: service.CreateLeadInput{
			Name:       "Orphan",
			PipelineID: &unknown,
		}},
	})
	require.NoError(t, err)
	assert.Equal(t, 1, result.Created)
	assert.Equal(t, 0, result.Updated)

	// The import bootstraps the default pipeline when the tenant has none
	pipelines, err := env.pipelines.ListPipelines(env.ctx)
	require.NoError(t, err)
	require.Len(t, pipelines, 1)
	assert.Equal(t, entity.DefaultPipelineName, pipelines[0].Name)

	leads, err := env.leads.ExportLeads(env.ctx)
	require.NoError(t, err)
	require.Len(t, leads, 1)
	require.NotNil(t, leads[0].PipelineID)
	assert.Equal(t, pipelines[0].ID, *leads[0].PipelineID)
	require.NotNil(t, leads[0].StageID)
	assert.Equal(t, pipelines[0].Stages[0].ID, *leads[0].StageID)
}

func TestImportLeadsWithoutStatusTakesStageName(t *testing.T) {
	env := newTestEnv(t)

	result, err := env.leads.ImportLeads(env.ctx, []service.ImportLeadRecord{
		{CreateLeadInput: service.CreateLeadInput{Name: "No Status"}},
	})
	require.NoError(t, err)
	assert.Equal(t, 1, result.Created)

	pipelines, err := env.pipelines.ListPipelines(env.ctx)
	require.NoError(t, err)
	require.Len(t, pipelines, 1)
	firstStage := pipelines[0].Stages[0]

	leads, err := env.leads.ExportLeads(env.ctx)
	require.NoError(t, err)
	require.Len(t, leads, 1)
	require.NotNil(t, leads[0].StageID)
	assert.Equal(t, firstStage.ID, *leads[0].StageID)
	assert.Equal(t, firstStage.Name, leads[0].Status)
}

func TestImportLeadsUpdateKeepsStatusAlignedWithStage(t *testing.T) {
	env := newTestEnv(t)

	pipeline, err := env.pipelines.EnsureDefaultPipeline(env.ctx)
	require.NoError(t, err)
	contacted := pipeline.Stages[1]

	lead, err := env.leads.CreateLead(env.ctx, &service.CreateLeadInput{
		Name:       "Jane Doe",
		PipelineID: &pipeline.ID,
		StageID:    &pipeline.Stages[0].ID,
	})
	require.NoError(t, err)

	result, err := env.leads.ImportLeads(env.ctx, []service.ImportLeadRecord{
		{ID: &lead.ID, CreateLeadInput: service.CreateLeadInput{
			Name:       "Jane Doe",
			PipelineID: &pipeline.ID,
			StageID:    &contacted.ID,
		}},
	})
	require.NoError(t, err)
	assert.Equal(t, 1, result.Updated)

	updated, err := env.leads.GetLead(env.ctx, lead.ID)
	require.NoError(t, err)
	require.NotNil(t, updated.StageID)
	assert.Equal(t, contacted.ID, *updated.StageID)
	assert.Equal(t, contacted.Name, updated.Status)
}

func TestImportLeadsDropsStageFromAnotherPipeline(t *testing.T) {
	env := newTestEnv(t)

	pipeline, err := env.pipelines.EnsureDefaultPipeline(env.ctx)
	require.NoError(t, err)

	unknownPipeline := uuid.New()
	strayStage := uuid.New()
	_, err = env.leads.ImportLeads(env.ctx, []service.ImportLeadRecord{
		{CreateLeadInput: service.CreateLeadInput{
			Name:       "Stray",
			PipelineID: &unknownPipeline,
			StageID:    &strayStage,
		}},
	})
	require.NoError(t, err)

	leads, err := env.leads.ExportLeads(env.ctx)
	require.NoError(t, err)
	require.Len(t, leads, 1)
	require.NotNil(t, leads[0].PipelineID)
	assert.Equal(t, pipeline.ID, *leads[0].PipelineID)
	require.NotNil(t, leads[0].StageID)
	assert.Equal(t, pipeline.Stages[0].ID, *leads[0].StageID)
}

func TestImportLeadsUpdatesExistingByID(t *testing.T) {
	env := newTestEnv(t)

	pipeline, err := env.pipelines.EnsureDefaultPipeline(env.ctx)
	require.NoError(t, err)

	lead, err := env.leads.CreateLead(env.ctx, &service.CreateLeadInput{
		Name:       "Before",
		PipelineID: &pipeline.ID,
		StageID:    &pipeline.Stages[0].ID,
	})
	require.NoError(t, err)

	freshID := uuid.New()
	result, err := env.leads.ImportLeads(env.ctx, []service.ImportLeadRecord{
		{ID: &lead.ID, CreateLeadInput: service.CreateLeadInput{
			Name:       "After",
			PipelineID: &pipeline.ID,
			StageID:    &pipeline.Stages[1].ID,
		}},
		{ID: &freshID, CreateLeadInput: service.CreateLeadInput{
			Name: "Newcomer",
		}},
	})
	require.NoError(t, err)
	assert.Equal(t, 1, result.Updated)
	assert.Equal(t, 1, result.Created)

	updated, err := env.leads.GetLead(env.ctx, lead.ID)
	require.NoError(t, err)
	assert.Equal(t, "After", updated.Name)

	// An unmatched id is not preserved; the new row gets a fresh one
	_, err = env.leads.GetLead(env.ctx, freshID)
	assert.Error(t, err)

	leads, err := env.leads.ExportLeads(env.ctx)
	require.NoError(t, err)
	assert.Len(t, leads, 2)
}

func TestExportImportRoundTrip(t *testing.T) {
	env := newTestEnv(t)

	pipeline, err := env.pipelines.EnsureDefaultPipeline(env.ctx)
	require.NoError(t, err)

	email := "alpha@example.com"
	phone := "+1555000111"
	company := "Acme"
	for _, name := range []string{"Alpha", "Beta"} {
		_, err := env.leads.CreateLead(env.ctx, &service.CreateLeadInput{
			Name:       name,
			Email:      &email,
			Phone:      &phone,
			Company:    &company,
			Source:     "Referral",
			Budget:     floatPtr(1200),
			PipelineID: &pipeline.ID,
			StageID:    &pipeline.Stages[0].ID,
		})
		require.NoError(t, err)
	}

	exported, err := env.leads.ExportLeads(env.ctx)
	require.NoError(t, err)
	require.Len(t, exported, 2)

	records := make([]service.ImportLeadRecord, 0, len(exported))
	for i := range exported {
		lead := exported[i]
		records = append(records, service.ImportLeadRecord{
			ID: &lead.ID,
			CreateLeadInput: service.CreateLeadInput{
				Name:       lead.Name,
				Email:      lead.Email,
				Phone:      lead.Phone,
				Company:    lead.Company,
				Source:     lead.Source,
				Status:     lead.Status,
				Budget:     lead.Budget,
				PipelineID: lead.PipelineID,
				StageID:    lead.StageID,
			},
		})
	}

	result, err := env.leads.ImportLeads(env.ctx, records)
	require.NoError(t, err)
	assert.Equal(t, 2, result.Updated)
	assert.Equal(t, 0, result.Created)

	after, err := env.leads.ExportLeads(env.ctx)
	require.NoError(t, err)
	require.Len(t, after, 2)

	byID := make(map[uuid.UUID]entity.Lead, len(after))
	for i := range after {
		byID[after[i].ID] = after[i]
	}
	for i := range exported {
		before := exported[i]
		got, ok := byID[before.ID]
		require.True(t, ok)
		assert.Equal(t, before.Name, got.Name)
		assert.Equal(t, before.Email, got.Email)
		assert.Equal(t, before.Phone, got.Phone)
		assert.Equal(t, before.Company, got.Company)
		assert.Equal(t, before.Source, got.Source)
		assert.Equal(t, before.Status, got.Status)
		assert.Equal(t, before.Budget, got.Budget)
		assert.Equal(t, before.PipelineID, got.PipelineID)
		assert.Equal(t, before.StageID, got.StageID)
	}
}

func TestDeleteLeadBroadcasts(t *testing.T) {
	env := newTestEnv(t)

	lead, err := env.leads.CreateLead(env.ctx, &service.CreateLeadInput{Name: "Short-lived"})
	require.NoError(t, err)

	env.notifier.Reset()
	require.NoError(t, env.leads.DeleteLead(env.ctx, lead.ID))
	assert.True(t, containsEvent(env.notifier.Events(), realtime.EventLeadsUpdated))

	_, err = env.leads.GetLead(env.ctx, lead.ID)
	assert.Error(t, err)
}
