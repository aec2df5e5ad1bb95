package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/leadhive/leadhive-api/internal/domain/entity"
	"github.com/leadhive/leadhive-api/internal/domain/repository"
	infraRepo "github.com/leadhive/leadhive-api/internal/infrastructure/repository"
	"github.com/leadhive/leadhive-api/internal/realtime"
	"github.com/leadhive/leadhive-api/pkg/apperror"
	"github.com/leadhive/leadhive-api/pkg/pagination"
	"gorm.io/datatypes"
)

// LeadService handles lead-related operations
type LeadService struct {
	leadRepo  repository.LeadRepository
	stageRepo repository.StageRepository
	pipelines *PipelineService
	notifier  Notifier
}

// NewLeadService creates a new lead service
func NewLeadService(leadRepo repository.LeadRepository, stageRepo repository.StageRepository, pipelines *PipelineService, notifier Notifier) *LeadService {
	if notifier == nil {
		notifier = NopNotifier{}
	}
	return &LeadService{
		leadRepo:  leadRepo,
		stageRepo: stageRepo,
		pipelines: pipelines,
		notifier:  notifier,
	}
}

// CreateLeadInput represents the create lead input
type CreateLeadInput struct {
	Name              string
	Email             *string
	Phone             *string
	Company           *string
	Source            string
	Status            string
	Priority          *string
	Budget            *float64
	InterestedService *string
	Notes             *string
	AssignedTo        *uuid.UUID
	PipelineID        *uuid.UUID
	StageID           *uuid.UUID
	NextFollowUp      *time.Time
	FormData          map[string]interface{}
}

// CreateLead creates a new lead
func (s *LeadService) CreateLead(ctx context.Context, input *CreateLeadInput) (*entity.Lead, error) {
	tenantID, ok := infraRepo.GetTenantID(ctx)
	if !ok {
		return nil, apperror.NewBadRequestError("Tenant context required")
	}

	status := input.Status
	if status == "" {
		status = entity.LeadStatusNew
	}

	lead := &entity.Lead{
		TenantID:          tenantID,
		Name:              input.Name,
		Email:             input.Email,
		Phone:             input.Phone,
		Company:           input.Company,
		Source:            input.Source,
		Status:            status,
		Priority:          input.Priority,
		Budget:            input.Budget,
		InterestedService: input.InterestedService,
		Notes:             input.Notes,
		AssignedTo:        input.AssignedTo,
		PipelineID:        input.PipelineID,
		StageID:           input.StageID,
		NextFollowUp:      input.NextFollowUp,
		FormData:          datatypes.JSONMap(input.FormData),
	}

	if err := s.leadRepo.Create(ctx, lead); err != nil {
		return nil, err
	}

	s.notifier.Broadcast(tenantID, realtime.EventLeadsUpdated)
	return lead, nil
}

// GetLead retrieves a lead by ID
func (s *LeadService) GetLead(ctx context.Context, id uuid.UUID) (*entity.Lead, error) {
	lead, err := s.leadRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if lead == nil {
		return nil, apperror.NewNotFoundError("Lead")
	}
	return lead, nil
}

// ListLeads lists leads newest first, optionally narrowed by a text
// search and a pipeline
func (s *LeadService) ListLeads(ctx context.Context, params *pagination.PaginationParams, search string, pipelineID *uuid.UUID) (*pagination.PaginatedResult[entity.Lead], error) {
	leads, total, err := s.leadRepo.List(ctx, params, search, pipelineID)
	if err != nil {
		return nil, err
	}

	pag := pagination.NewPagination(params.Page, params.PerPage, total)
	return pagination.NewPaginatedResult(leads, pag), nil
}

// ExportLeads returns every lead of the tenant for the interchange dump
func (s *LeadService) ExportLeads(ctx context.Context) ([]entity.Lead, error) {
	return s.leadRepo.ListAll(ctx)
}

// UpdateLeadInput represents the update lead input
type UpdateLeadInput struct {
	ID                uuid.UUID
	Name              *string
	Email             *string
	Phone             *string
	Company           *string
	Source            *string
	Status            *string
	Priority          *string
	Budget            *float64
	InterestedService *string
	Notes             *string
	AssignedTo        *uuid.UUID
	PipelineID        *uuid.UUID
	StageID           *uuid.UUID
	NextFollowUp      *time.Time
}

// UpdateLead applies a partial update. When the caller moves the lead to a
// new stage the status is resolved from that stage's name so the pair can
// never disagree.
func (s *LeadService) UpdateLead(ctx context.Context, input *UpdateLeadInput) (*entity.Lead, error) {
	lead, err := s.leadRepo.GetByID(ctx, input.ID)
	if err != nil {
		return nil, err
	}
	if lead == nil {
		return nil, apperror.NewNotFoundError("Lead")
	}

	if input.Name != nil {
		lead.Name = *input.Name
	}
	if input.Email != nil {
		lead.Email = input.Email
	}
	if input.Phone != nil {
		lead.Phone = input.Phone
	}
	if input.Company != nil {
		lead.Company = input.Company
	}
	if input.Source != nil {
		lead.Source = *input.Source
	}
	if input.Status != nil {
		lead.Status = *input.Status
	}
	if input.Priority != nil {
		lead.Priority = input.Priority
	}
	if input.Budget != nil {
		lead.Budget = input.Budget
	}
	if input.InterestedService != nil {
		lead.InterestedService = input.InterestedService
	}
	if input.Notes != nil {
		lead.Notes = input.Notes
	}
	if input.AssignedTo != nil {
		lead.AssignedTo = input.AssignedTo
	}
	if input.PipelineID != nil {
		lead.PipelineID = input.PipelineID
	}
	if input.NextFollowUp != nil {
		lead.NextFollowUp = input.NextFollowUp
	}
	if input.StageID != nil {
		stage, err := s.stageRepo.GetByID(ctx, *input.StageID)
		if err != nil {
			return nil, err
		}
		if stage == nil {
			return nil, apperror.NewNotFoundError("Stage")
		}
		lead.StageID = input.StageID
		lead.PipelineID = &stage.PipelineID
		if input.Status == nil {
			lead.Status = stage.Name
		}
	}

	if err := s.leadRepo.Update(ctx, lead); err != nil {
		return nil, err
	}

	s.notifier.Broadcast(lead.TenantID, realtime.EventLeadsUpdated)
	return lead, nil
}

// DeleteLead deletes a lead
func (s *LeadService) DeleteLead(ctx context.Context, id uuid.UUID) error {
	lead, err := s.leadRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if lead == nil {
		return apperror.NewNotFoundError("Lead")
	}

	if err := s.leadRepo.Delete(ctx, id); err != nil {
		return err
	}

	s.notifier.Broadcast(lead.TenantID, realtime.EventLeadsUpdated)
	return nil
}

// BulkDeleteLeads removes the tenant's leads with the given ids and
// returns how many were deleted. Ids belonging to other tenants are
// silently skipped.
func (s *LeadService) BulkDeleteLeads(ctx context.Context, ids []uuid.UUID) (int64, error) {
	tenantID, ok := infraRepo.GetTenantID(ctx)
	if !ok {
		return 0, apperror.NewBadRequestError("Tenant context required")
	}
	if len(ids) == 0 {
		return 0, apperror.NewBadRequestError("No lead ids provided")
	}

	deleted, err := s.leadRepo.DeleteBatch(ctx, ids)
	if err != nil {
		return 0, err
	}

	if deleted > 0 {
		s.notifier.Broadcast(tenantID, realtime.EventLeadsUpdated)
	}
	return deleted, nil
}

// BulkUpdateLeadsInput names the leads to touch and the fields to set
// on all of them.
type BulkUpdateLeadsInput struct {
	IDs        []uuid.UUID
	Status     *string
	AssignedTo *uuid.UUID
}

// BulkUpdateLeads applies the same status or assignee change to every
// listed lead and returns how many rows changed.
func (s *LeadService) BulkUpdateLeads(ctx context.Context, input *BulkUpdateLeadsInput) (int64, error) {
	tenantID, ok := infraRepo.GetTenantID(ctx)
	if !ok {
		return 0, apperror.NewBadRequestError("Tenant context required")
	}
	if len(input.IDs) == 0 {
		return 0, apperror.NewBadRequestError("No lead ids provided")
	}

	fields := map[string]interface{}{}
	if input.Status != nil {
		fields["status"] = *input.Status
	}
	if input.AssignedTo != nil {
		fields["assigned_to"] = *input.AssignedTo
	}
	if len(fields) == 0 {
		return 0, apperror.NewBadRequestError("No fields to update")
	}

	updated, err := s.leadRepo.UpdateBatch(ctx, input.IDs, fields)
	if err != nil {
		return 0, err
	}

	if updated > 0 {
		s.notifier.Broadcast(tenantID, realtime.EventLeadsUpdated)
	}
	return updated, nil
}

// ImportLeadRecord is one record of a bulk import. The id is honored only
// when it matches an existing lead, which turns the record into an update.
type ImportLeadRecord struct {
	ID *uuid.UUID
	CreateLeadInput
}

// ImportResult summarizes a bulk import
type ImportResult struct {
	Created int `json:"created"`
	Updated int `json:"updated"`
}

// ImportLeads reconciles and persists a batch of lead records. Records
// pointing at an unknown pipeline are re-homed to the tenant's default
// pipeline, bootstrapping one when the tenant has none, and records
// without a stage land in the first stage of their pipeline.
func (s *LeadService) ImportLeads(ctx context.Context, records []ImportLeadRecord) (*ImportResult, error) {
	tenantID, ok := infraRepo.GetTenantID(ctx)
	if !ok {
		return nil, apperror.NewBadRequestError("Tenant context required")
	}
	if len(records) == 0 {
		return &ImportResult{}, nil
	}

	defaultPipeline, err := s.pipelines.EnsureDefaultPipeline(ctx)
	if err != nil {
		return nil, err
	}

	pipelines, err := s.pipelines.ListPipelines(ctx)
	if err != nil {
		return nil, err
	}
	firstStage := make(map[uuid.UUID]uuid.UUID, len(pipelines))
	known := make(map[uuid.UUID]bool, len(pipelines))
	stageName := make(map[uuid.UUID]string)
	stagePipeline := make(map[uuid.UUID]uuid.UUID)
	for _, p := range pipelines {
		known[p.ID] = true
		if len(p.Stages) > 0 {
			firstStage[p.ID] = p.Stages[0].ID
		}
		for _, st := range p.Stages {
			stageName[st.ID] = st.Name
			stagePipeline[st.ID] = p.ID
		}
	}

	ids := make([]uuid.UUID, 0, len(records))
	for _, rec := range records {
		if rec.ID != nil {
			ids = append(ids, *rec.ID)
		}
	}
	existing, err := s.leadRepo.ExistingIDs(ctx, ids)
	if err != nil {
		return nil, err
	}

	result := &ImportResult{}
	inserts := make([]entity.Lead, 0, len(records))
	for i := range records {
		rec := &records[i]

		pipelineID := rec.PipelineID
		if pipelineID == nil || !known[*pipelineID] {
			id := defaultPipeline.ID
			pipelineID = &id
		}
		stageID := rec.StageID
		if stageID == nil || stagePipeline[*stageID] != *pipelineID {
			stageID = nil
			if first, ok := firstStage[*pipelineID]; ok {
				stageID = &first
			}
		}

		// A record without a status takes its stage's name so the two
		// stay aligned, same as a kanban move.
		status := rec.Status
		if status == "" && stageID != nil {
			status = stageName[*stageID]
		}
		if status == "" {
			status = entity.LeadStatusNew
		}

		if rec.ID != nil && existing[*rec.ID] {
			update := &UpdateLeadInput{
				ID:                *rec.ID,
				Name:              &rec.Name,
				Email:             rec.Email,
				Phone:             rec.Phone,
				Company:           rec.Company,
				Source:            &rec.Source,
				Status:            &status,
				Priority:          rec.Priority,
				Budget:            rec.Budget,
				InterestedService: rec.InterestedService,
				Notes:             rec.Notes,
				AssignedTo:        rec.AssignedTo,
				PipelineID:        pipelineID,
				StageID:           stageID,
				NextFollowUp:      rec.NextFollowUp,
			}
			if _, err := s.UpdateLead(ctx, update); err != nil {
				return nil, err
			}
			result.Updated++
			continue
		}

		inserts = append(inserts, entity.Lead{
			TenantID:          tenantID,
			Name:              rec.Name,
			Email:             rec.Email,
			Phone:             rec.Phone,
			Company:           rec.Company,
			Source:            rec.Source,
			Status:            status,
			Priority:          rec.Priority,
			Budget:            rec.Budget,
			InterestedService: rec.InterestedService,
			Notes:             rec.Notes,
			AssignedTo:        rec.AssignedTo,
			PipelineID:        pipelineID,
			StageID:           stageID,
			NextFollowUp:      rec.NextFollowUp,
			FormData:          datatypes.JSONMap(rec.FormData),
		})
	}

	if len(inserts) > 0 {
		if err := s.leadRepo.CreateBatch(ctx, inserts); err != nil {
			return nil, err
		}
	}
	result.Created = len(inserts)

	s.notifier.Broadcast(tenantID, realtime.EventLeadsUpdated)
	return result, nil
}
