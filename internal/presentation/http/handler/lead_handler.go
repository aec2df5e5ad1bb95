package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/leadhive/leadhive-api/internal/application/service"
	"github.com/leadhive/leadhive-api/internal/presentation/http/dto/request"
	"github.com/leadhive/leadhive-api/internal/presentation/http/dto/response"
	"github.com/leadhive/leadhive-api/pkg/pagination"
)

// LeadHandler handles lead-related HTTP requests
type LeadHandler struct {
	leadService *service.LeadService
}

// NewLeadHandler creates a new lead handler
func NewLeadHandler(leadService *service.LeadService) *LeadHandler {
	return &LeadHandler{leadService: leadService}
}

// List handles listing leads newest first
func (h *LeadHandler) List(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	perPage, _ := strconv.Atoi(c.DefaultQuery("per_page", "15"))
	search := c.Query("search")

	var pipelineID *uuid.UUID
	if raw := c.Query("pipeline_id"); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			response.BadRequest(c, "Invalid pipeline ID")
			return
		}
		pipelineID = &id
	}

	params := &pagination.PaginationParams{
		Page:    page,
		PerPage: perPage,
	}

	result, err := h.leadService.ListLeads(c.Request.Context(), params, search, pipelineID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.SuccessWithPagination(c, 200, "Leads retrieved successfully", result)
}

// Create handles creating a lead
func (h *LeadHandler) Create(c *gin.Context) {
	var req request.CreateLeadRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	lead, err := h.leadService.CreateLead(c.Request.Context(), req.ToInput())
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Lead created successfully", lead)
}

// Get handles getting a single lead
func (h *LeadHandler) Get(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid lead ID")
		return
	}

	lead, err := h.leadService.GetLead(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Lead retrieved successfully", lead)
}

// Update handles a partial lead update. Moving a lead to another stage
// goes through here too; the service keeps status aligned with the stage.
func (h *LeadHandler) Update(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid lead ID")
		return
	}

	var req request.UpdateLeadRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	lead, err := h.leadService.UpdateLead(c.Request.Context(), &service.UpdateLeadInput{
		ID:                id,
		Name:              req.Name,
		Email:             req.Email,
		Phone:             req.Phone,
		Company:           req.Company,
		Source:            req.Source,
		Status:            req.Status,
		Priority:          req.Priority,
		Budget:            req.Budget.Ptr(),
		AssignedTo:        req.AssignedTo.Ptr(),
		InterestedService: req.InterestedService,
		NextFollowUp:      req.NextFollowUp.Ptr(),
		Notes:             req.Notes,
		PipelineID:        req.PipelineID.Ptr(),
		StageID:           req.StageID.Ptr(),
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Lead updated successfully", lead)
}

// Delete handles deleting a lead
func (h *LeadHandler) Delete(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid lead ID")
		return
	}

	if err := h.leadService.DeleteLead(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}

	response.NoContent(c)
}

// BulkDelete handles deleting several leads in one call
func (h *LeadHandler) BulkDelete(c *gin.Context) {
	var req request.BulkDeleteLeadsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	ids, err := parseLeadIDs(req.IDs)
	if err != nil {
		response.BadRequest(c, "Invalid lead ID")
		return
	}

	deleted, err := h.leadService.BulkDeleteLeads(c.Request.Context(), ids)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Leads deleted successfully", gin.H{"deleted": deleted})
}

// BulkUpdate handles setting the same status or assignee on several leads
func (h *LeadHandler) BulkUpdate(c *gin.Context) {
	var req request.BulkUpdateLeadsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	ids, err := parseLeadIDs(req.IDs)
	if err != nil {
		response.BadRequest(c, "Invalid lead ID")
		return
	}

	updated, err := h.leadService.BulkUpdateLeads(c.Request.Context(), &service.BulkUpdateLeadsInput{
		IDs:        ids,
		Status:     req.Status,
		AssignedTo: req.AssignedTo.Ptr(),
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Leads updated successfully", gin.H{"updated": updated})
}

func parseLeadIDs(raw []string) ([]uuid.UUID, error) {
	ids := make([]uuid.UUID, 0, len(raw))
	for _, s := range raw {
		id, err := uuid.Parse(s)
		if err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, nil
}

// Export handles dumping every lead of the tenant
func (h *LeadHandler) Export(c *gin.Context) {
	leads, err := h.leadService.ExportLeads(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Leads exported successfully", gin.H{"leads": leads})
}

// Import handles a bulk lead import. Records with an id that matches an
// existing lead are updated in place, everything else is inserted fresh.
func (h *LeadHandler) Import(c *gin.Context) {
	var req struct {
		Leads []request.ImportLeadRequest `json:"leads" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	records := make([]service.ImportLeadRecord, 0, len(req.Leads))
	for i := range req.Leads {
		records = append(records, req.Leads[i].ToRecord())
	}

	result, err := h.leadService.ImportLeads(c.Request.Context(), records)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Leads imported successfully", result)
}
