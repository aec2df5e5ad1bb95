package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/leadhive/leadhive-api/internal/application/service"
	"github.com/leadhive/leadhive-api/internal/presentation/http/dto/response"
)

// PipelineHandler handles pipeline and stage HTTP requests
type PipelineHandler struct {
	pipelineService *service.PipelineService
}

// NewPipelineHandler creates a new pipeline handler
func NewPipelineHandler(pipelineService *service.PipelineService) *PipelineHandler {
	return &PipelineHandler{pipelineService: pipelineService}
}

// List handles listing pipelines. A tenant that has none gets the default
// pipeline provisioned on the spot, so the board is never empty.
func (h *PipelineHandler) List(c *gin.Context) {
	ctx := c.Request.Context()

	if _, err := h.pipelineService.EnsureDefaultPipeline(ctx); err != nil {
		response.Error(c, err)
		return
	}

	pipelines, err := h.pipelineService.ListPipelines(ctx)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Pipelines retrieved successfully", pipelines)
}

// Create handles creating a pipeline
func (h *PipelineHandler) Create(c *gin.Context) {
	var req struct {
		Name string `json:"name" binding:"required,min=1,max=255"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	pipeline, err := h.pipelineService.CreatePipeline(c.Request.Context(), req.Name)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Pipeline created successfully", pipeline)
}

// Get handles getting a single pipeline with its stages
func (h *PipelineHandler) Get(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid pipeline ID")
		return
	}

	pipeline, err := h.pipelineService.GetPipeline(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Pipeline retrieved successfully", pipeline)
}

// Update handles renaming a pipeline
func (h *PipelineHandler) Update(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid pipeline ID")
		return
	}

	var req struct {
		Name string `json:"name" binding:"required,min=1,max=255"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	pipeline, err := h.pipelineService.UpdatePipeline(c.Request.Context(), id, req.Name)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Pipeline updated successfully", pipeline)
}

// Delete handles deleting a pipeline together with its stages. Leads that
// referenced the pipeline stay behind and keep their stored status.
func (h *PipelineHandler) Delete(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid pipeline ID")
		return
	}

	if err := h.pipelineService.DeletePipeline(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}

	response.NoContent(c)
}

// ListStages handles listing a pipeline's stages in board order
func (h *PipelineHandler) ListStages(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid pipeline ID")
		return
	}

	stages, err := h.pipelineService.ListStages(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Stages retrieved successfully", stages)
}

// CreateStage handles appending a stage to a pipeline
func (h *PipelineHandler) CreateStage(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid pipeline ID")
		return
	}

	var req struct {
		Name  string `json:"name" binding:"required,min=1,max=255"`
		Color string `json:"color" binding:"omitempty,max=50"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	stage, err := h.pipelineService.CreateStage(c.Request.Context(), id, req.Name, req.Color)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Stage created successfully", stage)
}

// UpdateStage handles renaming, recoloring or reordering a stage
func (h *PipelineHandler) UpdateStage(c *gin.Context) {
	id, err := uuid.Parse(c.Param("stageId"))
	if err != nil {
		response.BadRequest(c, "Invalid stage ID")
		return
	}

	var req struct {
		Name  *string `json:"name" binding:"omitempty,min=1,max=255"`
		Color *string `json:"color" binding:"omitempty,max=50"`
		Order *int    `json:"order" binding:"omitempty,min=1"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	stage, err := h.pipelineService.UpdateStage(c.Request.Context(), &service.UpdateStageInput{
		ID:    id,
		Name:  req.Name,
		Color: req.Color,
		Order: req.Order,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Stage updated successfully", stage)
}

// DeleteStage handles deleting a stage
func (h *PipelineHandler) DeleteStage(c *gin.Context) {
	id, err := uuid.Parse(c.Param("stageId"))
	if err != nil {
		response.BadRequest(c, "Invalid stage ID")
		return
	}

	if err := h.pipelineService.DeleteStage(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}

	response.NoContent(c)
}
