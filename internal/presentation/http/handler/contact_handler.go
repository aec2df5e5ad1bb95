package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/leadhive/leadhive-api/internal/application/service"
	"github.com/leadhive/leadhive-api/internal/presentation/http/dto/response"
	"github.com/leadhive/leadhive-api/pkg/pagination"
)

// ContactHandler handles contact-related HTTP requests
type ContactHandler struct {
	contactService *service.ContactService
}

// NewContactHandler creates a new contact handler
func NewContactHandler(contactService *service.ContactService) *ContactHandler {
	return &ContactHandler{contactService: contactService}
}

// List handles listing contacts
func (h *ContactHandler) List(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	perPage, _ := strconv.Atoi(c.DefaultQuery("per_page", "15"))
	search := c.Query("search")

	params := &pagination.PaginationParams{
		Page:    page,
		PerPage: perPage,
	}

	result, err := h.contactService.ListContacts(c.Request.Context(), params, search)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.SuccessWithPagination(c, 200, "Contacts retrieved successfully", result)
}

// Create handles creating a contact. The identity fields take any JSON
// value; form builders deliver structured objects for names, phones and
// addresses and the service flattens them to display strings.
func (h *ContactHandler) Create(c *gin.Context) {
	userID := GetUserID(c)
	if userID == nil {
		response.Unauthorized(c, "User not authenticated")
		return
	}

	var req struct {
		Name     interface{} `json:"name" binding:"required"`
		Email    interface{} `json:"email"`
		Phone    interface{} `json:"phone"`
		Company  interface{} `json:"company"`
		Position *string     `json:"position"`
		Notes    *string     `json:"notes"`
		Source   string      `json:"source"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	source := req.Source
	if source == "" {
		source = "Manual"
	}

	contact, err := h.contactService.CreateContact(c.Request.Context(), &service.CreateContactInput{
		UserID:   userID,
		Name:     req.Name,
		Email:    req.Email,
		Phone:    req.Phone,
		Company:  req.Company,
		Position: req.Position,
		Notes:    req.Notes,
		Source:   source,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Contact created successfully", contact)
}

// Get handles getting a single contact
func (h *ContactHandler) Get(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid contact ID")
		return
	}

	contact, err := h.contactService.GetContact(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Contact retrieved successfully", contact)
}

// Delete handles permanently deleting a contact
func (h *ContactHandler) Delete(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid contact ID")
		return
	}

	if err := h.contactService.DeleteContact(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}

	response.NoContent(c)
}

// Convert handles turning a contact into a lead. The caller must choose
// both the target pipeline and stage.
func (h *ContactHandler) Convert(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid contact ID")
		return
	}

	var req struct {
		PipelineID uuid.UUID `json:"pipeline_id" binding:"required"`
		StageID    uuid.UUID `json:"stage_id" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Pipeline and stage are required")
		return
	}

	lead, err := h.contactService.ConvertToLead(c.Request.Context(), &service.ConvertToLeadInput{
		ContactID:  id,
		PipelineID: req.PipelineID,
		StageID:    req.StageID,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Contact converted to lead successfully", lead)
}
