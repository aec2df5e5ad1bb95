package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/leadhive/leadhive-api/internal/application/service"
	"github.com/leadhive/leadhive-api/internal/presentation/http/dto/response"
)

// JotformHandler handles Jotform integration HTTP requests
type JotformHandler struct {
	jotformService *service.JotformService
}

// NewJotformHandler creates a new Jotform handler
func NewJotformHandler(jotformService *service.JotformService) *JotformHandler {
	return &JotformHandler{jotformService: jotformService}
}

// Create handles mirroring a form to Jotform
func (h *JotformHandler) Create(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid form ID")
		return
	}

	form, err := h.jotformService.CreateJotForm(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Jotform created successfully", form)
}

// Sync handles pulling fresh submissions for every linked form
func (h *JotformHandler) Sync(c *gin.Context) {
	result, err := h.jotformService.SyncJotformSubmissions(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Jotform submissions synced", result)
}
