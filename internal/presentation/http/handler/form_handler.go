package handler

import (
	"html/template"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/leadhive/leadhive-api/internal/application/service"
	"github.com/leadhive/leadhive-api/internal/domain/entity"
	"github.com/leadhive/leadhive-api/internal/presentation/http/dto/response"
)

// FormHandler handles lead-capture form HTTP requests, including the
// public submission endpoints
type FormHandler struct {
	formService *service.FormService
}

// NewFormHandler creates a new form handler
func NewFormHandler(formService *service.FormService) *FormHandler {
	return &FormHandler{formService: formService}
}

// List handles listing the tenant's forms
func (h *FormHandler) List(c *gin.Context) {
	forms, err := h.formService.ListForms(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Forms retrieved successfully", forms)
}

// Create handles creating a form
func (h *FormHandler) Create(c *gin.Context) {
	var req struct {
		Name   string             `json:"name" binding:"required,min=1,max=255"`
		Fields []entity.FormField `json:"fields" binding:"required,min=1"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	for _, field := range req.Fields {
		if !field.Type.Valid() {
			response.BadRequest(c, "Invalid field type: "+field.Type.String())
			return
		}
	}

	form, err := h.formService.CreateForm(c.Request.Context(), &service.CreateFormInput{
		Name:   req.Name,
		Fields: req.Fields,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Form created successfully", form)
}

// Get handles getting a single form
func (h *FormHandler) Get(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid form ID")
		return
	}

	form, err := h.formService.GetForm(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Form retrieved successfully", form)
}

// Update handles updating a form
func (h *FormHandler) Update(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid form ID")
		return
	}

	var req struct {
		Name   *string            `json:"name" binding:"omitempty,min=1,max=255"`
		Fields []entity.FormField `json:"fields"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	form, err := h.formService.UpdateForm(c.Request.Context(), &service.UpdateFormInput{
		ID:     id,
		Name:   req.Name,
		Fields: req.Fields,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Form updated successfully", form)
}

// Delete handles deleting a form
func (h *FormHandler) Delete(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid form ID")
		return
	}

	if err := h.formService.DeleteForm(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}

	response.NoContent(c)
}

// Submit handles a public form submission. No authentication; the form id
// alone addresses the owning tenant.
func (h *FormHandler) Submit(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid form ID")
		return
	}

	var submission map[string]interface{}
	if err := c.ShouldBindJSON(&submission); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	if _, err := h.formService.Submit(c.Request.Context(), id, submission); err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Submission received", nil)
}

// publicFormTemplate renders the hosted form page
var publicFormTemplate = template.Must(template.New("form").Parse(`<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<meta name="viewport" content="width=device-width, initial-scale=1">
<title>{{.Form.Name}}</title>
<style>
  body { font-family: -apple-system, 'Segoe UI', sans-serif; background: #f3f4f6; margin: 0; }
  .card { max-width: 480px; margin: 48px auto; background: #fff; border-radius: 8px; padding: 32px; box-shadow: 0 1px 3px rgba(0,0,0,.1); }
  h1 { font-size: 1.4rem; margin: 0 0 24px; }
  label { display: block; font-size: .875rem; font-weight: 600; margin: 16px 0 4px; }
  input, textarea, select { width: 100%; box-sizing: border-box; padding: 8px 10px; border: 1px solid #d1d5db; border-radius: 6px; font-size: 1rem; }
  textarea { min-height: 96px; }
  button { margin-top: 24px; width: 100%; padding: 10px; border: 0; border-radius: 6px; background: #6366f1; color: #fff; font-size: 1rem; cursor: pointer; }
</style>
</head>
<body>
<div class="card">
<h1>{{.Form.Name}}</h1>
<form method="post" action="{{.Action}}" id="lead-form">
{{range .Form.Fields}}
  <label for="{{.ID}}">{{.Label}}{{if .Required}} *{{end}}</label>
  {{if eq .Type.String "textarea"}}
  <textarea id="{{.ID}}" name="{{.ID}}" placeholder="{{.Placeholder}}"{{if .Required}} required{{end}}></textarea>
  {{else if eq .Type.String "select"}}
  <select id="{{.ID}}" name="{{.ID}}"{{if .Required}} required{{end}}>
    {{range .Options}}<option value="{{.}}">{{.}}</option>{{end}}
  </select>
  {{else}}
  <input type="{{.Type}}" id="{{.ID}}" name="{{.ID}}" placeholder="{{.Placeholder}}"{{if .Required}} required{{end}}>
  {{end}}
{{end}}
<button type="submit">Submit</button>
</form>
<script>
document.getElementById('lead-form').addEventListener('submit', async function (e) {
  e.preventDefault();
  const data = Object.fromEntries(new FormData(this));
  const res = await fetch(this.action, {
    method: 'POST',
    headers: { 'Content-Type': 'application/json' },
    body: JSON.stringify(data)
  });
  if (res.ok) { this.outerHTML = '<p>Thanks, we got your submission.</p>'; }
});
</script>
</div>
</body>
</html>
`))

// Render serves the hosted HTML page for a form and counts the visit
func (h *FormHandler) Render(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.String(http.StatusNotFound, "Form not found")
		return
	}

	form, err := h.formService.RecordVisit(c.Request.Context(), id)
	if err != nil {
		c.String(http.StatusNotFound, "Form not found")
		return
	}

	c.Status(http.StatusOK)
	c.Header("Content-Type", "text/html; charset=utf-8")
	if err := publicFormTemplate.Execute(c.Writer, gin.H{
		"Form":   form,
		"Action": "/api/forms/" + form.ID.String() + "/submit",
	}); err != nil {
		c.String(http.StatusInternalServerError, "Failed to render form")
	}
}
