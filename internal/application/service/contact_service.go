package service

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"github.com/leadhive/leadhive-api/internal/domain/entity"
	"github.com/leadhive/leadhive-api/internal/domain/enum"
	"github.com/leadhive/leadhive-api/internal/domain/repository"
	infraRepo "github.com/leadhive/leadhive-api/internal/infrastructure/repository"
	"github.com/leadhive/leadhive-api/internal/realtime"
	"github.com/leadhive/leadhive-api/pkg/apperror"
	"github.com/leadhive/leadhive-api/pkg/normalize"
	"github.com/leadhive/leadhive-api/pkg/pagination"
	"gorm.io/datatypes"
)

// ContactService handles contact operations and the contact-to-lead
// conversion workflow
type ContactService struct {
	contactRepo repository.ContactRepository
	leadRepo    repository.LeadRepository
	formRepo    repository.FormRepository
	notifier    Notifier
}

// NewContactService creates a new contact service
func NewContactService(contactRepo repository.ContactRepository, leadRepo repository.LeadRepository, formRepo repository.FormRepository, notifier Notifier) *ContactService {
	if notifier == nil {
		notifier = NopNotifier{}
	}
	return &ContactService{
		contactRepo: contactRepo,
		leadRepo:    leadRepo,
		formRepo:    formRepo,
		notifier:    notifier,
	}
}

// CreateContactInput represents the create contact input. Name, email,
// phone and company accept raw submitted values since form builders can
// deliver structured objects for them.
type CreateContactInput struct {
	UserID   *uuid.UUID
	Name     interface{}
	Email    interface{}
	Phone    interface{}
	Company  interface{}
	Position *string
	Notes    *string
	Source   string
	FormID   *uuid.UUID
	FormData map[string]interface{}
}

// CreateContact normalizes the identity fields and persists the contact
func (s *ContactService) CreateContact(ctx context.Context, input *CreateContactInput) (*entity.Contact, error) {
	tenantID, ok := infraRepo.GetTenantID(ctx)
	if !ok {
		return nil, apperror.NewBadRequestError("Tenant context required")
	}

	contact := &entity.Contact{
		TenantID: tenantID,
		UserID:   input.UserID,
		Name:     normalize.Display(input.Name),
		Email:    optional(normalize.Display(input.Email)),
		Phone:    optional(normalize.Display(input.Phone)),
		Company:  optional(normalize.Display(input.Company)),
		Position: input.Position,
		Notes:    input.Notes,
		Source:   input.Source,
		FormID:   input.FormID,
		FormData: datatypes.JSONMap(input.FormData),
	}

	if err := s.contactRepo.Create(ctx, contact); err != nil {
		return nil, err
	}

	s.notifier.Broadcast(tenantID, realtime.EventContactsUpdated)
	return contact, nil
}

// GetContact retrieves a contact by ID
func (s *ContactService) GetContact(ctx context.Context, id uuid.UUID) (*entity.Contact, error) {
	contact, err := s.contactRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if contact == nil {
		return nil, apperror.NewNotFoundError("Contact")
	}
	return contact, nil
}

// ListContacts lists contacts newest first
func (s *ContactService) ListContacts(ctx context.Context, params *pagination.PaginationParams, search string) (*pagination.PaginatedResult[entity.Contact], error) {
	contacts, total, err := s.contactRepo.List(ctx, params, search)
	if err != nil {
		return nil, err
	}

	pag := pagination.NewPagination(params.Page, params.PerPage, total)
	return pagination.NewPaginatedResult(contacts, pag), nil
}

// DeleteContact removes a contact permanently
func (s *ContactService) DeleteContact(ctx context.Context, id uuid.UUID) error {
	contact, err := s.contactRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if contact == nil {
		return apperror.NewNotFoundError("Contact")
	}

	if err := s.contactRepo.Delete(ctx, id); err != nil {
		return err
	}

	s.notifier.Broadcast(contact.TenantID, realtime.EventContactsUpdated)
	return nil
}

// ConvertToLeadInput represents the conversion input. Pipeline and stage
// must both be chosen by the operator, there is no auto-selection.
type ConvertToLeadInput struct {
	ContactID  uuid.UUID
	PipelineID uuid.UUID
	StageID    uuid.UUID
}

// ConvertToLead turns a contact into a lead in the chosen pipeline stage
// and deletes the source contact. The two steps are not wrapped in one
// transaction; a failure between them leaves both records behind.
func (s *ContactService) ConvertToLead(ctx context.Context, input *ConvertToLeadInput) (*entity.Lead, error) {
	tenantID, ok := infraRepo.GetTenantID(ctx)
	if !ok {
		return nil, apperror.NewBadRequestError("Tenant context required")
	}
	if input.PipelineID == uuid.Nil || input.StageID == uuid.Nil {
		return nil, apperror.NewBadRequestError("Pipeline and stage are required")
	}

	contact, err := s.contactRepo.GetByID(ctx, input.ContactID)
	if err != nil {
		return nil, err
	}
	if contact == nil {
		return nil, apperror.NewNotFoundError("Contact")
	}

	var form *entity.Form
	if contact.FormID != nil {
		form, err = s.formRepo.GetByID(ctx, *contact.FormID)
		if err != nil {
			return nil, err
		}
	}

	lead := &entity.Lead{
		TenantID:   tenantID,
		Name:       normalize.Display(contact.Name),
		Email:      renormalize(contact.Email),
		Phone:      renormalize(contact.Phone),
		Company:    renormalize(contact.Company),
		Source:     conversionSource(contact.Source),
		Status:     entity.LeadStatusNew,
		Notes:      extractNotes(form, contact.FormData),
		PipelineID: &input.PipelineID,
		StageID:    &input.StageID,
		FormData:   contact.FormData,
	}

	if err := s.leadRepo.Create(ctx, lead); err != nil {
		return nil, err
	}
	s.notifier.Broadcast(tenantID, realtime.EventLeadsUpdated)

	if err := s.contactRepo.Delete(ctx, contact.ID); err != nil {
		return nil, err
	}
	s.notifier.Broadcast(tenantID, realtime.EventContactsUpdated)

	return lead, nil
}

// conversionSource derives a lead source label from the originating form
// name, e.g. "Website Contact Form" becomes "Website (Form)".
func conversionSource(formName string) string {
	name := strings.TrimSpace(formName)
	if name == "" {
		return "(Form)"
	}
	return strings.Fields(name)[0] + " (Form)"
}

// extractNotes pulls a notes value out of a submission. It first checks
// the form's field definitions for a long-text field or one labelled
// note/message, then falls back to scanning the raw submission keys.
func extractNotes(form *entity.Form, formData map[string]interface{}) *string {
	if len(formData) == 0 {
		return nil
	}

	if form != nil {
		for _, field := range form.Fields {
			label := strings.ToLower(field.Label)
			if field.Type == enum.FieldTypeTextarea || strings.Contains(label, "note") || strings.Contains(label, "message") {
				if v, ok := formData[field.ID]; ok {
					return optional(normalize.Display(v))
				}
			}
		}
	}

	for key, v := range formData {
		lower := strings.ToLower(key)
		if strings.Contains(lower, "note") || strings.Contains(lower, "message") {
			return optional(normalize.Display(v))
		}
	}
	return nil
}

// renormalize re-applies the field normalizer to stored values in case
// legacy rows still hold structured data.
func renormalize(v *string) *string {
	if v == nil {
		return nil
	}
	return optional(normalize.Display(*v))
}

// optional maps the empty string to nil
func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
