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
)

// FormService handles lead-capture form operations, including the public
// submission intake
type FormService struct {
	formRepo repository.FormRepository
	contacts *ContactService
	notifier Notifier
}

// NewFormService creates a new form service
func NewFormService(formRepo repository.FormRepository, contacts *ContactService, notifier Notifier) *FormService {
	if notifier == nil {
		notifier = NopNotifier{}
	}
	return &FormService{
		formRepo: formRepo,
		contacts: contacts,
		notifier: notifier,
	}
}

// CreateFormInput represents the create form input
type CreateFormInput struct {
	Name   string
	Fields []entity.FormField
}

// CreateForm creates a new lead-capture form
func (s *FormService) CreateForm(ctx context.Context, input *CreateFormInput) (*entity.Form, error) {
	tenantID, ok := infraRepo.GetTenantID(ctx)
	if !ok {
		return nil, apperror.NewBadRequestError("Tenant context required")
	}

	fields := input.Fields
	for i := range fields {
		if fields[i].ID == "" {
			fields[i].ID = uuid.New().String()
		}
	}

	form := &entity.Form{
		TenantID: tenantID,
		Name:     input.Name,
		Fields:   fields,
	}

	if err := s.formRepo.Create(ctx, form); err != nil {
		return nil, err
	}

	s.notifier.Broadcast(tenantID, realtime.EventFormsUpdated)
	return form, nil
}

// GetForm retrieves a form by ID within the tenant
func (s *FormService) GetForm(ctx context.Context, id uuid.UUID) (*entity.Form, error) {
	form, err := s.formRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if form == nil {
		return nil, apperror.NewNotFoundError("Form")
	}
	return form, nil
}

// ListForms lists the tenant's forms
func (s *FormService) ListForms(ctx context.Context) ([]entity.Form, error) {
	return s.formRepo.List(ctx)
}

// UpdateFormInput represents the update form input
type UpdateFormInput struct {
	ID     uuid.UUID
	Name   *string
	Fields []entity.FormField
}

// UpdateForm applies a partial update to a form
func (s *FormService) UpdateForm(ctx context.Context, input *UpdateFormInput) (*entity.Form, error) {
	form, err := s.formRepo.GetByID(ctx, input.ID)
	if err != nil {
		return nil, err
	}
	if form == nil {
		return nil, apperror.NewNotFoundError("Form")
	}

	if input.Name != nil {
		form.Name = *input.Name
	}
	if input.Fields != nil {
		for i := range input.Fields {
			if input.Fields[i].ID == "" {
				input.Fields[i].ID = uuid.New().String()
			}
		}
		form.Fields = input.Fields
	}

	if err := s.formRepo.Update(ctx, form); err != nil {
		return nil, err
	}

	s.notifier.Broadcast(form.TenantID, realtime.EventFormsUpdated)
	return form, nil
}

// DeleteForm removes a form
func (s *FormService) DeleteForm(ctx context.Context, id uuid.UUID) error {
	form, err := s.formRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if form == nil {
		return apperror.NewNotFoundError("Form")
	}

	if err := s.formRepo.Delete(ctx, id); err != nil {
		return err
	}

	s.notifier.Broadcast(form.TenantID, realtime.EventFormsUpdated)
	return nil
}

// GetPublicForm looks a form up for its public page, without tenant scope
func (s *FormService) GetPublicForm(ctx context.Context, id uuid.UUID) (*entity.Form, error) {
	form, err := s.formRepo.GetByIDAny(ctx, id)
	if err != nil {
		return nil, err
	}
	if form == nil {
		return nil, apperror.NewNotFoundError("Form")
	}
	return form, nil
}

// RecordVisit increments a form's visit counter. The read-modify-write is
// deliberately not atomic; concurrent visits may under-count.
func (s *FormService) RecordVisit(ctx context.Context, id uuid.UUID) (*entity.Form, error) {
	form, err := s.formRepo.GetByIDAny(ctx, id)
	if err != nil {
		return nil, err
	}
	if form == nil {
		return nil, apperror.NewNotFoundError("Form")
	}

	form.Visits++
	if err := s.formRepo.Update(ctx, form); err != nil {
		return nil, err
	}
	return form, nil
}

// Submit processes a public form submission keyed by field id. It maps
// the submitted values onto a new contact via the label heuristics,
// increments the form's submission counter and notifies listeners.
func (s *FormService) Submit(ctx context.Context, formID uuid.UUID, submission map[string]interface{}) (*entity.Contact, error) {
	form, err := s.formRepo.GetByIDAny(ctx, formID)
	if err != nil {
		return nil, err
	}
	if form == nil {
		return nil, apperror.NewNotFoundError("Form")
	}

	// Public submissions carry no tenant credentials; the owning tenant
	// comes from the form row itself.
	tenantCtx := infraRepo.WithTenant(ctx, form.TenantID)

	name, email, phone, company := MapSubmission(form.Fields, submission)

	contact, err := s.contacts.CreateContact(tenantCtx, &CreateContactInput{
		Name:     name,
		Email:    email,
		Phone:    phone,
		Company:  company,
		Source:   form.Name,
		FormID:   &form.ID,
		FormData: submission,
	})
	if err != nil {
		return nil, err
	}

	// Read-modify-write on purpose; two racing submissions may lose one
	// increment, which is acceptable here.
	form.Submissions++
	if err := s.formRepo.Update(ctx, form); err != nil {
		return nil, err
	}

	return contact, nil
}

// MapSubmission applies the field-mapping heuristics to a submission keyed
// by field id: name comes from the first field labelled "name" (falling
// back to the first field), email from the first email-typed or
// email-labelled field, phone from the first tel-typed or phone-labelled
// field and company from the first field labelled "company".
func MapSubmission(fields []entity.FormField, submission map[string]interface{}) (name, email, phone, company interface{}) {
	nameField := firstMatch(fields, func(f entity.FormField) bool {
		return strings.Contains(strings.ToLower(f.Label), "name")
	})
	if nameField == nil && len(fields) > 0 {
		nameField = &fields[0]
	}
	emailField := firstMatch(fields, func(f entity.FormField) bool {
		return f.Type == enum.FieldTypeEmail || strings.Contains(strings.ToLower(f.Label), "email")
	})
	phoneField := firstMatch(fields, func(f entity.FormField) bool {
		return f.Type == enum.FieldTypePhone || strings.Contains(strings.ToLower(f.Label), "phone")
	})
	companyField := firstMatch(fields, func(f entity.FormField) bool {
		return strings.Contains(strings.ToLower(f.Label), "company")
	})

	if nameField != nil {
		name = submission[nameField.ID]
	}
	if emailField != nil {
		email = submission[emailField.ID]
	}
	if phoneField != nil {
		phone = submission[phoneField.ID]
	}
	if companyField != nil {
		company = submission[companyField.ID]
	}
	return name, email, phone, company
}

func firstMatch(fields []entity.FormField, match func(entity.FormField) bool) *entity.FormField {
	for i := range fields {
		if match(fields[i]) {
			return &fields[i]
		}
	}
	return nil
}
