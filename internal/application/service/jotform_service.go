package service

import (
	"context"
	"log"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"github.com/leadhive/leadhive-api/internal/domain/entity"
	"github.com/leadhive/leadhive-api/internal/domain/repository"
	"github.com/leadhive/leadhive-api/pkg/apperror"
	"github.com/leadhive/leadhive-api/pkg/jotform"
)

// SubmissionIDKey is the form_data key carrying the remote submission id,
// used to deduplicate synced submissions.
const SubmissionIDKey = "_submission_id"

// JotformClient is the slice of the Jotform API the service depends on
type JotformClient interface {
	CreateForm(ctx context.Context, title string, questions []jotform.Question) (string, error)
	GetSubmissions(ctx context.Context, formID string) ([]jotform.Submission, error)
}

// JotformService mirrors lead-capture forms to Jotform and pulls remote
// submissions back in as contacts
type JotformService struct {
	formRepo    repository.FormRepository
	contactRepo repository.ContactRepository
	contacts    *ContactService
	client      JotformClient
}

// NewJotformService creates a new Jotform integration service
func NewJotformService(formRepo repository.FormRepository, contactRepo repository.ContactRepository, contacts *ContactService, client JotformClient) *JotformService {
	return &JotformService{
		formRepo:    formRepo,
		contactRepo: contactRepo,
		contacts:    contacts,
		client:      client,
	}
}

// CreateJotForm mirrors a form's fields to a new Jotform form and records
// the remote id on the form row.
func (s *JotformService) CreateJotForm(ctx context.Context, formID uuid.UUID) (*entity.Form, error) {
	if s.client == nil {
		return nil, apperror.NewBadRequestError("Jotform integration is not configured")
	}

	form, err := s.formRepo.GetByID(ctx, formID)
	if err != nil {
		return nil, err
	}
	if form == nil {
		return nil, apperror.NewNotFoundError("Form")
	}
	if form.JotformID != nil {
		return nil, apperror.NewConflictError("Form is already linked to Jotform")
	}

	questions := make([]jotform.Question, 0, len(form.Fields))
	for i, field := range form.Fields {
		q := jotform.Question{
			Type:  field.Type.JotformControl(),
			Text:  field.Label,
			Order: strconv.Itoa(i + 1),
			Name:  questionName(field.ID),
		}
		if field.Required {
			q.Required = "Yes"
		}
		if len(field.Options) > 0 {
			q.Options = strings.Join(field.Options, "|")
		}
		questions = append(questions, q)
	}

	remoteID, err := s.client.CreateForm(ctx, form.Name, questions)
	if err != nil {
		return nil, err
	}

	form.JotformID = &remoteID
	remoteURL := jotform.FormURL(remoteID)
	form.JotformURL = &remoteURL
	if err := s.formRepo.Update(ctx, form); err != nil {
		return nil, err
	}

	return form, nil
}

// SyncResult summarizes one submission sync run
type SyncResult struct {
	FormsSynced     int `json:"forms_synced"`
	ContactsCreated int `json:"contacts_created"`
	Skipped         int `json:"skipped"`
}

// SyncJotformSubmissions pulls submissions for every linked form and
// creates a contact for each one not seen before. Failures on a single
// form are logged and do not stop the run.
func (s *JotformService) SyncJotformSubmissions(ctx context.Context) (*SyncResult, error) {
	if s.client == nil {
		return nil, apperror.NewBadRequestError("Jotform integration is not configured")
	}

	forms, err := s.formRepo.ListJotform(ctx)
	if err != nil {
		return nil, err
	}

	result := &SyncResult{}
	for i := range forms {
		form := &forms[i]
		submissions, err := s.client.GetSubmissions(ctx, *form.JotformID)
		if err != nil {
			log.Printf("jotform sync: form %s: %v", form.ID, err)
			continue
		}
		result.FormsSynced++

		for _, sub := range submissions {
			exists, err := s.contactRepo.ExistsBySubmissionID(ctx, sub.ID)
			if err != nil {
				return nil, err
			}
			if exists {
				result.Skipped++
				continue
			}

			data := submissionData(form.Fields, sub)
			name, email, phone, company := MapSubmission(form.Fields, data)

			if _, err := s.contacts.CreateContact(ctx, &CreateContactInput{
				Name:     name,
				Email:    email,
				Phone:    phone,
				Company:  company,
				Source:   form.Name,
				FormID:   &form.ID,
				FormData: data,
			}); err != nil {
				return nil, err
			}
			result.ContactsCreated++
		}
	}

	return result, nil
}

// questionName derives a Jotform-safe question name from a field id
func questionName(fieldID string) string {
	return "f" + strings.ReplaceAll(fieldID, "-", "")
}

// submissionData flattens a remote submission into the same field-id keyed
// map produced by the public submit endpoint, tagged with the remote
// submission id for dedup.
func submissionData(fields []entity.FormField, sub jotform.Submission) map[string]interface{} {
	byName := make(map[string]string, len(fields))
	for _, field := range fields {
		byName[questionName(field.ID)] = field.ID
	}

	data := make(map[string]interface{}, len(sub.Answers)+1)
	for _, answer := range sub.Answers {
		if fieldID, ok := byName[answer.Name]; ok {
			data[fieldID] = answer.Answer
		}
	}
	data[SubmissionIDKey] = sub.ID
	return data
}
