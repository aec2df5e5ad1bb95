package service_test

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leadhive/leadhive-api/internal/application/service"
	"github.com/leadhive/leadhive-api/internal/domain/entity"
	"github.com/leadhive/leadhive-api/internal/domain/enum"
	"github.com/leadhive/leadhive-api/internal/realtime"
)

func TestCreateContactNormalizesStructuredValues(t *testing.T) {
	env := newTestEnv(t)

	contact, err := env.contacts.CreateContact(env.ctx, &service.CreateContactInput{
		Name: map[string]interface{}{
			"prefix": "Dr.",
			"first":  "Ada",
			"last":   "Lovelace",
		},
		Phone: map[string]interface{}{
			"area":  "020",
			"phone": "7946 0958",
		},
		Email:  "ada@example.com",
		Source: "Website Contact",
	})
	require.NoError(t, err)
	assert.Equal(t, "Dr. Ada Lovelace", contact.Name)
	require.NotNil(t, contact.Phone)
	assert.Equal(t, "(020) 7946 0958", *contact.Phone)
	require.NotNil(t, contact.Email)
	assert.Equal(t, "ada@example.com", *contact.Email)
}

func TestCreateContactMapsEmptyValuesToNil(t *testing.T) {
	env := newTestEnv(t)

	contact, err := env.contacts.CreateContact(env.ctx, &service.CreateContactInput{
		Name:   "Bare Minimum",
		Email:  nil,
		Phone:  "",
		Source: "Manual",
	})
	require.NoError(t, err)
	assert.Nil(t, contact.Email)
	assert.Nil(t, contact.Phone)
}

func TestConvertToLeadRequiresPipelineAndStage(t *testing.T) {
	env := newTestEnv(t)

	contact, err := env.contacts.CreateContact(env.ctx, &service.CreateContactInput{
		Name:   "Picky",
		Source: "Manual",
	})
	require.NoError(t, err)

	_, err = env.contacts.ConvertToLead(env.ctx, &service.ConvertToLeadInput{
		ContactID: contact.ID,
		StageID:   uuid.New(),
	})
	assert.Error(t, err, "missing pipeline must be rejected")

	_, err = env.contacts.ConvertToLead(env.ctx, &service.ConvertToLeadInput{
		ContactID:  contact.ID,
		PipelineID: uuid.New(),
	})
	assert.Error(t, err, "missing stage must be rejected")
}

func TestConvertToLeadDeletesSourceContact(t *testing.T) {
	env := newTestEnv(t)

	pipeline, err := env.pipelines.EnsureDefaultPipeline(env.ctx)
	require.NoError(t, err)

	form, err := env.forms.CreateForm(env.ctx, &service.CreateFormInput{
		Name: "Website Enquiries",
		Fields: []entity.FormField{
			{Label: "Full Name", Type: enum.FieldTypeText},
			{Label: "Your Message", Type: enum.FieldTypeTextarea},
		},
	})
	require.NoError(t, err)

	contact, err := env.contacts.CreateContact(env.ctx, &service.CreateContactInput{
		Name:   "Grace Hopper",
		Source: form.Name,
		FormID: &form.ID,
		FormData: map[string]interface{}{
			form.Fields[0].ID: "Grace Hopper",
			form.Fields[1].ID: "Interested in the enterprise plan",
		},
	})
	require.NoError(t, err)

	env.notifier.Reset()
	lead, err := env.contacts.ConvertToLead(env.ctx, &service.ConvertToLeadInput{
		ContactID:  contact.ID,
		PipelineID: pipeline.ID,
		StageID:    pipeline.Stages[0].ID,
	})
	require.NoError(t, err)

	assert.Equal(t, "Grace Hopper", lead.Name)
	assert.Equal(t, entity.LeadStatusNew, lead.Status)
	assert.Equal(t, "Website (Form)", lead.Source)
	require.NotNil(t, lead.Notes)
	assert.Equal(t, "Interested in the enterprise plan", *lead.Notes)
	require.NotNil(t, lead.StageID)
	assert.Equal(t, pipeline.Stages[0].ID, *lead.StageID)

	// The source contact is gone for good
	_, err = env.contacts.GetContact(env.ctx, contact.ID)
	assert.Error(t, err)

	events := env.notifier.Events()
	assert.True(t, containsEvent(events, realtime.EventLeadsUpdated))
	assert.True(t, containsEvent(events, realtime.EventContactsUpdated))
}

func TestConvertToLeadFallsBackToRawNoteKeys(t *testing.T) {
	env := newTestEnv(t)

	pipeline, err := env.pipelines.EnsureDefaultPipeline(env.ctx)
	require.NoError(t, err)

	contact, err := env.contacts.CreateContact(env.ctx, &service.CreateContactInput{
		Name:   "No Form",
		Source: "Landing Page",
		FormData: map[string]interface{}{
			"message": "Call me back on Tuesday",
		},
	})
	require.NoError(t, err)

	lead, err := env.contacts.ConvertToLead(env.ctx, &service.ConvertToLeadInput{
		ContactID:  contact.ID,
		PipelineID: pipeline.ID,
		StageID:    pipeline.Stages[0].ID,
	})
	require.NoError(t, err)
	require.NotNil(t, lead.Notes)
	assert.Equal(t, "Call me back on Tuesday", *lead.Notes)
	assert.Equal(t, "Landing (Form)", lead.Source)
}

func TestDeleteContactIsPermanent(t *testing.T) {
	env := newTestEnv(t)

	contact, err := env.contacts.CreateContact(env.ctx, &service.CreateContactInput{
		Name:   "Transient",
		Source: "Manual",
	})
	require.NoError(t, err)

	require.NoError(t, env.contacts.DeleteContact(env.ctx, contact.ID))

	// Hard delete leaves nothing behind in the table
	var count int64
	require.NoError(t, env.db.Table("contacts").Where("id = ?", contact.ID).Count(&count).Error)
	assert.Zero(t, count)
}
