package service_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leadhive/leadhive-api/internal/application/service"
	"github.com/leadhive/leadhive-api/internal/domain/entity"
	"github.com/leadhive/leadhive-api/internal/domain/enum"
	"github.com/leadhive/leadhive-api/pkg/pagination"
)

func newEnquiryForm(t *testing.T, env *testEnv) *entity.Form {
	t.Helper()

	form, err := env.forms.CreateForm(env.ctx, &service.CreateFormInput{
		Name: "Website Enquiries",
		Fields: []entity.FormField{
			{Label: "Full Name", Type: enum.FieldTypeText, Required: true},
			{Label: "Email Address", Type: enum.FieldTypeEmail},
			{Label: "Phone Number", Type: enum.FieldTypePhone},
			{Label: "Company", Type: enum.FieldTypeText},
			{Label: "Your Message", Type: enum.FieldTypeTextarea},
		},
	})
	require.NoError(t, err)
	return form
}

func TestCreateFormAssignsFieldIDs(t *testing.T) {
	env := newTestEnv(t)

	form := newEnquiryForm(t, env)
	for _, field := range form.Fields {
		assert.NotEmpty(t, field.ID)
	}
}

func TestRecordVisitIncrementsCounter(t *testing.T) {
	env := newTestEnv(t)
	form := newEnquiryForm(t, env)

	// The public page carries no tenant context
	_, err := env.forms.RecordVisit(context.Background(), form.ID)
	require.NoError(t, err)
	updated, err := env.forms.RecordVisit(context.Background(), form.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, updated.Visits)
}

func TestSubmitCreatesContactFromPublicRequest(t *testing.T) {
	env := newTestEnv(t)
	form := newEnquiryForm(t, env)

	submission := map[string]interface{}{
		form.Fields[0].ID: "Grace Hopper",
		form.Fields[1].ID: "grace@example.com",
		form.Fields[2].ID: map[string]interface{}{"area": "0151", "phone": "496 0000"},
		form.Fields[3].ID: "Navy Research",
	}

	// Public submissions arrive without tenant credentials
	contact, err := env.forms.Submit(context.Background(), form.ID, submission)
	require.NoError(t, err)

	assert.Equal(t, env.tenantID, contact.TenantID)
	assert.Equal(t, "Grace Hopper", contact.Name)
	require.NotNil(t, contact.Email)
	assert.Equal(t, "grace@example.com", *contact.Email)
	require.NotNil(t, contact.Phone)
	assert.Equal(t, "(0151) 496 0000", *contact.Phone)
	require.NotNil(t, contact.Company)
	assert.Equal(t, "Navy Research", *contact.Company)
	assert.Equal(t, form.Name, contact.Source)

	updated, err := env.forms.GetForm(env.ctx, form.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, updated.Submissions)

	// The contact lands in the form owner's tenant
	result, err := env.contacts.ListContacts(env.ctx, pagination.DefaultPagination(), "")
	require.NoError(t, err)
	assert.Len(t, result.Items, 1)
}

func TestSubmitUnknownFormReturnsNotFound(t *testing.T) {
	env := newTestEnv(t)

	_, err := env.forms.Submit(context.Background(), uuid.New(), map[string]interface{}{})
	assert.Error(t, err)
}

func TestMapSubmissionHeuristics(t *testing.T) {
	fields := []entity.FormField{
		{ID: "a", Label: "How did you hear about us?", Type: enum.FieldTypeSelect},
		{ID: "b", Label: "Full Name", Type: enum.FieldTypeText},
		{ID: "c", Label: "Work Email", Type: enum.FieldTypeText},
		{ID: "d", Label: "Contact", Type: enum.FieldTypePhone},
		{ID: "e", Label: "Company Name", Type: enum.FieldTypeText},
	}
	submission := map[string]interface{}{
		"a": "Search",
		"b": "Ada",
		"c": "ada@example.com",
		"d": "555-0199",
		"e": "Analytical Engines Ltd",
	}

	name, email, phone, company := service.MapSubmission(fields, submission)
	assert.Equal(t, "Ada", name)
	assert.Equal(t, "ada@example.com", email)
	assert.Equal(t, "555-0199", phone)
	assert.Equal(t, "Analytical Engines Ltd", company)
}

func TestMapSubmissionFallsBackToFirstField(t *testing.T) {
	fields := []entity.FormField{
		{ID: "a", Label: "Handle", Type: enum.FieldTypeText},
		{ID: "b", Label: "Email", Type: enum.FieldTypeEmail},
	}
	submission := map[string]interface{}{
		"a": "grace",
		"b": "grace@example.com",
	}

	name, email, _, company := service.MapSubmission(fields, submission)
	assert.Equal(t, "grace", name, "first field stands in when nothing is labelled name")
	assert.Equal(t, "grace@example.com", email)
	assert.Nil(t, company)
}
