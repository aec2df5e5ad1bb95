package service_test

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leadhive/leadhive-api/internal/application/service"
	infrarepo "github.com/leadhive/leadhive-api/internal/infrastructure/repository"
	"github.com/leadhive/leadhive-api/pkg/jotform"
	"github.com/leadhive/leadhive-api/pkg/pagination"
)

// fakeJotformClient is an in-memory stand-in for the Jotform API
type fakeJotformClient struct {
	createdTitle     string
	createdQuestions []jotform.Question
	submissions      []jotform.Submission
	createErr        error
	fetchErr         error
}

func (f *fakeJotformClient) CreateForm(_ context.Context, title string, questions []jotform.Question) (string, error) {
	if f.createErr != nil {
		return "", f.createErr
	}
	f.createdTitle = title
	f.createdQuestions = questions
	return "250862412331", nil
}

func (f *fakeJotformClient) GetSubmissions(_ context.Context, _ string) ([]jotform.Submission, error) {
	if f.fetchErr != nil {
		return nil, f.fetchErr
	}
	return f.submissions, nil
}

func newJotformService(env *testEnv, client service.JotformClient) *service.JotformService {
	return service.NewJotformService(
		infrarepo.NewFormRepository(env.db),
		infrarepo.NewContactRepository(env.db),
		env.contacts,
		client,
	)
}

func TestCreateJotFormMirrorsFields(t *testing.T) {
	env := newTestEnv(t)
	form := newEnquiryForm(t, env)

	client := &fakeJotformClient{}
	svc := newJotformService(env, client)

	linked, err := svc.CreateJotForm(env.ctx, form.ID)
	require.NoError(t, err)
	require.NotNil(t, linked.JotformID)
	assert.Equal(t, "250862412331", *linked.JotformID)
	require.NotNil(t, linked.JotformURL)
	assert.Equal(t, "https://form.jotform.com/250862412331", *linked.JotformURL)

	assert.Equal(t, "Website Enquiries", client.createdTitle)
	require.Len(t, client.createdQuestions, 5)
	assert.Equal(t, "control_textbox", client.createdQuestions[0].Type)
	assert.Equal(t, "Yes", client.createdQuestions[0].Required)
	assert.Equal(t, "control_email", client.createdQuestions[1].Type)
	assert.Equal(t, "control_phone", client.createdQuestions[2].Type)
	assert.Equal(t, "control_textarea", client.createdQuestions[4].Type)

	// Linking twice is a conflict
	_, err = svc.CreateJotForm(env.ctx, form.ID)
	assert.Error(t, err)
}

func TestCreateJotFormWithoutClientFails(t *testing.T) {
	env := newTestEnv(t)
	form := newEnquiryForm(t, env)

	svc := newJotformService(env, nil)
	_, err := svc.CreateJotForm(env.ctx, form.ID)
	assert.Error(t, err)
}

func TestSyncJotformSubmissionsDeduplicates(t *testing.T) {
	env := newTestEnv(t)
	form := newEnquiryForm(t, env)

	client := &fakeJotformClient{}
	svc := newJotformService(env, client)

	linked, err := svc.CreateJotForm(env.ctx, form.ID)
	require.NoError(t, err)

	nameQ := "f" + strings.ReplaceAll(linked.Fields[0].ID, "-", "")
	emailQ := "f" + strings.ReplaceAll(linked.Fields[1].ID, "-", "")
	client.submissions = []jotform.Submission{
		{
			ID: "6100001",
			Answers: map[string]jotform.Answer{
				"1": {Name: nameQ, Answer: "Grace Hopper"},
				"2": {Name: emailQ, Answer: "grace@example.com"},
			},
		},
	}

	first, err := svc.SyncJotformSubmissions(env.ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, first.FormsSynced)
	assert.Equal(t, 1, first.ContactsCreated)
	assert.Equal(t, 0, first.Skipped)

	contacts, err := env.contacts.ListContacts(env.ctx, pagination.DefaultPagination(), "")
	require.NoError(t, err)
	require.Len(t, contacts.Items, 1)
	assert.Equal(t, "Grace Hopper", contacts.Items[0].Name)
	assert.Equal(t, "6100001", contacts.Items[0].FormData[service.SubmissionIDKey])

	// A second run sees the same remote submission and skips it
	second, err := svc.SyncJotformSubmissions(env.ctx)
	require.NoError(t, err)
	assert.Equal(t, 0, second.ContactsCreated)
	assert.Equal(t, 1, second.Skipped)

	contacts, err = env.contacts.ListContacts(env.ctx, pagination.DefaultPagination(), "")
	require.NoError(t, err)
	assert.Len(t, contacts.Items, 1)
}

func TestSyncSkipsFormWhenFetchFails(t *testing.T) {
	env := newTestEnv(t)
	form := newEnquiryForm(t, env)

	client := &fakeJotformClient{}
	svc := newJotformService(env, client)
	_, err := svc.CreateJotForm(env.ctx, form.ID)
	require.NoError(t, err)

	client.fetchErr = assert.AnError
	result, err := svc.SyncJotformSubmissions(env.ctx)
	require.NoError(t, err)
	assert.Equal(t, 0, result.FormsSynced)
	assert.Equal(t, 0, result.ContactsCreated)
}
