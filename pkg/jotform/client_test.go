package jotform

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateForm(t *testing.T) {
	var gotForm map[string][]string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/user/forms", r.URL.Path)
		assert.Equal(t, "test-key", r.URL.Query().Get("apiKey"))

		require.NoError(t, r.ParseForm())
		gotForm = r.PostForm

		json.NewEncoder(w).Encode(map[string]interface{}{
			"responseCode": 200,
			"message":      "success",
			"content":      map[string]string{"id": "240010001"},
		})
	}))
	defer server.Close()

	client := NewClient("test-key", server.URL)
	id, err := client.CreateForm(context.Background(), "Website Contact Form", []Question{
		{Type: "control_textbox", Text: "Name", Order: "1", Name: "name", Required: "Yes"},
		{Type: "control_email", Text: "Email", Order: "2", Name: "email"},
	})

	require.NoError(t, err)
	assert.Equal(t, "240010001", id)
	assert.Equal(t, "Website Contact Form", gotForm["properties[title]"][0])
	assert.Equal(t, "control_textbox", gotForm["questions[0][type]"][0])
	assert.Equal(t, "Yes", gotForm["questions[0][required]"][0])
	assert.Equal(t, "control_email", gotForm["questions[1][type]"][0])
}

func TestGetSubmissions(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/form/240010001/submissions", r.URL.Path)

		json.NewEncoder(w).Encode(map[string]interface{}{
			"responseCode": 200,
			"message":      "success",
			"content": []map[string]interface{}{
				{
					"id":      "sub-1",
					"form_id": "240010001",
					"answers": map[string]interface{}{
						"1": map[string]interface{}{
							"name": "name",
							"text": "Name",
							"type": "control_fullname",
							"answer": map[string]interface{}{
								"first": "Jane",
								"last":  "Doe",
							},
						},
					},
				},
			},
		})
	}))
	defer server.Close()

	client := NewClient("test-key", server.URL)
	submissions, err := client.GetSubmissions(context.Background(), "240010001")

	require.NoError(t, err)
	require.Len(t, submissions, 1)
	assert.Equal(t, "sub-1", submissions[0].ID)
	answer := submissions[0].Answers["1"]
	assert.Equal(t, "control_fullname", answer.Type)
}

func TestAPIErrorSurfaced(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		json.NewEncoder(w).Encode(map[string]interface{}{
			"responseCode": 401,
			"message":      "Invalid API key",
		})
	}))
	defer server.Close()

	client := NewClient("bad-key", server.URL)
	_, err := client.GetSubmissions(context.Background(), "240010001")

	require.Error(t, err)
	apiErr, ok := err.(*APIError)
	require.True(t, ok)
	assert.Equal(t, 401, apiErr.ResponseCode)
}
