// Package jotform is a minimal client for the Jotform REST API covering
// form creation and submission retrieval.
package jotform

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"
)

// DefaultBaseURL is the public Jotform API endpoint.
const DefaultBaseURL = "https://api.jotform.com"

// formBaseURL is where hosted forms are served from.
const formBaseURL = "https://form.jotform.com"

// FormURL returns the public URL of a hosted Jotform form.
func FormURL(formID string) string {
	return formBaseURL + "/" + formID
}

// Client talks to the Jotform API on behalf of one API key
type Client struct {
	apiKey     string
	baseURL    string
	httpClient *http.Client
}

// NewClient creates a Jotform client. An empty baseURL falls back to the
// public API endpoint.
func NewClient(apiKey, baseURL string) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &Client{
		apiKey:  apiKey,
		baseURL: strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// Question describes one Jotform form question
type Question struct {
	Type     string `json:"type"`
	Text     string `json:"text"`
	Order    string `json:"order"`
	Name     string `json:"name"`
	Required string `json:"required,omitempty"`
	Options  string `json:"options,omitempty"`
}

// Answer holds one answered question of a submission. The answer value can
// be a plain string or a structured object depending on the control type.
type Answer struct {
	Name   string      `json:"name"`
	Text   string      `json:"text"`
	Type   string      `json:"type"`
	Answer interface{} `json:"answer,omitempty"`
}

// Submission is one submitted response to a Jotform form
type Submission struct {
	ID        string            `json:"id"`
	FormID    string            `json:"form_id"`
	CreatedAt string            `json:"created_at"`
	Answers   map[string]Answer `json:"answers"`
}

type apiResponse struct {
	ResponseCode int             `json:"responseCode"`
	Message      string          `json:"message"`
	Content      json.RawMessage `json:"content"`
}

// APIError is a non-success response from the Jotform API
type APIError struct {
	StatusCode   int
	ResponseCode int
	Message      string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("jotform: api error %d: %s", e.ResponseCode, e.Message)
}

// CreateForm creates a remote form with the given title and questions and
// returns the new form's Jotform id.
func (c *Client) CreateForm(ctx context.Context, title string, questions []Question) (string, error) {
	form := url.Values{}
	form.Set("properties[title]", title)
	for i, q := range questions {
		prefix := "questions[" + strconv.Itoa(i) + "]"
		form.Set(prefix+"[type]", q.Type)
		form.Set(prefix+"[text]", q.Text)
		form.Set(prefix+"[order]", q.Order)
		form.Set(prefix+"[name]", q.Name)
		if q.Required != "" {
			form.Set(prefix+"[required]", q.Required)
		}
		if q.Options != "" {
			form.Set(prefix+"[options]", q.Options)
		}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		c.baseURL+"/user/forms?apiKey="+url.QueryEscape(c.apiKey),
		strings.NewReader(form.Encode()))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	content, err := c.do(req)
	if err != nil {
		return "", err
	}

	var created struct {
		ID string `json:"id"`
	}
	if err := json.Unmarshal(content, &created); err != nil {
		return "", fmt.Errorf("jotform: decode create form response: %w", err)
	}
	if created.ID == "" {
		return "", fmt.Errorf("jotform: create form returned no id")
	}
	return created.ID, nil
}

// GetSubmissions fetches submissions for a Jotform form
func (c *Client) GetSubmissions(ctx context.Context, formID string) ([]Submission, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet,
		c.baseURL+"/form/"+url.PathEscape(formID)+"/submissions?apiKey="+url.QueryEscape(c.apiKey), nil)
	if err != nil {
		return nil, err
	}

	content, err := c.do(req)
	if err != nil {
		return nil, err
	}

	var submissions []Submission
	if err := json.Unmarshal(content, &submissions); err != nil {
		return nil, fmt.Errorf("jotform: decode submissions response: %w", err)
	}
	return submissions, nil
}

func (c *Client) do(req *http.Request) (json.RawMessage, error) {
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}

	var envelope apiResponse
	if err := json.Unmarshal(body, &envelope); err != nil {
		return nil, fmt.Errorf("jotform: decode response: %w", err)
	}

	if resp.StatusCode >= 400 || envelope.ResponseCode >= 400 {
		return nil, &APIError{
			StatusCode:   resp.StatusCode,
			ResponseCode: envelope.ResponseCode,
			Message:      envelope.Message,
		}
	}

	return envelope.Content, nil
}
