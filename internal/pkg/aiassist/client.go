package aiassist

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/stratushq/stratus/internal/pkg/env"
)

const (
	statusSummaryPath  = "/functions/v1/status-summary"
	meetingMinutesPath = "/functions/v1/structure-minutes"
	actionItemsPath    = "/functions/v1/extract-action-items"
	defaultHTTPTimeout = 30 * time.Second
)

// Client calls the managed drafting functions. Each call is one HTTP
// request/response; no retry, batching or backpressure is performed here —
// failures surface to the caller.
type Client struct {
	apiKey  string
	baseURL string
	http    *http.Client
}

// DraftRequest is the JSON body sent to every drafting function.
type DraftRequest struct {
	ProjectName string `json:"project_name"`
	Text        string `json:"text"`
}

// DraftResponse is the JSON body every drafting function returns.
type DraftResponse struct {
	Draft string `json:"draft"`
	Model string `json:"model,omitempty"`
}

// NewClientFromEnv builds a client from AI_FUNCTIONS_URL / AI_FUNCTIONS_KEY.
func NewClientFromEnv() (*Client, error) {
	baseURL := env.GetEnv("AI_FUNCTIONS_URL", "")
	if baseURL == "" {
		return nil, errors.New("AI_FUNCTIONS_URL is not set")
	}
	return &Client{
		apiKey:  env.GetEnv("AI_FUNCTIONS_KEY", ""),
		baseURL: baseURL,
		http: &http.Client{
			Timeout: defaultHTTPTimeout,
		},
	}, nil
}

// NewClient builds a client against an explicit endpoint; used by tests.
func NewClient(baseURL, apiKey string) *Client {
	return &Client{
		apiKey:  apiKey,
		baseURL: baseURL,
		http:    &http.Client{Timeout: defaultHTTPTimeout},
	}
}

// StatusSummary drafts a project status summary from free-form notes.
func (c *Client) StatusSummary(ctx context.Context, req DraftRequest) (*DraftResponse, error) {
	return c.post(ctx, statusSummaryPath, req)
}

// MeetingMinutes structures raw meeting notes into formatted minutes.
func (c *Client) MeetingMinutes(ctx context.Context, req DraftRequest) (*DraftResponse, error) {
	return c.post(ctx, meetingMinutesPath, req)
}

// ActionItems extracts an action-item list from meeting or status text.
func (c *Client) ActionItems(ctx context.Context, req DraftRequest) (*DraftResponse, error) {
	return c.post(ctx, actionItemsPath, req)
}

func (c *Client) post(ctx context.Context, path string, payload DraftRequest) (*DraftResponse, error) {
	var buf bytes.Buffer
	if err := json.NewEncoder(&buf).Encode(payload); err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, &buf)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	if c.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return nil, fmt.Errorf("drafting function %s returned %d: %s", path, resp.StatusCode, string(body))
	}

	var out DraftResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, fmt.Errorf("failed to decode drafting response: %w", err)
	}
	return &out, nil
}
