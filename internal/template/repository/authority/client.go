package authority

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"event-prep-engine/internal/model"
	"event-prep-engine/internal/template"
	"event-prep-engine/internal/template/repository"
)

// Client talks to the remote template authority over its HTTP API.
type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
}

func NewClient(baseURL, apiKey string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &Client{
		baseURL:    baseURL,
		apiKey:     apiKey,
		httpClient: &http.Client{Timeout: timeout},
	}
}

func (c *Client) do(req *http.Request, sc model.Scope) (*http.Response, error) {
	req.Header.Set("Content-Type", "application/json")
	if c.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}
	if sc.HouseholdID != "" {
		req.Header.Set("X-Household-ID", sc.HouseholdID)
	}
	if sc.DeviceID != "" {
		req.Header.Set("X-Device-ID", sc.DeviceID)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", repository.ErrUnavailable, err)
	}
	return resp, nil
}

// Search looks up the best stored template for an event type and
// pattern. Returns ErrNotFound when the authority has none above the
// confidence floor.
func (c *Client) Search(ctx context.Context, sc model.Scope, opts repository.SearchOptions) (*template.Template, error) {
	q := url.Values{}
	q.Set("event_type", opts.EventType)
	q.Set("event_pattern", opts.EventPattern)
	q.Set("min_confidence", strconv.Itoa(opts.MinConfidence))
	endpoint := fmt.Sprintf("%s/api/v1/templates/search?%s", c.baseURL, q.Encode())

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := c.do(httpReq, sc)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return nil, repository.ErrNotFound
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("authority API error: %d", resp.StatusCode)
	}

	var result template.Template
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}
	return &result, nil
}

// Create registers a template and returns the server copy, which
// carries the durable id replacing any local offline- id.
func (c *Client) Create(ctx context.Context, sc model.Scope, t template.Template) (*template.Template, error) {
	endpoint := fmt.Sprintf("%s/api/v1/templates", c.baseURL)

	body, err := json.Marshal(t)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewBuffer(body))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := c.do(httpReq, sc)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		return nil, fmt.Errorf("authority API error: %d", resp.StatusCode)
	}

	var result template.Template
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}
	return &result, nil
}

// IncrementUsage bumps the server-side usage counter for a template.
func (c *Client) IncrementUsage(ctx context.Context, sc model.Scope, templateID string) error {
	endpoint := fmt.Sprintf("%s/api/v1/templates/%s/usage", c.baseURL, url.PathEscape(templateID))

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPut, endpoint, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := c.do(httpReq, sc)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusNoContent {
		return fmt.Errorf("authority API error: %d", resp.StatusCode)
	}
	return nil
}

// Delete removes a template from the authority. Deleting an unknown id
// is not an error.
func (c *Client) Delete(ctx context.Context, sc model.Scope, templateID string) error {
	endpoint := fmt.Sprintf("%s/api/v1/templates/%s", c.baseURL, url.PathEscape(templateID))

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodDelete, endpoint, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := c.do(httpReq, sc)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusNoContent && resp.StatusCode != http.StatusNotFound {
		return fmt.Errorf("authority API error: %d", resp.StatusCode)
	}
	return nil
}

// SubmitLearning reports task completion feedback for a timeline.
func (c *Client) SubmitLearning(ctx context.Context, sc model.Scope, report repository.LearningReport) error {
	endpoint := fmt.Sprintf("%s/api/v1/templates/learning", c.baseURL)

	body, err := json.Marshal(report)
	if err != nil {
		return fmt.Errorf("failed to marshal request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewBuffer(body))
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := c.do(httpReq, sc)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusAccepted {
		return fmt.Errorf("authority API error: %d", resp.StatusCode)
	}
	return nil
}
