package portal

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// Client is the customer portal API client. It targets the /portal/v1
// surface, which is scoped to a single store via the tenant slug header.
type Client struct {
	baseURL    string
	tenantSlug string
	httpClient *http.Client
}

// Option is a function that configures the Client.
type Option func(*Client)

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(c *http.Client) Option {
	return func(client *Client) {
		client.httpClient = c
	}
}

// WithTimeout sets the HTTP client timeout.
func WithTimeout(d time.Duration) Option {
	return func(client *Client) {
		client.httpClient.Timeout = d
	}
}

// NewClient creates a new customer portal API client.
//
// Parameters:
//   - baseURL: The API base URL (e.g., "https://api.example.com")
//   - tenantSlug: The store identifier (e.g., "acme-coffee")
func NewClient(baseURL, tenantSlug string, opts ...Option) *Client {
	c := &Client{
		baseURL:    baseURL,
		tenantSlug: tenantSlug,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// GetSubscription retrieves a subscription by its public identifier.
func (c *Client) GetSubscription(ctx context.Context, sid string) (*Subscription, error) {
	url := fmt.Sprintf("%s/portal/v1/subscriptions/%s", c.baseURL, sid)

	var sub Subscription
	if err := c.doRequest(ctx, http.MethodGet, url, nil, &sub); err != nil {
		return nil, fmt.Errorf("get subscription: %w", err)
	}
	return &sub, nil
}

// PauseSubscription pauses a subscription. autoResumeAt is optional; when set
// the subscription resumes itself at that time.
func (c *Client) PauseSubscription(ctx context.Context, sid string, req PauseRequest) (*Subscription, error) {
	url := fmt.Sprintf("%s/portal/v1/subscriptions/%s/pause", c.baseURL, sid)

	var sub Subscription
	if err := c.doRequest(ctx, http.MethodPost, url, req, &sub); err != nil {
		return nil, fmt.Errorf("pause subscription: %w", err)
	}
	return &sub, nil
}

// ResumeSubscription resumes a paused subscription.
func (c *Client) ResumeSubscription(ctx context.Context, sid string) (*Subscription, error) {
	url := fmt.Sprintf("%s/portal/v1/subscriptions/%s/resume", c.baseURL, sid)

	var sub Subscription
	if err := c.doRequest(ctx, http.MethodPost, url, struct{}{}, &sub); err != nil {
		return nil, fmt.Errorf("resume subscription: %w", err)
	}
	return &sub, nil
}

// SkipNextOrder skips the next scheduled order for a subscription.
func (c *Client) SkipNextOrder(ctx context.Context, sid string) (*Subscription, error) {
	url := fmt.Sprintf("%s/portal/v1/subscriptions/%s/skip", c.baseURL, sid)

	var sub Subscription
	if err := c.doRequest(ctx, http.MethodPost, url, struct{}{}, &sub); err != nil {
		return nil, fmt.Errorf("skip next order: %w", err)
	}
	return &sub, nil
}

// TriggerSaveFlow starts a save flow for a subscription the customer is about
// to cancel. The returned attempt must be completed with CompleteSaveAttempt.
func (c *Client) TriggerSaveFlow(ctx context.Context, req TriggerSaveFlowRequest) (*SaveFlowSession, error) {
	url := fmt.Sprintf("%s/portal/v1/save-flows/trigger", c.baseURL)

	var session SaveFlowSession
	if err := c.doRequest(ctx, http.MethodPost, url, req, &session); err != nil {
		return nil, fmt.Errorf("trigger save flow: %w", err)
	}
	return &session, nil
}

// CompleteSaveAttempt records the outcome of a save flow attempt.
func (c *Client) CompleteSaveAttempt(ctx context.Context, attemptSID string, req CompleteAttemptRequest) (*SaveAttempt, error) {
	url := fmt.Sprintf("%s/portal/v1/save-attempts/%s/complete", c.baseURL, attemptSID)

	var attempt SaveAttempt
	if err := c.doRequest(ctx, http.MethodPost, url, req, &attempt); err != nil {
		return nil, fmt.Errorf("complete save attempt: %w", err)
	}
	return &attempt, nil
}

// doRequest performs an HTTP request and decodes the response.
func (c *Client) doRequest(ctx context.Context, method, url string, body any, result any) error {
	var reqBody io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("marshal request: %w", err)
		}
		reqBody = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, url, reqBody)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}

	req.Header.Set("X-Tenant-Slug", c.tenantSlug)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("send request: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("api error: status=%d body=%s", resp.StatusCode, string(respBody))
	}

	if result == nil {
		return nil
	}

	var apiResp apiResponse
	if err := json.Unmarshal(respBody, &apiResp); err != nil {
		return fmt.Errorf("unmarshal response: %w", err)
	}

	if !apiResp.Success {
		return fmt.Errorf("api error: %s", apiResp.Message)
	}

	if apiResp.Data == nil {
		return nil
	}

	// Re-marshal and unmarshal to convert Data to the target type
	dataBytes, err := json.Marshal(apiResp.Data)
	if err != nil {
		return fmt.Errorf("marshal data: %w", err)
	}

	if err := json.Unmarshal(dataBytes, result); err != nil {
		return fmt.Errorf("unmarshal data: %w", err)
	}

	return nil
}
