package finance

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"
)

// Client is the HTTP implementation of Gateway against the finance
// ledger service.
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

// APIError represents a ledger API error
type APIError struct {
	StatusCode int
	ErrorCode  string
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("finance API error [%d] %s: %s", e.StatusCode, e.ErrorCode, e.Message)
}

func (c *Client) CreateOutgoing(ctx context.Context, req CreateTransactionRequest) (TransactionRef, error) {
	var ref TransactionRef
	if err := c.post(ctx, "/api/v1/transactions/outgoing", req, &ref); err != nil {
		return TransactionRef{}, err
	}
	return ref, nil
}

func (c *Client) CancelForSource(ctx context.Context, source SourceTag, reason string) error {
	body := struct {
		Source SourceTag `json:"source"`
		Reason string    `json:"reason"`
	}{Source: source, Reason: reason}

	err := c.post(ctx, "/api/v1/transactions/cancel-by-source", body, nil)
	var apiErr *APIError
	if errors.As(err, &apiErr) && apiErr.StatusCode == http.StatusNotFound {
		// Nothing to cancel for this source tag.
		return nil
	}
	return err
}

func (c *Client) post(ctx context.Context, path string, body, out interface{}) error {
	payload, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("failed to encode finance request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("failed to build finance request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("finance request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		var errBody struct {
			Error struct {
				Code    string `json:"code"`
				Message string `json:"message"`
			} `json:"error"`
		}
		raw, _ := io.ReadAll(resp.Body)
		_ = json.Unmarshal(raw, &errBody)
		return &APIError{
			StatusCode: resp.StatusCode,
			ErrorCode:  errBody.Error.Code,
			Message:    errBody.Error.Message,
		}
	}

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return fmt.Errorf("failed to decode finance response: %w", err)
		}
	}
	return nil
}
