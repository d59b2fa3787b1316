// Package api is the HTTP client for the listing backend. Every consumed
// endpoint has one method here; stores build on top of it.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/existflow/plotline/internal/logger"
	"github.com/google/uuid"
)

// HeaderRequestID carries a per-request id so client and server logs can be correlated
const HeaderRequestID = "X-Request-ID"

// Error is a non-2xx response from the backend
type Error struct {
	Status  int
	Message string
}

func (e *Error) Error() string {
	return e.Message
}

// StatusOf returns the HTTP status carried by err, or 0 for transport failures
func StatusOf(err error) int {
	var apiErr *Error
	if errors.As(err, &apiErr) {
		return apiErr.Status
	}
	return 0
}

// Client talks to the backend REST API
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// NewClient creates a client with the given request timeout
func NewClient(baseURL string, timeout time.Duration) *Client {
	return New(baseURL, &http.Client{Timeout: timeout})
}

// New creates a client over an existing http.Client
func New(baseURL string, httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 30 * time.Second}
	}
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: httpClient,
	}
}

// BaseURL returns the backend root this client targets
func (c *Client) BaseURL() string {
	return c.baseURL
}

type request struct {
	method      string
	path        string
	token       string
	body        io.Reader
	contentType string
}

func jsonRequest(method, path, token string, payload any) (request, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return request{}, fmt.Errorf("failed to encode request: %w", err)
	}
	return request{
		method:      method,
		path:        path,
		token:       token,
		body:        bytes.NewReader(body),
		contentType: "application/json",
	}, nil
}

// do sends the request and decodes a 2xx body into out (if non-nil)
func (c *Client) do(ctx context.Context, r request, out any) error {
	url := c.baseURL + r.path
	reqID := uuid.New().String()

	req, err := http.NewRequestWithContext(ctx, r.method, url, r.body)
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set(HeaderRequestID, reqID)
	if r.contentType != "" {
		req.Header.Set("Content-Type", r.contentType)
	}
	if r.token != "" {
		req.Header.Set("Authorization", "Bearer "+r.token)
	}

	logger.Debug("HTTP Request",
		logger.F("method", r.method),
		logger.F("url", url),
		logger.F("requestID", reqID))

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		logger.Error("HTTP request failed", logger.F("error", err), logger.F("url", url))
		return fmt.Errorf("failed to connect: %w", err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	logger.Debug("HTTP Response",
		logger.F("status", resp.StatusCode),
		logger.F("url", url),
		logger.F("requestID", reqID),
		logger.F("duration", time.Since(start).String()))

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		respBody, _ := io.ReadAll(resp.Body)
		apiErr := &Error{Status: resp.StatusCode, Message: errorMessage(resp.StatusCode, respBody)}
		logger.Error("Request rejected",
			logger.F("method", r.method),
			logger.F("url", url),
			logger.F("status", resp.StatusCode),
			logger.F("response", string(respBody)))
		return apiErr
	}

	if out == nil {
		return nil
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response: %w", err)
	}
	if len(bytes.TrimSpace(data)) == 0 {
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}

// errorMessage extracts the backend's message field, falling back to a generic text
func errorMessage(status int, body []byte) string {
	var payload struct {
		Message string `json:"message"`
		Error   string `json:"error"`
	}
	if err := json.Unmarshal(body, &payload); err == nil {
		if payload.Message != "" {
			return payload.Message
		}
		if payload.Error != "" {
			return payload.Error
		}
	}
	return fmt.Sprintf("HTTP error! status: %d", status)
}
