package llm

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

	"healthymeal/internal/config"
	"healthymeal/internal/shared"
)

const (
	generatePlanPath = "/api/generate-plan"
	modifyMealPath   = "/api/modify-meal"
	healthPath       = "/health"
)

// ProxyClient talks to an HTTP proxy that holds the model credentials.
type ProxyClient struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
}

// NewProxyClient creates a new proxy client.
func NewProxyClient(cfg *config.Config) *ProxyClient {
	timeout := cfg.GenerationTimeout
	if timeout <= 0 {
		timeout = 60 * time.Second
	}
	return &ProxyClient{
		baseURL: strings.TrimRight(cfg.ProxyURL, "/"),
		apiKey:  cfg.ProxyAPIKey,
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

// Name implements MealGenerator.
func (c *ProxyClient) Name() string {
	return "proxy"
}

type generatePlanRequest struct {
	Days            int    `json:"Days"`
	UserPreferences string `json:"UserPreferences"`
}

type modifyMealRequest struct {
	CurrentMeal         string `json:"CurrentMeal"`
	ModificationRequest string `json:"ModificationRequest"`
	UserPreferences     string `json:"UserPreferences"`
}

// GeneratePlan implements MealGenerator.
func (c *ProxyClient) GeneratePlan(ctx context.Context, days int, preferences string) (ContentResponse, error) {
	return c.post(ctx, generatePlanPath, generatePlanRequest{
		Days:            days,
		UserPreferences: preferences,
	})
}

// ModifyMeal implements MealGenerator.
func (c *ProxyClient) ModifyMeal(ctx context.Context, currentMeal, request, preferences string) (ContentResponse, error) {
	return c.post(ctx, modifyMealPath, modifyMealRequest{
		CurrentMeal:         currentMeal,
		ModificationRequest: request,
		UserPreferences:     preferences,
	})
}

// Available reports whether the proxy health endpoint answers with 2xx.
func (c *ProxyClient) Available(ctx context.Context) bool {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+healthPath, nil)
	if err != nil {
		return false
	}
	c.setHeaders(req)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return false
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, resp.Body)

	return resp.StatusCode >= 200 && resp.StatusCode < 300
}

func (c *ProxyClient) post(ctx context.Context, path string, body any) (ContentResponse, error) {
	jsonBody, err := json.Marshal(body)
	if err != nil {
		return ContentResponse{}, fmt.Errorf("failed to marshal request body: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(jsonBody))
	if err != nil {
		return ContentResponse{}, fmt.Errorf("failed to create request: %w", err)
	}
	c.setHeaders(req)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		if isTimeout(err) {
			return ContentResponse{}, fmt.Errorf("%w: %v", ErrTimeout, err)
		}
		return ContentResponse{}, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		if isTimeout(err) {
			return ContentResponse{}, fmt.Errorf("%w: %v", ErrTimeout, err)
		}
		return ContentResponse{}, fmt.Errorf("%w: reading response: %v", ErrUnavailable, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return ContentResponse{}, fmt.Errorf("%w: status=%d body=%s", ErrBadStatus, resp.StatusCode, string(respBody))
	}

	return ContentResponse{
		Content: extractResponseText(respBody),
		Usage:   shared.TokenUsage{Model: "proxy"},
	}, nil
}

func (c *ProxyClient) setHeaders(req *http.Request) {
	if c.apiKey != "" {
		req.Header.Set("X-API-Key", c.apiKey)
	}
}

// extractResponseText returns the "response" string field of a JSON envelope,
// or the body as is when there is no such envelope.
func extractResponseText(body []byte) string {
	var envelope struct {
		Response *string `json:"response"`
	}
	if err := json.Unmarshal(body, &envelope); err == nil && envelope.Response != nil {
		return *envelope.Response
	}
	return string(body)
}

func isTimeout(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var netErr interface{ Timeout() bool }
	return errors.As(err, &netErr) && netErr.Timeout()
}
