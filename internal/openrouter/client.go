package openrouter

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"time"

	"go.uber.org/zap"
)

const (
	maxRetries       = 3
	defaultMaxTokens = 2000
)

// Client is an OpenRouter API client.
type Client struct {
	httpClient  *http.Client
	apiKey      string
	baseURL     string
	appURL      string
	logger      *zap.Logger
	backoffFunc func(attempt int) time.Duration
}

func defaultBackoff(attempt int) time.Duration {
	return time.Duration(1<<uint(attempt)) * time.Second
}

// NewClient creates a new Client with the default OpenRouter base URL.
func NewClient(apiKey string) *Client {
	return &Client{
		httpClient:  &http.Client{Timeout: 60 * time.Second},
		apiKey:      apiKey,
		baseURL:     "https://openrouter.ai/api/v1",
		appURL:      "http://localhost:3000",
		logger:      zap.NewNop(),
		backoffFunc: defaultBackoff,
	}
}

// NewClientWithBaseURL creates a new Client with a custom base URL (for testing).
func NewClientWithBaseURL(apiKey, baseURL string) *Client {
	c := NewClient(apiKey)
	c.baseURL = baseURL
	return c
}

// SetAppURL sets the referer URL reported to OpenRouter.
func (c *Client) SetAppURL(appURL string) {
	c.appURL = appURL
}

// SetLogger sets the structured logger.
func (c *Client) SetLogger(logger *zap.Logger) {
	c.logger = logger
}

// Send posts a chat completion request for the given provider id and
// returns the generated text. Transient failures (429, 5xx) are retried
// with exponential backoff; everything else surfaces as an APIError.
func (c *Client) Send(ctx context.Context, providerID string, messages []Message, temperature float64) (string, error) {
	if c.apiKey == "" {
		return "", fmt.Errorf("openrouter: API key not configured")
	}

	body, err := json.Marshal(ChatRequest{
		Model:       providerID,
		Messages:    messages,
		Temperature: temperature,
		MaxTokens:   defaultMaxTokens,
	})
	if err != nil {
		return "", fmt.Errorf("openrouter: %w", err)
	}

	resp, err := c.doWithRetry(ctx, func(ctx context.Context) (*http.Response, error) {
		req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/chat/completions", bytes.NewReader(body))
		if err != nil {
			return nil, err
		}
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
		req.Header.Set("Content-Type", "application/json")
		req.Header.Set("HTTP-Referer", c.appURL)
		req.Header.Set("X-Title", "Debate Arena")
		return c.httpClient.Do(req)
	})
	if err != nil {
		c.logger.Warn("chat completion failed",
			zap.String("provider_id", providerID),
			zap.Error(err))
		return "", fmt.Errorf("openrouter: %w", err)
	}
	defer resp.Body.Close()

	var chatResp ChatResponse
	if err := json.NewDecoder(resp.Body).Decode(&chatResp); err != nil {
		return "", fmt.Errorf("openrouter: %w", err)
	}
	if len(chatResp.Choices) == 0 || chatResp.Choices[0].Message.Content == "" {
		return "", fmt.Errorf("openrouter: no content in response")
	}
	return chatResp.Choices[0].Message.Content, nil
}

func isRetryable(statusCode int) bool {
	return statusCode == http.StatusTooManyRequests || statusCode >= 500
}

func apiErrorFrom(statusCode int, respBody []byte) *APIError {
	var parsed errorBody
	message := string(respBody)
	if err := json.Unmarshal(respBody, &parsed); err == nil && parsed.Error.Message != "" {
		message = parsed.Error.Message
	}
	return &APIError{Status: statusCode, Message: message}
}

func (c *Client) doWithRetry(ctx context.Context, do func(context.Context) (*http.Response, error)) (*http.Response, error) {
	var lastErr error
	for attempt := 0; attempt <= maxRetries; attempt++ {
		if attempt > 0 {
			delay := c.backoffFunc(attempt - 1)
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			case <-time.After(delay):
			}
		}

		resp, err := do(ctx)
		if err != nil {
			return nil, err
		}

		if resp.StatusCode == http.StatusOK {
			return resp, nil
		}

		respBody, _ := io.ReadAll(resp.Body)
		resp.Body.Close()

		if !isRetryable(resp.StatusCode) {
			return nil, apiErrorFrom(resp.StatusCode, respBody)
		}

		// Respect Retry-After header on 429 (additional wait on top of backoff)
		if resp.StatusCode == http.StatusTooManyRequests {
			if ra := resp.Header.Get("Retry-After"); ra != "" {
				if secs, parseErr := strconv.Atoi(ra); parseErr == nil {
					raDelay := time.Duration(secs) * time.Second
					// Skip if backoffFunc signals zero delays (test mode)
					if raDelay > 0 && c.backoffFunc(0) > 0 {
						select {
						case <-ctx.Done():
							return nil, ctx.Err()
						case <-time.After(raDelay):
						}
					}
				}
			}
		}

		lastErr = apiErrorFrom(resp.StatusCode, respBody)
	}
	return nil, lastErr
}
