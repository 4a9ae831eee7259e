package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math/rand"
	"net/http"
	"time"

	"github.com/dimaskresna/lelang-bot/internal/model"
)

// The auction site rejects requests without browser-looking origin headers.
const (
	originHeader  = "https://lelang.go.id"
	refererHeader = "https://lelang.go.id/"
)

// APIError represents an error from the lelang API.
type APIError struct {
	StatusCode int
	Message    string
	Body       []byte
}

func (e *APIError) Error() string {
	return fmt.Sprintf("lelang api error %d: %s", e.StatusCode, e.Message)
}

// IsRetryable returns true if the error should trigger a retry.
func (e *APIError) IsRetryable() bool {
	return e.StatusCode >= 500 || e.StatusCode == 429
}

// IsAuthError reports whether err is an API rejection of the caller's
// credentials, which the monitor treats as an expired session.
func IsAuthError(err error) bool {
	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		return false
	}
	return apiErr.StatusCode == http.StatusUnauthorized || apiErr.StatusCode == http.StatusForbidden
}

// doRequest performs an HTTP request with the chat's credentials attached.
func (c *Client) doRequest(ctx context.Context, method, fullURL string, sess model.Session, payload any) ([]byte, error) {
	var reqBody io.Reader
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			return nil, fmt.Errorf("marshal payload: %w", err)
		}
		reqBody = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, fullURL, reqBody)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	req.Header.Set("Accept", "application/json")
	req.Header.Set("Origin", originHeader)
	req.Header.Set("Referer", refererHeader)
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if sess.BearerToken != "" {
		req.Header.Set("Authorization", "Bearer "+sess.BearerToken)
	}
	if sess.CookieHeader != "" {
		req.Header.Set("Cookie", sess.CookieHeader)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("do request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode >= 400 {
		return nil, &APIError{
			StatusCode: resp.StatusCode,
			Message:    http.StatusText(resp.StatusCode),
			Body:       body,
		}
	}

	return body, nil
}

// doWithRetry performs a request with exponential backoff retry.
func (c *Client) doWithRetry(ctx context.Context, method, fullURL string, sess model.Session, payload any) ([]byte, error) {
	var lastErr error
	backoff := c.retryBackoff

	for attempt := 0; attempt <= c.maxRetries; attempt++ {
		if attempt > 0 {
			// Add jitter: backoff * (0.5 to 1.5)
			jitter := backoff/2 + time.Duration(rand.Int63n(int64(backoff)))
			c.logger.Debug("retrying request",
				"attempt", attempt,
				"backoff", jitter,
				"url", fullURL,
			)

			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			case <-time.After(jitter):
			}

			backoff *= 2
		}

		body, err := c.doRequest(ctx, method, fullURL, sess, payload)
		if err == nil {
			return body, nil
		}

		lastErr = err

		var apiErr *APIError
		if !errors.As(err, &apiErr) || !apiErr.IsRetryable() {
			return nil, err
		}
	}

	return nil, fmt.Errorf("max retries exceeded: %w", lastErr)
}

// get performs a single-attempt GET. Poll fetches are not retried here; the
// monitor's next tick is the retry.
func (c *Client) get(ctx context.Context, fullURL string, sess model.Session, result any) error {
	body, err := c.doRequest(ctx, http.MethodGet, fullURL, sess, nil)
	if err != nil {
		return err
	}

	if err := json.Unmarshal(body, result); err != nil {
		return fmt.Errorf("unmarshal response: %w", err)
	}

	return nil
}

// post performs a POST with retries on retryable status codes.
func (c *Client) post(ctx context.Context, fullURL string, sess model.Session, payload any) ([]byte, error) {
	return c.doWithRetry(ctx, http.MethodPost, fullURL, sess, payload)
}
