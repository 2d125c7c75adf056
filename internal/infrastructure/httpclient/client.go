// Package httpclient реализует HTTP-клиент с повторами и экспоненциальным
// backoff для внешних rate-limited сервисов (Overpass, Wikidata).
//
// Клиент не логирует: классификацию и реакцию на отказ выбирает вызывающий.
package httpclient

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/cenkalti/backoff/v4"
)

// StatusError - ответ с неожиданным HTTP-статусом
type StatusError struct {
	StatusCode int
	Status     string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("unexpected status: %s", e.Status)
}

// Retryable сообщает, имеет ли смысл повторять запрос.
// Повторяются 429 и перегрузки сервера; остальные не-2xx терминальны.
func (e *StatusError) Retryable() bool {
	switch e.StatusCode {
	case http.StatusTooManyRequests,
		http.StatusInternalServerError,
		http.StatusBadGateway,
		http.StatusServiceUnavailable,
		http.StatusGatewayTimeout:
		return true
	}
	return false
}

// Client - HTTP-клиент с ограниченным числом попыток.
// Задержка перед попыткой n (n >= 2) равна baseDelay * 2^(n-2).
type Client struct {
	httpClient  *http.Client
	maxAttempts int
	baseDelay   time.Duration
	userAgent   string
}

// New создает новый Client
func New(timeout time.Duration, maxAttempts int, baseDelay time.Duration, userAgent string) *Client {
	if maxAttempts < 1 {
		maxAttempts = 1
	}
	return &Client{
		httpClient:  &http.Client{Timeout: timeout},
		maxAttempts: maxAttempts,
		baseDelay:   baseDelay,
		userAgent:   userAgent,
	}
}

// PostText отправляет текстовое тело и декодирует JSON-ответ в out
func (c *Client) PostText(ctx context.Context, url, body string, out interface{}) error {
	return c.doWithRetry(ctx, func() (*http.Request, error) {
		req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, strings.NewReader(body))
		if err != nil {
			return nil, err
		}
		req.Header.Set("Content-Type", "text/plain")
		return req, nil
	}, out)
}

// GetJSON выполняет GET и декодирует JSON-ответ в out
func (c *Client) GetJSON(ctx context.Context, url string, out interface{}) error {
	return c.doWithRetry(ctx, func() (*http.Request, error) {
		return http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	}, out)
}

// doWithRetry выполняет запрос с повторами. Тело запроса пересоздаётся
// на каждую попытку через buildReq.
func (c *Client) doWithRetry(ctx context.Context, buildReq func() (*http.Request, error), out interface{}) error {
	bo := backoff.NewExponentialBackOff()
	bo.InitialInterval = c.baseDelay
	bo.RandomizationFactor = 0
	bo.Multiplier = 2
	bo.MaxInterval = time.Hour
	bo.MaxElapsedTime = 0

	policy := backoff.WithContext(backoff.WithMaxRetries(bo, uint64(c.maxAttempts-1)), ctx)

	return backoff.Retry(func() error {
		req, err := buildReq()
		if err != nil {
			return backoff.Permanent(fmt.Errorf("failed to create request: %w", err))
		}
		req.Header.Set("User-Agent", c.userAgent)

		resp, err := c.httpClient.Do(req)
		if err != nil {
			// транспортная ошибка - всегда повторяемая
			return fmt.Errorf("failed to execute request: %w", err)
		}
		defer resp.Body.Close()

		if resp.StatusCode < 200 || resp.StatusCode > 299 {
			statusErr := &StatusError{StatusCode: resp.StatusCode, Status: resp.Status}
			if statusErr.Retryable() {
				return statusErr
			}
			return backoff.Permanent(statusErr)
		}

		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return backoff.Permanent(fmt.Errorf("failed to decode response: %w", err))
		}
		return nil
	}, policy)
}
