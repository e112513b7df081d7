package circuitbreaker

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/sony/gobreaker"
	"go.uber.org/zap"
)

var errServerStatus = errors.New("server error status")

// HTTPClient wraps an HTTP client with circuit breaker protection.
// 5xx responses count as breaker failures but are still handed back to
// the caller.
type HTTPClient struct {
	client  *http.Client
	breaker *gobreaker.CircuitBreaker
	log     *zap.Logger
}

// NewHTTPClient wraps client with breaker. A nil client gets a 30s timeout.
func NewHTTPClient(client *http.Client, breaker *gobreaker.CircuitBreaker, log *zap.Logger) *HTTPClient {
	if client == nil {
		client = &http.Client{
			Timeout: 30 * time.Second,
		}
	}
	return &HTTPClient{
		client:  client,
		breaker: breaker,
		log:     log,
	}
}

// NewHTTPClientWithSettings creates a client with its own breaker.
func NewHTTPClientWithSettings(timeout time.Duration, settings Settings, log *zap.Logger) *HTTPClient {
	return NewHTTPClient(&http.Client{Timeout: timeout}, New(settings, log), log)
}

// Do sends req through the breaker. A request whose context was canceled
// or timed out by the caller returns its error without counting as a
// breaker failure.
func (c *HTTPClient) Do(req *http.Request) (*http.Response, error) {
	if err := req.Context().Err(); err != nil {
		return nil, err
	}

	var abandoned error
	result, err := c.breaker.Execute(func() (interface{}, error) {
		resp, err := c.client.Do(req)
		if err != nil {
			if req.Context().Err() != nil {
				abandoned = err
				return nil, nil
			}
			return nil, err
		}
		if resp.StatusCode >= 500 {
			return resp, fmt.Errorf("%w: %d", errServerStatus, resp.StatusCode)
		}
		return resp, nil
	})

	if abandoned != nil {
		return nil, abandoned
	}
	if err != nil {
		if errors.Is(err, errServerStatus) {
			return result.(*http.Response), nil
		}
		if IsOpen(err) {
			c.log.Warn("Circuit breaker open, request blocked",
				zap.String("url", req.URL.String()),
				zap.String("breaker", c.breaker.Name()),
			)
		}
		return nil, err
	}

	return result.(*http.Response), nil
}

// State exposes the breaker state for health reporting.
func (c *HTTPClient) State() gobreaker.State {
	return c.breaker.State()
}
