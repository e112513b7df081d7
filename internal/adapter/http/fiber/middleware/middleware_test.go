package middleware

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/sony/gobreaker"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/seu-repo/lapeco-hr/internal/domain"
	"github.com/seu-repo/lapeco-hr/internal/infrastructure/circuitbreaker"
	"github.com/seu-repo/lapeco-hr/pkg/config"
)

func TestStatusFor(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"fiber error", fiber.NewError(fiber.StatusTeapot, "tea"), fiber.StatusTeapot},
		{"validation", domain.NewMissingField("startDate"), fiber.StatusBadRequest},
		{"wrapped validation", fmt.Errorf("params: %w", domain.NewInvalidRange("endDate", "before start")), fiber.StatusBadRequest},
		{"missing reference", domain.ErrMissingReference, fiber.StatusBadRequest},
		{"unknown report", domain.ErrUnknownReport, fiber.StatusNotFound},
		{"not found", fmt.Errorf("leave L1: %w", domain.ErrNotFound), fiber.StatusNotFound},
		{"retrieval", &domain.RetrievalError{Reference: "L1", Cause: errors.New("reset")}, fiber.StatusBadGateway},
		{"circuit open", &domain.RetrievalError{Reference: "L1", Cause: gobreaker.ErrOpenState}, fiber.StatusServiceUnavailable},
		{"deadline", context.DeadlineExceeded, fiber.StatusGatewayTimeout},
		{"unknown handler", domain.ErrUnknownHandler, fiber.StatusInternalServerError},
		{"other", errors.New("boom"), fiber.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, StatusFor(tt.err))
		})
	}
}

func TestCircuitBreaker_OpensOnServerErrors(t *testing.T) {
	settings := circuitbreaker.DefaultSettings("test-api")
	settings.FailureThreshold = 2
	settings.Timeout = time.Minute

	app := fiber.New(fiber.Config{ErrorHandler: ErrorHandler(zap.NewNop())})
	app.Use(CircuitBreaker(settings, zap.NewNop()))
	app.Get("/bad-request", func(c *fiber.Ctx) error { return domain.ErrUnknownReport })
	app.Get("/fail", func(c *fiber.Ctx) error { return errors.New("database down") })

	get := func(path string) int {
		resp, err := app.Test(httptest.NewRequest(http.MethodGet, path, nil))
		require.NoError(t, err)
		defer resp.Body.Close()
		return resp.StatusCode
	}

	// client errors never trip the circuit
	for i := 0; i < 3; i++ {
		assert.Equal(t, http.StatusNotFound, get("/bad-request"))
	}

	assert.Equal(t, http.StatusInternalServerError, get("/fail"))
	assert.Equal(t, http.StatusInternalServerError, get("/fail"))
	assert.Equal(t, http.StatusServiceUnavailable, get("/fail"))
	assert.Equal(t, http.StatusServiceUnavailable, get("/bad-request"))
}

func TestRequester(t *testing.T) {
	app := fiber.New()
	app.Use(Requester())
	app.Get("/", func(c *fiber.Ctx) error { return c.SendString(RequesterFrom(c)) })

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(RequesterHeader, "  E7 ")
	resp, err := app.Test(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	body := make([]byte, 8)
	n, _ := resp.Body.Read(body)
	assert.Equal(t, "E7", string(body[:n]))
}

func TestRequestID_EchoesHeader(t *testing.T) {
	app := fiber.New()
	app.Use(RequestID(), RequestLogger(zap.NewNop()))
	app.Get("/", func(c *fiber.Ctx) error { return c.SendStatus(fiber.StatusOK) })

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/", nil))
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Len(t, resp.Header.Get(fiber.HeaderXRequestID), 36)
}

func TestRateLimit(t *testing.T) {
	app := fiber.New()
	app.Use(RateLimit(config.RateLimitingConfig{MaxRequests: 2, Window: time.Minute, ByUser: true}))
	app.Get("/", func(c *fiber.Ctx) error { return c.SendStatus(fiber.StatusOK) })

	get := func(employee string) int {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set(RequesterHeader, employee)
		resp, err := app.Test(req)
		require.NoError(t, err)
		defer resp.Body.Close()
		return resp.StatusCode
	}

	assert.Equal(t, http.StatusOK, get("E1"))
	assert.Equal(t, http.StatusOK, get("E1"))
	assert.Equal(t, http.StatusTooManyRequests, get("E1"))
	assert.Equal(t, http.StatusOK, get("E2"))
}

func TestCORSConfig_Defaults(t *testing.T) {
	got := corsConfig(config.CORSConfig{})

	assert.Equal(t, "*", got.AllowOrigins)
	assert.Contains(t, got.AllowHeaders, RequesterHeader)
	assert.Contains(t, got.ExposeHeaders, "Content-Disposition")
	assert.Equal(t, corsMaxAge, got.MaxAge)
}

func TestCORSConfig_Overrides(t *testing.T) {
	got := corsConfig(config.CORSConfig{
		AllowedOrigins: []string{"https://hr.example.com", "https://admin.example.com"},
		MaxAge:         60,
		Credentials:    true,
	})

	assert.Equal(t, "https://hr.example.com,https://admin.example.com", got.AllowOrigins)
	assert.Equal(t, "GET,POST,PUT,DELETE,OPTIONS", got.AllowMethods)
	assert.Equal(t, 60, got.MaxAge)
	assert.True(t, got.AllowCredentials)
}

func TestErrorHandler_HidesServerErrorDetails(t *testing.T) {
	app := fiber.New(fiber.Config{ErrorHandler: ErrorHandler(zap.NewNop())})
	app.Get("/internal", func(c *fiber.Ctx) error {
		return fmt.Errorf(`select from "payroll_records": %w`, domain.ErrUnknownHandler)
	})
	app.Get("/invalid", func(c *fiber.Ctx) error {
		return domain.NewInvalidRange("endDate", "must not be before startDate")
	})

	call := func(path string) (int, map[string]interface{}) {
		resp, err := app.Test(httptest.NewRequest(http.MethodGet, path, nil))
		require.NoError(t, err)
		defer resp.Body.Close()
		var body map[string]interface{}
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
		return resp.StatusCode, body
	}

	code, body := call("/internal")
	assert.Equal(t, http.StatusInternalServerError, code)
	assert.Equal(t, "Internal Server Error", body["error"])

	code, body = call("/invalid")
	assert.Equal(t, http.StatusBadRequest, code)
	assert.Equal(t, "endDate: must not be before startDate", body["error"])
	assert.Equal(t, "endDate", body["field"])
}
