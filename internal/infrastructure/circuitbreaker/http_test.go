package circuitbreaker

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/sony/gobreaker"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestHTTPClient_ServerErrorsOpenCircuit(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	settings := DefaultSettings("test")
	settings.FailureThreshold = 2
	settings.Timeout = time.Minute
	client := NewHTTPClientWithSettings(time.Second, settings, zap.NewNop())

	for i := 0; i < 2; i++ {
		req, _ := http.NewRequest(http.MethodGet, srv.URL, nil)
		resp, err := client.Do(req)
		require.NoError(t, err, "5xx is returned as a response")
		assert.Equal(t, http.StatusBadGateway, resp.StatusCode)
		resp.Body.Close()
	}

	assert.Equal(t, gobreaker.StateOpen, client.State())

	req, _ := http.NewRequest(http.MethodGet, srv.URL, nil)
	_, err := client.Do(req)
	assert.True(t, IsOpen(err))
}

func TestHTTPClient_NotFoundIsNotAFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	settings := DefaultSettings("test")
	settings.FailureThreshold = 1
	client := NewHTTPClientWithSettings(time.Second, settings, zap.NewNop())

	for i := 0; i < 3; i++ {
		req, _ := http.NewRequest(http.MethodGet, srv.URL, nil)
		resp, err := client.Do(req)
		require.NoError(t, err)
		resp.Body.Close()
	}

	assert.Equal(t, gobreaker.StateClosed, client.State())
}

func TestHTTPClient_AbandonedRequestsDoNotOpenCircuit(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/slow" {
			select {
			case <-r.Context().Done():
			case <-time.After(2 * time.Second):
			}
			return
		}
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	settings := DefaultSettings("attachments")
	settings.FailureThreshold = 2
	settings.Timeout = time.Minute
	client := NewHTTPClientWithSettings(5*time.Second, settings, zap.NewNop())

	for i := 0; i < 5; i++ {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Millisecond)
		req, _ := http.NewRequestWithContext(ctx, http.MethodGet, srv.URL+"/slow", nil)
		_, err := client.Do(req)
		cancel()
		require.Error(t, err)
		assert.ErrorIs(t, err, context.DeadlineExceeded)
		assert.False(t, IsOpen(err))
	}

	canceled, cancel := context.WithCancel(context.Background())
	cancel()
	req, _ := http.NewRequestWithContext(canceled, http.MethodGet, srv.URL+"/slow", nil)
	_, err := client.Do(req)
	assert.ErrorIs(t, err, context.Canceled)

	assert.Equal(t, gobreaker.StateClosed, client.State())

	req, _ = http.NewRequest(http.MethodGet, srv.URL, nil)
	resp, err := client.Do(req)
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestHTTPClient_TransportErrorsStillCount(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := srv.URL
	srv.Close()

	settings := DefaultSettings("attachments")
	settings.FailureThreshold = 2
	settings.Timeout = time.Minute
	client := NewHTTPClientWithSettings(time.Second, settings, zap.NewNop())

	for i := 0; i < 2; i++ {
		req, _ := http.NewRequest(http.MethodGet, url, nil)
		_, err := client.Do(req)
		require.Error(t, err)
	}

	assert.Equal(t, gobreaker.StateOpen, client.State())
}
