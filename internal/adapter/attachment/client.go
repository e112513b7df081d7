// Package attachment reaches the document service that stores files
// uploaded with leave requests.
package attachment

import (
	"context"
	"fmt"
	"io"
	"mime"
	"net/http"
	"net/url"
	"strings"

	"go.uber.org/zap"

	"github.com/seu-repo/lapeco-hr/internal/domain"
	"github.com/seu-repo/lapeco-hr/internal/infrastructure/circuitbreaker"
)

const defaultMaxBytes = 20 << 20

// Config locates the document service.
type Config struct {
	BaseURL  string
	Token    string
	MaxBytes int64
}

// Client fetches GET {BaseURL}/leaves/{id}/attachment.
type Client struct {
	http     *circuitbreaker.HTTPClient
	baseURL  string
	token    string
	maxBytes int64
	log      *zap.Logger
}

// NewClient creates a client that sends requests through httpClient.
func NewClient(cfg Config, httpClient *circuitbreaker.HTTPClient, log *zap.Logger) *Client {
	maxBytes := cfg.MaxBytes
	if maxBytes <= 0 {
		maxBytes = defaultMaxBytes
	}
	return &Client{
		http:     httpClient,
		baseURL:  strings.TrimRight(cfg.BaseURL, "/"),
		token:    cfg.Token,
		maxBytes: maxBytes,
		log:      log,
	}
}

// FetchLeaveAttachment downloads the attachment of leaveID. Non-2xx statuses are returned, not errors.
func (c *Client) FetchLeaveAttachment(ctx context.Context, leaveID string) (*domain.FetchedPayload, error) {
	endpoint := fmt.Sprintf("%s/leaves/%s/attachment", c.baseURL, url.PathEscape(leaveID))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "*/*")
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, c.maxBytes+1))
	if err != nil {
		return nil, fmt.Errorf("read attachment body: %w", err)
	}
	if int64(len(body)) > c.maxBytes {
		return nil, fmt.Errorf("attachment exceeds %d bytes", c.maxBytes)
	}

	c.log.Debug("Fetched leave attachment",
		zap.String("leave_id", leaveID),
		zap.Int("status", resp.StatusCode),
		zap.Int("size", len(body)),
	)

	return &domain.FetchedPayload{
		StatusCode:  resp.StatusCode,
		ContentType: resp.Header.Get("Content-Type"),
		Filename:    filename(resp.Header.Get("Content-Disposition")),
		Body:        body,
	}, nil
}

func filename(disposition string) string {
	if disposition == "" {
		return ""
	}
	_, params, err := mime.ParseMediaType(disposition)
	if err != nil {
		return ""
	}
	return params["filename"]
}
