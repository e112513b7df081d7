package report

import (
	"context"
	"errors"
	"fmt"
	"mime"
	"net/http"
	"strings"

	"go.uber.org/zap"

	"github.com/seu-repo/lapeco-hr/internal/domain"
	"github.com/seu-repo/lapeco-hr/internal/observability/telemetry"
	"github.com/seu-repo/lapeco-hr/internal/ports"
)

const defaultContentType = "application/octet-stream"

// AttachmentRetriever fetches the document attached to a leave request.
// A document service that cannot find the file answers 200 with its HTML
// fallback page, so markup on a successful response is treated as not found.
type AttachmentRetriever struct {
	fetcher ports.AttachmentFetcher
	log     *zap.Logger
}

// NewAttachmentRetriever creates a retriever backed by fetcher.
func NewAttachmentRetriever(fetcher ports.AttachmentFetcher, log *zap.Logger) *AttachmentRetriever {
	return &AttachmentRetriever{fetcher: fetcher, log: log}
}

// Kind returns KindRetriever.
func (r *AttachmentRetriever) Kind() HandlerKind {
	return KindRetriever
}

// Retrieve fetches the attachment of the leave named in the params.
func (r *AttachmentRetriever) Retrieve(ctx context.Context, in Input) (*domain.Blob, error) {
	return r.Fetch(ctx, in.Params.LeaveID)
}

// Fetch returns the attachment of leaveID. No retries are attempted.
func (r *AttachmentRetriever) Fetch(ctx context.Context, leaveID string) (*domain.Blob, error) {
	if strings.TrimSpace(leaveID) == "" {
		telemetry.AttachmentRetrievalsTotal.WithLabelValues("missing_reference").Inc()
		return nil, fmt.Errorf("leave attachment: %w", domain.ErrMissingReference)
	}

	payload, err := r.fetcher.FetchLeaveAttachment(ctx, leaveID)
	if err != nil {
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			return nil, err
		}
		telemetry.AttachmentRetrievalsTotal.WithLabelValues("transport_error").Inc()
		r.log.Warn("Leave attachment fetch failed", zap.String("leave_id", leaveID), zap.Error(err))
		return nil, &domain.RetrievalError{Reference: leaveID, Cause: err}
	}

	if payload.StatusCode == http.StatusNotFound {
		telemetry.AttachmentRetrievalsTotal.WithLabelValues("not_found").Inc()
		return nil, fmt.Errorf("leave %s attachment: %w", leaveID, domain.ErrNotFound)
	}
	if payload.StatusCode < 200 || payload.StatusCode > 299 {
		telemetry.AttachmentRetrievalsTotal.WithLabelValues("upstream_error").Inc()
		return nil, &domain.RetrievalError{
			Reference: leaveID,
			Cause:     fmt.Errorf("unexpected status %d", payload.StatusCode),
		}
	}
	if IsMarkup(payload.ContentType) {
		telemetry.AttachmentRetrievalsTotal.WithLabelValues("not_found").Inc()
		r.log.Debug("Attachment service returned markup",
			zap.String("leave_id", leaveID),
			zap.Int("status", payload.StatusCode),
		)
		return nil, fmt.Errorf("leave %s attachment: %w", leaveID, domain.ErrNotFound)
	}

	contentType := payload.ContentType
	if contentType == "" {
		contentType = defaultContentType
	}
	filename := payload.Filename
	if filename == "" {
		filename = "leave-" + leaveID + "-attachment"
	}

	telemetry.AttachmentRetrievalsTotal.WithLabelValues("ok").Inc()
	return &domain.Blob{
		ContentType: contentType,
		Filename:    filename,
		Data:        payload.Body,
	}, nil
}

// IsMarkup reports whether contentType names an HTML or XHTML document.
func IsMarkup(contentType string) bool {
	if contentType == "" {
		return false
	}
	mediaType, _, err := mime.ParseMediaType(contentType)
	if err != nil {
		mediaType = strings.ToLower(strings.TrimSpace(strings.SplitN(contentType, ";", 2)[0]))
	}
	return mediaType == "text/html" || mediaType == "application/xhtml+xml"
}
