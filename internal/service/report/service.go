package report

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.uber.org/zap"

	"github.com/seu-repo/lapeco-hr/internal/adapter/queue"
	"github.com/seu-repo/lapeco-hr/internal/domain"
	"github.com/seu-repo/lapeco-hr/internal/observability/telemetry"
	"github.com/seu-repo/lapeco-hr/internal/ports"
)

var tracer = otel.Tracer("github.com/seu-repo/lapeco-hr/internal/service/report")

// GeneratedEvent is published after every successful generation.
type GeneratedEvent struct {
	EventID   string            `json:"event_id"`
	ReportID  domain.ReportID   `json:"report_id"`
	Kind      domain.ResultKind `json:"kind"`
	Requester string            `json:"requester,omitempty"`
	Filename  string            `json:"filename"`
	Size      int               `json:"size"`
	At        time.Time         `json:"at"`
}

// Service dispatches generation requests to the registered handlers.
type Service struct {
	registry    *Registry
	validator   *Validator
	renderer    ports.DocumentRenderer
	attachments *AttachmentRetriever
	mq          queue.MessageQueue
	log         *zap.Logger
}

// NewService creates the report dispatcher.
func NewService(
	registry *Registry,
	validator *Validator,
	renderer ports.DocumentRenderer,
	attachments *AttachmentRetriever,
	mq queue.MessageQueue,
	log *zap.Logger,
) *Service {
	return &Service{
		registry:    registry,
		validator:   validator,
		renderer:    renderer,
		attachments: attachments,
		mq:          mq,
		log:         log,
	}
}

// Catalog lists the registered reports in catalog order.
func (s *Service) Catalog() []domain.ReportMeta {
	return s.registry.List()
}

// Generate validates req, runs the matching handler and returns its output.
func (s *Service) Generate(ctx context.Context, req domain.GenerationRequest) (*domain.GenerationResult, error) {
	ctx, span := tracer.Start(ctx, "report.Generate")
	defer span.End()
	span.SetAttributes(attribute.String("report.id", string(req.ReportID)))

	start := time.Now()
	result, err := s.generate(ctx, req)
	telemetry.ReportGenerationLatency.WithLabelValues(string(req.ReportID)).Observe(time.Since(start).Seconds())

	if err != nil {
		outcome := classify(err)
		telemetry.ReportsGeneratedTotal.WithLabelValues(string(req.ReportID), "", outcome).Inc()
		span.RecordError(err)
		span.SetStatus(codes.Error, outcome)
		if outcome == "error" {
			s.log.Error("Report generation failed",
				zap.String("report_id", string(req.ReportID)),
				zap.Error(err),
			)
		} else {
			s.log.Info("Report request rejected",
				zap.String("report_id", string(req.ReportID)),
				zap.String("outcome", outcome),
				zap.Error(err),
			)
		}
		return nil, err
	}

	telemetry.ReportsGeneratedTotal.WithLabelValues(string(req.ReportID), string(result.Kind), "ok").Inc()
	span.SetAttributes(
		attribute.String("report.kind", string(result.Kind)),
		attribute.Int("report.size", len(result.Data)),
	)
	s.log.Info("Report generated",
		zap.String("report_id", string(req.ReportID)),
		zap.String("kind", string(result.Kind)),
		zap.Int("size", len(result.Data)),
		zap.Duration("elapsed", time.Since(start)),
	)

	event := GeneratedEvent{
		EventID:   uuid.NewString(),
		ReportID:  result.ReportID,
		Kind:      result.Kind,
		Requester: req.Requester,
		Filename:  result.Filename,
		Size:      len(result.Data),
		At:        time.Now().UTC(),
	}
	if err := queue.PublishJSON(s.mq, queue.SubjectReportGenerated, event); err != nil {
		s.log.Warn("Failed to publish report event", zap.String("report_id", string(req.ReportID)), zap.Error(err))
	}

	return result, nil
}

func (s *Service) generate(ctx context.Context, req domain.GenerationRequest) (*domain.GenerationResult, error) {
	def, err := s.registry.Lookup(req.ReportID)
	if err != nil {
		return nil, err
	}

	var params domain.ValidatedParams
	if def.Meta.RequiresParams {
		params, err = s.validator.Validate(ctx, def.Meta.Params, req.Params)
		if err != nil {
			return nil, err
		}
	}
	if !params.Empty() {
		s.log.Debug("Report parameters validated",
			zap.String("report_id", string(def.Meta.ID)),
			zap.String("params_kind", string(params.Kind)),
		)
	}
	in := Input{Params: params, Requester: req.Requester}

	if def.Handler == nil {
		telemetry.ReportDispatchFaultsTotal.WithLabelValues(string(def.Meta.ID)).Inc()
		s.log.Error("Report has no handler",
			zap.String("report_id", string(def.Meta.ID)),
			zap.String("handler_key", def.Meta.HandlerKey),
			zap.String("fault", "internal_consistency"),
		)
		return nil, fmt.Errorf("report %q: %w", def.Meta.ID, domain.ErrUnknownHandler)
	}

	switch h := def.Handler.(type) {
	case Synthesizer:
		return s.synthesize(ctx, def.Meta, h, in)
	case Retriever:
		blob, err := h.Retrieve(ctx, in)
		if err != nil {
			return nil, err
		}
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		return &domain.GenerationResult{
			ReportID:    def.Meta.ID,
			Kind:        domain.ResultBinary,
			ContentType: blob.ContentType,
			Filename:    blob.Filename,
			Data:        blob.Data,
		}, nil
	default:
		telemetry.ReportDispatchFaultsTotal.WithLabelValues(string(def.Meta.ID)).Inc()
		s.log.Error("Report handler has unsupported kind",
			zap.String("report_id", string(def.Meta.ID)),
			zap.String("handler_kind", string(def.Handler.Kind())),
			zap.String("fault", "internal_consistency"),
		)
		return nil, fmt.Errorf("report %q: %w", def.Meta.ID, domain.ErrUnknownHandler)
	}
}

func (s *Service) synthesize(ctx context.Context, meta domain.ReportMeta, h Synthesizer, in Input) (*domain.GenerationResult, error) {
	collectCtx, span := tracer.Start(ctx, "report.Collect")
	data, err := h.Collect(collectCtx, in)
	span.End()
	if err != nil {
		return nil, fmt.Errorf("collect %s: %w", meta.ID, err)
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	doc, err := h.Synthesize(data, in)
	if err != nil {
		return nil, fmt.Errorf("synthesize %s: %w", meta.ID, err)
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	out, err := s.renderer.Render(doc)
	if err != nil {
		return nil, fmt.Errorf("render %s: %w", meta.ID, err)
	}

	return &domain.GenerationResult{
		ReportID:    meta.ID,
		Kind:        domain.ResultDocument,
		ContentType: s.renderer.ContentType(),
		Filename:    Filename(meta.ID, in.Params, s.renderer.Extension()),
		Data:        out,
	}, nil
}

// RetrieveAttachment fetches a leave attachment outside the catalog flow.
func (s *Service) RetrieveAttachment(ctx context.Context, leaveID string) (*domain.Blob, error) {
	ctx, span := tracer.Start(ctx, "report.RetrieveAttachment")
	defer span.End()
	span.SetAttributes(attribute.String("leave.id", leaveID))

	blob, err := s.attachments.Fetch(ctx, leaveID)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, classify(err))
		return nil, err
	}
	return blob, nil
}

// Filename derives a stable download name from the report and its params.
func Filename(id domain.ReportID, params domain.ValidatedParams, ext string) string {
	name := string(id)
	switch params.Kind {
	case domain.ParamsDateRange:
		if params.Range != nil {
			name += "_" + params.Range.Start.Format(dateLayout) + "_" + params.Range.End.Format(dateLayout)
		}
	case domain.ParamsProgramSelector:
		name += "_" + params.ProgramID
	case domain.ParamsLeaveSelector:
		name += "_" + params.LeaveID
	}
	if ext == "" {
		return name
	}
	return name + "." + ext
}

func classify(err error) string {
	var ve *domain.ValidationError
	var re *domain.RetrievalError
	switch {
	case errors.As(err, &ve):
		return "invalid_params"
	case errors.Is(err, domain.ErrUnknownReport):
		return "unknown_report"
	case errors.Is(err, domain.ErrMissingReference):
		return "missing_reference"
	case errors.Is(err, domain.ErrNotFound):
		return "not_found"
	case errors.As(err, &re):
		return "retrieval_error"
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return "canceled"
	default:
		return "error"
	}
}
