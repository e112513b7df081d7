package evaluation

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"go.uber.org/zap"

	"github.com/seu-repo/lapeco-hr/internal/adapter/queue"
	"github.com/seu-repo/lapeco-hr/internal/domain"
	"github.com/seu-repo/lapeco-hr/internal/observability/telemetry"
	"github.com/seu-repo/lapeco-hr/internal/ports"
	"github.com/seu-repo/lapeco-hr/internal/service/aggregate"
)

const cacheKey = "evaluation:active_period"

// ChangeEvent is published whenever the period is set or cleared.
type ChangeEvent struct {
	Action string                   `json:"action"`
	Period *domain.EvaluationPeriod `json:"period"`
	At     time.Time                `json:"at"`
}

type cachedPeriod struct {
	Period *domain.EvaluationPeriod `json:"period"`
}

// Service manages the active evaluation period.
type Service struct {
	repo  ports.EvaluationPeriodRepository
	cache ports.Cache
	ttl   time.Duration
	mq    queue.MessageQueue
	log   *zap.Logger
}

// NewService creates an evaluation period service. A nil cache disables caching.
func NewService(repo ports.EvaluationPeriodRepository, cache ports.Cache, ttl time.Duration, mq queue.MessageQueue, log *zap.Logger) ports.EvaluationService {
	return &Service{
		repo:  repo,
		cache: cache,
		ttl:   ttl,
		mq:    mq,
		log:   log,
	}
}

// Get returns the active period, served from cache when possible.
func (s *Service) Get(ctx context.Context) (domain.ActivePeriod, error) {
	if s.cache != nil {
		if raw, err := s.cache.Get(ctx, cacheKey); err == nil {
			var cached cachedPeriod
			if err := json.Unmarshal([]byte(raw), &cached); err == nil {
				return aggregate.ResolvePeriod(cached.Period), nil
			}
			s.log.Warn("Discarding unreadable cached evaluation period")
		} else if !errors.Is(err, ports.ErrCacheMiss) {
			s.log.Warn("Evaluation period cache read failed", zap.Error(err))
		}
	}

	period, err := s.repo.GetActive(ctx)
	if err != nil {
		return domain.ActivePeriod{}, err
	}

	if s.cache != nil {
		if err := s.cache.Set(ctx, cacheKey, cachedPeriod{Period: period}, s.ttl); err != nil {
			s.log.Warn("Failed to cache evaluation period", zap.Error(err))
		}
	}

	return aggregate.ResolvePeriod(period), nil
}

// Set validates period and replaces the stored one. An invalid period
// leaves the stored value untouched.
func (s *Service) Set(ctx context.Context, period domain.EvaluationPeriod) error {
	if err := aggregate.ValidatePeriod(period); err != nil {
		telemetry.EvaluationPeriodChangesTotal.WithLabelValues("set", "rejected").Inc()
		return err
	}

	if err := s.repo.SetActive(ctx, &period); err != nil {
		telemetry.EvaluationPeriodChangesTotal.WithLabelValues("set", "error").Inc()
		return err
	}

	s.changed(ctx, "set", &period)
	s.log.Info("Evaluation period set",
		zap.Time("start", period.Start),
		zap.Time("end", period.End),
	)
	return nil
}

// Clear removes the active period.
func (s *Service) Clear(ctx context.Context) error {
	if err := s.repo.SetActive(ctx, nil); err != nil {
		telemetry.EvaluationPeriodChangesTotal.WithLabelValues("clear", "error").Inc()
		return err
	}

	s.changed(ctx, "clear", nil)
	s.log.Info("Evaluation period cleared")
	return nil
}

func (s *Service) changed(ctx context.Context, action string, period *domain.EvaluationPeriod) {
	telemetry.EvaluationPeriodChangesTotal.WithLabelValues(action, "ok").Inc()

	if s.cache != nil {
		if err := s.cache.Delete(ctx, cacheKey); err != nil {
			s.log.Warn("Failed to invalidate evaluation period cache", zap.Error(err))
		}
	}

	event := ChangeEvent{Action: action, Period: period, At: time.Now().UTC()}
	if err := queue.PublishJSON(s.mq, queue.SubjectEvaluationPeriodChange, event); err != nil {
		s.log.Warn("Failed to publish evaluation period change", zap.Error(err))
	}
}
