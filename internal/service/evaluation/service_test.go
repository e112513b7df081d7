package evaluation

import (
	"context"
	"errors"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/seu-repo/lapeco-hr/internal/adapter/queue"
	"github.com/seu-repo/lapeco-hr/internal/domain"
	"github.com/seu-repo/lapeco-hr/internal/mocks"
)

func newTestLogger() *zap.Logger {
	logger, _ := zap.NewDevelopment()
	return logger
}

func date(s string) time.Time {
	t, _ := time.Parse("2006-01-02", s)
	return t
}

func TestGet_NoPeriodIsInactive(t *testing.T) {
	// Arrange
	repo := &mocks.MockEvaluationPeriodRepository{}
	service := NewService(repo, mocks.NewMockCache(), time.Minute, nil, newTestLogger())

	// Act
	active, err := service.Get(context.Background())

	// Assert
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if active.IsActive || active.Period != nil {
		t.Errorf("expected inactive with no period, got %+v", active)
	}
}

func TestGet_CachesRepositoryRead(t *testing.T) {
	// Arrange
	repo := &mocks.MockEvaluationPeriodRepository{
		Period: &domain.EvaluationPeriod{Start: date("2024-06-01"), End: date("2024-06-30")},
	}
	cache := mocks.NewMockCache()
	service := NewService(repo, cache, time.Minute, nil, newTestLogger())
	ctx := context.Background()

	// Act
	first, err := service.Get(ctx)
	if err != nil {
		t.Fatalf("first get: %v", err)
	}
	second, err := service.Get(ctx)
	if err != nil {
		t.Fatalf("second get: %v", err)
	}

	// Assert
	if repo.Reads != 1 {
		t.Errorf("expected 1 repository read, got %d", repo.Reads)
	}
	if !first.IsActive || !second.IsActive {
		t.Error("expected active period")
	}
	if !second.Period.Start.Equal(date("2024-06-01")) {
		t.Errorf("unexpected cached start %v", second.Period.Start)
	}
}

func TestSet_InvalidPeriodPreservesPrevious(t *testing.T) {
	// Arrange
	previous := &domain.EvaluationPeriod{Start: date("2024-06-01"), End: date("2024-06-30")}
	repo := &mocks.MockEvaluationPeriodRepository{Period: previous}
	mq := mocks.NewMockMessageQueue()
	service := NewService(repo, mocks.NewMockCache(), time.Minute, mq, newTestLogger())
	ctx := context.Background()

	// Act
	err := service.Set(ctx, domain.EvaluationPeriod{Start: date("2024-07-31"), End: date("2024-07-01")})

	// Assert
	if !domain.IsValidationKind(err, domain.ValidationInvalidRange) {
		t.Fatalf("expected InvalidRange, got %v", err)
	}
	active, _ := service.Get(ctx)
	if !active.Period.Start.Equal(previous.Start) || !active.Period.End.Equal(previous.End) {
		t.Errorf("previous period should be kept, got %+v", active.Period)
	}
	if len(mq.GetPublishedMessages(queue.SubjectEvaluationPeriodChange)) != 0 {
		t.Error("no change event expected")
	}
}

func TestSet_MissingBound(t *testing.T) {
	repo := &mocks.MockEvaluationPeriodRepository{}
	service := NewService(repo, nil, time.Minute, nil, newTestLogger())

	err := service.Set(context.Background(), domain.EvaluationPeriod{Start: date("2024-07-01")})

	if !domain.IsValidationKind(err, domain.ValidationMissingField) {
		t.Fatalf("expected MissingField, got %v", err)
	}
	if repo.Period != nil {
		t.Error("nothing should be stored")
	}
}

func TestSet_InvalidatesCacheAndPublishes(t *testing.T) {
	// Arrange
	repo := &mocks.MockEvaluationPeriodRepository{}
	cache := mocks.NewMockCache()
	mq := mocks.NewMockMessageQueue()
	service := NewService(repo, cache, time.Minute, mq, newTestLogger())
	ctx := context.Background()

	if _, err := service.Get(ctx); err != nil {
		t.Fatalf("warm cache: %v", err)
	}

	// Act
	err := service.Set(ctx, domain.EvaluationPeriod{Start: date("2024-07-01"), End: date("2024-07-31")})

	// Assert
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if cache.Has(cacheKey) {
		t.Error("cache should be invalidated")
	}
	active, _ := service.Get(ctx)
	if !active.IsActive {
		t.Error("expected active after set")
	}

	var event ChangeEvent
	if !mq.DecodeLast(queue.SubjectEvaluationPeriodChange, &event) {
		t.Fatal("expected change event")
	}
	if event.Action != "set" || event.Period == nil {
		t.Errorf("unexpected event %+v", event)
	}
}

func TestClear_DeactivatesPeriod(t *testing.T) {
	// Arrange
	repo := &mocks.MockEvaluationPeriodRepository{
		Period: &domain.EvaluationPeriod{Start: date("2024-06-01"), End: date("2024-06-30")},
	}
	mq := mocks.NewMockMessageQueue()
	service := NewService(repo, mocks.NewMockCache(), time.Minute, mq, newTestLogger())
	ctx := context.Background()

	// Act
	err := service.Clear(ctx)

	// Assert
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	active, _ := service.Get(ctx)
	if active.IsActive || active.Period != nil {
		t.Errorf("expected inactive after clear, got %+v", active)
	}
	var event ChangeEvent
	if !mq.DecodeLast(queue.SubjectEvaluationPeriodChange, &event) || event.Action != "clear" {
		t.Errorf("expected clear event, got %+v", event)
	}
}

func TestGet_RepositoryError(t *testing.T) {
	boom := errors.New("db down")
	repo := &mocks.MockEvaluationPeriodRepository{
		GetActiveFunc: func(ctx context.Context) (*domain.EvaluationPeriod, error) {
			return nil, boom
		},
	}
	service := NewService(repo, mocks.NewMockCache(), time.Minute, nil, newTestLogger())

	_, err := service.Get(context.Background())

	if !errors.Is(err, boom) {
		t.Fatalf("expected repository error, got %v", err)
	}
}
