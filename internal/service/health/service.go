package health

import (
	"context"
	"database/sql"
	"fmt"
	"sync"
	"time"

	"github.com/sony/gobreaker"
	"go.uber.org/zap"

	"github.com/seu-repo/lapeco-hr/internal/ports"
)

// Status represents the health status
type Status string

const (
	StatusHealthy   Status = "healthy"
	StatusUnhealthy Status = "unhealthy"
	StatusDegraded  Status = "degraded"
)

// CheckResult represents the result of a health check
type CheckResult struct {
	Name      string        `json:"name"`
	Status    Status        `json:"status"`
	Message   string        `json:"message,omitempty"`
	Duration  time.Duration `json:"duration_ms"`
	Timestamp time.Time     `json:"timestamp"`
}

// HealthResponse is the liveness payload.
type HealthResponse struct {
	Status    Status    `json:"status"`
	Version   string    `json:"version,omitempty"`
	Uptime    string    `json:"uptime,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}

// ReadyResponse is the readiness payload with one result per check.
type ReadyResponse struct {
	Ready     bool                   `json:"ready"`
	Status    Status                 `json:"status"`
	Timestamp time.Time              `json:"timestamp"`
	Checks    map[string]CheckResult `json:"checks"`
}

// Checker defines a health check function
type Checker func(ctx context.Context) CheckResult

// Connector is satisfied by message queue adapters that track their link.
type Connector interface {
	IsConnected() bool
}

// BreakerState reports the state of a circuit guarding a downstream.
type BreakerState interface {
	State() gobreaker.State
}

// Service handles health checks
type Service struct {
	startTime time.Time
	version   string
	timeout   time.Duration
	checkers  map[string]Checker
	log       *zap.Logger
	mu        sync.RWMutex
}

// Config holds health service configuration. Nil dependencies are skipped.
type Config struct {
	Version     string
	DB          *sql.DB
	Cache       ports.Cache
	Queue       interface{}
	Attachments BreakerState
	Timeout     time.Duration
}

// NewService creates a health service and registers checkers for every configured dependency.
func NewService(config *Config, log *zap.Logger) *Service {
	timeout := config.Timeout
	if timeout <= 0 {
		timeout = 5 * time.Second
	}

	s := &Service{
		startTime: time.Now(),
		version:   config.Version,
		timeout:   timeout,
		checkers:  make(map[string]Checker),
		log:       log,
	}

	if config.DB != nil {
		s.RegisterChecker("database", DatabaseChecker(config.DB, log))
	}
	if config.Cache != nil {
		s.RegisterChecker("cache", CacheChecker(config.Cache, log))
	}
	if q, ok := config.Queue.(Connector); ok {
		s.RegisterChecker("queue", QueueChecker(q))
	}
	if config.Attachments != nil {
		s.RegisterChecker("attachments", BreakerChecker("attachments", config.Attachments))
	}

	return s
}

// RegisterChecker registers a custom health checker
func (s *Service) RegisterChecker(name string, checker Checker) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.checkers[name] = checker
	s.log.Info("Registered health checker", zap.String("name", name))
}

// Health performs a basic liveness check
func (s *Service) Health(ctx context.Context) *HealthResponse {
	return &HealthResponse{
		Status:    StatusHealthy,
		Version:   s.version,
		Uptime:    time.Since(s.startTime).String(),
		Timestamp: time.Now(),
	}
}

// Ready runs every registered checker concurrently. Degraded checks keep
// the service ready; a single unhealthy one does not.
func (s *Service) Ready(ctx context.Context) *ReadyResponse {
	s.mu.RLock()
	checkers := make(map[string]Checker, len(s.checkers))
	for k, v := range s.checkers {
		checkers[k] = v
	}
	s.mu.RUnlock()

	results := make(map[string]CheckResult)
	var wg sync.WaitGroup
	var mu sync.Mutex

	for name, checker := range checkers {
		wg.Add(1)
		go func(name string, checker Checker) {
			defer wg.Done()

			checkCtx, cancel := context.WithTimeout(ctx, s.timeout)
			defer cancel()

			result := checker(checkCtx)
			result.Name = name

			mu.Lock()
			results[name] = result
			mu.Unlock()
		}(name, checker)
	}

	wg.Wait()

	overallStatus := StatusHealthy
	allReady := true

	for _, result := range results {
		if result.Status == StatusUnhealthy {
			overallStatus = StatusUnhealthy
			allReady = false
		} else if result.Status == StatusDegraded && overallStatus != StatusUnhealthy {
			overallStatus = StatusDegraded
		}
	}

	return &ReadyResponse{
		Ready:     allReady,
		Status:    overallStatus,
		Timestamp: time.Now(),
		Checks:    results,
	}
}

// DatabaseChecker pings db. A failed ping is unhealthy.
func DatabaseChecker(db *sql.DB, log *zap.Logger) Checker {
	return func(ctx context.Context) CheckResult {
		start := time.Now()
		result := CheckResult{Timestamp: start}

		err := db.PingContext(ctx)
		result.Duration = time.Since(start)

		if err != nil {
			result.Status = StatusUnhealthy
			result.Message = fmt.Sprintf("ping failed: %v", err)
			log.Warn("Database health check failed", zap.Error(err))
		} else {
			result.Status = StatusHealthy
			result.Message = "connection ok"
		}
		return result
	}
}

// CacheChecker reports a failing cache as degraded: the evaluation period
// is still served from the database.
func CacheChecker(cache ports.Cache, log *zap.Logger) Checker {
	return func(ctx context.Context) CheckResult {
		start := time.Now()
		result := CheckResult{Timestamp: start}

		err := cache.Ping()
		result.Duration = time.Since(start)

		if err != nil {
			result.Status = StatusDegraded
			result.Message = fmt.Sprintf("ping failed: %v", err)
			log.Warn("Cache health check failed", zap.Error(err))
		} else {
			result.Status = StatusHealthy
			result.Message = "connection ok"
		}
		return result
	}
}

// QueueChecker reports a disconnected queue as degraded. Generated-report
// events are best effort.
func QueueChecker(q Connector) Checker {
	return func(ctx context.Context) CheckResult {
		result := CheckResult{Timestamp: time.Now(), Status: StatusHealthy, Message: "connected"}
		if !q.IsConnected() {
			result.Status = StatusDegraded
			result.Message = "disconnected"
		}
		return result
	}
}

// BreakerChecker reports degraded unless the breaker is closed.
func BreakerChecker(name string, b BreakerState) Checker {
	return func(ctx context.Context) CheckResult {
		state := b.State()
		result := CheckResult{Timestamp: time.Now(), Status: StatusHealthy, Message: "circuit " + state.String()}
		if state != gobreaker.StateClosed {
			result.Status = StatusDegraded
		}
		return result
	}
}
