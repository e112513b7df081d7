// Package bootstrap wires configuration into the adapters and services
// shared by the HTTP server and the command line tool.
package bootstrap

import (
	"context"
	"fmt"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/seu-repo/lapeco-hr/internal/adapter/attachment"
	"github.com/seu-repo/lapeco-hr/internal/adapter/cache"
	"github.com/seu-repo/lapeco-hr/internal/adapter/queue"
	"github.com/seu-repo/lapeco-hr/internal/adapter/render"
	"github.com/seu-repo/lapeco-hr/internal/adapter/storage/postgres"
	"github.com/seu-repo/lapeco-hr/internal/adapter/vault"
	"github.com/seu-repo/lapeco-hr/internal/domain"
	"github.com/seu-repo/lapeco-hr/internal/infrastructure/circuitbreaker"
	"github.com/seu-repo/lapeco-hr/internal/ports"
	"github.com/seu-repo/lapeco-hr/internal/service/evaluation"
	"github.com/seu-repo/lapeco-hr/internal/service/performance"
	"github.com/seu-repo/lapeco-hr/internal/service/report"
	"github.com/seu-repo/lapeco-hr/pkg/config"
)

// Container holds every long-lived dependency of the process.
type Container struct {
	Config      *config.Config
	DB          *gorm.DB
	Cache       ports.Cache
	Queue       queue.MessageQueue
	Attachments *circuitbreaker.HTTPClient
	Payroll     *postgres.PayrollRepository

	Reports     *report.Service
	Evaluation  ports.EvaluationService
	Performance ports.PerformanceService

	log *zap.Logger
}

// Options trims what New connects to. The CLI runs without a broker.
type Options struct {
	SkipQueue bool
}

// New connects every dependency and builds the services. The queue is optional.
func New(ctx context.Context, cfg *config.Config, opts Options, log *zap.Logger) (*Container, error) {
	if cfg.Vault.Enabled {
		if err := resolveSecrets(ctx, cfg, log); err != nil {
			return nil, err
		}
	}

	db, err := postgres.NewConnection(cfg.Database.URL, postgres.PoolConfig{
		MaxIdleConns:    cfg.Database.MaxIdleConns,
		MaxOpenConns:    cfg.Database.MaxOpenConns,
		ConnMaxLifetime: cfg.Database.ConnMaxLifetime,
		LogSQL:          cfg.Database.LogQueries,
	}, log)
	if err != nil {
		return nil, fmt.Errorf("connect database: %w", err)
	}

	if cfg.Database.AutoMigrate {
		if err := postgres.RunMigrations(db); err != nil {
			postgres.Close(db)
			return nil, fmt.Errorf("run migrations: %w", err)
		}
	}

	c := &Container{
		Config: cfg,
		DB:     db,
		Cache:  cache.New(cfg.Cache.RedisURL, log),
		log:    log,
	}

	if cfg.Queue.Enabled && !opts.SkipQueue {
		mq, err := queue.New(cfg.Queue.Driver, cfg.Queue.URL, log)
		if err != nil {
			log.Warn("Message queue unavailable, events will not be published", zap.Error(err))
		} else {
			c.Queue = mq
		}
	}

	renderer, err := render.New(cfg.Reports.Format, cfg.Reports.CompanyName)
	if err != nil {
		c.Close()
		return nil, err
	}

	catalog, err := Catalog(cfg.Reports.CatalogPath)
	if err != nil {
		c.Close()
		return nil, err
	}

	c.Attachments = circuitbreaker.NewHTTPClientWithSettings(
		cfg.Attachments.Timeout,
		circuitbreaker.FromConfig("attachments", cfg.CircuitBreaker),
		log,
	)
	fetcher := attachment.NewClient(attachment.Config{
		BaseURL:  cfg.Attachments.BaseURL,
		Token:    cfg.Attachments.Token,
		MaxBytes: cfg.Attachments.MaxBytes,
	}, c.Attachments, log)

	c.Payroll = postgres.NewPayrollRepository(db, log)
	training := postgres.NewTrainingRepository(db, log)
	kras := postgres.NewPerformanceRepository(db, log)

	retriever := report.NewAttachmentRetriever(fetcher, log)
	handlers := report.NewHandlerTable(report.Sources{
		Employees:   postgres.NewEmployeeRepository(db, log),
		Attendance:  postgres.NewAttendanceRepository(db, log),
		Leaves:      postgres.NewLeaveRepository(db, log),
		Payroll:     c.Payroll,
		Applicants:  postgres.NewApplicantRepository(db, log),
		Training:    training,
		Performance: kras,
	}, retriever)

	registry, err := report.BuildRegistry(catalog, handlers)
	if err != nil {
		c.Close()
		return nil, fmt.Errorf("build report registry: %w", err)
	}

	c.Reports = report.NewService(registry, report.NewValidator(training), renderer, retriever, c.Queue, log)
	c.Evaluation = evaluation.NewService(
		postgres.NewEvaluationPeriodRepository(db, log),
		c.Cache,
		cfg.Cache.EvaluationPeriodTTL,
		c.Queue,
		log,
	)
	c.Performance = performance.NewService(kras, c.Payroll, log)

	log.Info("Report engine ready",
		zap.Int("reports", registry.Len()),
		zap.String("format", cfg.Reports.Format),
	)
	return c, nil
}

// Catalog returns the built-in catalog overlaid with the entries of the
// optional YAML file at path.
func Catalog(path string) ([]domain.ReportMeta, error) {
	catalog := report.DefaultCatalog()
	if path == "" {
		return catalog, nil
	}
	entries, err := report.LoadCatalog(path)
	if err != nil {
		return nil, err
	}
	return report.MergeCatalog(catalog, entries), nil
}

func resolveSecrets(ctx context.Context, cfg *config.Config, log *zap.Logger) error {
	sm, err := vault.NewSecretManager(cfg.Vault.Address, cfg.Vault.Token, cfg.Vault.Mount, cfg.Vault.Prefix)
	if err != nil {
		return fmt.Errorf("vault client: %w", err)
	}

	dbURL, err := sm.GetDatabaseURL(ctx)
	if err != nil {
		return err
	}
	cfg.Database.URL = dbURL

	if token, err := sm.GetAttachmentToken(ctx); err == nil {
		cfg.Attachments.Token = token
	} else {
		log.Warn("No attachment token in vault, keeping configured value", zap.Error(err))
	}

	log.Info("Secrets loaded from vault", zap.String("address", cfg.Vault.Address))
	return nil
}

// Close releases the queue, cache and database.
func (c *Container) Close() {
	if c.Queue != nil {
		if err := c.Queue.Close(); err != nil {
			c.log.Warn("Error closing message queue", zap.Error(err))
		}
	}
	if c.Cache != nil {
		if err := c.Cache.Close(); err != nil {
			c.log.Warn("Error closing cache", zap.Error(err))
		}
	}
	if c.DB != nil {
		if err := postgres.Close(c.DB); err != nil {
			c.log.Warn("Error closing database", zap.Error(err))
		}
	}
}
