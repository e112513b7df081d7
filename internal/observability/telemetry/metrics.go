package telemetry

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	ReportsGeneratedTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "lapeco_reports_generated_total",
		Help: "Report generation requests by report, result kind and outcome",
	}, []string{"report", "kind", "outcome"})

	ReportGenerationLatency = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "lapeco_report_generation_seconds",
		Help:    "Time spent generating a report",
		Buckets: prometheus.DefBuckets,
	}, []string{"report"})

	// Registry/handler drift. Anything above zero is a deployment bug.
	ReportDispatchFaultsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "lapeco_report_dispatch_faults_total",
		Help: "Reports whose handler could not be resolved",
	}, []string{"report"})

	AttachmentRetrievalsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "lapeco_attachment_retrievals_total",
		Help: "Leave attachment retrievals by outcome",
	}, []string{"outcome"})

	EvaluationPeriodChangesTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "lapeco_evaluation_period_changes_total",
		Help: "Evaluation period set/clear operations",
	}, []string{"action", "outcome"})

	DatabaseLatency = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "lapeco_database_latency_seconds",
		Help:    "Latency of repository queries",
		Buckets: prometheus.DefBuckets,
	})
)
