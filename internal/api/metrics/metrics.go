// Package metrics defines and registers all custom Prometheus metrics for the
// claims processing API. It is the single source of truth for metric names,
// labels, and help strings.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "claims"

// DocumentsUploadedTotal counts accepted claim document uploads.
// Label:
//   - incident_type: the declared incident classification (e.g. "VOL")
var DocumentsUploadedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "documents_uploaded_total",
		Help:      "Total number of claim documents uploaded, by incident type.",
	},
	[]string{"incident_type"},
)

// DocumentsProcessedTotal counts processing runs by outcome.
// Labels:
//   - incident_type: the document's incident classification
//   - status: "completed" or "failed"
var DocumentsProcessedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "documents_processed_total",
		Help:      "Total number of document processing runs, by incident type and outcome.",
	},
	[]string{"incident_type", "status"},
)

// ProcessingErrorsTotal counts processing failures by pipeline stage.
// Label:
//   - stage: "extraction", "generation", or "persist"
var ProcessingErrorsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "processing_errors_total",
		Help:      "Total number of processing failures, by pipeline stage.",
	},
	[]string{"stage"},
)

// ProcessingDuration measures how long a full processing run takes, from the
// process request to the terminal status.
var ProcessingDuration = promauto.NewHistogramVec(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "processing_duration_seconds",
		Help:      "Duration of document processing from request to terminal status.",
		Buckets:   prometheus.DefBuckets,
	},
	[]string{"incident_type"},
)
