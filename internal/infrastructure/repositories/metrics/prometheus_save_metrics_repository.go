// Package metrics exposes Prometheus metrics for the save pipeline.
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/rios0rios0/notesync/internal/domain/repositories"
)

// PrometheusSaveMetricsRepository records save metrics on its own registry.
type PrometheusSaveMetricsRepository struct {
	registry *prometheus.Registry

	savesTotal         *prometheus.CounterVec
	saveDuration       *prometheus.HistogramVec
	savesRejected      prometheus.Counter
	assetsUploaded     prometheus.Counter
	assetBytesUploaded prometheus.Counter
}

// NewPrometheusSaveMetricsRepository creates and registers the save metrics.
func NewPrometheusSaveMetricsRepository() *PrometheusSaveMetricsRepository {
	registry := prometheus.NewRegistry()
	factory := promauto.With(registry)

	return &PrometheusSaveMetricsRepository{
		registry: registry,
		savesTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "notesync_saves_total",
				Help: "Total number of save attempts",
			},
			[]string{"outcome", "error_kind"},
		),
		saveDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "notesync_save_duration_seconds",
				Help:    "Save attempt duration in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"outcome"},
		),
		savesRejected: factory.NewCounter(
			prometheus.CounterOpts{
				Name: "notesync_saves_rejected_total",
				Help: "Save requests dropped because another save was in flight",
			},
		),
		assetsUploaded: factory.NewCounter(
			prometheus.CounterOpts{
				Name: "notesync_assets_uploaded_total",
				Help: "Total number of pasted assets uploaded",
			},
		),
		assetBytesUploaded: factory.NewCounter(
			prometheus.CounterOpts{
				Name: "notesync_asset_bytes_uploaded_total",
				Help: "Total bytes of pasted assets uploaded",
			},
		),
	}
}

var _ repositories.SaveMetricsRepository = (*PrometheusSaveMetricsRepository)(nil)

func (r *PrometheusSaveMetricsRepository) SaveFinished(outcome string, errKind string, duration time.Duration) {
	r.savesTotal.WithLabelValues(outcome, errKind).Inc()
	r.saveDuration.WithLabelValues(outcome).Observe(duration.Seconds())
}

func (r *PrometheusSaveMetricsRepository) SaveRejected() {
	r.savesRejected.Inc()
}

func (r *PrometheusSaveMetricsRepository) AssetUploaded(size int) {
	r.assetsUploaded.Inc()
	r.assetBytesUploaded.Add(float64(size))
}

// Registry returns the registry the metrics live on.
func (r *PrometheusSaveMetricsRepository) Registry() *prometheus.Registry {
	return r.registry
}

// Handler serves the metrics in the Prometheus exposition format.
func (r *PrometheusSaveMetricsRepository) Handler() http.Handler {
	return promhttp.HandlerFor(r.registry, promhttp.HandlerOpts{})
}
