package observability

import (
	"context"
	"io"
	"net/http"
	"os"
	"strconv"
	"strings"
	"sync"
	"time"

	"gorm.io/gorm"

	"github.com/yungbote/deckgen-backend/internal/platform/logger"
)

type Metrics struct {
	apiRequests *CounterVec
	apiLatency  *HistogramVec
	apiInflight *Gauge

	generations       *CounterVec
	stageLatency      *HistogramVec
	slidesRendered    *CounterVec
	repairs           *CounterVec
	persistFailures   *CounterVec
	completions       *CounterVec
	completionLatency *HistogramVec
	previews          *CounterVec

	dbStats *GaugeVec
}

var (
	initOnce sync.Once
	instance *Metrics
)

func Enabled() bool {
	v := strings.TrimSpace(os.Getenv("METRICS_ENABLED"))
	if v == "" {
		return false
	}
	return strings.EqualFold(v, "true") || v == "1" || strings.EqualFold(v, "yes")
}

// Current returns the process-wide metrics, or nil when metrics are off.
// Every method is safe to call on a nil *Metrics.
func Current() *Metrics {
	return instance
}

// Init installs the process-wide metrics when METRICS_ENABLED is set.
func Init(log *logger.Logger) *Metrics {
	if !Enabled() {
		return nil
	}
	initOnce.Do(func() {
		instance = New()
		if log != nil {
			log.Info("metrics enabled")
		}
	})
	return instance
}

// New builds an unregistered Metrics value.
func New() *Metrics {
	return &Metrics{
		apiRequests: NewCounterVec("deck_api_requests_total", "Total API requests by method/route/status.", []string{"method", "route", "status"}),
		apiLatency: NewHistogramVec(
			"deck_api_request_duration_seconds",
			"API request latency in seconds by method/route/status.",
			[]string{"method", "route", "status"},
			[]float64{0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2, 5, 10, 30},
		),
		apiInflight: NewGauge("deck_api_inflight_requests", "In-flight API requests."),
		generations: NewCounterVec("deck_generations_total", "Presentation generations by source/outcome.", []string{"source", "outcome"}),
		stageLatency: NewHistogramVec(
			"deck_stage_duration_seconds",
			"Pipeline stage duration in seconds by stage/status.",
			[]string{"stage", "status"},
			[]float64{0.001, 0.005, 0.01, 0.05, 0.1, 0.25, 0.5, 1, 2, 5, 30, 120},
		),
		slidesRendered:  NewCounterVec("deck_slides_rendered_total", "Rendered slides by layout kind.", []string{"kind"}),
		repairs:         NewCounterVec("deck_plan_repairs_total", "Plan normalization repairs by stage/code.", []string{"stage", "code"}),
		persistFailures: NewCounterVec("deck_persist_failures_total", "Persistence failures by kind.", []string{"kind"}),
		completions:     NewCounterVec("deck_completion_requests_total", "Completion requests by model/status.", []string{"model", "status"}),
		completionLatency: NewHistogramVec(
			"deck_completion_request_duration_seconds",
			"Completion request latency in seconds by model/status.",
			[]string{"model", "status"},
			[]float64{0.1, 0.25, 0.5, 1, 2, 5, 10, 30, 60, 120},
		),
		previews: NewCounterVec("deck_previews_total", "Preview renders by outcome.", []string{"outcome"}),
		dbStats:  NewGaugeVec("deck_catalog_db_stats", "Catalog database pool stats.", []string{"stat"}),
	}
}

func scrapeInterval() time.Duration {
	v := strings.TrimSpace(os.Getenv("METRICS_SCRAPE_INTERVAL_SECONDS"))
	n, err := strconv.Atoi(v)
	if err != nil || n <= 0 {
		return 10 * time.Second
	}
	return time.Duration(n) * time.Second
}

func (m *Metrics) WriteHTTP(w http.ResponseWriter, r *http.Request) {
	if m == nil {
		w.WriteHeader(http.StatusServiceUnavailable)
		return
	}
	w.Header().Set("Content-Type", "text/plain; version=0.0.4")
	_ = m.WritePrometheus(w)
}

func (m *Metrics) WritePrometheus(w io.Writer) error {
	if m == nil {
		return nil
	}
	writers := []interface{ WritePrometheus(io.Writer) error }{
		m.apiRequests, m.apiLatency, m.apiInflight,
		m.generations, m.stageLatency, m.slidesRendered, m.repairs, m.persistFailures,
		m.completions, m.completionLatency, m.previews, m.dbStats,
	}
	for _, mw := range writers {
		if err := mw.WritePrometheus(w); err != nil {
			return err
		}
	}
	return nil
}

func (m *Metrics) ObserveAPI(method, route, status string, dur time.Duration) {
	if m == nil {
		return
	}
	if method == "" {
		method = "UNKNOWN"
	}
	if status == "" {
		status = "0"
	}
	m.apiRequests.Inc(method, route, status)
	m.apiLatency.Observe(dur.Seconds(), method, route, status)
}

func (m *Metrics) ApiInflightInc() {
	if m == nil {
		return
	}
	m.apiInflight.Inc()
}

func (m *Metrics) ApiInflightDec() {
	if m == nil {
		return
	}
	m.apiInflight.Dec()
}

// ObserveGeneration counts one end-to-end generation. source is "text" or
// "plan"; outcome is "success", "fallback" or a persistence failure kind.
func (m *Metrics) ObserveGeneration(source, outcome string) {
	if m == nil {
		return
	}
	m.generations.Inc(source, outcome)
}

func (m *Metrics) ObserveStage(stage, status string, dur time.Duration) {
	if m == nil {
		return
	}
	m.stageLatency.Observe(dur.Seconds(), stage, status)
}

func (m *Metrics) IncSlideRendered(kind string) {
	if m == nil {
		return
	}
	m.slidesRendered.Inc(kind)
}

func (m *Metrics) IncRepair(stage, code string) {
	if m == nil {
		return
	}
	m.repairs.Inc(stage, code)
}

func (m *Metrics) IncPersistFailure(kind string) {
	if m == nil {
		return
	}
	m.persistFailures.Inc(kind)
}

func (m *Metrics) ObserveCompletion(model, status string, dur time.Duration) {
	if m == nil {
		return
	}
	m.completions.Inc(model, status)
	m.completionLatency.Observe(dur.Seconds(), model, status)
}

func (m *Metrics) IncPreview(outcome string) {
	if m == nil {
		return
	}
	m.previews.Inc(outcome)
}

// StartDBCollector samples the catalog connection pool until ctx is done.
func (m *Metrics) StartDBCollector(ctx context.Context, log *logger.Logger, db *gorm.DB) {
	if m == nil || db == nil {
		return
	}
	interval := scrapeInterval()
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				sqlDB, err := db.DB()
				if err != nil {
					if log != nil {
						log.Warn("metrics: catalog db stats unavailable", "error", err)
					}
					continue
				}
				stats := sqlDB.Stats()
				m.dbStats.Set(float64(stats.OpenConnections), "open_connections")
				m.dbStats.Set(float64(stats.InUse), "in_use")
				m.dbStats.Set(float64(stats.Idle), "idle")
				m.dbStats.Set(float64(stats.WaitCount), "wait_count")
				m.dbStats.Set(stats.WaitDuration.Seconds(), "wait_duration_seconds")
			}
		}
	}()
}
