// Package metrics provides Prometheus metrics for the Reelhouse server.
package metrics

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"strconv"
	"time"
)

var (
	httpRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "reelhouse_http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	httpRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "reelhouse_http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path"},
	)

	directoriesCreatedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "reelhouse_directories_created_total",
			Help: "Directories created by template expansion, shot growth and asset provisioning",
		},
		[]string{"source"},
	)

	snapshotsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "reelhouse_snapshots_total",
			Help: "File lifecycle operations",
		},
		[]string{"action", "status"},
	)

	snapshotBytes = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "reelhouse_snapshot_bytes_total",
			Help: "Bytes copied between active and history files",
		},
	)

	indexScanDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "reelhouse_index_scan_duration_seconds",
			Help:    "Time to walk a project tree and classify category homes",
			Buckets: prometheus.DefBuckets,
		},
	)

	indexHomes = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "reelhouse_index_homes",
			Help: "Category homes found by the last scan of a project",
		},
		[]string{"project"},
	)

	janitorRunsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "reelhouse_janitor_runs_total",
			Help: "Hidden folder repair runs",
		},
		[]string{"trigger", "status"},
	)

	sessionsOpen = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "reelhouse_sessions_open",
			Help: "Project sessions held in memory",
		},
	)
)

// Handler serves the Prometheus registry on a fiber route.
func Handler() fiber.Handler {
	return adaptor.HTTPHandler(promhttp.Handler())
}

// Middleware records count and duration of every request by route pattern.
func Middleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		err := c.Next()
		path := c.Route().Path
		status := c.Response().StatusCode()
		if err != nil {
			if e, ok := err.(*fiber.Error); ok {
				status = e.Code
			} else {
				status = fiber.StatusInternalServerError
			}
		}
		RecordHTTPRequest(c.Method(), path, status, time.Since(start))
		return err
	}
}

func RecordHTTPRequest(method, path string, status int, duration time.Duration) {
	httpRequestsTotal.WithLabelValues(method, path, strconv.Itoa(status)).Inc()
	httpRequestDuration.WithLabelValues(method, path).Observe(duration.Seconds())
}

// RecordDirectoriesCreated adds count created directories for source
// (template, shots, assets, repair).
func RecordDirectoriesCreated(source string, count int) {
	if count > 0 {
		directoriesCreatedTotal.WithLabelValues(source).Add(float64(count))
	}
}

func RecordSnapshot(action string, success bool, bytes int64) {
	status := "success"
	if !success {
		status = "error"
	}
	snapshotsTotal.WithLabelValues(action, status).Inc()
	if success && bytes > 0 {
		snapshotBytes.Add(float64(bytes))
	}
}

func RecordIndexScan(project string, homes int, duration time.Duration) {
	indexScanDuration.Observe(duration.Seconds())
	indexHomes.WithLabelValues(project).Set(float64(homes))
}

func RecordJanitorRun(forced bool, success bool) {
	trigger := "cron"
	if forced {
		trigger = "forced"
	}
	status := "success"
	if !success {
		status = "error"
	}
	janitorRunsTotal.WithLabelValues(trigger, status).Inc()
}

func SetSessionsOpen(n int) {
	sessionsOpen.Set(float64(n))
}
