package metrics

import (
	"context"
	"errors"
	"log/slog"
	"strconv"
	"sync"
	"time"

	"github.com/gofiber/fiber/v3"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// HTTP metrics
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "linkshare_http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "route", "status"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "linkshare_http_request_duration_seconds",
			Help:    "HTTP request latency in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "route"},
	)

	// Domain metrics
	IDCollisionsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "linkshare_id_collisions_total",
			Help: "Generated identifiers that collided with an existing row",
		},
		[]string{"table"},
	)

	SharesCreatedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "linkshare_shares_created_total",
			Help: "Shares created, by request form",
		},
		[]string{"form"},
	)

	SignInsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "linkshare_sign_ins_total",
			Help: "Sign-in attempts by outcome",
		},
		[]string{"outcome"},
	)
)

// RecordIDCollision counts a generated id that hit the primary key of table.
func RecordIDCollision(table string) {
	IDCollisionsTotal.WithLabelValues(table).Inc()
}

// RecordSharesCreated counts n shares created through form ("single" or "bulk").
func RecordSharesCreated(form string, n int) {
	if n > 0 {
		SharesCreatedTotal.WithLabelValues(form).Add(float64(n))
	}
}

// RecordSignIn counts a sign-in attempt with outcome "success" or "failure".
func RecordSignIn(outcome string) {
	SignInsTotal.WithLabelValues(outcome).Inc()
}

// Middleware records request count and latency labelled by route pattern.
func Middleware() fiber.Handler {
	return func(c fiber.Ctx) error {
		start := time.Now()
		err := c.Next()

		status := c.Response().StatusCode()
		if err != nil {
			status = fiber.StatusInternalServerError
			var fe *fiber.Error
			if errors.As(err, &fe) {
				status = fe.Code
			}
		}

		route := c.Route().Path
		HTTPRequestsTotal.WithLabelValues(c.Method(), route, strconv.Itoa(status)).Inc()
		HTTPRequestDuration.WithLabelValues(c.Method(), route).Observe(time.Since(start).Seconds())
		return err
	}
}

// StoreCounts is a snapshot of row counts in the store.
type StoreCounts struct {
	Users  int
	Links  int
	Shares int
}

// CountSource reports current store row counts.
type CountSource interface {
	Counts(ctx context.Context) (StoreCounts, error)
}

var storeRowsDesc = prometheus.NewDesc(
	"linkshare_store_rows",
	"Number of rows per table in the store",
	[]string{"table"},
	nil,
)

// StoreCollector is a custom Prometheus collector that reads row counts
// from the store on each scrape.
type StoreCollector struct {
	source CountSource
}

// Describe sends the metric descriptor to the channel.
func (c *StoreCollector) Describe(ch chan<- *prometheus.Desc) {
	ch <- storeRowsDesc
}

// Collect queries the store and emits one gauge per table.
func (c *StoreCollector) Collect(ch chan<- prometheus.Metric) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	counts, err := c.source.Counts(ctx)
	if err != nil {
		slog.Error("failed to collect store metrics", "error", err)
		return
	}
	ch <- prometheus.MustNewConstMetric(storeRowsDesc, prometheus.GaugeValue, float64(counts.Users), "users")
	ch <- prometheus.MustNewConstMetric(storeRowsDesc, prometheus.GaugeValue, float64(counts.Links), "links")
	ch <- prometheus.MustNewConstMetric(storeRowsDesc, prometheus.GaugeValue, float64(counts.Shares), "shares")
}

var initOnce sync.Once

// Init registers the store collector. Must be called once at startup;
// later calls are no-ops.
func Init(source CountSource) {
	initOnce.Do(func() {
		prometheus.MustRegister(&StoreCollector{source: source})
	})
}
