package metrics

import (
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog/log"
)

type Outcome string

const (
	Success                  Outcome       = "success"
	Error                    Outcome       = "error"
	MetricRequestTimeout     time.Duration = 5 * time.Second
	MetricRequestIdleTimeout time.Duration = 10 * time.Second
)

func (O Outcome) String() string {
	return string(O)
}

var (
	serverOnce              sync.Once
	metricsRouter           *chi.Mux
	ledgerClientLatency     *prometheus.HistogramVec
	dbLatency               *prometheus.HistogramVec
	pollerDurationHistogram *prometheus.HistogramVec
	queueSendErrorCounter   prometheus.Counter
	claimsProcessedCounter  *prometheus.CounterVec
	claimedAmountCounter    *prometheus.CounterVec
	extendedLockupsGauge    prometheus.Gauge
)

// The vectors must exist before any Record* call, not just once the server
// is up, so registration happens at package load.
func init() {
	registerMetrics()
}

// Init starts the metrics server.
func Init(metricsPort int) {
	serverOnce.Do(func() {
		initMetricsRouter(metricsPort)
	})
}

// initMetricsRouter initializes the metrics router.
func initMetricsRouter(metricsPort int) {
	metricsRouter = chi.NewRouter()
	metricsRouter.Get("/metrics", func(w http.ResponseWriter, r *http.Request) {
		promhttp.Handler().ServeHTTP(w, r)
	})
	// Create a custom server with timeout settings
	metricsAddr := fmt.Sprintf(":%d", metricsPort)
	server := &http.Server{
		Addr:         metricsAddr,
		Handler:      metricsRouter,
		ReadTimeout:  MetricRequestTimeout,
		WriteTimeout: MetricRequestTimeout,
		IdleTimeout:  MetricRequestIdleTimeout,
	}

	// Start the server in a separate goroutine
	go func() {
		log.Info().Msgf("Starting metrics server on %s", metricsAddr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msgf("Error starting metrics server on %s", metricsAddr)
		}
	}()
}

// registerMetrics initializes and register the Prometheus metrics.
func registerMetrics() {
	defaultHistogramBucketsSeconds := []float64{0.1, 0.5, 1, 2.5, 5, 10, 30}

	ledgerClientLatency = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "ledger_client_latency_seconds",
			Help:    "Histogram of ledger client durations in seconds.",
			Buckets: defaultHistogramBucketsSeconds,
		},
		[]string{"method", "status"},
	)

	dbLatency = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name: "db_latency_seconds",
			Help: "DB latency in seconds splitted by method and execution status",
		},
		[]string{"method", "status"},
	)

	pollerDurationHistogram = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "poller_duration_seconds",
			Help:    "Histogram of poller durations in seconds.",
			Buckets: defaultHistogramBucketsSeconds,
		},
		[]string{"type", "status"},
	)

	queueSendErrorCounter = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "queue_send_error_count",
			Help: "The total number of errors when sending messages to the queue",
		},
	)

	claimsProcessedCounter = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "claims_processed_count",
			Help: "The total number of claim settlements split by lockup variant and status",
		},
		[]string{"variant", "status"},
	)

	claimedAmountCounter = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "claimed_amount_total",
			Help: "Total released amount per asset, in the asset's smallest unit",
		},
		[]string{"asset"},
	)

	extendedLockupsGauge = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "extended_lockups_count",
			Help: "Number of lockup documents whose liveness was extended in the last sweep",
		},
	)

	prometheus.MustRegister(
		ledgerClientLatency,
		dbLatency,
		pollerDurationHistogram,
		queueSendErrorCounter,
		claimsProcessedCounter,
		claimedAmountCounter,
		extendedLockupsGauge,
	)
}

func RecordLedgerClientLatency(d time.Duration, method string, failure bool) {
	status := Success
	if failure {
		status = Error
	}

	ledgerClientLatency.WithLabelValues(method, status.String()).Observe(d.Seconds())
}

func RecordDbLatency(d time.Duration, method string, failure bool) {
	status := Success
	if failure {
		status = Error
	}

	dbLatency.WithLabelValues(method, status.String()).Observe(d.Seconds())
}

func RecordPollerDuration(d time.Duration, pollerType string, failure bool) {
	status := Success
	if failure {
		status = Error
	}

	pollerDurationHistogram.WithLabelValues(pollerType, status.String()).Observe(d.Seconds())
}

func RecordQueueSendError() {
	queueSendErrorCounter.Inc()
}

func RecordClaimProcessed(variant string, failure bool) {
	status := Success
	if failure {
		status = Error
	}

	claimsProcessedCounter.WithLabelValues(variant, status.String()).Inc()
}

func RecordClaimedAmount(asset string, amount float64) {
	claimedAmountCounter.WithLabelValues(asset).Add(amount)
}

func RecordExtendedLockups(count int64) {
	extendedLockupsGauge.Set(float64(count))
}
