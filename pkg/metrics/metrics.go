package metrics

import (
	"strconv"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const metricPrefix = "dernier_metro_"

var (
	registerOnce sync.Once

	httpRequests *prometheus.CounterVec
	httpLatency  *prometheus.HistogramVec

	stationMisses     prometheus.Counter
	calendarFallbacks prometheus.Counter
)

// Init registers the collectors. Safe to call more than once.
func Init() {
	registerOnce.Do(func() {
		httpRequests = prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: metricPrefix + "http_requests_total",
				Help: "Total HTTP requests by method, path and status",
			},
			[]string{"method", "path", "status"},
		)
		httpLatency = prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    metricPrefix + "http_request_duration_seconds",
				Help:    "HTTP request latency in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"path"},
		)
		stationMisses = prometheus.NewCounter(
			prometheus.CounterOpts{
				Name: metricPrefix + "station_misses_total",
				Help: "Total station lookups answered with suggestions",
			},
		)
		calendarFallbacks = prometheus.NewCounter(
			prometheus.CounterOpts{
				Name: metricPrefix + "calendar_fallbacks_total",
				Help: "Total arrivals computed from the default calendar",
			},
		)

		prometheus.MustRegister(httpRequests, httpLatency, stationMisses, calendarFallbacks)
	})
}

func ObserveRequest(method, path string, status int, duration time.Duration) {
	if httpRequests == nil {
		return
	}

	httpRequests.WithLabelValues(method, path, strconv.Itoa(status)).Inc()
	httpLatency.WithLabelValues(path).Observe(duration.Seconds())
}

func StationMiss() {
	if stationMisses != nil {
		stationMisses.Inc()
	}
}

func CalendarFallback() {
	if calendarFallbacks != nil {
		calendarFallbacks.Inc()
	}
}
