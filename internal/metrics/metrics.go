package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// Short links
	ShortcodeAttempts = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "foodgram_shortcode_attempts_total",
			Help: "Candidate short codes generated during assignment",
		},
	)

	ShortcodeCollisions = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "foodgram_shortcode_collisions_total",
			Help: "Candidate short codes rejected because another recipe holds them",
		},
	)

	ShortcodeExhausted = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "foodgram_shortcode_exhausted_total",
			Help: "Assignments that ran out of attempts",
		},
	)

	ShortLinkResolutions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "foodgram_shortlink_resolutions_total",
			Help: "Short link lookups by result",
		},
		[]string{"result"}, // "hit", "miss"
	)

	// Shopping list
	ShoppingListDownloads = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "foodgram_shopping_list_downloads_total",
			Help: "Rendered shopping list reports",
		},
	)

	ShoppingListItems = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "foodgram_shopping_list_items",
			Help:    "Aggregated lines per shopping list report",
			Buckets: prometheus.LinearBuckets(0, 5, 10),
		},
	)

	// HTTP
	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "foodgram_http_request_duration_seconds",
			Help:    "HTTP request latency",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "route", "status"},
	)

	RateLimitRejections = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "foodgram_rate_limit_rejections_total",
			Help: "Requests rejected by the rate limiter",
		},
		[]string{"backend"},
	)

	// Events
	EventsPublished = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "foodgram_events_published_total",
			Help: "Domain events handed to the broker",
		},
		[]string{"routing_key", "status"},
	)
)

// RecordHTTPRequest observes one finished request.
func RecordHTTPRequest(method, route string, status int, elapsed time.Duration) {
	HTTPRequestDuration.WithLabelValues(method, route, strconv.Itoa(status)).Observe(elapsed.Seconds())
}

// RecordResolution counts a short link lookup.
func RecordResolution(found bool) {
	if found {
		ShortLinkResolutions.WithLabelValues("hit").Inc()
		return
	}
	ShortLinkResolutions.WithLabelValues("miss").Inc()
}
