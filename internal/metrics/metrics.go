package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Metrics records storefront BFF activity. A nil *Metrics is valid and
// records nothing.
type Metrics struct {
	requests        *prometheus.CounterVec
	requestDuration *prometheus.HistogramVec
	suggestionCache *prometheus.CounterVec
	paymentOutcomes *prometheus.CounterVec
	installments    *prometheus.CounterVec
}

// New registers the storefront metrics on the provided registerer.
func New(reg prometheus.Registerer) *Metrics {
	if reg == nil {
		return &Metrics{}
	}
	requests := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "storefront_http_requests_total",
		Help: "HTTP requests served by the storefront BFF.",
	}, []string{"method", "route", "status"})
	requestDuration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "storefront_http_request_duration_seconds",
		Help:    "Latency of storefront BFF requests in seconds.",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "route"})
	suggestionCache := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "storefront_suggestion_cache_total",
		Help: "Search suggestion cache lookups by result.",
	}, []string{"result"})
	paymentOutcomes := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "storefront_payment_poll_outcomes_total",
		Help: "Final states of payment polling runs.",
	}, []string{"state", "exhausted"})
	installments := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "storefront_installment_applications_total",
		Help: "Installment applications by outcome.",
	}, []string{"outcome"})
	reg.MustRegister(requests, requestDuration, suggestionCache, paymentOutcomes, installments)
	return &Metrics{
		requests:        requests,
		requestDuration: requestDuration,
		suggestionCache: suggestionCache,
		paymentOutcomes: paymentOutcomes,
		installments:    installments,
	}
}

// ObserveRequest records one served request.
func (m *Metrics) ObserveRequest(method, route string, status int, duration time.Duration) {
	if m == nil || m.requests == nil {
		return
	}
	route = normalizeLabel(route)
	m.requests.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	m.requestDuration.WithLabelValues(method, route).Observe(duration.Seconds())
}

// CacheHit counts a suggestion cache hit.
func (m *Metrics) CacheHit() { m.cache("hit") }

// CacheMiss counts a suggestion cache miss.
func (m *Metrics) CacheMiss() { m.cache("miss") }

// CacheError counts a failed cache read or write.
func (m *Metrics) CacheError() { m.cache("error") }

func (m *Metrics) cache(result string) {
	if m == nil || m.suggestionCache == nil {
		return
	}
	m.suggestionCache.WithLabelValues(result).Inc()
}

// PaymentOutcome records how a polling run ended.
func (m *Metrics) PaymentOutcome(state string, exhausted bool) {
	if m == nil || m.paymentOutcomes == nil {
		return
	}
	m.paymentOutcomes.WithLabelValues(normalizeLabel(state), strconv.FormatBool(exhausted)).Inc()
}

// InstallmentOutcome records an application result: created, rejected or failed.
func (m *Metrics) InstallmentOutcome(outcome string) {
	if m == nil || m.installments == nil {
		return
	}
	m.installments.WithLabelValues(normalizeLabel(outcome)).Inc()
}

func normalizeLabel(v string) string {
	if v == "" {
		return "unknown"
	}
	return v
}
