package metrics

import (
	"errors"
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Métricas del servicio. Viven en un paquete aparte para que jwt, provider y
// los middlewares HTTP puedan instrumentarse sin ciclos de imports.

var (
	HTTPRequests = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "wizauth_http_requests_total",
		Help: "Número total de requests procesadas",
	}, []string{"method", "route", "status"})

	HTTPDuration = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "wizauth_http_request_duration_seconds",
		Help:    "Latencia de los requests HTTP",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "route"})

	HTTPInflight = prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "wizauth_http_inflight_requests",
		Help: "Requests en vuelo",
	})

	// result: ok | missing_token | malformed_token | invalid_signature | token_expired | missing_subject
	TokenVerifications = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "wizauth_token_verifications_total",
		Help: "Verificaciones de bearer token por resultado y estrategia",
	}, []string{"result", "strategy"})

	TokensIssued = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "wizauth_tokens_issued_total",
		Help: "Tokens entregados al cliente por modo (local | passthrough)",
	}, []string{"mode"})

	// class: 2xx | 4xx | 5xx | network
	ProviderRequests = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "wizauth_provider_requests_total",
		Help: "Llamadas al provider por método y clase de resultado",
	}, []string{"method", "class"})

	ProviderDuration = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "wizauth_provider_request_duration_seconds",
		Help:    "Latencia de las llamadas al provider",
		Buckets: []float64{0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
	}, []string{"method"})

	RateLimited = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "wizauth_rate_limited_total",
		Help: "Requests rechazadas con 429",
	})

	// kind: whoami | admin; result: hit | miss
	IdentityCache = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "wizauth_identity_cache_total",
		Help: "Lookups de identidad servidos desde cache",
	}, []string{"kind", "result"})
)

func collectors() []prometheus.Collector {
	return []prometheus.Collector{
		HTTPRequests, HTTPDuration, HTTPInflight,
		TokenVerifications, TokensIssued,
		ProviderRequests, ProviderDuration,
		RateLimited, IdentityCache,
	}
}

// Register registra todas las métricas en reg (o en el default si es nil).
// Registrar dos veces no es un error.
func Register(reg prometheus.Registerer) error {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	for _, c := range collectors() {
		if err := reg.Register(c); err != nil {
			var are prometheus.AlreadyRegisteredError
			if !errors.As(err, &are) {
				return err
			}
		}
	}
	return nil
}

// Handler expone /metrics para el gatherer dado (default si es nil).
func Handler(g prometheus.Gatherer) http.Handler {
	if g == nil {
		return promhttp.Handler()
	}
	return promhttp.HandlerFor(g, promhttp.HandlerOpts{})
}

// StatusClass agrupa un status HTTP en 2xx/3xx/4xx/5xx.
func StatusClass(status int) string {
	switch {
	case status >= 500:
		return "5xx"
	case status >= 400:
		return "4xx"
	case status >= 300:
		return "3xx"
	default:
		return "2xx"
	}
}
