// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package metrics exposes Prometheus collectors for HTTP traffic and the
authentication lifecycle.

A dedicated registry is used instead of the global default so tests can build
as many instances as they like without duplicate-registration panics.
*/
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "tasknest"

// Outcome labels for auth events.
const (
	OutcomeSuccess = "success"
	OutcomeFailure = "failure"
)

// Metrics owns the registry and every collector the API reports.
type Metrics struct {
	registry     *prometheus.Registry
	httpRequests *prometheus.CounterVec
	httpLatency  *prometheus.HistogramVec
	authEvents   *prometheus.CounterVec
}

// New builds the collectors and registers them, together with Go runtime and
// process collectors, on a fresh registry.
func New() *Metrics {
	metrics := &Metrics{
		registry: prometheus.NewRegistry(),
		httpRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "HTTP requests by method, route pattern and status code.",
		}, []string{"method", "route", "status"}),
		httpLatency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request latency by method and route pattern.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method", "route"}),
		authEvents: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "auth_events_total",
			Help:      "Authentication flow outcomes (login, refresh, logout, register, password reset).",
		}, []string{"event", "outcome"}),
	}

	metrics.registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		metrics.httpRequests,
		metrics.httpLatency,
		metrics.authEvents,
	)

	return metrics
}

// ObserveRequest records one finished HTTP request.
func (metrics *Metrics) ObserveRequest(method, route string, status int, elapsed time.Duration) {
	metrics.httpRequests.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	metrics.httpLatency.WithLabelValues(method, route).Observe(elapsed.Seconds())
}

// AuthEvent counts one authentication flow outcome.
func (metrics *Metrics) AuthEvent(event, outcome string) {
	metrics.authEvents.WithLabelValues(event, outcome).Inc()
}

// Handler serves the registry in the Prometheus exposition format.
func (metrics *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(metrics.registry, promhttp.HandlerOpts{Registry: metrics.registry})
}

// Registry returns the underlying registry.
func (metrics *Metrics) Registry() *prometheus.Registry {
	return metrics.registry
}
