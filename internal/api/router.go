// Reelharbor - Content Discovery and Recommendation Orchestration
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelharbor

// Package api provides the HTTP surface of the recommendation engine:
// Chi routing, request validation, and the standard response envelope.
package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httprate"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/tomtom215/reelharbor/internal/config"
	"github.com/tomtom215/reelharbor/internal/logging"
)

// Router assembles the HTTP handler tree.
type Router struct {
	handler *Handler
	health  *HealthHandler
	cfg     config.APIConfig
}

// NewRouter creates a Router.
func NewRouter(handler *Handler, health *HealthHandler, cfg config.APIConfig) *Router {
	return &Router{handler: handler, health: health, cfg: cfg}
}

// Setup configures all HTTP routes.
func (rt *Router) Setup() http.Handler {
	r := chi.NewRouter()

	// Global middleware, applied to all routes in order.
	r.Use(requestIDWithLogging())
	r.Use(chimiddleware.RealIP)
	r.Use(chimiddleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   rt.cfg.CORSAllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Content-Type", "X-Request-ID"},
		AllowCredentials: false,
		MaxAge:           86400,
	}))

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", rt.health.Live)
		r.Get("/ready", rt.health.Ready)
	})

	r.Handle("/metrics", promhttp.Handler())

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(httprate.LimitByIP(rt.cfg.RateLimitRequests, rt.cfg.RateLimitWindow))

		r.Route("/recommendations", func(r chi.Router) {
			r.Post("/discover", rt.handler.Discover)
			r.Post("/blend", rt.handler.Blend)
			r.Get("/similar/{mediaType}/{id}", rt.handler.Similar)
		})

		r.Get("/providers/{name}/availability", rt.handler.ProviderAvailability)
	})

	return r
}

// requestIDWithLogging attaches a request ID to the response header and
// the logging context, so every log line within a request correlates.
func requestIDWithLogging() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			requestID := r.Header.Get("X-Request-ID")
			if requestID == "" {
				requestID = logging.GenerateRequestID()
			}
			w.Header().Set("X-Request-ID", requestID)

			ctx := logging.ContextWithRequestID(r.Context(), requestID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
