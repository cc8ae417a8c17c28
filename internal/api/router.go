// PlayNext - Board Game Recommendation Service
// Copyright 2026 The PlayNext Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tabletop-labs/playnext

package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Router assembles the handler and middleware into an http.Handler.
type Router struct {
	handler    *Handler
	middleware *Middleware
}

// NewRouter creates a Router.
func NewRouter(handler *Handler, middleware *Middleware) *Router {
	if middleware == nil {
		middleware = NewMiddleware(nil)
	}
	return &Router{handler: handler, middleware: middleware}
}

// Setup builds the route tree.
func (router *Router) Setup() http.Handler {
	r := chi.NewRouter()

	r.Use(RequestIDWithLogging())
	r.Use(chimiddleware.RealIP)
	r.Use(chimiddleware.Recoverer)
	r.Use(router.middleware.CORS())

	// Health stays outside the rate limit so monitors are never shed.
	r.Route("/api/v1/health", func(r chi.Router) {
		r.Get("/", router.handler.Health)
	})

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(router.middleware.RateLimit())
		r.Use(PrometheusMetrics)

		r.Get("/search", router.handler.Search)
		r.Get("/games/{id}", router.handler.GameByID)
		r.Get("/recommendations", router.handler.Recommendations)
	})

	r.Handle("/metrics", promhttp.Handler())

	return r
}
