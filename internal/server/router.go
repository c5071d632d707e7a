// Package server assembles the HTTP router for the schema service.
package server

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/telhawk-systems/telhawk-schema/internal/handlers"
	"github.com/telhawk-systems/telhawk-schema/internal/middleware"
)

// NewRouter creates the HTTP router with all schema service routes.
func NewRouter(h *handlers.Handler) http.Handler {
	mux := http.NewServeMux()

	// Schema documents are served under the same path shape their $id is
	// minted with, so a document's $id resolves against this service.
	mux.HandleFunc("/schema/", h.Schema)

	// Catalog listings (JSON:API)
	mux.HandleFunc("/api/v1/classes", h.Classes)
	mux.HandleFunc("/api/v1/classes/uid/", h.ClassByUID)
	mux.HandleFunc("/api/v1/objects", h.Objects)

	// Health endpoints
	mux.HandleFunc("/healthz", h.Health)
	mux.HandleFunc("/readyz", h.Ready)

	// Prometheus metrics
	mux.Handle("/metrics", promhttp.Handler())

	return middleware.RequestID(middleware.AccessLog(mux))
}
