// Package handlers wires the HTTP API to the schema service.
package handlers

import (
	"net/http"

	"github.com/telhawk-systems/telhawk-schema/internal/service"
)

// Handler holds the HTTP handlers for the schema service.
type Handler struct {
	svc *service.SchemaService

	// natsConnected reports bridge connectivity for readiness; nil when
	// the NATS bridge is disabled.
	natsConnected func() bool
}

// New creates a new Handler instance.
func New(svc *service.SchemaService) *Handler {
	return &Handler{svc: svc}
}

// WithNATSStatus wires a connectivity probe into the readiness payload.
func (h *Handler) WithNATSStatus(connected func() bool) *Handler {
	h.natsConnected = connected
	return h
}

// Health handles GET /healthz for liveness probes.
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		methodNotAllowed(w, http.MethodGet)
		return
	}
	writeJSON(w, http.StatusOK, h.svc.Health())
}

// Ready handles GET /readyz; the service is ready once a catalog is bound.
func (h *Handler) Ready(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		methodNotAllowed(w, http.MethodGet)
		return
	}

	resp := map[string]any{
		"status":  "ready",
		"version": h.svc.Version(),
	}
	if h.natsConnected != nil {
		resp["nats_connected"] = h.natsConnected()
	}
	writeJSON(w, http.StatusOK, resp)
}
