package handlers

import (
	"net/http"
	"strings"
)

// Schema handles GET /schema/{version}/{kind}/{name}. The request URI is
// the schema URI, so profile selections arrive in the profiles query
// parameter and faults echo the URI back verbatim. The embed parameter
// asks for a self-contained document with references inlined under $defs.
func (h *Handler) Schema(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		methodNotAllowed(w, http.MethodGet)
		return
	}

	embed := parseBoolParam(r.URL.Query().Get("embed"))

	data, err := h.svc.SchemaForURI(r.Context(), r.URL.RequestURI(), embed)
	if err != nil {
		writeFault(w, r, err)
		return
	}

	w.Header().Set("Content-Type", "application/schema+json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)
}

// parseBoolParam interprets a boolean query parameter.
func parseBoolParam(v string) bool {
	v = strings.ToLower(v)
	return v == "true" || v == "1"
}
