package handlers

import (
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	json "github.com/goccy/go-json"

	"github.com/telhawk-systems/telhawk-schema/internal/service"
	"github.com/telhawk-systems/telhawk-schema/pkg/jsonschema"
)

// writeJSON writes a plain JSON response.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("failed to encode JSON response", slog.String("error", err.Error()))
	}
}

// jsonAPIResource is a JSON:API resource object.
type jsonAPIResource struct {
	Type       string `json:"type"`
	ID         string `json:"id"`
	Attributes any    `json:"attributes"`
}

// writeJSONAPI writes a JSON:API formatted response.
func writeJSONAPI(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/vnd.api+json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("failed to encode JSON:API response", slog.String("error", err.Error()))
	}
}

// writeJSONAPIList writes catalog entries as a JSON:API collection.
func writeJSONAPIList(w http.ResponseWriter, status int, typ string, entries []service.EntrySummary) {
	items := make([]jsonAPIResource, 0, len(entries))
	for _, e := range entries {
		items = append(items, jsonAPIResource{Type: typ, ID: e.Name, Attributes: e})
	}
	writeJSONAPI(w, status, map[string]any{"data": items})
}

// writeJSONAPIResource writes a single JSON:API resource.
func writeJSONAPIResource(w http.ResponseWriter, status int, typ, id string, attrs any) {
	writeJSONAPI(w, status, map[string]any{
		"data": jsonAPIResource{Type: typ, ID: id, Attributes: attrs},
	})
}

// writeJSONAPIError writes a JSON:API error response.
func writeJSONAPIError(w http.ResponseWriter, status int, code, title, detail string) {
	writeJSONAPI(w, status, map[string]any{
		"errors": []map[string]string{{
			"status": strconv.Itoa(status),
			"code":   code,
			"title":  title,
			"detail": detail,
		}},
	})
}

// writeFault maps a compilation fault onto its HTTP status and JSON:API
// body. The fault message travels verbatim in the detail field.
func writeFault(w http.ResponseWriter, r *http.Request, err error) {
	status, title := faultStatus(err)
	code := "internal_error"
	if c, ok := jsonschema.CodeOf(err); ok {
		code = string(c)
	}
	if status >= http.StatusInternalServerError {
		slog.Error("schema request failed",
			slog.String("uri", r.URL.RequestURI()),
			slog.String("error", err.Error()))
	}
	writeJSONAPIError(w, status, code, title, err.Error())
}

// faultStatus picks the response status for a compilation fault. URI shape
// problems belong to the client, version skew conflicts with the bound
// catalog, unknown entries are absent, and catalog defects mean the entry
// exists but cannot compile.
func faultStatus(err error) (int, string) {
	code, ok := jsonschema.CodeOf(err)
	if !ok {
		return http.StatusInternalServerError, "Internal Server Error"
	}
	switch code {
	case jsonschema.CodeMalformedURI, jsonschema.CodeUnknownKind:
		return http.StatusBadRequest, "Invalid schema URI"
	case jsonschema.CodeVersionMismatch:
		return http.StatusConflict, "Schema version mismatch"
	case jsonschema.CodeUnknownClass, jsonschema.CodeUnknownObject, jsonschema.CodeUnknownUID:
		return http.StatusNotFound, "Not Found"
	default:
		return http.StatusUnprocessableEntity, "Schema compilation failed"
	}
}

// methodNotAllowed writes a 405 with the Allow header set.
func methodNotAllowed(w http.ResponseWriter, allowed ...string) {
	w.Header().Set("Allow", strings.Join(allowed, ", "))
	writeJSONAPIError(w, http.StatusMethodNotAllowed, "method_not_allowed",
		"Method Not Allowed", "the request method is not supported by this endpoint")
}
