package server

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/telhawk-systems/telhawk-schema/internal/handlers"
	"github.com/telhawk-systems/telhawk-schema/internal/service"
	"github.com/telhawk-systems/telhawk-schema/pkg/ocsf"
)

func newRouter() http.Handler {
	catalog := ocsf.NewCatalog("1.1.0",
		map[string]*ocsf.Class{
			"authentication": {
				UID:     1001,
				Caption: "Authentication Event",
				Attributes: map[string]*ocsf.Attribute{
					"success": {Caption: "Success", Type: "boolean_t"},
				},
			},
		},
		map[string]*ocsf.Object{
			"user": {
				Caption: "User Object",
				Attributes: map[string]*ocsf.Attribute{
					"name": {Caption: "Name", Type: "string_t"},
				},
			},
		},
		map[string]*ocsf.Type{
			"boolean_t": {Type: "boolean_t"},
			"string_t":  {Type: "string_t"},
		},
	)
	return NewRouter(handlers.New(service.New(catalog, nil)))
}

func TestNewRouter(t *testing.T) {
	if newRouter() == nil {
		t.Fatal("NewRouter() returned nil")
	}
}

func TestRouter_Endpoints(t *testing.T) {
	router := newRouter()

	endpoints := []string{
		"/schema/1.1.0/classes/authentication",
		"/api/v1/classes",
		"/api/v1/classes/uid/1001",
		"/api/v1/objects",
		"/healthz",
		"/readyz",
		"/metrics",
	}

	for _, path := range endpoints {
		req := httptest.NewRequest(http.MethodGet, path, nil)
		rr := httptest.NewRecorder()

		router.ServeHTTP(rr, req)

		if rr.Code == http.StatusNotFound {
			t.Errorf("%s endpoint not registered", path)
		}
	}
}

func TestRouter_SchemaEndpoint(t *testing.T) {
	router := newRouter()

	req := httptest.NewRequest(http.MethodGet, "/schema/1.1.0/classes/authentication", nil)
	rr := httptest.NewRecorder()

	router.ServeHTTP(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rr.Code, rr.Body.String())
	}
	if ct := rr.Header().Get("Content-Type"); ct != "application/schema+json" {
		t.Errorf("expected schema content type, got %q", ct)
	}
}

func TestRouter_SetsRequestID(t *testing.T) {
	router := newRouter()

	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	rr := httptest.NewRecorder()

	router.ServeHTTP(rr, req)

	if rr.Header().Get("X-Request-ID") == "" {
		t.Error("expected X-Request-ID response header")
	}
}

func TestRouter_MetricsEndpoint(t *testing.T) {
	router := newRouter()

	req := httptest.NewRequest(http.MethodGet, "/metrics", nil)
	rr := httptest.NewRecorder()

	router.ServeHTTP(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200 from /metrics, got %d", rr.Code)
	}
	if !strings.Contains(rr.Body.String(), "telhawk_schema_") {
		t.Error("expected telhawk_schema_ metrics in scrape output")
	}
}
