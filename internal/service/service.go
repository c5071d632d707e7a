// Package service binds the schema compiler to its operational
// dependencies: the byte cache, Prometheus metrics, and logging.
package service

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"strconv"
	"strings"
	"time"

	json "github.com/goccy/go-json"

	"github.com/telhawk-systems/telhawk-schema/internal/cache"
	"github.com/telhawk-systems/telhawk-schema/internal/logging"
	"github.com/telhawk-systems/telhawk-schema/internal/metrics"
	"github.com/telhawk-systems/telhawk-schema/pkg/jsonschema"
	"github.com/telhawk-systems/telhawk-schema/pkg/ocsf"
)

// SchemaService compiles catalog entries to JSON Schema documents and
// serves them as marshaled bytes. Successful compilations are cached;
// fault responses never are, so a fixed catalog defect cannot linger.
type SchemaService struct {
	catalog   *ocsf.Catalog
	gen       *jsonschema.Generator
	embedded  *jsonschema.Embedded
	cache     cache.Cache
	logger    *slog.Logger
	startedAt time.Time
}

// New wires a service around one catalog version. A nil cache disables
// caching.
func New(catalog *ocsf.Catalog, c cache.Cache) *SchemaService {
	if c == nil {
		c = cache.NoOp{}
	}
	gen := jsonschema.NewGenerator(catalog)

	metrics.CatalogClasses.Set(float64(len(catalog.Classes)))
	metrics.CatalogObjects.Set(float64(len(catalog.Objects)))

	return &SchemaService{
		catalog:   catalog,
		gen:       gen,
		embedded:  jsonschema.NewEmbedded(gen),
		cache:     c,
		logger:    slog.Default().With(logging.Component("schema-service")),
		startedAt: time.Now().UTC(),
	}
}

// Version reports the bound catalog version.
func (s *SchemaService) Version() string {
	return s.gen.Version()
}

// SchemaForURI compiles the entry addressed by a schema URI.
func (s *SchemaService) SchemaForURI(ctx context.Context, uri string, embed bool) ([]byte, error) {
	key := s.cacheKey("uri", strings.ToLower(uri), nil, embed)
	return s.compile(ctx, key, "uri", embed, func() (*jsonschema.Document, error) {
		if embed {
			return s.embedded.SchemaForURI(uri)
		}
		return s.gen.SchemaForURI(uri)
	})
}

// ClassSchema compiles the named class with the given profiles.
func (s *SchemaService) ClassSchema(ctx context.Context, name string, profiles []string, embed bool) ([]byte, error) {
	key := s.cacheKey("class", strings.ToLower(name), profiles, embed)
	return s.compile(ctx, key, "class", embed, func() (*jsonschema.Document, error) {
		if embed {
			return s.embedded.ClassSchema(name, profiles)
		}
		return s.gen.ClassSchema(name, profiles)
	})
}

// ObjectSchema compiles the named object with the given profiles.
func (s *SchemaService) ObjectSchema(ctx context.Context, name string, profiles []string, embed bool) ([]byte, error) {
	key := s.cacheKey("object", strings.ToLower(name), profiles, embed)
	return s.compile(ctx, key, "object", embed, func() (*jsonschema.Document, error) {
		if embed {
			return s.embedded.ObjectSchema(name, profiles)
		}
		return s.gen.ObjectSchema(name, profiles)
	})
}

// compile answers from the cache when possible; otherwise it runs fn,
// marshals the document once, and stores the bytes for next time.
func (s *SchemaService) compile(ctx context.Context, key, kind string, embed bool, fn func() (*jsonschema.Document, error)) ([]byte, error) {
	if data, ok, err := s.cache.Get(ctx, key); err != nil {
		s.logger.Warn("schema cache read failed", logging.Error(err))
	} else if ok {
		metrics.CacheHits.Inc()
		return data, nil
	} else {
		metrics.CacheMisses.Inc()
	}

	start := time.Now()
	doc, err := fn()
	metrics.CompileDuration.Observe(time.Since(start).Seconds())
	if err != nil {
		metrics.CompilesTotal.WithLabelValues(kind, strconv.FormatBool(embed), "error").Inc()
		return nil, err
	}
	metrics.CompilesTotal.WithLabelValues(kind, strconv.FormatBool(embed), "ok").Inc()

	data, err := json.Marshal(doc)
	if err != nil {
		return nil, fmt.Errorf("marshal schema document: %w", err)
	}

	if err := s.cache.Set(ctx, key, data); err != nil {
		s.logger.Warn("schema cache write failed", logging.Error(err))
	}
	return data, nil
}

// cacheKey canonicalizes one compilation identity. Profile order does not
// change the output, so profiles are lowercased and sorted into the key.
func (s *SchemaService) cacheKey(kind, name string, profiles []string, embed bool) string {
	ps := make([]string, len(profiles))
	for i, p := range profiles {
		ps[i] = strings.ToLower(strings.TrimSpace(p))
	}
	sort.Strings(ps)

	return strings.Join([]string{
		s.gen.Version(),
		kind,
		name,
		strings.Join(ps, ","),
		strconv.FormatBool(embed),
	}, "|")
}

// UIDLookup describes a resolved class or type UID.
type UIDLookup struct {
	UID        int    `json:"uid"`
	ClassUID   int    `json:"class_uid"`
	ActivityID int    `json:"activity_id"`
	ClassName  string `json:"class_name"`
}

// LookupUID resolves a UID to its class. Bare class UIDs resolve directly;
// anything else is treated as a type UID (class_uid * 100 + activity_id).
func (s *SchemaService) LookupUID(uid int) (*UIDLookup, error) {
	name, firstErr := s.gen.ClassNameByUID(uid)
	if firstErr == nil {
		metrics.UIDLookups.WithLabelValues("hit").Inc()
		return &UIDLookup{UID: uid, ClassUID: uid, ClassName: name}, nil
	}

	classUID, activityID := ocsf.SplitTypeUID(uid)
	name, err := s.gen.ClassNameByUID(classUID)
	if err != nil {
		metrics.UIDLookups.WithLabelValues("miss").Inc()
		// Report the UID the caller asked about, not the derived one.
		return nil, firstErr
	}

	metrics.UIDLookups.WithLabelValues("hit").Inc()
	return &UIDLookup{
		UID:        uid,
		ClassUID:   classUID,
		ActivityID: activityID,
		ClassName:  name,
	}, nil
}

// EntrySummary is one row of the class or object listings.
type EntrySummary struct {
	Name    string `json:"name"`
	Caption string `json:"caption"`
	UID     int    `json:"uid,omitempty"`
}

// Classes lists the catalog's classes sorted by name.
func (s *SchemaService) Classes() []EntrySummary {
	out := make([]EntrySummary, 0, len(s.catalog.Classes))
	for _, name := range s.catalog.ClassNames() {
		cls, ok := s.catalog.Class(name)
		if !ok {
			continue
		}
		out = append(out, EntrySummary{Name: name, Caption: cls.Caption, UID: cls.UID})
	}
	return out
}

// Objects lists the catalog's objects sorted by name.
func (s *SchemaService) Objects() []EntrySummary {
	out := make([]EntrySummary, 0, len(s.catalog.Objects))
	for _, name := range s.catalog.ObjectNames() {
		obj, ok := s.catalog.Object(name)
		if !ok {
			continue
		}
		out = append(out, EntrySummary{Name: name, Caption: obj.Caption})
	}
	return out
}

// HealthResponse describes the service for the health endpoint.
type HealthResponse struct {
	Status        string `json:"status"`
	Version       string `json:"version"`
	Classes       int    `json:"classes"`
	Objects       int    `json:"objects"`
	UptimeSeconds int64  `json:"uptime_seconds"`
}

// Health reports the bound catalog and how long the service has been up.
func (s *SchemaService) Health() *HealthResponse {
	return &HealthResponse{
		Status:        "healthy",
		Version:       s.Version(),
		Classes:       len(s.catalog.Classes),
		Objects:       len(s.catalog.Objects),
		UptimeSeconds: int64(time.Since(s.startedAt).Seconds()),
	}
}
