package service

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	json "github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/telhawk-systems/telhawk-schema/internal/cache"
	"github.com/telhawk-systems/telhawk-schema/pkg/jsonschema"
	"github.com/telhawk-systems/telhawk-schema/pkg/ocsf"
)

func strptr(s string) *string { return &s }

func testCatalog() *ocsf.Catalog {
	return ocsf.NewCatalog("1.1.0",
		map[string]*ocsf.Class{
			"authentication": {
				UID:     1001,
				Name:    "Authentication",
				Caption: "Authentication Event",
				Attributes: map[string]*ocsf.Attribute{
					"user":     {Caption: "User", Type: "object_t", ObjectType: "user", Requirement: "required"},
					"success":  {Caption: "Success", Type: "boolean_t"},
					"web_only": {Caption: "Web Only", Type: "string_t", Profile: strptr("web")},
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
}

func newCachedService(t *testing.T) (*SchemaService, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	c, err := cache.NewRedisCache("redis://"+mr.Addr(), time.Minute)
	require.NoError(t, err)
	t.Cleanup(func() { c.Close() })
	return New(testCatalog(), c), mr
}

func TestSchemaForURI(t *testing.T) {
	svc := New(testCatalog(), nil)

	data, err := svc.SchemaForURI(context.Background(), "/schema/1.1.0/classes/authentication", false)
	require.NoError(t, err)

	var doc map[string]any
	require.NoError(t, json.Unmarshal(data, &doc))
	assert.Equal(t, jsonschema.BaseURI+"/schema/1.1.0/classes/authentication", doc["$id"])
	assert.Equal(t, "Authentication Event", doc["title"])
	assert.Contains(t, doc["required"], "user")
}

func TestSchemaForURIEmbeds(t *testing.T) {
	svc := New(testCatalog(), nil)
	ctx := context.Background()

	plain, err := svc.SchemaForURI(ctx, "/schema/1.1.0/classes/authentication", false)
	require.NoError(t, err)
	embedded, err := svc.SchemaForURI(ctx, "/schema/1.1.0/classes/authentication", true)
	require.NoError(t, err)

	assert.NotContains(t, string(plain), "$defs")
	assert.Contains(t, string(embedded), "$defs")
}

func TestCompileCaches(t *testing.T) {
	svc, mr := newCachedService(t)
	ctx := context.Background()

	first, err := svc.ClassSchema(ctx, "authentication", nil, false)
	require.NoError(t, err)

	keys := mr.Keys()
	require.Len(t, keys, 1, "one compilation should store one entry")

	// Overwrite the stored bytes; a second call must come from the cache.
	sentinel := `{"cached":true}`
	require.NoError(t, mr.Set(keys[0], sentinel))

	second, err := svc.ClassSchema(ctx, "authentication", nil, false)
	require.NoError(t, err)
	assert.Equal(t, sentinel, string(second))
	assert.NotEqual(t, string(first), string(second))
}

func TestCompileFaultsAreNotCached(t *testing.T) {
	svc, mr := newCachedService(t)

	_, err := svc.ClassSchema(context.Background(), "no_such_class", nil, false)
	require.Error(t, err)
	code, ok := jsonschema.CodeOf(err)
	require.True(t, ok)
	assert.Equal(t, jsonschema.CodeUnknownClass, code)

	assert.Empty(t, mr.Keys(), "faults must not be cached")
}

func TestCacheKeyNormalizesProfiles(t *testing.T) {
	svc, mr := newCachedService(t)
	ctx := context.Background()

	first, err := svc.ClassSchema(ctx, "authentication", []string{"Web"}, false)
	require.NoError(t, err)
	second, err := svc.ClassSchema(ctx, "authentication", []string{"web"}, false)
	require.NoError(t, err)

	assert.Equal(t, string(first), string(second))
	assert.Len(t, mr.Keys(), 1, "case variants should share one cache entry")
}

func TestCacheKeySeparatesEmbed(t *testing.T) {
	svc, mr := newCachedService(t)
	ctx := context.Background()

	_, err := svc.ObjectSchema(ctx, "user", nil, false)
	require.NoError(t, err)
	_, err = svc.ObjectSchema(ctx, "user", nil, true)
	require.NoError(t, err)

	assert.Len(t, mr.Keys(), 2, "plain and embedded documents key separately")
}

func TestLookupUID(t *testing.T) {
	svc := New(testCatalog(), nil)

	tests := []struct {
		name string
		uid  int
		want UIDLookup
	}{
		{
			name: "bare class uid",
			uid:  1001,
			want: UIDLookup{UID: 1001, ClassUID: 1001, ClassName: "Authentication"},
		},
		{
			name: "type uid with activity",
			uid:  100101,
			want: UIDLookup{UID: 100101, ClassUID: 1001, ActivityID: 1, ClassName: "Authentication"},
		},
		{
			name: "type uid with zero activity",
			uid:  100100,
			want: UIDLookup{UID: 100100, ClassUID: 1001, ActivityID: 0, ClassName: "Authentication"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := svc.LookupUID(tt.uid)
			require.NoError(t, err)
			assert.Equal(t, tt.want, *got)
		})
	}
}

func TestLookupUIDUnknown(t *testing.T) {
	svc := New(testCatalog(), nil)

	_, err := svc.LookupUID(9999)
	require.Error(t, err)
	assert.EqualError(t, err, "No class found for uid 9999")

	code, ok := jsonschema.CodeOf(err)
	require.True(t, ok)
	assert.Equal(t, jsonschema.CodeUnknownUID, code)
}

func TestListings(t *testing.T) {
	svc := New(testCatalog(), nil)

	classes := svc.Classes()
	require.Len(t, classes, 1)
	assert.Equal(t, EntrySummary{Name: "authentication", Caption: "Authentication Event", UID: 1001}, classes[0])

	objects := svc.Objects()
	require.Len(t, objects, 1)
	assert.Equal(t, EntrySummary{Name: "user", Caption: "User Object"}, objects[0])
}

func TestHealth(t *testing.T) {
	svc := New(testCatalog(), nil)

	h := svc.Health()
	assert.Equal(t, "healthy", h.Status)
	assert.Equal(t, "1.1.0", h.Version)
	assert.Equal(t, 1, h.Classes)
	assert.Equal(t, 1, h.Objects)
	assert.GreaterOrEqual(t, h.UptimeSeconds, int64(0))
}

func TestNilCacheCompiles(t *testing.T) {
	svc := New(testCatalog(), nil)
	ctx := context.Background()

	first, err := svc.ObjectSchema(ctx, "user", nil, false)
	require.NoError(t, err)
	second, err := svc.ObjectSchema(ctx, "user", nil, false)
	require.NoError(t, err)

	assert.Equal(t, string(first), string(second))
}
