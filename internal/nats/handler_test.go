package nats

import (
	"context"
	"testing"

	json "github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/telhawk-systems/telhawk-schema/internal/service"
	"github.com/telhawk-systems/telhawk-schema/pkg/ocsf"
)

func newTestHandler() *Handler {
	catalog := ocsf.NewCatalog("1.1.0",
		map[string]*ocsf.Class{
			"authentication": {
				UID:     1001,
				Name:    "Authentication",
				Caption: "Authentication Event",
				Attributes: map[string]*ocsf.Attribute{
					"success": {Caption: "Success", Type: "boolean_t"},
				},
			},
		},
		map[string]*ocsf.Object{},
		map[string]*ocsf.Type{
			"boolean_t": {Type: "boolean_t"},
		},
	)
	// No broker connection; only the request/response shaping is under test.
	return NewHandler(nil, service.New(catalog, nil))
}

func TestCompileRequest(t *testing.T) {
	h := newTestHandler()

	resp := h.compile(context.Background(), &CompileRequest{
		URI: "/schema/1.1.0/classes/authentication",
	})

	require.True(t, resp.Success)
	assert.Empty(t, resp.Error)
	assert.Empty(t, resp.Code)
	assert.GreaterOrEqual(t, resp.TookMs, int64(0))

	var doc map[string]any
	require.NoError(t, json.Unmarshal(resp.Schema, &doc))
	assert.Equal(t, "Authentication Event", doc["title"])
}

func TestCompileRequestFault(t *testing.T) {
	h := newTestHandler()

	resp := h.compile(context.Background(), &CompileRequest{
		URI: "/schema/1.1.0/classes/no_such_class",
	})

	require.False(t, resp.Success)
	assert.Nil(t, resp.Schema)
	assert.Equal(t, "unknown-class", resp.Code)
	assert.Equal(t, "Class 'no_such_class' is not defined", resp.Error)
}

func TestCompileRequestEmbed(t *testing.T) {
	h := newTestHandler()

	plain := h.compile(context.Background(), &CompileRequest{
		URI: "/schema/1.1.0/classes/authentication",
	})
	embedded := h.compile(context.Background(), &CompileRequest{
		URI:   "/schema/1.1.0/classes/authentication",
		Embed: true,
	})

	require.True(t, plain.Success)
	require.True(t, embedded.Success)
	// No object references here, so both documents are self-contained and
	// differ only in cache identity.
	assert.JSONEq(t, string(plain.Schema), string(embedded.Schema))
}

func TestLookupUIDRequest(t *testing.T) {
	h := newTestHandler()

	resp := h.lookup(&LookupUIDRequest{UID: 100103})

	require.True(t, resp.Success)
	assert.Equal(t, 100103, resp.UID)
	assert.Equal(t, 1001, resp.ClassUID)
	assert.Equal(t, 3, resp.ActivityID)
	assert.Equal(t, "Authentication", resp.ClassName)
}

func TestLookupUIDRequestUnknown(t *testing.T) {
	h := newTestHandler()

	resp := h.lookup(&LookupUIDRequest{UID: 4242})

	require.False(t, resp.Success)
	assert.Equal(t, 4242, resp.UID)
	assert.Equal(t, "unknown-uid", resp.Code)
	assert.Equal(t, "No class found for uid 4242", resp.Error)
}
