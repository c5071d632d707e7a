package ocsf

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewCatalogNormalizesKeys(t *testing.T) {
	cat := NewCatalog("1.0.0",
		map[string]*Class{"Authentication": {UID: 3002, Caption: "Authentication"}},
		map[string]*Object{"User": {Caption: "User"}},
		map[string]*Type{"File_Name_T": {Type: "string_t"}},
	)

	cls, ok := cat.Class("authentication")
	require.True(t, ok)
	assert.Equal(t, 3002, cls.UID)

	// lookups are case-insensitive on the caller side too
	_, ok = cat.Class("AUTHENTICATION")
	assert.True(t, ok)

	obj, ok := cat.Object("user")
	require.True(t, ok)
	assert.Equal(t, "User", obj.Caption)

	typ, ok := cat.Type("file_name_t")
	require.True(t, ok)
	assert.Equal(t, "string_t", typ.Type)
}

func TestCatalogLookupMisses(t *testing.T) {
	cat := NewCatalog("1.0.0", nil, nil, nil)

	_, ok := cat.Class("nope")
	assert.False(t, ok)
	_, ok = cat.Object("nope")
	assert.False(t, ok)
	_, ok = cat.Type("nope")
	assert.False(t, ok)
}

func TestCatalogNames(t *testing.T) {
	cat := NewCatalog("1.0.0",
		map[string]*Class{
			"network_activity": {Caption: "Network Activity"},
			"authentication":   {Caption: "Authentication"},
		},
		map[string]*Object{
			"user":   {Caption: "User"},
			"device": {Caption: "Device"},
		},
		nil,
	)

	assert.Equal(t, []string{"authentication", "network_activity"}, cat.ClassNames())
	assert.Equal(t, []string{"device", "user"}, cat.ObjectNames())
}

func TestClassNameByUID(t *testing.T) {
	cat := NewCatalog("1.0.0",
		map[string]*Class{
			"authentication": {UID: 3002, Name: "Authentication", Caption: "Authentication"},
			"file_activity":  {UID: 1001, Caption: "File Activity"}, // no display name
			"base_event":     {Caption: "Base Event"},               // no uid, not indexed
		},
		nil, nil,
	)

	name, ok := cat.ClassNameByUID(3002)
	require.True(t, ok)
	assert.Equal(t, "Authentication", name)

	// falls back to the entry key when the export omits name
	name, ok = cat.ClassNameByUID(1001)
	require.True(t, ok)
	assert.Equal(t, "file_activity", name)

	_, ok = cat.ClassNameByUID(999)
	assert.False(t, ok)

	_, ok = cat.ClassNameByUID(0)
	assert.False(t, ok)
}

func TestClassNameByUIDConcurrent(t *testing.T) {
	classes := map[string]*Class{
		"authentication": {UID: 3002, Name: "Authentication"},
	}
	cat := NewCatalog("1.0.0", classes, nil, nil)

	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			name, ok := cat.ClassNameByUID(3002)
			assert.True(t, ok)
			assert.Equal(t, "Authentication", name)
		}()
	}
	wg.Wait()
}

func TestTypeUIDMath(t *testing.T) {
	assert.Equal(t, 300201, ComputeTypeUID(3002, 1))
	assert.Equal(t, 100100, ComputeTypeUID(1001, 0))

	classUID, activityID := SplitTypeUID(300201)
	assert.Equal(t, 3002, classUID)
	assert.Equal(t, 1, activityID)

	// bare class uids pass through
	classUID, activityID = SplitTypeUID(3002)
	assert.Equal(t, 3002, classUID)
	assert.Equal(t, 0, activityID)
}
