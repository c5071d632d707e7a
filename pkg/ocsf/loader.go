package ocsf

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	json "github.com/goccy/go-json"
)

// Load reads and parses one pre-resolved catalog export file.
func Load(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read catalog: %w", err)
	}
	cat, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("catalog %s: %w", filepath.Base(path), err)
	}
	return cat, nil
}

// Parse decodes a catalog export document: {"version", "classes",
// "objects", "types"} with attribute inheritance already flattened.
func Parse(data []byte) (*Catalog, error) {
	var c Catalog
	if err := json.Unmarshal(data, &c); err != nil {
		return nil, fmt.Errorf("decode: %w", err)
	}
	if c.Version == "" {
		return nil, fmt.Errorf("export declares no version")
	}
	if len(c.Classes) == 0 && len(c.Objects) == 0 {
		return nil, fmt.Errorf("export %s has no classes or objects", c.Version)
	}
	c.normalize()
	return &c, nil
}

// LoadVersion reads <dir>/<version>.json and checks the file agrees about
// which version it holds.
func LoadVersion(dir, version string) (*Catalog, error) {
	cat, err := Load(filepath.Join(dir, version+".json"))
	if err != nil {
		return nil, err
	}
	if cat.Version != version {
		return nil, fmt.Errorf("catalog file %s.json declares version %s", version, cat.Version)
	}
	return cat, nil
}

// ListVersions returns the catalog versions available in dir, sorted. A
// version is any *.json file named after it.
func ListVersions(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("list catalogs: %w", err)
	}
	var versions []string
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), ".json") {
			continue
		}
		versions = append(versions, strings.TrimSuffix(e.Name(), ".json"))
	}
	sort.Strings(versions)
	return versions, nil
}
