package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/telhawk-systems/telhawk-schema/pkg/ocsf"
)

// loadCatalog resolves the catalog directory and version from flags,
// falling back to the loaded config, and parses the export.
func loadCatalog(cmd *cobra.Command) (*ocsf.Catalog, error) {
	dir, _ := cmd.Flags().GetString("catalog")
	if dir == "" {
		dir = cfg.CatalogDir
	}

	version, _ := cmd.Flags().GetString("catalog-version")
	if version == "" {
		version = cfg.CatalogVersion
	}

	if version == "" {
		versions, err := ocsf.ListVersions(dir)
		if err != nil {
			return nil, fmt.Errorf("failed to list catalog versions: %w", err)
		}
		if len(versions) == 0 {
			return nil, fmt.Errorf("no catalog exports found in %s", dir)
		}
		version = versions[len(versions)-1]
	}

	catalog, err := ocsf.LoadVersion(dir, version)
	if err != nil {
		return nil, fmt.Errorf("failed to load catalog: %w", err)
	}

	return catalog, nil
}
