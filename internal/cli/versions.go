package cli

import (
	"github.com/spf13/cobra"

	"github.com/telhawk-systems/telhawk-schema/internal/cliutil"
	"github.com/telhawk-systems/telhawk-schema/pkg/ocsf"
)

var versionsCmd = &cobra.Command{
	Use:   "versions",
	Short: "List catalog versions available in the catalog directory",
	Example: `  schemactl versions
  schemactl versions --catalog /var/lib/telhawk/catalogs`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		dir, _ := cmd.Flags().GetString("catalog")
		if dir == "" {
			dir = cfg.CatalogDir
		}

		versions, err := ocsf.ListVersions(dir)
		if err != nil {
			return err
		}

		if len(versions) == 0 {
			cliutil.Warn("no catalog exports found in %s", dir)
			return nil
		}

		outputFormat, _ := cmd.Flags().GetString("output")
		if outputFormat == "json" {
			return cliutil.JSON(versions)
		}

		table := cliutil.NewTable("VERSION")
		for _, v := range versions {
			table.AddRow(v)
		}
		table.Render()
		return nil
	},
}

func init() {
	rootCmd.AddCommand(versionsCmd)
}
