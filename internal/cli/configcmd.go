package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/telhawk-systems/telhawk-schema/internal/cliutil"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage schemactl configuration",
	Long:  "Inspect and persist schemactl settings in the user config file",
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Write the current settings to the config file",
	Example: `  schemactl config init --catalog /var/lib/telhawk/catalogs
  schemactl config init --catalog-version 1.3.0`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if dir, _ := cmd.Flags().GetString("catalog"); dir != "" {
			cfg.CatalogDir = dir
		}
		if version, _ := cmd.Flags().GetString("catalog-version"); version != "" {
			cfg.CatalogVersion = version
		}

		if err := cfg.Save(); err != nil {
			return fmt.Errorf("failed to write config: %w", err)
		}

		cliutil.Success("Config written to %s", cfg.path)
		return nil
	},
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show the effective configuration",
	RunE: func(cmd *cobra.Command, args []string) error {
		outputFormat, _ := cmd.Flags().GetString("output")
		if outputFormat == "json" {
			return cliutil.JSON(cfg)
		}

		table := cliutil.NewTable("KEY", "VALUE")
		table.AddRow("catalog_dir", cfg.CatalogDir)
		table.AddRow("catalog_version", cfg.CatalogVersion)
		table.Render()
		return nil
	},
}

func init() {
	rootCmd.AddCommand(configCmd)
	configCmd.AddCommand(configInitCmd)
	configCmd.AddCommand(configShowCmd)
}
