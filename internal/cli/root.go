// Package cli implements the schemactl command tree.
package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	cfgFile string
	cfg     *Config
)

var rootCmd = &cobra.Command{
	Use:   "schemactl",
	Short: "TelHawk schema service CLI",
	Long: `schemactl works with OCSF catalog exports from the command line.

Compile classes and objects into JSON Schema draft 2020-12 documents,
inline object references for offline validation, check generated
documents against the meta-schema, and resolve class UIDs.`,
	Version: "0.1.0",
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default: $HOME/.schemactl/config.yaml)")
	rootCmd.PersistentFlags().String("catalog", "", "catalog export directory")
	rootCmd.PersistentFlags().String("catalog-version", "", "catalog version to load (default: newest export)")
	rootCmd.PersistentFlags().String("output", "json", "output format: json, yaml, or table")
}

func initConfig() {
	var err error
	cfg, err = LoadConfig(cfgFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: Could not load config: %v\n", err)
		cfg = DefaultConfig()
	}
}
