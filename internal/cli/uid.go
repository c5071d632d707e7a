package cli

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/telhawk-systems/telhawk-schema/internal/cliutil"
	"github.com/telhawk-systems/telhawk-schema/internal/service"
)

var uidCmd = &cobra.Command{
	Use:   "uid <uid>",
	Short: "Resolve a class or type UID to its class",
	Long:  "Resolve a class UID or activity-qualified type UID to the class that defines it",
	Example: `  # Class UID
  schemactl uid 3002

  # Type UID (class 3002, activity 1)
  schemactl uid 300201 --output json`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		uid, err := strconv.Atoi(args[0])
		if err != nil {
			return fmt.Errorf("uid must be an integer: %q", args[0])
		}

		catalog, err := loadCatalog(cmd)
		if err != nil {
			return err
		}

		lookup, err := service.New(catalog, nil).LookupUID(uid)
		if err != nil {
			return err
		}

		outputFormat, _ := cmd.Flags().GetString("output")
		if outputFormat == "json" {
			return cliutil.JSON(lookup)
		}

		table := cliutil.NewTable("UID", "CLASS UID", "ACTIVITY", "CLASS")
		table.AddRow(
			strconv.Itoa(lookup.UID),
			strconv.Itoa(lookup.ClassUID),
			strconv.Itoa(lookup.ActivityID),
			lookup.ClassName,
		)
		table.Render()
		return nil
	},
}

func init() {
	rootCmd.AddCommand(uidCmd)
}
