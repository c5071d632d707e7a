package cli

import (
	"fmt"
	"strings"

	json "github.com/goccy/go-json"
	"github.com/spf13/cobra"

	"github.com/telhawk-systems/telhawk-schema/internal/cliutil"
	"github.com/telhawk-systems/telhawk-schema/pkg/jsonschema"
)

var compileCmd = &cobra.Command{
	Use:   "compile <name|uri>",
	Short: "Compile a class or object to a JSON schema document",
	Long:  "Compile a catalog class or object into a JSON Schema draft 2020-12 document and print it",
	Example: `  # Compile a class by name
  schemactl compile authentication

  # Compile an object
  schemactl compile user --object

  # Apply profiles and inline referenced objects
  schemactl compile authentication --profiles cloud,datetime --embed

  # Compile from a full schema URI
  schemactl compile "https://schema.ocsf.io/schema/1.3.0/classes/authentication"`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		catalog, err := loadCatalog(cmd)
		if err != nil {
			return err
		}

		gen := jsonschema.NewGenerator(catalog)
		embedded := jsonschema.NewEmbedded(gen)
		embed, _ := cmd.Flags().GetBool("embed")
		profiles, _ := cmd.Flags().GetStringSlice("profiles")
		object, _ := cmd.Flags().GetBool("object")

		name := args[0]
		var doc *jsonschema.Document
		switch {
		case strings.Contains(name, "://"):
			if embed {
				doc, err = embedded.SchemaForURI(name)
			} else {
				doc, err = gen.SchemaForURI(name)
			}
		case object:
			if embed {
				doc, err = embedded.ObjectSchema(name, profiles)
			} else {
				doc, err = gen.ObjectSchema(name, profiles)
			}
		default:
			if embed {
				doc, err = embedded.ClassSchema(name, profiles)
			} else {
				doc, err = gen.ClassSchema(name, profiles)
			}
		}
		if err != nil {
			return fmt.Errorf("compilation failed: %w", err)
		}

		data, err := json.MarshalIndent(doc, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to encode schema: %w", err)
		}

		outputFormat, _ := cmd.Flags().GetString("output")
		if outputFormat == "yaml" {
			return cliutil.YAML(data)
		}

		fmt.Println(string(data))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(compileCmd)

	compileCmd.Flags().Bool("object", false, "Treat <name> as an object instead of a class")
	compileCmd.Flags().StringSlice("profiles", nil, "Profiles to apply (comma-separated)")
	compileCmd.Flags().Bool("embed", false, "Inline referenced objects into $defs")
}
