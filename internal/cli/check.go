package cli

import (
	"fmt"

	json "github.com/goccy/go-json"
	"github.com/spf13/cobra"

	"github.com/telhawk-systems/telhawk-schema/internal/cliutil"
	"github.com/telhawk-systems/telhawk-schema/internal/validate"
	"github.com/telhawk-systems/telhawk-schema/pkg/jsonschema"
)

var checkCmd = &cobra.Command{
	Use:   "check [name]",
	Short: "Validate compiled schemas against the draft 2020-12 metaschema",
	Long:  "Compile catalog entries and verify the output is a valid JSON Schema draft 2020-12 document",
	Example: `  # Check a single class
  schemactl check authentication

  # Check an object with profiles applied
  schemactl check user --object --profiles cloud

  # Check every class and object in the catalog
  schemactl check --all --embed`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		catalog, err := loadCatalog(cmd)
		if err != nil {
			return err
		}

		gen := jsonschema.NewGenerator(catalog)
		checker := &entryChecker{
			gen:      gen,
			embedded: jsonschema.NewEmbedded(gen),
		}
		checker.embed, _ = cmd.Flags().GetBool("embed")

		all, _ := cmd.Flags().GetBool("all")
		if all {
			for _, name := range catalog.ClassNames() {
				if cls, ok := catalog.Class(name); ok {
					checker.class(name, cls.Profiles)
				}
			}
			for _, name := range catalog.ObjectNames() {
				checker.object(name, nil)
			}
		} else {
			if len(args) == 0 {
				return fmt.Errorf("a class or object name is required (or use --all)")
			}
			profiles, _ := cmd.Flags().GetStringSlice("profiles")
			object, _ := cmd.Flags().GetBool("object")
			if object {
				checker.object(args[0], profiles)
			} else {
				checker.class(args[0], profiles)
			}
		}

		if checker.failed > 0 {
			return fmt.Errorf("%d of %d entries failed validation", checker.failed, checker.checked)
		}

		cliutil.Success("%d entries validated", checker.checked)
		return nil
	},
}

type entryChecker struct {
	gen      *jsonschema.Generator
	embedded *jsonschema.Embedded
	embed    bool
	checked  int
	failed   int
}

func (c *entryChecker) class(name string, profiles []string) {
	c.run("class", name,
		func() (*jsonschema.Document, error) { return c.gen.ClassSchema(name, profiles) },
		func() (*jsonschema.Document, error) { return c.embedded.ClassSchema(name, profiles) })
}

func (c *entryChecker) object(name string, profiles []string) {
	c.run("object", name,
		func() (*jsonschema.Document, error) { return c.gen.ObjectSchema(name, profiles) },
		func() (*jsonschema.Document, error) { return c.embedded.ObjectSchema(name, profiles) })
}

// run metaschema-checks the plain document, then additionally compiles
// the embedded variant when --embed is set. Only embedded documents are
// self-contained enough for a full compile; plain ones reference other
// schemas by absolute URI.
func (c *entryChecker) run(kind, name string, plain, inline func() (*jsonschema.Document, error)) {
	c.checked++

	doc, err := plain()
	if err != nil {
		c.fail(kind, name, err)
		return
	}
	data, err := json.Marshal(doc)
	if err != nil {
		c.fail(kind, name, err)
		return
	}
	if err := validate.CheckDocument(data); err != nil {
		c.fail(kind, name, err)
		return
	}

	if !c.embed {
		return
	}

	doc, err = inline()
	if err != nil {
		c.fail(kind, name, err)
		return
	}
	data, err = json.Marshal(doc)
	if err != nil {
		c.fail(kind, name, err)
		return
	}
	if _, err := validate.CompileDocument(data); err != nil {
		c.fail(kind, name, err)
	}
}

func (c *entryChecker) fail(kind, name string, err error) {
	c.failed++
	cliutil.Error("%s %s: %v", kind, name, err)
}

func init() {
	rootCmd.AddCommand(checkCmd)

	checkCmd.Flags().Bool("all", false, "Check every class and object in the catalog")
	checkCmd.Flags().Bool("object", false, "Treat <name> as an object instead of a class")
	checkCmd.Flags().StringSlice("profiles", nil, "Profiles to apply (comma-separated)")
	checkCmd.Flags().Bool("embed", false, "Also validate the embedded variant of each schema")
}
