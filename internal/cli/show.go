package cli

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/graphfoundry/queryforge/internal/template"
)

var docsAll bool

func init() {
	rootCmd.AddCommand(showCmd)
	rootCmd.AddCommand(docsCmd)
	docsCmd.Flags().BoolVar(&docsAll, "all", false, "export documentation for every template")
}

var showCmd = &cobra.Command{
	Use:   "show <name>",
	Short: "Show a template's metadata and parameters",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		_, _, reg, err := setup()
		if err != nil {
			return err
		}

		t, err := reg.Get(args[0])
		if err != nil {
			return err
		}
		meta := t.Metadata()

		fmt.Printf("Name:      %s\n", meta.Name)
		fmt.Printf("Category:  %s\n", meta.Category)
		if len(meta.Tags) > 0 {
			fmt.Printf("Tags:      %s\n", strings.Join(meta.Tags, ", "))
		}
		fmt.Printf("Purpose:   %s\n", meta.Purpose)
		if meta.PainPoint != "" {
			fmt.Printf("Pain point: %s\n", meta.PainPoint)
		}
		fmt.Println()

		schemas := t.Schemas()
		if len(schemas) == 0 {
			fmt.Println("No parameters.")
			return nil
		}

		rows := make([][]string, 0, len(schemas))
		for _, schema := range schemas {
			def := ""
			if schema.Default != nil {
				def = fmt.Sprint(schema.Default)
			}
			rows = append(rows, []string{
				schema.Name,
				string(schema.Type),
				formatYesNo(schema.Required),
				def,
				strings.Join(schema.Examples, ", "),
			})
		}
		if err := writeTable(os.Stdout, []string{"PARAMETER", "TYPE", "REQUIRED", "DEFAULT", "EXAMPLES"}, rows); err != nil {
			return err
		}

		if isInteractive() {
			fmt.Printf("\nRender with: queryforge render %s --param name=value\n", meta.Name)
		}
		return nil
	},
}

var docsCmd = &cobra.Command{
	Use:   "docs [name]",
	Short: "Export markdown documentation for templates",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		_, _, reg, err := setup()
		if err != nil {
			return err
		}

		if docsAll || len(args) == 0 {
			for i, name := range reg.List() {
				t, err := reg.Get(name)
				if err != nil {
					return err
				}
				if i > 0 {
					fmt.Println()
				}
				fmt.Print(template.Document(t))
			}
			return nil
		}

		t, err := reg.Get(args[0])
		if err != nil {
			return err
		}
		fmt.Print(template.Document(t))
		return nil
	},
}
