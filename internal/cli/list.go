package cli

import (
	"fmt"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/graphfoundry/queryforge/internal/template"
)

var (
	listCategory string
	listTag      string
)

func init() {
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(searchCmd)
	listCmd.Flags().StringVar(&listCategory, "category", "", "only templates in this category")
	listCmd.Flags().StringVar(&listTag, "tag", "", "only templates carrying this tag")
}

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List registered templates",
	RunE: func(cmd *cobra.Command, args []string) error {
		_, _, reg, err := setup()
		if err != nil {
			return err
		}

		var templates []*template.Template
		switch {
		case listCategory != "":
			templates = reg.ByCategory(listCategory)
		case listTag != "":
			templates = reg.ByTag(listTag)
		default:
			for _, name := range reg.List() {
				t, err := reg.Get(name)
				if err != nil {
					return err
				}
				templates = append(templates, t)
			}
		}

		if len(templates) == 0 {
			fmt.Println("No templates found.")
			return nil
		}
		return printTemplateTable(templates)
	},
}

var searchCmd = &cobra.Command{
	Use:   "search <keyword>",
	Short: "Search templates by keyword",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		_, _, reg, err := setup()
		if err != nil {
			return err
		}

		templates := reg.Search(args[0])
		if len(templates) == 0 {
			fmt.Printf("No templates match %q.\n", args[0])
			return nil
		}
		return printTemplateTable(templates)
	},
}

func printTemplateTable(templates []*template.Template) error {
	rows := make([][]string, 0, len(templates))
	for _, t := range templates {
		meta := t.Metadata()
		rows = append(rows, []string{
			meta.Name,
			meta.Category,
			strconv.Itoa(meta.ParameterCount),
			truncate(meta.Purpose, 72),
		})
	}
	return writeTable(os.Stdout, []string{"NAME", "CATEGORY", "PARAMS", "PURPOSE"}, rows)
}
