package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/graphfoundry/queryforge/internal/execlog"
	"github.com/graphfoundry/queryforge/internal/params"
	"github.com/graphfoundry/queryforge/internal/template"
)

var (
	renderParams     []string
	renderParamsJSON string
	renderLimit      int

	execParams     []string
	execParamsJSON string
	execHistory    bool
)

func init() {
	rootCmd.AddCommand(renderCmd)
	rootCmd.AddCommand(execCmd)

	renderCmd.Flags().StringArrayVar(&renderParams, "param", nil, "parameter as name=value (repeatable)")
	renderCmd.Flags().StringVar(&renderParamsJSON, "params-json", "", "parameters as a JSON object")
	renderCmd.Flags().IntVar(&renderLimit, "limit", 0, "override the template's row limit")

	execCmd.Flags().StringArrayVar(&execParams, "param", nil, "parameter as name=value (repeatable)")
	execCmd.Flags().StringVar(&execParamsJSON, "params-json", "", "parameters as a JSON object")
	execCmd.Flags().BoolVar(&execHistory, "history", false, "record the result to the execution log")
}

var renderCmd = &cobra.Command{
	Use:   "render <name>",
	Short: "Render a template's query text",
	Long: "Render validates the supplied parameters against the template's schema\n" +
		"and prints the generated query. Invalid input fails with every\n" +
		"validation error at once.",
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		_, _, reg, err := setup()
		if err != nil {
			return err
		}

		t, err := reg.Get(args[0])
		if err != nil {
			return err
		}

		values, err := collectValues(t, renderParams, renderParamsJSON)
		if err != nil {
			return err
		}

		ctx := &template.Context{RowLimit: renderLimit}
		query, err := t.Generate(values, ctx)
		if err != nil {
			return err
		}

		fmt.Println(query)
		return nil
	},
}

var execCmd = &cobra.Command{
	Use:   "exec <name>",
	Short: "Run the template pipeline and print the JSON result envelope",
	Long: "Exec runs the same validate, normalize, render pipeline as render but\n" +
		"always succeeds at the process level: validation failures are reported\n" +
		"inside the JSON envelope instead of as an error exit.",
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, logger, reg, err := setup()
		if err != nil {
			return err
		}

		t, err := reg.Get(args[0])
		if err != nil {
			return err
		}

		values, err := collectValues(t, execParams, execParamsJSON)
		if err != nil {
			return err
		}

		result := t.Execute(values, nil)

		if execHistory {
			store, err := execlog.Open(cfg.HistoryPath)
			if err != nil {
				logger.Warn().Err(err).Msg("execution log unavailable; result not recorded")
			} else {
				defer store.Close()
				if err := store.Append(cmd.Context(), result); err != nil {
					logger.Warn().Err(err).Msg("failed to record execution")
				}
			}
		}

		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(result)
	},
}

// collectValues merges --params-json and --param flags into a raw value map,
// converting flag strings to the schema's expected type so validation sees
// properly typed input.
func collectValues(t *template.Template, flagParams []string, paramsJSON string) (map[string]any, error) {
	values := make(map[string]any)

	if paramsJSON != "" {
		if err := json.Unmarshal([]byte(paramsJSON), &values); err != nil {
			return nil, fmt.Errorf("parse --params-json: %w", err)
		}
	}

	types := make(map[string]params.Type)
	for _, schema := range t.Schemas() {
		types[schema.Name] = schema.Type
	}

	for _, raw := range flagParams {
		name, value, ok := strings.Cut(raw, "=")
		if !ok {
			return nil, fmt.Errorf("invalid --param %q: expected name=value", raw)
		}
		if declared, known := types[name]; known {
			values[name] = params.FromString(declared, value)
		} else {
			// Unknown names stay raw; validation reports them as warnings.
			values[name] = value
		}
	}

	return values, nil
}
