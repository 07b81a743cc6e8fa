package cli

import (
	"fmt"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/graphfoundry/queryforge/internal/execlog"
)

var historyLimit int

func init() {
	rootCmd.AddCommand(historyCmd)
	historyCmd.Flags().IntVar(&historyLimit, "limit", 20, "maximum records to list")
}

var historyCmd = &cobra.Command{
	Use:   "history [name]",
	Short: "List recorded executions",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, _, _, err := setup()
		if err != nil {
			return err
		}

		store, err := execlog.Open(cfg.HistoryPath)
		if err != nil {
			return err
		}
		defer store.Close()

		var records []*execlog.Record
		if len(args) == 1 {
			records, err = store.ByTemplate(cmd.Context(), args[0], historyLimit)
		} else {
			records, err = store.Recent(cmd.Context(), historyLimit)
		}
		if err != nil {
			return err
		}

		if len(records) == 0 {
			fmt.Println("No recorded executions.")
			return nil
		}

		rows := make([][]string, 0, len(records))
		for _, record := range records {
			rows = append(rows, []string{
				record.CreatedAt.Format("2006-01-02 15:04:05"),
				record.TemplateName,
				formatYesNo(record.Valid),
				strconv.Itoa(len(record.Errors)),
				truncate(record.Query, 60),
			})
		}
		return writeTable(os.Stdout, []string{"WHEN", "TEMPLATE", "VALID", "ERRORS", "QUERY"}, rows)
	},
}
