package cmd

import (
	"fmt"
	"io"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/warehouse-sim/warehouse-sim/sim/report"
)

var historyDB string // SQLite file written by run --report-db

// historyCmd lists the runs archived by run --report-db
var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List archived simulation runs",
	Run: func(cmd *cobra.Command, args []string) {
		if err := printHistory(cmd.OutOrStdout(), historyDB); err != nil {
			logrus.Fatalf("Could not read run history: %v", err)
		}
	},
}

func printHistory(w io.Writer, path string) error {
	store, err := report.Open(path)
	if err != nil {
		return err
	}
	defer store.Close()

	runs, err := store.ListRuns()
	if err != nil {
		return err
	}
	for _, r := range runs {
		fmt.Fprintf(w, "%s  %s  orders=%d loaded=%d trucks=%d  %s\n",
			r.ID, r.StartedAt.Format("2006-01-02 15:04:05"), r.Orders, r.LoadedOrders, r.Trucks, r.Description)
	}
	return nil
}

func init() {
	historyCmd.Flags().StringVar(&historyDB, "report-db", "warehouse.db", "SQLite file to read")
	rootCmd.AddCommand(historyCmd)
}
