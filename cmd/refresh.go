package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/mkretz/budgetwatch/internal/refresh"
)

var refreshAll bool

var refreshCmd = &cobra.Command{
	Use:   "refresh [alert-id]",
	Short: "Refresh alerts against the provider",
	Long: `Fetches time entries for each configured alert, evaluates budgets, and
persists the updated snapshots. With no argument (or --all) every alert is
refreshed; with an alert id only that alert is.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runRefresh,
}

func init() {
	refreshCmd.Flags().BoolVar(&refreshAll, "all", false, "Refresh every alert")
}

func runRefresh(cmd *cobra.Command, args []string) error {
	log := newLogger()
	store := openStore()
	coord := refresh.NewCoordinator(store, clientFactory(log), log)

	var results []refresh.Result
	if len(args) == 1 && !refreshAll {
		res, err := coord.RefreshOne(cmd.Context(), args[0])
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(2)
		}
		results = []refresh.Result{res}
	} else {
		var err error
		results, err = coord.RefreshAll(cmd.Context())
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(2)
		}
	}

	failures := 0
	for _, r := range results {
		snap := r.Alert.LastSnapshot
		switch {
		case r.Success && snap != nil:
			fmt.Printf("  ✓ %s: %s (%.2fh of %gh, %.2f%%)\n",
				r.Alert.Name, snap.Status, snap.HoursUsed, snap.BudgetHours, snap.PercentUsed)
		case r.Success:
			fmt.Printf("  ✓ %s\n", r.Alert.Name)
		default:
			failures++
			fmt.Printf("  ! %s: %s\n", r.Alert.Name, r.ErrorMessage)
		}
	}
	if len(results) == 0 {
		fmt.Println("No alerts to refresh.")
	}
	if failures > 0 {
		os.Exit(1)
	}
	return nil
}
