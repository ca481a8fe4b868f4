package cmd

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/mkretz/budgetwatch/internal/budget"
	"github.com/mkretz/budgetwatch/internal/model"
)

var (
	alertAddName        string
	alertAddTeam        string
	alertAddScope       string
	alertAddCustomScope string
	alertAddFolder      string
	alertAddList        string
	alertAddRange       string
	alertAddFrom        string
	alertAddTo          string
	alertAddBudget      float64
	alertAddWarn        float64
	alertAddCrit        float64
	alertAddExclude     string
	alertAddOnly        string
	alertAddEvery       int
	alertAddInactive    bool
)

var alertCmd = &cobra.Command{
	Use:   "alert",
	Short: "Manage budget alerts",
}

var alertAddCmd = &cobra.Command{
	Use:   "add",
	Short: "Add a new budget alert",
	Args:  cobra.NoArgs,
	RunE:  runAlertAdd,
}

var alertListCmd = &cobra.Command{
	Use:   "list",
	Short: "List configured alerts",
	Args:  cobra.NoArgs,
	RunE:  runAlertList,
}

var alertRemoveCmd = &cobra.Command{
	Use:   "remove <id>",
	Short: "Remove an alert",
	Args:  cobra.ExactArgs(1),
	RunE:  runAlertRemove,
}

var alertEnableCmd = &cobra.Command{
	Use:   "enable <id>",
	Short: "Enable an alert",
	Args:  cobra.ExactArgs(1),
	RunE:  func(cmd *cobra.Command, args []string) error { return setAlertActive(args[0], true) },
}

var alertDisableCmd = &cobra.Command{
	Use:   "disable <id>",
	Short: "Disable an alert",
	Args:  cobra.ExactArgs(1),
	RunE:  func(cmd *cobra.Command, args []string) error { return setAlertActive(args[0], false) },
}

func init() {
	f := alertAddCmd.Flags()
	f.StringVar(&alertAddName, "name", "", "Alert display name")
	f.StringVar(&alertAddTeam, "team", "", "Workspace (team) id")
	f.StringVar(&alertAddScope, "scope", "folder", "Scope type: folder, list or custom")
	f.StringVar(&alertAddCustomScope, "custom-scope", "", "Container kind for custom scope: folder or list")
	f.StringVar(&alertAddFolder, "folder", "", "Folder id")
	f.StringVar(&alertAddList, "list", "", "List id")
	f.StringVar(&alertAddRange, "range", "monthly", "Time range mode: monthly, custom or none")
	f.StringVar(&alertAddFrom, "from", "", "Custom range start date (YYYY-MM-DD)")
	f.StringVar(&alertAddTo, "to", "", "Custom range end date (YYYY-MM-DD)")
	f.Float64Var(&alertAddBudget, "budget", 0, "Budget in hours")
	f.Float64Var(&alertAddWarn, "warn", 80, "Warning threshold percent")
	f.Float64Var(&alertAddCrit, "crit", 100, "Critical threshold percent")
	f.StringVar(&alertAddExclude, "exclude-tasks", "", "Comma-separated task ids to exclude")
	f.StringVar(&alertAddOnly, "only-tasks", "", "Comma-separated task ids to restrict to")
	f.IntVar(&alertAddEvery, "every", 0, "Refresh frequency in minutes (0 = manual only)")
	f.BoolVar(&alertAddInactive, "inactive", false, "Create the alert disabled")

	alertCmd.AddCommand(alertAddCmd)
	alertCmd.AddCommand(alertListCmd)
	alertCmd.AddCommand(alertRemoveCmd)
	alertCmd.AddCommand(alertEnableCmd)
	alertCmd.AddCommand(alertDisableCmd)
}

func splitIDList(s string) []string {
	if s == "" {
		return nil
	}
	return budget.NormalizeTaskIDSet(strings.Split(s, ","))
}

func runAlertAdd(cmd *cobra.Command, args []string) error {
	now := time.Now()
	alert := model.AlertConfig{
		ID:                      uuid.New().String(),
		Name:                    alertAddName,
		ScopeType:               model.ScopeType(alertAddScope),
		CustomScope:             model.ScopeType(alertAddCustomScope),
		TeamID:                  alertAddTeam,
		FolderID:                alertAddFolder,
		ListID:                  alertAddList,
		RangeMode:               model.RangeMode(alertAddRange),
		StartDate:               alertAddFrom,
		EndDate:                 alertAddTo,
		BudgetHours:             alertAddBudget,
		WarningThresholdPct:     alertAddWarn,
		CriticalThresholdPct:    alertAddCrit,
		ExcludedTaskIDs:         splitIDList(alertAddExclude),
		IncludeOnlyTaskIDs:      splitIDList(alertAddOnly),
		RefreshFrequencyMinutes: alertAddEvery,
		Active:                  !alertAddInactive,
		CreatedAt:               now,
		UpdatedAt:               now,
	}
	if alert.Name == "" {
		alert.Name = budget.ScopeSummary(&alert)
	}

	if err := model.ValidateAlert(&alert); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	store := openStore()
	if _, err := store.AddAlert(alert); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}
	fmt.Printf("Added alert %q (%s)\n", alert.Name, alert.ID)
	return nil
}

func runAlertList(cmd *cobra.Command, args []string) error {
	store := openStore()
	alerts, err := store.GetAlerts()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}
	if len(alerts) == 0 {
		fmt.Println("No alerts configured. Add one with 'budgetwatch alert add'.")
		return nil
	}

	for _, a := range alerts {
		state := "active"
		if !a.Active {
			state = "disabled"
		}
		status := "never refreshed"
		if a.LastSnapshot != nil {
			status = string(a.LastSnapshot.Status)
		}
		fmt.Printf("%d  %s  %s\n", a.Order, a.ID, a.Name)
		fmt.Printf("   %s | budget %gh | %s | %s\n",
			budget.ScopeSummary(&a), a.BudgetHours, state, status)
	}
	return nil
}

func runAlertRemove(cmd *cobra.Command, args []string) error {
	store := openStore()
	removed, err := store.DeleteAlert(args[0])
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}
	if !removed {
		fmt.Fprintf(os.Stderr, "No alert with id %s\n", args[0])
		os.Exit(1)
	}
	fmt.Println("Alert removed.")
	return nil
}

func setAlertActive(id string, active bool) error {
	store := openStore()
	alerts, err := store.GetAlerts()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}
	for _, a := range alerts {
		if a.ID != id {
			continue
		}
		a.Active = active
		a.UpdatedAt = time.Now()
		if err := store.UpdateAlert(a); err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(2)
		}
		if active {
			fmt.Println("Alert enabled.")
		} else {
			fmt.Println("Alert disabled.")
		}
		return nil
	}
	fmt.Fprintf(os.Stderr, "No alert with id %s\n", id)
	os.Exit(1)
	return nil
}
