package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"github.com/mkretz/budgetwatch/internal/budget"
	"github.com/mkretz/budgetwatch/internal/model"
)

var (
	statusCompact      bool
	statusShowInactive bool
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show alert cards from the last refresh",
	Args:  cobra.NoArgs,
	RunE:  runStatus,
}

func init() {
	statusCmd.Flags().BoolVar(&statusCompact, "compact", false, "One line per alert")
	statusCmd.Flags().BoolVar(&statusShowInactive, "show-inactive", false, "Include disabled alerts")
}

// statusColors are ANSI colors keyed by snapshot status.
var statusColors = map[model.Status]lipgloss.Color{
	model.StatusGreen:    lipgloss.Color("2"),
	model.StatusYellow:   lipgloss.Color("3"),
	model.StatusRed:      lipgloss.Color("1"),
	model.StatusInactive: lipgloss.Color("8"),
	model.StatusError:    lipgloss.Color("5"),
}

func runStatus(cmd *cobra.Command, args []string) error {
	store := openStore()
	alerts, err := store.GetAlerts()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}

	prefs, err := store.GetUIPreferences()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: %v\n", err)
	}
	// Explicit flags win over stored preferences and are remembered.
	patch := model.UIPreferencesPatch{}
	if cmd.Flags().Changed("compact") {
		patch.CompactCards = &statusCompact
	} else {
		statusCompact = prefs.CompactCards
	}
	if cmd.Flags().Changed("show-inactive") {
		patch.ShowInactive = &statusShowInactive
	} else {
		statusShowInactive = prefs.ShowInactive
	}
	if patch.CompactCards != nil || patch.ShowInactive != nil {
		if _, err := store.SetUIPreferences(patch); err != nil {
			fmt.Fprintf(os.Stderr, "Warning: %v\n", err)
		}
	}

	if len(alerts) == 0 {
		fmt.Println("No alerts configured. Add one with 'budgetwatch alert add'.")
		return nil
	}

	useColor := isatty.IsTerminal(os.Stdout.Fd())
	shown := 0
	for _, a := range alerts {
		if !a.Active && !statusShowInactive {
			continue
		}
		shown++
		if statusCompact {
			fmt.Println(renderLine(&a, useColor))
		} else {
			fmt.Println(renderCard(&a, useColor))
		}
	}
	if shown == 0 {
		fmt.Println("All alerts are disabled. Use --show-inactive to see them.")
	}
	return nil
}

func snapshotOf(a *model.AlertConfig) model.AlertSnapshot {
	if a.LastSnapshot != nil {
		return *a.LastSnapshot
	}
	return model.AlertSnapshot{
		Status:       model.StatusInactive,
		BudgetHours:  a.BudgetHours,
		ScopeSummary: budget.ScopeSummary(a),
	}
}

func statusLabel(snap model.AlertSnapshot, useColor bool) string {
	label := strings.ToUpper(string(snap.Status))
	if !useColor {
		return label
	}
	color, ok := statusColors[snap.Status]
	if !ok {
		return label
	}
	return lipgloss.NewStyle().Bold(true).Foreground(color).Render(label)
}

// renderLine is the one-line compact view.
func renderLine(a *model.AlertConfig, useColor bool) string {
	snap := snapshotOf(a)
	if snap.Status == model.StatusError {
		return fmt.Sprintf("%-8s %s: %s", statusLabel(snap, useColor), a.Name, snap.ErrorMessage)
	}
	return fmt.Sprintf("%-8s %s: %.2fh of %gh (%.2f%%)",
		statusLabel(snap, useColor), a.Name, snap.HoursUsed, snap.BudgetHours, snap.PercentUsed)
}

// renderCard is the bordered card view.
func renderCard(a *model.AlertConfig, useColor bool) string {
	snap := snapshotOf(a)

	var b strings.Builder
	fmt.Fprintf(&b, "%s  %s\n", statusLabel(snap, useColor), a.Name)
	fmt.Fprintf(&b, "%s\n", snap.ScopeSummary)
	fmt.Fprintf(&b, "Used %.2fh of %gh (%.2f%%), %d entries",
		snap.HoursUsed, snap.BudgetHours, snap.PercentUsed, snap.EntryCount)
	if snap.OverByHours > 0 {
		fmt.Fprintf(&b, "\nOver budget by %.2fh", snap.OverByHours)
	} else {
		fmt.Fprintf(&b, "\nRemaining %.2fh", snap.RemainingHours)
	}
	if snap.ErrorMessage != "" {
		fmt.Fprintf(&b, "\n%s", snap.ErrorMessage)
	}
	if snap.WarningMessage != "" {
		fmt.Fprintf(&b, "\n%s", snap.WarningMessage)
	}
	if !snap.Timestamp.IsZero() {
		fmt.Fprintf(&b, "\nLast refresh %s", snap.Timestamp.Format("2006-01-02 15:04"))
	}

	content := b.String()
	if !useColor {
		return content + "\n"
	}
	border := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(statusColors[snap.Status]).
		Padding(0, 1)
	return border.Render(content)
}
