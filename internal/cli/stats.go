package cli

import (
	"fmt"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/tgienger/taskmaster/internal/analytics"
	"github.com/tgienger/taskmaster/internal/streak"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show completion statistics",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return withRuntime(cmd.OutOrStdout(), func(r *runtime) error {
			printStats(r, time.Now())
			return nil
		})
	},
}

var streakCmd = &cobra.Command{
	Use:   "streak",
	Short: "Show the daily completion streak",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return withRuntime(cmd.OutOrStdout(), func(r *runtime) error {
			printStreak(r, time.Now())
			return nil
		})
	},
}

func printStats(r *runtime, now time.Time) {
	list := r.store.Snapshot().Tasks
	st := analytics.ProductivityStatsAt(list, now)

	summary := table.New().
		Border(lipgloss.NormalBorder()).
		Headers("TOTAL", "COMPLETED", "RATE", "TODAY").
		Row(
			fmt.Sprint(st.Total),
			fmt.Sprint(st.Completed),
			fmt.Sprintf("%d%%", st.CompletionRate),
			fmt.Sprint(st.TasksCompletedToday),
		)
	fmt.Fprintln(r.out, summary.Render())

	byPriority := table.New().
		Border(lipgloss.NormalBorder()).
		Headers("PRIORITY", "TASKS")
	for _, pc := range analytics.PriorityBreakdown(list) {
		byPriority.Row(string(pc.Priority), fmt.Sprint(pc.Count))
	}
	fmt.Fprintln(r.out, byPriority.Render())
}

func printStreak(r *runtime, now time.Time) {
	sd := r.store.Snapshot().Streak
	current := streak.Current(sd, now)
	status := streak.Status(sd, now)

	fmt.Fprintf(r.out, "🔥 %d  %s\n", current, streak.Headline(current))
	fmt.Fprintf(r.out, "Longest: %d • %s\n", sd.LongestStreak, status)
	if status == streak.AtRisk {
		fmt.Fprintln(r.out, "Complete a task today to keep it going.")
	}
}
