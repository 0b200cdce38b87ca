package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/braglog/brag/internal/store"
	"github.com/braglog/brag/internal/ui"
	"github.com/spf13/cobra"
)

var (
	statsWeek  bool
	statsMonth bool
	statsYear  bool
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show entry statistics",
	Run: func(cmd *cobra.Command, args []string) {
		ctx := context.Background()

		st, err := openStore(ctx)
		if err != nil {
			fatal(err)
		}
		defer st.Close()

		period := store.PeriodAll
		label := "All Time"
		switch {
		case statsWeek:
			period = store.PeriodWeek
			label = "This Week"
		case statsMonth:
			period = store.PeriodMonth
			label = "This Month"
		case statsYear:
			period = store.PeriodYear
			label = "This Year"
		}

		stats, err := st.EntryStats(ctx, period)
		if err != nil {
			fatal(err)
		}

		fmt.Println(ui.RenderHeader(fmt.Sprintf("\nStats - %s\n", label)))
		fmt.Printf("%s %d\n", ui.RenderAccent("Total Entries:"), stats.Total)

		if len(stats.ByCategory) > 0 {
			fmt.Println(ui.RenderAccent("\nBy Category:"))
			for _, b := range stats.ByCategory {
				name := b.Label
				if name == "" {
					name = "Uncategorized"
				}
				fmt.Printf("  %-25s %d\n", name, b.Count)
			}
		}

		if len(stats.ByImpact) > 0 {
			fmt.Println(ui.RenderAccent("\nBy Impact:"))
			for _, b := range stats.ByImpact {
				level := b.Label
				if level == "" {
					level = "None"
				}
				// pad before styling so ANSI codes don't skew the column
				fmt.Printf("  %s%d\n", impactStyle(fmt.Sprintf("%-25s", level)), b.Count)
			}
		}
		fmt.Println()
	},
}

func impactStyle(level string) string {
	switch strings.TrimSpace(level) {
	case "high":
		return ui.RenderError(level)
	case "medium":
		return ui.RenderWarn(level)
	case "low":
		return ui.RenderPass(level)
	default:
		return ui.RenderMuted(level)
	}
}

func init() {
	statsCmd.Flags().BoolVarP(&statsWeek, "week", "w", false, "this week's stats")
	statsCmd.Flags().BoolVarP(&statsMonth, "month", "m", false, "this month's stats")
	statsCmd.Flags().BoolVarP(&statsYear, "year", "y", false, "this year's stats")
	rootCmd.AddCommand(statsCmd)
}
