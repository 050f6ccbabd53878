package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/dukerupert/dietlog/internal/model"
	"github.com/dukerupert/dietlog/internal/stats"
)

func newStatsCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Show calorie and macro totals",
	}
	cmd.AddCommand(
		&cobra.Command{
			Use:   "day <date>",
			Short: "Totals for one date",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				day, err := a.client().GetDailyStats(cmd.Context(), args[0])
				if err != nil {
					return err
				}
				printStats(cmd.OutOrStdout(), []model.DailyStats{day})
				return nil
			},
		},
		&cobra.Command{
			Use:   "week <endDate>",
			Short: "Totals for the seven days ending on endDate, with averages",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				week, err := a.client().GetWeeklyStats(cmd.Context(), args[0])
				if err != nil {
					return err
				}
				out := cmd.OutOrStdout()
				printStats(out, week)
				s := stats.Summarize(week)
				fmt.Fprintf(out, "AVERAGE\t%s\t%s\t%s\n", num(s.AvgConsumed), num(s.AvgBurned), num(s.AvgNet))
				return nil
			},
		},
	)
	return cmd
}

func printStats(out io.Writer, days []model.DailyStats) {
	fmt.Fprintln(out, "DATE\tCONSUMED\tBURNED\tNET\tPROTEIN\tCARBS\tFAT")
	for _, d := range days {
		fmt.Fprintf(out, "%s\t%s\t%s\t%s\t%s\t%s\t%s\n", d.Date,
			num(d.TotalCaloriesConsumed), num(d.TotalCaloriesBurned), num(d.NetCalories),
			num(d.TotalProtein), num(d.TotalCarbs), num(d.TotalFat))
	}
}
