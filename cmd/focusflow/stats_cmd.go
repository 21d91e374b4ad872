package main

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/sadopc/focusflow/internal/store"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show today's focus stats and the weekly summary",
	RunE:  runStats,
}

func runStats(cmd *cobra.Command, args []string) error {
	return withStore(func(s store.Store) error {
		today, err := s.TodayStats()
		if err != nil {
			return err
		}
		streak, err := s.CurrentStreak()
		if err != nil {
			return err
		}
		week, err := s.WeeklyStats()
		if err != nil {
			return err
		}

		if today.TotalChecks == 0 {
			fmt.Println("No checks recorded today yet.")
		} else {
			fmt.Printf("Today: ⭐ %.1f/100 focus score over %d checks\n", today.FocusScore, today.TotalChecks)
			fmt.Printf("       ✅ %d on track  ⚠️ %d distracted  💤 %d idle\n",
				today.OnTrack, today.Distracted, today.Idle)
			fmt.Printf("       🔥 Current streak %d, best today %d\n", streak, today.MaxStreak)
		}

		if len(week) == 0 {
			return nil
		}

		fmt.Println("\nLast 7 days:")
		w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "DATE\tSCORE\tON TRACK\tDISTRACTED\tIDLE")
		for _, day := range week {
			fmt.Fprintf(w, "%s\t%.1f%%\t%d\t%d\t%d\n",
				day.Date, day.FocusScore, day.OnTrack, day.Distracted, day.Idle)
		}
		return w.Flush()
	})
}
