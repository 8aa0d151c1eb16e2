package cli

import (
	"fmt"
	"os"
	"sort"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/ritual-sh/ritual/internal/daemon"
)

func init() {
	streaksCmd.Flags().StringVar(&streaksDate, "date", "", "Day to anchor the scan (YYYY-MM-DD, default today)")
	rootCmd.AddCommand(streaksCmd)
}

var streaksDate string

var streaksCmd = &cobra.Command{
	Use:   "streaks",
	Short: "Show current and longest streaks",
	RunE:  runStreaks,
}

func runStreaks(cmd *cobra.Command, args []string) error {
	return withDaemon(func(d *daemon.Daemon) error {
		day, err := parseDayFlag(streaksDate)
		if err != nil {
			return err
		}

		streaks, err := d.Streaks.All(day)
		if err != nil {
			return err
		}

		keys := make([]string, 0, len(streaks))
		for k := range streaks {
			keys = append(keys, k)
		}
		sort.Strings(keys)

		w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
		fmt.Fprintln(w, "STREAK\tCURRENT\tLONGEST\tLAST")
		for _, k := range keys {
			s := streaks[k]
			last := "-"
			if s.LastDate != "" {
				last = string(s.LastDate)
			}
			fmt.Fprintf(w, "%s\t%d\t%d\t%s\n", k, s.CurrentStreak, s.LongestStreak, last)
		}
		return w.Flush()
	})
}
