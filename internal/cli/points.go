package cli

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/ritual-sh/ritual/internal/daemon"
	"github.com/ritual-sh/ritual/internal/domain"
)

func init() {
	pointsCmd.Flags().StringVar(&pointsDate, "date", "", "Day to score (YYYY-MM-DD, default today)")
	pointsCmd.Flags().BoolVar(&pointsWeekly, "weekly", false, "Show the 7-day window with multiplier")
	pointsCmd.Flags().BoolVar(&pointsMonthly, "monthly", false, "Show the calendar month summary")
	pointsCmd.Flags().BoolVar(&pointsLifetime, "lifetime", false, "Show totals since the first log")
	pointsCmd.Flags().IntVar(&pointsYear, "year", 0, "Year for --monthly (default current)")
	pointsCmd.Flags().IntVar(&pointsMonth, "month", 0, "Month for --monthly (default current)")
	rootCmd.AddCommand(pointsCmd)
}

var (
	pointsDate     string
	pointsWeekly   bool
	pointsMonthly  bool
	pointsLifetime bool
	pointsYear     int
	pointsMonth    int
)

var pointsCmd = &cobra.Command{
	Use:   "points",
	Short: "Show point breakdowns for a day, week, month, or lifetime",
	RunE:  runPoints,
}

func runPoints(cmd *cobra.Command, args []string) error {
	return withDaemon(func(d *daemon.Daemon) error {
		day, err := parseDayFlag(pointsDate)
		if err != nil {
			return err
		}

		switch {
		case pointsWeekly:
			return printWeekly(d, day)
		case pointsMonthly:
			return printMonthly(d, day)
		case pointsLifetime:
			return printLifetime(d, day)
		default:
			return printDaily(d, day)
		}
	})
}

func printDaily(d *daemon.Daemon, day domain.Day) error {
	p, err := d.Points.Daily(day)
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "MODULE\tPOINTS\n")
	fmt.Fprintf(w, "body\t%d\n", p.Body)
	fmt.Fprintf(w, "photos\t%d\n", p.Photos)
	fmt.Fprintf(w, "time\t%d\n", p.Time)
	fmt.Fprintf(w, "medication\t%d\n", p.Medication)
	fmt.Fprintf(w, "oral\t%d\n", p.Oral)
	fmt.Fprintf(w, "pushups\t%d\n", p.Pushups)
	fmt.Fprintf(w, "total\t%d\n", p.Total)
	return w.Flush()
}

func printWeekly(d *daemon.Daemon, day domain.Day) error {
	s, err := d.Points.Weekly(day)
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "DATE\tPOINTS")
	for _, p := range s.Days {
		fmt.Fprintf(w, "%s\t%d\n", p.Day, p.Total)
	}
	if err := w.Flush(); err != nil {
		return err
	}

	fmt.Printf("\nActive days: %d/7  Multiplier: x%.2f  Score: %d\n",
		s.DaysWithActivity, s.ConsistencyMultiplier, s.WeeklyScore)
	return nil
}

func printMonthly(d *daemon.Daemon, today domain.Day) error {
	year, month := pointsYear, pointsMonth
	if year == 0 {
		year = today.Time().Year()
	}
	if month == 0 {
		month = int(today.Time().Month())
	}

	s, err := d.Points.Monthly(year, month, today)
	if err != nil {
		return err
	}

	fmt.Printf("%04d-%02d: %d points over %d active days (%d%% completion)\n",
		s.Year, s.Month, s.TotalPoints, s.DaysWithActivity, s.CompletionRate)
	return nil
}

func printLifetime(d *daemon.Daemon, today domain.Day) error {
	s, err := d.Points.Lifetime(today)
	if err != nil {
		return err
	}

	if s.DaysSinceStart == 0 {
		fmt.Println("No logs yet. Start tracking to earn points.")
		return nil
	}

	fmt.Printf("Since %s (%d days): %d points, %d active days\n",
		s.StartDate, s.DaysSinceStart, s.TotalPoints, s.DaysWithActivity)
	return nil
}
