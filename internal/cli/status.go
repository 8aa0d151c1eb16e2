package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ritual-sh/ritual/internal/daemon"
	"github.com/ritual-sh/ritual/internal/domain"
)

func init() {
	rootCmd.AddCommand(statusCmd)
}

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show today's points, streaks, and level at a glance",
	RunE:  runStatus,
}

func runStatus(cmd *cobra.Command, args []string) error {
	return withDaemon(func(d *daemon.Daemon) error {
		today := domain.Today()

		points, err := d.Points.Daily(today)
		if err != nil {
			return err
		}
		streaks, err := d.Streaks.All(today)
		if err != nil {
			return err
		}
		level, err := d.Level.Current()
		if err != nil {
			return err
		}
		freeze, err := d.Freeze.Current()
		if err != nil {
			return err
		}

		fmt.Printf("Today (%s): %d points\n", today, points.Total)
		fmt.Printf("Level %d (%s) — %d XP, %d to next level\n",
			level.CurrentLevel, level.Title, level.CurrentXP, level.XPToNextLevel)

		if s, ok := streaks["showed_up"]; ok {
			fmt.Printf("Showed up: %d day streak (best %d)\n", s.CurrentStreak, s.LongestStreak)
		}
		if s, ok := streaks["perfect_day"]; ok && s.CurrentStreak > 0 {
			fmt.Printf("Perfect days: %d in a row\n", s.CurrentStreak)
		}
		fmt.Printf("Freeze tokens: %d available\n", freeze.Available)
		return nil
	})
}
