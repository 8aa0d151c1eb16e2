package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ritual-sh/ritual/internal/app/level"
	"github.com/ritual-sh/ritual/internal/daemon"
)

func init() {
	levelCmd.Flags().IntVar(&levelAddXP, "add", 0, "Credit XP to the ledger")
	rootCmd.AddCommand(levelCmd)
}

var levelAddXP int

var levelCmd = &cobra.Command{
	Use:   "level",
	Short: "Show the current level, or credit XP with --add",
	RunE:  runLevel,
}

func runLevel(cmd *cobra.Command, args []string) error {
	return withDaemon(func(d *daemon.Daemon) error {
		if levelAddXP != 0 {
			result, err := d.Level.AddXP(levelAddXP)
			if err != nil {
				return err
			}
			if result.LeveledUp {
				fmt.Printf("Level up! Now level %d (%s)\n", result.CurrentLevel, result.Title)
			} else {
				fmt.Printf("+%d XP\n", result.XPAdded)
			}
			printLevelStatus(result.Status)
			return nil
		}

		status, err := d.Level.Current()
		if err != nil {
			return err
		}
		printLevelStatus(status)
		return nil
	})
}

func printLevelStatus(s level.Status) {
	fmt.Printf("Level %d — %s\n", s.CurrentLevel, s.Title)
	fmt.Printf("XP: %d total, %d into this level, %d to the next (%d%%)\n",
		s.CurrentXP, s.XPForCurrentLevel, s.XPToNextLevel, s.ProgressPercent)
}
