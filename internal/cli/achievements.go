package cli

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/ritual-sh/ritual/internal/daemon"
)

func init() {
	achievementsCmd.Flags().IntVar(&achievementsRecent, "recent", 0, "Show only the N most recent unlocks")
	achievementsCmd.Flags().StringVar(&achievementsUnlock, "unlock", "", "Unlock an achievement by key")
	rootCmd.AddCommand(achievementsCmd)
}

var (
	achievementsRecent int
	achievementsUnlock string
)

var achievementsCmd = &cobra.Command{
	Use:   "achievements",
	Short: "List achievements, or unlock one with --unlock",
	RunE:  runAchievements,
}

func runAchievements(cmd *cobra.Command, args []string) error {
	return withDaemon(func(d *daemon.Daemon) error {
		if achievementsUnlock != "" {
			result, err := d.Achievements.Unlock(achievementsUnlock)
			if err != nil {
				return err
			}
			if result.Newly {
				fmt.Printf("Unlocked %q (+%d XP)\n", result.Achievement.Name, result.XPAwarded)
			} else {
				fmt.Printf("%q was already unlocked at %s\n",
					result.Achievement.Name, result.UnlockedAt.Format("2006-01-02 15:04"))
			}
			return nil
		}

		entries, err := d.Achievements.List()
		if err != nil {
			return err
		}
		if achievementsRecent > 0 {
			entries, err = d.Achievements.Recent(achievementsRecent)
			if err != nil {
				return err
			}
		}

		if len(entries) == 0 {
			fmt.Println("Nothing unlocked yet.")
			return nil
		}

		w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
		fmt.Fprintln(w, "KEY\tNAME\tXP\tUNLOCKED")
		for _, e := range entries {
			unlocked := "-"
			if e.UnlockedAt != nil {
				unlocked = e.UnlockedAt.Format("2006-01-02")
			}
			fmt.Fprintf(w, "%s\t%s\t%d\t%s\n", e.Key, e.Name, e.XPReward, unlocked)
		}
		return w.Flush()
	})
}
