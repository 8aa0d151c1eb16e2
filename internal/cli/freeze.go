package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ritual-sh/ritual/internal/daemon"
)

func init() {
	rootCmd.AddCommand(freezeCmd)
}

var freezeCmd = &cobra.Command{
	Use:       "freeze [earn|use]",
	Short:     "Manage streak freeze tokens",
	Long:      `Show the freeze token ledger, earn a new token, or spend the oldest one.`,
	Args:      cobra.MaximumNArgs(1),
	ValidArgs: []string{"earn", "use"},
	RunE:      runFreeze,
}

func runFreeze(cmd *cobra.Command, args []string) error {
	return withDaemon(func(d *daemon.Daemon) error {
		if len(args) == 1 {
			switch args[0] {
			case "earn":
				result, err := d.Freeze.Earn()
				if err != nil {
					return err
				}
				fmt.Printf("Earned a freeze token. %d available.\n", result.Available)
				return nil
			case "use":
				result, err := d.Freeze.Use()
				if err != nil {
					return err
				}
				fmt.Printf("Used token %s (earned %s). %d remaining.\n",
					result.Token.ID, result.Token.EarnedAt.Format("2006-01-02"), result.Remaining)
				return nil
			default:
				return fmt.Errorf("unknown action %q", args[0])
			}
		}

		status, err := d.Freeze.Current()
		if err != nil {
			return err
		}
		fmt.Printf("Freeze tokens: %d available, %d used, %d total\n",
			status.Available, status.Used, status.Total)
		return nil
	})
}
