package cli

import (
	"github.com/ritual-sh/ritual/internal/daemon"
	"github.com/ritual-sh/ritual/internal/domain"
)

// withDaemon opens the daemon services over the local database, runs
// fn, and always closes the database afterwards.
func withDaemon(fn func(*daemon.Daemon) error) error {
	d, err := daemon.New(rootCmd.Version)
	if err != nil {
		return err
	}
	defer d.Close()
	return fn(d)
}

// parseDayFlag resolves an optional --date value, defaulting to today.
func parseDayFlag(raw string) (domain.Day, error) {
	if raw == "" {
		return domain.Today(), nil
	}
	return domain.ParseDay(raw)
}
