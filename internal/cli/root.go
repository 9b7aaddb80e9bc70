// Package cli is the offline trackctl tool over the bot's database.
package cli

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/spf13/cobra"

	"telegram-session-counter/internal/config"
	"telegram-session-counter/internal/storage"
)

// app is what every subcommand works with.
type app struct {
	db    *storage.DB
	state *storage.State
	loc   *time.Location
	now   func() time.Time
	out   io.Writer
}

func (a *app) today() time.Time { return a.now().In(a.loc) }

// NewRootCmd builds the command tree. open is called once per run to reach
// the database.
func NewRootCmd(open func() (*app, error)) *cobra.Command {
	var a *app
	root := &cobra.Command{
		Use:           "trackctl",
		Short:         "Inspect and manage the session counter data",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			var err error
			a, err = open()
			if err != nil {
				return err
			}
			a.out = cmd.OutOrStdout()
			return nil
		},
		PersistentPostRunE: func(*cobra.Command, []string) error {
			if a != nil && a.db != nil {
				return a.db.Close()
			}
			return nil
		},
	}
	get := func() *app { return a }

	root.AddCommand(
		summaryCmd(get),
		logsCmd(get),
		profileCmd(get),
		themeCmd(get),
		exportCmd(get),
		clearCmd(get),
	)
	return root
}

func openFromEnv(dbPath string) func() (*app, error) {
	return func() (*app, error) {
		cfg, err := config.Load(false)
		if err != nil {
			return nil, err
		}
		if dbPath != "" {
			cfg.DBPath = dbPath
		}
		db, err := storage.New(cfg.DBPath)
		if err != nil {
			return nil, fmt.Errorf("open %s: %w", cfg.DBPath, err)
		}
		return &app{db: db, state: storage.NewState(db), loc: cfg.Location, now: time.Now}, nil
	}
}

// Execute runs trackctl against the configured database.
func Execute() error {
	var dbPath string
	root := NewRootCmd(func() (*app, error) { return openFromEnv(dbPath)() })
	root.PersistentFlags().StringVar(&dbPath, "db", "", "database path (default $DB_PATH or bot.db)")

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		return err
	}
	return nil
}
