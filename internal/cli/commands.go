package cli

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"telegram-session-counter/internal/logbook"
	"telegram-session-counter/internal/messages"
	"telegram-session-counter/internal/models"
)

func summaryCmd(get func() *app) *cobra.Command {
	return &cobra.Command{
		Use:   "summary",
		Short: "Show today vs yesterday, the last 7 days and time of day",
		Args:  cobra.NoArgs,
		RunE: func(*cobra.Command, []string) error {
			a := get()
			logs, err := a.state.Logs()
			if err != nil {
				return err
			}
			theme, err := a.state.Theme()
			if err != nil {
				return err
			}
			st := logbook.Snapshot(logs, a.today())
			fmt.Fprintln(a.out, newView(theme).summary(st))
			return nil
		},
	}
}

func logsCmd(get func() *app) *cobra.Command {
	var days int
	cmd := &cobra.Command{
		Use:   "logs",
		Short: "List saved sessions by day, newest first",
		Args:  cobra.NoArgs,
		RunE: func(*cobra.Command, []string) error {
			a := get()
			logs, err := a.state.Logs()
			if err != nil {
				return err
			}
			theme, err := a.state.Theme()
			if err != nil {
				return err
			}
			all := logbook.Open(logs).Days()
			if days > 0 && len(all) > days {
				all = all[:days]
			}
			fmt.Fprintln(a.out, newView(theme).logs(all))
			return nil
		},
	}
	cmd.Flags().IntVarP(&days, "days", "n", 7, "number of days to show (0 for all)")
	return cmd
}

func profileCmd(get func() *app) *cobra.Command {
	return &cobra.Command{
		Use:   "profile",
		Short: "Show the profile with streak and totals",
		Args:  cobra.NoArgs,
		RunE: func(*cobra.Command, []string) error {
			a := get()
			p, err := a.state.Profile()
			if err != nil {
				return err
			}
			logs, err := a.state.Logs()
			if err != nil {
				return err
			}
			theme, err := a.state.Theme()
			if err != nil {
				return err
			}
			now := a.today()
			text := messages.Profile(p, logbook.Snapshot(logs, now), now, theme)
			fmt.Fprintln(a.out, newView(theme).box("Profile", text))
			return nil
		},
	}
}

func themeCmd(get func() *app) *cobra.Command {
	return &cobra.Command{
		Use:       "theme [blue|pink|green]",
		Short:     "Print or set the colour theme",
		Args:      cobra.MaximumNArgs(1),
		ValidArgs: []string{string(models.ThemeBlue), string(models.ThemePink), string(models.ThemeGreen)},
		RunE: func(_ *cobra.Command, args []string) error {
			a := get()
			if len(args) == 1 {
				if err := a.state.SetTheme(models.Theme(args[0])); err != nil {
					return err
				}
			}
			theme, err := a.state.Theme()
			if err != nil {
				return err
			}
			fmt.Fprintln(a.out, theme)
			return nil
		},
	}
}

func exportCmd(get func() *app) *cobra.Command {
	var out string
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write every record as JSON",
		Args:  cobra.NoArgs,
		RunE: func(*cobra.Command, []string) error {
			a := get()
			b, err := a.state.ExportJSON()
			if err != nil {
				return err
			}
			if out == "" || out == "-" {
				_, err = fmt.Fprintln(a.out, string(b))
				return err
			}
			return os.WriteFile(out, append(b, '\n'), 0o600)
		},
	}
	cmd.Flags().StringVarP(&out, "output", "o", "", "file to write (default stdout)")
	return cmd
}

var errNotConfirmed = errors.New("refusing to clear without --yes")

func clearCmd(get func() *app) *cobra.Command {
	var yes bool
	cmd := &cobra.Command{
		Use:   "clear",
		Short: "Delete every saved session",
		Args:  cobra.NoArgs,
		RunE: func(*cobra.Command, []string) error {
			if !yes {
				return errNotConfirmed
			}
			a := get()
			if err := a.state.ClearLogs(); err != nil {
				return err
			}
			fmt.Fprintln(a.out, "All data has been cleared.")
			return nil
		},
	}
	cmd.Flags().BoolVar(&yes, "yes", false, "confirm deletion")
	return cmd
}
