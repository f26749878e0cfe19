package cli

import (
	"fmt"
	"os"
	"strings"

	"datebook-cli/internal/format"
	"datebook-cli/internal/store"
	"datebook-cli/internal/tui"

	"github.com/spf13/cobra"
)

type App struct {
	Dir        string
	Book       string
	PrettyJSON bool

	// dirMode records that --dir bypassed book resolution.
	dirMode bool
}

func NewRootCmd() *cobra.Command {
	app := &App{}

	cmd := &cobra.Command{
		Use:          "datebook",
		Short:        "Local-first datebook CLI + TUI",
		SilenceUsage: true,
		Example: strings.TrimSpace(`
  # Start the interactive TUI
  datebook

  # Scriptable commands
  datebook add "Dentist" --date 2026-03-14 --start 9:30 --end 10:15
  datebook list --on 2026-03-14

  # Audit stored field values
  datebook doctor --fail
`),
		RunE: func(cmd *cobra.Command, args []string) error {
			// No subcommand => interactive TUI.
			if cmd.HasSubCommands() && len(args) == 0 {
				return runTUI(app)
			}
			return cmd.Help()
		},
	}

	cmd.PersistentFlags().StringVar(&app.Dir, "dir", envOr("DATEBOOK_DIR", ""), "Path to a book dir (advanced: overrides book resolution; use for fixtures/tests)")
	cmd.PersistentFlags().StringVar(&app.Book, "book", envOr("DATEBOOK_BOOK", ""), "Book name (default: 'default')")
	cmd.PersistentFlags().BoolVar(&app.PrettyJSON, "pretty", false, "Pretty-print JSON output")

	cmd.AddCommand(newInitCmd(app))
	cmd.AddCommand(newAddCmd(app))
	cmd.AddCommand(newListCmd(app))
	cmd.AddCommand(newShowCmd(app))
	cmd.AddCommand(newSetCmd(app))
	cmd.AddCommand(newNoteCmd(app))
	cmd.AddCommand(newRemoveCmd(app))
	cmd.AddCommand(newDoctorCmd(app))
	cmd.AddCommand(newDocsCmd(app))
	cmd.AddCommand(newStatusCmd(app))
	cmd.AddCommand(newExportCmd(app))

	return cmd
}

// openStore resolves the book directory and ensures the database exists.
// Resolution: --dir > --book > config currentBook > "default".
func openStore(app *App) (store.Store, error) {
	app.dirMode = app.Dir != ""
	dir, err := store.ResolveDir(app.Dir, app.Book)
	if err != nil {
		return store.Store{}, err
	}
	app.Dir = dir

	s := store.Store{Dir: dir}
	if err := s.Ensure(); err != nil {
		return store.Store{}, err
	}
	return s, nil
}

func runTUI(app *App) error {
	s, err := openStore(app)
	if err != nil {
		return err
	}
	return tui.Run(s)
}

func envOr(k, d string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return d
}

func writeOut(cmd *cobra.Command, app *App, v any) error {
	return format.Write(cmd.OutOrStdout(), v, app.PrettyJSON)
}

func writeErr(cmd *cobra.Command, err error) error {
	fmt.Fprintln(cmd.ErrOrStderr(), err.Error())
	return err
}
