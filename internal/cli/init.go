package cli

import (
	"datebook-cli/internal/store"

	"github.com/spf13/cobra"
)

func newInitCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "init",
		Short: "Create a book and its database",
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := openStore(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			if err := s.Init(cmd.Context()); err != nil {
				return writeErr(cmd, err)
			}

			// First book initialized by name becomes the current one.
			if app.Book != "" {
				cfg, err := store.LoadConfig()
				if err == nil && cfg.CurrentBook == "" {
					cfg.CurrentBook = app.Book
					_ = store.SaveConfig(cfg)
				}
			}

			return writeOut(cmd, app, map[string]any{
				"data": map[string]any{
					"dir":        s.Dir,
					"sqlitePath": s.DBPath(),
				},
			})
		},
	}
	return cmd
}
