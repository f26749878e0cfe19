package cli

import (
	"datebook-cli/internal/store"

	"github.com/spf13/cobra"
)

func newStatusCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "status",
		Short: "Show book location and contents",
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := openStore(app)
			if err != nil {
				return writeErr(cmd, err)
			}

			count, err := s.CountEntries(cmd.Context())
			if err != nil {
				return writeErr(cmd, err)
			}
			schema, err := s.SchemaVersion(cmd.Context())
			if err != nil {
				return writeErr(cmd, err)
			}
			books, err := store.ListBooks()
			if err != nil {
				return writeErr(cmd, err)
			}

			return writeOut(cmd, app, map[string]any{
				"data": map[string]any{
					"dir":           s.Dir,
					"book":          currentBookName(app),
					"entries":       count,
					"schemaVersion": schema,
					"books":         books,
				},
			})
		},
	}
	return cmd
}

// currentBookName reports which named book resolution landed on, or ""
// when --dir bypassed book resolution entirely.
func currentBookName(app *App) string {
	if app.dirMode {
		return ""
	}
	if app.Book != "" {
		return app.Book
	}
	if cfg, err := store.LoadConfig(); err == nil && cfg.CurrentBook != "" {
		return cfg.CurrentBook
	}
	return store.DefaultBook
}
