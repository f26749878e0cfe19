package cli

import (
	"errors"
	"strings"

	"datebook-cli/internal/civil"
	"datebook-cli/internal/export"

	"github.com/spf13/cobra"
)

func newExportCmd(app *App) *cobra.Command {
	var toDir string
	var on string
	var entryID string
	var overwrite bool

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export derived Markdown artifacts (not canonical)",
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := openStore(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			toDir = strings.TrimSpace(toDir)
			if toDir == "" {
				return writeErr(cmd, errors.New("missing --to"))
			}

			if entryID != "" {
				id, err := s.ResolveEntryID(cmd.Context(), entryID)
				if err != nil {
					return writeErr(cmd, err)
				}
				e, err := s.GetEntry(cmd.Context(), id)
				if err != nil {
					return writeErr(cmd, err)
				}
				res, err := export.WriteEntry(e, toDir, export.WriteOptions{Overwrite: overwrite})
				if err != nil {
					return writeErr(cmd, err)
				}
				return writeOut(cmd, app, map[string]any{
					"data": res,
					"meta": map[string]any{"written": len(res.Written)},
				})
			}

			entries, err := s.ListEntries(cmd.Context())
			if err != nil {
				return writeErr(cmd, err)
			}
			if on != "" {
				d, err := civil.ParseDate(on)
				if err != nil {
					return writeErr(cmd, err)
				}
				entries = filterOnDate(entries, d)
			}

			res, err := export.WriteBook(entries, toDir, export.WriteOptions{Overwrite: overwrite})
			if err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, map[string]any{
				"data": res,
				"meta": map[string]any{"written": len(res.Written)},
			})
		},
	}

	cmd.Flags().StringVar(&toDir, "to", "", "Output directory")
	_ = cmd.MarkFlagRequired("to")
	cmd.Flags().StringVar(&on, "on", "", "Only entries on this date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&entryID, "entry", "", "Export a single entry page instead of the whole book")
	cmd.Flags().BoolVar(&overwrite, "overwrite", false, "Overwrite existing files")
	return cmd
}
