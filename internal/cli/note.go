package cli

import (
	"strings"

	"github.com/spf13/cobra"
)

func newNoteCmd(app *App) *cobra.Command {
	var body string

	cmd := &cobra.Command{
		Use:   "note <entry-id>",
		Short: "Set the entry's markdown note (empty body clears it)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := openStore(app)
			if err != nil {
				return writeErr(cmd, err)
			}

			id, err := s.ResolveEntryID(cmd.Context(), args[0])
			if err != nil {
				return writeErr(cmd, err)
			}
			e, err := s.GetEntry(cmd.Context(), id)
			if err != nil {
				return writeErr(cmd, err)
			}

			e.Note = strings.TrimSpace(body)
			if err := s.PutEntry(cmd.Context(), e); err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, map[string]any{"data": e})
		},
	}

	cmd.Flags().StringVar(&body, "body", "", "Markdown note body")
	return cmd
}
