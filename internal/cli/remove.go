package cli

import (
	"github.com/spf13/cobra"
)

func newRemoveCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "remove <entry-id>",
		Short:   "Remove an entry",
		Aliases: []string{"rm"},
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := openStore(app)
			if err != nil {
				return writeErr(cmd, err)
			}

			id, err := s.ResolveEntryID(cmd.Context(), args[0])
			if err != nil {
				return writeErr(cmd, err)
			}
			if err := s.DeleteEntry(cmd.Context(), id); err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, map[string]any{
				"data": map[string]any{"removed": id},
			})
		},
	}
	return cmd
}
