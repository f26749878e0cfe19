package cli

import (
	"github.com/spf13/cobra"
)

func newShowCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "show <entry-id>",
		Short: "Show one entry with resolved field values",
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

			return writeOut(cmd, app, map[string]any{
				"data": map[string]any{
					"entry":  e,
					"fields": fieldViews(e),
				},
			})
		},
	}
	return cmd
}
