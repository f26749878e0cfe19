package cli

import (
	"datebook-cli/internal/civil"
	"datebook-cli/internal/field"
	"datebook-cli/internal/model"

	"github.com/spf13/cobra"
)

func newListCmd(app *App) *cobra.Command {
	var on string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List entries sorted by date and start time",
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := openStore(app)
			if err != nil {
				return writeErr(cmd, err)
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

			return writeOut(cmd, app, map[string]any{
				"data": entries,
				"meta": map[string]any{"count": len(entries)},
			})
		},
	}

	cmd.Flags().StringVar(&on, "on", "", "Only entries on this date (YYYY-MM-DD)")
	return cmd
}

// filterOnDate keeps entries whose date field decodes to want. Entries
// with a broken date slot cannot match a date and are dropped.
func filterOnDate(entries []*model.Entry, want civil.Date) []*model.Entry {
	spec, _ := model.SpecFor("date")
	wantVec := want.Vec()

	out := []*model.Entry{}
	for _, e := range entries {
		got, err := field.Components(spec, e.Date)
		if err != nil {
			continue
		}
		if got == wantVec {
			out = append(out, e)
		}
	}
	return out
}
