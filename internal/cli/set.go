package cli

import (
	"encoding/json"
	"fmt"
	"strings"

	"datebook-cli/internal/civil"
	"datebook-cli/internal/field"
	"datebook-cli/internal/model"

	"github.com/spf13/cobra"
)

func newSetCmd(app *App) *cobra.Command {
	var raw bool

	cmd := &cobra.Command{
		Use:   "set <entry-id> <field> <value>",
		Short: "Set an entry field (date|start|end|title)",
		Long: strings.TrimSpace(`
Set an entry field.

Date and time values are parsed and clamped into range:

  datebook set ent-abc date 2026-03-14
  datebook set ent-abc start 9:30
  datebook set ent-abc end 17:00:00
  datebook set ent-abc title "Quarterly review"

With --raw the value is JSON and is stored verbatim, without parsing or
shape checking. Writing the wrong shape this way is how a field ends up
flagged by doctor:

  datebook set --raw ent-abc start '[9, 30, 0]'
`),
		Args: cobra.ExactArgs(3),
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

			key, value := args[1], args[2]

			if key == "title" {
				if raw {
					return writeErr(cmd, fmt.Errorf("--raw applies to slot fields, not title"))
				}
				e.Title = strings.TrimSpace(value)
			} else {
				spec, ok := model.SpecFor(key)
				if !ok {
					return writeErr(cmd, fmt.Errorf("unknown field %q (want date, start, end or title)", key))
				}
				slot, err := parseSlotValue(spec, value, raw)
				if err != nil {
					return writeErr(cmd, err)
				}
				e.SetSlot(spec.Key, slot)
			}

			if err := s.PutEntry(cmd.Context(), e); err != nil {
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

	cmd.Flags().BoolVar(&raw, "raw", false, "Treat value as a raw JSON slot (array or number), stored verbatim")
	return cmd
}

func parseSlotValue(spec field.Spec, value string, raw bool) (field.Value, error) {
	if raw {
		var v field.Value
		if err := json.Unmarshal([]byte(value), &v); err != nil {
			return field.Value{}, fmt.Errorf("raw value for %s: %w", spec.Key, err)
		}
		return v, nil
	}

	if spec.Kind == field.KindDate {
		d, err := civil.ParseDate(value)
		if err != nil {
			return field.Value{}, err
		}
		return field.EncodeDate(d), nil
	}
	c, err := civil.ParseClock(value)
	if err != nil {
		return field.Value{}, err
	}
	return field.EncodeClock(spec.Kind, c), nil
}
