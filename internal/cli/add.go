package cli

import (
	"strings"

	"datebook-cli/internal/civil"
	"datebook-cli/internal/field"
	"datebook-cli/internal/model"

	"github.com/spf13/cobra"
)

func newAddCmd(app *App) *cobra.Command {
	var (
		dateStr  string
		startStr string
		endStr   string
		note     string
	)

	cmd := &cobra.Command{
		Use:   "add <title>",
		Short: "Add an entry",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := openStore(app)
			if err != nil {
				return writeErr(cmd, err)
			}

			e := &model.Entry{
				Title: strings.TrimSpace(args[0]),
				Note:  note,
				Date:  field.Default(field.KindDate),
				Start: field.Default(field.KindClockHours),
				End:   field.Default(field.KindClock),
			}

			if dateStr != "" {
				d, err := civil.ParseDate(dateStr)
				if err != nil {
					return writeErr(cmd, err)
				}
				e.Date = field.EncodeDate(d)
			}
			if startStr != "" {
				c, err := civil.ParseClock(startStr)
				if err != nil {
					return writeErr(cmd, err)
				}
				e.Start = field.EncodeClock(field.KindClockHours, c)
			}
			if endStr != "" {
				c, err := civil.ParseClock(endStr)
				if err != nil {
					return writeErr(cmd, err)
				}
				e.End = field.EncodeClock(field.KindClock, c)
			}

			if err := s.CreateEntry(cmd.Context(), e); err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, map[string]any{"data": e})
		},
	}

	cmd.Flags().StringVar(&dateStr, "date", "", "Entry date (YYYY-MM-DD; default today)")
	cmd.Flags().StringVar(&startStr, "start", "", "Start time (HH:MM or HH:MM:SS; default 09:00)")
	cmd.Flags().StringVar(&endStr, "end", "", "End time (HH:MM or HH:MM:SS; default 09:00)")
	cmd.Flags().StringVar(&note, "note", "", "Markdown note")
	return cmd
}
