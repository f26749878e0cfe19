package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"datebook-cli/internal/field"
	"datebook-cli/internal/model"
)

// ErrDoctorIssuesFound signals a non-zero exit for `doctor --fail`.
var ErrDoctorIssuesFound = errors.New("doctor: issues found")

type DoctorIssueLevel string

const (
	DoctorIssueLevelError DoctorIssueLevel = "error"
	DoctorIssueLevelWarn  DoctorIssueLevel = "warn"
)

type DoctorIssue struct {
	Level   DoctorIssueLevel `json:"level"`
	Code    string           `json:"code"`
	Message string           `json:"message"`
	EntryID string           `json:"entryId,omitempty"`
	Field   string           `json:"field,omitempty"`
}

type DoctorReport struct {
	Issues []DoctorIssue `json:"issues"`
}

func (r DoctorReport) HasErrors() bool {
	for _, it := range r.Issues {
		if it.Level == DoctorIssueLevelError {
			return true
		}
	}
	return false
}

// Doctor audits the book: every stored slot must parse and match its
// field spec. It reads raw columns so one broken entry cannot hide the
// rest.
func (s Store) Doctor(ctx context.Context) DoctorReport {
	var issues []DoctorIssue

	db, err := s.openSQLite(ctx)
	if err != nil {
		issues = append(issues, DoctorIssue{
			Level:   DoctorIssueLevelError,
			Code:    "db_unreachable",
			Message: err.Error(),
		})
		return DoctorReport{Issues: issues}
	}
	defer db.Close()

	rows, err := db.QueryContext(ctx, `SELECT id, date_json, start_json, end_json FROM entries ORDER BY id`)
	if err != nil {
		issues = append(issues, DoctorIssue{
			Level:   DoctorIssueLevelError,
			Code:    "db_query_failed",
			Message: err.Error(),
		})
		return DoctorReport{Issues: issues}
	}
	defer rows.Close()

	specs := model.FieldSpecs()
	for rows.Next() {
		var id string
		raw := make([]string, len(specs))
		if err := rows.Scan(&id, &raw[0], &raw[1], &raw[2]); err != nil {
			issues = append(issues, DoctorIssue{
				Level:   DoctorIssueLevelError,
				Code:    "row_unreadable",
				Message: err.Error(),
			})
			continue
		}
		for i, spec := range specs {
			var v field.Value
			if err := json.Unmarshal([]byte(raw[i]), &v); err != nil {
				issues = append(issues, DoctorIssue{
					Level:   DoctorIssueLevelError,
					Code:    "slot_unreadable",
					Message: fmt.Sprintf("stored value %s does not parse: %v", raw[i], err),
					EntryID: id,
					Field:   spec.Key,
				})
				continue
			}
			if err := field.CheckShape(spec, v); err != nil {
				issues = append(issues, DoctorIssue{
					Level:   DoctorIssueLevelError,
					Code:    "slot_shape_mismatch",
					Message: err.Error(),
					EntryID: id,
					Field:   spec.Key,
				})
			}
		}
	}
	if err := rows.Err(); err != nil {
		issues = append(issues, DoctorIssue{
			Level:   DoctorIssueLevelError,
			Code:    "db_query_failed",
			Message: err.Error(),
		})
	}

	return DoctorReport{Issues: issues}
}
