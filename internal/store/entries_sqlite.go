package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"datebook-cli/internal/field"
	"datebook-cli/internal/model"

	_ "modernc.org/sqlite"
)

const schemaVersion = 1

// ErrNotFound is returned when an entry id resolves to nothing.
var ErrNotFound = errors.New("entry not found")

func (s Store) openSQLite(ctx context.Context) (*sql.DB, error) {
	if err := s.Ensure(); err != nil {
		return nil, err
	}
	// modernc.org/sqlite driver name is "sqlite".
	db, err := sql.Open("sqlite", s.DBPath())
	if err != nil {
		return nil, err
	}
	// Pragmas for multi-process local usage.
	// WAL enables one writer + many readers; busy_timeout helps avoid "database is locked" flakiness.
	pragmas := []string{
		"PRAGMA journal_mode=WAL;",
		"PRAGMA synchronous=NORMAL;",
		"PRAGMA foreign_keys=ON;",
		"PRAGMA busy_timeout=5000;",
	}
	for _, p := range pragmas {
		if _, err := db.ExecContext(ctx, p); err != nil {
			_ = db.Close()
			return nil, err
		}
	}
	if err := migrateSQLite(ctx, db); err != nil {
		_ = db.Close()
		return nil, err
	}
	return db, nil
}

func migrateSQLite(ctx context.Context, db *sql.DB) error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS meta (
			k TEXT PRIMARY KEY,
			v TEXT NOT NULL
		);`,
		`CREATE TABLE IF NOT EXISTS entries (
			id TEXT PRIMARY KEY,
			title TEXT NOT NULL,
			note TEXT NOT NULL,
			date_json TEXT NOT NULL,
			start_json TEXT NOT NULL,
			end_json TEXT NOT NULL,
			created_at_unixms INTEGER NOT NULL,
			updated_at_unixms INTEGER NOT NULL
		);`,
		`CREATE INDEX IF NOT EXISTS idx_entries_created ON entries(created_at_unixms);`,
	}
	for _, st := range stmts {
		if _, err := db.ExecContext(ctx, st); err != nil {
			return err
		}
	}
	if _, err := db.ExecContext(ctx, `INSERT OR IGNORE INTO meta(k, v) VALUES(?, ?)`,
		"schema_version", fmt.Sprintf("%d", schemaVersion)); err != nil {
		return err
	}
	return nil
}

// Init creates the book directory and its database.
func (s Store) Init(ctx context.Context) error {
	db, err := s.openSQLite(ctx)
	if err != nil {
		return err
	}
	return db.Close()
}

// SchemaVersion reads the schema version stamped into the database.
func (s Store) SchemaVersion(ctx context.Context) (int, error) {
	db, err := s.openSQLite(ctx)
	if err != nil {
		return 0, err
	}
	defer db.Close()

	var v string
	if err := db.QueryRowContext(ctx, `SELECT v FROM meta WHERE k = ?`, "schema_version").Scan(&v); err != nil {
		return 0, err
	}
	n := 0
	if _, err := fmt.Sscanf(strings.TrimSpace(v), "%d", &n); err != nil {
		return 0, fmt.Errorf("bad schema_version %q", v)
	}
	return n, nil
}

// CreateEntry inserts a new entry, allocating an id when none is set.
func (s Store) CreateEntry(ctx context.Context, e *model.Entry) error {
	if e == nil {
		return errors.New("nil entry")
	}
	db, err := s.openSQLite(ctx)
	if err != nil {
		return err
	}
	defer db.Close()

	// Times are stored at millisecond precision.
	now := time.Now().UTC().Truncate(time.Millisecond)
	if e.CreatedAt.IsZero() {
		e.CreatedAt = now
	}
	e.UpdatedAt = now

	if e.ID != "" {
		return insertEntry(ctx, db, e)
	}
	for attempt := 0; attempt < 5; attempt++ {
		id, err := newRandomID("ent")
		if err != nil {
			return err
		}
		var n int
		if err := db.QueryRowContext(ctx, `SELECT COUNT(1) FROM entries WHERE id = ?`, id).Scan(&n); err != nil {
			return err
		}
		if n > 0 {
			continue
		}
		e.ID = id
		return insertEntry(ctx, db, e)
	}
	return errors.New("could not allocate an entry id")
}

func insertEntry(ctx context.Context, db *sql.DB, e *model.Entry) error {
	dateJSON, startJSON, endJSON, err := marshalSlots(e)
	if err != nil {
		return err
	}
	_, err = db.ExecContext(ctx, `INSERT INTO entries(
		id, title, note, date_json, start_json, end_json,
		created_at_unixms, updated_at_unixms
	) VALUES(?, ?, ?, ?, ?, ?, ?, ?)`,
		e.ID, e.Title, e.Note, dateJSON, startJSON, endJSON,
		e.CreatedAt.UnixMilli(), e.UpdatedAt.UnixMilli())
	return err
}

// PutEntry writes an existing entry back, bumping its updated time.
func (s Store) PutEntry(ctx context.Context, e *model.Entry) error {
	if e == nil || strings.TrimSpace(e.ID) == "" {
		return errors.New("entry has no id")
	}
	db, err := s.openSQLite(ctx)
	if err != nil {
		return err
	}
	defer db.Close()

	e.UpdatedAt = time.Now().UTC().Truncate(time.Millisecond)
	dateJSON, startJSON, endJSON, err := marshalSlots(e)
	if err != nil {
		return err
	}
	res, err := db.ExecContext(ctx, `UPDATE entries SET
		title = ?, note = ?, date_json = ?, start_json = ?, end_json = ?, updated_at_unixms = ?
		WHERE id = ?`,
		e.Title, e.Note, dateJSON, startJSON, endJSON, e.UpdatedAt.UnixMilli(), e.ID)
	if err != nil {
		return err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return fmt.Errorf("entry %s: %w", e.ID, ErrNotFound)
	}
	return nil
}

// GetEntry loads one entry by exact id.
func (s Store) GetEntry(ctx context.Context, id string) (*model.Entry, error) {
	db, err := s.openSQLite(ctx)
	if err != nil {
		return nil, err
	}
	defer db.Close()

	row := db.QueryRowContext(ctx, `SELECT id, title, note, date_json, start_json, end_json,
		created_at_unixms, updated_at_unixms FROM entries WHERE id = ?`, id)
	e, err := scanEntry(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("entry %s: %w", id, ErrNotFound)
	}
	return e, err
}

// ResolveEntryID expands a unique id prefix to the full id.
func (s Store) ResolveEntryID(ctx context.Context, idOrPrefix string) (string, error) {
	idOrPrefix = strings.TrimSpace(idOrPrefix)
	if idOrPrefix == "" {
		return "", fmt.Errorf("empty id: %w", ErrNotFound)
	}
	db, err := s.openSQLite(ctx)
	if err != nil {
		return "", err
	}
	defer db.Close()

	var n int
	if err := db.QueryRowContext(ctx, `SELECT COUNT(1) FROM entries WHERE id = ?`, idOrPrefix).Scan(&n); err != nil {
		return "", err
	}
	if n == 1 {
		return idOrPrefix, nil
	}

	rows, err := db.QueryContext(ctx, `SELECT id FROM entries WHERE id LIKE ? ORDER BY id LIMIT 3`, idOrPrefix+"%")
	if err != nil {
		return "", err
	}
	defer rows.Close()
	var matches []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return "", err
		}
		matches = append(matches, id)
	}
	if err := rows.Err(); err != nil {
		return "", err
	}
	switch len(matches) {
	case 0:
		return "", fmt.Errorf("entry %s: %w", idOrPrefix, ErrNotFound)
	case 1:
		return matches[0], nil
	default:
		return "", fmt.Errorf("entry id %q is ambiguous (%s, %s, ...)", idOrPrefix, matches[0], matches[1])
	}
}

// ListEntries loads every entry, ordered by decoded (date, start time).
// Entries whose slots cannot be decoded sort last.
func (s Store) ListEntries(ctx context.Context) ([]*model.Entry, error) {
	db, err := s.openSQLite(ctx)
	if err != nil {
		return nil, err
	}
	defer db.Close()

	rows, err := db.QueryContext(ctx, `SELECT id, title, note, date_json, start_json, end_json,
		created_at_unixms, updated_at_unixms FROM entries`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []*model.Entry{}
	for rows.Next() {
		e, err := scanEntry(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	sortEntries(out)
	return out, nil
}

// DeleteEntry removes one entry by exact id.
func (s Store) DeleteEntry(ctx context.Context, id string) error {
	db, err := s.openSQLite(ctx)
	if err != nil {
		return err
	}
	defer db.Close()

	res, err := db.ExecContext(ctx, `DELETE FROM entries WHERE id = ?`, id)
	if err != nil {
		return err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return fmt.Errorf("entry %s: %w", id, ErrNotFound)
	}
	return nil
}

// CountEntries returns the number of stored entries.
func (s Store) CountEntries(ctx context.Context) (int, error) {
	db, err := s.openSQLite(ctx)
	if err != nil {
		return 0, err
	}
	defer db.Close()

	var n int
	if err := db.QueryRowContext(ctx, `SELECT COUNT(1) FROM entries`).Scan(&n); err != nil {
		return 0, err
	}
	return n, nil
}

func marshalSlots(e *model.Entry) (dateJSON, startJSON, endJSON string, err error) {
	db, err := json.Marshal(e.Date)
	if err != nil {
		return "", "", "", err
	}
	sb, err := json.Marshal(e.Start)
	if err != nil {
		return "", "", "", err
	}
	eb, err := json.Marshal(e.End)
	if err != nil {
		return "", "", "", err
	}
	return string(db), string(sb), string(eb), nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

// scanEntry rebuilds an entry from a row. Slot columns are kept as
// written: a slot whose shape does not match its field spec still loads,
// and the mismatch surfaces when the field layer decodes it.
func scanEntry(row rowScanner) (*model.Entry, error) {
	var e model.Entry
	var dateJSON, startJSON, endJSON string
	var createdMs, updatedMs int64
	if err := row.Scan(&e.ID, &e.Title, &e.Note, &dateJSON, &startJSON, &endJSON, &createdMs, &updatedMs); err != nil {
		return nil, err
	}
	if err := json.Unmarshal([]byte(dateJSON), &e.Date); err != nil {
		return nil, fmt.Errorf("entry %s: date slot: %w", e.ID, err)
	}
	if err := json.Unmarshal([]byte(startJSON), &e.Start); err != nil {
		return nil, fmt.Errorf("entry %s: start slot: %w", e.ID, err)
	}
	if err := json.Unmarshal([]byte(endJSON), &e.End); err != nil {
		return nil, fmt.Errorf("entry %s: end slot: %w", e.ID, err)
	}
	e.CreatedAt = time.UnixMilli(createdMs).UTC()
	e.UpdatedAt = time.UnixMilli(updatedMs).UTC()
	return &e, nil
}

type entrySortKey struct {
	ok    bool
	date  [3]int
	start int
}

func sortKeyFor(e *model.Entry) entrySortKey {
	dateSpec, _ := model.SpecFor("date")
	startSpec, _ := model.SpecFor("start")
	dv, err := field.Components(dateSpec, e.Date)
	if err != nil {
		return entrySortKey{}
	}
	sv, err := field.Components(startSpec, e.Start)
	if err != nil {
		return entrySortKey{}
	}
	return entrySortKey{ok: true, date: dv, start: sv[0]*3600 + sv[1]*60 + sv[2]}
}

func sortEntries(entries []*model.Entry) {
	sort.SliceStable(entries, func(i, j int) bool {
		a, b := sortKeyFor(entries[i]), sortKeyFor(entries[j])
		if a.ok != b.ok {
			return a.ok
		}
		if a.ok {
			for k := range a.date {
				if a.date[k] != b.date[k] {
					return a.date[k] < b.date[k]
				}
			}
			if a.start != b.start {
				return a.start < b.start
			}
		}
		if !entries[i].CreatedAt.Equal(entries[j].CreatedAt) {
			return entries[i].CreatedAt.Before(entries[j].CreatedAt)
		}
		return entries[i].ID < entries[j].ID
	})
}
