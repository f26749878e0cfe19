package store

import (
	"os"
	"path/filepath"
)

const dbFileName = "datebook.sqlite"

// Store reads and writes one book directory. Every operation opens the
// database, does its work and closes it; WAL plus a busy timeout keep
// concurrent CLI and TUI processes happy.
type Store struct {
	Dir string
}

func (s Store) Ensure() error {
	return os.MkdirAll(s.Dir, 0o755)
}

// DBPath returns the book's database file.
func (s Store) DBPath() string {
	return filepath.Join(s.Dir, dbFileName)
}
