package archive

import (
	"fmt"
	"os"
	"path/filepath"
	"time"
)

// Store is a file-backed cache of raw upstream API responses, one file per
// (jurisdiction, source, date) key laid out as
// {dir}/{YYYY-MM-DD}/{STATE}-{source}.json. Snapshots are written once per
// key per day and never mutated, which is what makes reruns after a crash
// cheap and rate-limit-safe: a cache hit skips the network call entirely.
type Store struct {
	dir string
}

func New(dir string) *Store {
	return &Store{dir: dir}
}

// Get returns the archived snapshot for the key, or ok=false when absent.
// Read failures are indistinguishable from absence on purpose: the adapter
// falls back to the network either way.
func (s *Store) Get(jurisdiction, source string, date time.Time) ([]byte, bool) {
	data, err := os.ReadFile(s.path(jurisdiction, source, date))
	if err != nil {
		return nil, false
	}
	return data, true
}

// Put writes a snapshot all-or-nothing: the bytes land in a temp file first
// and are renamed into place, so a partially written snapshot is never
// readable under the real key.
func (s *Store) Put(jurisdiction, source string, date time.Time, data []byte) error {
	dest := s.path(jurisdiction, source, date)

	if err := os.MkdirAll(filepath.Dir(dest), 0o755); err != nil {
		return fmt.Errorf("failed to create archive dir: %w", err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(dest), filepath.Base(dest)+".tmp*")
	if err != nil {
		return fmt.Errorf("failed to create temp snapshot: %w", err)
	}

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return fmt.Errorf("failed to write snapshot: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("failed to close snapshot: %w", err)
	}

	if err := os.Rename(tmp.Name(), dest); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("failed to commit snapshot: %w", err)
	}

	return nil
}

func (s *Store) path(jurisdiction, source string, date time.Time) string {
	name := fmt.Sprintf("%s-%s.json", jurisdiction, source)
	return filepath.Join(s.dir, date.Format("2006-01-02"), name)
}
