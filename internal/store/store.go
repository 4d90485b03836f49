// Package store implements the CSV-backed contact store.
package store

import (
	"encoding/csv"
	"errors"
	"fmt"
	"os"

	"github.com/rolo-cli/rolo/internal/contact"
)

// header is the fixed header row of the store file.
var header = []string{"Name", "Phone", "Email"}

// FileStore persists the full contact set in a single CSV file with a
// header row. Every mutation is a whole-file rewrite; the file is
// opened and closed within each call and never held across operations.
//
// Concurrent external modification between a read and its matching
// write is not guarded: the last writer wins at whole-file granularity.
type FileStore struct {
	path string
}

// NewFileStore creates a FileStore backed by the CSV file at path.
func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

// Path returns the backing file path.
func (s *FileStore) Path() string {
	return s.path
}

// EnsureExists creates the backing file with just the header row if it
// is absent. Idempotent.
func (s *FileStore) EnsureExists() error {
	_, err := os.Stat(s.path)
	if err == nil {
		return nil
	}
	if !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("store: stat %s: %w", s.path, err)
	}
	return s.WriteAll(nil)
}

// ReadAll parses every row into a Contact, preserving file order.
// A row with the wrong column count fails the whole call.
func (s *FileStore) ReadAll() ([]contact.Contact, error) {
	if err := s.EnsureExists(); err != nil {
		return nil, err
	}

	f, err := os.Open(s.path)
	if err != nil {
		return nil, fmt.Errorf("store: opening %s: %w", s.path, err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = len(header)
	rows, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("store: parsing %s: %w", s.path, err)
	}
	if len(rows) <= 1 {
		// Header only (or fully empty file).
		return nil, nil
	}

	contacts := make([]contact.Contact, 0, len(rows)-1)
	for _, row := range rows[1:] {
		contacts = append(contacts, contact.Contact{
			Name:  row[0],
			Phone: row[1],
			Email: row[2],
		})
	}
	return contacts, nil
}

// WriteAll truncates and rewrites the entire file: header followed by
// one row per contact in the given order. This is the only mutation
// primitive. There is no rename-swap; an I/O failure mid-write leaves
// partially overwritten content behind.
func (s *FileStore) WriteAll(contacts []contact.Contact) error {
	f, err := os.Create(s.path)
	if err != nil {
		return fmt.Errorf("store: creating %s: %w", s.path, err)
	}

	w := csv.NewWriter(f)
	if err := w.Write(header); err != nil {
		f.Close()
		return fmt.Errorf("store: writing header: %w", err)
	}
	for _, c := range contacts {
		if err := w.Write([]string{c.Name, c.Phone, c.Email}); err != nil {
			f.Close()
			return fmt.Errorf("store: writing row for %q: %w", c.Name, err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		f.Close()
		return fmt.Errorf("store: flushing %s: %w", s.path, err)
	}

	if err := f.Close(); err != nil {
		return fmt.Errorf("store: closing %s: %w", s.path, err)
	}
	return nil
}
