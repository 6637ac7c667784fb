// Package journal records the outcome of the last run of each server script.
package journal

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"io/fs"
	"os"
	"path/filepath"

	"go.goodgym.dev/launcher/internal/core/domain"
	"go.goodgym.dev/launcher/internal/core/ports"
	"go.trai.ch/zerr"
)

// Store implements ports.RunStore using one JSON file per server script.
type Store struct{}

var _ ports.RunStore = (*Store)(nil)

// NewStore creates a new run journal.
func NewStore() *Store {
	return &Store{}
}

// Get retrieves the last run of script under root.
func (s *Store) Get(root, script string) (*domain.RunRecord, error) {
	filename := s.filename(root, script)
	//nolint:gosec // Path is constructed from the launcher root and a hashed filename
	data, err := os.ReadFile(filename)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, zerr.With(zerr.Wrap(err, domain.ErrJournalReadFailed.Error()), "path", filename)
	}

	var record domain.RunRecord
	if err := json.Unmarshal(data, &record); err != nil {
		return nil, zerr.With(zerr.Wrap(err, domain.ErrJournalReadFailed.Error()), "path", filename)
	}

	return &record, nil
}

// Put stores record, replacing the previous run of the same script.
func (s *Store) Put(root string, record domain.RunRecord) error {
	data, err := json.MarshalIndent(record, "", "  ")
	if err != nil {
		return zerr.Wrap(err, domain.ErrJournalWriteFailed.Error())
	}

	filename := s.filename(root, record.Script)
	dir := filepath.Dir(filename)
	if err := os.MkdirAll(dir, domain.DirPerm); err != nil {
		return zerr.With(zerr.Wrap(err, domain.ErrJournalWriteFailed.Error()), "path", dir)
	}

	// Write then rename so a reader never sees a partial record.
	tmp, err := os.CreateTemp(dir, ".run-*.json")
	if err != nil {
		return zerr.With(zerr.Wrap(err, domain.ErrJournalWriteFailed.Error()), "path", dir)
	}
	defer func() { _ = os.Remove(tmp.Name()) }()

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		return zerr.With(zerr.Wrap(err, domain.ErrJournalWriteFailed.Error()), "path", tmp.Name())
	}
	if err := tmp.Chmod(domain.FilePerm); err != nil {
		_ = tmp.Close()
		return zerr.With(zerr.Wrap(err, domain.ErrJournalWriteFailed.Error()), "path", tmp.Name())
	}
	if err := tmp.Close(); err != nil {
		return zerr.With(zerr.Wrap(err, domain.ErrJournalWriteFailed.Error()), "path", tmp.Name())
	}
	if err := os.Rename(tmp.Name(), filename); err != nil {
		return zerr.With(zerr.Wrap(err, domain.ErrJournalWriteFailed.Error()), "path", filename)
	}

	return nil
}

func (s *Store) filename(root, script string) string {
	hash := sha256.Sum256([]byte(filepath.Clean(script)))
	hexHash := hex.EncodeToString(hash[:])
	return filepath.Join(root, domain.DefaultRunsPath(), hexHash+".json")
}
