package store

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"tgju-tracker/internal/domain"
)

const DefaultStatePath = "tgju_prices.json"

// IOError is returned when the state file cannot be read or written.
type IOError struct {
	Op   string
	Path string
	Err  error
}

func (e *IOError) Error() string {
	return fmt.Sprintf("%s state %s: %v", e.Op, e.Path, e.Err)
}

func (e *IOError) Unwrap() error { return e.Err }

// FileStore keeps the last persisted price records in a single UTF-8 JSON file.
type FileStore struct {
	path string
}

// NewFileStore returns a store at path, or at DefaultStatePath when path is empty.
func NewFileStore(path string) *FileStore {
	if path == "" {
		path = DefaultStatePath
	}
	return &FileStore{path: path}
}

func (s *FileStore) Path() string { return s.path }

// Load returns the persisted records. A missing file is an empty map, not an
// error. On any other failure an empty map is returned together with an *IOError.
func (s *FileStore) Load() (domain.PersistedMap, error) {
	data, err := os.ReadFile(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		return domain.PersistedMap{}, nil
	}
	if err != nil {
		return domain.PersistedMap{}, &IOError{Op: "load", Path: s.path, Err: err}
	}
	if len(bytes.TrimSpace(data)) == 0 {
		return domain.PersistedMap{}, nil
	}

	m := domain.PersistedMap{}
	if err := json.Unmarshal(data, &m); err != nil {
		return domain.PersistedMap{}, &IOError{Op: "load", Path: s.path, Err: fmt.Errorf("decode: %w", err)}
	}
	return m, nil
}

// Save overwrites the state file with m. The write goes to a temp file in the
// same directory and is renamed into place, so readers never see a partial file.
func (s *FileStore) Save(m domain.PersistedMap) error {
	if m == nil {
		m = domain.PersistedMap{}
	}

	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "    ")
	if err := enc.Encode(m); err != nil {
		return &IOError{Op: "save", Path: s.path, Err: fmt.Errorf("encode: %w", err)}
	}

	if err := writeFileAtomic(s.path, buf.Bytes()); err != nil {
		return &IOError{Op: "save", Path: s.path, Err: err}
	}
	return nil
}

func writeFileAtomic(path string, data []byte) error {
	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()
	cleanup := func() { _ = os.Remove(tmpName) }

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		cleanup()
		return err
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		cleanup()
		return err
	}
	if err := tmp.Close(); err != nil {
		cleanup()
		return err
	}
	if err := os.Chmod(tmpName, 0o644); err != nil {
		cleanup()
		return err
	}
	if err := os.Rename(tmpName, path); err != nil {
		cleanup()
		return err
	}
	return nil
}
