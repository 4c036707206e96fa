// Package filestore persists the user dictionary as a single JSON file.
package filestore

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/google/uuid"

	"github.com/heartmarshall/userdict/internal/domain"
)

// Store reads and writes one dictionary file.
type Store struct {
	path string
}

// New returns a Store backed by path. The file is not touched until Load or Save.
func New(path string) *Store {
	return &Store{path: path}
}

// Path returns the backing file path.
func (s *Store) Path() string { return s.path }

// Ping checks that the directory holding the dictionary file exists.
func (s *Store) Ping(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	dir := filepath.Dir(s.path)
	info, err := os.Stat(dir)
	if err != nil {
		return fmt.Errorf("%w: %w", domain.ErrStorage, err)
	}
	if !info.IsDir() {
		return fmt.Errorf("%w: %s is not a directory", domain.ErrStorage, dir)
	}
	return nil
}

// Load reads the dictionary file. A missing file yields an empty dictionary.
// Any decode or record validation failure is reported as domain.ErrStorage
// and no words are returned.
func (s *Store) Load(ctx context.Context) (map[uuid.UUID]domain.Word, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	data, err := os.ReadFile(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		return map[uuid.UUID]domain.Word{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("%w: read %s: %w", domain.ErrStorage, s.path, err)
	}

	words := map[uuid.UUID]domain.Word{}
	if len(bytes.TrimSpace(data)) == 0 {
		return words, nil
	}
	if err := json.Unmarshal(data, &words); err != nil {
		return nil, fmt.Errorf("%w: decode %s: %w", domain.ErrStorage, s.path, err)
	}

	for id, w := range words {
		if err := w.Validate(); err != nil {
			return nil, fmt.Errorf("%w: %s: %w", domain.ErrStorage, s.path, &domain.WordError{ID: id, Err: err})
		}
	}
	return words, nil
}

// Save writes the full dictionary atomically: the snapshot goes to a
// temporary file in the target directory which is then renamed over the
// target, so readers see either the old or the new file.
func (s *Store) Save(ctx context.Context, words map[uuid.UUID]domain.Word) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	data, err := Encode(words)
	if err != nil {
		return fmt.Errorf("%w: encode: %w", domain.ErrStorage, err)
	}

	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("%w: create %s: %w", domain.ErrStorage, dir, err)
	}

	tmp, err := os.CreateTemp(dir, "."+filepath.Base(s.path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("%w: create temp file: %w", domain.ErrStorage, err)
	}
	tmpName := tmp.Name()
	defer func() {
		if err != nil {
			_ = os.Remove(tmpName)
		}
	}()

	if _, err = tmp.Write(data); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("%w: write %s: %w", domain.ErrStorage, tmpName, err)
	}
	if err = tmp.Sync(); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("%w: sync %s: %w", domain.ErrStorage, tmpName, err)
	}
	if err = tmp.Close(); err != nil {
		return fmt.Errorf("%w: close %s: %w", domain.ErrStorage, tmpName, err)
	}
	if err = os.Chmod(tmpName, 0o644); err != nil {
		return fmt.Errorf("%w: chmod %s: %w", domain.ErrStorage, tmpName, err)
	}
	if err = os.Rename(tmpName, s.path); err != nil {
		return fmt.Errorf("%w: replace %s: %w", domain.ErrStorage, s.path, err)
	}
	return nil
}

// Encode renders words in the on-disk layout: an indented JSON object keyed
// by identifier in sorted order.
func Encode(words map[uuid.UUID]domain.Word) ([]byte, error) {
	if words == nil {
		words = map[uuid.UUID]domain.Word{}
	}
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(words); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Decode parses a dictionary in the on-disk layout without validating it.
func Decode(data []byte) (map[uuid.UUID]domain.Word, error) {
	words := map[uuid.UUID]domain.Word{}
	if err := json.Unmarshal(data, &words); err != nil {
		return nil, err
	}
	return words, nil
}
