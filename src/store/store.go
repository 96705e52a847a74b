// Package store persists the engine catalog to a single YAML file
package store

import (
	"bytes"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/apimgr/websearch/src/catalog"
	"github.com/apimgr/websearch/src/logging"
)

// Engines file errors
var (
	ErrMalformedConfig = errors.New("malformed engines file")
	ErrIO              = errors.New("engines file i/o failed")
)

// Store binds a catalog to the file it is loaded from and saved to
type Store struct {
	path   string
	logger *slog.Logger
}

// New creates a store for path. A nil logger discards log output.
func New(path string, logger *slog.Logger) *Store {
	if logger == nil {
		logger = logging.Discard()
	}
	return &Store{
		path:   path,
		logger: logger.With("file", path),
	}
}

// Path returns the bound file path
func (s *Store) Path() string {
	return s.path
}

// Load reads the catalog from the bound file.
// A missing file is created empty; an empty file yields an empty catalog
// and is left as it is.
func (s *Store) Load() (*catalog.Catalog, error) {
	s.logger.Info("loading engines")

	info, err := os.Stat(s.path)
	if err != nil {
		s.logger.Info("engines file does not exist, creating it")
		if err := s.create(); err != nil {
			s.logger.Error("failed to create engines file", "error", err)
			return nil, err
		}
		return catalog.New(), nil
	}
	if info.Size() == 0 {
		s.logger.Info("engines file is empty")
		return catalog.New(), nil
	}

	data, err := os.ReadFile(s.path)
	if err != nil {
		s.logger.Error("failed to read engines file", "error", err)
		return nil, fmt.Errorf("%w: read %s: %v", ErrIO, s.path, err)
	}

	c, err := Decode(data)
	if err != nil {
		s.logger.Error("failed to decode engines file", "error", err)
		return nil, err
	}

	s.logger.Info("engines loaded", "count", c.Len())
	return c, nil
}

func (s *Store) create() error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0700); err != nil {
		return fmt.Errorf("%w: create dir: %v", ErrIO, err)
	}
	f, err := os.OpenFile(s.path, os.O_CREATE|os.O_WRONLY, 0600)
	if err != nil {
		return fmt.Errorf("%w: create %s: %v", ErrIO, s.path, err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("%w: close %s: %v", ErrIO, s.path, err)
	}
	return nil
}

// Save replaces the bound file with the full catalog.
// The data is written to a temporary file in the same directory, synced and
// renamed over the target so a crash never leaves a truncated file.
func (s *Store) Save(c *catalog.Catalog) error {
	s.logger.Info("saving engines", "count", c.Len())

	data, err := Encode(c)
	if err != nil {
		s.logger.Error("failed to encode engines", "error", err)
		return fmt.Errorf("%w: encode: %v", ErrIO, err)
	}

	if err := writeAtomic(s.path, data, 0600); err != nil {
		s.logger.Error("failed to save engines file", "error", err)
		return err
	}

	s.logger.Info("engines saved")
	return nil
}

func writeAtomic(path string, data []byte, perm os.FileMode) error {
	// Replace the link target so a symlinked engines file stays a link
	if target, err := filepath.EvalSymlinks(path); err == nil {
		path = target
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0700); err != nil {
		return fmt.Errorf("%w: create dir: %v", ErrIO, err)
	}

	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("%w: create temp file: %v", ErrIO, err)
	}
	tmpPath := tmp.Name()

	fail := func(op string, err error) error {
		tmp.Close()
		os.Remove(tmpPath)
		return fmt.Errorf("%w: %s: %v", ErrIO, op, err)
	}

	if _, err := tmp.Write(data); err != nil {
		return fail("write", err)
	}
	if err := tmp.Chmod(perm); err != nil {
		return fail("chmod", err)
	}
	if err := tmp.Sync(); err != nil {
		return fail("sync", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("%w: close: %v", ErrIO, err)
	}

	if err := os.Rename(tmpPath, path); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("%w: rename: %v", ErrIO, err)
	}
	return nil
}

// Encode serializes a catalog to YAML
func Encode(c *catalog.Catalog) ([]byte, error) {
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(c); err != nil {
		return nil, err
	}
	if err := enc.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Decode parses YAML into a catalog
func Decode(data []byte) (*catalog.Catalog, error) {
	c := catalog.New()
	if err := yaml.Unmarshal(data, c); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedConfig, err)
	}
	return c, nil
}
