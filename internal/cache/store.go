package cache

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

var (
	// ErrCacheIO marks any failure to read or write an artifact.
	ErrCacheIO = errors.New("cache io failure")

	// ErrNotFound marks a missing artifact. It also matches ErrCacheIO.
	ErrNotFound = fmt.Errorf("%w: artifact not found", ErrCacheIO)
)

// Key identifies one artifact.
type Key struct {
	Provider string
	Season   string
	Category string
	Name     string
}

func (k Key) String() string {
	return k.Provider + "/" + k.Season + "/" + k.Category + "/" + k.Name
}

func (k Key) validate() error {
	for _, part := range []string{k.Provider, k.Season, k.Category, k.Name} {
		if part == "" || part == "." || part == ".." || strings.ContainsAny(part, `/\`) {
			return fmt.Errorf("%w: invalid key %q", ErrCacheIO, k.String())
		}
	}
	return nil
}

// Store maps keys to JSON files under a root directory.
type Store struct {
	root     string
	recorder Recorder
}

// Option configures a Store.
type Option func(*Store)

// WithRecorder reports every hit and write to r.
func WithRecorder(r Recorder) Option {
	return func(s *Store) {
		s.recorder = r
	}
}

// New creates a store rooted at dir. The directory is created lazily.
func New(dir string, opts ...Option) *Store {
	s := &Store{root: dir}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Root returns the store's root directory.
func (s *Store) Root() string {
	return s.root
}

// Path returns the artifact path for key without touching the filesystem.
func (s *Store) Path(key Key) (string, error) {
	if err := key.validate(); err != nil {
		return "", err
	}
	return filepath.Join(s.root, key.Provider, key.Season, key.Category, key.Name+".json"), nil
}

// ResolvePath returns the artifact path for key, creating missing directories.
func (s *Store) ResolvePath(key Key) (string, error) {
	path, err := s.Path(key)
	if err != nil {
		return "", err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return "", fmt.Errorf("%w: create %s: %w", ErrCacheIO, filepath.Dir(path), err)
	}
	return path, nil
}

// Exists reports whether an artifact for key is present.
func (s *Store) Exists(key Key) bool {
	path, err := s.Path(key)
	if err != nil {
		return false
	}
	info, err := os.Stat(path)
	return err == nil && info.Mode().IsRegular()
}

// Write serializes v as indented JSON and atomically replaces path.
func (s *Store) Write(path string, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("%w: encode %s: %w", ErrCacheIO, path, err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(path), ".tmp-"+filepath.Base(path)+"-*")
	if err != nil {
		return fmt.Errorf("%w: create temp for %s: %w", ErrCacheIO, path, err)
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName) // no-op after a successful rename

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("%w: write %s: %w", ErrCacheIO, path, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("%w: close %s: %w", ErrCacheIO, path, err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		return fmt.Errorf("%w: rename %s: %w", ErrCacheIO, path, err)
	}
	return nil
}

// Read decodes the artifact at path into v.
func (s *Store) Read(path string, v any) error {
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("%w: %s", ErrNotFound, path)
	}
	if err != nil {
		return fmt.Errorf("%w: read %s: %w", ErrCacheIO, path, err)
	}
	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("%w: decode %s: %w", ErrCacheIO, path, err)
	}
	return nil
}

// Entry describes one artifact on disk.
type Entry struct {
	Key   Key
	Path  string
	Size  int64
	Mtime int64 // unix seconds
}

// List walks the store and returns every artifact, sorted by key.
// A missing root yields an empty list.
func (s *Store) List() ([]Entry, error) {
	var out []Entry
	err := filepath.WalkDir(s.root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) && path == s.root {
				return filepath.SkipDir
			}
			return err
		}
		if d.IsDir() || filepath.Ext(path) != ".json" || strings.HasPrefix(d.Name(), ".tmp-") {
			return nil
		}
		rel, err := filepath.Rel(s.root, path)
		if err != nil {
			return err
		}
		parts := strings.Split(filepath.ToSlash(rel), "/")
		if len(parts) != 4 {
			return nil
		}
		info, err := d.Info()
		if err != nil {
			return err
		}
		out = append(out, Entry{
			Key: Key{
				Provider: parts[0],
				Season:   parts[1],
				Category: parts[2],
				Name:     strings.TrimSuffix(parts[3], ".json"),
			},
			Path:  path,
			Size:  info.Size(),
			Mtime: info.ModTime().Unix(),
		})
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("%w: list %s: %w", ErrCacheIO, s.root, err)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Key.String() < out[j].Key.String() })
	return out, nil
}
