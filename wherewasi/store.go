package wherewasi

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/plus3/wherewasi/transform"
)

// ValidateName rejects names that would not map to a single file inside the
// save directory.
func ValidateName(name string) error {
	switch {
	case name == "", name == ".", name == "..":
		return fmt.Errorf("%w: %q", ErrInvalidName, name)
	case strings.ContainsAny(name, `/\`), strings.ContainsRune(name, 0):
		return fmt.Errorf("%w: %q contains a path separator", ErrInvalidName, name)
	}
	return nil
}

// Store maps names to save files in one directory.
type Store struct {
	dir   string
	codec Codec
}

// NewStore returns a store rooted at dir. A nil codec means TextCodec.
func NewStore(dir string, codec Codec) *Store {
	if codec == nil {
		codec = TextCodec{}
	}
	return &Store{dir: dir, codec: codec}
}

func (s *Store) Dir() string {
	return s.dir
}

func (s *Store) Codec() Codec {
	return s.codec
}

// Path returns the file that holds name.
func (s *Store) Path(name string) string {
	return filepath.Join(s.dir, name+s.codec.Extension())
}

// Load reads the transform saved under name. A missing file yields an error
// wrapping ErrNotFound.
func (s *Store) Load(name string) (transform.Transform, error) {
	if err := ValidateName(name); err != nil {
		return transform.Transform{}, err
	}

	path := s.Path(name)
	f, err := os.Open(path)
	if errors.Is(err, fs.ErrNotExist) {
		return transform.Transform{}, fmt.Errorf("%w: %s", ErrNotFound, path)
	}
	if err != nil {
		return transform.Transform{}, err
	}
	defer f.Close()

	t, err := s.codec.Decode(f)
	if err != nil {
		return transform.Transform{}, fmt.Errorf("decode %s: %w", path, err)
	}
	return t, nil
}

// Save writes t under name, creating the directory if needed. An existing
// file is truncated; the write is not atomic.
func (s *Store) Save(name string, t transform.Transform) error {
	if err := ValidateName(name); err != nil {
		return err
	}
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return fmt.Errorf("create save directory: %w", err)
	}

	path := s.Path(name)
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := s.codec.Encode(f, t); err != nil {
		f.Close()
		return fmt.Errorf("encode %s: %w", path, err)
	}
	return f.Close()
}

// Remove deletes the file saved under name.
func (s *Store) Remove(name string) error {
	if err := ValidateName(name); err != nil {
		return err
	}
	err := os.Remove(s.Path(name))
	if errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("%w: %s", ErrNotFound, s.Path(name))
	}
	return err
}

// List returns the names that have a save file, sorted. Files whose name
// would not pass ValidateName are skipped. A missing directory is not an
// error.
func (s *Store) List() ([]string, error) {
	entries, err := os.ReadDir(s.dir)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	ext := s.codec.Extension()
	var names []string
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ext) {
			continue
		}
		name := strings.TrimSuffix(entry.Name(), ext)
		if ValidateName(name) != nil {
			continue
		}
		names = append(names, name)
	}
	slices.Sort(names)
	return names, nil
}

// NameFromPath returns the name stored at path, or false if path does not
// belong to this store.
func (s *Store) NameFromPath(path string) (string, bool) {
	if filepath.Clean(filepath.Dir(path)) != filepath.Clean(s.dir) {
		return "", false
	}
	base := filepath.Base(path)
	ext := s.codec.Extension()
	if !strings.HasSuffix(base, ext) || base == ext {
		return "", false
	}
	return strings.TrimSuffix(base, ext), true
}
