package clean

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
)

// maxRecordLen bounds a single store record. Larger or zero lengths end
// parsing.
const maxRecordLen = 10000

// Store persists custom paths as a stream of records, each a little-endian
// uint32 length followed by that many bytes of UTF-8 path.
type Store struct {
	path string
}

// NewStore returns a store backed by the file at path.
func NewStore(path string) *Store {
	return &Store{path: path}
}

// Path returns the backing file location.
func (s *Store) Path() string { return s.path }

// Load returns the stored paths. A missing file yields no paths. A truncated
// or out-of-range record ends the stream without an error.
func (s *Store) Load() ([]string, error) {
	data, err := os.ReadFile(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read custom paths: %w", err)
	}

	var paths []string
	for len(data) >= 4 {
		n := binary.LittleEndian.Uint32(data)
		if n == 0 || n > maxRecordLen || uint64(len(data)-4) < uint64(n) {
			break
		}
		paths = append(paths, string(data[4:4+n]))
		data = data[4+n:]
	}
	return paths, nil
}

// Save replaces the store contents with paths. An empty set removes the file.
func (s *Store) Save(paths []string) error {
	if len(paths) == 0 {
		if err := os.Remove(s.path); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("remove custom paths: %w", err)
		}
		return nil
	}

	var buf bytes.Buffer
	var hdr [4]byte
	for _, p := range paths {
		if len(p) == 0 || len(p) > maxRecordLen {
			continue
		}
		binary.LittleEndian.PutUint32(hdr[:], uint32(len(p)))
		buf.Write(hdr[:])
		buf.WriteString(p)
	}

	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return fmt.Errorf("create data dir: %w", err)
	}
	if err := os.WriteFile(s.path, buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("write custom paths: %w", err)
	}
	return nil
}
