package clean

import (
	"encoding/binary"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStoreRoundTrip(t *testing.T) {
	for _, n := range []int{0, 1, 5} {
		s := NewStore(filepath.Join(t.TempDir(), "nested", "custom_paths.bin"))
		var paths []string
		for i := 0; i < n; i++ {
			paths = append(paths, filepath.Join("C:", "data", "dir é", string(rune('a'+i))))
		}

		require.NoError(t, s.Save(paths))
		if n == 0 {
			assert.NoFileExists(t, s.Path())
		}

		got, err := s.Load()
		require.NoError(t, err)
		assert.ElementsMatch(t, paths, got)
	}
}

func TestStoreSaveEmptyRemovesFile(t *testing.T) {
	s := NewStore(filepath.Join(t.TempDir(), "custom_paths.bin"))
	require.NoError(t, s.Save([]string{"x"}))
	require.FileExists(t, s.Path())

	require.NoError(t, s.Save(nil))
	assert.NoFileExists(t, s.Path())
}

func record(s string) []byte {
	b := binary.LittleEndian.AppendUint32(nil, uint32(len(s)))
	return append(b, s...)
}

func TestStoreLoadStopsAtBadRecord(t *testing.T) {
	tests := []struct {
		name string
		tail []byte
	}{
		{"zero length", binary.LittleEndian.AppendUint32(nil, 0)},
		{"oversized", binary.LittleEndian.AppendUint32(nil, maxRecordLen+1)},
		{"truncated body", append(binary.LittleEndian.AppendUint32(nil, 50), "short"...)},
		{"truncated header", []byte{1, 0}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "custom_paths.bin")
			data := append(record("first"), tt.tail...)
			data = append(data, record("after")...)
			require.NoError(t, os.WriteFile(path, data, 0o644))

			got, err := NewStore(path).Load()
			require.NoError(t, err)
			assert.Equal(t, []string{"first"}, got)
		})
	}
}

func TestStoreLoadMissingFile(t *testing.T) {
	got, err := NewStore(filepath.Join(t.TempDir(), "none.bin")).Load()
	require.NoError(t, err)
	assert.Empty(t, got)
}
