package clean

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPathIndexResolve(t *testing.T) {
	x := NewPathIndex()
	fixed, custom, both := uuid.New(), uuid.New(), uuid.New()
	x.Fixed.Put(fixed, Target{Path: "/fixed"})
	x.Custom.Put(custom, Target{Path: "/custom"})
	x.Fixed.Put(both, Target{RecycleBin: true})
	x.Custom.Put(both, Target{Path: "/both"})

	got, err := x.Resolve(fixed)
	require.NoError(t, err)
	assert.Equal(t, "/fixed", got.Path)

	got, err = x.Resolve(custom)
	require.NoError(t, err)
	assert.Equal(t, "/custom", got.Path)

	_, err = x.Resolve(both)
	assert.ErrorIs(t, err, ErrAmbiguousOption)

	_, err = x.Resolve(uuid.New())
	assert.ErrorIs(t, err, ErrUnknownOption)
}

func TestPathTableOrder(t *testing.T) {
	tbl := newPathTable("custom")
	ids := []uuid.UUID{uuid.New(), uuid.New(), uuid.New()}
	for i, id := range ids {
		tbl.Put(id, Target{Path: string(rune('a' + i))})
	}
	tbl.Put(ids[0], Target{Path: "A"})
	assert.True(t, tbl.Delete(ids[1]))
	assert.False(t, tbl.Delete(ids[1]))

	var paths []string
	tbl.Each(func(_ uuid.UUID, t Target) { paths = append(paths, t.Path) })
	assert.Equal(t, []string{"A", "c"}, paths)
	assert.Equal(t, 2, tbl.Len())

	tbl.Reset()
	assert.Zero(t, tbl.Len())
}
