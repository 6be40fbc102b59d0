package wad_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ossyrian/wadparse/internal/wad"
)

func testArchive() *wad.Archive {
	entry := func(name string, start int32) wad.Entry {
		return wad.RawEntry{FilePos: start, Name: wad.MustParseLumpName(name)}.Entry()
	}
	return &wad.Archive{
		Signature: wad.SignaturePWAD,
		Directory: []wad.Entry{
			entry("PLAYPAL", 12),
			entry("E1M1", 100),
			entry("THINGS", 100),
			entry("E1M1", 200),
			entry("THINGS", 200),
		},
	}
}

func TestArchive_Find(t *testing.T) {
	a := testArchive()

	e, i, ok := a.Find("THINGS")
	assert.True(t, ok)
	assert.Equal(t, 4, i)
	assert.Equal(t, wad.Location(200), e.Start)

	e, i, ok = a.Find("PLAYPAL")
	assert.True(t, ok)
	assert.Equal(t, 0, i)
	assert.Equal(t, wad.Location(12), e.Start)

	_, i, ok = a.Find("E1M2")
	assert.False(t, ok)
	assert.Equal(t, -1, i)

	_, _, ok = a.Find("NAMETOOLONG")
	assert.False(t, ok)

	// names are matched exactly
	_, _, ok = a.Find("things")
	assert.False(t, ok)
}

func TestArchive_Names(t *testing.T) {
	a := testArchive()
	assert.Equal(t, 5, a.Len())
	assert.Equal(t, []string{"PLAYPAL", "E1M1", "THINGS", "E1M1", "THINGS"}, a.Names())

	assert.Empty(t, (&wad.Archive{}).Names())
}
