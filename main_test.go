package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	wadtypes "github.com/ossyrian/wadparse/internal/types"
	"github.com/ossyrian/wadparse/internal/wad"
)

func testArchive() *wad.Archive {
	return &wad.Archive{
		Signature: wad.SignatureIWAD,
		Directory: []wad.Entry{
			wad.RawEntry{FilePos: 12, Size: 4, Name: wad.MustParseLumpName("PLAYPAL")}.Entry(),
			wad.RawEntry{FilePos: 16, Name: wad.MustParseLumpName("E1M1")}.Entry(),
		},
	}
}

func TestLookup(t *testing.T) {
	a := testArchive()
	assert.NoError(t, lookup(a, "E1M1"))
	assert.EqualError(t, lookup(a, "E1M2"), `lump "E1M2" not found`)
}

func TestWriteCatalog(t *testing.T) {
	catalog := wadtypes.FromArchive("doom1.wad", testArchive())

	var stdout bytes.Buffer
	require.NoError(t, writeCatalog(&stdout, "", catalog))

	var got wadtypes.Catalog
	require.NoError(t, json.Unmarshal(stdout.Bytes(), &got))
	assert.Equal(t, catalog, got)

	path := filepath.Join(t.TempDir(), "out.json")
	stdout.Reset()
	require.NoError(t, writeCatalog(&stdout, path, catalog))
	assert.Zero(t, stdout.Len())

	b, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(b), `"name": "E1M1"`)
}
