// Package wadtest builds WAD images for tests.
package wadtest

import (
	"encoding/binary"
	"testing"

	"github.com/ossyrian/wadparse/internal/wad"
)

// Lump is a test lump. Data is written to the payload area.
type Lump struct {
	Name string
	Data []byte
}

// SharewareNames are the first ten lump names of the shareware DOOM1.WAD.
var SharewareNames = []string{
	"PLAYPAL", "COLORMAP", "ENDOOM", "DEMO1", "DEMO2",
	"DEMO3", "E1M1", "THINGS", "LINEDEFS", "SIDEDEFS",
}

// Build returns a WAD image: header, payloads, then the directory.
func Build(tb testing.TB, sig wad.Signature, lumps []Lump) []byte {
	tb.Helper()

	var payload []byte
	dir := make([]byte, 0, len(lumps)*wad.EntrySize)
	for _, l := range lumps {
		if len(l.Name) > wad.NameSize {
			tb.Fatalf("lump name %q longer than %d bytes", l.Name, wad.NameSize)
		}
		e := wad.RawEntry{
			FilePos: int32(wad.HeaderSize + len(payload)),
			Size:    int32(len(l.Data)),
		}
		copy(e.Name[:], l.Name)
		dir = append(dir, EncodeEntry(e)...)
		payload = append(payload, l.Data...)
	}

	out := EncodeHeader(wad.Header{
		Signature:       sig,
		Count:           int32(len(lumps)),
		DirectoryOffset: int32(wad.HeaderSize + len(payload)),
	})
	out = append(out, payload...)
	return append(out, dir...)
}

// Names returns one empty lump per name.
func Names(names ...string) []Lump {
	lumps := make([]Lump, len(names))
	for i, n := range names {
		lumps[i] = Lump{Name: n}
	}
	return lumps
}

// EncodeHeader writes h in its on-disk layout.
func EncodeHeader(h wad.Header) []byte {
	b := make([]byte, wad.HeaderSize)
	copy(b[0:4], h.Signature[:])
	binary.LittleEndian.PutUint32(b[4:8], uint32(h.Count))
	binary.LittleEndian.PutUint32(b[8:12], uint32(h.DirectoryOffset))
	return b
}

// EncodeEntry writes e in its on-disk layout.
func EncodeEntry(e wad.RawEntry) []byte {
	b := make([]byte, wad.EntrySize)
	binary.LittleEndian.PutUint32(b[0:4], uint32(e.FilePos))
	binary.LittleEndian.PutUint32(b[4:8], uint32(e.Size))
	copy(b[8:16], e.Name[:])
	return b
}
