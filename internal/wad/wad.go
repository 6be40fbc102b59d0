package wad

import (
	"fmt"
	"strings"
)

// Signature is the 4 byte magic at the start of a WAD file.
type Signature [4]byte

// String decodes the signature as text. Each invalid UTF-8 sequence is
// replaced with U+FFFD, never rejected.
func (s Signature) String() string {
	return decodeLossy(s[:])
}

// Known reports whether s is one of the two signatures used by the format.
func (s Signature) Known() bool {
	return s == SignatureIWAD || s == SignaturePWAD
}

// Location is the byte offset of a lump's payload within the file.
type Location int32

// Size is a lump length in bytes.
type Size int32

// EntryType is reserved for formats that tag lumps by kind. Always zero here.
type EntryType uint8

// Compression is reserved for formats with compressed lumps. Always zero here.
type Compression uint8

// LumpName is a lump identifier: up to 8 bytes of ASCII, NUL-padded on the right.
type LumpName [NameSize]byte

// ParseLumpName builds a LumpName from s, zero-filling the unused bytes.
// The limit applies to the encoded byte length of s, not its rune count.
func ParseLumpName(s string) (LumpName, error) {
	var n LumpName
	if len(s) > NameSize {
		return n, fmt.Errorf("%w: %q is %d bytes, max %d", ErrNameTooLarge, s, len(s), NameSize)
	}
	copy(n[:], s)
	return n, nil
}

// MustParseLumpName is like ParseLumpName but panics on error.
func MustParseLumpName(s string) LumpName {
	n, err := ParseLumpName(s)
	if err != nil {
		panic(err)
	}
	return n
}

// String returns the name with trailing NUL padding removed.
func (n LumpName) String() string {
	return strings.TrimRight(decodeLossy(n[:]), "\x00")
}

// Entry describes one lump in the directory.
// RealSize mirrors Size since lumps are never decompressed; Kind,
// Compression and Padding are placeholders and stay zero.
type Entry struct {
	Start       Location
	Size        Size
	RealSize    Size
	Kind        EntryType
	Compression Compression
	Padding     int16
	Name        LumpName
}

// Header is the fixed record at offset 0 of a WAD file.
type Header struct {
	Signature       Signature
	Count           int32 // number of directory entries
	DirectoryOffset int32 // where the directory starts
}

// EntryOffset returns the absolute file offset of directory entry i.
func (h Header) EntryOffset(i int) int64 {
	return int64(h.DirectoryOffset) + int64(i)*EntrySize
}

// RawEntry is a directory record exactly as stored on disk.
type RawEntry struct {
	FilePos int32
	Size    int32
	Name    [NameSize]byte
}

// Entry converts the raw record into its catalog form.
func (r RawEntry) Entry() Entry {
	return Entry{
		Start:    Location(r.FilePos),
		Size:     Size(r.Size),
		RealSize: Size(r.Size),
		Name:     LumpName(r.Name),
	}
}
