package wad

import (
	"encoding/binary"
	"fmt"
)

// DecodeHeader decodes a header record. b must be exactly HeaderSize bytes:
//   - 0..4:  signature
//   - 4..8:  entry count (int32 LE)
//   - 8..12: directory offset (int32 LE)
func DecodeHeader(b []byte) (Header, error) {
	var h Header
	if len(b) != HeaderSize {
		return h, fmt.Errorf("%w: got %d bytes, want %d", ErrCouldNotDecodeHeader, len(b), HeaderSize)
	}

	copy(h.Signature[:], b[0:4])
	h.Count = int32(binary.LittleEndian.Uint32(b[4:8]))
	h.DirectoryOffset = int32(binary.LittleEndian.Uint32(b[8:12]))
	return h, nil
}

// DecodeEntry decodes a directory record. b must be exactly EntrySize bytes:
//   - 0..4:  file position (int32 LE)
//   - 4..8:  size (int32 LE)
//   - 8..16: name, NUL-padded
func DecodeEntry(b []byte) (RawEntry, error) {
	var e RawEntry
	if len(b) != EntrySize {
		return e, fmt.Errorf("%w: got %d bytes, want %d", ErrCouldNotDecodeDirectory, len(b), EntrySize)
	}

	e.FilePos = int32(binary.LittleEndian.Uint32(b[0:4]))
	e.Size = int32(binary.LittleEndian.Uint32(b[4:8]))
	copy(e.Name[:], b[8:16])
	return e, nil
}
