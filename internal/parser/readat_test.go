package parser

import (
	"bytes"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ossyrian/wadparse/internal/wad"
	"github.com/ossyrian/wadparse/internal/wadtest"
)

// trackingFile is an afero.File whose ReadAt records how many calls
// overlap. Only ReadAt is implemented.
type trackingFile struct {
	afero.File
	data     []byte
	inFlight atomic.Int32
	maxSeen  atomic.Int32
}

func (f *trackingFile) ReadAt(p []byte, off int64) (int, error) {
	cur := f.inFlight.Add(1)
	defer f.inFlight.Add(-1)
	for {
		seen := f.maxSeen.Load()
		if cur <= seen || f.maxSeen.CompareAndSwap(seen, cur) {
			break
		}
	}
	time.Sleep(20 * time.Microsecond)

	if off >= int64(len(f.data)) {
		return 0, io.EOF
	}
	n := copy(p, f.data[off:])
	if n < len(p) {
		return n, io.EOF
	}
	return n, nil
}

func TestReaderAtFor_SerializesNonOSFiles(t *testing.T) {
	names := make([]string, 300)
	for i := range names {
		names[i] = fmt.Sprintf("L%03d", i)
	}
	img := wadtest.Build(t, wad.SignatureIWAD, wadtest.Names(names...))
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	seq := NewWadReader(bytes.NewReader(img), "want.wad", logger)
	_, err := seq.ReadHeader()
	require.NoError(t, err)
	want, err := seq.ReadDir()
	require.NoError(t, err)

	tf := &trackingFile{data: img}
	r := NewWadReader(readerAtFor(tf), "tracked.wad", logger)
	_, err = r.ReadHeader()
	require.NoError(t, err)

	got, err := r.ReadDirConcurrent(16)
	require.NoError(t, err)
	assert.Equal(t, want, got)
	assert.Equal(t, int32(1), tf.maxSeen.Load())
}

func TestReaderAtFor_OSFileUnwrapped(t *testing.T) {
	path := filepath.Join(t.TempDir(), "os.wad")
	require.NoError(t, os.WriteFile(path, wadtest.Build(t, wad.SignaturePWAD, nil), 0o644))

	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()

	got := readerAtFor(f)
	assert.IsType(t, &os.File{}, got)
	assert.Equal(t, io.ReaderAt(f), got)

	memFs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(memFs, "/mem.wad", []byte("IWAD"), 0o644))
	mf, err := memFs.Open("/mem.wad")
	require.NoError(t, err)
	defer mf.Close()
	assert.IsType(t, &lockedReaderAt{}, readerAtFor(mf))
}
