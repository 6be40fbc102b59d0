package parser

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"sync"

	"github.com/sourcegraph/conc/pool"
	"github.com/spf13/afero"

	"github.com/ossyrian/wadparse/internal/wad"
)

// batchSize bounds how many directory entries are read concurrently
// before their results are appended to the catalog.
const batchSize = 1024

// WadReader reads the header and directory of a WAD file.
// All reads are positioned, so entries can be read in any order.
type WadReader struct {
	file   io.ReaderAt
	name   string
	logger *slog.Logger
	header *wad.Header
}

// NewWadReader returns a reader over file. name is only used in errors and logs.
func NewWadReader(file io.ReaderAt, name string, logger *slog.Logger) *WadReader {
	if logger == nil {
		logger = slog.Default()
	}
	return &WadReader{
		file:   file,
		name:   name,
		logger: logger,
	}
}

// ReadHeader reads and decodes the 12 byte header at the start of the file.
// Unknown signatures are logged but not rejected.
func (r *WadReader) ReadHeader() (*wad.Header, error) {
	buf := make([]byte, wad.HeaderSize)
	if err := readFullAt(r.file, buf, 0); err != nil {
		return nil, r.fail(wad.ErrFailedToReadHeader, -1, err)
	}

	h, err := wad.DecodeHeader(buf)
	if err != nil {
		return nil, r.fail(wad.ErrCouldNotDecodeHeader, -1, err)
	}

	if !h.Signature.Known() {
		r.logger.Warn("unknown signature", "signature", h.Signature.String())
	}

	r.logger.Info("header is valid",
		"signature", h.Signature.String(),
		"count", h.Count,
		"directory_offset", h.DirectoryOffset,
	)

	r.header = &h
	return &h, nil
}

// ReadEntry reads directory entry i. ReadHeader must have been called.
func (r *WadReader) ReadEntry(i int) (wad.Entry, error) {
	if r.header == nil {
		return wad.Entry{}, errors.New("header has not been read")
	}

	buf := make([]byte, wad.EntrySize)
	if err := readFullAt(r.file, buf, r.header.EntryOffset(i)); err != nil {
		return wad.Entry{}, r.fail(wad.ErrFailedToReadDirectory, i, err)
	}

	raw, err := wad.DecodeEntry(buf)
	if err != nil {
		return wad.Entry{}, r.fail(wad.ErrCouldNotDecodeDirectory, i, err)
	}

	return raw.Entry(), nil
}

// ReadDir reads every directory entry, one after another.
// A negative count yields an empty directory.
func (r *WadReader) ReadDir() ([]wad.Entry, error) {
	if r.header == nil {
		return nil, errors.New("header has not been read")
	}
	count := int(r.header.Count)

	r.logger.Debug("reading directory entries", "entry_count", count)

	entries := make([]wad.Entry, 0, min(max(count, 0), batchSize))
	for i := 0; i < count; i++ {
		entry, err := r.ReadEntry(i)
		if err != nil {
			return nil, err
		}
		entries = append(entries, entry)
		r.logEntry(i, entry)
	}

	r.logger.Info("read directory", "entry_count", len(entries))
	return entries, nil
}

// ReadDirConcurrent reads the directory using up to workers goroutines.
// Entries are read in batches so memory only grows with entries that were
// actually read. The result is in directory order, and when several reads
// fail the error for the lowest index is returned.
func (r *WadReader) ReadDirConcurrent(workers int) ([]wad.Entry, error) {
	if workers <= 1 {
		return r.ReadDir()
	}
	if r.header == nil {
		return nil, errors.New("header has not been read")
	}
	count := int(r.header.Count)

	r.logger.Debug("reading directory entries",
		"entry_count", count,
		"workers", workers,
	)

	entries := make([]wad.Entry, 0, min(max(count, 0), batchSize))
	for start := 0; start < count; start += batchSize {
		end := min(start+batchSize, count)
		batch := make([]wad.Entry, end-start)
		errs := make([]error, end-start)

		p := pool.New().WithMaxGoroutines(workers)
		for i := start; i < end; i++ {
			p.Go(func() {
				batch[i-start], errs[i-start] = r.ReadEntry(i)
			})
		}
		p.Wait()

		for j, err := range errs {
			if err != nil {
				return nil, err
			}
			r.logEntry(start+j, batch[j])
		}
		entries = append(entries, batch...)
	}

	r.logger.Info("read directory", "entry_count", len(entries))
	return entries, nil
}

func (r *WadReader) logEntry(i int, e wad.Entry) {
	r.logger.Debug("read directory entry",
		"index", i,
		"name", e.Name.String(),
		"start", e.Start,
		"size", e.Size,
	)
}

func (r *WadReader) fail(kind error, index int, err error) error {
	return &wad.LoadError{
		Kind:  kind,
		Path:  r.name,
		Index: index,
		Err:   err,
	}
}

// readFullAt fills buf from off. Short reads fail with io.ErrUnexpectedEOF.
func readFullAt(r io.ReaderAt, buf []byte, off int64) error {
	if off < 0 {
		return fmt.Errorf("invalid offset %d", off)
	}
	n, err := r.ReadAt(buf, off)
	if n == len(buf) {
		return nil
	}
	if err == nil || errors.Is(err, io.EOF) {
		return fmt.Errorf("read %d of %d bytes at offset %d: %w", n, len(buf), off, io.ErrUnexpectedEOF)
	}
	return fmt.Errorf("read at offset %d: %w", off, err)
}

// lockedReaderAt serializes ReadAt calls on files that track a position
// internally, such as afero.MemMapFs files.
type lockedReaderAt struct {
	mu sync.Mutex
	r  io.ReaderAt
}

func (l *lockedReaderAt) ReadAt(p []byte, off int64) (int, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.r.ReadAt(p, off)
}

// readerAtFor returns f unchanged when it is an *os.File, whose ReadAt
// is a pread and safe for concurrent use. Other files are wrapped in a
// lockedReaderAt.
func readerAtFor(f afero.File) io.ReaderAt {
	if osFile, ok := f.(*os.File); ok {
		return osFile
	}
	return &lockedReaderAt{r: f}
}

type options struct {
	fs      afero.Fs
	workers int
	logger  *slog.Logger
}

// Option configures Load.
type Option func(*options)

// WithFs sets the filesystem archives are opened from. Defaults to the OS filesystem.
func WithFs(fs afero.Fs) Option {
	return func(o *options) { o.fs = fs }
}

// WithWorkers sets how many directory entries may be read at once.
// Values below 2 read sequentially. Reads on files that are not
// *os.File are serialized, so any afero.Fs is safe to use.
func WithWorkers(n int) Option {
	return func(o *options) { o.workers = n }
}

// WithLogger sets the logger. Defaults to slog.Default().
func WithLogger(l *slog.Logger) Option {
	return func(o *options) { o.logger = l }
}

// Load decodes the header and directory of the WAD file at path.
// It either returns a complete archive or an error; never a partial directory.
func Load(path string, opts ...Option) (*wad.Archive, error) {
	o := options{
		fs:      afero.NewOsFs(),
		workers: 1,
		logger:  slog.Default(),
	}
	for _, opt := range opts {
		opt(&o)
	}

	logger := o.logger.With("file", path)
	logger.Info("starting")

	file, err := o.fs.Open(path)
	if err != nil {
		return nil, &wad.LoadError{
			Kind:  wad.ErrFailedToOpenFile,
			Path:  path,
			Index: -1,
			Err:   err,
		}
	}
	defer file.Close()

	reader := NewWadReader(readerAtFor(file), path, logger)

	h, err := reader.ReadHeader()
	if err != nil {
		return nil, err
	}

	entries, err := reader.ReadDirConcurrent(o.workers)
	if err != nil {
		return nil, err
	}

	return &wad.Archive{
		Signature: h.Signature,
		Directory: entries,
	}, nil
}
