// Package input opens catalog and game files, decompressing .zst and .bz2
// transparently.
package input

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"

	"github.com/dsnet/compress/bzip2"
	"github.com/inhies/go-bytesize"
	"github.com/klauspost/compress/zstd"
)

// Compression identifies the container format of an input file.
type Compression int

const (
	None Compression = iota
	Zstd
	Bzip2
)

// DetectCompression returns the compression implied by a file name.
func DetectCompression(name string) Compression {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".zst", ".zstd":
		return Zstd
	case ".bz2":
		return Bzip2
	default:
		return None
	}
}

// BaseExt returns the extension of name after stripping a compression suffix,
// e.g. ".pgn" for "games.pgn.zst".
func BaseExt(name string) string {
	if DetectCompression(name) != None {
		name = strings.TrimSuffix(name, filepath.Ext(name))
	}
	return strings.ToLower(filepath.Ext(name))
}

// File is an opened, possibly decompressing, input.
type File struct {
	io.Reader
	name    string
	size    bytesize.ByteSize
	counter *countingReader
	closers []func() error
}

// Open opens path for reading. Compressed files are decoded on the fly.
func Open(path string) (*File, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("cannot open %s: %w", path, err)
	}
	info, err := f.Stat()
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("cannot stat %s: %w", path, err)
	}

	counter := &countingReader{r: f}
	in := &File{
		name:    path,
		size:    bytesize.ByteSize(info.Size()),
		counter: counter,
		closers: []func() error{f.Close},
	}

	switch DetectCompression(path) {
	case Zstd:
		dec, err := zstd.NewReader(counter)
		if err != nil {
			f.Close()
			return nil, fmt.Errorf("zstd %s: %w", path, err)
		}
		in.Reader = dec
		in.closers = append([]func() error{func() error { dec.Close(); return nil }}, in.closers...)
	case Bzip2:
		dec, err := bzip2.NewReader(counter, nil)
		if err != nil {
			f.Close()
			return nil, fmt.Errorf("bzip2 %s: %w", path, err)
		}
		in.Reader = dec
		in.closers = append([]func() error{dec.Close}, in.closers...)
	default:
		in.Reader = counter
	}
	return in, nil
}

// Name returns the path the file was opened from.
func (f *File) Name() string {
	return f.name
}

// Size returns the on-disk (compressed) size.
func (f *File) Size() bytesize.ByteSize {
	return f.size
}

// BytesRead returns how many on-disk bytes have been consumed so far.
func (f *File) BytesRead() bytesize.ByteSize {
	return bytesize.ByteSize(f.counter.n.Load())
}

// Progress describes consumption as "read/total", e.g. "1.50MB/12.00MB".
func (f *File) Progress() string {
	return f.BytesRead().String() + "/" + f.size.String()
}

// Close releases the decoder and the underlying file.
func (f *File) Close() error {
	var first error
	for _, c := range f.closers {
		if err := c(); err != nil && first == nil {
			first = err
		}
	}
	return first
}

// countingReader counts the bytes read from the underlying file.
type countingReader struct {
	r io.Reader
	n atomic.Int64
}

func (c *countingReader) Read(p []byte) (int, error) {
	n, err := c.r.Read(p)
	c.n.Add(int64(n))
	return n, err
}

// ParseSize parses a human readable size such as "1MB" or "512KB".
func ParseSize(s string) (int, error) {
	b, err := bytesize.Parse(s)
	if err != nil {
		return 0, fmt.Errorf("invalid size %q: %w", s, err)
	}
	return int(b), nil
}
