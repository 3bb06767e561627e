// Package source opens CPSA capture files as random-access byte sources.
// Plain files are memory-mapped; zstd-compressed captures (.zst) are
// inflated into memory, since the decoder needs the uncompressed length
// up front for trailer extraction.
package source

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/klauspost/compress/zstd"
	"golang.org/x/exp/mmap"

	"github.com/tracklab/cpsa/pkg/cpsa"
)

// Source is a closeable random-access byte source of known size.
type Source interface {
	io.ReaderAt
	io.Closer
	Size() int64
}

// Open returns a Source for path. Open failures are reported as
// resource-kind DecodeErrors; the decode itself has not started.
func Open(path string) (Source, error) {
	if strings.HasSuffix(path, ".zst") {
		return openCompressed(path)
	}

	m, err := mmap.Open(path)
	if err != nil {
		return nil, resourceErr(fmt.Errorf("open %s: %w", path, err))
	}
	return &mmapSource{m: m}, nil
}

type mmapSource struct {
	m *mmap.ReaderAt
}

func (s *mmapSource) ReadAt(p []byte, off int64) (int, error) { return s.m.ReadAt(p, off) }
func (s *mmapSource) Size() int64                             { return int64(s.m.Len()) }
func (s *mmapSource) Close() error                            { return s.m.Close() }

func openCompressed(path string) (Source, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, resourceErr(fmt.Errorf("open %s: %w", path, err))
	}
	defer f.Close()

	dec, err := zstd.NewReader(f)
	if err != nil {
		return nil, resourceErr(fmt.Errorf("zstd reader %s: %w", path, err))
	}
	defer dec.Close()

	data, err := io.ReadAll(dec)
	if err != nil {
		return nil, resourceErr(fmt.Errorf("inflate %s: %w", path, err))
	}
	return &memSource{r: bytes.NewReader(data), size: int64(len(data))}, nil
}

type memSource struct {
	r    *bytes.Reader
	size int64
}

func (s *memSource) ReadAt(p []byte, off int64) (int, error) { return s.r.ReadAt(p, off) }
func (s *memSource) Size() int64                             { return s.size }
func (s *memSource) Close() error                            { return nil }

func resourceErr(err error) *cpsa.DecodeError {
	return &cpsa.DecodeError{Kind: cpsa.KindResource, Err: err}
}

// DecodeFile opens path, decodes it, and closes the source on every exit
// path. This is the one-call entry point most callers want.
func DecodeFile(path string, opts cpsa.Options) (*cpsa.ScanData, error) {
	src, err := Open(path)
	if err != nil {
		return nil, err
	}
	defer src.Close()
	return cpsa.Decode(src, src.Size(), opts)
}
