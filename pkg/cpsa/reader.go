package cpsa

import (
	"encoding/binary"
	"io"
	"math"
)

// Reader is a positioned little-endian cursor over a byte source of known
// size. The offset only ever moves forward; there is no seeking back.
type Reader struct {
	src  io.ReaderAt
	size int64
	off  int64

	scratch [4]byte
}

// NewReader wraps src, which must expose size readable bytes.
func NewReader(src io.ReaderAt, size int64) *Reader {
	return &Reader{src: src, size: size}
}

// Offset returns the current cursor position.
func (r *Reader) Offset() int64 { return r.off }

// Remaining returns the number of unread bytes.
func (r *Reader) Remaining() int64 { return r.size - r.off }

func (r *Reader) next(n int) ([]byte, error) {
	if r.off+int64(n) > r.size {
		return nil, truncated(r.off, io.ErrUnexpectedEOF)
	}
	buf := r.scratch[:n]
	if _, err := r.src.ReadAt(buf, r.off); err != nil {
		// A short or failed ReadAt inside the declared size means the
		// source disappeared under us (e.g. closed mid-decode).
		return nil, truncated(r.off, err)
	}
	r.off += int64(n)
	return buf, nil
}

func (r *Reader) Int32() (int32, error) {
	buf, err := r.next(4)
	if err != nil {
		return 0, err
	}
	return int32(binary.LittleEndian.Uint32(buf)), nil
}

func (r *Reader) Float32() (float32, error) {
	buf, err := r.next(4)
	if err != nil {
		return 0, err
	}
	return math.Float32frombits(binary.LittleEndian.Uint32(buf)), nil
}

func (r *Reader) Int16() (int16, error) {
	buf, err := r.next(2)
	if err != nil {
		return 0, err
	}
	return int16(binary.LittleEndian.Uint16(buf)), nil
}

func (r *Reader) Int8() (int8, error) {
	buf, err := r.next(1)
	if err != nil {
		return 0, err
	}
	return int8(buf[0]), nil
}

// Skip advances the cursor past n reserved bytes without decoding them.
func (r *Reader) Skip(n int) error {
	if r.off+int64(n) > r.size {
		return truncated(r.off, io.ErrUnexpectedEOF)
	}
	r.off += int64(n)
	return nil
}

// Rest consumes and returns every byte from the cursor to the end of the
// source. An already-exhausted reader yields an empty slice.
func (r *Reader) Rest() ([]byte, error) {
	n := r.size - r.off
	if n <= 0 {
		return nil, nil
	}
	buf := make([]byte, n)
	if _, err := r.src.ReadAt(buf, r.off); err != nil {
		return nil, truncated(r.off, err)
	}
	r.off = r.size
	return buf, nil
}
