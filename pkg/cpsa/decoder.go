// Package cpsa decodes the binary scan files produced by automated
// particle-track-counting instruments into in-memory frame and track tables.
package cpsa

import (
	"fmt"
	"io"

	"golang.org/x/text/encoding/charmap"
)

const (
	// frameReservedBytes sits between num_tracks and focus in every frame
	// descriptor and is skipped, never interpreted.
	frameReservedBytes = 12
	// trailerGapBytes separates the last frame block from the trailer text.
	trailerGapBytes = 4
	// trackRecordBytes is the per-track cost across the six parallel
	// arrays: int16 + 3 x int8 + 2 x int16.
	trackRecordBytes = 9
)

// Options is the decoder configuration surface.
type Options struct {
	// FrameBuffer and TrackBuffer are the accumulator staging capacities.
	// 0 means unbounded: stage everything, flush once at the end.
	FrameBuffer int
	TrackBuffer int

	// Bounds filters tracks after unit conversion. The zero value is
	// normalized to unbounded so Options{} decodes everything.
	Bounds Bounds

	// OnFrame, when set, is called after each frame with (decoded, total).
	// Pure instrumentation; it must not alter decode semantics.
	OnFrame func(done, total int)
}

// Stats counts what a decode run saw. TracksDropped counts records rejected
// by the bounds filter; they are never buffered.
type Stats struct {
	FramesDecoded int64
	TracksDecoded int64
	TracksDropped int64
	BytesRead     int64
}

// ScanData is the decoded form of one CPSA file: the header value object,
// the two ordered record collections, and the free-form trailer text.
type ScanData struct {
	Header  *Header
	Frames  []Frame
	Tracks  []Track
	Trailer string
	Stats   Stats
}

// Decode reads a complete CPSA byte stream: header, NumFrames frame blocks,
// then the trailer. Decoding is strictly sequential; every phase's offset
// depends on how many bytes the previous one consumed.
//
// On a mid-stream failure the returned ScanData still carries every frame
// and track decoded before the error point, alongside a non-nil error.
// A source too short for the header yields (nil, error).
func Decode(src io.ReaderAt, size int64, opts Options) (*ScanData, error) {
	if opts.Bounds == (Bounds{}) {
		opts.Bounds = UnboundedBounds()
	}

	r := NewReader(src, size)

	header, err := decodeHeader(r)
	if err != nil {
		return nil, err
	}

	acc := newAccumulator(opts.FrameBuffer, opts.TrackBuffer)
	data := &ScanData{Header: header}

	// The final flush runs on every exit path so that partial results
	// survive a truncated record stream.
	defer func() {
		acc.flush()
		data.Frames = acc.frames
		data.Tracks = acc.tracks
		data.Stats.BytesRead = r.Offset()
	}()

	if err := decodeFrames(r, header, acc, &data.Stats, opts); err != nil {
		return data, err
	}

	data.Trailer, err = decodeTrailer(r)
	if err != nil {
		return data, err
	}
	return data, nil
}

// decodeFrames consumes exactly header.NumFrames() frame blocks, feeding the
// accumulator with every frame and every in-bounds track.
func decodeFrames(r *Reader, h *Header, acc *accumulator, stats *Stats, opts Options) error {
	total := h.NumFrames()
	for i := 0; i < total; i++ {
		f, err := decodeFrameDescriptor(r)
		if err != nil {
			return fmt.Errorf("decode frame %d/%d: %w", i, total, err)
		}
		acc.addFrame(f)
		stats.FramesDecoded++

		if err := decodeTracks(r, h, f, acc, stats, opts.Bounds); err != nil {
			return fmt.Errorf("decode frame %d/%d tracks: %w", i, total, err)
		}

		if opts.OnFrame != nil {
			opts.OnFrame(i+1, total)
		}
	}
	return nil
}

func decodeFrameDescriptor(r *Reader) (Frame, error) {
	var f Frame
	var err error

	if f.Number, err = r.Int32(); err != nil {
		return f, fmt.Errorf("number: %w", err)
	}

	xPosRaw, err := r.Int32()
	if err != nil {
		return f, fmt.Errorf("x_position: %w", err)
	}
	yPosRaw, err := r.Int32()
	if err != nil {
		return f, fmt.Errorf("y_position: %w", err)
	}
	f.XPosition = 1e-5 * float64(xPosRaw)
	f.YPosition = 1e-5 * float64(yPosRaw)

	if f.NumTracks, err = r.Int32(); err != nil {
		return f, fmt.Errorf("num_tracks: %w", err)
	}
	if err = r.Skip(frameReservedBytes); err != nil {
		return f, fmt.Errorf("reserved: %w", err)
	}

	focusRaw, err := r.Int32()
	if err != nil {
		return f, fmt.Errorf("focus: %w", err)
	}
	f.Focus = 1e-2 * float64(focusRaw)

	if f.XPositionIndex, err = r.Int32(); err != nil {
		return f, fmt.Errorf("x_position_index: %w", err)
	}
	if f.YPositionIndex, err = r.Int32(); err != nil {
		return f, fmt.Errorf("y_position_index: %w", err)
	}
	return f, nil
}

// decodeTracks reads the six parallel arrays that follow a frame descriptor
// and zips them into track records. The array order (d, e, c, a, x, y) and
// the full-array-before-next layout are a hard contract of the file format.
func decodeTracks(r *Reader, h *Header, f Frame, acc *accumulator, stats *Stats, bounds Bounds) error {
	n := int(f.NumTracks)
	if n == 0 {
		return nil
	}
	// num_tracks comes from the file; a negative or overlong count means a
	// corrupt descriptor. Reject it before allocating the six arrays.
	if n < 0 || int64(n)*trackRecordBytes > r.Remaining() {
		return truncated(r.Offset(), fmt.Errorf("implausible num_tracks %d", f.NumTracks))
	}

	dArr := make([]int16, n)
	for i := range dArr {
		v, err := r.Int16()
		if err != nil {
			return fmt.Errorf("d[%d]: %w", i, err)
		}
		dArr[i] = v
	}

	eArr := make([]int8, n)
	for i := range eArr {
		v, err := r.Int8()
		if err != nil {
			return fmt.Errorf("e[%d]: %w", i, err)
		}
		eArr[i] = v
	}

	cArr := make([]int8, n)
	for i := range cArr {
		v, err := r.Int8()
		if err != nil {
			return fmt.Errorf("c[%d]: %w", i, err)
		}
		cArr[i] = v
	}

	aArr := make([]int8, n)
	for i := range aArr {
		v, err := r.Int8()
		if err != nil {
			return fmt.Errorf("a[%d]: %w", i, err)
		}
		aArr[i] = v
	}

	xArr := make([]int16, n)
	for i := range xArr {
		v, err := r.Int16()
		if err != nil {
			return fmt.Errorf("x[%d]: %w", i, err)
		}
		xArr[i] = v
	}

	yArr := make([]int16, n)
	for i := range yArr {
		v, err := r.Int16()
		if err != nil {
			return fmt.Errorf("y[%d]: %w", i, err)
		}
		yArr[i] = v
	}

	for i := 0; i < n; i++ {
		t := Track{
			FrameNumber: f.Number,
			D:           100 * float64(dArr[i]) * h.PixelSize,
			X:           f.XPosition - 0.5*h.FrameWidth + float64(xArr[i])*h.PixelSize,
			Y:           f.YPosition - 0.5*h.FrameHeight + float64(yArr[i])*h.PixelSize,
			E:           eArr[i],
			C:           cArr[i],
			A:           aArr[i],
		}
		if !bounds.Accept(&t) {
			stats.TracksDropped++
			continue
		}
		acc.addTrack(t)
		stats.TracksDecoded++
	}
	return nil
}

// decodeTrailer skips the fixed gap after the record region and decodes the
// remaining bytes as Latin-1 text. No length validation: a source with
// nothing left yields an empty trailer.
func decodeTrailer(r *Reader) (string, error) {
	if r.Remaining() <= trailerGapBytes {
		return "", nil
	}
	if err := r.Skip(trailerGapBytes); err != nil {
		return "", err
	}
	raw, err := r.Rest()
	if err != nil {
		return "", err
	}
	text, err := charmap.ISO8859_1.NewDecoder().Bytes(raw)
	if err != nil {
		return "", fmt.Errorf("decode trailer text: %w", err)
	}
	return string(text), nil
}
