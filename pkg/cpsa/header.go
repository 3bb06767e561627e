package cpsa

import "fmt"

// HeaderSize is the fixed byte length of the file header.
const HeaderSize = 48

// Header holds the scan-wide parameters stored at the start of every CPSA
// file. It is populated once by decodeHeader and read-only afterwards.
type Header struct {
	VersionNumber     int32
	NumXFrames        int32
	NumYFrames        int32
	NumBins           int32
	PixelSize         float64 // cm, raw value scaled by 1e-4
	PixelsPerBin      float64
	BorderLimit       int32
	ContrastLimit     int32
	EccentricityLimit int32
	M                 int32
	FrameWidth        float64 // cm, raw pixel count x PixelSize
	FrameHeight       float64 // cm, raw pixel count x PixelSize
}

// NumFrames returns the total frame count declared by the scan grid.
func (h *Header) NumFrames() int {
	return int(h.NumXFrames) * int(h.NumYFrames)
}

// decodeHeader consumes the twelve header primitives in file order. The
// layout is unconditional: VersionNumber is captured but never branched on.
func decodeHeader(r *Reader) (*Header, error) {
	h := &Header{}
	var err error

	if h.VersionNumber, err = r.Int32(); err != nil {
		return nil, fmt.Errorf("decode header version_number: %w", err)
	}
	if h.NumXFrames, err = r.Int32(); err != nil {
		return nil, fmt.Errorf("decode header num_x_frames: %w", err)
	}
	if h.NumYFrames, err = r.Int32(); err != nil {
		return nil, fmt.Errorf("decode header num_y_frames: %w", err)
	}
	if h.NumBins, err = r.Int32(); err != nil {
		return nil, fmt.Errorf("decode header num_bins: %w", err)
	}

	pixelSizeRaw, err := r.Float32()
	if err != nil {
		return nil, fmt.Errorf("decode header pixel_size: %w", err)
	}
	pixelsPerBin, err := r.Float32()
	if err != nil {
		return nil, fmt.Errorf("decode header pixels_per_bin: %w", err)
	}
	h.PixelsPerBin = float64(pixelsPerBin)

	if h.BorderLimit, err = r.Int32(); err != nil {
		return nil, fmt.Errorf("decode header border_limit: %w", err)
	}
	if h.ContrastLimit, err = r.Int32(); err != nil {
		return nil, fmt.Errorf("decode header contrast_limit: %w", err)
	}
	if h.EccentricityLimit, err = r.Int32(); err != nil {
		return nil, fmt.Errorf("decode header eccentricity_limit: %w", err)
	}
	if h.M, err = r.Int32(); err != nil {
		return nil, fmt.Errorf("decode header M: %w", err)
	}

	frameWidthRaw, err := r.Int32()
	if err != nil {
		return nil, fmt.Errorf("decode header frame_width: %w", err)
	}
	frameHeightRaw, err := r.Int32()
	if err != nil {
		return nil, fmt.Errorf("decode header frame_height: %w", err)
	}

	// PixelSize is scaled first; the raw frame dimensions are pixel counts
	// and become physical lengths only through the scaled pixel size.
	h.PixelSize = 1e-4 * float64(pixelSizeRaw)
	h.FrameWidth = float64(frameWidthRaw) * h.PixelSize
	h.FrameHeight = float64(frameHeightRaw) * h.PixelSize

	return h, nil
}
