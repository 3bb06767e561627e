package cpsa

// Frame is one scanned tile position of the instrument. Frames are emitted
// in file order, exactly NumXFrames*NumYFrames of them per file.
type Frame struct {
	Number         int32
	XPosition      float64 // cm, raw int scaled by 1e-5
	YPosition      float64 // cm, raw int scaled by 1e-5
	NumTracks      int32
	Focus          float64 // raw int scaled by 1e-2
	XPositionIndex int32
	YPositionIndex int32
}

// Track is one detected particle track. FrameNumber back-references the
// owning Frame's Number; there is no reverse navigation.
type Track struct {
	FrameNumber int32
	D           float64 // diameter: 100 * raw * PixelSize
	X           float64 // cm, frame-relative offset re-centered into scan coords
	Y           float64 // cm
	E           int8    // eccentricity, unscaled
	C           int8    // contrast, unscaled
	A           int8    // fourth instrument scalar, unscaled
}
