package cpsa

// accumulator buffers accepted records in small staging slices and moves
// them into the output collections whenever a staging slice reaches its
// configured capacity. Capacity 0 means unbounded: stage everything and
// flush once at the end. Buffering never changes which records land in the
// output or their order.
type accumulator struct {
	frameCap int
	trackCap int

	stagedFrames []Frame
	stagedTracks []Track

	frames []Frame
	tracks []Track
}

func newAccumulator(frameCap, trackCap int) *accumulator {
	a := &accumulator{frameCap: frameCap, trackCap: trackCap}
	if frameCap > 0 {
		a.stagedFrames = make([]Frame, 0, frameCap)
	}
	if trackCap > 0 {
		a.stagedTracks = make([]Track, 0, trackCap)
	}
	return a
}

func (a *accumulator) addFrame(f Frame) {
	a.stagedFrames = append(a.stagedFrames, f)
	if a.frameCap > 0 && len(a.stagedFrames) >= a.frameCap {
		a.flushFrames()
	}
}

func (a *accumulator) addTrack(t Track) {
	a.stagedTracks = append(a.stagedTracks, t)
	if a.trackCap > 0 && len(a.stagedTracks) >= a.trackCap {
		a.flushTracks()
	}
}

func (a *accumulator) flushFrames() {
	a.frames = append(a.frames, a.stagedFrames...)
	a.stagedFrames = a.stagedFrames[:0]
}

func (a *accumulator) flushTracks() {
	a.tracks = append(a.tracks, a.stagedTracks...)
	a.stagedTracks = a.stagedTracks[:0]
}

// flush drains both staging buffers. Runs on every decode exit path so a
// failed decode still yields everything decoded before the error.
func (a *accumulator) flush() {
	a.flushFrames()
	a.flushTracks()
}
