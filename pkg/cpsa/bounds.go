package cpsa

import "math"

// Interval is a closed [Min, Max] range. The zero value is NOT unbounded;
// use Unbounded() or Between().
type Interval struct {
	Min float64
	Max float64
}

// Unbounded returns an interval matching every value.
func Unbounded() Interval {
	return Interval{Min: math.Inf(-1), Max: math.Inf(1)}
}

// Between returns the closed interval [min, max].
func Between(min, max float64) Interval {
	return Interval{Min: min, Max: max}
}

// Contains reports whether v lies in the interval, inclusive on both ends.
func (iv Interval) Contains(v float64) bool {
	return v >= iv.Min && v <= iv.Max
}

// IsUnbounded reports whether the interval matches everything.
func (iv Interval) IsUnbounded() bool {
	return math.IsInf(iv.Min, -1) && math.IsInf(iv.Max, 1)
}

// Bounds is the per-field track filter: six independent closed intervals
// applied to converted (physical-unit) values, never to raw encodings.
type Bounds struct {
	D Interval
	X Interval
	Y Interval
	E Interval
	C Interval
	A Interval
}

// UnboundedBounds returns a filter that keeps every track.
func UnboundedBounds() Bounds {
	return Bounds{
		D: Unbounded(),
		X: Unbounded(),
		Y: Unbounded(),
		E: Unbounded(),
		C: Unbounded(),
		A: Unbounded(),
	}
}

// Accept reports whether every field of t lies within its interval. The six
// checks are independent; failing any one drops the track.
func (b Bounds) Accept(t *Track) bool {
	return b.D.Contains(t.D) &&
		b.X.Contains(t.X) &&
		b.Y.Contains(t.Y) &&
		b.E.Contains(float64(t.E)) &&
		b.C.Contains(float64(t.C)) &&
		b.A.Contains(float64(t.A))
}
