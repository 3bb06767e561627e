package cpsa

import (
	"errors"
	"fmt"
)

// ErrorKind classifies decode failures. The format carries no checksums or
// resync markers, so every kind is fatal for the remainder of the stream.
type ErrorKind int

const (
	// KindTruncation means the byte source ran out mid-primitive.
	KindTruncation ErrorKind = iota
	// KindResource means the byte source could not be opened or read at all.
	KindResource
)

func (k ErrorKind) String() string {
	switch k {
	case KindTruncation:
		return "truncation"
	case KindResource:
		return "resource"
	}
	return "unknown"
}

// ErrTruncated matches any truncation DecodeError via errors.Is.
var ErrTruncated = errors.New("cpsa: truncated file")

// DecodeError reports a fatal decode failure together with the byte offset
// at which it was detected.
type DecodeError struct {
	Kind   ErrorKind
	Offset int64
	Err    error
}

func (e *DecodeError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("cpsa: %s at offset %d: %v", e.Kind, e.Offset, e.Err)
	}
	return fmt.Sprintf("cpsa: %s at offset %d", e.Kind, e.Offset)
}

func (e *DecodeError) Unwrap() error { return e.Err }

func (e *DecodeError) Is(target error) bool {
	return target == ErrTruncated && e.Kind == KindTruncation
}

func truncated(offset int64, cause error) *DecodeError {
	return &DecodeError{Kind: KindTruncation, Offset: offset, Err: cause}
}
