// Package frame deals with the closed set of reference frames a sky painter
// works in, and with converting vectors between them.
//
// Frames are ordered by how much they depend on the observer: the sky-fixed
// frames (ICRF, Ecliptic, Galactic) have their origin at the barycenter and
// do not depend on time or place, the Observed (horizontal) frame depends on
// the observer's location and sidereal time, and the View frame additionally
// on the viewing direction.
//
// Conventions:
//
//	Observed: x toward north, y toward west, z toward the zenith.
//	View:     x to the right of the screen, y up, the viewer looks along -z.
//
// Conversions of directions are pure rotations and preserve the norm.
// Conversions of positions also move the origin between the barycenter and
// the observer.
package frame

import (
	"fmt"

	"github.com/npillmayer/schuko/tracing"
)

// tracer writes to trace with key 'skyclip.frame'
func tracer() tracing.Trace {
	return tracing.Select("skyclip.frame")
}

// Frame identifies a reference frame.
type Frame int

// The supported frames. Count is not a frame but the size of the set, to be
// used for arrays indexed by frame.
const (
	ICRF Frame = iota
	Ecliptic
	Galactic
	Observed
	View
	Count
)

var frameNames = [Count]string{"ICRF", "ECLIPTIC", "GALACTIC", "OBSERVED", "VIEW"}

// Valid is a predicate: is f one of the supported frames?
func (f Frame) Valid() bool {
	return f >= 0 && f < Count
}

func (f Frame) String() string {
	if !f.Valid() {
		return fmt.Sprintf("Frame(%d)", int(f))
	}
	return frameNames[f]
}

// Frames returns all frames, in index order.
func Frames() []Frame {
	fs := make([]Frame, Count)
	for i := range fs {
		fs[i] = Frame(i)
	}
	return fs
}

// observerCentered is a predicate: is the origin of f at the observer?
func (f Frame) observerCentered() bool {
	return f == Observed || f == View
}
