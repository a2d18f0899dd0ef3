// Package posture classifies a hinge angle into a coarse device posture.
package posture

import (
	"fmt"
	"math"
)

// Posture is the shape of a foldable device derived from its hinge angle.
type Posture int

// Representation of Posture.
const (
	// Continuous means both halves are open flat, around 180 degrees.
	Continuous Posture = iota
	// Folded means the hinge is closed, around 0 degrees.
	Folded
	// HalfOpened covers the open range that is neither flat nor closed.
	HalfOpened
	// Flipped means the device is bent back past flat.
	Flipped
)

var all = []Posture{Continuous, Folded, HalfOpened, Flipped}

// All returns every posture in declaration order.
func All() []Posture {
	ret := make([]Posture, len(all))
	copy(ret, all)
	return ret
}

// Normalize reduces an angle in degrees into [0, 360).
func Normalize(deg float64) float64 {
	return math.Mod(math.Mod(deg, 360)+360, 360)
}

// FromAngle classifies a raw hinge angle. Rules are evaluated in order on the
// normalized angle and the first match wins, so 190 is Continuous rather than
// Flipped. Angles that do not normalize (NaN, ±Inf) fall through to HalfOpened.
func FromAngle(deg float64) Posture {
	n := Normalize(deg)

	if n >= 170 && n <= 190 {
		return Continuous
	}
	if n >= 190 && n < 350 {
		return Flipped
	}
	if n <= 30 || n >= 350 {
		return Folded
	}
	return HalfOpened
}

// String returns the display label, e.g. "half-opened".
func (p Posture) String() string {
	switch p {
	case Continuous:
		return "continuous"
	case Folded:
		return "folded"
	case HalfOpened:
		return "half-opened"
	case Flipped:
		return "flipped"
	}
	return fmt.Sprintf("Posture(%d)", int(p))
}

// Valid reports whether p is one of the four postures.
func (p Posture) Valid() bool {
	return p >= Continuous && p <= Flipped
}

// Parse is the inverse of String.
func Parse(s string) (Posture, error) {
	for _, p := range all {
		if p.String() == s {
			return p, nil
		}
	}
	return 0, fmt.Errorf("unknown posture %q", s)
}

// MarshalText implements encoding.TextMarshaler.
func (p Posture) MarshalText() ([]byte, error) {
	if !p.Valid() {
		return nil, fmt.Errorf("invalid posture %d", int(p))
	}
	return []byte(p.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (p *Posture) UnmarshalText(b []byte) error {
	v, err := Parse(string(b))
	if err != nil {
		return err
	}
	*p = v
	return nil
}
