package hinge

import "errors"

// ErrUnsupportedPlatform is returned on builds without a hinge angle source.
// Callers match this text verbatim.
//
//nolint:stylecheck
var ErrUnsupportedPlatform = errors.New("Platform not supported")

// Kind tells the three sensor failure modes apart.
type Kind int

// Representation of Kind.
const (
	KindUnknown Kind = iota
	// KindUnsupportedPlatform is permanent: the build has no sensor capability.
	KindUnsupportedPlatform
	// KindAcquisition is permanent: opening the sensor failed once and is cached.
	KindAcquisition
	// KindQuery is per call: the sensor was open but a read failed.
	KindQuery
)

var kindNames = map[Kind]string{
	KindUnknown:             "unknown",
	KindUnsupportedPlatform: "unsupported-platform",
	KindAcquisition:         "acquisition",
	KindQuery:               "query",
}

func (k Kind) String() string {
	if s, ok := kindNames[k]; ok {
		return s
	}
	return kindNames[KindUnknown]
}

// ParseKind is the inverse of Kind.String. Unrecognized names are KindUnknown.
func ParseKind(s string) Kind {
	for k, name := range kindNames {
		if name == s {
			return k
		}
	}
	return KindUnknown
}

// Error is a sensor failure. Its text is exactly the text of Err.
type Error struct {
	Kind Kind
	Err  error
}

func (e *Error) Error() string {
	return e.Err.Error()
}

func (e *Error) Unwrap() error {
	return e.Err
}

// KindOf returns the sensor failure kind of err, or KindUnknown.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	if errors.Is(err, ErrUnsupportedPlatform) {
		return KindUnsupportedPlatform
	}
	return KindUnknown
}
