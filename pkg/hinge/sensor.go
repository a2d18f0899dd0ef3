// Package hinge reads the hinge (lid) angle of a foldable device.
//
// A Sensor owns one platform Source. The source is opened lazily on the first
// read, exactly once; if opening fails, that error is kept and returned by
// every later read without retrying. Reads are serialized so the platform
// source never sees two queries at the same time.
package hinge

import (
	"context"
	"errors"
	"sync"

	"github.com/sirupsen/logrus"

	"github.com/charlie0129/hinge/pkg/posture"
)

// Source is an opened platform angle source. Implementations need not be safe
// for concurrent use; Sensor serializes calls.
type Source interface {
	// Angle returns the current hinge angle in degrees.
	Angle() (float64, error)
}

// Opener acquires a Source. A Sensor calls it at most once.
type Opener func() (Source, error)

// Sensor is a lazily opened, serialized hinge angle reader.
type Sensor struct {
	open Opener

	once sync.Once
	src  Source
	err  error

	// sem is a one-slot semaphore guarding src.
	sem chan struct{}
}

// NewSensor returns a Sensor that acquires its source with open on first use.
func NewSensor(open Opener) *Sensor {
	return &Sensor{
		open: open,
		sem:  make(chan struct{}, 1),
	}
}

// NewPlatformSensor returns a Sensor backed by this build's platform source.
func NewPlatformSensor() *Sensor {
	return NewSensor(openPlatformSource)
}

func (s *Sensor) acquire() (Source, error) {
	s.once.Do(func() {
		logrus.Debug("acquiring hinge sensor")

		src, err := s.open()
		switch {
		case errors.Is(err, ErrUnsupportedPlatform):
			s.err = &Error{Kind: KindUnsupportedPlatform, Err: err}
		case err != nil:
			s.err = &Error{Kind: KindAcquisition, Err: err}
		case src == nil:
			s.err = &Error{Kind: KindAcquisition, Err: errors.New("hinge sensor opener returned no source")}
		default:
			s.src = src
			logrus.Debug("hinge sensor acquired")
			return
		}

		logrus.WithField("kind", KindOf(s.err)).Warnf("hinge sensor unavailable: %v", s.err)
	})

	return s.src, s.err
}

// Angle returns the current hinge angle in degrees, as reported by the
// platform. ctx only bounds the wait for exclusive access; a query that has
// started always runs to completion.
func (s *Sensor) Angle(ctx context.Context) (float64, error) {
	src, err := s.acquire()
	if err != nil {
		return 0, err
	}

	select {
	case s.sem <- struct{}{}:
	case <-ctx.Done():
		return 0, ctx.Err()
	}
	defer func() { <-s.sem }()

	logrus.Trace("Trying to read hinge angle")

	deg, err := src.Angle()
	if err != nil {
		return 0, &Error{Kind: KindQuery, Err: err}
	}

	logrus.WithField("angle", deg).Trace("Read hinge angle succeed")

	return deg, nil
}

// Posture reads the angle and classifies it. Read failures are returned
// unchanged.
func (s *Sensor) Posture(ctx context.Context) (posture.Posture, error) {
	deg, err := s.Angle(ctx)
	if err != nil {
		return 0, err
	}
	return posture.FromAngle(deg), nil
}
