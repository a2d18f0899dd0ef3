package daemon

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/charlie0129/hinge/pkg/events"
	"github.com/charlie0129/hinge/pkg/hinge"
	"github.com/charlie0129/hinge/pkg/posture"
)

// watcher polls the sensor and publishes posture changes. Each poll is
// judged on its own; there is no smoothing across polls.
type watcher struct {
	s *Server

	last    posture.Posture
	hasLast bool
	lastErr string
}

// Watch polls the posture every PollInterval until ctx is done, publishing
// events.PostureChanged when the label changes and events.SensorError when
// the failure text changes. It idles while WatchPosture is off.
func (s *Server) Watch(ctx context.Context) {
	w := &watcher{s: s}

	logrus.Debugln("posture watcher starts")
	defer logrus.Debugln("posture watcher stopped")

	for {
		if s.conf.WatchPosture() {
			w.pollOnce(ctx)
		}

		t := time.NewTimer(s.conf.PollInterval())
		select {
		case <-ctx.Done():
			t.Stop()
			return
		case <-s.pollNow:
			t.Stop()
		case <-t.C:
		}
	}
}

func (w *watcher) pollOnce(ctx context.Context) {
	deg, err := w.s.sensor.Angle(ctx)
	if err != nil {
		if ctx.Err() != nil {
			return
		}
		w.publishError(err)
		return
	}
	w.lastErr = ""

	p := posture.FromAngle(deg)
	if w.hasLast && p == w.last {
		return
	}

	ev := events.PostureChangedEvent{
		To:    p.String(),
		Angle: deg,
		Ts:    time.Now().Unix(),
	}
	if w.hasLast {
		ev.From = w.last.String()
	}
	w.last, w.hasLast = p, true

	logrus.WithFields(logrus.Fields{
		"from":  ev.From,
		"to":    ev.To,
		"angle": deg,
	}).Info("posture changed")

	w.s.hub.Publish(events.PostureChanged, ev)
}

// publishError reports err unless it repeats the previous failure.
func (w *watcher) publishError(err error) {
	msg := err.Error()
	if msg == w.lastErr {
		return
	}
	w.lastErr = msg

	kind := hinge.KindOf(err)
	logrus.WithField("kind", kind).Errorf("failed to read hinge angle: %v", err)

	w.s.hub.Publish(events.SensorError, events.SensorErrorEvent{
		Message: msg,
		Kind:    kind.String(),
		Ts:      time.Now().Unix(),
	})
}
