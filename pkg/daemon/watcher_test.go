package daemon

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/charlie0129/hinge/pkg/config"
	"github.com/charlie0129/hinge/pkg/events"
	"github.com/charlie0129/hinge/pkg/hinge"
)

func nextEvent(t *testing.T, ch chan events.Event) events.Event {
	t.Helper()
	select {
	case ev := <-ch:
		return ev
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for event")
	}
	return events.Event{}
}

func assertNoEvent(t *testing.T, ch chan events.Event, wait time.Duration) {
	t.Helper()
	select {
	case ev := <-ch:
		t.Fatalf("unexpected event %s: %s", ev.Name, ev.Data)
	case <-time.After(wait):
	}
}

func startWatch(t *testing.T, s *Server) {
	t.Helper()
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		defer close(done)
		s.Watch(ctx)
	}()
	t.Cleanup(func() {
		cancel()
		<-done
	})
}

func TestWatchPublishesPostureChanges(t *testing.T) {
	src := hinge.NewMockSource(0)
	s, conf := newTestServer(t, hinge.NewMockSensor(src))
	conf.SetPollInterval(config.MinPollInterval)
	ch := s.hub.Subscribe()

	startWatch(t, s)

	ev := nextEvent(t, ch)
	require.Equal(t, events.PostureChanged, ev.Name)
	first, err := events.DecodeAs[events.PostureChangedEvent](ev)
	require.NoError(t, err)
	assert.Empty(t, first.From)
	assert.Equal(t, "folded", first.To)

	// Same posture, different angle: nothing new.
	src.SetAngle(20)
	assertNoEvent(t, ch, 4*config.MinPollInterval)

	src.SetAngle(95)
	s.RequestPoll()
	changed, err := events.DecodeAs[events.PostureChangedEvent](nextEvent(t, ch))
	require.NoError(t, err)
	assert.Equal(t, "folded", changed.From)
	assert.Equal(t, "half-opened", changed.To)
	assert.Equal(t, 95.0, changed.Angle)
}

func TestWatchPublishesErrorsOnce(t *testing.T) {
	src := hinge.NewMockSource(180)
	src.SetError(errors.New("IOReturn 0xe00002eb"))
	s, conf := newTestServer(t, hinge.NewMockSensor(src))
	conf.SetPollInterval(config.MinPollInterval)
	ch := s.hub.Subscribe()

	startWatch(t, s)

	ev := nextEvent(t, ch)
	require.Equal(t, events.SensorError, ev.Name)
	payload, err := events.DecodeAs[events.SensorErrorEvent](ev)
	require.NoError(t, err)
	assert.Equal(t, "IOReturn 0xe00002eb", payload.Message)
	assert.Equal(t, hinge.KindQuery.String(), payload.Kind)

	assertNoEvent(t, ch, 4*config.MinPollInterval)
	assert.Greater(t, src.Calls(), 1)

	src.SetError(nil)
	ev = nextEvent(t, ch)
	require.Equal(t, events.PostureChanged, ev.Name)
	changed, err := events.DecodeAs[events.PostureChangedEvent](ev)
	require.NoError(t, err)
	assert.Equal(t, "continuous", changed.To)
}

func TestWatchDisabled(t *testing.T) {
	src := hinge.NewMockSource(90)
	s, conf := newTestServer(t, hinge.NewMockSensor(src))
	conf.SetPollInterval(config.MinPollInterval)
	conf.SetWatchPosture(false)
	ch := s.hub.Subscribe()

	startWatch(t, s)

	assertNoEvent(t, ch, 4*config.MinPollInterval)
	assert.Equal(t, 0, src.Calls())

	conf.SetWatchPosture(true)
	s.RequestPoll()
	ev := nextEvent(t, ch)
	assert.Equal(t, events.PostureChanged, ev.Name)
}
