package client

import (
	"context"
	"errors"
	"net"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/charlie0129/hinge/pkg/config"
	"github.com/charlie0129/hinge/pkg/daemon"
	"github.com/charlie0129/hinge/pkg/events"
	"github.com/charlie0129/hinge/pkg/hinge"
	"github.com/charlie0129/hinge/pkg/posture"
)

// startDaemon serves a daemon.Server on a fresh unix socket and returns a
// client for it.
func startDaemon(t *testing.T, sensor *hinge.Sensor, hub *events.EventHub) *Client {
	t.Helper()

	// Unix socket paths are length limited, so avoid t.TempDir.
	dir, err := os.MkdirTemp("", "hinge")
	require.NoError(t, err)
	t.Cleanup(func() { _ = os.RemoveAll(dir) })
	socketPath := filepath.Join(dir, "d.sock")

	conf, err := config.NewFile(filepath.Join(dir, "hinge.json"))
	require.NoError(t, err)

	l, err := net.Listen("unix", socketPath)
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	srv := &http.Server{
		Handler:     daemon.NewServer(sensor, conf, hub).Handler(),
		BaseContext: func(net.Listener) context.Context { return ctx },
	}
	go func() { _ = srv.Serve(l) }()
	t.Cleanup(func() {
		cancel()
		_ = srv.Close()
	})

	return NewClient(socketPath)
}

func TestClientReads(t *testing.T) {
	src := hinge.NewMockSource(190)
	c := startDaemon(t, hinge.NewMockSensor(src), nil)

	angle, err := c.GetAngle()
	require.NoError(t, err)
	assert.Equal(t, 190.0, angle)

	p, err := c.GetPosture()
	require.NoError(t, err)
	assert.Equal(t, posture.Continuous, p)

	src.SetAngle(-10)
	st, err := c.GetStatus()
	require.NoError(t, err)
	assert.Equal(t, -10.0, st.Angle)
	assert.Equal(t, "folded", st.Posture)

	v, err := c.GetVersion()
	require.NoError(t, err)
	assert.NotEmpty(t, v)
}

func TestClientConfig(t *testing.T) {
	c := startDaemon(t, hinge.NewMockSensor(hinge.NewMockSource(0)), nil)

	_, err := c.SetPollInterval(250)
	require.NoError(t, err)
	_, err = c.SetWatchPosture(false)
	require.NoError(t, err)

	conf, err := c.GetConfig()
	require.NoError(t, err)
	assert.Equal(t, 250, *conf.PollIntervalMillis)
	assert.False(t, *conf.WatchPosture)

	_, err = c.SetPollInterval(1)
	var de *DaemonError
	require.ErrorAs(t, err, &de)
	assert.Equal(t, http.StatusBadRequest, de.StatusCode)
	assert.Contains(t, de.Message, "poll interval must be between")
}

func TestClientSensorErrorsUnchanged(t *testing.T) {
	tests := []struct {
		name     string
		open     hinge.Opener
		wantText string
		wantKind hinge.Kind
	}{
		{
			name:     "unsupported platform",
			open:     func() (hinge.Source, error) { return nil, hinge.ErrUnsupportedPlatform },
			wantText: "Platform not supported",
			wantKind: hinge.KindUnsupportedPlatform,
		},
		{
			name:     "acquisition failure",
			open:     func() (hinge.Source, error) { return nil, errors.New("failed to open lid angle sensor: IOReturn 0xe00002c7") },
			wantText: "failed to open lid angle sensor: IOReturn 0xe00002c7",
			wantKind: hinge.KindAcquisition,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := startDaemon(t, hinge.NewSensor(tt.open), nil)

			_, err1 := c.GetPosture()
			_, err2 := c.GetPosture()
			_, err3 := c.GetAngle()

			for _, err := range []error{err1, err2, err3} {
				require.Error(t, err)
				assert.Equal(t, tt.wantText, err.Error())
				assert.Equal(t, tt.wantKind, hinge.KindOf(err))
			}
			if tt.wantKind == hinge.KindUnsupportedPlatform {
				assert.ErrorIs(t, err1, hinge.ErrUnsupportedPlatform)
			}
		})
	}
}

func TestClientDaemonNotRunning(t *testing.T) {
	c := NewClient(filepath.Join(t.TempDir(), "missing.sock"))

	_, err := c.GetAngle()
	assert.ErrorIs(t, err, ErrDaemonNotRunning)
}

func TestClientUnknownMethod(t *testing.T) {
	c := NewClient("/nonexistent")
	_, err := c.Send("DELETE", "/angle", "")
	assert.ErrorContains(t, err, "unknown method")
}

func TestSubscribeEvents(t *testing.T) {
	hub := events.NewEventHub()
	c := startDaemon(t, hinge.NewMockSensor(hinge.NewMockSource(0)), hub)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	ch, err := c.SubscribeEvents(ctx)
	require.NoError(t, err)

	hub.Publish(events.PostureChanged, events.PostureChangedEvent{From: "folded", To: "flipped", Angle: 200, Ts: 1})

	select {
	case ev, ok := <-ch:
		require.True(t, ok)
		assert.Equal(t, events.PostureChanged, ev.Name)
		assert.NotEmpty(t, ev.ID)
		payload, err := events.DecodeAs[events.PostureChangedEvent](ev)
		require.NoError(t, err)
		assert.Equal(t, "flipped", payload.To)
		assert.Equal(t, 200.0, payload.Angle)
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for event")
	}

	cancel()
	require.Eventually(t, func() bool {
		select {
		case _, ok := <-ch:
			return !ok
		default:
			return false
		}
	}, 2*time.Second, 10*time.Millisecond)
}

func TestReadSSE(t *testing.T) {
	stream := strings.Join([]string{
		": keep-alive",
		"id:1",
		"event:posture.changed",
		`data:{"to":"folded","angle":0,"ts":1}`,
		"",
		"id: 2",
		"event: sensor.error",
		`data: {"message":"Platform not supported",`,
		`data: "kind":"unsupported-platform","ts":2}`,
		"",
		"",
	}, "\n")

	var got []events.Event
	err := readSSE(strings.NewReader(stream), func(ev events.Event) bool {
		got = append(got, ev)
		return true
	})
	require.NoError(t, err)
	require.Len(t, got, 2)

	assert.Equal(t, "1", got[0].ID)
	assert.Equal(t, events.PostureChanged, got[0].Name)

	assert.Equal(t, "2", got[1].ID)
	payload, err := events.DecodeAs[events.SensorErrorEvent](got[1])
	require.NoError(t, err)
	assert.Equal(t, "Platform not supported", payload.Message)
	assert.Equal(t, "unsupported-platform", payload.Kind)
}
