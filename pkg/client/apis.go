package client

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"
	"strings"

	pkgerrors "github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/charlie0129/hinge/pkg/config"
	"github.com/charlie0129/hinge/pkg/daemon"
	"github.com/charlie0129/hinge/pkg/events"
	"github.com/charlie0129/hinge/pkg/hinge"
	"github.com/charlie0129/hinge/pkg/posture"
)

// sensorError turns a failed sensor read back into a *hinge.Error carrying
// the daemon's text unchanged. Other errors are returned as they are.
func sensorError(err error) error {
	var de *DaemonError
	if !errors.As(err, &de) || de.Kind == hinge.KindUnknown {
		return err
	}
	if de.Kind == hinge.KindUnsupportedPlatform && de.Message == hinge.ErrUnsupportedPlatform.Error() {
		return &hinge.Error{Kind: de.Kind, Err: hinge.ErrUnsupportedPlatform}
	}
	return &hinge.Error{Kind: de.Kind, Err: errors.New(de.Message)}
}

// GetAngle returns the hinge angle in degrees.
func (c *Client) GetAngle() (float64, error) {
	ret, err := c.Get("/angle")
	if err != nil {
		return 0, sensorError(err)
	}
	angle, err := strconv.ParseFloat(strings.TrimSpace(ret), 64)
	if err != nil {
		return 0, pkgerrors.Wrapf(err, "failed to parse hinge angle")
	}
	return angle, nil
}

// GetPosture returns the posture derived from the hinge angle.
func (c *Client) GetPosture() (posture.Posture, error) {
	ret, err := c.Get("/posture")
	if err != nil {
		return 0, sensorError(err)
	}
	var p posture.Posture
	if err := json.Unmarshal([]byte(ret), &p); err != nil {
		return 0, pkgerrors.Wrapf(err, "failed to unmarshal posture")
	}
	return p, nil
}

// GetStatus returns the angle and posture from a single sensor read.
func (c *Client) GetStatus() (*daemon.Status, error) {
	ret, err := c.Get("/status")
	if err != nil {
		return nil, sensorError(err)
	}
	var st daemon.Status
	if err := json.Unmarshal([]byte(ret), &st); err != nil {
		return nil, pkgerrors.Wrapf(err, "failed to unmarshal status")
	}
	return &st, nil
}

func (c *Client) GetConfig() (*config.RawFileConfig, error) {
	ret, err := c.Get("/config")
	if err != nil {
		return nil, pkgerrors.Wrapf(err, "failed to get config")
	}

	var conf config.RawFileConfig
	if err := json.Unmarshal([]byte(ret), &conf); err != nil {
		return nil, pkgerrors.Wrapf(err, "failed to unmarshal config")
	}

	return &conf, nil
}

func (c *Client) GetVersion() (string, error) {
	ret, err := c.Get("/version")
	if err != nil {
		return "", pkgerrors.Wrapf(err, "failed to get version")
	}
	var v string
	if err := json.Unmarshal([]byte(ret), &v); err != nil {
		return "", pkgerrors.Wrapf(err, "failed to unmarshal version")
	}
	return v, nil
}

func (c *Client) SetPollInterval(millis int) (string, error) {
	return c.Put("/poll-interval", strconv.Itoa(millis))
}

func (c *Client) SetWatchPosture(enabled bool) (string, error) {
	return c.Put("/watch-posture", strconv.FormatBool(enabled))
}

// SubscribeEvents streams daemon events until ctx is done or the daemon
// closes the stream. The returned channel is closed afterwards.
func (c *Client) SubscribeEvents(ctx context.Context) (<-chan events.Event, error) {
	req, err := c.newRequest(ctx, http.MethodGet, "/events", "")
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "text/event-stream")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, pkgerrors.Wrapf(err, "failed to subscribe to events")
	}
	if resp.StatusCode != http.StatusOK {
		_ = resp.Body.Close()
		return nil, pkgerrors.Errorf("failed to subscribe to events: got %d", resp.StatusCode)
	}

	ch := make(chan events.Event)
	go func() {
		defer close(ch)
		defer func() {
			if err := resp.Body.Close(); err != nil {
				logrus.Debugf("failed to close event stream: %v", err)
			}
		}()

		err := readSSE(resp.Body, func(ev events.Event) bool {
			select {
			case ch <- ev:
				return true
			case <-ctx.Done():
				return false
			}
		})
		if err != nil && ctx.Err() == nil {
			logrus.WithError(err).Error("event stream broken")
		}
	}()

	return ch, nil
}

// readSSE parses a text/event-stream, calling emit for each complete event
// until emit returns false or the stream ends.
func readSSE(r io.Reader, emit func(events.Event) bool) error {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 64*1024), 1024*1024)

	var ev events.Event
	var data []string
	for sc.Scan() {
		line := sc.Text()
		if line == "" {
			if ev.Name != "" || len(data) > 0 {
				ev.Data = json.RawMessage(strings.Join(data, "\n"))
				if !emit(ev) {
					return nil
				}
			}
			ev, data = events.Event{}, nil
			continue
		}
		if strings.HasPrefix(line, ":") {
			continue
		}

		field, value, _ := strings.Cut(line, ":")
		value = strings.TrimPrefix(value, " ")
		switch field {
		case "id":
			ev.ID = value
		case "event":
			ev.Name = value
		case "data":
			data = append(data, value)
		}
	}
	return sc.Err()
}
