package events

import "encoding/json"

// Event name constants
const (
	PostureChanged = "posture.changed"
	SensorError    = "sensor.error"
)

// Event is a generic SSE event from daemon.
type Event struct {
	ID   string          // SSE event id
	Name string          // SSE event name
	Data json.RawMessage // Raw JSON payload
}

// PostureChangedEvent is the typed payload for posture.changed.
// From is empty for the first posture the daemon sees.
type PostureChangedEvent struct {
	From  string  `json:"from,omitempty"`
	To    string  `json:"to"`
	Angle float64 `json:"angle"`
	Ts    int64   `json:"ts"`
}

// SensorErrorEvent is the typed payload for sensor.error.
type SensorErrorEvent struct {
	Message string `json:"message"`
	Kind    string `json:"kind"`
	Ts      int64  `json:"ts"`
}

// DecodeAs decodes the event payload into T, ignoring the event name.
// Empty Data yields the zero value of T.
//
//	payload, err := events.DecodeAs[events.PostureChangedEvent](ev)
func DecodeAs[T any](e Event) (T, error) {
	var zero T
	if len(e.Data) == 0 {
		return zero, nil
	}
	var v T
	if err := json.Unmarshal(e.Data, &v); err != nil {
		return zero, err
	}
	return v, nil
}
