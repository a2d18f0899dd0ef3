package hinge

import (
	"sync"
	"sync/atomic"
	"time"
)

var _ Source = &MockSource{}

// MockSource is an in-memory Source for development and tests. It also
// records how many Angle calls ran at the same time.
type MockSource struct {
	mu    sync.Mutex
	angle float64
	err   error
	delay time.Duration

	calls       atomic.Int64
	inFlight    atomic.Int32
	maxInFlight atomic.Int32
}

// NewMockSource returns a MockSource reporting angle.
func NewMockSource(angle float64) *MockSource {
	return &MockSource{angle: angle}
}

// NewMockSensor returns a Sensor over an already opened MockSource.
func NewMockSensor(src *MockSource) *Sensor {
	return NewSensor(func() (Source, error) { return src, nil })
}

// SetAngle changes the reported angle.
func (m *MockSource) SetAngle(deg float64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.angle = deg
}

// SetError makes every following Angle call fail with err. nil clears it.
func (m *MockSource) SetError(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.err = err
}

// SetDelay makes Angle block for d before returning.
func (m *MockSource) SetDelay(d time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.delay = d
}

// Angle implements Source.
func (m *MockSource) Angle() (float64, error) {
	n := m.inFlight.Add(1)
	defer m.inFlight.Add(-1)
	for {
		cur := m.maxInFlight.Load()
		if n <= cur || m.maxInFlight.CompareAndSwap(cur, n) {
			break
		}
	}
	m.calls.Add(1)

	m.mu.Lock()
	angle, err, delay := m.angle, m.err, m.delay
	m.mu.Unlock()

	if delay > 0 {
		time.Sleep(delay)
	}
	if err != nil {
		return 0, err
	}
	return angle, nil
}

// Calls returns how many times Angle was called.
func (m *MockSource) Calls() int {
	return int(m.calls.Load())
}

// MaxConcurrent returns the largest number of overlapping Angle calls seen.
func (m *MockSource) MaxConcurrent() int {
	return int(m.maxInFlight.Load())
}
