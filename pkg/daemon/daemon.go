package daemon

import (
	"context"
	"errors"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	pkgerrors "github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/charlie0129/hinge/pkg/config"
	"github.com/charlie0129/hinge/pkg/events"
	"github.com/charlie0129/hinge/pkg/hinge"
)

// Sensor kinds accepted by Options.Sensor.
const (
	SensorPlatform = "platform"
	SensorMock     = "mock"
)

// Options configures Run.
type Options struct {
	ConfigPath     string
	UnixSocketPath string
	AllowNonRoot   bool
	// Sensor is SensorPlatform (default) or SensorMock.
	Sensor string
	// MockAngle is the angle reported by the mock sensor.
	MockAngle float64
}

func newSensor(opts Options) (*hinge.Sensor, error) {
	switch opts.Sensor {
	case "", SensorPlatform:
		return hinge.NewPlatformSensor(), nil
	case SensorMock:
		logrus.WithField("angle", opts.MockAngle).Warn("using mock hinge sensor")
		return hinge.NewMockSensor(hinge.NewMockSource(opts.MockAngle)), nil
	}
	return nil, pkgerrors.Errorf("unknown sensor %q, expected %q or %q", opts.Sensor, SensorPlatform, SensorMock)
}

func Run(opts Options) error {
	sensor, err := newSensor(opts)
	if err != nil {
		return err
	}

	conf, err := config.NewFile(opts.ConfigPath)
	if err != nil {
		return pkgerrors.Wrap(err, "failed to parse config during startup")
	}
	logrus.WithFields(conf.LogrusFields()).Infof("config loaded")

	s := NewServer(sensor, conf, events.NewEventHub())

	// Cancelling baseCtx stops the watcher and ends open event streams.
	baseCtx, cancelBase := context.WithCancel(context.Background())
	defer cancelBase()

	// Receive SIGHUP to reload config
	go func() {
		sigc := make(chan os.Signal, 1)
		signal.Notify(sigc, syscall.SIGHUP)
		for range sigc {
			err := conf.Load()
			if err != nil {
				logrus.Errorf("failed to reload config: %v", err)
				continue
			}
			logrus.WithFields(conf.LogrusFields()).Infof("config reloaded")
			s.RequestPoll()
		}
	}()

	srv := &http.Server{
		Handler:           s.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
		BaseContext:       func(net.Listener) context.Context { return baseCtx },
	}

	// A stale socket from a crashed daemon makes Listen fail.
	if err := os.Remove(opts.UnixSocketPath); err != nil && !os.IsNotExist(err) {
		return pkgerrors.Wrapf(err, "failed to remove stale socket %s", opts.UnixSocketPath)
	}

	l, err := net.Listen("unix", opts.UnixSocketPath)
	if err != nil {
		return pkgerrors.Wrapf(err, "failed to listen on %s", opts.UnixSocketPath)
	}

	if conf.AllowNonRootAccess() || opts.AllowNonRoot {
		logrus.Infof("non-root access is allowed, changing permissions of %s to 0777", opts.UnixSocketPath)
		err = os.Chmod(opts.UnixSocketPath, 0777)
		if err != nil {
			return pkgerrors.Wrapf(err, "failed to chmod %s", opts.UnixSocketPath)
		}
	}

	// Serve HTTP on unix socket
	go func() {
		logrus.Infof("http server listening on %s", l.Addr().String())
		if err := srv.Serve(l); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logrus.Fatal(err)
		}
	}()

	// Re-read the posture as soon as the system wakes up.
	go func() {
		err := listenNotifications(s.RequestPoll)
		if err != nil {
			logrus.Errorf("failed to listen to system sleep notifications: %v", err)
		}
	}()

	watchDone := make(chan struct{})
	go func() {
		defer close(watchDone)
		s.Watch(baseCtx)
	}()

	// Handle common process-killing signals, so we can gracefully shut down:
	sigc := make(chan os.Signal, 1)
	signal.Notify(sigc, syscall.SIGINT, syscall.SIGTERM)
	// Wait for a SIGINT or SIGTERM:
	sig := <-sigc
	logrus.Infof("caught signal \"%s\": shutting down.", sig)

	logrus.Info("stopping posture watcher")
	cancelBase()
	<-watchDone

	logrus.Info("shutting down http server")
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	err = srv.Shutdown(ctx)
	if err != nil {
		logrus.Errorf("failed to shutdown http server: %v", err)
	}
	cancel()

	logrus.Info("stopping listening notifications")
	stopListeningNotifications()

	logrus.Info("exiting")
	return nil
}
