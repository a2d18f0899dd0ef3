package daemon

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/charlie0129/hinge/pkg/config"
	"github.com/charlie0129/hinge/pkg/events"
	"github.com/charlie0129/hinge/pkg/hinge"
)

// Server serves the hinge sensor over HTTP. It owns no goroutines; the
// posture watcher is started separately by Run.
type Server struct {
	sensor *hinge.Sensor
	conf   config.Config
	hub    *events.EventHub

	// pollNow makes the watcher poll without waiting for the next tick.
	pollNow chan struct{}
}

// NewServer returns a Server reading from sensor. A nil hub is replaced by a
// new one.
func NewServer(sensor *hinge.Sensor, conf config.Config, hub *events.EventHub) *Server {
	if hub == nil {
		hub = events.NewEventHub()
	}
	return &Server{
		sensor:  sensor,
		conf:    conf,
		hub:     hub,
		pollNow: make(chan struct{}, 1),
	}
}

// Handler returns the HTTP routes.
func (s *Server) Handler() http.Handler {
	gin.SetMode(gin.ReleaseMode)

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(ginLogger(logrus.StandardLogger()))
	router.GET("/angle", s.getAngle)
	router.GET("/posture", s.getPosture)
	router.GET("/status", s.getStatus)
	router.GET("/config", s.getConfig)
	router.PUT("/poll-interval", s.setPollInterval)
	router.PUT("/watch-posture", s.setWatchPosture)
	router.GET("/events", s.getEvents)
	router.GET("/version", getVersion)

	return router
}

// RequestPoll asks the watcher to read the posture now. It never blocks.
func (s *Server) RequestPoll() {
	select {
	case s.pollNow <- struct{}{}:
	default:
	}
}
