package daemon

import (
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/gin-contrib/sse"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/charlie0129/hinge/pkg/config"
	"github.com/charlie0129/hinge/pkg/hinge"
	"github.com/charlie0129/hinge/pkg/posture"
	"github.com/charlie0129/hinge/pkg/version"
)

// ErrorKindHeader carries hinge.Kind of a failed sensor read.
const ErrorKindHeader = "X-Hinge-Error-Kind"

// Status is the body of GET /status.
type Status struct {
	Angle   float64 `json:"angle"`
	Posture string  `json:"posture"`
}

func sensorErrorStatus(kind hinge.Kind) int {
	switch kind {
	case hinge.KindUnsupportedPlatform:
		return http.StatusNotImplemented
	case hinge.KindAcquisition:
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

// abortWithSensorError responds with the sensor error text unchanged.
func abortWithSensorError(c *gin.Context, err error) {
	kind := hinge.KindOf(err)
	code := sensorErrorStatus(kind)

	logrus.WithField("kind", kind).Errorf("%s failed: %v", c.Request.URL.Path, err)

	c.Header(ErrorKindHeader, kind.String())
	c.IndentedJSON(code, err.Error())
	_ = c.AbortWithError(code, err)
}

func (s *Server) getAngle(c *gin.Context) {
	deg, err := s.sensor.Angle(c.Request.Context())
	if err != nil {
		abortWithSensorError(c, err)
		return
	}

	c.IndentedJSON(http.StatusOK, deg)
}

func (s *Server) getPosture(c *gin.Context) {
	p, err := s.sensor.Posture(c.Request.Context())
	if err != nil {
		abortWithSensorError(c, err)
		return
	}

	c.IndentedJSON(http.StatusOK, p.String())
}

func (s *Server) getStatus(c *gin.Context) {
	deg, err := s.sensor.Angle(c.Request.Context())
	if err != nil {
		abortWithSensorError(c, err)
		return
	}

	c.IndentedJSON(http.StatusOK, Status{
		Angle:   deg,
		Posture: posture.FromAngle(deg).String(),
	})
}

func (s *Server) getConfig(c *gin.Context) {
	fc, err := config.NewRawFileConfigFromConfig(s.conf)
	if err != nil {
		_ = c.AbortWithError(http.StatusInternalServerError, err)
		return
	}
	c.IndentedJSON(http.StatusOK, fc)
}

func (s *Server) setPollInterval(c *gin.Context) {
	var millis int
	if err := c.BindJSON(&millis); err != nil {
		c.IndentedJSON(http.StatusBadRequest, err.Error())
		_ = c.AbortWithError(http.StatusBadRequest, err)
		return
	}

	d := time.Duration(millis) * time.Millisecond
	if err := config.ValidatePollInterval(d); err != nil {
		c.IndentedJSON(http.StatusBadRequest, err.Error())
		_ = c.AbortWithError(http.StatusBadRequest, err)
		return
	}

	s.conf.SetPollInterval(d)
	if err := s.conf.Save(); err != nil {
		logrus.Errorf("saveConfig failed: %v", err)
		c.IndentedJSON(http.StatusInternalServerError, err.Error())
		_ = c.AbortWithError(http.StatusInternalServerError, err)
		return
	}
	s.RequestPoll()

	logrus.Infof("set poll interval to %s", d)

	c.IndentedJSON(http.StatusCreated, fmt.Sprintf("set poll interval to %s", d))
}

func (s *Server) setWatchPosture(c *gin.Context) {
	var w bool
	if err := c.BindJSON(&w); err != nil {
		c.IndentedJSON(http.StatusBadRequest, err.Error())
		_ = c.AbortWithError(http.StatusBadRequest, err)
		return
	}

	s.conf.SetWatchPosture(w)
	if err := s.conf.Save(); err != nil {
		logrus.Errorf("saveConfig failed: %v", err)
		c.IndentedJSON(http.StatusInternalServerError, err.Error())
		_ = c.AbortWithError(http.StatusInternalServerError, err)
		return
	}
	s.RequestPoll()

	logrus.Infof("set watch posture to %t", w)

	c.IndentedJSON(http.StatusCreated, "ok")
}

func (s *Server) getEvents(c *gin.Context) {
	ch := s.hub.Subscribe()
	defer s.hub.Unsubscribe(ch)

	c.Header("Content-Type", "text/event-stream")
	c.Header("Cache-Control", "no-cache")
	c.Header("Connection", "keep-alive")
	c.Writer.WriteHeaderNow()
	c.Writer.Flush()

	logrus.Debug("events subscriber connected")

	c.Stream(func(_ io.Writer) bool {
		select {
		case ev, ok := <-ch:
			if !ok {
				return false
			}
			c.Render(-1, sse.Event{
				Id:    ev.ID,
				Event: ev.Name,
				Data:  ev.Data,
			})
			return true
		case <-c.Request.Context().Done():
			return false
		}
	})

	logrus.Debug("events subscriber disconnected")
}

func getVersion(c *gin.Context) {
	c.IndentedJSON(http.StatusOK, version.Version)
}
