package daemon

/*
#cgo LDFLAGS: -framework IOKit -framework CoreFoundation
#include "powernotify_darwin.h"
*/
import "C"

import (
	"fmt"
	"sync"

	"github.com/sirupsen/logrus"
)

var (
	onWakeMu sync.Mutex
	onWake   func()
)

//export systemHasPoweredOnCallback
func systemHasPoweredOnCallback() {
	// The lid is usually opened right before a wake, so the posture is stale.
	logrus.Debugln("received kIOMessageSystemHasPoweredOn notification, system has finished waking up")

	onWakeMu.Lock()
	f := onWake
	onWakeMu.Unlock()

	if f != nil {
		f()
	}
}

// listenNotifications calls wake every time the system wakes from sleep. It
// blocks until stopListeningNotifications is called.
func listenNotifications(wake func()) error {
	onWakeMu.Lock()
	onWake = wake
	onWakeMu.Unlock()

	logrus.Info("registered and listening system sleep notifications")
	if int(C.ListenNotifications()) != 0 {
		return fmt.Errorf("IORegisterForSystemPower failed")
	}
	return nil
}

func stopListeningNotifications() {
	C.StopListeningNotifications()
	logrus.Info("stopped listening system sleep notifications")
}
