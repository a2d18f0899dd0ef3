//go:build !darwin

package daemon

import "github.com/sirupsen/logrus"

// There are no wake notifications outside macOS. The watcher still polls.
func listenNotifications(_ func()) error {
	logrus.Debug("system sleep notifications are not supported on this platform")
	return nil
}

func stopListeningNotifications() {}
