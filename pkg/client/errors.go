package client

import "errors"

var (
	// ErrDaemonNotRunning means nothing is listening on the daemon socket.
	ErrDaemonNotRunning = errors.New("hinge daemon not running")

	// ErrPermissionDenied means the socket exists but the caller may not connect to it.
	ErrPermissionDenied = errors.New("permission denied to access hinge daemon socket")

	// ErrNotFound is returned for routes the daemon does not know, usually an older daemon.
	ErrNotFound = errors.New("404 not found")
)
