package daemon

import (
	"howett.net/plist"
)

const (
	// Label is the launchd job label.
	Label = "cc.chlc.hinge"
	// LogPath receives the daemon's stdout and stderr.
	LogPath = "/tmp/hinge.log"
)

var plistPath = "/Library/LaunchDaemons/" + Label + ".plist"

// launchDaemon is the subset of launchd.plist(5) we set.
type launchDaemon struct {
	Label             string   `plist:"Label"`
	ProgramArguments  []string `plist:"ProgramArguments"`
	RunAtLoad         bool     `plist:"RunAtLoad"`
	KeepAlive         bool     `plist:"KeepAlive"`
	StandardOutPath   string   `plist:"StandardOutPath"`
	StandardErrorPath string   `plist:"StandardErrorPath"`
}

// LaunchDaemonPlist renders the launchd job that runs `exePath daemon args...`.
func LaunchDaemonPlist(exePath string, args []string) ([]byte, error) {
	job := launchDaemon{
		Label:             Label,
		ProgramArguments:  append([]string{exePath, "daemon"}, args...),
		RunAtLoad:         true,
		KeepAlive:         true,
		StandardOutPath:   LogPath,
		StandardErrorPath: LogPath,
	}
	return plist.MarshalIndent(job, plist.XMLFormat, "\t")
}
