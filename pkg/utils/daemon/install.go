package daemon

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"

	"github.com/sirupsen/logrus"
)

// Install writes the launch daemon for the current executable and loads it.
// args are appended after `daemon` on the daemon's command line.
func Install(args []string) error {
	// Get the path to the current executable
	exePath, err := os.Executable()
	if err != nil {
		return fmt.Errorf("failed to get the path to the current executable: %w", err)
	}
	exePath, err = filepath.Abs(exePath)
	if err != nil {
		return fmt.Errorf("failed to get the absolute path to the current executable: %w", err)
	}

	err = os.Chmod(exePath, 0755)
	if err != nil {
		return fmt.Errorf("failed to chmod the current executable to 0755: %w", err)
	}

	logrus.Infof("current executable path: %s", exePath)

	b, err := LaunchDaemonPlist(exePath, args)
	if err != nil {
		return fmt.Errorf("failed to render launch daemon plist: %w", err)
	}

	logrus.Infof("writing launch daemon to %s", filepath.Dir(plistPath))

	err = os.MkdirAll(filepath.Dir(plistPath), 0755)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", filepath.Dir(plistPath), err)
	}

	// warn if the file already exists
	_, err = os.Stat(plistPath)
	if err == nil {
		logrus.Warnf("%s already exists, overwriting", plistPath)
	}

	err = os.WriteFile(plistPath, b, 0644)
	if err != nil {
		return fmt.Errorf("failed to write %s: %w", plistPath, err)
	}

	// chown root:wheel
	err = os.Chown(plistPath, 0, 0)
	if err != nil {
		return fmt.Errorf("failed to chown %s: %w", plistPath, err)
	}

	logrus.Infof("starting hinge daemon")

	err = exec.Command(
		"/bin/launchctl",
		"load",
		plistPath,
	).Run()
	if err != nil {
		return fmt.Errorf("failed to load %s: %w", plistPath, err)
	}

	return nil
}
