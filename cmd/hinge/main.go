package main

import (
	"errors"
	"fmt"
	"os"
	"runtime"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/charlie0129/hinge/pkg/client"
	"github.com/charlie0129/hinge/pkg/hinge"
	"github.com/charlie0129/hinge/pkg/utils/osver"
)

var (
	logLevel       = "info"
	unixSocketPath = "/var/run/hinge.sock"
	configPath     = "/etc/hinge.json"
)

var (
	gBasic        = "Basic:"
	gAdvanced     = "Advanced:"
	gInstallation = "Installation:"
	commandGroups = []string{
		gBasic,
		gAdvanced,
		gInstallation,
	}
)

var apiClient = client.NewClient(unixSocketPath)

func setupLogger() error {
	level, err := logrus.ParseLevel(logLevel)
	if err != nil {
		return fmt.Errorf("failed to parse log level: %v", err)
	}
	logrus.SetLevel(level)
	logrus.SetFormatter(&logrus.TextFormatter{})
	if term.IsTerminal(int(os.Stderr.Fd())) {
		logrus.SetFormatter(&logrus.TextFormatter{
			FullTimestamp:   true,
			TimestampFormat: time.Kitchen,
		})
	}

	return nil
}

func handleCmdError(err error) {
	switch {
	case errors.Is(err, client.ErrDaemonNotRunning):
		fmt.Fprintln(os.Stderr, "\nError: hinge daemon is not running")
		fmt.Fprintln(os.Stderr, "Is the daemon running? Have you installed it?")
	case errors.Is(err, client.ErrPermissionDenied):
		fmt.Fprintln(os.Stderr, "\nError: Permission Denied")
		fmt.Fprintln(os.Stderr, "  - Try running the command again with 'sudo'")
		fmt.Fprintln(os.Stderr, "  - Or reinstall the daemon with the '--allow-non-root-access' flag to grant permissions to your user")
	case hinge.KindOf(err) == hinge.KindUnsupportedPlatform:
		fmt.Fprintln(os.Stderr, "\nThis Mac has no lid angle sensor that hinge can read.")
	}
}

func main() {
	if runtime.GOOS == "darwin" && !osver.IsAtLeast(11, 0, 0) {
		fmt.Fprintln(os.Stderr, "hinge requires macOS 11.0 or later")
		os.Exit(1)
	}

	// hinge does not need many CPUs.
	if os.Getenv("GOMAXPROCS") == "" {
		runtime.GOMAXPROCS(2)
	}

	cmd := NewCommand()
	if err := cmd.Execute(); err != nil {
		handleCmdError(err)
		os.Exit(1)
	}
}

func NewCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "hinge",
		Short: "hinge reads the lid angle sensor on MacBooks",
		Long: `hinge reads the lid angle sensor on MacBooks and reports the lid posture
(folded, half-opened, continuous or flipped).

Website: https://github.com/charlie0129/hinge
Report issues: https://github.com/charlie0129/hinge/issues`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			err := setupLogger()
			if err != nil {
				return err
			}

			apiClient = client.NewClient(unixSocketPath)

			// The daemon and installer do not talk to a running daemon.
			if cmd.GroupID == gInstallation || cmd.Name() == "daemon" {
				return nil
			}

			if daemonVersion, err := apiClient.GetVersion(); err == nil {
				if clientVersion := versionString(); daemonVersion != clientVersion {
					logrus.WithFields(logrus.Fields{
						"clientVersion": clientVersion,
						"daemonVersion": daemonVersion,
					}).Warn("Version mismatch between client and daemon. Reinstall hinge so both are the same version.")
				}
			} else if errors.Is(err, client.ErrNotFound) {
				logrus.Error("hinge daemon is too old to report its version. Reinstall hinge so both client and daemon are the same version.")
			}

			return nil
		},
	}

	globalFlags := cmd.PersistentFlags()
	globalFlags.StringVarP(&logLevel, "log-level", "l", "info", "log level (trace, debug, info, warn, error, fatal, panic)")
	globalFlags.StringVar(&configPath, "config", configPath, "config file path (.json, .yaml or .yml)")
	globalFlags.StringVar(&unixSocketPath, "daemon-socket", unixSocketPath, "hinge daemon unix socket path")

	for _, i := range commandGroups {
		cmd.AddGroup(&cobra.Group{
			ID:    i,
			Title: i,
		})
	}

	cmd.AddCommand(
		NewDaemonCommand(),
		NewVersionCommand(),
		NewAngleCommand(),
		NewPostureCommand(),
		NewStatusCommand(),
		NewWatchCommand(),
		NewPollIntervalCommand(),
		NewWatchPostureCommand(),
		NewInstallCommand(),
		NewUninstallCommand(),
	)

	return cmd
}
