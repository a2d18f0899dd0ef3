package main

import (
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/charlie0129/hinge/pkg/daemon"
	"github.com/charlie0129/hinge/pkg/version"
)

// NewDaemonCommand .
func NewDaemonCommand() *cobra.Command {
	opts := daemon.Options{
		Sensor: daemon.SensorPlatform,
	}

	cmd := &cobra.Command{
		Use:     "daemon",
		Hidden:  true,
		Short:   "Run hinge daemon in the foreground",
		GroupID: gAdvanced,
		RunE: func(_ *cobra.Command, _ []string) error {
			logrus.WithFields(logrus.Fields{
				"version": version.Version,
				"commit":  version.GitCommit,
			}).Info("hinge daemon starting")

			opts.ConfigPath = configPath
			opts.UnixSocketPath = unixSocketPath
			return daemon.Run(opts)
		},
	}

	f := cmd.Flags()

	f.BoolVar(&opts.AllowNonRoot, "always-allow-non-root-access", false,
		"Always allow non-root users to access the daemon.")
	f.StringVar(&opts.Sensor, "sensor", opts.Sensor,
		"Angle source: "+daemon.SensorPlatform+" reads the lid sensor, "+daemon.SensorMock+" reports --mock-angle.")
	f.Float64Var(&opts.MockAngle, "mock-angle", 110, "Angle in degrees reported by the mock sensor.")

	return cmd
}
