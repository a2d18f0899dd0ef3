package main

import (
	"fmt"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/charlie0129/hinge/pkg/config"
)

func NewPollIntervalCommand() *cobra.Command {
	return &cobra.Command{
		Use:     "poll-interval [milliseconds]",
		Short:   "Set how often the daemon checks the lid posture",
		GroupID: gAdvanced,
		Long: fmt.Sprintf(`Set how often the daemon reads the lid sensor to detect posture changes.

The interval must be between %d and %d milliseconds.

e.g. hinge poll-interval 250`, config.MinPollInterval.Milliseconds(), config.MaxPollInterval.Milliseconds()),
		Args: cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			millis, err := parseIntArg(args, "poll interval")
			if err != nil {
				return err
			}
			if err := config.ValidatePollInterval(time.Duration(millis) * time.Millisecond); err != nil {
				return err
			}

			ret, err := apiClient.SetPollInterval(millis)
			if err != nil {
				return fmt.Errorf("failed to set poll interval: %w", err)
			}
			if ret != "" {
				logrus.Infof("daemon responded: %s", ret)
			}

			logrus.Infof("successfully set poll interval to %dms", millis)
			return nil
		},
	}
}

func NewWatchPostureCommand() *cobra.Command {
	return newEnableDisableCommand(
		"watch-posture",
		"posture watching",
		`Whether the daemon polls the lid sensor and publishes posture changes.

When disabled, the sensor is only read on request and "hinge watch" receives no events.`,
		func() (string, error) { return apiClient.SetWatchPosture(true) },
		func() (string, error) { return apiClient.SetWatchPosture(false) },
	)
}
