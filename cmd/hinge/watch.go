package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/fatih/color"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/charlie0129/hinge/pkg/events"
)

func NewWatchCommand() *cobra.Command {
	return &cobra.Command{
		Use:     "watch",
		Short:   "Print posture changes as they happen",
		Long:    `Stream posture changes and sensor errors from the daemon until interrupted.`,
		GroupID: gBasic,
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			conf, err := apiClient.GetConfig()
			if err != nil {
				return err
			}
			if conf.WatchPosture != nil && !*conf.WatchPosture {
				logrus.Warn("posture watching is disabled in the daemon. Run `hinge watch-posture enable` to turn it on.")
			}

			ch, err := apiClient.SubscribeEvents(ctx)
			if err != nil {
				return err
			}

			for ev := range ch {
				line, err := formatEvent(ev)
				if err != nil {
					logrus.WithError(err).WithField("event", ev.Name).Warn("failed to decode event")
					continue
				}
				if line != "" {
					fmt.Fprintln(cmd.OutOrStdout(), line)
				}
			}

			if ctx.Err() == nil {
				fmt.Fprintln(os.Stderr, "event stream closed by the daemon")
			}
			return nil
		},
	}
}

// formatEvent renders one event as a line of text. Unknown events render empty.
func formatEvent(ev events.Event) (string, error) {
	switch ev.Name {
	case events.PostureChanged:
		e, err := events.DecodeAs[events.PostureChangedEvent](ev)
		if err != nil {
			return "", err
		}
		to := postureText(e.To)
		if e.From != "" {
			to = postureText(e.From) + " -> " + to
		}
		return fmt.Sprintf("%s %s (%s)", eventTime(e.Ts), to, angleText(e.Angle)), nil
	case events.SensorError:
		e, err := events.DecodeAs[events.SensorErrorEvent](ev)
		if err != nil {
			return "", err
		}
		return fmt.Sprintf("%s %s", eventTime(e.Ts), color.RedString("%s", e.Message)), nil
	}
	return "", nil
}

func eventTime(ts int64) string {
	return time.Unix(ts, 0).Format(time.Kitchen)
}
