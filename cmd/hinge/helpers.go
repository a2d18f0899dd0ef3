package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"

	"github.com/fatih/color"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/charlie0129/hinge/pkg/posture"
	"github.com/charlie0129/hinge/pkg/version"
)

func versionString() string {
	return version.Version
}

func parseIntArg(args []string, valueName string) (int, error) {
	if len(args) != 1 {
		return 0, fmt.Errorf("invalid number of arguments")
	}

	value, err := strconv.Atoi(args[0])
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %v", valueName, err)
	}

	return value, nil
}

func printJSON(w io.Writer, v any) error {
	b, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal json: %w", err)
	}
	_, err = fmt.Fprintln(w, string(b))
	return err
}

func postureColor(p posture.Posture) *color.Color {
	switch p {
	case posture.Folded:
		return color.New(color.Bold, color.FgBlue)
	case posture.HalfOpened:
		return color.New(color.Bold, color.FgYellow)
	case posture.Continuous:
		return color.New(color.Bold, color.FgGreen)
	case posture.Flipped:
		return color.New(color.Bold, color.FgMagenta)
	}
	return color.New(color.Bold)
}

// postureText renders a display label, colored when it names a known posture.
func postureText(label string) string {
	p, err := posture.Parse(label)
	if err != nil {
		return label
	}
	return postureColor(p).Sprint(label)
}

func angleText(angle float64) string {
	return strconv.FormatFloat(angle, 'f', -1, 64) + "°"
}

func bold(format string, a ...interface{}) string {
	return color.New(color.Bold).Sprintf(format, a...)
}

func bool2Text(b bool) string {
	if b {
		return color.New(color.Bold, color.FgGreen).Sprint("✔")
	}
	return color.New(color.Bold, color.FgRed).Sprint("✘")
}

func newEnableDisableCommand(
	use, short, long string,
	enableFunc func() (string, error),
	disableFunc func() (string, error),
) *cobra.Command {
	cmd := &cobra.Command{
		Use:     use,
		Short:   short,
		Long:    long,
		GroupID: gAdvanced,
	}

	toggle := func(verb string, fn func() (string, error)) *cobra.Command {
		return &cobra.Command{
			Use:   verb,
			Short: verb + " " + short,
			Args:  cobra.NoArgs,
			RunE: func(_ *cobra.Command, _ []string) error {
				ret, err := fn()
				if err != nil {
					return fmt.Errorf("failed to %s %s: %w", verb, use, err)
				}
				if ret != "" {
					logrus.Infof("daemon responded: %s", ret)
				}
				logrus.Infof("successfully %sd %s", verb, use)
				return nil
			},
		}
	}

	cmd.AddCommand(
		toggle("enable", enableFunc),
		toggle("disable", disableFunc),
	)

	return cmd
}
