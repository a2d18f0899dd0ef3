package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/charlie0129/hinge/pkg/config"
	"github.com/charlie0129/hinge/pkg/daemon"
)

type statusJSON struct {
	Angle         float64              `json:"angle"`
	Posture       string               `json:"posture"`
	Configuration config.RawFileConfig `json:"configuration"`
}

func NewStatusCommand() *cobra.Command {
	asJSON := false

	cmd := &cobra.Command{
		Use:     "status",
		GroupID: gBasic,
		Short:   "Get the current status of hinge",
		Long:    `Get the lid angle, posture, and daemon configuration.`,
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			st, err := apiClient.GetStatus()
			if err != nil {
				return err
			}

			raw, err := apiClient.GetConfig()
			if err != nil {
				return fmt.Errorf("failed to get config: %w", err)
			}

			conf := config.NewFileFromConfig(raw, "")

			if asJSON {
				// Fill in defaults the daemon left out.
				effective, err := config.NewRawFileConfigFromConfig(conf)
				if err != nil {
					return err
				}
				return printJSON(cmd.OutOrStdout(), statusJSON{
					Angle:         st.Angle,
					Posture:       st.Posture,
					Configuration: *effective,
				})
			}

			printStatus(cmd, st, conf)
			return nil
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "Print as JSON")

	return cmd
}

func printStatus(cmd *cobra.Command, st *daemon.Status, conf config.Config) {
	cmd.Println(bold("Lid:"))
	cmd.Printf("  Angle: %s\n", bold("%s", angleText(st.Angle)))
	cmd.Printf("  Posture: %s\n", postureText(st.Posture))

	cmd.Println()

	cmd.Println(bold("Configuration:"))
	cmd.Println("  Watch posture: " + bool2Text(conf.WatchPosture()))
	cmd.Printf("  Poll interval: %s\n", bold("%s", conf.PollInterval().Round(time.Millisecond)))
	cmd.Println("  Allow non-root access: " + bool2Text(conf.AllowNonRootAccess()))
}
