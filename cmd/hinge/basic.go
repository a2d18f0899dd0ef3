package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/charlie0129/hinge/pkg/version"
)

func NewVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version",
		Run: func(cmd *cobra.Command, _ []string) {
			cmd.Printf("%s %s\n", version.Version, version.GitCommit)
		},
	}
}

func NewAngleCommand() *cobra.Command {
	asJSON := false

	cmd := &cobra.Command{
		Use:     "angle",
		Short:   "Print the lid angle in degrees",
		GroupID: gBasic,
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			angle, err := apiClient.GetAngle()
			if err != nil {
				return err
			}

			if asJSON {
				return printJSON(cmd.OutOrStdout(), map[string]float64{"angle": angle})
			}
			fmt.Fprintln(cmd.OutOrStdout(), angleText(angle))
			return nil
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "Print as JSON")

	return cmd
}

func NewPostureCommand() *cobra.Command {
	asJSON := false

	cmd := &cobra.Command{
		Use:     "posture",
		Short:   "Print the lid posture",
		Long:    `Print the lid posture: folded, half-opened, continuous or flipped.`,
		GroupID: gBasic,
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			p, err := apiClient.GetPosture()
			if err != nil {
				return err
			}

			if asJSON {
				return printJSON(cmd.OutOrStdout(), map[string]string{"posture": p.String()})
			}
			fmt.Fprintln(cmd.OutOrStdout(), postureText(p.String()))
			return nil
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "Print as JSON")

	return cmd
}
