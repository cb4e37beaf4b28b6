package commands

import (
	"github.com/spf13/cobra"

	"go.trai.ch/fab/internal/ui/output"
)

func (c *CLI) newRunCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "run [targets...]",
		Short: "Build the release, or only the named targets",
		Args:  cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			jobs, force := c.runFlags(cmd)
			if err := c.app.Run(cmd.Context(), args, jobs, force); err != nil {
				output.Errorf("build failed")
				return err
			}
			output.Successf("build complete")
			return nil
		},
	}
}
