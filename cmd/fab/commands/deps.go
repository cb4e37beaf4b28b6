package commands

import (
	"github.com/spf13/cobra"

	"go.trai.ch/fab/internal/engine/generator"
)

func (c *CLI) newDepsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "deps",
		Short: "Build all dependencies without the program",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			jobs, force := c.runFlags(cmd)
			return c.app.Run(cmd.Context(), []string{generator.TargetDeps}, jobs, force)
		},
	}
}
