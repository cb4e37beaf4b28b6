package commands

import (
	"github.com/spf13/cobra"

	"go.trai.ch/fab/internal/ui/output"
)

func (c *CLI) newCleanCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "clean",
		Short: "Remove stamps, state, and build trees",
		Args:  cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			if err := c.app.Clean(); err != nil {
				return err
			}
			output.Successf("workspace cleaned")
			return nil
		},
	}
}
