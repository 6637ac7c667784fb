package commands

import (
	"github.com/spf13/cobra"
	"go.goodgym.dev/launcher/internal/app"
)

func (c *CLI) newStartCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "start",
		Short: "Check dependencies, then run the server until it exits or is interrupted",
		Args:  cobra.NoArgs,
		RunE:  c.runStart,
	}
	addStartFlags(cmd)
	return cmd
}

func addStartFlags(cmd *cobra.Command) {
	cmd.Flags().BoolP("watch", "w", false, "Restart the server when files next to it change")
	cmd.Flags().StringP("output", "o", "auto", "Server output: auto, pty, or pipe")
}

func (c *CLI) runStart(cmd *cobra.Command, _ []string) error {
	watch, _ := cmd.Flags().GetBool("watch")
	output, _ := cmd.Flags().GetString("output")

	return c.app.Start(cmd.Context(), app.StartOptions{
		Root:       c.root,
		Watch:      watch,
		OutputMode: output,
	})
}
