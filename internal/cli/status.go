package cli

import (
	"github.com/spf13/cobra"
)

func newStatusCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Send a liveness heartbeat",
		Long: `Sends a heartbeat so the server keeps you logged in.

Participants who go quiet past the idle threshold are logged off
automatically by the presence sweep.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := client.Post("/status", nil, nil); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.PrintMessage("Heartbeat sent")
			return nil
		},
	}
}
