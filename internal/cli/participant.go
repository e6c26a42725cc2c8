package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newLoginCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "login <name>",
		Short: "Join the room with a display name",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			name := args[0]

			var result Participant
			if err := client.Post("/participants", map[string]string{"name": name}, &result); err != nil {
				return err
			}

			// Remember the identity for later commands
			if err := cfg.SaveUser(result.Name); err != nil {
				return fmt.Errorf("logged in but failed to save identity: %w", err)
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			if cfg.Output != "json" {
				out.PrintMessage("Logged in. Keep the session alive with 'batepapo status'.")
			}
			return nil
		},
	}
}

func newParticipantsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "participants",
		Short: "List who is online",
		RunE: func(cmd *cobra.Command, args []string) error {
			var result []Participant

			if err := client.Get("/participants", &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}
}
