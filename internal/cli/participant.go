package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newParticipantCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "participant",
		Short: "Participant identity commands",
	}

	cmd.AddCommand(newParticipantCreateCmd())
	cmd.AddCommand(newParticipantMeCmd())

	return cmd
}

func newParticipantCreateCmd() *cobra.Command {
	var name string

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Mint a new participant identity",
		RunE: func(cmd *cobra.Command, args []string) error {
			req := map[string]string{"display_name": name}
			var result Participant

			if _, err := client.Post("/api/v1/participants", req, &result); err != nil {
				return err
			}

			// The participant id doubles as the bearer token
			if err := cfg.SaveToken(result.ID); err != nil {
				return fmt.Errorf("failed to save token: %w", err)
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "Display name (required)")
	_ = cmd.MarkFlagRequired("name")

	return cmd
}

func newParticipantMeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "me",
		Short: "Show current participant info",
		RunE: func(cmd *cobra.Command, args []string) error {
			var result Participant

			if err := client.Get("/api/v1/participants/me", &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}
}
