package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newRoomCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "room",
		Short: "Room commands",
	}

	cmd.AddCommand(newRoomJoinCmd())
	cmd.AddCommand(newRoomLeaveCmd())
	cmd.AddCommand(newRoomMarkerCmd())
	cmd.AddCommand(newRoomTokenCmd())
	cmd.AddCommand(newRoomMeditateCmd())
	cmd.AddCommand(newRoomEndTurnCmd())
	cmd.AddCommand(newRoomSnapshotCmd())

	return cmd
}

func newRoomJoinCmd() *cobra.Command {
	var name string

	cmd := &cobra.Command{
		Use:   "join <room>",
		Short: "Join a room, creating it if needed",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			req := map[string]string{}
			if name != "" {
				req["display_name"] = name
			}

			return runCommand(fmt.Sprintf("/api/v1/rooms/%s/join", args[0]), req)
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "Display name (default: the registered name)")

	return cmd
}

func newRoomLeaveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "leave <room>",
		Short: "Leave a room",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCommand(fmt.Sprintf("/api/v1/rooms/%s/leave", args[0]), nil)
		},
	}
}

func newRoomMarkerCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "marker <room> <index>",
		Short: "Place or move your marker",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			index, err := parseIndex(args[1])
			if err != nil {
				return err
			}
			return runCommand(fmt.Sprintf("/api/v1/rooms/%s/marker", args[0]), map[string]int{"index": index})
		},
	}
}

func newRoomTokenCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "token <room> <index>",
		Short: "Place or move your token (costs 1 AP, your turn only)",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			index, err := parseIndex(args[1])
			if err != nil {
				return err
			}
			return runCommand(fmt.Sprintf("/api/v1/rooms/%s/token", args[0]), map[string]int{"index": index})
		},
	}
}

func newRoomMeditateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "meditate <room>",
		Short: "Meditate to recover health (costs 1 AP, your turn only)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCommand(fmt.Sprintf("/api/v1/rooms/%s/meditate", args[0]), nil)
		},
	}
}

func newRoomEndTurnCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "end-turn <room>",
		Short: "End your turn",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCommand(fmt.Sprintf("/api/v1/rooms/%s/end-turn", args[0]), nil)
		},
	}
}

func newRoomSnapshotCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "snapshot <room>",
		Short: "Show the room's current state",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var result Snapshot

			if err := client.Get(fmt.Sprintf("/api/v1/rooms/%s", args[0]), &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}
}

// runCommand posts a room command. A 204 means the server either refused the
// command or tore the room down; the server does not say which.
func runCommand(path string, body any) error {
	if body == nil {
		body = map[string]string{}
	}

	var result Snapshot
	ok, err := client.Post(path, body, &result)
	if err != nil {
		return err
	}

	out := NewOutput(cfg.Output)
	if !ok {
		out.PrintMessage("no state change")
		return nil
	}
	out.Print(result)
	return nil
}

func parseIndex(arg string) (int, error) {
	var index int
	if _, err := fmt.Sscanf(arg, "%d", &index); err != nil {
		return 0, fmt.Errorf("invalid index %q", arg)
	}
	return index, nil
}
