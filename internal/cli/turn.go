package cli

import (
	"github.com/spf13/cobra"
)

func newTurnCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "turn",
		Short: "Turn action commands",
	}

	cmd.AddCommand(newTurnActionCmd("roll", "roll", "Roll the dice"))
	cmd.AddCommand(newTurnActionCmd("resolve", "resolve", "Resolve the tile landed on"))
	cmd.AddCommand(newTurnActionCmd("end", "end-turn", "End the current turn"))
	cmd.AddCommand(newTurnActionCmd("jail-pay", "jail/pay", "Pay the fine to leave jail"))
	cmd.AddCommand(newTurnActionCmd("jail-card", "jail/card", "Use a jail release card"))
	cmd.AddCommand(newTurnActionCmd("buy", "buy", "Buy the tile under the current player"))
	cmd.AddCommand(newTurnBuildCmd())
	cmd.AddCommand(newTurnAutoCmd())

	return cmd
}

// newTurnActionCmd covers the turn endpoints that take no request body.
func newTurnActionCmd(use, endpoint, short string) *cobra.Command {
	var playerID string

	cmd := &cobra.Command{
		Use:   use + " <game-id>",
		Short: short,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := "/api/v1/games/" + args[0] + "/" + endpoint
			if playerID != "" {
				path += "?player_id=" + playerID
			}

			var result Snapshot
			if err := client.Post(path, nil, &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}

	cmd.Flags().StringVar(&playerID, "player", "", "Act as this local player (host only)")

	return cmd
}

// newTurnAutoCmd plays a whole turn with a bot strategy, mainly used by
// a host to move local seats along.
func newTurnAutoCmd() *cobra.Command {
	var (
		playerID string
		strategy string
	)

	cmd := &cobra.Command{
		Use:   "auto <game-id>",
		Short: "Play a full turn automatically",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := "/api/v1/games/" + args[0] + "/auto-turn"
			query := ""
			if playerID != "" {
				query = "player_id=" + playerID
			}
			if strategy != "" {
				if query != "" {
					query += "&"
				}
				query += "strategy=" + strategy
			}
			if query != "" {
				path += "?" + query
			}

			var result AutoTurnResult
			if err := client.Post(path, nil, &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}

	cmd.Flags().StringVar(&playerID, "player", "", "Act as this local player (host only)")
	cmd.Flags().StringVar(&strategy, "strategy", "", "Bot strategy to use (default: random)")

	return cmd
}

func newTurnBuildCmd() *cobra.Command {
	var (
		playerID  string
		tileIndex int
	)

	cmd := &cobra.Command{
		Use:   "build <game-id>",
		Short: "Build on an owned tile",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := "/api/v1/games/" + args[0] + "/build"
			if playerID != "" {
				path += "?player_id=" + playerID
			}
			req := map[string]int{"tile_index": tileIndex}

			var result Snapshot
			if err := client.Post(path, req, &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}

	cmd.Flags().StringVar(&playerID, "player", "", "Act as this local player (host only)")
	cmd.Flags().IntVar(&tileIndex, "tile", 0, "Tile index to build on (required)")
	_ = cmd.MarkFlagRequired("tile")

	return cmd
}
