package cli

import (
	"strconv"

	"github.com/spf13/cobra"
)

func newGameCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "game",
		Short: "Game setup and state commands",
	}

	cmd.AddCommand(newGameCreateCmd())
	cmd.AddCommand(newGameJoinCmd())
	cmd.AddCommand(newGameAddLocalCmd())
	cmd.AddCommand(newGameStartCmd())
	cmd.AddCommand(newGameStateCmd())
	cmd.AddCommand(newGameLogCmd())
	cmd.AddCommand(newGameReconnectCmd())

	return cmd
}

func newGameCreateCmd() *cobra.Command {
	var (
		language     string
		balance      int
		winCondition string
		roundLimit   int
		churchGoal   int
	)

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a new game",
		RunE: func(cmd *cobra.Command, args []string) error {
			req := map[string]any{}
			if language != "" {
				req["language"] = language
			}
			if balance > 0 {
				req["initial_balance"] = balance
			}
			if winCondition != "" {
				req["win_condition"] = winCondition
			}
			if roundLimit > 0 {
				req["round_limit"] = roundLimit
			}
			if churchGoal > 0 {
				req["church_goal"] = churchGoal
			}

			var result Game
			if err := client.Post("/api/v1/games", req, &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}

	cmd.Flags().StringVar(&language, "language", "", "Card language (en, lv)")
	cmd.Flags().IntVar(&balance, "balance", 0, "Initial player balance")
	cmd.Flags().StringVar(&winCondition, "win", "", "Win condition: last_player_standing, round_limit, church_goal")
	cmd.Flags().IntVar(&roundLimit, "rounds", 0, "Round limit (for round_limit games)")
	cmd.Flags().IntVar(&churchGoal, "church-goal", 0, "Church fund goal (for church_goal games)")

	return cmd
}

func newGameJoinCmd() *cobra.Command {
	var name string

	cmd := &cobra.Command{
		Use:   "join <game-id>",
		Short: "Join a game",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			req := map[string]string{}
			if name != "" {
				req["display_name"] = name
			}

			var result Player
			if err := client.Post("/api/v1/games/"+args[0]+"/join", req, &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "Display name for this game")

	return cmd
}

func newGameAddLocalCmd() *cobra.Command {
	var name string

	cmd := &cobra.Command{
		Use:   "add-local <game-id>",
		Short: "Add a local player sharing this device (host only)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			req := map[string]string{"display_name": name}

			var result Player
			if err := client.Post("/api/v1/games/"+args[0]+"/local-players", req, &result); err != nil {
				return err
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

func newGameStartCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "start <game-id>",
		Short: "Start a game (host only)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var result Game
			if err := client.Post("/api/v1/games/"+args[0]+"/start", nil, &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}
}

func newGameStateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "state <game-id>",
		Short: "Show full game state",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var result Snapshot
			if err := client.Get("/api/v1/games/"+args[0], &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}
}

func newGameLogCmd() *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "log <game-id>",
		Short: "Show recent game events",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := "/api/v1/games/" + args[0] + "/log"
			if limit > 0 {
				path += "?limit=" + strconv.Itoa(limit)
			}

			var result GameLogResult
			if err := client.Get(path, &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}

	cmd.Flags().IntVar(&limit, "limit", 0, "Number of entries to show")

	return cmd
}

func newGameReconnectCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "reconnect <game-id>",
		Short: "Recover state after a disconnect",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var result Snapshot
			if err := client.Post("/api/v1/games/"+args[0]+"/reconnect", nil, &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}
}
