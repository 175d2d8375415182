package main

import (
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/samdwyer/critterquest/internal/game"
)

var (
	playSeed          int64
	playRollOnBlocked bool
	playLogFile       string
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Play in the terminal",
	Long: `Start the interactive game. Arrows or WASD move; in battle 1-5 choose
attack, defend, special, capture or flee, b goes back to the map, r restarts.`,
	RunE: runPlay,
}

func init() {
	playCmd.Flags().Int64Var(&playSeed, "seed", 0, "random seed (0 picks one from the clock)")
	playCmd.Flags().BoolVar(&playRollOnBlocked, "roll-on-blocked", false, "roll for encounters even when a move is blocked")
	playCmd.Flags().StringVar(&playLogFile, "log-file", "", "write debug logs to this file")
}

func runPlay(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	stop := startTelemetry(ctx, "play")
	defer stop()

	// The terminal belongs to tcell, so logs only go to a file.
	var out io.Writer = io.Discard
	if playLogFile != "" {
		f, err := os.OpenFile(playLogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return err
		}
		defer f.Close()
		out = f
	}

	cfg := game.DefaultConfig()
	cfg.Seed = playSeed
	cfg.RollOnBlockedMove = playRollOnBlocked
	cfg.Logger = slog.New(slog.NewTextHandler(out, &slog.HandlerOptions{Level: slog.LevelDebug}))

	g, err := game.New(cfg)
	if err != nil {
		return err
	}
	return g.Run(ctx)
}
