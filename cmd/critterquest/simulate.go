package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/samdwyer/critterquest/internal/battle"
	"github.com/samdwyer/critterquest/internal/errors"
	"github.com/samdwyer/critterquest/internal/game"
	"github.com/samdwyer/critterquest/internal/world"
)

// maxActionsPerBattle guards against a policy that can never finish.
const maxActionsPerBattle = 1000

var (
	simulateSeed    int64
	simulateBattles int
	simulateVerbose bool
)

var simulateCmd = &cobra.Command{
	Use:   "simulate",
	Short: "Run headless battles and print a summary",
	Long: `Run a number of battles back to back with a simple automatic player,
logging each outcome. The team and capture balls carry over between battles.`,
	RunE: runSimulateCmd,
}

func init() {
	simulateCmd.Flags().Int64Var(&simulateSeed, "seed", 1, "random seed (0 picks one from the clock)")
	simulateCmd.Flags().IntVar(&simulateBattles, "battles", 100, "number of battles to run")
	simulateCmd.Flags().BoolVarP(&simulateVerbose, "verbose", "v", false, "log every action")
}

func runSimulateCmd(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	stop := startTelemetry(ctx, "simulate")
	defer stop()

	level := slog.LevelInfo
	if simulateVerbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

	report, err := runSimulation(ctx, simulateSeed, simulateBattles, logger)
	if err != nil {
		return err
	}

	report.Write(cmd.OutOrStdout())
	return nil
}

// simulationReport tallies battle outcomes.
type simulationReport struct {
	Battles      int
	Victories    int
	Defeats      int
	Captures     int
	Escapes      int
	Actions      int
	Team         []string
	CaptureItems int
}

// Write prints the report in a human-readable form.
func (r simulationReport) Write(w io.Writer) {
	fmt.Fprintf(w, "Battles:       %d\n", r.Battles)
	fmt.Fprintf(w, "Victories:     %d\n", r.Victories)
	fmt.Fprintf(w, "Defeats:       %d\n", r.Defeats)
	fmt.Fprintf(w, "Captures:      %d\n", r.Captures)
	fmt.Fprintf(w, "Escapes:       %d\n", r.Escapes)
	fmt.Fprintf(w, "Actions:       %d\n", r.Actions)
	fmt.Fprintf(w, "Capture balls: %d\n", r.CaptureItems)
	if len(r.Team) == 0 {
		fmt.Fprintln(w, "Team:          (empty)")
	} else {
		fmt.Fprintf(w, "Team:          %s\n", strings.Join(r.Team, ", "))
	}
}

// runSimulation plays battles through a session with no delays.
func runSimulation(ctx context.Context, seed int64, battles int, logger *slog.Logger) (simulationReport, error) {
	if battles <= 0 {
		return simulationReport{}, errors.InvalidArgument("battles must be positive")
	}

	cfg := game.DefaultConfig()
	cfg.Seed = seed
	cfg.Logger = logger
	cfg.Scheduler = game.NewImmediateScheduler()

	session, err := game.NewSession(ctx, cfg)
	if err != nil {
		return simulationReport{}, err
	}

	var report simulationReport
	for i := 0; i < battles; i++ {
		session.StartEncounter(ctx)

		for actions := 0; session.Mode() == world.ModeBattle; actions++ {
			if actions >= maxActionsPerBattle {
				return report, errors.Newf(errors.CodeInternal, "battle %d did not finish", i+1)
			}
			if _, err := session.PlayerAction(ctx, choosePlayerAction(session.Battle())); err != nil {
				return report, errors.Wrapf(err, "battle %d", i+1)
			}
			report.Actions++
		}

		b := session.Battle()
		logger.Info("Battle finished",
			"battle", i+1,
			"enemy", b.Enemy.Name,
			"winner", b.Winner.String(),
			"player_hp", b.Player.HP,
			"team_size", len(b.Team),
		)

		report.Battles++
		switch b.Winner {
		case battle.WinnerPlayer:
			report.Victories++
		case battle.WinnerEnemy:
			report.Defeats++
		case battle.WinnerCaptured:
			report.Captures++
		default:
			report.Escapes++
		}
	}

	final := session.Battle()
	report.CaptureItems = final.CaptureItems
	for _, m := range final.Team {
		report.Team = append(report.Team, m.Name)
	}

	return report, nil
}

// choosePlayerAction is the automatic player: throw a ball at a weakened
// enemy, run when nearly beaten, open with specials, otherwise attack, and
// defend to recover energy.
func choosePlayerAction(b battle.State) battle.Action {
	player, enemy := b.Player, b.Enemy

	switch {
	case b.CaptureItems > 0 && len(b.Team) < battle.TeamCapacity && enemy.HPPercent() <= 40:
		return battle.ActionCapture
	case player.HPPercent() < 15:
		return battle.ActionFlee
	case player.SpecialUses > 0 && player.Energy >= battle.SpecialEnergyCost && enemy.HPPercent() > 50:
		return battle.ActionSpecial
	case player.Energy >= battle.AttackEnergyCost:
		return battle.ActionAttack
	default:
		return battle.ActionDefend
	}
}
