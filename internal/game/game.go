// Package game provides the session controller and the terminal game loop.
package game

import (
	"context"
	"log/slog"

	"github.com/gdamore/tcell/v2"
	"go.opentelemetry.io/otel/attribute"

	"github.com/samdwyer/critterquest/internal/battle"
	"github.com/samdwyer/critterquest/internal/entity"
	"github.com/samdwyer/critterquest/internal/errors"
	"github.com/samdwyer/critterquest/internal/telemetry"
	"github.com/samdwyer/critterquest/internal/ui"
	"github.com/samdwyer/critterquest/internal/world"
)

// Game is the interactive terminal front end over a Session.
type Game struct {
	cfg      Config
	screen   *ui.Screen
	renderer *ui.Renderer
	session  *Session
	status   string
	running  bool
}

// battleKeys maps the number keys to battle actions.
var battleKeys = map[rune]battle.Action{
	'1': battle.ActionAttack,
	'2': battle.ActionDefend,
	'3': battle.ActionSpecial,
	'4': battle.ActionCapture,
	'5': battle.ActionFlee,
}

// New creates a new game instance.
func New(cfg *Config) (*Game, error) {
	if cfg == nil {
		cfg = DefaultConfig()
	}

	screen, err := ui.NewScreen()
	if err != nil {
		return nil, err
	}

	g := &Game{
		cfg:      *cfg,
		screen:   screen,
		renderer: ui.NewRenderer(screen),
		running:  true,
	}

	if g.cfg.Logger == nil {
		g.cfg.Logger = slog.Default()
	}

	// Timers never touch the session; due tasks come back through the
	// event loop as interrupts.
	g.cfg.Scheduler = NewTimerScheduler(func(task func()) {
		if err := screen.PostInterrupt(task); err != nil {
			g.cfg.Logger.Warn("Dropped scheduled task", "error", err)
		}
	})

	return g, nil
}

// Run executes the main game loop.
func (g *Game) Run(ctx context.Context) error {
	tracer := telemetry.Tracer("game")

	ctx, initSpan := tracer.Start(ctx, "game.init")
	session, err := NewSession(ctx, &g.cfg)
	if err != nil {
		initSpan.End()
		g.screen.Close()
		return err
	}
	g.session = session

	x, y := session.Explorer().Avatar.Position()
	initSpan.SetAttributes(
		attribute.Int64("game.seed", g.cfg.Seed),
		attribute.Bool("game.roll_on_blocked_move", g.cfg.RollOnBlockedMove),
		attribute.Int("avatar.start_x", x),
		attribute.Int("avatar.start_y", y),
	)
	initSpan.End()

	g.status = "Welcome to town! Walk through the grass to find wild critters."

	for g.running {
		g.renderer.Render(g.session.Explorer(), g.session.Battle(), g.status)
		g.handleInput(ctx)
	}

	g.screen.Close()
	return nil
}

// handleInput processes a single input event.
func (g *Game) handleInput(ctx context.Context) {
	ev := g.screen.PollEvent()

	switch ev := ev.(type) {
	case *tcell.EventKey:
		g.handleKeyEvent(ctx, ev)
	case *tcell.EventResize:
		g.screen.Sync()
	case *tcell.EventInterrupt:
		if task, ok := ev.Data().(func()); ok {
			before := g.session.Mode()
			task()
			g.noteTransition(before)
		}
	}
}

// handleKeyEvent processes keyboard input.
func (g *Game) handleKeyEvent(ctx context.Context, ev *tcell.EventKey) {
	switch ev.Key() {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		g.running = false

	case tcell.KeyUp:
		g.move(ctx, entity.DirUp)
	case tcell.KeyDown:
		g.move(ctx, entity.DirDown)
	case tcell.KeyLeft:
		g.move(ctx, entity.DirLeft)
	case tcell.KeyRight:
		g.move(ctx, entity.DirRight)

	case tcell.KeyRune:
		g.handleRune(ctx, ev.Rune())
	}
}

func (g *Game) handleRune(ctx context.Context, r rune) {
	switch r {
	case 'q', 'Q':
		g.running = false
	case 'w', 'W':
		g.move(ctx, entity.DirUp)
	case 's', 'S':
		g.move(ctx, entity.DirDown)
	case 'a', 'A':
		g.move(ctx, entity.DirLeft)
	case 'd', 'D':
		g.move(ctx, entity.DirRight)
	case 'b', 'B':
		if err := g.session.LeaveBattle(ctx); err == nil {
			g.status = "You headed back to the map."
		}
	case 'r', 'R':
		if err := g.session.RestartBattle(ctx); err == nil {
			g.status = "A new wild " + g.session.Battle().Enemy.Name + " appeared!"
		}
	default:
		if action, ok := battleKeys[r]; ok {
			g.act(ctx, action)
		}
	}
}

// move steps the avatar if exploring.
func (g *Game) move(ctx context.Context, dir entity.Direction) {
	if g.session.Mode() != world.ModeExplore {
		return
	}
	before := g.session.Mode()
	if !g.session.Move(ctx, dir) {
		g.status = "Something is in the way."
	} else {
		g.status = ""
	}
	g.noteTransition(before)
}

// act forwards a battle action, reporting refusals on the status line.
func (g *Game) act(ctx context.Context, action battle.Action) {
	if g.session.Mode() != world.ModeBattle {
		return
	}
	before := g.session.Mode()
	result, err := g.session.PlayerAction(ctx, action)
	if err != nil {
		g.cfg.Logger.Debug("Action refused",
			"action", action,
			"code", errors.GetCode(err).String(),
			"error", err,
		)
		g.status = "Wait: " + err.Error()
		return
	}
	g.status = result.Message
	g.noteTransition(before)
}

// noteTransition updates the status line when the mode changed underneath
// the player, e.g. an encounter or the return to the map.
func (g *Game) noteTransition(before world.Mode) {
	after := g.session.Mode()
	if before == after {
		return
	}
	if after == world.ModeBattle {
		g.status = "A wild " + g.session.Battle().Enemy.Name + " appeared!"
	} else {
		g.status = "Back on the map."
	}
}
