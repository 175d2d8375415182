package ui

import (
	"context"
	"strings"
	"testing"

	"github.com/gdamore/tcell/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/samdwyer/critterquest/internal/battle"
	"github.com/samdwyer/critterquest/internal/entity"
	"github.com/samdwyer/critterquest/internal/world"
)

func newSimScreen(t *testing.T) *Screen {
	t.Helper()
	sim := tcell.NewSimulationScreen("UTF-8")
	screen, err := Wrap(sim)
	require.NoError(t, err)
	sim.SetSize(80, 25)
	t.Cleanup(screen.Close)
	return screen
}

func rowText(s *Screen, y int) string {
	w, _ := s.Size()
	var b strings.Builder
	for x := 0; x < w; x++ {
		b.WriteRune(s.RuneAt(x, y))
	}
	return b.String()
}

func screenText(s *Screen) string {
	_, h := s.Size()
	rows := make([]string, h)
	for y := range rows {
		rows[y] = rowText(s, y)
	}
	return strings.Join(rows, "\n")
}

func testExplorer() world.Explorer {
	m := world.NewOverworld(world.DefaultWidth, world.DefaultHeight)
	m.Generate(context.Background())
	return world.NewExplorer(m)
}

func testBattle() battle.State {
	return battle.State{
		Player: entity.Monster{Name: "Mystic Hero", HP: 100, MaxHP: 100, Energy: 50, MaxEnergy: 50, Level: 1, SpecialUses: 3},
		Enemy:  entity.Monster{Name: "Sinister Shade", HP: 80, MaxHP: 80, Energy: 40, MaxEnergy: 40, Level: 1, Defending: true},
		Turn:   battle.SidePlayer,
		Log:    []string{"The battle has begun!"},
		Team: []entity.Monster{
			{Name: "Ember Pup", Glyph: 'e', HP: 60, MaxHP: 60, Level: 1},
		},
		CaptureItems: 5,
	}
}

func TestRenderExplore(t *testing.T) {
	screen := newSimScreen(t)
	r := NewRenderer(screen)
	explorer := testExplorer()

	r.Render(explorer, testBattle(), "hello")

	assert.Equal(t, '^', screen.RuneAt(mapX+world.StartX*tileWidth, mapY+world.StartY))
	assert.Equal(t, world.TerrainTree.Rune(), screen.RuneAt(mapX+8*tileWidth, mapY+2))

	text := screenText(screen)
	assert.Contains(t, text, "Team (1/6)")
	assert.Contains(t, text, "Ember Pup Lv1")
	assert.Contains(t, text, "Capture balls: 5")
	assert.Contains(t, text, "Standing on path (2% encounter)")
	assert.Contains(t, rowText(screen, statusY), "hello")
}

func TestRenderBattle(t *testing.T) {
	screen := newSimScreen(t)
	r := NewRenderer(screen)
	explorer := world.EnterBattle(testExplorer())

	r.Render(explorer, testBattle(), "")

	text := screenText(screen)
	assert.Contains(t, text, "> You: Mystic Hero Lv1")
	assert.Contains(t, text, "Wild: Sinister Shade Lv1 [DEF]")
	assert.Contains(t, text, "100/100")
	assert.Contains(t, text, "Capture chance 20%  Balls 5")
	assert.Contains(t, text, "1 Attack  2 Defend  3 Special")
	assert.Contains(t, text, "The battle has begun!")
}

func TestRenderBattleOver(t *testing.T) {
	screen := newSimScreen(t)
	r := NewRenderer(screen)
	b := testBattle()
	b.GameOver = true
	b.Winner = battle.WinnerCaptured

	r.Render(world.EnterBattle(testExplorer()), b, "")

	text := screenText(screen)
	assert.Contains(t, text, "Captured! A new critter joins you")
	assert.NotContains(t, text, "1 Attack")
	assert.NotContains(t, text, "> You")
}

func TestOutcomeTitle(t *testing.T) {
	assert.Equal(t, "Victory! +50 XP", outcomeTitle(battle.WinnerPlayer))
	assert.Equal(t, "Defeat... Try again!", outcomeTitle(battle.WinnerEnemy))
	assert.Equal(t, "You got away safely", outcomeTitle(battle.WinnerNone))
}

func TestWrap(t *testing.T) {
	tests := []struct {
		name     string
		in       string
		width    int
		expected []string
	}{
		{"fits", "short line", 20, []string{"short line"}},
		{"breaks at spaces", "Sinister Shade used a Special Attack", 15, []string{"Sinister Shade", "used a Special", "Attack"}},
		{"splits long words", "abcdefgh", 3, []string{"abc", "def", "gh"}},
		{"empty", "", 10, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, wrap(tt.in, tt.width))
		})
	}
}
