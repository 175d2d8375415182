package ui

import (
	"fmt"
	"strings"

	"github.com/gdamore/tcell/v2"

	"github.com/samdwyer/critterquest/internal/battle"
	"github.com/samdwyer/critterquest/internal/entity"
	"github.com/samdwyer/critterquest/internal/world"
)

// Screen layout
const (
	mapX       = 1
	mapY       = 2
	tileWidth  = 2 // columns per map tile, to keep tiles roughly square
	panelX     = 44
	panelWidth = 35
	barWidth   = 16
	logLines   = 5
	statusY    = 23
)

// Renderer handles drawing the game to the screen.
type Renderer struct {
	screen *Screen
}

// NewRenderer creates a new renderer for the given screen.
func NewRenderer(screen *Screen) *Renderer {
	return &Renderer{screen: screen}
}

// Render draws the map and, depending on the mode, either the team panel
// or the battle panel. status is shown on the bottom line.
func (r *Renderer) Render(explorer world.Explorer, b battle.State, status string) {
	r.screen.Clear()

	if explorer.Mode == world.ModeBattle {
		r.drawText(mapX, 0, "CritterQuest | Battle! Defeat or capture the wild critter", styleTitle)
	} else {
		r.drawText(mapX, 0, "CritterQuest | Explore the town and find wild critters", styleTitle)
	}

	r.drawMap(explorer)

	if explorer.Mode == world.ModeBattle {
		r.drawBattle(b)
	} else {
		r.drawExplorePanel(explorer, b)
	}

	r.drawText(mapX, statusY, status, styleMuted)
	r.screen.Show()
}

func (r *Renderer) drawMap(explorer world.Explorer) {
	m := explorer.Map
	for y := 0; y < m.Height; y++ {
		for x := 0; x < m.Width; x++ {
			tile := m.GetTile(x, y)
			style := tileStyle(tile.Terrain)
			sx := mapX + x*tileWidth
			r.screen.SetContent(sx, mapY+y, tile.Rune(), style)
			r.screen.SetContent(sx+1, mapY+y, ' ', style)
		}
	}

	avatar := explorer.Avatar
	avatarStyle := tcell.StyleDefault.Foreground(tcell.ColorYellow).Bold(true)
	r.screen.SetContent(mapX+avatar.X*tileWidth, mapY+avatar.Y, avatar.Facing.Symbol(), avatarStyle)
}

func (r *Renderer) drawExplorePanel(explorer world.Explorer, b battle.State) {
	y := mapY

	r.drawText(panelX, y, fmt.Sprintf("Team (%d/%d)", len(b.Team), battle.TeamCapacity), styleHeading)
	y++
	if len(b.Team) == 0 {
		r.drawText(panelX, y, "No critters yet. Walk in the grass!", styleMuted)
		y++
	}
	for _, m := range b.Team {
		r.drawMonsterLine(panelX, y, &m)
		y++
	}

	y++
	r.drawText(panelX, y, fmt.Sprintf("Capture balls: %d", b.CaptureItems), styleText)
	y += 2

	tile := explorer.CurrentTile()
	r.drawText(panelX, y, fmt.Sprintf("Standing on %s (%.0f%% encounter)",
		strings.ReplaceAll(string(tile.Terrain), "_", " "), tile.EncounterRate*100), styleText)
	y++
	r.drawText(panelX, y, fmt.Sprintf("Facing %s at (%d, %d)",
		explorer.Avatar.Facing, explorer.Avatar.X, explorer.Avatar.Y), styleMuted)
	y += 2

	r.drawText(panelX, y, "Arrows/WASD move, q quits", styleMuted)
}

func (r *Renderer) drawBattle(b battle.State) {
	y := mapY

	y = r.drawCombatant(y, &b.Player, "You", b.Turn == battle.SidePlayer && !b.GameOver)
	y++
	y = r.drawCombatant(y, &b.Enemy, "Wild", b.Turn == battle.SideEnemy && !b.GameOver)
	y++

	r.drawText(panelX, y, fmt.Sprintf("Capture chance %d%%  Balls %d",
		battle.CaptureRate(&b.Enemy), b.CaptureItems), styleText)
	y += 2

	switch {
	case b.GameOver:
		r.drawText(panelX, y, outcomeTitle(b.Winner), styleHeading)
		y++
		r.drawText(panelX, y, "Returning to the map...", styleMuted)
		y++
		r.drawText(panelX, y, "r battles again, b goes back now", styleMuted)
		y++
	case b.IsPlayerTurn():
		r.drawText(panelX, y, "1 Attack  2 Defend  3 Special", styleText)
		y++
		r.drawText(panelX, y, "4 Capture 5 Flee", styleText)
		y++
		r.drawText(panelX, y, "b back to map  r restart", styleMuted)
		y++
	default:
		r.drawText(panelX, y, "The enemy is thinking...", styleMuted)
		y += 3
	}
	y++

	// Newest lines last; older lines are dropped when the panel is full.
	var lines []string
	for _, msg := range b.Log {
		lines = append(lines, wrap(msg, panelWidth)...)
	}
	if len(lines) > logLines {
		lines = lines[len(lines)-logLines:]
	}
	for _, line := range lines {
		r.drawText(panelX, y, line, styleText)
		y++
	}
}

// drawCombatant draws a name line and HP/energy bars, returning the next
// free row.
func (r *Renderer) drawCombatant(y int, m *entity.Monster, label string, active bool) int {
	marker := "  "
	if active {
		marker = "> "
	}
	nameStyle := tcell.StyleDefault.Foreground(m.TCellColor()).Bold(true)
	x := r.drawText(panelX, y, marker, styleHeading)
	x = r.drawText(x, y, fmt.Sprintf("%s: %s Lv%d", label, m.Name, m.Level), nameStyle)
	if m.Defending {
		r.drawText(x, y, " [DEF]", styleMuted)
	}
	y++

	r.drawBar(y, "HP", m.HPPercent(), fmt.Sprintf("%d/%d", m.HP, m.MaxHP))
	y++
	r.drawBar(y, "EN", m.EnergyPercent(), fmt.Sprintf("%d/%d SP %d", m.Energy, m.MaxEnergy, m.SpecialUses))
	return y + 1
}

func (r *Renderer) drawBar(y int, label string, percent float64, suffix string) {
	x := r.drawText(panelX, y, label+" ", styleText)

	filled := int(percent / 100 * barWidth)
	filled = max(0, min(barWidth, filled))
	fill := tcell.StyleDefault.Foreground(barColor(percent))
	for i := 0; i < barWidth; i++ {
		if i < filled {
			r.screen.SetContent(x+i, y, '█', fill)
		} else {
			r.screen.SetContent(x+i, y, '░', styleMuted)
		}
	}

	r.drawText(x+barWidth+1, y, suffix, styleText)
}

func (r *Renderer) drawMonsterLine(x, y int, m *entity.Monster) {
	glyph := tcell.StyleDefault.Foreground(m.TCellColor()).Bold(true)
	r.screen.SetContent(x, y, m.Glyph, glyph)
	r.drawText(x+2, y, fmt.Sprintf("%s Lv%d HP %d/%d", m.Name, m.Level, m.HP, m.MaxHP), styleText)
}

// drawText writes s starting at x and returns the column after it.
func (r *Renderer) drawText(x, y int, s string, style tcell.Style) int {
	for _, ch := range s {
		r.screen.SetContent(x, y, ch, style)
		x++
	}
	return x
}

var (
	styleTitle   = tcell.StyleDefault.Foreground(tcell.ColorYellow).Bold(true)
	styleHeading = tcell.StyleDefault.Foreground(tcell.ColorWhite).Bold(true)
	styleText    = tcell.StyleDefault.Foreground(tcell.ColorWhite)
	styleMuted   = tcell.StyleDefault.Foreground(tcell.ColorGray)
)

// tileStyle returns the appropriate style for a terrain type.
func tileStyle(t world.Terrain) tcell.Style {
	switch t {
	case world.TerrainGrass:
		return tcell.StyleDefault.Foreground(tcell.ColorGreen)
	case world.TerrainTallGrass:
		return tcell.StyleDefault.Foreground(tcell.ColorLime).Bold(true)
	case world.TerrainPath:
		return tcell.StyleDefault.Foreground(tcell.ColorTan)
	case world.TerrainFlower:
		return tcell.StyleDefault.Foreground(tcell.ColorPink)
	case world.TerrainSand:
		return tcell.StyleDefault.Foreground(tcell.ColorKhaki)
	case world.TerrainTree:
		return tcell.StyleDefault.Foreground(tcell.ColorDarkGreen).Bold(true)
	case world.TerrainWater:
		return tcell.StyleDefault.Foreground(tcell.ColorBlue)
	case world.TerrainBuilding:
		return tcell.StyleDefault.Foreground(tcell.ColorMaroon)
	case world.TerrainFence:
		return tcell.StyleDefault.Foreground(tcell.ColorSaddleBrown)
	default:
		return tcell.StyleDefault
	}
}

func barColor(percent float64) tcell.Color {
	switch {
	case percent > 50:
		return tcell.ColorGreen
	case percent > 20:
		return tcell.ColorYellow
	default:
		return tcell.ColorRed
	}
}

// outcomeTitle is the banner shown once a battle is over.
func outcomeTitle(w battle.Winner) string {
	switch w {
	case battle.WinnerPlayer:
		return fmt.Sprintf("Victory! +%d XP", battle.VictoryExperience)
	case battle.WinnerEnemy:
		return "Defeat... Try again!"
	case battle.WinnerCaptured:
		return "Captured! A new critter joins you"
	default:
		return "You got away safely"
	}
}

// wrap breaks s into lines of at most width runes at spaces. Words longer
// than width are split.
func wrap(s string, width int) []string {
	var lines []string
	var line []rune

	for _, word := range strings.Fields(s) {
		w := []rune(word)
		for len(w) > width {
			if len(line) > 0 {
				lines = append(lines, string(line))
				line = nil
			}
			lines = append(lines, string(w[:width]))
			w = w[width:]
		}
		switch {
		case len(line) == 0:
			line = w
		case len(line)+1+len(w) <= width:
			line = append(append(line, ' '), w...)
		default:
			lines = append(lines, string(line))
			line = w
		}
	}
	if len(line) > 0 {
		lines = append(lines, string(line))
	}
	return lines
}
