package bubblepop

import (
	"fmt"
	"math"

	platformcore "github.com/vovakirdan/bubblepop/internal/core"
	"github.com/vovakirdan/bubblepop/internal/games/bubblepop/core"
)

// Visual characters for rendering
const (
	BubbleChar  = '●'
	BlankChar   = '■'
	BoosterChar = '✦'
	GuideChar   = '·'
	DangerChar  = '-'
	HintChar    = '◎'
)

// hudHeight is the number of lines above the field box.
const hudHeight = 2

var bubbleColors = map[core.Color]platformcore.Color{
	core.ColorBlank:  platformcore.ColorGray,
	core.ColorRed:    platformcore.ColorBrightRed,
	core.ColorGreen:  platformcore.ColorBrightGreen,
	core.ColorBlue:   platformcore.ColorBrightBlue,
	core.ColorYellow: platformcore.ColorBrightYellow,
	core.ColorPurple: platformcore.ColorBrightMagenta,
	core.ColorOrange: platformcore.ColorOrange,
}

func screenColor(c core.Color) platformcore.Color {
	if sc, ok := bubbleColors[c]; ok {
		return sc
	}
	return platformcore.ColorDefault
}

// fieldWidth is the width of the field in screen columns. Each bubble takes
// two columns; odd hex rows are shifted by one.
func fieldWidth(g *core.Graph) int {
	return int(math.Ceil(g.Topology().Width(g.Cols()) * 2))
}

// minHeight is the HUD plus the boxed field, launcher row and next row.
func minHeight(field *core.Graph) int {
	return hudHeight + field.Rows() + 4
}

// layout centers the field and decides whether the screen is big enough.
func (g *Game) layout() {
	field := g.ctrl.Graph()
	fw := fieldWidth(field)
	needW := fw + 2
	needH := minHeight(field)

	g.tooSmall = g.runtime.ScreenW < needW || g.runtime.ScreenH < needH
	g.originX = (g.runtime.ScreenW - fw) / 2
	g.originY = hudHeight + 1
}

// toScreen maps a field-space point to a screen cell.
func (g *Game) toScreen(p core.Point) (int, int) {
	rh := g.ctrl.Graph().Topology().RowHeight()
	x := g.originX + int(math.Round((p.X-0.5)*2))
	y := g.originY + int(math.Round((p.Y-0.5)/rh))
	return x, y
}

func (g *Game) cellToScreen(c core.Cell) (int, int) {
	return g.toScreen(g.ctrl.Graph().Topology().Center(c))
}

// Render draws the game to the screen.
func (g *Game) Render(dst *platformcore.Screen) {
	dst.Clear()
	if g.ctrl == nil {
		dst.DrawTextCenteredColored(dst.Height()/2, "Cannot start game", platformcore.ColorRed)
		if g.loadErr != nil {
			dst.DrawTextCentered(dst.Height()/2+1, g.loadErr.Error())
		}
		return
	}
	if dst.Width() != g.runtime.ScreenW || dst.Height() != g.runtime.ScreenH {
		g.runtime.ScreenW, g.runtime.ScreenH = dst.Width(), dst.Height()
		g.layout()
	}
	if g.tooSmall {
		field := g.ctrl.Graph()
		dst.DrawTextCentered(dst.Height()/2, "Terminal too small")
		dst.DrawTextCentered(dst.Height()/2+1,
			fmt.Sprintf("Need %dx%d", fieldWidth(field)+2, minHeight(field)))
		return
	}

	g.renderHUD(dst)
	g.renderField(dst)
	g.renderAim(dst)
	g.renderPlayer(dst)
	g.renderOverlay(dst)
}

func (g *Game) renderHUD(dst *platformcore.Screen) {
	left := fmt.Sprintf("Score: %d", g.score)
	if g.level != nil {
		left += fmt.Sprintf("  Level: %s", g.level.Name)
	} else {
		left += fmt.Sprintf("  Field: %d", g.fields+1)
	}
	dst.DrawText(1, 0, left)

	right := fmt.Sprintf("Shots: %d  Boosters: %d", g.shots, g.boosters)
	dst.DrawText(dst.Width()-len(right)-1, 0, right)

	if g.messageTTL > 0 && g.message != "" {
		dst.DrawTextCenteredColored(1, g.message, platformcore.ColorBrightYellow)
	}
}

func (g *Game) renderField(dst *platformcore.Screen) {
	field := g.ctrl.Graph()
	fw := fieldWidth(field)
	frame := platformcore.NewRect(g.originX-1, g.originY-1, fw+2, field.Rows()+4)
	dst.DrawBox(frame, platformcore.ColorGray)

	// Danger line sits under the last safe row.
	if inner := frame.Inset(1); g.dangerRow < field.Rows() {
		dst.DrawHLine(inner.X, inner.Y+g.dangerRow, inner.W, DangerChar, platformcore.ColorRed)
	}

	for _, id := range field.Live() {
		b, _ := field.Bubble(id)
		x, y := g.cellToScreen(b.Cell)
		glyph := rune(BubbleChar)
		if b.Color == core.ColorBlank {
			glyph = BlankChar
		}
		dst.SetColored(x, y, glyph, screenColor(b.Color))
	}

	for _, f := range g.flashes {
		x, y := g.cellToScreen(f.cell)
		dst.SetColored(x, y, f.glyph, screenColor(f.color))
	}

	if g.hint != nil {
		x, y := g.cellToScreen(g.hint.Cell)
		dst.SetColored(x, y, HintChar, platformcore.ColorBrightWhite)
	}
}

func (g *Game) renderAim(dst *platformcore.Screen) {
	if g.flight.active {
		return
	}
	for _, p := range guide(g.ctrl.Graph(), g.launch, g.angle, g.cfg.Physics.CollisionFactor, 6) {
		x, y := g.toScreen(p)
		if dst.Get(x, y) == ' ' || dst.Get(x, y) == DangerChar {
			dst.SetColored(x, y, GuideChar, platformcore.ColorWhite)
		}
	}
}

func (g *Game) renderPlayer(dst *platformcore.Screen) {
	p := g.ctrl.Player()
	glyph := rune(BubbleChar)
	color := screenColor(p.Color)
	if p.Booster != core.BoosterStandard {
		glyph = BoosterChar
		color = platformcore.ColorBrightCyan
	}

	pos := g.launch
	if g.flight.active {
		pos = g.flight.pos
	}
	x, y := g.toScreen(pos)
	dst.SetColored(x, y, glyph, color)

	// Next bubble below the launcher.
	lx, ly := g.toScreen(g.launch)
	dst.DrawText(lx-6, ly+1, "next:")
	dst.SetColored(lx, ly+1, BubbleChar, screenColor(g.ctrl.NextColor()))
}

func (g *Game) renderOverlay(dst *platformcore.Screen) {
	mid := dst.Height() / 2
	switch {
	case g.won:
		dst.DrawTextCenteredColored(mid, " YOU WIN! ", platformcore.ColorBrightGreen)
		dst.DrawTextCentered(mid+1, fmt.Sprintf(" Score: %d  [R] restart ", g.score))
	case g.gameOver:
		dst.DrawTextCenteredColored(mid, " GAME OVER ", platformcore.ColorBrightRed)
		dst.DrawTextCentered(mid+1, fmt.Sprintf(" Score: %d  [R] restart ", g.score))
	case g.paused:
		dst.DrawTextCenteredColored(mid, " PAUSED ", platformcore.ColorBrightYellow)
	}
}
