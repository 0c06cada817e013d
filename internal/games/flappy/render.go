package flappy

import (
	"fmt"
	"math"

	"github.com/vovakirdan/tui-flappy/internal/core"
	"github.com/vovakirdan/tui-flappy/internal/ecs"
)

// Visual characters for rendering
const (
	PipeChar      = '█'
	PipeCapTop    = '▄'
	PipeCapBottom = '▀'
	GroundChar    = '▒'
)

var birdGlyphs = map[string]rune{
	SpriteUpFlap:   '▲',
	SpriteMidFlap:  '▶',
	SpriteDownFlap: '▼',
}

// viewport maps world coordinates onto screen cells.
type viewport struct {
	w, h   float64 // world size
	sw, sh int     // screen size
}

func (v viewport) col(x float64) int {
	return int(math.Floor((x + v.w/2) / v.w * float64(v.sw)))
}

func (v viewport) row(y float64) int {
	return int(math.Floor((y + v.h/2) / v.h * float64(v.sh)))
}

// rect converts a world box centred at (x, y) to screen cells, at least one cell wide and tall.
func (v viewport) rect(x, y, w, h float64) core.Rect {
	x0, x1 := v.col(x-w/2), v.col(x+w/2)
	y0, y1 := v.row(y-h/2), v.row(y+h/2)
	return core.NewRect(x0, y0, core.Max(x1-x0, 1), core.Max(y1-y0, 1))
}

// Render draws the current phase into dst.
func (g *Game) Render(dst *core.Screen) {
	if g.machine == nil {
		return
	}

	switch g.machine.Phase() {
	case PhaseLoading:
		dst.DrawTextCentered(dst.Height()/2, "Loading...", core.ColorGray)
	case PhaseStart:
		g.drawTitle(dst)
	case PhasePlaying:
		g.drawScene(dst)
		g.drawHUD(dst)
		if g.paused {
			drawMessage(dst, "PAUSED", "Press P to resume")
		}
	case PhaseGameOver:
		if _, ok := g.scene.Entities().Single(ecs.TagMarker); ok {
			drawMessage(dst, "GAME OVER",
				fmt.Sprintf("Score: %d  Best: %d", g.score.Value(), g.score.Best()),
				"Press SPACE to play again")
		}
	}
}

func (g *Game) viewport(dst *core.Screen) viewport {
	return viewport{
		w:  g.cfg.Playfield.Width,
		h:  g.cfg.Playfield.Height,
		sw: dst.Width(),
		sh: dst.Height(),
	}
}

func (g *Game) drawScene(dst *core.Screen) {
	vp := g.viewport(dst)
	ents, bodies := g.scene.Entities(), g.scene.Bodies()

	for _, id := range ents.Query(ecs.TagGround) {
		b, ok := bodies.Body(id)
		if !ok {
			continue
		}
		dst.FillRect(vp.rect(b.Pos.X, b.Pos.Y, b.Shape.W, b.Shape.H), GroundChar, core.ColorYellow)
	}

	for _, id := range ents.Query(ecs.TagPipe) {
		b, ok := bodies.Body(id)
		if !ok {
			continue
		}
		r := vp.rect(b.Pos.X, b.Pos.Y, b.Shape.W, b.Shape.H)
		dst.FillRect(r, PipeChar, core.ColorGreen)
		// Cap on the edge facing the gap
		if ents.Sprite(id) == "pipe_down" {
			dst.DrawHLine(r.X, r.Bottom()-1, r.W, PipeCapTop, core.ColorBrightGreen)
		} else {
			dst.DrawHLine(r.X, r.Y, r.W, PipeCapBottom, core.ColorBrightGreen)
		}
	}

	if bird, ok := ents.Single(ecs.TagBird); ok {
		if b, ok := bodies.Body(bird); ok {
			glyph, ok := birdGlyphs[ents.Sprite(bird)]
			if !ok {
				glyph = birdGlyphs[SpriteMidFlap]
			}
			dst.SetColored(vp.col(b.Pos.X), vp.row(b.Pos.Y), glyph, core.ColorBrightYellow)
		}
	}
}

func (g *Game) drawHUD(dst *core.Screen) {
	if ui, ok := g.scene.Entities().Single(ecs.TagScoreUI); ok {
		dst.DrawTextColored(1, 0, " "+g.scene.Entities().Sprite(ui)+" ", core.ColorBrightWhite)
	}
	best := fmt.Sprintf(" Best: %d ", g.score.Best())
	dst.DrawTextColored(dst.Width()-len(best)-1, 0, best, core.ColorGray)
}

func (g *Game) drawTitle(dst *core.Screen) {
	mid := dst.Height() / 2
	dst.DrawTextCentered(mid-3, g.title, core.ColorBrightYellow)
	dst.DrawTextCentered(mid-1, string(birdGlyphs[SpriteMidFlap]), core.ColorBrightYellow)
	dst.DrawTextCentered(mid+1, "Hold SPACE to climb, release to fall", core.ColorWhite)
	dst.DrawTextCentered(mid+3, "Press SPACE to start", core.ColorGray)
	if best := g.score.Best(); best > 0 {
		dst.DrawTextCentered(mid+5, fmt.Sprintf("Best: %d", best), core.ColorGray)
	}
}

// drawMessage draws a boxed message in the centre of the screen.
func drawMessage(dst *core.Screen, title string, lines ...string) {
	width := len([]rune(title))
	for _, l := range lines {
		width = core.Max(width, len([]rune(l)))
	}
	boxW := width + 4
	boxH := len(lines) + 4
	r := core.NewRect((dst.Width()-boxW)/2, (dst.Height()-boxH)/2, boxW, boxH)

	dst.FillRect(r, ' ', core.ColorDefault)
	dst.DrawBox(r, core.ColorWhite)
	dst.DrawTextCentered(r.Y+1, title, core.ColorBrightRed)
	for i, l := range lines {
		dst.DrawTextCentered(r.Y+3+i, l, core.ColorWhite)
	}
}
