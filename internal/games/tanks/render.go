package tanks

import (
	"fmt"
	"math"

	"github.com/lucasb-eyer/go-colorful"

	"github.com/vovakirdan/tank-rampage/internal/core"
)

// Visual characters for rendering
const (
	ObstacleChar  = '█'
	HullChar      = '▒'
	BulletChar    = '•'
	SparkChar     = '*'
	EmberChar     = '·'
	BarChar       = '━'
	HealthUpChar  = '♥'
	AmmoUpChar    = 'A'
	hudRows       = 1
	minScreenCols = 40
	minScreenRows = 12
)

// Facing arrows, clockwise from +x in screen space (y grows downwards).
var dirGlyphs = [8]rune{'→', '↘', '↓', '↙', '←', '↖', '↑', '↗'}

// background is blended into fading particles.
var background = colorful.Color{R: 0.06, G: 0.06, B: 0.08}

// dirGlyph returns the arrow closest to angle.
func dirGlyph(angle float64) rune {
	idx := int(math.Round(core.NormalizeAngle(angle) / (math.Pi / 4)))
	return dirGlyphs[((idx%8)+8)%8]
}

// fade blends c towards the background as alpha drops to 0.
func fade(c core.Color, alpha float64) core.Color {
	base, err := colorful.Hex(string(c))
	if err != nil {
		return c
	}
	return core.Color(background.BlendRgb(base, core.ClampF(alpha, 0, 1)).Hex())
}

// viewport maps world coordinates onto the screen below the HUD.
type viewport struct {
	sx, sy float64 // World units per cell
}

func newViewport(w *World, dst *core.Screen) viewport {
	return viewport{
		sx: w.Width() / float64(dst.Width()),
		sy: w.Height() / float64(dst.Height()-hudRows),
	}
}

// cells returns the inclusive cell span covered by a world rectangle.
func (v viewport) cells(x, y, width, height float64) (x0, y0, x1, y1 int) {
	x0 = int(math.Floor(x / v.sx))
	y0 = int(math.Floor(y/v.sy)) + hudRows
	x1 = max(x0, int(math.Ceil((x+width)/v.sx))-1)
	y1 = max(y0, int(math.Ceil((y+height)/v.sy))-1+hudRows)
	return x0, y0, x1, y1
}

func (v viewport) center(d Drawable) (int, int) {
	cx := d.X + d.Width/2
	cy := d.Y + d.Height/2
	return int(math.Floor(cx / v.sx)), int(math.Floor(cy/v.sy)) + hudRows
}

// Render draws the current game state to the screen.
func (g *Game) Render(dst *core.Screen) {
	dst.Clear()

	if dst.Width() < minScreenCols || dst.Height() < minScreenRows {
		dst.DrawTextCentered(dst.Height()/2, "Terminal too small")
		return
	}

	v := newViewport(g.world, dst)
	for _, d := range g.world.Drawables() {
		drawEntity(dst, v, d)
	}

	g.drawHUD(dst)

	s := g.world.Status()
	switch {
	case s.State == StateGameOver:
		drawCenteredMessage(dst, "GAME OVER", fmt.Sprintf("Score: %d  |  Press R to restart", s.Score))
	case s.State == StateLevelComplete:
		drawCenteredMessage(dst, fmt.Sprintf("LEVEL %d COMPLETE", s.Level), "Press Enter for the next level")
	case g.paused:
		drawCenteredMessage(dst, "PAUSED", "Press P to resume")
	}
}

func drawEntity(dst *core.Screen, v viewport, d Drawable) {
	switch d.Kind {
	case KindObstacle:
		x0, y0, x1, y1 := v.cells(d.X, d.Y, d.Width, d.Height)
		dst.FillRect(x0, y0, x1-x0+1, y1-y0+1, ObstacleChar, d.Color)

	case KindPlayer, KindEnemy:
		x0, y0, x1, y1 := v.cells(d.X, d.Y, d.Width, d.Height)
		dst.FillRect(x0, y0, x1-x0+1, y1-y0+1, HullChar, d.Color)
		cx, cy := v.center(d)
		dst.SetColored(cx, cy, dirGlyph(d.Angle), d.Color)
		if d.HasHealthBar {
			drawHealthBar(dst, x0, y0-1, x1-x0+1, d.HealthFraction)
		}

	case KindPowerUp:
		glyph := HealthUpChar
		if d.PowerUp == PowerUpAmmo {
			glyph = AmmoUpChar
		}
		cx, cy := v.center(d)
		dst.SetColored(cx, cy, glyph, d.Color)

	case KindBullet:
		cx, cy := v.center(d)
		dst.SetColored(cx, cy, BulletChar, d.Color)

	case KindParticle:
		glyph := EmberChar
		if d.Width > 6 {
			glyph = SparkChar
		}
		cx, cy := v.center(d)
		dst.SetColored(cx, cy, glyph, fade(d.Color, d.Alpha))
	}
}

// drawHealthBar draws a bar of the given width above a damaged tank. The
// HUD row is never overwritten.
func drawHealthBar(dst *core.Screen, x, y, width int, frac float64) {
	if y < hudRows {
		return
	}
	filled := int(math.Round(frac * float64(width)))
	for i := range width {
		color := core.ColorBarEmpty
		if i < filled {
			color = core.ColorHealthBar
		}
		dst.SetColored(x+i, y, BarChar, color)
	}
}

func (g *Game) drawHUD(dst *core.Screen) {
	s := g.world.Status()
	p := g.world.Player()
	dst.FillRect(0, 0, dst.Width(), hudRows, ' ', core.ColorDefault)
	hud := fmt.Sprintf(" Score %d  %c %d  Ammo %d/%d  Level %d  Enemies %d ",
		s.Score, HealthUpChar, s.Health, s.Ammo, p.MaxAmmo, s.Level, s.EnemiesLeft)
	dst.DrawTextColored(0, 0, hud, core.ColorHUD)
}

// drawCenteredMessage draws a message box in the center of the screen.
func drawCenteredMessage(dst *core.Screen, title, subtitle string) {
	w := dst.Width()
	h := dst.Height()

	titleLen := len([]rune(title))
	subtitleLen := len([]rune(subtitle))

	// Calculate box dimensions
	boxW := max(titleLen, subtitleLen) + 4
	boxH := 5
	boxX := (w - boxW) / 2
	boxY := (h - boxH) / 2

	// Draw box
	dst.FillRect(boxX, boxY, boxW, boxH, ' ', core.ColorDefault)
	dst.DrawBox(boxX, boxY, boxW, boxH)

	// Draw text
	dst.DrawText(boxX+(boxW-titleLen)/2, boxY+1, title)
	dst.DrawText(boxX+(boxW-subtitleLen)/2, boxY+3, subtitle)
}
