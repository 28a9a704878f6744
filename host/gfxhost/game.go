package gfxhost

import (
	"fmt"
	"strings"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"github.com/wippyai/wasm-boot/host"
)

const (
	margin     = 8
	feedTop    = 32
	lineHeight = 16
)

type game struct {
	env       *Environment
	announced bool
	focused   bool
	overlay   bool
	ticks     int
}

func newGame(env *Environment) *game {
	return &game{env: env}
}

func (g *game) Update() error {
	if g.env.expired() {
		return ebiten.Termination
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		return ebiten.Termination
	}
	g.step(ebiten.IsFocused(), inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonRight))
	return nil
}

// step advances the lifecycle with this tick's observed inputs. The
// first tick announces the surface and seeds the focus state without
// reporting it; later ticks report focus edges only.
func (g *game) step(focused, rightClick bool) {
	g.ticks++

	if !g.announced {
		g.announced = true
		g.focused = focused
		g.env.fireReady()
	} else if focused != g.focused {
		g.focused = focused
		if focused {
			g.env.fireVisibility(host.Visible)
		} else {
			g.env.fireVisibility(host.Hidden)
		}
	}

	if rightClick {
		if g.env.fireContextMenu() == host.Allow {
			g.overlay = !g.overlay
		}
	}
}

func (g *game) Draw(screen *ebiten.Image) {
	ebitenutil.DebugPrintAt(screen, g.statusText(), margin, margin)

	if feed := g.env.cfg.Feed; feed != nil {
		events := feed.Snapshot()
		rows := (screen.Bounds().Dy() - feedTop - margin) / lineHeight
		if rows < 0 {
			rows = 0
		}
		if len(events) > rows {
			events = events[len(events)-rows:]
		}
		y := feedTop
		for _, e := range events {
			line := e.Time.Format("15:04:05.000") + "  " + e.String()
			ebitenutil.DebugPrintAt(screen, line, margin, y)
			y += lineHeight
		}
	}

	if g.overlay {
		g.drawOverlay(screen)
	}
}

func (g *game) drawOverlay(screen *ebiten.Image) {
	info := fmt.Sprintf("tps %5.1f\nfps %5.1f\nfocused %v\nevents %d",
		ebiten.ActualTPS(), ebiten.ActualFPS(), g.focused, g.feedLen())
	ebitenutil.DebugPrintAt(screen, info, screen.Bounds().Dx()-120, margin)
}

func (g *game) feedLen() int {
	if g.env.cfg.Feed == nil {
		return 0
	}
	return g.env.cfg.Feed.Len()
}

func (g *game) statusText() string {
	if g.env.cfg.Status != nil && g.env.cfg.Status() {
		return "module running"
	}
	return "starting module" + strings.Repeat(".", g.ticks/20%4)
}

// Text drawn with DebugPrintAt is legible at 2x, so the logical screen
// is half the window.
func (g *game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return outsideWidth / 2, outsideHeight / 2
}
