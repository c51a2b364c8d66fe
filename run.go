package bongo

import (
	"fmt"
	"image/color"
	"strings"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// RunConfig configures the window opened by Run.
type RunConfig struct {
	Title string

	// Scale multiplies the canvas size to get the window size. Zero means 1.
	Scale float64

	// Background fills the window before the avatar is drawn.
	Background color.Color

	// ShowOverlay draws the diagnostics text. F1 toggles it at runtime.
	ShowOverlay bool

	// Script, when set, is stepped once per frame before Tick.
	Script *ScriptRunner

	// ExitWhenScriptDone closes the window after the last script step.
	ExitWhenScriptDone bool
}

// Run opens a window showing src and blocks until it is closed or Esc is
// pressed. D toggles the deformation pass and the cursor drives it.
func Run(src *Source, cfg RunConfig) error {
	if cfg.Title == "" {
		cfg.Title = "bongo"
	}
	if cfg.Scale <= 0 {
		cfg.Scale = 1
	}
	if cfg.Background == nil {
		cfg.Background = color.RGBA{0, 177, 64, 255}
	}
	g := &game{src: src, cfg: cfg, gfx: NewEbitenGraphics(nil), overlay: cfg.ShowOverlay}

	ebiten.SetWindowTitle(cfg.Title)
	ebiten.SetWindowSize(int(float64(src.Width())*cfg.Scale), int(float64(src.Height())*cfg.Scale))
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	if err := ebiten.RunGame(g); err != nil && err != ebiten.Termination {
		return err
	}
	return g.err
}

// game adapts a Source to ebiten.Game.
type game struct {
	src     *Source
	cfg     RunConfig
	gfx     *EbitenGraphics
	overlay bool
	err     error
}

func (g *game) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		return ebiten.Termination
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyD) {
		on := g.src.Deformer().Toggle()
		g.src.log.Info("deformation toggled", "enabled", on)
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyF1) {
		g.overlay = !g.overlay
	}
	x, y := ebiten.CursorPosition()
	canvas := Rect{Width: float64(g.src.Width()), Height: float64(g.src.Height())}
	if canvas.Contains(float64(x), float64(y)) {
		g.src.MouseMove(float64(x), float64(y))
	}

	if sc := g.cfg.Script; sc != nil {
		if err := sc.Step(g.src); err != nil {
			g.src.log.Warn("script step failed", "error", err)
		}
		if sc.Done() && g.cfg.ExitWhenScriptDone {
			return ebiten.Termination
		}
	}
	g.src.Tick(1 / float64(ebiten.TPS()))
	return nil
}

func (g *game) Draw(screen *ebiten.Image) {
	screen.Fill(g.cfg.Background)
	g.gfx.Target = screen
	g.src.Render(g.gfx)
	if g.overlay {
		ebitenutil.DebugPrintAt(screen, overlayText(g.src), 8, 8)
	}
}

func (g *game) Layout(_, _ int) (int, int) {
	return int(g.src.Width()), int(g.src.Height())
}

// overlayText renders the diagnostics shown in the viewer's corner.
func overlayText(src *Source) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Esc exit | D deformation | F1 overlay\n")
	fmt.Fprintf(&b, "FPS %.1f  TPS %.1f\n", ebiten.ActualFPS(), ebiten.ActualTPS())
	fmt.Fprintf(&b, "Mode: %s  Face: %s\n", src.ModeName(), src.Face())

	d := src.Deformer()
	if d.Enabled() {
		inf := d.Influence()
		fmt.Fprintf(&b, "Deformation: ON  mouse %.2f,%.2f  breath %.2f\n", inf.X, inf.Y, d.Breath())
	} else {
		b.WriteString("Deformation: OFF\n")
	}

	state := src.InputState()
	var held []string
	for _, code := range state.PressedCodes() {
		if name := KeyName(code); name != "" {
			held = append(held, name)
		} else {
			held = append(held, fmt.Sprint(code))
		}
	}
	fmt.Fprintf(&b, "Pressed: %s\n", strings.Join(held, " "))

	st := src.Stats()
	fmt.Fprintf(&b, "Draws: %d  Textures: %d\n", st.DrawCalls, st.CachedTextures)
	for _, e := range state.Recent() {
		b.WriteString("  " + e.String() + "\n")
	}
	return b.String()
}
