// Package ebiten draws a prop scene in an Ebiten window.
package ebiten

import (
	"fmt"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"go.uber.org/zap"

	"github.com/Faultbox/midgard-props/internal/config"
	"github.com/Faultbox/midgard-props/internal/engine/debug"
	"github.com/Faultbox/midgard-props/internal/engine/keys"
	"github.com/Faultbox/midgard-props/internal/game"
	"github.com/Faultbox/midgard-props/internal/logger"
	"github.com/Faultbox/midgard-props/internal/prop"
)

// keyNames maps the Ebiten keys the scene listens to onto key names.
var keyNames = map[ebiten.Key]string{
	ebiten.KeyW:          "W",
	ebiten.KeyA:          "A",
	ebiten.KeyS:          "S",
	ebiten.KeyD:          "D",
	ebiten.KeyE:          "E",
	ebiten.KeyF:          "F",
	ebiten.KeyQ:          "Q",
	ebiten.KeyR:          "R",
	ebiten.KeySpace:      "SPACE",
	ebiten.KeyEnter:      "ENTER",
	ebiten.KeyEscape:     "ESCAPE",
	ebiten.KeyArrowUp:    "UP",
	ebiten.KeyArrowDown:  "DOWN",
	ebiten.KeyArrowLeft:  "LEFT",
	ebiten.KeyArrowRight: "RIGHT",
	ebiten.KeyF12:        "F12",
}

// screenshotKey captures the next drawn frame to a PNG.
const screenshotKey = "F12"

var (
	colorBackground = color.RGBA{24, 24, 28, 255}
	colorTrigger    = color.RGBA{70, 70, 80, 255}
	colorTriggerHot = color.RGBA{200, 170, 60, 255}
	colorClosed     = color.RGBA{180, 180, 180, 255}
	colorOpen       = color.RGBA{90, 200, 110, 255}
	colorMoving     = color.RGBA{230, 140, 60, 255}
	colorPlayer     = color.RGBA{80, 150, 240, 255}
)

// EbitenRenderer implements ebiten.Game over a session.
type EbitenRenderer struct {
	session *game.Session
	keys    *keys.State
	config  *config.Config
	dt      float64
	log     *zap.Logger

	screenshots   *debug.ScreenshotCapture
	captureQueued bool

	windowOpenedLogged bool
}

// New builds the scene described by cfg, polling Ebiten's keyboard.
func New(cfg *config.Config, audio prop.AudioSink) (*EbitenRenderer, error) {
	ks := keys.New()
	session, err := game.NewSession(cfg, ks, audio)
	if err != nil {
		return nil, err
	}

	shots := debug.NewScreenshotCapture(cfg.Frontend.ScreenshotDir, "propsim")
	if err := shots.SetFormat(cfg.Frontend.ScreenshotFormat); err != nil {
		return nil, err
	}

	tps := cfg.Simulation.TPS
	if tps <= 0 {
		tps = ebiten.DefaultTPS
	}
	return &EbitenRenderer{
		session: session,
		keys:    ks,
		config:  cfg,
		dt:      1.0 / float64(tps),
		log:     logger.For("ebiten"),

		screenshots: shots,
	}, nil
}

// Run opens the window and blocks until it closes.
func (e *EbitenRenderer) Run() error {
	ebiten.SetWindowSize(e.config.Frontend.Width, e.config.Frontend.Height)
	ebiten.SetWindowTitle(e.config.Frontend.Title)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetTPS(int(1 / e.dt))

	if err := ebiten.RunGame(e); err != nil {
		return fmt.Errorf("ebiten: %w", err)
	}
	e.log.Info("window closed")
	return nil
}

// Update handles input and advances the scene by one fixed tick.
func (e *EbitenRenderer) Update() error {
	if !e.windowOpenedLogged {
		e.windowOpenedLogged = true
		w, h := ebiten.WindowSize()
		e.log.Info("window opened", zap.Int("width", w), zap.Int("height", h))
	}

	var pressed, released []string
	for k, name := range keyNames {
		if inpututil.IsKeyJustPressed(k) {
			pressed = append(pressed, name)
		}
		if inpututil.IsKeyJustReleased(k) {
			released = append(released, name)
		}
	}

	if e.tick(pressed, released) {
		return ebiten.Termination
	}
	return nil
}

// tick applies one frame of key edges and steps the session.
func (e *EbitenRenderer) tick(pressed, released []string) (quit bool) {
	e.keys.BeginFrame()
	for _, name := range pressed {
		e.keys.Down(name)
	}
	for _, name := range released {
		e.keys.Up(name)
	}
	if e.keys.WasPressedThisFrame(screenshotKey) {
		e.captureQueued = true
	}
	return e.session.Frame(e.dt, e.keys.IsHeld)
}

// Draw renders the top-down scene and the status panel.
func (e *EbitenRenderer) Draw(screen *ebiten.Image) {
	screen.Fill(colorBackground)

	markers, lines := e.session.View()
	for _, m := range markers {
		trigger := colorTrigger
		if m.InRange {
			trigger = colorTriggerHot
		}
		vector.StrokeCircle(screen, m.Trigger.X, m.Trigger.Y, m.TriggerRadius, 1, trigger, true)

		panel := colorClosed
		switch {
		case !m.Settled:
			panel = colorMoving
		case m.State == prop.StateOpen:
			panel = colorOpen
		}
		vector.StrokeLine(screen, m.EdgeA.X, m.EdgeA.Y, m.EdgeB.X, m.EdgeB.Y, 3, panel, true)
		vector.StrokeLine(screen, m.Center.X, m.Center.Y, m.Tick.X, m.Tick.Y, 1, panel, true)
	}

	p := e.session.Minimap.Player(e.session.Player)
	vector.DrawFilledRect(screen, p.Position.X-5, p.Position.Y-5, 10, 10, colorPlayer, false)

	if d := e.session.Debug.Line(); d.Text != "" {
		lines = append(lines, d)
	}
	for i, l := range lines {
		ebitenutil.DebugPrintAt(screen, l.Text, 10, 10+i*16)
	}

	if e.captureQueued {
		e.captureQueued = false
		e.capture(screen)
	}
}

// capture writes the drawn frame to the screenshot directory.
func (e *EbitenRenderer) capture(screen *ebiten.Image) {
	b := screen.Bounds()
	pixels := make([]byte, 4*b.Dx()*b.Dy())
	screen.ReadPixels(pixels)

	name, err := e.screenshots.CaptureFromPixels(pixels, b.Dx(), b.Dy())
	if err != nil {
		e.log.Warn("screenshot failed", zap.Error(err))
		return
	}
	e.log.Info("screenshot saved", zap.String("path", name))
}

// Layout keeps the logical screen the same size as the window.
func (e *EbitenRenderer) Layout(outsideWidth, outsideHeight int) (int, int) {
	e.session.Minimap.Resize(outsideWidth, outsideHeight)
	return outsideWidth, outsideHeight
}

// Session returns the scene being drawn.
func (e *EbitenRenderer) Session() *game.Session {
	return e.session
}

var _ ebiten.Game = (*EbitenRenderer)(nil)
