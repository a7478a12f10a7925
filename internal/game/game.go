// Package game runs a prop scene: the session shared by all front ends and
// the SDL2 windowed loop.
package game

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/Faultbox/midgard-props/internal/config"
	"github.com/Faultbox/midgard-props/internal/engine/input"
	"github.com/Faultbox/midgard-props/internal/engine/window"
	"github.com/Faultbox/midgard-props/internal/game/ui"
	"github.com/Faultbox/midgard-props/internal/game/world"
	"github.com/Faultbox/midgard-props/internal/logger"
	"github.com/Faultbox/midgard-props/internal/prop"
)

var (
	colorBackground = window.Color{R: 24, G: 24, B: 28, A: 255}
	colorTrigger    = window.Color{R: 70, G: 70, B: 80, A: 255}
	colorTriggerHot = window.Color{R: 200, G: 170, B: 60, A: 255}
	colorClosed     = window.Color{R: 180, G: 180, B: 180, A: 255}
	colorOpen       = window.Color{R: 90, G: 200, B: 110, A: 255}
	colorMoving     = window.Color{R: 230, G: 140, B: 60, A: 255}
	colorPlayer     = window.Color{R: 80, G: 150, B: 240, A: 255}
)

// Game is the SDL2 front end.
type Game struct {
	config  *config.Config
	running bool
	window  *window.Window
	input   *input.Input
	session *Session
	clock   *world.Clock
	log     *zap.Logger
}

// New opens the window and builds the scene.
func New(cfg *config.Config, audio prop.AudioSink) (*Game, error) {
	log := logger.For("sdl")
	log.Info("initializing game",
		zap.String("title", cfg.Frontend.Title),
		zap.Int("width", cfg.Frontend.Width),
		zap.Int("height", cfg.Frontend.Height),
	)

	g := &Game{
		config: cfg,
		input:  input.New(),
		clock:  world.NewClock(cfg.Simulation.MaxStep),
		log:    log,
	}

	var err error
	g.session, err = NewSession(cfg, g.input, audio)
	if err != nil {
		return nil, fmt.Errorf("failed to build scene: %w", err)
	}

	g.window, err = window.New(window.Config{
		Title:  cfg.Frontend.Title,
		Width:  cfg.Frontend.Width,
		Height: cfg.Frontend.Height,
		VSync:  true,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create window: %w", err)
	}

	log.Info("game initialized successfully")
	return g, nil
}

// Session returns the scene being driven.
func (g *Game) Session() *Session {
	return g.session
}

// Run starts the main loop and returns when the window closes or the user
// quits.
func (g *Game) Run() error {
	g.running = true
	lastTitle := ""

	g.log.Info("starting game loop")

	for g.running {
		dt := g.clock.Tick()

		// 1. Process input
		if g.input.Update() {
			g.running = false
			break
		}
		for _, event := range g.input.Events() {
			if event.Type == input.EventWindowResize {
				g.session.Minimap.Resize(event.Width, event.Height)
			}
		}

		// 2. Update scene
		if g.session.Frame(dt, g.input.IsHeld) {
			g.running = false
			break
		}

		// 3. Render
		markers, lines := g.session.View()
		g.render(markers)

		if title := g.title(lines); title != lastTitle {
			g.window.SetTitle(title)
			lastTitle = title
		}
	}

	return nil
}

// Close cleans up game resources.
func (g *Game) Close() {
	g.log.Info("closing game")

	if g.window != nil {
		g.window.Close()
	}
}

// render draws the top-down scene. SDL has no text without SDL_ttf, so the
// hint goes to the window title instead.
func (g *Game) render(markers []ui.PropMarker) {
	g.window.Clear(colorBackground)

	for _, m := range markers {
		trigger := colorTrigger
		if m.InRange {
			trigger = colorTriggerHot
		}
		r := int32(m.TriggerRadius)
		g.window.Rect(int32(m.Trigger.X)-r, int32(m.Trigger.Y)-r, 2*r, 2*r, trigger)

		panel := colorClosed
		switch {
		case !m.Settled:
			panel = colorMoving
		case m.State == prop.StateOpen:
			panel = colorOpen
		}
		g.window.Line(int32(m.EdgeA.X), int32(m.EdgeA.Y), int32(m.EdgeB.X), int32(m.EdgeB.Y), panel)
		g.window.Line(int32(m.Center.X), int32(m.Center.Y), int32(m.Tick.X), int32(m.Tick.Y), panel)
	}

	p := g.session.Minimap.Player(g.session.Player)
	g.window.FillRect(int32(p.Position.X)-5, int32(p.Position.Y)-5, 10, 10, colorPlayer)

	g.window.Present()
}

// title shows the fps and, next to a prop, the interaction hint.
func (g *Game) title(lines []ui.Line) string {
	title := fmt.Sprintf("%s - %.0f fps", g.config.Frontend.Title, g.session.Debug.FPS())
	for _, l := range lines {
		if l.Tone == ui.ToneHint {
			title += " - " + l.Text
		}
	}
	return title
}
