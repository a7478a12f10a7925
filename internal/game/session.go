package game

import (
	"go.uber.org/zap"

	"github.com/Faultbox/midgard-props/internal/config"
	"github.com/Faultbox/midgard-props/internal/game/entity"
	"github.com/Faultbox/midgard-props/internal/game/ui"
	"github.com/Faultbox/midgard-props/internal/game/world"
	"github.com/Faultbox/midgard-props/internal/logger"
	"github.com/Faultbox/midgard-props/internal/prop"
)

// TapStep is how many seconds of walking one key press buys on a front end
// that cannot report held keys.
const TapStep = 0.25

// Session is a running prop scene shared by every front end: the world, the
// player and the views drawn from them.
type Session struct {
	World    *world.World
	Player   *entity.Character
	Movement *world.MovementController

	Minimap *ui.Minimap
	Status  *ui.StatusBar
	Debug   *ui.DebugOverlay

	keys prop.KeySource
	log  *zap.Logger
}

// NewSession builds the scene from cfg. keys is polled for interaction,
// movement and commands; audio may be nil.
func NewSession(cfg *config.Config, keys prop.KeySource, audio prop.AudioSink) (*Session, error) {
	w, player, err := world.Build(cfg, keys, audio)
	if err != nil {
		return nil, err
	}

	return &Session{
		World:    w,
		Player:   player,
		Movement: world.NewMovementController(player),
		Minimap:  ui.NewMinimap(cfg.Frontend.Width, cfg.Frontend.Height, 40),
		Status:   ui.NewStatusBar(),
		Debug:    ui.NewDebugOverlay(),
		keys:     keys,
		log:      logger.For("session"),
	}, nil
}

// Frame advances the scene by dt seconds and reports whether the user asked
// to quit. held reports keys that are down; pass nil when the front end only
// sees presses, and each press of a movement key walks for TapStep.
func (s *Session) Frame(dt float64, held func(key string) bool) (quit bool) {
	if s.keys != nil {
		if s.keys.WasPressedThisFrame("Q") || s.keys.WasPressedThisFrame("ESCAPE") {
			s.log.Info("quit requested")
			return true
		}
		if s.keys.WasPressedThisFrame("R") {
			s.World.Reset()
		}

		if held != nil {
			s.Movement.Update(held, dt)
		} else {
			s.Movement.Update(s.keys.WasPressedThisFrame, TapStep)
		}
	}

	s.World.Step(dt)
	s.Debug.Update(dt)
	return false
}

// View returns the prop markers and status lines for the current frame.
func (s *Session) View() ([]ui.PropMarker, []ui.Line) {
	markers := s.Minimap.Props(s.World)
	lines := s.Status.Lines(s.World, s.Player, markers)
	return markers, lines
}
