// Package prop implements interactive hinged props: doors and chest lids that
// swing open and closed when a player in range presses the interact key.
//
// A Controller owns one Panel. Every frame it handles the interact edge, then
// eases the panel toward the target orientation of its current State. The
// interpolation is exponential: each frame covers Speed*dt of the remaining
// arc, so a reversal mid-swing continues smoothly from where the panel is.
package prop

import (
	"github.com/go-gl/mathgl/mgl32"
	"go.uber.org/zap"

	"github.com/Faultbox/midgard-props/internal/logger"
	"github.com/Faultbox/midgard-props/pkg/geom"
)

// DefaultActorTag is accepted by proximity when Config.ActorTag is empty.
const DefaultActorTag = "Player"

// Controller drives one panel.
type Controller struct {
	cfg   Config
	panel *Panel
	keys  KeySource
	audio AudioSink
	log   *zap.Logger

	proximity *Proximity
	state     State

	initialRotation mgl32.Quat
	initialPosition mgl32.Vec3
	openRotation    mgl32.Quat
	side            float32
}

// Option configures optional collaborators of a Controller.
type Option func(*Controller)

// WithKeys sets the input source polled for the interact key.
func WithKeys(keys KeySource) Option {
	return func(c *Controller) { c.keys = keys }
}

// WithAudio sets the sink that plays the open and close clips.
func WithAudio(audio AudioSink) Option {
	return func(c *Controller) { c.audio = audio }
}

// WithLogger overrides the logger; by default a child of the global logger
// named after the prop is used.
func WithLogger(log *zap.Logger) Option {
	return func(c *Controller) { c.log = log }
}

// New creates a controller for panel and records its initial orientation.
// A nil panel or missing audio sink is tolerated: the dependent action is
// skipped. An invalid configuration is rejected.
func New(cfg Config, panel *Panel, opts ...Option) (*Controller, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if cfg.ActorTag == "" {
		cfg.ActorTag = DefaultActorTag
	}

	c := &Controller{
		cfg:             cfg,
		panel:           panel,
		proximity:       NewProximity(cfg.ActorTag),
		state:           StateClosed,
		initialRotation: mgl32.QuatIdent(),
		side:            1,
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.log == nil {
		c.log = logger.For(cfg.Name)
	}

	if panel != nil {
		panel.Rotation = panel.Rotation.Normalize()
		c.initialRotation = panel.Rotation
		c.initialPosition = panel.Position
	} else {
		c.log.Warn("no panel attached; animation disabled", zap.Error(ErrMissingCollaborator))
	}
	if c.audio == nil && (cfg.OpenClip != "" || cfg.CloseClip != "") {
		c.log.Warn("no audio sink; sound effects disabled", zap.Error(ErrMissingCollaborator))
	}
	c.openRotation = c.composeOpen(1)

	c.log.Debug("prop ready",
		zap.Stringer("mode", cfg.Mode),
		zap.Float32("openAngle", cfg.OpenAngle),
		zap.Float32("speed", cfg.Speed))

	return c, nil
}

// Name returns the configured prop name.
func (c *Controller) Name() string {
	return c.cfg.Name
}

// Config returns the controller's configuration.
func (c *Controller) Config() Config {
	return c.cfg
}

// Panel returns the driven panel, which may be nil.
func (c *Controller) Panel() *Panel {
	return c.panel
}

// State returns the current discrete state.
func (c *Controller) State() State {
	return c.state
}

// Proximity returns the in-range flag.
func (c *Controller) Proximity() *Proximity {
	return c.proximity
}

// Side returns the swing direction chosen at the last opening, +1 or -1.
func (c *Controller) Side() float32 {
	return c.side
}

// InitialRotation returns the orientation recorded at construction.
func (c *Controller) InitialRotation() mgl32.Quat {
	return c.initialRotation
}

// OpenRotation returns the orientation the panel swings to when open.
func (c *Controller) OpenRotation() mgl32.Quat {
	return c.openRotation
}

// Target returns the orientation the panel is currently converging to.
func (c *Controller) Target() mgl32.Quat {
	if c.state == StateOpen {
		return c.openRotation
	}
	return c.initialRotation
}

// Enter handles a trigger enter event.
func (c *Controller) Enter(a Actor) {
	if a == nil {
		return
	}
	c.EnterTagged(a.Tag(), a)
}

// EnterTagged handles an enter event from a sensor that reports the tag
// separately. a may be nil when the sensor has no handle on the actor.
func (c *Controller) EnterTagged(tag string, a Actor) {
	if c.proximity.Enter(tag, a) {
		c.log.Debug("player near", zap.String("tag", tag))
	}
}

// Exit handles a trigger exit event. An in-progress swing is not affected.
func (c *Controller) Exit(a Actor) {
	if a == nil {
		return
	}
	c.ExitTagged(a.Tag(), a)
}

// ExitTagged is the tag-explicit form of Exit.
func (c *Controller) ExitTagged(tag string, a Actor) {
	if c.proximity.Exit(tag, a) {
		c.log.Debug("player left", zap.String("tag", tag))
	}
}

// Update runs one frame: the interact edge first, then the swing step.
// dt is the elapsed frame time in seconds.
func (c *Controller) Update(dt float64) {
	if c.proximity.InRange() && c.keys != nil && c.keys.WasPressedThisFrame(c.cfg.InteractKey) {
		c.Toggle()
	}
	c.step(dt)
}

// Toggle flips the state as if the interact key had been pressed in range.
func (c *Controller) Toggle() {
	c.state = c.state.Toggle()
	if c.state == StateOpen && c.cfg.Mode == HingeSideAware {
		c.chooseSide()
	}

	c.log.Info("prop toggled", zap.Stringer("state", c.state), zap.Float32("side", c.side))
	c.playClip()
}

// Settled reports whether the panel is within eps degrees of its target.
// A prop without a panel is always settled.
func (c *Controller) Settled(eps float32) bool {
	if c.panel == nil {
		return true
	}
	return geom.Angle(c.panel.Rotation, c.Target()) <= eps
}

// Reset closes the prop and snaps the panel back to its recorded pose.
func (c *Controller) Reset() {
	c.state = StateClosed
	c.side = 1
	c.openRotation = c.composeOpen(1)
	if c.panel != nil {
		c.panel.Rotation = c.initialRotation
		c.panel.Position = c.initialPosition
	}
}

// Restore snaps the prop to a saved state without playing a clip. side only
// matters for side-aware props; its sign picks the swing direction.
func (c *Controller) Restore(state State, side float32) {
	c.Reset()
	if state != StateOpen {
		return
	}

	c.state = StateOpen
	if c.cfg.Mode == HingeSideAware && side < 0 {
		c.side = -1
		c.openRotation = c.composeOpen(-1)
	}
	if c.panel != nil {
		c.panel.swingAbout(c.hingeOffset(), c.Target(), 1)
	}
}

func (c *Controller) hingeOffset() mgl32.Vec3 {
	if c.cfg.Mode == HingePivot {
		return mgl32.Vec3{}
	}
	return c.panel.HingeOffset
}

func (c *Controller) step(dt float64) {
	if c.panel == nil || dt <= 0 {
		return
	}

	c.panel.swingAbout(c.hingeOffset(), c.Target(), c.cfg.Speed*float32(dt))
}

// chooseSide recomputes the open rotation so the panel swings relative to the
// side the actor stands on. Without a known actor or panel the previous open
// rotation is kept.
func (c *Controller) chooseSide() {
	actor := c.proximity.Actor()
	if actor == nil || c.panel == nil {
		c.log.Debug("approach side unknown; reusing previous open rotation")
		return
	}

	hinge := c.panel.Hinge()
	forward := geom.ForwardOf(c.initialRotation)
	c.side = geom.Side(forward, actor.Position().Sub(hinge))
	c.openRotation = c.composeOpen(c.side)
}

func (c *Controller) composeOpen(side float32) mgl32.Quat {
	return geom.AxisAngle(c.cfg.OpenAxis, side*c.cfg.OpenAngle).Mul(c.initialRotation).Normalize()
}

func (c *Controller) playClip() {
	if c.audio == nil {
		return
	}
	clip := c.cfg.CloseClip
	if c.state == StateOpen {
		clip = c.cfg.OpenClip
	}
	if clip == "" {
		return
	}
	c.audio.PlayOnce(clip)
}
