// Package world holds a prop scene: props with trigger volumes and the
// characters that walk through them.
package world

import (
	"errors"
	"fmt"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/zyedidia/generic/mapset"
	"go.uber.org/zap"

	"github.com/Faultbox/midgard-props/internal/game/entity"
	"github.com/Faultbox/midgard-props/internal/logger"
	"github.com/Faultbox/midgard-props/internal/prop"
)

var (
	ErrDuplicateProp = errors.New("duplicate prop")
	ErrNoController  = errors.New("prop has no controller")
)

// Volume is a vertical cylinder of infinite height around Center.
// Height is ignored so that a character standing on the floor is sensed by a
// door whose origin sits at hinge height.
type Volume struct {
	Center mgl32.Vec3
	Radius float32
}

// Contains reports whether p lies within the volume's radius on the XZ plane.
func (v Volume) Contains(p mgl32.Vec3) bool {
	dx := p[0] - v.Center[0]
	dz := p[2] - v.Center[2]
	return dx*dx+dz*dz <= v.Radius*v.Radius
}

// Prop is a controller placed in the world together with its trigger.
type Prop struct {
	Name       string
	Controller *prop.Controller
	Trigger    Volume
}

type overlap struct {
	prop  string
	actor uint32
}

// World steps every prop once per frame after sensing which characters are
// inside which triggers.
type World struct {
	props  []*Prop
	byName map[string]*Prop
	actors *entity.Manager
	inside mapset.Set[overlap]
	log    *zap.Logger
}

// New creates an empty world. A nil manager gets a fresh one.
func New(actors *entity.Manager) *World {
	if actors == nil {
		actors = entity.NewManager()
	}
	return &World{
		byName: make(map[string]*Prop),
		actors: actors,
		inside: mapset.New[overlap](),
		log:    logger.For("world"),
	}
}

// AddProp places a prop. Names must be unique.
func (w *World) AddProp(p *Prop) error {
	if p == nil || p.Controller == nil {
		return ErrNoController
	}
	if _, ok := w.byName[p.Name]; ok {
		return fmt.Errorf("%w: %s", ErrDuplicateProp, p.Name)
	}
	w.props = append(w.props, p)
	w.byName[p.Name] = p
	return nil
}

// Props returns the props in insertion order.
func (w *World) Props() []*Prop {
	return w.props
}

// Prop returns a prop by name, or nil.
func (w *World) Prop(name string) *Prop {
	return w.byName[name]
}

// Actors returns the character manager.
func (w *World) Actors() *entity.Manager {
	return w.actors
}

// RemoveActor removes a character, firing exit events for every trigger it
// was inside first.
func (w *World) RemoveActor(id uint32) {
	c := w.actors.Get(id)
	if c == nil {
		return
	}
	for _, p := range w.props {
		if w.inside.Has(overlap{prop: p.Name, actor: id}) {
			w.leave(p, c)
		}
	}
	w.actors.Remove(id)
}

// Step runs one frame. dt is in seconds.
func (w *World) Step(dt float64) {
	w.sense()
	for _, p := range w.props {
		p.Controller.Update(dt)
	}
}

// sense emits enter and exit edges for every prop and character pair whose
// overlap changed since the last frame.
func (w *World) sense() {
	characters := w.actors.All()
	for _, p := range w.props {
		for _, c := range characters {
			key := overlap{prop: p.Name, actor: c.ID}
			in := p.Trigger.Contains(c.Position())
			was := w.inside.Has(key)

			switch {
			case in && !was:
				w.inside.Put(key)
				p.Controller.Enter(c)
				w.log.Debug("trigger enter", zap.String("prop", p.Name), zap.String("actor", c.Name))
			case !in && was:
				w.leave(p, c)
			}
		}
	}
}

// leave sends the exit for c, then re-announces anyone still inside so the
// prop's flag keeps tracking an occupant.
func (w *World) leave(p *Prop, c *entity.Character) {
	w.inside.Remove(overlap{prop: p.Name, actor: c.ID})
	p.Controller.Exit(c)
	w.log.Debug("trigger exit", zap.String("prop", p.Name), zap.String("actor", c.Name))

	for _, other := range w.actors.All() {
		if other.ID != c.ID && w.inside.Has(overlap{prop: p.Name, actor: other.ID}) {
			p.Controller.Enter(other)
		}
	}
}

// Near returns the props whose trigger contained the character on the last
// frame.
func (w *World) Near(id uint32) []*Prop {
	var near []*Prop
	for _, p := range w.props {
		if w.inside.Has(overlap{prop: p.Name, actor: id}) {
			near = append(near, p)
		}
	}
	return near
}

// Reset closes every prop and snaps it back to its initial pose.
func (w *World) Reset() {
	for _, p := range w.props {
		p.Controller.Reset()
	}
	w.log.Info("world reset", zap.Int("props", len(w.props)))
}
