// Package ui builds renderer-independent views of a prop scene: a top-down
// projection, status lines and frame statistics. Each front end draws them
// with its own toolkit.
package ui

import (
	"github.com/go-gl/mathgl/mgl32"

	"github.com/Faultbox/midgard-props/internal/game/entity"
	"github.com/Faultbox/midgard-props/internal/game/world"
	"github.com/Faultbox/midgard-props/internal/prop"
	"github.com/Faultbox/midgard-props/pkg/geom"
)

// PanelWidth is the drawn width of a panel along its local X axis.
const PanelWidth = 1.0

// Point is a projected screen position.
type Point struct {
	X, Y float32
}

// PropMarker is the top-down view of one prop.
type PropMarker struct {
	Name    string
	State   prop.State
	InRange bool
	Settled bool
	Angle   float32 // degrees away from the closed pose

	// Panel edge and facing tick, in screen space
	EdgeA, EdgeB Point
	Center, Tick Point

	Trigger       Point
	TriggerRadius float32 // pixels
}

// PlayerMarker is the top-down view of the player.
type PlayerMarker struct {
	Position  Point
	Direction entity.Direction
}

// Minimap projects the world onto the XZ plane, +X to the right and +Z up,
// centred on a fixed world point.
type Minimap struct {
	Width, Height int
	Scale         float32 // pixels per world unit
	Center        mgl32.Vec3
}

// NewMinimap creates a minimap for a viewport of the given size.
func NewMinimap(width, height int, scale float32) *Minimap {
	return &Minimap{Width: width, Height: height, Scale: scale}
}

// Resize updates the viewport size.
func (m *Minimap) Resize(width, height int) {
	m.Width = width
	m.Height = height
}

// Project maps a world position to screen coordinates.
func (m *Minimap) Project(p mgl32.Vec3) Point {
	return Point{
		X: float32(m.Width)/2 + (p[0]-m.Center[0])*m.Scale,
		Y: float32(m.Height)/2 - (p[2]-m.Center[2])*m.Scale,
	}
}

// Props returns a marker for every prop in w.
func (m *Minimap) Props(w *world.World) []PropMarker {
	markers := make([]PropMarker, 0, len(w.Props()))
	for _, p := range w.Props() {
		ctrl := p.Controller
		marker := PropMarker{
			Name:          p.Name,
			State:         ctrl.State(),
			InRange:       ctrl.Proximity().InRange(),
			Settled:       ctrl.Settled(SettledDegrees),
			Trigger:       m.Project(p.Trigger.Center),
			TriggerRadius: p.Trigger.Radius * m.Scale,
		}

		if panel := ctrl.Panel(); panel != nil {
			half := panel.Rotation.Rotate(mgl32.Vec3{PanelWidth / 2, 0, 0})
			tick := panel.Rotation.Rotate(geom.Forward.Mul(0.3))

			marker.Angle = geom.Angle(ctrl.InitialRotation(), panel.Rotation)
			marker.EdgeA = m.Project(panel.Position.Sub(half))
			marker.EdgeB = m.Project(panel.Position.Add(half))
			marker.Center = m.Project(panel.Position)
			marker.Tick = m.Project(panel.Position.Add(tick))
		}
		markers = append(markers, marker)
	}
	return markers
}

// Player returns the marker for c.
func (m *Minimap) Player(c *entity.Character) PlayerMarker {
	return PlayerMarker{
		Position:  m.Project(c.Position()),
		Direction: c.Direction,
	}
}
