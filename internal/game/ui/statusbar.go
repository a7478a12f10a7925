package ui

import (
	"fmt"
	"strings"

	"github.com/leonelquinteros/gotext"

	"github.com/Faultbox/midgard-props/internal/game/entity"
	"github.com/Faultbox/midgard-props/internal/game/world"
	"github.com/Faultbox/midgard-props/internal/prop"
)

// SettledDegrees is how close to its target a panel must be to count as at rest.
const SettledDegrees = 0.5

// dynamicGet looks up message ids that are built at runtime.
var dynamicGet = gotext.Get

// Tone tells a front end how to color a status line.
type Tone int

const (
	ToneNormal Tone = iota
	ToneSubtle
	ToneOpen
	ToneMoving
	ToneHint
)

// Line is one row of the status panel.
type Line struct {
	Text string
	Tone Tone
}

// StateLabel returns the localized label for a prop: open or closed once at
// rest, opening or closing while it swings.
func StateLabel(state prop.State, settled bool) string {
	switch {
	case state == prop.StateOpen && settled:
		return gotext.Get("open")
	case state == prop.StateOpen:
		return gotext.Get("opening")
	case settled:
		return gotext.Get("closed")
	default:
		return gotext.Get("closing")
	}
}

// StatusBar lists every prop with its state and angle, followed by the
// player position and an interaction hint.
type StatusBar struct {
	ShowHint     bool
	ShowControls bool
}

// NewStatusBar creates a status bar with hints and controls shown.
func NewStatusBar() *StatusBar {
	return &StatusBar{ShowHint: true, ShowControls: true}
}

// Lines builds the status rows for the current frame.
func (sb *StatusBar) Lines(w *world.World, player *entity.Character, markers []PropMarker) []Line {
	lines := make([]Line, 0, len(markers)+3)

	for _, m := range markers {
		tone := ToneNormal
		switch {
		case !m.Settled:
			tone = ToneMoving
		case m.State == prop.StateOpen:
			tone = ToneOpen
		}

		near := " "
		if m.InRange {
			near = "*"
		}
		text := fmt.Sprintf("%s %-16s %-8s %5.1f°", near, m.Name, StateLabel(m.State, m.Settled), m.Angle)
		lines = append(lines, Line{Text: text, Tone: tone})
	}

	if player != nil {
		p := player.Position()
		text := fmt.Sprintf(gotext.Get("player at (%.1f, %.1f) facing %s"), p[0], p[2], dynamicGet(player.Direction.String()))
		lines = append(lines, Line{Text: text, Tone: ToneSubtle})

		if sb.ShowHint {
			if hint := sb.hint(w, player); hint != "" {
				lines = append(lines, Line{Text: hint, Tone: ToneHint})
			}
		}
	}

	if sb.ShowControls {
		lines = append(lines, Line{Text: gotext.Get("WASD move, E interact, R reset, Q quit"), Tone: ToneSubtle})
	}
	return lines
}

func (sb *StatusBar) hint(w *world.World, player *entity.Character) string {
	near := w.Near(player.ID)
	if len(near) == 0 {
		return ""
	}

	names := make([]string, 0, len(near))
	key := ""
	for _, p := range near {
		names = append(names, p.Name)
		if key == "" {
			key = p.Controller.Config().InteractKey
		}
	}
	return fmt.Sprintf(gotext.Get("Press %s to use %s"), key, strings.Join(names, ", "))
}
