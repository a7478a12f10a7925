// Package tui draws a prop scene in a raw-mode terminal: a small top-down
// map and a colored status panel, redrawn a few times per second.
package tui

import (
	"context"
	"io"
	"strings"
	"time"

	"github.com/gookit/color"
	"go.uber.org/zap"

	"github.com/Faultbox/midgard-props/internal/engine/terminal"
	"github.com/Faultbox/midgard-props/internal/game"
	"github.com/Faultbox/midgard-props/internal/game/ui"
	"github.com/Faultbox/midgard-props/internal/logger"
	"github.com/Faultbox/midgard-props/internal/prop"
)

// Map viewport, in characters
const (
	MapCols = 48
	MapRows = 16
	// characters per world unit horizontally; rows are twice as tall
	MapScale = 2

	// RedrawHz caps how often the screen is repainted.
	RedrawHz = 15
)

// tonePlayer marks the player's cell.
const tonePlayer ui.Tone = -1

type cell struct {
	ch   rune
	tone ui.Tone
}

// TUIRenderer runs a session against a terminal keyboard.
type TUIRenderer struct {
	session  *game.Session
	keyboard *terminal.Keyboard
	out      io.Writer
	tps      int
	minimap  *ui.Minimap
	log      *zap.Logger

	// Plain disables ANSI colors and cursor control.
	Plain bool

	colorNormal color.Style
	colorSubtle color.Style
	colorOpen   color.Style
	colorMoving color.Style
	colorHint   color.Style
	colorPlayer color.Style
	colorTitle  color.Style
}

// New creates a TUI renderer stepping session tps times per second.
func New(session *game.Session, keyboard *terminal.Keyboard, out io.Writer, tps int) *TUIRenderer {
	if tps <= 0 {
		tps = 60
	}
	t := &TUIRenderer{
		session:  session,
		keyboard: keyboard,
		out:      out,
		tps:      tps,
		minimap:  ui.NewMinimap(MapCols, MapRows*2, MapScale),
		log:      logger.For("tui"),
	}
	t.Init()
	return t
}

// Init sets up the color styles.
func (t *TUIRenderer) Init() {
	t.colorNormal = color.Style{color.FgWhite}
	t.colorSubtle = color.Style{color.FgGray}
	t.colorOpen = color.Style{color.FgGreen, color.OpBold}
	t.colorMoving = color.Style{color.FgYellow}
	t.colorHint = color.Style{color.FgMagenta, color.OpBold}
	t.colorPlayer = color.Style{color.FgCyan, color.OpBold}
	t.colorTitle = color.Style{color.FgBlue, color.OpBold}
}

// Run steps the session at a fixed rate until the user quits, stdin closes
// or ctx is cancelled.
func (t *TUIRenderer) Run(ctx context.Context) error {
	ticker := time.NewTicker(time.Second / time.Duration(t.tps))
	defer ticker.Stop()

	dt := 1.0 / float64(t.tps)
	redrawEvery := t.tps / RedrawHz
	if redrawEvery < 1 {
		redrawEvery = 1
	}

	t.log.Info("tui started", zap.Int("tps", t.tps))
	for frame := 0; ; frame++ {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
		}

		t.keyboard.Poll()
		if t.keyboard.Closed() || t.keyboard.WasPressedThisFrame("CTRL+C") {
			return nil
		}
		if t.session.Frame(dt, t.keyboard.IsHeld) {
			return nil
		}
		if frame%redrawEvery == 0 {
			if _, err := io.WriteString(t.out, t.Frame()); err != nil {
				return err
			}
		}
	}
}

// Frame renders the whole screen.
func (t *TUIRenderer) Frame() string {
	markers, lines := t.session.View()

	var b strings.Builder
	if !t.Plain {
		b.WriteString("\033[H\033[2J")
	}
	b.WriteString(t.style(t.colorTitle, "Midgard Props"))
	b.WriteString("\r\n\r\n")

	for _, row := range t.grid(markers) {
		for _, c := range row {
			b.WriteString(t.styleCell(c))
		}
		b.WriteString("\r\n")
	}
	b.WriteString("\r\n")

	for _, l := range lines {
		b.WriteString(t.styleLine(l))
		b.WriteString("\r\n")
	}
	if d := t.session.Debug.Line(); d.Text != "" {
		b.WriteString(t.styleLine(d))
		b.WriteString("\r\n")
	}
	return b.String()
}

// grid rasterizes the top-down view. Each panel is sampled along its edge;
// the player is drawn last so it is never hidden.
func (t *TUIRenderer) grid(markers []ui.PropMarker) [][]cell {
	t.minimap.Center = t.session.Player.Position()

	rows := make([][]cell, MapRows)
	for y := range rows {
		rows[y] = make([]cell, MapCols)
		for x := range rows[y] {
			rows[y][x] = cell{ch: '.', tone: ui.ToneSubtle}
		}
	}
	plot := func(p ui.Point, ch rune, tone ui.Tone) {
		x, y := int(p.X), int(p.Y/2)
		if x >= 0 && x < MapCols && y >= 0 && y < MapRows {
			rows[y][x] = cell{ch: ch, tone: tone}
		}
	}

	for _, m := range markers {
		tone := ui.ToneNormal
		ch := '#'
		switch {
		case !m.Settled:
			tone, ch = ui.ToneMoving, '~'
		case m.State == prop.StateOpen:
			tone, ch = ui.ToneOpen, '/'
		}
		if m.InRange {
			plot(m.Trigger, '+', ui.ToneHint)
		}

		const samples = 4
		for i := 0; i <= samples; i++ {
			f := float32(i) / samples
			plot(ui.Point{
				X: m.EdgeA.X + (m.EdgeB.X-m.EdgeA.X)*f,
				Y: m.EdgeA.Y + (m.EdgeB.Y-m.EdgeA.Y)*f,
			}, ch, tone)
		}
		plot(m.Tick, '\'', tone)
	}

	plot(t.minimap.Player(t.session.Player).Position, '@', tonePlayer)
	return rows
}

func (t *TUIRenderer) styleCell(c cell) string {
	if c.tone == tonePlayer {
		return t.style(t.colorPlayer, string(c.ch))
	}
	return t.styleLine(ui.Line{Text: string(c.ch), Tone: c.tone})
}

func (t *TUIRenderer) styleLine(l ui.Line) string {
	switch l.Tone {
	case ui.ToneSubtle:
		return t.style(t.colorSubtle, l.Text)
	case ui.ToneOpen:
		return t.style(t.colorOpen, l.Text)
	case ui.ToneMoving:
		return t.style(t.colorMoving, l.Text)
	case ui.ToneHint:
		return t.style(t.colorHint, l.Text)
	default:
		return t.style(t.colorNormal, l.Text)
	}
}

func (t *TUIRenderer) style(s color.Style, text string) string {
	if t.Plain {
		return text
	}
	return s.Sprint(text)
}
