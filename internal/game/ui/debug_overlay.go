package ui

import (
	"fmt"

	"github.com/leonelquinteros/gotext"
)

// DebugOverlay tracks frame timing for display.
type DebugOverlay struct {
	frameCount    int
	fps           float64
	frameTime     float64 // ms
	fpsUpdateTime float64 // seconds since last FPS update
	frameAccum    int

	Enabled bool
}

// NewDebugOverlay creates a new debug overlay.
func NewDebugOverlay() *DebugOverlay {
	return &DebugOverlay{Enabled: true}
}

// Update records one frame. dt is the frame time in seconds.
func (d *DebugOverlay) Update(dt float64) {
	d.frameCount++
	d.frameTime = dt * 1000
	d.frameAccum++
	d.fpsUpdateTime += dt

	// Update FPS every 0.5 seconds
	if d.fpsUpdateTime >= 0.5 {
		d.fps = float64(d.frameAccum) / d.fpsUpdateTime
		d.frameAccum = 0
		d.fpsUpdateTime = 0
	}
}

// FPS returns the frames per second measured over the last half second.
func (d *DebugOverlay) FPS() float64 {
	return d.fps
}

// FrameCount returns the number of frames recorded.
func (d *DebugOverlay) FrameCount() int {
	return d.frameCount
}

// Line returns the overlay text, or an empty line when disabled.
func (d *DebugOverlay) Line() Line {
	if !d.Enabled {
		return Line{}
	}
	return Line{
		Text: fmt.Sprintf(gotext.Get("%.0f fps (%.2f ms)"), d.fps, d.frameTime),
		Tone: ToneSubtle,
	}
}
