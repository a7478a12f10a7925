// Package window handles the SDL2 window and 2D renderer of the windowed
// front end.
package window

import (
	"fmt"
	"runtime"

	"github.com/veandco/go-sdl2/sdl"
	"go.uber.org/zap"

	"github.com/Faultbox/midgard-props/internal/logger"
)

func init() {
	// SDL video calls must be made from the main thread
	runtime.LockOSThread()
}

// Config holds window configuration.
type Config struct {
	Title      string
	Width      int
	Height     int
	Fullscreen bool
	VSync      bool
}

// Color is an RGBA draw color.
type Color struct {
	R, G, B, A uint8
}

// Window wraps an SDL2 window and its renderer.
type Window struct {
	config    Config
	sdlWindow *sdl.Window
	renderer  *sdl.Renderer
	log       *zap.Logger
}

// New creates a new window with an accelerated 2D renderer.
func New(cfg Config) (*Window, error) {
	w := &Window{
		config: cfg,
		log:    logger.For("window"),
	}

	w.log.Info("initializing SDL2")
	if err := sdl.Init(sdl.INIT_VIDEO | sdl.INIT_EVENTS); err != nil {
		return nil, fmt.Errorf("SDL_Init failed: %w", err)
	}

	flags := uint32(sdl.WINDOW_SHOWN | sdl.WINDOW_RESIZABLE)
	if cfg.Fullscreen {
		flags |= sdl.WINDOW_FULLSCREEN
	}

	var err error
	w.sdlWindow, err = sdl.CreateWindow(
		cfg.Title,
		sdl.WINDOWPOS_CENTERED,
		sdl.WINDOWPOS_CENTERED,
		int32(cfg.Width),
		int32(cfg.Height),
		flags,
	)
	if err != nil {
		sdl.Quit()
		return nil, fmt.Errorf("SDL_CreateWindow failed: %w", err)
	}

	rendererFlags := uint32(sdl.RENDERER_ACCELERATED)
	if cfg.VSync {
		rendererFlags |= sdl.RENDERER_PRESENTVSYNC
	}
	w.renderer, err = sdl.CreateRenderer(w.sdlWindow, -1, rendererFlags)
	if err != nil {
		w.sdlWindow.Destroy()
		sdl.Quit()
		return nil, fmt.Errorf("SDL_CreateRenderer failed: %w", err)
	}

	w.log.Info("window created",
		zap.String("title", cfg.Title),
		zap.Int("width", cfg.Width),
		zap.Int("height", cfg.Height),
		zap.Bool("fullscreen", cfg.Fullscreen),
		zap.Bool("vsync", cfg.VSync),
	)

	return w, nil
}

// Close destroys the window and cleans up SDL2.
func (w *Window) Close() {
	w.log.Info("closing window")

	if w.renderer != nil {
		w.renderer.Destroy()
	}
	if w.sdlWindow != nil {
		w.sdlWindow.Destroy()
	}

	sdl.Quit()
}

// Clear fills the back buffer with c.
func (w *Window) Clear(c Color) {
	w.setColor(c)
	w.renderer.Clear()
}

// Line draws a line between two pixel positions.
func (w *Window) Line(x1, y1, x2, y2 int32, c Color) {
	w.setColor(c)
	w.renderer.DrawLine(x1, y1, x2, y2)
}

// Rect draws the outline of a rectangle.
func (w *Window) Rect(x, y, width, height int32, c Color) {
	w.setColor(c)
	w.renderer.DrawRect(&sdl.Rect{X: x, Y: y, W: width, H: height})
}

// FillRect draws a filled rectangle.
func (w *Window) FillRect(x, y, width, height int32, c Color) {
	w.setColor(c)
	w.renderer.FillRect(&sdl.Rect{X: x, Y: y, W: width, H: height})
}

// Present shows the back buffer.
func (w *Window) Present() {
	w.renderer.Present()
}

// GetSize returns the current window size.
func (w *Window) GetSize() (int, int) {
	width, height := w.sdlWindow.GetSize()
	return int(width), int(height)
}

// SetTitle sets the window title.
func (w *Window) SetTitle(title string) {
	w.sdlWindow.SetTitle(title)
}

func (w *Window) setColor(c Color) {
	w.renderer.SetDrawColor(c.R, c.G, c.B, c.A)
}
