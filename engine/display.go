package engine

import (
	"fmt"

	"github.com/Zyko0/go-sdl3/sdl"
)

const (
	windowedWidth  = 1280
	windowedHeight = 720
)

// display owns the window and renderer plus the current mode and
// size. The control loops only ever read width, height and the mode
// flag.
type display struct {
	window     *sdl.Window
	renderer   *sdl.Renderer
	width      int
	height     int
	fullscreen bool
}

func newDisplay(cfg *Config, title string) (*display, error) {
	windowFlags := sdl.WINDOW_RESIZABLE
	if cfg.Fullscreen {
		windowFlags |= sdl.WINDOW_FULLSCREEN
	}

	window, renderer, err := sdl.CreateWindowAndRenderer(title, cfg.ScreenWidth, cfg.ScreenHeight, windowFlags)
	if err != nil {
		return nil, fmt.Errorf("CreateWindowAndRenderer: %w", err)
	}

	if cfg.VSync {
		renderer.SetVSync(1)
	} else {
		renderer.SetVSync(0)
	}

	d := &display{
		window:     window,
		renderer:   renderer,
		width:      cfg.ScreenWidth,
		height:     cfg.ScreenHeight,
		fullscreen: cfg.Fullscreen,
	}
	if cfg.Fullscreen {
		d.readDisplaySize()
	}
	return d, nil
}

func (d *display) readDisplaySize() {
	disp := sdl.GetDisplayForWindow(d.window)
	if mode, err := disp.CurrentDisplayMode(); err == nil && mode.W > 0 && mode.H > 0 {
		d.width, d.height = int(mode.W), int(mode.H)
	}
}

// ToggleFullscreen flips the mode. Windowed mode always comes back at
// the stock size so overlay layout stays predictable.
func (d *display) ToggleFullscreen() {
	d.fullscreen = !d.fullscreen
	d.window.SetFullscreen(d.fullscreen)
	if d.fullscreen {
		d.readDisplaySize()
	} else {
		d.window.SetSize(windowedWidth, windowedHeight)
		d.width, d.height = windowedWidth, windowedHeight
	}
}

func (d *display) clear(r, g, b uint8) {
	d.renderer.SetDrawColor(r, g, b, 255)
	d.renderer.Clear()
}

func (d *display) Close() {
	d.renderer.Destroy()
	d.window.Destroy()
}

// ticksMS is the shared monotonic clock, in milliseconds.
func ticksMS() float64 {
	return float64(sdl.TicksNS()) / 1e6
}

// eventMS converts a queue timestamp to the same clock. Event stamps
// are taken at delivery, before the drain ever sees them.
func eventMS(ts uint64) float64 {
	return float64(ts) / 1e6
}
