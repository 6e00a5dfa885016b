package engine

import (
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/Zyko0/go-sdl3/sdl"
	"github.com/Zyko0/go-sdl3/ttf"
)

func DefaultFontPath() string {
	// Check local fonts directory
	entries, err := os.ReadDir("fonts")
	if err == nil {
		for _, entry := range entries {
			if !entry.IsDir() {
				ext := strings.ToLower(filepath.Ext(entry.Name()))
				if ext == ".ttf" || ext == ".ttc" {
					return filepath.Join("fonts", entry.Name())
				}
			}
		}
	}

	// System paths
	var paths []string
	switch runtime.GOOS {
	case "windows":
		paths = []string{"C:\\Windows\\Fonts\\arial.ttf"}
	case "darwin":
		paths = []string{"/System/Library/Fonts/Helvetica.ttc"}
	default:
		paths = []string{
			"/usr/share/fonts/truetype/liberation/LiberationSans-Regular.ttf",
			"/usr/share/fonts/truetype/dejavu/DejaVuSans.ttf",
		}
	}

	for _, p := range paths {
		if _, err := os.Stat(p); err == nil {
			return p
		}
	}

	return ""
}

// openFont loads the configured font at the given size, falling back
// to font discovery. A missing font is survivable: text drawing just
// skips, the flash and the measurements are unaffected.
func openFont(cfg *Config, size float32) *ttf.Font {
	path := cfg.FontFile
	if path == "" {
		path = DefaultFontPath()
	}
	if path == "" {
		return nil
	}
	font, err := ttf.OpenFont(path, size)
	if err != nil {
		log := newLogger("text")
		log.Warn().Err(err).Str("font", path).Msg("failed to load font")
		return nil
	}
	return font
}

// Text is rendered surface-to-texture per call. Only the full
// presentation path draws text, so the churn never touches the
// minimal path.

func drawText(renderer *sdl.Renderer, font *ttf.Font, s string, x, y float32, color sdl.Color) {
	if font == nil || s == "" {
		return
	}
	surf, err := font.RenderTextBlended(s, color)
	if err == nil && surf != nil {
		tex, err := renderer.CreateTextureFromSurface(surf)
		if err == nil {
			r := sdl.FRect{X: x, Y: y, W: float32(surf.W), H: float32(surf.H)}
			renderer.RenderTexture(tex, nil, &r)
			tex.Destroy()
		}
		surf.Destroy()
	}
}

// drawTextRight aligns s so its right edge lands on x.
func drawTextRight(renderer *sdl.Renderer, font *ttf.Font, s string, x, y float32, color sdl.Color) {
	if font == nil || s == "" {
		return
	}
	surf, err := font.RenderTextBlended(s, color)
	if err == nil && surf != nil {
		tex, err := renderer.CreateTextureFromSurface(surf)
		if err == nil {
			r := sdl.FRect{X: x - float32(surf.W), Y: y, W: float32(surf.W), H: float32(surf.H)}
			renderer.RenderTexture(tex, nil, &r)
			tex.Destroy()
		}
		surf.Destroy()
	}
}

// drawTextCentered centers s in a w by h area, shifted by dy for
// stacking lines around the midpoint.
func drawTextCentered(renderer *sdl.Renderer, font *ttf.Font, s string, w, h, dy float32, color sdl.Color) {
	if font == nil || s == "" {
		return
	}
	surf, err := font.RenderTextBlended(s, color)
	if err == nil && surf != nil {
		tex, err := renderer.CreateTextureFromSurface(surf)
		if err == nil {
			r := sdl.FRect{
				X: (w - float32(surf.W)) / 2,
				Y: (h-float32(surf.H))/2 + dy,
				W: float32(surf.W),
				H: float32(surf.H),
			}
			renderer.RenderTexture(tex, nil, &r)
			tex.Destroy()
		}
		surf.Destroy()
	}
}
