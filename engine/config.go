package engine

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/Zyko0/go-sdl3/sdl"
)

// Config carries the options fixed at startup. Runtime toggles are
// deliberately absent: they reset to the same defaults every run so
// two sessions are always comparable.
type Config struct {
	ScreenWidth  int
	ScreenHeight int
	Fullscreen   bool
	VSync        bool

	FontFile string
	FontSize int

	TriggerDevice string
	OutputFile    string

	TextColor sdl.Color

	// Reaction tester only.
	AudioMode bool
	ToneHz    float64
	ToneMS    float64
}

func ParseColor(s string) sdl.Color {
	var r, g, b, a uint8
	n, _ := fmt.Sscanf(s, "%d,%d,%d,%d", &r, &g, &b, &a)
	if n < 4 {
		a = 255
	}
	return sdl.Color{R: r, G: g, B: b, A: a}
}

func DefaultConfig() *Config {
	return &Config{
		ScreenWidth:  windowedWidth,
		ScreenHeight: windowedHeight,
		Fullscreen:   true,
		FontSize:     24,
		TextColor:    sdl.Color{R: 0, G: 255, B: 0, A: 255},
		ToneHz:       800,
		ToneMS:       80,
	}
}

// timestampName suffixes the file stem with the current time so
// repeated sessions never overwrite each other.
func timestampName(path string) string {
	ts := time.Now().Format("20060102-150405")
	ext := filepath.Ext(path)
	return strings.TrimSuffix(path, ext) + "_" + ts + ext
}
