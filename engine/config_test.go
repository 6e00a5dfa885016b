package engine

import (
	"strings"
	"testing"

	"github.com/Zyko0/go-sdl3/sdl"
	"github.com/stretchr/testify/assert"
)

func TestParseColor(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want sdl.Color
	}{
		{"full rgba", "0,255,0,255", sdl.Color{R: 0, G: 255, B: 0, A: 255}},
		{"alert red", "204,26,26,200", sdl.Color{R: 204, G: 26, B: 26, A: 200}},
		{"rgb defaults alpha", "255,255,255", sdl.Color{R: 255, G: 255, B: 255, A: 255}},
		{"empty", "", sdl.Color{A: 255}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseColor(tt.in))
		})
	}
}

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	assert.True(t, cfg.Fullscreen)
	assert.False(t, cfg.VSync)
	assert.False(t, cfg.AudioMode)
	assert.Equal(t, 800.0, cfg.ToneHz)
	assert.Equal(t, 80.0, cfg.ToneMS)
	assert.Equal(t, sdl.Color{G: 255, A: 255}, cfg.TextColor)
}

func TestTimestampName(t *testing.T) {
	got := timestampName("results.csv")
	assert.True(t, strings.HasPrefix(got, "results_"))
	assert.True(t, strings.HasSuffix(got, ".csv"))
	assert.Len(t, got, len("results_20060102-150405.csv"))

	got = timestampName("log")
	assert.True(t, strings.HasPrefix(got, "log_"))
	assert.NotContains(t, got, ".")
}
