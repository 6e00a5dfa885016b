package engine

import (
	"math"
	"testing"
	"unsafe"

	"github.com/Zyko0/go-sdl3/sdl"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestToneFrames(t *testing.T) {
	assert.Equal(t, 3840, toneFrames(80))
	assert.Equal(t, 48, toneFrames(1))
}

func TestSynthToneFloat(t *testing.T) {
	frames := 480
	buf := make([]byte, frames*toneChannels*4)
	n := synthTone(buf, sdl.AUDIO_F32, toneChannels, 48000, 800, frames)
	require.Equal(t, frames*toneChannels*4, n)

	out := unsafe.Slice((*float32)(unsafe.Pointer(&buf[0])), frames*toneChannels)
	assert.Zero(t, out[0], "sine starts at the zero crossing")
	for i := 0; i < frames; i++ {
		l, r := out[i*2], out[i*2+1]
		if l != r {
			t.Fatalf("frame %d: channels differ: %v vs %v", i, l, r)
		}
		if math.Abs(float64(l)) > toneAmpFloat {
			t.Fatalf("frame %d: sample %v exceeds amplitude", i, l)
		}
	}

	// Quarter period of 800Hz at 48kHz is 15 frames.
	assert.InDelta(t, toneAmpFloat, float64(out[15*2]), 0.01)
	assert.InDelta(t, -toneAmpFloat, float64(out[45*2]), 0.01)
}

func TestSynthToneInt16(t *testing.T) {
	frames := 96
	buf := make([]byte, frames*toneChannels*2)
	n := synthTone(buf, sdl.AUDIO_S16, toneChannels, 48000, 800, frames)
	require.Equal(t, frames*toneChannels*2, n)

	out := unsafe.Slice((*int16)(unsafe.Pointer(&buf[0])), frames*toneChannels)
	assert.Zero(t, out[0])
	for i, v := range out {
		if v > toneAmpInt16 || v < -toneAmpInt16 {
			t.Fatalf("sample %d: %d exceeds amplitude", i, v)
		}
	}
	assert.InDelta(t, toneAmpInt16, float64(out[15*2]), 2)
	assert.InDelta(t, -toneAmpInt16, float64(out[45*2]), 2)
}

func TestSynthToneUnknownFormat(t *testing.T) {
	buf := make([]byte, 64)
	assert.Zero(t, synthTone(buf, 0, toneChannels, 48000, 800, 4))
}

func TestSynthToneEmptyPulse(t *testing.T) {
	assert.Zero(t, synthTone(nil, sdl.AUDIO_F32, toneChannels, 48000, 800, 0))
	assert.Zero(t, synthTone(nil, sdl.AUDIO_S16, toneChannels, 48000, 800, -3))
}

func TestNewToneEngineRejectsUnplayableRequests(t *testing.T) {
	tests := []struct {
		name   string
		freqHz float64
		durMS  float64
	}{
		{"zero duration", 800, 0},
		{"negative duration", 800, -5},
		{"sub-frame duration", 800, 0.001},
		{"zero frequency", 0, 80},
		{"negative frequency", -440, 80},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewToneEngine(tt.freqHz, tt.durMS)
			assert.Error(t, err)
		})
	}
}

func TestFrameLatencyEstimate(t *testing.T) {
	assert.InDelta(t, 2.667, frameLatencyMS(toneLowLatencyFrames), 0.001)
	assert.InDelta(t, 10.667, frameLatencyMS(toneFallbackFrames), 0.001)
}
