package engine

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"unsafe"

	"github.com/Zyko0/go-sdl3/sdl"
	"github.com/rs/zerolog"
)

const (
	toneSampleRate = 48000
	toneChannels   = 2

	// Device buffer sizes in sample frames. The small one is tried
	// first for the lowest output latency the backend will grant; the
	// larger one is the compatibility fallback.
	toneLowLatencyFrames = 128
	toneFallbackFrames   = 512

	toneAmpFloat = 0.5
	toneAmpInt16 = 16000
)

// ToneEngine synthesizes and emits the stimulus beep through a
// push-model SDL audio stream. Emission happens synchronously on the
// control loop: clear whatever is queued, push the pulse, done.
type ToneEngine struct {
	stream    *sdl.AudioStream
	spec      sdl.AudioSpec
	freqHz    float64
	durMS     float64
	buf       []byte
	latencyMS float64
	log       zerolog.Logger
}

// NewToneEngine negotiates the lowest-latency playback stream the
// backend will grant: a small float buffer first, then a conservative
// int16 one. A request that cannot fill at least one sample frame is
// rejected before any device work. Failure is not fatal to the
// caller; the tester keeps running without audio.
func NewToneEngine(freqHz, durMS float64) (*ToneEngine, error) {
	if freqHz <= 0 || toneFrames(durMS) < 1 {
		return nil, fmt.Errorf("unplayable tone request: %gHz, %gms", freqHz, durMS)
	}
	e := &ToneEngine{freqHz: freqHz, durMS: durMS, log: newLogger("tone")}

	// Push model: the callback never feeds data, Play pushes at onset.
	cb := sdl.NewAudioStreamCallback(func(stream *sdl.AudioStream, additionalAmount, totalAmount int32) {})

	sdl.SetHint(sdl.HINT_AUDIO_DEVICE_SAMPLE_FRAMES, strconv.Itoa(toneLowLatencyFrames))
	e.spec = sdl.AudioSpec{Format: sdl.AUDIO_F32, Channels: toneChannels, Freq: toneSampleRate}
	e.stream = sdl.AUDIO_DEVICE_DEFAULT_PLAYBACK.OpenAudioDeviceStream(&e.spec, cb)
	frames := toneLowLatencyFrames
	if e.stream == nil {
		sdl.SetHint(sdl.HINT_AUDIO_DEVICE_SAMPLE_FRAMES, strconv.Itoa(toneFallbackFrames))
		e.spec = sdl.AudioSpec{Format: sdl.AUDIO_S16, Channels: toneChannels, Freq: toneSampleRate}
		e.stream = sdl.AUDIO_DEVICE_DEFAULT_PLAYBACK.OpenAudioDeviceStream(&e.spec, cb)
		frames = toneFallbackFrames
		if e.stream == nil {
			return nil, errors.New("no playback stream available")
		}
		e.log.Info().Msg("low-latency stream refused, using fallback format")
	}
	e.latencyMS = frameLatencyMS(frames)
	e.buf = make([]byte, toneFrames(durMS)*toneChannels*4)
	e.stream.ResumeDevice()
	e.log.Debug().Float64("latency_ms", e.latencyMS).Msg("playback stream ready")
	return e, nil
}

// Play drops anything still in flight and pushes one fresh pulse.
// Called at the instant stimulus onset is decided; it never blocks.
func (e *ToneEngine) Play() {
	e.stream.Clear()
	n := synthTone(e.buf, e.spec.Format, toneChannels, toneSampleRate, e.freqHz, toneFrames(e.durMS))
	if n == 0 {
		e.log.Debug().Msg("unsupported sample format, pulse skipped")
		return
	}
	e.stream.PutData(e.buf[:n])
}

// LatencyMS estimates output latency from the negotiated device
// buffer size.
func (e *ToneEngine) LatencyMS() float64 {
	return e.latencyMS
}

func (e *ToneEngine) Close() {
	e.stream.Destroy()
}

func toneFrames(durMS float64) int {
	return int(toneSampleRate * durMS / 1000.0)
}

// frameLatencyMS is the output latency implied by a device buffer of
// the given frame count.
func frameLatencyMS(frames int) float64 {
	return float64(frames) / toneSampleRate * 1000.0
}

// synthTone writes an interleaved sine pulse into dst and returns the
// number of bytes written, 0 for an unsupported format or an empty
// pulse. dst must hold frames*channels samples of the given format.
func synthTone(dst []byte, format sdl.AudioFormat, channels, sampleRate int, freqHz float64, frames int) int {
	if frames < 1 {
		return 0
	}
	phaseInc := 2 * math.Pi * freqHz / float64(sampleRate)
	phase := 0.0
	switch format {
	case sdl.AUDIO_F32:
		out := unsafe.Slice((*float32)(unsafe.Pointer(&dst[0])), frames*channels)
		for i := 0; i < frames; i++ {
			v := float32(math.Sin(phase)) * toneAmpFloat
			for c := 0; c < channels; c++ {
				out[i*channels+c] = v
			}
			phase += phaseInc
		}
		return frames * channels * 4
	case sdl.AUDIO_S16:
		out := unsafe.Slice((*int16)(unsafe.Pointer(&dst[0])), frames*channels)
		for i := 0; i < frames; i++ {
			v := int16(math.Sin(phase) * toneAmpInt16)
			for c := 0; c < channels; c++ {
				out[i*channels+c] = v
			}
			phase += phaseInc
		}
		return frames * channels * 2
	}
	return 0
}
