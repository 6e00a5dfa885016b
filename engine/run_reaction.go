package engine

import (
	"fmt"

	"github.com/Zyko0/go-sdl3/sdl"
	"github.com/Zyko0/go-sdl3/ttf"
)

const promptFontSize = 48

// RunReaction drives the reaction time tester until quit. Same shape
// as the latency loop: drain events, advance the round, present.
func RunReaction(cfg *Config) error {
	log := newLogger("reaction")

	if err := sdl.Init(sdl.INIT_VIDEO | sdl.INIT_AUDIO | sdl.INIT_EVENTS); err != nil {
		return fmt.Errorf("SDL_Init: %w", err)
	}
	defer sdl.Quit()

	if err := ttf.Init(); err != nil {
		return fmt.Errorf("TTF_Init: %w", err)
	}
	defer ttf.Quit()

	d, err := newDisplay(cfg, "Reaction Time Tester - Press ESC to exit")
	if err != nil {
		return err
	}
	defer d.Close()

	font := openFont(cfg, float32(cfg.FontSize))
	prompt := openFont(cfg, promptFontSize)
	defer func() {
		if font != nil {
			font.Close()
		}
		if prompt != nil {
			prompt.Close()
		}
	}()

	tone, err := NewToneEngine(cfg.ToneHz, cfg.ToneMS)
	if err != nil {
		log.Warn().Err(err).Msg("audio unavailable, visual stimulus only")
		tone = nil
	} else {
		defer tone.Close()
	}

	var trig *Trigger
	if cfg.TriggerDevice != "" {
		trig, err = NewTrigger(cfg.TriggerDevice)
		if err != nil {
			log.Warn().Err(err).Str("device", cfg.TriggerDevice).Msg("trigger unavailable")
			trig = nil
		} else {
			defer trig.Close()
		}
	}

	t := NewTester(ticksMS())
	if cfg.AudioMode {
		t.ToggleModality(ticksMS())
	}

	run := true
	for run {
		drainMS := ticksMS()
		for {
			var ev sdl.Event
			if !sdl.PollEvent(&ev) {
				break
			}
			switch ev.Type {
			case sdl.EVENT_QUIT:
				run = false
			case sdl.EVENT_KEY_DOWN:
				ke := ev.KeyboardEvent()
				switch ke.Key {
				case sdl.K_ESCAPE:
					run = false
				case sdl.K_SPACE:
					t.Clear(drainMS)
					if trig != nil {
						trig.Release()
					}
				case sdl.K_F1:
					mod := t.ToggleModality(drainMS)
					if trig != nil {
						trig.Release()
					}
					log.Debug().Str("modality", mod.String()).Msg("modality switched")
				case sdl.K_F10:
					d.ToggleFullscreen()
				}
			case sdl.EVENT_MOUSE_BUTTON_DOWN:
				me := ev.MouseButtonEvent()
				if me.Button < 1 || me.Button > 3 {
					break
				}
				res := t.Press(drainMS)
				switch res.Kind {
				case PressReaction:
					if trig != nil {
						trig.Release()
					}
					log.Debug().Float64("reaction_ms", res.LatencyMS).Msg("reaction recorded")
				case PressFalseStart:
					log.Debug().Msg("false start")
				}
			}
		}

		nowMS := ticksMS()
		if t.Advance(nowMS) {
			// Onset instant: trigger line first, then the tone, so
			// external gear and the audible cue share the timestamp.
			if trig != nil {
				trig.Mark()
			}
			if t.Modality() == ModalityAudio && tone != nil {
				tone.Play()
			}
		}

		drawReactionFrame(d, font, prompt, t, tone, cfg.TextColor)
		d.renderer.Present()
	}

	if cfg.OutputFile != "" && t.Samples().Len() > 0 {
		outputName := timestampName(cfg.OutputFile)
		if err := t.Samples().Save(outputName); err != nil {
			log.Error().Err(err).Str("file", outputName).Msg("failed to save samples")
		} else {
			log.Info().Str("file", outputName).Int("samples", t.Samples().Len()).Msg("samples saved")
		}
	}
	return nil
}

func drawReactionFrame(d *display, font, prompt *ttf.Font, t *Tester, tone *ToneEngine, color sdl.Color) {
	// The background carries the visual stimulus and the false-start
	// alert; audio rounds keep it black throughout.
	switch {
	case t.State() == RoundActive && t.Modality() == ModalityVisual:
		d.clear(255, 255, 255)
	case t.State() == RoundFalseStart:
		d.clear(204, 26, 26)
	default:
		d.clear(0, 0, 0)
	}

	w := float32(d.width)
	h := float32(d.height)

	header := "VISUAL REACTION"
	if t.Modality() == ModalityAudio {
		header = "AUDIO REACTION"
	}
	drawText(d.renderer, font, header, 20, 20, color)

	s := t.Samples()
	if s.Len() > 0 {
		drawText(d.renderer, font, fmt.Sprintf("Avg: %.1f ms  Best: %.1f ms", s.Mean(), s.Best()), 20, 45, color)
	}
	y := float32(80)
	for i, v := range s.Values() {
		if y >= h-80 {
			break
		}
		drawText(d.renderer, font, fmt.Sprintf("%2d. %.1f ms", i+1, v), 20, y, color)
		y += 26
	}

	alert := sdl.Color{R: 255, G: 51, B: 51, A: 255}
	switch t.State() {
	case RoundWaiting:
		drawTextCentered(d.renderer, prompt, "Wait for it...", w, h, 0, color)
	case RoundActive:
		promptColor := color
		if t.Modality() == ModalityVisual {
			promptColor = alert
		}
		drawTextCentered(d.renderer, prompt, "CLICK!", w, h, 0, promptColor)
	case RoundFalseStart:
		drawTextCentered(d.renderer, prompt, "TOO EARLY!", w, h, -30, color)
		drawTextCentered(d.renderer, prompt, "Click to retry", w, h, 30, color)
	}

	mode := "VISUAL"
	if t.Modality() == ModalityAudio {
		mode = "AUDIO (N/A)"
		if tone != nil {
			mode = fmt.Sprintf("AUDIO ~%.1fms", tone.LatencyMS())
		}
	}
	fs := "WIN"
	if d.fullscreen {
		fs = "FSE"
	}
	drawText(d.renderer, font, fmt.Sprintf("ESC=Exit | SPACE=Clear | F1=[%s] | F10=%s", mode, fs), 20, h-40, color)
}
