package engine

import (
	"fmt"

	"github.com/Zyko0/go-sdl3/sdl"
	"github.com/Zyko0/go-sdl3/ttf"
)

// RunLatency drives the input-to-display latency tester until quit.
// Everything runs on the calling thread: drain the event queue, apply
// state, present one frame, repeat.
func RunLatency(cfg *Config) error {
	log := newLogger("latency")

	if err := sdl.Init(sdl.INIT_VIDEO | sdl.INIT_EVENTS); err != nil {
		return fmt.Errorf("SDL_Init: %w", err)
	}
	defer sdl.Quit()

	if err := ttf.Init(); err != nil {
		return fmt.Errorf("TTF_Init: %w", err)
	}
	defer ttf.Quit()

	d, err := newDisplay(cfg, "Latency Tester - Press ESC to exit")
	if err != nil {
		return err
	}
	defer d.Close()

	font := openFont(cfg, float32(cfg.FontSize))
	defer func() {
		if font != nil {
			font.Close()
		}
	}()

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

	st := NewLatencyState()
	run := true

	for run {
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
				case sdl.K_F10:
					d.ToggleFullscreen()
				default:
					if cmd := latencyCommand(ke.Key); cmd != CmdNone {
						st.Apply(cmd)
					}
				}
				// Command keys count as input like any other key.
				feed(st, trig, InputEvent{
					Device:     DeviceKeyboard,
					Action:     ActionKeyDown,
					KeyName:    ke.Key.KeyName(),
					KeyCode:    uint32(ke.Key),
					ScanCode:   uint32(ke.Scancode),
					DeviceName: deviceName(uint64(ke.Which)),
					TimeMS:     eventMS(uint64(ke.Timestamp)),
				})
			case sdl.EVENT_KEY_UP:
				ke := ev.KeyboardEvent()
				feed(st, trig, InputEvent{
					Device:     DeviceKeyboard,
					Action:     ActionKeyUp,
					KeyName:    ke.Key.KeyName(),
					KeyCode:    uint32(ke.Key),
					ScanCode:   uint32(ke.Scancode),
					DeviceName: deviceName(uint64(ke.Which)),
					TimeMS:     eventMS(uint64(ke.Timestamp)),
				})
			case sdl.EVENT_MOUSE_BUTTON_DOWN, sdl.EVENT_MOUSE_BUTTON_UP:
				me := ev.MouseButtonEvent()
				action := ActionButtonDown
				if ev.Type == sdl.EVENT_MOUSE_BUTTON_UP {
					action = ActionButtonUp
				}
				feed(st, trig, InputEvent{
					Device:     DeviceMouse,
					Action:     action,
					Button:     uint8(me.Button),
					DeviceName: deviceName(uint64(me.Which)),
					TimeMS:     eventMS(uint64(me.Timestamp)),
				})
			case sdl.EVENT_MOUSE_WHEEL:
				we := ev.MouseWheelEvent()
				feed(st, trig, InputEvent{
					Device:     DeviceMouse,
					Action:     ActionWheel,
					WheelY:     float32(we.Y),
					DeviceName: deviceName(uint64(we.Which)),
					TimeMS:     eventMS(uint64(we.Timestamp)),
				})
			case sdl.EVENT_MOUSE_MOTION:
				me := ev.MouseMotionEvent()
				if mv, ok := motionInput(float32(me.Xrel), float32(me.Yrel), uint64(me.Which), uint64(me.Timestamp)); ok {
					feed(st, trig, mv)
				}
			}
		}

		nowMS := ticksMS()
		if st.Flash.Update(nowMS) && trig != nil {
			trig.Release()
		}

		if !st.Toggles.Overlay {
			// Minimal path: background, present, nothing else.
			if st.Flash.Active {
				d.clear(255, 255, 255)
			} else {
				d.clear(0, 0, 0)
			}
			d.renderer.Present()
			continue
		}

		st.TickOverlay(nowMS)
		if st.Flash.Active {
			d.clear(255, 255, 255)
		} else {
			d.clear(0, 0, 0)
		}
		drawLatencyOverlay(d, font, st, cfg.TextColor)
		d.renderer.Present()
	}

	if cfg.OutputFile != "" && st.Log.Len() > 0 {
		outputName := timestampName(cfg.OutputFile)
		if err := st.Log.Save(outputName); err != nil {
			log.Error().Err(err).Str("file", outputName).Msg("failed to save event log")
		} else {
			log.Info().Str("file", outputName).Int("entries", st.Log.Len()).Msg("event log saved")
		}
	}
	return nil
}

// feed stamps one normalized event into the context, pulsing the
// trigger line when it starts a fresh flash.
func feed(st *LatencyState, trig *Trigger, ev InputEvent) {
	wasActive := st.Flash.Active
	if st.HandleEvent(ev) && trig != nil && !wasActive {
		trig.Mark()
	}
}

func latencyCommand(key sdl.Keycode) Command {
	switch key {
	case sdl.K_F1:
		return CmdToggleMouseButtons
	case sdl.K_F2:
		return CmdToggleKeyboard
	case sdl.K_F3:
		return CmdToggleMouseDelta
	case sdl.K_F4:
		return CmdToggleLog
	case sdl.K_F5:
		return CmdFlashLonger
	case sdl.K_F6:
		return CmdFlashShorter
	case sdl.K_F7:
		return CmdToggleUpEvents
	case sdl.K_F8:
		return CmdToggleMouseHz
	case sdl.K_F9:
		return CmdToggleOverlay
	}
	return CmdNone
}

func drawLatencyOverlay(d *display, font *ttf.Font, st *LatencyState, color sdl.Color) {
	w := float32(d.width)
	h := float32(d.height)

	drawText(d.renderer, font, st.LastInput, 20, 20, color)
	drawText(d.renderer, font, st.LastDevice, 20, 50, color)

	drawTextRight(d.renderer, font, fmt.Sprintf("%.1f FPS", st.Frames.SmoothFPS), w-20, 20, color)
	drawTextRight(d.renderer, font, fmt.Sprintf("%.2f ms", st.Frames.SmoothTimeMS), w-20, 50, color)
	if st.Toggles.MouseHz {
		drawTextRight(d.renderer, font, fmt.Sprintf("%d Hz", st.MouseHz), w-20, 80, color)
	}

	if st.Toggles.Log {
		y := float32(100)
		for _, e := range st.Log.Entries() {
			if y >= h-80 {
				break
			}
			drawText(d.renderer, font, e.Format(), 20, y, color)
			y += 26
		}
	}

	drawText(d.renderer, font, st.StatusLine(d.fullscreen), 20, h-50, color)
}
