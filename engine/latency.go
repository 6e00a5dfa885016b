package engine

import "fmt"

const (
	defaultFlashMS = 50.0
	flashStepMS    = 10.0
	flashFloorMS   = 10.0
	rateWindowMS   = 1000.0
	emaSmoothing   = 0.9
)

// Toggles is the latency tester's runtime filter configuration. All
// fields flip through function keys only and start from the same
// defaults every run.
type Toggles struct {
	MouseButtons bool
	Keyboard     bool
	MouseDelta   bool
	Log          bool
	UpEvents     bool
	MouseHz      bool
	Overlay      bool
}

func DefaultToggles() Toggles {
	return Toggles{
		MouseButtons: true,
		Keyboard:     true,
		MouseDelta:   true,
		UpEvents:     true,
		Overlay:      true,
	}
}

// FlashState tracks the full-screen flash fired by each displayed
// event. Retriggering while active restarts the window.
type FlashState struct {
	Active     bool
	StartMS    float64
	DurationMS float64
}

func (f *FlashState) Trigger(nowMS float64) {
	f.Active = true
	f.StartMS = nowMS
}

// Update expires the flash once its duration has elapsed, reporting
// true on the frame it turns off.
func (f *FlashState) Update(nowMS float64) bool {
	if f.Active && nowMS-f.StartMS >= f.DurationMS {
		f.Active = false
		return true
	}
	return false
}

func (f *FlashState) Lengthen() {
	f.DurationMS += flashStepMS
}

func (f *FlashState) Shorten() {
	if f.DurationMS > flashFloorMS {
		f.DurationMS -= flashStepMS
	} else {
		f.DurationMS = flashFloorMS
	}
}

// FrameStats smooths frame timing for display with an exponential
// moving average, so the overlay numbers stay readable at high
// present rates.
type FrameStats struct {
	lastMS       float64
	FrameTimeMS  float64
	FPS          float64
	SmoothTimeMS float64
	SmoothFPS    float64
}

func (s *FrameStats) Tick(nowMS float64) {
	if s.lastMS != 0 {
		s.FrameTimeMS = nowMS - s.lastMS
	}
	s.lastMS = nowMS
	if s.FrameTimeMS > 0 {
		s.FPS = 1000.0 / s.FrameTimeMS
	}
	s.SmoothTimeMS = s.SmoothTimeMS*emaSmoothing + s.FrameTimeMS*(1-emaSmoothing)
	s.SmoothFPS = s.SmoothFPS*emaSmoothing + s.FPS*(1-emaSmoothing)
}

// Command is a runtime toggle or adjustment issued from the keyboard.
type Command int

const (
	CmdNone Command = iota
	CmdToggleMouseButtons
	CmdToggleKeyboard
	CmdToggleMouseDelta
	CmdToggleLog
	CmdFlashLonger
	CmdFlashShorter
	CmdToggleUpEvents
	CmdToggleMouseHz
	CmdToggleOverlay
)

// LatencyState is the single mutable context for the latency tester.
// It owns the toggles, the flash, the rate window, the log and the
// display strings; the control loop is its only writer.
type LatencyState struct {
	Toggles Toggles
	Flash   FlashState
	Frames  FrameStats
	Rate    *RateWindow
	Log     EventLog

	LastInput  string
	LastDevice string
	MouseHz    int
}

func NewLatencyState() *LatencyState {
	return &LatencyState{
		Toggles:   DefaultToggles(),
		Flash:     FlashState{DurationMS: defaultFlashMS},
		Rate:      NewRateWindow(rateWindowMS),
		LastInput: "Waiting for input...",
	}
}

// HandleEvent runs one normalized event through rate tracking and the
// display filters, firing the flash and the log entry when the event
// qualifies. It reports whether the event passed the filters.
func (s *LatencyState) HandleEvent(ev InputEvent) bool {
	// Rate tracking sees every motion event, before display filters.
	if ev.Device == DeviceMouse && ev.Action == ActionMove && s.Toggles.MouseHz {
		s.Rate.Add(ev.TimeMS)
	}
	if !s.passes(ev) {
		return false
	}
	s.Flash.Trigger(ev.TimeMS)
	s.LastInput = ev.Describe()
	s.LastDevice = ev.DeviceLine()
	if s.Toggles.Log {
		s.Log.Add(ev.TimeMS, s.LastInput, s.LastDevice)
	}
	return true
}

func (s *LatencyState) passes(ev InputEvent) bool {
	switch ev.Device {
	case DeviceKeyboard:
		if !s.Toggles.Keyboard {
			return false
		}
		if ev.Action == ActionKeyUp && !s.Toggles.UpEvents {
			return false
		}
	case DeviceMouse:
		switch ev.Action {
		case ActionButtonDown, ActionWheel:
			if !s.Toggles.MouseButtons {
				return false
			}
		case ActionButtonUp:
			if !s.Toggles.MouseButtons || !s.Toggles.UpEvents {
				return false
			}
		case ActionMove:
			if !s.Toggles.MouseDelta {
				return false
			}
		}
	}
	return true
}

// Apply executes a toggle command. Switching a display off clears the
// history it accumulated, so stale numbers never linger.
func (s *LatencyState) Apply(cmd Command) {
	switch cmd {
	case CmdToggleMouseButtons:
		s.Toggles.MouseButtons = !s.Toggles.MouseButtons
	case CmdToggleKeyboard:
		s.Toggles.Keyboard = !s.Toggles.Keyboard
	case CmdToggleMouseDelta:
		s.Toggles.MouseDelta = !s.Toggles.MouseDelta
	case CmdToggleLog:
		s.Toggles.Log = !s.Toggles.Log
		if !s.Toggles.Log {
			s.Log.Clear()
		}
	case CmdFlashLonger:
		s.Flash.Lengthen()
	case CmdFlashShorter:
		s.Flash.Shorten()
	case CmdToggleUpEvents:
		s.Toggles.UpEvents = !s.Toggles.UpEvents
	case CmdToggleMouseHz:
		s.Toggles.MouseHz = !s.Toggles.MouseHz
		if !s.Toggles.MouseHz {
			s.Rate.Reset()
			s.MouseHz = 0
		}
	case CmdToggleOverlay:
		s.Toggles.Overlay = !s.Toggles.Overlay
	}
}

// TickOverlay does the full-path bookkeeping: frame statistics and
// the displayed mouse rate.
func (s *LatencyState) TickOverlay(nowMS float64) {
	s.Frames.Tick(nowMS)
	if s.Toggles.MouseHz {
		s.MouseHz = s.Rate.Count(nowMS)
	}
}

func onoff(b bool) string {
	if b {
		return "+"
	}
	return "-"
}

// StatusLine is the key legend shown at the bottom of the overlay.
func (s *LatencyState) StatusLine(fullscreen bool) string {
	mode := "WIN"
	if fullscreen {
		mode = "FSE"
	}
	return fmt.Sprintf("ESC | F1=Mouse[%s] F2=KB[%s] F3=Dlt[%s] F4=Log[%s] F7=Up[%s] F8=Hz[%s] F9=OL[%s] F10=[%s] F5/6=%dms",
		onoff(s.Toggles.MouseButtons), onoff(s.Toggles.Keyboard), onoff(s.Toggles.MouseDelta),
		onoff(s.Toggles.Log), onoff(s.Toggles.UpEvents), onoff(s.Toggles.MouseHz),
		onoff(s.Toggles.Overlay), mode, int(s.Flash.DurationMS))
}
