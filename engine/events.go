package engine

import (
	"fmt"
	"strings"
)

// DeviceKind separates the two input classes the tester reports on.
type DeviceKind int

const (
	DeviceMouse DeviceKind = iota
	DeviceKeyboard
)

func (k DeviceKind) String() string {
	if k == DeviceKeyboard {
		return "KEYBOARD"
	}
	return "MOUSE"
}

// Action classifies what a normalized input event did.
type Action int

const (
	ActionButtonDown Action = iota
	ActionButtonUp
	ActionMove
	ActionWheel
	ActionKeyDown
	ActionKeyUp
)

// InputEvent is one normalized input notification, stamped before any
// other processing. TimeMS is milliseconds on the monotonic clock the
// rest of the instrument runs on.
type InputEvent struct {
	Device     DeviceKind
	Action     Action
	Button     uint8
	KeyName    string
	KeyCode    uint32
	ScanCode   uint32
	DX, DY     float32
	WheelY     float32
	DeviceName string
	TimeMS     float64
}

func buttonName(b uint8) string {
	switch b {
	case 1:
		return "Left Click"
	case 2:
		return "Middle Click"
	case 3:
		return "Right Click"
	default:
		return fmt.Sprintf("Button %d", b)
	}
}

// Describe renders the event the way the overlay and the log show it.
func (e InputEvent) Describe() string {
	switch e.Action {
	case ActionButtonDown:
		return buttonName(e.Button) + " DOWN"
	case ActionButtonUp:
		return buttonName(e.Button) + " UP"
	case ActionWheel:
		return fmt.Sprintf("Wheel: %d", int(e.WheelY))
	case ActionMove:
		return fmt.Sprintf("Move: dX=%d dY=%d", int(e.DX), int(e.DY))
	case ActionKeyDown:
		return fmt.Sprintf("%s (KC=%d SC=%d) DOWN", e.KeyName, e.KeyCode, e.ScanCode)
	case ActionKeyUp:
		return fmt.Sprintf("%s (KC=%d SC=%d) UP", e.KeyName, e.KeyCode, e.ScanCode)
	}
	return ""
}

func (e InputEvent) DeviceLine() string {
	return e.Device.String() + ": " + e.DeviceName
}

// deviceName builds the displayed identity for a device instance id,
// normalized through ShortDeviceName.
func deviceName(id uint64) string {
	return ShortDeviceName(fmt.Sprintf("device %d", id))
}

// motionInput normalizes one relative-motion notification. Motion
// with zero displacement on both axes is not an event.
func motionInput(dx, dy float32, id uint64, tsNS uint64) (InputEvent, bool) {
	if dx == 0 && dy == 0 {
		return InputEvent{}, false
	}
	return InputEvent{
		Device:     DeviceMouse,
		Action:     ActionMove,
		DX:         dx,
		DY:         dy,
		DeviceName: deviceName(id),
		TimeMS:     eventMS(tsNS),
	}, true
}

// ShortDeviceName trims a bus-style identity path down to the segment
// between its last two '#' separators, the stable leaf descriptor.
// Names without that structure pass through unchanged.
func ShortDeviceName(raw string) string {
	last := strings.LastIndexByte(raw, '#')
	if last <= 0 {
		return raw
	}
	prev := strings.LastIndexByte(raw[:last], '#')
	if prev < 0 {
		return raw
	}
	return raw[prev+1 : last]
}
