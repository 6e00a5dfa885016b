package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestShortDeviceName(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want string
	}{
		{
			name: "bus path keeps leaf descriptor",
			raw:  `\\?\HID#VID_046D&PID_C08B&MI_01&Col01#9&2f7ca16&0&0000#{378de44c-56ef-11d1-bc8c-00a0c91405dd}`,
			want: "9&2f7ca16&0&0000",
		},
		{
			name: "plain name passes through",
			raw:  "device 3",
			want: "device 3",
		},
		{
			name: "single separator passes through",
			raw:  "ACPI#PNP0303",
			want: "ACPI#PNP0303",
		},
		{
			name: "leading separator passes through",
			raw:  "#odd",
			want: "#odd",
		},
		{
			name: "empty",
			raw:  "",
			want: "",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ShortDeviceName(tt.raw))
		})
	}
}

func TestDescribe(t *testing.T) {
	tests := []struct {
		name string
		ev   InputEvent
		want string
	}{
		{"left down", InputEvent{Action: ActionButtonDown, Button: 1}, "Left Click DOWN"},
		{"middle down", InputEvent{Action: ActionButtonDown, Button: 2}, "Middle Click DOWN"},
		{"right up", InputEvent{Action: ActionButtonUp, Button: 3}, "Right Click UP"},
		{"extra button", InputEvent{Action: ActionButtonDown, Button: 4}, "Button 4 DOWN"},
		{"wheel up", InputEvent{Action: ActionWheel, WheelY: 1}, "Wheel: 1"},
		{"wheel down", InputEvent{Action: ActionWheel, WheelY: -1}, "Wheel: -1"},
		{"motion", InputEvent{Action: ActionMove, DX: -3, DY: 7}, "Move: dX=-3 dY=7"},
		{"key down", InputEvent{Action: ActionKeyDown, KeyName: "A", KeyCode: 97, ScanCode: 4}, "A (KC=97 SC=4) DOWN"},
		{"key up", InputEvent{Action: ActionKeyUp, KeyName: "Escape", KeyCode: 27, ScanCode: 41}, "Escape (KC=27 SC=41) UP"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.ev.Describe())
		})
	}
}

func TestDeviceLine(t *testing.T) {
	m := InputEvent{Device: DeviceMouse, DeviceName: "device 1"}
	k := InputEvent{Device: DeviceKeyboard, DeviceName: "device 2"}
	assert.Equal(t, "MOUSE: device 1", m.DeviceLine())
	assert.Equal(t, "KEYBOARD: device 2", k.DeviceLine())
}

func TestDeviceNameFormat(t *testing.T) {
	assert.Equal(t, "device 7", deviceName(7))
}

func TestMotionInput(t *testing.T) {
	mv, ok := motionInput(3, -1, 7, 2500000)
	require.True(t, ok)
	assert.Equal(t, DeviceMouse, mv.Device)
	assert.Equal(t, ActionMove, mv.Action)
	assert.Equal(t, "Move: dX=3 dY=-1", mv.Describe())
	assert.Equal(t, "device 7", mv.DeviceName)
	assert.Equal(t, 2.5, mv.TimeMS)
}

func TestMotionInputZeroDelta(t *testing.T) {
	_, ok := motionInput(0, 0, 7, 1000)
	assert.False(t, ok, "zero-delta motion is not an event")

	_, ok = motionInput(0, 2, 7, 1000)
	assert.True(t, ok, "single-axis motion qualifies")
	_, ok = motionInput(-1, 0, 7, 1000)
	assert.True(t, ok)
}
