package engine

import (
	"fmt"

	"github.com/rs/zerolog"
	"go.bug.st/serial"
)

const triggerBaud = 9600

// Trigger drives line 1 of a DLP-IO8-G USB I/O box so external
// measurement gear (photodiode rigs, scopes, EEG markers) sees a TTL
// edge at stimulus onset. Writes are best-effort: a failed write is
// logged and dropped, never retried on the control loop.
type Trigger struct {
	port serial.Port
	log  zerolog.Logger
}

func NewTrigger(device string) (*Trigger, error) {
	mode := &serial.Mode{
		BaudRate: triggerBaud,
		DataBits: 8,
		Parity:   serial.NoParity,
		StopBits: serial.OneStopBit,
	}

	port, err := serial.Open(device, mode)
	if err != nil {
		return nil, err
	}

	t := &Trigger{port: port, log: newLogger("trigger")}

	// Ping
	if _, err := port.Write([]byte{0x27}); err != nil {
		port.Close()
		return nil, err
	}
	buf := make([]byte, 1)
	n, err := port.Read(buf)
	if err != nil || n != 1 || buf[0] != 'Q' {
		port.Close()
		return nil, fmt.Errorf("device did not respond to ping correctly")
	}

	// Binary mode
	if _, err := port.Write([]byte{0x5C}); err != nil {
		port.Close()
		return nil, err
	}

	return t, nil
}

// Mark raises line 1.
func (t *Trigger) Mark() {
	if _, err := t.port.Write([]byte{'1'}); err != nil {
		t.log.Debug().Err(err).Msg("mark write failed")
	}
}

// Release drops line 1.
func (t *Trigger) Release() {
	if _, err := t.port.Write([]byte{'Q'}); err != nil {
		t.log.Debug().Err(err).Msg("release write failed")
	}
}

// Close drops the line before releasing the port so external gear
// never sees a marker outlive the session.
func (t *Trigger) Close() {
	if t.port != nil {
		t.Release()
		t.port.Close()
	}
}
