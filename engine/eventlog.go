package engine

import (
	"encoding/csv"
	"fmt"
	"os"
	"strconv"
)

const maxLogEntries = 30

// LogEntry is one displayed input event in the on-screen history.
type LogEntry struct {
	TimeMS  float64
	DeltaMS float64
	Input   string
	Device  string
}

func (e LogEntry) Format() string {
	return fmt.Sprintf("%.2fms %+.2fΔ | %s | %s", e.TimeMS, e.DeltaMS, e.Input, e.Device)
}

// EventLog keeps the most recent entries, newest first. It is a
// display history, not measurement storage: old entries fall off the
// end once the cap is reached.
type EventLog struct {
	entries    []LogEntry
	lastTimeMS float64
}

// Add prepends an entry. The delta records the gap since the previous
// logged event; the first entry's delta is its own timestamp.
func (l *EventLog) Add(timeMS float64, input, device string) {
	e := LogEntry{
		TimeMS:  timeMS,
		DeltaMS: timeMS - l.lastTimeMS,
		Input:   input,
		Device:  device,
	}
	l.entries = append(l.entries, LogEntry{})
	copy(l.entries[1:], l.entries)
	l.entries[0] = e
	if len(l.entries) > maxLogEntries {
		l.entries = l.entries[:maxLogEntries]
	}
	l.lastTimeMS = timeMS
}

func (l *EventLog) Entries() []LogEntry {
	return l.entries
}

func (l *EventLog) Len() int {
	return len(l.entries)
}

// Clear drops the entries but keeps the last event time, so deltas
// stay meaningful if logging is switched back on.
func (l *EventLog) Clear() {
	l.entries = l.entries[:0]
}

// Save writes the retained entries to a CSV file, newest first.
func (l *EventLog) Save(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	defer w.Flush()

	w.Write([]string{"time_ms", "delta_ms", "input", "device"})
	for _, e := range l.entries {
		w.Write([]string{
			strconv.FormatFloat(e.TimeMS, 'f', 2, 64),
			strconv.FormatFloat(e.DeltaMS, 'f', 2, 64),
			e.Input,
			e.Device,
		})
	}
	w.Flush()
	return w.Error()
}
