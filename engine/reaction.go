package engine

import (
	"math/rand/v2"
)

// Round delay bounds in milliseconds. The delay is redrawn uniformly
// for every round so the onset cannot be anticipated.
const (
	minDelayMS = 1500.0
	maxDelayMS = 5000.0
)

// RoundState is where the current round stands.
type RoundState int

const (
	// RoundWaiting: armed, stimulus not yet emitted.
	RoundWaiting RoundState = iota
	// RoundActive: stimulus emitted, waiting for the press.
	RoundActive
	// RoundFalseStart: pressed too early, next press re-arms.
	RoundFalseStart
)

func (s RoundState) String() string {
	switch s {
	case RoundActive:
		return "active"
	case RoundFalseStart:
		return "false-start"
	}
	return "waiting"
}

// Modality selects how the stimulus is presented.
type Modality int

const (
	ModalityVisual Modality = iota
	ModalityAudio
)

func (m Modality) String() string {
	if m == ModalityAudio {
		return "audio"
	}
	return "visual"
}

// PressKind classifies what a button press meant to the current round.
type PressKind int

const (
	// PressFalseStart: the press arrived before the stimulus.
	PressFalseStart PressKind = iota
	// PressReaction: a valid reaction, LatencyMS carries the measure.
	PressReaction
	// PressRearm: acknowledgement after a false start.
	PressRearm
)

type PressResult struct {
	Kind      PressKind
	LatencyMS float64
}

// Machine is the per-round stimulus state machine. Exactly one round
// is live at a time and every transition happens synchronously on the
// control loop, so no field needs locking. The zero value is not
// usable; call NewMachine.
type Machine struct {
	state     RoundState
	modality  Modality
	armedAtMS float64
	delayMS   float64
	onsetMS   float64

	drawDelay func() float64
}

func NewMachine(nowMS float64) *Machine {
	m := &Machine{
		drawDelay: func() float64 {
			return minDelayMS + rand.Float64()*(maxDelayMS-minDelayMS)
		},
	}
	m.arm(nowMS)
	return m
}

func (m *Machine) arm(nowMS float64) {
	m.state = RoundWaiting
	m.armedAtMS = nowMS
	m.delayMS = m.drawDelay()
	m.onsetMS = 0
}

// Advance moves Waiting to Active once the round's delay has elapsed.
// It reports true exactly once per round, at the transition where the
// onset timestamp is captured; the caller emits the stimulus at that
// instant.
func (m *Machine) Advance(nowMS float64) bool {
	if m.state != RoundWaiting || nowMS-m.armedAtMS < m.delayMS {
		return false
	}
	m.state = RoundActive
	m.onsetMS = nowMS
	return true
}

// Press feeds a qualifying button press into the machine. A press
// during Waiting is a false start; during Active it records a
// reaction and re-arms; after a false start it just re-arms.
func (m *Machine) Press(nowMS float64) PressResult {
	switch m.state {
	case RoundActive:
		latency := nowMS - m.onsetMS
		m.arm(nowMS)
		return PressResult{Kind: PressReaction, LatencyMS: latency}
	case RoundFalseStart:
		m.arm(nowMS)
		return PressResult{Kind: PressRearm}
	default:
		m.state = RoundFalseStart
		return PressResult{Kind: PressFalseStart}
	}
}

// Clear forces a fresh Waiting round from any state.
func (m *Machine) Clear(nowMS float64) {
	m.arm(nowMS)
}

func (m *Machine) State() RoundState {
	return m.state
}

func (m *Machine) Modality() Modality {
	return m.modality
}

func (m *Machine) DelayMS() float64 {
	return m.delayMS
}

// SetModality switches the stimulus modality and re-arms.
func (m *Machine) SetModality(mod Modality, nowMS float64) {
	m.modality = mod
	m.arm(nowMS)
}

// Tester bundles the machine with its bounded sample history. It is
// the single context the reaction control loop mutates; keeping the
// two consistent here means a recorded reaction can never be lost
// between transition and history.
type Tester struct {
	machine *Machine
	samples Samples
}

func NewTester(nowMS float64) *Tester {
	return &Tester{machine: NewMachine(nowMS)}
}

func (t *Tester) Advance(nowMS float64) bool {
	return t.machine.Advance(nowMS)
}

func (t *Tester) Press(nowMS float64) PressResult {
	res := t.machine.Press(nowMS)
	if res.Kind == PressReaction {
		t.samples.Add(res.LatencyMS)
	}
	return res
}

// Clear discards the history and forces a fresh round.
func (t *Tester) Clear(nowMS float64) {
	t.samples.Clear()
	t.machine.Clear(nowMS)
}

// ToggleModality flips between visual and audio stimulus. Samples
// from the two modalities are not comparable, so the history goes
// with the switch.
func (t *Tester) ToggleModality(nowMS float64) Modality {
	next := ModalityAudio
	if t.machine.modality == ModalityAudio {
		next = ModalityVisual
	}
	t.samples.Clear()
	t.machine.SetModality(next, nowMS)
	return next
}

func (t *Tester) State() RoundState {
	return t.machine.state
}

func (t *Tester) Modality() Modality {
	return t.machine.modality
}

func (t *Tester) Samples() *Samples {
	return &t.samples
}
