package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fixedDelay(ms float64) func() float64 {
	return func() float64 { return ms }
}

func TestMachineDelayRange(t *testing.T) {
	m := NewMachine(0)
	seen := map[float64]bool{}
	for i := 0; i < 500; i++ {
		d := m.DelayMS()
		assert.GreaterOrEqual(t, d, minDelayMS)
		assert.Less(t, d, maxDelayMS)
		seen[d] = true
		m.Clear(0)
	}
	assert.Greater(t, len(seen), 1, "delay must vary between rounds")
}

func TestReactionRound(t *testing.T) {
	m := NewMachine(1000)
	m.drawDelay = fixedDelay(2000)
	m.Clear(1000)

	assert.Equal(t, RoundWaiting, m.State())
	assert.False(t, m.Advance(2999))
	assert.True(t, m.Advance(3000))
	assert.Equal(t, RoundActive, m.State())
	assert.False(t, m.Advance(3100), "onset fires once per round")

	res := m.Press(3250)
	assert.Equal(t, PressReaction, res.Kind)
	assert.Equal(t, 250.0, res.LatencyMS)
	assert.Equal(t, RoundWaiting, m.State(), "a recorded press arms the next round")
}

func TestFalseStart(t *testing.T) {
	m := NewMachine(0)
	m.drawDelay = fixedDelay(3000)
	m.Clear(0)

	res := m.Press(1000)
	assert.Equal(t, PressFalseStart, res.Kind)
	assert.Equal(t, RoundFalseStart, m.State())

	// The stimulus never fires while the alert is up.
	assert.False(t, m.Advance(10000))

	res = m.Press(1200)
	assert.Equal(t, PressRearm, res.Kind)
	assert.Equal(t, RoundWaiting, m.State())
}

func TestZeroLatencyPress(t *testing.T) {
	m := NewMachine(0)
	m.drawDelay = fixedDelay(1500)
	m.Clear(0)

	require.True(t, m.Advance(1500))
	res := m.Press(1500)
	assert.Equal(t, PressReaction, res.Kind)
	assert.Zero(t, res.LatencyMS)
}

func TestTesterRecordsReactions(t *testing.T) {
	tr := NewTester(0)
	tr.machine.drawDelay = fixedDelay(1500)
	tr.machine.Clear(0)

	onset := 1500.0
	for i := 0; i < 3; i++ {
		require.True(t, tr.Advance(onset))
		press := onset + 100 + float64(i)*10
		res := tr.Press(press)
		require.Equal(t, PressReaction, res.Kind)
		onset = press + 1500
	}

	assert.Equal(t, []float64{120, 110, 100}, tr.Samples().Values())
	assert.InDelta(t, 110.0, tr.Samples().Mean(), 1e-9)
	assert.Equal(t, 100.0, tr.Samples().Best())
}

func TestTesterFalseStartRecordsNothing(t *testing.T) {
	tr := NewTester(0)
	tr.machine.drawDelay = fixedDelay(3000)
	tr.machine.Clear(0)

	assert.Equal(t, PressFalseStart, tr.Press(500).Kind)
	assert.Equal(t, PressRearm, tr.Press(700).Kind)
	assert.Zero(t, tr.Samples().Len())
	assert.Equal(t, RoundWaiting, tr.State())
}

func TestTesterSampleCap(t *testing.T) {
	tr := NewTester(0)
	tr.machine.drawDelay = fixedDelay(1500)
	tr.machine.Clear(0)

	onset := 1500.0
	for i := 0; i < maxSamples+1; i++ {
		require.True(t, tr.Advance(onset))
		press := onset + 100 + float64(i)
		tr.Press(press)
		onset = press + 1500
	}

	assert.Equal(t, maxSamples, tr.Samples().Len())
	assert.Equal(t, 100.0+float64(maxSamples), tr.Samples().Values()[0])
	assert.Equal(t, 101.0, tr.Samples().Values()[maxSamples-1], "oldest sample fell off")
}

func TestTesterClear(t *testing.T) {
	tr := NewTester(0)
	tr.machine.drawDelay = fixedDelay(1500)
	tr.machine.Clear(0)

	require.True(t, tr.Advance(1500))
	tr.Press(1600)
	require.Equal(t, 1, tr.Samples().Len())

	tr.Clear(2000)
	assert.Zero(t, tr.Samples().Len())
	assert.Equal(t, RoundWaiting, tr.State())
}

func TestToggleModalityResetsHistory(t *testing.T) {
	tr := NewTester(0)
	tr.machine.drawDelay = fixedDelay(1500)
	tr.machine.Clear(0)

	require.True(t, tr.Advance(1500))
	tr.Press(1700)
	require.Equal(t, 1, tr.Samples().Len())

	assert.Equal(t, ModalityAudio, tr.ToggleModality(2000))
	assert.Zero(t, tr.Samples().Len())
	assert.Equal(t, RoundWaiting, tr.State())
	assert.Equal(t, ModalityVisual, tr.ToggleModality(2100))
}

func TestRoundStateStrings(t *testing.T) {
	assert.Equal(t, "waiting", RoundWaiting.String())
	assert.Equal(t, "active", RoundActive.String())
	assert.Equal(t, "false-start", RoundFalseStart.String())
	assert.Equal(t, "visual", ModalityVisual.String())
	assert.Equal(t, "audio", ModalityAudio.String())
}
