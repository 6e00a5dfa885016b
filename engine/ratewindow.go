package engine

// RateWindow counts events inside a trailing time window. Timestamps
// arrive in monotonic order; Count prunes expired ones in place before
// reporting, so the slice never grows past one window of traffic.
type RateWindow struct {
	windowMS float64
	times    []float64
}

func NewRateWindow(windowMS float64) *RateWindow {
	return &RateWindow{windowMS: windowMS}
}

func (w *RateWindow) Add(tMS float64) {
	w.times = append(w.times, tMS)
}

// Count reports how many timestamps fall inside the window ending at
// nowMS. A timestamp exactly one window old still counts.
func (w *RateWindow) Count(nowMS float64) int {
	cutoff := nowMS - w.windowMS
	i := 0
	for i < len(w.times) && w.times[i] < cutoff {
		i++
	}
	if i > 0 {
		w.times = append(w.times[:0], w.times[i:]...)
	}
	return len(w.times)
}

func (w *RateWindow) Reset() {
	w.times = w.times[:0]
}
