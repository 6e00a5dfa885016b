package engine

import (
	"encoding/csv"
	"os"
	"strconv"
)

const maxSamples = 25

// Samples holds the most recent reaction times, newest first. The
// history is bounded: it feeds the on-screen list and the running
// stats, nothing else.
type Samples struct {
	values []float64
}

func (s *Samples) Add(latencyMS float64) {
	s.values = append(s.values, 0)
	copy(s.values[1:], s.values)
	s.values[0] = latencyMS
	if len(s.values) > maxSamples {
		s.values = s.values[:maxSamples]
	}
}

func (s *Samples) Len() int {
	return len(s.values)
}

func (s *Samples) Values() []float64 {
	return s.values
}

func (s *Samples) Clear() {
	s.values = s.values[:0]
}

// Mean is the arithmetic mean of the retained samples, 0 when empty.
func (s *Samples) Mean() float64 {
	if len(s.values) == 0 {
		return 0
	}
	sum := 0.0
	for _, v := range s.values {
		sum += v
	}
	return sum / float64(len(s.values))
}

// Best is the lowest retained sample, 0 when empty.
func (s *Samples) Best() float64 {
	if len(s.values) == 0 {
		return 0
	}
	best := s.values[0]
	for _, v := range s.values[1:] {
		if v < best {
			best = v
		}
	}
	return best
}

// Save writes the retained samples to a CSV file, newest first.
func (s *Samples) Save(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	w.Write([]string{"reaction_ms"})
	for _, v := range s.values {
		w.Write([]string{strconv.FormatFloat(v, 'f', 2, 64)})
	}
	w.Flush()
	return w.Error()
}
