package simulator

import (
	"fmt"
	"sort"

	"github.com/GoSim-25-26J-441/qaoa-core/internal/hamiltonian"
)

// Histogram maps measured bitstrings (character i = qubit i) to counts.
type Histogram map[string]int

// Total returns the number of shots recorded.
func (h Histogram) Total() int {
	total := 0
	for _, c := range h {
		total += c
	}
	return total
}

// MostFrequent returns the bitstring with the highest count. Ties go to the
// lexicographically smallest bitstring so the choice does not depend on map
// iteration order.
func (h Histogram) MostFrequent() (string, int) {
	best, bestCount := "", -1
	for b, c := range h {
		if c > bestCount || (c == bestCount && b < best) {
			best, bestCount = b, c
		}
	}
	if bestCount < 0 {
		return "", 0
	}
	return best, bestCount
}

// Entry is one histogram bucket.
type Entry struct {
	Bitstring string `json:"bitstring"`
	Count     int    `json:"count"`
}

// Sorted returns the buckets by descending count, then ascending bitstring.
func (h Histogram) Sorted() []Entry {
	out := make([]Entry, 0, len(h))
	for b, c := range h {
		out = append(out, Entry{Bitstring: b, Count: c})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].Bitstring < out[j].Bitstring
	})
	return out
}

// ExpectationFromCounts estimates the cost expectation as the shot-weighted
// mean classical energy of the measured bitstrings. Buckets are summed in
// Sorted order so equal histograms give bit-identical results.
func ExpectationFromCounts(h Histogram, op *hamiltonian.CostOperator) (float64, error) {
	total := h.Total()
	if total <= 0 {
		return 0, fmt.Errorf("%w: histogram is empty", ErrInvalidShots)
	}
	sum := 0.0
	for _, entry := range h.Sorted() {
		e, err := op.Energy(entry.Bitstring)
		if err != nil {
			return 0, err
		}
		sum += float64(entry.Count) * e
	}
	return sum / float64(total), nil
}
