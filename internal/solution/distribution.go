package solution

import (
	"fmt"

	"github.com/GoSim-25-26J-441/qaoa-core/internal/simulator"
	"github.com/GoSim-25-26J-441/qaoa-core/pkg/graph"
	"github.com/GoSim-25-26J-441/qaoa-core/pkg/utils"
)

// RandomSamples draws count uniformly random n-bit strings from rng.
func RandomSamples(n, count int, rng *utils.RandSource) []string {
	if rng == nil {
		rng = utils.DefaultSource()
	}
	out := make([]string, count)
	for i := range out {
		out[i] = rng.Bitstring(n)
	}
	return out
}

// Distribution compares cut energies (minus the cut value) of QAOA shots
// against uniformly random assignments.
type Distribution struct {
	QAOA       []float64 `json:"qaoa"`
	Random     []float64 `json:"random"`
	QAOAMean   float64   `json:"qaoa_mean"`
	RandomMean float64   `json:"random_mean"`
}

// EnergyDistribution expands counts into one energy per shot and scores
// the random samples the same way. Shots are listed in Histogram.Sorted
// order.
func EnergyDistribution(counts simulator.Histogram, random []string, g *graph.Graph) (*Distribution, error) {
	d := &Distribution{
		QAOA:   make([]float64, 0, counts.Total()),
		Random: make([]float64, 0, len(random)),
	}
	for _, e := range counts.Sorted() {
		cut, err := CutValue(e.Bitstring, g)
		if err != nil {
			return nil, fmt.Errorf("qaoa sample %q: %w", e.Bitstring, err)
		}
		for i := 0; i < e.Count; i++ {
			d.QAOA = append(d.QAOA, -float64(cut))
		}
	}
	for _, bits := range random {
		cut, err := CutValue(bits, g)
		if err != nil {
			return nil, fmt.Errorf("random sample %q: %w", bits, err)
		}
		d.Random = append(d.Random, -float64(cut))
	}
	d.QAOAMean = utils.Mean(d.QAOA)
	d.RandomMean = utils.Mean(d.Random)
	return d, nil
}
