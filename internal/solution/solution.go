// Package solution turns optimal QAOA angles into a concrete answer: it
// samples the final circuit, keeps the most frequent bitstring and decodes
// it as a cut or an independent set.
package solution

import (
	"context"
	"errors"
	"fmt"

	"github.com/GoSim-25-26J-441/qaoa-core/internal/circuit"
	"github.com/GoSim-25-26J-441/qaoa-core/internal/hamiltonian"
	"github.com/GoSim-25-26J-441/qaoa-core/internal/simulator"
	"github.com/GoSim-25-26J-441/qaoa-core/pkg/graph"
	"github.com/GoSim-25-26J-441/qaoa-core/pkg/logger"
)

// DefaultShots is the number of measurements taken when Options.Shots is 0.
const DefaultShots = 1024

var ErrEmptyHistogram = errors.New("sampling returned no bitstrings")

// Solution is the decoded outcome of one QAOA run.
type Solution struct {
	Kind       hamiltonian.ProblemKind `json:"kind"`
	Angles     circuit.Angles          `json:"angles"`
	Bitstring  string                  `json:"bitstring"`
	Count      int                     `json:"count"`
	TotalShots int                     `json:"total_shots"`
	Energy     float64                 `json:"energy"` // cost operator energy of Bitstring
	CutValue   int                     `json:"cut_value,omitempty"`
	MWIS       *MWISDecoding           `json:"mwis,omitempty"`
	Counts     simulator.Histogram     `json:"counts,omitempty"`
}

// Options configures Extract.
type Options struct {
	Shots int
}

// Extract samples the ansatz at angles and decodes the most frequent
// bitstring for kind.
func Extract(ctx context.Context, exec simulator.Executor, angles circuit.Angles, op *hamiltonian.CostOperator, g *graph.Graph, kind hamiltonian.ProblemKind, opts Options) (*Solution, error) {
	if exec == nil {
		return nil, fmt.Errorf("executor is nil")
	}
	if op == nil || g == nil {
		return nil, fmt.Errorf("cost operator and graph are required")
	}
	if op.NumQubits != g.NumVertices() {
		return nil, fmt.Errorf("%w: operator has %d qubits, graph has %d vertices", circuit.ErrQubitCount, op.NumQubits, g.NumVertices())
	}
	shots := opts.Shots
	if shots == 0 {
		shots = DefaultShots
	}

	c, err := circuit.BuildAngles(angles, op)
	if err != nil {
		return nil, fmt.Errorf("build final circuit: %w", err)
	}
	counts, err := exec.Sample(ctx, c, shots)
	if err != nil {
		return nil, fmt.Errorf("sample final circuit: %w", err)
	}
	if len(counts) == 0 {
		return nil, ErrEmptyHistogram
	}
	best, count := counts.MostFrequent()

	sol, err := Decode(best, op, g, kind)
	if err != nil {
		return nil, err
	}
	sol.Angles = angles
	sol.Count = count
	sol.TotalShots = counts.Total()
	sol.Counts = counts

	logger.Component("solution").Debug("extracted solution",
		"kind", string(kind),
		"bitstring", best,
		"count", count,
		"shots", sol.TotalShots)
	return sol, nil
}

// Decode interprets a single bitstring. Decoding the bitstring of a
// returned Solution again yields the same values.
func Decode(bits string, op *hamiltonian.CostOperator, g *graph.Graph, kind hamiltonian.ProblemKind) (*Solution, error) {
	if err := checkBits(bits, g); err != nil {
		return nil, err
	}
	sol := &Solution{Kind: kind, Bitstring: bits}
	if op != nil {
		energy, err := op.Energy(bits)
		if err != nil {
			return nil, err
		}
		sol.Energy = energy
	}

	switch kind {
	case hamiltonian.MaxCut:
		cut, err := CutValue(bits, g)
		if err != nil {
			return nil, err
		}
		sol.CutValue = cut
	case hamiltonian.MWIS:
		d, err := DecodeMWIS(bits, g)
		if err != nil {
			return nil, err
		}
		sol.MWIS = &d
	default:
		return nil, &hamiltonian.UnknownProblemError{Name: string(kind)}
	}
	return sol, nil
}
