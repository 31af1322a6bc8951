// Package circuit builds QAOA ansatz circuits from a cost operator and a set
// of layer angles.
package circuit

import (
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/GoSim-25-26J-441/qaoa-core/internal/hamiltonian"
)

var (
	ErrAngleMismatch   = errors.New("betas and gammas must have the same length")
	ErrNoLayers        = errors.New("at least one QAOA layer is required")
	ErrUnsupportedTerm = errors.New("cost term acts on more than two qubits")
	ErrQubitOutOfRange = errors.New("qubit index out of range")
	ErrQubitCount      = errors.New("qubit count does not match cost operator")
)

// GateKind names a gate the executors understand.
type GateKind string

const (
	GateH   GateKind = "h"
	GateRX  GateKind = "rx"
	GateRZ  GateKind = "rz"
	GateRZZ GateKind = "rzz"
)

// Gate is one gate application. Angle is unused by H.
type Gate struct {
	Kind   GateKind `json:"kind"`
	Qubits []int    `json:"qubits"`
	Angle  float64  `json:"angle,omitempty"`
}

func (g Gate) String() string {
	args := make([]string, len(g.Qubits))
	for i, q := range g.Qubits {
		args[i] = fmt.Sprintf("q[%d]", q)
	}
	if g.Kind == GateH {
		return fmt.Sprintf("%s %s", g.Kind, strings.Join(args, ","))
	}
	return fmt.Sprintf("%s(%s) %s", g.Kind, strconv.FormatFloat(g.Angle, 'g', 17, 64), strings.Join(args, ","))
}

// Circuit is an ordered gate list over NumQubits qubits, measured in the
// computational basis at the end.
type Circuit struct {
	NumQubits int    `json:"num_qubits"`
	Layers    int    `json:"layers"`
	Gates     []Gate `json:"gates"`
}

// Build constructs the depth-p QAOA ansatz: a Hadamard on every qubit, then
// for each layer k one RZ(2·gamma_k·c) per single-qubit term, one
// RZZ(2·gamma_k·c) per two-qubit term and one RX(2·beta_k) per qubit.
// Identity terms only add a global phase and are skipped.
func Build(betas, gammas []float64, numQubits int, op *hamiltonian.CostOperator) (*Circuit, error) {
	if len(betas) != len(gammas) {
		return nil, fmt.Errorf("%w: %d betas, %d gammas", ErrAngleMismatch, len(betas), len(gammas))
	}
	if len(betas) == 0 {
		return nil, ErrNoLayers
	}
	if op == nil {
		return nil, fmt.Errorf("cost operator is nil")
	}
	if numQubits < 1 || numQubits != op.NumQubits {
		return nil, fmt.Errorf("%w: circuit has %d qubits, operator has %d", ErrQubitCount, numQubits, op.NumQubits)
	}
	for i, t := range op.Terms {
		if len(t.Factors) > 2 {
			return nil, fmt.Errorf("%w: term %d has %d factors", ErrUnsupportedTerm, i, len(t.Factors))
		}
		for _, f := range t.Factors {
			if f.Qubit < 0 || f.Qubit >= numQubits {
				return nil, fmt.Errorf("%w: term %d references qubit %d of %d", ErrQubitOutOfRange, i, f.Qubit, numQubits)
			}
			if f.Axis != hamiltonian.AxisZ {
				return nil, fmt.Errorf("%w: term %d has %s axis", ErrUnsupportedTerm, i, f.Axis)
			}
		}
		if len(t.Factors) == 2 && t.Factors[0].Qubit == t.Factors[1].Qubit {
			return nil, fmt.Errorf("%w: term %d repeats qubit %d", ErrUnsupportedTerm, i, t.Factors[0].Qubit)
		}
	}

	c := &Circuit{NumQubits: numQubits, Layers: len(betas)}
	for q := 0; q < numQubits; q++ {
		c.Gates = append(c.Gates, Gate{Kind: GateH, Qubits: []int{q}})
	}
	for k := range betas {
		for _, t := range op.Terms {
			switch len(t.Factors) {
			case 1:
				c.Gates = append(c.Gates, Gate{Kind: GateRZ, Qubits: []int{t.Factors[0].Qubit}, Angle: 2 * gammas[k] * t.Coeff})
			case 2:
				c.Gates = append(c.Gates, Gate{Kind: GateRZZ, Qubits: []int{t.Factors[0].Qubit, t.Factors[1].Qubit}, Angle: 2 * gammas[k] * t.Coeff})
			}
		}
		for q := 0; q < numQubits; q++ {
			c.Gates = append(c.Gates, Gate{Kind: GateRX, Qubits: []int{q}, Angle: 2 * betas[k]})
		}
	}
	return c, nil
}

// BuildAngles is Build with an Angles value.
func BuildAngles(a Angles, op *hamiltonian.CostOperator) (*Circuit, error) {
	if op == nil {
		return nil, fmt.Errorf("cost operator is nil")
	}
	return Build(a.Betas, a.Gammas, op.NumQubits, op)
}

// GateCount returns the number of gates of each kind.
func (c *Circuit) GateCount() map[GateKind]int {
	counts := make(map[GateKind]int)
	for _, g := range c.Gates {
		counts[g.Kind]++
	}
	return counts
}

// Depth returns the circuit depth: the longest chain of gates that share a
// qubit.
func (c *Circuit) Depth() int {
	level := make([]int, c.NumQubits)
	depth := 0
	for _, g := range c.Gates {
		d := 0
		for _, q := range g.Qubits {
			if level[q] > d {
				d = level[q]
			}
		}
		d++
		for _, q := range g.Qubits {
			level[q] = d
		}
		if d > depth {
			depth = d
		}
	}
	return depth
}

// QASM renders the circuit as OpenQASM 2.0 with a final measurement of every
// qubit. Qubit i is measured into classical bit i.
func (c *Circuit) QASM() string {
	var b strings.Builder
	b.WriteString("OPENQASM 2.0;\ninclude \"qelib1.inc\";\n")
	fmt.Fprintf(&b, "qreg q[%d];\ncreg c[%d];\n", c.NumQubits, c.NumQubits)
	for _, g := range c.Gates {
		b.WriteString(g.String())
		b.WriteString(";\n")
	}
	for q := 0; q < c.NumQubits; q++ {
		fmt.Fprintf(&b, "measure q[%d] -> c[%d];\n", q, q)
	}
	return b.String()
}

// Summary lists gate counts in a stable order, e.g. "h=3 rx=3 rzz=3".
func (c *Circuit) Summary() string {
	counts := c.GateCount()
	kinds := make([]string, 0, len(counts))
	for k := range counts {
		kinds = append(kinds, string(k))
	}
	sort.Strings(kinds)
	parts := make([]string, len(kinds))
	for i, k := range kinds {
		parts[i] = fmt.Sprintf("%s=%d", k, counts[GateKind(k)])
	}
	return strings.Join(parts, " ")
}
