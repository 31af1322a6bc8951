// Package hamiltonian encodes graph problems as Ising cost operators: weighted
// sums of Pauli-Z products over at most two qubits.
package hamiltonian

import (
	"errors"
	"fmt"
	"math/bits"
	"sort"
	"strings"
)

var (
	ErrQubitOutOfRange = errors.New("qubit index out of range")
	ErrBitstringLength = errors.New("bitstring length does not match qubit count")
	ErrInvalidBit      = errors.New("bitstring may only contain '0' and '1'")
	ErrTooManyQubits   = errors.New("too many qubits for exhaustive enumeration")
)

// MaxEnumerableQubits bounds Diagonal and GroundState, which visit every basis
// state.
const MaxEnumerableQubits = 24

// Axis is a single-qubit Pauli axis.
type Axis byte

const (
	AxisZ Axis = 'Z'
)

func (a Axis) String() string {
	return string(a)
}

// Factor places a Pauli axis on one qubit.
type Factor struct {
	Qubit int  `json:"qubit"`
	Axis  Axis `json:"axis"`
}

// Term is a Pauli product with a real coefficient. A term with no factors is
// the identity.
type Term struct {
	Factors []Factor `json:"factors"`
	Coeff   float64  `json:"coeff"`
}

// Qubits returns the qubits the term acts on, in factor order.
func (t Term) Qubits() []int {
	out := make([]int, len(t.Factors))
	for i, f := range t.Factors {
		out[i] = f.Qubit
	}
	return out
}

// IsIdentity reports whether the term acts trivially on every qubit.
func (t Term) IsIdentity() bool {
	return len(t.Factors) == 0
}

// Label renders the term as a Pauli string, qubit 0 first.
func (t Term) Label(numQubits int) string {
	b := []byte(strings.Repeat("I", numQubits))
	for _, f := range t.Factors {
		if f.Qubit >= 0 && f.Qubit < numQubits {
			b[f.Qubit] = byte(f.Axis)
		}
	}
	return string(b)
}

// CostOperator is a weighted sum of Pauli-Z terms over NumQubits qubits.
// It is built once per graph and problem and never modified afterwards.
type CostOperator struct {
	NumQubits int    `json:"num_qubits"`
	Terms     []Term `json:"terms"`
}

// Validate checks that every factor references a qubit in range.
func (op *CostOperator) Validate() error {
	for i, t := range op.Terms {
		for _, f := range t.Factors {
			if f.Qubit < 0 || f.Qubit >= op.NumQubits {
				return fmt.Errorf("%w: term %d references qubit %d of %d", ErrQubitOutOfRange, i, f.Qubit, op.NumQubits)
			}
		}
	}
	return nil
}

// Offset returns the sum of identity coefficients.
func (op *CostOperator) Offset() float64 {
	total := 0.0
	for _, t := range op.Terms {
		if t.IsIdentity() {
			total += t.Coeff
		}
	}
	return total
}

// parity returns the Z eigenvalue product of the term on basis state x.
func (t Term) parity(x uint64) float64 {
	var mask uint64
	for _, f := range t.Factors {
		mask ^= 1 << uint(f.Qubit)
	}
	if bits.OnesCount64(x&mask)%2 == 1 {
		return -1
	}
	return 1
}

// EnergyIndex returns the classical energy of basis state x, where bit i of x
// is qubit i.
func (op *CostOperator) EnergyIndex(x uint64) float64 {
	e := 0.0
	for _, t := range op.Terms {
		e += t.Coeff * t.parity(x)
	}
	return e
}

// Energy returns the classical energy of a bitstring whose character i is
// qubit i.
func (op *CostOperator) Energy(bitstring string) (float64, error) {
	x, err := BitstringIndex(bitstring, op.NumQubits)
	if err != nil {
		return 0, err
	}
	return op.EnergyIndex(x), nil
}

// Diagonal returns the energy of every basis state, indexed by basis index.
func (op *CostOperator) Diagonal() ([]float64, error) {
	if op.NumQubits > MaxEnumerableQubits {
		return nil, fmt.Errorf("%w: %d > %d", ErrTooManyQubits, op.NumQubits, MaxEnumerableQubits)
	}
	dim := uint64(1) << uint(op.NumQubits)
	diag := make([]float64, dim)
	for x := uint64(0); x < dim; x++ {
		diag[x] = op.EnergyIndex(x)
	}
	return diag, nil
}

// GroundState enumerates every basis state and returns the lowest-energy
// bitstring. Ties keep the smallest basis index.
func (op *CostOperator) GroundState() (string, float64, error) {
	diag, err := op.Diagonal()
	if err != nil {
		return "", 0, err
	}
	best := 0
	for x := 1; x < len(diag); x++ {
		if diag[x] < diag[best] {
			best = x
		}
	}
	return IndexBitstring(uint64(best), op.NumQubits), diag[best], nil
}

// Edges re-derives the interaction graph from the two-qubit terms: each
// distinct qubit pair appears once, normalised to ascending order.
func (op *CostOperator) Edges() [][2]int {
	seen := make(map[[2]int]bool)
	var out [][2]int
	for _, t := range op.Terms {
		if len(t.Factors) != 2 {
			continue
		}
		u, v := t.Factors[0].Qubit, t.Factors[1].Qubit
		if u > v {
			u, v = v, u
		}
		k := [2]int{u, v}
		if !seen[k] {
			seen[k] = true
			out = append(out, k)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i][0] != out[j][0] {
			return out[i][0] < out[j][0]
		}
		return out[i][1] < out[j][1]
	})
	return out
}

// Simplify merges terms acting on the same Pauli string and drops those that
// cancel. Term order follows first appearance. The result is used for
// display; circuits are built from the unsimplified operator.
func (op *CostOperator) Simplify() *CostOperator {
	index := make(map[string]int)
	var terms []Term
	for _, t := range op.Terms {
		label := t.Label(op.NumQubits)
		if i, ok := index[label]; ok {
			terms[i].Coeff += t.Coeff
			continue
		}
		index[label] = len(terms)
		factors := make([]Factor, len(t.Factors))
		copy(factors, t.Factors)
		terms = append(terms, Term{Factors: factors, Coeff: t.Coeff})
	}
	kept := terms[:0]
	for _, t := range terms {
		if t.Coeff != 0 {
			kept = append(kept, t)
		}
	}
	return &CostOperator{NumQubits: op.NumQubits, Terms: kept}
}

// String lists the terms as "coeff * LABEL" joined by " + ".
func (op *CostOperator) String() string {
	if len(op.Terms) == 0 {
		return "0"
	}
	parts := make([]string, len(op.Terms))
	for i, t := range op.Terms {
		parts[i] = fmt.Sprintf("%g * %s", t.Coeff, t.Label(op.NumQubits))
	}
	return strings.Join(parts, " + ")
}

// BitstringIndex converts a bitstring (character i = qubit i) into a basis
// index.
func BitstringIndex(bitstring string, numQubits int) (uint64, error) {
	if len(bitstring) != numQubits {
		return 0, fmt.Errorf("%w: got %d, want %d", ErrBitstringLength, len(bitstring), numQubits)
	}
	var x uint64
	for i := 0; i < len(bitstring); i++ {
		switch bitstring[i] {
		case '0':
		case '1':
			x |= 1 << uint(i)
		default:
			return 0, fmt.Errorf("%w: %q", ErrInvalidBit, bitstring)
		}
	}
	return x, nil
}

// IndexBitstring is the inverse of BitstringIndex.
func IndexBitstring(x uint64, numQubits int) string {
	b := make([]byte, numQubits)
	for i := range b {
		b[i] = '0' + byte((x>>uint(i))&1)
	}
	return string(b)
}
