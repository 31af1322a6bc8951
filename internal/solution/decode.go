package solution

import (
	"fmt"

	"github.com/GoSim-25-26J-441/qaoa-core/internal/hamiltonian"
	"github.com/GoSim-25-26J-441/qaoa-core/pkg/graph"
)

// MWISDecoding is the independent set read out of a bitstring.
type MWISDecoding struct {
	Weight      float64 `json:"weight"`
	SelectedBit byte    `json:"selected_bit"` // '0' or '1'; 0 when infeasible
	Feasible    bool    `json:"feasible"`
}

// String renders the decoding the way the report prints it.
func (d MWISDecoding) String() string {
	if !d.Feasible {
		return "The best bitstring does not represent a valid independent set under either interpretation."
	}
	return fmt.Sprintf("Interpreting bit '%c' as selected, maximum independent set value: %g", d.SelectedBit, d.Weight)
}

func checkBits(bits string, g *graph.Graph) error {
	if g == nil {
		return fmt.Errorf("graph is nil")
	}
	if len(bits) != g.NumVertices() {
		return fmt.Errorf("%w: got %d, want %d", hamiltonian.ErrBitstringLength, len(bits), g.NumVertices())
	}
	for i := 0; i < len(bits); i++ {
		if bits[i] != '0' && bits[i] != '1' {
			return fmt.Errorf("%w: %q", hamiltonian.ErrInvalidBit, bits)
		}
	}
	return nil
}

// CutValue counts the edges whose endpoints carry different bits.
func CutValue(bits string, g *graph.Graph) (int, error) {
	if err := checkBits(bits, g); err != nil {
		return 0, err
	}
	cut := 0
	for _, e := range g.Edges() {
		if bits[e.U] != bits[e.V] {
			cut++
		}
	}
	return cut, nil
}

// MWISValue sums the weights of the vertices whose bit equals selected. It
// reports false when two selected vertices share an edge.
func MWISValue(bits string, g *graph.Graph, selected byte) (float64, bool, error) {
	if err := checkBits(bits, g); err != nil {
		return 0, false, err
	}
	for _, e := range g.Edges() {
		if bits[e.U] == selected && bits[e.V] == selected {
			return 0, false, nil
		}
	}
	total := 0.0
	for i := 0; i < len(bits); i++ {
		if bits[i] == selected {
			total += g.Weight(i)
		}
	}
	return total, true, nil
}

// DecodeMWIS tries both readings of bits, '0' selected and '1' selected,
// and keeps the feasible one with the larger weight. Equal weights keep
// '0', the reading the cost operator is built for.
func DecodeMWIS(bits string, g *graph.Graph) (MWISDecoding, error) {
	w0, ok0, err := MWISValue(bits, g, '0')
	if err != nil {
		return MWISDecoding{}, err
	}
	w1, ok1, _ := MWISValue(bits, g, '1')

	switch {
	case !ok0 && !ok1:
		return MWISDecoding{}, nil
	case !ok0:
		return MWISDecoding{Weight: w1, SelectedBit: '1', Feasible: true}, nil
	case !ok1 || w0 >= w1:
		return MWISDecoding{Weight: w0, SelectedBit: '0', Feasible: true}, nil
	default:
		return MWISDecoding{Weight: w1, SelectedBit: '1', Feasible: true}, nil
	}
}
