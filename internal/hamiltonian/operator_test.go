package hamiltonian

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestBitstringIndex(t *testing.T) {
	x, err := BitstringIndex("100", 3)
	require.NoError(t, err)
	require.Equal(t, uint64(1), x)

	x, err = BitstringIndex("011", 3)
	require.NoError(t, err)
	require.Equal(t, uint64(6), x)
	require.Equal(t, "011", IndexBitstring(6, 3))

	_, err = BitstringIndex("01", 3)
	require.ErrorIs(t, err, ErrBitstringLength)
	_, err = BitstringIndex("0a1", 3)
	require.ErrorIs(t, err, ErrInvalidBit)
}

func TestValidate(t *testing.T) {
	op := &CostOperator{NumQubits: 2, Terms: []Term{zz(0, 2, 1)}}
	require.ErrorIs(t, op.Validate(), ErrQubitOutOfRange)

	op = &CostOperator{NumQubits: 2, Terms: []Term{z(-1, 1)}}
	require.ErrorIs(t, op.Validate(), ErrQubitOutOfRange)
}

func TestDiagonalMatchesEnergy(t *testing.T) {
	op := &CostOperator{NumQubits: 3, Terms: []Term{
		zz(0, 1, 0.5),
		z(2, -1.25),
		identity(2),
	}}
	diag, err := op.Diagonal()
	require.NoError(t, err)
	require.Len(t, diag, 8)
	for x := range diag {
		e, err := op.Energy(IndexBitstring(uint64(x), 3))
		require.NoError(t, err)
		require.Equal(t, e, diag[x])
	}
	// |000>: 0.5 - 1.25 + 2
	require.InDelta(t, 1.25, diag[0], 1e-12)
}

func TestDiagonalTooLarge(t *testing.T) {
	op := &CostOperator{NumQubits: MaxEnumerableQubits + 1}
	_, err := op.Diagonal()
	require.ErrorIs(t, err, ErrTooManyQubits)
}

func TestGroundStateTieKeepsFirst(t *testing.T) {
	op := &CostOperator{NumQubits: 2, Terms: []Term{zz(0, 1, 1)}}
	gs, e, err := op.GroundState()
	require.NoError(t, err)
	require.Equal(t, -1.0, e)
	// basis index 1 ("10") precedes index 2 ("01")
	require.Equal(t, "10", gs)
}

func TestSimplify(t *testing.T) {
	op := &CostOperator{NumQubits: 2, Terms: []Term{
		identity(1),
		z(0, 0.5),
		identity(-0.25),
		z(0, -0.5),
		zz(1, 0, 2),
		zz(0, 1, 1),
	}}
	s := op.Simplify()
	require.Equal(t, []Term{identity(0.75), zz(1, 0, 3)}, s.Terms)
	require.Len(t, op.Terms, 6)

	for x := uint64(0); x < 4; x++ {
		require.InDelta(t, op.EnergyIndex(x), s.EnergyIndex(x), 1e-12)
	}
}

func TestString(t *testing.T) {
	op := &CostOperator{NumQubits: 3, Terms: []Term{zz(0, 2, 1), z(1, -0.5)}}
	require.Equal(t, "1 * ZIZ + -0.5 * IZI", op.String())
}
