package circuit

import (
	"fmt"
	"math"
	"strings"
)

// Angles holds one (beta, gamma) pair per QAOA layer.
type Angles struct {
	Betas  []float64 `json:"betas"`
	Gammas []float64 `json:"gammas"`
}

// NewAngles copies betas and gammas into a validated Angles value.
func NewAngles(betas, gammas []float64) (Angles, error) {
	a := Angles{
		Betas:  append([]float64(nil), betas...),
		Gammas: append([]float64(nil), gammas...),
	}
	if err := a.Validate(); err != nil {
		return Angles{}, err
	}
	return a, nil
}

// Validate checks len(Betas) == len(Gammas) >= 1.
func (a Angles) Validate() error {
	if len(a.Betas) != len(a.Gammas) {
		return fmt.Errorf("%w: %d betas, %d gammas", ErrAngleMismatch, len(a.Betas), len(a.Gammas))
	}
	if len(a.Betas) == 0 {
		return ErrNoLayers
	}
	return nil
}

// Depth returns the number of layers p.
func (a Angles) Depth() int {
	return len(a.Betas)
}

// Vector flattens the angles as [beta_0..beta_p-1, gamma_0..gamma_p-1].
func (a Angles) Vector() []float64 {
	out := make([]float64, 0, len(a.Betas)+len(a.Gammas))
	out = append(out, a.Betas...)
	return append(out, a.Gammas...)
}

// AnglesFromVector splits a flat parameter vector of length 2p.
func AnglesFromVector(x []float64, p int) (Angles, error) {
	if p < 1 {
		return Angles{}, ErrNoLayers
	}
	if len(x) != 2*p {
		return Angles{}, fmt.Errorf("%w: vector of length %d for %d layers", ErrAngleMismatch, len(x), p)
	}
	return Angles{
		Betas:  append([]float64(nil), x[:p]...),
		Gammas: append([]float64(nil), x[p:]...),
	}, nil
}

// String renders the angles as multiples of pi.
func (a Angles) String() string {
	return fmt.Sprintf("betas=%s gammas=%s", piList(a.Betas), piList(a.Gammas))
}

func piList(xs []float64) string {
	parts := make([]string, len(xs))
	for i, x := range xs {
		parts[i] = fmt.Sprintf("%.4fπ", x/math.Pi)
	}
	return "[" + strings.Join(parts, ", ") + "]"
}
