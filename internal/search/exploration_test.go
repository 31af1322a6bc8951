package search

import (
	"errors"
	"math"
	"testing"

	"github.com/GoSim-25-26J-441/qaoa-core/internal/circuit"
)

func TestDefaultExplorer(t *testing.T) {
	explorer := NewDefaultExplorer()
	base := circuit.Angles{Betas: []float64{0.5, 1.0}, Gammas: []float64{1.0, 2.0}}

	neighbors := explorer.GenerateNeighbors(base, 0.1)
	if len(neighbors) != 8 {
		t.Fatalf("expected 8 neighbors for depth 2, got %d", len(neighbors))
	}
	for _, n := range neighbors {
		changed := 0
		for k := range base.Betas {
			if n.Betas[k] != base.Betas[k] {
				changed++
			}
			if n.Gammas[k] != base.Gammas[k] {
				changed++
			}
		}
		if changed != 1 {
			t.Fatalf("expected exactly one angle to move, got %d in %s", changed, n)
		}
	}
	if base.Betas[0] != 0.5 || base.Gammas[1] != 2.0 {
		t.Fatalf("base angles were modified: %s", base)
	}
}

func TestDefaultExplorerClampsToRange(t *testing.T) {
	explorer := NewDefaultExplorer()

	// β = 0 cannot move down, so that neighbour is dropped
	neighbors := explorer.GenerateNeighbors(circuit.Angles{Betas: []float64{0}, Gammas: []float64{1}}, 0.1)
	if len(neighbors) != 3 {
		t.Fatalf("expected 3 neighbors at the β lower bound, got %d", len(neighbors))
	}

	neighbors = explorer.GenerateNeighbors(circuit.Angles{Betas: []float64{math.Pi - 0.05}, Gammas: []float64{2*math.Pi - 0.05}}, 0.1)
	for _, n := range neighbors {
		if n.Betas[0] > math.Pi || n.Betas[0] < 0 {
			t.Fatalf("beta %v out of [0, π]", n.Betas[0])
		}
		if n.Gammas[0] > 2*math.Pi || n.Gammas[0] < 0 {
			t.Fatalf("gamma %v out of [0, 2π]", n.Gammas[0])
		}
	}
}

func TestConservativeExplorer(t *testing.T) {
	explorer := NewConservativeExplorer()
	if explorer.Name() != "conservative" {
		t.Fatalf("unexpected name %q", explorer.Name())
	}

	base := circuit.Angles{Betas: []float64{1}, Gammas: []float64{1}}
	neighbors := explorer.GenerateNeighbors(base, 0.2)
	if len(neighbors) != 4 {
		t.Fatalf("expected 4 neighbors, got %d", len(neighbors))
	}
	for _, n := range neighbors {
		move := math.Abs(n.Betas[0]-1) + math.Abs(n.Gammas[0]-1)
		if math.Abs(move-0.1) > 1e-12 {
			t.Fatalf("expected a half-size move of 0.1, got %v", move)
		}
	}
}

func TestAggressiveExplorer(t *testing.T) {
	explorer := NewAggressiveExplorer()
	if explorer.Name() != "aggressive" {
		t.Fatalf("unexpected name %q", explorer.Name())
	}

	base := circuit.Angles{Betas: []float64{1}, Gammas: []float64{1}}
	neighbors := explorer.GenerateNeighbors(base, 0.1)
	if len(neighbors) != 8 {
		t.Fatalf("expected 4 axis and 4 diagonal neighbors, got %d", len(neighbors))
	}
	diagonal := 0
	for _, n := range neighbors {
		if n.Betas[0] != 1 && n.Gammas[0] != 1 {
			diagonal++
			if math.Abs(math.Abs(n.Betas[0]-1)-0.2) > 1e-12 {
				t.Fatalf("expected a doubled beta move, got %v", n.Betas[0])
			}
		}
	}
	if diagonal != 4 {
		t.Fatalf("expected 4 diagonal neighbors, got %d", diagonal)
	}
}

func TestNewAngleExplorer(t *testing.T) {
	for _, name := range []string{"", "default", "conservative", "aggressive"} {
		explorer, err := NewAngleExplorer(name)
		if err != nil {
			t.Fatalf("NewAngleExplorer(%q): %v", name, err)
		}
		want := name
		if want == "" {
			want = "default"
		}
		if explorer.Name() != want {
			t.Fatalf("NewAngleExplorer(%q).Name() = %q", name, explorer.Name())
		}
	}

	_, err := NewAngleExplorer("random-walk")
	var unknown *UnknownExplorerError
	if !errors.As(err, &unknown) || unknown.Explorer != "random-walk" {
		t.Fatalf("expected UnknownExplorerError, got %v", err)
	}
}
