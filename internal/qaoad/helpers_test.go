package qaoad

import (
	"context"
	"testing"
	"time"
)

const triangleGraph = "Vertex Weights Array:\n[1, 1, 1]\nEdge List:\n[(0, 1), (1, 2), (0, 2)]\n"

// slowConfig describes a grid large enough that a run is still going when
// the test stops it.
const slowConfig = `
search:
  strategy: grid
  grid_resolution: 400
  max_points: 0
`

func triangleInput() *RunInput {
	return &RunInput{ConfigYAML: "search:\n  grid_resolution: 4\n", Graph: triangleGraph}
}

func slowInput() *RunInput {
	return &RunInput{
		ConfigYAML: slowConfig,
		Random:     &RandomGraph{Vertices: 12, EdgeProb: 0.5, Seed: 1},
	}
}

func waitRun(t *testing.T, e *RunExecutor, runID string) {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := e.Wait(ctx, runID); err != nil {
		t.Fatalf("run %s did not finish: %v", runID, err)
	}
}
