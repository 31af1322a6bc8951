package search

import (
	"fmt"
	"math"
	"time"

	"github.com/GoSim-25-26J-441/qaoa-core/pkg/utils"
)

// StrategyComparison summarises several search results on the same problem.
type StrategyComparison struct {
	Entries      []ComparisonEntry `json:"entries"`
	BestStrategy string            `json:"best_strategy"`
	BestCost     float64           `json:"best_cost"`
	Cheapest     string            `json:"cheapest"` // fewest evaluations
	AverageCost  float64           `json:"average_cost"`
	CostStdDev   float64           `json:"cost_std_dev"`
}

// ComparisonEntry is one strategy's line in a comparison.
type ComparisonEntry struct {
	Strategy    string        `json:"strategy"`
	Cost        float64       `json:"cost"`
	Evaluations int           `json:"evaluations"`
	Duration    time.Duration `json:"duration"`
	Gap         float64       `json:"gap"` // cost minus the best cost
}

// Compare ranks results by cost. Ties keep the earlier result.
func Compare(results ...*Result) (*StrategyComparison, error) {
	if len(results) == 0 {
		return nil, fmt.Errorf("no results provided")
	}
	for i, r := range results {
		if r == nil {
			return nil, fmt.Errorf("result %d is nil", i)
		}
	}

	bestIdx, cheapIdx := 0, 0
	costs := make([]float64, len(results))
	for i, r := range results {
		costs[i] = r.Cost
		if r.Cost < results[bestIdx].Cost {
			bestIdx = i
		}
		if r.Evaluations < results[cheapIdx].Evaluations {
			cheapIdx = i
		}
	}

	cmp := &StrategyComparison{
		Entries:      make([]ComparisonEntry, len(results)),
		BestStrategy: results[bestIdx].Strategy,
		BestCost:     results[bestIdx].Cost,
		Cheapest:     results[cheapIdx].Strategy,
		AverageCost:  utils.Mean(costs),
		CostStdDev:   utils.StdDev(costs),
	}
	for i, r := range results {
		cmp.Entries[i] = ComparisonEntry{
			Strategy:    r.Strategy,
			Cost:        r.Cost,
			Evaluations: r.Evaluations,
			Duration:    r.Duration,
			Gap:         r.Cost - cmp.BestCost,
		}
	}
	return cmp, nil
}

// ImprovementPercentage returns how much lower cost2 is than cost1, as a
// percentage of |cost1|.
func ImprovementPercentage(cost1, cost2 float64) float64 {
	if cost1 == 0 {
		return 0
	}
	return (cost1 - cost2) / math.Abs(cost1) * 100
}

// ApproximationRatio returns cost / groundEnergy, the usual QAOA quality
// measure when the ground energy is negative. It is 0 when groundEnergy is 0.
func ApproximationRatio(cost, groundEnergy float64) float64 {
	if groundEnergy == 0 {
		return 0
	}
	return cost / groundEnergy
}
