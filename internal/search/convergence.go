package search

import (
	"fmt"
	"math"

	"github.com/GoSim-25-26J-441/qaoa-core/pkg/config"
	"github.com/GoSim-25-26J-441/qaoa-core/pkg/utils"
)

// ConvergenceStrategy defines how to detect convergence
type ConvergenceStrategy interface {
	// CheckConvergence checks if the search has converged based on history
	CheckConvergence(history []Step) (bool, string)
	// Name returns the name of the convergence strategy
	Name() string
}

// ConvergenceConfig holds configuration for convergence detection
type ConvergenceConfig struct {
	// NoImprovementIterations is the number of iterations without improvement before stopping
	NoImprovementIterations int
	// ImprovementThreshold is the minimum relative improvement to consider significant
	ImprovementThreshold float64
	// ScoreTolerance is the absolute tolerance for cost changes to be considered equal
	ScoreTolerance float64
	// MinIterations is the minimum number of iterations before convergence can be detected
	MinIterations int
	// PlateauIterations is the number of iterations with similar costs (plateau) before stopping
	PlateauIterations int
}

// DefaultConvergenceConfig returns a default convergence configuration
func DefaultConvergenceConfig() *ConvergenceConfig {
	return &ConvergenceConfig{
		NoImprovementIterations: 5,
		ImprovementThreshold:    0.001,
		ScoreTolerance:          1e-6,
		MinIterations:           3,
		PlateauIterations:       5,
	}
}

// NoImprovementStrategy detects convergence when there's no improvement for N iterations
type NoImprovementStrategy struct {
	config *ConvergenceConfig
}

// NewNoImprovementStrategy creates a new no-improvement convergence strategy
func NewNoImprovementStrategy(config *ConvergenceConfig) *NoImprovementStrategy {
	if config == nil {
		config = DefaultConvergenceConfig()
	}
	return &NoImprovementStrategy{config: config}
}

func (s *NoImprovementStrategy) Name() string {
	return "no_improvement"
}

func (s *NoImprovementStrategy) CheckConvergence(history []Step) (bool, string) {
	if len(history) < s.config.MinIterations {
		return false, ""
	}

	bestCost := math.Inf(1)
	bestIteration := -1
	for i, step := range history {
		if step.Cost < bestCost {
			bestCost = step.Cost
			bestIteration = i
		}
	}
	if bestIteration < 0 {
		return false, ""
	}

	iterationsSinceBest := len(history) - 1 - bestIteration
	if iterationsSinceBest >= s.config.NoImprovementIterations {
		return true, fmt.Sprintf("no improvement for %d iterations (best at iteration %d)", iterationsSinceBest, history[bestIteration].Iteration)
	}
	return false, ""
}

// PlateauStrategy detects convergence when costs have plateaued
type PlateauStrategy struct {
	config *ConvergenceConfig
}

// NewPlateauStrategy creates a new plateau convergence strategy
func NewPlateauStrategy(config *ConvergenceConfig) *PlateauStrategy {
	if config == nil {
		config = DefaultConvergenceConfig()
	}
	return &PlateauStrategy{config: config}
}

func (s *PlateauStrategy) Name() string {
	return "plateau"
}

func (s *PlateauStrategy) CheckConvergence(history []Step) (bool, string) {
	if len(history) < s.config.MinIterations || len(history) < s.config.PlateauIterations || s.config.PlateauIterations < 2 {
		return false, ""
	}

	recent := history[len(history)-s.config.PlateauIterations:]
	lo, hi := recent[0].Cost, recent[0].Cost
	for _, step := range recent {
		lo = math.Min(lo, step.Cost)
		hi = math.Max(hi, step.Cost)
	}
	if hi-lo <= s.config.ScoreTolerance {
		return true, fmt.Sprintf("cost plateaued for %d iterations (range: %.6g)", s.config.PlateauIterations, hi-lo)
	}
	return false, ""
}

// ThresholdStrategy detects convergence when relative improvements fall
// below a threshold. Costs may be negative, so improvements are measured
// relative to the magnitude of the previous cost.
type ThresholdStrategy struct {
	config *ConvergenceConfig
}

// NewThresholdStrategy creates a new improvement threshold convergence strategy
func NewThresholdStrategy(config *ConvergenceConfig) *ThresholdStrategy {
	if config == nil {
		config = DefaultConvergenceConfig()
	}
	return &ThresholdStrategy{config: config}
}

func (s *ThresholdStrategy) Name() string {
	return "improvement_threshold"
}

func (s *ThresholdStrategy) CheckConvergence(history []Step) (bool, string) {
	window := s.config.NoImprovementIterations
	if len(history) < s.config.MinIterations+1 || window < 2 || len(history) < window {
		return false, ""
	}

	recent := history[len(history)-window:]
	var improvements []float64
	for i := 1; i < len(recent); i++ {
		prev := math.Abs(recent[i-1].Cost)
		if prev > 0 {
			improvements = append(improvements, (recent[i-1].Cost-recent[i].Cost)/prev)
		}
	}
	if len(improvements) == 0 {
		return false, ""
	}

	maxImprovement := improvements[0]
	for _, imp := range improvements {
		if imp > s.config.ImprovementThreshold {
			return false, ""
		}
		maxImprovement = math.Max(maxImprovement, imp)
	}
	return true, fmt.Sprintf("improvements below threshold (max: %.4f%%, threshold: %.4f%%)", maxImprovement*100, s.config.ImprovementThreshold*100)
}

// VarianceStrategy detects convergence when recent costs are stable
type VarianceStrategy struct {
	config *ConvergenceConfig
}

// NewVarianceStrategy creates a new variance-based convergence strategy
func NewVarianceStrategy(config *ConvergenceConfig) *VarianceStrategy {
	if config == nil {
		config = DefaultConvergenceConfig()
	}
	return &VarianceStrategy{config: config}
}

func (s *VarianceStrategy) Name() string {
	return "variance"
}

func (s *VarianceStrategy) CheckConvergence(history []Step) (bool, string) {
	if len(history) < s.config.MinIterations {
		return false, ""
	}
	window := s.config.PlateauIterations
	if len(history) < window {
		window = len(history)
	}
	if window < 2 {
		return false, ""
	}

	costs := make([]float64, window)
	for i, step := range history[len(history)-window:] {
		costs[i] = step.Cost
	}
	mean := utils.Mean(costs)
	if mean == 0 {
		return false, ""
	}
	relative := utils.StdDev(costs) / math.Abs(mean)
	if relative < s.config.ImprovementThreshold {
		return true, fmt.Sprintf("low cost variance (relative stddev: %.4f%%)", relative*100)
	}
	return false, ""
}

// CombinedStrategy converges as soon as any of its strategies does
type CombinedStrategy struct {
	strategies []ConvergenceStrategy
}

// NewCombinedStrategy combines no-improvement, plateau and threshold detection.
func NewCombinedStrategy(config *ConvergenceConfig) *CombinedStrategy {
	if config == nil {
		config = DefaultConvergenceConfig()
	}
	return &CombinedStrategy{
		strategies: []ConvergenceStrategy{
			NewNoImprovementStrategy(config),
			NewPlateauStrategy(config),
			NewThresholdStrategy(config),
		},
	}
}

func (s *CombinedStrategy) Name() string {
	return "combined"
}

func (s *CombinedStrategy) CheckConvergence(history []Step) (bool, string) {
	for _, strategy := range s.strategies {
		if converged, reason := strategy.CheckConvergence(history); converged {
			return true, fmt.Sprintf("%s: %s", strategy.Name(), reason)
		}
	}
	return false, ""
}

// AddStrategy adds a custom strategy to the combined strategy
func (s *CombinedStrategy) AddStrategy(strategy ConvergenceStrategy) {
	s.strategies = append(s.strategies, strategy)
}

// UnknownConvergenceError indicates an unknown convergence strategy name
type UnknownConvergenceError struct {
	Strategy string
}

func (e *UnknownConvergenceError) Error() string {
	return "unknown convergence strategy: " + e.Strategy
}

// NewConvergenceStrategy builds the convergence strategy named by cfg. A
// combined strategy with listed members holds exactly those members. An
// empty name gives the default combined strategy.
func NewConvergenceStrategy(cfg config.Convergence) (ConvergenceStrategy, error) {
	if cfg.Strategy == "" {
		return NewCombinedStrategy(nil), nil
	}
	cc := &ConvergenceConfig{
		NoImprovementIterations: cfg.NoImprovementIterations,
		ImprovementThreshold:    cfg.ImprovementThreshold,
		ScoreTolerance:          cfg.ScoreTolerance,
		MinIterations:           cfg.MinIterations,
		PlateauIterations:       cfg.PlateauIterations,
	}
	if cfg.Strategy != config.ConvergenceCombined {
		return singleConvergence(cfg.Strategy, cc)
	}
	if len(cfg.Strategies) == 0 {
		return NewCombinedStrategy(cc), nil
	}
	combined := &CombinedStrategy{}
	for _, name := range cfg.Strategies {
		member, err := singleConvergence(name, cc)
		if err != nil {
			return nil, err
		}
		combined.AddStrategy(member)
	}
	return combined, nil
}

func singleConvergence(name string, cc *ConvergenceConfig) (ConvergenceStrategy, error) {
	switch name {
	case config.ConvergenceNoImprovement:
		return NewNoImprovementStrategy(cc), nil
	case config.ConvergencePlateau:
		return NewPlateauStrategy(cc), nil
	case config.ConvergenceThreshold:
		return NewThresholdStrategy(cc), nil
	case config.ConvergenceVariance:
		return NewVarianceStrategy(cc), nil
	default:
		return nil, &UnknownConvergenceError{Strategy: name}
	}
}
