package config

import (
	"fmt"
	"os"
)

// LoadConfig loads and parses a configuration file
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}
	cfg, err := ParseConfigYAML(data)
	if err != nil {
		return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
	}
	return cfg, nil
}

// Validate performs validation on the configuration
func Validate(cfg *Config) error {
	validLogLevels := map[string]bool{
		"debug": true,
		"info":  true,
		"warn":  true,
		"error": true,
	}
	if !validLogLevels[cfg.LogLevel] {
		return fmt.Errorf("invalid log_level: %s (must be debug, info, warn, or error)", cfg.LogLevel)
	}

	if cfg.Problem != ProblemMaxCut && cfg.Problem != ProblemMWIS {
		return fmt.Errorf("invalid problem: %s (must be maxcut or mwis)", cfg.Problem)
	}

	if err := validateSearch(&cfg.Search); err != nil {
		return fmt.Errorf("search validation failed: %w", err)
	}
	if err := validateExecutor(&cfg.Executor); err != nil {
		return fmt.Errorf("executor validation failed: %w", err)
	}
	if err := validateExtraction(&cfg.Extraction); err != nil {
		return fmt.Errorf("extraction validation failed: %w", err)
	}

	return nil
}

// validateSearch validates the search configuration
func validateSearch(s *Search) error {
	validStrategies := map[string]bool{
		StrategyGrid:       true,
		StrategyNelderMead: true,
		StrategyHillClimb:  true,
	}
	if !validStrategies[s.Strategy] {
		return fmt.Errorf("invalid strategy: %s (must be grid, nelder_mead, or hill_climb)", s.Strategy)
	}
	if s.Depth < 1 {
		return fmt.Errorf("depth must be at least 1, got %d", s.Depth)
	}

	switch s.Strategy {
	case StrategyGrid:
		if s.GridResolution < 2 {
			return fmt.Errorf("grid_resolution must be at least 2, got %d", s.GridResolution)
		}
		if s.MaxPoints < 0 {
			return fmt.Errorf("max_points cannot be negative, got %d", s.MaxPoints)
		}
	case StrategyNelderMead:
		if s.MaxIterations <= 0 {
			return fmt.Errorf("max_iterations must be positive, got %d", s.MaxIterations)
		}
		if s.MaxEvaluations < 0 {
			return fmt.Errorf("max_evaluations cannot be negative, got %d", s.MaxEvaluations)
		}
	case StrategyHillClimb:
		if s.MaxIterations <= 0 {
			return fmt.Errorf("max_iterations must be positive, got %d", s.MaxIterations)
		}
		if s.StepSize <= 0 {
			return fmt.Errorf("step_size must be positive, got %f", s.StepSize)
		}
		validExploration := map[string]bool{
			"":             true,
			"default":      true,
			"conservative": true,
			"aggressive":   true,
		}
		if !validExploration[s.Exploration] {
			return fmt.Errorf("invalid exploration: %s (must be default, conservative, or aggressive)", s.Exploration)
		}
	}

	if s.Workers < 0 {
		return fmt.Errorf("workers cannot be negative, got %d", s.Workers)
	}
	if len(s.InitialBetas) > 0 || len(s.InitialGammas) > 0 {
		if len(s.InitialBetas) != s.Depth || len(s.InitialGammas) != s.Depth {
			return fmt.Errorf("initial_betas and initial_gammas need %d entries each, got %d and %d",
				s.Depth, len(s.InitialBetas), len(s.InitialGammas))
		}
	}
	if err := validateConvergence(&s.Convergence); err != nil {
		return fmt.Errorf("convergence: %w", err)
	}
	return nil
}

// validateConvergence validates the early-stopping configuration
func validateConvergence(c *Convergence) error {
	members := map[string]bool{
		ConvergenceNoImprovement: true,
		ConvergencePlateau:       true,
		ConvergenceThreshold:     true,
		ConvergenceVariance:      true,
	}
	if c.Strategy == "" {
		return nil
	}
	if c.Strategy != ConvergenceCombined && !members[c.Strategy] {
		return fmt.Errorf("invalid strategy: %s (must be combined, no_improvement, plateau, improvement_threshold, or variance)", c.Strategy)
	}
	if len(c.Strategies) > 0 && c.Strategy != ConvergenceCombined {
		return fmt.Errorf("strategies only apply to the combined strategy")
	}
	for _, name := range c.Strategies {
		if !members[name] {
			return fmt.Errorf("invalid combined member: %s", name)
		}
	}
	if c.NoImprovementIterations < 0 || c.MinIterations < 0 || c.PlateauIterations < 0 {
		return fmt.Errorf("iteration counts cannot be negative")
	}
	if c.ImprovementThreshold < 0 || c.ScoreTolerance < 0 {
		return fmt.Errorf("improvement_threshold and score_tolerance cannot be negative")
	}
	return nil
}

// validateExecutor validates the executor configuration
func validateExecutor(e *Executor) error {
	validModes := map[string]bool{
		ModeStatevector: true,
		ModeSampled:     true,
		ModeNoisy:       true,
	}
	if !validModes[e.Mode] {
		return fmt.Errorf("invalid mode: %s (must be statevector, sampled, or noisy)", e.Mode)
	}
	if e.Mode != ModeStatevector && e.Shots <= 0 {
		return fmt.Errorf("shots must be positive in %s mode, got %d", e.Mode, e.Shots)
	}
	if e.Noise.SingleQubit < 0 || e.Noise.SingleQubit > 1 {
		return fmt.Errorf("noise single_qubit must be between 0 and 1, got %f", e.Noise.SingleQubit)
	}
	if e.Noise.TwoQubit < 0 || e.Noise.TwoQubit > 1 {
		return fmt.Errorf("noise two_qubit must be between 0 and 1, got %f", e.Noise.TwoQubit)
	}
	return nil
}

// validateExtraction validates the extraction configuration
func validateExtraction(x *Extraction) error {
	if x.Shots <= 0 {
		return fmt.Errorf("shots must be positive, got %d", x.Shots)
	}
	if x.RandomSamples < 0 {
		return fmt.Errorf("random_samples cannot be negative, got %d", x.RandomSamples)
	}
	return nil
}
