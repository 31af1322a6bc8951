package config

// Config represents a QAOA experiment configuration
type Config struct {
	LogLevel   string     `yaml:"log_level" json:"log_level"`
	Problem    string     `yaml:"problem" json:"problem"` // maxcut or mwis
	Search     Search     `yaml:"search" json:"search"`
	Executor   Executor   `yaml:"executor" json:"executor"`
	Extraction Extraction `yaml:"extraction" json:"extraction"`
	Output     Output     `yaml:"output" json:"output"`
}

// Search selects and tunes the parameter search strategy
type Search struct {
	Strategy       string  `yaml:"strategy" json:"strategy"` // grid, nelder_mead, hill_climb
	Depth          int     `yaml:"depth" json:"depth"`       // QAOA layers p
	GridResolution int     `yaml:"grid_resolution" json:"grid_resolution"`
	MaxIterations  int     `yaml:"max_iterations" json:"max_iterations"`
	MaxEvaluations int     `yaml:"max_evaluations" json:"max_evaluations"`
	StepSize       float64 `yaml:"step_size" json:"step_size"`
	Exploration    string  `yaml:"exploration" json:"exploration"` // default, conservative, aggressive
	Workers        int     `yaml:"workers" json:"workers"`
	MaxPoints      int     `yaml:"max_points" json:"max_points"`
	Seed           int64   `yaml:"seed" json:"seed"`

	// Optional start point for nelder_mead and hill_climb, one entry per layer
	InitialBetas  []float64 `yaml:"initial_betas,omitempty" json:"initial_betas,omitempty"`
	InitialGammas []float64 `yaml:"initial_gammas,omitempty" json:"initial_gammas,omitempty"`

	Convergence Convergence `yaml:"convergence" json:"convergence"`
}

// Convergence selects when hill climbing stops before max_iterations
type Convergence struct {
	Strategy   string   `yaml:"strategy" json:"strategy"`                         // combined, no_improvement, plateau, improvement_threshold, variance
	Strategies []string `yaml:"strategies,omitempty" json:"strategies,omitempty"` // members of combined; empty means the default set

	NoImprovementIterations int     `yaml:"no_improvement_iterations" json:"no_improvement_iterations"`
	ImprovementThreshold    float64 `yaml:"improvement_threshold" json:"improvement_threshold"`
	ScoreTolerance          float64 `yaml:"score_tolerance" json:"score_tolerance"`
	MinIterations           int     `yaml:"min_iterations" json:"min_iterations"`
	PlateauIterations       int     `yaml:"plateau_iterations" json:"plateau_iterations"`
}

// Executor configures the circuit simulator
type Executor struct {
	Mode  string `yaml:"mode" json:"mode"` // statevector, sampled, noisy
	Shots int    `yaml:"shots" json:"shots"`
	Seed  int64  `yaml:"seed" json:"seed"`
	Noise Noise  `yaml:"noise" json:"noise"`
}

// Noise holds depolarising error probabilities per gate arity. Each is the
// probability of a non-identity Pauli error, which is lambda * (1 - 4^-n) for
// a channel that fully depolarises n qubits with probability lambda.
type Noise struct {
	SingleQubit float64 `yaml:"single_qubit" json:"single_qubit"`
	TwoQubit    float64 `yaml:"two_qubit" json:"two_qubit"`
}

// Extraction configures sampling at the optimal angles
type Extraction struct {
	Shots         int   `yaml:"shots" json:"shots"`
	RandomSamples int   `yaml:"random_samples" json:"random_samples"`
	Seed          int64 `yaml:"seed" json:"seed"`
}

// Output controls where reports and CSV data are written
type Output struct {
	Dir             string `yaml:"dir" json:"dir"`
	LandscapeCSV    bool   `yaml:"landscape_csv" json:"landscape_csv"`
	DistributionCSV bool   `yaml:"distribution_csv" json:"distribution_csv"`
}

const (
	ProblemMaxCut = "maxcut"
	ProblemMWIS   = "mwis"

	StrategyGrid       = "grid"
	StrategyNelderMead = "nelder_mead"
	StrategyHillClimb  = "hill_climb"

	ConvergenceCombined      = "combined"
	ConvergenceNoImprovement = "no_improvement"
	ConvergencePlateau       = "plateau"
	ConvergenceThreshold     = "improvement_threshold"
	ConvergenceVariance      = "variance"

	ModeStatevector = "statevector"
	ModeSampled     = "sampled"
	ModeNoisy       = "noisy"
)

// Default returns the configuration used when no file is given: Max-Cut,
// one layer, grid resolution 8, exact statevector expectation.
func Default() *Config {
	return &Config{
		LogLevel: "info",
		Problem:  ProblemMaxCut,
		Search: Search{
			Strategy:       StrategyGrid,
			Depth:          1,
			GridResolution: 8,
			MaxIterations:  200,
			MaxEvaluations: 2000,
			StepSize:       0.1,
			Exploration:    "default",
			Workers:        1,
			MaxPoints:      1 << 20,
			Convergence: Convergence{
				Strategy:                ConvergenceCombined,
				NoImprovementIterations: 5,
				ImprovementThreshold:    0.001,
				ScoreTolerance:          1e-6,
				MinIterations:           3,
				PlateauIterations:       5,
			},
		},
		Executor: Executor{
			Mode:  ModeStatevector,
			Shots: 1024,
		},
		Extraction: Extraction{
			Shots:         1024,
			RandomSamples: 1024,
		},
		Output: Output{
			Dir: ".",
		},
	}
}
