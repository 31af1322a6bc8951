// Package qaoad serves QAOA experiments over HTTP and gRPC. Runs are kept
// in memory and executed asynchronously, one goroutine per run.
package qaoad

import (
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/GoSim-25-26J-441/qaoa-core/pkg/utils"
)

// RunStatus is the lifecycle state of a run.
type RunStatus string

const (
	StatusPending   RunStatus = "pending"
	StatusRunning   RunStatus = "running"
	StatusCompleted RunStatus = "completed"
	StatusFailed    RunStatus = "failed"
	StatusCancelled RunStatus = "cancelled"
)

// Terminal reports whether no further transitions are allowed.
func (s RunStatus) Terminal() bool {
	return s == StatusCompleted || s == StatusFailed || s == StatusCancelled
}

// Run is the externally visible state of a run.
type Run struct {
	ID              string    `json:"id"`
	Status          RunStatus `json:"status"`
	Error           string    `json:"error,omitempty"`
	CreatedAtUnixMs int64     `json:"created_at_unix_ms"`
	StartedAtUnixMs int64     `json:"started_at_unix_ms,omitempty"`
	EndedAtUnixMs   int64     `json:"ended_at_unix_ms,omitempty"`
	Evaluations     int       `json:"evaluations"`
	BestCost        float64   `json:"best_cost"`
}

// RandomGraph asks the daemon to generate an Erdős–Rényi instance.
type RandomGraph struct {
	Vertices  int     `json:"vertices"`
	EdgeProb  float64 `json:"edge_prob"`
	MinWeight float64 `json:"min_weight,omitempty"`
	MaxWeight float64 `json:"max_weight,omitempty"`
	IntWeight bool    `json:"int_weight,omitempty"`
	Seed      int64   `json:"seed,omitempty"`
}

// RunInput is what a client submits: an experiment config and either a
// graph in the text file format or a random graph request.
type RunInput struct {
	ConfigYAML string       `json:"config_yaml,omitempty"`
	Graph      string       `json:"graph,omitempty"`
	Random     *RandomGraph `json:"random,omitempty"`
}

// Validate checks that exactly one graph source is given.
func (in *RunInput) Validate() error {
	if in == nil {
		return fmt.Errorf("input is required")
	}
	if (in.Graph == "") == (in.Random == nil) {
		return fmt.Errorf("input needs exactly one of graph or random")
	}
	return nil
}

// RunResult is the summary stored for a completed run.
type RunResult struct {
	Strategy    string    `json:"strategy"`
	Betas       []float64 `json:"betas"`
	Gammas      []float64 `json:"gammas"`
	Cost        float64   `json:"cost"`
	Evaluations int       `json:"evaluations"`
	Bitstring   string    `json:"bitstring"`
	Count       int       `json:"count"`
	TotalShots  int       `json:"total_shots"`
	CutValue    int       `json:"cut_value,omitempty"`
	MWISWeight  float64   `json:"mwis_weight,omitempty"`
	Feasible    bool      `json:"feasible"`
	Report      string    `json:"report"`
}

// RunRecord is a snapshot of one stored run.
type RunRecord struct {
	Run    Run        `json:"run"`
	Input  *RunInput  `json:"input,omitempty"`
	Result *RunResult `json:"result,omitempty"`
}

// RunStore keeps runs in memory. Getters return copies.
type RunStore struct {
	mu   sync.RWMutex
	runs map[string]*RunRecord
}

func NewRunStore() *RunStore {
	return &RunStore{
		runs: make(map[string]*RunRecord),
	}
}

func nowUnixMs() int64 {
	return time.Now().UTC().UnixMilli()
}

// Create stores a pending run. An empty runID is replaced by a generated one.
func (s *RunStore) Create(runID string, input *RunInput) (RunRecord, error) {
	if err := input.Validate(); err != nil {
		return RunRecord{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if runID == "" {
		runID = utils.GenerateRunID()
	}
	if _, exists := s.runs[runID]; exists {
		return RunRecord{}, fmt.Errorf("%w: %s", ErrRunExists, runID)
	}

	rec := &RunRecord{
		Run: Run{
			ID:              runID,
			Status:          StatusPending,
			CreatedAtUnixMs: nowUnixMs(),
		},
		Input: input,
	}
	s.runs[runID] = rec
	return *rec, nil
}

func (s *RunStore) Get(runID string) (RunRecord, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	rec, ok := s.runs[runID]
	if !ok {
		return RunRecord{}, false
	}
	return *rec, true
}

// List returns up to limit runs, newest first.
func (s *RunStore) List(limit int) []RunRecord {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if limit <= 0 {
		limit = 50
	}
	out := make([]RunRecord, 0, len(s.runs))
	for _, rec := range s.runs {
		out = append(out, *rec)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Run.CreatedAtUnixMs != out[j].Run.CreatedAtUnixMs {
			return out[i].Run.CreatedAtUnixMs > out[j].Run.CreatedAtUnixMs
		}
		return out[i].Run.ID < out[j].Run.ID
	})
	if len(out) > limit {
		out = out[:limit]
	}
	return out
}

// SetStatus moves a run to status. Terminal runs cannot change.
func (s *RunStore) SetStatus(runID string, status RunStatus, errMsg string) (RunRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	rec, ok := s.runs[runID]
	if !ok {
		return RunRecord{}, fmt.Errorf("%w: %s", ErrRunNotFound, runID)
	}
	if rec.Run.Status.Terminal() {
		return *rec, fmt.Errorf("%w: %s is %s", ErrRunTerminal, runID, rec.Run.Status)
	}

	rec.Run.Status = status
	if errMsg != "" {
		rec.Run.Error = errMsg
	}

	switch status {
	case StatusRunning:
		if rec.Run.StartedAtUnixMs == 0 {
			rec.Run.StartedAtUnixMs = nowUnixMs()
		}
	case StatusCompleted, StatusFailed, StatusCancelled:
		rec.Run.EndedAtUnixMs = nowUnixMs()
	}

	return *rec, nil
}

// SetProgress records the search progress of a running run.
func (s *RunStore) SetProgress(runID string, evaluations int, bestCost float64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if rec, ok := s.runs[runID]; ok {
		rec.Run.Evaluations = evaluations
		rec.Run.BestCost = bestCost
	}
}

// Complete stores the result and marks the run completed, unless it was
// cancelled in the meantime.
func (s *RunStore) Complete(runID string, result *RunResult) (RunRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	rec, ok := s.runs[runID]
	if !ok {
		return RunRecord{}, fmt.Errorf("%w: %s", ErrRunNotFound, runID)
	}
	if rec.Run.Status.Terminal() {
		return *rec, fmt.Errorf("%w: %s is %s", ErrRunTerminal, runID, rec.Run.Status)
	}
	rec.Result = result
	rec.Run.Status = StatusCompleted
	rec.Run.EndedAtUnixMs = nowUnixMs()
	rec.Run.Evaluations = result.Evaluations
	rec.Run.BestCost = result.Cost
	return *rec, nil
}
