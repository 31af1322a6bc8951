package qaoad

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/GoSim-25-26J-441/qaoa-core/internal/experiment"
	"github.com/GoSim-25-26J-441/qaoa-core/pkg/config"
	"github.com/GoSim-25-26J-441/qaoa-core/pkg/graph"
	"github.com/GoSim-25-26J-441/qaoa-core/pkg/logger"
	"github.com/GoSim-25-26J-441/qaoa-core/pkg/utils"
)

var (
	ErrRunNotFound  = errors.New("run not found")
	ErrRunTerminal  = errors.New("run is terminal")
	ErrRunIDMissing = errors.New("run_id is required")
	ErrRunExists    = errors.New("run already exists")
)

// RunExecutor manages asynchronous run execution and per-run cancellation.
type RunExecutor struct {
	store *RunStore

	mu      sync.Mutex
	cancels map[string]context.CancelFunc
	done    map[string]chan struct{}
}

func NewRunExecutor(store *RunStore) *RunExecutor {
	return &RunExecutor{
		store:   store,
		cancels: make(map[string]context.CancelFunc),
		done:    make(map[string]chan struct{}),
	}
}

// Start begins executing a run asynchronously and returns its RUNNING
// state. Starting a running run is a no-op.
func (e *RunExecutor) Start(runID string) (RunRecord, error) {
	if runID == "" {
		return RunRecord{}, ErrRunIDMissing
	}

	rec, ok := e.store.Get(runID)
	if !ok {
		return RunRecord{}, fmt.Errorf("%w: %s", ErrRunNotFound, runID)
	}
	switch {
	case rec.Run.Status == StatusRunning:
		return rec, nil
	case rec.Run.Status.Terminal():
		return RunRecord{}, fmt.Errorf("%w: %s", ErrRunTerminal, runID)
	}

	updated, err := e.store.SetStatus(runID, StatusRunning, "")
	if err != nil {
		return RunRecord{}, err
	}

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	e.mu.Lock()
	if old, exists := e.cancels[runID]; exists {
		old()
	}
	e.cancels[runID] = cancel
	e.done[runID] = done
	e.mu.Unlock()

	go e.runExperiment(ctx, runID, done)
	return updated, nil
}

// Stop cancels a run and marks it cancelled.
func (e *RunExecutor) Stop(runID string) (RunRecord, error) {
	if runID == "" {
		return RunRecord{}, ErrRunIDMissing
	}

	updated, err := e.store.SetStatus(runID, StatusCancelled, "")
	if err != nil {
		return RunRecord{}, err
	}

	e.mu.Lock()
	cancel, ok := e.cancels[runID]
	e.mu.Unlock()
	if ok {
		cancel()
	}
	return updated, nil
}

// Wait blocks until the run's goroutine has finished or ctx is done. It
// returns immediately for runs that were never started.
func (e *RunExecutor) Wait(ctx context.Context, runID string) error {
	e.mu.Lock()
	done, ok := e.done[runID]
	e.mu.Unlock()
	if !ok {
		return nil
	}
	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// StopAll cancels every running run, used on shutdown.
func (e *RunExecutor) StopAll() {
	e.mu.Lock()
	ids := make([]string, 0, len(e.cancels))
	for id := range e.cancels {
		ids = append(ids, id)
	}
	e.mu.Unlock()
	for _, id := range ids {
		if _, err := e.Stop(id); err != nil && !errors.Is(err, ErrRunTerminal) {
			logger.Warn("failed to stop run", "run_id", id, "error", err)
		}
	}
}

func (e *RunExecutor) cleanup(runID string) {
	e.mu.Lock()
	if cancel, ok := e.cancels[runID]; ok {
		cancel()
		delete(e.cancels, runID)
	}
	e.mu.Unlock()
}

func (e *RunExecutor) fail(runID, msg string, err error) {
	logger.Error(msg, "run_id", runID, "error", err)
	if _, setErr := e.store.SetStatus(runID, StatusFailed, fmt.Sprintf("%s: %v", msg, err)); setErr != nil && !errors.Is(setErr, ErrRunTerminal) {
		logger.Error("failed to set failed status", "run_id", runID, "error", setErr)
	}
}

func (e *RunExecutor) runExperiment(ctx context.Context, runID string, done chan struct{}) {
	defer close(done)
	defer e.cleanup(runID)

	rec, ok := e.store.Get(runID)
	if !ok {
		logger.Error("run not found", "run_id", runID)
		return
	}

	cfg, g, err := resolveInput(rec.Input)
	if err != nil {
		e.fail(runID, "invalid input", err)
		return
	}

	out, err := experiment.Run(ctx, cfg, g,
		experiment.WithRunID(runID),
		experiment.WithLogger(logger.Component("qaoad")),
		experiment.WithProgress(func(evaluations int, best float64) {
			e.store.SetProgress(runID, evaluations, best)
		}))
	if err != nil {
		if errors.Is(err, context.Canceled) {
			logger.Info("run cancelled", "run_id", runID)
			return
		}
		e.fail(runID, "run failed", err)
		return
	}

	result, err := summarize(out)
	if err != nil {
		e.fail(runID, "report failed", err)
		return
	}
	if _, err := e.store.Complete(runID, result); err != nil {
		logger.Warn("run finished after it was stopped", "run_id", runID, "error", err)
		return
	}
	logger.Info("run completed", "run_id", runID, "cost", result.Cost, "bitstring", result.Bitstring)
}

// resolveInput parses the config and builds the graph of a run.
func resolveInput(in *RunInput) (*config.Config, *graph.Graph, error) {
	if err := in.Validate(); err != nil {
		return nil, nil, err
	}
	cfg := config.Default()
	if strings.TrimSpace(in.ConfigYAML) != "" {
		var err error
		cfg, err = config.ParseConfigYAMLString(in.ConfigYAML)
		if err != nil {
			return nil, nil, err
		}
	}

	if in.Random != nil {
		g, err := graph.ErdosRenyi(graph.RandomOptions{
			Vertices:  in.Random.Vertices,
			EdgeProb:  in.Random.EdgeProb,
			MinWeight: in.Random.MinWeight,
			MaxWeight: in.Random.MaxWeight,
			IntWeight: in.Random.IntWeight,
		}, utils.NewRandSource(in.Random.Seed))
		if err != nil {
			return nil, nil, fmt.Errorf("random graph: %w", err)
		}
		return cfg, g, nil
	}
	g, err := graph.Parse(strings.NewReader(in.Graph))
	if err != nil {
		return nil, nil, fmt.Errorf("graph: %w", err)
	}
	return cfg, g, nil
}

func summarize(out *experiment.Outcome) (*RunResult, error) {
	text, err := out.Report.Text()
	if err != nil {
		return nil, err
	}
	res := &RunResult{
		Strategy:    out.Search.Strategy,
		Betas:       out.Search.Angles.Betas,
		Gammas:      out.Search.Angles.Gammas,
		Cost:        out.Search.Cost,
		Evaluations: out.Search.Evaluations,
		Bitstring:   out.Solution.Bitstring,
		Count:       out.Solution.Count,
		TotalShots:  out.Solution.TotalShots,
		CutValue:    out.Solution.CutValue,
		Feasible:    true,
		Report:      text,
	}
	if out.Solution.MWIS != nil {
		res.MWISWeight = out.Solution.MWIS.Weight
		res.Feasible = out.Solution.MWIS.Feasible
	}
	return res, nil
}
