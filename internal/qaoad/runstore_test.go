package qaoad

import (
	"errors"
	"testing"
)

func TestRunStoreCreateAndGet(t *testing.T) {
	store := NewRunStore()

	rec, err := store.Create("", triangleInput())
	if err != nil {
		t.Fatalf("Create returned error: %v", err)
	}
	if rec.Run.ID == "" {
		t.Fatalf("expected generated run id")
	}
	if rec.Run.Status != StatusPending {
		t.Fatalf("expected status pending, got %v", rec.Run.Status)
	}
	if rec.Run.CreatedAtUnixMs == 0 {
		t.Fatalf("expected created_at_unix_ms to be set")
	}

	got, ok := store.Get(rec.Run.ID)
	if !ok {
		t.Fatalf("expected run to exist")
	}
	if got.Run.ID != rec.Run.ID {
		t.Fatalf("expected same run id")
	}
	if _, ok := store.Get("missing"); ok {
		t.Fatalf("expected missing run to be absent")
	}
}

func TestRunStoreCreateValidation(t *testing.T) {
	store := NewRunStore()
	if _, err := store.Create("run-1", triangleInput()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := store.Create("run-1", triangleInput()); !errors.Is(err, ErrRunExists) {
		t.Fatalf("expected ErrRunExists, got %v", err)
	}
	if _, err := store.Create("run-2", nil); err == nil {
		t.Fatalf("expected error for nil input")
	}
	both := &RunInput{Graph: triangleGraph, Random: &RandomGraph{Vertices: 3}}
	if _, err := store.Create("run-3", both); err == nil {
		t.Fatalf("expected error when both graph sources are set")
	}
	if _, err := store.Create("run-4", &RunInput{}); err == nil {
		t.Fatalf("expected error when no graph source is set")
	}
}

func TestRunStoreSetStatusSetsTimestamps(t *testing.T) {
	store := NewRunStore()
	if _, err := store.Create("run-1", triangleInput()); err != nil {
		t.Fatalf("Create error: %v", err)
	}

	rec, err := store.SetStatus("run-1", StatusRunning, "")
	if err != nil {
		t.Fatalf("SetStatus error: %v", err)
	}
	if rec.Run.StartedAtUnixMs == 0 {
		t.Fatalf("expected started_at_unix_ms to be set")
	}

	rec, err = store.SetStatus("run-1", StatusFailed, "boom")
	if err != nil {
		t.Fatalf("SetStatus error: %v", err)
	}
	if rec.Run.EndedAtUnixMs == 0 || rec.Run.Error != "boom" {
		t.Fatalf("expected ended timestamp and error, got %+v", rec.Run)
	}

	if _, err := store.SetStatus("run-1", StatusRunning, ""); !errors.Is(err, ErrRunTerminal) {
		t.Fatalf("expected ErrRunTerminal, got %v", err)
	}
	if _, err := store.SetStatus("missing", StatusRunning, ""); !errors.Is(err, ErrRunNotFound) {
		t.Fatalf("expected ErrRunNotFound, got %v", err)
	}
}

func TestRunStoreCompleteAndProgress(t *testing.T) {
	store := NewRunStore()
	if _, err := store.Create("run-1", triangleInput()); err != nil {
		t.Fatalf("Create error: %v", err)
	}
	store.SetProgress("run-1", 10, -0.5)
	rec, _ := store.Get("run-1")
	if rec.Run.Evaluations != 10 || rec.Run.BestCost != -0.5 {
		t.Fatalf("progress not recorded: %+v", rec.Run)
	}

	rec, err := store.Complete("run-1", &RunResult{Cost: -0.9, Evaluations: 32, Bitstring: "010"})
	if err != nil {
		t.Fatalf("Complete error: %v", err)
	}
	if rec.Run.Status != StatusCompleted || rec.Result == nil || rec.Run.Evaluations != 32 {
		t.Fatalf("unexpected completed record %+v", rec)
	}
	if _, err := store.Complete("run-1", &RunResult{}); !errors.Is(err, ErrRunTerminal) {
		t.Fatalf("expected ErrRunTerminal on second completion, got %v", err)
	}
}

func TestRunStoreGetReturnsCopy(t *testing.T) {
	store := NewRunStore()
	if _, err := store.Create("run-1", triangleInput()); err != nil {
		t.Fatalf("Create error: %v", err)
	}
	rec, _ := store.Get("run-1")
	rec.Run.Status = StatusFailed

	again, _ := store.Get("run-1")
	if again.Run.Status != StatusPending {
		t.Fatalf("mutating a snapshot changed the store: %v", again.Run.Status)
	}
}

func TestRunStoreList(t *testing.T) {
	store := NewRunStore()
	for _, id := range []string{"run-a", "run-b", "run-c"} {
		if _, err := store.Create(id, triangleInput()); err != nil {
			t.Fatalf("Create error: %v", err)
		}
	}
	if got := store.List(2); len(got) != 2 {
		t.Fatalf("expected 2 runs, got %d", len(got))
	}
	if got := store.List(0); len(got) != 3 {
		t.Fatalf("expected default limit to return all 3 runs, got %d", len(got))
	}
}
