package utils

import (
	"strings"
	"sync"
	"testing"

	"github.com/google/uuid"
)

func TestGenerateRunID(t *testing.T) {
	id := GenerateRunID()
	if !strings.HasPrefix(id, "run-") {
		t.Fatalf("expected run- prefix, got %s", id)
	}
	// run-YYYYMMDD-HHMMSS-xxxxxxxx
	parts := strings.Split(id, "-")
	if len(parts) != 4 {
		t.Fatalf("expected 4 dash-separated parts, got %d in %s", len(parts), id)
	}
	if len(parts[3]) != 8 {
		t.Fatalf("expected 8 character suffix, got %q", parts[3])
	}
}

func TestGenerateRunIDUnique(t *testing.T) {
	var mu sync.Mutex
	seen := make(map[string]bool)
	var wg sync.WaitGroup
	for i := 0; i < 200; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			id := GenerateRunID()
			mu.Lock()
			defer mu.Unlock()
			if seen[id] {
				t.Errorf("duplicate run id %s", id)
			}
			seen[id] = true
		}()
	}
	wg.Wait()
}

func TestGenerateRequestID(t *testing.T) {
	id := GenerateRequestID()
	if _, err := uuid.Parse(id); err != nil {
		t.Fatalf("expected a valid UUID, got %s: %v", id, err)
	}
}
