package qaoad

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func newTestHTTPServer() (*HTTPServer, *RunStore, *RunExecutor) {
	store := NewRunStore()
	exec := NewRunExecutor(store)
	return NewHTTPServer(store, exec), store, exec
}

func doJSON(t *testing.T, h http.Handler, method, path string, body any) (*httptest.ResponseRecorder, map[string]any) {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("encode body: %v", err)
		}
	}
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, httptest.NewRequest(method, path, &buf))

	var out map[string]any
	if strings.HasPrefix(rr.Header().Get("Content-Type"), "application/json") {
		if err := json.Unmarshal(rr.Body.Bytes(), &out); err != nil {
			t.Fatalf("invalid json %q: %v", rr.Body.String(), err)
		}
	}
	return rr, out
}

func TestHTTPServerHealthz(t *testing.T) {
	srv, _, _ := newTestHTTPServer()
	rr, body := doJSON(t, srv.Handler(), http.MethodGet, "/healthz", nil)

	if rr.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rr.Code)
	}
	if body["status"] != "ok" {
		t.Fatalf("expected status ok, got %v", body["status"])
	}
	if body["timestamp"] == "" {
		t.Fatalf("expected timestamp to be set")
	}
	if rr.Header().Get("X-Request-ID") == "" {
		t.Fatalf("expected a request id header")
	}
}

func TestHTTPServerRunLifecycle(t *testing.T) {
	srv, _, exec := newTestHTTPServer()
	h := srv.Handler()

	rr, body := doJSON(t, h, http.MethodPost, "/v1/runs", map[string]any{
		"run_id": "run-http",
		"input":  triangleInput(),
	})
	if rr.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rr.Code, rr.Body.String())
	}
	run := body["run"].(map[string]any)
	if run["id"] != "run-http" || run["status"] != string(StatusPending) {
		t.Fatalf("unexpected run %v", run)
	}

	rr, _ = doJSON(t, h, http.MethodGet, "/v1/runs/run-http/result", nil)
	if rr.Code != http.StatusPreconditionFailed {
		t.Fatalf("expected 412 before the run finishes, got %d", rr.Code)
	}

	rr, body = doJSON(t, h, http.MethodPost, "/v1/runs/run-http/start", nil)
	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rr.Code, rr.Body.String())
	}
	waitRun(t, exec, "run-http")

	rr, body = doJSON(t, h, http.MethodGet, "/v1/runs/run-http/result", nil)
	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rr.Code, rr.Body.String())
	}
	result := body["result"].(map[string]any)
	if len(result["bitstring"].(string)) != 3 {
		t.Fatalf("unexpected result %v", result)
	}

	rr, _ = doJSON(t, h, http.MethodGet, "/v1/runs/run-http/report", nil)
	if rr.Code != http.StatusOK || !strings.HasPrefix(rr.Body.String(), "Optimal beta:") {
		t.Fatalf("unexpected report response %d: %q", rr.Code, rr.Body.String())
	}

	rr, _ = doJSON(t, h, http.MethodPost, "/v1/runs/run-http/stop", nil)
	if rr.Code != http.StatusConflict {
		t.Fatalf("expected 409 stopping a completed run, got %d", rr.Code)
	}

	rr, body = doJSON(t, h, http.MethodGet, "/v1/runs?limit=10", nil)
	if rr.Code != http.StatusOK || len(body["runs"].([]any)) != 1 {
		t.Fatalf("unexpected list response %d: %v", rr.Code, body)
	}
}

func TestHTTPServerCreateAndStart(t *testing.T) {
	srv, store, exec := newTestHTTPServer()
	rr, body := doJSON(t, srv.Handler(), http.MethodPost, "/v1/runs", map[string]any{
		"input": triangleInput(),
		"start": true,
	})
	if rr.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rr.Code, rr.Body.String())
	}
	id := body["run"].(map[string]any)["id"].(string)
	waitRun(t, exec, id)
	if rec, _ := store.Get(id); rec.Run.Status != StatusCompleted {
		t.Fatalf("expected completed, got %v", rec.Run.Status)
	}
}

func TestHTTPServerErrors(t *testing.T) {
	srv, _, _ := newTestHTTPServer()
	h := srv.Handler()

	tests := []struct {
		name   string
		method string
		path   string
		body   any
		want   int
	}{
		{"missing input", http.MethodPost, "/v1/runs", map[string]any{}, http.StatusBadRequest},
		{"bad config", http.MethodPost, "/v1/runs", map[string]any{"input": RunInput{ConfigYAML: "problem: tsp", Graph: triangleGraph}}, http.StatusBadRequest},
		{"bad graph", http.MethodPost, "/v1/runs", map[string]any{"input": RunInput{Graph: "[1]"}}, http.StatusBadRequest},
		{"unknown run", http.MethodGet, "/v1/runs/nope", nil, http.StatusNotFound},
		{"start unknown", http.MethodPost, "/v1/runs/nope/start", nil, http.StatusNotFound},
		{"report unknown", http.MethodGet, "/v1/runs/nope/report", nil, http.StatusNotFound},
		{"bad limit", http.MethodGet, "/v1/runs?limit=abc", nil, http.StatusBadRequest},
		{"wrong method", http.MethodDelete, "/v1/runs/nope", nil, http.StatusMethodNotAllowed},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rr, _ := doJSON(t, h, tt.method, tt.path, tt.body)
			if rr.Code != tt.want {
				t.Fatalf("expected %d, got %d: %s", tt.want, rr.Code, rr.Body.String())
			}
		})
	}

	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, httptest.NewRequest(http.MethodPost, "/v1/runs", strings.NewReader("{")))
	if rr.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for malformed body, got %d", rr.Code)
	}
}

func TestHTTPServerDuplicateRun(t *testing.T) {
	srv, _, _ := newTestHTTPServer()
	h := srv.Handler()
	req := map[string]any{"run_id": "dup", "input": triangleInput()}
	if rr, _ := doJSON(t, h, http.MethodPost, "/v1/runs", req); rr.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", rr.Code)
	}
	if rr, _ := doJSON(t, h, http.MethodPost, "/v1/runs", req); rr.Code != http.StatusConflict {
		t.Fatalf("expected 409, got %d", rr.Code)
	}
}

func TestHTTPServerCORS(t *testing.T) {
	store := NewRunStore()
	srv := NewHTTPServer(store, NewRunExecutor(store), "http://localhost:3000")

	req := httptest.NewRequest(http.MethodOptions, "/v1/runs", nil)
	req.Header.Set("Origin", "http://localhost:3000")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	rr := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rr, req)

	if got := rr.Header().Get("Access-Control-Allow-Origin"); got != "http://localhost:3000" {
		t.Fatalf("expected CORS origin header, got %q", got)
	}
}
