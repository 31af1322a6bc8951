package qaoad

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/structpb"

	"github.com/GoSim-25-26J-441/qaoa-core/pkg/logger"
)

// ExperimentGRPCServer implements ExperimentServer on top of a RunStore.
type ExperimentGRPCServer struct {
	store    *RunStore
	Executor *RunExecutor
}

func NewExperimentGRPCServer(store *RunStore, executor *RunExecutor) *ExperimentGRPCServer {
	return &ExperimentGRPCServer{
		store:    store,
		Executor: executor,
	}
}

// decode copies a Struct request into v through its JSON form.
func decode(in *structpb.Struct, v any) error {
	if in == nil {
		return status.Error(codes.InvalidArgument, "request is required")
	}
	data, err := in.MarshalJSON()
	if err != nil {
		return status.Error(codes.InvalidArgument, err.Error())
	}
	if err := json.Unmarshal(data, v); err != nil {
		return status.Error(codes.InvalidArgument, "invalid request: "+err.Error())
	}
	return nil
}

// encode converts v into a Struct response through its JSON form.
func encode(v any) (*structpb.Struct, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return nil, status.Error(codes.Internal, err.Error())
	}
	out := new(structpb.Struct)
	if err := out.UnmarshalJSON(data); err != nil {
		return nil, status.Error(codes.Internal, err.Error())
	}
	return out, nil
}

type runIDRequest struct {
	RunID string `json:"run_id"`
}

func runIDFrom(in *structpb.Struct) (string, error) {
	var req runIDRequest
	if err := decode(in, &req); err != nil {
		return "", err
	}
	if req.RunID == "" {
		return "", status.Error(codes.InvalidArgument, "run_id is required")
	}
	return req.RunID, nil
}

func runStatusError(err error) error {
	switch {
	case errors.Is(err, ErrRunNotFound):
		return status.Error(codes.NotFound, err.Error())
	case errors.Is(err, ErrRunTerminal):
		return status.Error(codes.FailedPrecondition, err.Error())
	case errors.Is(err, ErrRunIDMissing):
		return status.Error(codes.InvalidArgument, err.Error())
	default:
		return status.Error(codes.Internal, err.Error())
	}
}

func (s *ExperimentGRPCServer) CreateRun(ctx context.Context, in *structpb.Struct) (*structpb.Struct, error) {
	var req struct {
		RunID string    `json:"run_id"`
		Input *RunInput `json:"input"`
		Start bool      `json:"start"`
	}
	if err := decode(in, &req); err != nil {
		return nil, err
	}
	if req.Input == nil {
		return nil, status.Error(codes.InvalidArgument, "input is required")
	}
	if _, _, err := resolveInput(req.Input); err != nil {
		return nil, status.Error(codes.InvalidArgument, err.Error())
	}

	rec, err := s.store.Create(req.RunID, req.Input)
	if err != nil {
		if errors.Is(err, ErrRunExists) {
			return nil, status.Error(codes.AlreadyExists, err.Error())
		}
		return nil, status.Error(codes.InvalidArgument, err.Error())
	}
	logger.Info("run created", "run_id", rec.Run.ID)

	if req.Start {
		if rec, err = s.Executor.Start(rec.Run.ID); err != nil {
			return nil, runStatusError(err)
		}
	}
	return encode(map[string]any{"run": rec.Run})
}

func (s *ExperimentGRPCServer) StartRun(ctx context.Context, in *structpb.Struct) (*structpb.Struct, error) {
	runID, err := runIDFrom(in)
	if err != nil {
		return nil, err
	}
	rec, err := s.Executor.Start(runID)
	if err != nil {
		return nil, runStatusError(err)
	}
	logger.Info("run started (executor)", "run_id", runID)
	return encode(map[string]any{"run": rec.Run})
}

func (s *ExperimentGRPCServer) StopRun(ctx context.Context, in *structpb.Struct) (*structpb.Struct, error) {
	runID, err := runIDFrom(in)
	if err != nil {
		return nil, err
	}
	rec, err := s.Executor.Stop(runID)
	if err != nil {
		return nil, runStatusError(err)
	}
	logger.Info("run cancelled", "run_id", runID)
	return encode(map[string]any{"run": rec.Run})
}

func (s *ExperimentGRPCServer) GetRun(ctx context.Context, in *structpb.Struct) (*structpb.Struct, error) {
	runID, err := runIDFrom(in)
	if err != nil {
		return nil, err
	}
	rec, ok := s.store.Get(runID)
	if !ok {
		return nil, status.Error(codes.NotFound, fmt.Sprintf("run not found: %s", runID))
	}
	resp := map[string]any{"run": rec.Run}
	if rec.Result != nil {
		resp["result"] = rec.Result
	}
	return encode(resp)
}

func (s *ExperimentGRPCServer) ListRuns(ctx context.Context, in *structpb.Struct) (*structpb.Struct, error) {
	var req struct {
		Limit int `json:"limit"`
	}
	if in != nil {
		if err := decode(in, &req); err != nil {
			return nil, err
		}
	}
	recs := s.store.List(req.Limit)
	runs := make([]Run, 0, len(recs))
	for _, rec := range recs {
		runs = append(runs, rec.Run)
	}
	return encode(map[string]any{"runs": runs})
}
