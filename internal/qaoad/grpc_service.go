package qaoad

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/protobuf/types/known/structpb"
)

// ExperimentServiceName is the fully qualified gRPC service name.
const ExperimentServiceName = "qaoa.v1.ExperimentService"

// ExperimentServer is the server API of qaoa.v1.ExperimentService. Requests
// and responses are google.protobuf.Struct documents with the same fields
// as the HTTP API.
type ExperimentServer interface {
	CreateRun(context.Context, *structpb.Struct) (*structpb.Struct, error)
	StartRun(context.Context, *structpb.Struct) (*structpb.Struct, error)
	StopRun(context.Context, *structpb.Struct) (*structpb.Struct, error)
	GetRun(context.Context, *structpb.Struct) (*structpb.Struct, error)
	ListRuns(context.Context, *structpb.Struct) (*structpb.Struct, error)
}

type unaryMethod func(ExperimentServer, context.Context, *structpb.Struct) (*structpb.Struct, error)

func unaryHandler(name string, call unaryMethod) grpc.MethodDesc {
	return grpc.MethodDesc{
		MethodName: name,
		Handler: func(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
			in := new(structpb.Struct)
			if err := dec(in); err != nil {
				return nil, err
			}
			if interceptor == nil {
				return call(srv.(ExperimentServer), ctx, in)
			}
			info := &grpc.UnaryServerInfo{
				Server:     srv,
				FullMethod: "/" + ExperimentServiceName + "/" + name,
			}
			handler := func(ctx context.Context, req any) (any, error) {
				return call(srv.(ExperimentServer), ctx, req.(*structpb.Struct))
			}
			return interceptor(ctx, in, info, handler)
		},
	}
}

// ExperimentServiceDesc describes the service for grpc.Server.RegisterService.
var ExperimentServiceDesc = grpc.ServiceDesc{
	ServiceName: ExperimentServiceName,
	HandlerType: (*ExperimentServer)(nil),
	Methods: []grpc.MethodDesc{
		unaryHandler("CreateRun", ExperimentServer.CreateRun),
		unaryHandler("StartRun", ExperimentServer.StartRun),
		unaryHandler("StopRun", ExperimentServer.StopRun),
		unaryHandler("GetRun", ExperimentServer.GetRun),
		unaryHandler("ListRuns", ExperimentServer.ListRuns),
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "qaoa/v1/experiment.proto",
}

// RegisterExperimentServer registers srv on s.
func RegisterExperimentServer(s grpc.ServiceRegistrar, srv ExperimentServer) {
	s.RegisterService(&ExperimentServiceDesc, srv)
}

// ExperimentClient calls qaoa.v1.ExperimentService.
type ExperimentClient struct {
	cc grpc.ClientConnInterface
}

func NewExperimentClient(cc grpc.ClientConnInterface) *ExperimentClient {
	return &ExperimentClient{cc: cc}
}

func (c *ExperimentClient) invoke(ctx context.Context, method string, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error) {
	out := new(structpb.Struct)
	if err := c.cc.Invoke(ctx, "/"+ExperimentServiceName+"/"+method, in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *ExperimentClient) CreateRun(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error) {
	return c.invoke(ctx, "CreateRun", in, opts...)
}

func (c *ExperimentClient) StartRun(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error) {
	return c.invoke(ctx, "StartRun", in, opts...)
}

func (c *ExperimentClient) StopRun(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error) {
	return c.invoke(ctx, "StopRun", in, opts...)
}

func (c *ExperimentClient) GetRun(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error) {
	return c.invoke(ctx, "GetRun", in, opts...)
}

func (c *ExperimentClient) ListRuns(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error) {
	return c.invoke(ctx, "ListRuns", in, opts...)
}
