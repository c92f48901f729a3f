// Package rpc exposes the analyzer as a small gRPC service, so
// analysis can be reached over a network by remote tooling rather
// than only from the CLI. The wire message on both sides is a
// pre-built google.golang.org/protobuf structpb.Struct, so the
// service needs no .proto file and no protoc compilation step: the
// ServiceDesc below is hand-written the way a generated *_grpc.pb.go
// would be, with structpb.Struct standing in for a compiled message
// type.
package rpc

import (
	"context"
	"fmt"

	"google.golang.org/grpc"
	"google.golang.org/protobuf/types/known/structpb"

	"github.com/velalang/velac/internal/analyzer"
	"github.com/velalang/velac/internal/lexer"
	"github.com/velalang/velac/internal/parser"
)

// AnalyzerServer is the service interface RegisterAnalyzerServer binds
// to the gRPC ServiceDesc below.
type AnalyzerServer interface {
	Analyze(context.Context, *structpb.Struct) (*structpb.Struct, error)
}

var serviceDesc = grpc.ServiceDesc{
	ServiceName: "velac.Analyzer",
	HandlerType: (*AnalyzerServer)(nil),
	Methods: []grpc.MethodDesc{
		{MethodName: "Analyze", Handler: analyzeHandler},
	},
	Metadata: "velac/internal/rpc/analyzer.proto",
}

func analyzeHandler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
	in := new(structpb.Struct)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(AnalyzerServer).Analyze(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: "/velac.Analyzer/Analyze"}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(AnalyzerServer).Analyze(ctx, req.(*structpb.Struct))
	}
	return interceptor(ctx, in, info, handler)
}

// RegisterAnalyzerServer binds srv to s under the service name above.
func RegisterAnalyzerServer(s *grpc.Server, srv AnalyzerServer) {
	s.RegisterService(&serviceDesc, srv)
}

// Service implements AnalyzerServer. Every call builds its own
// Analyzer/Type Table/Scope — no instance is ever shared across the
// goroutines gRPC spawns per call.
type Service struct {
	UnimplementedDowngrade
}

// UnimplementedDowngrade satisfies forward-compatible embedding the
// way a generated Unimplemented*Server would, without requiring the
// generated type.
type UnimplementedDowngrade struct{}

// NewService creates the gRPC-facing analyzer service.
func NewService() *Service { return &Service{} }

// Analyze decodes a {"file": string, "source": string} request
// Struct, runs file → lex → parse → index → type, and returns either
// {"ok": true, "build_id": string, "types": [{"path", "members"}, ...]}
// or {"ok": false, "error": string} carrying the rendered diagnostic.
func (s *Service) Analyze(_ context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	fields := req.GetFields()
	file := fields["file"].GetStringValue()
	source := fields["source"].GetStringValue()

	lx := lexer.New(file, source)
	mod, perr := parser.New(file, lx).ParseModule()
	if perr != nil {
		return errorStruct(perr.Error())
	}

	a := analyzer.New()
	typed, aerr := a.AnalyzeModule(mod)
	if aerr != nil {
		return errorStruct(aerr.Error())
	}

	types := make([]interface{}, 0, len(typed.Defs))
	for _, def := range typed.Defs {
		types = append(types, map[string]interface{}{
			"path":    def.Path.String(),
			"members": float64(len(def.Members)),
		})
	}

	out, err := structpb.NewStruct(map[string]interface{}{
		"ok":       true,
		"build_id": typed.BuildID.String(),
		"types":    types,
	})
	if err != nil {
		return nil, fmt.Errorf("rpc: encode response: %w", err)
	}
	return out, nil
}

func errorStruct(msg string) (*structpb.Struct, error) {
	out, err := structpb.NewStruct(map[string]interface{}{
		"ok":    false,
		"error": msg,
	})
	if err != nil {
		return nil, fmt.Errorf("rpc: encode error response: %w", err)
	}
	return out, nil
}
