package rpc_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/protobuf/types/known/structpb"

	"github.com/velalang/velac/internal/rpc"
)

func request(t *testing.T, file, source string) *structpb.Struct {
	t.Helper()
	req, err := structpb.NewStruct(map[string]interface{}{
		"file":   file,
		"source": source,
	})
	require.NoError(t, err)
	return req
}

func TestAnalyzeOk(t *testing.T) {
	src := `package demo

class Widget {
    var a: int

    new(x: int) {
        this.a = x
    }
}
`
	resp, err := rpc.NewService().Analyze(context.Background(), request(t, "w.vela", src))
	require.NoError(t, err)

	fields := resp.GetFields()
	assert.True(t, fields["ok"].GetBoolValue())
	assert.NotEmpty(t, fields["build_id"].GetStringValue())

	types := fields["types"].GetListValue().GetValues()
	require.Len(t, types, 1)
	assert.Equal(t, "Widget", types[0].GetStructValue().GetFields()["path"].GetStringValue())
}

func TestAnalyzeReportsDiagnostic(t *testing.T) {
	src := `package demo

class Widget {
    func f(): int {
        missing
    }
}
`
	resp, err := rpc.NewService().Analyze(context.Background(), request(t, "w.vela", src))
	require.NoError(t, err, "a diagnostic travels in the response, not as a transport error")

	fields := resp.GetFields()
	assert.False(t, fields["ok"].GetBoolValue())
	assert.Contains(t, fields["error"].GetStringValue(), "UnresolvedIdent")
}

func TestAnalyzeReportsSyntaxError(t *testing.T) {
	resp, err := rpc.NewService().Analyze(context.Background(), request(t, "w.vela", "class {"))
	require.NoError(t, err)

	fields := resp.GetFields()
	assert.False(t, fields["ok"].GetBoolValue())
	assert.Contains(t, fields["error"].GetStringValue(), "SyntaxError")
}
