package logger

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/yungbote/deckgen-backend/internal/platform/ctxutil"
)

func TestRedactorMasksSecrets(t *testing.T) {
	r := &redactor{enabled: true}
	out := r.pairs([]interface{}{"api_key", "abc", "catalog_dsn", "postgres://u:p@h/db", "slides", 3})
	require.Equal(t, redacted, out[1])
	require.Equal(t, redacted, out[3])
	require.Equal(t, 3, out[5])
}

func TestRedactorHashesClientAddress(t *testing.T) {
	r := &redactor{enabled: true, salt: "pepper"}
	out := r.pairs([]interface{}{"client_ip", "10.0.0.1"})
	s, _ := out[1].(string)
	require.True(t, strings.HasPrefix(s, "hash:"))
	require.NotContains(t, s, "10.0.0.1")
	require.Equal(t, s, r.pairs([]interface{}{"client_ip", "10.0.0.1"})[1], "hash must be stable")
}

func TestRedactorCatchesCredentialValues(t *testing.T) {
	r := &redactor{enabled: true}
	out := r.pairs([]interface{}{
		"header", "Bearer abc.def",
		"note", "sk-proj-0123456789abcdefghij",
		"nested", map[string]interface{}{"password": "hunter2", "title": "Q1"},
		"text", "Plain prose. With dots. Everywhere.",
	})
	require.Equal(t, redacted, out[1])
	require.Equal(t, redacted, out[3])
	require.Equal(t, map[string]interface{}{"password": redacted, "title": "Q1"}, out[5])
	require.Equal(t, "Plain prose. With dots. Everywhere.", out[7])
}

func TestRedactorDisabledAndOddLength(t *testing.T) {
	off := &redactor{enabled: false}
	in := []interface{}{"token", "t"}
	require.Equal(t, in, off.pairs(in))

	on := &redactor{enabled: true}
	out := on.pairs([]interface{}{"path", "/x", "dangling"})
	require.Equal(t, []interface{}{"path", "/x", "dangling"}, out)
}

func TestWithContextAddsCorrelationIDs(t *testing.T) {
	core, logs := observer.New(zap.DebugLevel)
	l := &Logger{SugaredLogger: zap.New(core).Sugar(), redact: &redactor{enabled: true}}

	ctx := ctxutil.WithTraceData(context.Background(), &ctxutil.TraceData{RequestID: "r1", TraceID: "t1"})
	l.WithContext(ctx).Info("rendered", "slides", 4)
	l.WithContext(context.Background()).Info("plain")

	entries := logs.All()
	require.Len(t, entries, 2)
	fields := entries[0].ContextMap()
	require.Equal(t, "r1", fields["request_id"])
	require.Equal(t, "t1", fields["trace_id"])
	require.EqualValues(t, 4, fields["slides"])
	require.NotContains(t, entries[1].ContextMap(), "request_id")
}

func TestNopAcceptsCalls(t *testing.T) {
	l := Nop().With("component", "test")
	l.Info("hello", "k", "v")
	l.Sync()
}
