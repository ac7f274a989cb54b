package logging

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/charmbracelet/log"
	"github.com/m-mizutani/masq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// jsonLogger returns a logger writing JSON lines to buf with redaction on.
func jsonLogger(buf *bytes.Buffer) *slog.Logger {
	return slog.New(slog.NewJSONHandler(buf, &slog.HandlerOptions{
		Level:       slog.LevelDebug,
		ReplaceAttr: NewReplaceAttr(),
	}))
}

func decodeLine(t *testing.T, buf *bytes.Buffer) map[string]any {
	t.Helper()

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))

	return entry
}

// Context loggers

func TestFromContext(t *testing.T) {
	stored := slog.New(slog.NewTextHandler(io.Discard, nil))

	assert.Equal(t, defaultLogger, FromContext(nil)) //nolint:staticcheck // nil guard
	assert.Equal(t, defaultLogger, FromContext(context.Background()))
	assert.Equal(t, stored, FromContext(WithContext(context.Background(), stored)))
}

func TestFromContextOr(t *testing.T) {
	stored := slog.New(slog.NewTextHandler(io.Discard, nil))
	fallback := slog.New(slog.NewJSONHandler(io.Discard, nil))

	tests := []struct {
		name     string
		ctx      context.Context
		fallback *slog.Logger
		expected *slog.Logger
	}{
		{name: "logger in context wins", ctx: WithContext(context.Background(), stored), fallback: fallback, expected: stored},
		{name: "fallback without logger", ctx: context.Background(), fallback: fallback, expected: fallback},
		{name: "fallback with nil context", ctx: nil, fallback: fallback, expected: fallback},
		{name: "default without fallback", ctx: context.Background(), fallback: nil, expected: defaultLogger},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, FromContextOr(tt.ctx, tt.fallback))
		})
	}
}

func TestWith_TrackingIDs(t *testing.T) {
	tests := []struct {
		name  string
		enter func(context.Context) context.Context
		key   string
		value string
	}{
		{name: "request id", enter: func(ctx context.Context) context.Context { return WithRequestID(ctx, "req-123") }, key: KeyRequestID, value: "req-123"},
		{name: "trace id", enter: func(ctx context.Context) context.Context { return WithTraceID(ctx, "trace-456") }, key: KeyTraceID, value: "trace-456"},
		{name: "correlation id", enter: func(ctx context.Context) context.Context { return WithCorrelationID(ctx, "corr-789") }, key: KeyCorrelationID, value: "corr-789"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer

			ctx := tt.enter(WithContext(context.Background(), jsonLogger(&buf)))
			FromContext(ctx).InfoContext(ctx, "handled")

			assert.Equal(t, tt.value, decodeLine(t, &buf)[tt.key])
		})
	}
}

func TestWithAggregate(t *testing.T) {
	var buf bytes.Buffer

	ctx := WithContext(context.Background(), jsonLogger(&buf))
	ctx = WithRequestID(ctx, "req-1")
	ctx = WithAggregate(ctx, "Example", "3f1c9a52-6d7e-4b8a-9c0d-1e2f3a4b5c6d")

	FromContext(ctx).InfoContext(ctx, "example deleted")

	entry := decodeLine(t, &buf)
	assert.Equal(t, "req-1", entry[KeyRequestID])
	assert.Equal(t, "Example", entry[KeyEntity])
	assert.Equal(t, "3f1c9a52-6d7e-4b8a-9c0d-1e2f3a4b5c6d", entry[KeyAggregateID])
}

func TestWith_NoAttrsKeepsContext(t *testing.T) {
	ctx := context.Background()
	assert.Equal(t, ctx, With(ctx))
}

func TestSetDefault(t *testing.T) {
	original := defaultLogger
	t.Cleanup(func() { SetDefault(original) })

	custom := slog.New(slog.NewTextHandler(io.Discard, nil))
	SetDefault(custom)

	assert.Equal(t, custom, FromContext(context.Background()))
	assert.Equal(t, custom, slog.Default())
}

// Logger construction

func TestNewWithWriter_Formats(t *testing.T) {
	tests := []struct {
		format string
		check  func(t *testing.T, out string)
	}{
		{format: "json", check: func(t *testing.T, out string) {
			var entry map[string]any
			require.NoError(t, json.Unmarshal([]byte(out), &entry))
			assert.Equal(t, "example created", entry["msg"])
			assert.Equal(t, "examples-api", entry["service_name"])
			assert.Equal(t, "1.4.0", entry["service_version"])
		}},
		{format: "text", check: func(t *testing.T, out string) {
			assert.Contains(t, out, `msg="example created"`)
			assert.Contains(t, out, "service_name=examples-api")
		}},
		{format: "pretty", check: func(t *testing.T, out string) {
			assert.Contains(t, out, "example created")
		}},
		{format: "", check: func(t *testing.T, out string) {
			assert.True(t, json.Valid([]byte(out)), "json is the default format")
		}},
	}

	for _, tt := range tests {
		t.Run("format "+tt.format, func(t *testing.T) {
			var buf bytes.Buffer

			logger := NewWithWriter(&Config{Level: "info", Format: tt.format, Service: "examples-api", Version: "1.4.0"}, &buf)
			logger.Info("example created", slog.Int("age", 36))

			tt.check(t, buf.String())
		})
	}
}

func TestNewWithWriter_LevelFilters(t *testing.T) {
	var buf bytes.Buffer

	logger := NewWithWriter(&Config{Level: "warn", Format: "json"}, &buf)
	logger.Info("dropped")
	logger.Warn("kept")

	assert.NotContains(t, buf.String(), "dropped")
	assert.Contains(t, buf.String(), "kept")
}

func TestNewWithWriter_RedactsSecrets(t *testing.T) {
	var buf bytes.Buffer

	logger := NewWithWriter(&Config{Level: "info", Format: "json"}, &buf)
	logger.Info("connecting", slog.String("target", "postgres://app:hunter2@db:5432/examples"))

	assert.Contains(t, buf.String(), "target")
	assert.NotContains(t, buf.String(), "hunter2")
}

func TestNewWithWriter_RollingFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "service.log")

	var buf bytes.Buffer

	logger := NewWithWriter(&Config{
		Level:  "info",
		Format: "text",
		File:   FileConfig{Enabled: true, Path: path, MaxSizeMB: 1, MaxBackups: 1, MaxAgeDays: 1},
	}, &buf)

	logger.Info("example stored", slog.String("password", "hunter2"))

	assert.Contains(t, buf.String(), "example stored")

	content, err := os.ReadFile(path)
	require.NoError(t, err)

	var entry map[string]any
	require.NoError(t, json.Unmarshal(content, &entry), "the file sink always writes JSON")
	assert.Equal(t, "example stored", entry["msg"])
	assert.NotContains(t, string(content), "hunter2")
}

func TestNew(t *testing.T) {
	assert.NotNil(t, New(&Config{Level: "info", Format: "json"}))
}

func TestParseLevel(t *testing.T) {
	tests := map[string]slog.Level{
		"trace":   LevelTrace,
		"debug":   slog.LevelDebug,
		"DEBUG":   slog.LevelDebug,
		"info":    slog.LevelInfo,
		"warn":    slog.LevelWarn,
		"warning": slog.LevelWarn,
		"error":   slog.LevelError,
		"":        slog.LevelInfo,
		"verbose": slog.LevelInfo,
	}

	for input, expected := range tests {
		t.Run(input, func(t *testing.T) {
			assert.Equal(t, expected, parseLevel(input))
		})
	}
}

func TestSlogToCharmLevel(t *testing.T) {
	tests := []struct {
		input    slog.Level
		expected log.Level
	}{
		{slog.Level(-12), log.DebugLevel},
		{LevelTrace, log.DebugLevel},
		{slog.LevelDebug, log.DebugLevel},
		{slog.LevelInfo, log.InfoLevel},
		{slog.LevelWarn, log.WarnLevel},
		{slog.LevelError, log.ErrorLevel},
		{slog.Level(12), log.ErrorLevel},
	}

	for _, tt := range tests {
		t.Run(tt.input.String(), func(t *testing.T) {
			assert.Equal(t, tt.expected, slogToCharmLevel(tt.input))
		})
	}
}

// MultiHandler

type failingHandler struct {
	err error
}

func (failingHandler) Enabled(context.Context, slog.Level) bool { return true }

func (h failingHandler) Handle(context.Context, slog.Record) error { return h.err } //nolint:gocritic // slog.Handler interface

func (h failingHandler) WithAttrs([]slog.Attr) slog.Handler { return h }

func (h failingHandler) WithGroup(string) slog.Handler { return h }

func TestMultiHandler_Enabled(t *testing.T) {
	debug := slog.NewTextHandler(io.Discard, &slog.HandlerOptions{Level: slog.LevelDebug})
	errorOnly := slog.NewTextHandler(io.Discard, &slog.HandlerOptions{Level: slog.LevelError})

	assert.True(t, NewMultiHandler(debug, errorOnly).Enabled(context.Background(), slog.LevelInfo))
	assert.False(t, NewMultiHandler(errorOnly, errorOnly).Enabled(context.Background(), slog.LevelInfo))
	assert.False(t, NewMultiHandler().Enabled(context.Background(), slog.LevelError))
}

func TestMultiHandler_HandleRespectsEachLevel(t *testing.T) {
	var console, file bytes.Buffer

	logger := slog.New(NewMultiHandler(
		slog.NewJSONHandler(&console, &slog.HandlerOptions{Level: slog.LevelDebug}),
		slog.NewJSONHandler(&file, &slog.HandlerOptions{Level: slog.LevelInfo}),
	))

	logger.Info("both")
	logger.Debug("console only")

	assert.Contains(t, console.String(), "both")
	assert.Contains(t, console.String(), "console only")
	assert.Contains(t, file.String(), "both")
	assert.NotContains(t, file.String(), "console only")
}

func TestMultiHandler_HandleJoinsErrors(t *testing.T) {
	var buf bytes.Buffer

	diskFull := errors.New("disk full")
	closed := errors.New("closed")

	handler := NewMultiHandler(
		failingHandler{err: diskFull},
		slog.NewJSONHandler(&buf, nil),
		failingHandler{err: closed},
	)

	err := handler.Handle(context.Background(), slog.NewRecord(time.Now(), slog.LevelInfo, "example created", 0))

	require.Error(t, err)
	assert.ErrorIs(t, err, diskFull)
	assert.ErrorIs(t, err, closed)
	assert.Contains(t, buf.String(), "example created", "a failing sink does not block the others")
}

func TestMultiHandler_WithAttrsAndGroup(t *testing.T) {
	var first, second bytes.Buffer

	logger := slog.New(NewMultiHandler(
		slog.NewJSONHandler(&first, nil),
		slog.NewJSONHandler(&second, nil),
	)).With(slog.String("component", "app.ExampleService")).WithGroup("example")

	logger.Info("changed", slog.Int("age", 37))

	for _, out := range []string{first.String(), second.String()} {
		assert.Contains(t, out, `"component":"app.ExampleService"`)
		assert.Contains(t, out, `"example":{"age":37}`)
	}
}

// Redaction

func TestNewReplaceAttr(t *testing.T) {
	tests := []struct {
		name     string
		attr     slog.Attr
		redacted bool
	}{
		{name: "password field", attr: slog.String("password", "hunter2"), redacted: true},
		{name: "dsn field", attr: slog.String("dsn", "host=db user=app"), redacted: true},
		{name: "authorization field", attr: slog.String("authorization", "opaque"), redacted: true},
		{name: "secret prefix", attr: slog.String("secret_config", "sensitive-data"), redacted: true},
		{name: "token prefix", attr: slog.String("token_value", "abc123"), redacted: true},
		{name: "postgres url with password", attr: slog.String("url", "postgres://app:hunter2@db:5432/examples"), redacted: true},
		{name: "redis url with password", attr: slog.String("url", "redis://:hunter2@cache:6379/0"), redacted: true},
		{name: "bearer value", attr: slog.String("header", "Bearer abc123xyz456"), redacted: true},
		{name: "url without credentials", attr: slog.String("url", "redis://cache:6379/0"), redacted: false},
		{name: "example name", attr: slog.String("name", "Ada"), redacted: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer

			jsonLogger(&buf).Info("test", tt.attr)

			out := buf.String()
			assert.Contains(t, out, tt.attr.Key)

			if tt.redacted {
				assert.NotContains(t, out, tt.attr.Value.String())
				assert.Contains(t, out, "REDACTED")
			} else {
				assert.Contains(t, out, tt.attr.Value.String())
			}
		})
	}
}

func TestNewReplaceAttr_SecretTag(t *testing.T) {
	type storeSettings struct {
		Host     string
		Password string `masq:"secret"`
	}

	var buf bytes.Buffer

	jsonLogger(&buf).Info("configuration loaded", slog.Any("database", storeSettings{Host: "db.internal", Password: "p@ss word"}))

	assert.Contains(t, buf.String(), "db.internal")
	assert.NotContains(t, buf.String(), "p@ss word")
}

func TestNewReplaceAttr_ExtraOptions(t *testing.T) {
	var buf bytes.Buffer

	logger := slog.New(slog.NewJSONHandler(&buf, &slog.HandlerOptions{
		ReplaceAttr: NewReplaceAttr(masq.WithFieldName("pin")),
	}))

	logger.Info("test", slog.String("pin", "1234"), slog.String("password", "hunter2"))

	assert.NotContains(t, buf.String(), "1234")
	assert.NotContains(t, buf.String(), "hunter2")
}
