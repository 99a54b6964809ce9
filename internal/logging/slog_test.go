package logging

import (
	"bytes"
	"context"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNew_LevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	log := New("warn", &buf)
	ctx := context.Background()

	log.Debug(ctx, "dbg")
	log.Info(ctx, "inf")
	log.Warn(ctx, "wrn", "key", "cart")
	log.Error(ctx, "err", "code", 7)

	out := buf.String()
	assert.NotContains(t, out, "msg=dbg")
	assert.NotContains(t, out, "msg=inf")
	assert.Contains(t, out, "level=WARN")
	assert.Contains(t, out, "key=cart")
	assert.Contains(t, out, "level=ERROR")
	assert.Contains(t, out, "code=7")
}

func TestWith_AddsAttributes(t *testing.T) {
	var buf bytes.Buffer
	log := New("debug", &buf).With("component", "cart", "user_id", "u1")
	log.Info(context.Background(), "reloaded", "lines", 2)

	out := buf.String()
	for _, s := range []string{"level=INFO", "msg=reloaded", "component=cart", "user_id=u1", "lines=2"} {
		assert.Contains(t, out, s)
	}
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in   string
		want slog.Level
	}{
		{"debug", slog.LevelDebug},
		{"INFO", slog.LevelInfo},
		{" warning ", slog.LevelWarn},
		{"error", slog.LevelError},
		{"verbose", slog.LevelInfo},
		{"", slog.LevelInfo},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseLevel(tt.in))
		})
	}
}

func TestDiscard_DoesNotPanic(t *testing.T) {
	log := Discard()
	ctx := context.TODO()
	log.Info(ctx, "ok")
	log.Error(ctx, "ok")
}
