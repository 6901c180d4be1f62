package logger

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/rs/zerolog"
)

func TestNewRequestID(t *testing.T) {
	id := NewRequestID()
	if len(id) != 8 {
		t.Errorf("expected 8 characters, got %q", id)
	}
	if NewRequestID() == id {
		t.Error("expected distinct request IDs")
	}
}

func TestRequestIDRoundTrip(t *testing.T) {
	ctx := WithRequestID(context.Background(), "abc12345")
	if got := RequestIDFromContext(ctx); got != "abc12345" {
		t.Errorf("expected abc12345, got %q", got)
	}
	if got := RequestIDFromContext(context.Background()); got != "" {
		t.Errorf("expected empty id, got %q", got)
	}
}

func TestSetupWritesToOut(t *testing.T) {
	var buf bytes.Buffer
	Setup(Options{Level: "debug", Out: &buf})
	defer zerolog.SetGlobalLevel(zerolog.InfoLevel)

	l := ForRequest(WithRequestID(context.Background(), "req-1"))
	l.Info().Msg("hello")
	out := buf.String()
	if !strings.Contains(out, "hello") || !strings.Contains(out, "req-1") {
		t.Errorf("expected message and request id in output, got %q", out)
	}
}

func TestLogBodyTruncates(t *testing.T) {
	var buf bytes.Buffer
	l := zerolog.New(&buf).Level(zerolog.DebugLevel)
	prev := zerolog.GlobalLevel()
	zerolog.SetGlobalLevel(zerolog.DebugLevel)
	defer zerolog.SetGlobalLevel(prev)

	LogBody(l, "request_body", bytes.Repeat([]byte("x"), 2*maxBodyLog))
	if !strings.Contains(buf.String(), `"truncated":true`) {
		t.Errorf("expected truncated flag, got %q", buf.String())
	}

	buf.Reset()
	LogBody(l, "request_body", nil)
	if buf.Len() != 0 {
		t.Errorf("expected nothing logged for empty body, got %q", buf.String())
	}
}
