package logging

import (
	"bytes"
	"log/slog"
	"strings"
	"testing"
)

func TestHandlerWritesLevelAndMessage(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(NewHandler(&buf, HandlerOptions{SlogOpts: slog.HandlerOptions{Level: slog.LevelDebug}}))
	logger.Info("hello world")

	out := buf.String()
	if !strings.Contains(out, "hello world") {
		t.Fatalf("expected output to contain message, got %q", out)
	}
}

func TestHandlerIncludesAttrsAsJSON(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(NewHandler(&buf, HandlerOptions{SlogOpts: slog.HandlerOptions{Level: slog.LevelDebug}}))
	logger.Info("event", "guild_id", "123")

	out := buf.String()
	if !strings.Contains(out, "guild_id") || !strings.Contains(out, "123") {
		t.Fatalf("expected output to contain attrs, got %q", out)
	}
}

func TestHandlerDisableColorOmitsANSICodes(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(NewHandler(&buf, HandlerOptions{
		SlogOpts:     slog.HandlerOptions{Level: slog.LevelDebug},
		DisableColor: true,
	}))
	logger.Info("plain output")

	if strings.Contains(buf.String(), "\x1b[") {
		t.Fatalf("expected no ANSI escape codes, got %q", buf.String())
	}
}

func TestHandlerPrefixTagsEachLine(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(NewHandler(&buf, HandlerOptions{
		SlogOpts:     slog.HandlerOptions{Level: slog.LevelDebug},
		Prefix:       "shard-0",
		DisableColor: true,
	}))
	logger.Info("tagged")

	if !strings.Contains(buf.String(), "[shard-0]") {
		t.Fatalf("expected output to contain prefix tag, got %q", buf.String())
	}
}

func TestNewFiltersBelowGivenLevel(t *testing.T) {
	var buf bytes.Buffer
	logger := New(&buf, slog.LevelInfo)
	logger.Debug("should not appear")
	if buf.Len() != 0 {
		t.Fatalf("expected debug line to be filtered, got %q", buf.String())
	}
	logger.Info("should appear")
	if buf.Len() == 0 {
		t.Fatal("expected info line to be written")
	}
}
