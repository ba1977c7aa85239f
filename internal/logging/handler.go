// Package logging builds the colorized slog.Handler the rest of this
// module logs through. Unlike the teacher's package-level slog.Info/
// Error wrapper, every component here takes an injected *slog.Logger, so
// tests can swap in a silent handler and a multi-session host can give
// each session its own log prefix.
package logging

import (
	"context"
	"encoding/json"
	"io"
	"log"
	"log/slog"

	"github.com/fatih/color"
)

type HandlerOptions struct {
	SlogOpts slog.HandlerOptions

	// Prefix tags every line, e.g. with a shard or session identifier, so
	// a host running more than one Session can tell their logs apart in
	// one combined stream.
	Prefix string

	// DisableColor drops every color.*String call down to the plain
	// string, for output that isn't a TTY (a log file, a piped
	// supervisor, CI) where ANSI codes just add noise.
	DisableColor bool
}

// Handler renders each record as a single line, colorized unless
// DisableColor is set, with structured attributes appended as an
// indented JSON blob.
type Handler struct {
	slog.Handler
	l            *log.Logger
	prefix       string
	disableColor bool
}

func NewHandler(out io.Writer, opts HandlerOptions) *Handler {
	return &Handler{
		Handler:      slog.NewJSONHandler(out, &opts.SlogOpts),
		l:            log.New(out, "", 0),
		prefix:       opts.Prefix,
		disableColor: opts.DisableColor,
	}
}

func (h *Handler) paint(s string, c func(format string, a ...interface{}) string) string {
	if h.disableColor {
		return s
	}
	return c(s)
}

func (h *Handler) Handle(ctx context.Context, r slog.Record) error {
	level := r.Level.String() + ":"
	switch r.Level {
	case slog.LevelDebug:
		level = h.paint(level, color.WhiteString)
	case slog.LevelInfo:
		level = h.paint(level, color.GreenString)
	case slog.LevelWarn:
		level = h.paint(level, color.YellowString)
	case slog.LevelError:
		level = h.paint(level, color.RedString)
	default:
		level = h.paint(level, color.HiWhiteString)
	}

	timeStr := r.Time.Format("[15:04:05]")
	message := h.paint(r.Message, color.HiWhiteString)

	line := []any{timeStr}
	if h.prefix != "" {
		line = append(line, "["+h.prefix+"]")
	}
	line = append(line, level, message)

	if r.NumAttrs() == 0 {
		h.l.Println(line...)
		return nil
	}

	fields := make(map[string]interface{}, r.NumAttrs())
	r.Attrs(func(a slog.Attr) bool {
		fields[a.Key] = a.Value.Any()
		return true
	})
	j, err := json.MarshalIndent(fields, "", " ")
	if err != nil {
		return err
	}
	line = append(line, h.paint(string(j), color.WhiteString))
	h.l.Println(line...)
	return nil
}

// New builds a ready-to-use logger writing to out at the given level.
func New(out io.Writer, level slog.Level) *slog.Logger {
	return slog.New(NewHandler(out, HandlerOptions{
		SlogOpts: slog.HandlerOptions{Level: level},
	}))
}
