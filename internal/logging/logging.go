// Package logging holds the CLI's structured logger.
package logging

import (
	"io"
	"log/slog"
	"os"
)

// L is the global logger. It discards everything until [Init] is called.
var L = slog.New(slog.NewTextHandler(io.Discard, nil))

// Options configures [Init].
type Options struct {
	Enabled bool       // if false, all logging is discarded
	Writer  io.Writer  // destination, default os.Stderr
	Level   slog.Level // minimum level, default LevelInfo
	JSON    bool       // emit JSON records instead of logfmt-style text
}

// Init replaces [L] according to opts.
func Init(opts Options) {
	if !opts.Enabled {
		L = slog.New(slog.NewTextHandler(io.Discard, nil))
		return
	}
	w := opts.Writer
	if w == nil {
		w = os.Stderr
	}
	handlerOpts := &slog.HandlerOptions{Level: opts.Level}
	var h slog.Handler = slog.NewTextHandler(w, handlerOpts)
	if opts.JSON {
		h = slog.NewJSONHandler(w, handlerOpts)
	}
	L = slog.New(h).With("app", "posprintf")
}
