package logging

import (
	"fmt"
	"io"
	"strings"
)

const (
	BackendSlog = "slog"
	BackendZap  = "zap"

	FormatText = "text"
	FormatJSON = "json"
)

// Options selects a backend, minimum level and output encoding.
type Options struct {
	Backend string
	Level   string
	Format  string
}

// New builds a Logger writing to w.
func New(w io.Writer, opts Options) (Logger, error) {
	switch strings.ToLower(opts.Backend) {
	case "", BackendSlog:
		return newSlog(w, opts.Level, opts.Format), nil
	case BackendZap:
		return newZap(w, opts.Level, opts.Format), nil
	default:
		return nil, fmt.Errorf("unknown log backend %q", opts.Backend)
	}
}
