// SPDX-License-Identifier: MIT

package cli

import (
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/katalvlaran/bayestree/inference"
)

// Log output formats.
const (
	LogFormatText = "text"
	LogFormatJSON = "json"
)

// Key print formats.
const (
	KeyFormatSymbol = "symbol"
	KeyFormatIndex  = "index"
)

// ParseLevel accepts the slog level names (debug, info, warn, error),
// case-insensitively, with optional offsets such as "debug+2".
func ParseLevel(s string) (slog.Level, error) {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(strings.TrimSpace(s))); err != nil {
		return 0, err
	}
	return lvl, nil
}

// NewLogger builds a text or JSON slog logger writing to w.
func NewLogger(w io.Writer, cfg LogConfig) (*slog.Logger, error) {
	lvl, err := ParseLevel(cfg.Level)
	if err != nil {
		return nil, err
	}
	opts := &slog.HandlerOptions{Level: lvl}

	var h slog.Handler
	switch cfg.Format {
	case LogFormatText, "":
		h = slog.NewTextHandler(w, opts)
	case LogFormatJSON:
		h = slog.NewJSONHandler(w, opts)
	default:
		return nil, fmt.Errorf("unknown log format %q", cfg.Format)
	}
	return slog.New(h), nil
}

// KeyFormatter returns the key printer for a keys.format value.
func KeyFormatter(format string) (inference.KeyFormatter, error) {
	switch strings.ToLower(strings.TrimSpace(format)) {
	case KeyFormatSymbol:
		return inference.SymbolFormatter, nil
	case KeyFormatIndex:
		return inference.DefaultKeyFormatter, nil
	}
	return nil, fmt.Errorf("unknown key format %q (want %s or %s)", format, KeyFormatSymbol, KeyFormatIndex)
}
