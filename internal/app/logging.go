package app

import (
	"fmt"
	"io"
	"os"

	"github.com/dshills/multipick/internal/config"
	"github.com/dshills/multipick/internal/logging"
)

type nopCloser struct{}

func (nopCloser) Close() error { return nil }

// NewLogger builds the logger described by cfg. Output goes to cfg.File
// when set. Otherwise it goes to stderr, unless interactive is true: the
// terminal owns stderr while the picker is on screen, so nothing is logged.
// The returned closer releases the log file.
func NewLogger(cfg config.LoggingConfig, interactive bool) (*logging.Logger, io.Closer, error) {
	level, ok := logging.ParseLevel(cfg.Level)
	if !ok {
		return nil, nil, fmt.Errorf("invalid log level %q", cfg.Level)
	}

	if cfg.File == "" {
		if interactive {
			return logging.Null(), nopCloser{}, nil
		}
		lc := logging.DefaultConfig()
		lc.Level = level
		return logging.New(lc), nopCloser{}, nil
	}

	f, err := os.OpenFile(cfg.File, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, nil, fmt.Errorf("opening log file: %w", err)
	}
	lc := logging.DefaultConfig()
	lc.Level = level
	lc.Output = f
	return logging.New(lc), f, nil
}
