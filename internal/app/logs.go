package app

import (
	"fmt"
	"io"

	"github.com/five82/pwarps/internal/config"
	"github.com/five82/pwarps/internal/logtail"
)

// LogsOptions configure `pwarps logs`.
type LogsOptions struct {
	ConfigPath string
	Lines      int
	Level      string
}

// Logs prints the tail of the configured log file.
func Logs(opts LogsOptions, out io.Writer) error {
	level, err := logtail.ParseLevel(opts.Level)
	if err != nil {
		return err
	}
	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	lines, err := logtail.Read(cfg.LogFile, opts.Lines, level)
	if err != nil {
		return err
	}
	if len(lines) == 0 {
		_, err := fmt.Fprintf(out, "no log entries in %s\n", cfg.LogFile)
		return err
	}
	for _, line := range lines {
		if _, err := fmt.Fprintln(out, line); err != nil {
			return err
		}
	}
	return nil
}
