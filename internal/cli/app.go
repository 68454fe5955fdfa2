package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/vvka-141/wsup/internal/config"
	"github.com/vvka-141/wsup/internal/logging"
	"github.com/vvka-141/wsup/internal/paths"
)

// app is the per-invocation state shared by commands: resolved directories,
// effective configuration and the logger built from it.
type app struct {
	paths  *paths.Paths
	config *config.Resolved
	logger *logging.ConsoleLogger
}

// resolvePaths is replaced in tests.
var resolvePaths = paths.Resolve

// loadApp loads .env, resolves paths and configuration, and builds the
// logger. The caller must Close the returned app.
func loadApp(cmd *cobra.Command) (*app, error) {
	_ = godotenv.Load()

	p, err := resolvePaths()
	if err != nil {
		return nil, err
	}

	resolved, err := config.Resolve(config.Sources(getConfigFlag(cmd), p), nil)
	if err != nil {
		return nil, err
	}

	logger, err := newLogger(cmd.ErrOrStderr(), getVerboseFlag(cmd), resolved.Config, p)
	if err != nil {
		return nil, err
	}

	a := &app{paths: p, config: resolved, logger: logger}
	a.reportConfig()
	return a, nil
}

func newLogger(out io.Writer, verbose bool, cfg config.AppConfig, p *paths.Paths) (*logging.ConsoleLogger, error) {
	opts := logging.Options{
		Verbose: verbose,
		Level:   cfg.LogLevel,
		Out:     out,
		NoColor: os.Getenv("NO_COLOR") != "",
	}
	if cfg.LogToFile {
		opts.FilePath = p.LogFile()
	}

	logger, err := logging.New(opts)
	if err != nil {
		return nil, fmt.Errorf("failed to set up logging: %w", err)
	}
	return logger, nil
}

func (a *app) reportConfig() {
	res := a.config
	switch {
	case res.Created:
		a.logger.Verbose("Wrote default configuration", "path", res.Path)
	case res.PersistErr != nil:
		a.logger.Warn("Could not save default configuration", "path", res.Path, "error", res.PersistErr)
	default:
		a.logger.Verbose("Loaded configuration", "source", res.Source, "path", res.Path)
	}
	for _, key := range res.Undecoded {
		a.logger.Warn("Unknown configuration key", "key", key, "path", res.Path)
	}
}

// Close flushes and releases the log file, if any.
func (a *app) Close() error {
	return a.logger.Close()
}
