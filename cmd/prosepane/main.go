// Command prosepane renders Markdown in a terminal via inline images, or
// writes per-tile PNGs non-interactively with the render subcommand.
package main

import (
	"fmt"
	"os"

	"github.com/mattn/go-isatty"
	"go.uber.org/zap"

	"github.com/prosepane/prosepane/internal/config"
)

const (
	exitOK          = 0
	exitFailure     = 1
	exitUsage       = 2
	exitUnsupported = 3
)

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	if len(args) > 0 && args[0] == "render" {
		return runRender(args[1:])
	}
	return runView(args)
}

func newLogger(path string) (*zap.Logger, error) {
	if path == "" {
		return zap.NewNop(), nil
	}
	cfg := zap.NewProductionConfig()
	cfg.OutputPaths = []string{path}
	cfg.ErrorOutputPaths = []string{path}
	logger, err := cfg.Build()
	if err != nil {
		return nil, fmt.Errorf("build logger at %s: %w", path, err)
	}
	return logger, nil
}

func loadConfig(theme string, hasTheme bool, noWatch bool) (config.Config, error) {
	path, err := config.Path()
	if err != nil {
		return config.Config{}, err
	}
	cfg, err := config.Load(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "prosepane: config: %v (using defaults)\n", err)
		cfg = config.Default()
	}
	var overrides config.Overrides
	if hasTheme {
		overrides.Theme = &theme
	}
	overrides.NoWatch = noWatch
	cfg = cfg.Apply(overrides)
	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "prosepane: invalid config: %v (using defaults)\n", err)
		cfg = config.Default().Apply(overrides)
	}
	return cfg, nil
}

func stdinIsPiped() bool {
	return !isatty.IsTerminal(os.Stdin.Fd()) && !isatty.IsCygwinTerminal(os.Stdin.Fd())
}
