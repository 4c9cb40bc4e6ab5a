package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/mattn/go-isatty"

	"github.com/prosepane/prosepane/internal/inputsrc"
	"github.com/prosepane/prosepane/internal/presenter"
	"github.com/prosepane/prosepane/internal/session"
	"github.com/prosepane/prosepane/internal/tilecache"
	"github.com/prosepane/prosepane/internal/typeset/typesettest"
)

func runView(args []string) int {
	fs := flag.NewFlagSet("prosepane", flag.ContinueOnError)
	theme := fs.String("theme", "", "theme name override")
	noWatch := fs.Bool("no-watch", false, "disable file-watch reload")
	logPath := fs.String("log", "", "file to write structured logs to")
	if err := fs.Parse(args); err != nil {
		if err == flag.ErrHelp {
			return exitOK
		}
		return exitUsage
	}

	logger, err := newLogger(*logPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "prosepane: %v\n", err)
		return exitFailure
	}
	defer logger.Sync()

	cfg, err := loadConfig(*theme, *theme != "", *noWatch)
	if err != nil {
		fmt.Fprintf(os.Stderr, "prosepane: %v\n", err)
		return exitFailure
	}

	file := fs.Arg(0)
	source, err := openSource(file, *noWatch)
	if err != nil {
		fmt.Fprintf(os.Stderr, "prosepane: %v\n", err)
		return exitUsage
	}

	if !isatty.IsTerminal(os.Stdout.Fd()) {
		fmt.Fprintln(os.Stderr, "prosepane: stdout is not a terminal; viewer mode needs an inline-image-capable TTY")
		return exitUnsupported
	}

	fd := presenter.StdinFd()
	guard, err := presenter.Enter(os.Stdout, fd)
	if err != nil {
		fmt.Fprintf(os.Stderr, "prosepane: %v\n", err)
		return exitUnsupported
	}
	defer guard.Restore(os.Stdout)

	widthLine := fmt.Sprintf("#set page(width: %gpt)\n", cfg.Width)
	sess := &session.Session{
		Builder: session.DocBuilder{
			Translator:      typesettest.Translator{},
			Compiler:        typesettest.Compiler{},
			ThemePrelude:    themePrelude(cfg.Theme),
			WidthOverrideLine: widthLine,
			PPI:             cfg.PPI,
			TileMinHeightPt: cfg.Viewer.TileHeight,
		},
		Cfg:    cfg,
		Source: source,
		Renderer: tilecache.ContractRenderer{
			Renderer:      typesettest.PixelRenderer{},
			Encoder:       typesettest.PNGEncoder{},
			SidebarFont:   "mono",
			SidebarSizePt: 10,
			SidebarWidth:  float64(cfg.Viewer.SidebarCols) * 6,
		},
		Stdin:      os.Stdin,
		Stdout:     os.Stdout,
		GeometryFd: fd,
		Logger:     logger,
	}

	if err := sess.Run(context.Background()); err != nil {
		fmt.Fprintf(os.Stderr, "prosepane: %v\n", err)
		return exitFailure
	}
	return exitOK
}

// openSource resolves the file-or-pipe dispatch: an explicit path opens a
// FileSource; an absent/"-" argument with piped stdin opens a PipeSource
// instead.
func openSource(file string, noWatch bool) (session.MarkdownSource, error) {
	if file == "" || file == "-" {
		if !stdinIsPiped() {
			return nil, fmt.Errorf("no file given and stdin is not piped")
		}
		return session.PipeSourceAdapter{PipeSource: inputsrc.NewPipeSource(os.Stdin)}, nil
	}
	if noWatch {
		return noWatchFileSource(file)
	}
	fs, err := inputsrc.NewFileSource(file)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", file, err)
	}
	return session.FileSourceAdapter{FileSource: fs}, nil
}

func themePrelude(name string) string {
	return fmt.Sprintf("// theme: %s\n", name)
}

// staticFileSource reads path once per Contents() call but never signals a
// Changes event, for --no-watch.
type staticFileSource struct {
	path    string
	changes chan struct{}
}

func noWatchFileSource(path string) (session.MarkdownSource, error) {
	if _, err := os.Stat(path); err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	return staticFileSource{path: path, changes: make(chan struct{})}, nil
}

func (s staticFileSource) Pump() bool { return true }
func (s staticFileSource) Contents() (string, error) {
	b, err := os.ReadFile(s.path)
	if err != nil {
		return "", fmt.Errorf("read %s: %w", s.path, err)
	}
	return string(b), nil
}
func (s staticFileSource) Changes() <-chan struct{} { return s.changes }
