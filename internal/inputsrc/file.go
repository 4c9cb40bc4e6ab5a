// Package inputsrc implements the two Markdown acquisition modes: an
// eagerly-read file with a parent-directory file watcher, and a
// pipe-mode reader that owns stdin on its own goroutine.
package inputsrc

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/fsnotify/fsnotify"
)

// FileSource reads path eagerly and signals Reload on Changes whenever
// the file's directory reports an event touching path — watching the
// parent directory, not the file itself, because an atomic save (write
// temp + rename) replaces the inode fsnotify would otherwise be watching.
type FileSource struct {
	Path    string
	watcher *fsnotify.Watcher
	changes chan struct{}
}

// NewFileSource opens a watcher on path's parent directory.
func NewFileSource(path string) (*FileSource, error) {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("inputsrc: create watcher: %w", err)
	}
	dir := filepath.Dir(path)
	if err := w.Add(dir); err != nil {
		w.Close()
		return nil, fmt.Errorf("inputsrc: watch %s: %w", dir, err)
	}
	fs := &FileSource{Path: path, watcher: w, changes: make(chan struct{}, 1)}
	go fs.run()
	return fs, nil
}

func (fs *FileSource) run() {
	target := filepath.Clean(fs.Path)
	for {
		select {
		case ev, ok := <-fs.watcher.Events:
			if !ok {
				return
			}
			if filepath.Clean(ev.Name) != target {
				continue
			}
			if ev.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}
			select {
			case fs.changes <- struct{}{}:
			default:
			}
		case _, ok := <-fs.watcher.Errors:
			if !ok {
				return
			}
		}
	}
}

// Read reads the current file contents.
func (fs *FileSource) Read() (string, error) {
	b, err := os.ReadFile(fs.Path)
	if err != nil {
		return "", fmt.Errorf("inputsrc: read %s: %w", fs.Path, err)
	}
	return string(b), nil
}

// Changes signals (with coalescing) whenever the file changed on disk.
func (fs *FileSource) Changes() <-chan struct{} { return fs.changes }

// Close stops the watcher.
func (fs *FileSource) Close() error { return fs.watcher.Close() }
