package session

import "github.com/prosepane/prosepane/internal/inputsrc"

// MarkdownSource is the common shape inputsrc.FileSource and
// inputsrc.PipeSource both present to the outer loop : // something that can be read for its current contents, polled once per
// loop tick, and that signals Reload via Changes.
type MarkdownSource interface {
	// Pump lets a pipe source drain pending chunks; a file source's Pump
	// is a no-op since fsnotify delivers its own events asynchronously.
	Pump() bool
	Contents() (string, error)
	Changes() <-chan struct{}
}

// FileSourceAdapter wraps *inputsrc.FileSource to satisfy MarkdownSource.
type FileSourceAdapter struct{ *inputsrc.FileSource }

func (a FileSourceAdapter) Pump() bool                { return true }
func (a FileSourceAdapter) Contents() (string, error) { return a.FileSource.Read() }

// PipeSourceAdapter wraps *inputsrc.PipeSource to satisfy MarkdownSource.
type PipeSourceAdapter struct{ *inputsrc.PipeSource }

func (a PipeSourceAdapter) Contents() (string, error) { return a.PipeSource.Contents(), nil }
