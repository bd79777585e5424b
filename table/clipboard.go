package table

import "github.com/atotto/clipboard"

// Clipboard provides table-level clipboard integration.
//
// Errors must not crash the UI; failures are logged and ignored.
type Clipboard interface {
	ReadText() (string, error)
	WriteText(s string) error
}

// SystemClipboard is the host system clipboard.
type SystemClipboard struct{}

func (SystemClipboard) ReadText() (string, error) { return clipboard.ReadAll() }
func (SystemClipboard) WriteText(s string) error  { return clipboard.WriteAll(s) }

// Supported reports whether a system clipboard is reachable.
func (SystemClipboard) Supported() bool { return !clipboard.Unsupported }
