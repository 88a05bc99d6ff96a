package shared

import "github.com/atotto/clipboard"

// Clipboard defines the interface for clipboard operations.
type Clipboard interface {
	Copy(text string) error
}

// SystemClipboard implements Clipboard using the system clipboard.
type SystemClipboard struct{}

// Copy copies text to the system clipboard.
func (SystemClipboard) Copy(text string) error {
	return clipboard.WriteAll(text)
}

// MockClipboard records the last copied text.
type MockClipboard struct {
	Last string
	Err  error
}

// Copy stores text unless Err is set.
func (m *MockClipboard) Copy(text string) error {
	if m.Err != nil {
		return m.Err
	}
	m.Last = text
	return nil
}
