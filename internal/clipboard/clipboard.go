// Package clipboard writes text to the system clipboard
package clipboard

import (
	"fmt"

	"github.com/atotto/clipboard"
)

// Sink receives copied text
type Sink interface {
	WriteText(text string) error
}

// System writes to the OS clipboard
type System struct{}

// WriteText copies text to the OS clipboard
func (System) WriteText(text string) error {
	if clipboard.Unsupported {
		return fmt.Errorf("clipboard unavailable: no copy utility found")
	}
	if err := clipboard.WriteAll(text); err != nil {
		return fmt.Errorf("copy to clipboard: %w", err)
	}
	return nil
}

// Memory keeps copied text in memory. It stands in for the system clipboard
// in tests and headless sessions.
type Memory struct {
	Texts []string
	Err   error
}

// WriteText records text, or returns Err when set
func (m *Memory) WriteText(text string) error {
	if m.Err != nil {
		return m.Err
	}
	m.Texts = append(m.Texts, text)
	return nil
}

// Last returns the most recently copied text
func (m *Memory) Last() string {
	if len(m.Texts) == 0 {
		return ""
	}
	return m.Texts[len(m.Texts)-1]
}
