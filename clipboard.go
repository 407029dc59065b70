package uc

import "github.com/atotto/clipboard"

// Clipboard is the two-operation clipboard contract: SetText followed
// by GetText in the same process returns the stored value. Storage is
// platform-defined.
type Clipboard interface {
	GetText() (string, bool)
	SetText(text string) bool
}

// SystemClipboard talks to the OS clipboard.
type SystemClipboard struct{}

// GetText reads the system clipboard.
func (SystemClipboard) GetText() (string, bool) {
	text, err := clipboard.ReadAll()
	if err != nil {
		logger().Debug("clipboard read failed", "error", err)
		return "", false
	}
	return text, true
}

// SetText writes the system clipboard.
func (SystemClipboard) SetText(text string) bool {
	if err := clipboard.WriteAll(text); err != nil {
		logger().Debug("clipboard write failed", "error", err)
		return false
	}
	return true
}

// MemoryClipboard is an in-process clipboard used by the headless
// platform and tests.
type MemoryClipboard struct {
	text string
	set  bool
}

// GetText returns the stored text.
func (c *MemoryClipboard) GetText() (string, bool) {
	return c.text, c.set
}

// SetText stores text.
func (c *MemoryClipboard) SetText(text string) bool {
	c.text = text
	c.set = true
	return true
}
