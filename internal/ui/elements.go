package ui

import (
	"strconv"
	"sync"
)

// Label is a display-only text element.
type Label struct {
	id   string
	mu   sync.RWMutex
	text string
}

// NewLabel creates an empty label.
func NewLabel(id string) *Label { return &Label{id: id} }

func (l *Label) ID() string { return l.id }

func (l *Label) Text() string {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.text
}

func (l *Label) SetText(text string) {
	l.mu.Lock()
	l.text = text
	l.mu.Unlock()
}

// Input is an editable text field. It shares Label's storage; the distinct
// type lets the panel render it differently.
type Input struct {
	Label
}

// NewInput creates an empty text input.
func NewInput(id string) *Input { return &Input{Label{id: id}} }

// Checkbox is a boolean-style control.
type Checkbox struct {
	id      string
	mu      sync.RWMutex
	checked bool
}

// NewCheckbox creates an unchecked checkbox.
func NewCheckbox(id string) *Checkbox { return &Checkbox{id: id} }

func (c *Checkbox) ID() string { return c.id }

func (c *Checkbox) Text() string { return strconv.FormatBool(c.Checked()) }

func (c *Checkbox) Checked() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.checked
}

func (c *Checkbox) SetChecked(checked bool) {
	c.mu.Lock()
	c.checked = checked
	c.mu.Unlock()
}
