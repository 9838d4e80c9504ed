package ui

import (
	"fmt"
	"sync"

	"github.com/pterm/pterm"
)

// Compile-time interface checks.
var (
	_ Document  = (*Panel)(nil)
	_ Writable  = (*Label)(nil)
	_ Writable  = (*Input)(nil)
	_ Checkable = (*Checkbox)(nil)
)

// Panel is an in-memory Document rendered to the terminal with pterm.
type Panel struct {
	mu        sync.RWMutex
	order     []string
	elements  map[string]Element
	listeners map[string][]func(Element)
}

// NewPanel creates a panel holding the given elements, in render order.
func NewPanel(elements ...Element) *Panel {
	p := &Panel{
		elements:  make(map[string]Element),
		listeners: make(map[string][]func(Element)),
	}
	for _, el := range elements {
		p.Add(el)
	}
	return p
}

// Add registers el, replacing any element with the same id.
func (p *Panel) Add(el Element) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if _, exists := p.elements[el.ID()]; !exists {
		p.order = append(p.order, el.ID())
	}
	p.elements[el.ID()] = el
}

func (p *Panel) ElementByID(id string) (Element, bool) {
	p.mu.RLock()
	defer p.mu.RUnlock()
	el, ok := p.elements[id]
	return el, ok
}

func (p *Panel) OnChange(id string, fn func(Element)) {
	p.mu.Lock()
	p.listeners[id] = append(p.listeners[id], fn)
	p.mu.Unlock()
}

func (p *Panel) DispatchChange(el Element) {
	p.mu.RLock()
	fns := append(([]func(Element))(nil), p.listeners[el.ID()]...)
	p.mu.RUnlock()

	for _, fn := range fns {
		fn(el)
	}
}

// Toggle flips a checkbox as a user click would and notifies listeners.
func (p *Panel) Toggle(id string) error {
	el, ok := p.ElementByID(id)
	if !ok {
		return fmt.Errorf("no element %q", id)
	}
	box, ok := el.(Checkable)
	if !ok {
		return fmt.Errorf("element %q is not checkable", id)
	}

	box.SetChecked(!box.Checked())
	p.DispatchChange(box)
	return nil
}

// Type sets the text of a writable element as user input would and
// notifies listeners.
func (p *Panel) Type(id, text string) error {
	el, ok := p.ElementByID(id)
	if !ok {
		return fmt.Errorf("no element %q", id)
	}
	w, ok := el.(Writable)
	if !ok {
		return fmt.Errorf("element %q is not writable", id)
	}

	w.SetText(text)
	p.DispatchChange(w)
	return nil
}

// Rows returns the id, kind and displayed content of every element.
func (p *Panel) Rows() [][]string {
	p.mu.RLock()
	defer p.mu.RUnlock()

	rows := make([][]string, 0, len(p.order))
	for _, id := range p.order {
		el := p.elements[id]
		rows = append(rows, []string{id, kindOf(el), el.Text()})
	}
	return rows
}

// Render draws the panel as a pterm table.
func (p *Panel) Render() (string, error) {
	data := pterm.TableData{{"Element", "Kind", "Value"}}
	data = append(data, p.Rows()...)
	return pterm.DefaultTable.WithHasHeader().WithData(data).Srender()
}

func kindOf(el Element) string {
	switch el.(type) {
	case *Checkbox:
		return "checkbox"
	case *Input:
		return "input"
	case *Label:
		return "label"
	}
	return "element"
}
