// Package ui models the page a binding drives: elements looked up by id,
// text and checked-state mutation, and change notifications.
package ui

// Element is anything addressable by id.
type Element interface {
	ID() string
	// Text returns the element's displayed content.
	Text() string
}

// Writable elements display text: labels and text inputs.
type Writable interface {
	Element
	SetText(text string)
}

// Checkable elements are boolean-style controls: checkboxes and switches.
type Checkable interface {
	Element
	Checked() bool
	SetChecked(checked bool)
}

// Document is the query and notification surface used by bindings.
type Document interface {
	// ElementByID returns the element registered under id.
	ElementByID(id string) (Element, bool)
	// OnChange registers a listener for change notifications on id.
	// Listeners accumulate; every one is invoked per notification.
	OnChange(id string, fn func(Element))
	// DispatchChange notifies the listeners of el.
	DispatchChange(el Element)
}
