// Package view is a minimal document model: elements addressed by id or
// role, carrying attributes, presentation state and click listeners.
package view

import (
	"context"
	"sync"
)

type Event struct {
	defaultPrevented   bool
	propagationStopped bool
}

func (e *Event) PreventDefault()          { e.defaultPrevented = true }
func (e *Event) StopPropagation()         { e.propagationStopped = true }
func (e *Event) DefaultPrevented() bool   { return e.defaultPrevented }
func (e *Event) PropagationStopped() bool { return e.propagationStopped }

type Listener func(ctx context.Context, el *Element, ev *Event)

type Element struct {
	id   string
	role string

	mu         sync.RWMutex
	attrs      map[string]string
	text       string
	background string
	color      string
	display    string
	html       string
	value      string
	disabled   bool
	classes    map[string]bool
	listeners  []Listener
}

func NewElement(id, role string) *Element {
	return &Element{
		id:      id,
		role:    role,
		attrs:   make(map[string]string),
		classes: make(map[string]bool),
	}
}

func (e *Element) ID() string   { return e.id }
func (e *Element) Role() string { return e.role }

func (e *Element) Attr(name string) (string, bool) {
	e.mu.RLock()
	defer e.mu.RUnlock()
	v, ok := e.attrs[name]
	return v, ok
}

func (e *Element) SetAttr(name, value string) *Element {
	e.mu.Lock()
	e.attrs[name] = value
	e.mu.Unlock()
	return e
}

func (e *Element) Text() string {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.text
}

func (e *Element) SetText(s string) *Element {
	e.mu.Lock()
	e.text = s
	e.mu.Unlock()
	return e
}

func (e *Element) Background() string {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.background
}

func (e *Element) SetBackground(s string) {
	e.mu.Lock()
	e.background = s
	e.mu.Unlock()
}

func (e *Element) Color() string {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.color
}

func (e *Element) SetColor(s string) {
	e.mu.Lock()
	e.color = s
	e.mu.Unlock()
}

func (e *Element) Display() string {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.display
}

func (e *Element) SetDisplay(s string) {
	e.mu.Lock()
	e.display = s
	e.mu.Unlock()
}

// InnerHTML is trusted markup produced by a renderer.
func (e *Element) InnerHTML() string {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.html
}

func (e *Element) SetInnerHTML(s string) {
	e.mu.Lock()
	e.html = s
	e.mu.Unlock()
}

func (e *Element) Value() string {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.value
}

func (e *Element) SetValue(s string) *Element {
	e.mu.Lock()
	e.value = s
	e.mu.Unlock()
	return e
}

func (e *Element) Disabled() bool {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.disabled
}

func (e *Element) SetDisabled(b bool) {
	e.mu.Lock()
	e.disabled = b
	e.mu.Unlock()
}

func (e *Element) HasClass(c string) bool {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.classes[c]
}

func (e *Element) AddClass(c string) {
	e.mu.Lock()
	e.classes[c] = true
	e.mu.Unlock()
}

func (e *Element) RemoveClass(c string) {
	e.mu.Lock()
	delete(e.classes, c)
	e.mu.Unlock()
}

// ToggleClass flips c and reports whether it is now present.
func (e *Element) ToggleClass(c string) bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.classes[c] {
		delete(e.classes, c)
		return false
	}
	e.classes[c] = true
	return true
}

func (e *Element) AddEventListener(l Listener) {
	e.mu.Lock()
	e.listeners = append(e.listeners, l)
	e.mu.Unlock()
}

func (e *Element) ListenerCount() int {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return len(e.listeners)
}

// Click dispatches a click to every listener in attachment order.
// Disabled elements swallow the click and Click returns nil.
func (e *Element) Click(ctx context.Context) *Event {
	e.mu.RLock()
	if e.disabled {
		e.mu.RUnlock()
		return nil
	}
	ls := append([]Listener(nil), e.listeners...)
	e.mu.RUnlock()

	ev := &Event{}
	for _, l := range ls {
		l(ctx, e, ev)
	}
	return ev
}
