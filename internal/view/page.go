package view

import "sync"

// Page holds elements in insertion order. Elements may be appended at any
// time, including after listeners were bound to the initial set.
type Page struct {
	mu    sync.RWMutex
	order []*Element
	byID  map[string]*Element
}

func NewPage(els ...*Element) *Page {
	p := &Page{byID: make(map[string]*Element)}
	p.Append(els...)
	return p
}

// Append adds elements; an element whose id is already present replaces
// the earlier one in the id index but keeps its own position.
func (p *Page) Append(els ...*Element) {
	p.mu.Lock()
	defer p.mu.Unlock()
	for _, el := range els {
		if el == nil {
			continue
		}
		p.order = append(p.order, el)
		if el.ID() != "" {
			p.byID[el.ID()] = el
		}
	}
}

// ByID returns nil when no element carries id.
func (p *Page) ByID(id string) *Element {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.byID[id]
}

func (p *Page) QueryRole(role string) []*Element {
	p.mu.RLock()
	defer p.mu.RUnlock()
	var out []*Element
	for _, el := range p.order {
		if el.Role() == role {
			out = append(out, el)
		}
	}
	return out
}

func (p *Page) Elements() []*Element {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return append([]*Element(nil), p.order...)
}
