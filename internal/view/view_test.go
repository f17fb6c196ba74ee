package view

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClickDispatchesInOrder(t *testing.T) {
	el := NewElement("b1", "add-cart")
	var calls []string
	el.AddEventListener(func(_ context.Context, _ *Element, ev *Event) {
		calls = append(calls, "first")
		ev.PreventDefault()
	})
	el.AddEventListener(func(_ context.Context, got *Element, ev *Event) {
		calls = append(calls, "second")
		assert.Same(t, el, got)
		assert.True(t, ev.DefaultPrevented())
	})

	ev := el.Click(context.Background())
	require.NotNil(t, ev)
	assert.Equal(t, []string{"first", "second"}, calls)
	assert.False(t, ev.PropagationStopped())
}

func TestDisabledElementSwallowsClick(t *testing.T) {
	el := NewElement("b1", "add-cart")
	n := 0
	el.AddEventListener(func(context.Context, *Element, *Event) { n++ })
	el.SetDisabled(true)

	assert.Nil(t, el.Click(context.Background()))
	assert.Zero(t, n)

	el.SetDisabled(false)
	el.Click(context.Background())
	assert.Equal(t, 1, n)
}

func TestToggleClass(t *testing.T) {
	el := NewElement("cart-sidebar", "")
	assert.True(t, el.ToggleClass("open"))
	assert.True(t, el.HasClass("open"))
	assert.False(t, el.ToggleClass("open"))
	assert.False(t, el.HasClass("open"))

	el.AddClass("open")
	el.RemoveClass("open")
	assert.False(t, el.HasClass("open"))
}

func TestPageQueries(t *testing.T) {
	a := NewElement("a", "add-cart")
	b := NewElement("badge", "")
	p := NewPage(a, b)

	assert.Same(t, b, p.ByID("badge"))
	assert.Nil(t, p.ByID("missing"))
	assert.Equal(t, []*Element{a}, p.QueryRole("add-cart"))

	c := NewElement("c", "add-cart")
	p.Append(c, nil)
	assert.Equal(t, []*Element{a, c}, p.QueryRole("add-cart"))
	assert.Len(t, p.Elements(), 3)
}
