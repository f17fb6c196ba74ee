package cart

import (
	"testing"
	"time"

	"github.com/ariefcatur/go-cart-sidebar/internal/store"
	"github.com/ariefcatur/go-cart-sidebar/internal/view"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBindAddToCartIsIdempotent(t *testing.T) {
	triggers := []*view.Element{
		trigger("add-1", "Burger", "120.50"),
		trigger("add-2", "Fries", "45.25"),
		trigger("add-3", "Soda", "30"),
	}
	f := newFixture(t, fullPage(triggers...), Options{})

	assert.Equal(t, 3, f.cart.BindAddToCart(f.ctx))
	for i := 0; i < 4; i++ {
		assert.Zero(t, f.cart.BindAddToCart(f.ctx))
	}

	for _, el := range triggers {
		v, ok := el.Attr(AttrBound)
		assert.True(t, ok)
		assert.Equal(t, "true", v)
		assert.Equal(t, 1, el.ListenerCount())
	}

	triggers[1].Click(f.ctx)
	assert.Equal(t, []Item{{"Fries", 45.25}}, f.cart.Items())
}

func TestBindSkipsPremarkedTriggers(t *testing.T) {
	el := trigger("add-1", "Burger", "1").SetAttr(AttrBound, "true")
	f := newFixture(t, fullPage(el), Options{})

	assert.Zero(t, f.cart.BindAddToCart(f.ctx))
	assert.Zero(t, el.ListenerCount())
}

func TestClickAcknowledgesThenReverts(t *testing.T) {
	el := trigger("add-1", "Burger", "120.50")
	el.SetBackground("#ff6b35")
	f := newFixture(t, fullPage(el), Options{AckDuration: 30 * time.Millisecond})
	f.cart.BindAddToCart(f.ctx)

	ev := el.Click(f.ctx)
	require.NotNil(t, ev)
	assert.True(t, ev.DefaultPrevented())
	assert.True(t, ev.PropagationStopped())

	assert.Equal(t, AddedLabel, el.Text())
	assert.Equal(t, AddedBackground, el.Background())
	assert.Equal(t, AddedColor, el.Color())
	assert.True(t, el.Disabled())

	assert.Nil(t, el.Click(f.ctx), "disabled trigger must ignore clicks")
	assert.Equal(t, 1, f.cart.Len())

	require.Eventually(t, func() bool { return !el.Disabled() }, time.Second, 5*time.Millisecond)
	assert.Equal(t, "Add to Cart", el.Text())
	assert.Equal(t, "#ff6b35", el.Background())
	assert.Empty(t, el.Color())

	el.Click(f.ctx)
	assert.Equal(t, 2, f.cart.Len())
	assert.Equal(t, "241.00", f.page.ByID(IDTotal).Text())
}

func TestClickWithInvalidDataAlerts(t *testing.T) {
	el := trigger("add-1", "Burger", "free")
	f := newFixture(t, fullPage(el), Options{})
	f.cart.BindAddToCart(f.ctx)

	el.Click(f.ctx)

	assert.Zero(t, f.cart.Len())
	assert.Equal(t, []string{MsgInvalidItem}, f.rec.Alerts())
	assert.Equal(t, " Add to Cart ", el.Text())
	assert.False(t, el.Disabled())
}

func TestStartRescansForLateTriggers(t *testing.T) {
	early := trigger("add-1", "Burger", "1")
	f := newFixture(t, fullPage(early), Options{RescanDelay: 30 * time.Millisecond})

	f.cart.Start(f.ctx)
	assert.Equal(t, 1, early.ListenerCount())

	late := trigger("add-2", "Fries", "2")
	f.page.Append(late)
	assert.Zero(t, late.ListenerCount())

	require.Eventually(t, func() bool { return late.ListenerCount() == 1 }, time.Second, 5*time.Millisecond)
	assert.Equal(t, 1, early.ListenerCount())
}

func TestLogoutTrigger(t *testing.T) {
	f := newFixture(t, fullPage(), Options{})
	f.login(t, "alice", "customer")
	f.cart.Start(f.ctx)

	f.page.ByID(IDLogout).Click(f.ctx)

	_, err := f.store.Get(f.ctx, store.KeyUser)
	assert.ErrorIs(t, err, store.ErrNotFound)
	assert.Equal(t, []string{"/login"}, f.rec.Redirects())
}
