package cart

import (
	"context"
	"math/rand"
	"strconv"
	"strings"
	"testing"

	"github.com/ariefcatur/go-cart-sidebar/internal/store"
	"github.com/ariefcatur/go-cart-sidebar/internal/view"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAddRendersTotalAndBadge(t *testing.T) {
	f := newFixture(t, fullPage(), Options{})

	_, err := f.cart.Add(f.ctx, "Burger", "120.50")
	require.NoError(t, err)
	_, err = f.cart.Add(f.ctx, "Fries", "45.25")
	require.NoError(t, err)

	assert.Equal(t, "165.75", f.page.ByID(IDTotal).Text())
	assert.Equal(t, "165.75", f.cart.Total().StringFixed(2))
	assert.Equal(t, "2", f.page.ByID(IDBadge).Text())
	assert.Equal(t, "flex", f.page.ByID(IDBadge).Display())
	assert.False(t, f.page.ByID(IDCheckout).Disabled())

	html := f.page.ByID(IDContent).InnerHTML()
	assert.Contains(t, html, "Burger")
	assert.Contains(t, html, "₱120.50")
	assert.Contains(t, html, "₱45.25")
	assert.Equal(t, []Item{{"Burger", 120.5}, {"Fries", 45.25}}, f.persistedCart(t))
}

func TestAddRejectsInvalidItems(t *testing.T) {
	cases := []struct {
		name, itemName, price string
	}{
		{"empty name", "", "10"},
		{"blank name", "   ", "10"},
		{"non numeric", "Soda", "abc"},
		{"NaN", "Soda", "NaN"},
		{"infinite", "Soda", "Inf"},
		{"zero", "Soda", "0"},
		{"negative", "Soda", "-3.50"},
		{"missing", "Soda", ""},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			f := newFixture(t, fullPage(), Options{})

			_, err := f.cart.Add(f.ctx, tc.itemName, tc.price)
			assert.ErrorIs(t, err, ErrInvalidItem)
			assert.Zero(t, f.cart.Len())
			assert.Equal(t, []string{MsgInvalidItem}, f.rec.Alerts())

			_, err = f.store.Get(f.ctx, store.KeyCart)
			assert.ErrorIs(t, err, store.ErrNotFound)
		})
	}
}

func TestRemoveShiftsLaterItems(t *testing.T) {
	f := newFixture(t, fullPage(), Options{})
	for _, n := range []string{"A", "B", "C"} {
		_, err := f.cart.Add(f.ctx, n, "1")
		require.NoError(t, err)
	}

	require.NoError(t, f.cart.Remove(f.ctx, 1))
	assert.Equal(t, []Item{{"A", 1}, {"C", 1}}, f.cart.Items())
	assert.Equal(t, f.cart.Items(), f.persistedCart(t))

	html := f.page.ByID(IDContent).InnerHTML()
	assert.Contains(t, html, `action="/cart/remove/1"`)
	assert.NotContains(t, html, `action="/cart/remove/2"`)

	require.NoError(t, f.cart.Remove(f.ctx, 1))
	assert.Equal(t, []Item{{"A", 1}}, f.cart.Items())
}

func TestRemoveOutOfRange(t *testing.T) {
	f := newFixture(t, fullPage(), Options{})

	assert.ErrorIs(t, f.cart.Remove(f.ctx, 0), ErrNoSuchItem)
	assert.ErrorIs(t, f.cart.Remove(f.ctx, -1), ErrNoSuchItem)

	_, err := f.cart.Add(f.ctx, "A", "2")
	require.NoError(t, err)
	assert.ErrorIs(t, f.cart.Remove(f.ctx, 1), ErrNoSuchItem)
	assert.Equal(t, 1, f.cart.Len())
}

func TestTotalTracksRandomMutations(t *testing.T) {
	f := newFixture(t, fullPage(), Options{})
	rnd := rand.New(rand.NewSource(42))

	for step := 0; step < 200; step++ {
		if n := f.cart.Len(); n > 0 && rnd.Intn(3) == 0 {
			require.NoError(t, f.cart.Remove(f.ctx, rnd.Intn(n)))
		} else {
			cents := 1 + rnd.Intn(99999)
			price := strconv.Itoa(cents/100) + "." + strconv.Itoa(100 + cents%100)[1:]
			_, err := f.cart.Add(f.ctx, "item"+strconv.Itoa(step), price)
			require.NoError(t, err)
		}

		items := f.cart.Items()
		assert.Equal(t, Sum(items).StringFixed(2), f.page.ByID(IDTotal).Text())
		assert.Equal(t, strconv.Itoa(len(items)), f.page.ByID(IDBadge).Text())
		if len(items) > 0 {
			assert.Equal(t, items, f.persistedCart(t))
		}
	}
}

func TestNewLoadsPersistedCart(t *testing.T) {
	f := newFixture(t, fullPage(), Options{})
	_, err := f.cart.Add(f.ctx, "Burger", "120.50")
	require.NoError(t, err)

	again := New(f.ctx, f.store, fullPage(), nil, f.rec, f.rec, Options{})
	assert.Equal(t, []Item{{"Burger", 120.5}}, again.Items())
}

func TestCorruptPersistedCartStartsEmpty(t *testing.T) {
	ctx := context.Background()
	st := store.NewMemory()
	require.NoError(t, st.Set(ctx, store.KeyCart, []byte("{not json")))

	c := New(ctx, st, fullPage(), nil, &recorder{}, &recorder{}, Options{})
	assert.Zero(t, c.Len())
}

func TestStoredStringPricesAreTolerated(t *testing.T) {
	ctx := context.Background()
	st := store.NewMemory()
	require.NoError(t, st.Set(ctx, store.KeyCart, []byte(`[{"name":"A","price":"12.5"},{"name":"B","price":"oops"}]`)))

	page := fullPage()
	c := New(ctx, st, page, nil, &recorder{}, &recorder{}, Options{})
	c.Render()

	assert.Equal(t, 2, c.Len())
	assert.Equal(t, "12.50", page.ByID(IDTotal).Text())
}

func TestRenderEmptyState(t *testing.T) {
	f := newFixture(t, fullPage(), Options{})
	f.cart.Render()

	assert.Equal(t, "0", f.page.ByID(IDBadge).Text())
	assert.Equal(t, "none", f.page.ByID(IDBadge).Display())
	assert.Equal(t, "0.00", f.page.ByID(IDTotal).Text())
	assert.True(t, f.page.ByID(IDCheckout).Disabled())
	assert.Contains(t, f.page.ByID(IDContent).InnerHTML(), "Your cart is empty")
}

func TestRenderEscapesItemNames(t *testing.T) {
	f := newFixture(t, fullPage(), Options{})
	_, err := f.cart.Add(f.ctx, `<img src=x onerror=alert(1)>`, "5")
	require.NoError(t, err)

	html := f.page.ByID(IDContent).InnerHTML()
	assert.NotContains(t, html, "<img")
	assert.Contains(t, html, "&lt;img")
}

func TestRenderSkipsMissingRegions(t *testing.T) {
	f := newFixture(t, view.NewPage(), Options{})

	_, err := f.cart.Add(f.ctx, "Burger", "1")
	require.NoError(t, err)
	assert.NotPanics(t, f.cart.Render)
	assert.NotPanics(t, f.cart.ToggleCart)
	assert.NotPanics(t, f.cart.CloseCart)
}

func TestToggleAndCloseCart(t *testing.T) {
	f := newFixture(t, fullPage(), Options{Currency: "$"})
	sidebar, overlay := f.page.ByID(IDSidebar), f.page.ByID(IDOverlay)

	_, err := f.cart.Add(f.ctx, "Tea", "3")
	require.NoError(t, err)

	f.cart.ToggleCart()
	assert.True(t, sidebar.HasClass(ClassOpen))
	assert.True(t, overlay.HasClass(ClassShow))
	assert.True(t, strings.Contains(f.page.ByID(IDContent).InnerHTML(), "$3.00"))

	f.cart.CloseCart()
	assert.False(t, sidebar.HasClass(ClassOpen))
	assert.False(t, overlay.HasClass(ClassShow))
}

func TestAddKeepsNameAsGiven(t *testing.T) {
	f := newFixture(t, fullPage(), Options{})

	it, err := f.cart.Add(f.ctx, "  Iced Tea ", "35")
	require.NoError(t, err)

	assert.Equal(t, "  Iced Tea ", it.Name)
	assert.Equal(t, []Item{{"  Iced Tea ", 35}}, f.persistedCart(t))
}
