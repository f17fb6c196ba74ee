// Package storefront lays out the menu page: the cart regions the
// controller renders into and one add-to-cart trigger per menu item.
package storefront

import (
	"context"
	"fmt"
	"log"
	"strconv"
	"strings"
	"sync/atomic"

	"github.com/ariefcatur/go-cart-sidebar/internal/cart"
	"github.com/ariefcatur/go-cart-sidebar/internal/view"
)

type MenuItem struct {
	Name       string
	PriceCents int
	Section    string
}

func (m MenuItem) PriceText() string {
	return fmt.Sprintf("%d.%02d", m.PriceCents/100, m.PriceCents%100)
}

type Catalog interface {
	Menu(ctx context.Context) ([]MenuItem, error)
}

// Static is a fixed menu.
type Static []MenuItem

func (s Static) Menu(context.Context) ([]MenuItem, error) { return s, nil }

var DefaultMenu = Static{
	{Name: "Burger", PriceCents: 12050, Section: "Mains"},
	{Name: "Chicken Sandwich", PriceCents: 135_00, Section: "Mains"},
	{Name: "Fries", PriceCents: 4525, Section: "Sides"},
	{Name: "Onion Rings", PriceCents: 55_00, Section: "Sides"},
	{Name: "Iced Tea", PriceCents: 35_00, Section: "Drinks"},
}

const AddLabel = "Add to Cart"

var triggerSeq atomic.Int64

// Trigger builds an add-to-cart element for m.
func Trigger(m MenuItem) *view.Element {
	id := "add-" + slug(m.Name) + "-" + strconv.FormatInt(triggerSeq.Add(1), 10)
	el := view.NewElement(id, cart.RoleAddToCart).
		SetAttr(cart.AttrName, m.Name).
		SetAttr(cart.AttrPrice, m.PriceText()).
		SetText(AddLabel)
	if m.Section != "" {
		el.SetAttr("data-section", m.Section)
	}
	return el
}

// NewPage builds the header, the cart regions, the payment selector and
// triggers for menu.
func NewPage(menu []MenuItem) *view.Page {
	p := view.NewPage(
		view.NewElement(cart.IDUserRole, ""),
		view.NewElement(cart.IDLogout, "").SetText("Logout"),
		view.NewElement(cart.IDToggle, "").SetText("Cart"),
		view.NewElement(cart.IDBadge, ""),
		view.NewElement(cart.IDOverlay, ""),
		view.NewElement(cart.IDSidebar, ""),
		view.NewElement(cart.IDClose, "").SetText("×"),
		view.NewElement(cart.IDContent, ""),
		view.NewElement(cart.IDTotal, ""),
		view.NewElement(cart.IDPayment, ""),
		view.NewElement(cart.IDCheckout, "").SetText("Checkout"),
	)
	for _, m := range menu {
		p.Append(Trigger(m))
	}
	return p
}

// Binder is the part of the cart controller a late loader needs.
type Binder interface {
	BindAddToCart(ctx context.Context) int
}

// AppendLate adds the catalog's items to page after it has been bound, then
// asks b to bind the new triggers.
func AppendLate(ctx context.Context, page *view.Page, c Catalog, b Binder) (int, error) {
	items, err := c.Menu(ctx)
	if err != nil {
		return 0, fmt.Errorf("load menu: %w", err)
	}
	for _, m := range items {
		page.Append(Trigger(m))
	}
	if len(items) > 0 {
		b.BindAddToCart(ctx)
	}
	log.Printf("storefront: appended %d catalog items", len(items))
	return len(items), nil
}

func slug(s string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(s) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
		case b.Len() > 0 && !strings.HasSuffix(b.String(), "-"):
			b.WriteByte('-')
		}
	}
	return strings.TrimSuffix(b.String(), "-")
}
