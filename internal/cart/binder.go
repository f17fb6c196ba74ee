package cart

import (
	"context"
	"log"
	"strings"
	"time"

	"github.com/ariefcatur/go-cart-sidebar/internal/view"
)

const (
	RoleAddToCart = "add-cart"

	AttrBound = "data-cart-listener"
	AttrName  = "data-name"
	AttrPrice = "data-price"

	AddedLabel      = "✓ Added!"
	AddedBackground = "#28a745"
	AddedColor      = "white"
)

// BindAddToCart attaches the add-to-cart listener to every trigger that does
// not carry one yet and reports how many were newly bound. Triggers inserted
// after the late rescan are only picked up by calling it again.
func (c *Controller) BindAddToCart(ctx context.Context) int {
	c.bindMu.Lock()
	defer c.bindMu.Unlock()

	triggers := c.page.QueryRole(RoleAddToCart)
	n := 0
	for _, el := range triggers {
		if _, marked := el.Attr(AttrBound); marked {
			continue
		}
		if _, ok := c.bound[el]; ok {
			continue
		}
		c.bound[el] = struct{}{}
		el.SetAttr(AttrBound, "true")
		el.AddEventListener(c.addToCart(strings.TrimSpace(el.Text()), el.Background()))
		n++
	}
	log.Printf("cart: found %d add-to-cart triggers, bound %d", len(triggers), n)
	return n
}

// addToCart restores label and background to their bind-time values once the
// acknowledgement expires.
func (c *Controller) addToCart(label, background string) view.Listener {
	return func(ctx context.Context, el *view.Element, ev *view.Event) {
		ev.PreventDefault()
		ev.StopPropagation()

		name, _ := el.Attr(AttrName)
		price, _ := el.Attr(AttrPrice)
		if _, err := c.Add(ctx, name, price); err != nil {
			return
		}

		el.SetText(AddedLabel)
		el.SetBackground(AddedBackground)
		el.SetColor(AddedColor)
		el.SetDisabled(true)
		time.AfterFunc(c.opts.AckDuration, func() {
			el.SetText(label)
			el.SetBackground(background)
			el.SetColor("")
			el.SetDisabled(false)
		})
	}
}

func (c *Controller) bindLogout() {
	el := c.page.ByID(IDLogout)
	if el == nil {
		return
	}
	c.bindMu.Lock()
	defer c.bindMu.Unlock()
	if _, ok := c.bound[el]; ok {
		return
	}
	c.bound[el] = struct{}{}
	el.AddEventListener(func(ctx context.Context, _ *view.Element, ev *view.Event) {
		ev.PreventDefault()
		if err := c.Logout(ctx); err != nil {
			log.Printf("cart: logout: %v", err)
		}
	})
}
