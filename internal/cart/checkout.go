package cart

import (
	"context"
	"log"
	"slices"
	"strings"

	"github.com/ariefcatur/go-cart-sidebar/internal/store"
)

const isoMillis = "2006-01-02T15:04:05.000Z07:00"

// Checkout turns the cart into a Preparing order for the current user,
// appends it to the order log, empties the cart and redirects to the
// confirmation page. A missing user redirects to the login page instead.
func (c *Controller) Checkout(ctx context.Context) (Order, error) {
	sel := c.page.ByID(IDPayment)
	if sel == nil {
		c.notify.Alert(MsgNoPaymentSelect)
		return Order{}, ErrNoPaymentMethod
	}
	payment := strings.TrimSpace(sel.Value())
	if payment == "" {
		c.notify.Alert(MsgChoosePayment)
		return Order{}, ErrNoPaymentMethod
	}

	c.mu.Lock()
	if len(c.items) == 0 {
		c.mu.Unlock()
		c.notify.Alert(MsgEmptyCart)
		return Order{}, ErrEmptyCart
	}

	user, ok := c.users.CurrentUser(ctx)
	if !ok {
		c.mu.Unlock()
		c.nav.Redirect(c.opts.LoginPath)
		return Order{}, ErrNotLoggedIn
	}

	orders, _ := store.Load[[]Order](ctx, c.store, store.KeyOrders)
	now := c.opts.Now().UTC()
	order := Order{
		ID:            nextOrderID(orders, now.UnixMilli()),
		Items:         slices.Clone(c.items),
		PaymentMethod: payment,
		Status:        StatusPreparing,
		Customer:      user.Username,
		OrderDate:     now.Format(isoMillis),
	}
	if err := store.Save(ctx, c.store, store.KeyOrders, append(orders, order)); err != nil {
		c.mu.Unlock()
		log.Printf("cart: checkout: %v", err)
		c.notify.Alert(MsgCheckoutFailed)
		return Order{}, err
	}

	c.items = nil
	if err := store.Clear(ctx, c.store, store.KeyCart); err != nil {
		log.Printf("cart: checkout: %v", err)
		// an empty stored cart still keeps ordered items from coming back
		if err := c.persist(ctx, nil); err != nil {
			log.Printf("cart: checkout: stored cart still holds order %d", order.ID)
		}
	}
	c.mu.Unlock()

	c.Render()
	c.CloseCart()

	if c.opts.Sink != nil {
		if err := c.opts.Sink.OrderPlaced(ctx, order); err != nil {
			log.Printf("cart: order %d sink: %v", order.ID, err)
		}
	}
	log.Printf("cart: order %d placed customer=%s items=%d total=%s", order.ID, order.Customer, len(order.Items), order.Total().StringFixed(2))

	c.nav.Redirect(c.opts.SuccessPath)
	return order, nil
}

// nextOrderID keeps ids strictly increasing within one log even when two
// orders land in the same millisecond.
func nextOrderID(orders []Order, ts int64) int64 {
	for _, o := range orders {
		if o.ID >= ts {
			ts = o.ID + 1
		}
	}
	return ts
}
