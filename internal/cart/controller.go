// Package cart owns one page session's shopping cart: it keeps the cart in
// memory and in the session store, binds add-to-cart triggers, renders the
// sidebar and turns the cart into an order at checkout.
package cart

import (
	"context"
	"log"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/ariefcatur/go-cart-sidebar/internal/store"
	"github.com/ariefcatur/go-cart-sidebar/internal/view"
	"github.com/shopspring/decimal"
)

type UserProvider interface {
	CurrentUser(ctx context.Context) (User, bool)
}

type Navigator interface {
	Redirect(dest string)
}

// Notifier shows a blocking message to the user.
type Notifier interface {
	Alert(msg string)
}

// OrderSink is told about every placed order. Failures never undo checkout.
type OrderSink interface {
	OrderPlaced(ctx context.Context, o Order) error
}

type Options struct {
	Currency     string
	LoginPath    string
	SuccessPath  string
	RemoveAction string
	RescanDelay  time.Duration
	AckDuration  time.Duration
	Now          func() time.Time
	Sink         OrderSink
}

func (o *Options) defaults() {
	if o.Currency == "" {
		o.Currency = "₱"
	}
	if o.LoginPath == "" {
		o.LoginPath = "/login"
	}
	if o.SuccessPath == "" {
		o.SuccessPath = "/order-success"
	}
	if o.RemoveAction == "" {
		o.RemoveAction = "/cart/remove"
	}
	if o.RescanDelay <= 0 {
		o.RescanDelay = 500 * time.Millisecond
	}
	if o.AckDuration <= 0 {
		o.AckDuration = time.Second
	}
	if o.Now == nil {
		o.Now = time.Now
	}
}

type Controller struct {
	store  store.Store
	page   *view.Page
	users  UserProvider
	nav    Navigator
	notify Notifier
	opts   Options

	mu    sync.Mutex // guards items
	items []Item

	bindMu sync.Mutex // guards bound
	bound  map[*view.Element]struct{}

	renderMu sync.Mutex
}

// New loads the persisted cart. A nil users provider reads the session's
// stored user record.
func New(ctx context.Context, st store.Store, page *view.Page, users UserProvider, nav Navigator, notify Notifier, opts Options) *Controller {
	opts.defaults()
	if users == nil {
		users = StoreUsers{Store: st}
	}
	items, _ := store.Load[[]Item](ctx, st, store.KeyCart)
	return &Controller{
		store:  st,
		page:   page,
		users:  users,
		nav:    nav,
		notify: notify,
		opts:   opts,
		items:  items,
		bound:  make(map[*view.Element]struct{}),
	}
}

// Start renders the cart, binds the current triggers and schedules one late
// rescan for triggers inserted shortly after the page became ready.
func (c *Controller) Start(ctx context.Context) {
	c.Render()
	c.bindLogout()
	c.BindAddToCart(ctx)

	bg := context.WithoutCancel(ctx)
	time.AfterFunc(c.opts.RescanDelay, func() { c.BindAddToCart(bg) })
}

func (c *Controller) Items() []Item {
	c.mu.Lock()
	defer c.mu.Unlock()
	return slices.Clone(c.items)
}

func (c *Controller) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.items)
}

func (c *Controller) Total() decimal.Decimal { return Sum(c.Items()) }

func (c *Controller) Orders(ctx context.Context) []Order {
	orders, _ := store.Load[[]Order](ctx, c.store, store.KeyOrders)
	return orders
}

// Add validates and appends one item, then persists and re-renders. The
// name is stored as given; only a blank one is rejected.
func (c *Controller) Add(ctx context.Context, name, priceText string) (Item, error) {
	price, err := ParsePrice(priceText)
	if strings.TrimSpace(name) == "" || err != nil {
		log.Printf("cart: invalid item data name=%q price=%q", name, priceText)
		c.notify.Alert(MsgInvalidItem)
		return Item{}, ErrInvalidItem
	}
	it := Item{Name: name, Price: price}

	c.mu.Lock()
	next := append(slices.Clone(c.items), it)
	if err := c.persist(ctx, next); err != nil {
		c.mu.Unlock()
		c.notify.Alert(MsgCartUnavailable)
		return Item{}, err
	}
	c.items = next
	c.mu.Unlock()

	c.Render()
	return it, nil
}

// Remove drops the item currently at index. Out of range indexes leave the
// cart untouched and report ErrNoSuchItem.
func (c *Controller) Remove(ctx context.Context, index int) error {
	c.mu.Lock()
	if index < 0 || index >= len(c.items) {
		c.mu.Unlock()
		return ErrNoSuchItem
	}
	next := slices.Delete(slices.Clone(c.items), index, index+1)
	if err := c.persist(ctx, next); err != nil {
		c.mu.Unlock()
		c.notify.Alert(MsgCartUnavailable)
		return err
	}
	c.items = next
	c.mu.Unlock()

	c.Render()
	return nil
}

// persist writes items through to the store; callers hold c.mu.
func (c *Controller) persist(ctx context.Context, items []Item) error {
	if items == nil {
		items = []Item{}
	}
	if err := store.Save(ctx, c.store, store.KeyCart, items); err != nil {
		log.Printf("cart: %v", err)
		return err
	}
	return nil
}

func (c *Controller) ToggleCart() {
	sidebar, overlay := c.page.ByID(IDSidebar), c.page.ByID(IDOverlay)
	if sidebar == nil || overlay == nil {
		return
	}
	sidebar.ToggleClass(ClassOpen)
	overlay.ToggleClass(ClassShow)
	c.Render()
}

func (c *Controller) CloseCart() {
	sidebar, overlay := c.page.ByID(IDSidebar), c.page.ByID(IDOverlay)
	if sidebar == nil || overlay == nil {
		return
	}
	sidebar.RemoveClass(ClassOpen)
	overlay.RemoveClass(ClassShow)
}
