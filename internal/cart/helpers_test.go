package cart

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/ariefcatur/go-cart-sidebar/internal/store"
	"github.com/ariefcatur/go-cart-sidebar/internal/view"
	"github.com/stretchr/testify/require"
)

// recorder captures alerts and redirects.
type recorder struct {
	mu        sync.Mutex
	alerts    []string
	redirects []string
}

func (r *recorder) Alert(msg string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.alerts = append(r.alerts, msg)
}

func (r *recorder) Redirect(dest string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.redirects = append(r.redirects, dest)
}

func (r *recorder) Alerts() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.alerts...)
}

func (r *recorder) Redirects() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.redirects...)
}

type sinkFunc func(ctx context.Context, o Order) error

func (f sinkFunc) OrderPlaced(ctx context.Context, o Order) error { return f(ctx, o) }

func fullPage(extra ...*view.Element) *view.Page {
	p := view.NewPage(
		view.NewElement(IDUserRole, ""),
		view.NewElement(IDLogout, ""),
		view.NewElement(IDToggle, ""),
		view.NewElement(IDOverlay, ""),
		view.NewElement(IDSidebar, ""),
		view.NewElement(IDContent, ""),
		view.NewElement(IDTotal, ""),
		view.NewElement(IDBadge, ""),
		view.NewElement(IDCheckout, ""),
		view.NewElement(IDPayment, ""),
	)
	p.Append(extra...)
	return p
}

func trigger(id, name, price string) *view.Element {
	return view.NewElement(id, RoleAddToCart).
		SetAttr(AttrName, name).
		SetAttr(AttrPrice, price).
		SetText(" Add to Cart ")
}

type fixture struct {
	ctx   context.Context
	store *store.MemoryStore
	page  *view.Page
	rec   *recorder
	cart  *Controller
}

func newFixture(t *testing.T, page *view.Page, opts Options) *fixture {
	t.Helper()
	if opts.AckDuration == 0 {
		opts.AckDuration = 20 * time.Millisecond
	}
	if opts.RescanDelay == 0 {
		opts.RescanDelay = 20 * time.Millisecond
	}
	f := &fixture{
		ctx:   context.Background(),
		store: store.NewMemory(),
		page:  page,
		rec:   &recorder{},
	}
	f.cart = New(f.ctx, f.store, page, nil, f.rec, f.rec, opts)
	return f
}

func (f *fixture) login(t *testing.T, name, role string) {
	t.Helper()
	require.NoError(t, f.cart.Login(f.ctx, User{Username: name, Role: role}))
}

func (f *fixture) persistedCart(t *testing.T) []Item {
	t.Helper()
	items, _ := store.Load[[]Item](f.ctx, f.store, store.KeyCart)
	return items
}
