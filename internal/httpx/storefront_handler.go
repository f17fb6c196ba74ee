package httpx

import (
	"context"
	"embed"
	"errors"
	"html/template"
	"log"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/ariefcatur/go-cart-sidebar/internal/cart"
	"github.com/ariefcatur/go-cart-sidebar/internal/orders"
	"github.com/go-chi/chi/v5"
)

//go:embed templates/*.html
var templateFS embed.FS

var pages = template.Must(template.ParseFS(templateFS, "templates/*.html"))

var PaymentMethods = []string{"Cash", "GCash", "Card"}

// OrderHistory lists a customer's archived orders across sessions.
type OrderHistory interface {
	ListByCustomer(ctx context.Context, customer string) ([]orders.ArchivedOrder, error)
}

type StorefrontHandler struct {
	Sessions *Sessions
	Currency string
	History  OrderHistory // optional
}

func (h *StorefrontHandler) Register(r chi.Router) {
	r.Get("/", h.page)
	r.Get("/login", h.loginForm)
	r.Post("/login", h.login)
	r.Post("/logout", h.logout)
	r.Post("/click/{id}", h.click)
	r.Get("/cart", h.cartState)
	r.Post("/cart/toggle", h.toggleCart)
	r.Post("/cart/close", h.closeCart)
	r.Post("/cart/remove/{index}", h.removeFromCart)
	r.Post("/cart/rebind", h.rebind)
	r.Post("/checkout", h.checkout)
	r.Get("/order-success", h.success)
	r.Get("/orders", h.orders)
	r.Get("/orders/history", h.history)
}

// done sends the browser wherever the controller asked to go, or back to
// the menu.
func (h *StorefrontHandler) done(w http.ResponseWriter, r *http.Request, s *Session) {
	dest, ok := s.ui.takeRedirect()
	if !ok {
		dest = "/"
	}
	http.Redirect(w, r, dest, http.StatusSeeOther)
}

func (h *StorefrontHandler) render(w http.ResponseWriter, name string, data any) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := pages.ExecuteTemplate(w, name, data); err != nil {
		log.Printf("httpx: render %s: %v", name, err)
	}
}

type triggerView struct {
	ID         string
	Name       string
	Price      string
	Label      string
	Background string
	Color      string
	Disabled   bool
}

type pageView struct {
	Role             string
	Alerts           []string
	Badge            string
	BadgeDisplay     string
	SidebarOpen      bool
	OverlayShow      bool
	Content          template.HTML
	Total            string
	CheckoutDisabled bool
	Payment          string
	Payments         []string
	Triggers         []triggerView
	Currency         string
}

func (h *StorefrontHandler) pageView(s *Session) pageView {
	p := s.Page
	v := pageView{Payments: PaymentMethods, Currency: h.Currency, Alerts: s.ui.takeAlerts()}
	if el := p.ByID(cart.IDUserRole); el != nil {
		v.Role = el.Text()
	}
	if el := p.ByID(cart.IDBadge); el != nil {
		v.Badge, v.BadgeDisplay = el.Text(), el.Display()
	}
	if el := p.ByID(cart.IDSidebar); el != nil {
		v.SidebarOpen = el.HasClass(cart.ClassOpen)
	}
	if el := p.ByID(cart.IDOverlay); el != nil {
		v.OverlayShow = el.HasClass(cart.ClassShow)
	}
	if el := p.ByID(cart.IDContent); el != nil {
		// markup comes from the cart renderer, which escapes item data
		v.Content = template.HTML(el.InnerHTML())
	}
	if el := p.ByID(cart.IDTotal); el != nil {
		v.Total = el.Text()
	}
	if el := p.ByID(cart.IDCheckout); el != nil {
		v.CheckoutDisabled = el.Disabled()
	}
	if el := p.ByID(cart.IDPayment); el != nil {
		v.Payment = el.Value()
	}
	for _, el := range p.QueryRole(cart.RoleAddToCart) {
		name, _ := el.Attr(cart.AttrName)
		price, _ := el.Attr(cart.AttrPrice)
		v.Triggers = append(v.Triggers, triggerView{
			ID: el.ID(), Name: name, Price: price, Label: el.Text(),
			Background: el.Background(), Color: el.Color(), Disabled: el.Disabled(),
		})
	}
	return v
}

func (h *StorefrontHandler) page(w http.ResponseWriter, r *http.Request) {
	s := h.Sessions.Get(w, r)
	if _, ok := s.Cart.Gate(r.Context()); !ok {
		h.done(w, r, s)
		return
	}
	h.render(w, "page", h.pageView(s))
}

func (h *StorefrontHandler) loginForm(w http.ResponseWriter, r *http.Request) {
	h.render(w, "login", nil)
}

func (h *StorefrontHandler) login(w http.ResponseWriter, r *http.Request) {
	s := h.Sessions.Get(w, r)
	u := cart.User{Username: r.FormValue("username"), Role: r.FormValue("role")}
	if u.Role == "" {
		u.Role = "customer"
	}
	if err := s.Cart.Login(r.Context(), u); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func (h *StorefrontHandler) logout(w http.ResponseWriter, r *http.Request) {
	s := h.Sessions.Get(w, r)
	if err := s.Cart.Logout(r.Context()); err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	h.done(w, r, s)
}

func (h *StorefrontHandler) click(w http.ResponseWriter, r *http.Request) {
	s := h.Sessions.Get(w, r)
	el := s.Page.ByID(chi.URLParam(r, "id"))
	if el == nil {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "no such element"})
		return
	}
	el.Click(r.Context())
	h.done(w, r, s)
}

type cartItemView struct {
	Index int    `json:"index"`
	Name  string `json:"name"`
	Price string `json:"price"`
}

type cartStateView struct {
	Count            int            `json:"count"`
	Total            string         `json:"total"`
	Items            []cartItemView `json:"items"`
	Open             bool           `json:"open"`
	CheckoutDisabled bool           `json:"checkout_disabled"`
}

func (h *StorefrontHandler) cartState(w http.ResponseWriter, r *http.Request) {
	s := h.Sessions.Get(w, r)
	s.Cart.Render()

	items := s.Cart.Items()
	out := cartStateView{Count: len(items), Total: cart.Sum(items).StringFixed(2), Items: make([]cartItemView, 0, len(items))}
	for i, it := range items {
		out.Items = append(out.Items, cartItemView{Index: i, Name: it.Name, Price: it.Price.String()})
	}
	if el := s.Page.ByID(cart.IDSidebar); el != nil {
		out.Open = el.HasClass(cart.ClassOpen)
	}
	if el := s.Page.ByID(cart.IDCheckout); el != nil {
		out.CheckoutDisabled = el.Disabled()
	}
	writeJSON(w, http.StatusOK, out)
}

func (h *StorefrontHandler) toggleCart(w http.ResponseWriter, r *http.Request) {
	s := h.Sessions.Get(w, r)
	s.Cart.ToggleCart()
	h.done(w, r, s)
}

func (h *StorefrontHandler) closeCart(w http.ResponseWriter, r *http.Request) {
	s := h.Sessions.Get(w, r)
	s.Cart.CloseCart()
	h.done(w, r, s)
}

func (h *StorefrontHandler) removeFromCart(w http.ResponseWriter, r *http.Request) {
	s := h.Sessions.Get(w, r)
	i, err := strconv.Atoi(chi.URLParam(r, "index"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid index"})
		return
	}
	if err := s.Cart.Remove(r.Context(), i); err != nil && !errors.Is(err, cart.ErrNoSuchItem) {
		log.Printf("httpx: remove %d: %v", i, err)
	}
	h.done(w, r, s)
}

func (h *StorefrontHandler) rebind(w http.ResponseWriter, r *http.Request) {
	s := h.Sessions.Get(w, r)
	n := s.Cart.BindAddToCart(r.Context())
	writeJSON(w, http.StatusOK, map[string]int{"bound": n})
}

func (h *StorefrontHandler) checkout(w http.ResponseWriter, r *http.Request) {
	s := h.Sessions.Get(w, r)
	if el := s.Page.ByID(cart.IDPayment); el != nil {
		el.SetValue(strings.TrimSpace(r.FormValue("payment")))
	}
	if _, err := s.Cart.Checkout(r.Context()); err != nil {
		log.Printf("httpx: checkout session=%s: %v", s.ID, err)
	}
	h.done(w, r, s)
}

func (h *StorefrontHandler) success(w http.ResponseWriter, r *http.Request) {
	s := h.Sessions.Get(w, r)
	data := struct {
		Order    *cart.Order
		Total    string
		Currency string
	}{Currency: h.Currency}
	if placed := s.Cart.Orders(r.Context()); len(placed) > 0 {
		last := placed[len(placed)-1]
		data.Order = &last
		data.Total = last.Total().StringFixed(2)
	}
	h.render(w, "success", data)
}

func (h *StorefrontHandler) orders(w http.ResponseWriter, r *http.Request) {
	s := h.Sessions.Get(w, r)
	out := s.Cart.Orders(r.Context())
	if out == nil {
		out = []cart.Order{}
	}
	writeJSON(w, http.StatusOK, out)
}

func (h *StorefrontHandler) history(w http.ResponseWriter, r *http.Request) {
	if h.History == nil {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "order history not enabled"})
		return
	}
	s := h.Sessions.Get(w, r)
	u, ok := s.Cart.Gate(r.Context())
	if !ok {
		h.done(w, r, s)
		return
	}
	ctx, cancel := context.WithTimeout(r.Context(), 3*time.Second)
	defer cancel()
	out, err := h.History.ListByCustomer(ctx, u.Username)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	if out == nil {
		out = []orders.ArchivedOrder{}
	}
	writeJSON(w, http.StatusOK, out)
}
