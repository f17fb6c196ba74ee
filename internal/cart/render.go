package cart

import (
	"bytes"
	"html/template"
	"log"
	"strconv"
)

// Element ids the controller looks for. Every region is optional.
const (
	IDLogin    = "login"
	IDUserRole = "user-role"
	IDLogout   = "logout"
	IDToggle   = "cart-toggle"
	IDClose    = "cart-close"
	IDOverlay  = "cart-overlay"
	IDSidebar  = "cart-sidebar"
	IDContent  = "cart-sidebar-content"
	IDTotal    = "cart-total"
	IDBadge    = "cart-badge"
	IDCheckout = "checkout"
	IDPayment  = "payment"

	ClassOpen = "open"
	ClassShow = "show"
)

var contentTmpl = template.Must(template.New("cart").Parse(`
{{- if not .Items}}
<div class="empty-cart">
  <div class="empty-cart-icon">🛒</div>
  <h3>Your cart is empty</h3>
  <p>Add items from the menu to get started!</p>
</div>
{{- else}}{{range $i, $it := .Items}}
<div class="cart-item">
  <div class="cart-item-info">
    <div class="cart-item-name">{{$it.Name}}</div>
    <div class="cart-item-price">{{$.Currency}}{{$it.Price}}</div>
  </div>
  <form method="post" action="{{$.RemoveAction}}/{{$i}}">
    <button class="cart-item-remove" type="submit" data-index="{{$i}}">Remove</button>
  </form>
</div>
{{- end}}{{end}}
`))

// Render projects the current cart onto the badge, content, total and
// checkout regions that exist on the page. Remove actions carry indexes of
// the cart as it is now.
func (c *Controller) Render() {
	c.renderMu.Lock()
	defer c.renderMu.Unlock()

	items := c.Items()

	if badge := c.page.ByID(IDBadge); badge != nil {
		badge.SetText(strconv.Itoa(len(items)))
		if len(items) > 0 {
			badge.SetDisplay("flex")
		} else {
			badge.SetDisplay("none")
		}
	}

	if content := c.page.ByID(IDContent); content != nil {
		var buf bytes.Buffer
		err := contentTmpl.Execute(&buf, struct {
			Items        []Item
			Currency     string
			RemoveAction string
		}{items, c.opts.Currency, c.opts.RemoveAction})
		if err != nil {
			log.Printf("cart: render content: %v", err)
		} else {
			content.SetInnerHTML(buf.String())
		}
	}

	if total := c.page.ByID(IDTotal); total != nil {
		total.SetText(Sum(items).StringFixed(2))
	}

	if btn := c.page.ByID(IDCheckout); btn != nil {
		btn.SetDisabled(len(items) == 0)
	}
}
