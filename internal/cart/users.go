package cart

import (
	"context"
	"errors"
	"log"
	"strings"

	"github.com/ariefcatur/go-cart-sidebar/internal/store"
)

// StoreUsers reads the logged in user from the session's "user" key.
type StoreUsers struct{ Store store.Store }

func (u StoreUsers) CurrentUser(ctx context.Context) (User, bool) {
	usr, ok := store.Load[User](ctx, u.Store, store.KeyUser)
	if !ok || usr.Username == "" {
		return User{}, false
	}
	return usr, true
}

// Gate redirects to the login page when nobody is logged in. Otherwise it
// shows the user's role in the header and returns the user.
func (c *Controller) Gate(ctx context.Context) (User, bool) {
	u, ok := c.users.CurrentUser(ctx)
	if !ok {
		c.nav.Redirect(c.opts.LoginPath)
		return User{}, false
	}
	if el := c.page.ByID(IDUserRole); el != nil {
		el.SetText(strings.ToUpper(u.Role))
	}
	return u, true
}

func (c *Controller) Login(ctx context.Context, u User) error {
	u.Username = strings.TrimSpace(u.Username)
	if u.Username == "" {
		return errors.New("username is required")
	}
	return store.Save(ctx, c.store, store.KeyUser, u)
}

func (c *Controller) Logout(ctx context.Context) error {
	if err := store.Clear(ctx, c.store, store.KeyUser); err != nil {
		return err
	}
	log.Printf("cart: user logged out")
	c.nav.Redirect(c.opts.LoginPath)
	return nil
}
