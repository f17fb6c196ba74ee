package cart

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGateRedirectsAnonymous(t *testing.T) {
	f := newFixture(t, fullPage(), Options{})

	_, ok := f.cart.Gate(f.ctx)
	assert.False(t, ok)
	assert.Equal(t, []string{"/login"}, f.rec.Redirects())
}

func TestGateShowsRole(t *testing.T) {
	f := newFixture(t, fullPage(), Options{})
	f.login(t, "bob", "staff")

	u, ok := f.cart.Gate(f.ctx)
	assert.True(t, ok)
	assert.Equal(t, "bob", u.Username)
	assert.Equal(t, "STAFF", f.page.ByID(IDUserRole).Text())
	assert.Empty(t, f.rec.Redirects())
}

func TestLoginRequiresUsername(t *testing.T) {
	f := newFixture(t, fullPage(), Options{})

	assert.Error(t, f.cart.Login(f.ctx, User{Username: "  ", Role: "customer"}))
	_, ok := StoreUsers{Store: f.store}.CurrentUser(f.ctx)
	assert.False(t, ok)
}
