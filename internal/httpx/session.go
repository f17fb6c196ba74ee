package httpx

import (
	"context"
	"log"
	"net/http"
	"sync"
	"sync/atomic"
	"time"

	"github.com/ariefcatur/go-cart-sidebar/internal/cart"
	"github.com/ariefcatur/go-cart-sidebar/internal/store"
	"github.com/ariefcatur/go-cart-sidebar/internal/storefront"
	"github.com/ariefcatur/go-cart-sidebar/internal/view"
	"github.com/google/uuid"
)

const sessionCookie = "sid"

// ui collects what the controller wants shown to the browser: alerts for the
// next page render and at most one pending redirect.
type ui struct {
	mu       sync.Mutex
	alerts   []string
	redirect string
}

func (u *ui) Alert(msg string) {
	u.mu.Lock()
	defer u.mu.Unlock()
	u.alerts = append(u.alerts, msg)
}

func (u *ui) Redirect(dest string) {
	u.mu.Lock()
	defer u.mu.Unlock()
	u.redirect = dest
}

func (u *ui) takeAlerts() []string {
	u.mu.Lock()
	defer u.mu.Unlock()
	a := u.alerts
	u.alerts = nil
	return a
}

func (u *ui) takeRedirect() (string, bool) {
	u.mu.Lock()
	defer u.mu.Unlock()
	d := u.redirect
	u.redirect = ""
	return d, d != ""
}

type Session struct {
	ID   string
	Page *view.Page
	Cart *cart.Controller

	ui       *ui
	lastSeen atomic.Int64
}

type SessionsConfig struct {
	// Store returns the key-value store of one session.
	Store func(sid string) store.Store
	// Release, when set, is called with the id of every swept session. It
	// runs under the sessions lock and must not block.
	Release func(sid string)
	// Sink, when set, returns the order sink of one session.
	Sink func(sid string) cart.OrderSink
	Menu storefront.Static
	// Catalog items are appended to each new page after it is bound.
	Catalog storefront.Catalog
	Cart    cart.Options
	TTL     time.Duration
}

// Sessions keeps one page and cart controller per browser session. With a
// shared store (Redis) an evicted session is rebuilt from it; the default
// in-process stores are released along with their session.
type Sessions struct {
	cfg SessionsConfig
	mu  sync.Mutex
	m   map[string]*Session
}

func NewSessions(cfg SessionsConfig) *Sessions {
	if cfg.Store == nil {
		cfg.Store, cfg.Release = memoryStores()
	}
	if cfg.TTL <= 0 {
		cfg.TTL = 24 * time.Hour
	}
	return &Sessions{cfg: cfg, m: make(map[string]*Session)}
}

// Get returns the caller's session, creating it (and the cookie) when needed.
func (s *Sessions) Get(w http.ResponseWriter, r *http.Request) *Session {
	sid := ""
	if c, err := r.Cookie(sessionCookie); err == nil {
		if _, err := uuid.Parse(c.Value); err == nil {
			sid = c.Value
		}
	}
	if sid == "" {
		sid = uuid.NewString()
		http.SetCookie(w, &http.Cookie{
			Name:     sessionCookie,
			Value:    sid,
			Path:     "/",
			HttpOnly: true,
			SameSite: http.SameSiteLaxMode,
			MaxAge:   int(s.cfg.TTL / time.Second),
		})
	}

	s.mu.Lock()
	sess, ok := s.m[sid]
	s.mu.Unlock()
	if !ok {
		// built unlocked: loading the cart may wait on the store
		built := s.open(r.Context(), sid)
		s.mu.Lock()
		if sess, ok = s.m[sid]; !ok {
			sess = built
			s.m[sid] = sess
		}
		s.mu.Unlock()
	}

	sess.lastSeen.Store(time.Now().UnixNano())
	return sess
}

func (s *Sessions) open(ctx context.Context, sid string) *Session {
	ctx = context.WithoutCancel(ctx)
	page := storefront.NewPage(s.cfg.Menu)
	u := &ui{}
	opts := s.cfg.Cart
	if s.cfg.Sink != nil {
		opts.Sink = s.cfg.Sink(sid)
	}
	ctrl := cart.New(ctx, s.cfg.Store(sid), page, nil, u, u, opts)
	ctrl.Start(ctx)

	if s.cfg.Catalog != nil {
		go func() {
			lctx, cancel := context.WithTimeout(ctx, 10*time.Second)
			defer cancel()
			if _, err := storefront.AppendLate(lctx, page, s.cfg.Catalog, ctrl); err != nil {
				log.Printf("session %s: %v", sid, err)
			}
		}()
	}
	sess := &Session{ID: sid, Page: page, Cart: ctrl, ui: u}
	sess.lastSeen.Store(time.Now().UnixNano())
	return sess
}

// Sweep drops sessions idle for longer than the TTL and reports how many.
func (s *Sessions) Sweep(now time.Time) int {
	cutoff := now.Add(-s.cfg.TTL).UnixNano()
	s.mu.Lock()
	defer s.mu.Unlock()
	n := 0
	for id, sess := range s.m {
		if sess.lastSeen.Load() < cutoff {
			delete(s.m, id)
			if s.cfg.Release != nil {
				s.cfg.Release(id)
			}
			n++
		}
	}
	return n
}

func (s *Sessions) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.m)
}

// RunJanitor sweeps every interval until ctx is done.
func (s *Sessions) RunJanitor(ctx context.Context, interval time.Duration) {
	t := time.NewTicker(interval)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case now := <-t.C:
			if n := s.Sweep(now); n > 0 {
				log.Printf("sessions: evicted %d idle", n)
			}
		}
	}
}

// memoryStores hands out one in-process store per session id; release
// forgets a session's store.
func memoryStores() (get func(sid string) store.Store, release func(sid string)) {
	var mu sync.Mutex
	m := make(map[string]*store.MemoryStore)
	get = func(sid string) store.Store {
		mu.Lock()
		defer mu.Unlock()
		st, ok := m[sid]
		if !ok {
			st = store.NewMemory()
			m[sid] = st
		}
		return st
	}
	release = func(sid string) {
		mu.Lock()
		defer mu.Unlock()
		delete(m, sid)
	}
	return get, release
}
