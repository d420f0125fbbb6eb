package view

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"

	"github.com/Lixing-Zhang/kart-challenge/storefront/internal/models"
)

const (
	// DefaultMenuPageSize is the number of products per menu page
	DefaultMenuPageSize = 12

	MenuErrorMessage = "Unable to load menu."
)

// ProductLister is the read side the menu browses
type ProductLister interface {
	ListProducts(ctx context.Context, q models.ProductQuery) ([]models.Product, error)
}

// MenuFilter is the shopper's current search, category and page
type MenuFilter struct {
	Search     string
	CategoryID string
	Page       int
}

// Normalize trims the search and floors the page at 1
func (f MenuFilter) Normalize() MenuFilter {
	f.Search = strings.TrimSpace(f.Search)
	f.CategoryID = strings.TrimSpace(f.CategoryID)
	if f.Page < 1 {
		f.Page = 1
	}
	return f
}

// Menu is the state of one menu page render
type Menu struct {
	State[models.Product]
	Filter     MenuFilter
	HasMore    bool
	Categories []models.Category
	ViewID     string
}

func (m *Menu) HasPrev() bool { return m.Filter.Page > 1 }

func (m *Menu) PrevPage() int {
	if m.Filter.Page <= 1 {
		return 1
	}
	return m.Filter.Page - 1
}

func (m *Menu) NextPage() int { return m.Filter.Page + 1 }

// MenuBrowser loads menu pages for one menu view. When filter changes overlap,
// the older request is cancelled and its result dropped, so a slow response
// for a stale filter never replaces a newer one.
type MenuBrowser struct {
	lister   ProductLister
	pageSize int
	latest   Latest[[]models.Product]
}

// NewMenuBrowser creates a browser listing pageSize products per page
func NewMenuBrowser(lister ProductLister, pageSize int) *MenuBrowser {
	if pageSize <= 0 {
		pageSize = DefaultMenuPageSize
	}
	return &MenuBrowser{
		lister:   lister,
		pageSize: pageSize,
	}
}

// Browse loads the menu page for filter. Fetch failures are reported through
// the returned Menu's state; the only error is ErrSuperseded.
func (b *MenuBrowser) Browse(ctx context.Context, filter MenuFilter) (*Menu, error) {
	filter = filter.Normalize()
	menu := &Menu{Filter: filter}
	menu.Begin()

	products, err := b.latest.Do(ctx, func(ctx context.Context) ([]models.Product, error) {
		return b.lister.ListProducts(ctx, models.ProductQuery{
			Page:       filter.Page,
			Limit:      b.pageSize,
			Search:     filter.Search,
			CategoryID: filter.CategoryID,
		})
	})
	if errors.Is(err, ErrSuperseded) {
		return nil, err
	}
	if err != nil {
		menu.Fail(MenuErrorMessage, err)
		return menu, nil
	}

	menu.Succeed(products)
	menu.HasMore = len(products) == b.pageSize
	return menu, nil
}

// Close cancels any request in flight
func (b *MenuBrowser) Close() {
	b.latest.Cancel()
}

type browserEntry struct {
	browser  *MenuBrowser
	lastSeen time.Time
}

// BrowserRegistry keeps one MenuBrowser per menu view and forgets views
// idle for longer than the TTL.
type BrowserRegistry struct {
	lister   ProductLister
	pageSize int
	ttl      time.Duration
	now      func() time.Time

	mu        sync.Mutex
	browsers  map[string]*browserEntry
	lastSweep time.Time
}

// NewBrowserRegistry creates an empty registry
func NewBrowserRegistry(lister ProductLister, pageSize int, ttl time.Duration) *BrowserRegistry {
	return &BrowserRegistry{
		lister:   lister,
		pageSize: pageSize,
		ttl:      ttl,
		now:      time.Now,
		browsers: make(map[string]*browserEntry),
	}
}

// Browser returns the view's browser, creating it on first use
func (r *BrowserRegistry) Browser(viewKey string) *MenuBrowser {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := r.now()
	if r.ttl > 0 && now.Sub(r.lastSweep) >= r.ttl/2 {
		r.sweepLocked(now)
		r.lastSweep = now
	}

	entry, ok := r.browsers[viewKey]
	if !ok {
		entry = &browserEntry{browser: NewMenuBrowser(r.lister, r.pageSize)}
		r.browsers[viewKey] = entry
	}
	entry.lastSeen = now
	return entry.browser
}

// Len reports how many views are tracked
func (r *BrowserRegistry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.browsers)
}

// Close cancels every in-flight request and forgets all views
func (r *BrowserRegistry) Close() {
	r.mu.Lock()
	defer r.mu.Unlock()
	for id, entry := range r.browsers {
		entry.browser.Close()
		delete(r.browsers, id)
	}
}

func (r *BrowserRegistry) sweepLocked(now time.Time) {
	for id, entry := range r.browsers {
		if now.Sub(entry.lastSeen) > r.ttl {
			entry.browser.Close()
			delete(r.browsers, id)
		}
	}
}
