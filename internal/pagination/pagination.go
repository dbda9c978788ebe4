// Package pagination navigates fixed-size windows over a page supplier.
// It knows nothing about Discord; callers provide a Renderer for whatever
// surface displays the pages.
package pagination

import (
	"context"
	"sync"
	"time"
)

// PageCount returns the number of pages needed to display totalResults.
// Zero results still occupy one (empty) page.
func PageCount(totalResults, resultsPerPage int) int {
	return ((totalResults - 1) / resultsPerPage) + 1
}

// FetchFunc produces the content of a 1-indexed page along with the total
// page count, which may change between calls.
type FetchFunc[T any] func(ctx context.Context, page int) (content T, totalPages int, err error)

// Nav describes the navigation controls accompanying a rendered page.
type Nav struct {
	Index int
	Total int

	// ShowControls is false for single-page results; no controls are
	// rendered at all in that case.
	ShowControls bool
	PrevEnabled  bool
	NextEnabled  bool
}

// Renderer is the display capability a Controller drives.
type Renderer[T any] interface {
	ShowPage(ctx context.Context, content T, nav Nav) error
	RemoveControls(ctx context.Context) error
}

type state int

const (
	stateUnopened state = iota
	stateDisplayed
	stateExpired
)

// Controller is one navigation session. All navigation is serialized: a
// click's fetch-render cycle completes before the next click is handled,
// because a page fetch may trigger a full refresh of the underlying data.
type Controller[T any] struct {
	fetch    FetchFunc[T]
	renderer Renderer[T]
	idle     time.Duration
	onExpire func()

	mu    sync.Mutex
	state state
	index int
	total int
	timer *time.Timer
}

// New creates an unopened session. onExpire, if non-nil, runs after the
// idle timeout removes the controls; callers use it to drop the session
// from their registries.
func New[T any](fetch FetchFunc[T], renderer Renderer[T], idle time.Duration, onExpire func()) *Controller[T] {
	return &Controller[T]{
		fetch:    fetch,
		renderer: renderer,
		idle:     idle,
		onExpire: onExpire,
	}
}

// Navigate opens the session on page 1.
func (c *Controller[T]) Navigate(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.state != stateUnopened {
		return nil
	}

	if err := c.show(ctx, 1); err != nil {
		return err
	}
	c.state = stateDisplayed
	return nil
}

// Next moves forward one page. Clicks after expiry, or past the last
// page, are ignored; bounds are enforced by disabling the control.
func (c *Controller[T]) Next(ctx context.Context) error {
	return c.step(ctx, 1)
}

// Previous moves back one page.
func (c *Controller[T]) Previous(ctx context.Context) error {
	return c.step(ctx, -1)
}

func (c *Controller[T]) step(ctx context.Context, delta int) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.state != stateDisplayed {
		return nil
	}

	target := c.index + delta
	if target < 1 || target > c.total {
		return nil
	}

	return c.show(ctx, target)
}

func (c *Controller[T]) show(ctx context.Context, page int) error {
	content, total, err := c.fetch(ctx, page)
	if err != nil {
		return err
	}

	c.index = page
	c.total = total

	nav := Nav{
		Index:        page,
		Total:        total,
		ShowControls: total > 1,
		PrevEnabled:  page > 1,
		NextEnabled:  page < total,
	}
	if err := c.renderer.ShowPage(ctx, content, nav); err != nil {
		return err
	}

	c.resetTimer()
	return nil
}

func (c *Controller[T]) resetTimer() {
	if c.timer != nil {
		c.timer.Stop()
	}
	c.timer = time.AfterFunc(c.idle, c.expire)
}

// expire removes the controls irreversibly. There is no transition back
// to Displayed.
func (c *Controller[T]) expire() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.state != stateDisplayed {
		return
	}
	c.state = stateExpired

	_ = c.renderer.RemoveControls(context.Background())
	if c.onExpire != nil {
		c.onExpire()
	}
}

// Expired reports whether the idle timeout has fired.
func (c *Controller[T]) Expired() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state == stateExpired
}
