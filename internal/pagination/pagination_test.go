package pagination

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPageCount(t *testing.T) {
	cases := []struct {
		total   int
		perPage int
		want    int
	}{
		{0, 5, 1},
		{1, 5, 1},
		{5, 5, 1},
		{6, 5, 2},
		{10, 5, 2},
		{11, 5, 3},
	}

	for _, c := range cases {
		assert.Equal(t, c.want, PageCount(c.total, c.perPage), "PageCount(%d, %d)", c.total, c.perPage)
	}
}

type shown struct {
	content []string
	nav     Nav
}

type fakeRenderer struct {
	mu       sync.Mutex
	pages    []shown
	removals int
}

func (r *fakeRenderer) ShowPage(ctx context.Context, content []string, nav Nav) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.pages = append(r.pages, shown{content: content, nav: nav})
	return nil
}

func (r *fakeRenderer) RemoveControls(ctx context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.removals++
	return nil
}

func (r *fakeRenderer) last(t *testing.T) shown {
	t.Helper()
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.pages) == 0 {
		t.Fatal("nothing rendered")
	}
	return r.pages[len(r.pages)-1]
}

func (r *fakeRenderer) removed() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.removals
}

func linesFetch(lines []string, perPage int) FetchFunc[[]string] {
	return func(ctx context.Context, page int) ([]string, int, error) {
		total := PageCount(len(lines), perPage)
		start := (page - 1) * perPage
		if start >= len(lines) {
			return nil, total, nil
		}
		end := start + perPage
		if end > len(lines) {
			end = len(lines)
		}
		return lines[start:end], total, nil
	}
}

func numbered(n int) []string {
	lines := make([]string, n)
	for i := range lines {
		lines[i] = fmt.Sprintf("line %d", i+1)
	}
	return lines
}

func TestControllerNavigate(t *testing.T) {
	t.Run("it opens on page one with controls", func(t *testing.T) {
		r := &fakeRenderer{}
		c := New(linesFetch(numbered(12), 5), r, time.Minute, nil)

		require.NoError(t, c.Navigate(context.Background()))

		got := r.last(t)
		assert.Equal(t, []string{"line 1", "line 2", "line 3", "line 4", "line 5"}, got.content)
		assert.Equal(t, 1, got.nav.Index)
		assert.Equal(t, 3, got.nav.Total)
		assert.True(t, got.nav.ShowControls)
		assert.False(t, got.nav.PrevEnabled)
		assert.True(t, got.nav.NextEnabled)
	})

	t.Run("single page results render without controls", func(t *testing.T) {
		r := &fakeRenderer{}
		c := New(linesFetch(numbered(3), 5), r, time.Minute, nil)

		require.NoError(t, c.Navigate(context.Background()))

		got := r.last(t)
		assert.False(t, got.nav.ShowControls)
	})

	t.Run("zero results still render one empty page", func(t *testing.T) {
		r := &fakeRenderer{}
		c := New(linesFetch(nil, 5), r, time.Minute, nil)

		require.NoError(t, c.Navigate(context.Background()))

		got := r.last(t)
		assert.Empty(t, got.content)
		assert.Equal(t, 1, got.nav.Total)
		assert.False(t, got.nav.ShowControls)
	})

	t.Run("navigating twice is a no-op", func(t *testing.T) {
		r := &fakeRenderer{}
		c := New(linesFetch(numbered(12), 5), r, time.Minute, nil)

		require.NoError(t, c.Navigate(context.Background()))
		require.NoError(t, c.Navigate(context.Background()))

		r.mu.Lock()
		defer r.mu.Unlock()
		assert.Len(t, r.pages, 1)
	})
}

func TestControllerStepping(t *testing.T) {
	t.Run("next and previous move between pages", func(t *testing.T) {
		r := &fakeRenderer{}
		c := New(linesFetch(numbered(12), 5), r, time.Minute, nil)

		require.NoError(t, c.Navigate(context.Background()))
		require.NoError(t, c.Next(context.Background()))

		got := r.last(t)
		assert.Equal(t, 2, got.nav.Index)
		assert.True(t, got.nav.PrevEnabled)
		assert.True(t, got.nav.NextEnabled)

		require.NoError(t, c.Next(context.Background()))
		got = r.last(t)
		assert.Equal(t, 3, got.nav.Index)
		assert.Equal(t, []string{"line 11", "line 12"}, got.content)
		assert.False(t, got.nav.NextEnabled)

		require.NoError(t, c.Previous(context.Background()))
		got = r.last(t)
		assert.Equal(t, 2, got.nav.Index)
	})

	t.Run("stepping out of bounds is ignored", func(t *testing.T) {
		r := &fakeRenderer{}
		c := New(linesFetch(numbered(6), 5), r, time.Minute, nil)

		require.NoError(t, c.Navigate(context.Background()))
		require.NoError(t, c.Previous(context.Background()))

		got := r.last(t)
		assert.Equal(t, 1, got.nav.Index)

		require.NoError(t, c.Next(context.Background()))
		require.NoError(t, c.Next(context.Background()))

		got = r.last(t)
		assert.Equal(t, 2, got.nav.Index)
	})

	t.Run("stepping before navigate is ignored", func(t *testing.T) {
		r := &fakeRenderer{}
		c := New(linesFetch(numbered(12), 5), r, time.Minute, nil)

		require.NoError(t, c.Next(context.Background()))

		r.mu.Lock()
		defer r.mu.Unlock()
		assert.Empty(t, r.pages)
	})

	t.Run("a fetch error is surfaced and the page is unchanged", func(t *testing.T) {
		r := &fakeRenderer{}
		calls := 0
		fetch := func(ctx context.Context, page int) ([]string, int, error) {
			calls++
			if calls > 1 {
				return nil, 0, fmt.Errorf("refresh blew up")
			}
			return numbered(5), 2, nil
		}
		c := New(fetch, r, time.Minute, nil)

		require.NoError(t, c.Navigate(context.Background()))
		err := c.Next(context.Background())
		assert.EqualError(t, err, "refresh blew up")
		assert.Equal(t, 1, r.last(t).nav.Index)
	})
}

func TestControllerExpiry(t *testing.T) {
	t.Run("idle timeout removes controls and ends the session", func(t *testing.T) {
		r := &fakeRenderer{}
		expired := make(chan struct{})
		c := New(linesFetch(numbered(12), 5), r, 20*time.Millisecond, func() {
			close(expired)
		})

		require.NoError(t, c.Navigate(context.Background()))

		select {
		case <-expired:
		case <-time.After(time.Second):
			t.Fatal("session never expired")
		}

		assert.True(t, c.Expired())
		assert.Equal(t, 1, r.removed())

		// Clicks after expiry do nothing.
		require.NoError(t, c.Next(context.Background()))
		r.mu.Lock()
		pages := len(r.pages)
		r.mu.Unlock()
		assert.Equal(t, 1, pages)
	})

	t.Run("navigation pushes the timeout back", func(t *testing.T) {
		r := &fakeRenderer{}
		c := New(linesFetch(numbered(12), 5), r, 60*time.Millisecond, nil)

		require.NoError(t, c.Navigate(context.Background()))
		time.Sleep(35 * time.Millisecond)
		require.NoError(t, c.Next(context.Background()))
		time.Sleep(35 * time.Millisecond)

		assert.False(t, c.Expired())
	})
}
