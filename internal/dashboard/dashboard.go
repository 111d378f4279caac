package dashboard

import (
	"bufio"
	"context"
	"io"
	"time"

	"github.com/spacetrucker2196/galacticcic/internal/query"
	"github.com/spacetrucker2196/galacticcic/internal/render"
	"github.com/spacetrucker2196/galacticcic/internal/store"
)

// MinRefreshInterval is the floor on how often Run pulls a fresh frame
// from the store, per spec.md §5's "≥ 1 s between full refreshes".
const MinRefreshInterval = 1 * time.Second

// Dashboard runs the read-only render loop: a ticker-driven worker
// pulls a fresh Frame from the store at RefreshInterval (never faster
// than MinRefreshInterval) and hands it to Renderer.Draw, and a
// reader goroutine turns each line of input into a dashboard Key,
// triggering an immediate refresh on KeyRefresh and quitting on
// KeyQuit. There is no raw single-keystroke terminal mode here since
// no curses/terminal library is part of this stack (see
// internal/render's package doc); input is read one line at a time
// and only the first rune of each line is dispatched.
type Dashboard struct {
	Store           *store.Store
	Renderer        render.Renderer
	RefreshInterval time.Duration
	Input           io.Reader
	Theme           render.Theme
	Layout          render.Layout
}

// Run blocks until ctx is cancelled or the user sends KeyQuit. It
// returns the theme in effect when it stopped, which callers persist
// back to the dashboard preferences file so a theme cycled mid-session
// survives the next launch.
func (d *Dashboard) Run(ctx context.Context) (render.Theme, error) {
	interval := d.RefreshInterval
	if interval < MinRefreshInterval {
		interval = MinRefreshInterval
	}

	q := query.New(d.Store)
	theme := d.Theme
	focus := render.PanelOrder[0]

	refresh := make(chan struct{}, 1)
	keys := make(chan render.Key)
	if d.Input != nil {
		go readKeys(ctx, d.Input, keys)
	}

	draw := func() error {
		f := Build(ctx, q, d.Store, theme, focus, d.Layout)
		return d.Renderer.Draw(f)
	}
	if err := draw(); err != nil {
		return theme, err
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return theme, nil
		case <-ticker.C:
			if err := draw(); err != nil {
				return theme, err
			}
		case <-refresh:
			if err := draw(); err != nil {
				return theme, err
			}
		case k, ok := <-keys:
			if !ok {
				continue
			}
			var quit bool
			theme, focus, quit = render.Dispatch(k, theme, focus)
			if quit {
				return theme, nil
			}
			if k == render.KeyRefresh {
				select {
				case refresh <- struct{}{}:
				default:
				}
			}
		}
	}
}

// readKeys translates each line of input into at most one dashboard
// Key and sends it on out, stopping when ctx is cancelled or r is
// exhausted.
func readKeys(ctx context.Context, r io.Reader, out chan<- render.Key) {
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := scanner.Text()
		if len(line) == 0 {
			continue
		}
		k := render.KeyFor(rune(line[0]))
		if k == render.KeyUnknown {
			continue
		}
		select {
		case out <- k:
		case <-ctx.Done():
			return
		}
	}
}
