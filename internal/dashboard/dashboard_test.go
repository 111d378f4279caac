package dashboard

import (
	"context"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/spacetrucker2196/galacticcic/internal/render"
)

type countingRenderer struct {
	draws int32
}

func (r *countingRenderer) Draw(f render.Frame) error {
	atomic.AddInt32(&r.draws, 1)
	return nil
}

func TestDashboardRunQuitsOnQKey(t *testing.T) {
	s := newTestStore(t)
	r := &countingRenderer{}
	d := &Dashboard{
		Store:           s,
		Renderer:        r,
		RefreshInterval: MinRefreshInterval,
		Input:           strings.NewReader("q\n"),
		Theme:           render.Phosphor,
		Layout:          render.LayoutWide,
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	theme, err := d.Run(ctx)
	require.NoError(t, err)
	require.Equal(t, render.Phosphor, theme)
	require.GreaterOrEqual(t, atomic.LoadInt32(&r.draws), int32(1))
}

func TestDashboardRunStopsOnContextCancel(t *testing.T) {
	s := newTestStore(t)
	r := &countingRenderer{}
	d := &Dashboard{
		Store:           s,
		Renderer:        r,
		RefreshInterval: MinRefreshInterval,
		Theme:           render.Phosphor,
		Layout:          render.LayoutWide,
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Millisecond)
	defer cancel()

	theme, err := d.Run(ctx)
	require.NoError(t, err)
	require.Equal(t, render.Phosphor, theme)
}

func TestDashboardRunReturnsThemeCycledBeforeQuit(t *testing.T) {
	s := newTestStore(t)
	r := &countingRenderer{}
	d := &Dashboard{
		Store:           s,
		Renderer:        r,
		RefreshInterval: MinRefreshInterval,
		Input:           strings.NewReader("t\nq\n"),
		Theme:           render.Phosphor,
		Layout:          render.LayoutWide,
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	theme, err := d.Run(ctx)
	require.NoError(t, err)
	require.Equal(t, render.NextTheme(render.Phosphor), theme)
}
