package main

import (
	"log/slog"
	"net/http"
	"time"

	"gioui.org/app"
	"gioui.org/font/gofont"
	"gioui.org/layout"
	"gioui.org/op"
	"gioui.org/text"
	"gioui.org/widget/material"

	"github.com/olablt/gio-basemaps/assets"
	"github.com/olablt/gio-basemaps/basemap"
	"github.com/olablt/gio-basemaps/cursor"
	"github.com/olablt/gio-basemaps/mapview"
	"github.com/olablt/gio-basemaps/panel"
	"github.com/olablt/gio-basemaps/tiles"
)

func run(w *app.Window, reg *basemap.Registry, opts *options, logger *slog.Logger) error {
	fetcher := tiles.NewHTTPFetcher(&http.Client{Timeout: 15 * time.Second}, opts.userAgent)
	tm := tiles.NewTileManager(fetcher, tiles.Options{Workers: opts.workers, Logger: logger})
	defer tm.Close()
	// Invalidate is safe to call from the tile workers.
	tm.SetOnLoadCallback(w.Invalidate)

	mv, err := mapview.New(mapview.Config{
		Registry: reg,
		Tiles:    tm,
		Center:   tiles.GeoPosition{Latitude: opts.lat, Longitude: opts.lon},
		Zoom:     opts.zoom,
		Hands:    cursor.LoadHands(assets.FS, assets.OpenHandCursor, assets.GrabbedHandCursor, logger),
		Logger:   logger,
	})
	if err != nil {
		return err
	}

	th := material.NewTheme()
	th.Shaper = text.NewShaper(text.WithCollection(gofont.Collection()))
	controls := panel.New(th, reg.Names(), mv.Source().Name)

	logger.Info("viewer started", "basemap", mv.Source().Name, "center", mv.Center(), "zoom", mv.State().ZoomLevel)

	var ops op.Ops
	for {
		switch e := w.Event().(type) {
		case app.DestroyEvent:
			return e.Err
		case app.FrameEvent:
			gtx := app.NewContext(&ops, e)
			if name, ok := controls.Changed(gtx); ok {
				if err := mv.SetBasemap(name); err != nil {
					logger.Error("basemap switch failed", "basemap", name, "err", err)
					controls.Select(mv.Source().Name)
				}
			}
			layoutWindow(gtx, controls, mv)
			e.Frame(gtx.Ops)
		}
	}
}

func layoutWindow(gtx layout.Context, controls *panel.Panel, mv *mapview.MapView) layout.Dimensions {
	return layout.Flex{Axis: layout.Vertical}.Layout(gtx,
		layout.Rigid(controls.LayoutControls),
		layout.Flexed(1, mv.Layout),
		layout.Rigid(func(gtx layout.Context) layout.Dimensions {
			return controls.LayoutFooter(gtx, mv.Source().Attribution)
		}),
	)
}
