// Package mapview implements the Gio map widget. It turns pointer input into
// viewport events and draws the tiles of the active basemap.
package mapview

import (
	"errors"
	"image"
	"image/color"
	"log/slog"
	"math"
	"time"

	"gioui.org/f32"
	"gioui.org/io/event"
	"gioui.org/io/pointer"
	"gioui.org/layout"
	"gioui.org/op"
	"gioui.org/op/clip"
	"gioui.org/op/paint"

	"github.com/olablt/gio-basemaps/basemap"
	"github.com/olablt/gio-basemaps/cursor"
	"github.com/olablt/gio-basemaps/tiles"
	"github.com/olablt/gio-basemaps/viewport"
)

var background = color.NRGBA{R: 0xe8, G: 0xe8, B: 0xe8, A: 0xff}

type Config struct {
	Registry *basemap.Registry
	Tiles    *tiles.TileManager
	Center   tiles.GeoPosition
	Zoom     int
	Hands    cursor.Hands
	Logger   *slog.Logger
}

type MapView struct {
	registry   *basemap.Registry
	source     basemap.Source
	controller *viewport.Controller
	tiles      *tiles.TileManager
	imageOps   *tiles.ImageOpCache
	logger     *slog.Logger

	hands     cursor.Hands
	openOp    paint.ImageOp
	grabbedOp paint.ImageOp

	size        image.Point
	pointer     f32.Point
	hovering    bool
	primaryDown bool
}

// New builds a view of the registry's active source centered on cfg.Center.
func New(cfg Config) (*MapView, error) {
	if cfg.Registry == nil || cfg.Tiles == nil {
		return nil, errors.New("mapview: registry and tile manager are required")
	}
	src, ok := cfg.Registry.Active()
	if !ok {
		return nil, errors.New("mapview: no active basemap")
	}
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	zoom := src.ClampZoom(cfg.Zoom)
	x, y := tiles.GeoToWorld(cfg.Center, src.ProviderZoom(zoom), src.TileSize)

	mv := &MapView{
		registry:   cfg.Registry,
		source:     src,
		controller: viewport.New(viewport.State{CenterX: x, CenterY: y, ZoomLevel: zoom}, src.MinZoom, src.MaxZoom),
		tiles:      cfg.Tiles,
		imageOps:   tiles.NewImageOpCache(10 * time.Minute),
		logger:     logger,
		hands:      cfg.Hands,
	}
	if cfg.Hands.Open != nil {
		mv.openOp = paint.NewImageOp(cfg.Hands.Open)
	}
	if cfg.Hands.Grabbed != nil {
		mv.grabbedOp = paint.NewImageOp(cfg.Hands.Grabbed)
	}
	return mv, nil
}

// SetBasemap switches to the named source. Between sources with the same
// zoom range and tile size the state is kept as is; otherwise the zoom level
// is clamped to the new range and the center rescaled so it stays on the same
// place. On error nothing changes.
func (mv *MapView) SetBasemap(name string) error {
	src, err := mv.registry.Activate(name)
	if err != nil {
		return err
	}
	st := rebase(mv.controller.State(), mv.source, src)
	mv.source = src
	mv.controller.SetZoomRange(src.MinZoom, src.MaxZoom)
	mv.controller.SetState(st)
	mv.logger.Info("basemap switched", "basemap", name, "state", st)
	return nil
}

// rebase converts st, expressed in world pixels of from, into world pixels
// of to.
func rebase(st viewport.State, from, to basemap.Source) viewport.State {
	level := to.ClampZoom(st.ZoomLevel)
	dz := to.ProviderZoom(level) - from.ProviderZoom(st.ZoomLevel)
	if level == st.ZoomLevel && dz == 0 && from.TileSize == to.TileSize {
		return st
	}
	scale := math.Exp2(float64(dz)) * float64(to.TileSize) / float64(from.TileSize)
	return viewport.State{CenterX: st.CenterX * scale, CenterY: st.CenterY * scale, ZoomLevel: level}
}

func (mv *MapView) Source() basemap.Source {
	return mv.source
}

func (mv *MapView) State() viewport.State {
	return mv.controller.State()
}

// Center returns the geographical position at the middle of the view.
func (mv *MapView) Center() tiles.GeoPosition {
	st := mv.controller.State()
	return tiles.WorldToGeo(st.CenterX, st.CenterY, mv.source.ProviderZoom(st.ZoomLevel), mv.source.TileSize)
}

// Handle applies a viewport event directly.
func (mv *MapView) Handle(ev viewport.Event) bool {
	return mv.controller.Handle(ev)
}

func (mv *MapView) Layout(gtx layout.Context) layout.Dimensions {
	tag := mv
	mv.size = gtx.Constraints.Max

	for {
		ev, ok := gtx.Event(pointer.Filter{
			Target:  tag,
			Kinds:   pointer.Press | pointer.Release | pointer.Drag | pointer.Move | pointer.Scroll | pointer.Cancel | pointer.Enter | pointer.Leave,
			ScrollY: pointer.ScrollRange{Min: -10, Max: 10},
		})
		if !ok {
			break
		}
		e, ok := ev.(pointer.Event)
		if !ok {
			continue
		}
		if vev, ok := mv.translate(e); ok {
			mv.controller.Handle(vev)
		}
	}

	// Confine the area of interest to a gtx Max
	defer clip.Rect{Max: mv.size}.Push(gtx.Ops).Pop()
	event.Op(gtx.Ops, tag)
	paint.Fill(gtx.Ops, background)

	mv.drawTiles(gtx)
	mv.drawCursor(gtx)

	return layout.Dimensions{Size: mv.size}
}

// translate maps a Gio pointer event to a viewport event and tracks the
// pointer for the cursor overlay.
func (mv *MapView) translate(e pointer.Event) (viewport.Event, bool) {
	pos := viewport.Point{X: float64(e.Position.X), Y: float64(e.Position.Y)}
	switch e.Kind {
	case pointer.Enter:
		mv.hovering = true
		mv.pointer = e.Position
	case pointer.Leave:
		mv.hovering = false
	case pointer.Press:
		mv.pointer = e.Position
		switch {
		case e.Buttons.Contain(pointer.ButtonPrimary) && !mv.primaryDown:
			mv.primaryDown = true
			return viewport.PressEvent{Position: pos, Button: viewport.ButtonPrimary}, true
		case e.Buttons.Contain(pointer.ButtonSecondary):
			return viewport.PressEvent{Position: pos, Button: viewport.ButtonSecondary}, true
		case e.Buttons.Contain(pointer.ButtonTertiary):
			return viewport.PressEvent{Position: pos, Button: viewport.ButtonTertiary}, true
		}
	case pointer.Move, pointer.Drag:
		mv.hovering = true
		mv.pointer = e.Position
		return viewport.MoveEvent{Position: pos}, true
	case pointer.Release:
		// Buttons holds the buttons still down after the release.
		if mv.primaryDown && !e.Buttons.Contain(pointer.ButtonPrimary) {
			mv.primaryDown = false
			return viewport.ReleaseEvent{Button: viewport.ButtonPrimary}, true
		}
	case pointer.Cancel:
		mv.primaryDown = false
		return viewport.CancelEvent{}, true
	case pointer.Scroll:
		if e.Scroll.Y == 0 {
			return nil, false
		}
		return viewport.ScrollEvent{Delta: float64(e.Scroll.Y)}, true
	}
	return nil, false
}

func (mv *MapView) drawTiles(gtx layout.Context) {
	st := mv.controller.State()
	ts := mv.source.TileSize
	zoom := mv.source.ProviderZoom(st.ZoomLevel)

	for _, p := range tiles.VisibleTiles(st.CenterX, st.CenterY, zoom, ts, mv.size) {
		addr := basemap.TileAddress{X: p.Tile.X, Y: p.Tile.Y, ZoomLevel: st.ZoomLevel}
		res := mv.tiles.Tile(tiles.Request{
			URL:  mv.registry.ResolveURL(mv.source, addr),
			Tile: p.Tile,
			Size: ts,
		})
		if res.Image == nil {
			continue
		}

		imageOp, ok := mv.imageOps.Get(res.Key)
		if !ok {
			imageOp = paint.NewImageOp(res.Image)
			mv.imageOps.Set(res.Key, imageOp)
		}
		paintImage(gtx.Ops, imageOp, p.Offset, image.Pt(ts, ts))
	}
}

func (mv *MapView) drawCursor(gtx layout.Context) {
	grabbing := mv.controller.Panning()
	img := mv.hands.Image(grabbing)
	if img == nil || !mv.hovering {
		pointer.CursorDefault.Add(gtx.Ops)
		return
	}
	pointer.CursorNone.Add(gtx.Ops)

	imageOp := mv.openOp
	if grabbing {
		imageOp = mv.grabbedOp
	}
	// The hotspot is the top-left corner of the image.
	offset := image.Pt(int(mv.pointer.X), int(mv.pointer.Y))
	paintImage(gtx.Ops, imageOp, offset, img.Bounds().Size())
}

func paintImage(ops *op.Ops, imageOp paint.ImageOp, offset, size image.Point) {
	defer op.Offset(offset).Push(ops).Pop()
	defer clip.Rect{Max: size}.Push(ops).Pop()
	imageOp.Add(ops)
	paint.PaintOp{}.Add(ops)
}
