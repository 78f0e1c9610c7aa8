// Package panel draws the basemap selector above the map and the footer below it.
package panel

import (
	"gioui.org/font"
	"gioui.org/layout"
	"gioui.org/text"
	"gioui.org/unit"
	"gioui.org/widget"
	"gioui.org/widget/material"
)

const (
	selectLabel = "Select a base map:"
	footerText  = "Developed by Dr. Hayati TAŞTAN & No rights reserved :)"
)

type Panel struct {
	theme    *material.Theme
	names    []string
	selector widget.Enum
}

// New returns a panel offering names with selected preselected.
func New(th *material.Theme, names []string, selected string) *Panel {
	p := &Panel{
		theme: th,
		names: names,
	}
	p.selector.Value = selected
	return p
}

// Selected returns the basemap chosen in the selector.
func (p *Panel) Selected() string {
	return p.selector.Value
}

// Select changes the selector without reporting a change.
func (p *Panel) Select(name string) {
	p.selector.Value = name
}

// Changed reports the newly selected basemap, if the user picked one since
// the last call.
func (p *Panel) Changed(gtx layout.Context) (string, bool) {
	if p.selector.Update(gtx) {
		return p.selector.Value, true
	}
	return "", false
}

// LayoutControls draws the right-aligned selector row.
func (p *Panel) LayoutControls(gtx layout.Context) layout.Dimensions {
	children := make([]layout.FlexChild, 0, len(p.names)+1)
	children = append(children, layout.Rigid(func(gtx layout.Context) layout.Dimensions {
		return layout.Inset{Right: unit.Dp(8)}.Layout(gtx, material.Body1(p.theme, selectLabel).Layout)
	}))
	for _, name := range p.names {
		children = append(children, layout.Rigid(material.RadioButton(p.theme, &p.selector, name, name).Layout))
	}
	return layout.UniformInset(unit.Dp(4)).Layout(gtx, func(gtx layout.Context) layout.Dimensions {
		return layout.Flex{
			Axis:      layout.Horizontal,
			Spacing:   layout.SpaceStart,
			Alignment: layout.Middle,
		}.Layout(gtx, children...)
	})
}

// LayoutFooter draws the centered footer, followed by the attribution of the
// active basemap when it has one.
func (p *Panel) LayoutFooter(gtx layout.Context, attribution string) layout.Dimensions {
	line := footerText
	if attribution != "" {
		line += "  ·  " + attribution
	}
	label := material.Label(p.theme, unit.Sp(12), line)
	label.Font.Typeface = "Serif"
	label.Font.Style = font.Regular
	label.Alignment = text.Middle
	gtx.Constraints.Min.X = gtx.Constraints.Max.X
	return layout.UniformInset(unit.Dp(2)).Layout(gtx, label.Layout)
}
