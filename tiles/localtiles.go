package tiles

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
)

var (
	loadingBg = color.RGBA{200, 220, 255, 255}
	failedBg  = color.RGBA{235, 210, 210, 255}
	borderCol = color.RGBA{100, 100, 100, 255}
)

// Placeholder draws a labelled stand-in for a tile that is not available yet.
func Placeholder(tile Tile, status Status, size int) image.Image {
	if size <= 0 {
		size = TileSize
	}
	img := image.NewRGBA(image.Rect(0, 0, size, size))

	bg := loadingBg
	if status == StatusFailed {
		bg = failedBg
	}
	draw.Draw(img, img.Bounds(), &image.Uniform{bg}, image.Point{}, draw.Src)

	drawText(img, fmt.Sprintf("%d/%d/%d", tile.Zoom, tile.X, tile.Y), size/2-8)
	drawText(img, status.String(), size/2+12)

	borders := []image.Rectangle{
		image.Rect(0, 0, size, 1),         // Top
		image.Rect(0, size-1, size, size), // Bottom
		image.Rect(0, 0, 1, size),         // Left
		image.Rect(size-1, 0, size, size), // Right
	}
	for _, rect := range borders {
		draw.Draw(img, rect, &image.Uniform{borderCol}, image.Point{}, draw.Src)
	}
	return img
}

// drawText draws text horizontally centered on a translucent box around baseline y.
func drawText(img *image.RGBA, text string, y int) {
	face := basicfont.Face7x13
	d := &font.Drawer{
		Dst:  img,
		Src:  image.NewUniform(color.Black),
		Face: face,
	}

	width := img.Bounds().Dx()
	textWidth := d.MeasureString(text).Round()
	textHeight := face.Metrics().Height.Round()

	padding := 4
	bgRect := image.Rect(
		(width-textWidth)/2-padding,
		y-textHeight-padding/2,
		(width+textWidth)/2+padding,
		y+padding,
	)
	draw.Draw(img, bgRect, &image.Uniform{color.RGBA{255, 255, 255, 220}}, image.Point{}, draw.Over)

	d.Dot = fixed.Point26_6{
		X: fixed.I((width - textWidth) / 2),
		Y: fixed.I(y - face.Descent),
	}
	d.DrawString(text)
}
