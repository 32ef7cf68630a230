// Package hud draws the text overlay on top of the globe view.
package hud

import (
	"image"
	"image/color"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
)

// Padding around the text block in pixels.
const Padding = 6

// face is the only font the overlay uses.
var face = basicfont.Face7x13

// Measure returns the pixel size of a text block.
func Measure(lines []string) (width, height int) {
	d := font.Drawer{Face: face}
	for _, l := range lines {
		width = max(width, d.MeasureString(l).Ceil())
	}
	height = len(lines) * lineHeight()
	return width + 2*Padding, height + 2*Padding
}

func lineHeight() int {
	m := face.Metrics()
	return (m.Ascent + m.Descent).Ceil() + 2
}

// Rasterize draws lines over a translucent backdrop. The image is
// top-down, row 0 is the top of the block.
func Rasterize(lines []string, fg, bg color.RGBA) *image.RGBA {
	w, h := Measure(lines)
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for i := range img.Pix {
		switch i % 4 {
		case 0:
			img.Pix[i] = bg.R
		case 1:
			img.Pix[i] = bg.G
		case 2:
			img.Pix[i] = bg.B
		case 3:
			img.Pix[i] = bg.A
		}
	}

	d := font.Drawer{Dst: img, Src: image.NewUniform(fg), Face: face}
	ascent := face.Metrics().Ascent.Ceil()
	for i, l := range lines {
		d.Dot = fixed.P(Padding, Padding+ascent+i*lineHeight())
		d.DrawString(l)
	}
	return img
}
