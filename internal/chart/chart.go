// Package chart rasterises the stress distribution bar chart and the
// monogram used when a school has no logo.
package chart

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"strings"

	"github.com/fadilmartias/stress-manometer/internal/model"
	"golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
)

const (
	chartWidth  = 1000
	chartHeight = 500
)

var (
	categoryColors = [5]color.RGBA{
		hex(0x22c55e),
		hex(0x3b82f6),
		hex(0xeab308),
		hex(0xf97316),
		hex(0xef4444),
	}

	white      = hex(0xffffff)
	plotBg     = hex(0xf8fafc)
	axisColor  = hex(0xcbd5e1)
	valueColor = hex(0x475569)
	labelColor = hex(0x334155)
	titleColor = hex(0x0f172a)
	navy       = hex(0x0f172a)
)

func hex(v uint32) color.RGBA {
	return color.RGBA{R: uint8(v >> 16), G: uint8(v >> 8), B: uint8(v), A: 0xff}
}

// BarChart draws one bar per category, coloured per category, with the
// percentage above each bar.
func BarChart(percentages [5]float64) ([]byte, error) {
	img := image.NewRGBA(image.Rect(0, 0, chartWidth, chartHeight))
	fill(img, img.Bounds(), white)

	plot := image.Rect(40, 70, chartWidth-40, chartHeight-60)
	fill(img, plot, plotBg)
	fill(img, image.Rect(plot.Min.X, plot.Max.Y, plot.Max.X, plot.Max.Y+2), axisColor)

	drawText(img, "Student Stress Distribution", chartWidth/2, 20, 3, titleColor)

	top := 10.0
	for _, p := range percentages {
		if p > top {
			top = p
		}
	}
	// Leave headroom for the value labels.
	top *= 1.18

	slot := plot.Dx() / len(percentages)
	barWidth := slot * 6 / 10
	for i, p := range percentages {
		if p < 0 {
			p = 0
		}
		h := int(float64(plot.Dy()) * p / top)
		cx := plot.Min.X + slot*i + slot/2
		bar := image.Rect(cx-barWidth/2, plot.Max.Y-h, cx+barWidth/2, plot.Max.Y)
		fill(img, bar, categoryColors[i])
		// White edge between neighbouring bars.
		fill(img, image.Rect(bar.Min.X, bar.Min.Y, bar.Min.X+2, bar.Max.Y), white)
		fill(img, image.Rect(bar.Max.X-2, bar.Min.Y, bar.Max.X, bar.Max.Y), white)

		drawText(img, fmt.Sprintf("%.1f%%", p), cx, bar.Min.Y-34, 2, valueColor)
		drawText(img, string(model.Categories[i]), cx, plot.Max.Y+14, 2, labelColor)
	}

	return encode(img)
}

// Monogram draws the first two letters of name, upper-cased, in white on a
// dark disc over a transparent background.
func Monogram(name string) ([]byte, error) {
	const size = 200
	img := image.NewRGBA(image.Rect(0, 0, size, size))

	r := size / 2
	for y := 0; y < size; y++ {
		for x := 0; x < size; x++ {
			dx, dy := x-r, y-r
			if dx*dx+dy*dy <= r*r {
				img.SetRGBA(x, y, navy)
			}
		}
	}

	text := initials(name)
	if text != "" {
		const scale = 6
		glyphHeight := basicfont.Face7x13.Metrics().Height.Ceil() * scale
		drawText(img, text, size/2, (size-glyphHeight)/2, scale, white)
	}

	return encode(img)
}

// initials returns the first two letters of name, upper-cased.
func initials(name string) string {
	r := []rune(name)
	if len(r) > 2 {
		r = r[:2]
	}
	return strings.ToUpper(string(r))
}

func fill(img *image.RGBA, r image.Rectangle, c color.RGBA) {
	draw.Draw(img, r, &image.Uniform{C: c}, image.Point{}, draw.Src)
}

// drawText renders s with the 7x13 bitmap face, scaled up by an integer
// factor, horizontally centred on cx with its top edge at y.
func drawText(dst *image.RGBA, s string, cx, y, scale int, c color.RGBA) {
	face := basicfont.Face7x13
	metrics := face.Metrics()
	d := &font.Drawer{Face: face, Src: &image.Uniform{C: c}}
	w := d.MeasureString(s).Ceil()
	h := metrics.Height.Ceil()
	if w == 0 {
		return
	}

	glyphs := image.NewRGBA(image.Rect(0, 0, w, h))
	d.Dst = glyphs
	d.Dot = fixed.P(0, metrics.Ascent.Ceil())
	d.DrawString(s)

	x := cx - w*scale/2
	target := image.Rect(x, y, x+w*scale, y+h*scale)
	draw.NearestNeighbor.Scale(dst, target, glyphs, glyphs.Bounds(), draw.Over, nil)
}

func encode(img image.Image) ([]byte, error) {
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, fmt.Errorf("failed to encode PNG: %w", err)
	}
	return buf.Bytes(), nil
}
