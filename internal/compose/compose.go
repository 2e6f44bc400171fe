// Package compose renders the bordered circular profile picture.
package compose

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"io"

	"github.com/srwiley/rasterx"
	"golang.org/x/image/draw"
	"golang.org/x/image/math/f64"
)

const (
	// BorderWidth is the inset between the canvas edge and the circular image area.
	BorderWidth = 20
	// TargetSize is the diameter of the circular image area.
	TargetSize = 400
	// CanvasSize is the width and height of every composed image.
	CanvasSize = TargetSize + 2*BorderWidth
)

// BorderColor fills everything outside the circle (#D1E77B).
var BorderColor = color.RGBA{0xD1, 0xE7, 0x7B, 0xFF}

// Rect is a rectangle in canvas coordinates with fractional edges.
type Rect struct {
	X, Y, W, H float64
}

// Fit returns where a width x height source lands on the canvas: scaled to
// fit inside the TargetSize square and centered on its short axis.
func Fit(width, height int) Rect {
	aspect := float64(width) / float64(height)
	r := Rect{X: BorderWidth, Y: BorderWidth, W: TargetSize, H: TargetSize}
	if aspect > 1 {
		r.H = TargetSize / aspect
		r.Y = BorderWidth + (TargetSize-r.H)/2
	} else {
		r.W = TargetSize * aspect
		r.X = BorderWidth + (TargetSize-r.W)/2
	}
	return r
}

// Compose decodes src, composes it and returns the PNG encoding.
// The only error it returns is a *DecodeError.
func Compose(src []byte) ([]byte, error) {
	img, format, err := Decode(bytes.NewReader(src))
	if err != nil {
		return nil, err
	}
	out := ComposeImage(img)

	var buf bytes.Buffer
	if err := Encode(&buf, out); err != nil {
		return nil, &DecodeError{Format: format, Err: fmt.Errorf("encode png: %w", err)}
	}
	return buf.Bytes(), nil
}

// ComposeImage draws img, aspect-fit and clipped to the inner circle, over a
// BorderColor canvas. img must have positive bounds.
func ComposeImage(img image.Image) *image.RGBA {
	canvas := image.NewRGBA(image.Rect(0, 0, CanvasSize, CanvasSize))
	draw.Draw(canvas, canvas.Bounds(), &image.Uniform{C: BorderColor}, image.Point{}, draw.Src)

	clip := circleMask(CanvasSize/2, CanvasSize/2, TargetSize/2)

	sr := img.Bounds()
	fit := Fit(sr.Dx(), sr.Dy())
	sx := fit.W / float64(sr.Dx())
	sy := fit.H / float64(sr.Dy())
	s2d := f64.Aff3{
		sx, 0, fit.X - float64(sr.Min.X)*sx,
		0, sy, fit.Y - float64(sr.Min.Y)*sy,
	}
	draw.CatmullRom.Transform(canvas, s2d, img, sr, draw.Over, &draw.Options{
		DstMask:  clip,
		DstMaskP: image.Point{},
	})
	return canvas
}

// circleMask rasterizes an antialiased filled circle into a canvas-sized alpha mask.
func circleMask(cx, cy, radius float64) *image.Alpha {
	mask := image.NewAlpha(image.Rect(0, 0, CanvasSize, CanvasSize))
	scanner := rasterx.NewScannerGV(CanvasSize, CanvasSize, mask, mask.Bounds())
	filler := rasterx.NewFiller(CanvasSize, CanvasSize, scanner)
	filler.SetColor(color.Opaque)
	rasterx.AddCircle(cx, cy, radius, filler)
	filler.Draw()
	return mask
}

// Encode writes img as a lossless PNG.
func Encode(w io.Writer, img image.Image) error {
	enc := png.Encoder{CompressionLevel: png.BestCompression}
	return enc.Encode(w, img)
}
