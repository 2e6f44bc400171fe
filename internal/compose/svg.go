package compose

import (
	"fmt"
	"image"
	"io"
	"math"

	"github.com/srwiley/oksvg"
	"github.com/srwiley/rasterx"
)

// rasterizeSVG renders an SVG document so that its longer side is longest
// pixels, keeping the viewBox aspect ratio.
func rasterizeSVG(r io.Reader, longest int) (image.Image, error) {
	icon, err := oksvg.ReadIconStream(r, oksvg.IgnoreErrorMode)
	if err != nil {
		return nil, fmt.Errorf("parse svg: %w", err)
	}

	vw, vh := icon.ViewBox.W, icon.ViewBox.H
	if vw <= 0 || vh <= 0 {
		return nil, fmt.Errorf("svg has no usable viewBox (%gx%g)", vw, vh)
	}

	scale := float64(longest) / math.Max(vw, vh)
	w := int(math.Max(1, math.Round(vw*scale)))
	h := int(math.Max(1, math.Round(vh*scale)))

	icon.SetTarget(0, 0, float64(w), float64(h))
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	scanner := rasterx.NewScannerGV(w, h, img, img.Bounds())
	icon.Draw(rasterx.NewDasher(w, h, scanner), 1)
	return img, nil
}
