package compose

import (
	"bytes"
	"fmt"
	"image"
	"io"
	"strings"

	"github.com/disintegration/imaging"
	"github.com/gabriel-vasile/mimetype"

	// Register decoders beyond the ones imaging pulls in.
	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
)

// DecodeError reports source bytes that could not be turned into a drawable image.
type DecodeError struct {
	Format string // detected MIME type, may be empty
	Err    error
}

func (e *DecodeError) Error() string {
	if e.Format == "" {
		return "decode image: " + e.Err.Error()
	}
	return fmt.Sprintf("decode image (%s): %v", e.Format, e.Err)
}

func (e *DecodeError) Unwrap() error { return e.Err }

// Decode reads a raster or SVG image from r and returns it with its detected
// MIME type. JPEG EXIF orientation is applied.
func Decode(r io.Reader) (image.Image, string, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, "", &DecodeError{Err: err}
	}
	if len(data) == 0 {
		return nil, "", &DecodeError{Err: fmt.Errorf("empty input")}
	}

	mime := mimetype.Detect(data).String()

	var img image.Image
	if strings.HasPrefix(mime, "image/svg+xml") {
		img, err = rasterizeSVG(bytes.NewReader(data), 2*TargetSize)
	} else {
		img, err = imaging.Decode(bytes.NewReader(data), imaging.AutoOrientation(true))
	}
	if err != nil {
		return nil, mime, &DecodeError{Format: mime, Err: err}
	}

	if b := img.Bounds(); b.Dx() <= 0 || b.Dy() <= 0 {
		return nil, mime, &DecodeError{Format: mime, Err: fmt.Errorf("image has no pixels (%dx%d)", b.Dx(), b.Dy())}
	}
	return img, mime, nil
}
