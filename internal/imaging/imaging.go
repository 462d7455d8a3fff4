package imaging

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/jpeg"
	_ "image/png"
	"io"
	"net/http"

	"golang.org/x/image/draw"
)

// Quality is the JPEG quality of stored cover photos.
const Quality = 82

// ErrUnsupportedFormat is returned for anything other than JPEG or PNG input.
var ErrUnsupportedFormat = errors.New("unsupported image format")

var accepted = map[string]bool{
	"image/jpeg": true,
	"image/png":  true,
}

// Process decodes a JPEG or PNG cover photo, shrinks it so that neither side
// exceeds maxDim and returns it re-encoded as JPEG. A maxDim of zero or less
// keeps the original size.
func Process(r io.Reader, maxDim int) ([]byte, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("failed to read photo: %w", err)
	}

	mime := http.DetectContentType(data)
	if !accepted[mime] {
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedFormat, mime)
	}

	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("failed to decode photo: %w", err)
	}

	if maxDim > 0 {
		img = fit(img, maxDim)
	}

	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, img, &jpeg.Options{Quality: Quality}); err != nil {
		return nil, fmt.Errorf("failed to encode photo: %w", err)
	}
	return buf.Bytes(), nil
}

// fit scales img down to maxDim on its longest side, keeping the aspect ratio.
func fit(img image.Image, maxDim int) image.Image {
	b := img.Bounds()
	w, h := b.Dx(), b.Dy()
	if w <= maxDim && h <= maxDim {
		return img
	}

	nw, nh := maxDim, maxDim
	if w > h {
		nh = max(1, h*maxDim/w)
	} else {
		nw = max(1, w*maxDim/h)
	}

	dst := image.NewRGBA(image.Rect(0, 0, nw, nh))
	draw.CatmullRom.Scale(dst, dst.Bounds(), img, b, draw.Over, nil)
	return dst
}
