package imaging

import (
	"bytes"
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func solid(w, h int) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for x := 0; x < w; x++ {
		for y := 0; y < h; y++ {
			img.Set(x, y, color.RGBA{R: 40, G: 120, B: 200, A: 255})
		}
	}
	return img
}

func encodeJPEG(t *testing.T, w, h int) []byte {
	var buf bytes.Buffer
	require.NoError(t, jpeg.Encode(&buf, solid(w, h), nil))
	return buf.Bytes()
}

func encodePNG(t *testing.T, w, h int) []byte {
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, solid(w, h)))
	return buf.Bytes()
}

func decodedSize(t *testing.T, data []byte) (int, int) {
	cfg, format, err := image.DecodeConfig(bytes.NewReader(data))
	require.NoError(t, err)
	assert.Equal(t, "jpeg", format)
	return cfg.Width, cfg.Height
}

func TestProcess(t *testing.T) {
	tests := []struct {
		name   string
		input  func(t *testing.T) []byte
		maxDim int
		width  int
		height int
	}{
		{name: "Small JPEG untouched", input: func(t *testing.T) []byte { return encodeJPEG(t, 60, 40) }, maxDim: 100, width: 60, height: 40},
		{name: "PNG becomes JPEG", input: func(t *testing.T) []byte { return encodePNG(t, 80, 80) }, maxDim: 100, width: 80, height: 80},
		{name: "Wide image", input: func(t *testing.T) []byte { return encodeJPEG(t, 400, 200) }, maxDim: 100, width: 100, height: 50},
		{name: "Tall image", input: func(t *testing.T) []byte { return encodePNG(t, 150, 600) }, maxDim: 120, width: 30, height: 120},
		{name: "No limit", input: func(t *testing.T) []byte { return encodeJPEG(t, 300, 10) }, maxDim: 0, width: 300, height: 10},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := Process(bytes.NewReader(tt.input(t)), tt.maxDim)
			require.NoError(t, err)

			w, h := decodedSize(t, out)
			assert.Equal(t, tt.width, w)
			assert.Equal(t, tt.height, h)
		})
	}
}

func TestProcessRejectsOtherFormats(t *testing.T) {
	_, err := Process(bytes.NewReader([]byte("GIF89a....")), 100)
	assert.ErrorIs(t, err, ErrUnsupportedFormat)

	_, err = Process(bytes.NewReader([]byte("plain text")), 100)
	assert.ErrorIs(t, err, ErrUnsupportedFormat)
}

func TestProcessCorruptJPEG(t *testing.T) {
	data := encodeJPEG(t, 20, 20)
	_, err := Process(bytes.NewReader(data[:len(data)/3]), 100)
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrUnsupportedFormat)
}
