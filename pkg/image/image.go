// Package image is the renderer's output buffer: a linear-RGB float
// store written concurrently by the scheduler's worker pool, plus a
// quantized byte companion kept in sync for live display.
package image

import (
	stdimage "image"
	stdcolor "image/color"
	"image/png"
	"os"
	"sync"

	"github.com/mx4/raymax/pkg/color"
)

// Image accumulates linear-light pixel values. PushPixel is safe for
// concurrent use by multiple scheduler workers; each call touches only
// its own pixel, but the backing slices are shared so writes are
// still serialized through a mutex.
type Image struct {
	Width, Height int

	mu     sync.Mutex
	linear []color.RGB
	bytes  []stdcolor.RGBA
}

// New allocates a black image of the given dimensions.
func New(width, height int) *Image {
	return &Image{
		Width:  width,
		Height: height,
		linear: make([]color.RGB, width*height),
		bytes:  make([]stdcolor.RGBA, width*height),
	}
}

// PushPixel writes c at (x, y) to both the linear float store and the
// quantized byte companion, the latter clamped directly with no gamma
// so a live preview stays cheap to produce.
func (img *Image) PushPixel(x, y int, c color.RGB) {
	if x < 0 || x >= img.Width || y < 0 || y >= img.Height {
		return
	}
	idx := y*img.Width + x

	img.mu.Lock()
	img.linear[idx] = c
	img.bytes[idx] = quantize(c, false, 1)
	img.mu.Unlock()
}

// At returns the linear-light value currently stored at (x, y).
func (img *Image) At(x, y int) color.RGB {
	img.mu.Lock()
	defer img.mu.Unlock()
	if x < 0 || x >= img.Width || y < 0 || y >= img.Height {
		return color.Black
	}
	return img.linear[y*img.Width+x]
}

// Preview returns a snapshot of the quantized byte companion as a
// standard Go image, suitable for incremental display while a render
// is in progress.
func (img *Image) Preview() *stdimage.RGBA {
	img.mu.Lock()
	defer img.mu.Unlock()
	out := stdimage.NewRGBA(stdimage.Rect(0, 0, img.Width, img.Height))
	for y := 0; y < img.Height; y++ {
		for x := 0; x < img.Width; x++ {
			out.SetRGBA(x, y, img.bytes[y*img.Width+x])
		}
	}
	return out
}

// ToRGBA renders the final image to a standard Go image.RGBA. When
// useGamma is set, each linear component is gamma-encoded with the
// given exponent before quantization; otherwise values are clamped
// and quantized directly.
func (img *Image) ToRGBA(useGamma bool, gamma float64) *stdimage.RGBA {
	img.mu.Lock()
	defer img.mu.Unlock()

	out := stdimage.NewRGBA(stdimage.Rect(0, 0, img.Width, img.Height))
	for y := 0; y < img.Height; y++ {
		for x := 0; x < img.Width; x++ {
			idx := y*img.Width + x
			out.SetRGBA(x, y, quantize(img.linear[idx], useGamma, gamma))
		}
	}
	return out
}

// SavePNG writes the image to path as an 8-bit PNG.
func (img *Image) SavePNG(path string, useGamma bool, gamma float64) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return png.Encode(f, img.ToRGBA(useGamma, gamma))
}

func quantize(c color.RGB, useGamma bool, gamma float64) stdcolor.RGBA {
	if useGamma {
		c = c.Gamma(gamma)
	} else {
		c = c.Clamp01()
	}
	return stdcolor.RGBA{
		R: uint8(c.R*255 + 0.5),
		G: uint8(c.G*255 + 0.5),
		B: uint8(c.B*255 + 0.5),
		A: 255,
	}
}
