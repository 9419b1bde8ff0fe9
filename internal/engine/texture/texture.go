// Package texture decodes face images into RGBA pixel buffers ready for
// upload.
package texture

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/draw"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"os"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

// ErrUnsupportedFormat is returned for data no registered decoder accepts.
var ErrUnsupportedFormat = errors.New("texture: unsupported image format")

// MaxSize is the largest edge, in pixels, accepted for a face image.
const MaxSize = 4096

// Image is a decoded face image.
type Image struct {
	Format string
	RGBA   *image.RGBA
}

// Width returns the pixel width.
func (i *Image) Width() int { return i.RGBA.Bounds().Dx() }

// Height returns the pixel height.
func (i *Image) Height() int { return i.RGBA.Bounds().Dy() }

// Load reads and decodes an image file.
func Load(path string) (*Image, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	img, err := Decode(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return img, nil
}

// Decode decodes PNG, JPEG, GIF, BMP, TIFF or WebP data.
func Decode(data []byte) (*Image, error) {
	cfg, format, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		if errors.Is(err, image.ErrFormat) {
			return nil, ErrUnsupportedFormat
		}
		return nil, err
	}
	if cfg.Width > MaxSize || cfg.Height > MaxSize {
		return nil, fmt.Errorf("texture: %dx%d exceeds %dpx limit", cfg.Width, cfg.Height, MaxSize)
	}

	src, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("texture: decoding %s: %w", format, err)
	}
	return &Image{Format: format, RGBA: toRGBA(src)}, nil
}

// toRGBA converts any image to RGBA with its origin at (0, 0).
func toRGBA(src image.Image) *image.RGBA {
	b := src.Bounds()
	if rgba, ok := src.(*image.RGBA); ok && b.Min == (image.Point{}) {
		return rgba
	}
	dst := image.NewRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(dst, dst.Bounds(), src, b.Min, draw.Src)
	return dst
}

// FlipVertical returns a copy with rows reversed. OpenGL expects the first
// row of texture data at the bottom.
func FlipVertical(src *image.RGBA) *image.RGBA {
	b := src.Bounds()
	dst := image.NewRGBA(b)
	rowLen := b.Dx() * 4
	for y := 0; y < b.Dy(); y++ {
		s := src.PixOffset(b.Min.X, b.Min.Y+y)
		d := dst.PixOffset(b.Min.X, b.Max.Y-1-y)
		copy(dst.Pix[d:d+rowLen], src.Pix[s:s+rowLen])
	}
	return dst
}
