// Package texture produces RGBA images for the quad and uploads them as
// GL textures.
package texture

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	_ "image/jpeg"
	_ "image/png"
	"os"
	"path/filepath"
	"strings"

	_ "golang.org/x/image/bmp"
)

// ErrEmptyImage is returned for images with no pixels.
var ErrEmptyImage = errors.New("texture: image has no pixels")

// Checkerboard returns a size×size image of cells×cells alternating squares.
func Checkerboard(size, cells int, a, b color.RGBA) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, size, size))
	cell := size / cells
	if cell == 0 {
		cell = 1
	}
	for y := 0; y < size; y++ {
		for x := 0; x < size; x++ {
			c := a
			if (x/cell+y/cell)%2 == 1 {
				c = b
			}
			img.SetRGBA(x, y, c)
		}
	}
	return img
}

// DefaultImage is the checkerboard shown when no texture file is configured.
func DefaultImage() *image.RGBA {
	return Checkerboard(256, 8,
		color.RGBA{R: 230, G: 230, B: 230, A: 255},
		color.RGBA{R: 200, G: 80, B: 40, A: 255},
	)
}

// LoadImage decodes a texture file. TGA is recognized by extension since
// the format has no signature; everything else goes through image.Decode
// (PNG, JPEG, BMP).
func LoadImage(path string) (*image.RGBA, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading texture: %w", err)
	}

	var img *image.RGBA
	if strings.EqualFold(filepath.Ext(path), ".tga") {
		img, err = DecodeTGA(data)
	} else {
		var decoded image.Image
		decoded, _, err = image.Decode(bytes.NewReader(data))
		if err == nil {
			img = ToRGBA(decoded)
		}
	}
	if err != nil {
		return nil, fmt.Errorf("decoding %s: %w", path, err)
	}
	if img.Bounds().Empty() {
		return nil, fmt.Errorf("decoding %s: %w", path, ErrEmptyImage)
	}
	return img, nil
}

// ToRGBA converts img to an *image.RGBA anchored at the origin.
func ToRGBA(img image.Image) *image.RGBA {
	if rgba, ok := img.(*image.RGBA); ok && rgba.Rect.Min == (image.Point{}) {
		return rgba
	}
	b := img.Bounds()
	rgba := image.NewRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(rgba, rgba.Rect, img, b.Min, draw.Src)
	return rgba
}

// FlipVertical returns a copy of img with rows reversed. GL expects the
// first row of texel data to be the bottom of the image.
func FlipVertical(img *image.RGBA) *image.RGBA {
	h := img.Rect.Dy()
	out := image.NewRGBA(img.Rect)
	for y := 0; y < h; y++ {
		src := img.Pix[y*img.Stride : y*img.Stride+img.Rect.Dx()*4]
		dst := out.Pix[(h-1-y)*out.Stride:]
		copy(dst, src)
	}
	return out
}
