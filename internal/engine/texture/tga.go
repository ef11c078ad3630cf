package texture

import (
	"errors"
	"fmt"
	"image"
	"image/color"
)

// TGA image types the decoder understands.
const (
	TGATypeUncompressed = 2  // uncompressed true-color
	TGATypeRLE          = 10 // run-length encoded true-color
)

const tgaHeaderSize = 18

var (
	errTGATruncated = errors.New("tga: pixel data truncated")
	errTGAEmpty     = errors.New("tga: zero width or height")
)

// tgaRLEMaxRun is the most pixels one RLE packet can cover.
const tgaRLEMaxRun = 128

// tgaReader walks the pixel section of a TGA file, placing pixels into dst
// in file order and flipping rows when the file is stored bottom-up.
type tgaReader struct {
	dst       *image.RGBA
	src       []byte
	pos       int
	bpp       int
	topDown   bool
	written   int
	numPixels int
}

// DecodeTGA decodes a 24 or 32 bit true-color TGA, raw or RLE.
func DecodeTGA(data []byte) (*image.RGBA, error) {
	if len(data) < tgaHeaderSize {
		return nil, fmt.Errorf("tga: header needs %d bytes, got %d", tgaHeaderSize, len(data))
	}

	idLength := int(data[0])
	colorMapType := data[1]
	imageType := data[2]
	width := int(data[12]) | int(data[13])<<8
	height := int(data[14]) | int(data[15])<<8
	bits := int(data[16])
	descriptor := data[17]

	if colorMapType != 0 {
		return nil, errors.New("tga: color-mapped images not supported")
	}
	if imageType != TGATypeUncompressed && imageType != TGATypeRLE {
		return nil, fmt.Errorf("tga: unsupported image type %d", imageType)
	}
	if bits != 24 && bits != 32 {
		return nil, fmt.Errorf("tga: unsupported bit depth %d", bits)
	}

	if width == 0 || height == 0 {
		return nil, errTGAEmpty
	}

	start := tgaHeaderSize + idLength
	if start > len(data) {
		return nil, errTGATruncated
	}

	// Check the payload can cover the image before allocating it.
	bpp := bits / 8
	numPixels := width * height
	minPayload := numPixels * bpp
	if imageType == TGATypeRLE {
		minPayload = (numPixels + tgaRLEMaxRun - 1) / tgaRLEMaxRun * (1 + bpp)
	}
	if len(data)-start < minPayload {
		return nil, errTGATruncated
	}

	r := &tgaReader{
		dst:       image.NewRGBA(image.Rect(0, 0, width, height)),
		src:       data[start:],
		bpp:       bpp,
		topDown:   descriptor&0x20 != 0,
		numPixels: numPixels,
	}

	var err error
	if imageType == TGATypeUncompressed {
		err = r.readRaw(r.numPixels)
	} else {
		err = r.readRLE()
	}
	if err != nil {
		return nil, err
	}
	return r.dst, nil
}

// next reads one BGR(A) pixel from the source.
func (r *tgaReader) next() (color.RGBA, error) {
	if r.pos+r.bpp > len(r.src) {
		return color.RGBA{}, errTGATruncated
	}
	p := r.src[r.pos : r.pos+r.bpp]
	r.pos += r.bpp

	c := color.RGBA{R: p[2], G: p[1], B: p[0], A: 255}
	if r.bpp == 4 {
		c.A = p[3]
	}
	return c, nil
}

// put stores c at the next pixel position.
func (r *tgaReader) put(c color.RGBA) {
	w := r.dst.Rect.Dx()
	x, y := r.written%w, r.written/w
	if !r.topDown {
		y = r.dst.Rect.Dy() - 1 - y
	}
	r.dst.SetRGBA(x, y, c)
	r.written++
}

func (r *tgaReader) readRaw(n int) error {
	for i := 0; i < n && r.written < r.numPixels; i++ {
		c, err := r.next()
		if err != nil {
			return err
		}
		r.put(c)
	}
	return nil
}

func (r *tgaReader) readRLE() error {
	for r.written < r.numPixels {
		if r.pos >= len(r.src) {
			return errTGATruncated
		}
		header := r.src[r.pos]
		r.pos++
		count := int(header&0x7F) + 1

		if header&0x80 == 0 {
			if err := r.readRaw(count); err != nil {
				return err
			}
			continue
		}

		c, err := r.next()
		if err != nil {
			return err
		}
		for i := 0; i < count && r.written < r.numPixels; i++ {
			r.put(c)
		}
	}
	return nil
}
