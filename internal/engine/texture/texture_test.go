package texture

import (
	"bytes"
	"errors"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"golang.org/x/image/bmp"
)

// tgaHeader builds an 18-byte TGA header.
func tgaHeader(imageType byte, w, h int, bits byte, descriptor byte) []byte {
	hdr := make([]byte, 18)
	hdr[2] = imageType
	hdr[12], hdr[13] = byte(w), byte(w>>8)
	hdr[14], hdr[15] = byte(h), byte(h>>8)
	hdr[16] = bits
	hdr[17] = descriptor
	return hdr
}

func TestDecodeTGAUncompressedBottomUp(t *testing.T) {
	// 2x2, 24 bit, bottom-up: first row in the file is the bottom row.
	data := tgaHeader(TGATypeUncompressed, 2, 2, 24, 0)
	data = append(data,
		0, 0, 255, 0, 255, 0, // bottom: red, green (BGR)
		255, 0, 0, 255, 255, 255, // top: blue, white
	)

	img, err := DecodeTGA(data)
	if err != nil {
		t.Fatalf("DecodeTGA: %v", err)
	}

	checks := []struct {
		x, y int
		want color.RGBA
	}{
		{0, 1, color.RGBA{255, 0, 0, 255}},
		{1, 1, color.RGBA{0, 255, 0, 255}},
		{0, 0, color.RGBA{0, 0, 255, 255}},
		{1, 0, color.RGBA{255, 255, 255, 255}},
	}
	for _, c := range checks {
		if got := img.RGBAAt(c.x, c.y); got != c.want {
			t.Errorf("pixel (%d, %d) = %v, want %v", c.x, c.y, got, c.want)
		}
	}
}

func TestDecodeTGARLE(t *testing.T) {
	// 3x1, 32 bit, top-down: one run of 2 red pixels, then one raw blue.
	data := tgaHeader(TGATypeRLE, 3, 1, 32, 0x20)
	data = append(data,
		0x81, 0, 0, 255, 128, // run of 2
		0x00, 255, 0, 0, 255, // raw packet of 1
	)

	img, err := DecodeTGA(data)
	if err != nil {
		t.Fatalf("DecodeTGA: %v", err)
	}
	want := []color.RGBA{{255, 0, 0, 128}, {255, 0, 0, 128}, {0, 0, 255, 255}}
	for x, w := range want {
		if got := img.RGBAAt(x, 0); got != w {
			t.Errorf("pixel %d = %v, want %v", x, got, w)
		}
	}
}

func TestDecodeTGAErrors(t *testing.T) {
	tests := []struct {
		name string
		data []byte
	}{
		{"short header", []byte{0, 0, 2}},
		{"color mapped", func() []byte { h := tgaHeader(1, 1, 1, 24, 0); h[1] = 1; return h }()},
		{"unsupported type", tgaHeader(3, 1, 1, 24, 0)},
		{"unsupported depth", tgaHeader(TGATypeUncompressed, 1, 1, 16, 0)},
		{"truncated raw", append(tgaHeader(TGATypeUncompressed, 2, 2, 24, 0), 1, 2, 3)},
		{"truncated rle", append(tgaHeader(TGATypeRLE, 2, 2, 24, 0), 0x83)},
		{"zero width", tgaHeader(TGATypeUncompressed, 0, 1, 24, 0)},
		{"zero height", tgaHeader(TGATypeRLE, 4, 0, 32, 0)},
		{"header claims huge image", append(tgaHeader(TGATypeUncompressed, 65535, 65535, 32, 0), 1, 2, 3, 4)},
		{"rle too short for size", append(tgaHeader(TGATypeRLE, 300, 1, 24, 0), 0xFF, 1, 2, 3)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := DecodeTGA(tt.data); err == nil {
				t.Error("expected error")
			}
		})
	}
}

func TestCheckerboard(t *testing.T) {
	a := color.RGBA{255, 255, 255, 255}
	b := color.RGBA{0, 0, 0, 255}
	img := Checkerboard(8, 2, a, b)

	if got := img.RGBAAt(0, 0); got != a {
		t.Errorf("top-left = %v, want %v", got, a)
	}
	if got := img.RGBAAt(4, 0); got != b {
		t.Errorf("top-right = %v, want %v", got, b)
	}
	if got := img.RGBAAt(4, 4); got != a {
		t.Errorf("bottom-right = %v, want %v", got, a)
	}
}

func TestFlipVertical(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 1, 3))
	img.SetRGBA(0, 0, color.RGBA{R: 1, A: 255})
	img.SetRGBA(0, 2, color.RGBA{R: 3, A: 255})

	out := FlipVertical(img)
	if out.RGBAAt(0, 0).R != 3 || out.RGBAAt(0, 2).R != 1 {
		t.Errorf("rows not reversed: top %v bottom %v", out.RGBAAt(0, 0), out.RGBAAt(0, 2))
	}
	if img.RGBAAt(0, 0).R != 1 {
		t.Error("input image was modified")
	}
}

func TestLoadImagePNG(t *testing.T) {
	src := image.NewRGBA(image.Rect(0, 0, 2, 2))
	src.SetRGBA(1, 0, color.RGBA{R: 10, G: 20, B: 30, A: 255})

	var buf bytes.Buffer
	if err := png.Encode(&buf, src); err != nil {
		t.Fatalf("png.Encode: %v", err)
	}
	path := filepath.Join(t.TempDir(), "tex.png")
	if err := os.WriteFile(path, buf.Bytes(), 0644); err != nil {
		t.Fatal(err)
	}

	img, err := LoadImage(path)
	if err != nil {
		t.Fatalf("LoadImage: %v", err)
	}
	if got := img.RGBAAt(1, 0); got != (color.RGBA{10, 20, 30, 255}) {
		t.Errorf("pixel = %v", got)
	}
}

func TestLoadImageTGAByExtension(t *testing.T) {
	data := tgaHeader(TGATypeUncompressed, 1, 1, 24, 0)
	data = append(data, 0, 255, 0)
	path := filepath.Join(t.TempDir(), "tex.TGA")
	if err := os.WriteFile(path, data, 0644); err != nil {
		t.Fatal(err)
	}

	img, err := LoadImage(path)
	if err != nil {
		t.Fatalf("LoadImage: %v", err)
	}
	if got := img.RGBAAt(0, 0); got != (color.RGBA{0, 255, 0, 255}) {
		t.Errorf("pixel = %v", got)
	}
}

func TestLoadImageErrors(t *testing.T) {
	dir := t.TempDir()
	garbage := filepath.Join(dir, "garbage.png")
	if err := os.WriteFile(garbage, []byte("not an image"), 0644); err != nil {
		t.Fatal(err)
	}

	if _, err := LoadImage(filepath.Join(dir, "missing.png")); err == nil {
		t.Error("expected error for missing file")
	}
	if _, err := LoadImage(garbage); err == nil {
		t.Error("expected error for undecodable file")
	}
}

func TestToRGBAOffsetBounds(t *testing.T) {
	src := image.NewNRGBA(image.Rect(5, 5, 7, 6))
	src.Set(6, 5, color.NRGBA{R: 255, A: 255})

	out := ToRGBA(src)
	if out.Rect != image.Rect(0, 0, 2, 1) {
		t.Errorf("bounds = %v, want origin-anchored 2x1", out.Rect)
	}
	if out.RGBAAt(1, 0).R != 255 {
		t.Errorf("pixel not moved to origin: %v", out.RGBAAt(1, 0))
	}
}

func TestLoadImageBMP(t *testing.T) {
	src := image.NewRGBA(image.Rect(0, 0, 3, 2))
	src.SetRGBA(2, 1, color.RGBA{R: 40, G: 50, B: 60, A: 255})

	var buf bytes.Buffer
	if err := bmp.Encode(&buf, src); err != nil {
		t.Fatalf("bmp.Encode: %v", err)
	}
	path := filepath.Join(t.TempDir(), "tex.bmp")
	if err := os.WriteFile(path, buf.Bytes(), 0644); err != nil {
		t.Fatal(err)
	}

	img, err := LoadImage(path)
	if err != nil {
		t.Fatalf("LoadImage: %v", err)
	}
	if img.Rect.Dx() != 3 || img.Rect.Dy() != 2 {
		t.Errorf("size = %v, want 3x2", img.Rect)
	}
	if got := img.RGBAAt(2, 1); got != (color.RGBA{40, 50, 60, 255}) {
		t.Errorf("pixel = %v", got)
	}
}

func TestLoadImageRejectsEmpty(t *testing.T) {
	dir := t.TempDir()

	tgaPath := filepath.Join(dir, "empty.tga")
	if err := os.WriteFile(tgaPath, tgaHeader(TGATypeUncompressed, 0, 1, 24, 0), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadImage(tgaPath); err == nil {
		t.Error("expected error for zero-width TGA")
	}

	var buf bytes.Buffer
	if err := bmp.Encode(&buf, image.NewRGBA(image.Rect(0, 0, 0, 0))); err != nil {
		t.Fatalf("bmp.Encode: %v", err)
	}
	bmpPath := filepath.Join(dir, "empty.bmp")
	if err := os.WriteFile(bmpPath, buf.Bytes(), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadImage(bmpPath); err == nil {
		t.Error("expected error for empty BMP")
	}
}

func TestNewRejectsEmptyImage(t *testing.T) {
	_, err := New(image.NewRGBA(image.Rect(0, 0, 0, 4)))
	if !errors.Is(err, ErrEmptyImage) {
		t.Errorf("New(empty) error = %v, want ErrEmptyImage", err)
	}
}
