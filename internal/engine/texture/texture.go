package texture

import (
	"image"

	"github.com/go-gl/gl/v4.1-core/gl"
	"go.uber.org/zap"

	"github.com/Faultbox/flyview/internal/logger"
)

// Texture owns a GL 2D texture.
type Texture struct {
	id            uint32
	width, height int
}

// New uploads img as a mipmapped, repeating 2D texture.
func New(img *image.RGBA) (*Texture, error) {
	if img.Bounds().Empty() {
		return nil, ErrEmptyImage
	}

	flipped := FlipVertical(img)
	t := &Texture{width: img.Rect.Dx(), height: img.Rect.Dy()}

	gl.GenTextures(1, &t.id)
	gl.BindTexture(gl.TEXTURE_2D, t.id)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_S, gl.REPEAT)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_T, gl.REPEAT)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, gl.LINEAR_MIPMAP_LINEAR)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAG_FILTER, gl.NEAREST)
	gl.PixelStorei(gl.UNPACK_ALIGNMENT, 1)
	gl.TexImage2D(gl.TEXTURE_2D, 0, gl.RGBA8,
		int32(t.width), int32(t.height), 0,
		gl.RGBA, gl.UNSIGNED_BYTE, gl.Ptr(flipped.Pix))
	gl.GenerateMipmap(gl.TEXTURE_2D)
	gl.BindTexture(gl.TEXTURE_2D, 0)

	logger.Debug("texture uploaded",
		zap.Uint32("id", t.id),
		zap.Int("width", t.width),
		zap.Int("height", t.height),
	)
	return t, nil
}

// Bind binds the texture to the given texture unit.
func (t *Texture) Bind(unit uint32) {
	gl.ActiveTexture(gl.TEXTURE0 + unit)
	gl.BindTexture(gl.TEXTURE_2D, t.id)
}

// Close deletes the texture. It is safe to call more than once.
func (t *Texture) Close() {
	if t.id != 0 {
		gl.DeleteTextures(1, &t.id)
		t.id = 0
	}
}
